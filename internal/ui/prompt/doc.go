// Package prompt provides the interactive yes/no confirmation used before
// trusting a config file.
//
// Prompts render on stderr so they work inside command substitution, where
// stdout is captured by the shell. Without a terminal on both stdin and
// stderr no prompt is shown and the answer is "no".
package prompt
