// Package shell knows how each supported shell evaluates exported variables
// and how it runs a hook when the working directory changes.
//
// Supported shells are described by a single table of variants. Adding a
// shell means adding one entry: its profile file, its hook script and its
// export syntax.
//
// The hook script calls "json_env hook <shell>" on every directory change
// and evaluates whatever it prints. Install appends a one-line loader for
// that script to the shell's profile, guarded by a marker comment so that
// repeated installs leave the profile unchanged.
package shell
