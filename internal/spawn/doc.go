// Package spawn runs the target program with the resolved environment.
//
// The child inherits stdin, stdout and stderr and the parent waits for it.
// While the child runs, json_env outlives SIGINT, SIGQUIT and SIGTERM so the
// child decides how to shut down and its exit status is what the caller
// sees. SIGTERM is passed on to the child. SIGINT and SIGQUIT are not: the
// terminal already delivers them to the child's process group, and relaying
// them would deliver them twice.
//
// A child that exits non-zero produces an *ExitError whose ExitCode the
// caller mirrors as its own exit status. A child killed by a signal reports
// 128 plus the signal number, as a shell would.
package spawn
