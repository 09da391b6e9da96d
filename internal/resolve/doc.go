// Package resolve turns an ordered list of configuration sources into the
// environment variables they define.
//
// # Pipeline
//
// Each source is processed in order:
//
//   - load the file (JSON, JSON with comments, or YAML)
//   - apply the source's path expression
//   - for every object match, coerce each member to a string
//   - optionally substitute $NAME references from the caller's environment
//
// Later sources overwrite keys from earlier ones. Any failure aborts the
// whole resolution, so callers never see a partial environment.
//
// Resolve never reads the process environment on its own. The snapshot used
// for expansion is part of the Request, which keeps resolution a pure
// function of its inputs.
package resolve
