// Package filesystem provides filesystem implementations for stamp.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem used by the CLI and an afero-backed filesystem used
// by tests and by callers that want to materialize into memory.
package filesystem
