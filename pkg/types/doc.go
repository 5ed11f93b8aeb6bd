// Package types defines the core types and interfaces used throughout stamp.
// This includes the FS interface the engine performs all I/O through, the
// SourceEntry values produced by the tree walker, the ExistsPolicy governing
// conflicts and the per-entry outcomes reported by a materialization run.
package types
