// Package testutil provides utilities for testing stamp components.
//
// Trees are described inline as Tree values and written to either an
// in-memory afero filesystem (MemoryFS) or a temporary directory (OSFS).
// Engine tests should prefer MemoryFS; tests that depend on real file modes
// or on the OS loader use OSFS.
package testutil
