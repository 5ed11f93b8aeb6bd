package types

// EntryKind tags a SourceEntry as a directory or a file
type EntryKind string

const (
	// KindDirectory marks a directory entry
	KindDirectory EntryKind = "directory"

	// KindFile marks a regular file entry
	KindFile EntryKind = "file"
)

// SourceEntry is one node of a template tree, relative to the template root.
// The root itself is reported with an empty RelPath.
type SourceEntry struct {
	RelPath string
	Kind    EntryKind
}

// IsDir reports whether the entry is a directory
func (e SourceEntry) IsDir() bool {
	return e.Kind == KindDirectory
}

// IsRoot reports whether the entry is the template root itself
func (e SourceEntry) IsRoot() bool {
	return e.RelPath == ""
}
