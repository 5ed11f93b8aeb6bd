package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/stamp/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/stamp/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/stamp/internal/version.Date={{.Date}}
)

// Info is the build information as a value
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String renders the block printed by "stamp version"
func (i Info) String() string {
	return fmt.Sprintf("stamp version %s\n  commit: %s\n  built:  %s\n", i.Version, i.Commit, i.Date)
}
