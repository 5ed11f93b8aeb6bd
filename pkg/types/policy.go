package types

import (
	"strings"

	"github.com/arthur-debert/stamp/pkg/errors"
)

// ExistsPolicy governs what happens when a target file already exists
type ExistsPolicy string

const (
	// PolicySkip leaves existing files untouched
	PolicySkip ExistsPolicy = "skip"

	// PolicyError aborts the run on the first existing file
	PolicyError ExistsPolicy = "error"

	// PolicyOverwrite replaces existing files with freshly rendered content
	PolicyOverwrite ExistsPolicy = "overwrite"
)

// DefaultExistsPolicy is used when no policy is given
const DefaultExistsPolicy = PolicyError

// ValidExistsPolicies lists every accepted policy, in display order
var ValidExistsPolicies = []ExistsPolicy{PolicySkip, PolicyError, PolicyOverwrite}

// PolicyNames returns the accepted policies as strings
func PolicyNames() []string {
	names := make([]string, len(ValidExistsPolicies))
	for i, p := range ValidExistsPolicies {
		names[i] = string(p)
	}
	return names
}

// ParseExistsPolicy validates a policy name. An empty name yields the default.
func ParseExistsPolicy(name string) (ExistsPolicy, error) {
	if name == "" {
		return DefaultExistsPolicy, nil
	}
	for _, p := range ValidExistsPolicies {
		if string(p) == name {
			return p, nil
		}
	}
	return "", errors.Newf(errors.ErrConfiguration,
		"exists_policy must be one of: %s (got %q)", strings.Join(PolicyNames(), ", "), name).
		WithDetail("exists_policy", name)
}
