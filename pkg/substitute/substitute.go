// Package substitute rewrites template paths by replacing literal marker
// tokens (such as __APP_NAME__) with configured values.
package substitute

import (
	"sort"
	"strings"

	"github.com/arthur-debert/stamp/pkg/errors"
)

// NameMarker is the marker set by the --name flag
const NameMarker = "__NAME__"

// Substitutor applies a fixed set of marker replacements to paths.
// The zero value performs no replacement.
type Substitutor struct {
	markers  []string
	replacer *strings.Replacer
}

// New validates the marker set and builds a Substitutor.
//
// Markers must be non-empty and no marker may contain another one: with
// nested markers the result would depend on scan order.
func New(substitutions map[string]string) (*Substitutor, error) {
	markers := make([]string, 0, len(substitutions))
	for marker := range substitutions {
		if marker == "" {
			return nil, errors.New(errors.ErrConfiguration, "filename substitution marker cannot be empty")
		}
		markers = append(markers, marker)
	}
	sort.Strings(markers)

	for i, a := range markers {
		for _, b := range markers[i+1:] {
			if strings.Contains(a, b) || strings.Contains(b, a) {
				return nil, errors.Newf(errors.ErrConfiguration,
					"filename substitution markers %q and %q overlap", a, b).
					WithDetail("markers", []string{a, b})
			}
		}
	}

	s := &Substitutor{markers: markers}
	if len(markers) > 0 {
		pairs := make([]string, 0, 2*len(markers))
		for _, marker := range markers {
			pairs = append(pairs, marker, substitutions[marker])
		}
		s.replacer = strings.NewReplacer(pairs...)
	}
	return s, nil
}

// Apply replaces every marker occurrence in path. Replaced text is not
// scanned again, so a value that contains a marker is emitted literally.
func (s *Substitutor) Apply(path string) string {
	if s == nil || s.replacer == nil {
		return path
	}
	return s.replacer.Replace(path)
}

// Markers returns the configured markers in lexicographic order
func (s *Substitutor) Markers() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.markers))
	copy(out, s.markers)
	return out
}
