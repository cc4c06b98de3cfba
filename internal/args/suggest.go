package args

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Suggest returns the documented long option that best matches an unknown
// flag, or "" when nothing is close. flag may carry leading dashes and an
// inline value.
func Suggest(flag string) string {
	if !strings.HasPrefix(flag, "--") {
		return ""
	}
	name, _, _ := strings.Cut(strings.TrimPrefix(flag, "--"), "=")
	if len(name) < 2 {
		return ""
	}

	visible := Visible(true)
	names := make([]string, len(visible))
	for i, o := range visible {
		names[i] = o.Name
	}

	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
