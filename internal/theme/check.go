package theme

import (
	"fmt"
	"io/fs"
	"strings"
)

// Problem describes one mismatch between the shipped stylesheet and the
// registrar's constants.
type Problem struct {
	Field string
	Want  string
	Got   string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: want %q, got %q", p.Field, p.Want, p.Got)
}

// Check verifies that the stylesheet in fsys matches Version and ParentSlug.
// An error is returned only when the stylesheet cannot be read or parsed.
func Check(fsys fs.FS) ([]Problem, error) {
	h, err := LoadHeader(fsys)
	if err != nil {
		return nil, err
	}

	var problems []Problem
	if strings.TrimSpace(Version) == "" {
		problems = append(problems, Problem{Field: "Version constant", Want: "non-empty", Got: Version})
	}
	if h.Version != Version {
		problems = append(problems, Problem{Field: "Version", Want: Version, Got: h.Version})
	}
	if h.Template != ParentSlug {
		problems = append(problems, Problem{Field: "Template", Want: ParentSlug, Got: h.Template})
	}
	return problems, nil
}
