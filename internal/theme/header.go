package theme

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strings"
)

// headerScanLimit matches how much of style.css the host reads for headers.
const headerScanLimit = 8 * 1024

// ErrNoThemeName is returned when style.css lacks a Theme Name header.
var ErrNoThemeName = errors.New("style.css has no Theme Name header")

// Header is the metadata block at the top of a theme's style.css.
type Header struct {
	Name        string
	ThemeURI    string
	Author      string
	Description string
	Version     string
	Template    string
	TextDomain  string
	License     string
}

var headerFields = map[string]func(*Header) *string{
	"Theme Name":  func(h *Header) *string { return &h.Name },
	"Theme URI":   func(h *Header) *string { return &h.ThemeURI },
	"Author":      func(h *Header) *string { return &h.Author },
	"Description": func(h *Header) *string { return &h.Description },
	"Version":     func(h *Header) *string { return &h.Version },
	"Template":    func(h *Header) *string { return &h.Template },
	"Text Domain": func(h *Header) *string { return &h.TextDomain },
	"License":     func(h *Header) *string { return &h.License },
}

var headerPatterns = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(headerFields))
	for name := range headerFields {
		out[name] = regexp.MustCompile(`(?im)^[ \t/*#@]*` + regexp.QuoteMeta(name) + `:(.*)$`)
	}
	return out
}()

// ParseHeader reads the theme header from the start of a stylesheet.
func ParseHeader(r io.Reader) (Header, error) {
	data, err := io.ReadAll(io.LimitReader(r, headerScanLimit))
	if err != nil {
		return Header{}, fmt.Errorf("reading stylesheet header: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r", "\n")

	var h Header
	for name, field := range headerFields {
		m := headerPatterns[name].FindStringSubmatch(text)
		if m == nil {
			continue
		}
		*field(&h) = cleanHeaderValue(m[1])
	}
	if h.Name == "" {
		return h, ErrNoThemeName
	}
	return h, nil
}

// LoadHeader parses the header of the stylesheet in fsys.
func LoadHeader(fsys fs.FS) (Header, error) {
	f, err := fsys.Open(Stylesheet)
	if err != nil {
		return Header{}, fmt.Errorf("opening %s: %w", Stylesheet, err)
	}
	defer func() { _ = f.Close() }()
	return ParseHeader(f)
}

func cleanHeaderValue(v string) string {
	v = strings.TrimSpace(v)
	// A header on the comment's closing line keeps the terminator.
	v = strings.TrimSpace(strings.TrimSuffix(v, "*/"))
	return v
}
