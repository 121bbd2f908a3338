// Package asset holds request-scoped stylesheet registrations and orders them
// by their declared dependencies.
package asset

import (
	"errors"
	"net/url"
	"strings"
)

// DefaultMedia is applied when a registration leaves Media empty.
const DefaultMedia = "all"

// ErrEmptyHandle is returned when a registration has no handle.
var ErrEmptyHandle = errors.New("style handle is required")

// Style is a single stylesheet registration.
type Style struct {
	// Handle identifies the style within a Registry.
	Handle string
	// Src is the resolved URI of the stylesheet without cache-busting query.
	Src string
	// Deps lists handles that must be emitted before this style.
	Deps []string
	// Version is appended as the ver query parameter. Empty omits it.
	Version string
	// Media is the CSS media query scope, e.g. "all" or "print".
	Media string
	// Priority breaks ties between styles that are ready at the same time.
	// Lower values are emitted first.
	Priority int
}

// URI returns Src with the version query parameter applied.
func (s Style) URI() string {
	if s.Version == "" {
		return s.Src
	}
	sep := "?"
	if strings.Contains(s.Src, "?") {
		sep = "&"
	}
	return s.Src + sep + "ver=" + url.QueryEscape(s.Version)
}

func (s Style) normalized() Style {
	if s.Media == "" {
		s.Media = DefaultMedia
	}
	if len(s.Deps) > 0 {
		deps := make([]string, 0, len(s.Deps))
		seen := make(map[string]struct{}, len(s.Deps))
		for _, d := range s.Deps {
			if d == "" || d == s.Handle {
				continue
			}
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			deps = append(deps, d)
		}
		s.Deps = deps
	}
	return s
}
