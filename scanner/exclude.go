package scanner

import (
	"fmt"
	"regexp"
)

// Filter decides whether a path is skipped before any I/O happens on it.
type Filter struct {
	patterns []*regexp.Regexp
}

func NewFilter(patterns []string) (*Filter, error) {
	f := &Filter{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Match reports whether any pattern matches the full path string.
func (f *Filter) Match(path string) bool {
	if f == nil {
		return false
	}
	for _, re := range f.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.patterns)
}
