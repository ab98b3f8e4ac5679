package scanner

import (
	"path"
	"strings"
)

// ignorePattern is one parsed .ggqignore line.
type ignorePattern struct {
	pattern string
	dirOnly bool
	// anchored patterns match from the scan root only.
	anchored bool
}

// ignoreList matches relative slash-separated paths against gitignore-style
// patterns. Negation is not supported.
type ignoreList struct {
	patterns []ignorePattern
}

func (il *ignoreList) add(line string) {
	p := ignorePattern{pattern: line}
	if strings.HasSuffix(p.pattern, "/") {
		p.dirOnly = true
		p.pattern = strings.TrimSuffix(p.pattern, "/")
	}
	if strings.HasPrefix(p.pattern, "/") {
		p.anchored = true
		p.pattern = strings.TrimPrefix(p.pattern, "/")
	} else if strings.Contains(p.pattern, "/") {
		p.anchored = true
	}
	il.patterns = append(il.patterns, p)
}

// Match reports whether the relative path matches any pattern.
func (il *ignoreList) Match(relPath string, isDir bool) bool {
	for _, p := range il.patterns {
		if p.dirOnly && !isDir {
			continue
		}
		if p.matches(relPath) {
			return true
		}
	}
	return false
}

func (p ignorePattern) matches(relPath string) bool {
	if p.anchored {
		if ok, _ := path.Match(p.pattern, relPath); ok {
			return true
		}
		// A directory pattern also covers everything beneath it.
		return strings.HasPrefix(relPath, p.pattern+"/")
	}
	// Unanchored patterns match any path segment.
	for _, segment := range strings.Split(relPath, "/") {
		if ok, _ := path.Match(p.pattern, segment); ok {
			return true
		}
	}
	return false
}
