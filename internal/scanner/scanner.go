// Package scanner walks a project tree and returns the source files the
// analysis pipeline should consider. It honors .ggqignore patterns, a set of
// default excluded directories, and the language registry's extension list.
package scanner

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/l3aro/go-graph-query/pkg/lang"
)

// FileInfo describes one discovered source file.
type FileInfo struct {
	Path     string // relative to the scan root
	FullPath string
	Language string
	Size     int64
}

// Options configures the scanner.
type Options struct {
	SkipHidden     bool
	IgnoreFileName string
	// Excludes are directory names skipped anywhere in the tree.
	Excludes []string
	// Extensions restricts results to the given extensions; empty means every
	// extension the registry knows.
	Extensions []string
}

// DefaultOptions returns the scanner defaults.
func DefaultOptions() Options {
	return Options{
		SkipHidden:     true,
		IgnoreFileName: ".ggqignore",
		Excludes: []string{
			"node_modules", ".git", "__pycache__", ".venv", "venv",
			"dist", "build", "vendor", "target", ".idea", ".vscode",
		},
	}
}

// Scanner discovers source files under a root directory.
type Scanner struct {
	opts  Options
	langs *lang.Registry
}

// New creates a scanner over the given language registry.
func New(opts Options, langs *lang.Registry) *Scanner {
	return &Scanner{opts: opts, langs: langs}
}

// Scan walks root and returns every matching source file, relative paths
// sorted by walk order. Unreadable entries are skipped.
func (s *Scanner) Scan(root string) ([]FileInfo, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving scan root: %w", err)
	}

	ignore, err := s.loadIgnore(absRoot)
	if err != nil {
		return nil, err
	}

	allowExt := map[string]bool{}
	for _, ext := range s.opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowExt[strings.ToLower(ext)] = true
	}

	var files []FileInfo
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil || rel == "." {
			return nil
		}
		name := d.Name()

		if d.IsDir() {
			if s.opts.SkipHidden && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.excluded(name) || ignore.Match(filepath.ToSlash(rel), true) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.opts.SkipHidden && strings.HasPrefix(name, ".") {
			return nil
		}
		if ignore.Match(filepath.ToSlash(rel), false) {
			return nil
		}

		profile, ok := s.langs.ByPath(path)
		if !ok {
			return nil
		}
		if len(allowExt) > 0 && !allowExt[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, FileInfo{
			Path:     filepath.ToSlash(rel),
			FullPath: path,
			Language: profile.Name,
			Size:     info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func (s *Scanner) excluded(dirName string) bool {
	for _, ex := range s.opts.Excludes {
		if dirName == ex {
			return true
		}
	}
	return false
}

func (s *Scanner) loadIgnore(root string) (*ignoreList, error) {
	name := s.opts.IgnoreFileName
	if name == "" {
		name = ".ggqignore"
	}
	f, err := os.Open(filepath.Join(root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return &ignoreList{}, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	il := &ignoreList{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		il.add(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return il, nil
}
