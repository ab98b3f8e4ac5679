package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-graph-query/pkg/lang"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func scanPaths(t *testing.T, root string, opts Options) []string {
	t.Helper()
	files, err := New(opts, lang.NewRegistry()).Scan(root)
	require.NoError(t, err)
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths
}

func TestScanFindsSupportedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "util.py", "x = 1\n")
	writeFile(t, root, "README.md", "# readme\n")

	paths := scanPaths(t, root, DefaultOptions())
	assert.ElementsMatch(t, []string{"main.go", "util.py"}, paths)
}

func TestDefaultExcludesSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "node_modules/lib/index.js", "x\n")
	writeFile(t, root, "vendor/dep/dep.go", "package dep\n")

	paths := scanPaths(t, root, DefaultOptions())
	assert.Equal(t, []string{"main.go"}, paths)
}

func TestIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".ggqignore", "generated/\n*_gen.go\n")
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "types_gen.go", "package main\n")
	writeFile(t, root, "generated/api.go", "package api\n")

	paths := scanPaths(t, root, DefaultOptions())
	assert.Equal(t, []string{"main.go"}, paths)
}

func TestExtensionFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "app.py", "x = 1\n")

	opts := DefaultOptions()
	opts.Extensions = []string{"py"}
	paths := scanPaths(t, root, opts)
	assert.Equal(t, []string{"app.py"}, paths)
}

func TestHiddenSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".hidden.go", "package main\n")
	writeFile(t, root, ".tools/helper.go", "package tools\n")
	writeFile(t, root, "main.go", "package main\n")

	paths := scanPaths(t, root, DefaultOptions())
	assert.Equal(t, []string{"main.go"}, paths)
}

func TestLanguageDetected(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.js", "let x = 1\n")

	files, err := New(DefaultOptions(), lang.NewRegistry()).Scan(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "JavaScript", files[0].Language)
	assert.Equal(t, "src/app.js", files[0].Path)
}
