package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryByPath(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		path string
		want string
	}{
		{"main.go", "Go"},
		{"app.py", "Python"},
		{"index.js", "JavaScript"},
		{"component.tsx", "TypeScript"},
		{"lib.rs", "Rust"},
		{"Main.java", "Java"},
	}
	for _, tt := range tests {
		p, ok := r.ByPath(tt.path)
		require.True(t, ok, tt.path)
		assert.Equal(t, tt.want, p.Name)
	}

	_, ok := r.ByPath("README.md")
	assert.False(t, ok)
}

func TestGrammarAvailability(t *testing.T) {
	r := NewRegistry()

	goProfile, _ := r.ByName("go")
	assert.False(t, goProfile.Heuristic())

	rustProfile, _ := r.ByName("rust")
	assert.True(t, rustProfile.Heuristic())
}

func TestFunctionPatterns(t *testing.T) {
	r := NewRegistry()

	goProfile, _ := r.ByName("go")
	m := goProfile.FunctionPattern.FindStringSubmatch("func ProcessData(items []string, limit int) error {")
	require.NotNil(t, m)
	assert.Equal(t, "ProcessData", m[1])

	m = goProfile.FunctionPattern.FindStringSubmatch("func (s *Server) Start(ctx context.Context) error {")
	require.NotNil(t, m)
	assert.Equal(t, "Start", m[1])

	pyProfile, _ := r.ByName("python")
	m = pyProfile.FunctionPattern.FindStringSubmatch("async def fetch_data(url, timeout=30):")
	require.NotNil(t, m)
	assert.Equal(t, "fetch_data", m[1])
}

func TestImportPatterns(t *testing.T) {
	r := NewRegistry()

	pyProfile, _ := r.ByName("python")
	m := pyProfile.ImportPatterns[1].FindStringSubmatch("from os.path import join")
	require.NotNil(t, m)
	assert.Equal(t, "os.path", m[1])

	jsProfile, _ := r.ByName("javascript")
	m = jsProfile.ImportPatterns[0].FindStringSubmatch(`import { useState } from './hooks/state'`)
	require.NotNil(t, m)
	assert.Equal(t, "./hooks/state", m[1])
}

func TestIsComment(t *testing.T) {
	r := NewRegistry()
	pyProfile, _ := r.ByName("python")
	assert.True(t, pyProfile.IsComment("# a note"))
	assert.False(t, pyProfile.IsComment("x = 1"))
}
