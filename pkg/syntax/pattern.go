package syntax

import (
	"strings"

	"github.com/l3aro/go-graph-query/pkg/lang"
)

// extractPattern is the fallback strategy: it scans lines with the profile's
// regexes and infers declaration spans from braces or indentation. Results
// are marked heuristic.
func extractPattern(profile *lang.Profile, lines []string) *FileTree {
	ft := &FileTree{Heuristic: true}

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || profile.IsComment(trimmed) {
			continue
		}

		if profile.FunctionPattern != nil {
			if m := profile.FunctionPattern.FindStringSubmatch(trimmed); m != nil {
				end := findBlockEnd(profile, lines, i)
				params := ""
				if len(m) > 2 {
					params = m[2]
				}
				ft.Decls = append(ft.Decls, Decl{Kind: DeclFunction, Name: m[1], StartLine: i + 1, EndLine: end + 1})
				ft.Functions = append(ft.Functions, FunctionBody{
					Name:          m[1],
					QualifiedName: m[1],
					Params:        paramNames(params),
					StartLine:     i + 1,
					EndLine:       end + 1,
				})
				continue
			}
		}

		if profile.ClassPattern != nil {
			if m := profile.ClassPattern.FindStringSubmatch(trimmed); m != nil {
				end := findBlockEnd(profile, lines, i)
				ft.Decls = append(ft.Decls, Decl{Kind: DeclClass, Name: m[1], StartLine: i + 1, EndLine: end + 1})
			}
		}
	}
	return ft
}

// findBlockEnd returns the 0-based index of the last line of the block
// starting at defLine. Brace languages balance braces; indent languages scan
// until the indentation returns to the definition's level.
func findBlockEnd(profile *lang.Profile, lines []string, defLine int) int {
	if profile.IndentBlocks {
		return findIndentEnd(lines, defLine)
	}
	return findBraceEnd(lines, defLine)
}

func findBraceEnd(lines []string, defLine int) int {
	depth := 0
	opened := false
	for i := defLine; i < len(lines); i++ {
		for _, r := range lines[i] {
			switch r {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return i
		}
	}
	return len(lines) - 1
}

func findIndentEnd(lines []string, defLine int) int {
	defIndent := indentWidth(lines[defLine])
	end := defLine
	for i := defLine + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if indentWidth(lines[i]) <= defIndent {
			break
		}
		end = i
	}
	return end
}
