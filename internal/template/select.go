package template

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// allowedExtensions lists the configuration formats a template may ship as.
// Text files outside this list are never selected so unrelated artifacts
// (release notes, manifests) cannot shadow the real template.
var allowedExtensions = map[string]struct{}{
	".properties": {},
	".cfg":        {},
	".conf":       {},
	".ini":        {},
	".env":        {},
	".txt":        {},
}

// candidate carries the attributes a collected file is ranked by.
type candidate struct {
	path    string
	ext     string
	nameLen int
	name    string
}

// Select picks the single best template candidate from the collected files,
// or "" when none qualifies.
//
// Binary files are excluded by requiring the full content to decode as
// UTF-8. Remaining files must carry an allow-listed extension. Ranking is by
// (extension priority, name length, name, path) ascending: .properties is the
// canonical template format, and shorter lexicographically earlier names
// break the remaining ties deterministically regardless of collection order.
func Select(files []string) string {
	var candidates []candidate
	for _, path := range files {
		if !isTextFile(path) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := allowedExtensions[ext]; !ok {
			continue
		}
		name := filepath.Base(path)
		candidates = append(candidates, candidate{
			path:    path,
			ext:     ext,
			nameLen: len(name),
			name:    name,
		})
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if pa, pb := extensionPriority(a.ext), extensionPriority(b.ext); pa != pb {
			return pa < pb
		}
		if a.nameLen != b.nameLen {
			return a.nameLen < b.nameLen
		}
		if a.name != b.name {
			return a.name < b.name
		}
		// Identical basenames in different directories tie on every name
		// attribute; the full path keeps the winner collection-order
		// independent.
		return a.path < b.path
	})
	return candidates[0].path
}

func extensionPriority(ext string) int {
	switch ext {
	case ".properties":
		return 0
	case ".txt", ".cfg":
		return 1
	default:
		return 2
	}
}

func isTextFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return utf8.Valid(data)
}
