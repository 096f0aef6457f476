// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package source

import (
	"path/filepath"
	"strings"
)

var languageByExt = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".mjs":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".java":  "java",
	".kt":    "kotlin",
	".rb":    "ruby",
	".rs":    "rust",
	".c":     "c",
	".h":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".cs":    "csharp",
	".php":   "php",
	".swift": "swift",
	".scala": "scala",
	".sh":    "shell",
}

// skipDirs are path segments whose files are vendored or generated
var skipDirs = []string{"vendor/", "node_modules/", "dist/", "build/", ".git/", "third_party/"}

// LanguageForPath returns the language for a source file, or "" when the
// file is not source code the detector understands.
func LanguageForPath(path string) string {
	return languageByExt[strings.ToLower(filepath.Ext(path))]
}

// IsAnalyzable reports whether a path should be included in a scan
func IsAnalyzable(path string) bool {
	if LanguageForPath(path) == "" {
		return false
	}
	p := "/" + path
	for _, dir := range skipDirs {
		if strings.Contains(p, "/"+dir) {
			return false
		}
	}
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".min.js") || strings.HasSuffix(base, ".pb.go") || strings.HasSuffix(base, "_generated.go") {
		return false
	}
	return true
}
