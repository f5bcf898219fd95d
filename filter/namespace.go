package filter

import (
	"path"
	"strings"
)

// DefaultCrate derives a crate name from a module path: its last element,
// with dashes and dots turned into underscores.
func DefaultCrate(modulePath string) string {
	return identifier(path.Base(modulePath))
}

// NamespacePath maps a package to its namespace path: the crate followed by
// the directories below the module root. Packages outside the module map to
// the crate itself.
//
//	NamespacePath("app", "example.com/app", "example.com/app/net/http-client")
//	// app::net::http_client
func NamespacePath(crate, modulePath, importPath string) string {
	rel, ok := strings.CutPrefix(importPath, modulePath+"/")

	if !ok || rel == "" {
		return crate
	}

	var b strings.Builder
	b.WriteString(crate)

	for _, seg := range strings.Split(rel, "/") {
		b.WriteString(Separator)
		b.WriteString(identifier(seg))
	}

	return b.String()
}

func identifier(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}

		return r
	}, s)
}
