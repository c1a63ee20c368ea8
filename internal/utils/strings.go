package utils

import (
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/ksdecrypt/internal/ui"
)

// FormatMenu formats paths as a numbered list, starting at 1.
func FormatMenu(paths []string) string {
	var b strings.Builder
	for i, path := range paths {
		b.WriteString("  ")
		b.WriteString(ui.Value.Sprintf("%d", i+1))
		b.WriteString(". ")
		b.WriteString(ui.Path.Sprint(filepath.Base(path)))
		b.WriteString("\n")
	}
	return b.String()
}
