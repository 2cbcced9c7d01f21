package collect

import (
	"fmt"
	"strings"
)

// SupportedExtensions is the fixed allow-list of file extensions included in
// an aggregated document.
var SupportedExtensions = []string{".py", ".ipynb", ".html", ".css", ".js", ".jsx", ".md", ".rst"}

// SupportedFile reports whether name ends with a supported extension.
func SupportedFile(name string) bool {
	for _, ext := range SupportedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Block renders one file as a fenced text block. Blocks concatenate into the
// final document in discovery order.
func Block(identifier, content string) string {
	return fmt.Sprintf("\n%s:\n```\n%s\n```\n", identifier, content)
}
