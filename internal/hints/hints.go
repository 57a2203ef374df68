// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strconv"
	"strings"
)

// ForInputDirectory returns hints for a missing or unreadable input directory.
// Suggests MD2SITE_INPUT_DIR unless it is already set.
func ForInputDirectory() string {
	hints := []string{"pass the Markdown directory as the first argument"}
	if os.Getenv("MD2SITE_INPUT_DIR") == "" {
		hints = append(hints, "or set MD2SITE_INPUT_DIR")
	}
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2site/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-md2site) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2site") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a path to a .css file")
}

// ForWorkers returns hints for an invalid worker count.
func ForWorkers(maxProcs int) string {
	return format("use --workers between 1 and " + strconv.Itoa(maxProcs))
}

// ForInvalidEncoding returns hints for files that are not UTF-8.
func ForInvalidEncoding() string {
	return format("re-save the file as UTF-8, e.g. iconv -t UTF-8")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
