package assets

import (
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used for code blocks.
const DefaultHighlightStyle = "github"

// HighlightCSS renders the class-based chroma stylesheet for styleName.
// Unknown names fall back to chroma's default style.
func HighlightCSS(styleName string) (string, error) {
	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(styleName)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlightStyle, err)
	}
	return buf.String(), nil
}

// HasHighlightStyle reports whether chroma knows styleName.
func HasHighlightStyle(styleName string) bool {
	_, ok := styles.Registry[strings.ToLower(styleName)]
	return ok
}
