package pipeline

import (
	"errors"
	"fmt"
	"regexp"
)

// DefaultTOCHeading matches the heading text that receives a generated table
// of contents: "toc", "contents", "table of contents", "table-of-contents".
const DefaultTOCHeading = `toc|(table[ -]of[ -])?contents?`

// TOC depth bounds.
const (
	MinTOCDepth     = 1
	MaxTOCDepth     = 6
	DefaultTOCDepth = 4
)

// ErrInvalidTOC indicates TOC options cannot be applied.
var ErrInvalidTOC = errors.New("invalid TOC options")

// TOCOptions configures table of contents generation.
type TOCOptions struct {
	MaxDepth int    // Deepest heading level listed (1-6)
	Ordered  bool   // <ol> when true, <ul> otherwise
	Heading  string // Regular expression matched case-insensitively against the whole heading text
}

// Validate checks depth bounds and that Heading compiles.
func (o *TOCOptions) Validate() error {
	if o == nil {
		return nil
	}
	if o.MaxDepth < MinTOCDepth || o.MaxDepth > MaxTOCDepth {
		return fmt.Errorf("%w: max depth %d (must be %d-%d)", ErrInvalidTOC, o.MaxDepth, MinTOCDepth, MaxTOCDepth)
	}
	if _, err := compileTOCHeading(o.Heading); err != nil {
		return fmt.Errorf("%w: heading pattern: %v", ErrInvalidTOC, err)
	}
	return nil
}

func compileTOCHeading(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern = DefaultTOCHeading
	}
	return regexp.Compile(`(?i)^(` + pattern + `)$`)
}

// Features is the fixed set of conversion behaviors a converter is built with.
// It is read once by NewGoldmarkConverter; no per-file configuration exists.
type Features struct {
	Tables        bool
	Strikethrough bool
	Autolinks     bool
	TaskLists     bool
	Footnotes     bool
	FrontMatter   bool // Strip a leading front matter block before conversion
	Math          bool // $inline$ and $$display$$ math for KaTeX
	Highlight     bool // Chroma class-based highlighting of fenced code
	MarkdownLinks bool // Rewrite relative links to .md/.markdown files to .html
	UnsafeHTML    bool // Pass raw HTML through unescaped
	TOC           *TOCOptions
}

// DefaultFeatures returns every feature enabled with the TOC limited to
// depth 4 and rendered as an ordered list.
func DefaultFeatures() Features {
	return Features{
		Tables:        true,
		Strikethrough: true,
		Autolinks:     true,
		TaskLists:     true,
		Footnotes:     true,
		FrontMatter:   true,
		Math:          true,
		Highlight:     true,
		MarkdownLinks: true,
		UnsafeHTML:    true,
		TOC: &TOCOptions{
			MaxDepth: DefaultTOCDepth,
			Ordered:  true,
			Heading:  DefaultTOCHeading,
		},
	}
}
