package md2site

import (
	"fmt"

	"github.com/alnah/go-md2site/internal/pipeline"
)

// TOC depth bounds.
const (
	MinTOCDepth     = pipeline.MinTOCDepth
	MaxTOCDepth     = pipeline.MaxTOCDepth
	DefaultTOCDepth = pipeline.DefaultTOCDepth
)

// DefaultTOCHeading matches "toc", "contents", "table of contents" and
// "table-of-contents", case-insensitively.
const DefaultTOCHeading = pipeline.DefaultTOCHeading

// Features selects the Markdown behaviors a Builder converts with.
// The set is fixed for the lifetime of the Builder.
type Features struct {
	Tables        bool
	Strikethrough bool
	Autolinks     bool
	TaskLists     bool
	Footnotes     bool
	FrontMatter   bool // Skip a leading YAML, TOML or JSON block
	Math          bool // $inline$ and $$display$$ TeX rendered by KaTeX
	Highlight     bool // Syntax highlighting of fenced code blocks
	MarkdownLinks bool // Rewrite links to .md files to the built .html page
	RawHTML       bool // Pass HTML embedded in Markdown through unescaped
	TOC           *TOC // nil disables the table of contents
}

// TOC configures the table of contents generated under a matching heading.
type TOC struct {
	MaxDepth int    // Deepest heading level listed (1-6)
	Ordered  bool   // Ordered list markers
	Heading  string // Pattern for the heading text, empty for DefaultTOCHeading
}

// Validate checks the TOC settings.
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	return t.toPipeline().Validate()
}

func (t *TOC) toPipeline() *pipeline.TOCOptions {
	if t == nil {
		return nil
	}
	return &pipeline.TOCOptions{
		MaxDepth: t.MaxDepth,
		Ordered:  t.Ordered,
		Heading:  t.Heading,
	}
}

// DefaultFeatures enables every feature, with a table of contents limited
// to depth 4 and rendered as an ordered list.
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
		RawHTML:       true,
		TOC: &TOC{
			MaxDepth: DefaultTOCDepth,
			Ordered:  true,
			Heading:  DefaultTOCHeading,
		},
	}
}

func (f Features) toPipeline() pipeline.Features {
	return pipeline.Features{
		Tables:        f.Tables,
		Strikethrough: f.Strikethrough,
		Autolinks:     f.Autolinks,
		TaskLists:     f.TaskLists,
		Footnotes:     f.Footnotes,
		FrontMatter:   f.FrontMatter,
		Math:          f.Math,
		Highlight:     f.Highlight,
		MarkdownLinks: f.MarkdownLinks,
		UnsafeHTML:    f.RawHTML,
		TOC:           f.TOC.toPipeline(),
	}
}

// Option configures a Builder.
type Option func(*builderConfig)

// builderConfig holds the settings collected from options.
type builderConfig struct {
	features       Features
	lang           string
	style          string // style name or CSS file path, "" for none
	assetPath      string
	href           string
	inline         bool
	noStyle        bool
	highlightStyle string
	workers        int
}

// Defaults applied by NewBuilder.
const (
	DefaultStylesheet = "style.css"
	DefaultLang       = pipeline.DefaultLang
	DefaultWorkers    = 1
)

// WithFeatures replaces the default feature set.
func WithFeatures(f Features) Option {
	return func(c *builderConfig) {
		c.features = f
	}
}

// WithLang sets the lang attribute of every page.
func WithLang(lang string) Option {
	return func(c *builderConfig) {
		c.lang = lang
	}
}

// WithStyle selects the stylesheet written next to the pages: a built-in
// style name ("default", "minimal") or a path to a CSS file.
// Without it pages link DefaultStylesheet but no file is written.
func WithStyle(nameOrPath string) Option {
	return func(c *builderConfig) {
		c.style = nameOrPath
	}
}

// WithAssetPath adds a directory searched for styles/<name>.css before the
// built-in styles.
func WithAssetPath(dir string) Option {
	return func(c *builderConfig) {
		c.assetPath = dir
	}
}

// WithStylesheet sets the stylesheet href: a path relative to the output
// root, or an absolute URL used as is.
func WithStylesheet(href string) Option {
	return func(c *builderConfig) {
		c.href = href
	}
}

// WithInlineStyle embeds the stylesheet in each page instead of linking it.
// The default style is embedded when WithStyle is not given.
func WithInlineStyle() Option {
	return func(c *builderConfig) {
		c.inline = true
	}
}

// WithoutStyle emits pages with no stylesheet at all.
func WithoutStyle() Option {
	return func(c *builderConfig) {
		c.noStyle = true
	}
}

// WithHighlightStyle sets the chroma style whose CSS is appended to the
// written or inlined stylesheet.
func WithHighlightStyle(name string) Option {
	return func(c *builderConfig) {
		c.highlightStyle = name
	}
}

// WithWorkers sets how many pages BuildSite builds concurrently.
// One (the default) builds pages strictly in discovery order.
func WithWorkers(n int) Option {
	return func(c *builderConfig) {
		c.workers = n
	}
}

func (c *builderConfig) validate() error {
	if c.workers < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidWorkers, c.workers)
	}
	if err := c.features.TOC.Validate(); err != nil {
		return err
	}
	return validateHref(c.href)
}
