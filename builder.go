package md2site

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ fragmentConverter             = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.PageRenderer         = (*pipeline.PageShell)(nil)
)

// fragmentConverter converts Markdown to a page body.
type fragmentConverter interface {
	Convert(ctx context.Context, content string) (pipeline.Fragment, error)
}

// Builder converts Markdown files to HTML pages.
// Create with NewBuilder. A Builder is safe for concurrent use.
type Builder struct {
	cfg          builderConfig
	preprocessor pipeline.MarkdownPreprocessor
	converter    fragmentConverter
	shell        pipeline.PageRenderer
	stylesheet   string // CSS written to the output root or inlined, "" for none
}

// NewBuilder creates a Builder with all features enabled.
// Returns an error if an option is invalid or the style cannot be loaded.
func NewBuilder(opts ...Option) (*Builder, error) {
	cfg := builderConfig{
		features:       DefaultFeatures(),
		lang:           DefaultLang,
		href:           DefaultStylesheet,
		highlightStyle: assets.DefaultHighlightStyle,
		workers:        DefaultWorkers,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if !fileutil.IsURL(cfg.href) {
		cfg.href = path.Clean(cfg.href)
	}

	conv, err := pipeline.NewGoldmarkConverter(cfg.features.toPipeline())
	if err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:          cfg,
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		converter:    conv,
		shell:        pipeline.NewPageShell(),
	}

	if err := b.resolveStylesheet(); err != nil {
		return nil, err
	}
	return b, nil
}

// resolveStylesheet loads the CSS the builder emits, if any.
func (b *Builder) resolveStylesheet() error {
	if b.cfg.noStyle {
		return nil
	}

	style := b.cfg.style
	if style == "" && b.cfg.inline {
		style = assets.DefaultStyleName
	}
	if style == "" {
		return nil // link only; the stylesheet is provided by the site
	}

	resolver, err := assets.NewAssetResolver(b.cfg.assetPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	css, err := resolver.ResolveStyle(style)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", style, err)
	}

	if b.cfg.features.Highlight {
		chroma, err := assets.HighlightCSS(b.cfg.highlightStyle)
		if err != nil {
			return err
		}
		css += "\n" + chroma
	}

	b.stylesheet = css
	return nil
}

// Build converts one job and writes its page, creating parent directories
// and overwriting an existing file.
func (b *Builder) Build(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := os.ReadFile(job.InputPath) // #nosec G304 -- path comes from discovery
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	if !utf8.Valid(raw) {
		return fmt.Errorf("%w: %s", ErrInvalidEncoding, job.InputPath)
	}

	doc, err := b.render(ctx, job, string(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", job.InputPath, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	out := fileutil.EnsureExt(job.OutputPath, ".html")
	if err := fileutil.WriteFile(out, []byte(doc)); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteHTML, err)
	}
	return nil
}

// render runs the page pipeline on markdown and returns the full document.
func (b *Builder) render(ctx context.Context, job Job, markdown string) (string, error) {
	content := b.preprocessor.PreprocessMarkdown(ctx, markdown)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var meta pipeline.FrontMatter
	if b.cfg.features.FrontMatter {
		meta, content = pipeline.SplitFrontMatter(content)
	}

	frag, err := b.converter.Convert(ctx, content)
	if err != nil {
		return "", fmt.Errorf("converting to HTML: %w", err)
	}

	data := pipeline.PageData{
		Title:          job.Title,
		Lang:           b.cfg.lang,
		Description:    meta.Description,
		StylesheetHref: b.stylesheetHref(job.RelDir),
		HasMath:        frag.HasMath,
		Body:           frag.HTML,
	}
	if b.cfg.inline {
		data.InlineCSS = b.stylesheet
	}

	return b.shell.Render(ctx, data)
}

// stylesheetHref returns the href of the linked stylesheet as seen from a
// page in relDir, or "" when pages carry no link.
func (b *Builder) stylesheetHref(relDir string) string {
	if b.cfg.noStyle || b.cfg.inline {
		return ""
	}
	if fileutil.IsURL(b.cfg.href) || relDir == "" {
		return b.cfg.href
	}
	depth := strings.Count(relDir, "/") + 1
	return strings.Repeat("../", depth) + b.cfg.href
}

// writesStylesheet reports whether BuildSite writes the stylesheet file.
func (b *Builder) writesStylesheet() bool {
	return b.stylesheet != "" && !b.cfg.inline && !fileutil.IsURL(b.cfg.href)
}

// validateHref accepts an absolute URL or a relative slash path that stays
// inside the output root.
func validateHref(href string) error {
	if fileutil.IsURL(href) {
		return nil
	}
	if href == "" || strings.Contains(href, "\\") || path.IsAbs(href) {
		return fmt.Errorf("%w: %q", ErrInvalidStylesheet, href)
	}
	clean := path.Clean(href)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %q", ErrInvalidStylesheet, href)
	}
	return nil
}
