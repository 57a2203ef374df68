package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to HTML fragments using goldmark (pure Go).
// A converter is immutable after construction and safe for concurrent use.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter builds a converter from f.
// Returns ErrInvalidTOC if f.TOC is set but invalid.
func NewGoldmarkConverter(f Features) (*GoldmarkConverter, error) {
	exts := make([]goldmark.Extender, 0, 8)
	if f.Tables {
		exts = append(exts, extension.Table)
	}
	if f.Strikethrough {
		exts = append(exts, extension.Strikethrough)
	}
	if f.Autolinks {
		exts = append(exts, extension.Linkify)
	}
	if f.TaskLists {
		exts = append(exts, extension.TaskList)
	}
	if f.Footnotes {
		exts = append(exts, extension.Footnote)
	}
	if f.Math {
		exts = append(exts, Math)
	}
	if f.Highlight {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // styled by the site stylesheet
			),
		))
	}

	parserOpts := []parser.Option{
		parser.WithAutoHeadingID(), // TOC links target these IDs
	}
	if f.TOC != nil {
		toc, err := newTOCTransformer(*f.TOC)
		if err != nil {
			return nil, err
		}
		parserOpts = append(parserOpts, parser.WithASTTransformers(util.Prioritized(toc, 100)))
	}
	if f.MarkdownLinks {
		parserOpts = append(parserOpts, parser.WithASTTransformers(util.Prioritized(&linkTransformer{}, 200)))
	}

	var rendererOpts []renderer.Option
	if f.UnsafeHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkConverter{md: md}, nil
}

// Fragment is the converted body of one page.
type Fragment struct {
	HTML    string
	HasMath bool // the page needs the math rendering assets
}

// ToHTML converts Markdown content to an HTML fragment.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	frag, err := c.Convert(ctx, content)
	if err != nil {
		return "", err
	}
	return frag.HTML, nil
}

// Convert converts Markdown content to a Fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) Convert(ctx context.Context, content string) (Fragment, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return Fragment{}, err
	}

	type result struct {
		frag Fragment
		err  error
	}

	done := make(chan result, 1)

	go func() {
		source := []byte(content)
		doc := c.md.Parser().Parse(text.NewReader(source))

		var buf bytes.Buffer
		if err := c.md.Renderer().Render(&buf, source, doc); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{frag: Fragment{HTML: buf.String(), HasMath: containsMath(doc)}}
	}()

	select {
	case <-ctx.Done():
		return Fragment{}, ctx.Err()
	case r := <-done:
		return r.frag, r.err
	}
}
