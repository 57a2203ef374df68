package pipeline

import (
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// markdownExtensions are the link targets rewritten to their built page.
var markdownExtensions = []string{".md", ".markdown"}

// linkTransformer points relative links at Markdown sources to the .html
// pages the build writes for them. Absolute URLs, anchors and other file
// types are left alone.
type linkTransformer struct{}

// Compile-time interface check.
var _ parser.ASTTransformer = (*linkTransformer)(nil)

// Transform implements parser.ASTTransformer.
func (t *linkTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			if dest, ok := RewriteMarkdownLink(string(link.Destination)); ok {
				link.Destination = []byte(dest)
			}
		}
		return ast.WalkContinue, nil
	})
}

// RewriteMarkdownLink maps "guide/setup.md#install" to "guide/setup.html#install".
// The second result is false when dest is not a relative Markdown link.
func RewriteMarkdownLink(dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "//") {
		return dest, false
	}

	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return dest, false
	}

	p, suffix := dest, ""
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		p, suffix = dest[:i], dest[i:]
	}

	ext := path.Ext(p)
	for _, md := range markdownExtensions {
		if strings.EqualFold(ext, md) {
			return strings.TrimSuffix(p, ext) + ".html" + suffix, true
		}
	}
	return dest, false
}
