package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Node kinds for math.
var (
	KindInlineMath = ast.NewNodeKind("InlineMath")
	KindMathBlock  = ast.NewNodeKind("MathBlock")
)

// InlineMath is TeX delimited by $ or $$ inside a paragraph.
type InlineMath struct {
	ast.BaseInline
	Literal []byte
	Display bool // $$...$$
}

// Kind implements ast.Node.
func (n *InlineMath) Kind() ast.NodeKind { return KindInlineMath }

// Dump implements ast.Node.
func (n *InlineMath) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Literal": string(n.Literal)}, nil)
}

// MathBlock is TeX between $$ lines.
type MathBlock struct {
	ast.BaseBlock
	closed bool // opened and closed on the same line
}

// Kind implements ast.Node.
func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }

// IsRaw implements ast.Node.
func (n *MathBlock) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

var mathDelimiter = []byte("$$")

// ----------------------------------------------------------------------------
// Inline parser
// ----------------------------------------------------------------------------

type inlineMathParser struct{}

func (p *inlineMathParser) Trigger() []byte {
	return []byte{'$'}
}

// Parse follows the dollar rules used by Pandoc: the opener is not followed
// by whitespace and a single-dollar closer is neither preceded by whitespace
// nor followed by a digit, so prices like "$5 and $10" remain text.
func (p *inlineMathParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()

	opener := 0
	for opener < len(line) && line[opener] == '$' {
		opener++
	}
	if opener > 2 || opener >= len(line) || util.IsSpace(line[opener]) {
		return nil
	}

	for i := opener; i < len(line); {
		switch line[i] {
		case '\\':
			i += 2
			continue
		case '$':
		default:
			i++
			continue
		}

		j := i
		for j < len(line) && line[j] == '$' {
			j++
		}
		if j-i != opener || util.IsSpace(line[i-1]) {
			i = j
			continue
		}
		if opener == 1 && j < len(line) && isASCIIDigit(line[j]) {
			i = j
			continue
		}

		node := &InlineMath{
			Literal: append([]byte(nil), line[opener:i]...),
			Display: opener == 2,
		}
		block.Advance(j)
		return node
	}
	return nil
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ----------------------------------------------------------------------------
// Block parser
// ----------------------------------------------------------------------------

type mathBlockParser struct{}

func (b *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (b *mathBlockParser) Open(_ ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.HasPrefix(line[pos:], mathDelimiter) {
		return nil, parser.NoChildren
	}

	node := &MathBlock{}
	rest := util.TrimRightSpace(line[pos+len(mathDelimiter):])

	// $$ ... $$ on one line.
	if len(rest) >= len(mathDelimiter) && bytes.HasSuffix(rest, mathDelimiter) {
		start := segment.Start + pos + len(mathDelimiter)
		node.Lines().Append(text.NewSegment(start, start+len(rest)-len(mathDelimiter)))
		node.closed = true
		return node, parser.NoChildren
	}

	// Text after the opening $$ is meta and is not rendered. A dollar in it
	// means inline math, and a fence that is never closed stays a paragraph.
	if bytes.IndexByte(rest, '$') >= 0 || !hasClosingFence(reader.Source()[segment.Stop:]) {
		return nil, parser.NoChildren
	}
	return node, parser.NoChildren
}

// hasClosingFence reports whether src has a line that is only $$, ignoring
// indentation and blockquote markers.
func hasClosingFence(src []byte) bool {
	for len(src) > 0 {
		line := src
		if i := bytes.IndexByte(src, '\n'); i >= 0 {
			line, src = src[:i], src[i+1:]
		} else {
			src = nil
		}
		line = bytes.TrimLeft(line, " \t>")
		if bytes.HasPrefix(line, mathDelimiter) && util.IsBlank(line[len(mathDelimiter):]) {
			return true
		}
	}
	return false
}

func (b *mathBlockParser) Continue(node ast.Node, reader text.Reader, _ parser.Context) parser.State {
	if node.(*MathBlock).closed {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w < 4 && bytes.HasPrefix(line[pos:], mathDelimiter) && util.IsBlank(line[pos+len(mathDelimiter):]) {
		reader.Advance(segment.Len() - 1)
		return parser.Close
	}

	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(_ ast.Node, _ text.Reader, _ parser.Context) {}

func (b *mathBlockParser) CanInterruptParagraph() bool {
	return true
}

func (b *mathBlockParser) CanAcceptIndentedLine() bool {
	return false
}

// ----------------------------------------------------------------------------
// Renderer
// ----------------------------------------------------------------------------

// mathRenderer writes TeX escaped into elements KaTeX renders client side.
type mathRenderer struct{}

func (r *mathRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindInlineMath, r.renderInline)
	reg.Register(KindMathBlock, r.renderBlock)
}

func (r *mathRenderer) renderInline(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*InlineMath)
	class := "math math-inline"
	if n.Display {
		class = "math math-display"
	}
	_, _ = w.WriteString(`<span class="` + class + `">`)
	_, _ = w.Write(util.EscapeHTML(n.Literal))
	_, _ = w.WriteString("</span>")
	return ast.WalkSkipChildren, nil
}

func (r *mathRenderer) renderBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	var tex bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		tex.Write(seg.Value(source))
	}
	_, _ = w.WriteString(`<div class="math math-display">`)
	_, _ = w.Write(util.EscapeHTML(bytes.TrimSpace(tex.Bytes())))
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

// ----------------------------------------------------------------------------
// Extender
// ----------------------------------------------------------------------------

type mathExtension struct{}

// Math is a goldmark extension for $inline$ and $$display$$ TeX.
var Math goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 150)),
		parser.WithInlineParsers(util.Prioritized(&inlineMathParser{}, 150)),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(util.Prioritized(&mathRenderer{}, 500)),
	)
}

// containsMath reports whether doc has a math node.
func containsMath(doc ast.Node) bool {
	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && (n.Kind() == KindInlineMath || n.Kind() == KindMathBlock) {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}
