package pipeline

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// tocTransformer replaces the section under a "Table of Contents" heading
// with a nested list of links to the headings that follow it.
type tocTransformer struct {
	heading  *regexp.Regexp
	maxDepth int
	ordered  bool
}

// Compile-time interface check.
var _ parser.ASTTransformer = (*tocTransformer)(nil)

func newTOCTransformer(opts TOCOptions) (*tocTransformer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	re, err := compileTOCHeading(opts.Heading)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTOC, err)
	}
	return &tocTransformer{heading: re, maxDepth: opts.MaxDepth, ordered: opts.Ordered}, nil
}

// headingInfo represents a heading collected for the TOC.
type headingInfo struct {
	Level int
	ID    string
	Node  *ast.Heading
}

// Transform implements parser.ASTTransformer.
func (t *tocTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	target := t.findTOCHeading(doc, source)
	if target == nil {
		return
	}

	// The TOC section runs until the next heading of the same or higher rank.
	end := target.NextSibling()
	for end != nil {
		if h, ok := end.(*ast.Heading); ok && h.Level <= target.Level {
			break
		}
		end = end.NextSibling()
	}

	headings := t.collectHeadings(end, source)
	if len(headings) == 0 {
		return
	}

	for n := target.NextSibling(); n != nil && n != end; {
		next := n.NextSibling()
		doc.RemoveChild(doc, n)
		n = next
	}

	doc.InsertAfter(doc, target, t.buildList(headings, source))
}

// findTOCHeading returns the first top-level heading whose text matches.
func (t *tocTransformer) findTOCHeading(doc *ast.Document, source []byte) *ast.Heading {
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		if t.heading.MatchString(string(bytes.TrimSpace(nodeText(h, source)))) {
			return h
		}
	}
	return nil
}

// collectHeadings gathers top-level headings from start onward, up to maxDepth.
// Headings without an ID cannot be linked and are skipped.
func (t *tocTransformer) collectHeadings(start ast.Node, source []byte) []headingInfo {
	var headings []headingInfo
	for n := start; n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > t.maxDepth {
			continue
		}
		id, ok := h.AttributeString("id")
		if !ok {
			continue
		}
		idBytes, ok := id.([]byte)
		if !ok || len(idBytes) == 0 {
			continue
		}
		headings = append(headings, headingInfo{
			Level: h.Level,
			ID:    string(idBytes),
			Node:  h,
		})
	}
	return headings
}

// tocFrame tracks one open list level while nesting entries.
type tocFrame struct {
	level int
	list  *ast.List
	last  *ast.ListItem
}

// buildList nests headings by level. The shallowest level collected becomes
// the outer list; a jump of several levels nests only one step deeper.
func (t *tocTransformer) buildList(headings []headingInfo, source []byte) *ast.List {
	base := headings[0].Level
	for _, h := range headings[1:] {
		base = min(base, h.Level)
	}

	root := t.newList()
	stack := []*tocFrame{{level: base, list: root}}

	for _, h := range headings {
		for len(stack) > 1 && h.Level < stack[len(stack)-1].level {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]
		if h.Level > top.level && top.last != nil {
			child, ok := top.last.LastChild().(*ast.List)
			if !ok {
				child = t.newList()
				top.last.AppendChild(top.last, child)
			}
			top = &tocFrame{level: h.Level, list: child}
			stack = append(stack, top)
		}

		item := ast.NewListItem(0)
		block := ast.NewTextBlock()
		link := ast.NewLink()
		link.Destination = []byte("#" + h.ID)
		appendInlines(link, h.Node, source)
		block.AppendChild(block, link)
		item.AppendChild(item, block)
		top.list.AppendChild(top.list, item)
		top.last = item
	}

	return root
}

func (t *tocTransformer) newList() *ast.List {
	marker := byte('-')
	if t.ordered {
		marker = '.'
	}
	list := ast.NewList(marker)
	list.IsTight = true
	if t.ordered {
		list.Start = 1
	}
	return list
}

// appendInlines copies the inline children of from into to. Links and
// images are flattened to their text since the entry is already a link.
func appendInlines(to, from ast.Node, source []byte) {
	for c := from.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			txt := ast.NewTextSegment(v.Segment)
			txt.SetSoftLineBreak(v.SoftLineBreak())
			txt.SetRaw(v.IsRaw())
			to.AppendChild(to, txt)
		case *ast.String:
			str := ast.NewString(v.Value)
			str.SetCode(v.IsCode())
			str.SetRaw(v.IsRaw())
			to.AppendChild(to, str)
		case *ast.CodeSpan:
			code := ast.NewCodeSpan()
			appendInlines(code, v, source)
			to.AppendChild(to, code)
		case *ast.Emphasis:
			em := ast.NewEmphasis(v.Level)
			appendInlines(em, v, source)
			to.AppendChild(to, em)
		case *east.Strikethrough:
			del := east.NewStrikethrough()
			appendInlines(del, v, source)
			to.AppendChild(to, del)
		case *InlineMath:
			to.AppendChild(to, &InlineMath{Literal: v.Literal, Display: v.Display})
		case *ast.AutoLink:
			to.AppendChild(to, ast.NewString(v.Label(source)))
		case *ast.RawHTML:
			// Dropped.
		default:
			appendInlines(to, v, source)
		}
	}
}

// nodeText returns the plain text of n's inline descendants.
func nodeText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.Bytes()
}
