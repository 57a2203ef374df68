package pipeline

import (
	"context"
	"strings"
	"testing"
)

const tocDocument = `# Guide

## Table of Contents

Old entries are replaced.

- stale

## Install

### Linux

#### Packages

##### Too Deep

## Usage
`

func TestTOC_DefaultOptions(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, DefaultFeatures())
	got, err := conv.ToHTML(context.Background(), tocDocument)
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}

	wantContains := []string{
		"<h2 id=\"table-of-contents\">Table of Contents</h2>\n<ol>\n<li><a href=\"#install\">Install</a>",
		`<a href="#linux">Linux</a>`,
		`<a href="#packages">Packages</a>`,
		`<a href="#usage">Usage</a>`,
		`<h5 id="too-deep">Too Deep</h5>`,
	}
	for _, want := range wantContains {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q\ngot:\n%s", want, got)
		}
	}

	wantNot := []string{
		`href="#too-deep"`,
		`href="#guide"`,
		`href="#table-of-contents"`,
		"Old entries are replaced.",
		"stale",
	}
	for _, notWant := range wantNot {
		if strings.Contains(got, notWant) {
			t.Errorf("should not contain %q\ngot:\n%s", notWant, got)
		}
	}

	// Install > Linux > Packages nest three levels deep.
	if n := strings.Count(got, "<ol>"); n != 3 {
		t.Errorf("got %d <ol> lists, want 3\n%s", n, got)
	}
}

func TestTOC_HeadingVariants(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, DefaultFeatures())

	tests := []struct {
		name    string
		heading string
		want    bool
	}{
		{"toc", "TOC", true},
		{"contents", "Contents", true},
		{"content", "content", true},
		{"table of contents", "Table of Contents", true},
		{"hyphenated", "table-of-contents", true},
		{"partial match", "Contents of the box", false},
		{"unrelated", "Overview", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			input := "## " + tt.heading + "\n\n## Next\n"
			got, err := conv.ToHTML(context.Background(), input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			if has := strings.Contains(got, `<a href="#next">Next</a>`); has != tt.want {
				t.Errorf("TOC generated = %v, want %v\ngot:\n%s", has, tt.want, got)
			}
		})
	}
}

func TestTOC_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         TOCOptions
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "unordered",
			opts:         TOCOptions{MaxDepth: 4, Ordered: false},
			input:        "## Contents\n\n## One\n",
			wantContains: []string{"<ul>\n<li><a href=\"#one\">One</a></li>"},
			wantNot:      []string{"<ol>"},
		},
		{
			name:         "depth two",
			opts:         TOCOptions{MaxDepth: 2, Ordered: true},
			input:        "## Contents\n\n## One\n\n### Sub\n",
			wantContains: []string{`<a href="#one">One</a>`},
			wantNot:      []string{`href="#sub"`},
		},
		{
			name:         "custom heading",
			opts:         TOCOptions{MaxDepth: 4, Ordered: true, Heading: "on this page"},
			input:        "## On this page\n\n## One\n",
			wantContains: []string{`<a href="#one">One</a>`},
		},
		{
			name:         "no later headings leaves document unchanged",
			opts:         TOCOptions{MaxDepth: 4, Ordered: true},
			input:        "## Contents\n\nKeep this.\n",
			wantContains: []string{"<p>Keep this.</p>"},
			wantNot:      []string{"<ol>"},
		},
		{
			name:         "section ends at same rank",
			opts:         TOCOptions{MaxDepth: 4, Ordered: true},
			input:        "## Contents\n\nDrop this.\n\n## One\n\nKeep this.\n",
			wantContains: []string{"<p>Keep this.</p>"},
			wantNot:      []string{"Drop this."},
		},
		{
			name:         "skipped levels nest one step",
			opts:         TOCOptions{MaxDepth: 4, Ordered: true},
			input:        "## Contents\n\n## One\n\n#### Deep\n\n### Mid\n",
			wantContains: []string{"<li><a href=\"#one\">One</a>\n<ol>\n<li><a href=\"#deep\">Deep</a></li>\n<li><a href=\"#mid\">Mid</a></li>\n</ol>\n</li>"},
		},
		{
			name:         "inline markup kept",
			opts:         TOCOptions{MaxDepth: 4, Ordered: true},
			input:        "## Contents\n\n## The `run` *command*\n",
			wantContains: []string{`<a href="#the-run-command">The <code>run</code> <em>command</em></a>`},
		},
		{
			name:         "links in headings flattened",
			opts:         TOCOptions{MaxDepth: 4, Ordered: true},
			input:        "## Contents\n\n## See [docs](https://example.com)\n",
			wantContains: []string{`<a href="#see-docshttpsexamplecom">See docs</a>`},
		},
		{
			name:         "heading text escaped",
			opts:         TOCOptions{MaxDepth: 4, Ordered: true},
			input:        "## Contents\n\n## Fish &amp; Chips\n",
			wantContains: []string{">Fish &amp; Chips</a>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := DefaultFeatures()
			f.TOC = &tt.opts
			conv := newTestConverter(t, f)

			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q\ngot:\n%s", want, got)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(got, notWant) {
					t.Errorf("should not contain %q\ngot:\n%s", notWant, got)
				}
			}
		})
	}
}

func TestTOCOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    *TOCOptions
		wantErr bool
	}{
		{"nil", nil, false},
		{"defaults", &TOCOptions{MaxDepth: DefaultTOCDepth}, false},
		{"min depth", &TOCOptions{MaxDepth: MinTOCDepth}, false},
		{"max depth", &TOCOptions{MaxDepth: MaxTOCDepth}, false},
		{"zero depth", &TOCOptions{MaxDepth: 0}, true},
		{"bad pattern", &TOCOptions{MaxDepth: 2, Heading: "[z-a]"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
