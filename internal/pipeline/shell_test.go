package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPageShell_Render(t *testing.T) {
	t.Parallel()

	shell := NewPageShell()

	tests := []struct {
		name         string
		data         PageData
		wantContains []string
		wantNot      []string
	}{
		{
			name: "document skeleton",
			data: PageData{Title: "Hello World", Body: "<p>Hi</p>\n"},
			wantContains: []string{
				"<!DOCTYPE html>\n<html lang=\"en\">",
				`<meta charset="UTF-8">`,
				`<meta http-equiv="X-UA-Compatible" content="IE=edge">`,
				`<meta name="viewport" content="width=device-width, initial-scale=1.0">`,
				"<title>Hello World</title>",
				"<body>\n<p>Hi</p>\n",
				"</html>",
			},
			wantNot: []string{"<link", "<style>", "description", "katex"},
		},
		{
			name:         "title escaped",
			data:         PageData{Title: "A <b> & C"},
			wantContains: []string{"<title>A &lt;b&gt; &amp; C</title>"},
		},
		{
			name:         "body not escaped",
			data:         PageData{Body: `<div class="raw">x</div>`},
			wantContains: []string{`<div class="raw">x</div>`},
		},
		{
			name:         "language",
			data:         PageData{Lang: "fr"},
			wantContains: []string{`<html lang="fr">`},
		},
		{
			name:         "description",
			data:         PageData{Description: "About this page"},
			wantContains: []string{`<meta name="description" content="About this page">`},
		},
		{
			name:         "stylesheet link",
			data:         PageData{StylesheetHref: "../style.css"},
			wantContains: []string{`<link rel="stylesheet" href="../style.css">`},
		},
		{
			name:         "inline style wins",
			data:         PageData{StylesheetHref: "style.css", InlineCSS: "body { color: red; }"},
			wantContains: []string{"<style>body { color: red; }</style>"},
			wantNot:      []string{`href="style.css"`},
		},
		{
			name:         "inline style sanitized",
			data:         PageData{InlineCSS: "p{}</style><script>alert(1)</script>"},
			wantContains: []string{`<\/style>`},
			wantNot:      []string{"</style><script>"},
		},
		{
			name:         "math assets",
			data:         PageData{HasMath: true},
			wantContains: []string{"katex.min.css", "katex.min.js", "katex.render"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := shell.Render(context.Background(), tt.data)
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Render() missing %q\ngot:\n%s", want, got)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(got, notWant) {
					t.Errorf("Render() should not contain %q\ngot:\n%s", notWant, got)
				}
			}
		})
	}
}

func TestPageShell_Render_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPageShell().Render(ctx, PageData{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "body{margin:0}", "body{margin:0}"},
		{"closing tag", "a</style>b", `a<\/style>b`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeCSS(tt.input); got != tt.want {
				t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
