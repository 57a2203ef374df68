package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrShellRender indicates the page shell template failed to execute.
var ErrShellRender = errors.New("page shell rendering failed")

// DefaultLang is the document language when none is configured.
const DefaultLang = "en"

// KaTeX assets loaded by pages that contain math.
const (
	katexVersion    = "0.16.11"
	katexStylesheet = "https://cdn.jsdelivr.net/npm/katex@" + katexVersion + "/dist/katex.min.css"
	katexScript     = "https://cdn.jsdelivr.net/npm/katex@" + katexVersion + "/dist/katex.min.js"
)

// PageData holds everything the shell needs to render one document.
type PageData struct {
	Title          string // Escaped by the template
	Lang           string
	Description    string // Omitted when empty
	StylesheetHref string // Omitted when empty
	InlineCSS      string // Embedded as <style>; wins over StylesheetHref
	HasMath        bool
	Body           string // Trusted HTML fragment
}

// PageRenderer defines the contract for wrapping a fragment in a document.
type PageRenderer interface {
	Render(ctx context.Context, data PageData) (string, error)
}

// PageShell renders the fixed HTML5 document around a page body.
// Safe for concurrent use.
type PageShell struct {
	tmpl *template.Template
}

const shellTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8">
<meta http-equiv="X-UA-Compatible" content="IE=edge">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
{{- if .InlineCSS}}
<style>{{.InlineCSS}}</style>
{{- else if .StylesheetHref}}
<link rel="stylesheet" href="{{.StylesheetHref}}">
{{- end}}
{{- if .HasMath}}
<link rel="stylesheet" href="{{.KatexStylesheet}}">
<script defer src="{{.KatexScript}}"></script>
<script>
document.addEventListener("DOMContentLoaded", function () {
  document.querySelectorAll(".math").forEach(function (el) {
    katex.render(el.textContent, el, {
      displayMode: el.classList.contains("math-display"),
      throwOnError: false
    });
  });
});
</script>
{{- end}}
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`

// shellView is PageData with the trusted fields typed for html/template.
type shellView struct {
	Title           string
	Lang            string
	Description     string
	StylesheetHref  string
	InlineCSS       template.CSS
	HasMath         bool
	KatexStylesheet string
	KatexScript     string
	Body            template.HTML
}

// NewPageShell parses the document template.
func NewPageShell() *PageShell {
	return &PageShell{
		tmpl: template.Must(template.New("page").Parse(shellTemplate)),
	}
}

// Render produces the complete HTML document for data.
func (s *PageShell) Render(ctx context.Context, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lang := data.Lang
	if lang == "" {
		lang = DefaultLang
	}

	view := shellView{
		Title:           data.Title,
		Lang:            lang,
		Description:     data.Description,
		StylesheetHref:  data.StylesheetHref,
		InlineCSS:       template.CSS(sanitizeCSS(data.InlineCSS)), // #nosec G203 -- operator-supplied stylesheet
		HasMath:         data.HasMath,
		KatexStylesheet: katexStylesheet,
		KatexScript:     katexScript,
		Body:            template.HTML(data.Body), // #nosec G203 -- converter output
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrShellRender, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
