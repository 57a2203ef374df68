// Package pipeline implements the Markdown-to-HTML page pipeline.
//
// The stages, applied per page:
//   - Markdown preprocessing (line ending normalization)
//   - Front matter splitting (YAML, TOML or JSON block at the top of a file)
//   - Markdown to HTML fragment conversion via Goldmark, configured once from
//     a fixed Features value: GFM extensions, footnotes, table of contents,
//     math, syntax highlighting and Markdown link rewriting
//   - Page shell rendering via html/template
//
// Reading inputs and writing pages is handled by the root md2site package.
package pipeline
