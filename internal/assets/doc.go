// Package assets provides the stylesheets linked from generated pages.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader ships the built-in styles (default, minimal).
// FilesystemLoader reads {basePath}/styles/{name}.css with path traversal
// protection and symlink resolution. AssetResolver tries the custom loader
// first and falls back to the embedded one when a style is not found.
//
// HighlightCSS renders the chroma stylesheet for highlighted code blocks so it
// can be appended to the emitted site stylesheet.
package assets
