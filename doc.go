// Package md2site builds a static site from a directory tree of Markdown files.
//
// # Quick Start
//
// Create a builder and build a whole tree:
//
//	b, err := md2site.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := b.BuildSite(ctx, "markdown", "public")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(report.Results), "pages written")
//
// Every regular file below the input root becomes one HTML page at the
// mirrored path below the output root, with its extension replaced by .html:
//
//	markdown/hello_world.md        -> public/hello_world.html   ("Hello World")
//	markdown/guide/getting_started -> public/guide/getting_started.html
//
// # Page Pipeline
//
// Each page goes through these stages:
//
//  1. Read the file and check it is valid UTF-8
//  2. Normalize line endings and split off front matter
//  3. Markdown to HTML conversion via Goldmark (GFM, footnotes, table of
//     contents, math, syntax highlighting, Markdown link rewriting)
//  4. Wrap the fragment in the HTML5 page shell with the formatted title
//  5. Write the document, creating parent directories as needed
//
// The set of conversion features is fixed when the Builder is created;
// no per-file configuration is read.
//
// # Configuration
//
// Use functional options to customize the builder:
//
//	b, err := md2site.NewBuilder(
//	    md2site.WithStyle("minimal"),
//	    md2site.WithLang("fr"),
//	    md2site.WithWorkers(4),
//	)
//
// # Titles
//
// Page titles are derived from file names by FormatTitle: the extension is
// removed, the name is split on spaces and underscores and each word gets an
// upper-case first letter.
//
// # Error Handling
//
// Errors wrap sentinel values so callers can branch with errors.Is:
//
//	if errors.Is(err, md2site.ErrReadDirectory) {
//	    // input root missing or unreadable
//	}
//
// The first failing page stops the build.
package md2site
