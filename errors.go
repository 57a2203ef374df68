package md2site

import (
	"errors"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Discovery and I/O errors.
	ErrReadDirectory   = errors.New("cannot read directory")
	ErrReadMarkdown    = errors.New("cannot read markdown file")
	ErrInvalidEncoding = errors.New("markdown file is not valid UTF-8")
	ErrWriteHTML       = errors.New("cannot write HTML file")
	ErrWriteStylesheet = errors.New("cannot write stylesheet")
	ErrCreateOutputDir = errors.New("cannot create output directory")

	// Conversion errors.
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrPageRender     = pipeline.ErrShellRender

	// Option validation errors.
	ErrInvalidWorkers    = errors.New("invalid worker count")
	ErrInvalidTOC        = pipeline.ErrInvalidTOC
	ErrInvalidStylesheet = errors.New("invalid stylesheet href")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
