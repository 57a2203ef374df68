package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds stylesheet flags.
type styleFlags struct {
	name           string
	stylesheet     string
	assetPath      string
	highlightStyle string
	inline         bool
	disabled       bool
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	maxDepth int
	heading  string
	disabled bool
}

// markdownFlags holds flags that switch conversion features off.
type markdownFlags struct {
	noMath      bool
	noHighlight bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common   commonFlags
	output   string
	lang     string
	workers  int
	style    styleFlags
	toc      tocFlags
	markdown markdownFlags

	// Set when the flag appeared on the command line, since 0 is a
	// meaningful worker count.
	workersSet bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors, no warnings")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "list created files with timing")
}

// addStyleFlags adds stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.name, "style", "s", "", "style name or CSS file path")
	fs.StringVar(&f.stylesheet, "stylesheet", "", "stylesheet href relative to the output root, or a URL")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks")
	fs.BoolVar(&f.inline, "inline-style", false, "embed the stylesheet in every page")
	fs.BoolVar(&f.disabled, "no-style", false, "emit pages without a stylesheet")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.IntVar(&f.maxDepth, "toc-depth", 0, "max heading depth for TOC (1-6, default: 4)")
	fs.StringVar(&f.heading, "toc-heading", "", "pattern for the heading that receives the TOC")
	fs.BoolVar(&f.disabled, "no-toc", false, "disable table of contents")
}

// addMarkdownFlags adds feature switches to a FlagSet.
func addMarkdownFlags(fs *flag.FlagSet, f *markdownFlags) {
	fs.BoolVar(&f.noMath, "no-math", false, "disable TeX math")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable syntax highlighting")
}

// parseBuildFlags parses build command flags and returns positional args.
// Usage is printed to usage on a parse error or -h.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &buildFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel page builds (0 = auto)")
	fs.StringVar(&f.lang, "lang", "", "lang attribute of every page")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addTOCFlags(fs, &f.toc)
	addMarkdownFlags(fs, &f.markdown)

	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	f.workersSet = fs.Changed("workers")

	return f, fs.Args(), nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, usage io.Writer) (*commonFlags, []string, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &commonFlags{}
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")

	fs.Usage = func() { printConfigUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, flagError(err)
	}
	return f, fs.Args(), nil
}

// flagError marks parse failures as usage errors. flag.ErrHelp passes
// through so -h exits cleanly.
func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidFlags, err)
}
