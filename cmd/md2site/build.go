package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidFlags    = errors.New("invalid flags")
	ErrTooManyArgs     = errors.New("too many arguments")
	ErrConflictingArgs = errors.New("conflicting arguments")
)

// runBuild builds the site described by flags, environment and config.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 2 {
		return fmt.Errorf("%w: expected [input] [output], got %d arguments", ErrTooManyArgs, len(positional))
	}
	if len(positional) == 2 && flags.output != "" {
		return fmt.Errorf("%w: output given both as argument and --output", ErrConflictingArgs)
	}
	if flags.style.inline && flags.style.disabled {
		return fmt.Errorf("%w: --inline-style and --no-style", ErrConflictingArgs)
	}

	envCfg := loadEnvConfig(env.Getenv)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, positional, cfg)
	if err := cfg.Validate(); err != nil {
		return withHint(err, cfg)
	}
	cfg.Build.Workers = resolveWorkers(cfg.Build.Workers)

	// Directories are resolved once and passed down from here.
	input, output := cfg.Input.Dir, cfg.Output.Dir

	builder, err := md2site.NewBuilder(builderOptions(cfg)...)
	if err != nil {
		return withHint(err, cfg)
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Building %s -> %s (%d workers)\n", input, output, cfg.Build.Workers)
	}

	report, err := builder.BuildSite(ctx, input, output)
	printReport(report, flags.common.verbose, env)
	if err != nil {
		return withHint(err, cfg)
	}
	return nil
}

// loadConfig loads the config named by the flag or MD2SITE_CONFIG, or the
// defaults when neither is set.
func loadConfig(name string, envCfg *envConfig) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		err = fmt.Errorf("loading config: %w", err)
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies explicitly set flags and positional arguments to cfg
// (CLI wins).
func mergeFlags(f *buildFlags, positional []string, cfg *config.Config) {
	if len(positional) > 0 {
		cfg.Input.Dir = positional[0]
	}
	if len(positional) > 1 {
		cfg.Output.Dir = positional[1]
	}
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	if f.lang != "" {
		cfg.Page.Lang = f.lang
	}
	if f.workersSet {
		cfg.Build.Workers = f.workers
	}

	// Style
	if f.style.name != "" {
		cfg.Style.Name = f.style.name
		cfg.Style.Disabled = false
	}
	if f.style.stylesheet != "" {
		cfg.Style.Stylesheet = f.style.stylesheet
	}
	if f.style.assetPath != "" {
		cfg.Assets.BasePath = f.style.assetPath
	}
	if f.style.highlightStyle != "" {
		cfg.Style.HighlightStyle = f.style.highlightStyle
	}
	if f.style.inline {
		cfg.Style.Inline = true
		cfg.Style.Disabled = false
	}
	if f.style.disabled {
		cfg.Style.Disabled = true
		cfg.Style.Inline = false
	}

	// TOC
	if f.toc.maxDepth != 0 {
		cfg.TOC.MaxDepth = f.toc.maxDepth
	}
	if f.toc.heading != "" {
		cfg.TOC.Heading = f.toc.heading
	}
	if f.toc.disabled {
		cfg.TOC.Enabled = false
	}

	// Markdown features
	if f.markdown.noMath {
		cfg.Markdown.Math = false
	}
	if f.markdown.noHighlight {
		cfg.Markdown.Highlight = false
	}
}

// resolveWorkers maps 0 to one worker per available CPU, as reported by
// GOMAXPROCS, capped at config.MaxWorkers.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	return min(runtime.GOMAXPROCS(0), config.MaxWorkers)
}

// builderOptions translates a validated config into builder options.
func builderOptions(cfg *config.Config) []md2site.Option {
	features := md2site.Features{
		Tables:        cfg.Markdown.Tables,
		Strikethrough: cfg.Markdown.Strikethrough,
		Autolinks:     cfg.Markdown.Autolinks,
		TaskLists:     cfg.Markdown.TaskLists,
		Footnotes:     cfg.Markdown.Footnotes,
		FrontMatter:   cfg.Markdown.FrontMatter,
		Math:          cfg.Markdown.Math,
		Highlight:     cfg.Markdown.Highlight,
		MarkdownLinks: cfg.Markdown.RewriteLinks,
		RawHTML:       cfg.Markdown.RawHTML,
	}
	if cfg.TOC.Enabled {
		features.TOC = &md2site.TOC{
			MaxDepth: cfg.TOC.MaxDepth,
			Ordered:  cfg.TOC.Ordered,
			Heading:  cfg.TOC.Heading,
		}
	}

	opts := []md2site.Option{
		md2site.WithFeatures(features),
		md2site.WithWorkers(cfg.Build.Workers),
	}
	if cfg.Page.Lang != "" {
		opts = append(opts, md2site.WithLang(cfg.Page.Lang))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2site.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Style.HighlightStyle != "" {
		opts = append(opts, md2site.WithHighlightStyle(cfg.Style.HighlightStyle))
	}

	switch {
	case cfg.Style.Disabled:
		opts = append(opts, md2site.WithoutStyle())
	case cfg.Style.Inline:
		opts = append(opts, md2site.WithInlineStyle())
	}
	if cfg.Style.Name != "" && !cfg.Style.Disabled {
		opts = append(opts, md2site.WithStyle(cfg.Style.Name))
	}
	if cfg.Style.Stylesheet != "" {
		opts = append(opts, md2site.WithStylesheet(cfg.Style.Stylesheet))
	}
	return opts
}

// withHint appends an actionable hint for errors users can fix.
func withHint(err error, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, md2site.ErrReadDirectory):
		hint = hints.ForInputDirectory()
	case errors.Is(err, md2site.ErrCreateOutputDir),
		errors.Is(err, md2site.ErrWriteHTML),
		errors.Is(err, md2site.ErrWriteStylesheet):
		hint = hints.ForOutputDirectory()
	case errors.Is(err, md2site.ErrStyleNotFound):
		hint = hints.ForStyleNotFound(availableStyles(cfg.Assets.BasePath))
	case errors.Is(err, md2site.ErrInvalidWorkers):
		hint = hints.ForWorkers(config.MaxWorkers)
	case errors.Is(err, md2site.ErrInvalidEncoding):
		hint = hints.ForInvalidEncoding()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// availableStyles lists the style names the build could have used.
func availableStyles(assetPath string) []string {
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return assets.AvailableStyles()
	}
	return resolver.Available()
}

// printReport writes failed pages to stderr. A successful build prints
// nothing unless verbose is set.
func printReport(report *md2site.Report, verbose bool, env *Environment) {
	if report == nil {
		return
	}

	for _, r := range report.Results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s\n", r.InputPath)
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "Created %s (%v)\n", r.OutputPath, r.Duration.Round(time.Millisecond))
		}
	}

	if !verbose {
		return
	}
	if report.Stylesheet != "" {
		fmt.Fprintf(env.Stdout, "Created %s\n", report.Stylesheet)
	}
	fmt.Fprintf(env.Stdout, "\n%d built, %d failed in %v\n",
		report.Succeeded(), report.Failed(), report.Duration.Round(time.Millisecond))
}
