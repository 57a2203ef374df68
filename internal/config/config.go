package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory below the user config directory searched for
// named configs.
const AppDir = "go-md2site"

// Default directories, relative to the working directory.
const (
	DefaultInputDir  = "markdown"
	DefaultOutputDir = "public"
)

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxStyleLength     = 100
	MaxLangLength      = 35 // BCP 47 tags rarely exceed this
	MaxTOCHeadingLen   = 200
	MaxHighlightLength = 50
	MaxWorkers         = 64
)

// langTag is a loose BCP 47 shape check: "en", "pt-BR", "zh-Hant-TW".
var langTag = regexp.MustCompile(`^[A-Za-z]{2,8}(-[A-Za-z0-9]{1,8})*$`)

// Config holds all configuration for a site build.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Style    StyleConfig    `yaml:"style"`
	Assets   AssetsConfig   `yaml:"assets"`
	Page     PageConfig     `yaml:"page"`
	Markdown MarkdownConfig `yaml:"markdown"`
	TOC      TOCConfig      `yaml:"toc"`
	Build    BuildConfig    `yaml:"build"`
}

// InputConfig defines the Markdown source tree.
type InputConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig defines where pages are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// StyleConfig defines the site stylesheet.
type StyleConfig struct {
	Name           string `yaml:"name"`           // Built-in style name or CSS file path (empty = link only)
	Stylesheet     string `yaml:"stylesheet"`     // Href relative to the output root, or a URL
	Inline         bool   `yaml:"inline"`         // Embed the CSS in every page
	Disabled       bool   `yaml:"disabled"`       // No stylesheet at all
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style for code blocks
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PageConfig defines page shell options.
type PageConfig struct {
	Lang string `yaml:"lang"`
}

// MarkdownConfig toggles conversion features.
type MarkdownConfig struct {
	Tables        bool `yaml:"tables"`
	Strikethrough bool `yaml:"strikethrough"`
	Autolinks     bool `yaml:"autolinks"`
	TaskLists     bool `yaml:"taskLists"`
	Footnotes     bool `yaml:"footnotes"`
	FrontMatter   bool `yaml:"frontMatter"`
	Math          bool `yaml:"math"`
	Highlight     bool `yaml:"highlight"`
	RewriteLinks  bool `yaml:"rewriteLinks"`
	RawHTML       bool `yaml:"rawHTML"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	MaxDepth int    `yaml:"maxDepth"` // 1-6, default 4
	Ordered  bool   `yaml:"ordered"`
	Heading  string `yaml:"heading"` // Regular expression for the heading text
}

// BuildConfig defines build execution options.
type BuildConfig struct {
	Workers int `yaml:"workers"` // 0 = one per CPU, 1 = sequential
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.dir", c.Input.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"style.name", c.Style.Name, MaxPathLength},
		{"style.stylesheet", c.Style.Stylesheet, MaxPathLength},
		{"style.highlightStyle", c.Style.HighlightStyle, MaxHighlightLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"page.lang", c.Page.Lang, MaxLangLength},
		{"toc.heading", c.TOC.Heading, MaxTOCHeadingLen},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	// Style names are short; paths may be long.
	if !fileutil.IsFilePath(c.Style.Name) {
		if err := validateFieldLength("style.name", c.Style.Name, MaxStyleLength); err != nil {
			return err
		}
	}

	if c.Style.Disabled && c.Style.Inline {
		return fmt.Errorf("%w: style.inline and style.disabled are mutually exclusive", ErrInvalidValue)
	}
	if c.Style.HighlightStyle != "" && !assets.HasHighlightStyle(c.Style.HighlightStyle) {
		return fmt.Errorf("%w: style.highlightStyle: unknown style %q", ErrInvalidValue, c.Style.HighlightStyle)
	}

	if c.Page.Lang != "" && !langTag.MatchString(c.Page.Lang) {
		return fmt.Errorf("%w: page.lang: %q is not a language tag", ErrInvalidValue, c.Page.Lang)
	}

	if c.TOC.Enabled {
		if c.TOC.MaxDepth < 1 || c.TOC.MaxDepth > 6 {
			return fmt.Errorf("%w: toc.maxDepth: must be between 1 and 6, got %d", ErrInvalidValue, c.TOC.MaxDepth)
		}
		if _, err := regexp.Compile(c.TOC.Heading); err != nil {
			return fmt.Errorf("%w: toc.heading: %v", ErrInvalidValue, err)
		}
	}

	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// markdown/ into public/, the default style, every Markdown feature on and
// a depth-4 ordered table of contents.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Dir: DefaultInputDir},
		Output: OutputConfig{Dir: DefaultOutputDir},
		Style: StyleConfig{
			Name:           assets.DefaultStyleName,
			Stylesheet:     "style.css",
			HighlightStyle: assets.DefaultHighlightStyle,
		},
		Page: PageConfig{Lang: "en"},
		Markdown: MarkdownConfig{
			Tables:        true,
			Strikethrough: true,
			Autolinks:     true,
			TaskLists:     true,
			Footnotes:     true,
			FrontMatter:   true,
			Math:          true,
			Highlight:     true,
			RewriteLinks:  true,
			RawHTML:       true,
		},
		TOC: TOCConfig{
			Enabled:  true,
			MaxDepth: 4,
			Ordered:  true,
			Heading:  `toc|(table[ -]of[ -])?contents?`,
		},
		Build: BuildConfig{Workers: 1},
	}
}

// Marshal renders c as YAML, the format LoadConfig reads.
func (c *Config) Marshal() ([]byte, error) {
	return yamlutil.Marshal(c)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files resolveConfigPath tries for name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2site/
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
