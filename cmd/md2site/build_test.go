package main

// Notes:
// - mergeFlags: we test that only flags present on the command line change
//   the config, and that style switches clear each other.
// - builderOptions is exercised end to end through runBuild, since options
//   are opaque functions.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/config"
)

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI over config precedence
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "no flags keeps defaults",
			args: nil,
			check: func(t *testing.T, cfg *config.Config) {
				if *cfg != *config.DefaultConfig() {
					t.Errorf("config changed: %+v", *cfg)
				}
			},
		},
		{
			name: "positional input and output",
			args: []string{"docs", "dist"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Input.Dir != "docs" || cfg.Output.Dir != "dist" {
					t.Errorf("dirs = %q, %q; want docs, dist", cfg.Input.Dir, cfg.Output.Dir)
				}
			},
		},
		{
			name: "output flag",
			args: []string{"-o", "site", "docs"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Input.Dir != "docs" || cfg.Output.Dir != "site" {
					t.Errorf("dirs = %q, %q; want docs, site", cfg.Input.Dir, cfg.Output.Dir)
				}
			},
		},
		{
			name: "explicit zero workers",
			args: []string{"--workers", "0"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Build.Workers != 0 {
					t.Errorf("Build.Workers = %d, want 0", cfg.Build.Workers)
				}
			},
		},
		{
			name: "no-style clears inline",
			args: []string{"--no-style"},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.Style.Disabled || cfg.Style.Inline {
					t.Errorf("Style = %+v, want disabled", cfg.Style)
				}
			},
		},
		{
			name: "style flags",
			args: []string{"-s", "minimal", "--stylesheet", "css/site.css", "--asset-path", "theme", "--highlight-style", "monokai", "--inline-style"},
			check: func(t *testing.T, cfg *config.Config) {
				want := config.StyleConfig{
					Name:           "minimal",
					Stylesheet:     "css/site.css",
					Inline:         true,
					HighlightStyle: "monokai",
				}
				if cfg.Style != want {
					t.Errorf("Style = %+v, want %+v", cfg.Style, want)
				}
				if cfg.Assets.BasePath != "theme" {
					t.Errorf("Assets.BasePath = %q, want theme", cfg.Assets.BasePath)
				}
			},
		},
		{
			name: "toc flags",
			args: []string{"--toc-depth", "2", "--toc-heading", "(?i)^overview$"},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.TOC.Enabled || cfg.TOC.MaxDepth != 2 || cfg.TOC.Heading != "(?i)^overview$" {
					t.Errorf("TOC = %+v", cfg.TOC)
				}
			},
		},
		{
			name: "feature switches",
			args: []string{"--no-toc", "--no-math", "--no-highlight", "--lang", "fr"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.TOC.Enabled || cfg.Markdown.Math || cfg.Markdown.Highlight {
					t.Errorf("features still on: toc=%v math=%v highlight=%v",
						cfg.TOC.Enabled, cfg.Markdown.Math, cfg.Markdown.Highlight)
				}
				if cfg.Page.Lang != "fr" {
					t.Errorf("Page.Lang = %q, want fr", cfg.Page.Lang)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			flags, positional, err := parseBuildFlags(tt.args, &strings.Builder{})
			if err != nil {
				t.Fatalf("parseBuildFlags: %v", err)
			}
			cfg := config.DefaultConfig()
			mergeFlags(flags, positional, cfg)
			tt.check(t, cfg)
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseBuildFlags_Errors - Invalid command lines
// ---------------------------------------------------------------------------

func TestParseBuildFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--watch"}},
		{"non-numeric workers", []string{"-w", "many"}},
		{"missing value", []string{"--output"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := parseBuildFlags(tt.args, &strings.Builder{})
			if !errors.Is(err, ErrInvalidFlags) {
				t.Errorf("error = %v, want ErrInvalidFlags", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveWorkers - Auto worker count
// ---------------------------------------------------------------------------

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	if got := resolveWorkers(3); got != 3 {
		t.Errorf("resolveWorkers(3) = %d, want 3", got)
	}

	want := min(runtime.GOMAXPROCS(0), config.MaxWorkers)
	if got := resolveWorkers(0); got != want {
		t.Errorf("resolveWorkers(0) = %d, want %d", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Config selection
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("no name returns defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadConfig("", &envConfig{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *cfg != *config.DefaultConfig() {
			t.Errorf("expected default config, got %+v", *cfg)
		}
	})

	t.Run("environment names the file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "site.yaml")
		if err := os.WriteFile(path, []byte("page:\n  lang: de\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := loadConfig("", &envConfig{ConfigPath: path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Page.Lang != "de" {
			t.Errorf("Page.Lang = %q, want de", cfg.Page.Lang)
		}
	})

	t.Run("missing named config carries hint", func(t *testing.T) {
		t.Parallel()
		_, err := loadConfig("no-such-config-for-tests", &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("expected hint in %q", err.Error())
		}
	})

	t.Run("missing config path has no hint", func(t *testing.T) {
		t.Parallel()
		_, err := loadConfig(filepath.Join(t.TempDir(), "gone.yaml"), &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if strings.Contains(err.Error(), "hint:") {
			t.Errorf("unexpected hint in %q", err.Error())
		}
	})
}

// ---------------------------------------------------------------------------
// TestWithHint - Actionable error messages
// ---------------------------------------------------------------------------

func TestWithHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint bool
	}{
		{"read directory", md2site.ErrReadDirectory, true},
		{"create output dir", md2site.ErrCreateOutputDir, true},
		{"write html", md2site.ErrWriteHTML, true},
		{"style not found", md2site.ErrStyleNotFound, true},
		{"invalid workers", md2site.ErrInvalidWorkers, true},
		{"invalid encoding", md2site.ErrInvalidEncoding, true},
		{"unrelated", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := withHint(tt.err, config.DefaultConfig())
			if !errors.Is(got, tt.err) {
				t.Errorf("withHint lost the wrapped error: %v", got)
			}
			if has := strings.Contains(got.Error(), "hint:"); has != tt.wantHint {
				t.Errorf("hint present = %v, want %v (%q)", has, tt.wantHint, got.Error())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunBuild - End to end
// ---------------------------------------------------------------------------

func TestRunBuild(t *testing.T) {
	t.Parallel()

	t.Run("builds tree with default style", func(t *testing.T) {
		t.Parallel()
		in, out := t.TempDir(), filepath.Join(t.TempDir(), "public")
		writeTree(t, in, map[string]string{
			"index.md":                 "# Home\n\nSee [guide](guide/getting_started.md).\n",
			"guide/getting_started.md": "Start here.\n",
		})
		env := newTestEnv(nil)

		if err := runBuild(context.Background(), []string{in, out}, env.Environment); err != nil {
			t.Fatalf("runBuild: %v", err)
		}

		index := readFile(t, out, "index.html")
		if !strings.Contains(index, "<title>Index</title>") {
			t.Errorf("index.html missing title: %s", index)
		}
		if !strings.Contains(index, `href="guide/getting_started.html"`) {
			t.Errorf("index.html link not rewritten: %s", index)
		}
		guide := readFile(t, out, "guide/getting_started.html")
		if !strings.Contains(guide, `href="../style.css"`) {
			t.Errorf("nested page should link ../style.css: %s", guide)
		}
		if css := readFile(t, out, "style.css"); css == "" {
			t.Error("style.css is empty")
		}
		if env.stdout.Len() != 0 || env.stderr.Len() != 0 {
			t.Errorf("successful build printed stdout=%q stderr=%q", env.stdout.String(), env.stderr.String())
		}
	})

	t.Run("verbose lists created files", func(t *testing.T) {
		t.Parallel()
		in, out := t.TempDir(), t.TempDir()
		writeTree(t, in, map[string]string{"a.md": "a\n"})
		env := newTestEnv(nil)

		if err := runBuild(context.Background(), []string{"-v", in, out}, env.Environment); err != nil {
			t.Fatalf("runBuild: %v", err)
		}
		got := env.stdout.String()
		for _, want := range []string{"Created " + filepath.Join(out, "a.html"), "Created " + filepath.Join(out, "style.css"), "1 built, 0 failed"} {
			if !strings.Contains(got, want) {
				t.Errorf("verbose output missing %q, got %q", want, got)
			}
		}
	})

	t.Run("quiet hides warnings", func(t *testing.T) {
		t.Parallel()
		in, out := t.TempDir(), t.TempDir()
		writeTree(t, in, map[string]string{"a.md": "a\n"})
		env := newTestEnv(map[string]string{"MD2SITE_OUTPUT": "typo"})

		if err := runBuild(context.Background(), []string{"-q", in, out}, env.Environment); err != nil {
			t.Fatalf("runBuild: %v", err)
		}
		if env.stdout.Len() != 0 || env.stderr.Len() != 0 {
			t.Errorf("quiet build printed stdout=%q stderr=%q", env.stdout.String(), env.stderr.String())
		}
	})

	t.Run("environment supplies directories", func(t *testing.T) {
		t.Parallel()
		in, out := t.TempDir(), t.TempDir()
		writeTree(t, in, map[string]string{"notes.md": "n\n"})
		env := newTestEnv(map[string]string{
			"MD2SITE_INPUT_DIR":  in,
			"MD2SITE_OUTPUT_DIR": out,
			"MD2SITE_WORKERS":    "2",
		})

		if err := runBuild(context.Background(), []string{"--no-style"}, env.Environment); err != nil {
			t.Fatalf("runBuild: %v", err)
		}
		page := readFile(t, out, "notes.html")
		if strings.Contains(page, "stylesheet") {
			t.Errorf("--no-style page links a stylesheet: %s", page)
		}
		if _, err := os.Stat(filepath.Join(out, "style.css")); !os.IsNotExist(err) {
			t.Errorf("style.css written with --no-style (stat err %v)", err)
		}
	})

	t.Run("missing input directory", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(nil)
		missing := filepath.Join(t.TempDir(), "missing")

		err := runBuild(context.Background(), []string{missing, t.TempDir()}, env.Environment)
		if !errors.Is(err, md2site.ErrReadDirectory) {
			t.Fatalf("error = %v, want ErrReadDirectory", err)
		}
		if exitCodeFor(err) != ExitIO {
			t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitIO)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("expected hint in %q", err.Error())
		}
	})

	t.Run("argument errors", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			args []string
			want error
		}{
			{[]string{"a", "b", "c"}, ErrTooManyArgs},
			{[]string{"-o", "x", "a", "b"}, ErrConflictingArgs},
			{[]string{"--inline-style", "--no-style"}, ErrConflictingArgs},
			{[]string{"--toc-depth", "9"}, config.ErrInvalidValue},
			{[]string{"-w", "-1"}, config.ErrInvalidValue},
			{[]string{"--style", "no-such-style", t.TempDir(), t.TempDir()}, md2site.ErrStyleNotFound},
		}
		for _, tt := range tests {
			env := newTestEnv(nil)
			err := runBuild(context.Background(), tt.args, env.Environment)
			if !errors.Is(err, tt.want) {
				t.Errorf("runBuild(%q) error = %v, want %v", tt.args, err, tt.want)
			}
		}
	})
}
