package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-md2site/internal/config"
)

// envPrefix is shared by every variable the CLI reads.
const envPrefix = "MD2SITE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2SITE_CONFIG: config file name or path
	InputDir   string // MD2SITE_INPUT_DIR: Markdown source tree
	OutputDir  string // MD2SITE_OUTPUT_DIR: HTML output tree
	Style      string // MD2SITE_STYLE: style name or CSS path
	Workers    int    // MD2SITE_WORKERS: parallel page builds, -1 when unset
}

// knownEnvVars lists valid MD2SITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2SITE_CONFIG":     true,
	"MD2SITE_INPUT_DIR":  true,
	"MD2SITE_OUTPUT_DIR": true,
	"MD2SITE_STYLE":      true,
	"MD2SITE_WORKERS":    true,
}

// loadEnvConfig reads configuration through getenv.
// An unparsable MD2SITE_WORKERS is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2SITE_CONFIG"),
		InputDir:   getenv("MD2SITE_INPUT_DIR"),
		OutputDir:  getenv("MD2SITE_OUTPUT_DIR"),
		Style:      getenv("MD2SITE_STYLE"),
		Workers:    -1,
	}

	if workers := getenv("MD2SITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w >= 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2SITE_* variables.
// Helps catch typos like MD2SITE_OUTPUT instead of MD2SITE_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.Dir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Style != "" {
		cfg.Style.Name = env.Style
		cfg.Style.Disabled = false
	}
	if env.Workers >= 0 {
		cfg.Build.Workers = env.Workers
	}
}
