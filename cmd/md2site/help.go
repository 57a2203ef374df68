package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build HTML pages from a Markdown tree (default)")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2site help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site build [flags] [input] [output]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert every file below input to an HTML page below output,")
	fmt.Fprintln(w, "mirroring the directory layout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input     Markdown directory (default: markdown)")
	fmt.Fprintln(w, "  output    Output directory (default: public)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>         Output directory")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel page builds (0 = auto, default: 1)")
	fmt.Fprintln(w, "      --lang <tag>           Page language (default: en)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -s, --style <name>         Style name or CSS file path")
	fmt.Fprintln(w, "      --stylesheet <href>    Href relative to the output root, or a URL")
	fmt.Fprintln(w, "      --asset-path <dir>     Directory searched for styles/<name>.css")
	fmt.Fprintln(w, "      --inline-style         Embed the stylesheet in every page")
	fmt.Fprintln(w, "      --no-style             Emit pages without a stylesheet")
	fmt.Fprintln(w, "      --highlight-style <s>  Chroma style for code blocks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc-depth <n>        Max heading depth (1-6)")
	fmt.Fprintln(w, "      --toc-heading <re>     Heading text that receives the TOC")
	fmt.Fprintln(w, "      --no-toc               Disable table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --no-math              Disable $TeX$ math")
	fmt.Fprintln(w, "      --no-highlight         Disable syntax highlighting")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors, no warnings")
	fmt.Fprintln(w, "  -v, --verbose              List created files with timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2SITE_CONFIG, MD2SITE_INPUT_DIR, MD2SITE_OUTPUT_DIR,")
	fmt.Fprintln(w, "  MD2SITE_STYLE, MD2SITE_WORKERS")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML. Without --config this is")
	fmt.Fprintln(w, "the default configuration, a starting point for a config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2site version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2site help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
