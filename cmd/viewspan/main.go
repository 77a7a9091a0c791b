// Package main is the entry point for the viewspan demo viewer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/viewspan/internal/config"
	"github.com/dshills/viewspan/internal/theme"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	themePath  string
	find       string
	codeOnly   bool
	markLine   int
	filePath   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	settings, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	themePath := settings.Theme.Path
	if opts.themePath != "" {
		themePath = opts.themePath
	}
	th := theme.Default()
	if themePath != "" {
		th, err = theme.LoadFile(themePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load theme: %v\n", err)
			return 1
		}
	}

	viewer, err := newViewer(opts, settings, th)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer viewer.shutdown()

	if opts.configPath != "" {
		watcher, err := config.NewWatcher(opts.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to watch config: %v\n", err)
			return 1
		}
		defer watcher.Close()
		watcher.OnReload(viewer.applySettings)
	}

	if err := viewer.runLoop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.themePath, "theme", "", "Path to YAML theme file")
	flag.StringVar(&opts.find, "find", "", "Highlight occurrences of a term")
	flag.BoolVar(&opts.codeOnly, "code-only", false, "Hide highlights inside comments and strings")
	flag.IntVar(&opts.markLine, "mark", 0, "Whole-line highlight on the given line")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Viewspan - decoration projection demo viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: viewspan [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  up/down/pgup/pgdn  Scroll\n")
		fmt.Fprintf(os.Stderr, "  w                  Toggle soft wrap at screen width\n")
		fmt.Fprintf(os.Stderr, "  f                  Toggle fold at the top line\n")
		fmt.Fprintf(os.Stderr, "  q                  Quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("viewspan %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.filePath = flag.Arg(0)
	return opts
}
