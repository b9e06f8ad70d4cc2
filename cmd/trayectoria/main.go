// ABOUTME: CLI entrypoint for the trayectoria timeline browser with TUI, serve, import, and export modes.
// ABOUTME: Wires together the feed decoder, sqlite store, HTTP server, exporters, and signal handling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/redpolitica/trayectoria/export"
	"github.com/redpolitica/trayectoria/feed"
	"github.com/redpolitica/trayectoria/layout"
	"github.com/redpolitica/trayectoria/server"
	"github.com/redpolitica/trayectoria/store"
	"github.com/redpolitica/trayectoria/timeline"
	"github.com/redpolitica/trayectoria/tui"
)

var version = "dev"

// config holds all CLI configuration parsed from flags and positional arguments.
type config struct {
	serveMode    bool
	importMode   bool
	validateOnly bool
	exportFormat string
	dbPath       string
	configPath   string
	outPath      string
	entityID     string
	kind         string
	showVersion  bool
	feedFile     string
}

func main() {
	loadDotEnv(".env")

	cfg := parseFlags()

	if cfg.showVersion {
		fmt.Printf("trayectoria %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cfg))
}

// parseFlags parses command-line flags and returns a populated config.
func parseFlags() config {
	var cfg config

	fs := flag.NewFlagSet("trayectoria", flag.ContinueOnError)
	fs.BoolVar(&cfg.serveMode, "serve", false, "Start HTTP API server mode")
	fs.BoolVar(&cfg.importMode, "import", false, "Import a feed file into the database")
	fs.BoolVar(&cfg.validateOnly, "validate", false, "Decode a feed file and report its contents")
	fs.StringVar(&cfg.exportFormat, "export", "", "Export format: svg or html")
	fs.StringVar(&cfg.dbPath, "db", "trayectoria.db", "Path to the sqlite database")
	fs.StringVar(&cfg.configPath, "config", "", "Optional YAML display configuration file")
	fs.StringVar(&cfg.outPath, "o", "", "Output file for export (default: stdout)")
	fs.StringVar(&cfg.entityID, "entity", "", "Entity id for export")
	fs.StringVar(&cfg.kind, "kind", "subjects", "Entity kind: subjects or containers")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		printHelp(os.Stderr, version)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if fs.NArg() > 0 {
		cfg.feedFile = fs.Arg(0)
	}

	return cfg
}

// run dispatches to the appropriate mode based on the config.
// Returns an exit code: 0 for success, 1 for failure.
func run(cfg config) int {
	if cfg.validateOnly {
		return validateFeed(cfg)
	}
	if cfg.importMode {
		return importFeed(cfg)
	}
	if cfg.exportFormat != "" {
		return exportEntity(cfg)
	}
	if cfg.serveMode {
		return runServer(cfg)
	}
	return runTUI(cfg)
}

// kindFromFlag maps the -kind flag to a payload kind.
func kindFromFlag(s string) (feed.Kind, error) {
	switch s {
	case "subjects", "subject":
		return feed.KindSubject, nil
	case "containers", "container", "institutions":
		return feed.KindContainer, nil
	}
	return feed.KindSubject, fmt.Errorf("unknown kind %q (want subjects or containers)", s)
}

// loadPayload reads the payload from the feed file when one was given,
// otherwise from the sqlite database.
func loadPayload(cfg config) (feed.Payload, error) {
	if cfg.feedFile != "" {
		return feed.Load(cfg.feedFile)
	}

	st, err := store.Open(cfg.dbPath)
	if err != nil {
		return feed.Payload{}, err
	}
	defer st.Close()
	return st.LoadPayload()
}

// validateFeed decodes a feed file and prints what the tolerant parser kept.
func validateFeed(cfg config) int {
	if cfg.feedFile == "" {
		fmt.Fprintln(os.Stderr, "error: -validate requires a feed file argument")
		return 1
	}
	p, err := feed.Load(cfg.feedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Println(p.Summary())
	return 0
}

// importFeed loads a feed file and replaces the matching entities in the
// sqlite database.
func importFeed(cfg config) int {
	if cfg.feedFile == "" {
		fmt.Fprintln(os.Stderr, "error: -import requires a feed file argument")
		return 1
	}
	p, err := feed.Load(cfg.feedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	st, err := store.Open(cfg.dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer st.Close()

	n, err := st.ImportPayload(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Printf("Imported %d entities into %s\n", n, cfg.dbPath)
	return 0
}

// exportEntity renders one entity's timeline as SVG or an HTML digest.
func exportEntity(cfg config) int {
	if cfg.entityID == "" {
		fmt.Fprintln(os.Stderr, "error: -export requires -entity <id>")
		return 1
	}
	kind, err := kindFromFlag(cfg.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	displayCfg, err := layout.LoadConfig(cfg.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	p, err := loadPayload(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	e, ok := p.FindEntity(kind, cfg.entityID)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: no %s with id %q\n", cfg.kind, cfg.entityID)
		return 1
	}

	mode := timeline.ModeSubject
	if kind == feed.KindContainer {
		mode = timeline.ModeContainer
	}
	lay := layout.Build(timeline.FromEntity(e, mode), displayCfg, time.Now())

	out := io.Writer(os.Stdout)
	if cfg.outPath != "" {
		f, err := os.Create(cfg.outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}

	switch cfg.exportFormat {
	case "svg":
		err = export.WriteSVG(out, lay, displayCfg)
	case "html":
		err = export.WriteDigest(out, e.DisplayName, lay, displayCfg)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown export format %q (want svg or html)\n", cfg.exportFormat)
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// fileSource adapts a feed file to the server's payload source, re-reading
// the file on every request so edits show up without a restart.
type fileSource struct {
	path string
}

func (f fileSource) LoadPayload() (feed.Payload, error) {
	return feed.Load(f.path)
}

// runServer starts the HTTP API over the database (or a feed file) and
// blocks until interrupted.
func runServer(cfg config) int {
	srvCfg, err := server.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	displayCfg, err := layout.LoadConfig(cfg.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	var source server.PayloadSource
	if cfg.feedFile != "" {
		source = fileSource{path: cfg.feedFile}
	} else {
		st, err := store.Open(cfg.dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		defer st.Close()
		source = st
	}

	httpSrv := &http.Server{
		Addr:    srvCfg.Bind,
		Handler: server.NewServer(source, displayCfg, srvCfg.AuthToken),
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(ctx)
	}()

	fmt.Printf("Listening on http://%s\n", srvCfg.Bind)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runTUI starts the interactive timeline browser over the loaded payload.
func runTUI(cfg config) int {
	p, err := loadPayload(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if p.Empty() {
		fmt.Fprintln(os.Stderr, "No entities loaded. Import a feed first:")
		fmt.Fprintln(os.Stderr, "  trayectoria -import feed.json")
		return 1
	}

	model := tui.NewAppModel(p)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
