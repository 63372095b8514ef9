// # cmd/refscope/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"refscope/internal/app"
	"refscope/internal/config"
	"refscope/internal/history"
	"refscope/internal/observability"
	"refscope/internal/server"
)

var (
	configPath  = flag.String("config", "./refscope.toml", "Path to config file")
	once        = flag.Bool("once", false, "Run single scan and exit")
	ui          = flag.Bool("ui", false, "Enable terminal UI mode")
	symbol      = flag.String("symbol", "", "Print grouped usages for one symbol and exit")
	serve       = flag.Bool("serve", false, "Expose the index over HTTP")
	showHistory = flag.Bool("history", false, "Print the snapshot trend report and exit")
	since       = flag.String("since", "", "Trend window override, e.g. 72h (defaults to history.window)")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("refscope v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	if *ui {
		// In UI mode, avoid stdout logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
				if err == nil {
					output = f
				} else {
					fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./refscope.toml" && os.IsNotExist(err) {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		cfg.ScanPaths = flag.Args()
	}

	ctx := context.Background()

	shutdownTracing, err := observability.SetupTracing(ctx)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(shutdownCtx); err != nil {
				slog.Warn("trace shutdown failed", "error", err)
			}
		}()
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			slog.Error("failed to open history store", "error", err)
			os.Exit(1)
		}
		a.History = store
		defer store.Close()
	}

	if *showHistory {
		if err := printTrendReport(a, trendWindow(cfg)); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Initial scan
	if err := a.InitialScan(ctx); err != nil {
		slog.Error("initial scan failed", "error", err)
		os.Exit(1)
	}

	if *symbol != "" {
		out, err := formatSymbolReport(a, *symbol)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Print(out)
		os.Exit(0)
	}

	if err := a.GenerateOutputs(); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}
	if err := a.SaveSnapshot(); err != nil {
		slog.Warn("failed to save history snapshot", "error", err)
	}

	if !*ui {
		printSummary(a.CurrentUpdate())
	}

	if *serve {
		var srv *server.Server
		contractPath := cfg.Server.OpenAPI
		if contractPath == "" {
			contractPath = "./api/openapi.yaml"
		}
		contract, err := server.LoadContract(contractPath)
		if err != nil {
			slog.Warn("serving without openapi contract", "error", err)
			srv = server.NewServer(cfg.Server.Addr, a.Index, nil)
		} else {
			srv = server.NewServer(cfg.Server.Addr, a.Index, contract)
		}
		if err := srv.Start(); err != nil {
			slog.Error("failed to start query server", "error", err)
			os.Exit(1)
		}
		defer srv.Stop(ctx)
	}

	if *once {
		os.Exit(0)
	}

	// Watch mode
	if err := a.StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := runUI(a); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
	} else {
		// Block forever
		select {}
	}
}

func trendWindow(cfg *config.Config) time.Duration {
	raw := cfg.History.Window
	if *since != "" {
		raw = *since
	}
	window, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("invalid trend window, using 24h", "window", raw, "error", err)
		return 24 * time.Hour
	}
	return window
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "refscope", "refscope.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "refscope", "refscope.log")
	}

	return "refscope.log"
}
