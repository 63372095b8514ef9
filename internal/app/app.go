package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel/attribute"

	"refscope/internal/config"
	"refscope/internal/errors"
	"refscope/internal/history"
	"refscope/internal/index"
	"refscope/internal/observability"
	"refscope/internal/parser"
	"refscope/internal/report"
	"refscope/internal/util"
	"refscope/internal/watcher"
)

// Update is pushed to the UI after every scan or change batch.
type Update struct {
	UsageCounts    map[string]int
	FileCount      int
	SymbolCount    int
	ReferenceCount int
}

type App struct {
	Config  *config.Config
	Parser  *parser.Parser
	Index   *index.Index
	History *history.Store // nil when history is disabled

	watcher *watcher.Watcher

	updateMu sync.RWMutex
	onUpdate func(Update)
}

func New(cfg *config.Config) (*App, error) {
	loader, err := parser.NewGrammarLoader(cfg.Languages)
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Parser: parser.NewParser(loader),
		Index:  index.NewIndex(),
	}, nil
}

func (a *App) SetUpdateHandler(handler func(Update)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.onUpdate = handler
}

func (a *App) CurrentUpdate() Update {
	return Update{
		UsageCounts:    a.Index.UsageCounts(),
		FileCount:      a.Index.FileCount(),
		SymbolCount:    a.Index.SymbolCount(),
		ReferenceCount: a.Index.ReferenceCount(),
	}
}

func (a *App) InitialScan(ctx context.Context) error {
	ctx, span := observability.Tracer.Start(ctx, "app.InitialScan")
	defer span.End()

	start := time.Now()

	files, err := a.ScanDirectories(uniqueScanRoots(a.Config.ScanPaths), a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return errors.AddContext(err, errors.CtxOperation, "initial_scan")
	}

	for _, filePath := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.ProcessFile(filePath); err != nil {
			slog.Warn("failed to process file", "path", filePath, "error", err)
		}
	}

	a.refreshIndexMetrics()
	observability.ScanDuration.WithLabelValues("initial_scan").Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int("files", len(files)))

	slog.Info("initial scan complete",
		"files", a.Index.FileCount(),
		"symbols", a.Index.SymbolCount(),
		"references", a.Index.ReferenceCount(),
		"duration", time.Since(start))
	return nil
}

func uniqueScanRoots(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	roots := make([]string, 0, len(paths))
	for _, p := range paths {
		normalized := filepath.Clean(p)
		if abs, err := filepath.Abs(normalized); err == nil {
			normalized = filepath.Clean(abs)
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		roots = append(roots, normalized)
	}
	sort.Strings(roots)
	return roots
}

func (a *App) ScanDirectories(paths []string, excludeDirs, excludeFiles []string) ([]string, error) {
	var files []string

	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(excludeFiles))
	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}

	supported := make(map[string]bool)
	for _, ext := range a.Parser.SupportedExtensions() {
		supported[ext] = true
	}

	for _, root := range paths {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !supported[filepath.Ext(path)] {
				return nil
			}

			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func (a *App) ProcessFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	file, err := a.Parser.ParseFile(path, content)
	if err != nil {
		return err
	}

	a.Index.AddFile(file)
	return nil
}

func (a *App) HandleChanges(paths []string) {
	slog.Info("detected changes", "count", len(paths))
	start := time.Now()

	// Drain through the index's dirty set so a path that failed in an
	// earlier batch is retried here.
	for _, path := range paths {
		a.Index.MarkDirty(path)
	}

	for _, path := range a.Index.DirtyPaths() {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			a.Index.RemoveFile(path)
			continue
		}
		if err := a.ProcessFile(path); err != nil {
			if errors.IsCode(err, errors.CodeNotSupported) {
				a.Index.RemoveFile(path)
				continue
			}
			slog.Warn("failed to re-process file", "path", path, "error", err)
		}
	}

	if err := a.GenerateOutputs(); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}
	if err := a.SaveSnapshot(); err != nil {
		slog.Warn("failed to save history snapshot", "error", err)
	}

	a.refreshIndexMetrics()
	observability.ScanDuration.WithLabelValues("change_batch").Observe(time.Since(start).Seconds())
	a.emitUpdate(a.CurrentUpdate())
}

func (a *App) emitUpdate(update Update) {
	a.updateMu.RLock()
	handler := a.onUpdate
	a.updateMu.RUnlock()
	if handler != nil {
		handler(update)
	}
}

// GenerateOutputs writes the configured TSV and Markdown reports.
func (a *App) GenerateOutputs() error {
	if a.Config.Output.TSV != "" {
		gen := report.NewTSVGenerator(a.Index)
		content, err := gen.Generate()
		if err != nil {
			return err
		}
		if err := util.WriteStringWithDirs(a.Config.Output.TSV, content, 0o644); err != nil {
			return err
		}
	}

	if a.Config.Output.Markdown != "" {
		gen := report.NewMarkdownGenerator(a.Index)
		content, err := gen.Generate(report.MarkdownReportOptions{
			ProjectName: firstScanPath(a.Config.ScanPaths),
		})
		if err != nil {
			return err
		}
		if err := util.WriteStringWithDirs(a.Config.Output.Markdown, content, 0o644); err != nil {
			return err
		}
	}

	return nil
}

// SaveSnapshot records the current index aggregates; no-op without history.
func (a *App) SaveSnapshot() error {
	if a.History == nil {
		return nil
	}

	var commitHash string
	var commitTime time.Time
	if len(a.Config.ScanPaths) > 0 {
		commitHash, commitTime = history.ResolveGitMetadata(a.Config.ScanPaths[0])
	}

	_, err := a.History.SaveSnapshot(history.Snapshot{
		CommitHash:     commitHash,
		CommitTime:     commitTime,
		FileCount:      a.Index.FileCount(),
		SymbolCount:    a.Index.SymbolCount(),
		ReferenceCount: a.Index.ReferenceCount(),
		UsageCounts:    a.Index.UsageCounts(),
	})
	return err
}

func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Watch.MaxEventsPerSec,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.HandleChanges,
	)
	if err != nil {
		return err
	}
	a.watcher = w
	return w.Watch(a.Config.ScanPaths)
}

func (a *App) Close() error {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			return err
		}
	}
	if a.History != nil {
		return a.History.Close()
	}
	return nil
}

func (a *App) refreshIndexMetrics() {
	observability.IndexFiles.Set(float64(a.Index.FileCount()))
	observability.IndexSymbols.Set(float64(a.Index.SymbolCount()))
}

func firstScanPath(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return filepath.Base(paths[0])
}
