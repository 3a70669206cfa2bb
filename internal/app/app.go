package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"langlens/internal/config"
	"langlens/internal/core/errors"
	"langlens/internal/document"
	"langlens/internal/history"
	"langlens/internal/lang"
	"langlens/internal/observability"
	"langlens/internal/report"
	"langlens/internal/watcher"
)

// App wires the analysis core to the host concerns: file walking, reports,
// history and watch mode. All file I/O lives here, outside the core.
type App struct {
	Config   *config.Config
	Registry *lang.Registry
	Docs     *document.Service

	historyStore *history.Store
	fsWatcher    *watcher.Watcher
	logger       *slog.Logger

	mu       sync.Mutex
	lastRun  report.Run
	onUpdate func(report.Run)
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeValidationError, "config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	registry := lang.NewRegistry(logger)
	app := &App{
		Config:   cfg,
		Registry: registry,
		Docs:     document.NewService(registry, logger),
		logger:   logger,
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "open history store")
		}
		app.historyStore = store
	}
	return app, nil
}

func (a *App) Close() error {
	var firstErr error
	if a.fsWatcher != nil {
		firstErr = a.fsWatcher.Close()
	}
	if a.historyStore != nil {
		if err := a.historyStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SetUpdateHook registers a callback invoked after every scan, including
// watch-mode rescans. Used by the terminal UI.
func (a *App) SetUpdateHook(fn func(report.Run)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onUpdate = fn
}

func (a *App) LastRun() report.Run {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastRun
}

// Scan walks the configured roots and analyzes every supported file.
func (a *App) Scan(ctx context.Context) (report.Run, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Scan", trace.WithAttributes(
		attribute.Int("scan.roots", len(a.Config.Paths)),
	))
	defer span.End()

	start := time.Now()
	run := report.Run{ID: uuid.NewString(), StartedAt: start}

	files, err := a.collectFiles()
	if err != nil {
		return report.Run{}, err
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report.Run{}, err
		}
		fileReport, ok := a.analyzeFile(ctx, path)
		if !ok {
			continue
		}
		run.Files = append(run.Files, fileReport)
		observability.FilesAnalyzed.Inc()
	}

	run.Duration = time.Since(start)
	observability.ScanDuration.Observe(run.Duration.Seconds())

	if err := a.persistSnapshot(run); err != nil {
		a.logger.Warn("failed to persist scan snapshot", "error", err)
	}

	a.mu.Lock()
	a.lastRun = run
	hook := a.onUpdate
	a.mu.Unlock()
	if hook != nil {
		hook(run)
	}
	return run, nil
}

func (a *App) collectFiles() ([]string, error) {
	dirGlobs, err := compileGlobs(a.Config.Exclude.Dirs)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "invalid exclude dir pattern")
	}
	fileGlobs, err := compileGlobs(a.Config.Exclude.Files)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "invalid exclude file pattern")
	}

	var files []string
	for _, root := range a.Config.Paths {
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			base := filepath.Base(path)
			if d.IsDir() {
				if path != root && matchesAny(dirGlobs, base) {
					return filepath.SkipDir
				}
				return nil
			}
			if matchesAny(fileGlobs, base) {
				return nil
			}
			if _, ok := a.Registry.HandlerForFile(path); !ok {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("walk %s", root))
		}
	}
	return files, nil
}

func (a *App) analyzeFile(ctx context.Context, path string) (report.FileReport, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		a.logger.Warn("failed to read file", "path", path, "error", err)
		return report.FileReport{}, false
	}

	doc := document.Document{Path: path, Text: string(content)}
	analysis, err := a.Docs.Analyze(ctx, doc)
	if err != nil {
		if !errors.IsCode(err, errors.CodeNotSupported) {
			a.logger.Warn("analysis failed", "path", path, "error", err)
		}
		return report.FileReport{}, false
	}

	handler, _ := a.Registry.HandlerForFile(path)
	return report.FileReport{
		Path:        path,
		Language:    handler.Descriptor().LanguageID,
		Analysis:    analysis,
		Functions:   handler.AnalyzeFunctions(doc.Text),
		Diagnostics: handler.DetectSyntaxErrors(doc.Text),
	}, true
}

func (a *App) persistSnapshot(run report.Run) error {
	if a.historyStore == nil {
		return nil
	}
	syntax, imports, structure, diagnostics := run.CountInvalid()
	snapshot := history.Snapshot{
		RunID:            run.ID,
		CreatedAt:        run.StartedAt,
		Files:            len(run.Files),
		SyntaxInvalid:    syntax,
		ImportsInvalid:   imports,
		StructureInvalid: structure,
		Diagnostics:      diagnostics,
	}
	key := a.projectKey()
	if err := a.historyStore.SaveSnapshot(key, snapshot); err != nil {
		return err
	}
	return a.historyStore.Prune(key, a.Config.History.Keep)
}

func (a *App) projectKey() string {
	if len(a.Config.Paths) == 0 {
		return "default"
	}
	abs, err := filepath.Abs(a.Config.Paths[0])
	if err != nil {
		return a.Config.Paths[0]
	}
	return abs
}

// GenerateOutputs writes the configured report files for a run.
func (a *App) GenerateOutputs(run report.Run) error {
	if path := a.Config.Output.Markdown; path != "" {
		var trends []history.Snapshot
		if a.historyStore != nil {
			var err error
			trends, err = a.historyStore.Recent(a.projectKey(), 5)
			if err != nil {
				a.logger.Warn("failed to load history trends", "error", err)
			}
		}
		if err := writeOutput(path, report.RenderMarkdown(run, trends)); err != nil {
			return err
		}
	}
	if path := a.Config.Output.JSON; path != "" {
		rendered, err := report.RenderJSON(run)
		if err != nil {
			return err
		}
		if err := writeOutput(path, rendered); err != nil {
			return err
		}
	}
	if path := a.Config.Output.TSV; path != "" {
		if err := writeOutput(path, report.RenderTSV(run)); err != nil {
			return err
		}
	}
	return nil
}

// StartWatcher begins watch mode: any batch of changes triggers a rescan
// followed by report regeneration.
func (a *App) StartWatcher() error {
	w, err := watcher.New(
		a.Config.Watch.Debounce,
		a.Config.Watch.RescanRate,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		func(paths []string) {
			a.logger.Debug("rescanning after change", "files", len(paths))
			run, err := a.Scan(context.Background())
			if err != nil {
				a.logger.Error("rescan failed", "error", err)
				return
			}
			if err := a.GenerateOutputs(run); err != nil {
				a.logger.Error("failed to generate outputs", "error", err)
			}
		},
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "create watcher")
	}
	w.SetExtensionFilter(a.Registry.SupportedExtensions())
	if err := w.Start(a.Config.Paths); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "start watcher")
	}
	a.fsWatcher = w
	return nil
}

// Summary is the one-line-per-fact text printed after a non-UI scan.
func Summary(run report.Run) string {
	syntax, imports, structure, diagnostics := run.CountInvalid()
	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %d files in %s\n", len(run.Files), run.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "  syntax failures:    %d\n", syntax)
	fmt.Fprintf(&b, "  import failures:    %d\n", imports)
	fmt.Fprintf(&b, "  structure failures: %d\n", structure)
	fmt.Fprintf(&b, "  diagnostics:        %d\n", diagnostics)
	return b.String()
}
