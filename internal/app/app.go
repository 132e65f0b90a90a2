// Package app wires the resolution pipeline to its transition sources
// and runs the dispatcher loop.
package app

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dshills/keyloom/internal/config"
	"github.com/dshills/keyloom/internal/input"
	"github.com/dshills/keyloom/internal/input/compose"
	"github.com/dshills/keyloom/internal/input/ime"
	"github.com/dshills/keyloom/internal/input/keymap"
	"github.com/dshills/keyloom/internal/source"
)

// Options configures a new App. Zero values mean "use the
// configuration file and built-in defaults".
type Options struct {
	// ConfigPath overrides the default keyloom.toml location. An
	// explicit path must exist.
	ConfigPath string

	// Layout overrides the active layout description path from both
	// the configuration file and the system settings snapshot.
	Layout string

	// Replay feeds transitions from a JSON-lines trace file. "-"
	// reads standard input.
	Replay string

	// Interactive probes the controlling terminal for key events
	// instead of replaying a trace.
	Interactive bool

	// Record tees every consumed transition into a trace file in the
	// format Replay accepts.
	Record string

	// JSON emits resolved events as JSON lines instead of text.
	JSON bool

	// LogLevel overrides the configured log level.
	LogLevel string

	// Trace forces per-step resolution tracing on.
	Trace bool

	// Out receives resolved events. Defaults to standard output.
	Out io.Writer

	// LogOut receives log lines and the resolution trace. Defaults
	// to standard error.
	LogOut io.Writer
}

// App owns the pipeline and everything around it: configuration,
// layouts, compose table, transition source, trace recorder, layout
// watcher and the input-method editor. All pipeline access happens on
// the goroutine running the event loop.
type App struct {
	opts Options
	cfg  *config.Config
	log  *slog.Logger

	settings *config.Settings
	compiler *keymap.Compiler
	pipeline *input.Pipeline

	src      source.Source
	replay   *source.Replay
	probe    *source.Interactive
	recorder *source.Recorder
	editor   ime.Editor
	watcher  *keymap.Watcher

	// reloads funnels watcher callbacks onto the event loop. Paths
	// arrive absolute, the way the watcher reports them.
	reloads       chan string
	watchSettings string

	out     io.Writer
	running atomic.Bool
	done    chan struct{}
	stop    sync.Once
	closer  sync.Once
}

// New builds an App from options. On error, every component already
// started has been torn down.
func New(opts Options) (*App, error) {
	a := &App{
		opts:    opts,
		out:     opts.Out,
		reloads: make(chan string, 8),
		done:    make(chan struct{}),
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	if err := a.bootstrap(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// bootstrap brings components up in dependency order. Each numbered
// step may rely only on the ones before it.
func (a *App) bootstrap() error {
	// 1. Configuration: file and environment, then flag overrides,
	// which are validated like everything else.
	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if a.opts.Layout != "" {
		cfg.Layout.Path = a.opts.Layout
	}
	if a.opts.LogLevel != "" {
		cfg.Logging.Level = a.opts.LogLevel
	}
	if a.opts.Trace {
		cfg.Trace.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	a.cfg = cfg

	// 2. Logger.
	a.log = newLogger(cfg.Logging, a.logOut())

	// 3. System settings snapshot. Absent by default is fine; an
	// explicit path must exist.
	settings, err := config.LoadSettings(cfg.Layout.Settings)
	if err != nil {
		return &InitError{Component: "settings", Err: err}
	}
	a.settings = settings

	// 4. Layouts. A broken fallback description is reported and the
	// builtin serves; a broken active description named by the user
	// is fatal.
	a.compiler = keymap.NewCompiler()
	fallback, err := a.compiler.CompileFallback(settings.FallbackPath())
	if err != nil {
		a.log.Warn("fallback description rejected, builtin serves",
			"path", settings.FallbackPath(), "error", err)
	}
	layoutPath := cfg.Layout.Path
	if layoutPath == "" {
		layoutPath = settings.LayoutPath()
	}
	var active *keymap.Layout
	if layoutPath == "" {
		active = a.compiler.Builtin()
	} else {
		active, err = a.compiler.CompileFile(layoutPath)
		if err != nil {
			fallback.Release()
			return &InitError{Component: "layout", Err: err}
		}
	}

	// 5. Compose table for the session locale. A broken user file
	// still yields the locale table.
	table, err := compose.LoadTable(config.Locales().Resolve(), cfg.ComposeFile())
	if err != nil {
		a.log.Warn("user compose file rejected", "error", err)
	}

	// 6. Pipeline. It owns both layouts from here on.
	pipeline, err := input.New(active, fallback, table)
	if err != nil {
		active.Release()
		fallback.Release()
		return &InitError{Component: "pipeline", Err: err}
	}
	a.pipeline = pipeline
	a.pipeline.OnEvent(a.emit)
	a.pipeline.Tracer().SetWriter(a.logOut())
	a.pipeline.Tracer().SetEnabled(cfg.Trace.Enabled)

	// 7. Input-method editor. Unavailability is a quiet downgrade to
	// plain resolution; the gateway owns the editor once attached.
	if cfg.IME.Enabled {
		editor, err := ime.DialIBus()
		if err != nil {
			a.log.Info("input method unavailable", "error", err)
		} else {
			a.editor = editor
			a.pipeline.Gateway().Attach(editor)
		}
	}

	// 8. Transition source.
	if err := a.openSource(); err != nil {
		return &InitError{Component: "source", Err: err}
	}

	// 9. Trace recorder.
	if a.opts.Record != "" {
		rec, err := source.CreateRecorder(a.opts.Record)
		if err != nil {
			return &InitError{Component: "recorder", Err: err}
		}
		a.recorder = rec
	}

	// 10. Watcher for live layout reload. The probe binds its
	// synthesizer to the layout it started with, so interactive
	// sessions run without one.
	if cfg.Layout.Watch && a.probe == nil {
		if err := a.startWatcher(layoutPath); err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
	}
	return nil
}

// openSource builds the transition source the options name. With no
// source the App can still dump layouts; Run refuses to start.
func (a *App) openSource() error {
	switch {
	case a.opts.Replay != "" && a.opts.Interactive:
		return errors.New("replay and interactive are mutually exclusive")
	case a.opts.Replay == "-":
		a.replay = source.NewReplay(io.NopCloser(os.Stdin), "stdin")
		a.src = a.replay
	case a.opts.Replay != "":
		r, err := source.OpenReplay(a.opts.Replay)
		if err != nil {
			return err
		}
		a.replay = r
		a.src = r
	case a.opts.Interactive:
		probe, err := source.NewInteractive(a.pipeline.Layout())
		if err != nil {
			return err
		}
		a.probe = probe
		a.src = probe
	}
	return nil
}

// startWatcher registers the active layout description and, when the
// layout came from the settings snapshot, the snapshot itself.
// Callbacks land on the watcher goroutine; the event loop picks them
// up from the reloads channel.
func (a *App) startWatcher(layoutPath string) error {
	w, err := keymap.NewWatcher(a.queueReload)
	if err != nil {
		return err
	}
	a.watcher = w
	if layoutPath != "" {
		if err := w.Add(layoutPath); err != nil {
			return err
		}
	}
	if a.cfg.Layout.Path == "" && a.settings.Path() != "" {
		if err := w.Add(a.settings.Path()); err != nil {
			// The snapshot directory may not exist yet. Layout
			// reload still works without it.
			a.log.Warn("cannot watch settings snapshot",
				"path", a.settings.Path(), "error", err)
		} else if abs, err := filepath.Abs(a.settings.Path()); err == nil {
			a.watchSettings = abs
		}
	}
	return nil
}

// queueReload forwards one watcher callback to the event loop,
// dropping when the loop is behind. Debounced saves make that rare.
func (a *App) queueReload(path string) {
	select {
	case a.reloads <- path:
	default:
	}
}

// Run consumes the transition source until it is exhausted, the user
// quits the probe, or Shutdown is called.
func (a *App) Run() error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)
	if a.src == nil {
		return ErrNoSource
	}

	a.log.Info("session started",
		"layout", a.pipeline.Layout().Name(),
		"ime", a.pipeline.Gateway().Attached(),
	)
	err := a.eventLoop()
	a.logCounters()
	return err
}

// logCounters reports the session's resolution counters once.
func (a *App) logCounters() {
	snap := a.pipeline.Metrics().Snapshot()
	a.log.Info("session counters",
		"resolved", snap.Resolved,
		"ambiguous", snap.Ambiguous,
		"composed", snap.Composed,
		"fallback", snap.Fallback,
		"discarded", snap.Discarded,
		"imeConsumed", snap.IMEConsumed,
	)
}

// DumpLayout writes the compiled active layout as JSON, showing what
// the compiler actually built. It works without a transition source.
func (a *App) DumpLayout(w io.Writer) error {
	b, err := a.pipeline.Layout().ExportJSON()
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// Shutdown asks a running event loop to stop. It is safe from any
// goroutine and safe to call more than once.
func (a *App) Shutdown() {
	a.stop.Do(func() { close(a.done) })
}

// Close tears every component down. It is safe after a failed New,
// after Run returns, and on repeat calls.
func (a *App) Close() error {
	var errs []error
	a.closer.Do(func() {
		a.Shutdown()
		if a.watcher != nil {
			errs = append(errs, a.watcher.Close())
		}
		if a.src != nil {
			errs = append(errs, a.src.Close())
		}
		if a.recorder != nil {
			errs = append(errs, a.recorder.Close())
		}
		if a.pipeline != nil {
			// Closing the pipeline closes the gateway, which owns
			// the input-method editor.
			errs = append(errs, a.pipeline.Close())
		}
	})
	return errors.Join(errs...)
}

// Pipeline exposes the resolution pipeline, mainly for diagnostics.
func (a *App) Pipeline() *input.Pipeline {
	return a.pipeline
}

// Config returns the effective configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.log
}

func (a *App) logOut() io.Writer {
	if a.opts.LogOut != nil {
		return a.opts.LogOut
	}
	return os.Stderr
}
