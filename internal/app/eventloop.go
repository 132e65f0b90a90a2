package app

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/keyloom/internal/config"
	"github.com/dshills/keyloom/internal/input"
	"github.com/dshills/keyloom/internal/input/ime"
	"github.com/dshills/keyloom/internal/input/key"
)

// eventLoop is the dispatcher thread: every pipeline call happens
// here. It multiplexes the transition source, input-method replies,
// reload notifications and error reports, and returns when the source
// is exhausted or Shutdown closes done.
func (a *App) eventLoop() error {
	transitions := a.src.Transitions()

	// Nil channels block forever, so absent components simply never
	// fire a case.
	var replies <-chan ime.Reply
	if a.editor != nil {
		replies = a.editor.Replies()
	}
	var watchErrs <-chan error
	if a.watcher != nil {
		watchErrs = a.watcher.Errors()
	}

	for {
		select {
		case <-a.done:
			return nil

		case t, ok := <-transitions:
			if !ok {
				if a.replay != nil {
					return a.replay.Err()
				}
				return nil
			}
			a.consume(t)

		case r, ok := <-replies:
			if !ok {
				replies = nil
				continue
			}
			a.pipeline.Gateway().HandleReply(r)

		case path := <-a.reloads:
			a.reload(path)

		case err := <-a.pipeline.Errors():
			a.log.Warn("layout reload failed", "error", err)

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			a.log.Warn("watcher error", "error", err)
		}
	}
}

// consume records and resolves one transition.
func (a *App) consume(t input.Transition) {
	if a.recorder != nil {
		if err := a.recorder.Record(t); err != nil {
			a.log.Warn("trace write failed", "error", err)
		}
	}
	a.pipeline.HandleTransition(t)
}

// reload reacts to one watched-file change. A layout description
// change recompiles in place; a settings change may point the session
// at a different description.
func (a *App) reload(path string) {
	if path != "" && path == a.watchSettings {
		a.reloadSettings()
		return
	}
	a.log.Info("layout description changed", "path", path)
	a.pipeline.LoadLayout(path)
}

// reloadSettings re-reads the settings snapshot and follows a changed
// layout path. Fallback and option changes apply to new sessions only.
func (a *App) reloadSettings() {
	next, err := config.LoadSettings(a.settings.Path())
	if err != nil {
		a.log.Warn("settings snapshot unreadable, keeping previous", "error", err)
		return
	}
	prev := a.settings
	a.settings = next
	if a.cfg.Layout.Path != "" {
		// The configuration pins the layout; nothing to follow.
		return
	}
	path := next.LayoutPath()
	if path == "" || path == prev.LayoutPath() {
		return
	}
	a.log.Info("settings moved the layout", "path", path)
	if a.watcher != nil {
		if err := a.watcher.Add(path); err != nil {
			a.log.Warn("cannot watch new layout", "path", path, "error", err)
		}
	}
	a.pipeline.LoadLayout(path)
}

// emit is the pipeline's event callback. The probe owns the terminal
// during interactive sessions; otherwise events go to the configured
// writer, one per line.
func (a *App) emit(ev key.Event) {
	switch {
	case a.probe != nil:
		a.probe.ShowEvent(ev)
	case a.opts.JSON:
		b, err := json.Marshal(ev)
		if err != nil {
			a.log.Error("encoding event", "error", err)
			return
		}
		fmt.Fprintf(a.out, "%s\n", b)
	default:
		fmt.Fprintln(a.out, ev)
	}
}
