package input

import (
	"unicode/utf8"

	"github.com/dshills/keyloom/internal/input/compose"
	"github.com/dshills/keyloom/internal/input/ime"
	"github.com/dshills/keyloom/internal/input/key"
	"github.com/dshills/keyloom/internal/input/keymap"
	"github.com/dshills/keyloom/internal/input/keystate"
	"github.com/dshills/keyloom/internal/input/keysym"
)

// Pipeline turns hardware key transitions into zero-or-one resolved
// events each. It owns the active and fallback layouts, the cursor
// states, the compose session, and the IME gateway. All methods must
// be called from the single dispatcher thread; none of them blocks.
type Pipeline struct {
	compiler *keymap.Compiler
	active   *keymap.Layout
	fallback *keymap.Layout
	group    *keystate.Group
	gateway  *ime.Gateway
	metrics  *Metrics
	tracer   *Tracer
	onEvent  func(key.Event)
	errs     chan error
	closed   bool
}

// resolution is the outcome of resolving one transition, before the
// IME gateway sees it.
type resolution struct {
	sym      keysym.Symbol // after compose and clean preference
	effSym   keysym.Symbol // pre-compose effective symbol
	text     string
	fallback bool
}

// New builds a pipeline over an active and a fallback layout. The
// pipeline takes ownership of both; they are released by Close or,
// for the active layout, by the next successful SetLayout. A nil
// compose table disables composition.
func New(active, fallback *keymap.Layout, table *compose.Table) (*Pipeline, error) {
	group, err := keystate.NewGroup(active, fallback, table)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		compiler: keymap.NewCompiler(),
		active:   active,
		fallback: fallback,
		group:    group,
		metrics:  NewMetrics(),
		tracer:   NewTracer(nil),
		errs:     make(chan error, 8),
	}
	p.gateway = ime.NewGateway(p.deliver)
	return p, nil
}

// OnEvent registers the application callback. Events are delivered on
// the thread calling HandleTransition and the gateway's HandleReply.
func (p *Pipeline) OnEvent(fn func(key.Event)) {
	p.onEvent = fn
}

// Gateway returns the IME gateway. The app loop drains editor replies
// into Gateway.HandleReply on the dispatcher thread.
func (p *Pipeline) Gateway() *ime.Gateway {
	return p.gateway
}

// Metrics returns the pipeline's resolution counters.
func (p *Pipeline) Metrics() *Metrics {
	return p.metrics
}

// Tracer returns the step tracer. It is silent until given a writer
// and enabled.
func (p *Pipeline) Tracer() *Tracer {
	return p.tracer
}

// Layout returns the active layout.
func (p *Pipeline) Layout() *keymap.Layout {
	return p.active
}

// Errors returns the channel carrying layout and compose-table
// compile failures. Resolution itself never produces errors.
func (p *Pipeline) Errors() <-chan error {
	return p.errs
}

// ShouldRepeat reports whether the active layout marks the keycode as
// repeating.
func (p *Pipeline) ShouldRepeat(keycode uint32) bool {
	return p.active != nil && p.active.Repeats(keycode)
}

// HandleTransition consumes one hardware key transition. At most one
// event reaches the callback; every filtered transition is a normal,
// counted outcome, never an error.
func (p *Pipeline) HandleTransition(t Transition) {
	if p.closed {
		return
	}
	p.group.Update(t.Depressed, t.Latched, t.Locked, t.BaseGroup, t.LatchedGroup, t.LockedGroup)

	if t.Action == key.ActionRepeat && !p.ShouldRepeat(t.Keycode) {
		p.metrics.discarded.Add(1)
		p.tracer.step("keycode %d: repeat of non-repeating key dropped", t.Keycode)
		return
	}

	res, ok := p.resolve(t.Keycode, t.Action)
	if !ok {
		return
	}

	ev := key.Event{
		Key:      LogicalKey(res.sym),
		Symbol:   res.sym,
		Action:   t.Action,
		Mods:     p.group.Portable(),
		Text:     res.text,
		Fallback: res.fallback,
	}
	if p.gateway.Offer(ev, t.Keycode) == ime.Consumed {
		p.metrics.imeConsumed.Add(1)
		p.tracer.step("keycode %d: taken by input method", t.Keycode)
		return
	}
	p.deliver(ev)
}

// resolve runs the primary resolution and, when it yields neither a
// logical key nor text, one re-run against the fallback layout's
// state. Group-switch symbols are discarded unconditionally: a
// primary group switch never reaches the fallback re-run, and a
// fallback result is checked again so the re-run cannot dress one up
// as a normal event.
func (p *Pipeline) resolve(keycode uint32, action key.Action) (resolution, bool) {
	res, ok := p.resolveAgainst(p.group.Effective, p.group.Clean, keycode, action, true)
	if !ok {
		return resolution{}, false
	}
	if res.sym.IsGroupSwitch() || res.effSym.IsGroupSwitch() {
		return p.discardGroupSwitch(keycode)
	}

	if LogicalKey(res.sym) == key.KeyNone && res.text == "" {
		fres, fok := p.resolveAgainst(p.group.Default, p.group.Default, keycode, action, false)
		if fok && (LogicalKey(fres.sym) != key.KeyNone || fres.text != "") {
			if fres.sym.IsGroupSwitch() || fres.effSym.IsGroupSwitch() {
				return p.discardGroupSwitch(keycode)
			}
			fres.fallback = true
			p.metrics.fallback.Add(1)
			p.tracer.step("keycode %d: fallback layout answered %#x", keycode, uint32(fres.sym))
			res = fres
		}
	}
	return res, true
}

func (p *Pipeline) discardGroupSwitch(keycode uint32) (resolution, bool) {
	p.metrics.discarded.Add(1)
	p.tracer.step("keycode %d: group switch discarded", keycode)
	return resolution{}, false
}

// resolveAgainst resolves one keycode against a pair of cursor
// states. The primary run feeds the compose session and applies the
// Shift+Control text special case; the fallback re-run does neither,
// since feeding the session twice for one transition would corrupt a
// pending sequence.
func (p *Pipeline) resolveAgainst(eff, clean *keystate.State, keycode uint32, action key.Action, primary bool) (resolution, bool) {
	effSyms := eff.Symbols(keycode)
	cleanSyms := clean.Symbols(keycode)
	if len(effSyms) != 1 || len(cleanSyms) != 1 {
		// Only the primary run counts: a failed fallback re-run does
		// not filter the transition.
		if primary {
			p.metrics.ambiguous.Add(1)
		}
		p.tracer.step("keycode %d: %d effective / %d clean symbols, filtered",
			keycode, len(effSyms), len(cleanSyms))
		return resolution{}, false
	}
	effSym, cleanSym := effSyms[0], cleanSyms[0]

	sym := effSym
	composedText := ""
	if primary && action != key.ActionRelease {
		switch fr := p.group.Compose.Feed(effSym); fr.Status {
		case compose.FeedComposing:
			p.metrics.composing.Add(1)
			p.tracer.step("keycode %d: composing, %d symbols pending",
				keycode, len(p.group.Compose.Pending()))
			return resolution{}, false
		case compose.FeedCancelled:
			p.metrics.composing.Add(1)
			p.tracer.step("keycode %d: compose sequence cancelled", keycode)
			return resolution{}, false
		case compose.FeedComposed:
			p.metrics.composed.Add(1)
			sym = fr.Symbol
			composedText = fr.Text
			if sym == keysym.None && composedText != "" {
				// Sequences parsed without a final keysym still get
				// one when the result is a single rune.
				if r, size := utf8.DecodeRuneInString(composedText); size == len(composedText) && r != utf8.RuneError {
					sym = keysym.FromRune(r)
				}
			}
			p.tracer.step("keycode %d: composed %q (%#x)", keycode, composedText, uint32(sym))
		case compose.FeedRejected:
			// Pass-through; the symbol resolves normally.
		}
	}

	var text string
	if sym == effSym {
		// Composition was a no-op. Prefer the clean symbol unless an
		// unknown modifier was consumed selecting the effective one.
		consumedUnknown := eff.ConsumedMods(keycode) & p.group.UnknownActive()
		if consumedUnknown == 0 {
			sym = cleanSym
		} else {
			p.tracer.step("keycode %d: unknown modifier %#x load-bearing, keeping effective symbol",
				keycode, uint32(consumedUnknown))
		}
		if primary && p.group.ShiftControlDepressed() {
			text = p.group.TextWithoutControl(keycode)
		} else {
			text = eff.Text(keycode)
		}
	} else {
		text = composedText
	}

	return resolution{sym: sym, effSym: effSym, text: stripControl(text)}, true
}

// deliver hands one finished event to the application callback. The
// gateway also calls it for IME-injected events.
func (p *Pipeline) deliver(ev key.Event) {
	p.metrics.resolved.Add(1)
	p.tracer.step("deliver %s", ev)
	if p.onEvent != nil {
		p.onEvent(ev)
	}
}

// SetLayout swaps the active layout. The previous layout and its
// dependent states are torn down only after the rebind succeeds; on
// error the previous layout keeps serving.
func (p *Pipeline) SetLayout(next *keymap.Layout) error {
	if next == nil {
		return keymap.ErrIncompatibleLayout
	}
	oldEff, oldClean := p.group.Effective, p.group.Clean
	old := p.active
	if err := p.group.Rebind(next); err != nil {
		return err
	}
	p.active = next
	if old != nil && old != next {
		old.Release()
	}
	oldEff.Release()
	oldClean.Release()
	return nil
}

// LoadLayout compiles a description file and installs it as the
// active layout. Compile failures leave the current layout serving
// and are reported once on Errors.
func (p *Pipeline) LoadLayout(path string) {
	next, err := p.compiler.CompileFile(path)
	if err != nil {
		p.reportErr(err)
		return
	}
	if err := p.SetLayout(next); err != nil {
		next.Release()
		p.reportErr(err)
	}
}

// SetComposeTable swaps the compose table, abandoning any pending
// sequence. A nil table disables composition.
func (p *Pipeline) SetComposeTable(table *compose.Table) {
	p.group.SetComposeTable(table)
}

func (p *Pipeline) reportErr(err error) {
	select {
	case p.errs <- err:
	default:
	}
}

// Close tears the pipeline down: the gateway first, so no IME events
// arrive mid-teardown, then the documented order of compose session,
// active layout, fallback layout, cursor states.
func (p *Pipeline) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	err := p.gateway.Close()
	p.group.Compose.Reset()
	if p.active != nil {
		p.active.Release()
		p.active = nil
	}
	if p.fallback != nil {
		p.fallback.Release()
		p.fallback = nil
	}
	p.group.Release()
	close(p.errs)
	return err
}

// stripControl removes ASCII control bytes 0x01 through 0x1F and 0x7F
// from text before delivery. NUL is not stripped; the state layer
// never produces it. Safe byte-wise: the stripped values cannot occur
// inside a UTF-8 multi-byte sequence.
func stripControl(s string) string {
	clean := true
	for i := 0; i < len(s); i++ {
		if b := s[i]; (b >= 0x01 && b <= 0x1f) || b == 0x7f {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		if (b >= 0x01 && b <= 0x1f) || b == 0x7f {
			continue
		}
		out = append(out, b)
	}
	return string(out)
}
