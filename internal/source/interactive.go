package source

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/keyloom/internal/input"
	"github.com/dshills/keyloom/internal/input/key"
	"github.com/dshills/keyloom/internal/input/keymap"
	"github.com/dshills/keyloom/internal/input/keysym"
)

// probeBacklog bounds the scrollback kept for redraws.
const probeBacklog = 256

// Interactive is a terminal probe: it synthesizes transitions from
// tcell key events against a layout and displays whatever the
// pipeline resolves. Ctrl+C or Ctrl+D ends the stream.
type Interactive struct {
	synth  synthesizer
	screen tcell.Screen
	ch     chan input.Transition
	done   chan struct{}
	once   sync.Once

	mu     sync.Mutex
	closed bool
	lines  []string
	width  int
	height int
}

// NewInteractive opens the terminal and starts the probe against the
// given layout.
func NewInteractive(layout *keymap.Layout) (*Interactive, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal probe: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal probe: %w", err)
	}

	p := &Interactive{
		synth:  newSynthesizer(layout),
		screen: screen,
		ch:     make(chan input.Transition, 16),
		done:   make(chan struct{}),
	}
	p.width, p.height = screen.Size()
	p.Show(fmt.Sprintf("probing %s: press keys, Ctrl+C or Ctrl+D quits", layout.Name()))
	go p.poll()
	return p, nil
}

func (p *Interactive) poll() {
	defer close(p.ch)
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		switch e := ev.(type) {
		case *tcell.EventResize:
			p.mu.Lock()
			p.width, p.height = e.Size()
			p.redrawLocked()
			p.mu.Unlock()
		case *tcell.EventKey:
			ts, quit := p.synth.transitions(e.Key(), e.Rune(), e.Modifiers())
			if quit {
				return
			}
			for _, t := range ts {
				select {
				case p.ch <- t:
				case <-p.done:
					return
				}
			}
		}
	}
}

// Transitions returns the synthesized stream. The channel closes on
// the quit chord or after Close.
func (p *Interactive) Transitions() <-chan input.Transition {
	return p.ch
}

// ShowEvent renders one resolved event on the probe display.
func (p *Interactive) ShowEvent(ev key.Event) {
	p.Show(FormatEvent(ev))
}

// Show appends a line to the probe display.
func (p *Interactive) Show(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.lines = append(p.lines, line)
	if len(p.lines) > probeBacklog {
		p.lines = p.lines[len(p.lines)-probeBacklog:]
	}
	p.redrawLocked()
}

func (p *Interactive) redrawLocked() {
	p.screen.Clear()
	start := 0
	if len(p.lines) > p.height {
		start = len(p.lines) - p.height
	}
	for y, line := range p.lines[start:] {
		drawText(p.screen, 0, y, p.width, line)
	}
	p.screen.Show()
}

// Close stops the probe and restores the terminal.
func (p *Interactive) Close() error {
	p.once.Do(func() {
		close(p.done)
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		p.screen.Fini()
	})
	return nil
}

// drawText renders a line grapheme by grapheme so combining marks and
// wide characters occupy their true cells.
func drawText(s tcell.Screen, x, y, max int, line string) {
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		if x >= max {
			return
		}
		runes := g.Runes()
		s.SetContent(x, y, runes[0], runes[1:], tcell.StyleDefault)
		w := g.Width()
		if w < 1 {
			w = 1
		}
		x += w
	}
}

// FormatEvent renders an event the way the probe displays it: the
// event's String form plus a grapheme and cell count when it carries
// text.
func FormatEvent(ev key.Event) string {
	s := ev.String()
	if ev.Text == "" {
		return s
	}
	return fmt.Sprintf("%s (%d graphemes, %d cells)",
		s, uniseg.GraphemeClusterCount(ev.Text), uniseg.StringWidth(ev.Text))
}

// synthesizer maps terminal key events onto layout positions. The
// reverse lookup supplies both the keycode and the modifier combo
// that selects the symbol's shift level, so a shifted rune lands on
// the right transition even though terminals rarely report Shift.
type synthesizer struct {
	layout  *keymap.Layout
	shift   keymap.Mods
	control keymap.Mods
	alt     keymap.Mods
	meta    keymap.Mods
}

func newSynthesizer(l *keymap.Layout) synthesizer {
	s := synthesizer{layout: l}
	if i, ok := l.ModifierIndex("Shift"); ok {
		s.shift = keymap.Bit(i)
	}
	if i, ok := l.ModifierIndex("Control"); ok {
		s.control = keymap.Bit(i)
	}
	if i, ok := l.ModifierIndex("Mod1"); ok {
		s.alt = keymap.Bit(i)
	}
	if i, ok := l.ModifierIndex("Mod4"); ok {
		s.meta = keymap.Bit(i)
	}
	return s
}

// specialSyms maps tcell function keys to the keysyms that carry them
// on a layout. Control-byte aliases (Tab, Enter, Backspace, Escape)
// resolve to the named key; the chords sharing their byte cannot be
// told apart by a terminal.
var specialSyms = map[tcell.Key]keysym.Symbol{
	tcell.KeyEnter:      keysym.Return,
	tcell.KeyTab:        keysym.Tab,
	tcell.KeyBacktab:    keysym.ISOLeftTab,
	tcell.KeyEscape:     keysym.Escape,
	tcell.KeyBackspace:  keysym.Backspace,
	tcell.KeyBackspace2: keysym.Backspace,
	tcell.KeyDelete:     keysym.Delete,
	tcell.KeyInsert:     keysym.Insert,
	tcell.KeyHome:       keysym.Home,
	tcell.KeyEnd:        keysym.End,
	tcell.KeyPgUp:       keysym.PageUp,
	tcell.KeyPgDn:       keysym.PageDown,
	tcell.KeyUp:         keysym.Up,
	tcell.KeyDown:       keysym.Down,
	tcell.KeyLeft:       keysym.Left,
	tcell.KeyRight:      keysym.Right,
	tcell.KeyF1:         keysym.F1,
	tcell.KeyF2:         keysym.F2,
	tcell.KeyF3:         keysym.F3,
	tcell.KeyF4:         keysym.F4,
	tcell.KeyF5:         keysym.F5,
	tcell.KeyF6:         keysym.F6,
	tcell.KeyF7:         keysym.F7,
	tcell.KeyF8:         keysym.F8,
	tcell.KeyF9:         keysym.F9,
	tcell.KeyF10:        keysym.F10,
	tcell.KeyF11:        keysym.F11,
	tcell.KeyF12:        keysym.F12,
}

// transitions synthesizes the press/release pair for one terminal key
// event. quit reports the probe's exit chord. Events the layout
// cannot place synthesize nothing.
func (s synthesizer) transitions(k tcell.Key, r rune, mod tcell.ModMask) (ts []input.Transition, quit bool) {
	if k == tcell.KeyCtrlC || k == tcell.KeyCtrlD {
		return nil, true
	}

	mods := s.rawMods(mod)
	var sym keysym.Symbol
	switch {
	case k == tcell.KeyRune:
		sym = keysym.FromRune(r)
	case specialSyms[k] != keysym.None:
		sym = specialSyms[k]
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		sym = keysym.FromRune('a' + rune(k-tcell.KeyCtrlA))
		mods |= s.control
	default:
		return nil, false
	}

	pos, ok := s.layout.ReverseLookup(sym)
	if !ok {
		return nil, false
	}
	mods |= pos.Mods

	press := input.Transition{
		Keycode:   pos.Keycode,
		Action:    key.ActionPress,
		Depressed: mods,
		BaseGroup: pos.Group,
	}
	release := press
	release.Action = key.ActionRelease
	return []input.Transition{press, release}, false
}

func (s synthesizer) rawMods(mod tcell.ModMask) keymap.Mods {
	var m keymap.Mods
	if mod&tcell.ModShift != 0 {
		m |= s.shift
	}
	if mod&tcell.ModCtrl != 0 {
		m |= s.control
	}
	if mod&tcell.ModAlt != 0 {
		m |= s.alt
	}
	if mod&tcell.ModMeta != 0 {
		m |= s.meta
	}
	return m
}
