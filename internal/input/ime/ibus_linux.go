//go:build linux

package ime

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/godbus/dbus/v5"

	"github.com/dshills/keyloom/internal/input/key"
	"github.com/dshills/keyloom/internal/input/keysym"
)

const (
	ibusService       = "org.freedesktop.IBus"
	ibusPath          = dbus.ObjectPath("/org/freedesktop/IBus")
	ibusInterface     = "org.freedesktop.IBus"
	ifaceInputContext = "org.freedesktop.IBus.InputContext"
)

// IBus modifier state masks, matching the X11 bit positions.
const (
	ibusShiftMask   uint32 = 1 << 0
	ibusLockMask    uint32 = 1 << 1
	ibusControlMask uint32 = 1 << 2
	ibusMod1Mask    uint32 = 1 << 3
	ibusMod2Mask    uint32 = 1 << 4
	ibusMod4Mask    uint32 = 1 << 6
	ibusReleaseMask uint32 = 1 << 30
)

// Input context capability bits.
const (
	capPreeditText uint32 = 1 << 0
	capFocus       uint32 = 1 << 3
)

// IBusEditor is an Editor backed by an IBus input context on the
// daemon's private bus. Key events go out as asynchronous
// ProcessKeyEvent calls; verdicts and composition results come back
// as bus replies and signals, surfaced on the Replies channel.
type IBusEditor struct {
	conn *dbus.Conn
	obj  dbus.BusObject

	replies chan Reply
	signals chan *dbus.Signal
	calls   chan *dbus.Call
	done    chan struct{}

	mu      sync.Mutex
	pending map[*dbus.Call]uint32

	focused atomic.Bool

	closeOnce sync.Once
	closeErr  error
}

// DialIBus connects to the IBus daemon, creates an input context and
// marks it focused. The caller owns the returned editor and must
// Close it.
func DialIBus() (Editor, error) {
	addr, err := ibusAddress()
	if err != nil {
		return nil, err
	}
	conn, err := dbus.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("ime: dial ibus: %w", err)
	}
	if err := conn.Auth(nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ime: ibus auth: %w", err)
	}
	if err := conn.Hello(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ime: ibus hello: %w", err)
	}

	var path dbus.ObjectPath
	bus := conn.Object(ibusService, ibusPath)
	if err := bus.Call(ibusInterface+".CreateInputContext", 0, "keyloom").Store(&path); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ime: create input context: %w", err)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(path),
		dbus.WithMatchInterface(ifaceInputContext),
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ime: subscribe input context: %w", err)
	}

	e := &IBusEditor{
		conn:    conn,
		obj:     conn.Object(ibusService, path),
		replies: make(chan Reply, 16),
		signals: make(chan *dbus.Signal, 64),
		calls:   make(chan *dbus.Call, 64),
		done:    make(chan struct{}),
		pending: make(map[*dbus.Call]uint32),
	}
	conn.Signal(e.signals)

	e.obj.Go(ifaceInputContext+".SetCapabilities", dbus.FlagNoReplyExpected, nil,
		capPreeditText|capFocus)
	e.FocusIn()

	go e.run()
	return e, nil
}

// Focused reports whether the input context holds focus.
func (e *IBusEditor) Focused() bool {
	return e.focused.Load()
}

// FocusIn tells the daemon this context owns the keyboard.
func (e *IBusEditor) FocusIn() {
	e.focused.Store(true)
	e.obj.Go(ifaceInputContext+".FocusIn", dbus.FlagNoReplyExpected, nil)
}

// FocusOut relinquishes the keyboard.
func (e *IBusEditor) FocusOut() {
	e.focused.Store(false)
	e.obj.Go(ifaceInputContext+".FocusOut", dbus.FlagNoReplyExpected, nil)
}

// ProcessKey submits the event as an asynchronous ProcessKeyEvent
// call. The daemon's handled/ignored verdict surfaces later as a
// ReplyHandled or ReplyIgnored carrying the serial.
func (e *IBusEditor) ProcessKey(ev key.Event, keycode, serial uint32) {
	// IBus wants the hardware code, without the X11 offset.
	hw := keycode
	if hw >= 8 {
		hw -= 8
	}
	// The pending entry must exist before the reply can be drained.
	e.mu.Lock()
	call := e.obj.Go(ifaceInputContext+".ProcessKeyEvent", 0, e.calls,
		uint32(ev.Symbol), hw, ibusState(ev.Mods, ev.Action))
	e.pending[call] = serial
	e.mu.Unlock()
}

// Replies returns the asynchronous response stream. The channel is
// closed after Close, or when the bus connection drops.
func (e *IBusEditor) Replies() <-chan Reply {
	return e.replies
}

// Close tears down the input context connection. Safe to call twice.
func (e *IBusEditor) Close() error {
	e.closeOnce.Do(func() {
		close(e.done)
		e.conn.RemoveSignal(e.signals)
		e.closeErr = e.conn.Close()
	})
	return e.closeErr
}

func (e *IBusEditor) run() {
	defer close(e.replies)
	for {
		select {
		case <-e.done:
			return
		case sig, ok := <-e.signals:
			if !ok {
				e.emit(ReplyFailed{Err: ErrNotConnected})
				return
			}
			e.handleSignal(sig)
		case call := <-e.calls:
			e.handleCall(call)
		}
	}
}

func (e *IBusEditor) emit(r Reply) {
	select {
	case e.replies <- r:
	case <-e.done:
	}
}

func (e *IBusEditor) handleSignal(sig *dbus.Signal) {
	switch sig.Name {
	case ifaceInputContext + ".CommitText":
		if len(sig.Body) >= 1 {
			if v, ok := sig.Body[0].(dbus.Variant); ok {
				if text := ibusText(v); text != "" {
					e.emit(ReplyCommit{Text: text})
				}
			}
		}

	case ifaceInputContext + ".UpdatePreeditText":
		if len(sig.Body) >= 3 {
			var text string
			if visible, _ := sig.Body[2].(bool); visible {
				if v, ok := sig.Body[0].(dbus.Variant); ok {
					text = ibusText(v)
				}
			}
			cursor, _ := sig.Body[1].(uint32)
			e.emit(ReplyPreedit{Text: text, Cursor: int(cursor)})
		}

	case ifaceInputContext + ".HidePreeditText":
		e.emit(ReplyPreedit{})

	case ifaceInputContext + ".ForwardKeyEvent":
		if len(sig.Body) >= 3 {
			keyval, _ := sig.Body[0].(uint32)
			state, _ := sig.Body[2].(uint32)
			action := key.ActionPress
			if state&ibusReleaseMask != 0 {
				action = key.ActionRelease
			}
			e.emit(ReplyForward{Symbol: keysym.Symbol(keyval), Action: action})
		}
	}
}

func (e *IBusEditor) handleCall(call *dbus.Call) {
	e.mu.Lock()
	serial, ok := e.pending[call]
	delete(e.pending, call)
	e.mu.Unlock()
	if !ok {
		return
	}
	if call.Err != nil {
		e.emit(ReplyFailed{Err: call.Err})
		return
	}
	var handled bool
	if err := call.Store(&handled); err != nil {
		e.emit(ReplyFailed{Err: err})
		return
	}
	if handled {
		e.emit(ReplyHandled{Serial: serial})
	} else {
		e.emit(ReplyIgnored{Serial: serial})
	}
}

// ibusState converts a portable modifier mask and action into the
// IBus state word.
func ibusState(mods key.Modifier, action key.Action) uint32 {
	var s uint32
	if mods.Has(key.ModShift) {
		s |= ibusShiftMask
	}
	if mods.Has(key.ModCapsLock) {
		s |= ibusLockMask
	}
	if mods.Has(key.ModControl) {
		s |= ibusControlMask
	}
	if mods.Has(key.ModAlt) {
		s |= ibusMod1Mask
	}
	if mods.Has(key.ModNumLock) {
		s |= ibusMod2Mask
	}
	if mods.Has(key.ModSuper) {
		s |= ibusMod4Mask
	}
	if action == key.ActionRelease {
		s |= ibusReleaseMask
	}
	return s
}

// ibusText extracts the string payload from a serialized IBusText
// variant: ("IBusText", attachments, text, attributes).
func ibusText(v dbus.Variant) string {
	switch val := v.Value().(type) {
	case string:
		return val
	case []interface{}:
		if len(val) >= 3 {
			if s, ok := val[2].(string); ok {
				return s
			}
		}
	}
	return ""
}

// ibusAddress locates the daemon's private bus address: the
// IBUS_ADDRESS override first, then the session address file.
func ibusAddress() (string, error) {
	if addr := os.Getenv("IBUS_ADDRESS"); addr != "" {
		return addr, nil
	}
	path, err := ibusAddressFile()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("ime: read ibus address file: %w", err)
	}
	for _, line := range strings.Split(string(b), "\n") {
		if addr, ok := strings.CutPrefix(line, "IBUS_ADDRESS="); ok {
			return strings.TrimSpace(addr), nil
		}
	}
	return "", fmt.Errorf("ime: no address in %s: %w", path, ErrNotConnected)
}

// ibusAddressFile builds the per-session address file path,
// <config>/ibus/bus/<machine-id>-unix-<display>.
func ibusAddressFile() (string, error) {
	cfg := os.Getenv("XDG_CONFIG_HOME")
	if cfg == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ime: locate config dir: %w", err)
		}
		cfg = filepath.Join(home, ".config")
	}
	id, err := machineID()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "ibus", "bus", id+"-unix-"+displaySuffix()), nil
}

func machineID() (string, error) {
	for _, p := range []string{"/var/lib/dbus/machine-id", "/etc/machine-id"} {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(b)); id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("ime: machine id unavailable: %w", ErrNotConnected)
}

func displaySuffix() string {
	if wl := os.Getenv("WAYLAND_DISPLAY"); wl != "" {
		return wl
	}
	d := strings.TrimPrefix(os.Getenv("DISPLAY"), ":")
	if i := strings.IndexByte(d, '.'); i >= 0 {
		d = d[:i]
	}
	if d == "" {
		d = "0"
	}
	return d
}
