package compose

import (
	"errors"
	"testing"

	"github.com/dshills/keyloom/internal/input/keysym"
)

func sym(r rune) keysym.Symbol {
	return keysym.FromRune(r)
}

func TestTableAdd(t *testing.T) {
	tbl := NewTable("test")
	if err := tbl.Add([]keysym.Symbol{keysym.DeadAcute, sym('a')}, "á", sym('á')); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := tbl.Sequences(); got != 1 {
		t.Errorf("Sequences() = %d, want 1", got)
	}
}

func TestTableAddErrors(t *testing.T) {
	tbl := NewTable("test")
	tests := []struct {
		name  string
		seq   []keysym.Symbol
		text  string
		final keysym.Symbol
	}{
		{"empty sequence", nil, "x", sym('x')},
		{"no result", []keysym.Symbol{keysym.DeadAcute, sym('a')}, "", keysym.None},
		{"nosymbol in sequence", []keysym.Symbol{keysym.DeadAcute, keysym.None}, "x", sym('x')},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tbl.Add(tt.seq, tt.text, tt.final)
			if !errors.Is(err, ErrBadSequence) {
				t.Errorf("Add() error = %v, want ErrBadSequence", err)
			}
		})
	}
}

func TestTableLaterDefinitionWins(t *testing.T) {
	acuteA := []keysym.Symbol{keysym.DeadAcute, sym('a')}

	t.Run("redefinition replaces", func(t *testing.T) {
		tbl := NewTable("test")
		if err := tbl.Add(acuteA, "x", sym('x')); err != nil {
			t.Fatal(err)
		}
		if err := tbl.Add(acuteA, "á", sym('á')); err != nil {
			t.Fatal(err)
		}
		res := NewSession(tbl).Feed(keysym.DeadAcute)
		if res.Status != FeedComposing {
			t.Fatalf("first feed status = %v, want composing", res.Status)
		}
		s := NewSession(tbl)
		s.Feed(keysym.DeadAcute)
		res = s.Feed(sym('a'))
		if res.Status != FeedComposed || res.Text != "á" {
			t.Errorf("Feed() = %+v, want composed %q", res, "á")
		}
		if got := tbl.Sequences(); got != 1 {
			t.Errorf("Sequences() = %d, want 1", got)
		}
	})

	t.Run("longer sequence unterminates shorter", func(t *testing.T) {
		tbl := NewTable("test")
		if err := tbl.Add([]keysym.Symbol{keysym.MultiKey, sym('-')}, "-", sym('-')); err != nil {
			t.Fatal(err)
		}
		if err := tbl.Add([]keysym.Symbol{keysym.MultiKey, sym('-'), sym('-')}, "–", sym('–')); err != nil {
			t.Fatal(err)
		}
		s := NewSession(tbl)
		s.Feed(keysym.MultiKey)
		res := s.Feed(sym('-'))
		if res.Status != FeedComposing {
			t.Errorf("shadowed prefix status = %v, want composing", res.Status)
		}
		res = s.Feed(sym('-'))
		if res.Status != FeedComposed || res.Text != "–" {
			t.Errorf("Feed() = %+v, want composed %q", res, "–")
		}
		if got := tbl.Sequences(); got != 1 {
			t.Errorf("Sequences() = %d, want 1", got)
		}
	})

	t.Run("shorter sequence drops subtree", func(t *testing.T) {
		tbl := NewTable("test")
		if err := tbl.Add([]keysym.Symbol{keysym.MultiKey, sym('-'), sym('-')}, "–", sym('–')); err != nil {
			t.Fatal(err)
		}
		if err := tbl.Add([]keysym.Symbol{keysym.MultiKey, sym('-')}, "-", sym('-')); err != nil {
			t.Fatal(err)
		}
		s := NewSession(tbl)
		s.Feed(keysym.MultiKey)
		res := s.Feed(sym('-'))
		if res.Status != FeedComposed || res.Text != "-" {
			t.Errorf("Feed() = %+v, want composed %q", res, "-")
		}
		if got := tbl.Sequences(); got != 1 {
			t.Errorf("Sequences() = %d, want 1", got)
		}
	})
}

func TestTableStarters(t *testing.T) {
	tbl := NewTable("test")
	_ = tbl.Add([]keysym.Symbol{keysym.DeadAcute, sym('a')}, "á", sym('á'))
	_ = tbl.Add([]keysym.Symbol{keysym.DeadGrave, sym('a')}, "à", sym('à'))
	_ = tbl.Add([]keysym.Symbol{keysym.DeadAcute, sym('e')}, "é", sym('é'))

	starters := tbl.Starters()
	if len(starters) != 2 {
		t.Fatalf("len(Starters()) = %d, want 2", len(starters))
	}
	if starters[0] != keysym.DeadGrave || starters[1] != keysym.DeadAcute {
		t.Errorf("Starters() = %v, want [dead_grave dead_acute]", starters)
	}
}

func TestNilTableAccessors(t *testing.T) {
	var tbl *Table
	if got := tbl.Sequences(); got != 0 {
		t.Errorf("nil Sequences() = %d, want 0", got)
	}
	if got := tbl.Starters(); got != nil {
		t.Errorf("nil Starters() = %v, want nil", got)
	}
}
