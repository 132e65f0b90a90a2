package source

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/keyloom/internal/input"
	"github.com/dshills/keyloom/internal/input/key"
)

func collect(t *testing.T, r *Replay) []input.Transition {
	t.Helper()
	var out []input.Transition
	for tr := range r.Transitions() {
		out = append(out, tr)
	}
	return out
}

func TestReplayStreamsTransitions(t *testing.T) {
	trace := `# hand-written fixture
{"keycode": 38, "action": "press", "depressed": 1}

{"keycode": 38, "action": "release", "depressed": 1}
{"keycode": 36, "action": "press"}
`
	r := NewReplay(io.NopCloser(strings.NewReader(trace)), "fixture")
	defer r.Close()

	got := collect(t, r)
	want := []input.Transition{
		{Keycode: 38, Action: key.ActionPress, Depressed: 1},
		{Keycode: 38, Action: key.ActionRelease, Depressed: 1},
		{Keycode: 36, Action: key.ActionPress},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
	if err := r.Err(); err != nil {
		t.Errorf("Err = %v, want nil", err)
	}
}

func TestReplayDefaultsActionToPress(t *testing.T) {
	r := NewReplay(io.NopCloser(strings.NewReader(`{"keycode": 65}`)), "fixture")
	defer r.Close()

	got := collect(t, r)
	if len(got) != 1 || got[0].Action != key.ActionPress {
		t.Fatalf("got %v, want one press", got)
	}
}

func TestReplayMalformedLineStopsStream(t *testing.T) {
	trace := `{"keycode": 38, "action": "press"}
{"keycode": oops}
{"keycode": 36, "action": "press"}
`
	r := NewReplay(io.NopCloser(strings.NewReader(trace)), "fixture")
	defer r.Close()

	got := collect(t, r)
	if len(got) != 1 {
		t.Fatalf("received %d transitions, want 1 before the bad line", len(got))
	}
	err := r.Err()
	if err == nil {
		t.Fatal("Err = nil, want parse failure")
	}
	if !strings.Contains(err.Error(), "fixture:2") {
		t.Errorf("Err = %v, want the failing line named", err)
	}
}

func TestReplayUnknownActionStopsStream(t *testing.T) {
	r := NewReplay(io.NopCloser(strings.NewReader(`{"keycode": 38, "action": "wiggle"}`)), "fixture")
	defer r.Close()

	if got := collect(t, r); len(got) != 0 {
		t.Fatalf("received %d transitions, want 0", len(got))
	}
	if r.Err() == nil {
		t.Fatal("Err = nil, want unknown action reported")
	}
}

func TestReplayCloseStopsStream(t *testing.T) {
	var trace strings.Builder
	for range 1000 {
		trace.WriteString(`{"keycode": 38, "action": "press"}` + "\n")
	}
	r := NewReplay(io.NopCloser(strings.NewReader(trace.String())), "fixture")

	<-r.Transitions()
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for range r.Transitions() {
	}
	if err := r.Err(); err != nil {
		t.Errorf("Err after Close = %v, want nil", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}

func TestOpenReplayMissingFile(t *testing.T) {
	if _, err := OpenReplay(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Fatal("OpenReplay succeeded on a missing file")
	}
}

func TestRecorderRoundTrip(t *testing.T) {
	want := []input.Transition{
		{Keycode: 50, Action: key.ActionPress, Depressed: 1},
		{Keycode: 38, Action: key.ActionPress, Depressed: 1, Latched: 2, BaseGroup: 1},
		{Keycode: 38, Action: key.ActionRelease, Depressed: 1},
		{Keycode: 50, Action: key.ActionRelease},
	}

	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	for _, tr := range want {
		if err := rec.Record(tr); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	r := NewReplay(io.NopCloser(&buf), "recorded")
	defer r.Close()
	if diff := cmp.Diff(want, collect(t, r)); diff != "" {
		t.Errorf("round trip mismatch (-recorded +replayed):\n%s", diff)
	}
}

func TestCreateRecorderWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	rec, err := CreateRecorder(path)
	if err != nil {
		t.Fatalf("CreateRecorder: %v", err)
	}
	if err := rec.Record(input.Transition{Keycode: 9}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := OpenReplay(path)
	if err != nil {
		t.Fatalf("OpenReplay: %v", err)
	}
	defer r.Close()
	got := collect(t, r)
	if len(got) != 1 || got[0].Keycode != 9 {
		t.Fatalf("replayed %v, want the recorded transition", got)
	}
}
