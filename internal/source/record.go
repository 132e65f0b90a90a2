package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dshills/keyloom/internal/input"
)

// Recorder writes transitions as a JSON-lines trace that Replay can
// feed back. Safe for concurrent use.
type Recorder struct {
	mu  sync.Mutex
	enc *json.Encoder
	c   io.Closer
}

// NewRecorder records onto w. The caller keeps ownership of w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: json.NewEncoder(w)}
}

// CreateRecorder records into a new trace file at path. Close
// releases the file.
func CreateRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace: %w", err)
	}
	return &Recorder{enc: json.NewEncoder(f), c: f}, nil
}

// Record appends one transition as a single JSON line.
func (r *Recorder) Record(t input.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enc.Encode(t)
}

// Close releases the trace file, if Recorder owns one.
func (r *Recorder) Close() error {
	if r.c == nil {
		return nil
	}
	return r.c.Close()
}
