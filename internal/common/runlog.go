package common

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var ErrInvalidRunEntry = errors.New("invalid run entry")

// RunEntry records one generation run.
type RunEntry struct {
	NumBits   int       `json:"numBits"`
	Radix     int       `json:"radix"`
	Rows      int64     `json:"rows"`
	Output    string    `json:"output"`
	Sha256    string    `json:"sha256,omitempty"`
	ComputeMs float64   `json:"computeMs"`
	WriteMs   float64   `json:"writeMs"`
	Ts        time.Time `json:"ts"`
}

// Validate rejects entries that could not have come from a completed run.
func (e RunEntry) Validate() error {
	switch {
	case e.Output == "":
		return fmt.Errorf("%w: missing output", ErrInvalidRunEntry)
	case e.NumBits < 1:
		return fmt.Errorf("%w: digit count %d", ErrInvalidRunEntry, e.NumBits)
	case e.Radix < 1:
		return fmt.Errorf("%w: radix %d", ErrInvalidRunEntry, e.Radix)
	case e.Rows < 1:
		return fmt.Errorf("%w: %d rows", ErrInvalidRunEntry, e.Rows)
	}
	return nil
}

// RunLog is a JSONL history of runs, one entry per line, oldest first.
type RunLog struct {
	path string
	mu   sync.Mutex
}

func NewRunLog(path string) *RunLog {
	return &RunLog{path: path}
}

func (r *RunLog) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// Append validates entry, stamps it if needed and adds it to the history.
func (r *RunLog) Append(entry RunEntry) error {
	if r == nil {
		return errors.New("nil run log")
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.Ts.IsZero() {
		entry.Ts = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(f).Encode(entry); err != nil {
		f.Close()
		return fmt.Errorf("encode run entry: %w", err)
	}
	return f.Close()
}

// Entries returns the whole history. Blank lines are skipped; a malformed or
// invalid line is reported with its line number.
func (r *RunLog) Entries() ([]RunEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.Open(r.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var entries []RunEntry
	sc := bufio.NewScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var entry RunEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", r.path, lineNo, err)
		}
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", r.path, lineNo, err)
		}
		entries = append(entries, entry)
	}
	return entries, sc.Err()
}

// Latest returns the most recent entry for output, or the most recent entry
// overall when output is empty. ok is false when nothing matches.
func (r *RunLog) Latest(output string) (entry RunEntry, ok bool, err error) {
	entries, err := r.Entries()
	if err != nil {
		return RunEntry{}, false, err
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if output == "" || filepath.Clean(entries[i].Output) == filepath.Clean(output) {
			return entries[i], true, nil
		}
	}
	return RunEntry{}, false, nil
}
