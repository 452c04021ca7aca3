package common

import (
	"encoding/json"
	"io"
	"sync"
)

// NDJSONWriter writes newline-delimited JSON objects to the underlying writer.
type NDJSONWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{writer: w}
}

// WriteObject marshals v and writes it followed by a newline.
func (w *NDJSONWriter) WriteObject(v any) error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.writer.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}
