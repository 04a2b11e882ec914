package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileDeadLetters appends one JSON document per line to a file. Tasks that
// could not be completed land here so they can be replayed by hand.
type FileDeadLetters struct {
	mu   sync.Mutex
	path string
}

func NewFileDeadLetters(path string) *FileDeadLetters {
	return &FileDeadLetters{path: path}
}

func (f *FileDeadLetters) Append(rec any) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode dead letter: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	// Restrictive permissions: entries carry email addresses
	fh, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := fh.Write(append(b, '\n')); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
