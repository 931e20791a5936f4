// Package filestore keeps each record collection in its own JSON array file.
// Every read-modify-write runs under the collection's mutex and files are
// replaced atomically (write temp file, then rename).
package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

type collection[T any] struct {
	mu   sync.Mutex
	path string
}

func newCollection[T any](dir, name string) (*collection[T], error) {
	c := &collection[T]{path: filepath.Join(dir, name)}
	if _, err := os.Stat(c.path); errors.Is(err, fs.ErrNotExist) {
		if err := c.write([]T{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", c.path, err)
	}
	return c, nil
}

// read returns the current records. Caller must hold mu.
func (c *collection[T]) read() ([]T, error) {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	out := []T{}
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	return out, nil
}

// write replaces the file contents. Caller must hold mu (or own c exclusively).
func (c *collection[T]) write(records []T) error {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", c.path, err)
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", c.path, err)
	}
	return nil
}

// view runs fn over a snapshot of the records.
func (c *collection[T]) view(fn func([]T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, err := c.read()
	if err != nil {
		return err
	}
	return fn(records)
}

// update runs fn over the records and persists what it returns. Nothing is
// written when fn fails.
func (c *collection[T]) update(fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, err := c.read()
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	return c.write(next)
}
