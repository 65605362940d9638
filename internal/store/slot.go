// Package store implements the persistent document store: one named storage
// slot holding the whole JSON document, read and written wholesale on every
// operation. Writes are last-writer-wins at document granularity.
package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// DefaultSlotName is the historical storage key of the document.
const DefaultSlotName = "barVeredalesDB"

// Slot is a single named storage cell with whole-value semantics, the
// server-side analog of one browser storage key.
type Slot interface {
	// Read returns the stored value, or ok=false when the slot is empty.
	Read(ctx context.Context) (data []byte, ok bool, err error)
	Write(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}

// ── In-memory slot ────────────────────────────────────────────────────────────

type memorySlot struct {
	mu   sync.RWMutex
	data []byte
	ok   bool
}

// NewMemorySlot returns a process-local slot. Used by tests and as a
// zero-dependency fallback.
func NewMemorySlot() Slot { return &memorySlot{} }

func (m *memorySlot) Read(context.Context) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.ok {
		return nil, false, nil
	}
	cp := make([]byte, len(m.data))
	copy(cp, m.data)
	return cp, true, nil
}

func (m *memorySlot) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.ok = true
	return nil
}

func (m *memorySlot) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data, m.ok = nil, false
	return nil
}

// ── File slot ─────────────────────────────────────────────────────────────────

type fileSlot struct{ path string }

// NewFileSlot stores the document as a single JSON file under dir, named after
// the slot.
func NewFileSlot(dir, name string) Slot {
	return &fileSlot{path: filepath.Join(dir, name+".json")}
}

func (f *fileSlot) Read(context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *fileSlot) Write(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	// Write-then-rename so a crash mid-write never leaves a truncated document.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *fileSlot) Delete(context.Context) error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
