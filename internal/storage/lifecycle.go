package storage

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrJobInFlight means another render job currently owns the working
// directory for that (identity, year).
var ErrJobInFlight = errors.New("render already in progress for this identity and year")

// Manager owns working directories and their cleanup. A working directory is
// exclusively held by one job between Acquire and Release.
type Manager struct {
	layout Layout

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewManager creates a Manager rooted at the given content and exports roots.
func NewManager(contentRoot, exportsRoot string) *Manager {
	return &Manager{
		layout:   Layout{ContentRoot: contentRoot, ExportsRoot: exportsRoot},
		inflight: make(map[string]struct{}),
	}
}

// Layout exposes path derivation for the managed roots.
func (m *Manager) Layout() Layout {
	return m.layout
}

// Acquire takes exclusive ownership of the (identity, year) working
// directory. A second acquire while one is held returns ErrJobInFlight.
func (m *Manager) Acquire(identity, year string) error {
	key := identity + "/" + year

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.inflight[key]; held {
		return ErrJobInFlight
	}
	m.inflight[key] = struct{}{}
	return nil
}

// Release gives up ownership taken by Acquire. Safe to call when not held.
func (m *Manager) Release(identity, year string) {
	key := identity + "/" + year

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflight, key)
}

// Prepare idempotently creates the working directory tree and the exports
// root, returning the working directory path.
func (m *Manager) Prepare(identity, year string) (string, error) {
	dirs := []string{
		m.layout.PrimaryDir(identity, year),
		m.layout.SecondaryDir(identity, year),
		m.layout.CombinedDir(identity, year),
		m.layout.ExportsRoot,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("prepare %s: %w", dir, err)
		}
	}
	return m.layout.WorkDir(identity, year), nil
}

// Finalize deletes the raw capture and composite intermediates for an
// (identity, year). The rendered video and the uploaded audio track are left
// alone. Missing files are not an error, so Finalize is idempotent.
func (m *Manager) Finalize(identity, year string) error {
	paths := []string{
		m.layout.PrimaryDir(identity, year),
		m.layout.SecondaryDir(identity, year),
		m.layout.CombinedDir(identity, year),
		m.layout.EndcardPath(identity, year),
	}
	var errs []error
	for _, path := range paths {
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}
