package filtering

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// Manager keeps the in-memory blocklist and allowlist current.
type Manager struct {
	sources       []Source
	allowlistPath string
	errorLimit    int
	debounce      time.Duration
	log           *slog.Logger
	lists         atomic.Pointer[ListSnapshot]
}

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	Sources       []Source
	AllowlistPath string
	ErrorLimit    int
	Debounce      time.Duration
	Log           *slog.Logger
}

// NewManager creates a Manager with empty lists. Call LoadOnce to fill them.
func NewManager(opts ManagerOptions) *Manager {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	m := &Manager{
		sources:       opts.Sources,
		allowlistPath: opts.AllowlistPath,
		errorLimit:    opts.ErrorLimit,
		debounce:      debounce,
		log:           log,
	}
	m.store(NewDomainSet(), NewDomainSet())
	return m
}

// LoadOnce reloads all sources and the allowlist and swaps them in. On
// error the previous lists stay in effect.
func (m *Manager) LoadOnce(ctx context.Context) error {
	blocklist, err := LoadSources(ctx, m.sources, m.log, m.errorLimit)
	if err != nil {
		return fmt.Errorf("load tracker lists: %w", err)
	}
	allowlist, err := LoadAllowlist(m.allowlistPath, m.log, m.errorLimit)
	if err != nil {
		return fmt.Errorf("load allowlist: %w", err)
	}
	m.store(blocklist, allowlist)
	m.log.Info("tracker lists loaded", "blocked", blocklist.Len(), "allowed", allowlist.Len())
	return nil
}

// Watch reloads the lists whenever one of the list files changes. Events
// are debounced. Blocks until ctx is cancelled.
func (m *Manager) Watch(ctx context.Context) error {
	paths := Paths(m.sources)
	if m.allowlistPath != "" {
		paths = append(paths, m.allowlistPath)
	}
	if len(paths) == 0 {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Directories are watched so that files replaced by rename are seen.
	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", p, err)
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %q: %w", dir, err)
		}
		dirs[dir] = true
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				pending = time.After(m.debounce)
			}

		case <-pending:
			pending = nil
			if err := m.LoadOnce(ctx); err != nil {
				m.log.Error("failed to reload tracker lists", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.log.Warn("file watcher error", "error", err)
		}
	}
}

func (m *Manager) store(blocklist *DomainSet, allowlist *DomainSet) {
	m.lists.Store(&ListSnapshot{Block: blocklist, Allow: allowlist})
}

// Snapshot returns the most recently loaded lists.
func (m *Manager) Snapshot() ListSnapshot {
	if lists := m.lists.Load(); lists != nil {
		return *lists
	}
	return ListSnapshot{Block: NewDomainSet(), Allow: NewDomainSet()}
}

// Blocklist returns the most recently loaded blocklist.
func (m *Manager) Blocklist() *DomainSet {
	return m.Snapshot().Block
}

// Allowlist returns the most recently loaded allowlist.
func (m *Manager) Allowlist() *DomainSet {
	return m.Snapshot().Allow
}
