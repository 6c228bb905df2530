package filtering

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"
)

func TestManagerKeepsListsOnError(t *testing.T) {
	tmpDir := t.TempDir()
	list := writeTempFile(t, tmpDir, "list.txt", "tracker.example\n")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	manager := NewManager(ManagerOptions{
		Sources:       []Source{{ID: "list", Location: list, Enabled: true}},
		AllowlistPath: tmpDir + "/missing-allowlist.txt",
		Log:           logger,
	})
	if err := manager.LoadOnce(context.Background()); err == nil {
		t.Fatal("expected error for a missing allowlist")
	}
	if manager.Blocklist().Len() != 0 {
		t.Error("expected the previous, empty blocklist to stay in effect")
	}
}

func TestManagerWatchReloads(t *testing.T) {
	tmpDir := t.TempDir()
	list := writeTempFile(t, tmpDir, "list.txt", "first.example\n")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	manager := NewManager(ManagerOptions{
		Sources:  []Source{{ID: "list", Location: list, Enabled: true}},
		Debounce: 20 * time.Millisecond,
		Log:      logger,
	})
	if err := manager.LoadOnce(context.Background()); err != nil {
		t.Fatalf("LoadOnce returned error: %v", err)
	}
	if !manager.Blocklist().Contains("first.example") {
		t.Fatal("expected first.example after initial load")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- manager.Watch(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Watch returned error: %v", err)
		}
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(list, []byte("second.example\n"), 0o600); err != nil {
		t.Fatalf("rewrite list: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if manager.Blocklist().Contains("second.example") {
			if manager.Blocklist().Contains("first.example") {
				t.Error("expected first.example to be gone after reload")
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("blocklist was not reloaded after the file changed")
}

func TestManagerWatchWithoutFiles(t *testing.T) {
	manager := NewManager(ManagerOptions{Sources: BuildSources(nil, nil, true)})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := manager.Watch(ctx); err != nil {
		t.Errorf("Watch returned error: %v", err)
	}
}

func TestManagerSnapshotIsConsistent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := NewManager(ManagerOptions{Log: logger})
	filter := NewFilter(FilterOptions{Lists: manager, Log: logger})

	// Each generation allows the tracker. Only a blocklist from the first
	// paired with the allowlist of the second would block it.
	listed := func() (*DomainSet, *DomainSet) {
		return NewDomainSetFrom("tracker.example"), NewDomainSetFrom("tracker.example")
	}
	empty := func() (*DomainSet, *DomainSet) {
		return NewDomainSet(), NewDomainSet()
	}
	manager.store(listed())

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			if i%2 == 0 {
				manager.store(empty())
			} else {
				manager.store(listed())
			}
		}
		close(done)
	}()

	counter := &countingCounter{}
	req := Request{URL: "https://tracker.example/p.gif", Initiator: "https://news.example.org/"}
	for {
		select {
		case <-done:
			wg.Wait()
			if got := counter.n.Load(); got != 0 {
				t.Errorf("%d requests were blocked by a mixed list generation", got)
			}
			return
		default:
			if v := filter.Check(req, counter); v.Blocked {
				t.Fatalf("blocked with rule %q; lists from different loads were combined", v.Rule)
			}
		}
	}
}

func TestManagerSnapshotAfterLoad(t *testing.T) {
	tmpDir := t.TempDir()
	list := writeTempFile(t, tmpDir, "list.txt", "tracker.example\n")
	allow := writeTempFile(t, tmpDir, "allow.txt", "ok.tracker.example\n")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	manager := NewManager(ManagerOptions{
		Sources:       []Source{{ID: "list", Location: list, Enabled: true}},
		AllowlistPath: allow,
		Log:           logger,
	})
	if err := manager.LoadOnce(context.Background()); err != nil {
		t.Fatalf("LoadOnce returned error: %v", err)
	}

	lists := manager.Snapshot()
	if !lists.Block.Contains("tracker.example") || !lists.Allow.Contains("ok.tracker.example") {
		t.Errorf("Snapshot() = block %d entries, allow %d entries", lists.Block.Len(), lists.Allow.Len())
	}
}
