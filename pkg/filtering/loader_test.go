package filtering

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSourcesMergesFiles(t *testing.T) {
	tmpDir := t.TempDir()
	first := writeTempFile(t, tmpDir, "first.txt", "first.example.com\n")
	second := writeTempFile(t, tmpDir, "second.txt", "0.0.0.0 second.example.com\n")

	sources := BuildSources(map[string]ListConfig{
		"first":    {Enabled: true, Path: first},
		"disabled": {Enabled: false, Path: first},
	}, []string{second}, false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	set, err := LoadSources(context.Background(), sources, logger, 0)
	if err != nil {
		t.Fatalf("LoadSources returned error: %v", err)
	}

	if !set.Contains("first.example.com") {
		t.Error("expected first.example.com to be present")
	}
	if !set.Contains("second.example.com") {
		t.Error("expected second.example.com to be present")
	}
}

func TestLoadSourcesSkipsMissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	good := writeTempFile(t, tmpDir, "good.txt", "good.example.com\n")
	sources := []Source{
		{ID: "missing", Location: filepath.Join(tmpDir, "missing.txt"), Enabled: true},
		{ID: "good", Location: good, Enabled: true},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	set, err := LoadSources(context.Background(), sources, logger, 0)
	if err != nil {
		t.Fatalf("LoadSources returned error: %v", err)
	}
	if !set.Contains("good.example.com") {
		t.Error("expected good.example.com to be present")
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}
}

func TestLoadSourcesBuiltin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	set, err := LoadSources(context.Background(), BuildSources(nil, nil, true), logger, 0)
	if err != nil {
		t.Fatalf("LoadSources returned error: %v", err)
	}
	if set.Len() != len(DefaultTrackers) {
		t.Errorf("Len() = %d, want %d", set.Len(), len(DefaultTrackers))
	}
	if !set.Contains("www.google-analytics.com") {
		t.Error("expected built-in list to cover google-analytics.com subdomains")
	}
}

func TestLoadSourcesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := LoadSources(ctx, BuildSources(nil, nil, true), logger, 0); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestLoadAllowlistParsesComments(t *testing.T) {
	path := writeTempFile(t, t.TempDir(), "allow.txt", strings.Join([]string{
		"# comment",
		"allow.example.com",
		"; another comment",
		"*.safe.example.com",
	}, "\n"))
	set, err := LoadAllowlist(path, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	if err != nil {
		t.Fatalf("LoadAllowlist returned error: %v", err)
	}
	if !set.Contains("allow.example.com") {
		t.Error("expected allow.example.com to be allowed")
	}
	if !set.Contains("host.safe.example.com") {
		t.Error("expected host.safe.example.com to be allowed")
	}

	empty, err := LoadAllowlist("", nil, 0)
	if err != nil || empty.Len() != 0 {
		t.Errorf("LoadAllowlist(\"\") = (%d entries, %v), want empty set", empty.Len(), err)
	}
}

func TestBuildSourcesOrder(t *testing.T) {
	sources := BuildSources(map[string]ListConfig{
		"zeta":   {Enabled: true, Path: "/lists/zeta.txt"},
		"alpha":  {Enabled: true, Path: " /lists/alpha.txt "},
		"nopath": {Enabled: true},
	}, []string{"", "/lists/custom.txt"}, true)

	var ids []string
	for _, s := range sources {
		ids = append(ids, s.ID)
	}
	want := []string{"builtin", "alpha", "zeta", "custom_2"}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Errorf("source ids = %v, want %v", ids, want)
	}
	if sources[1].Location != "/lists/alpha.txt" {
		t.Errorf("Location = %q, want trimmed path", sources[1].Location)
	}

	paths := Paths(sources)
	if len(paths) != 3 {
		t.Errorf("Paths() = %v, want 3 file paths", paths)
	}
}
