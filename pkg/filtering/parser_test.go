package filtering

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestParseListFormats(t *testing.T) {
	input := strings.Join([]string{
		"\ufeff# Comment line",
		"127.0.0.1 bad.example.com",
		"0.0.0.0 also.bad.example.com # trailing comment",
		"bad.example.net",
		"*.wild.example.org",
		"; another comment",
		"! adblock comment",
		"[Adblock Plus 2.0]",
		"||pixel.example.io^",
		"||cdn.example.io/ads.js^",
		"||thirdparty.example.io^$third-party",
		"@@||allowed.example.io^",
		"example.com##.banner",
		"Трекер.example",
		"",
	}, "\n")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	set, stats, err := parseList(strings.NewReader(input), parseOptions{
		ListID:     "test",
		Logger:     logger,
		ErrorLimit: 5,
	})
	if err != nil {
		t.Fatalf("parseList returned error: %v", err)
	}

	for _, name := range []string{
		"bad.example.com",
		"also.bad.example.com",
		"bad.example.net",
		"host.wild.example.org",
		"pixel.example.io",
		"xn--e1aaowdh.example",
	} {
		if !set.Contains(name) {
			t.Errorf("expected %s to be listed", name)
		}
	}
	for _, name := range []string{"cdn.example.io", "thirdparty.example.io", "allowed.example.io", "example.com"} {
		if set.Contains(name) {
			t.Errorf("did not expect %s to be listed", name)
		}
	}
	if stats.Domains != 6 {
		t.Errorf("Domains = %d, want 6", stats.Domains)
	}
	if stats.Skipped != 4 {
		t.Errorf("Skipped = %d, want 4", stats.Skipped)
	}
	if stats.Invalid != 0 {
		t.Errorf("Invalid = %d, want 0", stats.Invalid)
	}
}

func TestParseListErrorLimit(t *testing.T) {
	input := strings.Join([]string{
		"good.example.com",
		"http://bad.example.com",
		"1.2.3.4",
		"bad..example.com",
		"foo/bar",
		"bad_chars!.example",
	}, "\n")

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, stats, err := parseList(strings.NewReader(input), parseOptions{
		ListID:     "test",
		Logger:     logger,
		ErrorLimit: 2,
	})
	if err != nil {
		t.Fatalf("parseList returned error: %v", err)
	}

	logText := logBuf.String()
	if got := strings.Count(logText, "invalid tracker list entry"); got != 2 {
		t.Fatalf("expected 2 invalid entry logs, got %d", got)
	}
	if !strings.Contains(logText, "tracker list parsing errors suppressed") {
		t.Error("expected summary log for suppressed errors")
	}
	if stats.Invalid != 4 {
		t.Errorf("Invalid = %d, want 4", stats.Invalid)
	}
}

func TestParseListErrorLimitZeroIsSilent(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	_, _, err := parseList(strings.NewReader("foo/bar\nhttp://x\n"), parseOptions{ListID: "quiet", Logger: logger})
	if err != nil {
		t.Fatalf("parseList returned error: %v", err)
	}
	if strings.Contains(logBuf.String(), "invalid tracker list entry") {
		t.Error("expected no per-entry logs with a zero error limit")
	}
}
