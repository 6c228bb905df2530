package filtering

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

type blockedLogger struct {
	file *os.File
	mu   sync.Mutex
	now  func() time.Time
}

func newBlockedLogger(path string, log *slog.Logger) *blockedLogger {
	if path == "" {
		return nil
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- path provided via config.
	if err != nil {
		log.Error("failed to open blocked log file", "path", path, "error", err)
		return nil
	}
	return &blockedLogger{file: file, now: time.Now}
}

func (b *blockedLogger) Log(req Request, v Verdict) {
	if b == nil || b.file == nil {
		return
	}
	line := fmt.Sprintf("%s initiator=%s host=%s rule=%s url=%q\n",
		b.now().UTC().Format(time.RFC3339),
		v.Initiator,
		v.Host,
		v.Rule,
		req.URL,
	)
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.file.WriteString(line)
}

func (b *blockedLogger) Close() error {
	if b == nil || b.file == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.file.Close()
}
