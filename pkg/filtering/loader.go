package filtering

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sourcegraph/conc/pool"
)

const maxParallelLoads = 4

// LoadSources loads enabled sources concurrently and merges them into a
// single DomainSet. A source that fails to load is logged and skipped.
func LoadSources(ctx context.Context, sources []Source, log *slog.Logger, errorLimit int) (*DomainSet, error) {
	if log == nil {
		log = slog.Default()
	}

	p := pool.NewWithResults[*DomainSet]().WithMaxGoroutines(maxParallelLoads)
	for _, source := range sources {
		if !source.Enabled {
			continue
		}
		source := source
		p.Go(func() *DomainSet {
			if ctx.Err() != nil {
				return nil
			}
			set, err := loadSource(source, log, errorLimit)
			if err != nil {
				log.Error("failed to load tracker list", "list", source.ID, "error", err)
				return nil
			}
			return set
		})
	}

	merged := NewDomainSet()
	for _, set := range p.Wait() {
		merged.Merge(set)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return merged, nil
}

// LoadAllowlist reads the allowlist file. An empty path yields an empty set.
func LoadAllowlist(path string, log *slog.Logger, errorLimit int) (*DomainSet, error) {
	if path == "" {
		return NewDomainSet(), nil
	}
	return loadSource(Source{ID: "allowlist", Location: path, Enabled: true}, log, errorLimit)
}

func loadSource(source Source, log *slog.Logger, errorLimit int) (*DomainSet, error) {
	r, closeFn, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeFn(); err != nil {
			log.Warn("failed to close tracker list", "list", source.ID, "error", err)
		}
	}()

	set, _, err := parseList(r, parseOptions{
		ListID:     source.ID,
		Logger:     log,
		ErrorLimit: errorLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source.ID, err)
	}
	return set, nil
}

func openSource(source Source) (io.Reader, func() error, error) {
	if source.Location == BuiltinLocation {
		data := []byte(strings.Join(DefaultTrackers, "\n"))
		return bytes.NewReader(data), func() error { return nil }, nil
	}
	file, err := os.Open(source.Location) // #nosec G304 -- path is provided via config.
	if err != nil {
		return nil, nil, fmt.Errorf("open list: %w", err)
	}
	return file, file.Close, nil
}
