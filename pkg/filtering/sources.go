package filtering

import (
	"fmt"
	"sort"
	"strings"
)

// BuildSources converts list configuration into loadable sources. Named
// lists come first in name order, followed by custom list paths.
func BuildSources(configs map[string]ListConfig, custom []string, builtin bool) []Source {
	sources := make([]Source, 0, len(configs)+len(custom)+1)

	if builtin {
		sources = append(sources, Source{ID: "builtin", Location: BuiltinLocation, Enabled: true})
	}

	ids := make([]string, 0, len(configs))
	for id := range configs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		cfg := configs[id]
		if !cfg.Enabled || strings.TrimSpace(cfg.Path) == "" {
			continue
		}
		sources = append(sources, Source{
			ID:       id,
			Location: strings.TrimSpace(cfg.Path),
			Enabled:  true,
		})
	}

	for i, entry := range custom {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		sources = append(sources, Source{
			ID:       fmt.Sprintf("custom_%d", i+1),
			Location: trimmed,
			Enabled:  true,
		})
	}

	return sources
}

// Paths returns the file locations of the sources, skipping the built-in list.
func Paths(sources []Source) []string {
	paths := make([]string, 0, len(sources))
	for _, source := range sources {
		if source.Enabled && source.Location != BuiltinLocation {
			paths = append(paths, source.Location)
		}
	}
	return paths
}
