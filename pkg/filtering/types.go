package filtering

// Source describes a configured tracker list.
type Source struct {
	ID       string
	Location string
	Enabled  bool
}

// ListConfig defines a tracker list entry in the configuration file.
type ListConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ParseStats summarises list parsing results.
type ParseStats struct {
	TotalLines int
	Domains    int
	Invalid    int
	Skipped    int
}

// Request is an outgoing sub-resource request as seen by the filter.
// Initiator is the URL of the page that issued it; Referrer is used when
// Initiator is missing or unparseable.
type Request struct {
	URL       string
	Initiator string
	Referrer  string
}

// Verdict is the result of evaluating a request. Rule names the list entry
// that matched when the request is blocked.
type Verdict struct {
	Blocked   bool
	Reason    string
	Host      string
	Initiator string
	Rule      string
}

// Counter receives one increment per blocked request. It is owned by the
// caller; the filter never reads it.
type Counter interface {
	Inc()
}

// ListSnapshot is a blocklist and allowlist loaded together.
type ListSnapshot struct {
	Block *DomainSet
	Allow *DomainSet
}

// Lists supplies the lists in effect. Snapshot returns both sets from the
// same load so one evaluation never mixes generations.
type Lists interface {
	Snapshot() ListSnapshot
}

// StaticLists is a Lists implementation over fixed sets.
type StaticLists struct {
	Block *DomainSet
	Allow *DomainSet
}

func (s StaticLists) Snapshot() ListSnapshot {
	return ListSnapshot{Block: s.Block, Allow: s.Allow}
}
