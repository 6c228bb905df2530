package filtering

import (
	"log/slog"
)

// Filter evaluates requests against the lists in effect and records
// blocked requests.
type Filter struct {
	lists         Lists
	log           *slog.Logger
	blockedLogger *blockedLogger
}

// FilterOptions configures a Filter.
type FilterOptions struct {
	Lists          Lists
	BlockedLogPath string
	Log            *slog.Logger
}

// NewFilter constructs a Filter instance.
func NewFilter(opts FilterOptions) *Filter {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	lists := opts.Lists
	if lists == nil {
		lists = StaticLists{}
	}
	return &Filter{
		lists:         lists,
		log:           log,
		blockedLogger: newBlockedLogger(opts.BlockedLogPath, log),
	}
}

// Check evaluates req. When the request is blocked, counter is incremented
// and the request is written to the blocked log. counter may be nil.
func (f *Filter) Check(req Request, counter Counter) Verdict {
	lists := f.lists.Snapshot()
	v := Evaluate(req, lists.Block, lists.Allow)
	if !v.Blocked {
		return v
	}
	if counter != nil {
		counter.Inc()
	}
	f.blockedLogger.Log(req, v)
	f.log.Debug("blocked tracking request", "host", v.Host, "initiator", v.Initiator, "rule", v.Rule)
	return v
}

// Close releases the blocked log file.
func (f *Filter) Close() error {
	return f.blockedLogger.Close()
}
