// Package policy ties the decision packages together on behalf of a browser
// shell. It owns the state the decision functions never read: the tracker
// blocking toggle, the current lists and the blocked request counter.
package policy

import (
	"log/slog"
	"sync/atomic"

	"navpolicy/pkg/filtering"
	"navpolicy/pkg/resolve"
	"navpolicy/pkg/route"
	"navpolicy/pkg/scheme"
)

// Request is an outgoing request intercepted by the shell.
type Request struct {
	URL       string
	Initiator string
	Referrer  string
	Type      ResourceType
}

// Options configures an Engine.
type Options struct {
	SearchTemplate string
	Filter         *filtering.Filter
	Counter        filtering.Counter
	Enabled        bool
	Log            *slog.Logger
}

// Engine answers navigation and request questions for a browser shell.
type Engine struct {
	searchTemplate string
	filter         *filtering.Filter
	counter        filtering.Counter
	enabled        atomic.Bool
	log            *slog.Logger
}

// New creates an Engine. A nil Filter allows every request.
func New(opts Options) *Engine {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	template := opts.SearchTemplate
	if template == "" {
		template = resolve.DefaultSearchTemplate
	}
	e := &Engine{
		searchTemplate: template,
		filter:         opts.Filter,
		counter:        opts.Counter,
		log:            log,
	}
	e.enabled.Store(opts.Enabled)
	return e
}

// Resolve turns address bar input into a target. It returns false for
// blank input.
func (e *Engine) Resolve(raw string) (resolve.Target, bool) {
	target, ok := resolve.Input(raw, e.searchTemplate)
	if ok {
		e.log.Debug("resolved input", "kind", target.Kind, "url", target.URL)
	}
	return target, ok
}

// Route decides where target opens for a view showing currentOrigin.
func (e *Engine) Route(target string, currentOrigin string) route.Decision {
	d := route.Route(target, currentOrigin)
	e.log.Debug("routed navigation", "target", target, "decision", d)
	return d
}

// CheckRequest decides whether req is blocked. Only http and https
// sub-resource requests are evaluated, and only while blocking is enabled.
func (e *Engine) CheckRequest(req Request) filtering.Verdict {
	if !e.enabled.Load() || e.filter == nil {
		return filtering.Verdict{Reason: "tracker blocking disabled"}
	}
	if req.Type == MainFrame {
		return filtering.Verdict{Reason: "top-level document"}
	}
	if s := scheme.Of(req.URL); s != "http" && s != "https" {
		return filtering.Verdict{Reason: "scheme not filtered"}
	}
	return e.filter.Check(filtering.Request{
		URL:       req.URL,
		Initiator: req.Initiator,
		Referrer:  req.Referrer,
	}, e.counter)
}

// SetEnabled toggles tracker blocking.
func (e *Engine) SetEnabled(enabled bool) {
	e.enabled.Store(enabled)
	e.log.Info("tracker blocking toggled", "enabled", enabled)
}

// Enabled reports whether tracker blocking is on.
func (e *Engine) Enabled() bool {
	return e.enabled.Load()
}
