package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"navpolicy/pkg/config"
	"navpolicy/pkg/filtering"
	"navpolicy/pkg/logger"
	"navpolicy/pkg/metrics"
	"navpolicy/pkg/policy"
)

// load reads the configuration and installs the configured logger. The
// caller closes the returned closer when the command is done logging.
func (o *options) load() (*config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := config.Setup(o.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	log, closer, err := logger.Setup(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, closer, nil
}

func closeLog(closer io.Closer) {
	_ = closer.Close()
}

// stack is a policy engine with the components backing it.
type stack struct {
	engine  *policy.Engine
	manager *filtering.Manager
	filter  *filtering.Filter
	counter *metrics.BlockedCounter
}

// newStack loads the tracker lists and assembles an engine. reg may be nil.
func newStack(ctx context.Context, cfg *config.Config, log *slog.Logger, reg prometheus.Registerer) (*stack, error) {
	manager := filtering.NewManager(filtering.ManagerOptions{
		Sources:       cfg.Tracking.Sources(),
		AllowlistPath: cfg.Tracking.Allowlist.Path,
		ErrorLimit:    cfg.Logging.BlocklistErrorLimit,
		Log:           log,
	})
	if err := manager.LoadOnce(ctx); err != nil {
		return nil, err
	}

	counter, err := metrics.NewBlockedCounter(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	filter := filtering.NewFilter(filtering.FilterOptions{
		Lists:          manager,
		BlockedLogPath: cfg.Tracking.BlockedLog,
		Log:            log,
	})

	engine := policy.New(policy.Options{
		SearchTemplate: cfg.Search.Template,
		Filter:         filter,
		Counter:        counter,
		Enabled:        cfg.Tracking.Enabled,
		Log:            log,
	})

	return &stack{engine: engine, manager: manager, filter: filter, counter: counter}, nil
}

func (s *stack) Close() error {
	return s.filter.Close()
}

// verdictResult is the printable form of a request verdict.
type verdictResult struct {
	URL       string `json:"url" yaml:"url"`
	Type      string `json:"type" yaml:"type"`
	Blocked   bool   `json:"blocked" yaml:"blocked"`
	Reason    string `json:"reason" yaml:"reason"`
	Host      string `json:"host,omitempty" yaml:"host,omitempty"`
	Initiator string `json:"initiator,omitempty" yaml:"initiator,omitempty"`
	Rule      string `json:"rule,omitempty" yaml:"rule,omitempty"`
}

func newVerdictResult(req policy.Request, v filtering.Verdict) verdictResult {
	return verdictResult{
		URL:       req.URL,
		Type:      req.Type.String(),
		Blocked:   v.Blocked,
		Reason:    v.Reason,
		Host:      v.Host,
		Initiator: v.Initiator,
		Rule:      v.Rule,
	}
}

func (r verdictResult) text() string {
	if r.Blocked {
		return fmt.Sprintf("blocked\t%s\trule=%s", r.URL, r.Rule)
	}
	reason := r.Reason
	if reason == "" {
		reason = "not listed"
	}
	return fmt.Sprintf("allowed\t%s\t%s", r.URL, reason)
}
