package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"

	"navpolicy/pkg/filtering"
	"navpolicy/pkg/metrics"
	"navpolicy/pkg/policy"
)

const maxLineSize = 1 << 20

func newWatchCmd(opts *options) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Check a stream of requests read from stdin",
		Long: "Reads one request per line as url<TAB>initiator[<TAB>type] and prints a verdict for each.\n" +
			"Tracker lists are reloaded when their files change or on SIGHUP.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. 127.0.0.1:9310)")
	return cmd
}

func runWatch(cmd *cobra.Command, opts *options, metricsAddr string) error {
	cfg, log, logCloser, err := opts.load()
	if err != nil {
		return err
	}
	defer closeLog(logCloser)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var (
		registry   *prometheus.Registry
		registerer prometheus.Registerer
	)
	if metricsAddr != "" {
		registry = prometheus.NewRegistry()
		registerer = registry
	}

	s, err := newStack(ctx, cfg, log, registerer)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Warn("failed to close blocked log", "error", err)
		}
	}()

	var wg conc.WaitGroup
	wg.Go(func() {
		if err := s.manager.Watch(ctx); err != nil {
			log.Error("tracker list watcher stopped", "error", err)
		}
	})
	wg.Go(func() {
		reloadOnHangup(ctx, s.manager, log)
	})
	if registry != nil {
		srv := &http.Server{
			Addr:              metricsAddr,
			Handler:           metrics.Handler(registry),
			ReadHeaderTimeout: 5 * time.Second,
		}
		wg.Go(func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "error", err)
			}
		})
		wg.Go(func() {
			<-ctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("metrics server shutdown failed", "error", err)
			}
		})
		log.Info("serving metrics", "addr", metricsAddr)
	}

	enc := newStreamEncoder(cmd.OutOrStdout(), opts.format, func(w io.Writer, v any) error {
		_, err := fmt.Fprintln(w, v.(verdictResult).text())
		return err
	})
	checked, err := checkStream(ctx, cmd.InOrStdin(), enc, s.engine, log)
	if closeErr := enc.Close(); err == nil {
		err = closeErr
	}

	cancel()
	wg.Wait()

	log.Info("request stream finished", "checked", checked, "blocked", s.counter.Value())
	fmt.Fprintf(cmd.ErrOrStderr(), "checked %d requests, blocked %d\n", checked, s.counter.Value())
	return err
}

// checkStream evaluates every request line in r until EOF or ctx is done.
// Malformed lines are logged and skipped.
func checkStream(ctx context.Context, r io.Reader, enc *streamEncoder, engine *policy.Engine, log *slog.Logger) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	checked := 0
	lineNum := 0
	for scanner.Scan() {
		if ctx.Err() != nil {
			return checked, ctx.Err()
		}
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		req, err := parseRequestLine(line)
		if err != nil {
			log.Warn("skipping request line", "line", lineNum, "error", err)
			continue
		}

		checked++
		if err := enc.Encode(newVerdictResult(req, engine.CheckRequest(req))); err != nil {
			return checked, fmt.Errorf("write verdict: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return checked, fmt.Errorf("read requests: %w", err)
	}
	return checked, nil
}

// parseRequestLine splits url<TAB>initiator[<TAB>type].
func parseRequestLine(line string) (policy.Request, error) {
	fields := strings.Split(line, "\t")
	if len(fields) > 3 {
		return policy.Request{}, fmt.Errorf("expected at most 3 fields, got %d", len(fields))
	}

	req := policy.Request{URL: strings.TrimSpace(fields[0])}
	if len(fields) > 1 {
		req.Initiator = strings.TrimSpace(fields[1])
	}
	if len(fields) > 2 {
		typ, err := policy.ParseResourceType(fields[2])
		if err != nil {
			return policy.Request{}, err
		}
		req.Type = typ
	}
	return req, nil
}

func reloadOnHangup(ctx context.Context, manager *filtering.Manager, log *slog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sigChan:
			log.Info("received SIGHUP signal, reloading tracker lists")
			if err := manager.LoadOnce(ctx); err != nil {
				log.Error("failed to reload tracker lists", "error", err)
			} else {
				log.Info("successfully reloaded tracker lists")
			}
		}
	}
}
