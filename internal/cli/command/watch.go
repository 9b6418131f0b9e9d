package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/migrations-go/internal/core/domain"
	"github.com/yndnr/migrations-go/internal/core/service"
	"github.com/yndnr/migrations-go/internal/infra/buildinfo"
	"github.com/yndnr/migrations-go/internal/infra/confloader"
	"github.com/yndnr/migrations-go/internal/infra/shutdown"
	"github.com/yndnr/migrations-go/internal/telemetry/logger"
	"github.com/yndnr/migrations-go/internal/telemetry/metric"
)

// WatchCommand returns the watch command.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Load the configuration and reload it whenever the file changes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this address (e.g. :9090)",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Minimum time between two reloads",
				Value: confloader.DefaultReloadInterval,
			},
			&cli.DurationFlag{
				Name:  "shutdown-timeout",
				Usage: "Time allowed for a clean shutdown",
				Value: shutdown.DefaultTimeout,
			},
		},
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	lg := GetLogger(c)
	reg := metric.NewRegistry()
	info := buildinfo.Get()
	reg.SetBuildInfo(info.Version, info.Commit, info.GoVersion)

	file, err := ConfigurationFile(ParseGlobalFlags(c))
	if err != nil {
		return err
	}
	loader, err := NewLoader(c, confloader.WithMetrics(reg))
	if err != nil {
		return err
	}

	cfg := service.NewConfiguration()
	if err := loader.Load(file, cfg); err != nil {
		return err
	}
	resolved, _ := loader.Resolved()

	w := &reloader{
		loader:  loader,
		metrics: reg,
		logger:  lg,
		out:     writer(c),
	}
	w.current.Store(cfg)
	w.printf("loaded %s (%d migrations)\n", resolved.Absolute, len(cfg.Migrations()))

	watcher, err := confloader.NewWatcher(
		confloader.WithWatcherLogger(lg),
		confloader.WithReloadInterval(c.Duration("interval")),
	)
	if err != nil {
		return err
	}
	if err := watcher.Watch(resolved.Absolute); err != nil {
		stopWatcher(watcher, lg)
		return err
	}
	watcher.OnChange(w.reload)
	watcher.StartAsync()

	h := shutdown.NewHandler(c.Duration("shutdown-timeout"))
	h.OnShutdown(func(context.Context) error {
		return watcher.Stop()
	})

	if addr := c.String("metrics-addr"); addr != "" {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			stopWatcher(watcher, lg)
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", reg.Handler())
		srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				lg.Error("metrics server failed", logger.KeyError, err)
			}
		}()
		h.OnShutdown(srv.Shutdown)
		w.printf("serving metrics on http://%s/metrics\n", ln.Addr())
	}

	return h.Wait(c.Context)
}

// stopWatcher stops w on an error path, where the original error wins.
func stopWatcher(w *confloader.Watcher, lg logger.Logger) {
	if err := w.Stop(); err != nil {
		lg.Warn("failed to stop watcher", logger.KeyError, err)
	}
}

// reloader loads a changed file onto a fresh Configuration and swaps it in
// only when the load succeeds.
type reloader struct {
	loader  *confloader.Loader
	metrics *metric.Registry
	logger  logger.Logger

	current atomic.Pointer[service.Configuration]

	outMu sync.Mutex
	out   io.Writer
}

func (r *reloader) reload(path string) {
	next := service.NewConfiguration()
	if err := r.loader.Load(path, next); err != nil {
		result := domain.GetErrorCode(err)
		if result == "" {
			result = "error"
		}
		r.metrics.ObserveReload(result)
		r.logger.Warn("keeping previous configuration", logger.KeyFile, path, logger.KeyError, err)
		r.printf("reload of %s failed: %v\n", path, err)
		return
	}

	prev := r.current.Swap(next)
	r.metrics.ObserveReload(metric.ResultOK)
	n := len(next.Migrations())
	if prev != nil {
		r.logger.Info("configuration reloaded", logger.KeyFile, path, "migrations", n, "previous", len(prev.Migrations()))
	}
	r.printf("reloaded %s (%d migrations)\n", path, n)
}

func (r *reloader) printf(format string, args ...any) {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}
