package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "migrations"

// ResultOK labels a successful load or reload.
const ResultOK = "ok"

// Registry holds all configuration loading metrics.
type Registry struct {
	reg *prometheus.Registry

	LoadsTotal   *prometheus.CounterVec // labels: result
	LoadDuration prometheus.Histogram
	KeysApplied  *prometheus.CounterVec // labels: key
	ReloadsTotal *prometheus.CounterVec // labels: result
	LastLoad     prometheus.Gauge
	BuildInfo    *prometheus.GaugeVec // labels: version, commit, go_version
}

// NewRegistry creates the metrics on a fresh prometheus.Registry together
// with the Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Registry{
		reg: reg,
		LoadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_loads_total",
			Help:      "Total number of configuration loads by result (ok or error code)",
		}, []string{"result"}),
		LoadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "config_load_duration_seconds",
			Help:      "Time spent resolving, parsing and applying a configuration file",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		KeysApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_keys_applied_total",
			Help:      "Total number of configuration keys applied to the target",
		}, []string{"key"}),
		ReloadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_reloads_total",
			Help:      "Total number of reloads triggered by file changes, by result",
		}, []string{"result"}),
		LastLoad: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "config_last_load_timestamp_seconds",
			Help:      "Unix time of the last successful configuration load",
		}),
		BuildInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Build information of the running binary, always 1",
		}, []string{"version", "commit", "go_version"}),
	}
}

// ObserveLoad records the outcome of one load. An empty result counts as ok.
func (r *Registry) ObserveLoad(result string, d time.Duration) {
	if result == "" {
		result = ResultOK
	}
	r.LoadsTotal.WithLabelValues(result).Inc()
	r.LoadDuration.Observe(d.Seconds())
	if result == ResultOK {
		r.LastLoad.SetToCurrentTime()
	}
}

// AddKeysApplied counts every key that reached the target.
func (r *Registry) AddKeysApplied(keys []string) {
	for _, k := range keys {
		r.KeysApplied.WithLabelValues(k).Inc()
	}
}

// ObserveReload records the outcome of one watch-triggered reload.
func (r *Registry) ObserveReload(result string) {
	if result == "" {
		result = ResultOK
	}
	r.ReloadsTotal.WithLabelValues(result).Inc()
}

// SetBuildInfo publishes the running version as a constant 1 gauge.
func (r *Registry) SetBuildInfo(version, commit, goVersion string) {
	r.BuildInfo.Reset()
	r.BuildInfo.WithLabelValues(version, commit, goVersion).Set(1)
}

// Gatherer exposes the underlying registry, mostly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
