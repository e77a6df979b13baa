package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	LaunchFetches       *prometheus.CounterVec
	LaunchFetchDuration prometheus.Histogram
	LaunchesLoaded      prometheus.Counter
	ScreensMounted      prometheus.Counter
	ScreensActive       prometheus.Gauge
	ScreensReaped       prometheus.Counter
	ScreensRejected     prometheus.Counter
	CountrySelections   *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LaunchFetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "launchboard_launch_fetches_total",
			Help: "Launch feed requests by result",
		}, []string{"result"}),
		LaunchFetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "launchboard_launch_fetch_duration_seconds",
			Help:    "Duration of launch feed requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LaunchesLoaded: f.NewCounter(prometheus.CounterOpts{
			Name: "launchboard_launches_loaded_total",
			Help: "Launch records delivered to screens",
		}),
		ScreensMounted: f.NewCounter(prometheus.CounterOpts{
			Name: "launchboard_screens_mounted_total",
			Help: "Total number of screens mounted",
		}),
		ScreensActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "launchboard_screens_active",
			Help: "Screens currently mounted",
		}),
		ScreensReaped: f.NewCounter(prometheus.CounterOpts{
			Name: "launchboard_screens_reaped_total",
			Help: "Screens unmounted after going idle",
		}),
		ScreensRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "launchboard_screens_rejected_total",
			Help: "Mount requests refused because the screen limit was reached",
		}),
		CountrySelections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "launchboard_country_selections_total",
			Help: "Country selections from the location dropdown",
		}, []string{"country"}),
	}
}

// ObserveFetch records one launch feed request that started at start.
func (m *Metrics) ObserveFetch(start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.LaunchFetches.WithLabelValues(result).Inc()
	m.LaunchFetchDuration.Observe(time.Since(start).Seconds())
}

// IncrementMounted records a newly mounted screen.
func (m *Metrics) IncrementMounted() {
	m.ScreensMounted.Inc()
	m.ScreensActive.Inc()
}

// DecrementActive records an unmounted screen.
func (m *Metrics) DecrementActive() {
	m.ScreensActive.Dec()
}

// IncrementSelection records a country picked from the dropdown.
func (m *Metrics) IncrementSelection(country string) {
	m.CountrySelections.WithLabelValues(country).Inc()
}
