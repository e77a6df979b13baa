package fetcher

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/backyonatan-alt/launchboard/internal/config"
	"github.com/backyonatan-alt/launchboard/internal/metrics"
)

// Fetcher holds the shared HTTP client used to reach the launch feed.
type Fetcher struct {
	client  *http.Client
	url     string
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func New(cfg *config.Config, m *metrics.Metrics) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: defaultTimeout(cfg.HTTPTimeout)},
		url:     cfg.LaunchAPIURL,
		metrics: m,
		tracer:  otel.Tracer("github.com/backyonatan-alt/launchboard/internal/fetcher"),
	}
}

// URL returns the launch feed endpoint.
func (f *Fetcher) URL() string {
	return f.url
}

func defaultTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 30 * time.Second
	}
	return d
}
