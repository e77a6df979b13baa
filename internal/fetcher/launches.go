package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/backyonatan-alt/launchboard/internal/model"
)

// FetchLaunches issues a single GET to the launch feed and decodes the JSON
// array it returns. Failures are returned, never retried.
func (f *Fetcher) FetchLaunches(ctx context.Context) ([]model.LaunchRecord, error) {
	ctx, span := f.tracer.Start(ctx, "fetcher.FetchLaunches")
	defer span.End()
	span.SetAttributes(attribute.String("http.url", f.url))

	start := time.Now()
	records, err := f.fetchLaunches(ctx)
	if f.metrics != nil {
		f.metrics.ObserveFetch(start, err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("launches.count", len(records)))
	return records, nil
}

func (f *Fetcher) fetchLaunches(ctx context.Context) ([]model.LaunchRecord, error) {
	slog.Info("fetching launches", "url", f.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("launches request create: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("launches request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("launches API error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("launches read body: %w", err)
	}

	var records []model.LaunchRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("launches parse: %w", err)
	}
	if records == nil {
		records = []model.LaunchRecord{}
	}

	slog.Info("launches result", "count", len(records), "bytes", len(body))
	return records, nil
}
