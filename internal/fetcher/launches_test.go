package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backyonatan-alt/launchboard/internal/config"
	"github.com/backyonatan-alt/launchboard/internal/metrics"
)

func newTestFetcher(t *testing.T, handler http.HandlerFunc) (*Fetcher, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := metrics.New(prometheus.NewRegistry())
	cfg := &config.Config{LaunchAPIURL: srv.URL + "/v3/launches", HTTPTimeout: 5 * time.Second}
	return New(cfg, m), m
}

func TestFetchLaunches(t *testing.T) {
	var hits atomic.Int32
	f, m := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v3/launches", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"mission_name":"DemoSat","launch_year":"2007","details":null,"launch_success":null}]`))
	})

	records, err := f.FetchLaunches(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "DemoSat", records[0].MissionName)
	assert.Equal(t, 2007, records[0].LaunchYear)
	assert.Nil(t, records[0].LaunchSuccess)
	assert.EqualValues(t, 1, hits.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LaunchFetches.WithLabelValues("ok")))
}

func TestFetchLaunchesEmpty(t *testing.T) {
	f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	records, err := f.FetchLaunches(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFetchLaunchesFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "down", http.StatusServiceUnavailable)
			},
			want: "launches API error: 503",
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"mission_name":`))
			},
			want: "launches parse",
		},
		{
			name: "object instead of array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"error":"nope"}`))
			},
			want: "launches parse",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, m := newTestFetcher(t, tt.handler)

			records, err := f.FetchLaunches(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Nil(t, records)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.LaunchFetches.WithLabelValues("error")))
		})
	}
}

func TestFetchLaunchesTransportError(t *testing.T) {
	cfg := &config.Config{LaunchAPIURL: "http://127.0.0.1:1/launches", HTTPTimeout: time.Second}
	f := New(cfg, nil)

	_, err := f.FetchLaunches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "launches request")
}

func TestFetchLaunchesHonoursContext(t *testing.T) {
	f, _ := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.FetchLaunches(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
