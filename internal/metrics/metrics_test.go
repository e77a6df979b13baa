package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFetch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFetch(time.Now(), nil)
	m.ObserveFetch(time.Now(), errors.New("boom"))
	m.ObserveFetch(time.Now(), errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LaunchFetches.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LaunchFetches.WithLabelValues("error")))
}

func TestScreenGauge(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementMounted()
	m.IncrementMounted()
	m.DecrementActive()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ScreensMounted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScreensActive))
}
