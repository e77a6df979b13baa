package screen

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/backyonatan-alt/launchboard/internal/clock"
	"github.com/backyonatan-alt/launchboard/internal/country"
	"github.com/backyonatan-alt/launchboard/internal/metrics"
	"github.com/backyonatan-alt/launchboard/internal/model"
)

type fakeSource struct {
	mu      sync.Mutex
	calls   int
	records []model.LaunchRecord
	err     error
	block   chan struct{}
}

func (f *fakeSource) FetchLaunches(ctx context.Context) ([]model.LaunchRecord, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.records, f.err
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type ScreenSuite struct {
	suite.Suite
	ctx     context.Context
	source  *fakeSource
	metrics *metrics.Metrics
	instant time.Time
}

func TestScreenSuite(t *testing.T) {
	suite.Run(t, new(ScreenSuite))
}

func (s *ScreenSuite) SetupTest() {
	s.ctx = context.Background()
	s.source = &fakeSource{}
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.instant = time.Date(2024, time.January, 15, 3, 7, 9, 0, time.UTC)
}

func (s *ScreenSuite) newScreen(delay time.Duration) *Screen {
	return New(s.source, Options{
		Countries:  country.Default(),
		Clock:      clock.Fixed(s.instant),
		FetchDelay: delay,
		Metrics:    s.metrics,
	})
}

func (s *ScreenSuite) TestMountFetchesOnce() {
	yes := true
	s.source.records = []model.LaunchRecord{{MissionName: "CRS-1", LaunchYear: 2012, LaunchSuccess: &yes}}
	scr := s.newScreen(0)

	scr.Mount(s.ctx)
	scr.Mount(s.ctx)
	s.Require().NoError(scr.Wait(s.ctx))

	for i := 0; i < 5; i++ {
		_, err := scr.ToggleDropdown()
		s.Require().NoError(err)
	}
	_, err := scr.DismissDropdown()
	s.Require().NoError(err)
	scr.Mount(s.ctx)

	s.Equal(1, s.source.Calls())
	view := scr.View()
	s.Equal(PhaseLoaded, view.Phase)
	s.Require().Len(view.Cards, 1)
	s.Equal("SUCCESS", view.Cards[0].Outcome)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ScreensMounted))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.LaunchesLoaded))
}

func (s *ScreenSuite) TestOutcomeLabels() {
	yes, no := true, false
	cases := map[string]*bool{"SUCCESS": &yes, "FAIL": &no, "No data": nil}
	for want, flag := range cases {
		s.Run(want, func() {
			s.source = &fakeSource{records: []model.LaunchRecord{{MissionName: "M", LaunchYear: 2010, LaunchSuccess: flag}}}
			scr := s.newScreen(0)
			scr.Mount(s.ctx)
			s.Require().NoError(scr.Wait(s.ctx))

			cards := scr.View().Cards
			s.Require().Len(cards, 1)
			s.Equal(want, cards[0].Outcome)
		})
	}
}

func (s *ScreenSuite) TestEmptyFeedRendersNoCards() {
	s.source.records = []model.LaunchRecord{}
	scr := s.newScreen(0)
	scr.Mount(s.ctx)
	s.Require().NoError(scr.Wait(s.ctx))

	s.Empty(scr.View().Cards)
	s.True(scr.State().Empty())
}

func (s *ScreenSuite) TestListEmptyUntilDelayElapses() {
	s.source.records = []model.LaunchRecord{{MissionName: "Late"}}
	scr := s.newScreen(100 * time.Millisecond)
	scr.Mount(s.ctx)

	s.Equal(0, s.source.Calls())
	s.Equal(PhasePending, scr.State().Phase)
	s.Empty(scr.View().Cards)

	s.Require().NoError(scr.Wait(s.ctx))
	s.Equal(1, s.source.Calls())
	s.Len(scr.View().Cards, 1)
}

func (s *ScreenSuite) TestFetchFailureSurfaces() {
	s.source.err = errors.New("launches API error: 502")
	scr := s.newScreen(0)
	scr.Mount(s.ctx)

	err := scr.Wait(s.ctx)
	s.Require().Error(err)
	s.ErrorIs(err, s.source.err)

	view := scr.View()
	s.Equal(PhaseFailed, view.Phase)
	s.Empty(view.Cards)
	s.Equal("launches API error: 502", view.Error)
}

func (s *ScreenSuite) TestSelectCountry() {
	scr := s.newScreen(0)

	st, err := scr.ToggleDropdown()
	s.Require().NoError(err)
	s.True(st.DropdownOpen)
	s.Len(scr.View().Countries, 6)

	st, err = scr.SelectCountry("Korea")
	s.Require().NoError(err)
	s.False(st.DropdownOpen)
	s.Equal("The time in Korea is 12:7:9", st.TimeLabel)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CountrySelections.WithLabelValues("Korea")))
}

func (s *ScreenSuite) TestSelectUnknownCountryKeepsState() {
	scr := s.newScreen(0)
	_, err := scr.ToggleDropdown()
	s.Require().NoError(err)

	st, err := scr.SelectCountry("Atlantis")
	s.Require().ErrorIs(err, country.ErrUnknownCountry)
	s.True(st.DropdownOpen)
	s.Equal(NoLocationLabel, st.TimeLabel)
}

func (s *ScreenSuite) TestWaitBeforeMount() {
	scr := s.newScreen(0)
	s.ErrorIs(scr.Wait(s.ctx), ErrNotMounted)
}

func (s *ScreenSuite) TestUnmountCancelsPendingFetch() {
	s.source.block = make(chan struct{})
	scr := s.newScreen(0)
	scr.Mount(s.ctx)

	s.Eventually(func() bool { return s.source.Calls() == 1 }, time.Second, 5*time.Millisecond)
	scr.Unmount()

	s.Require().NoError(scr.Wait(s.ctx))
	s.Equal(PhasePending, scr.State().Phase)
	s.Nil(scr.State().Launches)
	s.Equal(0.0, testutil.ToFloat64(s.metrics.ScreensActive))

	_, err := scr.ToggleDropdown()
	s.ErrorIs(err, ErrUnmounted)
}
