package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Sahabat-Khairat/sholat/internal/model"
	"github.com/Sahabat-Khairat/sholat/internal/resolver"
)

type stubResolver struct {
	loc   model.ResolvedLocation
	err   error
	calls int
}

func (s *stubResolver) Resolve(ctx context.Context) (*model.ResolvedLocation, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	loc := s.loc
	return &loc, nil
}

type stubFetcher struct {
	monthly model.MonthlySchedule
	err     error
	calls   int
}

func (s *stubFetcher) FetchMonth(ctx context.Context, loc model.ResolvedLocation, at time.Time) (model.MonthlySchedule, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.monthly, nil
}

type stubStore struct {
	loc      *model.ResolvedLocation
	setCalls int
}

func (s *stubStore) Get(ctx context.Context) (*model.ResolvedLocation, error) { return s.loc, nil }

func (s *stubStore) Set(ctx context.Context, loc model.ResolvedLocation) error {
	s.loc = &loc
	s.setCalls++
	return nil
}

type stubNotifier struct {
	mu     sync.Mutex
	events []model.NextPrayer
}

func (s *stubNotifier) NotifyNextPrayer(next model.NextPrayer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, next)
}

func (s *stubNotifier) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = e.Name
	}
	return out
}

var testLoc = model.ResolvedLocation{
	Province:      "JAWA BARAT",
	City:          "KOTA BANDUNG",
	LocationLabel: "KOTA BANDUNG, JAWA BARAT",
}

func testMonth() model.MonthlySchedule {
	monthly := make(model.MonthlySchedule, 0, 31)
	for d := 1; d <= 31; d++ {
		monthly = append(monthly, model.DailySchedule{
			Tanggal:        d,
			TanggalLengkap: fmt.Sprintf("2025-03-%02d", d),
			Subuh:          "05:00",
			Dzuhur:         "12:00",
			Ashar:          "15:00",
			Maghrib:        "18:00",
			Isya:           "19:00",
		})
	}
	return monthly
}

func fixedNow(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
	}
}

func newTestController(res *stubResolver, store *stubStore, fetch *stubFetcher, notifier Notifier) *Controller {
	c := New(res, store, fetch, notifier)
	c.now = fixedNow(14, 0)
	return c
}

// setNow swaps the clock under the state lock so the background ticker
// never races the test.
func setNow(c *Controller, f func() time.Time) {
	c.mu.Lock()
	c.now = f
	c.mu.Unlock()
}

func TestStartPrefersCache(t *testing.T) {
	res := &stubResolver{loc: testLoc}
	cached := testLoc
	store := &stubStore{loc: &cached}
	fetch := &stubFetcher{monthly: testMonth()}

	c := newTestController(res, store, fetch, nil)
	defer c.Close()

	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if res.calls != 0 {
		t.Errorf("resolver ran %d times, cache should have been used", res.calls)
	}
	if fetch.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1", fetch.calls)
	}

	snap := c.Snapshot()
	if snap.Loading || snap.Error != "" {
		t.Errorf("state = %+v", snap)
	}
	if snap.City != "KOTA BANDUNG" {
		t.Errorf("city = %q", snap.City)
	}
	if snap.TodaySchedule == nil || snap.TodaySchedule.TanggalLengkap != "2025-03-10" {
		t.Errorf("today = %+v", snap.TodaySchedule)
	}
	if snap.NextPrayer == nil || snap.NextPrayer.Name != model.AnchorAshar {
		t.Errorf("next = %+v", snap.NextPrayer)
	}
	if snap.NextPrayer.SecondsRemaining != 3600 {
		t.Errorf("seconds = %d, want 3600", snap.NextPrayer.SecondsRemaining)
	}
}

func TestStartResolvesWhenCacheEmpty(t *testing.T) {
	res := &stubResolver{loc: testLoc}
	c := newTestController(res, &stubStore{}, &stubFetcher{monthly: testMonth()}, nil)
	defer c.Close()

	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if res.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", res.calls)
	}
}

func TestRefreshBypassesCache(t *testing.T) {
	res := &stubResolver{loc: testLoc}
	cached := testLoc
	store := &stubStore{loc: &cached}
	c := newTestController(res, store, &stubFetcher{monthly: testMonth()}, nil)
	defer c.Close()

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if res.calls != 1 {
		t.Errorf("resolver calls = %d, forced refresh must bypass cache", res.calls)
	}
}

func TestFailedRefreshKeepsLastKnownData(t *testing.T) {
	res := &stubResolver{loc: testLoc}
	cached := testLoc
	store := &stubStore{loc: &cached}
	fetch := &stubFetcher{monthly: testMonth()}

	c := newTestController(res, store, fetch, nil)
	defer c.Close()
	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	res.err = fmt.Errorf("%w: geocoder down", resolver.ErrScheduleFetch)
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh to fail")
	}

	// Persistent cache untouched: still the prior successful location.
	if store.loc == nil || store.loc.City != "KOTA BANDUNG" {
		t.Errorf("cached location = %+v", store.loc)
	}
	if store.setCalls != 0 {
		t.Errorf("cache writes during failed refresh = %d", store.setCalls)
	}

	snap := c.Snapshot()
	if snap.Error == "" {
		t.Error("expected error surfaced on state")
	}
	if snap.Loading {
		t.Error("loading flag stuck after failed refresh")
	}
	// Last-known schedule and countdown stay queryable.
	if snap.TodaySchedule == nil || snap.TodaySchedule.TanggalLengkap != "2025-03-10" {
		t.Errorf("today = %+v, want last-known schedule kept", snap.TodaySchedule)
	}
	if snap.NextPrayer == nil || snap.NextPrayer.Name != model.AnchorAshar {
		t.Errorf("next = %+v, want last-known countdown kept", snap.NextPrayer)
	}
	// Location fields from the last success stay queryable.
	if snap.City != "KOTA BANDUNG" {
		t.Errorf("city = %q", snap.City)
	}

	// The countdown keeps ticking off the held month.
	setNow(c, fixedNow(14, 30))
	c.tick()
	if snap := c.Snapshot(); snap.NextPrayer == nil || snap.NextPrayer.SecondsRemaining != 1800 {
		t.Errorf("next after tick = %+v, want 1800s to Ashar", snap.NextPrayer)
	}
}

func TestTickPerformsNoNetworkCalls(t *testing.T) {
	res := &stubResolver{loc: testLoc}
	fetch := &stubFetcher{monthly: testMonth()}
	c := newTestController(res, &stubStore{}, fetch, nil)
	defer c.Close()

	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	resolveCalls, fetchCalls := res.calls, fetch.calls

	for i := 0; i < 10; i++ {
		c.tick()
	}

	if res.calls != resolveCalls || fetch.calls != fetchCalls {
		t.Errorf("tick reached the network: resolver %d->%d, fetcher %d->%d",
			resolveCalls, res.calls, fetchCalls, fetch.calls)
	}
	if snap := c.Snapshot(); snap.NextPrayer == nil {
		t.Error("tick should keep the countdown populated")
	}
}

func TestTickRecomputesCountdown(t *testing.T) {
	c := newTestController(&stubResolver{loc: testLoc}, &stubStore{}, &stubFetcher{monthly: testMonth()}, nil)
	defer c.Close()
	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	setNow(c, fixedNow(14, 30))
	c.tick()

	snap := c.Snapshot()
	if snap.NextPrayer == nil || snap.NextPrayer.SecondsRemaining != 1800 {
		t.Errorf("next = %+v, want 1800s to Ashar", snap.NextPrayer)
	}
}

func TestSupersededCommitIsDiscarded(t *testing.T) {
	c := newTestController(&stubResolver{loc: testLoc}, &stubStore{}, &stubFetcher{monthly: testMonth()}, nil)
	defer c.Close()
	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	// A newer request has started since generation 1 completed.
	c.mu.Lock()
	c.generation = 7
	c.mu.Unlock()

	stale := model.ResolvedLocation{Province: "ACEH", City: "KOTA BANDA ACEH", LocationLabel: "stale"}
	if err := c.commit(1, stale, testMonth()); err != nil {
		t.Fatal(err)
	}
	if snap := c.Snapshot(); snap.City != "KOTA BANDUNG" {
		t.Errorf("stale result overwrote state: %+v", snap)
	}

	if err := c.commitError(1, errors.New("stale failure")); err != nil {
		t.Fatalf("stale failure must be swallowed, got %v", err)
	}
	if snap := c.Snapshot(); snap.Error != "" {
		t.Error("stale failure surfaced on state")
	}
}

func TestNotifierSeesAnchorTransitions(t *testing.T) {
	notifier := &stubNotifier{}
	c := newTestController(&stubResolver{loc: testLoc}, &stubStore{}, &stubFetcher{monthly: testMonth()}, notifier)
	defer c.Close()

	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	// 14:00 -> upcoming anchor is Ashar; announced once on load.
	if got := notifier.names(); len(got) != 1 || got[0] != model.AnchorAshar {
		t.Fatalf("events = %v, want [Ashar]", got)
	}

	// Still before Ashar: no new event.
	setNow(c, fixedNow(14, 45))
	c.tick()
	if got := notifier.names(); len(got) != 1 {
		t.Fatalf("events = %v, want no duplicate", got)
	}

	// Past Ashar: transition to Maghrib published.
	setNow(c, fixedNow(15, 30))
	c.tick()
	if got := notifier.names(); len(got) != 2 || got[1] != model.AnchorMaghrib {
		t.Fatalf("events = %v, want [Ashar Maghrib]", got)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := newTestController(&stubResolver{loc: testLoc}, &stubStore{}, &stubFetcher{monthly: testMonth()}, nil)
	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	c.Close()
	c.Close()
}
