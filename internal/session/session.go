// Package session owns the live prayer-times state: one resolution
// pass (cache-preferring), one monthly schedule fetch, then a
// one-second tick that recomputes the countdown from data already in
// memory. The tick never performs I/O.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Sahabat-Khairat/sholat/internal/cache"
	"github.com/Sahabat-Khairat/sholat/internal/model"
	"github.com/Sahabat-Khairat/sholat/internal/prayer"
	"github.com/Sahabat-Khairat/sholat/internal/resolver"
)

// LocationSource runs the full resolution pipeline.
type LocationSource interface {
	Resolve(ctx context.Context) (*model.ResolvedLocation, error)
}

// ScheduleFetcher loads the month covering an instant for a location.
type ScheduleFetcher interface {
	FetchMonth(ctx context.Context, loc model.ResolvedLocation, at time.Time) (model.MonthlySchedule, error)
}

// Notifier is told when the upcoming anchor changes, e.g. to push the
// transition to signage screens. May be nil.
type Notifier interface {
	NotifyNextPrayer(next model.NextPrayer)
}

// Controller is the single live session of the process.
type Controller struct {
	resolver LocationSource
	store    cache.Store
	fetcher  ScheduleFetcher
	notifier Notifier
	now      func() time.Time

	mu         sync.Mutex
	state      model.SessionState
	monthly    model.MonthlySchedule
	generation uint64
	lastAnchor string
	ticking    bool

	done      chan struct{}
	closeOnce sync.Once
}

func New(loc LocationSource, store cache.Store, fetcher ScheduleFetcher, notifier Notifier) *Controller {
	return &Controller{
		resolver: loc,
		store:    store,
		fetcher:  fetcher,
		notifier: notifier,
		now:      time.Now,
		state:    model.SessionState{LocationLabel: "Memuat lokasi...", Loading: true},
		done:     make(chan struct{}),
	}
}

// Start performs the initial load. A cached location skips the
// resolution pipeline.
func (c *Controller) Start(ctx context.Context) error {
	return c.load(ctx, false)
}

// Refresh bypasses the cache and reruns the whole pipeline. The sole
// recovery path after an error; never triggered automatically.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.load(ctx, true)
}

// Snapshot returns a copy of the current aggregate state.
func (c *Controller) Snapshot() model.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.state
	if c.state.TodaySchedule != nil {
		day := *c.state.TodaySchedule
		snap.TodaySchedule = &day
	}
	if c.state.NextPrayer != nil {
		next := *c.state.NextPrayer
		snap.NextPrayer = &next
	}
	return snap
}

// Close stops the tick loop. Idempotent.
func (c *Controller) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// load is one end-to-end pass. The generation counter makes the last
// requester win: a pass that finds a newer one started while it was in
// flight discards its own result instead of overwriting fresher state.
func (c *Controller) load(ctx context.Context, force bool) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state.Loading = true
	c.state.Error = ""
	c.mu.Unlock()

	loc, err := c.locate(ctx, force)
	if err != nil {
		return c.commitError(gen, err)
	}

	monthly, err := c.fetcher.FetchMonth(ctx, *loc, c.now())
	if err != nil {
		return c.commitError(gen, fmt.Errorf("%w: %v", resolver.ErrScheduleFetch, err))
	}

	return c.commit(gen, *loc, monthly)
}

func (c *Controller) locate(ctx context.Context, force bool) (*model.ResolvedLocation, error) {
	if !force {
		cached, err := c.store.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("location cache read failed, resolving fresh")
		}
		if cached != nil {
			log.Info().Str("city", cached.City).Msg("using cached location")
			return cached, nil
		}
	}
	return c.resolver.Resolve(ctx)
}

func (c *Controller) commit(gen uint64, loc model.ResolvedLocation, monthly model.MonthlySchedule) error {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		log.Info().Uint64("generation", gen).Msg("discarding superseded resolution result")
		return nil
	}

	c.state.LocationLabel = loc.LocationLabel
	c.state.Province = loc.Province
	c.state.City = loc.City
	c.state.Loading = false
	c.state.Error = ""
	c.monthly = monthly

	notify := c.recomputeLocked()
	if c.state.TodaySchedule != nil && !c.ticking {
		c.ticking = true
		go c.run()
	}
	c.mu.Unlock()

	if notify != nil {
		c.notifier.NotifyNextPrayer(*notify)
	}
	return nil
}

func (c *Controller) commitError(gen uint64, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		log.Info().Uint64("generation", gen).Msg("discarding superseded resolution failure")
		return nil
	}
	c.state.Loading = false
	c.state.Error = resolver.HumanMessage(err)
	// Last-known data stays queryable: the held month, today's schedule
	// and the countdown keep serving until a later pass succeeds.
	return err
}

func (c *Controller) run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

// tick recomputes the countdown from the held monthly payload only.
func (c *Controller) tick() {
	c.mu.Lock()
	notify := c.recomputeLocked()
	c.mu.Unlock()

	if notify != nil {
		c.notifier.NotifyNextPrayer(*notify)
	}
}

// recomputeLocked reselects today/tomorrow from the held month and
// recomputes the next prayer. Returns a NextPrayer to publish when the
// upcoming anchor changed and a notifier is configured. Caller holds
// c.mu.
func (c *Controller) recomputeLocked() *model.NextPrayer {
	if len(c.monthly) == 0 {
		c.state.TodaySchedule = nil
		c.state.NextPrayer = nil
		return nil
	}
	now := c.now()
	today := prayer.SelectDay(c.monthly, now)
	if today == nil {
		c.state.TodaySchedule = nil
		c.state.NextPrayer = nil
		return nil
	}
	tomorrow := prayer.SelectDay(c.monthly, now.AddDate(0, 0, 1))
	next := prayer.Next(now, today, tomorrow)

	c.state.TodaySchedule = today
	c.state.NextPrayer = next

	if next != nil && next.Name != c.lastAnchor {
		c.lastAnchor = next.Name
		if c.notifier != nil {
			published := *next
			return &published
		}
	}
	return nil
}
