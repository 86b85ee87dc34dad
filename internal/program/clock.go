package program

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"rightstep/internal/notify"
	"rightstep/internal/storage"

	"go.uber.org/multierr"
)

// Program length. Day 1 is the start date itself; the clock saturates at
// the final day rather than running past the end of the curriculum.
const (
	TotalWeeks = 12
	TotalDays  = TotalWeeks * 7
)

// ErrDebugDisabled is returned when a debug override is set while debug
// mode is off.
var ErrDebugDisabled = fmt.Errorf("debug mode is not enabled")

// Store is the slice of persisted storage the clock needs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Override is the developer view override. While active it decouples the
// effective week/day from the time-derived ones. Week and Day are kept
// consistent by the setters: Week is always ceil(Day/7).
type Override struct {
	Week int
	Day  int
}

// Clock derives the user's position in the program from the persisted
// start date and wall-clock time, and gates content access.
//
// A single logical actor drives all mutations (the UI event loop), so the
// clock takes no locks. The debug override is session-scoped: it lives
// only in memory and a process restart always returns to actual time.
type Clock struct {
	store Store
	sink  notify.Sink
	now   func() time.Time

	startDate    *time.Time
	lastSeenWeek int
	override     *Override

	actualDay         int
	actualWeek        int
	maxAccessibleWeek int
	newWeekUnlocked   bool
}

// New creates a Clock over the given store and notification sink.
func New(store Store, sink notify.Sink) *Clock {
	return &Clock{
		store: store,
		sink:  sink,
		now:   time.Now,
	}
}

// Initialize loads persisted state and computes the derived fields. A
// corrupt start date is treated as absent and purged: a broken local
// timestamp is not something the user can act on, so the program simply
// has not started yet. If a user profile exists but no start date does,
// the program is auto-started. Safe to call on every launch.
func (c *Clock) Initialize(ctx context.Context) error {
	raw, ok, err := c.store.Get(ctx, storage.KeyProgramStartDate)
	if err != nil {
		return fmt.Errorf("failed to load start date: %w", err)
	}
	if ok {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			log.Printf("Discarding unparseable start date %q: %v", raw, err)
			if err := c.store.Delete(ctx, storage.KeyProgramStartDate); err != nil {
				return fmt.Errorf("failed to purge corrupt start date: %w", err)
			}
		} else {
			c.startDate = &parsed
		}
	}

	rawWeek, ok, err := c.store.Get(ctx, storage.KeyLastSeenWeek)
	if err != nil {
		return fmt.Errorf("failed to load last seen week: %w", err)
	}
	if ok {
		week, err := strconv.Atoi(rawWeek)
		if err != nil {
			log.Printf("Discarding unparseable last seen week %q: %v", rawWeek, err)
			week = 1
		}
		c.lastSeenWeek = week
	}

	if c.startDate == nil {
		_, hasProfile, err := c.store.Get(ctx, storage.KeyUserData)
		if err != nil {
			return fmt.Errorf("failed to check for user profile: %w", err)
		}
		if hasProfile {
			return c.StartProgram(ctx)
		}
	}

	c.Recompute()
	return nil
}

// StartProgram stamps the start date with the current instant, once. If
// the program already started this only recomputes derived state.
func (c *Clock) StartProgram(ctx context.Context) error {
	if c.startDate != nil {
		c.Recompute()
		return nil
	}

	started := c.now()
	if err := c.store.Set(ctx, storage.KeyProgramStartDate, started.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to persist start date: %w", err)
	}
	if err := c.store.Set(ctx, storage.KeyLastSeenWeek, "1"); err != nil {
		return fmt.Errorf("failed to persist last seen week: %w", err)
	}

	c.startDate = &started
	c.lastSeenWeek = 1
	c.Recompute()
	return nil
}

// Recompute derives the actual day/week and the accessible-week ceiling
// from the start date and the current time. It is pure aside from the
// new-week flag and is called after every mutation.
func (c *Clock) Recompute() {
	if c.startDate == nil {
		c.actualDay = 1
		c.actualWeek = 1
		c.maxAccessibleWeek = 1
		c.newWeekUnlocked = false
		return
	}

	elapsed := calendarDaysBetween(*c.startDate, c.now())
	if elapsed < 0 {
		// Start date in the future (clock skew) never yields a negative day.
		elapsed = 0
	}

	c.actualDay = elapsed + 1
	if c.actualDay > TotalDays {
		c.actualDay = TotalDays
	}
	c.actualWeek = (c.actualDay + 6) / 7
	if c.actualWeek > TotalWeeks {
		c.actualWeek = TotalWeeks
	}
	// Debug viewing never widens access: the ceiling tracks real time only.
	c.maxAccessibleWeek = c.actualWeek
	c.newWeekUnlocked = c.actualWeek > c.lastSeenWeek
}

// AcknowledgeNewWeek records that the user has seen the newly unlocked
// week. No-op when no new week is pending.
func (c *Clock) AcknowledgeNewWeek(ctx context.Context) error {
	if !c.newWeekUnlocked {
		return nil
	}
	if err := c.store.Set(ctx, storage.KeyLastSeenWeek, strconv.Itoa(c.maxAccessibleWeek)); err != nil {
		return fmt.Errorf("failed to persist last seen week: %w", err)
	}
	c.lastSeenWeek = c.maxAccessibleWeek
	c.newWeekUnlocked = false
	return nil
}

// SetDebugMode toggles the developer override. Turning it on seeds the
// override with the current actual values; turning it off immediately
// resynchronizes the effective view with actual time.
func (c *Clock) SetDebugMode(ctx context.Context, enabled bool) {
	if enabled {
		if c.override == nil {
			c.Recompute()
			c.override = &Override{Week: c.actualWeek, Day: c.actualDay}
		}
		c.notify(ctx, "Debug mode enabled. Program view is frozen until you turn it off.")
		return
	}

	c.override = nil
	c.Recompute()
	c.notify(ctx, "Debug mode disabled. Program view follows real time again.")
}

// SetDebugDay overrides the effective day. The override week is
// re-derived so the pair cannot disagree.
func (c *Clock) SetDebugDay(day int) error {
	if c.override == nil {
		return ErrDebugDisabled
	}
	day = clamp(day, 1, TotalDays)
	c.override.Day = day
	c.override.Week = (day + 6) / 7
	return nil
}

// SetDebugWeek overrides the effective week, moving the effective day to
// the first day of that week.
func (c *Clock) SetDebugWeek(week int) error {
	if c.override == nil {
		return ErrDebugDisabled
	}
	week = clamp(week, 1, TotalWeeks)
	c.override.Week = week
	c.override.Day = (week-1)*7 + 1
	return nil
}

// ResetAll clears every persisted program key and returns the clock to
// its never-started state. Destructive; the caller owns confirmation.
func (c *Clock) ResetAll(ctx context.Context) error {
	var errs error
	for _, key := range []string{storage.KeyProgramStartDate, storage.KeyLastSeenWeek, storage.KeyUserData} {
		errs = multierr.Append(errs, c.store.Delete(ctx, key))
	}
	if errs != nil {
		return fmt.Errorf("failed to clear program state: %w", errs)
	}

	c.startDate = nil
	c.lastSeenWeek = 0
	c.override = nil
	c.Recompute()
	return nil
}

// Snapshot is a read-only view of the clock for display.
type Snapshot struct {
	StartDate         *time.Time
	ActualDay         int
	ActualWeek        int
	MaxAccessibleWeek int
	EffectiveDay      int
	EffectiveWeek     int
	LastSeenWeek      int
	DebugActive       bool
	NewWeekUnlocked   bool
}

// State returns the current snapshot.
func (c *Clock) State() Snapshot {
	return Snapshot{
		StartDate:         c.startDate,
		ActualDay:         c.actualDay,
		ActualWeek:        c.actualWeek,
		MaxAccessibleWeek: c.maxAccessibleWeek,
		EffectiveDay:      c.EffectiveDay(),
		EffectiveWeek:     c.EffectiveWeek(),
		LastSeenWeek:      c.lastSeenWeek,
		DebugActive:       c.override != nil,
		NewWeekUnlocked:   c.newWeekUnlocked,
	}
}

// EffectiveWeek is the week the UI should display.
func (c *Clock) EffectiveWeek() int {
	if c.override != nil {
		return c.override.Week
	}
	return c.actualWeek
}

// EffectiveDay is the day the UI should display.
func (c *Clock) EffectiveDay() int {
	if c.override != nil {
		return c.override.Day
	}
	return c.actualDay
}

// MaxAccessibleWeek is the time-gated content ceiling, unaffected by the
// debug override.
func (c *Clock) MaxAccessibleWeek() int {
	return c.maxAccessibleWeek
}

// NewWeekUnlocked reports whether a week beyond lastSeenWeek has unlocked.
func (c *Clock) NewWeekUnlocked() bool {
	return c.newWeekUnlocked
}

// Started reports whether the program has a start date.
func (c *Clock) Started() bool {
	return c.startDate != nil
}

func (c *Clock) notify(ctx context.Context, message string) {
	if c.sink == nil {
		return
	}
	if err := c.sink.Notify(ctx, message); err != nil {
		log.Printf("Warning: failed to deliver notification: %v", err)
	}
}

// calendarDaysBetween counts calendar-day boundaries crossed between from
// and to in local time. A user who starts at 23:59 is on day 2 at 00:01
// the next day, so both instants are truncated to local midnight first.
// The half-day rounding keeps DST transitions from shifting the count.
func calendarDaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int((t.Sub(f) + 12*time.Hour) / (24 * time.Hour))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
