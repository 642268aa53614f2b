// Package tracker sits between storage and the streak engine. It validates
// new completions, fetches event logs, caches computed streaks per time zone
// and degrades to stale or unavailable results when storage fails.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/logger"
	"github.com/julianstephens/streakline/internal/models"
	"github.com/julianstephens/streakline/internal/streak"
)

// EventStore is the subset of storage the tracker needs.
type EventStore interface {
	GetGoal(ctx context.Context, id string) (models.Goal, error)
	AppendEvent(ctx context.Context, event models.CompletionEvent) error
	ListEvents(ctx context.Context, goalID string) ([]models.CompletionEvent, error)
}

type Service struct {
	store EventStore
	cache *Cache
	group singleflight.Group
	now   func() time.Time
	loc   *time.Location
	ttl   time.Duration
}

type Option func(*Service)

// WithClock replaces time.Now for both the service and its cache.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithLocation sets the reference time zone. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func New(store EventStore, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		loc:   time.Local,
		ttl:   constants.DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = NewCache(s.ttl, s.now)
	return s
}

// Location returns the reference time zone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Today returns the current calendar day in the reference zone.
func (s *Service) Today() streak.Day {
	return streak.DayOf(s.now(), s.loc)
}

// LogCompletion appends a completion event for the goal. A zero loggedAt
// means now.
func (s *Service) LogCompletion(ctx context.Context, goalID string, loggedAt time.Time, note string) (models.CompletionEvent, error) {
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return models.CompletionEvent{}, fmt.Errorf("loading goal %s: %w", goalID, err)
	}
	if !goal.Active() {
		return models.CompletionEvent{}, fmt.Errorf("%q: %w", goal.Name, ErrGoalInactive)
	}

	now := s.now()
	if loggedAt.IsZero() {
		loggedAt = now
	}
	if day := streak.DayOf(loggedAt, s.loc); day.After(streak.DayOf(now, s.loc)) {
		return models.CompletionEvent{}, fmt.Errorf("%s: %w", day, ErrFutureEvent)
	}

	event := models.CompletionEvent{
		ID:        uuid.NewString(),
		GoalID:    goal.ID,
		LoggedAt:  loggedAt,
		Note:      strings.TrimSpace(note),
		CreatedAt: now,
	}
	if err := s.store.AppendEvent(ctx, event); err != nil {
		return models.CompletionEvent{}, fmt.Errorf("saving completion: %w", err)
	}

	s.cache.Invalidate(goal.ID)
	logger.Debug("Logged completion", "goal", goal.Name, "logged_at", loggedAt)
	return event, nil
}

// Streak returns the goal's streak numbers in the reference zone.
//
// When events cannot be fetched the error is returned together with a usable
// report: the last known result marked Stale if there is one, otherwise a
// report with StatusUnavailable and zero numbers.
func (s *Service) Streak(ctx context.Context, goal models.Goal) (Report, error) {
	report := Report{
		GoalID:    goal.ID,
		GoalName:  goal.Name,
		Frequency: goal.Frequency,
		Timezone:  s.loc.String(),
	}

	if goal.Frequency != "" && goal.Frequency != constants.FrequencyDaily {
		report.Status = StatusUnsupported
		return report, fmt.Errorf("%q is %s: %w", goal.Name, goal.Frequency, ErrUnsupportedFrequency)
	}

	zone := s.loc.String()
	cached, fresh, found := s.cache.Get(goal.ID, zone)
	if fresh {
		report.Status = StatusOK
		report.Result = cached.result
		report.ComputedAt = cached.computedAt
		return report, nil
	}

	// Keying on the generation keeps callers that arrive after an
	// invalidation from joining a fetch that started before it.
	gen := s.cache.Generation(goal.ID)
	key := fmt.Sprintf("%s|%s|%d", goal.ID, zone, gen)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.compute(ctx, goal.ID, zone, gen)
	})
	if err != nil {
		logger.Warn("Failed to fetch completion events", "goal", goal.Name, "error", err)
		if found {
			report.Status = StatusOK
			report.Stale = true
			report.Result = cached.result
			report.ComputedAt = cached.computedAt
		} else {
			report.Status = StatusUnavailable
		}
		return report, fmt.Errorf("computing streak for %q: %w", goal.Name, err)
	}

	entry := v.(cacheEntry)
	report.Status = StatusOK
	report.Result = entry.result
	report.ComputedAt = entry.computedAt
	return report, nil
}

func (s *Service) compute(ctx context.Context, goalID, zone string, gen uint64) (cacheEntry, error) {
	events, err := s.store.ListEvents(ctx, goalID)
	if err != nil {
		return cacheEntry{}, err
	}

	now := s.now()
	entry := cacheEntry{
		result:     streak.Compute(events, s.loc, now),
		computedAt: now,
	}
	if !s.cache.Put(goalID, zone, gen, entry.result, now) {
		logger.Debug("Discarded streak computed before invalidation", "goal", goalID)
	}
	return entry, nil
}

// Streaks computes a report for each goal. Per-goal failures are recorded in
// Report.Error and joined into the returned error.
func (s *Service) Streaks(ctx context.Context, goals []models.Goal) ([]Report, error) {
	reports := make([]Report, 0, len(goals))
	var errs []error
	for _, g := range goals {
		r, err := s.Streak(ctx, g)
		if err != nil {
			r.Error = err.Error()
			if !errors.Is(err, ErrUnsupportedFrequency) {
				errs = append(errs, err)
			}
		}
		reports = append(reports, r)
	}
	return reports, errors.Join(errs...)
}

// AtRisk returns reports for daily goals whose streak survives only through
// the grace day: a current streak with nothing logged today.
func (s *Service) AtRisk(ctx context.Context, goals []models.Goal) ([]Report, error) {
	var daily []models.Goal
	for _, g := range goals {
		if g.Active() && (g.Frequency == "" || g.Frequency == constants.FrequencyDaily) {
			daily = append(daily, g)
		}
	}

	reports, err := s.Streaks(ctx, daily)
	var risky []Report
	for _, r := range reports {
		if r.AtRisk() {
			risky = append(risky, r)
		}
	}
	return risky, err
}

// History marks which of the last n days, ending today, have a completion.
// Oldest first.
func (s *Service) History(ctx context.Context, goal models.Goal, n int) ([]DayMark, error) {
	if n < 1 || n > constants.MaxHistoryDays {
		return nil, fmt.Errorf("history length must be between 1 and %d, got %d", constants.MaxHistoryDays, n)
	}
	events, err := s.store.ListEvents(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("loading events for %q: %w", goal.Name, err)
	}

	logged := make(map[streak.Day]bool)
	for _, d := range streak.Normalize(events, s.loc) {
		logged[d] = true
	}

	today := s.Today()
	marks := make([]DayMark, n)
	for i := range marks {
		d := today.AddDays(i - n + 1)
		marks[i] = DayMark{Day: d, Logged: logged[d]}
	}
	return marks, nil
}

// Milestone returns how long the milestone's run has lasted as of now.
func (s *Service) Milestone(m models.Milestone, now time.Time) (MilestoneStatus, error) {
	start, err := streak.ParseDay(m.StartDate)
	if err != nil {
		return MilestoneStatus{}, fmt.Errorf("milestone %q: %w", m.Name, err)
	}
	today := streak.DayOf(now, s.loc)
	return MilestoneStatus{
		Name:      m.Name,
		StartDate: start,
		Days:      streak.ContinuousDays(start, today),
		Started:   !start.After(today),
	}, nil
}

// Invalidate drops cached results for the goal in every zone.
func (s *Service) Invalidate(goalID string) {
	s.cache.Invalidate(goalID)
}
