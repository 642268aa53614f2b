package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/streakline/internal/backup"
	"github.com/julianstephens/streakline/internal/config"
	"github.com/julianstephens/streakline/internal/logger"
	"github.com/julianstephens/streakline/internal/models"
	"github.com/julianstephens/streakline/internal/storage"
	"github.com/julianstephens/streakline/internal/storage/sqlite"
	"github.com/julianstephens/streakline/internal/tracker"
	"github.com/julianstephens/streakline/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Store  storage.Provider
	Config *config.Config

	ctx     context.Context
	now     func() time.Time
	tracker *tracker.Service
}

type ContextOption func(*Context)

// WithClock replaces time.Now for commands and the tracker.
func WithClock(now func() time.Time) ContextOption {
	return func(c *Context) { c.now = now }
}

func NewContext(ctx context.Context, store storage.Provider, cfg *config.Config, opts ...ContextOption) *Context {
	if cfg == nil {
		cfg = config.New()
	}
	c := &Context{
		Store:  store,
		Config: cfg,
		ctx:    ctx,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ctx returns the context store calls should run under.
func (c *Context) Ctx() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

func (c *Context) Now() time.Time {
	return c.now()
}

// Location resolves the reference time zone: the config override when set,
// otherwise the timezone saved in settings.
func (c *Context) Location() (*time.Location, error) {
	if c.Config.Timezone != "" {
		return utils.LoadLocation(c.Config.Timezone)
	}
	settings, err := c.Store.GetSettings(c.Ctx())
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return utils.LoadLocation(settings.Timezone)
}

// Tracker builds the streak service on first use. The store must be loaded.
func (c *Context) Tracker() (*tracker.Service, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	c.tracker = tracker.New(c.Store,
		tracker.WithClock(c.now),
		tracker.WithCacheTTL(c.Config.CacheTTL),
		tracker.WithLocation(loc),
	)
	logger.Debug("Tracker ready", "timezone", loc.String(), "cache_ttl", c.Config.CacheTTL)
	return c.tracker, nil
}

// ResetTracker drops the cached service, e.g. after the timezone changes.
func (c *Context) ResetTracker() {
	c.tracker = nil
}

// FindGoal looks up a live goal by name.
func (c *Context) FindGoal(name string) (models.Goal, error) {
	goal, err := c.Store.GetGoalByName(c.Ctx(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Goal{}, fmt.Errorf("goal %q not found", name)
		}
		return models.Goal{}, err
	}
	return goal, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
