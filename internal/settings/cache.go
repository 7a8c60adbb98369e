package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"voicemail-console/internal/journal"
	"voicemail-console/internal/metrics"
	"voicemail-console/pkg/logger"
)

const storeName = "settings"

// Gateway is the slice of the remote API the cache needs.
type Gateway interface {
	GetSettings(ctx context.Context) (Settings, error)
	UpdateSettings(ctx context.Context, p Patch) (Settings, error)
	SetCatchAll(ctx context.Context, enabled bool) error
	SetCatchAllGreeting(ctx context.Context, greeting string) error
}

type Options struct {
	Logger  *slog.Logger
	Journal journal.Recorder
}

// Cache holds the singleton settings record. It starts out holding Defaults.
type Cache struct {
	gw      Gateway
	log     *slog.Logger
	journal journal.Recorder

	mu  sync.RWMutex
	cur Settings
}

func NewCache(gw Gateway, opts Options) *Cache {
	j := opts.Journal
	if j == nil {
		j = journal.Discard
	}
	return &Cache{
		gw:      gw,
		log:     logger.Component(opts.Logger, storeName),
		journal: j,
		cur:     Defaults(),
	}
}

// Load replaces the record with the server's. Any failure installs
// Defaults instead; Load itself never fails.
func (c *Cache) Load(ctx context.Context) {
	s, err := c.gw.GetSettings(ctx)
	if err != nil {
		c.log.WarnContext(ctx, "settings load failed, using defaults", "err", err)
		metrics.Fallback(storeName)
		c.journal.Record(ctx, storeName, "load", "", fmt.Errorf("%w: %v", journal.ErrFallback, err))
		s = Defaults()
	} else {
		c.journal.Record(ctx, storeName, "load", "", nil)
	}

	c.mu.Lock()
	c.cur = s
	c.mu.Unlock()
}

// Update sends p and replaces the record with the server's response.
// On failure the cached record is unchanged.
func (c *Cache) Update(ctx context.Context, p Patch) (Settings, error) {
	s, err := c.gw.UpdateSettings(ctx, p)
	c.journal.Record(ctx, storeName, "update", "", err)
	if err != nil {
		return Settings{}, fmt.Errorf("update settings: %w", err)
	}

	c.mu.Lock()
	c.cur = s
	c.mu.Unlock()
	return s, nil
}

func (c *Cache) Get() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cur
}

// ToggleCatchAll flips catch-all routing on the server, then locally.
func (c *Cache) ToggleCatchAll(ctx context.Context, enabled bool) error {
	err := c.gw.SetCatchAll(ctx, enabled)
	c.journal.Record(ctx, storeName, "toggle_catch_all", "", err)
	if err != nil {
		return fmt.Errorf("toggle catch-all: %w", err)
	}

	c.mu.Lock()
	c.cur.CatchAllEnabled = enabled
	c.mu.Unlock()
	return nil
}

// UpdateCatchAllGreeting sets the catch-all greeting on the server, then locally.
func (c *Cache) UpdateCatchAllGreeting(ctx context.Context, greeting string) error {
	err := c.gw.SetCatchAllGreeting(ctx, greeting)
	c.journal.Record(ctx, storeName, "update_catch_all_greeting", "", err)
	if err != nil {
		return fmt.Errorf("update catch-all greeting: %w", err)
	}

	c.mu.Lock()
	c.cur.CatchAllGreeting = greeting
	c.mu.Unlock()
	return nil
}
