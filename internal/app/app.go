package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"voicemail-console/internal/auth"
	"voicemail-console/internal/config"
	"voicemail-console/internal/gateway"
	"voicemail-console/internal/journal"
	"voicemail-console/internal/project"
	"voicemail-console/internal/settings"
	"voicemail-console/internal/voicemail"
	"voicemail-console/pkg/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"
)

// App wires the stores to one gateway client. Every consumer receives
// the stores from here; nothing reaches them through globals.
type App struct {
	Config     config.Config
	Log        *slog.Logger
	Gateway    *gateway.Client
	Settings   *settings.Cache
	Projects   *project.Store
	Voicemails *voicemail.Store

	// Journal is nil when JOURNAL_BACKEND=none.
	Journal *journal.Service
	// JournalMemory is set only for the memory backend.
	JournalMemory *journal.MemoryRepo

	identity auth.Identity
	closers  []func() error
}

// New builds the App. It opens the journal backend but does not touch
// the voicemail service; call Init for that.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	cred := auth.NewCredential(cfg.Gateway.Token)
	if id, err := cred.Identity(); err == nil {
		a.identity = id
		log.Info("operator identity", "user_id", id.UserID, "workspace_id", id.WorkspaceID, "role", id.Role)
	} else if !cred.Empty() && !errors.Is(err, auth.ErrNotJWT) {
		log.Warn("gateway token identity unreadable", "err", err)
	}

	rec, err := a.openJournal(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Gateway = gateway.New(cfg.Gateway.BaseURL, gateway.Options{
		Timeout:    cfg.Gateway.Timeout,
		Credential: cred,
		Logger:     log,
	})
	a.Settings = settings.NewCache(a.Gateway, settings.Options{Logger: log, Journal: rec})
	a.Projects = project.NewStore(a.Gateway, project.Options{
		Logger:    log,
		Journal:   rec,
		Sequenced: cfg.Project.SequencedUpdates,
	})
	a.Voicemails = voicemail.NewStore(a.Gateway, voicemail.Options{Logger: log, Journal: rec})
	return a, nil
}

func (a *App) openJournal(ctx context.Context) (journal.Recorder, error) {
	var repo journal.Repository
	switch a.Config.Journal.Backend {
	case config.JournalNone:
		return journal.Discard, nil
	case config.JournalPostgres:
		db, err := utils.OpenPostgres(ctx, "pgx", a.Config.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			return nil, fmt.Errorf("journal postgres: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		pg := journal.NewPostgresRepo(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		repo = pg
	case config.JournalRedis:
		rdb, err := utils.OpenRedis(ctx, utils.RedisConfig{Addr: a.Config.RedisAddr(), Password: a.Config.Redis.Password})
		if err != nil {
			return nil, fmt.Errorf("journal redis: %w", err)
		}
		a.closers = append(a.closers, rdb.Close)
		repo = journal.NewRedisRepo(rdb, a.Config.Journal.Stream, 0)
	default:
		a.JournalMemory = journal.NewMemoryRepo()
		repo = a.JournalMemory
	}
	a.Journal = journal.NewService(repo, a.Log)
	return a.Journal, nil
}

// Context attaches the operator identity, if the token carried one.
func (a *App) Context(ctx context.Context) context.Context {
	if a.identity.UserID == "" {
		return ctx
	}
	return auth.WithIdentity(ctx, a.identity)
}

// Init loads settings, projects and voicemails concurrently. The loads
// degrade to defaults or sample data on their own, so Init only fails if
// ctx is cancelled.
func (a *App) Init(ctx context.Context) error {
	ctx = a.Context(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { a.Settings.Load(gctx); return nil })
	g.Go(func() error {
		if a.Projects.LoadAll(gctx) {
			a.Log.Warn("projects served from sample data")
		}
		return nil
	})
	g.Go(func() error {
		if a.Voicemails.LoadAll(gctx) {
			a.Log.Warn("voicemails served from sample data")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Start begins the background voicemail refresh.
func (a *App) Start(ctx context.Context) {
	interval := a.Config.Voicemail.RefreshInterval
	if interval <= 0 {
		interval = voicemail.DefaultRefreshInterval
	}
	a.Voicemails.StartRefresh(a.Context(ctx), interval)
}

// ResolveNumber finds the project that receives voicemail for number:
// the owning project, else the catch-all project when catch-all routing
// is enabled.
func (a *App) ResolveNumber(number string) (project.Project, bool) {
	if p, ok := a.Projects.ProjectForNumber(number); ok {
		return p, true
	}
	if !a.Settings.Get().CatchAllEnabled {
		return project.Project{}, false
	}
	return a.Projects.CatchAll()
}

// Now is the clock used for views.
func (a *App) Now() time.Time { return time.Now() }

// Close stops the refresh loop and releases the journal backend.
func (a *App) Close() error {
	if a.Voicemails != nil {
		a.Voicemails.Stop()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
