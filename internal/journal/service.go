package journal

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"voicemail-console/internal/auth"
	"voicemail-console/pkg/logger"

	"github.com/google/uuid"
)

// Repository is the persistence contract for journal events.
// It is append-only.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Recorder is what the stores depend on. Recording is best-effort and
// never changes the outcome of the operation being recorded.
type Recorder interface {
	Record(ctx context.Context, store, op, entityID string, err error)
}

// Discard is a Recorder that drops everything.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(context.Context, string, string, string, error) {}

// ErrFallback marks an operation that succeeded by serving fallback data.
var ErrFallback = errors.New("journal: served fallback data")

var ErrInvalidEvent = errors.New("journal: invalid event")

type Service struct {
	repo  Repository
	clock func() time.Time
	log   *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, clock: time.Now, log: logger.Component(log, "journal")}
}

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("journal: repository not configured")
	}
	if e.Store == "" || e.Op == "" {
		return ErrInvalidEvent
	}
	if e.Outcome == "" {
		e.Outcome = OutcomeSuccess
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	if e.ActorUserID == "" {
		if id, ok := auth.IdentityFrom(ctx); ok {
			e.ActorUserID = id.UserID
		}
	}
	return s.repo.Append(ctx, e)
}

// Record maps err onto an outcome and appends. Append failures are logged
// at warn and swallowed.
func (s *Service) Record(ctx context.Context, store, op, entityID string, err error) {
	e := Event{Store: store, Op: op, EntityID: entityID, Outcome: OutcomeSuccess}
	switch {
	case errors.Is(err, ErrFallback):
		e.Outcome = OutcomeFallback
	case err != nil:
		e.Outcome = OutcomeFailure
		e.Error = err.Error()
	}
	if aerr := s.Append(ctx, e); aerr != nil {
		s.log.Warn("journal append failed", "store", store, "op", op, "err", aerr)
	}
}
