package journal

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"voicemail-console/internal/auth"
	"voicemail-console/pkg/logger"
)

func TestService_AppendRequiresStoreAndOp(t *testing.T) {
	svc := NewService(NewMemoryRepo(), logger.Discard())

	if err := svc.Append(context.Background(), Event{Op: "load"}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
	if err := svc.Append(context.Background(), Event{Store: "projects"}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestService_RecordOutcomes(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, logger.Discard())
	svc.clock = func() time.Time { return time.Unix(1700000000, 0) }

	ctx := auth.WithIdentity(context.Background(), auth.Identity{UserID: "u-1"})
	svc.Record(ctx, "projects", "create", "p1", nil)
	svc.Record(ctx, "projects", "load", "", fmt.Errorf("wrap: %w", ErrFallback))
	svc.Record(ctx, "voicemails", "share", "7", errors.New("boom"))

	evs := repo.Events()
	if len(evs) != 3 {
		t.Fatalf("expected 3 events, got %d", len(evs))
	}
	if evs[0].Outcome != OutcomeSuccess || evs[0].ActorUserID != "u-1" || evs[0].ID == "" {
		t.Fatalf("unexpected first event: %+v", evs[0])
	}
	if evs[1].Outcome != OutcomeFallback || evs[1].Error != "" {
		t.Fatalf("expected fallback outcome: %+v", evs[1])
	}
	if evs[2].Outcome != OutcomeFailure || evs[2].Error != "boom" {
		t.Fatalf("expected failure outcome: %+v", evs[2])
	}
	if !evs[2].CreatedAt.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Fatalf("expected clock timestamp, got %v", evs[2].CreatedAt)
	}
}

type failingRepo struct{}

func (failingRepo) Append(context.Context, Event) error { return errors.New("down") }

func TestService_RecordSwallowsRepoErrors(t *testing.T) {
	svc := NewService(failingRepo{}, logger.Discard())
	svc.Record(context.Background(), "settings", "update", "", nil)
}

func TestDiscard(t *testing.T) {
	Discard.Record(context.Background(), "x", "y", "", errors.New("ignored"))
}
