package journal

import "time"

// Event is one append-only record of a store mutation against the remote
// service. Events are never updated or deleted.
type Event struct {
	ID string `json:"id" db:"id"`

	// Store is the owning cache: settings, projects or voicemails.
	Store string `json:"store" db:"store"`
	// Op is the operation name, e.g. "add_note".
	Op string `json:"op" db:"op"`
	// EntityID is the project or voicemail id when the operation has one.
	EntityID string `json:"entity_id,omitempty" db:"entity_id"`

	Outcome Outcome `json:"outcome" db:"outcome"`
	Error   string  `json:"error,omitempty" db:"error"`

	// ActorUserID comes from the operator credential when one is present.
	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailure  Outcome = "failure"
	OutcomeFallback Outcome = "fallback"
)
