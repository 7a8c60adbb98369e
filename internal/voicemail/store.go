package voicemail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"voicemail-console/internal/journal"
	"voicemail-console/internal/metrics"
	"voicemail-console/pkg/jsonx"
	"voicemail-console/pkg/logger"
)

const (
	storeName = "voicemails"

	// DefaultRefreshInterval is the background reload period.
	DefaultRefreshInterval = 30 * time.Second

	// DefaultAuthor labels locally created notes.
	DefaultAuthor = "Current User"
)

var ErrNoRecipients = errors.New("voicemail: no recipients")

// Gateway is the slice of the remote API the store needs.
type Gateway interface {
	ListVoicemails(ctx context.Context) ([]Voicemail, error)
	AddVoicemailNote(ctx context.Context, id, text string) error
	AddVoicemailToDNC(ctx context.Context, id, notes string) (string, error)
	AddNumberToDNC(ctx context.Context, phoneNumber string) error
	ShareVoicemail(ctx context.Context, id string, recipients []string) error
}

type Options struct {
	Logger  *slog.Logger
	Journal journal.Recorder
	Clock   func() time.Time
	// Author labels notes added through the store. Defaults to DefaultAuthor.
	Author string
}

// Store is the client-side view of voicemails plus a weak selection.
type Store struct {
	gw      Gateway
	log     *slog.Logger
	journal journal.Recorder
	clock   func() time.Time
	author  string

	mu         sync.RWMutex
	items      []Voicemail
	selectedID string
	lastNoteID int64

	refreshMu sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewStore(gw Gateway, opts Options) *Store {
	j := opts.Journal
	if j == nil {
		j = journal.Discard
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	author := opts.Author
	if author == "" {
		author = DefaultAuthor
	}
	return &Store{
		gw:      gw,
		log:     logger.Component(opts.Logger, storeName),
		journal: j,
		clock:   clock,
		author:  author,
	}
}

// LoadAll replaces the list with the server's. On failure the built-in
// sample set is installed and true is returned. A cancelled ctx leaves
// the list as it was.
func (s *Store) LoadAll(ctx context.Context) (fallback bool) {
	list, err := s.gw.ListVoicemails(ctx)
	if err != nil {
		if ctx.Err() != nil {
			s.log.DebugContext(ctx, "voicemail load cancelled", "err", err)
			return false
		}
		s.log.WarnContext(ctx, "voicemail load failed, using sample data", "err", err)
		metrics.Fallback(storeName)
		s.journal.Record(ctx, storeName, "load", "", fmt.Errorf("%w: %v", journal.ErrFallback, err))
		list = Fallback(s.clock())
		fallback = true
	}

	items := make([]Voicemail, len(list))
	for i, v := range list {
		items[i] = v.clone()
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return fallback
}

func (s *Store) All() []Voicemail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Voicemail, len(s.items))
	for i, v := range s.items {
		out[i] = v.clone()
	}
	return out
}

func (s *Store) Get(id string) (Voicemail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i].clone(), true
	}
	return Voicemail{}, false
}

// ForProject lists the voicemails for projectID. Messages the server
// has not attributed to any project are included for every project.
func (s *Store) ForProject(projectID string) []Voicemail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Voicemail
	for _, v := range s.items {
		if v.ProjectID == "" || v.ProjectID == projectID {
			out = append(out, v.clone())
		}
	}
	return out
}

// Select points the selection at id, or clears it if id is unknown.
func (s *Store) Select(id string) (Voicemail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		s.selectedID = ""
		return Voicemail{}, false
	}
	s.selectedID = id
	return s.items[i].clone(), true
}

// Selected resolves the selection. A refresh does not revalidate it, so
// an id that vanished from the reloaded list resolves to nothing while
// SelectedID still reports it.
func (s *Store) Selected() (Voicemail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedID == "" {
		return Voicemail{}, false
	}
	if i := s.indexLocked(s.selectedID); i >= 0 {
		return s.items[i].clone(), true
	}
	return Voicemail{}, false
}

func (s *Store) SelectedID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedID
}

// MarkAsRead clears the new flag locally. The server is not told.
func (s *Store) MarkAsRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.items[i].IsNew = false
	return true
}

// Delete removes id locally and clears the selection if it pointed there.
// The server is not told.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	if s.selectedID == id {
		s.selectedID = ""
	}
	return true
}

// AddNote sends text to the server, then appends a locally built note.
func (s *Store) AddNote(ctx context.Context, id, text string) (Note, error) {
	err := s.gw.AddVoicemailNote(ctx, id, text)
	s.record(ctx, "add_note", id, err)
	if err != nil {
		return Note{}, fmt.Errorf("add note to voicemail %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	n := Note{
		ID:        jsonx.FlexString(strconv.FormatInt(s.nextNoteIDLocked(now), 10)),
		Text:      text,
		Timestamp: jsonx.At(now.UTC()),
		User:      s.author,
	}
	if i := s.indexLocked(id); i >= 0 {
		s.items[i].Notes = append(s.items[i].Notes, n)
	}
	return n, nil
}

// AddToDNC registers the caller of voicemail id as do-not-contact and
// returns the server's message.
func (s *Store) AddToDNC(ctx context.Context, id, notes string) (string, error) {
	msg, err := s.gw.AddVoicemailToDNC(ctx, id, notes)
	s.record(ctx, "add_to_dnc", id, err)
	if err != nil {
		return "", fmt.Errorf("add voicemail %s to dnc: %w", id, err)
	}
	return msg, nil
}

// AddNumberToDNC registers a bare phone number as do-not-contact.
func (s *Store) AddNumberToDNC(ctx context.Context, phoneNumber string) error {
	err := s.gw.AddNumberToDNC(ctx, phoneNumber)
	s.record(ctx, "add_number_to_dnc", "", err)
	if err != nil {
		return fmt.Errorf("add number to dnc: %w", err)
	}
	return nil
}

// ParseRecipients splits raw on commas, trims, and drops empty entries.
func ParseRecipients(raw string) []string {
	var out []string
	for _, r := range strings.Split(raw, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// Share sends voicemail id to the recipients in raw. An input with no
// recipients fails with ErrNoRecipients before anything is sent.
func (s *Store) Share(ctx context.Context, id, raw string) error {
	recipients := ParseRecipients(raw)
	if len(recipients) == 0 {
		return ErrNoRecipients
	}
	err := s.gw.ShareVoicemail(ctx, id, recipients)
	s.record(ctx, "share", id, err)
	if err != nil {
		return fmt.Errorf("share voicemail %s: %w", id, err)
	}
	return nil
}

// nextNoteIDLocked derives an id from the clock in milliseconds, bumped
// so ids never repeat or go backwards.
func (s *Store) nextNoteIDLocked(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastNoteID {
		id = s.lastNoteID + 1
	}
	s.lastNoteID = id
	return id
}

func (s *Store) indexLocked(id string) int {
	for i, v := range s.items {
		if v.ID.String() == id {
			return i
		}
	}
	return -1
}

func (s *Store) record(ctx context.Context, op, id string, err error) {
	s.journal.Record(ctx, storeName, op, id, err)
	if err != nil {
		s.log.WarnContext(ctx, "voicemail action failed", "op", op, "voicemail_id", id, "err", err)
	}
}
