package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"voicemail-console/internal/journal"
	"voicemail-console/internal/metrics"
	"voicemail-console/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const storeName = "projects"

var ErrNoNumbers = errors.New("project: no numbers in input")

// Gateway is the slice of the remote API the store needs.
type Gateway interface {
	ListProjects(ctx context.Context) ([]Project, error)
	CreateProject(ctx context.Context, in Input) (Project, error)
	UpdateProject(ctx context.Context, id string, p Patch) (Project, error)
	DeleteProject(ctx context.Context, id string) error

	AddProjectNumber(ctx context.Context, id, number string) error
	RemoveProjectNumber(ctx context.Context, id, number string) error
	ArchiveProjectNumber(ctx context.Context, id, number string) error
	AddProjectNumbers(ctx context.Context, id string, numbers []Number) ([]Number, error)
	ArchiveNumber(ctx context.Context, number string, req ArchiveRequest) error
	NumberMetadata(ctx context.Context, number string) (Metadata, error)

	AddProjectNote(ctx context.Context, id string, in NoteInput) (Note, error)
	DeleteProjectNote(ctx context.Context, id, noteID string) error
}

type Options struct {
	Logger  *slog.Logger
	Journal journal.Recorder
	Clock   func() time.Time

	// Sequenced drops an update or delete response when a later-issued
	// one for the same project has already been applied. Off by default:
	// the last response to arrive wins.
	Sequenced bool
}

// Store is the client-side view of projects. Every mutation goes to the
// gateway first; the cache changes only after the gateway succeeds.
type Store struct {
	gw        Gateway
	log       *slog.Logger
	journal   journal.Recorder
	clock     func() time.Time
	validate  *validator.Validate
	sequenced bool

	mu        sync.RWMutex
	projects  map[string]Project
	order     []string
	currentID string
	issued    map[string]uint64
	applied   map[string]uint64
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
	return &Store{
		gw:        gw,
		log:       logger.Component(opts.Logger, storeName),
		journal:   j,
		clock:     clock,
		validate:  newValidator(),
		sequenced: opts.Sequenced,
		projects:  map[string]Project{},
		issued:    map[string]uint64{},
		applied:   map[string]uint64{},
	}
}

// LoadAll replaces every cached project with the server's list. When the
// list cannot be fetched the built-in sample set is installed instead.
// It reports whether the sample set was used. A cancelled ctx leaves the
// mapping as it was.
func (s *Store) LoadAll(ctx context.Context) (fallback bool) {
	list, err := s.gw.ListProjects(ctx)
	if err != nil {
		if ctx.Err() != nil {
			s.log.DebugContext(ctx, "project load cancelled", "err", err)
			return false
		}
		s.log.WarnContext(ctx, "project load failed, using sample data", "err", err)
		metrics.Fallback(storeName)
		s.journal.Record(ctx, storeName, "load", "", fmt.Errorf("%w: %v", journal.ErrFallback, err))
		list = Fallback()
		fallback = true
	} else {
		s.journal.Record(ctx, storeName, "load", "", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = make(map[string]Project, len(list))
	s.order = s.order[:0]
	for _, p := range list {
		s.putLocked(p)
	}
	return fallback
}

// Create validates in, sends it, and caches the server's project.
func (s *Store) Create(ctx context.Context, in Input) (Project, error) {
	if err := validateStruct(s.validate, in); err != nil {
		return Project{}, err
	}
	p, err := s.gw.CreateProject(ctx, in)
	s.record(ctx, "create", p.ID, err)
	if err != nil {
		return Project{}, fmt.Errorf("create project: %w", err)
	}

	s.mu.Lock()
	s.putLocked(p)
	s.mu.Unlock()
	return p.clone(), nil
}

// Update sends patch and replaces the cached project with the server's
// response. Fields are never merged locally.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (Project, error) {
	if err := validateStruct(s.validate, patch); err != nil {
		return Project{}, err
	}
	token := s.begin(id)
	p, err := s.gw.UpdateProject(ctx, id, patch)
	s.record(ctx, "update", id, err)
	if err != nil {
		return Project{}, fmt.Errorf("update project %s: %w", id, err)
	}
	if p.ID == "" {
		p.ID = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.acceptLocked(id, token) {
		metrics.StaleDropped(storeName)
		s.log.InfoContext(ctx, "stale update response dropped", "project_id", id, "token", token)
		cur, ok := s.projects[id]
		if !ok {
			return p.clone(), nil
		}
		return cur.clone(), nil
	}
	s.putLocked(p)
	return p.clone(), nil
}

// Delete removes the project on the server, then from the cache. The
// current-project reference is left as it was, even if it named id.
func (s *Store) Delete(ctx context.Context, id string) error {
	token := s.begin(id)
	err := s.gw.DeleteProject(ctx, id)
	s.record(ctx, "delete", id, err)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.acceptLocked(id, token) {
		metrics.StaleDropped(storeName)
		return nil
	}
	s.removeLocked(id)
	return nil
}

func (s *Store) Get(id string) (Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return Project{}, false
	}
	return p.clone(), true
}

// All returns every cached project in load/insert order.
func (s *Store) All() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Project, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.projects[id].clone())
	}
	return out
}

// SetCurrent points the current-project reference at id. An unknown id
// clears it.
func (s *Store) SetCurrent(id string) (Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		s.currentID = ""
		return Project{}, false
	}
	s.currentID = id
	return p.clone(), true
}

// Current resolves the current-project reference. A reference left
// behind by Delete resolves to nothing.
func (s *Store) Current() (Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentID == "" {
		return Project{}, false
	}
	p, ok := s.projects[s.currentID]
	if !ok {
		return Project{}, false
	}
	return p.clone(), true
}

// CurrentID returns the raw reference, stale or not.
func (s *Store) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// mutate applies fn to the cached project id if it is still cached.
func (s *Store) mutate(id string, fn func(p *Project)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return
	}
	p = p.clone()
	fn(&p)
	s.projects[id] = p
}

func (s *Store) putLocked(p Project) {
	if _, exists := s.projects[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.projects[p.ID] = p.clone()
}

func (s *Store) removeLocked(id string) {
	if _, ok := s.projects[id]; !ok {
		return
	}
	delete(s.projects, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// begin issues the next sequence token for id. Zero means unsequenced.
func (s *Store) begin(id string) uint64 {
	if !s.sequenced {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[id]++
	return s.issued[id]
}

func (s *Store) acceptLocked(id string, token uint64) bool {
	if !s.sequenced {
		return true
	}
	if token <= s.applied[id] {
		return false
	}
	s.applied[id] = token
	return true
}

func (s *Store) record(ctx context.Context, op, id string, err error) {
	s.journal.Record(ctx, storeName, op, id, err)
	if err != nil {
		s.log.WarnContext(ctx, "project mutation failed", "op", op, "project_id", id, "err", err)
	}
}
