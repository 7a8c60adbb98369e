package project

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"voicemail-console/pkg/jsonx"
	"voicemail-console/pkg/logger"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errDown = errors.New("gateway down")
	now     = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

// fakeGateway records calls and answers like a well-behaved server unless
// fail is set.
type fakeGateway struct {
	mu     sync.Mutex
	fail   error
	list   []Project
	nextID int
	calls  []string
	bulk   [][]Number

	update func(ctx context.Context, id string, p Patch) (Project, error)
}

func (f *fakeGateway) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.fail
}

func (f *fakeGateway) ListProjects(context.Context) ([]Project, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	return f.list, nil
}

func (f *fakeGateway) CreateProject(_ context.Context, in Input) (Project, error) {
	if err := f.record("create"); err != nil {
		return Project{}, err
	}
	f.mu.Lock()
	f.nextID++
	id := fmt.Sprintf("srv-%d", f.nextID)
	f.mu.Unlock()
	p := Project{ID: id, Name: in.Name, Description: in.Description}
	for _, n := range in.Numbers {
		p.Numbers = append(p.Numbers, Number{Value: n})
	}
	return p, nil
}

func (f *fakeGateway) UpdateProject(ctx context.Context, id string, p Patch) (Project, error) {
	if err := f.record("update"); err != nil {
		return Project{}, err
	}
	if f.update != nil {
		return f.update(ctx, id, p)
	}
	out := Project{ID: id}
	if p.Name != nil {
		out.Name = *p.Name
	}
	return out, nil
}

func (f *fakeGateway) DeleteProject(context.Context, string) error { return f.record("delete") }

func (f *fakeGateway) AddProjectNumber(context.Context, string, string) error {
	return f.record("add_number")
}

func (f *fakeGateway) RemoveProjectNumber(context.Context, string, string) error {
	return f.record("remove_number")
}

func (f *fakeGateway) ArchiveProjectNumber(context.Context, string, string) error {
	return f.record("archive_number")
}

func (f *fakeGateway) AddProjectNumbers(_ context.Context, _ string, numbers []Number) ([]Number, error) {
	if err := f.record("bulk"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.bulk = append(f.bulk, numbers)
	f.mu.Unlock()
	out := make([]Number, len(numbers))
	for i, n := range numbers {
		out[i] = Number{Value: n.Value, StartDate: jsonx.At(now.Add(-time.Hour)), Added: jsonx.At(now)}
	}
	return out, nil
}

func (f *fakeGateway) ArchiveNumber(context.Context, string, ArchiveRequest) error {
	return f.record("archive_global")
}

func (f *fakeGateway) NumberMetadata(context.Context, string) (Metadata, error) {
	if err := f.record("meta"); err != nil {
		return Metadata{}, err
	}
	return Metadata{Carrier: "Sample Carrier", Type: "mobile"}, nil
}

func (f *fakeGateway) AddProjectNote(_ context.Context, _ string, in NoteInput) (Note, error) {
	if err := f.record("add_note"); err != nil {
		return Note{}, err
	}
	return Note{ID: "n-1", Text: in.Text, CreatedBy: in.CreatedBy, CreatedAt: jsonx.At(now)}, nil
}

func (f *fakeGateway) DeleteProjectNote(context.Context, string, string) error {
	return f.record("delete_note")
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newStore(gw *fakeGateway, sequenced bool) *Store {
	return NewStore(gw, Options{
		Logger:    logger.Discard(),
		Clock:     func() time.Time { return now },
		Sequenced: sequenced,
	})
}

func seeded(t *testing.T, sequenced bool) (*Store, *fakeGateway) {
	t.Helper()
	gw := &fakeGateway{list: []Project{
		{ID: "p1", Name: "Main", Description: "main line", Numbers: []Number{{Value: "555-0001"}}},
		{ID: "p2", Name: "Support", IsCatchAll: true},
	}}
	s := newStore(gw, sequenced)
	require.False(t, s.LoadAll(context.Background()))
	return s, gw
}

func numberValues(p Project) []string {
	out := []string{}
	for _, n := range p.Numbers {
		out = append(out, n.Value)
	}
	return out
}

func TestLoadAll_ReplacesMapping(t *testing.T) {
	s, gw := seeded(t, false)
	gw.list = []Project{{ID: "p3", Name: "Other"}}

	s.LoadAll(context.Background())

	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, "p3", all[0].ID)
}

func TestLoadAll_FailureInstallsSampleData(t *testing.T) {
	s := newStore(&fakeGateway{fail: errDown}, false)

	require.True(t, s.LoadAll(context.Background()))

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Main Office", all[0].Name)
	assert.Equal(t, []string{"+1 (555) 123-4567", "+1 (555) 123-4568"}, numberValues(all[0]))
	assert.Equal(t, "Support Line", all[1].Name)
	assert.Equal(t, "support-greeting.wav", all[1].GreetingURL)
}

func TestLoadAll_CancelledKeepsMapping(t *testing.T) {
	s, gw := seeded(t, false)
	s.SetCurrent("p2")
	gw.fail = context.Canceled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, s.LoadAll(ctx))

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Main", all[0].Name)
	assert.Equal(t, "Support", all[1].Name)
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "p2", cur.ID)
}

func TestCreate_InsertsServerProject(t *testing.T) {
	s, _ := seeded(t, false)

	p, err := s.Create(context.Background(), Input{Name: "Sales", Numbers: []string{"555-9"}})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", p.ID)

	matches := 0
	for _, got := range s.All() {
		if got.ID == p.ID {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
}

func TestCreate_ValidationNeverReachesNetwork(t *testing.T) {
	s, gw := seeded(t, false)
	before := gw.callCount()

	_, err := s.Create(context.Background(), Input{Name: "", GreetingType: "loud"})
	require.ErrorIs(t, err, ErrInvalidProject)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "greetingType must be one of")
	assert.Equal(t, before, gw.callCount())
}

func TestUpdate_ReplacesWholeProject(t *testing.T) {
	s, _ := seeded(t, false)
	name := "Renamed"

	p, err := s.Update(context.Background(), "p1", Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)

	got, ok := s.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Name)
	assert.Empty(t, got.Description, "server response replaces, not merges")
	assert.Empty(t, got.Numbers)
}

func TestFailuresLeaveCacheUntouched(t *testing.T) {
	s, gw := seeded(t, false)
	before := s.All()
	gw.fail = errDown
	ctx := context.Background()
	name := "x"

	_, err := s.Update(ctx, "p1", Patch{Name: &name})
	assert.ErrorIs(t, err, errDown)
	assert.ErrorIs(t, s.Delete(ctx, "p1"), errDown)
	assert.ErrorIs(t, s.AddNumber(ctx, "p1", "555-1"), errDown)
	assert.ErrorIs(t, s.RemoveNumber(ctx, "p1", "555-0001"), errDown)
	assert.ErrorIs(t, s.ArchiveNumber(ctx, "p1", "555-0001"), errDown)
	_, err = s.AddBulkNumbers(ctx, "p1", "555-2", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, errDown)
	_, err = s.AddNote(ctx, "p1", "hi", "me")
	assert.ErrorIs(t, err, errDown)
	assert.ErrorIs(t, s.DeleteNote(ctx, "p1", "n-1"), errDown)
	_, err = s.Create(ctx, Input{Name: "new"})
	assert.ErrorIs(t, err, errDown)

	timeEq := cmp.Comparer(func(a, b jsonx.Time) bool { return a.Equal(b.Time) })
	if diff := cmp.Diff(before, s.All(), timeEq); diff != "" {
		t.Fatalf("cache changed after failures (-before +after):\n%s", diff)
	}
}

func TestDelete_LeavesCurrentReferenceStale(t *testing.T) {
	s, _ := seeded(t, false)
	_, ok := s.SetCurrent("p1")
	require.True(t, ok)

	require.NoError(t, s.Delete(context.Background(), "p1"))

	_, ok = s.Get("p1")
	assert.False(t, ok)
	assert.Equal(t, "p1", s.CurrentID())
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestSetCurrent_UnknownIDClears(t *testing.T) {
	s, _ := seeded(t, false)
	s.SetCurrent("p1")

	_, ok := s.SetCurrent("nope")
	assert.False(t, ok)
	assert.Equal(t, "", s.CurrentID())
}

func TestNumberOps_MatchSetSemantics(t *testing.T) {
	s, _ := seeded(t, false)
	ctx := context.Background()

	type op struct {
		add    bool
		number string
	}
	ops := []op{
		{true, "555-1"}, {true, "555-2"}, {true, "555-1"}, {false, "555-0001"},
		{true, "555-3"}, {false, "555-2"}, {false, "555-9"}, {true, "555-2"},
	}
	model := map[string]bool{"555-0001": true}
	for _, o := range ops {
		if o.add {
			require.NoError(t, s.AddNumber(ctx, "p1", o.number))
			model[o.number] = true
		} else {
			require.NoError(t, s.RemoveNumber(ctx, "p1", o.number))
			delete(model, o.number)
		}
	}

	p, _ := s.Get("p1")
	got := map[string]bool{}
	for _, n := range p.Numbers {
		require.False(t, got[n.Value], "duplicate %s", n.Value)
		got[n.Value] = true
	}
	assert.Equal(t, model, got)
}

func TestAddNumber_StampsStart(t *testing.T) {
	s, _ := seeded(t, false)
	require.NoError(t, s.AddNumber(context.Background(), "p2", "555-7"))

	p, _ := s.Get("p2")
	require.Len(t, p.Numbers, 1)
	assert.True(t, p.Numbers[0].Start().Equal(now))
}

func TestArchiveNumber_FiltersLocally(t *testing.T) {
	s, gw := seeded(t, false)
	require.NoError(t, s.ArchiveNumber(context.Background(), "p1", "555-0001"))

	p, _ := s.Get("p1")
	assert.Empty(t, p.Numbers)
	assert.Contains(t, gw.calls, "archive_number")
}

func TestSplitNumbers(t *testing.T) {
	assert.Equal(t, []string{"555-1", "555-2", "555-3", "555-4"}, SplitNumbers("555-1,555-2,,555-3\n555-4"))
	assert.Empty(t, SplitNumbers(" , \n ,"))
}

func TestAddBulkNumbers_SendsBatchAndAppendsCanonical(t *testing.T) {
	s, gw := seeded(t, false)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	got, err := s.AddBulkNumbers(context.Background(), "p2", "555-1,555-2,,555-3\n555-4", start, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 4)

	require.Len(t, gw.bulk, 1)
	sent := gw.bulk[0]
	require.Len(t, sent, 4)
	for _, n := range sent {
		assert.True(t, n.StartDate.Equal(start))
		assert.True(t, n.EndDate.IsZero())
		assert.True(t, n.Added.Equal(now))
	}

	p, _ := s.Get("p2")
	assert.Equal(t, []string{"555-1", "555-2", "555-3", "555-4"}, numberValues(p))
	assert.True(t, p.Numbers[0].StartDate.Equal(now.Add(-time.Hour)), "canonical record kept")
}

func TestAddBulkNumbers_EmptyInput(t *testing.T) {
	s, gw := seeded(t, false)
	before := gw.callCount()

	_, err := s.AddBulkNumbers(context.Background(), "p1", " ,\n ", time.Time{}, time.Time{})
	require.ErrorIs(t, err, ErrNoNumbers)
	assert.Equal(t, before, gw.callCount())
}

func TestNotes_AddAndDelete(t *testing.T) {
	s, _ := seeded(t, false)
	ctx := context.Background()

	n, err := s.AddNote(ctx, "p1", "call back", "ops")
	require.NoError(t, err)
	assert.Equal(t, "ops", n.CreatedBy)

	p, _ := s.Get("p1")
	require.Len(t, p.Notes, 1)

	require.NoError(t, s.DeleteNote(ctx, "p1", "n-1"))
	p, _ = s.Get("p1")
	assert.Empty(t, p.Notes)
}

func TestLookups(t *testing.T) {
	s, _ := seeded(t, false)

	p, ok := s.ProjectForNumber("555-0001")
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID)

	_, ok = s.ProjectForNumber("555-nobody")
	assert.False(t, ok)

	ca, ok := s.CatchAll()
	require.True(t, ok)
	assert.Equal(t, "p2", ca.ID)
}

func TestAssignments(t *testing.T) {
	s, _ := seeded(t, false)
	require.NoError(t, s.AddNumber(context.Background(), "p2", "555-7"))

	as := s.Assignments()
	require.Len(t, as, 2)
	assert.Equal(t, "555-0001", as[0].Number)
	assert.True(t, as[0].Start.IsZero())
	assert.Equal(t, "Support", as[1].ProjectName)
	assert.True(t, as[1].Start.Equal(now))
}

func TestGet_ReturnsCopy(t *testing.T) {
	s, _ := seeded(t, false)
	p, _ := s.Get("p1")
	p.Numbers[0].Value = "mutated"

	again, _ := s.Get("p1")
	assert.Equal(t, "555-0001", again.Numbers[0].Value)
}

// overlappingUpdates issues update "first" which blocks until update
// "second" has been applied, then releases it.
func overlappingUpdates(t *testing.T, sequenced bool) Project {
	t.Helper()
	s, gw := seeded(t, sequenced)
	release := make(chan struct{})
	started := make(chan struct{})
	gw.update = func(ctx context.Context, id string, p Patch) (Project, error) {
		if *p.Name == "first" {
			close(started)
			<-release
		}
		return Project{ID: id, Name: *p.Name}, nil
	}

	first, second := "first", "second"
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := s.Update(context.Background(), "p1", Patch{Name: &first})
		assert.NoError(t, err)
	}()
	<-started
	_, err := s.Update(context.Background(), "p1", Patch{Name: &second})
	require.NoError(t, err)
	close(release)
	<-done

	p, _ := s.Get("p1")
	return p
}

func TestUpdate_UnsequencedLastResponseWins(t *testing.T) {
	assert.Equal(t, "first", overlappingUpdates(t, false).Name)
}

func TestUpdate_SequencedDropsStaleResponse(t *testing.T) {
	assert.Equal(t, "second", overlappingUpdates(t, true).Name)
}
