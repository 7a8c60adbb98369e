package dashboard

import (
	"testing"
	"time"

	"voicemail-console/internal/project"
	"voicemail-console/internal/voicemail"
	"voicemail-console/pkg/jsonx"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	projects := []project.Project{
		{ID: "p1", Name: "Main", NewMessages: 3, TotalMessages: 15, Numbers: []project.Number{
			{Value: "a", StartDate: jsonx.At(now.Add(-100 * day))},
			{Value: "b", StartDate: jsonx.At(now.Add(-10 * day))},
			{Value: "c"},
		}},
		{ID: "p2", Name: "Support", IsCatchAll: true, Numbers: []project.Number{
			{Value: "d", StartDate: jsonx.At(now.Add(-200 * day)), EndDate: jsonx.At(now.Add(-day))},
		}},
	}
	vms := []voicemail.Voicemail{{ID: "1", IsNew: true}, {ID: "2"}, {ID: "3", IsNew: true}}

	s := Summarize(projects, vms, now)

	if s.Projects != 2 || s.Numbers != 4 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.OverdueNumbers != 1 || s.EndedNumbers != 1 {
		t.Fatalf("expected 1 overdue and 1 ended, got %d/%d", s.OverdueNumbers, s.EndedNumbers)
	}
	if s.NewVoicemails != 2 || s.TotalVoicemails != 3 {
		t.Fatalf("unexpected voicemail counts: %+v", s)
	}
	if len(s.PerProject) != 2 || s.PerProject[0].OverdueNumbers != 1 || !s.PerProject[1].IsCatchAll {
		t.Fatalf("unexpected per-project rows: %+v", s.PerProject)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, time.Now())
	if s.Projects != 0 || s.Numbers != 0 || s.PerProject != nil {
		t.Fatalf("expected empty summary, got %+v", s)
	}
}
