package dashboard

import (
	"time"

	"voicemail-console/internal/lifecycle"
	"voicemail-console/internal/project"
	"voicemail-console/internal/voicemail"
)

// Summary is the console's landing view.
type Summary struct {
	Projects       int `json:"projects"`
	Numbers        int `json:"numbers"`
	OverdueNumbers int `json:"overdue_numbers"`
	EndedNumbers   int `json:"ended_numbers"`

	NewVoicemails   int `json:"new_voicemails"`
	TotalVoicemails int `json:"total_voicemails"`

	PerProject []ProjectSummary `json:"per_project"`

	GeneratedAt time.Time `json:"generated_at"`
}

type ProjectSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Numbers        int    `json:"numbers"`
	OverdueNumbers int    `json:"overdue_numbers"`
	NewMessages    int    `json:"new_messages"`
	TotalMessages  int    `json:"total_messages"`
	IsCatchAll     bool   `json:"is_catch_all,omitempty"`
}

// Summarize aggregates the cached projects and voicemails as of now.
// Message counters per project come from the server's counts.
func Summarize(projects []project.Project, voicemails []voicemail.Voicemail, now time.Time) Summary {
	s := Summary{Projects: len(projects), GeneratedAt: now.UTC()}

	for _, p := range projects {
		row := ProjectSummary{
			ID:            p.ID,
			Name:          p.Name,
			Numbers:       len(p.Numbers),
			NewMessages:   p.NewMessages,
			TotalMessages: p.TotalMessages,
			IsCatchAll:    p.IsCatchAll,
		}
		for _, n := range p.Numbers {
			if n.EndDate.Ptr() != nil && !n.EndDate.After(now) {
				s.EndedNumbers++
				continue
			}
			start := n.Start()
			if start.IsZero() {
				continue
			}
			if lifecycle.Evaluate(start, now).Overdue() {
				row.OverdueNumbers++
			}
		}
		s.Numbers += row.Numbers
		s.OverdueNumbers += row.OverdueNumbers
		s.PerProject = append(s.PerProject, row)
	}

	s.TotalVoicemails = len(voicemails)
	for _, v := range voicemails {
		if v.IsNew {
			s.NewVoicemails++
		}
	}
	return s
}
