package lifecycle

import (
	"sort"
	"time"
)

// Assignment is one number held by one project, as seen by the sweep.
type Assignment struct {
	ProjectID   string
	ProjectName string
	Number      string
	Start       time.Time
	End         *time.Time
}

type FindingKind string

const (
	// FindingEnded means the activation window's end date has been reached.
	FindingEnded FindingKind = "ended"
	// FindingOverdue means the number has been active for ReviewAfterDays or more.
	FindingOverdue FindingKind = "overdue"
)

// Finding flags one assignment for operator attention.
type Finding struct {
	Kind        FindingKind `json:"kind"`
	ProjectID   string      `json:"project_id"`
	ProjectName string      `json:"project_name"`
	Number      string      `json:"number"`
	DaysActive  int         `json:"days_active"`
	EndedAt     *time.Time  `json:"ended_at,omitempty"`
}

// Sweep walks every assignment and reports the ones needing review.
// An ended assignment is reported once as ended and is not also reported as overdue.
// Assignments without a start date are skipped.
func Sweep(assignments []Assignment, now time.Time) []Finding {
	out := make([]Finding, 0)
	for _, a := range assignments {
		if a.Start.IsZero() {
			continue
		}
		days := DaysActive(a.Start, now)
		if a.End != nil && !a.End.After(now) {
			end := *a.End
			out = append(out, Finding{
				Kind:        FindingEnded,
				ProjectID:   a.ProjectID,
				ProjectName: a.ProjectName,
				Number:      a.Number,
				DaysActive:  days,
				EndedAt:     &end,
			})
			continue
		}
		if days >= ReviewAfterDays {
			out = append(out, Finding{
				Kind:        FindingOverdue,
				ProjectID:   a.ProjectID,
				ProjectName: a.ProjectName,
				Number:      a.Number,
				DaysActive:  days,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysActive != out[j].DaysActive {
			return out[i].DaysActive > out[j].DaysActive
		}
		return out[i].Number < out[j].Number
	})
	return out
}
