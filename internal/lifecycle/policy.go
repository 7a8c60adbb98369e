package lifecycle

import (
	"math"
	"time"
)

// ReviewAfterDays is the number of active days after which an assigned number
// must be reviewed. Fixed policy; not read from config.
const ReviewAfterDays = 90

const day = 24 * time.Hour

// State classifies a number by how long it has been active.
type State string

const (
	StateActive  State = "active"
	StateOverdue State = "overdue_for_review"
)

// Review is the rendered lifecycle classification of one number.
type Review struct {
	DaysActive int   `json:"days_active"`
	State      State `json:"state"`

	// RemainingDays is zero when overdue.
	RemainingDays int `json:"remaining_days"`

	// Progress is a percentage in [0, 100].
	Progress float64 `json:"progress"`
}

func (r Review) Overdue() bool { return r.State == StateOverdue }

// DaysActive returns floor((now - start) / 1 day).
func DaysActive(start, now time.Time) int {
	return int(math.Floor(float64(now.Sub(start)) / float64(day)))
}

// Evaluate classifies a number whose activation window began at start.
func Evaluate(start, now time.Time) Review {
	return classify(DaysActive(start, now))
}

func classify(days int) Review {
	if days >= ReviewAfterDays {
		return Review{DaysActive: days, State: StateOverdue, Progress: 100}
	}
	progress := math.Min(float64(days)/ReviewAfterDays*100, 100)
	// A start date in the future would otherwise render a negative bar.
	if progress < 0 {
		progress = 0
	}
	return Review{
		DaysActive:    days,
		State:         StateActive,
		RemainingDays: ReviewAfterDays - days,
		Progress:      progress,
	}
}
