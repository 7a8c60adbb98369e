package console

import (
	"net/http"
	"time"

	"voicemail-console/internal/dashboard"
	"voicemail-console/internal/lifecycle"

	"github.com/gin-gonic/gin"
)

func (h Handlers) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, dashboard.Summarize(h.Projects.All(), h.Voicemails.All(), h.now()))
}

// Review lists the numbers that need an operator decision.
func (h Handlers) Review(c *gin.Context) {
	findings := lifecycle.Sweep(h.Projects.Assignments(), h.now())
	if findings == nil {
		findings = []lifecycle.Finding{}
	}
	c.JSON(http.StatusOK, gin.H{"review_after_days": lifecycle.ReviewAfterDays, "findings": findings})
}

type numberReview struct {
	Number    string            `json:"number"`
	StartDate *time.Time        `json:"startDate"`
	Review    *lifecycle.Review `json:"review,omitempty"`
}

// ProjectReview evaluates each number of one project. Numbers with no
// recorded start date are listed without a review.
func (h Handlers) ProjectReview(c *gin.Context) {
	p, ok := h.Projects.Get(c.Param("id"))
	if !ok {
		notFound(c, "project")
		return
	}
	now := h.now()
	out := make([]numberReview, 0, len(p.Numbers))
	for _, n := range p.Numbers {
		r := numberReview{Number: n.Value}
		if start := n.Start(); !start.IsZero() {
			review := lifecycle.Evaluate(start, now)
			r.StartDate, r.Review = &start, &review
		}
		out = append(out, r)
	}
	c.JSON(http.StatusOK, out)
}
