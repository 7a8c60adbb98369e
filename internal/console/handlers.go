package console

import (
	"errors"
	"net/http"
	"time"

	"voicemail-console/internal/gateway"
	"voicemail-console/internal/project"
	"voicemail-console/internal/settings"
	"voicemail-console/internal/voicemail"
	"voicemail-console/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups the console's HTTP handlers.
// Keep these thin: parse input, call a store, return JSON.
type Handlers struct {
	Settings   *settings.Cache
	Projects   *project.Store
	Voicemails *voicemail.Store

	// AudioURL builds the download link for a voicemail.
	AudioURL func(id string) string
	// Resolve maps a dialed number to the project that receives it.
	Resolve func(number string) (project.Project, bool)
	Clock   func() time.Time
}

func (h Handlers) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now()
}

func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return false
	}
	return true
}

func notFound(c *gin.Context, what string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

// fail maps store errors onto statuses. Local validation is the caller's
// fault; anything the gateway reported is upstream's.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, project.ErrInvalidProject),
		errors.Is(err, project.ErrNoNumbers),
		errors.Is(err, voicemail.ErrNoRecipients):
		status = http.StatusBadRequest
	case errors.Is(err, gateway.ErrRequestFailed):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		logger.FromGin(c).Warn("console action failed", "err", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
