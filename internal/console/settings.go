package console

import (
	"net/http"

	"voicemail-console/internal/settings"

	"github.com/gin-gonic/gin"
)

func (h Handlers) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.Settings.Get())
}

func (h Handlers) UpdateSettings(c *gin.Context) {
	var p settings.Patch
	if !bind(c, &p) {
		return
	}
	s, err := h.Settings.Update(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

type catchAllRequest struct {
	Enabled *bool `json:"enabled"`
}

func (h Handlers) SetCatchAll(c *gin.Context) {
	var req catchAllRequest
	if !bind(c, &req) {
		return
	}
	if req.Enabled == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "enabled required"})
		return
	}
	if err := h.Settings.ToggleCatchAll(c.Request.Context(), *req.Enabled); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Settings.Get())
}

type greetingRequest struct {
	Greeting string `json:"greeting"`
}

func (h Handlers) SetCatchAllGreeting(c *gin.Context) {
	var req greetingRequest
	if !bind(c, &req) {
		return
	}
	if err := h.Settings.UpdateCatchAllGreeting(c.Request.Context(), req.Greeting); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Settings.Get())
}
