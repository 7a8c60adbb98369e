package console

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListVoicemails returns the cache, optionally narrowed by ?project=.
func (h Handlers) ListVoicemails(c *gin.Context) {
	if id := c.Query("project"); id != "" {
		c.JSON(http.StatusOK, h.Voicemails.ForProject(id))
		return
	}
	c.JSON(http.StatusOK, h.Voicemails.All())
}

func (h Handlers) GetVoicemail(c *gin.Context) {
	vm, ok := h.Voicemails.Get(c.Param("id"))
	if !ok {
		notFound(c, "voicemail")
		return
	}
	c.JSON(http.StatusOK, gin.H{"voicemail": vm, "audioUrl": h.AudioURL(c.Param("id"))})
}

func (h Handlers) ReloadVoicemails(c *gin.Context) {
	fallback := h.Voicemails.LoadAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"voicemails": len(h.Voicemails.All()), "fallback": fallback})
}

func (h Handlers) SelectVoicemail(c *gin.Context) {
	vm, ok := h.Voicemails.Select(c.Param("id"))
	if !ok {
		notFound(c, "voicemail")
		return
	}
	c.JSON(http.StatusOK, vm)
}

// Selected reports the selection. After a refresh the id may point at an
// entry that no longer exists; the id is still returned.
func (h Handlers) Selected(c *gin.Context) {
	vm, ok := h.Voicemails.Selected()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"selected": nil, "id": h.Voicemails.SelectedID()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": vm, "id": vm.ID})
}

func (h Handlers) MarkAsRead(c *gin.Context) {
	if !h.Voicemails.MarkAsRead(c.Param("id")) {
		notFound(c, "voicemail")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) DeleteVoicemail(c *gin.Context) {
	if !h.Voicemails.Delete(c.Param("id")) {
		notFound(c, "voicemail")
		return
	}
	c.Status(http.StatusNoContent)
}

type voicemailNoteRequest struct {
	Text string `json:"text"`
}

func (h Handlers) AddVoicemailNote(c *gin.Context) {
	var req voicemailNoteRequest
	if !bind(c, &req) {
		return
	}
	if req.Text == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "text required"})
		return
	}
	n, err := h.Voicemails.AddNote(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

type dncRequest struct {
	Notes       string `json:"notes"`
	PhoneNumber string `json:"phoneNumber"`
}

func (h Handlers) AddVoicemailToDNC(c *gin.Context) {
	var req dncRequest
	if !bind(c, &req) {
		return
	}
	msg, err := h.Voicemails.AddToDNC(c.Request.Context(), c.Param("id"), req.Notes)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func (h Handlers) AddNumberToDNC(c *gin.Context) {
	var req dncRequest
	if !bind(c, &req) {
		return
	}
	if req.PhoneNumber == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "phoneNumber required"})
		return
	}
	if err := h.Voicemails.AddNumberToDNC(c.Request.Context(), req.PhoneNumber); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type shareRequest struct {
	// Recipients is the raw comma-separated list the operator typed.
	Recipients string `json:"recipients"`
}

func (h Handlers) ShareVoicemail(c *gin.Context) {
	var req shareRequest
	if !bind(c, &req) {
		return
	}
	if err := h.Voicemails.Share(c.Request.Context(), c.Param("id"), req.Recipients); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
