package console

import (
	"net/http"

	"voicemail-console/internal/project"
	"voicemail-console/pkg/jsonx"

	"github.com/gin-gonic/gin"
)

func (h Handlers) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.Projects.All())
}

func (h Handlers) GetProject(c *gin.Context) {
	p, ok := h.Projects.Get(c.Param("id"))
	if !ok {
		notFound(c, "project")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h Handlers) ReloadProjects(c *gin.Context) {
	fallback := h.Projects.LoadAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"projects": len(h.Projects.All()), "fallback": fallback})
}

func (h Handlers) CreateProject(c *gin.Context) {
	var in project.Input
	if !bind(c, &in) {
		return
	}
	p, err := h.Projects.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h Handlers) UpdateProject(c *gin.Context) {
	var patch project.Patch
	if !bind(c, &patch) {
		return
	}
	p, err := h.Projects.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h Handlers) DeleteProject(c *gin.Context) {
	if err := h.Projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetCurrent selects the project the operator is working in. An unknown
// id clears the reference and reports not found.
func (h Handlers) SetCurrent(c *gin.Context) {
	p, ok := h.Projects.SetCurrent(c.Param("id"))
	if !ok {
		notFound(c, "project")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h Handlers) Current(c *gin.Context) {
	p, ok := h.Projects.Current()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"current": nil, "id": h.Projects.CurrentID()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"current": p, "id": p.ID})
}

type numberRequest struct {
	Number string `json:"number"`
}

func (h Handlers) AddNumber(c *gin.Context) {
	var req numberRequest
	if !bind(c, &req) {
		return
	}
	if req.Number == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "number required"})
		return
	}
	if err := h.Projects.AddNumber(c.Request.Context(), c.Param("id"), req.Number); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) RemoveNumber(c *gin.Context) {
	if err := h.Projects.RemoveNumber(c.Request.Context(), c.Param("id"), c.Param("number")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) ArchiveNumber(c *gin.Context) {
	if err := h.Projects.ArchiveNumber(c.Request.Context(), c.Param("id"), c.Param("number")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type bulkRequest struct {
	Numbers   string     `json:"dids"`
	StartDate jsonx.Time `json:"startDate"`
	EndDate   jsonx.Time `json:"endDate"`
}

func (h Handlers) AddBulkNumbers(c *gin.Context) {
	var req bulkRequest
	if !bind(c, &req) {
		return
	}
	added, err := h.Projects.AddBulkNumbers(c.Request.Context(), c.Param("id"), req.Numbers, req.StartDate.Time, req.EndDate.Time)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dids": added})
}

type globalArchiveRequest struct {
	Reason     string `json:"reason"`
	ArchivedBy string `json:"archivedBy"`
}

func (h Handlers) ArchiveNumberGlobal(c *gin.Context) {
	var req globalArchiveRequest
	if !bind(c, &req) {
		return
	}
	if err := h.Projects.ArchiveNumberGlobal(c.Request.Context(), c.Param("number"), req.Reason, req.ArchivedBy); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) NumberMetadata(c *gin.Context) {
	meta, err := h.Projects.NumberMetadata(c.Request.Context(), c.Param("number"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

// ResolveNumber reports which project receives voicemail for a number.
func (h Handlers) ResolveNumber(c *gin.Context) {
	p, ok := h.Resolve(c.Param("number"))
	if !ok {
		notFound(c, "project for number")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h Handlers) AddProjectNote(c *gin.Context) {
	var in project.NoteInput
	if !bind(c, &in) {
		return
	}
	if in.Text == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "text required"})
		return
	}
	n, err := h.Projects.AddNote(c.Request.Context(), c.Param("id"), in.Text, in.CreatedBy)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h Handlers) DeleteProjectNote(c *gin.Context) {
	if err := h.Projects.DeleteNote(c.Request.Context(), c.Param("id"), c.Param("note_id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
