package console

import (
	"net/http"

	"voicemail-console/internal/app"
	"voicemail-console/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the console engine over a's stores.
func NewRouter(a *app.App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(a.Log))
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(a.Context(c.Request.Context()))
		c.Next()
	})

	Register(r, Handlers{
		Settings:   a.Settings,
		Projects:   a.Projects,
		Voicemails: a.Voicemails,
		AudioURL:   a.Gateway.AudioURL,
		Resolve:    a.ResolveNumber,
		Clock:      a.Now,
	})
	if a.Config.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	return r
}

// Register wires routes to handlers.
// Keep this free of business logic; handlers delegate to the stores.
func Register(r *gin.Engine, h Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	v1.GET("/dashboard", h.Dashboard)
	v1.GET("/review", h.Review)

	projects := v1.Group("/projects")
	{
		projects.GET("", h.ListProjects)
		projects.POST("", h.CreateProject)
		projects.POST("/reload", h.ReloadProjects)
		projects.GET("/current", h.Current)
		projects.GET("/:id", h.GetProject)
		projects.PATCH("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)
		projects.PUT("/:id/current", h.SetCurrent)
		projects.GET("/:id/review", h.ProjectReview)

		projects.POST("/:id/dids", h.AddNumber)
		projects.POST("/:id/dids/bulk", h.AddBulkNumbers)
		projects.DELETE("/:id/dids/:number", h.RemoveNumber)
		projects.POST("/:id/dids/:number/archive", h.ArchiveNumber)

		projects.POST("/:id/notes", h.AddProjectNote)
		projects.DELETE("/:id/notes/:note_id", h.DeleteProjectNote)
	}

	numbers := v1.Group("/numbers")
	{
		numbers.GET("/:number/meta", h.NumberMetadata)
		numbers.GET("/:number/project", h.ResolveNumber)
		numbers.POST("/:number/archive", h.ArchiveNumberGlobal)
		numbers.POST("/dnc", h.AddNumberToDNC)
	}

	vms := v1.Group("/voicemails")
	{
		vms.GET("", h.ListVoicemails)
		vms.POST("/reload", h.ReloadVoicemails)
		vms.GET("/selected", h.Selected)
		vms.GET("/:id", h.GetVoicemail)
		vms.DELETE("/:id", h.DeleteVoicemail)
		vms.PUT("/:id/selected", h.SelectVoicemail)
		vms.POST("/:id/read", h.MarkAsRead)
		vms.POST("/:id/notes", h.AddVoicemailNote)
		vms.POST("/:id/dnc", h.AddVoicemailToDNC)
		vms.POST("/:id/share", h.ShareVoicemail)
	}

	s := v1.Group("/settings")
	{
		s.GET("", h.GetSettings)
		s.POST("", h.UpdateSettings)
		s.POST("/catch-all", h.SetCatchAll)
		s.POST("/catch-all-greeting", h.SetCatchAllGreeting)
	}
}
