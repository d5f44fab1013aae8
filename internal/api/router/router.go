package router

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/config"
	"github.com/vineetm1204-m/ODAutomation/internal/api/handler"
	"github.com/vineetm1204-m/ODAutomation/internal/api/middleware"
	"github.com/vineetm1204-m/ODAutomation/pkg/metrics"
	"github.com/vineetm1204-m/ODAutomation/pkg/redis"
)

// Setup builds the Gin engine. rdb and m may be nil.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.Metrics(m))

	// ── health / metrics ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// ── reference lists (no session) ──
	r.GET("/faculty.json", h.Reference.ListFaculty)
	r.GET("/subjects.json", h.Reference.ListSubjects)

	// ── static frontend ──
	mountStatic(r, cfg.Server.StaticDir)

	jsonLimit := middleware.BodyLimit(cfg.Server.MaxBodyBytes)

	api := r.Group("/api")
	api.Use(middleware.Session(middleware.SessionOptions{
		Secret: cfg.Server.SessionSecret,
		TTL:    cfg.Server.SessionTTL,
		Secure: cfg.Server.SecureCookie,
	}, logger)...)
	{
		// read-only
		api.GET("/timetable", h.Timetable.List)
		api.GET("/timetable/slots", h.Timetable.Slots)
		api.GET("/timetable/template", h.Timetable.Template)
		api.GET("/form", h.Form.Get)
		api.GET("/dispatch-logs", h.Email.ListDispatches)

		// mutating, rate limited per client ip
		mut := api.Group("")
		if cfg.RateLimit.Enabled {
			mut.Use(middleware.RateLimit(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window, logger))
		}

		mut.POST("/upload-timetable", middleware.BodyLimit(cfg.Server.MaxUploadBytes), h.Timetable.Upload)

		body := mut.Group("", jsonLimit)
		{
			body.POST("/generate-email", h.Email.Generate)
			body.POST("/send-email", h.Email.Send)

			body.POST("/faculty", h.Reference.CreateFaculty)
			body.POST("/subjects", h.Reference.CreateSubject)

			f := body.Group("/form")
			{
				f.DELETE("", h.Form.Reset)
				f.POST("/autofill", h.Form.AutoFill)
				f.POST("/email", h.Email.GenerateFromForm)

				f.POST("/subjects", h.Form.AddSubject)
				f.PUT("/subjects/:id", h.Form.UpdateSubject)
				f.DELETE("/subjects/:id", h.Form.RemoveSubject)
				f.POST("/subjects/:id/sections", h.Form.AddSection)
				f.POST("/subjects/:id/students", h.Form.AddStudent)

				f.PUT("/sections/:id", h.Form.UpdateSection)
				f.DELETE("/sections/:id", h.Form.RemoveSection)
				f.POST("/sections/:id/students", h.Form.AddSectionStudent)

				f.PUT("/students/:id", h.Form.UpdateStudent)
				f.DELETE("/students/:id", h.Form.RemoveStudent)
			}
		}
	}

	return r
}

// mountStatic serves dir under /static and its index.html at /, when present
func mountStatic(r *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}
	r.Static("/static", dir)

	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err == nil {
		r.StaticFile("/", index)
	}
}
