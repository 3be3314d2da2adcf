package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/classconnect/classconnect-api/internal/handler"
	"github.com/classconnect/classconnect-api/internal/middleware"
	"github.com/classconnect/classconnect-api/internal/models"
	"github.com/classconnect/classconnect-api/internal/service"
	"github.com/classconnect/classconnect-api/pkg/config"
	"github.com/classconnect/classconnect-api/pkg/logger"
	corsmiddleware "github.com/classconnect/classconnect-api/pkg/middleware/cors"
	reqidmiddleware "github.com/classconnect/classconnect-api/pkg/middleware/requestid"
	"github.com/classconnect/classconnect-api/pkg/storage"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Assignments *handler.AssignmentHandler
	Upload      *handler.UploadHandler
	Translation *handler.TranslationHandler
	Exercise    *handler.ExerciseHandler
	Metrics     *handler.MetricsHandler
}

// New assembles the gin engine with middleware, API routes and the static
// uploads mount.
func New(cfg *config.Config, logr *zap.Logger, authSvc *service.AuthService, metricsSvc *service.MetricsService, uploads *storage.UploadStore, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.MaxMultipartMemory = cfg.Uploads.MaxFileSizeBytes

	// Previously uploaded files are public by path, matching the static
	// mount the dashboards link against.
	r.Static(uploads.URLPrefix(), uploads.Dir())

	r.GET("/metrics", h.Metrics.Expose)

	api := r.Group(cfg.APIPrefix)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.GET("/me", middleware.JWT(authSvc), h.Auth.Me)
	}

	requireTeacher := []gin.HandlerFunc{middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher)}

	assignments := api.Group("/assignments")
	{
		assignments.GET("", h.Assignments.List)
		assignments.GET("/:id", h.Assignments.Get)
		assignments.POST("", append(requireTeacher, h.Assignments.Create)...)
		assignments.PUT("/:id", append(requireTeacher, h.Assignments.Update)...)
		assignments.DELETE("/:id", append(requireTeacher, h.Assignments.Delete)...)
		assignments.DELETE("", append(requireTeacher, h.Assignments.DeleteAll)...)
	}

	api.POST("/upload", h.Upload.Upload)
	api.POST("/download-exercise", h.Exercise.Download)

	api.POST("/translate-text", h.Translation.Translate)
	api.GET("/translate-text/status", h.Translation.Status)
	api.POST("/translate-text/reset", append(requireTeacher, h.Translation.Reset)...)

	return r
}
