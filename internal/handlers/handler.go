package handlers

import (
	"net/http"
	"time"

	_ "innovation_showcase/docs"
	"innovation_showcase/internal/logger"
	"innovation_showcase/internal/metrics"
	"innovation_showcase/internal/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// apiPrefix is the canonical mount point; every route is also served at the root.
const apiPrefix = "/api"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(h.recovery(), h.requestLogger(), metrics.Middleware())
	router.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics", "/admin/ws", apiPrefix + "/admin/ws"}),
	))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	h.registerRoutes(router.Group(apiPrefix))
	h.registerRoutes(router.Group(""))

	return router
}

func (h *Handler) registerRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.health)

	h.registerAuthRoutes(r)
	h.registerProjectRoutes(r)
	h.registerAdminRoutes(r)
}

func (h *Handler) registerAuthRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.GET("/me", h.userIdMiddleware, h.me)
}

func (h *Handler) registerProjectRoutes(r *gin.RouterGroup) {
	r.GET("/projects", h.listApproved)
	r.GET("/projects/:id", h.getProject)
	r.GET("/projects/:id/comments", h.listComments)

	r.POST("/projects", h.userIdMiddleware, h.createProject)
	// Body example: {"projectId":"...","content":"Nice work"}
	r.POST("/comments", h.userIdMiddleware, h.addComment)
}

func (h *Handler) registerAdminRoutes(r *gin.RouterGroup) {
	// Browsers cannot set headers on a websocket handshake.
	r.GET("/admin/ws", h.queryTokenMiddleware, h.userIdMiddleware, h.adminOnly, h.moderationFeed)

	admin := r.Group("/admin", h.userIdMiddleware, h.adminOnly)
	{
		admin.GET("/projects", h.listAll)
		admin.GET("/pending", h.listPending)
		admin.PUT("/approve/:id", h.approve)
		admin.PUT("/reject/:id", h.reject)
		// Body example: {"status":"approved"}
		admin.PUT("/projects/:id/status", h.setStatus)
		admin.GET("/events", h.getEvents)
		admin.GET("/stats", h.getStats)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Server is running",
	})
}

// recovery answers 500 on panics and logs them through zap.
func (h *Handler) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if h.log != nil {
			h.log.Errorw("http_panic_recovered", "panic", recovered, "path", c.Request.URL.Path)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternal})
	})
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if h.log == nil {
			return
		}
		h.log.Debugw("http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
