package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck/internal/transport/http/handler"
	"github.com/taskdeck/taskdeck/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

// NewRouter wires all routes. debugHandler may be nil; the /debug group is
// then omitted entirely (anything but ENV=local).
func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	debugHandler *handler.DebugHandler,
	tokens middleware.Verifier,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokens)

	auth := r.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/verify", authMW, authHandler.Verify)
	auth.GET("/profile", authMW, authHandler.GetProfile)
	auth.PUT("/profile", authMW, authHandler.UpdateProfile)
	auth.PUT("/change-password", authMW, authHandler.ChangePassword)

	// Protected task routes
	tasks := r.Group("/api/tasks", authMW)
	tasks.GET("", taskHandler.List)
	tasks.GET("/stats", taskHandler.Stats)
	tasks.GET("/status/:status", taskHandler.ListByStatus)
	tasks.GET("/:id", taskHandler.GetByID)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	if debugHandler != nil {
		dbg := r.Group("/debug")
		dbg.GET("/status", debugHandler.Status)
		dbg.GET("/users", debugHandler.Users)
		dbg.GET("/tasks", debugHandler.Tasks)
		dbg.GET("/system", debugHandler.System)
		dbg.DELETE("/clear-all", debugHandler.ClearAll)
	}

	return r
}
