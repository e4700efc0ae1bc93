package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/urmzd/lifx-mcp/pkg/api/handlers"
	"github.com/urmzd/lifx-mcp/pkg/db"
	"github.com/urmzd/lifx-mcp/pkg/tools"
)

const shutdownTimeout = 10 * time.Second

// Router holds the Gin engine and dependencies
type Router struct {
	engine     *gin.Engine
	dispatcher *tools.Dispatcher
	checker    handlers.ConfigChecker
	metrics    http.Handler
	activity   db.ToolCallStore
}

// NewRouter creates a new API router. metrics and activity may be nil,
// in which case their routes are not registered.
func NewRouter(dispatcher *tools.Dispatcher, checker handlers.ConfigChecker, metrics http.Handler, activity db.ToolCallStore) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:     engine,
		dispatcher: dispatcher,
		checker:    checker,
		metrics:    metrics,
		activity:   activity,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Control panel
	r.engine.GET("/", handlers.Panel)

	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics))
	}

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.checker)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Health)

		toolsHandler := handlers.NewToolsHandler(r.dispatcher)
		toolRoutes := v1.Group("/tools")
		{
			toolRoutes.GET("", toolsHandler.ListTools)
			toolRoutes.POST("/:name", toolsHandler.InvokeTool)
		}

		if r.activity != nil {
			activityHandler := handlers.NewActivityHandler(r.activity)
			v1.GET("/activity", activityHandler.Recent)
		}
	}
}

// Handler returns the router as an http.Handler.
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run serves HTTP on addr until ctx is cancelled, then shuts down
// gracefully.
func (r *Router) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
