package handler

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/vsinha/ropfeed/pkg/interfaces/http/middleware"
	"go.uber.org/zap"
)

// RouterConfig wires the handlers into an engine
type RouterConfig struct {
	MRP       *MRPHandler
	Events    *EventsHandler
	Journal   *JournalHandler
	Health    *HealthHandler
	JWTSecret string
	Logger    *zap.Logger
}

// NewRouter builds the API engine. The MRP routes require a bearer token
// when JWTSecret is set.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health/live", cfg.Health.Live)
	r.GET("/health/ready", cfg.Health.Ready)
	r.GET("/version", cfg.Health.Version)

	api := r.Group("/api/v1")
	if cfg.JWTSecret != "" {
		api.Use(middleware.JWTAuth(cfg.JWTSecret))
	}
	{
		mrp := api.Group("/mrp")
		mrp.POST("/process", cfg.MRP.Process)
		if cfg.Events != nil {
			mrp.GET("/batches/:batchId/events", cfg.Events.List)
		}
		if cfg.Journal != nil {
			mrp.GET("/firms/:firmNo/fiches/:ficheNo/journal", cfg.Journal.List)
		}
	}

	return r
}
