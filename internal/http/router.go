package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/farm-catalog-backend/internal/http/handlers"
	httpMW "github.com/yungbote/farm-catalog-backend/internal/http/middleware"
	"github.com/yungbote/farm-catalog-backend/internal/observability"
	"github.com/yungbote/farm-catalog-backend/internal/pkg/logger"
)

type RouterConfig struct {
	ServiceName      string
	Log              *logger.Logger
	Metrics          *observability.Metrics
	CORSAllowOrigins []string

	HealthHandler    *httpH.HealthHandler
	FarmHandler      *httpH.FarmHandler
	FruitHandler     *httpH.CropHandler
	VegetableHandler *httpH.CropHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSAllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Home)
		r.GET("/health", cfg.HealthHandler.HealthCheck)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Farms
		if cfg.FarmHandler != nil {
			farms := api.Group("/farms")
			farms.GET("", cfg.FarmHandler.ListFarms)
			farms.POST("", cfg.FarmHandler.CreateFarm)
			farms.GET("/search", cfg.FarmHandler.SearchByName)
			farms.GET("/by-name", cfg.FarmHandler.ByName)
			farms.GET("/by-location", cfg.FarmHandler.ByLocation)
			farms.GET("/ranking", cfg.FarmHandler.Ranking)
			farms.GET("/:id", cfg.FarmHandler.GetFarm)
			farms.PUT("/:id", cfg.FarmHandler.UpdateFarm)
			farms.DELETE("/:id", cfg.FarmHandler.DeleteFarm)
			farms.DELETE("/:id/crops", cfg.FarmHandler.DeleteCrops)
			farms.GET("/:id/stats", cfg.FarmHandler.FarmStats)
		}

		// Crops
		registerCropRoutes(api.Group("/fruits"), cfg.FruitHandler)
		registerCropRoutes(api.Group("/vegetables"), cfg.VegetableHandler)
	}

	return r
}

func registerCropRoutes(g *gin.RouterGroup, h *httpH.CropHandler) {
	if h == nil {
		return
	}
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/by-color-and-weight", h.ByColorAndWeight)
	g.GET("/farm/:farmId", h.ListByFarm)
	g.DELETE("/farm/:farmId", h.DeleteByFarm)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.PUT("/:id/farm", h.Move)
}
