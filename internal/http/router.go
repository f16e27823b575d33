package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/gymcoach/internal/http/handlers"
	httpMW "github.com/yungbote/gymcoach/internal/http/middleware"
	"github.com/yungbote/gymcoach/internal/observability"
	"github.com/yungbote/gymcoach/internal/platform/logger"
	"github.com/yungbote/gymcoach/internal/session"
)

const serviceName = "gymcoach-api"

type RouterConfig struct {
	Log      *logger.Logger
	Registry *session.Registry
	Metrics  *observability.Metrics

	CORSOrigins     []string
	MaxRequestBytes int64

	HealthHandler   *httpH.HealthHandler
	SessionHandler  *httpH.SessionHandler
	ProfileHandler  *httpH.ProfileHandler
	PlanHandler     *httpH.PlanHandler
	FoodScanHandler *httpH.FoodScanHandler
	ChatHandler     *httpH.ChatHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.MaxBodyBytes(cfg.MaxRequestBytes))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	if cfg.SessionHandler != nil {
		api.POST("/sessions", cfg.SessionHandler.Create)
		api.DELETE("/sessions", cfg.SessionHandler.Delete)
	}

	scoped := api.Group("/")
	if cfg.Registry != nil {
		scoped.Use(httpMW.RequireSession(cfg.Registry))
	}
	{
		// Profile
		if cfg.ProfileHandler != nil {
			scoped.GET("/profile", cfg.ProfileHandler.Get)
			scoped.PUT("/profile", cfg.ProfileHandler.Put)
			scoped.DELETE("/profile", cfg.ProfileHandler.Delete)
		}

		// Plans
		if cfg.PlanHandler != nil {
			scoped.GET("/meal-plan", cfg.PlanHandler.GetMealPlan)
			scoped.POST("/meal-plan/generate", cfg.PlanHandler.GenerateMealPlan)
			scoped.DELETE("/meal-plan", cfg.PlanHandler.ClearMealPlan)
			scoped.GET("/workout-plan", cfg.PlanHandler.GetWorkoutPlan)
			scoped.POST("/workout-plan/generate", cfg.PlanHandler.GenerateWorkoutPlan)
			scoped.DELETE("/workout-plan", cfg.PlanHandler.ClearWorkoutPlan)
		}

		// Food scan
		if cfg.FoodScanHandler != nil {
			scoped.GET("/food-scan", cfg.FoodScanHandler.Get)
			scoped.POST("/food-scan", cfg.FoodScanHandler.Scan)
			scoped.DELETE("/food-scan", cfg.FoodScanHandler.Clear)
		}

		// Chat
		if cfg.ChatHandler != nil {
			scoped.GET("/chat/messages", cfg.ChatHandler.List)
			scoped.POST("/chat/messages", cfg.ChatHandler.Send)
			scoped.DELETE("/chat/messages", cfg.ChatHandler.Clear)
		}
	}

	return r
}
