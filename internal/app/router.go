package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/gymcoach/internal/config"
	httpapi "github.com/yungbote/gymcoach/internal/http"
	httpH "github.com/yungbote/gymcoach/internal/http/handlers"
	"github.com/yungbote/gymcoach/internal/observability"
	"github.com/yungbote/gymcoach/internal/platform/logger"
	"github.com/yungbote/gymcoach/internal/session"
)

func wireRouter(cfg *config.Config, log *logger.Logger, reg *session.Registry, metrics *observability.Metrics) httpapi.RouterConfig {
	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return httpapi.RouterConfig{
		Log:             log,
		Registry:        reg,
		Metrics:         metrics,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		MaxRequestBytes: cfg.HTTP.MaxRequestBytes,

		HealthHandler:   httpH.NewHealthHandler(),
		SessionHandler:  httpH.NewSessionHandler(log, reg),
		ProfileHandler:  httpH.NewProfileHandler(log),
		PlanHandler:     httpH.NewPlanHandler(log),
		FoodScanHandler: httpH.NewFoodScanHandler(log, Constraints(cfg)),
		ChatHandler:     httpH.NewChatHandler(log),
	}
}
