package app

import (
	"github.com/gin-gonic/gin"

	httpserver "github.com/mealdash/mealdash-backend/internal/http"
	httpH "github.com/mealdash/mealdash-backend/internal/http/handlers"
	httpMW "github.com/mealdash/mealdash-backend/internal/http/middleware"
	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth       *httpH.AuthHandler
	User       *httpH.UserHandler
	Cart       *httpH.CartHandler
	Analytics  *httpH.AnalyticsHandler
	Food       *httpH.FoodHandler
	Restaurant *httpH.RestaurantHandler
	Health     *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, cfg Config, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       httpH.NewAuthHandler(serviceset.Auth),
		User:       httpH.NewUserHandler(serviceset.User),
		Cart:       httpH.NewCartHandler(log, serviceset.Cart),
		Analytics:  httpH.NewAnalyticsHandler(log, serviceset.Analytics),
		Food:       httpH.NewFoodHandler(log, serviceset.Food, cfg.UploadDir),
		Restaurant: httpH.NewRestaurantHandler(log, serviceset.Restaurant, cfg.UploadDir),
		Health:     httpH.NewHealthHandler(),
	}
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, serviceset.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, middleware Middleware) *gin.Engine {
	return httpserver.NewRouter(httpserver.RouterConfig{
		Log:               log,
		AuthHandler:       handlerset.Auth,
		AuthMiddleware:    middleware.Auth,
		UserHandler:       handlerset.User,
		CartHandler:       handlerset.Cart,
		AnalyticsHandler:  handlerset.Analytics,
		FoodHandler:       handlerset.Food,
		RestaurantHandler: handlerset.Restaurant,
		HealthHandler:     handlerset.Health,
		UploadDir:         cfg.UploadDir,
	})
}
