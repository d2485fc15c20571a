package http

import (
	"github.com/gin-gonic/gin"
	httpH "github.com/mealdash/mealdash-backend/internal/http/handlers"
	httpMW "github.com/mealdash/mealdash-backend/internal/http/middleware"
	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler

	CartHandler       *httpH.CartHandler
	AnalyticsHandler  *httpH.AnalyticsHandler
	FoodHandler       *httpH.FoodHandler
	RestaurantHandler *httpH.RestaurantHandler

	HealthHandler *httpH.HealthHandler

	UploadDir string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Uploaded images
	if cfg.UploadDir != "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}

		// Catalog (public reads)
		if cfg.FoodHandler != nil {
			api.GET("/foods", cfg.FoodHandler.ListFoods)
			api.GET("/foods/:id", cfg.FoodHandler.GetFood)
		}
		if cfg.RestaurantHandler != nil {
			api.GET("/restaurants", cfg.RestaurantHandler.ListRestaurants)
			api.GET("/restaurants/:id", cfg.RestaurantHandler.GetRestaurant)
		}
		if cfg.FoodHandler != nil {
			api.GET("/restaurants/:id/foods", cfg.FoodHandler.ListRestaurantFoods)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PUT("/me", cfg.UserHandler.UpdateProfile)
			protected.PUT("/me/password", cfg.UserHandler.ChangePassword)
			protected.PUT("/me/online", cfg.UserHandler.UpdateOnlineStatus)
		}

		// Cart
		if cfg.CartHandler != nil {
			protected.GET("/cart", cfg.CartHandler.ListCart)
			protected.POST("/cart", cfg.CartHandler.AddLine)
			protected.GET("/cart/count", cfg.CartHandler.CountCart)
			// Registered before /cart/:id so "clear" never parses as a line id.
			protected.DELETE("/cart/clear", cfg.CartHandler.ClearCart)
			protected.PUT("/cart/:id", cfg.CartHandler.UpdateLine)
			protected.DELETE("/cart/:id", cfg.CartHandler.DeleteLine)
		}

		// Ratings
		if cfg.FoodHandler != nil {
			protected.POST("/foods/:id/rate", cfg.FoodHandler.RateFood)
		}
		if cfg.RestaurantHandler != nil {
			protected.POST("/restaurants/:id/rate", cfg.RestaurantHandler.RateRestaurant)
		}
	}

	admin := protected.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			admin.Use(cfg.AuthMiddleware.RequireAdmin())
		}

		// Analytics
		if cfg.AnalyticsHandler != nil {
			admin.GET("/analytics", cfg.AnalyticsHandler.GetAnalytics)
		}

		// User administration
		if cfg.UserHandler != nil {
			admin.GET("/users", cfg.UserHandler.ListUsers)
		}

		// Catalog mutations
		if cfg.FoodHandler != nil {
			admin.POST("/foods", cfg.FoodHandler.CreateFood)
			admin.PUT("/foods/:id", cfg.FoodHandler.UpdateFood)
			admin.DELETE("/foods/:id", cfg.FoodHandler.DeleteFood)
			admin.POST("/foods/:id/image", cfg.FoodHandler.UploadFoodImage)
		}
		if cfg.RestaurantHandler != nil {
			admin.POST("/restaurants", cfg.RestaurantHandler.CreateRestaurant)
			admin.PUT("/restaurants/:id", cfg.RestaurantHandler.UpdateRestaurant)
			admin.DELETE("/restaurants/:id", cfg.RestaurantHandler.DeleteRestaurant)
			admin.POST("/restaurants/:id/image", cfg.RestaurantHandler.UploadRestaurantImage)
		}
	}

	return r
}
