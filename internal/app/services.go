package app

import (
	"gorm.io/gorm"

	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	User       services.UserService
	Cart       services.CartService
	Analytics  services.AnalyticsService
	Food       services.FoodService
	Restaurant services.RestaurantService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) Services {
	log.Info("Wiring services...")

	cache := newSnapshotCache(log, cfg.RedisAddr)

	return Services{
		Auth:       services.NewAuthService(db, log, reposet.User, reposet.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:       services.NewUserService(log, reposet.User),
		Cart:       services.NewCartService(log, reposet.Cart),
		Analytics:  services.NewAnalyticsService(log, reposet.Order, reposet.Delivery, reposet.User, reposet.Restaurant, reposet.Food, cache),
		Food:       services.NewFoodService(log, reposet.Food),
		Restaurant: services.NewRestaurantService(log, reposet.Restaurant),
	}
}
