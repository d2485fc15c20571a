package app

import (
	"gorm.io/gorm"

	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/repos"
)

type Repos struct {
	User       repos.UserRepo
	UserToken  repos.UserTokenRepo
	Restaurant repos.RestaurantRepo
	Food       repos.FoodRepo
	Cart       repos.CartRepo
	Order      repos.OrderRepo
	Delivery   repos.DeliveryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		UserToken:  repos.NewUserTokenRepo(db, log),
		Restaurant: repos.NewRestaurantRepo(db, log),
		Food:       repos.NewFoodRepo(db, log),
		Cart:       repos.NewCartRepo(db, log),
		Order:      repos.NewOrderRepo(db, log),
		Delivery:   repos.NewDeliveryRepo(db, log),
	}
}
