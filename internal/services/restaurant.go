package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mealdash/mealdash-backend/internal/pkg/apierr"
	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/repos"
	"github.com/mealdash/mealdash-backend/internal/types"
)

type RestaurantInput struct {
	Name        string
	Description string
	Address     string
	ImageURL    string
}

type RestaurantService interface {
	ListRestaurants(ctx context.Context) ([]*types.Restaurant, error)
	GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*types.Restaurant, error)
	CreateRestaurant(ctx context.Context, input RestaurantInput) (*types.Restaurant, error)
	UpdateRestaurant(ctx context.Context, restaurantID uuid.UUID, input RestaurantInput) (*types.Restaurant, error)
	DeleteRestaurant(ctx context.Context, restaurantID uuid.UUID) error
	RateRestaurant(ctx context.Context, restaurantID uuid.UUID, value int) (*types.Restaurant, error)
	SetRestaurantImage(ctx context.Context, restaurantID uuid.UUID, imageURL string) (*types.Restaurant, error)
}

type restaurantService struct {
	log            *logger.Logger
	restaurantRepo repos.RestaurantRepo
}

func NewRestaurantService(log *logger.Logger, restaurantRepo repos.RestaurantRepo) RestaurantService {
	serviceLog := log.With("service", "RestaurantService")
	return &restaurantService{log: serviceLog, restaurantRepo: restaurantRepo}
}

func (rs *restaurantService) ListRestaurants(ctx context.Context) ([]*types.Restaurant, error) {
	restaurants, err := rs.restaurantRepo.List(ctx, nil)
	if err != nil {
		return nil, storeErr("restaurant_list_failed", err)
	}
	if restaurants == nil {
		restaurants = []*types.Restaurant{}
	}
	return restaurants, nil
}

func (rs *restaurantService) GetRestaurant(ctx context.Context, restaurantID uuid.UUID) (*types.Restaurant, error) {
	restaurant, err := rs.restaurantRepo.GetByID(ctx, nil, restaurantID)
	if err != nil {
		return nil, storeErr("restaurant_lookup_failed", err)
	}
	if restaurant == nil {
		return nil, apierr.NotFound("restaurant_not_found", fmt.Errorf("restaurant %s not found", restaurantID))
	}
	return restaurant, nil
}

func (rs *restaurantService) CreateRestaurant(ctx context.Context, input RestaurantInput) (*types.Restaurant, error) {
	if input.Name == "" {
		return nil, apierr.Validation("missing_name", fmt.Errorf("restaurant name is required"))
	}

	restaurant := &types.Restaurant{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		ImageURL:    input.ImageURL,
	}
	if _, err := rs.restaurantRepo.Create(ctx, nil, []*types.Restaurant{restaurant}); err != nil {
		return nil, storeErr("restaurant_create_failed", err)
	}
	return restaurant, nil
}

func (rs *restaurantService) UpdateRestaurant(ctx context.Context, restaurantID uuid.UUID, input RestaurantInput) (*types.Restaurant, error) {
	if input.Name == "" {
		return nil, apierr.Validation("missing_name", fmt.Errorf("restaurant name is required"))
	}

	restaurant, err := rs.restaurantRepo.GetByID(ctx, nil, restaurantID)
	if err != nil {
		return nil, storeErr("restaurant_lookup_failed", err)
	}
	if restaurant == nil {
		return nil, apierr.NotFound("restaurant_not_found", fmt.Errorf("restaurant %s not found", restaurantID))
	}

	restaurant.Name = input.Name
	restaurant.Description = input.Description
	restaurant.Address = input.Address
	if input.ImageURL != "" {
		restaurant.ImageURL = input.ImageURL
	}

	if err := rs.restaurantRepo.Save(ctx, nil, restaurant); err != nil {
		return nil, storeErr("restaurant_update_failed", err)
	}
	return restaurant, nil
}

func (rs *restaurantService) DeleteRestaurant(ctx context.Context, restaurantID uuid.UUID) error {
	rows, err := rs.restaurantRepo.Delete(ctx, nil, restaurantID)
	if err != nil {
		return storeErr("restaurant_delete_failed", err)
	}
	if rows == 0 {
		return apierr.NotFound("restaurant_not_found", fmt.Errorf("restaurant %s not found", restaurantID))
	}
	return nil
}

func (rs *restaurantService) RateRestaurant(ctx context.Context, restaurantID uuid.UUID, value int) (*types.Restaurant, error) {
	if value < 1 || value > 5 {
		return nil, apierr.Validation("invalid_rating", fmt.Errorf("rating must be between 1 and 5, got %d", value))
	}

	restaurant, err := rs.restaurantRepo.GetByID(ctx, nil, restaurantID)
	if err != nil {
		return nil, storeErr("restaurant_lookup_failed", err)
	}
	if restaurant == nil {
		return nil, apierr.NotFound("restaurant_not_found", fmt.Errorf("restaurant %s not found", restaurantID))
	}

	newCount := restaurant.RatingCount + 1
	newRating := (restaurant.Rating*float64(restaurant.RatingCount) + float64(value)) / float64(newCount)
	if err := rs.restaurantRepo.UpdateRating(ctx, nil, restaurantID, newRating, newCount); err != nil {
		return nil, storeErr("restaurant_update_failed", err)
	}
	restaurant.Rating = newRating
	restaurant.RatingCount = newCount
	return restaurant, nil
}

func (rs *restaurantService) SetRestaurantImage(ctx context.Context, restaurantID uuid.UUID, imageURL string) (*types.Restaurant, error) {
	restaurant, err := rs.restaurantRepo.GetByID(ctx, nil, restaurantID)
	if err != nil {
		return nil, storeErr("restaurant_lookup_failed", err)
	}
	if restaurant == nil {
		return nil, apierr.NotFound("restaurant_not_found", fmt.Errorf("restaurant %s not found", restaurantID))
	}

	if err := rs.restaurantRepo.UpdateImageURL(ctx, nil, restaurantID, imageURL); err != nil {
		return nil, storeErr("restaurant_update_failed", err)
	}
	restaurant.ImageURL = imageURL
	return restaurant, nil
}
