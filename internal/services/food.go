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

type FoodInput struct {
	RestaurantID *uuid.UUID
	Name         string
	Description  string
	Category     string
	Price        float64
	ImageURL     string
}

type FoodService interface {
	ListFoods(ctx context.Context) ([]*types.Food, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*types.Food, error)
	GetFood(ctx context.Context, foodID uuid.UUID) (*types.Food, error)
	CreateFood(ctx context.Context, input FoodInput) (*types.Food, error)
	UpdateFood(ctx context.Context, foodID uuid.UUID, input FoodInput) (*types.Food, error)
	DeleteFood(ctx context.Context, foodID uuid.UUID) error
	RateFood(ctx context.Context, foodID uuid.UUID, value int) (*types.Food, error)
	SetFoodImage(ctx context.Context, foodID uuid.UUID, imageURL string) (*types.Food, error)
}

type foodService struct {
	log      *logger.Logger
	foodRepo repos.FoodRepo
}

func NewFoodService(log *logger.Logger, foodRepo repos.FoodRepo) FoodService {
	serviceLog := log.With("service", "FoodService")
	return &foodService{log: serviceLog, foodRepo: foodRepo}
}

func (fs *foodService) ListFoods(ctx context.Context) ([]*types.Food, error) {
	foods, err := fs.foodRepo.List(ctx, nil)
	if err != nil {
		return nil, storeErr("food_list_failed", err)
	}
	if foods == nil {
		foods = []*types.Food{}
	}
	return foods, nil
}

func (fs *foodService) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*types.Food, error) {
	foods, err := fs.foodRepo.ListByRestaurant(ctx, nil, restaurantID)
	if err != nil {
		return nil, storeErr("food_list_failed", err)
	}
	if foods == nil {
		foods = []*types.Food{}
	}
	return foods, nil
}

func (fs *foodService) GetFood(ctx context.Context, foodID uuid.UUID) (*types.Food, error) {
	food, err := fs.foodRepo.GetByID(ctx, nil, foodID)
	if err != nil {
		return nil, storeErr("food_lookup_failed", err)
	}
	if food == nil {
		return nil, apierr.NotFound("food_not_found", fmt.Errorf("food %s not found", foodID))
	}
	return food, nil
}

func validateFoodInput(input FoodInput) error {
	if input.Name == "" {
		return apierr.Validation("missing_name", fmt.Errorf("food name is required"))
	}
	if input.Price < 0 {
		return apierr.Validation("invalid_price", fmt.Errorf("price must not be negative"))
	}
	return nil
}

func (fs *foodService) CreateFood(ctx context.Context, input FoodInput) (*types.Food, error) {
	if err := validateFoodInput(input); err != nil {
		return nil, err
	}

	food := &types.Food{
		ID:           uuid.New(),
		RestaurantID: input.RestaurantID,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Price:        input.Price,
		ImageURL:     input.ImageURL,
	}
	if _, err := fs.foodRepo.Create(ctx, nil, []*types.Food{food}); err != nil {
		return nil, storeErr("food_create_failed", err)
	}
	return food, nil
}

func (fs *foodService) UpdateFood(ctx context.Context, foodID uuid.UUID, input FoodInput) (*types.Food, error) {
	if err := validateFoodInput(input); err != nil {
		return nil, err
	}

	food, err := fs.foodRepo.GetByID(ctx, nil, foodID)
	if err != nil {
		return nil, storeErr("food_lookup_failed", err)
	}
	if food == nil {
		return nil, apierr.NotFound("food_not_found", fmt.Errorf("food %s not found", foodID))
	}

	food.Name = input.Name
	food.Description = input.Description
	food.Category = input.Category
	food.Price = input.Price
	if input.RestaurantID != nil {
		food.RestaurantID = input.RestaurantID
	}
	if input.ImageURL != "" {
		food.ImageURL = input.ImageURL
	}

	if err := fs.foodRepo.Save(ctx, nil, food); err != nil {
		return nil, storeErr("food_update_failed", err)
	}
	return food, nil
}

func (fs *foodService) DeleteFood(ctx context.Context, foodID uuid.UUID) error {
	rows, err := fs.foodRepo.Delete(ctx, nil, foodID)
	if err != nil {
		return storeErr("food_delete_failed", err)
	}
	if rows == 0 {
		return apierr.NotFound("food_not_found", fmt.Errorf("food %s not found", foodID))
	}
	return nil
}

// RateFood folds a 1-5 rating into the food's running average.
func (fs *foodService) RateFood(ctx context.Context, foodID uuid.UUID, value int) (*types.Food, error) {
	if value < 1 || value > 5 {
		return nil, apierr.Validation("invalid_rating", fmt.Errorf("rating must be between 1 and 5, got %d", value))
	}

	food, err := fs.foodRepo.GetByID(ctx, nil, foodID)
	if err != nil {
		return nil, storeErr("food_lookup_failed", err)
	}
	if food == nil {
		return nil, apierr.NotFound("food_not_found", fmt.Errorf("food %s not found", foodID))
	}

	newCount := food.RatingCount + 1
	newRating := (food.Rating*float64(food.RatingCount) + float64(value)) / float64(newCount)
	if err := fs.foodRepo.UpdateRating(ctx, nil, foodID, newRating, newCount); err != nil {
		return nil, storeErr("food_update_failed", err)
	}
	food.Rating = newRating
	food.RatingCount = newCount
	return food, nil
}

func (fs *foodService) SetFoodImage(ctx context.Context, foodID uuid.UUID, imageURL string) (*types.Food, error) {
	food, err := fs.foodRepo.GetByID(ctx, nil, foodID)
	if err != nil {
		return nil, storeErr("food_lookup_failed", err)
	}
	if food == nil {
		return nil, apierr.NotFound("food_not_found", fmt.Errorf("food %s not found", foodID))
	}

	if err := fs.foodRepo.UpdateImageURL(ctx, nil, foodID, imageURL); err != nil {
		return nil, storeErr("food_update_failed", err)
	}
	food.ImageURL = imageURL
	return food, nil
}
