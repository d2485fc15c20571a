package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/types"
)

type FoodRepo interface {
	Create(ctx context.Context, tx *gorm.DB, foods []*types.Food) ([]*types.Food, error)
	GetByID(ctx context.Context, tx *gorm.DB, foodID uuid.UUID) (*types.Food, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Food, error)
	ListByRestaurant(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID) ([]*types.Food, error)
	Save(ctx context.Context, tx *gorm.DB, food *types.Food) error
	Delete(ctx context.Context, tx *gorm.DB, foodID uuid.UUID) (int64, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	UpdateRating(ctx context.Context, tx *gorm.DB, foodID uuid.UUID, rating float64, ratingCount int) error
	UpdateImageURL(ctx context.Context, tx *gorm.DB, foodID uuid.UUID, imageURL string) error
}

type foodRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFoodRepo(db *gorm.DB, baseLog *logger.Logger) FoodRepo {
	repoLog := baseLog.With("repo", "FoodRepo")
	return &foodRepo{db: db, log: repoLog}
}

func (fr *foodRepo) Create(ctx context.Context, tx *gorm.DB, foods []*types.Food) ([]*types.Food, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if len(foods) == 0 {
		return []*types.Food{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (fr *foodRepo) GetByID(ctx context.Context, tx *gorm.DB, foodID uuid.UUID) (*types.Food, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var result types.Food
	err := transaction.WithContext(ctx).
		Preload("Restaurant").
		Where("id = ?", foodID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (fr *foodRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Food, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.Food
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *foodRepo) ListByRestaurant(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID) ([]*types.Food, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.Food
	if err := transaction.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *foodRepo) Save(ctx context.Context, tx *gorm.DB, food *types.Food) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	return transaction.WithContext(ctx).Save(food).Error
}

func (fr *foodRepo) Delete(ctx context.Context, tx *gorm.DB, foodID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ?", foodID).
		Delete(&types.Food{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (fr *foodRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Food{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (fr *foodRepo) UpdateRating(ctx context.Context, tx *gorm.DB, foodID uuid.UUID, rating float64, ratingCount int) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Food{}).
		Where("id = ?", foodID).
		Updates(map[string]interface{}{"rating": rating, "rating_count": ratingCount}).Error
}

func (fr *foodRepo) UpdateImageURL(ctx context.Context, tx *gorm.DB, foodID uuid.UUID, imageURL string) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Food{}).
		Where("id = ?", foodID).
		Update("image_url", imageURL).Error
}
