package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/types"
)

type RestaurantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, restaurants []*types.Restaurant) ([]*types.Restaurant, error)
	GetByID(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID) (*types.Restaurant, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Restaurant, error)
	Save(ctx context.Context, tx *gorm.DB, restaurant *types.Restaurant) error
	Delete(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID) (int64, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	UpdateRating(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID, rating float64, ratingCount int) error
	UpdateImageURL(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID, imageURL string) error
}

type restaurantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRestaurantRepo(db *gorm.DB, baseLog *logger.Logger) RestaurantRepo {
	repoLog := baseLog.With("repo", "RestaurantRepo")
	return &restaurantRepo{db: db, log: repoLog}
}

func (rr *restaurantRepo) Create(ctx context.Context, tx *gorm.DB, restaurants []*types.Restaurant) ([]*types.Restaurant, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(restaurants) == 0 {
		return []*types.Restaurant{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (rr *restaurantRepo) GetByID(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID) (*types.Restaurant, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Restaurant
	err := transaction.WithContext(ctx).
		Where("id = ?", restaurantID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *restaurantRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Restaurant, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Restaurant
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *restaurantRepo) Save(ctx context.Context, tx *gorm.DB, restaurant *types.Restaurant) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).Save(restaurant).Error
}

func (rr *restaurantRepo) Delete(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ?", restaurantID).
		Delete(&types.Restaurant{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (rr *restaurantRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Restaurant{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (rr *restaurantRepo) UpdateRating(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID, rating float64, ratingCount int) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Restaurant{}).
		Where("id = ?", restaurantID).
		Updates(map[string]interface{}{"rating": rating, "rating_count": ratingCount}).Error
}

func (rr *restaurantRepo) UpdateImageURL(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID, imageURL string) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Restaurant{}).
		Where("id = ?", restaurantID).
		Update("image_url", imageURL).Error
}
