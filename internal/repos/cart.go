package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/types"
)

type CartRepo interface {
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CartLine, error)
	GetByIdentity(ctx context.Context, tx *gorm.DB, userID, foodID uuid.UUID, exclusionsKey string) (*types.CartLine, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, lineID, userID uuid.UUID) (*types.CartLine, error)
	Create(ctx context.Context, tx *gorm.DB, line *types.CartLine) error
	Save(ctx context.Context, tx *gorm.DB, line *types.CartLine) error
	IncrementByIdentity(ctx context.Context, tx *gorm.DB, userID, foodID uuid.UUID, exclusionsKey string, delta int) (int64, error)
	DeleteByIDForUser(ctx context.Context, tx *gorm.DB, lineID, userID uuid.UUID) (int64, error)
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	repoLog := baseLog.With("repo", "CartRepo")
	return &cartRepo{db: db, log: repoLog}
}

func (cr *cartRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CartLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.CartLine
	if err := transaction.WithContext(ctx).
		Preload("Food").
		Preload("User").
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *cartRepo) GetByIdentity(ctx context.Context, tx *gorm.DB, userID, foodID uuid.UUID, exclusionsKey string) (*types.CartLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.CartLine
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND food_id = ? AND exclusions_key = ?", userID, foodID, exclusionsKey).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *cartRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, lineID, userID uuid.UUID) (*types.CartLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.CartLine
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *cartRepo) Create(ctx context.Context, tx *gorm.DB, line *types.CartLine) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).Create(line).Error
}

func (cr *cartRepo) Save(ctx context.Context, tx *gorm.DB, line *types.CartLine) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).Save(line).Error
}

// IncrementByIdentity bumps the quantity of the line matching the
// identity triple. Returns the number of rows touched so callers can
// tell whether the line still exists.
func (cr *cartRepo) IncrementByIdentity(ctx context.Context, tx *gorm.DB, userID, foodID uuid.UUID, exclusionsKey string, delta int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.CartLine{}).
		Where("user_id = ? AND food_id = ? AND exclusions_key = ?", userID, foodID, exclusionsKey).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (cr *cartRepo) DeleteByIDForUser(ctx context.Context, tx *gorm.DB, lineID, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&types.CartLine{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (cr *cartRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	result := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.CartLine{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (cr *cartRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CartLine{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
