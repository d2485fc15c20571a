package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/types"
)

type DeliveryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, deliveries []*types.Delivery) ([]*types.Delivery, error)
	GetByCourier(ctx context.Context, tx *gorm.DB, courierID uuid.UUID) ([]*types.Delivery, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	CountInRange(ctx context.Context, tx *gorm.DB, from, to time.Time) (int64, error)
}

type deliveryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDeliveryRepo(db *gorm.DB, baseLog *logger.Logger) DeliveryRepo {
	repoLog := baseLog.With("repo", "DeliveryRepo")
	return &deliveryRepo{db: db, log: repoLog}
}

func (dr *deliveryRepo) Create(ctx context.Context, tx *gorm.DB, deliveries []*types.Delivery) ([]*types.Delivery, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(deliveries) == 0 {
		return []*types.Delivery{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (dr *deliveryRepo) GetByCourier(ctx context.Context, tx *gorm.DB, courierID uuid.UUID) ([]*types.Delivery, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.Delivery
	if err := transaction.WithContext(ctx).
		Preload("Order").
		Where("courier_id = ?", courierID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *deliveryRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Delivery{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (dr *deliveryRepo) CountInRange(ctx context.Context, tx *gorm.DB, from, to time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Delivery{}).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
