package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/types"
)

// DailyOrderStat is one calendar day's grouped order rollup.
type DailyOrderStat struct {
	Year    int     `gorm:"column:year"`
	Month   int     `gorm:"column:month"`
	Day     int     `gorm:"column:day"`
	Orders  int64   `gorm:"column:orders"`
	Revenue float64 `gorm:"column:revenue"`
}

type OrderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, orders []*types.Order) ([]*types.Order, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Order, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	CountInRange(ctx context.Context, tx *gorm.DB, from, to time.Time) (int64, error)
	SumRevenueAll(ctx context.Context, tx *gorm.DB) (float64, error)
	SumRevenueInRange(ctx context.Context, tx *gorm.DB, from, to time.Time) (float64, error)
	RevenueByDay(ctx context.Context, tx *gorm.DB, since time.Time) ([]DailyOrderStat, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (or *orderRepo) Create(ctx context.Context, tx *gorm.DB, orders []*types.Order) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	if len(orders) == 0 {
		return []*types.Order{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (or *orderRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Order, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []*types.Order
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (or *orderRepo) CountInRange(ctx context.Context, tx *gorm.DB, from, to time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (or *orderRepo) SumRevenueAll(ctx context.Context, tx *gorm.DB) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var total float64
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (or *orderRepo) SumRevenueInRange(ctx context.Context, tx *gorm.DB, from, to time.Time) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var total float64
	if err := transaction.WithContext(ctx).
		Model(&types.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// RevenueByDay groups orders placed since the given instant by
// calendar (year, month, day), ascending. Days without orders yield
// no row.
func (or *orderRepo) RevenueByDay(ctx context.Context, tx *gorm.DB, since time.Time) ([]DailyOrderStat, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}

	var results []DailyOrderStat
	if err := transaction.WithContext(ctx).Raw(`
		SELECT EXTRACT(YEAR FROM created_at)::int   AS year,
		       EXTRACT(MONTH FROM created_at)::int  AS month,
		       EXTRACT(DAY FROM created_at)::int    AS day,
		       COUNT(*)                             AS orders,
		       COALESCE(SUM(total_price), 0)        AS revenue
		FROM "order"
		WHERE created_at >= ?
		GROUP BY 1, 2, 3
		ORDER BY 1, 2, 3
	`, since).Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
