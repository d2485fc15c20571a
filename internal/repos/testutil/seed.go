package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealdash/mealdash-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Role:      types.RoleUser,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedRestaurant(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Restaurant {
	tb.Helper()
	r := &types.Restaurant{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed restaurant: %v", err)
	}
	return r
}

func SeedFood(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Food {
	tb.Helper()
	f := &types.Food{
		ID:    uuid.New(),
		Name:  name,
		Price: 9.5,
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed food: %v", err)
	}
	return f
}

func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, total float64, createdAt time.Time) *types.Order {
	tb.Helper()
	o := &types.Order{
		ID:         uuid.New(),
		UserID:     userID,
		Status:     types.OrderStatusPending,
		TotalPrice: total,
		CreatedAt:  createdAt,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	return o
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }
