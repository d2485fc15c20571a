package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mealdash/mealdash-backend/internal/repos/testutil"
	"github.com/mealdash/mealdash-backend/internal/types"
)

func TestDeliveryRepo_CreateAndCourierListing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewDeliveryRepo(db, testutil.Logger(t))
	ctx := context.Background()

	customer := testutil.SeedUser(t, ctx, tx, "deliveryrepo-customer@example.com")
	courier := testutil.SeedUser(t, ctx, tx, "deliveryrepo-courier@example.com")

	now := time.Date(2024, 5, 2, 11, 0, 0, 0, time.UTC)
	orderA := testutil.SeedOrder(t, ctx, tx, customer.ID, 25, now)
	orderB := testutil.SeedOrder(t, ctx, tx, customer.ID, 18, now.Add(time.Hour))

	created, err := repo.Create(ctx, tx, []*types.Delivery{
		{ID: uuid.New(), OrderID: orderA.ID, CourierID: testutil.PtrUUID(courier.ID), Status: types.DeliveryStatusAssigned, CreatedAt: now},
		{ID: uuid.New(), OrderID: orderB.ID, CourierID: testutil.PtrUUID(courier.ID), Status: types.DeliveryStatusInTransit, CreatedAt: now.Add(time.Hour)},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Create: expected 2 deliveries, got %d", len(created))
	}

	byCourier, err := repo.GetByCourier(ctx, tx, courier.ID)
	if err != nil {
		t.Fatalf("GetByCourier: %v", err)
	}
	if len(byCourier) != 2 {
		t.Fatalf("GetByCourier: %d deliveries, want 2", len(byCourier))
	}
	if byCourier[0].Order == nil {
		t.Fatalf("GetByCourier: order not preloaded")
	}

	count, err := repo.CountInRange(ctx, tx, now.Add(30*time.Minute), now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("CountInRange: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountInRange: %d, want 1", count)
	}
}
