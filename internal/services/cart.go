package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mealdash/mealdash-backend/internal/pkg/apierr"
	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/repos"
	"github.com/mealdash/mealdash-backend/internal/requestdata"
	"github.com/mealdash/mealdash-backend/internal/types"
)

type CartService interface {
	AddOrMergeLine(ctx context.Context, foodID uuid.UUID, quantity int, exclusions []string) (*types.CartLine, bool, error)
	SetLine(ctx context.Context, lineID uuid.UUID, quantity int, exclusions []string) (*types.CartLine, error)
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	ClearCart(ctx context.Context) (int64, error)
	ListCart(ctx context.Context) ([]*types.CartLine, error)
	CountCart(ctx context.Context) (int64, error)
}

type cartService struct {
	log      *logger.Logger
	cartRepo repos.CartRepo
}

func NewCartService(log *logger.Logger, cartRepo repos.CartRepo) CartService {
	serviceLog := log.With("service", "CartService")
	return &cartService{log: serviceLog, cartRepo: cartRepo}
}

func (cs *cartService) userFrom(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("user id not set in request data"))
	}
	return rd.UserID, nil
}

// AddOrMergeLine adds foodID to the caller's cart. A line whose
// (user, food, exclusions) identity already exists absorbs the
// quantity; otherwise a new line is created. The returned bool is
// true when a new line was created.
//
// Two concurrent adds can both miss the lookup; the unique index on
// the identity triple turns the second insert into a duplicate-key
// conflict, which is retried as an increment.
func (cs *cartService) AddOrMergeLine(ctx context.Context, foodID uuid.UUID, quantity int, exclusions []string) (*types.CartLine, bool, error) {
	userID, err := cs.userFrom(ctx)
	if err != nil {
		return nil, false, err
	}
	if foodID == uuid.Nil {
		return nil, false, apierr.Validation("missing_food", fmt.Errorf("food id is required"))
	}
	if quantity < 1 {
		return nil, false, apierr.Validation("invalid_quantity", fmt.Errorf("quantity must be at least 1, got %d", quantity))
	}

	canonical := CanonicalExclusions(exclusions)
	key := exclusionsKey(canonical)

	existing, err := cs.cartRepo.GetByIdentity(ctx, nil, userID, foodID, key)
	if err != nil {
		return nil, false, storeErr("cart_lookup_failed", err)
	}
	if existing != nil {
		return cs.mergeInto(ctx, userID, foodID, canonical, key, quantity)
	}

	payload, _ := json.Marshal(canonical)
	line := &types.CartLine{
		ID:            uuid.New(),
		UserID:        userID,
		FoodID:        foodID,
		Quantity:      quantity,
		Exclusions:    datatypes.JSON(payload),
		ExclusionsKey: key,
	}
	err = cs.cartRepo.Create(ctx, nil, line)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the insert race; the winner's line absorbs the quantity.
		cs.log.Debug("Cart line insert conflicted, merging instead", "user_id", userID, "food_id", foodID)
		return cs.mergeInto(ctx, userID, foodID, canonical, key, quantity)
	}
	if err != nil {
		return nil, false, storeErr("cart_create_failed", err)
	}

	created, err := cs.cartRepo.GetByIDForUser(ctx, nil, line.ID, userID)
	if err != nil {
		return nil, false, storeErr("cart_lookup_failed", err)
	}
	if created == nil {
		created = line
	}
	return created, true, nil
}

func (cs *cartService) mergeInto(ctx context.Context, userID, foodID uuid.UUID, canonical []string, key string, quantity int) (*types.CartLine, bool, error) {
	rows, err := cs.cartRepo.IncrementByIdentity(ctx, nil, userID, foodID, key, quantity)
	if err != nil {
		return nil, false, storeErr("cart_merge_failed", err)
	}
	if rows == 0 {
		// The matched line vanished between lookup and update
		// (deleted or cart cleared); fall back to a fresh insert.
		payload, _ := json.Marshal(canonical)
		line := &types.CartLine{
			ID:            uuid.New(),
			UserID:        userID,
			FoodID:        foodID,
			Quantity:      quantity,
			Exclusions:    datatypes.JSON(payload),
			ExclusionsKey: key,
		}
		if err := cs.cartRepo.Create(ctx, nil, line); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return cs.mergeInto(ctx, userID, foodID, canonical, key, quantity)
			}
			return nil, false, storeErr("cart_create_failed", err)
		}
		return line, true, nil
	}

	merged, err := cs.cartRepo.GetByIdentity(ctx, nil, userID, foodID, key)
	if err != nil {
		return nil, false, storeErr("cart_lookup_failed", err)
	}
	if merged == nil {
		return nil, false, apierr.Storage("cart_merge_failed", fmt.Errorf("merged cart line disappeared"))
	}
	return merged, false, nil
}

// SetLine overwrites quantity and exclusions on a line the caller
// owns. Lines that don't exist and lines owned by someone else are
// indistinguishable to the caller.
func (cs *cartService) SetLine(ctx context.Context, lineID uuid.UUID, quantity int, exclusions []string) (*types.CartLine, error) {
	userID, err := cs.userFrom(ctx)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, apierr.Validation("invalid_quantity", fmt.Errorf("quantity must be at least 1, got %d", quantity))
	}

	line, err := cs.cartRepo.GetByIDForUser(ctx, nil, lineID, userID)
	if err != nil {
		return nil, storeErr("cart_lookup_failed", err)
	}
	if line == nil {
		return nil, apierr.NotFound("cart_line_not_found", fmt.Errorf("cart line %s not found for user", lineID))
	}

	canonical := CanonicalExclusions(exclusions)
	payload, _ := json.Marshal(canonical)
	line.Quantity = quantity
	line.Exclusions = datatypes.JSON(payload)
	line.ExclusionsKey = exclusionsKey(canonical)

	if err := cs.cartRepo.Save(ctx, nil, line); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Validation("duplicate_cart_line", fmt.Errorf("another line already holds that item and exclusion set"))
		}
		return nil, storeErr("cart_update_failed", err)
	}
	return line, nil
}

func (cs *cartService) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	userID, err := cs.userFrom(ctx)
	if err != nil {
		return err
	}

	rows, err := cs.cartRepo.DeleteByIDForUser(ctx, nil, lineID, userID)
	if err != nil {
		return storeErr("cart_delete_failed", err)
	}
	if rows == 0 {
		return apierr.NotFound("cart_line_not_found", fmt.Errorf("cart line %s not found for user", lineID))
	}
	return nil
}

// ClearCart removes every line for the caller. An already-empty cart
// is a successful no-op, unlike DeleteLine on a missing line.
func (cs *cartService) ClearCart(ctx context.Context) (int64, error) {
	userID, err := cs.userFrom(ctx)
	if err != nil {
		return 0, err
	}

	rows, err := cs.cartRepo.DeleteByUser(ctx, nil, userID)
	if err != nil {
		return 0, storeErr("cart_clear_failed", err)
	}
	return rows, nil
}

func (cs *cartService) ListCart(ctx context.Context) ([]*types.CartLine, error) {
	userID, err := cs.userFrom(ctx)
	if err != nil {
		return nil, err
	}

	lines, err := cs.cartRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, storeErr("cart_list_failed", err)
	}
	if lines == nil {
		lines = []*types.CartLine{}
	}
	return lines, nil
}

func (cs *cartService) CountCart(ctx context.Context) (int64, error) {
	userID, err := cs.userFrom(ctx)
	if err != nil {
		return 0, err
	}

	count, err := cs.cartRepo.CountByUser(ctx, nil, userID)
	if err != nil {
		return 0, storeErr("cart_count_failed", err)
	}
	return count, nil
}
