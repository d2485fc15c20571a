package services

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealdash/mealdash-backend/internal/pkg/apierr"
	"github.com/mealdash/mealdash-backend/internal/requestdata"
	"github.com/mealdash/mealdash-backend/internal/types"
)

// fakeCartRepo keeps lines in memory and enforces the same identity
// uniqueness the database index does, so conflict paths behave like
// the real store. afterLookup, when set, runs once after GetByIdentity
// returns, which lets tests splice a competing write into the window
// between lookup and insert.
type fakeCartRepo struct {
	mu          sync.Mutex
	lines       map[uuid.UUID]*types.CartLine
	afterLookup func()
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{lines: make(map[uuid.UUID]*types.CartLine)}
}

func (f *fakeCartRepo) identityTaken(line *types.CartLine) bool {
	for _, existing := range f.lines {
		if existing.ID != line.ID &&
			existing.UserID == line.UserID &&
			existing.FoodID == line.FoodID &&
			existing.ExclusionsKey == line.ExclusionsKey {
			return true
		}
	}
	return false
}

func (f *fakeCartRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*types.CartLine
	for _, line := range f.lines {
		if line.UserID == userID {
			copied := *line
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) GetByIdentity(ctx context.Context, tx *gorm.DB, userID, foodID uuid.UUID, exclusionsKey string) (*types.CartLine, error) {
	f.mu.Lock()
	var found *types.CartLine
	for _, line := range f.lines {
		if line.UserID == userID && line.FoodID == foodID && line.ExclusionsKey == exclusionsKey {
			copied := *line
			found = &copied
			break
		}
	}
	hook := f.afterLookup
	f.afterLookup = nil
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return found, nil
}

func (f *fakeCartRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, lineID, userID uuid.UUID) (*types.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	line, ok := f.lines[lineID]
	if !ok || line.UserID != userID {
		return nil, nil
	}
	copied := *line
	return &copied, nil
}

func (f *fakeCartRepo) Create(ctx context.Context, tx *gorm.DB, line *types.CartLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.identityTaken(line) {
		return gorm.ErrDuplicatedKey
	}
	copied := *line
	f.lines[line.ID] = &copied
	return nil
}

func (f *fakeCartRepo) Save(ctx context.Context, tx *gorm.DB, line *types.CartLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.identityTaken(line) {
		return gorm.ErrDuplicatedKey
	}
	copied := *line
	f.lines[line.ID] = &copied
	return nil
}

func (f *fakeCartRepo) IncrementByIdentity(ctx context.Context, tx *gorm.DB, userID, foodID uuid.UUID, exclusionsKey string, delta int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, line := range f.lines {
		if line.UserID == userID && line.FoodID == foodID && line.ExclusionsKey == exclusionsKey {
			line.Quantity += delta
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeCartRepo) DeleteByIDForUser(ctx context.Context, tx *gorm.DB, lineID, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	line, ok := f.lines[lineID]
	if !ok || line.UserID != userID {
		return 0, nil
	}
	delete(f.lines, lineID)
	return 1, nil
}

func (f *fakeCartRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for id, line := range f.lines {
		if line.UserID == userID {
			delete(f.lines, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeCartRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, line := range f.lines {
		if line.UserID == userID {
			count++
		}
	}
	return count, nil
}

func newCartFixture() (CartService, *fakeCartRepo, context.Context) {
	repo := newFakeCartRepo()
	svc := NewCartService(newTestLogger(), repo)
	return svc, repo, ctxWithUser(uuid.New())
}

func TestAddOrMergeLine_SameIdentityMergesQuantity(t *testing.T) {
	svc, _, ctx := newCartFixture()
	foodID := uuid.New()

	first, created, err := svc.AddOrMergeLine(ctx, foodID, 1, []string{"onion"})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if !created {
		t.Fatalf("expected first add to create a line")
	}

	second, created, err := svc.AddOrMergeLine(ctx, foodID, 2, []string{"onion"})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if created {
		t.Fatalf("expected second add to merge, not create")
	}
	if second.ID != first.ID {
		t.Fatalf("merge produced a different line: %s vs %s", second.ID, first.ID)
	}
	if second.Quantity != 3 {
		t.Fatalf("merged quantity = %d, want 3", second.Quantity)
	}

	lines, err := svc.ListCart(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %d", len(lines))
	}
}

func TestAddOrMergeLine_DistinctExclusionsMakeDistinctLines(t *testing.T) {
	svc, _, ctx := newCartFixture()
	foodID := uuid.New()

	if _, _, err := svc.AddOrMergeLine(ctx, foodID, 1, []string{"onion"}); err != nil {
		t.Fatalf("add with onion: %v", err)
	}
	if _, _, err := svc.AddOrMergeLine(ctx, foodID, 1, []string{"garlic"}); err != nil {
		t.Fatalf("add with garlic: %v", err)
	}
	if _, _, err := svc.AddOrMergeLine(ctx, foodID, 1, nil); err != nil {
		t.Fatalf("add with no exclusions: %v", err)
	}

	count, err := svc.CountCart(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 distinct lines, got %d", count)
	}
}

func TestAddOrMergeLine_ExclusionOrderAndCaseDoNotSplitLines(t *testing.T) {
	svc, _, ctx := newCartFixture()
	foodID := uuid.New()

	if _, _, err := svc.AddOrMergeLine(ctx, foodID, 1, []string{"No Onion", " garlic "}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	line, created, err := svc.AddOrMergeLine(ctx, foodID, 1, []string{"GARLIC", "no onion"})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if created {
		t.Fatalf("reordered exclusions should merge into the existing line")
	}
	if line.Quantity != 2 {
		t.Fatalf("merged quantity = %d, want 2", line.Quantity)
	}
}

func TestAddOrMergeLine_InsertRaceMergesIntoWinner(t *testing.T) {
	svc, repo, ctx := newCartFixture()
	userID := ctxUserID(t, ctx)
	foodID := uuid.New()
	key := exclusionsKey(CanonicalExclusions(nil))

	// A competing request lands its insert between our lookup miss and
	// our insert attempt.
	repo.afterLookup = func() {
		err := repo.Create(context.Background(), nil, &types.CartLine{
			ID:            uuid.New(),
			UserID:        userID,
			FoodID:        foodID,
			Quantity:      5,
			ExclusionsKey: key,
		})
		if err != nil {
			t.Errorf("competing insert: %v", err)
		}
	}

	line, created, err := svc.AddOrMergeLine(ctx, foodID, 2, nil)
	if err != nil {
		t.Fatalf("add during race: %v", err)
	}
	if created {
		t.Fatalf("losing insert should merge, not report a new line")
	}
	if line.Quantity != 7 {
		t.Fatalf("merged quantity = %d, want 7", line.Quantity)
	}

	count, err := svc.CountCart(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("race produced %d lines, want 1", count)
	}
}

func TestAddOrMergeLine_ConcurrentAddsNeverSplit(t *testing.T) {
	svc, _, ctx := newCartFixture()
	foodID := uuid.New()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := svc.AddOrMergeLine(ctx, foodID, 1, []string{"onion"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent add: %v", err)
	}

	lines, err := svc.ListCart(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("concurrent adds produced %d lines, want 1", len(lines))
	}
	if lines[0].Quantity != workers {
		t.Fatalf("total quantity = %d, want %d", lines[0].Quantity, workers)
	}
}

func TestAddOrMergeLine_RejectsBadInput(t *testing.T) {
	svc, _, ctx := newCartFixture()

	if _, _, err := svc.AddOrMergeLine(ctx, uuid.Nil, 1, nil); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("missing food id: status = %d, want 400", apierr.StatusOf(err))
	}
	if _, _, err := svc.AddOrMergeLine(ctx, uuid.New(), 0, nil); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("zero quantity: status = %d, want 400", apierr.StatusOf(err))
	}
	if _, _, err := svc.AddOrMergeLine(ctx, uuid.New(), -3, nil); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("negative quantity: status = %d, want 400", apierr.StatusOf(err))
	}
}

func TestAddOrMergeLine_RequiresAuthenticatedUser(t *testing.T) {
	svc, _, _ := newCartFixture()

	_, _, err := svc.AddOrMergeLine(context.Background(), uuid.New(), 1, nil)
	if apierr.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", apierr.StatusOf(err))
	}
}

func TestSetLine_ReplacesQuantityAndExclusions(t *testing.T) {
	svc, _, ctx := newCartFixture()
	foodID := uuid.New()

	created, _, err := svc.AddOrMergeLine(ctx, foodID, 2, []string{"onion"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, err := svc.SetLine(ctx, created.ID, 5, []string{"Garlic", "onion"})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if updated.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5 (set replaces, never adds)", updated.Quantity)
	}
	if updated.ExclusionsKey != exclusionsKey([]string{"garlic", "onion"}) {
		t.Fatalf("exclusions key = %q after update", updated.ExclusionsKey)
	}
}

func TestSetLine_OtherUsersLineLooksMissing(t *testing.T) {
	svc, repo, ctx := newCartFixture()

	theirs := &types.CartLine{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		FoodID:        uuid.New(),
		Quantity:      1,
		ExclusionsKey: "[]",
	}
	if err := repo.Create(context.Background(), nil, theirs); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.SetLine(ctx, theirs.ID, 3, nil)
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", apierr.StatusOf(err))
	}
	if theirs.Quantity != 1 {
		t.Fatalf("foreign line was modified")
	}
}

func TestSetLine_CollidingIdentityRejected(t *testing.T) {
	svc, _, ctx := newCartFixture()
	foodID := uuid.New()

	if _, _, err := svc.AddOrMergeLine(ctx, foodID, 1, []string{"onion"}); err != nil {
		t.Fatalf("add first: %v", err)
	}
	second, _, err := svc.AddOrMergeLine(ctx, foodID, 1, []string{"garlic"})
	if err != nil {
		t.Fatalf("add second: %v", err)
	}

	// Rewriting the second line's exclusions to match the first would
	// collide with its identity.
	_, err = svc.SetLine(ctx, second.ID, 1, []string{"onion"})
	if apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", apierr.StatusOf(err))
	}
	if apierr.CodeOf(err) != "duplicate_cart_line" {
		t.Fatalf("code = %q, want duplicate_cart_line", apierr.CodeOf(err))
	}
}

func TestDeleteLine_MissingLineReportsNotFound(t *testing.T) {
	svc, _, ctx := newCartFixture()

	err := svc.DeleteLine(ctx, uuid.New())
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", apierr.StatusOf(err))
	}
}

func TestClearCart_EmptyCartIsSuccessfulNoOp(t *testing.T) {
	svc, _, ctx := newCartFixture()

	removed, err := svc.ClearCart(ctx)
	if err != nil {
		t.Fatalf("clear on empty cart: %v", err)
	}
	if removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
}

func TestClearCart_RemovesOnlyCallersLines(t *testing.T) {
	svc, repo, ctx := newCartFixture()

	if _, _, err := svc.AddOrMergeLine(ctx, uuid.New(), 1, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, _, err := svc.AddOrMergeLine(ctx, uuid.New(), 2, []string{"onion"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	otherUser := uuid.New()
	theirs := &types.CartLine{ID: uuid.New(), UserID: otherUser, FoodID: uuid.New(), Quantity: 1, ExclusionsKey: "[]"}
	if err := repo.Create(context.Background(), nil, theirs); err != nil {
		t.Fatalf("seed: %v", err)
	}

	removed, err := svc.ClearCart(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	remaining, err := repo.CountByUser(context.Background(), nil, otherUser)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("other user's cart was touched")
	}
}

func TestCountCart_ScopedToCaller(t *testing.T) {
	svc, repo, ctx := newCartFixture()

	if _, _, err := svc.AddOrMergeLine(ctx, uuid.New(), 1, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	theirs := &types.CartLine{ID: uuid.New(), UserID: uuid.New(), FoodID: uuid.New(), Quantity: 1, ExclusionsKey: "[]"}
	if err := repo.Create(context.Background(), nil, theirs); err != nil {
		t.Fatalf("seed: %v", err)
	}

	count, err := svc.CountCart(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1 (other users' lines excluded)", count)
	}
}

func ctxUserID(t *testing.T, ctx context.Context) uuid.UUID {
	t.Helper()
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		t.Fatalf("context has no user")
	}
	return rd.UserID
}
