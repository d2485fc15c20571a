package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealdash/mealdash-backend/internal/pkg/apierr"
	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/types"
)

type stubCartService struct {
	line    *types.CartLine
	created bool
	removed int64
	count   int64
	err     error
}

func (s *stubCartService) AddOrMergeLine(ctx context.Context, foodID uuid.UUID, quantity int, exclusions []string) (*types.CartLine, bool, error) {
	return s.line, s.created, s.err
}

func (s *stubCartService) SetLine(ctx context.Context, lineID uuid.UUID, quantity int, exclusions []string) (*types.CartLine, error) {
	return s.line, s.err
}

func (s *stubCartService) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	return s.err
}

func (s *stubCartService) ClearCart(ctx context.Context) (int64, error) {
	return s.removed, s.err
}

func (s *stubCartService) ListCart(ctx context.Context) ([]*types.CartLine, error) {
	if s.line == nil {
		return []*types.CartLine{}, s.err
	}
	return []*types.CartLine{s.line}, s.err
}

func (s *stubCartService) CountCart(ctx context.Context) (int64, error) {
	return s.count, s.err
}

func newCartRouter(svc *stubCartService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	h := NewCartHandler(log, svc)

	r := gin.New()
	r.GET("/api/cart", h.ListCart)
	r.POST("/api/cart", h.AddLine)
	r.PUT("/api/cart/:id", h.UpdateLine)
	r.DELETE("/api/cart/clear", h.ClearCart)
	r.DELETE("/api/cart/:id", h.DeleteLine)
	r.GET("/api/cart/count", h.CountCart)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddLine_NewLineAnswers201(t *testing.T) {
	line := &types.CartLine{ID: uuid.New(), Quantity: 1}
	r := newCartRouter(&stubCartService{line: line, created: true})

	w := doJSON(t, r, http.MethodPost, "/api/cart", gin.H{"food_id": uuid.New(), "quantity": 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
}

func TestAddLine_MergedLineAnswers200(t *testing.T) {
	line := &types.CartLine{ID: uuid.New(), Quantity: 3}
	r := newCartRouter(&stubCartService{line: line, created: false})

	w := doJSON(t, r, http.MethodPost, "/api/cart", gin.H{"food_id": uuid.New(), "quantity": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got types.CartLine
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Quantity != 3 {
		t.Fatalf("merged quantity = %d, want 3", got.Quantity)
	}
}

func TestAddLine_ValidationErrorKeepsCodeAndStatus(t *testing.T) {
	r := newCartRouter(&stubCartService{
		err: apierr.Validation("invalid_quantity", fmt.Errorf("quantity must be at least 1")),
	})

	w := doJSON(t, r, http.MethodPost, "/api/cart", gin.H{"food_id": uuid.New(), "quantity": 0})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Code != "invalid_quantity" {
		t.Fatalf("error code = %q, want invalid_quantity", envelope.Error.Code)
	}
}

func TestAddLine_StorageErrorHidesDetail(t *testing.T) {
	r := newCartRouter(&stubCartService{
		err: apierr.Storage("cart_create_failed", fmt.Errorf("pq: connection refused at 10.0.0.5")),
	})

	w := doJSON(t, r, http.MethodPost, "/api/cart", gin.H{"food_id": uuid.New(), "quantity": 1})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("10.0.0.5")) {
		t.Fatalf("storage detail leaked into response: %s", w.Body.String())
	}
}

func TestUpdateLine_BadIDAnswers400(t *testing.T) {
	r := newCartRouter(&stubCartService{})

	w := doJSON(t, r, http.MethodPut, "/api/cart/not-a-uuid", gin.H{"quantity": 2})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDeleteLine_Answers204(t *testing.T) {
	r := newCartRouter(&stubCartService{})

	w := doJSON(t, r, http.MethodDelete, "/api/cart/"+uuid.NewString(), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
}

func TestDeleteLine_MissingAnswers404(t *testing.T) {
	r := newCartRouter(&stubCartService{
		err: apierr.NotFound("cart_line_not_found", fmt.Errorf("no such line")),
	})

	w := doJSON(t, r, http.MethodDelete, "/api/cart/"+uuid.NewString(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestClearCart_EmptyCartReportsNoOpMessage(t *testing.T) {
	r := newCartRouter(&stubCartService{removed: 0})

	w := doJSON(t, r, http.MethodDelete, "/api/cart/clear", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "no items to clear in cart" {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestClearCart_NonEmptyAnswers204(t *testing.T) {
	r := newCartRouter(&stubCartService{removed: 3})

	w := doJSON(t, r, http.MethodDelete, "/api/cart/clear", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
}

func TestCountCart_AnswersCount(t *testing.T) {
	r := newCartRouter(&stubCartService{count: 4})

	w := doJSON(t, r, http.MethodGet, "/api/cart/count", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["count"] != 4 {
		t.Fatalf("count = %d, want 4", body["count"])
	}
}

func TestListCart_EmptyCartIsEmptyArray(t *testing.T) {
	r := newCartRouter(&stubCartService{})

	w := doJSON(t, r, http.MethodGet, "/api/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	trimmed := bytes.TrimSpace(w.Body.Bytes())
	if string(trimmed) != "[]" {
		t.Fatalf("body = %s, want []", trimmed)
	}
}
