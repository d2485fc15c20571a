package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mealdash/mealdash-backend/internal/http/response"
	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
	"github.com/mealdash/mealdash-backend/internal/services"
)

type CartHandler struct {
	log         *logger.Logger
	cartService services.CartService
}

func NewCartHandler(log *logger.Logger, cartService services.CartService) *CartHandler {
	return &CartHandler{
		log:         log.With("handler", "CartHandler"),
		cartService: cartService,
	}
}

type addCartLineRequest struct {
	FoodID              uuid.UUID `json:"food_id"`
	Quantity            int       `json:"quantity"`
	ExcludedIngredients []string  `json:"excluded_ingredients"`
}

type setCartLineRequest struct {
	Quantity            int      `json:"quantity"`
	ExcludedIngredients []string `json:"excluded_ingredients"`
}

func (h *CartHandler) ListCart(c *gin.Context) {
	lines, err := h.cartService.ListCart(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, lines)
}

// AddLine answers 201 when a new line was created and 200 when the
// quantity merged into an existing line.
func (h *CartHandler) AddLine(c *gin.Context) {
	var req addCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	line, created, err := h.cartService.AddOrMergeLine(c.Request.Context(), req.FoodID, req.Quantity, req.ExcludedIngredients)
	if err != nil {
		h.log.Warn("AddLine failed", "error", err, "food_id", req.FoodID)
		response.RespondAPIError(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, line)
		return
	}
	response.RespondOK(c, line)
}

func (h *CartHandler) UpdateLine(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid cart line id"))
		return
	}
	var req setCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	line, err := h.cartService.SetLine(c.Request.Context(), lineID, req.Quantity, req.ExcludedIngredients)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, line)
}

func (h *CartHandler) DeleteLine(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid cart line id"))
		return
	}

	if err := h.cartService.DeleteLine(c.Request.Context(), lineID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearCart empties the caller's cart. An already-empty cart is not an
// error; it reports a no-op message instead.
func (h *CartHandler) ClearCart(c *gin.Context) {
	removed, err := h.cartService.ClearCart(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if removed == 0 {
		response.RespondOK(c, gin.H{"message": "no items to clear in cart"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) CountCart(c *gin.Context) {
	count, err := h.cartService.CountCart(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"count": count})
}
