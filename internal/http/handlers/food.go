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

type FoodHandler struct {
	log         *logger.Logger
	foodService services.FoodService
	uploadDir   string
}

func NewFoodHandler(log *logger.Logger, foodService services.FoodService, uploadDir string) *FoodHandler {
	return &FoodHandler{
		log:         log.With("handler", "FoodHandler"),
		foodService: foodService,
		uploadDir:   uploadDir,
	}
}

type foodRequest struct {
	RestaurantID *uuid.UUID `json:"restaurant_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Price        float64    `json:"price"`
	ImageURL     string     `json:"image_url"`
}

type rateRequest struct {
	Rating int `json:"rating"`
}

func (h *FoodHandler) ListFoods(c *gin.Context) {
	foods, err := h.foodService.ListFoods(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, foods)
}

func (h *FoodHandler) ListRestaurantFoods(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid restaurant id"))
		return
	}

	foods, err := h.foodService.ListByRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, foods)
}

func (h *FoodHandler) GetFood(c *gin.Context) {
	foodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid food id"))
		return
	}

	food, err := h.foodService.GetFood(c.Request.Context(), foodID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, food)
}

func (h *FoodHandler) CreateFood(c *gin.Context) {
	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	food, err := h.foodService.CreateFood(c.Request.Context(), services.FoodInput{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

func (h *FoodHandler) UpdateFood(c *gin.Context) {
	foodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid food id"))
		return
	}
	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	food, err := h.foodService.UpdateFood(c.Request.Context(), foodID, services.FoodInput{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, food)
}

func (h *FoodHandler) DeleteFood(c *gin.Context) {
	foodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid food id"))
		return
	}

	if err := h.foodService.DeleteFood(c.Request.Context(), foodID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FoodHandler) RateFood(c *gin.Context) {
	foodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid food id"))
		return
	}
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	food, err := h.foodService.RateFood(c.Request.Context(), foodID, req.Rating)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, food)
}

func (h *FoodHandler) UploadFoodImage(c *gin.Context) {
	foodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid food id"))
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_image", err)
		return
	}

	imageURL, err := saveImage(c, file, h.uploadDir, "foods")
	if err != nil {
		h.log.Error("Food image upload failed", "error", err, "food_id", foodID)
		response.RespondError(c, http.StatusInternalServerError, "upload_failed", fmt.Errorf("image upload failed"))
		return
	}

	food, err := h.foodService.SetFoodImage(c.Request.Context(), foodID, imageURL)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"image_url": food.ImageURL})
}
