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

type RestaurantHandler struct {
	log               *logger.Logger
	restaurantService services.RestaurantService
	uploadDir         string
}

func NewRestaurantHandler(log *logger.Logger, restaurantService services.RestaurantService, uploadDir string) *RestaurantHandler {
	return &RestaurantHandler{
		log:               log.With("handler", "RestaurantHandler"),
		restaurantService: restaurantService,
		uploadDir:         uploadDir,
	}
}

type restaurantRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	ImageURL    string `json:"image_url"`
}

func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.restaurantService.ListRestaurants(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, restaurants)
}

func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid restaurant id"))
		return
	}

	restaurant, err := h.restaurantService.GetRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, restaurant)
}

func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	restaurant, err := h.restaurantService.CreateRestaurant(c.Request.Context(), services.RestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid restaurant id"))
		return
	}
	var req restaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	restaurant, err := h.restaurantService.UpdateRestaurant(c.Request.Context(), restaurantID, services.RestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, restaurant)
}

func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid restaurant id"))
		return
	}

	if err := h.restaurantService.DeleteRestaurant(c.Request.Context(), restaurantID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RestaurantHandler) RateRestaurant(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid restaurant id"))
		return
	}
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	restaurant, err := h.restaurantService.RateRestaurant(c.Request.Context(), restaurantID, req.Rating)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, restaurant)
}

func (h *RestaurantHandler) UploadRestaurantImage(c *gin.Context) {
	restaurantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid restaurant id"))
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_image", err)
		return
	}

	imageURL, err := saveImage(c, file, h.uploadDir, "restaurants")
	if err != nil {
		h.log.Error("Restaurant image upload failed", "error", err, "restaurant_id", restaurantID)
		response.RespondError(c, http.StatusInternalServerError, "upload_failed", fmt.Errorf("image upload failed"))
		return
	}

	restaurant, err := h.restaurantService.SetRestaurantImage(c.Request.Context(), restaurantID, imageURL)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"image_url": restaurant.ImageURL})
}
