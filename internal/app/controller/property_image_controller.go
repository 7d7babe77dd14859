package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myhome/myhome-backend/internal/app/service"
	apperrors "github.com/myhome/myhome-backend/internal/errors"
	"github.com/myhome/myhome-backend/internal/middleware"
)

type PropertyImageController struct {
	imageService service.PropertyImageService
}

func NewPropertyImageController(imageService service.PropertyImageService) *PropertyImageController {
	return &PropertyImageController{
		imageService: imageService,
	}
}

type AddImageRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
	AltText  string `json:"alt_text" binding:"max=100"`
}

type ReorderImagesRequest struct {
	ImageIDs []uint `json:"image_ids" binding:"required,min=1"`
}

// ListImages returns a property's images in display order
// GET /api/v1/properties/:id/images
func (ctrl *PropertyImageController) ListImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	images, err := ctrl.imageService.ListImages(propertyID)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			apperrors.NotFound(c, apperrors.PropertyNotFound, "매물을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to fetch property images", err, map[string]interface{}{
			"property_id": propertyID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get images")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"images": images,
		"count":  len(images),
	})
}

// GetMainImage returns the representative image of a property
// GET /api/v1/properties/:id/images/main
func (ctrl *PropertyImageController) GetMainImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	image, err := ctrl.imageService.GetMainImage(propertyID)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			apperrors.NotFound(c, apperrors.ImageNotFound, "이미지를 찾을 수 없습니다")
			return
		}
		if errors.Is(err, service.ErrPropertyNotFound) {
			apperrors.NotFound(c, apperrors.PropertyNotFound, "매물을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to fetch main image", err, map[string]interface{}{
			"property_id": propertyID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get main image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"image": image,
	})
}

// AddImage appends an image to a property owned by the caller
// POST /api/v1/properties/:id/images
func (ctrl *PropertyImageController) AddImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to add image", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}
	role, _ := middleware.GetUserRole(c)

	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid image request", map[string]interface{}{
			"user_id":     userID,
			"property_id": propertyID,
			"error":       err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "이미지 URL이 올바르지 않습니다")
		return
	}

	image, err := ctrl.imageService.AddImage(propertyID, userID, role, req.ImageURL, req.AltText)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPropertyNotFound):
			apperrors.NotFound(c, apperrors.PropertyNotFound, "매물을 찾을 수 없습니다")
		case errors.Is(err, service.ErrNotPropertyOwner):
			log.Warn("Image upload forbidden", map[string]interface{}{
				"user_id":     userID,
				"property_id": propertyID,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "본인의 매물에만 이미지를 등록할 수 있습니다")
		default:
			log.Error("Failed to add image", err, map[string]interface{}{
				"user_id":     userID,
				"property_id": propertyID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create image")
		}
		return
	}

	log.Info("Image added successfully", map[string]interface{}{
		"property_id": propertyID,
		"image_id":    image.ID,
		"image_order": image.ImageOrder,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image added successfully",
		"image":   image,
	})
}

// DeleteImage removes an image and closes the ordering gap
// DELETE /api/v1/properties/:id/images/:image_id
func (ctrl *PropertyImageController) DeleteImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to delete image", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}
	role, _ := middleware.GetUserRole(c)

	imageID, ok := parseIDParam(c, "image_id")
	if !ok {
		return
	}

	if err := ctrl.imageService.DeleteImage(imageID, userID, role); err != nil {
		switch {
		case errors.Is(err, service.ErrImageNotFound):
			apperrors.NotFound(c, apperrors.ImageNotFound, "이미지를 찾을 수 없습니다")
		case errors.Is(err, service.ErrNotPropertyOwner):
			log.Warn("Image delete forbidden", map[string]interface{}{
				"user_id":  userID,
				"image_id": imageID,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "본인의 매물 이미지만 삭제할 수 있습니다")
		default:
			log.Error("Failed to delete image", err, map[string]interface{}{
				"user_id":  userID,
				"image_id": imageID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete image")
		}
		return
	}

	log.Info("Image deleted successfully", map[string]interface{}{
		"user_id":  userID,
		"image_id": imageID,
	})

	c.Status(http.StatusNoContent)
}

// ReorderImages rewrites the display order of a property's images.
// The request must list every image of the property exactly once.
// PUT /api/v1/properties/:id/images/order
func (ctrl *PropertyImageController) ReorderImages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to reorder images", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}
	role, _ := middleware.GetUserRole(c)

	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ReorderImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid reorder request", map[string]interface{}{
			"user_id":     userID,
			"property_id": propertyID,
			"error":       err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "이미지 순서 정보가 올바르지 않습니다")
		return
	}

	images, err := ctrl.imageService.ReorderImages(propertyID, userID, role, req.ImageIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPropertyNotFound):
			apperrors.NotFound(c, apperrors.PropertyNotFound, "매물을 찾을 수 없습니다")
		case errors.Is(err, service.ErrNotPropertyOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "본인의 매물 이미지만 정렬할 수 있습니다")
		case errors.Is(err, service.ErrInvalidImageOrder):
			log.Warn("Invalid image order", map[string]interface{}{
				"user_id":     userID,
				"property_id": propertyID,
				"image_ids":   req.ImageIDs,
			})
			apperrors.BadRequest(c, apperrors.ImageInvalidOrder, "매물의 모든 이미지를 중복 없이 포함해야 합니다")
		default:
			log.Error("Failed to reorder images", err, map[string]interface{}{
				"user_id":     userID,
				"property_id": propertyID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update image order")
		}
		return
	}

	log.Info("Images reordered successfully", map[string]interface{}{
		"property_id": propertyID,
		"count":       len(images),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Images reordered successfully",
		"images":  images,
	})
}
