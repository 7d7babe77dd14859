package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myhome/myhome-backend/internal/app/service"
	apperrors "github.com/myhome/myhome-backend/internal/errors"
	"github.com/myhome/myhome-backend/internal/middleware"
)

type BookmarkController struct {
	bookmarkService service.BookmarkService
}

func NewBookmarkController(bookmarkService service.BookmarkService) *BookmarkController {
	return &BookmarkController{
		bookmarkService: bookmarkService,
	}
}

type AddBookmarkRequest struct {
	PropertyID uint `json:"property_id" binding:"required"`
}

// GetBookmarks returns the authenticated user's bookmarked properties
// GET /api/v1/bookmarks
func (ctrl *BookmarkController) GetBookmarks(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to fetch bookmarks", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	bookmarks, err := ctrl.bookmarkService.GetUserBookmarks(userID)
	if err != nil {
		log.Error("Failed to fetch bookmarks", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get bookmarks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookmarks": bookmarks,
		"count":     len(bookmarks),
	})
}

// AddBookmark bookmarks a property for the authenticated user
// POST /api/v1/bookmarks
func (ctrl *BookmarkController) AddBookmark(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to add bookmark", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	var req AddBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid bookmark request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	bookmark, err := ctrl.bookmarkService.AddBookmark(userID, req.PropertyID)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			log.Warn("Bookmark target not found", map[string]interface{}{
				"user_id":     userID,
				"property_id": req.PropertyID,
			})
			apperrors.NotFound(c, apperrors.PropertyNotFound, "매물을 찾을 수 없습니다")
			return
		}
		if errors.Is(err, service.ErrBookmarkAlreadyExists) {
			log.Warn("Property already bookmarked", map[string]interface{}{
				"user_id":     userID,
				"property_id": req.PropertyID,
			})
			apperrors.Conflict(c, apperrors.BookmarkAlreadyExists, "이미 찜한 매물입니다")
			return
		}
		log.Error("Failed to add bookmark", err, map[string]interface{}{
			"user_id":     userID,
			"property_id": req.PropertyID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create bookmark")
		return
	}

	log.Info("Bookmark added successfully", map[string]interface{}{
		"user_id":     userID,
		"property_id": req.PropertyID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Bookmark added successfully",
		"bookmark": bookmark,
	})
}

// RemoveBookmarkByID removes a bookmark by its own ID
// DELETE /api/v1/bookmarks/:id
func (ctrl *BookmarkController) RemoveBookmarkByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to remove bookmark", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}
	role, _ := middleware.GetUserRole(c)

	bookmarkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.bookmarkService.RemoveBookmarkByID(bookmarkID, userID, role); err != nil {
		switch {
		case errors.Is(err, service.ErrBookmarkNotFound):
			log.Warn("Bookmark not found", map[string]interface{}{
				"user_id":     userID,
				"bookmark_id": bookmarkID,
			})
			apperrors.NotFound(c, apperrors.BookmarkNotFound, "찜 내역을 찾을 수 없습니다")
		case errors.Is(err, service.ErrNotBookmarkOwner):
			log.Warn("Bookmark delete forbidden", map[string]interface{}{
				"user_id":     userID,
				"bookmark_id": bookmarkID,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "본인의 찜만 삭제할 수 있습니다")
		default:
			log.Error("Failed to remove bookmark", err, map[string]interface{}{
				"user_id":     userID,
				"bookmark_id": bookmarkID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete bookmark")
		}
		return
	}

	log.Info("Bookmark removed successfully", map[string]interface{}{
		"user_id":     userID,
		"bookmark_id": bookmarkID,
	})

	c.Status(http.StatusNoContent)
}

// RemoveBookmark removes a bookmark by property ID
// DELETE /api/v1/bookmarks/properties/:property_id
func (ctrl *BookmarkController) RemoveBookmark(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to remove bookmark", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	propertyID, ok := parseIDParam(c, "property_id")
	if !ok {
		return
	}

	if err := ctrl.bookmarkService.RemoveBookmark(userID, propertyID); err != nil {
		if errors.Is(err, service.ErrBookmarkNotFound) {
			log.Warn("Bookmark not found", map[string]interface{}{
				"user_id":     userID,
				"property_id": propertyID,
			})
			apperrors.NotFound(c, apperrors.BookmarkNotFound, "찜 내역을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to remove bookmark", err, map[string]interface{}{
			"user_id":     userID,
			"property_id": propertyID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete bookmark")
		return
	}

	log.Info("Bookmark removed successfully", map[string]interface{}{
		"user_id":     userID,
		"property_id": propertyID,
	})

	c.Status(http.StatusNoContent)
}

// GetBookmarkStatus tells whether the user bookmarked a property
// GET /api/v1/bookmarks/:property_id/status
func (ctrl *BookmarkController) GetBookmarkStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	propertyID, ok := parseIDParam(c, "property_id")
	if !ok {
		return
	}

	bookmarked, err := ctrl.bookmarkService.IsBookmarked(userID, propertyID)
	if err != nil {
		log.Error("Failed to check bookmark status", err, map[string]interface{}{
			"user_id":     userID,
			"property_id": propertyID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get bookmark status")
		return
	}

	count, err := ctrl.bookmarkService.CountForProperty(propertyID)
	if err != nil {
		log.Error("Failed to count bookmarks", err, map[string]interface{}{
			"property_id": propertyID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get bookmark status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookmarked": bookmarked,
		"count":      count,
	})
}
