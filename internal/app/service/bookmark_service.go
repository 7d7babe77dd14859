package service

import (
	"errors"

	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/internal/app/repository"
	"github.com/myhome/myhome-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBookmarkAlreadyExists = errors.New("property already bookmarked")
	ErrBookmarkNotFound      = errors.New("bookmark not found")
	ErrNotBookmarkOwner      = errors.New("not the bookmark owner")
)

type BookmarkService interface {
	GetUserBookmarks(userID uint) ([]model.Bookmark, error)
	AddBookmark(userID, propertyID uint) (*model.Bookmark, error)
	RemoveBookmark(userID, propertyID uint) error
	RemoveBookmarkByID(bookmarkID, userID uint, role model.UserRole) error
	IsBookmarked(userID, propertyID uint) (bool, error)
	CountForProperty(propertyID uint) (int64, error)
}

type bookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	propertyRepo repository.PropertyRepository
}

func NewBookmarkService(
	bookmarkRepo repository.BookmarkRepository,
	propertyRepo repository.PropertyRepository,
) BookmarkService {
	return &bookmarkService{
		bookmarkRepo: bookmarkRepo,
		propertyRepo: propertyRepo,
	}
}

func (s *bookmarkService) GetUserBookmarks(userID uint) ([]model.Bookmark, error) {
	logger.Debug("Fetching user bookmarks", map[string]interface{}{
		"user_id": userID,
	})

	bookmarks, err := s.bookmarkRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user bookmarks", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return bookmarks, nil
}

func (s *bookmarkService) AddBookmark(userID, propertyID uint) (*model.Bookmark, error) {
	logger.Info("Adding bookmark", map[string]interface{}{
		"user_id":     userID,
		"property_id": propertyID,
	})

	exists, err := s.propertyRepo.ExistsByID(propertyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Warn("Cannot bookmark: property not found", map[string]interface{}{
			"user_id":     userID,
			"property_id": propertyID,
		})
		return nil, ErrPropertyNotFound
	}

	bookmarked, err := s.bookmarkRepo.Exists(userID, propertyID)
	if err != nil {
		return nil, err
	}
	if bookmarked {
		logger.Warn("Property already bookmarked", map[string]interface{}{
			"user_id":     userID,
			"property_id": propertyID,
		})
		return nil, ErrBookmarkAlreadyExists
	}

	bookmark := &model.Bookmark{
		UserID:     userID,
		PropertyID: propertyID,
	}
	if err := s.bookmarkRepo.Create(bookmark); err != nil {
		logger.Error("Failed to create bookmark", err, map[string]interface{}{
			"user_id":     userID,
			"property_id": propertyID,
		})
		return nil, err
	}

	logger.Info("Bookmark added successfully", map[string]interface{}{
		"bookmark_id": bookmark.ID,
	})
	return bookmark, nil
}

func (s *bookmarkService) RemoveBookmark(userID, propertyID uint) error {
	logger.Info("Removing bookmark", map[string]interface{}{
		"user_id":     userID,
		"property_id": propertyID,
	})

	affected, err := s.bookmarkRepo.Delete(userID, propertyID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

// RemoveBookmarkByID deletes a bookmark by its own ID. Only the
// bookmark's owner or an admin may delete it.
func (s *bookmarkService) RemoveBookmarkByID(bookmarkID, userID uint, role model.UserRole) error {
	logger.Info("Removing bookmark by ID", map[string]interface{}{
		"bookmark_id": bookmarkID,
		"user_id":     userID,
	})

	bookmark, err := s.bookmarkRepo.FindByID(bookmarkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookmarkNotFound
		}
		return err
	}

	if bookmark.UserID != userID && role != model.RoleAdmin {
		logger.Warn("Bookmark delete denied", map[string]interface{}{
			"bookmark_id": bookmarkID,
			"user_id":     userID,
			"owner_id":    bookmark.UserID,
		})
		return ErrNotBookmarkOwner
	}

	return s.bookmarkRepo.DeleteByID(bookmarkID)
}

func (s *bookmarkService) IsBookmarked(userID, propertyID uint) (bool, error) {
	return s.bookmarkRepo.Exists(userID, propertyID)
}

func (s *bookmarkService) CountForProperty(propertyID uint) (int64, error) {
	return s.bookmarkRepo.CountByPropertyID(propertyID)
}
