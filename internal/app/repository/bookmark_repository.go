package repository

import (
	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/pkg/logger"
	"gorm.io/gorm"
)

type BookmarkRepository interface {
	Create(bookmark *model.Bookmark) error
	Delete(userID, propertyID uint) (int64, error)
	DeleteByID(id uint) error
	FindByID(id uint) (*model.Bookmark, error)
	FindByUserID(userID uint) ([]model.Bookmark, error)
	Exists(userID, propertyID uint) (bool, error)
	CountByPropertyID(propertyID uint) (int64, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Create(bookmark *model.Bookmark) error {
	logger.Debug("Creating bookmark in database", map[string]interface{}{
		"user_id":     bookmark.UserID,
		"property_id": bookmark.PropertyID,
	})

	if err := r.db.Create(bookmark).Error; err != nil {
		logger.Error("Failed to create bookmark in database", err, map[string]interface{}{
			"user_id":     bookmark.UserID,
			"property_id": bookmark.PropertyID,
		})
		return err
	}
	return nil
}

// Delete removes a bookmark and returns the number of affected rows
func (r *bookmarkRepository) Delete(userID, propertyID uint) (int64, error) {
	logger.Debug("Deleting bookmark from database", map[string]interface{}{
		"user_id":     userID,
		"property_id": propertyID,
	})

	result := r.db.
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&model.Bookmark{})
	if result.Error != nil {
		logger.Error("Failed to delete bookmark from database", result.Error, map[string]interface{}{
			"user_id":     userID,
			"property_id": propertyID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *bookmarkRepository) DeleteByID(id uint) error {
	if err := r.db.Delete(&model.Bookmark{}, id).Error; err != nil {
		logger.Error("Failed to delete bookmark by ID", err, map[string]interface{}{
			"bookmark_id": id,
		})
		return err
	}
	return nil
}

func (r *bookmarkRepository) FindByID(id uint) (*model.Bookmark, error) {
	var bookmark model.Bookmark
	if err := r.db.First(&bookmark, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find bookmark by ID", err, map[string]interface{}{
				"bookmark_id": id,
			})
		}
		return nil, err
	}
	return &bookmark, nil
}

func (r *bookmarkRepository) FindByUserID(userID uint) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Property").
		Preload("Property.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("image_order ASC")
		}).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		logger.Error("Failed to find bookmarks", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) Exists(userID, propertyID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Bookmark{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check bookmark existence", err, map[string]interface{}{
			"user_id":     userID,
			"property_id": propertyID,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *bookmarkRepository) CountByPropertyID(propertyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Bookmark{}).
		Where("property_id = ?", propertyID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
