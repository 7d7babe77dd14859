package repository

import (
	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/pkg/logger"
	"gorm.io/gorm"
)

type PropertyImageRepository interface {
	Create(image *model.PropertyImage) error
	FindByID(id uint) (*model.PropertyImage, error)
	FindByPropertyID(propertyID uint) ([]model.PropertyImage, error)
	FindMain(propertyID uint) (*model.PropertyImage, error)
	CountByPropertyID(propertyID uint) (int64, error)
	DeleteAndRenumber(image *model.PropertyImage) error
	DeleteByPropertyID(propertyID uint) error
	Reorder(propertyID uint, imageIDs []uint) error
}

type propertyImageRepository struct {
	db *gorm.DB
}

func NewPropertyImageRepository(db *gorm.DB) PropertyImageRepository {
	return &propertyImageRepository{db: db}
}

func (r *propertyImageRepository) Create(image *model.PropertyImage) error {
	logger.Debug("Creating property image in database", map[string]interface{}{
		"property_id": image.PropertyID,
		"image_order": image.ImageOrder,
	})

	if err := r.db.Create(image).Error; err != nil {
		logger.Error("Failed to create property image in database", err, map[string]interface{}{
			"property_id": image.PropertyID,
		})
		return err
	}
	return nil
}

func (r *propertyImageRepository) FindByID(id uint) (*model.PropertyImage, error) {
	var image model.PropertyImage
	if err := r.db.First(&image, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find property image by ID", err, map[string]interface{}{
				"image_id": id,
			})
		}
		return nil, err
	}
	return &image, nil
}

func (r *propertyImageRepository) FindByPropertyID(propertyID uint) ([]model.PropertyImage, error) {
	var images []model.PropertyImage
	err := r.db.
		Where("property_id = ?", propertyID).
		Order("image_order ASC").
		Find(&images).Error
	if err != nil {
		logger.Error("Failed to find property images", err, map[string]interface{}{
			"property_id": propertyID,
		})
		return nil, err
	}
	return images, nil
}

// FindMain returns the image with order 1
func (r *propertyImageRepository) FindMain(propertyID uint) (*model.PropertyImage, error) {
	var image model.PropertyImage
	err := r.db.
		Where("property_id = ? AND image_order = ?", propertyID, 1).
		First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *propertyImageRepository) CountByPropertyID(propertyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.PropertyImage{}).
		Where("property_id = ?", propertyID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count property images", err, map[string]interface{}{
			"property_id": propertyID,
		})
		return 0, err
	}
	return count, nil
}

// DeleteAndRenumber removes an image and closes the gap in the
// remaining orders so they stay dense from 1. Deletion and renumbering
// run in one transaction.
func (r *propertyImageRepository) DeleteAndRenumber(image *model.PropertyImage) error {
	logger.Debug("Deleting property image with renumbering", map[string]interface{}{
		"image_id":    image.ID,
		"property_id": image.PropertyID,
		"image_order": image.ImageOrder,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.PropertyImage{}, image.ID).Error; err != nil {
			return err
		}
		return tx.Model(&model.PropertyImage{}).
			Where("property_id = ? AND image_order > ?", image.PropertyID, image.ImageOrder).
			UpdateColumn("image_order", gorm.Expr("image_order - 1")).Error
	})
	if err != nil {
		logger.Error("Failed to delete property image", err, map[string]interface{}{
			"image_id": image.ID,
		})
		return err
	}
	return nil
}

// DeleteByPropertyID removes every image of a property, used when the
// listing itself is deleted.
func (r *propertyImageRepository) DeleteByPropertyID(propertyID uint) error {
	if err := r.db.Where("property_id = ?", propertyID).Delete(&model.PropertyImage{}).Error; err != nil {
		logger.Error("Failed to delete property images", err, map[string]interface{}{
			"property_id": propertyID,
		})
		return err
	}
	return nil
}

// Reorder rewrites the order of a property's images to match the given
// ID sequence. The caller must pass every image of the property exactly
// once.
func (r *propertyImageRepository) Reorder(propertyID uint, imageIDs []uint) error {
	logger.Debug("Reordering property images", map[string]interface{}{
		"property_id": propertyID,
		"image_count": len(imageIDs),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// 유니크 제약 충돌을 피하기 위해 두 단계로 갱신한다
		for i, imageID := range imageIDs {
			result := tx.Model(&model.PropertyImage{}).
				Where("id = ? AND property_id = ?", imageID, propertyID).
				UpdateColumn("image_order", -(i + 1))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return tx.Model(&model.PropertyImage{}).
			Where("property_id = ? AND image_order < 0", propertyID).
			UpdateColumn("image_order", gorm.Expr("-image_order")).Error
	})
	if err != nil {
		logger.Error("Failed to reorder property images", err, map[string]interface{}{
			"property_id": propertyID,
		})
		return err
	}
	return nil
}
