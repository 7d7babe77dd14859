package service

import (
	"errors"

	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/internal/app/repository"
	"github.com/myhome/myhome-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrImageNotFound     = errors.New("property image not found")
	ErrInvalidImageOrder = errors.New("invalid image order")
)

type PropertyImageService interface {
	AddImage(propertyID, userID uint, role model.UserRole, imageURL, altText string) (*model.PropertyImage, error)
	ListImages(propertyID uint) ([]model.PropertyImage, error)
	GetMainImage(propertyID uint) (*model.PropertyImage, error)
	DeleteImage(imageID, userID uint, role model.UserRole) error
	ReorderImages(propertyID, userID uint, role model.UserRole, imageIDs []uint) ([]model.PropertyImage, error)
}

type propertyImageService struct {
	imageRepo    repository.PropertyImageRepository
	propertyRepo repository.PropertyRepository
}

func NewPropertyImageService(
	imageRepo repository.PropertyImageRepository,
	propertyRepo repository.PropertyRepository,
) PropertyImageService {
	return &propertyImageService{
		imageRepo:    imageRepo,
		propertyRepo: propertyRepo,
	}
}

// AddImage appends an image at the end of the property's order
func (s *propertyImageService) AddImage(propertyID, userID uint, role model.UserRole, imageURL, altText string) (*model.PropertyImage, error) {
	logger.Info("Adding property image", map[string]interface{}{
		"property_id": propertyID,
		"user_id":     userID,
	})

	property, err := s.ownedProperty(propertyID, userID, role)
	if err != nil {
		return nil, err
	}

	count, err := s.imageRepo.CountByPropertyID(property.ID)
	if err != nil {
		return nil, err
	}

	image := &model.PropertyImage{
		PropertyID: property.ID,
		ImageURL:   imageURL,
		ImageOrder: int(count) + 1,
		AltText:    altText,
	}
	if err := s.imageRepo.Create(image); err != nil {
		logger.Error("Failed to add property image", err, map[string]interface{}{
			"property_id": propertyID,
		})
		return nil, err
	}

	logger.Info("Property image added", map[string]interface{}{
		"image_id":    image.ID,
		"image_order": image.ImageOrder,
	})
	return image, nil
}

func (s *propertyImageService) ListImages(propertyID uint) ([]model.PropertyImage, error) {
	exists, err := s.propertyRepo.ExistsByID(propertyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPropertyNotFound
	}
	return s.imageRepo.FindByPropertyID(propertyID)
}

func (s *propertyImageService) GetMainImage(propertyID uint) (*model.PropertyImage, error) {
	image, err := s.imageRepo.FindMain(propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return image, nil
}

// DeleteImage removes an image and keeps the remaining orders dense
func (s *propertyImageService) DeleteImage(imageID, userID uint, role model.UserRole) error {
	logger.Info("Deleting property image", map[string]interface{}{
		"image_id": imageID,
		"user_id":  userID,
	})

	image, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	if _, err := s.ownedProperty(image.PropertyID, userID, role); err != nil {
		return err
	}

	return s.imageRepo.DeleteAndRenumber(image)
}

// ReorderImages rewrites the display order. imageIDs must contain every
// image of the property exactly once.
func (s *propertyImageService) ReorderImages(propertyID, userID uint, role model.UserRole, imageIDs []uint) ([]model.PropertyImage, error) {
	if _, err := s.ownedProperty(propertyID, userID, role); err != nil {
		return nil, err
	}

	count, err := s.imageRepo.CountByPropertyID(propertyID)
	if err != nil {
		return nil, err
	}
	if int64(len(imageIDs)) != count || hasDuplicateID(imageIDs) {
		return nil, ErrInvalidImageOrder
	}

	if err := s.imageRepo.Reorder(propertyID, imageIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidImageOrder
		}
		return nil, err
	}

	return s.imageRepo.FindByPropertyID(propertyID)
}

func hasDuplicateID(ids []uint) bool {
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}

func (s *propertyImageService) ownedProperty(propertyID, userID uint, role model.UserRole) (*model.Property, error) {
	property, err := s.propertyRepo.FindByID(propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	if property.UserID != userID && role != model.RoleAdmin {
		logger.Warn("Property image access denied", map[string]interface{}{
			"property_id": propertyID,
			"user_id":     userID,
			"owner_id":    property.UserID,
		})
		return nil, ErrNotPropertyOwner
	}
	return property, nil
}
