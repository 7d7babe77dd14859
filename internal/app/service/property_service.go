package service

import (
	"context"
	"errors"
	"time"

	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/internal/app/repository"
	"github.com/myhome/myhome-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotPropertyOwner = errors.New("not the property owner")
	ErrInvalidProperty  = errors.New("invalid property input")
)

// CreatePropertyInput carries the fields for a new listing. Latitude
// and Longitude override geocoding when both are present.
type CreatePropertyInput struct {
	Title             string
	Description       string
	PropertyType      model.PropertyType
	RoomType          model.RoomType
	RentalType        model.RentalType
	Deposit           int64
	MonthlyRent       int64
	MaintenanceFee    int64
	Area              float64
	Floor             int
	TotalFloors       int
	Address           string
	DetailAddress     string
	District          string
	Neighborhood      string
	AvailableFrom     *time.Time
	ParkingAvailable  bool
	ElevatorAvailable bool
	ContactName       string
	ContactPhone      string
	Latitude          *float64
	Longitude         *float64
}

// UpdatePropertyInput carries partial updates. Nil means "leave
// unchanged".
type UpdatePropertyInput struct {
	Title             *string
	Description       *string
	PropertyType      *model.PropertyType
	RoomType          *model.RoomType
	RentalType        *model.RentalType
	Deposit           *int64
	MonthlyRent       *int64
	MaintenanceFee    *int64
	Area              *float64
	Floor             *int
	TotalFloors       *int
	DetailAddress     *string
	District          *string
	Neighborhood      *string
	AvailableFrom     *time.Time
	ParkingAvailable  *bool
	ElevatorAvailable *bool
	ContactName       *string
	ContactPhone      *string
	Status            *model.AvailabilityStatus
}

type PropertyService interface {
	Create(ctx context.Context, userID uint, input CreatePropertyInput) (*model.Property, error)
	GetByID(id uint) (*model.Property, error)
	Update(id, userID uint, role model.UserRole, input UpdatePropertyInput) (*model.Property, error)
	Delete(id, userID uint, role model.UserRole) error
	List(userID *uint, filter repository.PropertyFilter, opts repository.PropertyListOptions) (*repository.PropertyListResult, error)
	ListAll() ([]model.Property, error)
}

type propertyService struct {
	propertyRepo repository.PropertyRepository
	imageRepo    repository.PropertyImageRepository
	historyRepo  repository.SearchHistoryRepository
	geocoder     Geocoder
}

func NewPropertyService(
	propertyRepo repository.PropertyRepository,
	imageRepo repository.PropertyImageRepository,
	historyRepo repository.SearchHistoryRepository,
	geocoder Geocoder,
) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		imageRepo:    imageRepo,
		historyRepo:  historyRepo,
		geocoder:     geocoder,
	}
}

func (s *propertyService) Create(ctx context.Context, userID uint, input CreatePropertyInput) (*model.Property, error) {
	logger.Info("Creating property", map[string]interface{}{
		"title":   input.Title,
		"address": input.Address,
		"user_id": userID,
	})

	if input.Title == "" || input.Address == "" || input.PropertyType == "" || input.RentalType == "" {
		return nil, ErrInvalidProperty
	}

	property := &model.Property{
		Title:             input.Title,
		Description:       input.Description,
		PropertyType:      input.PropertyType,
		RoomType:          input.RoomType,
		RentalType:        input.RentalType,
		Deposit:           input.Deposit,
		MonthlyRent:       input.MonthlyRent,
		MaintenanceFee:    input.MaintenanceFee,
		Area:              input.Area,
		Floor:             input.Floor,
		TotalFloors:       input.TotalFloors,
		Address:           input.Address,
		DetailAddress:     input.DetailAddress,
		District:          input.District,
		Neighborhood:      input.Neighborhood,
		AvailableFrom:     input.AvailableFrom,
		ParkingAvailable:  input.ParkingAvailable,
		ElevatorAvailable: input.ElevatorAvailable,
		ContactName:       input.ContactName,
		ContactPhone:      input.ContactPhone,
		Status:            model.StatusAvailable,
		UserID:            userID,
	}

	// 좌표가 명시되면 그대로 쓰고, 없으면 주소를 지오코딩한다.
	// 지오코딩 실패는 좌표 없는 매물로 등록한다.
	if input.Latitude != nil && input.Longitude != nil {
		property.Latitude = input.Latitude
		property.Longitude = input.Longitude
	} else {
		result := s.geocoder.AddressToCoordinate(ctx, input.Address)
		if result.Success {
			property.Latitude = &result.Latitude
			property.Longitude = &result.Longitude
		} else {
			logger.Warn("Property created without coordinates", map[string]interface{}{
				"address": input.Address,
			})
		}
	}

	if err := s.propertyRepo.Create(property); err != nil {
		logger.Error("Failed to create property", err, map[string]interface{}{
			"title": input.Title,
		})
		return nil, err
	}

	logger.Info("Property created successfully", map[string]interface{}{
		"property_id": property.ID,
		"geocoded":    property.HasCoordinate(),
	})
	return property, nil
}

func (s *propertyService) GetByID(id uint) (*model.Property, error) {
	property, err := s.propertyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return property, nil
}

func (s *propertyService) Update(id, userID uint, role model.UserRole, input UpdatePropertyInput) (*model.Property, error) {
	logger.Info("Updating property", map[string]interface{}{
		"property_id": id,
		"user_id":     userID,
	})

	property, err := s.propertyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	if property.UserID != userID && role != model.RoleAdmin {
		logger.Warn("Property update denied", map[string]interface{}{
			"property_id": id,
			"user_id":     userID,
			"owner_id":    property.UserID,
		})
		return nil, ErrNotPropertyOwner
	}

	if input.Status != nil && !isValidStatus(*input.Status) {
		return nil, ErrInvalidProperty
	}

	applyPropertyUpdate(property, input)

	if err := s.propertyRepo.Update(property); err != nil {
		logger.Error("Failed to update property", err, map[string]interface{}{
			"property_id": id,
		})
		return nil, err
	}
	return property, nil
}

func isValidStatus(status model.AvailabilityStatus) bool {
	switch status {
	case model.StatusAvailable, model.StatusRented, model.StatusPending:
		return true
	}
	return false
}

func applyPropertyUpdate(property *model.Property, input UpdatePropertyInput) {
	if input.Title != nil {
		property.Title = *input.Title
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.PropertyType != nil {
		property.PropertyType = *input.PropertyType
	}
	if input.RoomType != nil {
		property.RoomType = *input.RoomType
	}
	if input.RentalType != nil {
		property.RentalType = *input.RentalType
	}
	if input.Deposit != nil {
		property.Deposit = *input.Deposit
	}
	if input.MonthlyRent != nil {
		property.MonthlyRent = *input.MonthlyRent
	}
	if input.MaintenanceFee != nil {
		property.MaintenanceFee = *input.MaintenanceFee
	}
	if input.Area != nil {
		property.Area = *input.Area
	}
	if input.Floor != nil {
		property.Floor = *input.Floor
	}
	if input.TotalFloors != nil {
		property.TotalFloors = *input.TotalFloors
	}
	if input.DetailAddress != nil {
		property.DetailAddress = *input.DetailAddress
	}
	if input.District != nil {
		property.District = *input.District
	}
	if input.Neighborhood != nil {
		property.Neighborhood = *input.Neighborhood
	}
	if input.AvailableFrom != nil {
		property.AvailableFrom = input.AvailableFrom
	}
	if input.ParkingAvailable != nil {
		property.ParkingAvailable = *input.ParkingAvailable
	}
	if input.ElevatorAvailable != nil {
		property.ElevatorAvailable = *input.ElevatorAvailable
	}
	if input.ContactName != nil {
		property.ContactName = *input.ContactName
	}
	if input.ContactPhone != nil {
		property.ContactPhone = *input.ContactPhone
	}
	if input.Status != nil {
		property.Status = *input.Status
	}
}

func (s *propertyService) Delete(id, userID uint, role model.UserRole) error {
	logger.Info("Deleting property", map[string]interface{}{
		"property_id": id,
		"user_id":     userID,
	})

	property, err := s.propertyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return err
	}

	if property.UserID != userID && role != model.RoleAdmin {
		return ErrNotPropertyOwner
	}

	if err := s.imageRepo.DeleteByPropertyID(id); err != nil {
		return err
	}
	return s.propertyRepo.Delete(id)
}

// List returns available properties matching the filter. Region and
// keyword filters are recorded in the search history.
func (s *propertyService) List(userID *uint, filter repository.PropertyFilter, opts repository.PropertyListOptions) (*repository.PropertyListResult, error) {
	result, err := s.propertyRepo.FindAvailable(filter, opts)
	if err != nil {
		return nil, err
	}

	if userID != nil || filter.Region != "" {
		s.recordHistory(userID, filter, len(result.Properties))
	}
	return result, nil
}

// ListAll returns every listing regardless of status, for the admin export.
func (s *propertyService) ListAll() ([]model.Property, error) {
	return s.propertyRepo.FindAll()
}

func (s *propertyService) recordHistory(userID *uint, filter repository.PropertyFilter, resultCount int) {
	history := &model.SearchHistory{
		UserID:       userID,
		SearchType:   model.SearchTypeFilter,
		Keyword:      filter.Region,
		MinDeposit:   filter.MinDeposit,
		MaxDeposit:   filter.MaxDeposit,
		RentalType:   filter.RentalType,
		PropertyType: filter.PropertyType,
		ResultCount:  resultCount,
	}
	// 이력 기록 실패가 검색 자체를 실패시키지는 않는다
	if err := s.historyRepo.Create(history); err != nil {
		logger.Warn("Failed to record search history", map[string]interface{}{
			"keyword": filter.Region,
		})
	}
}
