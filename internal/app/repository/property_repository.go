package repository

import (
	"math"
	"sort"

	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/pkg/logger"
	"github.com/myhome/myhome-backend/pkg/util"
	"gorm.io/gorm"
)

// PropertyFilter holds optional search conditions. Zero values mean
// the condition is not applied.
type PropertyFilter struct {
	PropertyType   model.PropertyType
	RoomType       model.RoomType
	RentalType     model.RentalType
	MinDeposit     *int64
	MaxDeposit     *int64
	MinMonthlyRent *int64
	MaxMonthlyRent *int64
	MinArea        *float64
	MaxArea        *float64
	District       string // 구 단위 일치
	Neighborhood   string // 동 단위 일치
	Region         string // 주소 부분 일치
}

// PropertyListOptions holds paging and sorting options
type PropertyListOptions struct {
	Page     int
	PageSize int
	SortBy   string // created_at, deposit, monthly_rent, area, floor
	SortDesc bool
}

// PropertyListResult is a page of properties with total count
type PropertyListResult struct {
	Properties []model.Property `json:"properties"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
}

// PropertyWithDistance pairs a property with its distance from a
// search origin in meters.
type PropertyWithDistance struct {
	model.Property
	Distance float64 `json:"distance"` // 미터
}

// 정렬 가능한 컬럼 화이트리스트
var allowedSortColumns = map[string]bool{
	"created_at":   true,
	"deposit":      true,
	"monthly_rent": true,
	"area":         true,
	"floor":        true,
}

type PropertyRepository interface {
	Create(property *model.Property) error
	Update(property *model.Property) error
	Delete(id uint) error
	FindByID(id uint) (*model.Property, error)
	ExistsByID(id uint) (bool, error)
	FindAvailable(filter PropertyFilter, opts PropertyListOptions) (*PropertyListResult, error)
	FindNearby(lat, lng float64, radiusMeters int) ([]PropertyWithDistance, error)
	FindAll() ([]model.Property, error)
	BulkCreate(properties []model.Property, batchSize int) error
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(property *model.Property) error {
	logger.Debug("Creating property in database", map[string]interface{}{
		"title":   property.Title,
		"address": property.Address,
		"user_id": property.UserID,
	})

	if err := r.db.Create(property).Error; err != nil {
		logger.Error("Failed to create property in database", err, map[string]interface{}{
			"title":   property.Title,
			"address": property.Address,
		})
		return err
	}

	logger.Debug("Property created in database", map[string]interface{}{
		"property_id": property.ID,
	})
	return nil
}

func (r *propertyRepository) Update(property *model.Property) error {
	logger.Debug("Updating property in database", map[string]interface{}{
		"property_id": property.ID,
	})

	if err := r.db.Save(property).Error; err != nil {
		logger.Error("Failed to update property in database", err, map[string]interface{}{
			"property_id": property.ID,
		})
		return err
	}
	return nil
}

func (r *propertyRepository) Delete(id uint) error {
	logger.Debug("Deleting property from database", map[string]interface{}{
		"property_id": id,
	})

	if err := r.db.Delete(&model.Property{}, id).Error; err != nil {
		logger.Error("Failed to delete property from database", err, map[string]interface{}{
			"property_id": id,
		})
		return err
	}
	return nil
}

func (r *propertyRepository) FindByID(id uint) (*model.Property, error) {
	var property model.Property
	err := r.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("image_order ASC")
		}).
		First(&property, id).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find property by ID", err, map[string]interface{}{
				"property_id": id,
			})
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) ExistsByID(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Property{}).Where("id = ?", id).Count(&count).Error; err != nil {
		logger.Error("Failed to check property existence", err, map[string]interface{}{
			"property_id": id,
		})
		return false, err
	}
	return count > 0, nil
}

// FindAvailable returns available properties matching the filter,
// paged and sorted.
func (r *propertyRepository) FindAvailable(filter PropertyFilter, opts PropertyListOptions) (*PropertyListResult, error) {
	logger.Debug("Finding properties", map[string]interface{}{
		"property_type": filter.PropertyType,
		"rental_type":   filter.RentalType,
		"region":        filter.Region,
		"page":          opts.Page,
	})

	query := r.db.Model(&model.Property{}).Where("status = ?", model.StatusAvailable)
	query = applyPropertyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count properties", err, nil)
		return nil, err
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	sortBy := opts.SortBy
	if !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}
	direction := "ASC"
	if opts.SortDesc || opts.SortBy == "" {
		direction = "DESC"
	}

	var properties []model.Property
	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("image_order ASC")
		}).
		Order(sortBy + " " + direction).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&properties).Error
	if err != nil {
		logger.Error("Failed to find properties", err, nil)
		return nil, err
	}

	return &PropertyListResult{
		Properties: properties,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func applyPropertyFilter(query *gorm.DB, filter PropertyFilter) *gorm.DB {
	if filter.PropertyType != "" {
		query = query.Where("property_type = ?", filter.PropertyType)
	}
	if filter.RoomType != "" {
		query = query.Where("room_type = ?", filter.RoomType)
	}
	if filter.RentalType != "" {
		query = query.Where("rental_type = ?", filter.RentalType)
	}
	if filter.MinDeposit != nil {
		query = query.Where("deposit >= ?", *filter.MinDeposit)
	}
	if filter.MaxDeposit != nil {
		query = query.Where("deposit <= ?", *filter.MaxDeposit)
	}
	if filter.MinMonthlyRent != nil {
		query = query.Where("monthly_rent >= ?", *filter.MinMonthlyRent)
	}
	if filter.MaxMonthlyRent != nil {
		query = query.Where("monthly_rent <= ?", *filter.MaxMonthlyRent)
	}
	if filter.MinArea != nil {
		query = query.Where("area >= ?", *filter.MinArea)
	}
	if filter.MaxArea != nil {
		query = query.Where("area <= ?", *filter.MaxArea)
	}
	if filter.District != "" {
		query = query.Where("district = ?", filter.District)
	}
	if filter.Neighborhood != "" {
		query = query.Where("neighborhood = ?", filter.Neighborhood)
	}
	if filter.Region != "" {
		query = query.Where("address LIKE ?", "%"+filter.Region+"%")
	}
	return query
}

// FindNearby returns available geocoded properties within the radius,
// sorted by distance ascending. Distance is computed in-process so the
// same query works on PostgreSQL and SQLite.
func (r *propertyRepository) FindNearby(lat, lng float64, radiusMeters int) ([]PropertyWithDistance, error) {
	logger.Debug("Finding nearby properties", map[string]interface{}{
		"latitude":  lat,
		"longitude": lng,
		"radius":    radiusMeters,
	})

	// 반경을 덮는 경계 상자로 후보를 좁힌 뒤 정확한 거리를 계산한다.
	// 경도 1도의 거리는 위도에 따라 줄어들므로 cos(lat)로 보정한다.
	latDelta := float64(radiusMeters) / 111000.0
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngDelta := latDelta / cosLat

	var candidates []model.Property
	err := r.db.
		Where("status = ?", model.StatusAvailable).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", lat-latDelta, lat+latDelta).
		Where("longitude BETWEEN ? AND ?", lng-lngDelta, lng+lngDelta).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("image_order ASC")
		}).
		Find(&candidates).Error
	if err != nil {
		logger.Error("Failed to find nearby properties", err, nil)
		return nil, err
	}

	results := make([]PropertyWithDistance, 0, len(candidates))
	for _, p := range candidates {
		if !p.HasCoordinate() {
			continue
		}
		distance := util.CalculateDistanceMeters(lat, lng, *p.Latitude, *p.Longitude)
		if distance <= float64(radiusMeters) {
			results = append(results, PropertyWithDistance{
				Property: p,
				Distance: distance,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	logger.Debug("Nearby properties found", map[string]interface{}{
		"candidates": len(candidates),
		"matched":    len(results),
	})
	return results, nil
}

// BulkCreate inserts properties in batches
func (r *propertyRepository) BulkCreate(properties []model.Property, batchSize int) error {
	if batchSize < 1 {
		batchSize = 500
	}

	logger.Info("Bulk creating properties", map[string]interface{}{
		"count":      len(properties),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(properties, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create properties", err, map[string]interface{}{
			"count": len(properties),
		})
		return err
	}
	return nil
}

func (r *propertyRepository) FindAll() ([]model.Property, error) {
	var properties []model.Property
	if err := r.db.Order("created_at DESC").Find(&properties).Error; err != nil {
		logger.Error("Failed to find all properties", err, nil)
		return nil, err
	}
	return properties, nil
}
