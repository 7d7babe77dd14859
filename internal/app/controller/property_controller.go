package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/internal/app/repository"
	"github.com/myhome/myhome-backend/internal/app/service"
	apperrors "github.com/myhome/myhome-backend/internal/errors"
	"github.com/myhome/myhome-backend/internal/middleware"
	"github.com/xuri/excelize/v2"
)

type PropertyController struct {
	propertyService service.PropertyService
}

func NewPropertyController(propertyService service.PropertyService) *PropertyController {
	return &PropertyController{
		propertyService: propertyService,
	}
}

type CreatePropertyRequest struct {
	Title             string     `json:"title" binding:"required"`
	Description       string     `json:"description"`
	PropertyType      string     `json:"property_type" binding:"required"`
	RoomType          string     `json:"room_type"`
	RentalType        string     `json:"rental_type" binding:"required"`
	Deposit           int64      `json:"deposit" binding:"gte=0"`
	MonthlyRent       int64      `json:"monthly_rent" binding:"gte=0"`
	MaintenanceFee    int64      `json:"maintenance_fee" binding:"gte=0"`
	Area              float64    `json:"area" binding:"gte=0"`
	Floor             int        `json:"floor"`
	TotalFloors       int        `json:"total_floors"`
	Address           string     `json:"address" binding:"required"`
	DetailAddress     string     `json:"detail_address"`
	District          string     `json:"district"`
	Neighborhood      string     `json:"neighborhood"`
	AvailableFrom     *time.Time `json:"available_from"`
	ParkingAvailable  bool       `json:"parking_available"`
	ElevatorAvailable bool       `json:"elevator_available"`
	ContactName       string     `json:"contact_name" binding:"max=50"`
	ContactPhone      string     `json:"contact_phone" binding:"max=15"`
	Latitude          *float64   `json:"latitude"`
	Longitude         *float64   `json:"longitude"`
}

type UpdatePropertyRequest struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	PropertyType      *string    `json:"property_type"`
	RoomType          *string    `json:"room_type"`
	RentalType        *string    `json:"rental_type"`
	Deposit           *int64     `json:"deposit"`
	MonthlyRent       *int64     `json:"monthly_rent"`
	MaintenanceFee    *int64     `json:"maintenance_fee"`
	Area              *float64   `json:"area"`
	Floor             *int       `json:"floor"`
	TotalFloors       *int       `json:"total_floors"`
	DetailAddress     *string    `json:"detail_address"`
	District          *string    `json:"district"`
	Neighborhood      *string    `json:"neighborhood"`
	AvailableFrom     *time.Time `json:"available_from"`
	ParkingAvailable  *bool      `json:"parking_available"`
	ElevatorAvailable *bool      `json:"elevator_available"`
	ContactName       *string    `json:"contact_name"`
	ContactPhone      *string    `json:"contact_phone"`
	Status            *string    `json:"status"`
}

type ListPropertiesQuery struct {
	PropertyType   string   `form:"property_type"`
	RoomType       string   `form:"room_type"`
	RentalType     string   `form:"rental_type"`
	MinDeposit     *int64   `form:"min_deposit"`
	MaxDeposit     *int64   `form:"max_deposit"`
	MinMonthlyRent *int64   `form:"min_monthly_rent"`
	MaxMonthlyRent *int64   `form:"max_monthly_rent"`
	MinArea        *float64 `form:"min_area"`
	MaxArea        *float64 `form:"max_area"`
	District       string   `form:"district"`
	Neighborhood   string   `form:"neighborhood"`
	Region         string   `form:"region"`
	Page           int      `form:"page,default=1"`
	PageSize       int      `form:"page_size,default=20"`
	SortBy         string   `form:"sort_by"`
	Order          string   `form:"order"`
}

// ListProperties returns available properties with filters and paging
// GET /api/v1/properties
func (ctrl *PropertyController) ListProperties(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var query ListPropertiesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.Warn("Invalid property list query", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "검색 조건이 올바르지 않습니다")
		return
	}

	filter := repository.PropertyFilter{
		PropertyType:   model.PropertyType(query.PropertyType),
		RoomType:       model.RoomType(query.RoomType),
		RentalType:     model.RentalType(query.RentalType),
		MinDeposit:     query.MinDeposit,
		MaxDeposit:     query.MaxDeposit,
		MinMonthlyRent: query.MinMonthlyRent,
		MaxMonthlyRent: query.MaxMonthlyRent,
		MinArea:        query.MinArea,
		MaxArea:        query.MaxArea,
		District:       query.District,
		Neighborhood:   query.Neighborhood,
		Region:         query.Region,
	}
	opts := repository.PropertyListOptions{
		Page:     query.Page,
		PageSize: query.PageSize,
		SortBy:   query.SortBy,
		SortDesc: query.Order != "asc",
	}

	// 로그인한 사용자의 지역 검색은 검색 이력으로 남긴다
	var userID *uint
	if id, exists := middleware.GetUserID(c); exists {
		userID = &id
	}

	result, err := ctrl.propertyService.List(userID, filter, opts)
	if err != nil {
		log.Error("Failed to list properties", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search properties")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": result.Properties,
		"total":      result.Total,
		"page":       result.Page,
		"page_size":  result.PageSize,
	})
}

// GetProperty returns a single property with its images
// GET /api/v1/properties/:id
func (ctrl *PropertyController) GetProperty(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	property, err := ctrl.propertyService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			log.Warn("Property not found", map[string]interface{}{
				"property_id": id,
			})
			apperrors.NotFound(c, apperrors.PropertyNotFound, "매물을 찾을 수 없습니다")
			return
		}
		log.Error("Failed to fetch property", err, map[string]interface{}{
			"property_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get property")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property": property,
	})
}

// CreateProperty registers a new listing for the authenticated user
// POST /api/v1/properties
func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to create property", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid property creation request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	property, err := ctrl.propertyService.Create(c.Request.Context(), userID, service.CreatePropertyInput{
		Title:             req.Title,
		Description:       req.Description,
		PropertyType:      model.PropertyType(req.PropertyType),
		RoomType:          model.RoomType(req.RoomType),
		RentalType:        model.RentalType(req.RentalType),
		Deposit:           req.Deposit,
		MonthlyRent:       req.MonthlyRent,
		MaintenanceFee:    req.MaintenanceFee,
		Area:              req.Area,
		Floor:             req.Floor,
		TotalFloors:       req.TotalFloors,
		Address:           req.Address,
		DetailAddress:     req.DetailAddress,
		District:          req.District,
		Neighborhood:      req.Neighborhood,
		AvailableFrom:     req.AvailableFrom,
		ParkingAvailable:  req.ParkingAvailable,
		ElevatorAvailable: req.ElevatorAvailable,
		ContactName:       req.ContactName,
		ContactPhone:      req.ContactPhone,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidProperty) {
			log.Warn("Property creation rejected", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
			apperrors.BadRequest(c, apperrors.PropertyInvalidType, "매물 정보가 올바르지 않습니다")
			return
		}
		log.Error("Failed to create property", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create property")
		return
	}

	log.Info("Property created successfully", map[string]interface{}{
		"property_id": property.ID,
		"user_id":     userID,
		"geocoded":    property.HasCoordinate(),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Property created successfully",
		"property": property,
	})
}

// UpdateProperty applies a partial update to an owned listing
// PATCH /api/v1/properties/:id
func (ctrl *PropertyController) UpdateProperty(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to update property", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid property update request", map[string]interface{}{
			"user_id":     userID,
			"property_id": id,
			"error":       err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	property, err := ctrl.propertyService.Update(id, userID, role, toUpdateInput(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPropertyNotFound):
			apperrors.NotFound(c, apperrors.PropertyNotFound, "매물을 찾을 수 없습니다")
		case errors.Is(err, service.ErrNotPropertyOwner):
			log.Warn("Property update forbidden", map[string]interface{}{
				"user_id":     userID,
				"property_id": id,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "본인의 매물만 수정할 수 있습니다")
		case errors.Is(err, service.ErrInvalidProperty):
			apperrors.BadRequest(c, apperrors.PropertyInvalidStatus, "매물 정보가 올바르지 않습니다")
		default:
			log.Error("Failed to update property", err, map[string]interface{}{
				"user_id":     userID,
				"property_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update property")
		}
		return
	}

	log.Info("Property updated successfully", map[string]interface{}{
		"property_id": id,
		"user_id":     userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Property updated successfully",
		"property": property,
	})
}

// DeleteProperty soft-deletes an owned listing
// DELETE /api/v1/properties/:id
func (ctrl *PropertyController) DeleteProperty(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to delete property", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.propertyService.Delete(id, userID, role); err != nil {
		switch {
		case errors.Is(err, service.ErrPropertyNotFound):
			apperrors.NotFound(c, apperrors.PropertyNotFound, "매물을 찾을 수 없습니다")
		case errors.Is(err, service.ErrNotPropertyOwner):
			log.Warn("Property delete forbidden", map[string]interface{}{
				"user_id":     userID,
				"property_id": id,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "본인의 매물만 삭제할 수 있습니다")
		default:
			log.Error("Failed to delete property", err, map[string]interface{}{
				"user_id":     userID,
				"property_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete property")
		}
		return
	}

	log.Info("Property deleted successfully", map[string]interface{}{
		"property_id": id,
		"user_id":     userID,
	})

	c.Status(http.StatusNoContent)
}

func toUpdateInput(req UpdatePropertyRequest) service.UpdatePropertyInput {
	input := service.UpdatePropertyInput{
		Title:             req.Title,
		Description:       req.Description,
		Deposit:           req.Deposit,
		MonthlyRent:       req.MonthlyRent,
		MaintenanceFee:    req.MaintenanceFee,
		Area:              req.Area,
		Floor:             req.Floor,
		TotalFloors:       req.TotalFloors,
		DetailAddress:     req.DetailAddress,
		District:          req.District,
		Neighborhood:      req.Neighborhood,
		AvailableFrom:     req.AvailableFrom,
		ParkingAvailable:  req.ParkingAvailable,
		ElevatorAvailable: req.ElevatorAvailable,
		ContactName:       req.ContactName,
		ContactPhone:      req.ContactPhone,
	}
	if req.PropertyType != nil {
		v := model.PropertyType(*req.PropertyType)
		input.PropertyType = &v
	}
	if req.RoomType != nil {
		v := model.RoomType(*req.RoomType)
		input.RoomType = &v
	}
	if req.RentalType != nil {
		v := model.RentalType(*req.RentalType)
		input.RentalType = &v
	}
	if req.Status != nil {
		v := model.AvailabilityStatus(*req.Status)
		input.Status = &v
	}
	return input
}

// parseIDParam reads a positive numeric path parameter, responding
// with 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 ID 형식입니다")
		return 0, false
	}
	return uint(id), true
}

// 내보내기 컬럼 순서는 cmd/seed가 읽는 xlsx 구성과 같다
var exportHeaders = []string{
	"제목", "설명", "매물유형", "방구조", "임대유형", "보증금", "월세",
	"관리비", "면적", "층", "총층수", "주소", "상세주소", "경도", "위도",
	"구", "동", "주차", "엘리베이터", "입주가능일", "담당자", "담당자연락처",
}

func flagYN(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

// ExportProperties writes every listing to an xlsx download
// GET /api/v1/properties/export (admin)
func (ctrl *PropertyController) ExportProperties(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	properties, err := ctrl.propertyService.ListAll()
	if err != nil {
		log.Error("Failed to load properties for export", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "export properties")
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for i, p := range properties {
		values := []interface{}{
			p.Title,
			p.Description,
			string(p.PropertyType),
			string(p.RoomType),
			string(p.RentalType),
			p.Deposit,
			p.MonthlyRent,
			p.MaintenanceFee,
			p.Area,
			p.Floor,
			p.TotalFloors,
			p.Address,
			p.DetailAddress,
		}
		if p.Longitude != nil {
			values = append(values, *p.Longitude)
		} else {
			values = append(values, "")
		}
		if p.Latitude != nil {
			values = append(values, *p.Latitude)
		} else {
			values = append(values, "")
		}
		values = append(values, p.District, p.Neighborhood,
			flagYN(p.ParkingAvailable), flagYN(p.ElevatorAvailable))
		if p.AvailableFrom != nil {
			values = append(values, p.AvailableFrom.Format("2006-01-02"))
		} else {
			values = append(values, "")
		}
		values = append(values, p.ContactName, p.ContactPhone)

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Error("Failed to build xlsx export", err, nil)
		apperrors.InternalError(c, "내보내기 파일 생성에 실패했습니다")
		return
	}

	log.Info("Properties exported", map[string]interface{}{
		"count": len(properties),
	})

	filename := fmt.Sprintf("properties_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
