package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/myhome/myhome-backend/internal/app/service"
	apperrors "github.com/myhome/myhome-backend/internal/errors"
	"github.com/myhome/myhome-backend/internal/middleware"
	"github.com/myhome/myhome-backend/pkg/kakao"
)

type SearchController struct {
	searchService service.SearchService
}

func NewSearchController(searchService service.SearchService) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

type AddressSearchQuery struct {
	Address string `form:"address" binding:"required"`
	Radius  int    `form:"radius"`
}

type NearbySearchQuery struct {
	Latitude  float64 `form:"lat" binding:"required"`
	Longitude float64 `form:"lng" binding:"required"`
	Radius    int     `form:"radius"`
}

type PlaceSearchQuery struct {
	Keyword  string `form:"keyword" binding:"required"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	Size     int    `form:"size"`
}

type NearbyPlaceQuery struct {
	Latitude  float64 `form:"lat" binding:"required"`
	Longitude float64 `form:"lng" binding:"required"`
	Category  string  `form:"category"`
	Radius    int     `form:"radius"`
	Page      int     `form:"page"`
	Size      int     `form:"size"`
}

func parsePositiveInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, errors.New("invalid positive integer")
	}
	return v, nil
}

// optionalUserID picks up the user from an optional auth middleware.
// Anonymous searches are allowed and recorded without a user.
func optionalUserID(c *gin.Context) *uint {
	if id, exists := middleware.GetUserID(c); exists {
		return &id
	}
	return nil
}

// SearchByAddress geocodes an address and returns properties around it
// GET /api/v1/search/address
func (ctrl *SearchController) SearchByAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var query AddressSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.Warn("Invalid address search query", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "검색할 주소를 입력해주세요")
		return
	}

	result, err := ctrl.searchService.SearchByAddress(c.Request.Context(), optionalUserID(c), query.Address, query.Radius)
	if err != nil {
		log.Error("Address search failed", err, map[string]interface{}{
			"address": query.Address,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search by address")
		return
	}

	if !result.Resolved {
		log.Warn("Address could not be resolved", map[string]interface{}{
			"address": query.Address,
		})
		apperrors.NotFound(c, apperrors.SearchAddressNotFound, "주소를 찾을 수 없습니다")
		return
	}

	log.Info("Address search completed", map[string]interface{}{
		"address": query.Address,
		"count":   len(result.Properties),
	})

	c.JSON(http.StatusOK, gin.H{
		"address":    result.Address,
		"latitude":   result.Latitude,
		"longitude":  result.Longitude,
		"radius":     result.Radius,
		"properties": result.Properties,
		"count":      len(result.Properties),
	})
}

// SearchNearby returns properties around a coordinate, nearest first
// GET /api/v1/search/nearby
func (ctrl *SearchController) SearchNearby(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var query NearbySearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.Warn("Invalid nearby search query", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "좌표 정보가 올바르지 않습니다")
		return
	}

	properties, err := ctrl.searchService.SearchNearby(c.Request.Context(), optionalUserID(c), query.Latitude, query.Longitude, query.Radius)
	if err != nil {
		log.Error("Nearby search failed", err, map[string]interface{}{
			"latitude":  query.Latitude,
			"longitude": query.Longitude,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search nearby")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// SearchNearSubway returns subway stations near a point and the
// properties around it
// GET /api/v1/search/subway
func (ctrl *SearchController) SearchNearSubway(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var query NearbySearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.Warn("Invalid subway search query", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "좌표 정보가 올바르지 않습니다")
		return
	}

	result, err := ctrl.searchService.SearchNearSubway(c.Request.Context(), optionalUserID(c), query.Latitude, query.Longitude, query.Radius)
	if err != nil {
		if errors.Is(err, kakao.ErrAPIError) || errors.Is(err, kakao.ErrRequestFailed) {
			log.Error("Subway station lookup failed", err, map[string]interface{}{
				"latitude":  query.Latitude,
				"longitude": query.Longitude,
			})
			apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.SearchFailed, "역세권 검색에 실패했습니다. 잠시 후 다시 시도해주세요")
			return
		}
		log.Error("Subway search failed", err, map[string]interface{}{
			"latitude":  query.Latitude,
			"longitude": query.Longitude,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "search near subway")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stations":   result.Stations,
		"properties": result.Properties,
		"count":      len(result.Properties),
	})
}

// SearchPlaces searches places by keyword via the place provider
// GET /api/v1/search/places
func (ctrl *SearchController) SearchPlaces(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var query PlaceSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.Warn("Invalid place search query", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "검색어를 입력해주세요")
		return
	}

	result, err := ctrl.searchService.SearchPlaces(c.Request.Context(), query.Keyword, query.Category, query.Page, query.Size)
	if err != nil {
		if errors.Is(err, kakao.ErrEmptyQuery) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "검색어를 입력해주세요")
			return
		}
		log.Error("Place search failed", err, map[string]interface{}{
			"keyword": query.Keyword,
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.SearchFailed, "장소 검색에 실패했습니다. 잠시 후 다시 시도해주세요")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"places":      result.Places,
		"total_count": result.TotalCount,
		"is_end":      result.IsEnd,
	})
}

// SearchNearbyPlaces finds amenities of a category around a point
// GET /api/v1/search/places/nearby
func (ctrl *SearchController) SearchNearbyPlaces(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var query NearbyPlaceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.Warn("Invalid nearby place query", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "좌표 정보가 올바르지 않습니다")
		return
	}

	result, err := ctrl.searchService.SearchNearbyPlaces(c.Request.Context(), query.Category, query.Latitude, query.Longitude, query.Radius, query.Page, query.Size)
	if err != nil {
		log.Error("Nearby place search failed", err, map[string]interface{}{
			"category":  query.Category,
			"latitude":  query.Latitude,
			"longitude": query.Longitude,
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.SearchFailed, "장소 검색에 실패했습니다. 잠시 후 다시 시도해주세요")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"places":      result.Places,
		"total_count": result.TotalCount,
		"is_end":      result.IsEnd,
	})
}

// GetRecentSearches returns the authenticated user's recent searches
// GET /api/v1/search/history
func (ctrl *SearchController) GetRecentSearches(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized search history access attempt", nil)
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := parsePositiveInt(limitStr)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "limit 값이 올바르지 않습니다")
			return
		}
		limit = parsed
	}

	histories, err := ctrl.searchService.GetRecentSearches(userID, limit)
	if err != nil {
		log.Error("Failed to fetch search history", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get search history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"histories": histories,
		"count":     len(histories),
	})
}

// GetPopularKeywords returns the most searched keywords
// GET /api/v1/search/popular
func (ctrl *SearchController) GetPopularKeywords(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	days := 0
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := parsePositiveInt(daysStr)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "days 값이 올바르지 않습니다")
			return
		}
		days = parsed
	}
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := parsePositiveInt(limitStr)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "limit 값이 올바르지 않습니다")
			return
		}
		limit = parsed
	}

	keywords, err := ctrl.searchService.GetPopularKeywords(days, limit)
	if err != nil {
		log.Error("Failed to fetch popular keywords", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get popular keywords")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"keywords": keywords,
	})
}

type GeocodeQuery struct {
	Address string `form:"address" binding:"required"`
}

// GeocodeAddress converts an address to a coordinate
// GET /api/v1/search/geocode
func (ctrl *SearchController) GeocodeAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var query GeocodeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "변환할 주소를 입력해주세요")
		return
	}

	result := ctrl.searchService.GeocodeAddress(c.Request.Context(), query.Address)
	if !result.Success {
		log.Warn("Address could not be geocoded", map[string]interface{}{
			"address": query.Address,
		})
		apperrors.NotFound(c, apperrors.SearchAddressNotFound, "주소를 찾을 수 없습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":      result.Address,
		"road_address": result.RoadAddress,
		"latitude":     result.Latitude,
		"longitude":    result.Longitude,
	})
}

// ReverseGeocode converts a coordinate to jibun/road addresses
// GET /api/v1/search/reverse-geocode
func (ctrl *SearchController) ReverseGeocode(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var query NearbySearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "변환할 좌표를 입력해주세요")
		return
	}

	result := ctrl.searchService.ReverseGeocode(c.Request.Context(), query.Latitude, query.Longitude)
	if !result.Success {
		log.Warn("Coordinate could not be reverse geocoded", map[string]interface{}{
			"lat": query.Latitude,
			"lng": query.Longitude,
		})
		apperrors.NotFound(c, apperrors.SearchAddressNotFound, "해당 좌표의 주소를 찾을 수 없습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":      result.Address,
		"road_address": result.RoadAddress,
	})
}
