package service

import (
	"context"
	"time"

	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/internal/app/repository"
	"github.com/myhome/myhome-backend/pkg/kakao"
	"github.com/myhome/myhome-backend/pkg/logger"
)

// 검색 기본 반경 (미터)
const (
	DefaultNearbyRadius  = 5000
	DefaultAddressRadius = 3000
	DefaultSubwayRadius  = 1000
	MaxSearchRadius      = 20000
)

// AddressSearchResult is the outcome of an address-based search.
// Resolved is false when the address could not be geocoded; the
// caller decides how to present that.
type AddressSearchResult struct {
	Resolved   bool                              `json:"resolved"`
	Address    string                            `json:"address,omitempty"`
	Latitude   float64                           `json:"latitude,omitempty"`
	Longitude  float64                           `json:"longitude,omitempty"`
	Radius     int                               `json:"radius"`
	Properties []repository.PropertyWithDistance `json:"properties"`
}

// SubwaySearchResult pairs nearby subway stations with the properties
// around the searched point.
type SubwaySearchResult struct {
	Stations   []kakao.Place                     `json:"stations"`
	Properties []repository.PropertyWithDistance `json:"properties"`
}

type SearchService interface {
	SearchByAddress(ctx context.Context, userID *uint, address string, radiusMeters int) (*AddressSearchResult, error)
	SearchNearby(ctx context.Context, userID *uint, lat, lng float64, radiusMeters int) ([]repository.PropertyWithDistance, error)
	SearchNearSubway(ctx context.Context, userID *uint, lat, lng float64, radiusMeters int) (*SubwaySearchResult, error)
	SearchPlaces(ctx context.Context, keyword string, category string, page, size int) (*kakao.PlaceSearchResult, error)
	SearchNearbyPlaces(ctx context.Context, category string, lat, lng float64, radiusMeters, page, size int) (*kakao.PlaceSearchResult, error)
	GeocodeAddress(ctx context.Context, address string) *kakao.CoordinateResult
	ReverseGeocode(ctx context.Context, lat, lng float64) *kakao.AddressResult
	GetRecentSearches(userID uint, limit int) ([]model.SearchHistory, error)
	GetPopularKeywords(days, limit int) ([]repository.KeywordCount, error)
}

type searchService struct {
	propertyRepo repository.PropertyRepository
	historyRepo  repository.SearchHistoryRepository
	geocoder     Geocoder
	places       PlaceSearcher
}

func NewSearchService(
	propertyRepo repository.PropertyRepository,
	historyRepo repository.SearchHistoryRepository,
	geocoder Geocoder,
	places PlaceSearcher,
) SearchService {
	return &searchService{
		propertyRepo: propertyRepo,
		historyRepo:  historyRepo,
		geocoder:     geocoder,
		places:       places,
	}
}

func normalizeRadius(radiusMeters, fallback int) int {
	if radiusMeters <= 0 {
		return fallback
	}
	if radiusMeters > MaxSearchRadius {
		return MaxSearchRadius
	}
	return radiusMeters
}

// SearchByAddress geocodes the address and finds properties around it.
// An unresolvable address yields Resolved=false, not an error.
func (s *searchService) SearchByAddress(ctx context.Context, userID *uint, address string, radiusMeters int) (*AddressSearchResult, error) {
	radius := normalizeRadius(radiusMeters, DefaultAddressRadius)

	logger.Info("Searching properties by address", map[string]interface{}{
		"address": address,
		"radius":  radius,
	})

	coord := s.geocoder.AddressToCoordinate(ctx, address)
	if !coord.Success {
		logger.Warn("Address could not be resolved", map[string]interface{}{
			"address": address,
		})
		s.recordHistory(userID, model.SearchTypeAddress, address, nil, nil, radius, 0)
		return &AddressSearchResult{Resolved: false, Radius: radius}, nil
	}

	properties, err := s.propertyRepo.FindNearby(coord.Latitude, coord.Longitude, radius)
	if err != nil {
		return nil, err
	}

	s.recordHistory(userID, model.SearchTypeAddress, address, &coord.Latitude, &coord.Longitude, radius, len(properties))

	return &AddressSearchResult{
		Resolved:   true,
		Address:    coord.Address,
		Latitude:   coord.Latitude,
		Longitude:  coord.Longitude,
		Radius:     radius,
		Properties: properties,
	}, nil
}

func (s *searchService) SearchNearby(ctx context.Context, userID *uint, lat, lng float64, radiusMeters int) ([]repository.PropertyWithDistance, error) {
	radius := normalizeRadius(radiusMeters, DefaultNearbyRadius)

	properties, err := s.propertyRepo.FindNearby(lat, lng, radius)
	if err != nil {
		return nil, err
	}

	s.recordHistory(userID, model.SearchTypeNearby, "", &lat, &lng, radius, len(properties))
	return properties, nil
}

// SearchNearSubway checks for subway stations around the point and, if
// any exist, finds properties around the same point. The station
// lookup is a presence gate: the property search is not re-centered on
// the station.
func (s *searchService) SearchNearSubway(ctx context.Context, userID *uint, lat, lng float64, radiusMeters int) (*SubwaySearchResult, error) {
	radius := normalizeRadius(radiusMeters, DefaultSubwayRadius)

	logger.Info("Searching properties near subway", map[string]interface{}{
		"latitude":  lat,
		"longitude": lng,
		"radius":    radius,
	})

	stations, err := s.places.SearchByCategory(ctx, kakao.CategorySubwayStation, kakao.PlaceSearchOptions{
		Latitude:  &lat,
		Longitude: &lng,
		Radius:    radius,
	})
	if err != nil {
		logger.Error("Subway station lookup failed", err, map[string]interface{}{
			"latitude":  lat,
			"longitude": lng,
		})
		return nil, err
	}

	if len(stations.Places) == 0 {
		// 주변에 지하철역이 없으면 빈 결과가 정상 응답이다
		logger.Debug("No subway stations nearby", map[string]interface{}{
			"latitude":  lat,
			"longitude": lng,
		})
		s.recordHistory(userID, model.SearchTypeSubway, "", &lat, &lng, radius, 0)
		return &SubwaySearchResult{
			Stations:   []kakao.Place{},
			Properties: []repository.PropertyWithDistance{},
		}, nil
	}

	properties, err := s.propertyRepo.FindNearby(lat, lng, radius)
	if err != nil {
		return nil, err
	}

	s.recordHistory(userID, model.SearchTypeSubway, "", &lat, &lng, radius, len(properties))

	return &SubwaySearchResult{
		Stations:   stations.Places,
		Properties: properties,
	}, nil
}

// SearchPlaces passes a keyword search through to the place provider
func (s *searchService) SearchPlaces(ctx context.Context, keyword string, category string, page, size int) (*kakao.PlaceSearchResult, error) {
	result, err := s.places.SearchByKeyword(ctx, keyword, kakao.PlaceSearchOptions{
		Category: category,
		Page:     page,
		Size:     size,
	})
	if err != nil {
		return nil, err
	}

	s.recordHistory(nil, model.SearchTypeKeyword, keyword, nil, nil, 0, len(result.Places))
	return result, nil
}

// SearchNearbyPlaces finds amenities of a category around a point
func (s *searchService) SearchNearbyPlaces(ctx context.Context, category string, lat, lng float64, radiusMeters, page, size int) (*kakao.PlaceSearchResult, error) {
	if category == "" {
		category = kakao.CategoryMart
	}
	radius := normalizeRadius(radiusMeters, DefaultSubwayRadius)

	return s.places.SearchByCategory(ctx, category, kakao.PlaceSearchOptions{
		Latitude:  &lat,
		Longitude: &lng,
		Radius:    radius,
		Page:      page,
		Size:      size,
	})
}

// GeocodeAddress exposes the forward geocoder. An unresolvable
// address yields Success=false, never an error.
func (s *searchService) GeocodeAddress(ctx context.Context, address string) *kakao.CoordinateResult {
	return s.geocoder.AddressToCoordinate(ctx, address)
}

// ReverseGeocode resolves a coordinate to its jibun/road addresses.
func (s *searchService) ReverseGeocode(ctx context.Context, lat, lng float64) *kakao.AddressResult {
	return s.geocoder.CoordinateToAddress(ctx, lat, lng)
}

func (s *searchService) GetRecentSearches(userID uint, limit int) ([]model.SearchHistory, error) {
	return s.historyRepo.FindRecentByUserID(userID, limit)
}

func (s *searchService) GetPopularKeywords(days, limit int) ([]repository.KeywordCount, error) {
	if days < 1 {
		days = 7
	}
	return s.historyRepo.TopKeywords(time.Now().AddDate(0, 0, -days), limit)
}

func (s *searchService) recordHistory(userID *uint, searchType model.SearchType, keyword string, lat, lng *float64, radius, resultCount int) {
	history := &model.SearchHistory{
		UserID:      userID,
		SearchType:  searchType,
		Keyword:     keyword,
		Latitude:    lat,
		Longitude:   lng,
		Radius:      radius,
		ResultCount: resultCount,
	}
	// 이력 기록 실패가 검색 자체를 실패시키지는 않는다
	if err := s.historyRepo.Create(history); err != nil {
		logger.Warn("Failed to record search history", map[string]interface{}{
			"search_type": searchType,
		})
	}
}
