package service

import (
	"context"
	"time"

	"github.com/myhome/myhome-backend/pkg/kakao"
	"github.com/myhome/myhome-backend/pkg/logger"
	"github.com/myhome/myhome-backend/pkg/redis"
)

// Geocoder converts between addresses and coordinates. Lookups never
// fail hard; an unresolvable input yields an unsuccessful result.
type Geocoder interface {
	AddressToCoordinate(ctx context.Context, address string) *kakao.CoordinateResult
	CoordinateToAddress(ctx context.Context, latitude, longitude float64) *kakao.AddressResult
}

// PlaceSearcher finds places by keyword or category. Transport
// failures are returned as errors.
type PlaceSearcher interface {
	SearchByKeyword(ctx context.Context, query string, opts kakao.PlaceSearchOptions) (*kakao.PlaceSearchResult, error)
	SearchByCategory(ctx context.Context, category string, opts kakao.PlaceSearchOptions) (*kakao.PlaceSearchResult, error)
}

// CachedGeocoder wraps a Geocoder with a Redis cache for forward
// lookups. Cache failures fall through to the underlying geocoder.
type CachedGeocoder struct {
	inner Geocoder
	ttl   time.Duration
}

func NewCachedGeocoder(inner Geocoder, ttl time.Duration) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, ttl: ttl}
}

func (g *CachedGeocoder) AddressToCoordinate(ctx context.Context, address string) *kakao.CoordinateResult {
	if cached, err := redis.GetCachedCoordinate(ctx, address); err == nil && cached != nil {
		logger.Debug("Geocode cache hit", map[string]interface{}{
			"address": address,
		})
		return &kakao.CoordinateResult{
			Success:   true,
			Latitude:  cached.Latitude,
			Longitude: cached.Longitude,
			Address:   cached.Address,
		}
	}

	result := g.inner.AddressToCoordinate(ctx, address)
	if result.Success {
		// 성공한 결과만 캐싱한다
		_ = redis.CacheCoordinate(ctx, address, redis.CachedCoordinate{
			Latitude:  result.Latitude,
			Longitude: result.Longitude,
			Address:   result.Address,
		}, g.ttl)
	}
	return result
}

func (g *CachedGeocoder) CoordinateToAddress(ctx context.Context, latitude, longitude float64) *kakao.AddressResult {
	return g.inner.CoordinateToAddress(ctx, latitude, longitude)
}
