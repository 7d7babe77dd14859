package service

import (
	"context"
	"testing"

	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/internal/app/repository"
	"github.com/myhome/myhome-backend/internal/db"
	"github.com/myhome/myhome-backend/pkg/kakao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakePlaceSearcher returns fixed place results, or an error
type fakePlaceSearcher struct {
	keywordResult  *kakao.PlaceSearchResult
	categoryResult *kakao.PlaceSearchResult
	err            error
	lastCategory   string
	lastOpts       kakao.PlaceSearchOptions
}

func (f *fakePlaceSearcher) SearchByKeyword(ctx context.Context, query string, opts kakao.PlaceSearchOptions) (*kakao.PlaceSearchResult, error) {
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	if f.keywordResult != nil {
		return f.keywordResult, nil
	}
	return &kakao.PlaceSearchResult{Places: []kakao.Place{}}, nil
}

func (f *fakePlaceSearcher) SearchByCategory(ctx context.Context, category string, opts kakao.PlaceSearchOptions) (*kakao.PlaceSearchResult, error) {
	f.lastCategory = category
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	if f.categoryResult != nil {
		return f.categoryResult, nil
	}
	return &kakao.PlaceSearchResult{Places: []kakao.Place{}}, nil
}

func setupSearchServiceTest(t *testing.T, geocoder Geocoder, places PlaceSearcher) (SearchService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	propertyRepo := repository.NewPropertyRepository(testDB)
	historyRepo := repository.NewSearchHistoryRepository(testDB)
	svc := NewSearchService(propertyRepo, historyRepo, geocoder, places)
	return svc, testDB
}

func seedProperty(t *testing.T, testDB *gorm.DB, title string, lat, lng float64) *model.Property {
	t.Helper()
	property := &model.Property{
		Title:        title,
		PropertyType: model.PropertyOneRoom,
		RentalType:   model.RentalMonthly,
		Deposit:      10000000,
		Address:      "서울 강남구 역삼동 123-45",
		Latitude:     &lat,
		Longitude:    &lng,
		Status:       model.StatusAvailable,
		UserID:       1,
	}
	require.NoError(t, testDB.Create(property).Error)
	return property
}

func TestSearchService_SearchByAddress(t *testing.T) {
	geocoder := &fakeGeocoder{
		coordResult: &kakao.CoordinateResult{
			Success:   true,
			Latitude:  37.5663,
			Longitude: 126.9779,
			Address:   "서울 중구 태평로1가 31",
		},
	}
	svc, testDB := setupSearchServiceTest(t, geocoder, &fakePlaceSearcher{})

	seedProperty(t, testDB, "시청 인근 매물", 37.5670, 126.9785)
	seedProperty(t, testDB, "강남 매물", 37.4979, 127.0276)

	result, err := svc.SearchByAddress(context.Background(), nil, "서울시청", 3000)
	require.NoError(t, err)
	assert.True(t, result.Resolved)
	assert.Equal(t, 3000, result.Radius)
	require.Len(t, result.Properties, 1)
	assert.Equal(t, "시청 인근 매물", result.Properties[0].Title)
}

func TestSearchService_SearchByAddress_NotResolved(t *testing.T) {
	// 주소 해석 실패는 오류가 아니라 미해석 결과로 돌아온다
	svc, _ := setupSearchServiceTest(t, &fakeGeocoder{}, &fakePlaceSearcher{})

	result, err := svc.SearchByAddress(context.Background(), nil, "존재하지 않는 주소", 0)
	require.NoError(t, err)
	assert.False(t, result.Resolved)
	assert.Empty(t, result.Properties)
	assert.Equal(t, DefaultAddressRadius, result.Radius)
}

func TestSearchService_SearchNearby_DefaultRadius(t *testing.T) {
	svc, testDB := setupSearchServiceTest(t, &fakeGeocoder{}, &fakePlaceSearcher{})

	seedProperty(t, testDB, "반경 내 매물", 37.5010, 127.0400)

	properties, err := svc.SearchNearby(context.Background(), nil, 37.5002, 127.0365, 0)
	require.NoError(t, err)
	assert.Len(t, properties, 1)
}

func TestSearchService_SearchNearSubway(t *testing.T) {
	lat, lng := 37.4979, 127.0276
	places := &fakePlaceSearcher{
		categoryResult: &kakao.PlaceSearchResult{
			Places: []kakao.Place{
				{ID: "1", Name: "강남역 2호선", Latitude: 37.4979, Longitude: 127.0276},
			},
			TotalCount: 1,
			IsEnd:      true,
		},
	}
	svc, testDB := setupSearchServiceTest(t, &fakeGeocoder{}, places)

	seedProperty(t, testDB, "강남역 인근 매물", 37.4985, 127.0280)

	result, err := svc.SearchNearSubway(context.Background(), nil, lat, lng, 1000)
	require.NoError(t, err)
	assert.Equal(t, kakao.CategorySubwayStation, places.lastCategory)
	require.Len(t, result.Stations, 1)
	require.Len(t, result.Properties, 1)
	assert.Equal(t, "강남역 인근 매물", result.Properties[0].Title)
}

func TestSearchService_SearchNearSubway_NoStations(t *testing.T) {
	// 주변에 역이 없으면 매물이 있어도 빈 결과를 반환한다
	svc, testDB := setupSearchServiceTest(t, &fakeGeocoder{}, &fakePlaceSearcher{})

	seedProperty(t, testDB, "역 없는 동네 매물", 37.4985, 127.0280)

	result, err := svc.SearchNearSubway(context.Background(), nil, 37.4979, 127.0276, 1000)
	require.NoError(t, err)
	assert.Empty(t, result.Stations)
	assert.Empty(t, result.Properties)
}

func TestSearchService_SearchNearSubway_ProviderError(t *testing.T) {
	// 장소 검색 실패는 그대로 오류로 전파된다
	places := &fakePlaceSearcher{err: kakao.ErrAPIError}
	svc, _ := setupSearchServiceTest(t, &fakeGeocoder{}, places)

	_, err := svc.SearchNearSubway(context.Background(), nil, 37.4979, 127.0276, 1000)
	assert.ErrorIs(t, err, kakao.ErrAPIError)
}

func TestSearchService_RecordsHistory(t *testing.T) {
	geocoder := &fakeGeocoder{
		coordResult: &kakao.CoordinateResult{Success: true, Latitude: 37.5, Longitude: 127.0},
	}
	svc, testDB := setupSearchServiceTest(t, geocoder, &fakePlaceSearcher{})

	userID := uint(7)
	_, err := svc.SearchByAddress(context.Background(), &userID, "서울 강남구", 3000)
	require.NoError(t, err)

	_, err = svc.SearchNearby(context.Background(), nil, 37.5, 127.0, 5000)
	require.NoError(t, err)

	var histories []model.SearchHistory
	require.NoError(t, testDB.Order("id ASC").Find(&histories).Error)
	require.Len(t, histories, 2)
	assert.Equal(t, model.SearchTypeAddress, histories[0].SearchType)
	assert.Equal(t, uint(7), *histories[0].UserID)
	assert.Equal(t, model.SearchTypeNearby, histories[1].SearchType)
	assert.Nil(t, histories[1].UserID)
}

func TestSearchService_GetRecentSearches(t *testing.T) {
	svc, testDB := setupSearchServiceTest(t, &fakeGeocoder{}, &fakePlaceSearcher{})

	userID := uint(1)
	for i := 0; i < 3; i++ {
		require.NoError(t, testDB.Create(&model.SearchHistory{
			UserID:     &userID,
			SearchType: model.SearchTypeKeyword,
			Keyword:    "강남역",
		}).Error)
	}

	histories, err := svc.GetRecentSearches(1, 10)
	require.NoError(t, err)
	assert.Len(t, histories, 3)
}

func TestSearchService_SearchNearbyPlaces_DefaultCategory(t *testing.T) {
	places := &fakePlaceSearcher{}
	svc, _ := setupSearchServiceTest(t, &fakeGeocoder{}, places)

	_, err := svc.SearchNearbyPlaces(context.Background(), "", 37.5, 127.0, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, kakao.CategoryMart, places.lastCategory)
	assert.Equal(t, DefaultSubwayRadius, places.lastOpts.Radius)
}
