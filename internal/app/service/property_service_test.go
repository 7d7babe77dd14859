package service

import (
	"context"
	"testing"
	"time"

	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/internal/app/repository"
	"github.com/myhome/myhome-backend/internal/db"
	"github.com/myhome/myhome-backend/pkg/kakao"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeGeocoder returns a fixed geocoding result
type fakeGeocoder struct {
	coordResult   *kakao.CoordinateResult
	addressResult *kakao.AddressResult
}

func (f *fakeGeocoder) AddressToCoordinate(ctx context.Context, address string) *kakao.CoordinateResult {
	if f.coordResult != nil {
		return f.coordResult
	}
	return &kakao.CoordinateResult{Success: false}
}

func (f *fakeGeocoder) CoordinateToAddress(ctx context.Context, lat, lng float64) *kakao.AddressResult {
	if f.addressResult != nil {
		return f.addressResult
	}
	return &kakao.AddressResult{Success: false}
}

func setupPropertyServiceTest(t *testing.T, geocoder Geocoder) (PropertyService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	propertyRepo := repository.NewPropertyRepository(testDB)
	imageRepo := repository.NewPropertyImageRepository(testDB)
	historyRepo := repository.NewSearchHistoryRepository(testDB)
	svc := NewPropertyService(propertyRepo, imageRepo, historyRepo, geocoder)
	return svc, testDB
}

func validCreateInput() CreatePropertyInput {
	return CreatePropertyInput{
		Title:            "역삼동 신축 원룸",
		Description:      "풀옵션",
		PropertyType:     model.PropertyOneRoom,
		RoomType:         model.RoomOne,
		RentalType:       model.RentalMonthly,
		Deposit:          10000000,
		MonthlyRent:      500000,
		Area:             23.1,
		Floor:            3,
		TotalFloors:      5,
		Address:          "서울 강남구 역삼동 123-45",
		District:         "강남구",
		Neighborhood:     "역삼동",
		ParkingAvailable: true,
		ContactName:      "김중개",
		ContactPhone:     "02-1234-5678",
	}
}

func TestPropertyService_Create_Geocoded(t *testing.T) {
	geocoder := &fakeGeocoder{
		coordResult: &kakao.CoordinateResult{
			Success:   true,
			Latitude:  37.5002,
			Longitude: 127.0365,
			Address:   "서울 강남구 역삼동 123-45",
		},
	}
	svc, _ := setupPropertyServiceTest(t, geocoder)

	property, err := svc.Create(context.Background(), 1, validCreateInput())
	require.NoError(t, err)
	assert.NotZero(t, property.ID)
	require.True(t, property.HasCoordinate())
	assert.InDelta(t, 37.5002, *property.Latitude, 0.0001)
	assert.Equal(t, model.StatusAvailable, property.Status)
	assert.Equal(t, "강남구", property.District)
	assert.Equal(t, "역삼동", property.Neighborhood)
	assert.True(t, property.ParkingAvailable)
	assert.False(t, property.ElevatorAvailable)
	assert.Equal(t, "김중개", property.ContactName)
}

func TestPropertyService_Create_GeocodingFailure(t *testing.T) {
	// 지오코딩 실패 시 좌표 없이 등록된다
	svc, _ := setupPropertyServiceTest(t, &fakeGeocoder{})

	property, err := svc.Create(context.Background(), 1, validCreateInput())
	require.NoError(t, err)
	assert.Nil(t, property.Latitude)
	assert.Nil(t, property.Longitude)
}

func TestPropertyService_Create_ExplicitCoordinates(t *testing.T) {
	// 명시된 좌표가 있으면 지오코딩을 거치지 않는다
	svc, _ := setupPropertyServiceTest(t, &fakeGeocoder{})

	input := validCreateInput()
	lat, lng := 37.40, 127.11
	input.Latitude = &lat
	input.Longitude = &lng

	property, err := svc.Create(context.Background(), 1, input)
	require.NoError(t, err)
	require.True(t, property.HasCoordinate())
	assert.Equal(t, 37.40, *property.Latitude)
}

func TestPropertyService_Create_MissingRequired(t *testing.T) {
	svc, _ := setupPropertyServiceTest(t, &fakeGeocoder{})

	input := validCreateInput()
	input.Title = ""

	_, err := svc.Create(context.Background(), 1, input)
	assert.ErrorIs(t, err, ErrInvalidProperty)
}

func TestPropertyService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupPropertyServiceTest(t, &fakeGeocoder{})

	_, err := svc.GetByID(9999)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestPropertyService_Update_Partial(t *testing.T) {
	svc, _ := setupPropertyServiceTest(t, &fakeGeocoder{})

	property, err := svc.Create(context.Background(), 1, validCreateInput())
	require.NoError(t, err)

	newRent := int64(700000)
	elevator := true
	availableFrom := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(property.ID, 1, model.RoleUser, UpdatePropertyInput{
		MonthlyRent:       &newRent,
		ElevatorAvailable: &elevator,
		AvailableFrom:     &availableFrom,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(700000), updated.MonthlyRent)
	assert.True(t, updated.ElevatorAvailable)
	require.NotNil(t, updated.AvailableFrom)
	assert.True(t, availableFrom.Equal(*updated.AvailableFrom))
	// 다른 필드는 그대로 유지된다
	assert.Equal(t, property.Title, updated.Title)
	assert.Equal(t, property.Deposit, updated.Deposit)
	assert.Equal(t, "강남구", updated.District)
	assert.True(t, updated.ParkingAvailable)
}

func TestPropertyService_Update_NotOwner(t *testing.T) {
	svc, _ := setupPropertyServiceTest(t, &fakeGeocoder{})

	property, err := svc.Create(context.Background(), 1, validCreateInput())
	require.NoError(t, err)

	title := "변경된 제목"
	_, err = svc.Update(property.ID, 2, model.RoleUser, UpdatePropertyInput{Title: &title})
	assert.ErrorIs(t, err, ErrNotPropertyOwner)

	// 관리자는 소유자가 아니어도 수정할 수 있다
	updated, err := svc.Update(property.ID, 2, model.RoleAdmin, UpdatePropertyInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "변경된 제목", updated.Title)
}

func TestPropertyService_Delete(t *testing.T) {
	svc, testDB := setupPropertyServiceTest(t, &fakeGeocoder{})

	property, err := svc.Create(context.Background(), 1, validCreateInput())
	require.NoError(t, err)

	image := &model.PropertyImage{PropertyID: property.ID, ImageURL: "/uploads/a.jpg", ImageOrder: 1}
	require.NoError(t, testDB.Create(image).Error)

	err = svc.Delete(property.ID, 2, model.RoleUser)
	assert.ErrorIs(t, err, ErrNotPropertyOwner)

	require.NoError(t, svc.Delete(property.ID, 1, model.RoleUser))

	_, err = svc.GetByID(property.ID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	// 매물이 삭제되면 이미지도 함께 삭제된다
	var imageCount int64
	require.NoError(t, testDB.Model(&model.PropertyImage{}).Where("property_id = ?", property.ID).Count(&imageCount).Error)
	assert.Zero(t, imageCount)

	assert.ErrorIs(t, svc.Delete(9999, 1, model.RoleUser), ErrPropertyNotFound)
}

func TestPropertyService_List_RecordsRegionSearch(t *testing.T) {
	svc, testDB := setupPropertyServiceTest(t, &fakeGeocoder{})

	_, err := svc.Create(context.Background(), 1, validCreateInput())
	require.NoError(t, err)

	userID := uint(1)
	result, err := svc.List(&userID, repository.PropertyFilter{Region: "역삼동"}, repository.PropertyListOptions{})
	require.NoError(t, err)
	assert.Len(t, result.Properties, 1)

	var histories []model.SearchHistory
	require.NoError(t, testDB.Find(&histories).Error)
	require.Len(t, histories, 1)
	assert.Equal(t, model.SearchTypeFilter, histories[0].SearchType)
	assert.Equal(t, "역삼동", histories[0].Keyword)
	assert.Equal(t, 1, histories[0].ResultCount)
}

func TestPropertyService_List_ContradictoryRange(t *testing.T) {
	svc, _ := setupPropertyServiceTest(t, &fakeGeocoder{})

	_, err := svc.Create(context.Background(), 1, validCreateInput())
	require.NoError(t, err)

	// 모순된 범위 조건은 빈 페이지를 반환할 뿐 오류가 아니다
	min := int64(2000000)
	max := int64(100000)
	result, err := svc.List(nil, repository.PropertyFilter{
		MinMonthlyRent: &min,
		MaxMonthlyRent: &max,
	}, repository.PropertyListOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Properties)
	assert.Zero(t, result.Total)
}
