package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/internal/app/repository"
	"github.com/myhome/myhome-backend/internal/app/service"
	"github.com/myhome/myhome-backend/internal/db"
	"github.com/myhome/myhome-backend/internal/middleware"
)

func setupBookmarkControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	bookmarkRepo := repository.NewBookmarkRepository(testDB)
	propertyRepo := repository.NewPropertyRepository(testDB)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, propertyRepo)

	ctrl := NewBookmarkController(bookmarkService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	bookmarks := router.Group("/bookmarks")
	bookmarks.Use(authMiddleware.Authenticate())
	{
		bookmarks.GET("", ctrl.GetBookmarks)
		bookmarks.POST("", ctrl.AddBookmark)
		bookmarks.GET("/:property_id/status", ctrl.GetBookmarkStatus)
		bookmarks.DELETE("/:id", ctrl.RemoveBookmarkByID)
		bookmarks.DELETE("/properties/:property_id", ctrl.RemoveBookmark)
	}

	return router, testDB
}

func createBookmarkProperty(t *testing.T, testDB *gorm.DB, ownerID uint) *model.Property {
	property := &model.Property{
		Title:        "찜 테스트 매물",
		PropertyType: model.PropertyOneRoom,
		RentalType:   model.RentalMonthly,
		Deposit:      5000000,
		MonthlyRent:  500000,
		Address:      "서울 강남구 역삼동 123-45",
		Status:       model.StatusAvailable,
		UserID:       ownerID,
	}
	require.NoError(t, testDB.Create(property).Error)
	return property
}

func TestBookmarkController_AddAndDuplicate(t *testing.T) {
	router, testDB := setupBookmarkControllerTest(t)
	owner, _ := createTestUser(t, testDB, "owner@example.com", model.RoleUser)
	_, token := createTestUser(t, testDB, "user@example.com", model.RoleUser)
	property := createBookmarkProperty(t, testDB, owner.ID)

	w := doJSON(router, "POST", "/bookmarks", token, AddBookmarkRequest{PropertyID: property.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	// 같은 매물을 다시 찜하면 409
	w = doJSON(router, "POST", "/bookmarks", token, AddBookmarkRequest{PropertyID: property.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "BOOKMARK_ALREADY_EXISTS", response["error"])
	assert.Equal(t, "이미 찜한 매물입니다", response["message"])
}

func TestBookmarkController_Add_PropertyNotFound(t *testing.T) {
	router, testDB := setupBookmarkControllerTest(t)
	_, token := createTestUser(t, testDB, "user@example.com", model.RoleUser)

	w := doJSON(router, "POST", "/bookmarks", token, AddBookmarkRequest{PropertyID: 9999})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookmarkController_List(t *testing.T) {
	router, testDB := setupBookmarkControllerTest(t)
	owner, _ := createTestUser(t, testDB, "owner@example.com", model.RoleUser)
	_, token := createTestUser(t, testDB, "user@example.com", model.RoleUser)

	first := createBookmarkProperty(t, testDB, owner.ID)
	second := createBookmarkProperty(t, testDB, owner.ID)

	for _, p := range []*model.Property{first, second} {
		w := doJSON(router, "POST", "/bookmarks", token, AddBookmarkRequest{PropertyID: p.ID})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(router, "GET", "/bookmarks", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["count"])

	bookmarks := response["bookmarks"].([]interface{})
	entry := bookmarks[0].(map[string]interface{})
	assert.NotNil(t, entry["property"])
}

func TestBookmarkController_Remove(t *testing.T) {
	router, testDB := setupBookmarkControllerTest(t)
	owner, _ := createTestUser(t, testDB, "owner@example.com", model.RoleUser)
	_, token := createTestUser(t, testDB, "user@example.com", model.RoleUser)
	property := createBookmarkProperty(t, testDB, owner.ID)

	w := doJSON(router, "POST", "/bookmarks", token, AddBookmarkRequest{PropertyID: property.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "DELETE", fmt.Sprintf("/bookmarks/properties/%d", property.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// 이미 해제된 찜은 404
	w = doJSON(router, "DELETE", fmt.Sprintf("/bookmarks/properties/%d", property.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookmarkController_RemoveByID(t *testing.T) {
	router, testDB := setupBookmarkControllerTest(t)
	owner, _ := createTestUser(t, testDB, "owner@example.com", model.RoleUser)
	_, token := createTestUser(t, testDB, "user@example.com", model.RoleUser)
	_, otherToken := createTestUser(t, testDB, "other@example.com", model.RoleUser)
	property := createBookmarkProperty(t, testDB, owner.ID)

	w := doJSON(router, "POST", "/bookmarks", token, AddBookmarkRequest{PropertyID: property.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	bookmarkID := uint(created["bookmark"].(map[string]interface{})["id"].(float64))

	// 다른 사용자의 찜은 삭제할 수 없다
	w = doJSON(router, "DELETE", fmt.Sprintf("/bookmarks/%d", bookmarkID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, "DELETE", fmt.Sprintf("/bookmarks/%d", bookmarkID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// 이미 삭제된 찜은 404
	w = doJSON(router, "DELETE", fmt.Sprintf("/bookmarks/%d", bookmarkID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookmarkController_Status(t *testing.T) {
	router, testDB := setupBookmarkControllerTest(t)
	owner, _ := createTestUser(t, testDB, "owner@example.com", model.RoleUser)
	_, token := createTestUser(t, testDB, "user@example.com", model.RoleUser)
	property := createBookmarkProperty(t, testDB, owner.ID)

	w := doJSON(router, "GET", fmt.Sprintf("/bookmarks/%d/status", property.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["bookmarked"])
	assert.Equal(t, float64(0), response["count"])

	w = doJSON(router, "POST", "/bookmarks", token, AddBookmarkRequest{PropertyID: property.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "GET", fmt.Sprintf("/bookmarks/%d/status", property.ID), token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["bookmarked"])
	assert.Equal(t, float64(1), response["count"])
}

func TestBookmarkController_Unauthenticated(t *testing.T) {
	router, _ := setupBookmarkControllerTest(t)

	w := doJSON(router, "GET", "/bookmarks", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
