package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func setupAuthControllerTest(t *testing.T) (*gin.Engine, service.AuthService) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(
		userRepo,
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)

	ctrl := NewAuthController(authService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	router.POST("/register", ctrl.Register)
	router.POST("/login", ctrl.Login)
	router.POST("/refresh", ctrl.RefreshToken)
	router.GET("/me", authMiddleware.Authenticate(), ctrl.GetProfile)
	router.PUT("/me", authMiddleware.Authenticate(), ctrl.UpdateProfile)

	return router, authService
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Register_Success(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(router, "/register", RegisterRequest{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
		Phone:    "010-1234-5678",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "User registered successfully", response["message"])
	assert.NotNil(t, response["user"])
	assert.NotNil(t, response["tokens"])
}

func TestAuthController_Register_InvalidEmail(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(router, "/register", RegisterRequest{
		Email:    "invalid-email",
		Password: "password123",
		Name:     "Test User",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("test@example.com", "password123", "Test User", "010-1234-5678")
	require.NoError(t, err)

	w := postJSON(router, "/register", RegisterRequest{
		Email:    "test@example.com",
		Password: "password456",
		Name:     "Another User",
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "AUTH_EMAIL_EXISTS", response["error"])
}

func TestAuthController_Login_Success(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("login@example.com", "password123", "Login User", "")
	require.NoError(t, err)

	w := postJSON(router, "/login", LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotNil(t, response["tokens"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, _, err := authService.Register("login@example.com", "password123", "Login User", "")
	require.NoError(t, err)

	w := postJSON(router, "/login", LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_RefreshToken_Success(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, tokens, err := authService.Register("refresh@example.com", "password123", "Refresh User", "")
	require.NoError(t, err)

	w := postJSON(router, "/refresh", RefreshTokenRequest{
		RefreshToken: tokens.RefreshToken,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotNil(t, response["tokens"])
}

func TestAuthController_RefreshToken_Invalid(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	w := postJSON(router, "/refresh", RefreshTokenRequest{
		RefreshToken: "not-a-token",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_GetProfile(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, tokens, err := authService.Register("me@example.com", "password123", "Me User", "")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	user := response["user"].(map[string]interface{})
	assert.Equal(t, "me@example.com", user["email"])
}

func TestAuthController_GetProfile_NoToken(t *testing.T) {
	router, _ := setupAuthControllerTest(t)

	req := httptest.NewRequest("GET", "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_UpdateProfile(t *testing.T) {
	router, authService := setupAuthControllerTest(t)

	_, tokens, err := authService.Register("update@example.com", "password123", "Old Name", "")
	require.NoError(t, err)

	newName := "New Name"
	data, _ := json.Marshal(UpdateProfileRequest{Name: &newName})
	req := httptest.NewRequest("PUT", "/me", bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	user := response["user"].(map[string]interface{})
	assert.Equal(t, "New Name", user["name"])
}

func setupUserAdminTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(
		userRepo,
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)

	ctrl := NewAuthController(authService)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	users := router.Group("/users",
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(string(model.RoleAdmin)),
	)
	users.GET("", ctrl.ListUsers)
	users.GET("/:id", ctrl.GetUser)
	users.PATCH("/:id", ctrl.UpdateUser)
	users.DELETE("/:id", ctrl.DeleteUser)

	return router, testDB
}

func TestAuthController_AdminListAndGetUsers(t *testing.T) {
	router, testDB := setupUserAdminTest(t)

	_, adminToken := createTestUser(t, testDB, "admin@example.com", model.RoleAdmin)
	member, _ := createTestUser(t, testDB, "member@example.com", model.RoleUser)

	w := doJSON(router, "GET", "/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var listResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResponse))
	assert.Equal(t, float64(2), listResponse["total"])
	assert.Len(t, listResponse["users"], 2)

	w = doJSON(router, "GET", fmt.Sprintf("/users/%d", member.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var getResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &getResponse))
	user := getResponse["user"].(map[string]interface{})
	assert.Equal(t, "member@example.com", user["email"])
}

func TestAuthController_AdminUpdateAndDeleteUser(t *testing.T) {
	router, testDB := setupUserAdminTest(t)

	_, adminToken := createTestUser(t, testDB, "admin@example.com", model.RoleAdmin)
	member, _ := createTestUser(t, testDB, "member@example.com", model.RoleUser)

	newName := "변경된 이름"
	w := doJSON(router, "PATCH", fmt.Sprintf("/users/%d", member.ID), adminToken, UpdateProfileRequest{Name: &newName})
	assert.Equal(t, http.StatusOK, w.Code)

	var updateResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updateResponse))
	user := updateResponse["user"].(map[string]interface{})
	assert.Equal(t, "변경된 이름", user["name"])

	w = doJSON(router, "DELETE", fmt.Sprintf("/users/%d", member.ID), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, "GET", fmt.Sprintf("/users/%d", member.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 이미 삭제된 사용자 재삭제
	w = doJSON(router, "DELETE", fmt.Sprintf("/users/%d", member.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthController_AdminEndpoints_ForbiddenForUser(t *testing.T) {
	router, testDB := setupUserAdminTest(t)

	_, memberToken := createTestUser(t, testDB, "member@example.com", model.RoleUser)

	w := doJSON(router, "GET", "/users", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
