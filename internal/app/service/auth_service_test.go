package service

import (
	"testing"
	"time"

	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/internal/app/repository"
	"github.com/myhome/myhome-backend/internal/db"
	"github.com/myhome/myhome-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, testJWTSecret, 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	tests := []struct {
		name     string
		email    string
		password string
		userName string
		phone    string
		wantErr  error
	}{
		{
			name:     "Valid registration",
			email:    "test@example.com",
			password: "password123",
			userName: "테스트 사용자",
			phone:    "01012345678",
			wantErr:  nil,
		},
		{
			name:     "Duplicate email",
			email:    "test@example.com",
			password: "password456",
			userName: "다른 사용자",
			phone:    "01087654321",
			wantErr:  ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Register(tt.email, tt.password, tt.userName, tt.phone)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, user.ID)
			assert.Equal(t, model.RoleUser, user.Role)
			assert.NotEqual(t, tt.password, user.PasswordHash)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register("login@example.com", "password123", "사용자", "")
	require.NoError(t, err)

	t.Run("Valid login", func(t *testing.T) {
		user, tokens, err := authService.Login("login@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "login@example.com", user.Email)

		claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, err := authService.Login("login@example.com", "wrongpassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, _, err := authService.Login("nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshTokens(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, tokens, err := authService.Register("refresh@example.com", "password123", "사용자", "")
	require.NoError(t, err)

	newTokens, err := authService.RefreshTokens(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newTokens.AccessToken)

	_, err = authService.RefreshTokens("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("profile@example.com", "password123", "기존 이름", "01011112222")
	require.NoError(t, err)

	newName := "새 이름"
	budget := int64(300000000)
	gender := model.GenderFemale
	updated, err := authService.UpdateProfile(user.ID, UpdateProfileInput{
		Name:      &newName,
		MaxBudget: &budget,
		Gender:    &gender,
	})
	require.NoError(t, err)
	assert.Equal(t, "새 이름", updated.Name)
	assert.Equal(t, model.GenderFemale, updated.Gender)
	require.NotNil(t, updated.MaxBudget)
	assert.Equal(t, int64(300000000), *updated.MaxBudget)
	// 지정하지 않은 필드는 기존 값을 유지한다
	assert.Equal(t, "01011112222", updated.Phone)

	_, err = authService.UpdateProfile(9999, UpdateProfileInput{Name: &newName})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
