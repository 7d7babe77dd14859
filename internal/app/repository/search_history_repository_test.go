package repository

import (
	"testing"
	"time"

	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupHistoryTest(t *testing.T) (*gorm.DB, SearchHistoryRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewSearchHistoryRepository(testDB)
	return testDB, repo
}

func uintPtr(v uint) *uint {
	return &v
}

func TestSearchHistoryRepository_Create(t *testing.T) {
	testDB, repo := setupHistoryTest(t)
	defer db.CleanupTestDB(testDB)

	history := &model.SearchHistory{
		UserID:      uintPtr(1),
		SearchType:  model.SearchTypeAddress,
		Keyword:     "서울 강남구 역삼동",
		Radius:      3000,
		ResultCount: 7,
	}
	err := repo.Create(history)
	assert.NoError(t, err)
	assert.NotZero(t, history.ID)
}

func TestSearchHistoryRepository_Create_Anonymous(t *testing.T) {
	testDB, repo := setupHistoryTest(t)
	defer db.CleanupTestDB(testDB)

	// 비로그인 검색은 user_id 없이 기록된다
	history := &model.SearchHistory{
		SearchType:  model.SearchTypeKeyword,
		Keyword:     "강남역",
		ResultCount: 3,
	}
	err := repo.Create(history)
	assert.NoError(t, err)
	assert.Nil(t, history.UserID)
}

func TestSearchHistoryRepository_FindRecentByUserID(t *testing.T) {
	testDB, repo := setupHistoryTest(t)
	defer db.CleanupTestDB(testDB)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(&model.SearchHistory{
			UserID:     uintPtr(1),
			SearchType: model.SearchTypeKeyword,
			Keyword:    "강남역",
		}))
	}
	require.NoError(t, repo.Create(&model.SearchHistory{
		UserID:     uintPtr(2),
		SearchType: model.SearchTypeKeyword,
		Keyword:    "홍대입구",
	}))

	histories, err := repo.FindRecentByUserID(1, 3)
	require.NoError(t, err)
	assert.Len(t, histories, 3)
	for _, h := range histories {
		assert.Equal(t, uint(1), *h.UserID)
	}
}

func TestSearchHistoryRepository_TopKeywords(t *testing.T) {
	testDB, repo := setupHistoryTest(t)
	defer db.CleanupTestDB(testDB)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&model.SearchHistory{
			SearchType: model.SearchTypeKeyword,
			Keyword:    "강남역",
		}))
	}
	require.NoError(t, repo.Create(&model.SearchHistory{
		SearchType: model.SearchTypeKeyword,
		Keyword:    "홍대입구",
	}))
	// 빈 검색어는 집계에서 제외된다
	require.NoError(t, repo.Create(&model.SearchHistory{
		SearchType: model.SearchTypeNearby,
		Keyword:    "",
	}))

	keywords, err := repo.TopKeywords(time.Now().Add(-24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	assert.Equal(t, "강남역", keywords[0].Keyword)
	assert.Equal(t, int64(3), keywords[0].Count)
}

func TestSearchHistoryRepository_DeleteOlderThan(t *testing.T) {
	testDB, repo := setupHistoryTest(t)
	defer db.CleanupTestDB(testDB)

	old := &model.SearchHistory{
		SearchType: model.SearchTypeKeyword,
		Keyword:    "오래된 검색",
	}
	require.NoError(t, repo.Create(old))
	require.NoError(t, testDB.Model(old).
		UpdateColumn("created_at", time.Now().AddDate(0, -7, 0)).Error)

	recent := &model.SearchHistory{
		SearchType: model.SearchTypeKeyword,
		Keyword:    "최근 검색",
	}
	require.NoError(t, repo.Create(recent))

	deleted, err := repo.DeleteOlderThan(time.Now().AddDate(0, -6, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []model.SearchHistory
	require.NoError(t, testDB.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "최근 검색", remaining[0].Keyword)
}
