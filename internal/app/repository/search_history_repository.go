package repository

import (
	"time"

	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/pkg/logger"
	"gorm.io/gorm"
)

// KeywordCount is an aggregated search keyword with its frequency
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int64  `json:"count"`
}

type SearchHistoryRepository interface {
	Create(history *model.SearchHistory) error
	FindRecentByUserID(userID uint, limit int) ([]model.SearchHistory, error)
	TopKeywords(since time.Time, limit int) ([]KeywordCount, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type searchHistoryRepository struct {
	db *gorm.DB
}

func NewSearchHistoryRepository(db *gorm.DB) SearchHistoryRepository {
	return &searchHistoryRepository{db: db}
}

func (r *searchHistoryRepository) Create(history *model.SearchHistory) error {
	if err := r.db.Create(history).Error; err != nil {
		logger.Error("Failed to create search history", err, map[string]interface{}{
			"search_type": history.SearchType,
			"keyword":     history.Keyword,
		})
		return err
	}
	return nil
}

func (r *searchHistoryRepository) FindRecentByUserID(userID uint, limit int) ([]model.SearchHistory, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var histories []model.SearchHistory
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&histories).Error
	if err != nil {
		logger.Error("Failed to find search histories", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return histories, nil
}

// TopKeywords returns the most frequent non-empty keywords since the
// given time.
func (r *searchHistoryRepository) TopKeywords(since time.Time, limit int) ([]KeywordCount, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var results []KeywordCount
	err := r.db.Model(&model.SearchHistory{}).
		Select("keyword, COUNT(*) as count").
		Where("keyword <> '' AND created_at >= ?", since).
		Group("keyword").
		Order("count DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		logger.Error("Failed to aggregate top keywords", err, nil)
		return nil, err
	}
	return results, nil
}

// DeleteOlderThan removes histories created before the cutoff and
// returns the number of deleted rows.
func (r *searchHistoryRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.
		Where("created_at < ?", cutoff).
		Delete(&model.SearchHistory{})
	if result.Error != nil {
		logger.Error("Failed to delete old search histories", result.Error, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, result.Error
	}

	logger.Debug("Old search histories deleted", map[string]interface{}{
		"cutoff":  cutoff,
		"deleted": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
