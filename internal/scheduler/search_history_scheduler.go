package scheduler

import (
	"time"

	"github.com/myhome/myhome-backend/internal/app/repository"
	"github.com/myhome/myhome-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SearchHistoryScheduler 오래된 검색 이력 정리 스케줄러
type SearchHistoryScheduler struct {
	cron          *cron.Cron
	historyRepo   repository.SearchHistoryRepository
	retentionDays int
}

// NewSearchHistoryScheduler 검색 이력 정리 스케줄러 생성
func NewSearchHistoryScheduler(historyRepo repository.SearchHistoryRepository, retentionDays int) *SearchHistoryScheduler {
	return &SearchHistoryScheduler{
		cron:          cron.New(),
		historyRepo:   historyRepo,
		retentionDays: retentionDays,
	}
}

// Start 스케줄러 시작
func (s *SearchHistoryScheduler) Start() error {
	if s.retentionDays <= 0 {
		logger.Info("Search history cleanup disabled (retention not configured)", nil)
		return nil
	}

	// 매일 새벽 4시에 보존 기한이 지난 검색 이력 삭제
	// cron 표현식: "0 4 * * *" = 매일 4시 0분
	_, err := s.cron.AddFunc("0 4 * * *", func() {
		cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

		logger.Info("Starting scheduled search history cleanup", map[string]interface{}{
			"retention_days": s.retentionDays,
			"cutoff":         cutoff.Format(time.RFC3339),
		})

		deleted, err := s.historyRepo.DeleteOlderThan(cutoff)
		if err != nil {
			logger.Error("Failed to clean up search histories", err)
			return
		}

		logger.Info("Search history cleanup completed", map[string]interface{}{
			"deleted": deleted,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for search history cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Search history scheduler started successfully (daily at 4:00 AM)", map[string]interface{}{
		"retention_days": s.retentionDays,
	})

	return nil
}

// Stop 스케줄러 중지
func (s *SearchHistoryScheduler) Stop() {
	logger.Info("Stopping search history scheduler...", nil)
	s.cron.Stop()
	logger.Info("Search history scheduler stopped", nil)
}
