package model

import (
	"time"
)

type SearchType string // 검색 유형

const (
	SearchTypeKeyword SearchType = "keyword" // 키워드 검색
	SearchTypeAddress SearchType = "address" // 주소 기반 검색
	SearchTypeNearby  SearchType = "nearby"  // 좌표 반경 검색
	SearchTypeSubway  SearchType = "subway"  // 지하철역 주변 검색
	SearchTypeFilter  SearchType = "filter"  // 조건 필터 검색
)

// SearchHistory records a search a user performed. UserID is null
// for anonymous searches.
type SearchHistory struct {
	ID           uint         `gorm:"primarykey" json:"id"`                               // 검색 이력 ID
	UserID       *uint        `gorm:"index" json:"user_id,omitempty"`                     // 사용자 ID (비로그인 시 null)
	SearchType   SearchType   `gorm:"type:varchar(20);not null;index" json:"search_type"` // 검색 유형
	Keyword      string       `json:"keyword"`                                            // 검색어 또는 주소
	Latitude     *float64     `json:"latitude,omitempty"`                                 // 검색 기준 위도
	Longitude    *float64     `json:"longitude,omitempty"`                                // 검색 기준 경도
	Radius       int          `json:"radius"`                                             // 검색 반경 (미터)
	MinDeposit   *int64       `json:"min_deposit,omitempty"`                              // 필터: 최소 보증금 (원)
	MaxDeposit   *int64       `json:"max_deposit,omitempty"`                              // 필터: 최대 보증금 (원)
	RentalType   RentalType   `gorm:"type:varchar(20)" json:"rental_type,omitempty"`      // 필터: 임대 유형
	PropertyType PropertyType `gorm:"type:varchar(20)" json:"property_type,omitempty"`    // 필터: 매물 유형
	ResultCount  int          `json:"result_count"`                                       // 결과 건수
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`                            // 검색 시각
}

func (SearchHistory) TableName() string {
	return "search_histories"
}
