package model

import (
	"time"
)

// Bookmark is a user's saved property. A user can bookmark a
// property at most once.
type Bookmark struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                        // 찜 ID
	UserID     uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_property" json:"user_id"`     // 사용자 ID
	PropertyID uint      `gorm:"not null;uniqueIndex:idx_bookmark_user_property" json:"property_id"` // 매물 ID
	CreatedAt  time.Time `json:"created_at"`                                                  // 생성 시각

	// Associations (loaded with Preload)
	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"` // 매물 정보
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
