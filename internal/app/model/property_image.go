package model

import (
	"time"
)

// PropertyImage is an image attached to a property.
// ImageOrder is kept dense from 1; order 1 is the main image.
type PropertyImage struct {
	ID         uint      `gorm:"primarykey" json:"id"`              // 이미지 ID
	PropertyID uint      `gorm:"not null;index" json:"property_id"` // 매물 ID
	ImageURL   string    `gorm:"not null" json:"image_url"`         // 이미지 URL
	ImageOrder int       `gorm:"not null" json:"image_order"`       // 표시 순서 (1부터 시작)
	AltText    string    `gorm:"type:varchar(100)" json:"alt_text"` // 대체 텍스트
	CreatedAt  time.Time `json:"created_at"`                        // 생성 시각
	UpdatedAt  time.Time `json:"updated_at"`                        // 수정 시각
}

func (PropertyImage) TableName() string {
	return "property_images"
}

// IsMain reports whether this image is the property's main image
func (i *PropertyImage) IsMain() bool {
	return i.ImageOrder == 1
}
