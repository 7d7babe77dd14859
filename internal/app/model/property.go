package model

import (
	"time"

	"gorm.io/gorm"
)

type PropertyType string // 매물 유형

const (
	PropertyApartment PropertyType = "apartment"  // 아파트
	PropertyVilla     PropertyType = "villa"      // 빌라
	PropertyOneRoom   PropertyType = "one_room"   // 원룸
	PropertyTwoRoom   PropertyType = "two_room"   // 투룸
	PropertyOfficetel PropertyType = "office_tel" // 오피스텔
	PropertyStudio    PropertyType = "studio"     // 스튜디오
)

type RoomType string // 방 구조

const (
	RoomOne      RoomType = "one_room"       // 원룸
	RoomTwo      RoomType = "two_room"       // 투룸
	RoomThree    RoomType = "three_room"     // 쓰리룸
	RoomFourPlus RoomType = "four_room_plus" // 포룸 이상
)

type RentalType string // 임대 유형

const (
	RentalJeonse  RentalType = "jeonse"       // 전세
	RentalMonthly RentalType = "monthly_rent" // 월세
	RentalMixed   RentalType = "mixed"        // 반전세
)

type AvailabilityStatus string // 매물 상태

const (
	StatusAvailable AvailabilityStatus = "available" // 거래 가능
	StatusRented    AvailabilityStatus = "rented"    // 계약 완료
	StatusPending   AvailabilityStatus = "pending"   // 계약 진행 중
)

type Property struct {
	ID                uint               `gorm:"primarykey" json:"id"`                                     // 매물 ID
	Title             string             `gorm:"not null" json:"title"`                                    // 제목
	Description       string             `gorm:"type:text" json:"description"`                             // 상세 설명
	PropertyType      PropertyType       `gorm:"type:varchar(20);not null;index" json:"property_type"`     // 매물 유형
	RoomType          RoomType           `gorm:"type:varchar(20)" json:"room_type"`                        // 방 구조
	RentalType        RentalType         `gorm:"type:varchar(20);not null;index" json:"rental_type"`       // 임대 유형
	Deposit           int64              `gorm:"not null" json:"deposit"`                                  // 보증금 (원)
	MonthlyRent       int64              `gorm:"default:0" json:"monthly_rent"`                            // 월세 (원, 전세는 0)
	MaintenanceFee    int64              `gorm:"default:0" json:"maintenance_fee"`                         // 관리비 (원)
	Area              float64            `json:"area"`                                                     // 전용면적 (m²)
	Floor             int                `json:"floor"`                                                    // 층수
	TotalFloors       int                `json:"total_floors"`                                             // 건물 전체 층수
	Address           string             `gorm:"not null" json:"address"`                                  // 주소
	DetailAddress     string             `json:"detail_address"`                                           // 상세 주소
	District          string             `gorm:"index" json:"district"`                                    // 구 단위 행정구역
	Neighborhood      string             `gorm:"index" json:"neighborhood"`                                // 동 단위 행정구역
	Latitude          *float64           `gorm:"type:decimal(10,2)" json:"latitude"`                       // 위도 (지오코딩 실패 시 null)
	Longitude         *float64           `gorm:"type:decimal(10,2)" json:"longitude"`                      // 경도 (지오코딩 실패 시 null)
	Status            AvailabilityStatus `gorm:"type:varchar(20);default:'available';index" json:"status"` // 매물 상태
	AvailableFrom     *time.Time         `json:"available_from"`                                           // 입주 가능일
	ParkingAvailable  bool               `gorm:"default:false" json:"parking_available"`                   // 주차 가능 여부
	ElevatorAvailable bool               `gorm:"default:false" json:"elevator_available"`                  // 엘리베이터 유무
	ContactName       string             `gorm:"type:varchar(50)" json:"contact_name"`                     // 담당자 이름
	ContactPhone      string             `gorm:"type:varchar(15)" json:"contact_phone"`                    // 담당자 연락처
	UserID            uint               `gorm:"not null;index" json:"user_id"`                            // 등록자 ID
	CreatedAt         time.Time          `json:"created_at"`                                               // 생성 시각
	UpdatedAt         time.Time          `json:"updated_at"`                                               // 수정 시각
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`                                           // 삭제 시각(소프트 삭제)

	// Associations (loaded with Preload)
	Images []PropertyImage `gorm:"foreignKey:PropertyID" json:"images,omitempty"` // 매물 이미지 목록
	User   *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`       // 등록자 정보
}

func (Property) TableName() string {
	return "properties"
}

// HasCoordinate reports whether the property was successfully geocoded
func (p *Property) HasCoordinate() bool {
	return p.Latitude != nil && p.Longitude != nil
}
