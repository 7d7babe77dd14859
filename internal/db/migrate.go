package db

import (
	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/pkg/logger"
	"github.com/myhome/myhome-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Property{},
		&model.PropertyImage{},
		&model.Bookmark{},
		&model.SearchHistory{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedAdminUser(); err != nil {
		logger.Error("Failed to seed admin user", err)
		return err
	}
	if err := seedProperties(); err != nil {
		logger.Error("Failed to seed properties", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedAdminUser 관리자 계정 생성
func seedAdminUser() error {
	var count int64
	if err := DB.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Admin user already seeded, skipping...")
		return nil
	}

	hash, err := util.HashPassword("admin1234!")
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        "admin@myhome.kr",
		PasswordHash: hash,
		Name:         "관리자",
		Role:         model.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info("Admin user seeded successfully", map[string]interface{}{
		"email": admin.Email,
	})
	return nil
}

// seedProperties 매물 더미 데이터 생성
func seedProperties() error {
	var count int64
	if err := DB.Model(&model.Property{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Properties already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	var admin model.User
	if err := DB.Where("role = ?", model.RoleAdmin).First(&admin).Error; err != nil {
		return err
	}

	coord := func(v float64) *float64 { return &v }

	properties := []model.Property{
		{
			Title:        "역삼역 도보 5분 신축 원룸",
			Description:  "풀옵션, 즉시 입주 가능",
			PropertyType: model.PropertyOneRoom,
			RoomType:     model.RoomOne,
			RentalType:   model.RentalMonthly,
			Deposit:      10000000,
			MonthlyRent:  650000,
			Area:         23.1,
			Floor:        4,
			TotalFloors:  6,
			Address:      "서울 강남구 역삼동 123-45",
			Latitude:     coord(37.50),
			Longitude:    coord(127.04),
			Status:       model.StatusAvailable,
			UserID:       admin.ID,
		},
		{
			Title:        "마포 한강뷰 투룸 전세",
			Description:  "한강 조망, 남향",
			PropertyType: model.PropertyVilla,
			RoomType:     model.RoomTwo,
			RentalType:   model.RentalJeonse,
			Deposit:      320000000,
			Area:         49.5,
			Floor:        7,
			TotalFloors:  15,
			Address:      "서울 마포구 망원동 57-1",
			Latitude:     coord(37.56),
			Longitude:    coord(126.90),
			Status:       model.StatusAvailable,
			UserID:       admin.ID,
		},
		{
			Title:        "판교 테크노밸리 오피스텔",
			Description:  "출퇴근 최적, 관리비 포함",
			PropertyType: model.PropertyOfficetel,
			RoomType:     model.RoomOne,
			RentalType:   model.RentalMixed,
			Deposit:      50000000,
			MonthlyRent:  400000,
			Area:         29.7,
			Floor:        12,
			TotalFloors:  20,
			Address:      "경기 성남시 분당구 삼평동 680",
			Latitude:     coord(37.40),
			Longitude:    coord(127.11),
			Status:       model.StatusAvailable,
			UserID:       admin.ID,
		},
	}

	for i := range properties {
		if err := DB.Create(&properties[i]).Error; err != nil {
			logger.Error("Failed to create property", err)
			return err
		}
	}

	logger.Info("Properties seeded successfully", map[string]interface{}{
		"total_records": len(properties),
	})
	return nil
}
