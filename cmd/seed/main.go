package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/myhome/myhome-backend/config"
	"github.com/myhome/myhome-backend/internal/app/model"
	"github.com/myhome/myhome-backend/internal/app/repository"
	"github.com/myhome/myhome-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// 매물 XLSX 필수 컬럼 순서
// 제목 | 설명 | 매물유형 | 방구조 | 임대유형 | 보증금 | 월세 | 관리비 |
// 면적 | 층 | 총층수 | 주소 | 상세주소 | 경도 | 위도
// 이후 선택 컬럼: 구 | 동 | 주차(Y/N) | 엘리베이터(Y/N) | 입주가능일 | 담당자 | 담당자연락처
const columnCount = 15

var validPropertyTypes = map[string]bool{
	string(model.PropertyApartment): true,
	string(model.PropertyVilla):     true,
	string(model.PropertyOneRoom):   true,
	string(model.PropertyTwoRoom):   true,
	string(model.PropertyOfficetel): true,
	string(model.PropertyStudio):    true,
}

var validRentalTypes = map[string]bool{
	string(model.RentalJeonse):      true,
	string(model.RentalMonthly): true,
	string(model.RentalMixed):       true,
}

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> [owner_user_id]")
	}

	filePath := os.Args[1]

	// 매물 소유자 (기본: 관리자 계정 ID 1)
	ownerID := uint(1)
	if len(os.Args) >= 3 {
		parsed, err := strconv.ParseUint(os.Args[2], 10, 32)
		if err != nil {
			log.Fatal("Invalid owner user ID:", os.Args[2])
		}
		ownerID = uint(parsed)
	}

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Repository 생성
	propertyRepo := repository.NewPropertyRepository(db.GetDB())

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	properties, err := readPropertiesFromXLSX(filePath, ownerID)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total properties to import: %d\n", len(properties))

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// 배치로 저장
	batchSize := 1000
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := propertyRepo.BulkCreate(properties, batchSize); err != nil {
		log.Fatal("Failed to bulk create properties:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total properties imported: %d\n", len(properties))
}

func readPropertiesFromXLSX(filePath string, ownerID uint) ([]model.Property, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	// 첫 번째 시트 이름 가져오기
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	// 모든 행 읽기
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var properties []model.Property
	skippedCount := 0
	invalidCoordCount := 0

	// 첫 행은 헤더이므로 스킵
	for i, row := range rows {
		if i == 0 {
			// 헤더 출력 (디버깅용)
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < columnCount {
			skippedCount++
			continue
		}

		title := strings.TrimSpace(row[0])           // 제목
		description := strings.TrimSpace(row[1])     // 설명
		propertyType := strings.TrimSpace(row[2])    // 매물유형
		roomType := strings.TrimSpace(row[3])        // 방구조
		rentalType := strings.TrimSpace(row[4])      // 임대유형
		depositStr := strings.TrimSpace(row[5])      // 보증금
		monthlyRentStr := strings.TrimSpace(row[6])  // 월세
		maintenanceStr := strings.TrimSpace(row[7])  // 관리비
		areaStr := strings.TrimSpace(row[8])         // 면적
		floorStr := strings.TrimSpace(row[9])        // 층
		totalFloorsStr := strings.TrimSpace(row[10]) // 총층수
		address := strings.TrimSpace(row[11])        // 주소
		detailAddress := strings.TrimSpace(row[12])  // 상세주소
		longitudeStr := strings.TrimSpace(row[13])   // 경도
		latitudeStr := strings.TrimSpace(row[14])    // 위도

		// 1. 기본 필수 항목 검사
		if title == "" || address == "" {
			skippedCount++
			continue
		}

		// 2. 유형 검증
		if !validPropertyTypes[propertyType] || !validRentalTypes[rentalType] {
			skippedCount++
			continue
		}

		deposit, err := strconv.ParseInt(depositStr, 10, 64)
		if err != nil || deposit < 0 {
			skippedCount++
			continue
		}
		monthlyRent, _ := strconv.ParseInt(monthlyRentStr, 10, 64)
		maintenanceFee, _ := strconv.ParseInt(maintenanceStr, 10, 64)
		area, _ := strconv.ParseFloat(areaStr, 64)
		floor, _ := strconv.Atoi(floorStr)
		totalFloors, _ := strconv.Atoi(totalFloorsStr)

		property := model.Property{
			Title:          title,
			Description:    description,
			PropertyType:   model.PropertyType(propertyType),
			RoomType:       model.RoomType(roomType),
			RentalType:     model.RentalType(rentalType),
			Deposit:        deposit,
			MonthlyRent:    monthlyRent,
			MaintenanceFee: maintenanceFee,
			Area:           area,
			Floor:          floor,
			TotalFloors:    totalFloors,
			Address:        address,
			DetailAddress:  detailAddress,
			Status:         model.StatusAvailable,
			UserID:         ownerID,
		}

		// 3. 좌표 파싱 (좌표가 깨진 행도 매물 자체는 수용)
		lng, lngErr := strconv.ParseFloat(longitudeStr, 64)
		lat, latErr := strconv.ParseFloat(latitudeStr, 64)
		if lngErr == nil && latErr == nil && isValidCoordinate(lat, lng) {
			property.Latitude = &lat
			property.Longitude = &lng
		} else {
			invalidCoordCount++
		}

		// 4. 선택 컬럼
		property.District = cell(row, 15)
		property.Neighborhood = cell(row, 16)
		property.ParkingAvailable = cell(row, 17) == "Y"
		property.ElevatorAvailable = cell(row, 18) == "Y"
		if dateStr := cell(row, 19); dateStr != "" {
			if availableFrom, err := time.Parse("2006-01-02", dateStr); err == nil {
				property.AvailableFrom = &availableFrom
			}
		}
		property.ContactName = cell(row, 20)
		property.ContactPhone = cell(row, 21)

		properties = append(properties, property)
	}

	fmt.Printf("Parsed %d properties (skipped: %d, without coordinates: %d)\n",
		len(properties), skippedCount, invalidCoordCount)

	return properties, nil
}

// cell 범위를 벗어난 인덱스는 빈 문자열로 처리
func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// isValidCoordinate 한반도 인근 좌표 범위 검사
func isValidCoordinate(lat, lng float64) bool {
	return lat >= 33.0 && lat <= 39.5 && lng >= 124.0 && lng <= 132.0
}
