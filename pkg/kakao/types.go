package kakao

// Category group codes of the Kakao Local API
const (
	CategorySubwayStation   = "SW8" // 지하철역
	CategoryMart            = "MT1" // 대형마트
	CategoryConvenience     = "CS2" // 편의점
	CategorySchool          = "SC4" // 학교
	CategoryHospital        = "HP8" // 병원
	CategoryPharmacy        = "PM9" // 약국
	CategoryBank            = "BK9" // 은행
	CategoryCafe            = "CE7" // 카페
	CategoryRestaurant      = "FD6" // 음식점
	CategoryPublicInstitute = "PO3" // 공공기관
)

// Meta is the paging metadata returned by the Kakao Local API
type Meta struct {
	TotalCount    int  `json:"total_count"`
	PageableCount int  `json:"pageable_count"`
	IsEnd         bool `json:"is_end"`
}

// addressSearchResponse is the response of GET /search/address.json
type addressSearchResponse struct {
	Meta      Meta `json:"meta"`
	Documents []struct {
		AddressName string `json:"address_name"`
		X           string `json:"x"` // 경도
		Y           string `json:"y"` // 위도
		RoadAddress *struct {
			AddressName string `json:"address_name"`
		} `json:"road_address"`
	} `json:"documents"`
}

// coordToAddressResponse is the response of GET /geo/coord2address.json
type coordToAddressResponse struct {
	Meta      Meta `json:"meta"`
	Documents []struct {
		Address *struct {
			AddressName      string `json:"address_name"`
			Region1DepthName string `json:"region_1depth_name"`
			Region2DepthName string `json:"region_2depth_name"`
			Region3DepthName string `json:"region_3depth_name"`
			MainAddressNo    string `json:"main_address_no"`
			SubAddressNo     string `json:"sub_address_no"`
		} `json:"address"`
		RoadAddress *struct {
			AddressName string `json:"address_name"`
		} `json:"road_address"`
	} `json:"documents"`
}

// placeSearchResponse is the response of the keyword/category search endpoints
type placeSearchResponse struct {
	Meta      Meta `json:"meta"`
	Documents []struct {
		ID                string `json:"id"`
		PlaceName         string `json:"place_name"`
		CategoryName      string `json:"category_name"`
		CategoryGroupCode string `json:"category_group_code"`
		Phone             string `json:"phone"`
		AddressName       string `json:"address_name"`
		RoadAddressName   string `json:"road_address_name"`
		X                 string `json:"x"`
		Y                 string `json:"y"`
		PlaceURL          string `json:"place_url"`
		Distance          string `json:"distance"`
	} `json:"documents"`
}

// CoordinateResult is the outcome of a forward geocoding lookup.
// Success is false when the address could not be resolved.
type CoordinateResult struct {
	Success     bool    `json:"success"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Address     string  `json:"address,omitempty"`      // 지번 주소
	RoadAddress string  `json:"road_address,omitempty"` // 도로명 주소
}

// AddressResult is the outcome of a reverse geocoding lookup.
// Success is false when no address exists at the coordinate.
type AddressResult struct {
	Success     bool   `json:"success"`
	Address     string `json:"address,omitempty"`
	RoadAddress string `json:"road_address,omitempty"`
}

// Place is a single place returned by a keyword or category search
type Place struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Phone       string  `json:"phone,omitempty"`
	Address     string  `json:"address"`
	RoadAddress string  `json:"road_address,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	PlaceURL    string  `json:"place_url,omitempty"`
	Distance    int     `json:"distance,omitempty"` // 검색 기준점으로부터의 거리(미터)
}

// PlaceSearchResult is a page of places with paging metadata
type PlaceSearchResult struct {
	Places     []Place `json:"places"`
	TotalCount int     `json:"total_count"`
	IsEnd      bool    `json:"is_end"`
}

// PlaceSearchOptions are optional parameters for place searches
type PlaceSearchOptions struct {
	Latitude  *float64
	Longitude *float64
	Radius    int // 미터 단위, 0이면 미지정
	Page      int
	Size      int
	Category  string
}
