package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/myhome/myhome-backend/pkg/logger"
)

const (
	defaultPage = 1
	defaultSize = 15
	maxRadius   = 20000
)

// Client is a Kakao Local API client
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new Kakao Local API client
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, ErrInvalidConfig
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// AddressToCoordinate resolves an address to a coordinate.
// Lookup failures are absorbed into an unsuccessful result so that
// callers can fall back instead of aborting.
func (c *Client) AddressToCoordinate(ctx context.Context, address string) *CoordinateResult {
	if address == "" {
		return &CoordinateResult{Success: false}
	}

	params := url.Values{}
	params.Set("query", address)

	var resp addressSearchResponse
	if err := c.doRequest(ctx, "/search/address.json", params, &resp); err != nil {
		logger.Warn("주소 좌표 변환 실패", map[string]interface{}{
			"address": address,
			"error":   err.Error(),
		})
		return &CoordinateResult{Success: false}
	}

	if len(resp.Documents) == 0 {
		logger.Debug("주소 검색 결과 없음", map[string]interface{}{
			"address": address,
		})
		return &CoordinateResult{Success: false}
	}

	doc := resp.Documents[0]
	lat, latErr := strconv.ParseFloat(doc.Y, 64)
	lng, lngErr := strconv.ParseFloat(doc.X, 64)
	if latErr != nil || lngErr != nil {
		return &CoordinateResult{Success: false}
	}

	result := &CoordinateResult{
		Success:   true,
		Latitude:  lat,
		Longitude: lng,
		Address:   doc.AddressName,
	}
	if doc.RoadAddress != nil {
		result.RoadAddress = doc.RoadAddress.AddressName
	}
	return result
}

// CoordinateToAddress resolves a coordinate to an address.
// Lookup failures are absorbed into an unsuccessful result.
func (c *Client) CoordinateToAddress(ctx context.Context, latitude, longitude float64) *AddressResult {
	params := url.Values{}
	params.Set("x", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("y", strconv.FormatFloat(latitude, 'f', -1, 64))

	var resp coordToAddressResponse
	if err := c.doRequest(ctx, "/geo/coord2address.json", params, &resp); err != nil {
		logger.Warn("좌표 주소 변환 실패", map[string]interface{}{
			"latitude":  latitude,
			"longitude": longitude,
			"error":     err.Error(),
		})
		return &AddressResult{Success: false}
	}

	if len(resp.Documents) == 0 || resp.Documents[0].Address == nil {
		return &AddressResult{Success: false}
	}

	doc := resp.Documents[0]
	result := &AddressResult{
		Success: true,
		Address: assembleJibunAddress(
			doc.Address.Region1DepthName,
			doc.Address.Region2DepthName,
			doc.Address.Region3DepthName,
			doc.Address.MainAddressNo,
			doc.Address.SubAddressNo,
		),
	}
	if doc.RoadAddress != nil {
		result.RoadAddress = doc.RoadAddress.AddressName
	}
	return result
}

// assembleJibunAddress joins region parts with spaces and appends the
// lot number. A sub number of "0" or empty is omitted.
func assembleJibunAddress(region1, region2, region3, mainNo, subNo string) string {
	address := ""
	for _, part := range []string{region1, region2, region3} {
		if part == "" {
			continue
		}
		if address != "" {
			address += " "
		}
		address += part
	}
	if mainNo != "" {
		lot := mainNo
		if subNo != "" && subNo != "0" {
			lot += "-" + subNo
		}
		if address != "" {
			address += " "
		}
		address += lot
	}
	return address
}

// SearchByKeyword searches places by keyword
func (c *Client) SearchByKeyword(ctx context.Context, query string, opts PlaceSearchOptions) (*PlaceSearchResult, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("query", query)
	applySearchOptions(params, opts)

	var resp placeSearchResponse
	if err := c.doRequest(ctx, "/search/keyword.json", params, &resp); err != nil {
		return nil, err
	}
	return convertPlaces(&resp), nil
}

// SearchByCategory searches places by category group code around a coordinate
func (c *Client) SearchByCategory(ctx context.Context, category string, opts PlaceSearchOptions) (*PlaceSearchResult, error) {
	if category == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("category_group_code", category)
	applySearchOptions(params, opts)

	var resp placeSearchResponse
	if err := c.doRequest(ctx, "/search/category.json", params, &resp); err != nil {
		return nil, err
	}
	return convertPlaces(&resp), nil
}

func applySearchOptions(params url.Values, opts PlaceSearchOptions) {
	if opts.Latitude != nil && opts.Longitude != nil {
		params.Set("y", strconv.FormatFloat(*opts.Latitude, 'f', -1, 64))
		params.Set("x", strconv.FormatFloat(*opts.Longitude, 'f', -1, 64))
	}
	if opts.Radius > 0 {
		radius := opts.Radius
		if radius > maxRadius {
			radius = maxRadius
		}
		params.Set("radius", strconv.Itoa(radius))
	}
	page := opts.Page
	if page <= 0 {
		page = defaultPage
	}
	size := opts.Size
	if size <= 0 {
		size = defaultSize
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))
	if opts.Category != "" {
		params.Set("category_group_code", opts.Category)
	}
}

func convertPlaces(resp *placeSearchResponse) *PlaceSearchResult {
	result := &PlaceSearchResult{
		Places:     make([]Place, 0, len(resp.Documents)),
		TotalCount: resp.Meta.TotalCount,
		IsEnd:      resp.Meta.IsEnd,
	}
	for _, doc := range resp.Documents {
		lat, latErr := strconv.ParseFloat(doc.Y, 64)
		lng, lngErr := strconv.ParseFloat(doc.X, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		place := Place{
			ID:          doc.ID,
			Name:        doc.PlaceName,
			Category:    doc.CategoryName,
			Phone:       doc.Phone,
			Address:     doc.AddressName,
			RoadAddress: doc.RoadAddressName,
			Latitude:    lat,
			Longitude:   lng,
			PlaceURL:    doc.PlaceURL,
		}
		if doc.Distance != "" {
			if d, err := strconv.Atoi(doc.Distance); err == nil {
				place.Distance = d
			}
		}
		result.Places = append(result.Places, place)
	}
	return result
}

func (c *Client) doRequest(ctx context.Context, path string, params url.Values, result interface{}) error {
	reqURL := c.config.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.config.RESTAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("Kakao API 오류 응답", ErrAPIError, map[string]interface{}{
			"path":        path,
			"status_code": resp.StatusCode,
			"body":        string(body),
		})
		return fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	return nil
}
