package kakao

import "errors"

const defaultBaseURL = "https://dapi.kakao.com/v2/local"

// Config holds Kakao Local API configuration
type Config struct {
	// RESTAPIKey is the Kakao REST API key (KakaoAK)
	RESTAPIKey string
	// BaseURL is the Kakao Local API base URL
	BaseURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.RESTAPIKey == "" {
		return errors.New("kakao: REST API key is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	return nil
}
