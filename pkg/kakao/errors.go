package kakao

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is invalid
	ErrInvalidConfig = errors.New("kakao: invalid configuration")
	// ErrRequestFailed is returned when the HTTP request could not be completed
	ErrRequestFailed = errors.New("kakao: request failed")
	// ErrAPIError is returned when the Kakao API responds with a non-2xx status
	ErrAPIError = errors.New("kakao: API error")
	// ErrEmptyQuery is returned when a search is attempted with an empty query
	ErrEmptyQuery = errors.New("kakao: query is empty")
)
