package extract

import "errors"

var (
	// ErrNotAnArray is returned when the response body is not a JSON array.
	ErrNotAnArray = errors.New("response body is not a json array")
)
