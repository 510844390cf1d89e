package objects

import (
	"errors"
	"net/http"
)

// Domain errors for object operations.
var (
	ErrNotFound  = errors.New("Object not found")
	ErrForbidden = errors.New("You can only delete your own objects")
	ErrDuplicate = errors.New("Object already exists")
)

// MapHTTPStatus converts domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
