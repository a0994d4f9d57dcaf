package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"project-store/internal/config"
	"project-store/internal/domain"
)

// ParseJSON decodes the request body into dest. Bodies over
// config.MaxRequestBodyBytes are rejected.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &tooLargeError{limit: tooLarge.Limit}
		}
		return &domain.ValidationError{Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return nil
}

type tooLargeError struct {
	limit int64
}

func (e *tooLargeError) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.limit)
}

func (e *tooLargeError) StatusCode() int { return http.StatusRequestEntityTooLarge }
