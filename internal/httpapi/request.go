package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mmynk/nutritrack/internal/middleware"
	"github.com/mmynk/nutritrack/internal/models"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON body into v. Malformed input is a validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return models.Validationf("request body is required")
		}
		return models.Validationf("invalid JSON body: %v", err)
	}
	return nil
}

// userID returns the session user. Routes behind RequireAPIAuth always have one.
func userID(r *http.Request) string {
	return middleware.GetUserID(r.Context())
}
