package jsend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/nutritrack/internal/models"
	"github.com/mmynk/nutritrack/internal/storage"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", models.Validationf("bad"), http.StatusUnprocessableEntity},
		{"auth", models.Authf("not yours"), http.StatusUnprocessableEntity},
		{"not found", models.NotFoundf("meal x"), http.StatusNotFound},
		{"storage not found", fmt.Errorf("failed to delete: %w", storage.ErrNotFound), http.StatusNotFound},
		{"infrastructure", models.Infrastructuref("no secret"), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestFromError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/days/2024-01-01", nil)

	rec := httptest.NewRecorder()
	FromError(rec, r, models.Validationf("date must be YYYY-MM-DD"))
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, StatusFail, resp.Status)
	assert.Contains(t, resp.Message, "YYYY-MM-DD")

	rec = httptest.NewRecorder()
	FromError(rec, r, errors.New("disk on fire"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, StatusError, resp.Status)
	assert.NotContains(t, resp.Message, "disk")
}
