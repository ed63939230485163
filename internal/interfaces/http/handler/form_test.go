package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/campmanager/backend/internal/application/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formResult(t *testing.T, body []byte) lifecycle.FormResult {
	t.Helper()
	var result lifecycle.FormResult
	require.NoError(t, json.Unmarshal(body, &result), string(body))
	return result
}

func TestFormHandler_CreateOrganization(t *testing.T) {
	t.Run("creates the camp", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(http.MethodPost, "/api/v1/forms/organizations", map[string]any{
			"camp_name":         "Pine Lake",
			"first_day_of_camp": "Sat Jun 21 2025 00:00:00 GMT-0400 (Eastern Daylight Time)",
			"contact_name":      "Jordan Reyes",
			"email":             "jordan@pinelake.example",
			"country":           "Canada",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		result := formResult(t, w.Body.Bytes())
		assert.Equal(t, lifecycle.FormStatusSuccess, result.Status)
		assert.Equal(t, "Pine Lake", result.Name)

		var orgs []OrganizationResponse
		decode(t, s.do(http.MethodGet, "/api/v1/organizations", nil), &orgs)
		require.Len(t, orgs, 1)
		assert.Equal(t, "2025-06-21", orgs[0].FirstDayOfCamp)
	})

	t.Run("repeated submission reports the existing camp", func(t *testing.T) {
		s := newTestServer(t)
		createCamp(t, s, nil)

		w := s.do(http.MethodPost, "/api/v1/forms/organizations", map[string]any{
			"camp_name":         "Pine Lake",
			"first_day_of_camp": "2025-06-21",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		result := formResult(t, w.Body.Bytes())
		assert.Equal(t, lifecycle.FormStatusSuccess, result.Status)
		assert.Contains(t, result.Message, "already exists")
	})

	t.Run("missing first day of camp", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(http.MethodPost, "/api/v1/forms/organizations", map[string]any{
			"camp_name": "Pine Lake",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		result := formResult(t, w.Body.Bytes())
		assert.Equal(t, lifecycle.FormStatusError, result.Status)
		assert.NotEmpty(t, result.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(http.MethodPost, "/api/v1/forms/organizations", `{"camp_name": 42}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, lifecycle.FormStatusError, formResult(t, w.Body.Bytes()).Status)
	})
}
