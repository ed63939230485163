package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campmanager/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	type leadInput struct {
		CompanyName string `json:"company_name" binding:"required"`
		Email       string `json:"email" binding:"omitempty,email"`
		Kind        string `json:"organization_type" binding:"omitempty,oneof=Camp Other"`
	}

	SetupValidator()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req leadInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	post := func(body string) (*httptest.ResponseRecorder, dto.Response) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(RequestIDHeader, "req-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		var resp dto.Response
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		return w, resp
	}

	t.Run("reports each rejected field by JSON name", func(t *testing.T) {
		w, resp := post(`{"email": "invalid", "organization_type": "School"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-1", resp.Error.RequestID)

		messages := map[string]string{}
		for _, d := range resp.Error.Details {
			messages[d.Field] = d.Message
		}
		assert.Equal(t, map[string]string{
			"company_name":      "This field is required",
			"email":             "Invalid email format",
			"organization_type": "Must be one of: Camp Other",
		}, messages)
	})

	t.Run("malformed JSON has no details", func(t *testing.T) {
		w, resp := post(`{"company_name": `)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Empty(t, resp.Error.Details)
		assert.NotEqual(t, "Request validation failed", resp.Error.Message)
	})

	t.Run("accepts valid input", func(t *testing.T) {
		w, _ := post(`{"company_name": "Camp Pine", "email": "jo@example.com"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
