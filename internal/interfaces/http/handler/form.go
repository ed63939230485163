package handler

import (
	"net/http"

	"github.com/campmanager/backend/internal/application/lifecycle"
	"github.com/gin-gonic/gin"
)

// FormHandler receives organization intake forms from the form sync.
// The body of every answer is a FormResult, failures included.
type FormHandler struct {
	BaseHandler
	formService *lifecycle.FormService
}

// NewFormHandler creates a new FormHandler
func NewFormHandler(formService *lifecycle.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

// CreateOrganization creates the organization named by a form submission
func (h *FormHandler) CreateOrganization(c *gin.Context) {
	var form lifecycle.FormSubmission
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, lifecycle.FormResult{
			Status:  lifecycle.FormStatusError,
			Message: "Malformed form submission: " + err.Error(),
		})
		return
	}

	result := h.formService.CreateOrganizationFromForm(c.Request.Context(), form)
	if result.Status != lifecycle.FormStatusSuccess {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
