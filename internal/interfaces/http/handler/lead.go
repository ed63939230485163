package handler

import (
	"github.com/campmanager/backend/internal/application/lifecycle"
	"github.com/campmanager/backend/internal/domain/crm"
	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/gin-gonic/gin"
)

// LeadHandler handles lead endpoints. Saving a signed lead converts it.
type LeadHandler struct {
	BaseHandler
	leadService *lifecycle.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *lifecycle.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// CreateLeadRequest represents a request to create a new lead
type CreateLeadRequest struct {
	Name             string `json:"name" binding:"required,max=140"`
	CompanyName      string `json:"company_name" binding:"required,max=140"`
	ContactName      string `json:"contact_name" binding:"max=140"`
	Email            string `json:"email" binding:"omitempty,email"`
	Phone            string `json:"phone" binding:"max=40"`
	OrganizationType string `json:"organization_type" binding:"required,oneof=Camp 'Other Organization'"`
	Phase            string `json:"phase" binding:"omitempty,oneof=New Contacted Qualified Proposal Signed Lost"`
}

// UpdateLeadRequest represents a request to update a lead.
// Version, when set, must match the stored version.
type UpdateLeadRequest struct {
	Version          int     `json:"version" binding:"gte=0"`
	CompanyName      *string `json:"company_name" binding:"omitempty,max=140"`
	ContactName      *string `json:"contact_name" binding:"omitempty,max=140"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Phone            *string `json:"phone" binding:"omitempty,max=40"`
	OrganizationType *string `json:"organization_type" binding:"omitempty,oneof=Camp 'Other Organization'"`
	Phase            *string `json:"phase" binding:"omitempty,oneof=New Contacted Qualified Proposal Signed Lost"`
}

// Create saves a new lead
func (h *LeadHandler) Create(c *gin.Context) {
	var req CreateLeadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	lead, err := crm.NewLead(req.Name, req.CompanyName, organization.Kind(req.OrganizationType))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	lead.ContactName = req.ContactName
	lead.Email = req.Email
	lead.Phone = req.Phone
	if req.Phase != "" {
		lead.Phase = crm.LeadPhase(req.Phase)
	}

	result, err := h.leadService.Save(c.Request.Context(), lead)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toLeadResponse(result.Lead), result.Notices)
}

// Update edits a lead. Moving it to Signed triggers conversion.
func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "lead")
	if !ok {
		return
	}
	var req UpdateLeadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	lead, err := h.leadService.GetByID(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if req.Version != 0 {
		lead.Version = req.Version
	}
	if req.CompanyName != nil {
		lead.CompanyName = *req.CompanyName
	}
	if req.ContactName != nil {
		lead.ContactName = *req.ContactName
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.OrganizationType != nil {
		lead.OrganizationKind = organization.Kind(*req.OrganizationType)
	}
	if req.Phase != nil {
		lead.Phase = crm.LeadPhase(*req.Phase)
	}

	result, err := h.leadService.Save(ctx, lead)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithNotices(c, toLeadResponse(result.Lead), result.Notices)
}

// GetByID returns a lead
func (h *LeadHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "lead")
	if !ok {
		return
	}
	lead, err := h.leadService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toLeadResponse(lead))
}
