package handler

import (
	"github.com/campmanager/backend/internal/application/lifecycle"
	"github.com/campmanager/backend/internal/domain/onboarding"
	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
)

// OnboardingHandler handles onboarding endpoints. Saving an onboarding
// mirrors its fields onto the organization and recomputes the phase.
type OnboardingHandler struct {
	BaseHandler
	onboardingService *lifecycle.OnboardingService
}

// NewOnboardingHandler creates a new OnboardingHandler
func NewOnboardingHandler(onboardingService *lifecycle.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// OnboardingFields are the editable onboarding fields. Nil leaves a field
// as it is. Milestones, when present, replace the whole checklist.
type OnboardingFields struct {
	RegistrationMethod    *string              `json:"registration_method" binding:"omitempty,max=140"`
	ExemptStatus          *string              `json:"exempt_status" binding:"omitempty,oneof=Exempt Taxed Pending"`
	TaxExemptID           *string              `json:"tax_exempt_id" binding:"omitempty,max=140"`
	FirstDayOfCamp        *string              `json:"first_day_of_camp"`
	Association           *string              `json:"association" binding:"omitempty,max=140"`
	ShippingAddress       *valueobject.Address `json:"shipping_address"`
	BillingAddress        *valueobject.Address `json:"billing_address"`
	BillingSameAsShipping *bool                `json:"billing_same_as_shipping"`
	POCName               *string              `json:"poc_name" binding:"omitempty,max=140"`
	POCEmail              *string              `json:"poc_email" binding:"omitempty,email"`
	POCPhone              *string              `json:"poc_phone" binding:"omitempty,max=40"`
	Username              *string              `json:"username" binding:"omitempty,max=140"`
	Password              *string              `json:"password" binding:"omitempty,max=140"`
	ParentPortalLink      *string              `json:"parent_portal_link" binding:"omitempty,url"`
	OrderID               *string              `json:"order_id" binding:"omitempty,max=140"`
	ExternalSystemID      *string              `json:"external_system_id" binding:"omitempty,max=140"`
	Milestones            *MilestonesDTO       `json:"milestones"`
}

// CreateOnboardingRequest represents a request to create an onboarding
type CreateOnboardingRequest struct {
	Title            string `json:"title" binding:"required,max=140"`
	OrganizationType string `json:"organization_type" binding:"required,oneof=Camp 'Other Organization'"`
	OnboardingFields
}

// UpdateOnboardingRequest represents a request to update an onboarding.
// Version, when set, must match the stored version.
type UpdateOnboardingRequest struct {
	Version int `json:"version" binding:"gte=0"`
	OnboardingFields
}

// apply copies the set fields onto ob
func (f OnboardingFields) apply(ob *onboarding.Onboarding) error {
	d := &ob.Details
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&d.RegistrationMethod, f.RegistrationMethod)
	setString(&d.TaxExemptID, f.TaxExemptID)
	setString(&d.Association, f.Association)
	setString(&d.POCName, f.POCName)
	setString(&d.POCEmail, f.POCEmail)
	setString(&d.POCPhone, f.POCPhone)
	setString(&d.Username, f.Username)
	setString(&d.Password, f.Password)
	setString(&d.ParentPortalLink, f.ParentPortalLink)
	setString(&d.OrderID, f.OrderID)
	setString(&d.ExternalSystemID, f.ExternalSystemID)

	if f.ExemptStatus != nil {
		d.ExemptStatus = organization.TaxStatus(*f.ExemptStatus)
	}
	if f.FirstDayOfCamp != nil {
		day, err := parseDate(*f.FirstDayOfCamp)
		if err != nil {
			return err
		}
		d.FirstDayOfCamp = day
	}
	if f.ShippingAddress != nil {
		d.ShippingAddress = f.ShippingAddress.Normalized()
	}
	if f.BillingAddress != nil {
		d.BillingAddress = f.BillingAddress.Normalized()
	}
	if f.BillingSameAsShipping != nil {
		d.BillingSameAsShipping = *f.BillingSameAsShipping
	}
	if f.Milestones != nil {
		ob.Milestones = f.Milestones.toDomain()
	}
	return nil
}

// Create saves a new onboarding
func (h *OnboardingHandler) Create(c *gin.Context) {
	var req CreateOnboardingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ob, err := onboarding.NewOnboarding(req.Title, organization.Kind(req.OrganizationType))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if req.Milestones != nil && !ob.OrganizationKind.IsCamp() {
		// keep the camp-only milestones raised for other organizations
		req.Milestones.RegistrationIdentified = true
		req.Milestones.FirstDayOfCampProvided = true
	}
	if err := req.apply(ob); err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.onboardingService.Save(c.Request.Context(), ob)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toOnboardingSaveResponse(result), result.Notices)
}

// Update edits an onboarding
func (h *OnboardingHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "onboarding")
	if !ok {
		return
	}
	var req UpdateOnboardingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	ob, err := h.onboardingService.GetByID(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if req.Version != 0 {
		ob.Version = req.Version
	}
	if err := req.apply(ob); err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.onboardingService.Save(ctx, ob)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithNotices(c, toOnboardingSaveResponse(result), result.Notices)
}

// GetByID returns an onboarding
func (h *OnboardingHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "onboarding")
	if !ok {
		return
	}
	ob, err := h.onboardingService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOnboardingResponse(ob))
}

// List returns onboardings, optionally in one phase ("1".."8" or "Live")
func (h *OnboardingHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	var phase *onboarding.Phase
	if raw := c.Query("phase"); raw != "" {
		p, err := onboarding.ParsePhase(raw)
		if err != nil {
			h.HandleError(c, shared.NewDomainError("INVALID_PHASE", "Unknown onboarding phase '"+raw+"'"))
			return
		}
		phase = &p
	}

	obs, total, err := h.onboardingService.List(c.Request.Context(), phase, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items := make([]OnboardingResponse, len(obs))
	for i := range obs {
		items[i] = toOnboardingResponse(&obs[i])
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

func toOnboardingSaveResponse(result *lifecycle.OnboardingResult) OnboardingSaveResponse {
	return OnboardingSaveResponse{
		OnboardingResponse: toOnboardingResponse(result.Onboarding),
		PhaseChanged:       result.PhaseChanged,
		ChangedFields:      result.ChangedFields,
	}
}
