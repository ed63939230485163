package handler

import (
	"github.com/campmanager/backend/internal/application/lifecycle"
	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/partner"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CustomerHandler handles customer endpoints. Receivable accounts are
// managed by the system and cannot be edited through the API.
type CustomerHandler struct {
	BaseHandler
	customerService *lifecycle.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *lifecycle.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CustomerFields are the editable customer fields. Nil leaves a field as it is.
type CustomerFields struct {
	CampLink              *string              `json:"camp_link" binding:"omitempty,max=140"`
	OtherOrganizationLink *string              `json:"other_organization_link" binding:"omitempty,max=140"`
	TaxStatus             *string              `json:"tax_status" binding:"omitempty,oneof=Exempt Taxed Pending"`
	TaxExemptionNumber    *string              `json:"tax_exemption_number" binding:"omitempty,max=140"`
	Discount              *string              `json:"discount"`
	BillingAddress        *valueobject.Address `json:"billing_address"`
	Email                 *string              `json:"email" binding:"omitempty,email"`
	Phone                 *string              `json:"phone" binding:"omitempty,max=40"`
	DefaultCurrency       *string              `json:"default_currency" binding:"omitempty,len=3"`
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name          string `json:"customer_name" binding:"required,max=140"`
	LeadReference string `json:"lead_reference" binding:"max=140"`
	CustomerFields
}

// UpdateCustomerRequest represents a request to update a customer.
// Version, when set, must match the stored version.
type UpdateCustomerRequest struct {
	Version int `json:"version" binding:"gte=0"`
	CustomerFields
}

// apply copies the set fields onto customer
func (f CustomerFields) apply(customer *partner.Customer) error {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setString(&customer.CampLink, f.CampLink)
	setString(&customer.OtherOrganizationLink, f.OtherOrganizationLink)
	setString(&customer.TaxExemptionNumber, f.TaxExemptionNumber)
	setString(&customer.Email, f.Email)
	setString(&customer.Phone, f.Phone)
	setString(&customer.DefaultCurrency, f.DefaultCurrency)

	if f.TaxStatus != nil {
		customer.TaxStatus = organization.TaxStatus(*f.TaxStatus)
	}
	if f.BillingAddress != nil {
		customer.BillingAddress = f.BillingAddress.Normalized()
	}
	if f.Discount != nil {
		if *f.Discount == "" {
			customer.Discount = decimal.NullDecimal{}
		} else {
			d, err := decimal.NewFromString(*f.Discount)
			if err != nil || d.IsNegative() {
				return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be a non-negative number")
			}
			customer.Discount = decimal.NullDecimal{Decimal: d, Valid: true}
		}
	}
	return nil
}

// Create saves a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := partner.NewCustomer(req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	customer.LeadReference = req.LeadReference
	if err := req.apply(customer); err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.customerService.Save(c.Request.Context(), customer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toCustomerResponse(result.Customer), result.Notices)
}

// Update edits a customer. Changing default_currency provisions the
// matching receivable account and attaches it in the background.
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "customer")
	if !ok {
		return
	}
	var req UpdateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	customer, err := h.customerService.GetByID(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if req.Version != 0 {
		customer.Version = req.Version
	}
	if err := req.apply(customer); err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.customerService.Save(ctx, customer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithNotices(c, toCustomerResponse(result.Customer), result.Notices)
}

// GetByID returns a customer
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "customer")
	if !ok {
		return
	}
	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toCustomerResponse(customer))
}
