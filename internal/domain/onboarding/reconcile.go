package onboarding

import (
	"github.com/campmanager/backend/internal/domain/organization"
)

// Reconciliation is the outcome of mirroring an onboarding onto its organization
type Reconciliation struct {
	// Organization is an updated copy; the input is never modified
	Organization *organization.Organization
	// Milestones holds only the flags to raise on the onboarding
	Milestones Milestones
	// ChangedFields lists the organization fields that were overwritten
	ChangedFields []string
}

// Changed reports whether the organization needs to be written
func (r Reconciliation) Changed() bool {
	return len(r.ChangedFields) > 0
}

// Reconcile copies changed onboarding fields onto the organization and
// works out which milestones the result satisfies.
//
// Address parts and the billing-same flag are diffed against previous, the
// onboarding as it was stored before this save. Every other group is diffed
// against the organization's stored value and only non-empty values are
// copied. A Pending exempt status is never copied.
func Reconcile(current, previous *Onboarding, org *organization.Organization) Reconciliation {
	out := org.Clone()
	d := current.Details
	var prev Details
	if previous != nil {
		prev = previous.Details
	}

	var changed []string
	var m Milestones
	copyText := func(field string, dst *string, val string) {
		if val != "" && *dst != val {
			*dst = val
			changed = append(changed, field)
		}
	}

	copyText("registration_software", &out.RegistrationSoftware, d.RegistrationMethod)
	m.RegistrationIdentified = out.RegistrationSoftware != ""

	if d.ExemptStatus != "" && d.ExemptStatus != organization.TaxStatusPending && out.TaxStatus != d.ExemptStatus {
		out.TaxStatus = d.ExemptStatus
		changed = append(changed, "tax_exempt")
	}
	copyText("tax_exemption_number", &out.TaxExemptionNumber, d.TaxExemptID)
	m.TaxExemptIDGathered = out.TaxStatus == organization.TaxStatusTaxed ||
		(out.TaxStatus == organization.TaxStatusExempt && out.TaxExemptionNumber != "")

	if d.FirstDayOfCamp != nil && (out.FirstDayOfCamp == nil || !out.FirstDayOfCamp.Equal(*d.FirstDayOfCamp)) {
		day := *d.FirstDayOfCamp
		out.FirstDayOfCamp = &day
		changed = append(changed, "first_day_of_camp")
	}
	m.FirstDayOfCampProvided = out.FirstDayOfCamp != nil

	copyText("association", &out.Association, d.Association)
	m.SetDiscount = out.Association != ""

	if addr, ok := out.ShippingAddress.Merge(prev.ShippingAddress, d.ShippingAddress); ok {
		out.ShippingAddress = addr
		changed = append(changed, "shipping_address")
	}
	if addr, ok := out.BillingAddress.Merge(prev.BillingAddress, d.BillingAddress); ok {
		out.BillingAddress = addr
		changed = append(changed, "billing_address")
	}
	if prev.BillingSameAsShipping != d.BillingSameAsShipping && out.BillingSameAsShipping != d.BillingSameAsShipping {
		out.BillingSameAsShipping = d.BillingSameAsShipping
		changed = append(changed, "billing_same_as_shipping")
	}
	m.CollectedAddress = AddressCollected(d)

	copyText("contact_name", &out.ContactName, d.POCName)
	copyText("email", &out.Email, d.POCEmail)
	copyText("phone", &out.Phone, d.POCPhone)
	m.GatheredPOCInformation = out.ContactName != "" && out.Email != "" && out.Phone != ""

	copyText("username", &out.Username, d.Username)
	copyText("password", &out.Password, d.Password)
	m.AccountSetup = out.Username != "" && out.Password != ""

	copyText("parent_portal_link", &out.ParentPortalLink, d.ParentPortalLink)
	m.SetUpParentPortal = out.ParentPortalLink != ""

	copyText("order_id", &out.OrderID, d.OrderID)
	m.AssignedOrderID = out.OrderID != ""

	copyText("external_system_id", &out.ExternalSystemID, d.ExternalSystemID)
	m.AssignedExternalSystemID = out.ExternalSystemID != ""

	return Reconciliation{
		Organization:  out,
		Milestones:    m,
		ChangedFields: changed,
	}
}

// AddressCollected reports whether the onboarding holds a full shipping
// address and either a full billing address or the billing-same flag
func AddressCollected(d Details) bool {
	if !d.ShippingAddress.Complete() {
		return false
	}
	return d.BillingSameAsShipping || d.BillingAddress.Complete()
}
