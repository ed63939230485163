package handler

import (
	"time"

	"github.com/campmanager/backend/internal/domain/onboarding"
	"github.com/campmanager/backend/internal/domain/shared/valueobject"
)

// MilestonesDTO is the onboarding checklist on the wire
type MilestonesDTO struct {
	ChoseServicePackage    bool `json:"chose_service_package"`
	SelectedFeatures       bool `json:"selected_features"`
	RegistrationIdentified bool `json:"registration_identified"`
	TaxExemptIDGathered    bool `json:"tax_exempt_id_gathered"`
	FirstDayOfCampProvided bool `json:"first_day_of_camp_provided"`

	CollectedAddress         bool `json:"collected_address"`
	GatheredPOCInformation   bool `json:"gathered_poc_information"`
	AccountSetup             bool `json:"account_setup"`
	AssignedOrderID          bool `json:"assigned_order_id"`
	AssignedExternalSystemID bool `json:"assigned_external_system_id"`
	SetUpParentPortal        bool `json:"set_up_parent_portal"`
	SetUpAdminConsole        bool `json:"set_up_admin_console"`
	SentRetailTrainingGuide  bool `json:"sent_retail_training_guide"`
	SetDiscount              bool `json:"set_discount"`

	CompletedDataSettingsForm bool `json:"completed_data_settings_form"`
	DownloadedApps            bool `json:"downloaded_apps"`
	CampSetUpSoftware         bool `json:"camp_set_up_software"`
	BrandingReceived          bool `json:"branding_received"`

	WristbandAndScannerOrder bool `json:"wristband_and_scanner_order"`
	OrderNotApplicable       bool `json:"order_not_applicable"`

	InventorySetup    bool `json:"inventory_setup"`
	CarePackagesSetup bool `json:"care_packages_setup"`

	RegistrationSynced           bool `json:"registration_synced"`
	SpecialRequirementsFulfilled bool `json:"special_requirements_fulfilled"`

	TestedParentInvitation bool `json:"tested_parent_invitation"`

	Live bool `json:"live"`
}

func (m MilestonesDTO) toDomain() onboarding.Milestones {
	return onboarding.Milestones{
		ChoseServicePackage:          m.ChoseServicePackage,
		SelectedFeatures:             m.SelectedFeatures,
		RegistrationIdentified:       m.RegistrationIdentified,
		TaxExemptIDGathered:          m.TaxExemptIDGathered,
		FirstDayOfCampProvided:       m.FirstDayOfCampProvided,
		CollectedAddress:             m.CollectedAddress,
		GatheredPOCInformation:       m.GatheredPOCInformation,
		AccountSetup:                 m.AccountSetup,
		AssignedOrderID:              m.AssignedOrderID,
		AssignedExternalSystemID:     m.AssignedExternalSystemID,
		SetUpParentPortal:            m.SetUpParentPortal,
		SetUpAdminConsole:            m.SetUpAdminConsole,
		SentRetailTrainingGuide:      m.SentRetailTrainingGuide,
		SetDiscount:                  m.SetDiscount,
		CompletedDataSettingsForm:    m.CompletedDataSettingsForm,
		DownloadedApps:               m.DownloadedApps,
		CampSetUpSoftware:            m.CampSetUpSoftware,
		BrandingReceived:             m.BrandingReceived,
		WristbandAndScannerOrder:     m.WristbandAndScannerOrder,
		OrderNotApplicable:           m.OrderNotApplicable,
		InventorySetup:               m.InventorySetup,
		CarePackagesSetup:            m.CarePackagesSetup,
		RegistrationSynced:           m.RegistrationSynced,
		SpecialRequirementsFulfilled: m.SpecialRequirementsFulfilled,
		TestedParentInvitation:       m.TestedParentInvitation,
		Live:                         m.Live,
	}
}

func toMilestonesDTO(m onboarding.Milestones) MilestonesDTO {
	return MilestonesDTO{
		ChoseServicePackage:          m.ChoseServicePackage,
		SelectedFeatures:             m.SelectedFeatures,
		RegistrationIdentified:       m.RegistrationIdentified,
		TaxExemptIDGathered:          m.TaxExemptIDGathered,
		FirstDayOfCampProvided:       m.FirstDayOfCampProvided,
		CollectedAddress:             m.CollectedAddress,
		GatheredPOCInformation:       m.GatheredPOCInformation,
		AccountSetup:                 m.AccountSetup,
		AssignedOrderID:              m.AssignedOrderID,
		AssignedExternalSystemID:     m.AssignedExternalSystemID,
		SetUpParentPortal:            m.SetUpParentPortal,
		SetUpAdminConsole:            m.SetUpAdminConsole,
		SentRetailTrainingGuide:      m.SentRetailTrainingGuide,
		SetDiscount:                  m.SetDiscount,
		CompletedDataSettingsForm:    m.CompletedDataSettingsForm,
		DownloadedApps:               m.DownloadedApps,
		CampSetUpSoftware:            m.CampSetUpSoftware,
		BrandingReceived:             m.BrandingReceived,
		WristbandAndScannerOrder:     m.WristbandAndScannerOrder,
		OrderNotApplicable:           m.OrderNotApplicable,
		InventorySetup:               m.InventorySetup,
		CarePackagesSetup:            m.CarePackagesSetup,
		RegistrationSynced:           m.RegistrationSynced,
		SpecialRequirementsFulfilled: m.SpecialRequirementsFulfilled,
		TestedParentInvitation:       m.TestedParentInvitation,
		Live:                         m.Live,
	}
}

// OnboardingDetailsResponse holds the mirrored organization fields.
// The portal password is never returned.
type OnboardingDetailsResponse struct {
	RegistrationMethod    string              `json:"registration_method"`
	ExemptStatus          string              `json:"exempt_status"`
	TaxExemptID           string              `json:"tax_exempt_id"`
	FirstDayOfCamp        string              `json:"first_day_of_camp,omitempty"`
	Association           string              `json:"association"`
	ShippingAddress       valueobject.Address `json:"shipping_address"`
	BillingAddress        valueobject.Address `json:"billing_address"`
	BillingSameAsShipping bool                `json:"billing_same_as_shipping"`
	POCName               string              `json:"poc_name"`
	POCEmail              string              `json:"poc_email"`
	POCPhone              string              `json:"poc_phone"`
	Username              string              `json:"username"`
	ParentPortalLink      string              `json:"parent_portal_link"`
	OrderID               string              `json:"order_id"`
	ExternalSystemID      string              `json:"external_system_id"`
}

// OnboardingResponse represents an onboarding in API responses
type OnboardingResponse struct {
	ID               string                    `json:"id"`
	Title            string                    `json:"title"`
	OrganizationType string                    `json:"organization_type"`
	Phase            string                    `json:"phase"`
	Milestones       MilestonesDTO             `json:"milestones"`
	Details          OnboardingDetailsResponse `json:"details"`
	Version          int                       `json:"version"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

// OnboardingSaveResponse adds what a save changed to the onboarding
type OnboardingSaveResponse struct {
	OnboardingResponse
	PhaseChanged  bool     `json:"phase_changed"`
	ChangedFields []string `json:"changed_organization_fields,omitempty"`
}

func toOnboardingResponse(o *onboarding.Onboarding) OnboardingResponse {
	d := o.Details
	return OnboardingResponse{
		ID:               o.ID.String(),
		Title:            o.Title,
		OrganizationType: string(o.OrganizationKind),
		Phase:            o.Phase.String(),
		Milestones:       toMilestonesDTO(o.Milestones),
		Details: OnboardingDetailsResponse{
			RegistrationMethod:    d.RegistrationMethod,
			ExemptStatus:          string(d.ExemptStatus),
			TaxExemptID:           d.TaxExemptID,
			FirstDayOfCamp:        formatDate(d.FirstDayOfCamp),
			Association:           d.Association,
			ShippingAddress:       d.ShippingAddress,
			BillingAddress:        d.BillingAddress,
			BillingSameAsShipping: d.BillingSameAsShipping,
			POCName:               d.POCName,
			POCEmail:              d.POCEmail,
			POCPhone:              d.POCPhone,
			Username:              d.Username,
			ParentPortalLink:      d.ParentPortalLink,
			OrderID:               d.OrderID,
			ExternalSystemID:      d.ExternalSystemID,
		},
		Version:   o.Version,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
