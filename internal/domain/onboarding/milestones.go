package onboarding

// Milestones is the onboarding checklist. Flags are raised by users or by
// field reconciliation and are never lowered by the system.
type Milestones struct {
	// Phase 2
	ChoseServicePackage    bool
	SelectedFeatures       bool
	RegistrationIdentified bool
	TaxExemptIDGathered    bool
	FirstDayOfCampProvided bool

	// Phase 3
	CollectedAddress         bool
	GatheredPOCInformation   bool
	AccountSetup             bool
	AssignedOrderID          bool
	AssignedExternalSystemID bool
	SetUpParentPortal        bool
	SetUpAdminConsole        bool
	SentRetailTrainingGuide  bool
	SetDiscount              bool

	// Phase 4
	CompletedDataSettingsForm bool
	DownloadedApps            bool
	CampSetUpSoftware         bool
	BrandingReceived          bool

	// Phase 5
	WristbandAndScannerOrder bool
	OrderNotApplicable       bool

	// Phase 6
	InventorySetup    bool
	CarePackagesSetup bool

	// Phase 7
	RegistrationSynced           bool
	SpecialRequirementsFulfilled bool

	// Phase 8
	TestedParentInvitation bool

	Live bool
}

// ServiceDefined unlocks phase 2
func (m Milestones) ServiceDefined() bool {
	return m.ChoseServicePackage && m.SelectedFeatures && m.RegistrationIdentified &&
		m.TaxExemptIDGathered && m.FirstDayOfCampProvided
}

// OrganizationProfiled unlocks phase 3
func (m Milestones) OrganizationProfiled() bool {
	return m.CollectedAddress && m.GatheredPOCInformation && m.AccountSetup &&
		m.AssignedOrderID && m.AssignedExternalSystemID && m.SetUpParentPortal &&
		m.SetUpAdminConsole && m.SentRetailTrainingGuide && m.SetDiscount
}

// SoftwareConfigured unlocks phase 4
func (m Milestones) SoftwareConfigured() bool {
	return m.CompletedDataSettingsForm && m.DownloadedApps && m.CampSetUpSoftware && m.BrandingReceived
}

// HardwareOrdered unlocks phase 5
func (m Milestones) HardwareOrdered() bool {
	return m.WristbandAndScannerOrder || m.OrderNotApplicable
}

// MerchandiseReady unlocks phase 6
func (m Milestones) MerchandiseReady() bool {
	return m.InventorySetup && m.CarePackagesSetup
}

// RegistrationReady unlocks phase 7
func (m Milestones) RegistrationReady() bool {
	return m.RegistrationSynced && m.SpecialRequirementsFulfilled
}

// ParentsInvited unlocks phase 8
func (m Milestones) ParentsInvited() bool {
	return m.TestedParentInvitation
}

// WentLive unlocks the Live phase
func (m Milestones) WentLive() bool {
	return m.Live
}

// Raise returns m with every flag set in other also set
func (m Milestones) Raise(other Milestones) Milestones {
	m.ChoseServicePackage = m.ChoseServicePackage || other.ChoseServicePackage
	m.SelectedFeatures = m.SelectedFeatures || other.SelectedFeatures
	m.RegistrationIdentified = m.RegistrationIdentified || other.RegistrationIdentified
	m.TaxExemptIDGathered = m.TaxExemptIDGathered || other.TaxExemptIDGathered
	m.FirstDayOfCampProvided = m.FirstDayOfCampProvided || other.FirstDayOfCampProvided
	m.CollectedAddress = m.CollectedAddress || other.CollectedAddress
	m.GatheredPOCInformation = m.GatheredPOCInformation || other.GatheredPOCInformation
	m.AccountSetup = m.AccountSetup || other.AccountSetup
	m.AssignedOrderID = m.AssignedOrderID || other.AssignedOrderID
	m.AssignedExternalSystemID = m.AssignedExternalSystemID || other.AssignedExternalSystemID
	m.SetUpParentPortal = m.SetUpParentPortal || other.SetUpParentPortal
	m.SetUpAdminConsole = m.SetUpAdminConsole || other.SetUpAdminConsole
	m.SentRetailTrainingGuide = m.SentRetailTrainingGuide || other.SentRetailTrainingGuide
	m.SetDiscount = m.SetDiscount || other.SetDiscount
	m.CompletedDataSettingsForm = m.CompletedDataSettingsForm || other.CompletedDataSettingsForm
	m.DownloadedApps = m.DownloadedApps || other.DownloadedApps
	m.CampSetUpSoftware = m.CampSetUpSoftware || other.CampSetUpSoftware
	m.BrandingReceived = m.BrandingReceived || other.BrandingReceived
	m.WristbandAndScannerOrder = m.WristbandAndScannerOrder || other.WristbandAndScannerOrder
	m.OrderNotApplicable = m.OrderNotApplicable || other.OrderNotApplicable
	m.InventorySetup = m.InventorySetup || other.InventorySetup
	m.CarePackagesSetup = m.CarePackagesSetup || other.CarePackagesSetup
	m.RegistrationSynced = m.RegistrationSynced || other.RegistrationSynced
	m.SpecialRequirementsFulfilled = m.SpecialRequirementsFulfilled || other.SpecialRequirementsFulfilled
	m.TestedParentInvitation = m.TestedParentInvitation || other.TestedParentInvitation
	m.Live = m.Live || other.Live
	return m
}
