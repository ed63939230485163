package organization

// Kind discriminates the two organization variants. Both share one shape;
// the kind selects identity and the customer link column.
type Kind string

const (
	KindCamp              Kind = "Camp"
	KindOtherOrganization Kind = "Other Organization"
)

// IsValid reports whether k is a known kind
func (k Kind) IsValid() bool {
	return k == KindCamp || k == KindOtherOrganization
}

// IsCamp reports whether k is the camp variant
func (k Kind) IsCamp() bool {
	return k == KindCamp
}

// CustomerLinkField returns the customer column that references an
// organization of this kind
func (k Kind) CustomerLinkField() string {
	if k == KindCamp {
		return "camp_link"
	}
	return "other_organization_link"
}

// TaxStatus is the sales tax standing of an organization
type TaxStatus string

const (
	TaxStatusExempt  TaxStatus = "Exempt"
	TaxStatusTaxed   TaxStatus = "Taxed"
	TaxStatusPending TaxStatus = "Pending"
)

// IsValid reports whether s is a known tax status. The empty status is valid.
func (s TaxStatus) IsValid() bool {
	switch s {
	case "", TaxStatusExempt, TaxStatusTaxed, TaxStatusPending:
		return true
	}
	return false
}

// SettingsStatus tracks whether a camp has been linked to its settings record
type SettingsStatus string

const (
	SettingsStatusLinked   SettingsStatus = "Linked"
	SettingsStatusUnlinked SettingsStatus = "Unlinked"
)
