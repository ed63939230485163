package models

import (
	"time"

	"github.com/campmanager/backend/internal/domain/onboarding"
	"github.com/campmanager/backend/internal/domain/organization"
)

// OnboardingModel is the persistence model for the Onboarding domain entity.
// Checklist flags are stored one column per milestone.
type OnboardingModel struct {
	AggregateModel
	Title            string                `gorm:"type:varchar(140);not null;uniqueIndex:idx_onboarding_title"`
	OrganizationKind organization.Kind     `gorm:"type:varchar(30);not null"`
	Phase            string                `gorm:"type:varchar(10);not null;default:'1';index"`
	Milestones       onboarding.Milestones `gorm:"embedded"`

	RegistrationMethod    string                 `gorm:"type:varchar(140)"`
	ExemptStatus          organization.TaxStatus `gorm:"type:varchar(20)"`
	TaxExemptID           string                 `gorm:"type:varchar(50)"`
	FirstDayOfCamp        *time.Time             `gorm:"type:date"`
	Association           string                 `gorm:"type:varchar(140)"`
	ShippingAddress       AddressColumns         `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress        AddressColumns         `gorm:"embedded;embeddedPrefix:billing_"`
	BillingSameAsShipping bool                   `gorm:"not null;default:false"`
	POCName               string                 `gorm:"column:poc_name;type:varchar(140)"`
	POCEmail              string                 `gorm:"column:poc_email;type:varchar(200)"`
	POCPhone              string                 `gorm:"column:poc_phone;type:varchar(50)"`
	Username              string                 `gorm:"type:varchar(140)"`
	Password              string                 `gorm:"type:varchar(140)"`
	ParentPortalLink      string                 `gorm:"type:varchar(500)"`
	OrderID               string                 `gorm:"type:varchar(140)"`
	ExternalSystemID      string                 `gorm:"type:varchar(140)"`
}

// TableName returns the table name for GORM
func (OnboardingModel) TableName() string {
	return "onboardings"
}

// ToDomain converts the persistence model to a domain Onboarding entity.
// An unreadable phase falls back to Stage1; the next save recomputes it.
func (m *OnboardingModel) ToDomain() *onboarding.Onboarding {
	phase, err := onboarding.ParsePhase(m.Phase)
	if err != nil {
		phase = onboarding.Stage1
	}
	return &onboarding.Onboarding{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Title:             m.Title,
		OrganizationKind:  m.OrganizationKind,
		Phase:             phase,
		Milestones:        m.Milestones,
		Details: onboarding.Details{
			RegistrationMethod:    m.RegistrationMethod,
			ExemptStatus:          m.ExemptStatus,
			TaxExemptID:           m.TaxExemptID,
			FirstDayOfCamp:        m.FirstDayOfCamp,
			Association:           m.Association,
			ShippingAddress:       m.ShippingAddress.ToDomain(),
			BillingAddress:        m.BillingAddress.ToDomain(),
			BillingSameAsShipping: m.BillingSameAsShipping,
			POCName:               m.POCName,
			POCEmail:              m.POCEmail,
			POCPhone:              m.POCPhone,
			Username:              m.Username,
			Password:              m.Password,
			ParentPortalLink:      m.ParentPortalLink,
			OrderID:               m.OrderID,
			ExternalSystemID:      m.ExternalSystemID,
		},
	}
}

// FromDomain populates the persistence model from a domain Onboarding entity.
func (m *OnboardingModel) FromDomain(o *onboarding.Onboarding) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.Title = o.Title
	m.OrganizationKind = o.OrganizationKind
	m.Phase = o.Phase.String()
	m.Milestones = o.Milestones

	d := o.Details
	m.RegistrationMethod = d.RegistrationMethod
	m.ExemptStatus = d.ExemptStatus
	m.TaxExemptID = d.TaxExemptID
	m.FirstDayOfCamp = d.FirstDayOfCamp
	m.Association = d.Association
	m.ShippingAddress = AddressColumnsFromDomain(d.ShippingAddress)
	m.BillingAddress = AddressColumnsFromDomain(d.BillingAddress)
	m.BillingSameAsShipping = d.BillingSameAsShipping
	m.POCName = d.POCName
	m.POCEmail = d.POCEmail
	m.POCPhone = d.POCPhone
	m.Username = d.Username
	m.Password = d.Password
	m.ParentPortalLink = d.ParentPortalLink
	m.OrderID = d.OrderID
	m.ExternalSystemID = d.ExternalSystemID
}

// OnboardingModelFromDomain creates a new persistence model from a domain Onboarding entity.
func OnboardingModelFromDomain(o *onboarding.Onboarding) *OnboardingModel {
	m := &OnboardingModel{}
	m.FromDomain(o)
	return m
}
