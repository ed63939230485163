package models

import (
	"time"

	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/shopspring/decimal"
)

// OrganizationModel is the persistence model for the Organization domain entity.
type OrganizationModel struct {
	AggregateModel
	Kind                         organization.Kind           `gorm:"type:varchar(30);not null;uniqueIndex:idx_organization_kind_name,priority:1"`
	Name                         string                      `gorm:"type:varchar(140);not null;uniqueIndex:idx_organization_kind_name,priority:2"`
	ContactName                  string                      `gorm:"type:varchar(140)"`
	Email                        string                      `gorm:"type:varchar(200)"`
	Phone                        string                      `gorm:"type:varchar(50)"`
	LeadReference                string                      `gorm:"type:varchar(140);index"`
	RegistrationSoftware         string                      `gorm:"type:varchar(140)"`
	TaxStatus                    organization.TaxStatus      `gorm:"type:varchar(20)"`
	TaxExemptionNumber           string                      `gorm:"type:varchar(50)"`
	FirstDayOfCamp               *time.Time                  `gorm:"type:date"`
	Association                  string                      `gorm:"type:varchar(140)"`
	AssociationDiscount          decimal.NullDecimal         `gorm:"type:decimal(5,2)"`
	Currency                     string                      `gorm:"type:varchar(3)"`
	ShippingAddress              AddressColumns              `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress               AddressColumns              `gorm:"embedded;embeddedPrefix:billing_"`
	BillingSameAsShipping        bool                        `gorm:"not null;default:false"`
	Username                     string                      `gorm:"type:varchar(140)"`
	Password                     string                      `gorm:"type:varchar(140)"`
	ParentPortalLink             string                      `gorm:"type:varchar(500)"`
	OrderID                      string                      `gorm:"type:varchar(140)"`
	ExternalSystemID             string                      `gorm:"type:varchar(140)"`
	SettingsLink                 string                      `gorm:"type:varchar(500)"`
	SettingsStatus               organization.SettingsStatus `gorm:"type:varchar(20)"`
	CustomerAndOnboardingCreated bool                        `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (OrganizationModel) TableName() string {
	return "organizations"
}

// ToDomain converts the persistence model to a domain Organization entity.
func (m *OrganizationModel) ToDomain() *organization.Organization {
	return &organization.Organization{
		BaseAggregateRoot:            m.ToDomainAggregateRoot(),
		Kind:                         m.Kind,
		Name:                         m.Name,
		ContactName:                  m.ContactName,
		Email:                        m.Email,
		Phone:                        m.Phone,
		LeadReference:                m.LeadReference,
		RegistrationSoftware:         m.RegistrationSoftware,
		TaxStatus:                    m.TaxStatus,
		TaxExemptionNumber:           m.TaxExemptionNumber,
		FirstDayOfCamp:               m.FirstDayOfCamp,
		Association:                  m.Association,
		AssociationDiscount:          m.AssociationDiscount,
		Currency:                     m.Currency,
		ShippingAddress:              m.ShippingAddress.ToDomain(),
		BillingAddress:               m.BillingAddress.ToDomain(),
		BillingSameAsShipping:        m.BillingSameAsShipping,
		Username:                     m.Username,
		Password:                     m.Password,
		ParentPortalLink:             m.ParentPortalLink,
		OrderID:                      m.OrderID,
		ExternalSystemID:             m.ExternalSystemID,
		SettingsLink:                 m.SettingsLink,
		SettingsStatus:               m.SettingsStatus,
		CustomerAndOnboardingCreated: m.CustomerAndOnboardingCreated,
	}
}

// FromDomain populates the persistence model from a domain Organization entity.
func (m *OrganizationModel) FromDomain(o *organization.Organization) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.Kind = o.Kind
	m.Name = o.Name
	m.ContactName = o.ContactName
	m.Email = o.Email
	m.Phone = o.Phone
	m.LeadReference = o.LeadReference
	m.RegistrationSoftware = o.RegistrationSoftware
	m.TaxStatus = o.TaxStatus
	m.TaxExemptionNumber = o.TaxExemptionNumber
	m.FirstDayOfCamp = o.FirstDayOfCamp
	m.Association = o.Association
	m.AssociationDiscount = o.AssociationDiscount
	m.Currency = o.Currency
	m.ShippingAddress = AddressColumnsFromDomain(o.ShippingAddress)
	m.BillingAddress = AddressColumnsFromDomain(o.BillingAddress)
	m.BillingSameAsShipping = o.BillingSameAsShipping
	m.Username = o.Username
	m.Password = o.Password
	m.ParentPortalLink = o.ParentPortalLink
	m.OrderID = o.OrderID
	m.ExternalSystemID = o.ExternalSystemID
	m.SettingsLink = o.SettingsLink
	m.SettingsStatus = o.SettingsStatus
	m.CustomerAndOnboardingCreated = o.CustomerAndOnboardingCreated
}

// OrganizationModelFromDomain creates a new persistence model from a domain Organization entity.
func OrganizationModelFromDomain(o *organization.Organization) *OrganizationModel {
	m := &OrganizationModel{}
	m.FromDomain(o)
	return m
}
