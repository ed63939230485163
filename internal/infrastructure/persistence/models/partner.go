package models

import (
	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	AggregateModel
	Name                  string                 `gorm:"type:varchar(140);not null;uniqueIndex:idx_customer_name"`
	LeadReference         string                 `gorm:"type:varchar(140)"`
	CustomerType          partner.CustomerType   `gorm:"type:varchar(20);not null;default:'Company'"`
	CampLink              *string                `gorm:"type:varchar(140);uniqueIndex:idx_customer_camp_link"`
	OtherOrganizationLink *string                `gorm:"type:varchar(140);uniqueIndex:idx_customer_other_organization_link"`
	TaxStatus             organization.TaxStatus `gorm:"type:varchar(20)"`
	TaxExemptionNumber    string                 `gorm:"type:varchar(50)"`
	Discount              decimal.NullDecimal    `gorm:"type:decimal(5,2)"`
	BillingAddress        AddressColumns         `gorm:"embedded;embeddedPrefix:billing_"`
	Email                 string                 `gorm:"type:varchar(200)"`
	Phone                 string                 `gorm:"type:varchar(50)"`
	DefaultCurrency       string                 `gorm:"type:varchar(3)"`
	Accounts              []CustomerAccountModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// CustomerAccountModel is one row of a customer's receivable account table
type CustomerAccountModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customer_account,priority:1"`
	Company    string    `gorm:"type:varchar(140);not null;uniqueIndex:idx_customer_account,priority:2"`
	Account    string    `gorm:"type:varchar(140);not null;uniqueIndex:idx_customer_account,priority:3"`
	Idx        int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerAccountModel) TableName() string {
	return "customer_accounts"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	c := &partner.Customer{
		BaseAggregateRoot:     m.ToDomainAggregateRoot(),
		Name:                  m.Name,
		LeadReference:         m.LeadReference,
		CustomerType:          m.CustomerType,
		CampLink:              derefString(m.CampLink),
		OtherOrganizationLink: derefString(m.OtherOrganizationLink),
		TaxStatus:             m.TaxStatus,
		TaxExemptionNumber:    m.TaxExemptionNumber,
		Discount:              m.Discount,
		BillingAddress:        m.BillingAddress.ToDomain(),
		Email:                 m.Email,
		Phone:                 m.Phone,
		DefaultCurrency:       m.DefaultCurrency,
	}
	for _, a := range m.Accounts {
		c.Accounts = append(c.Accounts, partner.AccountEntry{Company: a.Company, Account: a.Account})
	}
	return c
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.LeadReference = c.LeadReference
	m.CustomerType = c.CustomerType
	m.CampLink = nullableString(c.CampLink)
	m.OtherOrganizationLink = nullableString(c.OtherOrganizationLink)
	m.TaxStatus = c.TaxStatus
	m.TaxExemptionNumber = c.TaxExemptionNumber
	m.Discount = c.Discount
	m.BillingAddress = AddressColumnsFromDomain(c.BillingAddress)
	m.Email = c.Email
	m.Phone = c.Phone
	m.DefaultCurrency = c.DefaultCurrency
	m.Accounts = make([]CustomerAccountModel, len(c.Accounts))
	for i, a := range c.Accounts {
		m.Accounts[i] = CustomerAccountModel{
			ID:         uuid.New(),
			CustomerID: c.ID,
			Company:    a.Company,
			Account:    a.Account,
			Idx:        i,
		}
	}
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
