package models

import (
	"github.com/campmanager/backend/internal/domain/finance"
)

// AccountModel is the persistence model for the Account domain entity.
type AccountModel struct {
	AggregateModel
	Name          string              `gorm:"type:varchar(200);not null;uniqueIndex:idx_account_name"`
	AccountName   string              `gorm:"type:varchar(140);not null;uniqueIndex:idx_account_company_parent_name,priority:3"`
	ParentAccount string              `gorm:"type:varchar(200);not null;default:'';uniqueIndex:idx_account_company_parent_name,priority:2"`
	Company       string              `gorm:"type:varchar(140);not null;uniqueIndex:idx_account_company_parent_name,priority:1"`
	Currency      string              `gorm:"type:varchar(3)"`
	IsGroup       bool                `gorm:"not null;default:false"`
	AccountType   finance.AccountType `gorm:"type:varchar(20)"`
	RootType      finance.RootType    `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *finance.Account {
	return &finance.Account{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		AccountName:       m.AccountName,
		ParentAccount:     m.ParentAccount,
		Company:           m.Company,
		Currency:          m.Currency,
		IsGroup:           m.IsGroup,
		AccountType:       m.AccountType,
		RootType:          m.RootType,
	}
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *finance.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Name = a.Name
	m.AccountName = a.AccountName
	m.ParentAccount = a.ParentAccount
	m.Company = a.Company
	m.Currency = a.Currency
	m.IsGroup = a.IsGroup
	m.AccountType = a.AccountType
	m.RootType = a.RootType
}

// AccountModelFromDomain creates a new persistence model from a domain Account entity.
func AccountModelFromDomain(a *finance.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// CompanyModel is the persistence model for the Company domain entity.
type CompanyModel struct {
	BaseModel
	Name            string `gorm:"type:varchar(140);not null;uniqueIndex:idx_company_name"`
	Abbr            string `gorm:"type:varchar(20);not null"`
	DefaultCurrency string `gorm:"type:varchar(3)"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *finance.Company {
	return &finance.Company{
		BaseEntity:      m.BaseModel.ToDomain(),
		Name:            m.Name,
		Abbr:            m.Abbr,
		DefaultCurrency: m.DefaultCurrency,
	}
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *finance.Company) *CompanyModel {
	m := &CompanyModel{
		Name:            c.Name,
		Abbr:            c.Abbr,
		DefaultCurrency: c.DefaultCurrency,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// CurrencyModel is the persistence model for the currency reference table.
type CurrencyModel struct {
	Code    string `gorm:"type:varchar(3);primary_key"`
	Name    string `gorm:"type:varchar(100)"`
	Enabled bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToDomain converts the persistence model to a domain Currency.
func (m *CurrencyModel) ToDomain() *finance.Currency {
	return &finance.Currency{Code: m.Code, Name: m.Name, Enabled: m.Enabled}
}
