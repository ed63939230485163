package models

import (
	"github.com/campmanager/backend/internal/domain/crm"
	"github.com/campmanager/backend/internal/domain/organization"
)

// LeadModel is the persistence model for the Lead domain entity.
type LeadModel struct {
	AggregateModel
	Name             string            `gorm:"type:varchar(140);not null;uniqueIndex:idx_lead_name"`
	CompanyName      string            `gorm:"type:varchar(140);not null"`
	ContactName      string            `gorm:"type:varchar(140)"`
	Email            string            `gorm:"type:varchar(200)"`
	Phone            string            `gorm:"type:varchar(50)"`
	OrganizationKind organization.Kind `gorm:"type:varchar(30);not null"`
	Phase            crm.LeadPhase     `gorm:"type:varchar(20);not null;default:'New'"`
	Converted        bool              `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the persistence model to a domain Lead entity.
func (m *LeadModel) ToDomain() *crm.Lead {
	return &crm.Lead{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		CompanyName:       m.CompanyName,
		ContactName:       m.ContactName,
		Email:             m.Email,
		Phone:             m.Phone,
		OrganizationKind:  m.OrganizationKind,
		Phase:             m.Phase,
		Converted:         m.Converted,
	}
}

// FromDomain populates the persistence model from a domain Lead entity.
func (m *LeadModel) FromDomain(l *crm.Lead) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.Name = l.Name
	m.CompanyName = l.CompanyName
	m.ContactName = l.ContactName
	m.Email = l.Email
	m.Phone = l.Phone
	m.OrganizationKind = l.OrganizationKind
	m.Phase = l.Phase
	m.Converted = l.Converted
}

// LeadModelFromDomain creates a new persistence model from a domain Lead entity.
func LeadModelFromDomain(l *crm.Lead) *LeadModel {
	m := &LeadModel{}
	m.FromDomain(l)
	return m
}
