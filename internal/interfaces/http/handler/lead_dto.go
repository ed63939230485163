package handler

import (
	"time"

	"github.com/campmanager/backend/internal/domain/crm"
)

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	CompanyName      string    `json:"company_name"`
	ContactName      string    `json:"contact_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	OrganizationType string    `json:"organization_type"`
	Phase            string    `json:"phase"`
	Converted        bool      `json:"converted"`
	Version          int       `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toLeadResponse(l *crm.Lead) LeadResponse {
	return LeadResponse{
		ID:               l.ID.String(),
		Name:             l.Name,
		CompanyName:      l.CompanyName,
		ContactName:      l.ContactName,
		Email:            l.Email,
		Phone:            l.Phone,
		OrganizationType: string(l.OrganizationKind),
		Phase:            string(l.Phase),
		Converted:        l.Converted,
		Version:          l.Version,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}
