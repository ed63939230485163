package finance

import (
	"strings"

	"github.com/campmanager/backend/internal/domain/shared"
)

// Company is the legal entity that owns the ledger
type Company struct {
	shared.BaseEntity
	Name            string
	Abbr            string
	DefaultCurrency string
}

// NewCompany creates a company
func NewCompany(name, abbr, defaultCurrency string) (*Company, error) {
	name = strings.TrimSpace(name)
	abbr = strings.TrimSpace(abbr)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if abbr == "" {
		return nil, shared.NewDomainError("INVALID_ABBR", "Company abbreviation cannot be empty")
	}
	return &Company{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		Abbr:            abbr,
		DefaultCurrency: strings.ToUpper(defaultCurrency),
	}, nil
}

// Currency is an entry in the currency reference table
type Currency struct {
	Code    string
	Name    string
	Enabled bool
}
