package finance

import (
	"context"
)

// AccountRepository defines the interface for chart-of-accounts persistence
type AccountRepository interface {
	// FindByName finds an account by its unique name
	FindByName(ctx context.Context, name string) (*Account, error)

	// FindChild finds the account called accountName under parent for a company
	FindChild(ctx context.Context, company, parent, accountName string) (*Account, error)

	// CountChildren counts the accounts under parent for a company
	CountChildren(ctx context.Context, company, parent string) (int64, error)

	// InsertIfAbsent inserts the account unless one with the same company,
	// parent and account name exists. It returns the stored account and
	// whether this call created it.
	InsertIfAbsent(ctx context.Context, account *Account) (*Account, bool, error)
}

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// FindActive returns the company the ledger runs under.
	// With several companies the first by name is used.
	FindActive(ctx context.Context) (*Company, error)

	// Save creates or updates a company
	Save(ctx context.Context, company *Company) error
}

// CurrencyRepository defines the interface for the currency reference table
type CurrencyRepository interface {
	FindByCode(ctx context.Context, code string) (*Currency, error)

	// Enable marks a currency enabled, creating the entry when missing
	Enable(ctx context.Context, code string) error
}
