package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/campmanager/backend/internal/domain/finance"
	"github.com/campmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// receivableGroupName is the account name of the receivable group account
const receivableGroupName = "Accounts Receivable"

// LedgerSeed describes the company to create on an empty ledger
type LedgerSeed struct {
	CompanyName     string
	CompanyAbbr     string
	DefaultCurrency string
}

// LedgerSeeder prepares an empty ledger for receivable accounts
type LedgerSeeder struct {
	companies  finance.CompanyRepository
	accounts   finance.AccountRepository
	currencies finance.CurrencyRepository
	logger     *zap.Logger
}

// NewLedgerSeeder creates a new LedgerSeeder
func NewLedgerSeeder(
	companies finance.CompanyRepository,
	accounts finance.AccountRepository,
	currencies finance.CurrencyRepository,
	logger *zap.Logger,
) *LedgerSeeder {
	return &LedgerSeeder{
		companies:  companies,
		accounts:   accounts,
		currencies: currencies,
		logger:     logger,
	}
}

// Seed creates the company, enables its currency and adds the
// "Accounts Receivable" group account. An existing company is kept as it is
// and only its receivable group is ensured.
func (s *LedgerSeeder) Seed(ctx context.Context, seed LedgerSeed) (*finance.Company, error) {
	company, err := s.companies.FindActive(ctx)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		company, err = finance.NewCompany(seed.CompanyName, seed.CompanyAbbr, seed.DefaultCurrency)
		if err != nil {
			return nil, err
		}
		if err := s.companies.Save(ctx, company); err != nil {
			return nil, fmt.Errorf("save company: %w", err)
		}
		s.logger.Info("company seeded",
			zap.String("company", company.Name),
			zap.String("abbr", company.Abbr),
		)
	case err != nil:
		return nil, fmt.Errorf("find active company: %w", err)
	}

	if company.DefaultCurrency != "" {
		if err := s.currencies.Enable(ctx, company.DefaultCurrency); err != nil {
			return nil, fmt.Errorf("enable currency %s: %w", company.DefaultCurrency, err)
		}
	}

	group, err := finance.NewGroupAccount(company, receivableGroupName, finance.RootTypeAsset, finance.AccountTypeReceivable)
	if err != nil {
		return nil, err
	}
	stored, created, err := s.accounts.InsertIfAbsent(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("insert receivable group: %w", err)
	}
	if created {
		s.logger.Info("receivable group account created", zap.String("account", stored.Name))
	}
	return company, nil
}
