package finance

import (
	"fmt"
	"strings"

	"github.com/campmanager/backend/internal/domain/shared"
)

// AccountType is the ledger behaviour of an account
type AccountType string

const (
	AccountTypeReceivable AccountType = "Receivable"
	AccountTypePayable    AccountType = "Payable"
)

// RootType is the top-level classification in the chart of accounts
type RootType string

const (
	RootTypeAsset     RootType = "Asset"
	RootTypeLiability RootType = "Liability"
)

// Account is a node in a company's chart of accounts
type Account struct {
	shared.BaseAggregateRoot
	// Name is the unique account identifier, "{AccountName} - {Abbr}"
	Name          string
	AccountName   string
	ParentAccount string
	Company       string
	Currency      string
	IsGroup       bool
	AccountType   AccountType
	RootType      RootType
}

// ReceivableParentName is the receivable group account every debtors
// account hangs under
func ReceivableParentName(abbr string) string {
	return "Accounts Receivable - " + abbr
}

// DebtorsAccountName is the account name of the receivable account for a currency
func DebtorsAccountName(currency string) string {
	return "Debtors " + strings.ToUpper(currency)
}

// NewGroupAccount creates a group account for a company
func NewGroupAccount(company *Company, accountName string, rootType RootType, accountType AccountType) (*Account, error) {
	if company == nil {
		return nil, shared.ErrNoActiveCompany
	}
	accountName = strings.TrimSpace(accountName)
	if accountName == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              fmt.Sprintf("%s - %s", accountName, company.Abbr),
		AccountName:       accountName,
		Company:           company.Name,
		Currency:          company.DefaultCurrency,
		IsGroup:           true,
		AccountType:       accountType,
		RootType:          rootType,
	}, nil
}

// NewReceivableAccount creates the leaf debtors account for a currency under
// the company's receivable group account
func NewReceivableAccount(company *Company, parent *Account, currency string) (*Account, error) {
	if company == nil {
		return nil, shared.ErrNoActiveCompany
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}
	if parent == nil || !parent.IsGroup {
		return nil, shared.NewDomainError(shared.CodeReceivableParentNotFound,
			fmt.Sprintf("Parent account '%s' not found", ReceivableParentName(company.Abbr)))
	}
	accountName := DebtorsAccountName(currency)
	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              fmt.Sprintf("%s - %s", accountName, company.Abbr),
		AccountName:       accountName,
		ParentAccount:     parent.Name,
		Company:           company.Name,
		Currency:          currency,
		IsGroup:           false,
		AccountType:       AccountTypeReceivable,
		RootType:          RootTypeAsset,
	}, nil
}
