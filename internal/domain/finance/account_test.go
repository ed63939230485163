package finance

import (
	"testing"

	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceivableAccount(t *testing.T) {
	company, err := NewCompany("Camp Manager Inc", "CMI", "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", company.DefaultCurrency)

	parent, err := NewGroupAccount(company, "Accounts Receivable", RootTypeAsset, AccountTypeReceivable)
	require.NoError(t, err)
	assert.Equal(t, ReceivableParentName("CMI"), parent.Name)

	t.Run("builds debtors leaf", func(t *testing.T) {
		acc, err := NewReceivableAccount(company, parent, "eur")

		require.NoError(t, err)
		assert.Equal(t, "Debtors EUR", acc.AccountName)
		assert.Equal(t, "Debtors EUR - CMI", acc.Name)
		assert.Equal(t, "Accounts Receivable - CMI", acc.ParentAccount)
		assert.Equal(t, "EUR", acc.Currency)
		assert.False(t, acc.IsGroup)
		assert.Equal(t, AccountTypeReceivable, acc.AccountType)
		assert.Equal(t, RootTypeAsset, acc.RootType)
	})

	t.Run("missing parent", func(t *testing.T) {
		_, err := NewReceivableAccount(company, nil, "EUR")
		assert.True(t, shared.IsDomainError(err, shared.CodeReceivableParentNotFound))
	})

	t.Run("missing company", func(t *testing.T) {
		_, err := NewReceivableAccount(nil, parent, "EUR")
		assert.ErrorIs(t, err, shared.ErrNoActiveCompany)
	})

	t.Run("empty currency", func(t *testing.T) {
		_, err := NewReceivableAccount(company, parent, " ")
		assert.Error(t, err)
	})
}
