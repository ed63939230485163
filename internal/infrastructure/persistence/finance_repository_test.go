package persistence

import (
	"context"
	"testing"

	"github.com/campmanager/backend/internal/domain/finance"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormAccountRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	accounts := NewGormAccountRepository(db)
	companies := NewGormCompanyRepository(db)

	_, err := companies.FindActive(ctx)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	company, err := finance.NewCompany("Camp Manager Inc", "CMI", "USD")
	require.NoError(t, err)
	require.NoError(t, companies.Save(ctx, company))

	active, err := companies.FindActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CMI", active.Abbr)

	parent, err := finance.NewGroupAccount(company, "Accounts Receivable", finance.RootTypeAsset, finance.AccountTypeReceivable)
	require.NoError(t, err)
	_, created, err := accounts.InsertIfAbsent(ctx, parent)
	require.NoError(t, err)
	assert.True(t, created)

	foundParent, err := accounts.FindByName(ctx, finance.ReceivableParentName("CMI"))
	require.NoError(t, err)
	assert.True(t, foundParent.IsGroup)

	debtors, err := finance.NewReceivableAccount(company, foundParent, "eur")
	require.NoError(t, err)
	first, created, err := accounts.InsertIfAbsent(ctx, debtors)
	require.NoError(t, err)
	assert.True(t, created)

	again, err := finance.NewReceivableAccount(company, foundParent, "EUR")
	require.NoError(t, err)
	second, created, err := accounts.InsertIfAbsent(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	n, err := accounts.CountChildren(ctx, "Camp Manager Inc", foundParent.Name)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	child, err := accounts.FindChild(ctx, "Camp Manager Inc", foundParent.Name, "Debtors EUR")
	require.NoError(t, err)
	assert.Equal(t, "Debtors EUR - CMI", child.Name)
	assert.Equal(t, "EUR", child.Currency)
}

func TestGormCurrencyRepository_Enable(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCurrencyRepository(newTestDB(t))

	_, err := repo.FindByCode(ctx, "CAD")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, repo.Enable(ctx, "cad"))
	require.NoError(t, repo.Enable(ctx, "CAD"))

	cur, err := repo.FindByCode(ctx, "cad")
	require.NoError(t, err)
	assert.Equal(t, "CAD", cur.Code)
	assert.True(t, cur.Enabled)
}
