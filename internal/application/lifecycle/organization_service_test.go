package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCamp(t *testing.T, name string) *organization.Organization {
	t.Helper()
	org, err := organization.NewOrganization(organization.KindCamp, name)
	require.NoError(t, err)
	return org
}

func address(country string) valueobject.Address {
	return valueobject.Address{
		Street1: "1 Lake Rd",
		Street2: "Cabin 4",
		City:    "Lakeside",
		State:   "LS",
		ZipCode: "10001",
		Country: country,
	}
}

func TestOrganizationSave_DerivesCurrencyFromCountry(t *testing.T) {
	tests := []struct {
		name     string
		shipping string
		billing  string
		want     string
	}{
		{"shipping country", "Germany", "", "EUR"},
		{"billing country when shipping is empty", "", "Canada", "CAD"},
		{"unknown country defaults to USD", "Atlantis", "", "USD"},
		{"no country leaves currency unset", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.withLedger()
			f.expectEnqueue()
			org := newCamp(t, "Camp Pine")
			org.ShippingAddress.Country = tt.shipping
			org.BillingAddress.Country = tt.billing

			result, err := f.organization.Save(context.Background(), org)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Organization.Currency)
		})
	}
}

func TestOrganizationSave_CurrencyKeptWhenShippingCountryUnchanged(t *testing.T) {
	f := newFixture()
	f.withLedger()
	f.expectEnqueue()
	ctx := context.Background()
	org := newCamp(t, "Camp Pine")
	org.ShippingAddress = address("Germany")
	_, err := f.organization.Save(ctx, org)
	require.NoError(t, err)

	stored, err := f.orgs.FindByID(ctx, org.ID)
	require.NoError(t, err)
	stored.Currency = "GBP"
	stored.Phone = "555-0199"
	_, err = f.organization.Save(ctx, stored)
	require.NoError(t, err)

	after, err := f.orgs.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "GBP", after.Currency)
}

func TestOrganizationSave_AssociationDiscount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	org := newCamp(t, "Camp Pine")
	org.Association = "American Camp Association"

	result, err := f.organization.Save(ctx, org)
	require.NoError(t, err)
	require.True(t, result.Organization.AssociationDiscount.Valid)
	assert.True(t, decimal.NewFromInt(10).Equal(result.Organization.AssociationDiscount.Decimal))

	customer, err := f.customers.FindByOrganization(ctx, organization.KindCamp, "Camp Pine")
	require.NoError(t, err)
	require.True(t, customer.Discount.Valid)
	assert.True(t, decimal.NewFromInt(10).Equal(customer.Discount.Decimal))
}

func TestOrganizationSave_UnknownAssociationLeavesDiscountUnset(t *testing.T) {
	f := newFixture()
	org := newCamp(t, "Camp Pine")
	org.Association = "Unlisted Guild"

	result, err := f.organization.Save(context.Background(), org)
	require.NoError(t, err)
	assert.False(t, result.Organization.AssociationDiscount.Valid)
}

func TestOrganizationSave_SettingsLinkMarksCampLinked(t *testing.T) {
	f := newFixture()
	org := newCamp(t, "Camp Pine")
	org.SettingsLink = "Camp Pine"

	result, err := f.organization.Save(context.Background(), org)
	require.NoError(t, err)
	assert.Equal(t, organization.SettingsStatusLinked, result.Organization.SettingsStatus)
}

func TestOrganizationSave_DuplicateName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.organization.Save(ctx, newCamp(t, "Camp Pine"))
	require.NoError(t, err)

	_, err = f.organization.Save(ctx, newCamp(t, "Camp Pine"))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	// the same name is free for the other kind
	other, err := organization.NewOrganization(organization.KindOtherOrganization, "Camp Pine")
	require.NoError(t, err)
	_, err = f.organization.Save(ctx, other)
	assert.NoError(t, err)
}

func TestOrganizationSave_ProvisionsUserCreatedOrganization(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.organization.Save(ctx, newCamp(t, "Camp Pine"))
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.True(t, result.Organization.CustomerAndOnboardingCreated)
	assert.Equal(t, 1, f.customers.count())
	assert.Equal(t, 1, f.onboardings.count())
	assert.Equal(t, []string{
		"Camp Camp Pine created",
		"Customer Camp Pine created",
		"Onboarding document for Camp Pine created",
	}, noticeMessages(result.Notices))
}

func TestOrganizationSave_SyncsCustomerAndQueuesAccount(t *testing.T) {
	f := newFixture()
	company := f.withLedger()
	ctx := context.Background()

	_, err := f.organization.Save(ctx, newCamp(t, "Camp Pine"))
	require.NoError(t, err)
	customer, err := f.customers.FindByName(ctx, "Camp Pine")
	require.NoError(t, err)

	f.queue.On("Enqueue", mock.Anything, TaskAttachAccount, customer.ID.String()+":Camp Pine Holdings:Debtors EUR - CP",
		AttachAccountTask{CustomerID: customer.ID, Company: company.Name, Account: "Debtors EUR - CP"}).
		Return(true, nil).Once()

	org, err := f.orgs.FindByName(ctx, organization.KindCamp, "Camp Pine")
	require.NoError(t, err)
	org.TaxStatus = organization.TaxStatusExempt
	org.TaxExemptionNumber = "EX-42"
	org.Email = "office@campppine.example"
	org.ShippingAddress = address("Germany")

	result, err := f.organization.Save(ctx, org)
	require.NoError(t, err)
	assert.Empty(t, result.Notices)
	assert.Equal(t, "EUR", result.Organization.Currency)

	customer, err = f.customers.FindByName(ctx, "Camp Pine")
	require.NoError(t, err)
	assert.Equal(t, organization.TaxStatusExempt, customer.TaxStatus)
	assert.Equal(t, "EX-42", customer.TaxExemptionNumber)
	assert.Equal(t, "office@campppine.example", customer.Email)
	assert.Equal(t, address("Germany"), customer.BillingAddress)
	assert.Equal(t, "EUR", customer.DefaultCurrency)

	account, err := f.accounts.FindByName(ctx, "Debtors EUR - CP")
	require.NoError(t, err)
	assert.Equal(t, "Accounts Receivable - CP", account.ParentAccount)
	assert.True(t, f.currencies.enabled["EUR"])
	f.queue.AssertExpectations(t)
}

func TestOrganizationSave_PrefersCompleteBillingAddress(t *testing.T) {
	f := newFixture()
	f.withLedger()
	f.expectEnqueue()
	ctx := context.Background()

	org := newCamp(t, "Camp Pine")
	org.ShippingAddress = address("United States")
	org.BillingAddress = address("United States")
	org.BillingAddress.Street1 = "PO Box 9"
	_, err := f.organization.Save(ctx, org)
	require.NoError(t, err)

	customer, err := f.customers.FindByName(ctx, "Camp Pine")
	require.NoError(t, err)
	assert.Equal(t, "PO Box 9", customer.BillingAddress.Street1)
}

func TestOrganizationSave_MissingReceivableParentBlocksCurrencyChange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.organization.Save(ctx, newCamp(t, "Camp Pine"))
	require.NoError(t, err)
	org, err := f.orgs.FindByName(ctx, organization.KindCamp, "Camp Pine")
	require.NoError(t, err)
	version := org.Version

	// a company without its receivable group account
	company := f.withLedger()
	delete(f.accounts.byName, "Accounts Receivable - "+company.Abbr)

	org.ShippingAddress = address("Germany")
	_, err = f.organization.Save(ctx, org)
	require.Error(t, err)
	assert.True(t, shared.IsDomainError(err, shared.CodeReceivableParentNotFound))
	assert.Contains(t, err.Error(), "Accounts Receivable - CP")

	after, err := f.orgs.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, version, after.Version)
	assert.Empty(t, after.Currency)
	f.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrganizationSave_CustomerSyncFailureIsANotice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// no company: the new customer's currency cannot get an account
	org := newCamp(t, "Camp Pine")
	org.ShippingAddress = address("Germany")
	result, err := f.organization.Save(ctx, org)
	require.NoError(t, err)

	stored, err := f.orgs.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "EUR", stored.Currency)

	require.NotEmpty(t, result.Notices)
	last := result.Notices[len(result.Notices)-1]
	assert.Equal(t, NoticeError, last.Level)
	assert.Contains(t, last.Message, "Could not update customer")
	assert.Contains(t, last.Message, shared.ErrNoActiveCompany.Message)

	// the customer keeps its old currency until the account can be attached
	customer, err := f.customers.FindByOrganization(ctx, organization.KindCamp, "Camp Pine")
	require.NoError(t, err)
	assert.Empty(t, customer.DefaultCurrency)
	f.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// once a ledger exists the next save attaches the account
	f.withLedger()
	f.expectEnqueue()
	_, err = f.organization.Save(ctx, stored)
	require.NoError(t, err)

	customer, err = f.customers.FindByOrganization(ctx, organization.KindCamp, "Camp Pine")
	require.NoError(t, err)
	assert.Equal(t, "EUR", customer.DefaultCurrency)
	f.queue.AssertCalled(t, "Enqueue", mock.Anything, TaskAttachAccount, mock.Anything,
		AttachAccountTask{CustomerID: customer.ID, Company: "Camp Pine Holdings", Account: "Debtors EUR - CP"})
}

func TestOrganizationSave_FailedEnqueueKeepsCustomerCurrency(t *testing.T) {
	f := newFixture()
	f.withLedger()
	ctx := context.Background()
	f.queue.On("Enqueue", mock.Anything, TaskAttachAccount, mock.Anything, mock.Anything).
		Return(false, errors.New("task queue is full")).Once()

	org := newCamp(t, "Camp Pine")
	org.ShippingAddress = address("Germany")
	org.Email = "office@camppine.example"
	result, err := f.organization.Save(ctx, org)
	require.NoError(t, err)
	assert.Contains(t, noticeMessages(result.Notices), "Could not update customer: attach receivable account to 'Camp Pine': enqueue customer.attach_account: task queue is full")

	customer, err := f.customers.FindByOrganization(ctx, organization.KindCamp, "Camp Pine")
	require.NoError(t, err)
	assert.Empty(t, customer.DefaultCurrency)
	assert.Equal(t, "office@camppine.example", customer.Email)

	f.expectEnqueue()
	stored, err := f.orgs.FindByID(ctx, org.ID)
	require.NoError(t, err)
	_, err = f.organization.Save(ctx, stored)
	require.NoError(t, err)

	customer, err = f.customers.FindByOrganization(ctx, organization.KindCamp, "Camp Pine")
	require.NoError(t, err)
	assert.Equal(t, "EUR", customer.DefaultCurrency)
}

func TestOrganizationSave_StaleVersionConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.organization.Save(ctx, newCamp(t, "Camp Pine"))
	require.NoError(t, err)

	a, err := f.orgs.FindByName(ctx, organization.KindCamp, "Camp Pine")
	require.NoError(t, err)
	b, err := f.orgs.FindByName(ctx, organization.KindCamp, "Camp Pine")
	require.NoError(t, err)

	a.Phone = "555-0001"
	_, err = f.organization.Save(ctx, a)
	require.NoError(t, err)

	b.Phone = "555-0002"
	_, err = f.organization.Save(ctx, b)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}
