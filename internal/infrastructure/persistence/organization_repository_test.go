package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campmanager/backend/internal/domain/organization"
	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newCamp(t *testing.T, name string) *organization.Organization {
	t.Helper()
	org, err := organization.NewOrganization(organization.KindCamp, name)
	require.NoError(t, err)
	return org
}

func TestGormOrganizationRepository_InsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrganizationRepository(newTestDB(t))

	t.Run("creates new organization", func(t *testing.T) {
		org := newCamp(t, "Camp Pine")
		stored, created, err := repo.InsertIfAbsent(ctx, org)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, org.ID, stored.ID)
	})

	t.Run("returns existing organization for same kind and name", func(t *testing.T) {
		first, err := repo.FindByName(ctx, organization.KindCamp, "Camp Pine")
		require.NoError(t, err)

		stored, created, err := repo.InsertIfAbsent(ctx, newCamp(t, "Camp Pine"))
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, stored.ID)
	})

	t.Run("same name under the other kind is a separate record", func(t *testing.T) {
		other, err := organization.NewOrganization(organization.KindOtherOrganization, "Camp Pine")
		require.NoError(t, err)
		_, created, err := repo.InsertIfAbsent(ctx, other)
		require.NoError(t, err)
		assert.True(t, created)
	})
}

func TestGormOrganizationRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrganizationRepository(newTestDB(t))

	org := newCamp(t, "Camp Birch")
	day := time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)
	org.FirstDayOfCamp = &day
	org.TaxStatus = organization.TaxStatusExempt
	org.TaxExemptionNumber = "EX-1"
	org.AssociationDiscount = decimal.NewNullDecimal(decimal.RequireFromString("12.5"))
	org.ShippingAddress = valueobject.Address{Street1: "1 Lake Rd", City: "Pine", State: "ME", ZipCode: "04001", Country: "United States"}
	_, _, err := repo.InsertIfAbsent(ctx, org)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, "Camp Birch", got.Name)
	assert.Equal(t, organization.TaxStatusExempt, got.TaxStatus)
	assert.Equal(t, org.ShippingAddress, got.ShippingAddress)
	require.NotNil(t, got.FirstDayOfCamp)
	assert.Equal(t, "2026-06-21", got.FirstDayOfCamp.Format("2006-01-02"))
	require.True(t, got.AssociationDiscount.Valid)
	assert.True(t, decimal.RequireFromString("12.5").Equal(got.AssociationDiscount.Decimal))
	assert.Equal(t, organization.SettingsStatusUnlinked, got.SettingsStatus)
}

func TestGormOrganizationRepository_SaveWithLock(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrganizationRepository(newTestDB(t))

	org := newCamp(t, "Camp Cedar")
	org.Email = "old@cedar.example"
	_, _, err := repo.InsertIfAbsent(ctx, org)
	require.NoError(t, err)

	t.Run("writes cleared fields and bumps version", func(t *testing.T) {
		current, err := repo.FindByID(ctx, org.ID)
		require.NoError(t, err)
		current.Email = ""
		current.Phone = "555-0100"

		require.NoError(t, repo.SaveWithLock(ctx, current))
		assert.Equal(t, 2, current.Version)

		got, err := repo.FindByID(ctx, org.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Email)
		assert.Equal(t, "555-0100", got.Phone)
		assert.Equal(t, 2, got.Version)
	})

	t.Run("stale version is a concurrency conflict", func(t *testing.T) {
		stale := newCamp(t, "Camp Cedar")
		stale.ID = org.ID
		stale.Version = 1

		err := repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Equal(t, 1, stale.Version)
	})
}

func TestGormOrganizationRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrganizationRepository(newTestDB(t))

	for _, name := range []string{"Camp A", "Camp B", "Camp C"} {
		_, _, err := repo.InsertIfAbsent(ctx, newCamp(t, name))
		require.NoError(t, err)
	}
	other, err := organization.NewOrganization(organization.KindOtherOrganization, "School D")
	require.NoError(t, err)
	_, _, err = repo.InsertIfAbsent(ctx, other)
	require.NoError(t, err)

	filter := shared.Filter{Page: 1, PageSize: 2, OrderBy: "name", OrderDir: "asc"}
	orgs, total, err := repo.FindAll(ctx, organization.KindCamp, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orgs, 2)
	assert.Equal(t, "Camp A", orgs[0].Name)

	all, total, err := repo.FindAll(ctx, "", shared.Filter{OrderBy: "; DROP TABLE organizations"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, all, 4)
}

func TestGormOrganizationRepository_SetProvisioned(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrganizationRepository(newTestDB(t))

	org := newCamp(t, "Camp Elm")
	_, _, err := repo.InsertIfAbsent(ctx, org)
	require.NoError(t, err)

	require.NoError(t, repo.SetProvisioned(ctx, org.ID))
	got, err := repo.FindByID(ctx, org.ID)
	require.NoError(t, err)
	assert.True(t, got.CustomerAndOnboardingCreated)
	assert.Equal(t, 1, got.Version)

	assert.ErrorIs(t, repo.SetProvisioned(ctx, uuid.New()), shared.ErrNotFound)
}

// newMockOrganizationRepository creates a GormOrganizationRepository with a mocked SQL connection
func newMockOrganizationRepository(t *testing.T) (*GormOrganizationRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrganizationRepository(gormDB), mock, mockDB
}

func TestGormOrganizationRepository_FindByName_Postgres(t *testing.T) {
	t.Run("finds existing organization", func(t *testing.T) {
		repo, mock, mockDB := newMockOrganizationRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "kind", "name", "version"}).
			AddRow(id, "Camp", "Camp Pine", 3)

		mock.ExpectQuery(`SELECT \* FROM "organizations" WHERE kind = \$1 AND name = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("Camp", "Camp Pine", 1).
			WillReturnRows(rows)

		org, err := repo.FindByName(context.Background(), organization.KindCamp, "Camp Pine")
		require.NoError(t, err)
		assert.Equal(t, id, org.ID)
		assert.Equal(t, 3, org.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockOrganizationRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "organizations"`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByName(context.Background(), organization.KindCamp, "Nowhere")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
