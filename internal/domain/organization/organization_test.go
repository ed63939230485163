package organization

import (
	"testing"

	"github.com/campmanager/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrganization(t *testing.T) {
	t.Run("creates camp", func(t *testing.T) {
		org, err := NewOrganization(KindCamp, "  Camp Pine ")

		require.NoError(t, err)
		assert.Equal(t, "Camp Pine", org.Name)
		assert.Equal(t, KindCamp, org.Kind)
		assert.Equal(t, SettingsStatusUnlinked, org.SettingsStatus)
		assert.False(t, org.CustomerAndOnboardingCreated)
		assert.Equal(t, 1, org.Version)
		require.Len(t, org.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeOrganizationCreated, org.GetDomainEvents()[0].EventType())
	})

	t.Run("other organization has no settings status", func(t *testing.T) {
		org, err := NewOrganization(KindOtherOrganization, "Scout Troop 12")

		require.NoError(t, err)
		assert.Empty(t, org.SettingsStatus)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewOrganization(Kind("School"), "X")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewOrganization(KindCamp, "   ")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}

func TestKind_CustomerLinkField(t *testing.T) {
	assert.Equal(t, "camp_link", KindCamp.CustomerLinkField())
	assert.Equal(t, "other_organization_link", KindOtherOrganization.CustomerLinkField())
}

func TestOrganization_NeedsCurrency(t *testing.T) {
	org, _ := NewOrganization(KindCamp, "Camp Pine")

	t.Run("no country present", func(t *testing.T) {
		assert.False(t, org.NeedsCurrency(nil))
	})

	org.BillingAddress = valueobject.Address{Country: "Canada"}

	t.Run("new organization with billing country only", func(t *testing.T) {
		assert.True(t, org.NeedsCurrency(nil))
		assert.Equal(t, "Canada", org.Country())
	})

	t.Run("shipping country unchanged", func(t *testing.T) {
		prev := org.Clone()
		assert.False(t, org.NeedsCurrency(prev))
	})

	t.Run("shipping country changed", func(t *testing.T) {
		prev := org.Clone()
		org.ShippingAddress.Country = "Mexico"
		assert.True(t, org.NeedsCurrency(prev))
		assert.Equal(t, "Mexico", org.Country())
	})
}

func TestOrganization_NeedsDiscount(t *testing.T) {
	org, _ := NewOrganization(KindCamp, "Camp Pine")
	assert.True(t, org.NeedsDiscount(nil))

	prev := org.Clone()
	assert.False(t, org.NeedsDiscount(prev), "empty association on update")

	org.Association = "ACA"
	assert.True(t, org.NeedsDiscount(prev))

	prev = org.Clone()
	assert.False(t, org.NeedsDiscount(prev))
}

func TestOrganization_RefreshSettingsStatus(t *testing.T) {
	camp, _ := NewOrganization(KindCamp, "Camp Pine")
	camp.SettingsLink = "CS-0001"
	camp.RefreshSettingsStatus()
	assert.Equal(t, SettingsStatusLinked, camp.SettingsStatus)

	other, _ := NewOrganization(KindOtherOrganization, "Troop 12")
	other.SettingsLink = "CS-0002"
	other.RefreshSettingsStatus()
	assert.Empty(t, other.SettingsStatus)
}

func TestOrganization_MarkProvisioned(t *testing.T) {
	org, _ := NewOrganization(KindCamp, "Camp Pine")
	org.ClearDomainEvents()

	require.NoError(t, org.MarkProvisioned())
	assert.True(t, org.CustomerAndOnboardingCreated)
	assert.Len(t, org.GetDomainEvents(), 1)

	err := org.MarkProvisioned()
	assert.Error(t, err)
}

func TestOrganization_Validate(t *testing.T) {
	org, _ := NewOrganization(KindCamp, "Camp Pine")
	require.NoError(t, org.Validate())

	org.TaxStatus = TaxStatus("Maybe")
	assert.Error(t, org.Validate())

	org.TaxStatus = TaxStatusExempt
	org.ApplyDiscount(decimal.NewFromInt(-5))
	assert.Error(t, org.Validate())
}

func TestOrganization_Clone(t *testing.T) {
	org, _ := NewOrganization(KindCamp, "Camp Pine")
	org.ShippingAddress.City = "Boone"

	c := org.Clone()
	c.ShippingAddress.City = "Elsewhere"

	assert.Equal(t, "Boone", org.ShippingAddress.City)
	assert.Empty(t, c.GetDomainEvents())
	assert.NotEmpty(t, org.GetDomainEvents())
}
