package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullAddress() Address {
	return Address{
		Street1: "1 Lake Rd",
		Street2: "Cabin 4",
		City:    "Asheville",
		State:   "NC",
		ZipCode: "28801",
		Country: "United States",
	}
}

func TestAddress_Complete(t *testing.T) {
	t.Run("all six parts", func(t *testing.T) {
		assert.True(t, fullAddress().Complete())
	})

	t.Run("missing second street line", func(t *testing.T) {
		a := fullAddress()
		a.Street2 = ""
		assert.False(t, a.Complete())
	})

	t.Run("missing city", func(t *testing.T) {
		a := fullAddress()
		a.City = ""
		assert.False(t, a.Complete())
	})
}

func TestAddress_Normalized(t *testing.T) {
	a := Address{Street1: "  1 Lake Rd ", Country: "\tCanada\n"}
	n := a.Normalized()
	assert.Equal(t, "1 Lake Rd", n.Street1)
	assert.Equal(t, "Canada", n.Country)
	assert.True(t, Address{}.IsEmpty())
	assert.False(t, n.IsEmpty())
}

func TestAddress_Merge(t *testing.T) {
	t.Run("copies changed parts only", func(t *testing.T) {
		target := Address{City: "Boone", Country: "United States"}
		prev := Address{City: "Boone"}
		next := Address{City: "Boone", State: "NC"}

		out, changed := target.Merge(prev, next)

		assert.True(t, changed)
		assert.Equal(t, "Boone", out.City)
		assert.Equal(t, "NC", out.State)
		assert.Equal(t, "United States", out.Country)
	})

	t.Run("cleared parts are not copied", func(t *testing.T) {
		target := fullAddress()
		prev := fullAddress()
		next := fullAddress()
		next.City = ""

		out, changed := target.Merge(prev, next)

		assert.False(t, changed)
		assert.Equal(t, "Asheville", out.City)
	})

	t.Run("cleared and changed parts together", func(t *testing.T) {
		target := fullAddress()
		next := fullAddress()
		next.Street2 = ""
		next.ZipCode = "28803"

		out, changed := target.Merge(fullAddress(), next)

		assert.True(t, changed)
		assert.Equal(t, "Cabin 4", out.Street2)
		assert.Equal(t, "28803", out.ZipCode)
	})

	t.Run("no change when snapshot matches", func(t *testing.T) {
		target := Address{City: "Elsewhere"}
		out, changed := target.Merge(fullAddress(), fullAddress())

		assert.False(t, changed)
		assert.Equal(t, target, out)
	})
}
