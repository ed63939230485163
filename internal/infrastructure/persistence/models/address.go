package models

import "github.com/campmanager/backend/internal/domain/shared/valueobject"

// ToDomain converts the columns to a domain Address
func (a AddressColumns) ToDomain() valueobject.Address {
	return valueobject.Address{
		Street1: a.Street1,
		Street2: a.Street2,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

// AddressColumnsFromDomain creates the column layout from a domain Address
func AddressColumnsFromDomain(a valueobject.Address) AddressColumns {
	return AddressColumns{
		Street1: a.Street1,
		Street2: a.Street2,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}
