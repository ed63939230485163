package valueobject

import "strings"

// Address is a postal address as captured on organization, onboarding and
// customer records. All six parts are plain strings; an empty string means
// the part has not been provided.
type Address struct {
	Street1 string `json:"street_address_line_1"`
	Street2 string `json:"street_address_line_2"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Normalized returns a copy with surrounding whitespace removed from every part
func (a Address) Normalized() Address {
	return Address{
		Street1: strings.TrimSpace(a.Street1),
		Street2: strings.TrimSpace(a.Street2),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		ZipCode: strings.TrimSpace(a.ZipCode),
		Country: strings.TrimSpace(a.Country),
	}
}

// Complete reports whether all six parts are present
func (a Address) Complete() bool {
	return a.Street1 != "" && a.Street2 != "" && a.City != "" &&
		a.State != "" && a.ZipCode != "" && a.Country != ""
}

// IsEmpty reports whether no part has been provided
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// Merge copies every non-empty part of next that differs from prev onto a
// copy of target. A part cleared in next leaves the target's value alone.
func (a Address) Merge(prev, next Address) (Address, bool) {
	out := a
	changed := false
	apply := func(dst *string, p, n string) {
		if n != "" && p != n && *dst != n {
			*dst = n
			changed = true
		}
	}
	apply(&out.Street1, prev.Street1, next.Street1)
	apply(&out.Street2, prev.Street2, next.Street2)
	apply(&out.City, prev.City, next.City)
	apply(&out.State, prev.State, next.State)
	apply(&out.ZipCode, prev.ZipCode, next.ZipCode)
	apply(&out.Country, prev.Country, next.Country)
	return out, changed
}
