package valueobject

import (
	"strings"
	"unicode/utf8"
)

const maxAddressFieldLen = 200

// Address is an immutable Brazilian postal address
type Address struct {
	street   string
	number   string
	district string
	city     string
	state    string
	zipCode  string
}

// AddressError reports an invalid address field
type AddressError struct {
	Field  string
	Reason string
}

func (e *AddressError) Error() string {
	return e.Field + ": " + e.Reason
}

// NewAddress trims and validates every component. State is upper-cased
// (sp -> SP); zip codes are stored as given.
func NewAddress(street, number, district, city, state, zipCode string) (Address, error) {
	a := Address{
		street:   strings.TrimSpace(street),
		number:   strings.TrimSpace(number),
		district: strings.TrimSpace(district),
		city:     strings.TrimSpace(city),
		state:    strings.ToUpper(strings.TrimSpace(state)),
		zipCode:  strings.TrimSpace(zipCode),
	}

	fields := []struct {
		name  string
		value string
	}{
		{"rua", a.street},
		{"numero", a.number},
		{"bairro", a.district},
		{"cidade", a.city},
		{"estado", a.state},
		{"cep", a.zipCode},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > maxAddressFieldLen {
			return Address{}, &AddressError{Field: f.name, Reason: "too long"}
		}
	}
	if a.city == "" {
		return Address{}, &AddressError{Field: "cidade", Reason: "required"}
	}
	if a.state == "" {
		return Address{}, &AddressError{Field: "estado", Reason: "required"}
	}

	return a, nil
}

// Street returns the street name (rua)
func (a Address) Street() string { return a.street }

// Number returns the street number (numero)
func (a Address) Number() string { return a.number }

// District returns the neighbourhood (bairro)
func (a Address) District() string { return a.district }

// City returns the city (cidade)
func (a Address) City() string { return a.city }

// State returns the federative unit (estado)
func (a Address) State() string { return a.state }

// ZipCode returns the CEP
func (a Address) ZipCode() string { return a.zipCode }

// IsEmpty reports whether the address carries no data
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// Equals compares two addresses component-wise
func (a Address) Equals(other Address) bool {
	return a == other
}

// String formats the address on one line:
// "Rua A, 10 - Centro, São Paulo/SP, 01000-000"
func (a Address) String() string {
	if a.IsEmpty() {
		return ""
	}
	var b strings.Builder
	b.WriteString(a.street)
	if a.number != "" {
		b.WriteString(", " + a.number)
	}
	if a.district != "" {
		b.WriteString(" - " + a.district)
	}
	b.WriteString(", " + a.city + "/" + a.state)
	if a.zipCode != "" {
		b.WriteString(", " + a.zipCode)
	}
	return b.String()
}
