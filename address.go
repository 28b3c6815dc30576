package nls

import (
	"strings"
)

// AddressFields holds the raw wire values of an Address.
type AddressFields struct {
	Street1 string
	Street2 string
	City    string
	State   string
	Zip     string
}

// Address is a postal address. Every part is optional.
type Address struct {
	Street1 string
	Street2 string
	City    string
	State   State
	Zip     string
}

func NewAddress(f AddressFields) (Address, error) {
	addr := Address{
		Street1: strings.TrimSpace(f.Street1),
		Street2: strings.TrimSpace(f.Street2),
		City:    strings.TrimSpace(f.City),
		Zip:     strings.TrimSpace(f.Zip),
	}

	if state := strings.TrimSpace(f.State); len(state) > 0 {
		parsed, err := ParseState(state)
		if err != nil {
			return Address{}, nest(err, "state")
		}
		addr.State = parsed
	}

	if err := addr.Validate(); err != nil {
		return Address{}, err
	}
	return addr, nil
}

func (a Address) normalize() (Address, error) {
	return NewAddress(AddressFields{
		Street1: a.Street1,
		Street2: a.Street2,
		City:    a.City,
		State:   string(a.State),
		Zip:     a.Zip,
	})
}

func (a Address) Validate() error {
	if len(a.State) > 0 && !a.State.Valid() {
		return newError(ErrInvalidEnumValue, "state", string(a.State), "not a member of State")
	}
	if len(a.Zip) > 0 {
		if err := checkPattern("zip", a.Zip, ZipCodePattern, "zip code"); err != nil {
			return err
		}
	}
	return nil
}

func (a Address) ToMapping() Mapping {
	m := make(Mapping)
	putString(m, "street1", a.Street1)
	putString(m, "street2", a.Street2)
	putString(m, "city", a.City)
	putString(m, "state", string(a.State))
	putString(m, "zip", a.Zip)
	return m
}

func AddressFromMapping(m Mapping) (Address, error) {
	if err := checkKeys(m, "street1", "street2", "city", "state", "zip"); err != nil {
		return Address{}, err
	}

	var f AddressFields
	var err error
	if f.Street1, err = getStringOptional(m, "street1"); err != nil {
		return Address{}, err
	}
	if f.Street2, err = getStringOptional(m, "street2"); err != nil {
		return Address{}, err
	}
	if f.City, err = getStringOptional(m, "city"); err != nil {
		return Address{}, err
	}
	if f.State, err = getStringOptional(m, "state"); err != nil {
		return Address{}, err
	}
	if f.Zip, err = getStringOptional(m, "zip"); err != nil {
		return Address{}, err
	}
	return NewAddress(f)
}

// LatLng is a point in WGS 84 degrees.
type LatLng struct {
	Latitude  float64
	Longitude float64
}

func NewLatLng(latitude float64, longitude float64) (LatLng, error) {
	ll := LatLng{Latitude: latitude, Longitude: longitude}
	if err := ll.Validate(); err != nil {
		return LatLng{}, err
	}
	return ll, nil
}

func (ll LatLng) Validate() error {
	if err := checkRange("latitude", ll.Latitude, -90, 90); err != nil {
		return err
	}
	return checkRange("longitude", ll.Longitude, -180, 180)
}

func (ll LatLng) ToMapping() Mapping {
	return Mapping{
		"latitude":  ll.Latitude,
		"longitude": ll.Longitude,
	}
}

func LatLngFromMapping(m Mapping) (LatLng, error) {
	if err := checkKeys(m, "latitude", "longitude"); err != nil {
		return LatLng{}, err
	}

	lat, err := getFloatRequired(m, "latitude")
	if err != nil {
		return LatLng{}, err
	}
	lng, err := getFloatRequired(m, "longitude")
	if err != nil {
		return LatLng{}, err
	}
	return NewLatLng(lat, lng)
}

func putString(m Mapping, key string, value string) {
	if len(value) > 0 {
		m[key] = value
	}
}

func putBool(m Mapping, key string, value *bool) {
	if value != nil {
		m[key] = *value
	}
}
