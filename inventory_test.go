package nls

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaccine(t *testing.T) {
	v, err := NewVaccine("Moderna", "IN_STOCK")
	require.NoError(t, err)
	assert.Equal(t, VaccineModerna, v.Vaccine)
	assert.Equal(t, SupplyInStock, v.SupplyLevel)
	assert.Equal(t, Mapping{"vaccine": "moderna", "supply_level": "in_stock"}, v.ToMapping())

	v, err = NewVaccine("pfizer_biontech", "")
	require.NoError(t, err)
	assert.Equal(t, Mapping{"vaccine": "pfizer_biontech"}, v.ToMapping())

	_, err = NewVaccine("", "in_stock")
	assert.True(t, errors.Is(err, ErrMissingField), "got %v", err)

	_, err = NewVaccine("sputnik", "")
	assert.True(t, errors.Is(err, ErrInvalidEnumValue), "got %v", err)

	_, err = NewVaccine("moderna", "plenty")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "supply_level", verr.Field)
}

func TestAccess(t *testing.T) {
	a, err := NewAccess(Bool(true), nil, "Partial")
	require.NoError(t, err)
	assert.Equal(t, WheelchairPartial, a.Wheelchair)
	assert.Nil(t, a.Drive)
	assert.Equal(t, Mapping{"walk": true, "wheelchair": "partial"}, a.ToMapping())

	again, err := AccessFromMapping(a.ToMapping())
	require.NoError(t, err)
	assert.Equal(t, a, again)

	_, err = NewAccess(nil, nil, "ramp")
	assert.True(t, errors.Is(err, ErrInvalidEnumValue), "got %v", err)

	_, err = AccessFromMapping(Mapping{"walk": "yes"})
	assert.True(t, errors.Is(err, ErrWrongType), "got %v", err)
}

func TestAvailability(t *testing.T) {
	dropIn := true
	a, err := NewAvailability(&dropIn, Bool(false))
	require.NoError(t, err)

	dropIn = false
	assert.True(t, *a.DropIn, "availability must not alias its inputs")
	assert.Equal(t, Mapping{"drop_in": true, "appointments": false}, a.ToMapping())

	empty, err := AvailabilityFromMapping(Mapping{})
	require.NoError(t, err)
	assert.Equal(t, Mapping{}, empty.ToMapping())
}

func TestOrganization(t *testing.T) {
	org, err := NewOrganization("Rite_Aid", "Rite Aid Pharmacy")
	require.NoError(t, err)
	assert.Equal(t, string(ProviderRiteAid), org.ID)

	org, err = NewOrganization("local_clinic_network", "")
	require.NoError(t, err)
	assert.Equal(t, Mapping{"id": "local_clinic_network"}, org.ToMapping())

	_, err = NewOrganization("", "Nameless")
	assert.True(t, errors.Is(err, ErrMissingField), "got %v", err)

	_, err = NewOrganization("Local Clinic", "")
	assert.True(t, errors.Is(err, ErrInvalidEnumValue), "got %v", err)
}

func TestLink(t *testing.T) {
	link, err := NewLink("Google_Places", "ChIJN1t_tDeuEmsRUsoyG83frY4", "")
	require.NoError(t, err)
	assert.Equal(t, string(AuthorityGooglePlaces), link.Authority)

	link, err = NewLink("walgreens", "12345", "https://www.walgreens.com/locator/12345")
	require.NoError(t, err)
	assert.Equal(t, Mapping{"authority": "walgreens", "id": "12345", "uri": "https://www.walgreens.com/locator/12345"}, link.ToMapping())

	link, err = NewLink("", "abc", "")
	require.NoError(t, err)
	assert.Empty(t, link.Authority)

	_, err = NewLink("google_places", "", "")
	assert.True(t, errors.Is(err, ErrMissingField), "got %v", err)

	_, err = NewLink("not valid!", "abc", "")
	assert.True(t, errors.Is(err, ErrInvalidEnumValue), "got %v", err)

	_, err = NewLink("vtrcks", "abc", "not a url")
	assert.True(t, errors.Is(err, ErrMalformedValue), "got %v", err)
}

func TestAddress(t *testing.T) {
	addr, err := NewAddress(AddressFields{
		Street1: "1991 Main St",
		City:    "Sacramento",
		State:   "ca",
		Zip:     "94000",
	})
	require.NoError(t, err)
	assert.Equal(t, State("CA"), addr.State)
	assert.Equal(t, Mapping{"street1": "1991 Main St", "city": "Sacramento", "state": "CA", "zip": "94000"}, addr.ToMapping())

	_, err = NewAddress(AddressFields{Zip: "94000-1234"})
	assert.NoError(t, err)

	_, err = NewAddress(AddressFields{})
	assert.NoError(t, err)

	_, err = NewAddress(AddressFields{State: "California"})
	assert.True(t, errors.Is(err, ErrInvalidEnumValue), "got %v", err)

	_, err = NewAddress(AddressFields{Zip: "9400"})
	assert.True(t, errors.Is(err, ErrMalformedValue), "got %v", err)
}

func TestLatLng(t *testing.T) {
	ll, err := LatLngFromMapping(Mapping{"latitude": 47.6, "longitude": -122})
	require.NoError(t, err)
	assert.Equal(t, LatLng{Latitude: 47.6, Longitude: -122}, ll)

	_, err = NewLatLng(91, 0)
	assert.True(t, errors.Is(err, ErrMalformedValue), "got %v", err)

	_, err = LatLngFromMapping(Mapping{"latitude": 47.6})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, ErrMissingField, verr.Kind)
	assert.Equal(t, "longitude", verr.Field)
}
