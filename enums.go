package nls

import (
	"strings"
)

// closedSet is the lookup table behind every enumeration. Keys are the lower
// case form of each member, values the canonical form.
type closedSet struct {
	name   string
	values []string
	index  map[string]string
}

func newClosedSet(name string, values ...string) *closedSet {
	set := &closedSet{
		name:   name,
		values: values,
		index:  make(map[string]string, len(values)),
	}
	for _, v := range values {
		set.index[strings.ToLower(v)] = v
	}
	return set
}

func (s *closedSet) lookup(raw string) (string, bool) {
	canonical, ok := s.index[strings.ToLower(strings.TrimSpace(raw))]
	return canonical, ok
}

func (s *closedSet) parse(raw string) (string, error) {
	if canonical, ok := s.lookup(raw); ok {
		return canonical, nil
	}
	return "", newError(ErrInvalidEnumValue, "", raw, "not a member of %s", s.name)
}

func (s *closedSet) has(value string) bool {
	canonical, ok := s.index[strings.ToLower(value)]
	return ok && canonical == value
}

func (s *closedSet) Values() []string {
	values := make([]string, len(s.values))
	copy(values, s.values)
	return values
}

type State string

const (
	StateAlabama            State = "AL"
	StateAlaska             State = "AK"
	StateAmericanSamoa      State = "AS"
	StateArizona            State = "AZ"
	StateArkansas           State = "AR"
	StateCalifornia         State = "CA"
	StateColorado           State = "CO"
	StateConnecticut        State = "CT"
	StateDelaware           State = "DE"
	StateDistrictOfColumbia State = "DC"
	StateFlorida            State = "FL"
	StateGeorgia            State = "GA"
	StateGuam               State = "GU"
	StateHawaii             State = "HI"
	StateIdaho              State = "ID"
	StateIllinois           State = "IL"
	StateIndiana            State = "IN"
	StateIowa               State = "IA"
	StateKansas             State = "KS"
	StateKentucky           State = "KY"
	StateLouisiana          State = "LA"
	StateMaine              State = "ME"
	StateMaryland           State = "MD"
	StateMassachusetts      State = "MA"
	StateMichigan           State = "MI"
	StateMinnesota          State = "MN"
	StateMississippi        State = "MS"
	StateMissouri           State = "MO"
	StateMontana            State = "MT"
	StateNebraska           State = "NE"
	StateNevada             State = "NV"
	StateNewHampshire       State = "NH"
	StateNewJersey          State = "NJ"
	StateNewMexico          State = "NM"
	StateNewYork            State = "NY"
	StateNorthCarolina      State = "NC"
	StateNorthDakota        State = "ND"
	StateNorthernMarianaIs  State = "MP"
	StateOhio               State = "OH"
	StateOklahoma           State = "OK"
	StateOregon             State = "OR"
	StatePennsylvania       State = "PA"
	StatePuertoRico         State = "PR"
	StateRhodeIsland        State = "RI"
	StateSouthCarolina      State = "SC"
	StateSouthDakota        State = "SD"
	StateTennessee          State = "TN"
	StateTexas              State = "TX"
	StateUtah               State = "UT"
	StateVermont            State = "VT"
	StateVirginia           State = "VA"
	StateVirginIslands      State = "VI"
	StateWashington         State = "WA"
	StateWestVirginia       State = "WV"
	StateWisconsin          State = "WI"
	StateWyoming            State = "WY"
)

// postal codes are the one closed set whose canonical form is upper case
var states = newClosedSet("State",
	"AL", "AK", "AS", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "GU", "HI",
	"ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN", "MS", "MO",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "MP", "OH", "OK", "OR", "PA",
	"PR", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "VI", "WA", "WV", "WI", "WY",
)

func ParseState(s string) (State, error) {
	v, err := states.parse(s)
	return State(v), err
}

func (s State) Valid() bool { return states.has(string(s)) }

type ContactType string

const (
	ContactTypeGeneral ContactType = "general"
	ContactTypeBooking ContactType = "booking"
)

var contactTypes = newClosedSet("ContactType", "general", "booking")

func ParseContactType(s string) (ContactType, error) {
	v, err := contactTypes.parse(s)
	return ContactType(v), err
}

func (c ContactType) Valid() bool { return contactTypes.has(string(c)) }

type DayOfWeek string

const (
	Monday         DayOfWeek = "monday"
	Tuesday        DayOfWeek = "tuesday"
	Wednesday      DayOfWeek = "wednesday"
	Thursday       DayOfWeek = "thursday"
	Friday         DayOfWeek = "friday"
	Saturday       DayOfWeek = "saturday"
	Sunday         DayOfWeek = "sunday"
	PublicHolidays DayOfWeek = "public_holidays"
)

var daysOfWeek = newClosedSet("DayOfWeek",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday", "public_holidays",
)

func ParseDayOfWeek(s string) (DayOfWeek, error) {
	v, err := daysOfWeek.parse(s)
	return DayOfWeek(v), err
}

func (d DayOfWeek) Valid() bool { return daysOfWeek.has(string(d)) }

type VaccineType string

const (
	VaccinePfizerBiontech        VaccineType = "pfizer_biontech"
	VaccineModerna               VaccineType = "moderna"
	VaccineJohnsonJohnsonJanssen VaccineType = "johnson_johnson_janssen"
	VaccineOxfordAstrazeneca     VaccineType = "oxford_astrazeneca"
)

var vaccineTypes = newClosedSet("VaccineType",
	"pfizer_biontech", "moderna", "johnson_johnson_janssen", "oxford_astrazeneca",
)

func ParseVaccineType(s string) (VaccineType, error) {
	v, err := vaccineTypes.parse(s)
	return VaccineType(v), err
}

func (v VaccineType) Valid() bool { return vaccineTypes.has(string(v)) }

// VaccineSupply is the supply level of one vaccine at a location.
type VaccineSupply string

const (
	SupplyInStock    VaccineSupply = "in_stock"
	SupplyOutOfStock VaccineSupply = "out_of_stock"
)

var vaccineSupplies = newClosedSet("VaccineSupply", "in_stock", "out_of_stock")

func ParseVaccineSupply(s string) (VaccineSupply, error) {
	v, err := vaccineSupplies.parse(s)
	return VaccineSupply(v), err
}

func (v VaccineSupply) Valid() bool { return vaccineSupplies.has(string(v)) }

type WheelchairAccessLevel string

const (
	WheelchairYes     WheelchairAccessLevel = "yes" // access, level of service unknown
	WheelchairFull    WheelchairAccessLevel = "full"
	WheelchairPartial WheelchairAccessLevel = "partial"
	WheelchairNo      WheelchairAccessLevel = "no"
)

var wheelchairAccessLevels = newClosedSet("WheelchairAccessLevel", "yes", "full", "partial", "no")

func ParseWheelchairAccessLevel(s string) (WheelchairAccessLevel, error) {
	v, err := wheelchairAccessLevels.parse(s)
	return WheelchairAccessLevel(v), err
}

func (w WheelchairAccessLevel) Valid() bool { return wheelchairAccessLevels.has(string(w)) }

// VaccineProvider is a parent organization that provides vaccines.
type VaccineProvider string

const (
	ProviderRiteAid    VaccineProvider = "rite_aid"
	ProviderWalgreens  VaccineProvider = "walgreens"
	ProviderSafeway    VaccineProvider = "safeway"
	ProviderVons       VaccineProvider = "vons"
	ProviderSams       VaccineProvider = "sams"
	ProviderAlbertsons VaccineProvider = "albertson"
	ProviderPavilions  VaccineProvider = "pavilions"
	ProviderWalmart    VaccineProvider = "walmart"
	ProviderCVS        VaccineProvider = "cvs"
)

var vaccineProviders = newClosedSet("VaccineProvider",
	"rite_aid", "walgreens", "safeway", "vons", "sams", "albertson", "pavilions", "walmart", "cvs",
)

func ParseVaccineProvider(s string) (VaccineProvider, error) {
	v, err := vaccineProviders.parse(s)
	return VaccineProvider(v), err
}

func (v VaccineProvider) Valid() bool { return vaccineProviders.has(string(v)) }

// LocationAuthority issues identifiers for locations.
type LocationAuthority string

const (
	AuthorityGooglePlaces LocationAuthority = "google_places"
)

var locationAuthorities = newClosedSet("LocationAuthority", "google_places")

func ParseLocationAuthority(s string) (LocationAuthority, error) {
	v, err := locationAuthorities.parse(s)
	return LocationAuthority(v), err
}

func (a LocationAuthority) Valid() bool { return locationAuthorities.has(string(a)) }

// parseOpenToken resolves a value that should name a member of one of the
// given sets but may fall back to a free lowercase token.
func parseOpenToken(raw string, sets ...*closedSet) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, set := range sets {
		if canonical, ok := set.lookup(raw); ok {
			return canonical, nil
		}
	}
	if !EnumValuePattern.MatchString(raw) {
		return "", newError(ErrInvalidEnumValue, "", raw, "expecting a known value or lowercase alphanumerics and underscores")
	}
	return raw, nil
}
