package nls

// SchemaTypes names every composite record type of the schema. Keep in sync
// with the FromMapping constructors; registry_test.go checks both.
var SchemaTypes = []string{
	"Address",
	"LatLng",
	"Contact",
	"OpenDate",
	"OpenHour",
	"Availability",
	"Vaccine",
	"Access",
	"Organization",
	"Link",
	"Source",
	"NormalizedLocation",
}

// mappingConstructors builds each schema type from its mapping form and
// returns it again as a mapping.
var mappingConstructors = map[string]func(Mapping) (Mapping, error){
	"Address": func(m Mapping) (Mapping, error) {
		v, err := AddressFromMapping(m)
		return v.ToMapping(), err
	},
	"LatLng": func(m Mapping) (Mapping, error) {
		v, err := LatLngFromMapping(m)
		return v.ToMapping(), err
	},
	"Contact": func(m Mapping) (Mapping, error) {
		v, err := ContactFromMapping(m)
		return v.ToMapping(), err
	},
	"OpenDate": func(m Mapping) (Mapping, error) {
		v, err := OpenDateFromMapping(m)
		return v.ToMapping(), err
	},
	"OpenHour": func(m Mapping) (Mapping, error) {
		v, err := OpenHourFromMapping(m)
		return v.ToMapping(), err
	},
	"Availability": func(m Mapping) (Mapping, error) {
		v, err := AvailabilityFromMapping(m)
		return v.ToMapping(), err
	},
	"Vaccine": func(m Mapping) (Mapping, error) {
		v, err := VaccineFromMapping(m)
		return v.ToMapping(), err
	},
	"Access": func(m Mapping) (Mapping, error) {
		v, err := AccessFromMapping(m)
		return v.ToMapping(), err
	},
	"Organization": func(m Mapping) (Mapping, error) {
		v, err := OrganizationFromMapping(m)
		return v.ToMapping(), err
	},
	"Link": func(m Mapping) (Mapping, error) {
		v, err := LinkFromMapping(m)
		return v.ToMapping(), err
	},
	"Source": func(m Mapping) (Mapping, error) {
		v, err := SourceFromMapping(m)
		return v.ToMapping(), err
	},
	"NormalizedLocation": func(m Mapping) (Mapping, error) {
		v, err := NormalizedLocationFromMapping(m)
		return v.ToMapping(), err
	},
}

// FromMapping validates m as the schema type with the given name and
// returns its canonical mapping form.
func FromMapping(typeName string, m Mapping) (Mapping, error) {
	constructor, exists := mappingConstructors[typeName]
	if !exists {
		return nil, newError(ErrInvalidEnumValue, "", typeName, "not a schema type")
	}
	canonical, err := constructor(m)
	if err != nil {
		return nil, err
	}
	return canonical, nil
}

// EnumTypes returns every closed set of the schema with its canonical
// members, in declaration order.
func EnumTypes() map[string][]string {
	enums := make(map[string][]string)
	for _, set := range []*closedSet{
		states,
		contactTypes,
		daysOfWeek,
		locationAuthorities,
		vaccineProviders,
		vaccineSupplies,
		vaccineTypes,
		wheelchairAccessLevels,
	} {
		enums[set.name] = set.Values()
	}
	return enums
}
