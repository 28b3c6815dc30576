package nls

import (
	"strings"
)

type Availability struct {
	DropIn       *bool
	Appointments *bool
}

func NewAvailability(dropIn *bool, appointments *bool) (Availability, error) {
	return Availability{DropIn: copyBool(dropIn), Appointments: copyBool(appointments)}, nil
}

func (a Availability) Validate() error {
	return nil
}

func (a Availability) ToMapping() Mapping {
	m := make(Mapping)
	putBool(m, "drop_in", a.DropIn)
	putBool(m, "appointments", a.Appointments)
	return m
}

func AvailabilityFromMapping(m Mapping) (Availability, error) {
	if err := checkKeys(m, "drop_in", "appointments"); err != nil {
		return Availability{}, err
	}

	dropIn, err := getBoolOptional(m, "drop_in")
	if err != nil {
		return Availability{}, err
	}
	appointments, err := getBoolOptional(m, "appointments")
	if err != nil {
		return Availability{}, err
	}
	return NewAvailability(dropIn, appointments)
}

// Vaccine is one line of a location's inventory.
type Vaccine struct {
	Vaccine     VaccineType
	SupplyLevel VaccineSupply
}

func NewVaccine(vaccine string, supplyLevel string) (Vaccine, error) {
	v := Vaccine{}

	if vaccine = strings.TrimSpace(vaccine); len(vaccine) == 0 {
		return Vaccine{}, missing("vaccine")
	}
	parsed, err := ParseVaccineType(vaccine)
	if err != nil {
		return Vaccine{}, nest(err, "vaccine")
	}
	v.Vaccine = parsed

	if supplyLevel = strings.TrimSpace(supplyLevel); len(supplyLevel) > 0 {
		supply, err := ParseVaccineSupply(supplyLevel)
		if err != nil {
			return Vaccine{}, nest(err, "supply_level")
		}
		v.SupplyLevel = supply
	}

	if err := v.Validate(); err != nil {
		return Vaccine{}, err
	}
	return v, nil
}

func (v Vaccine) normalize() (Vaccine, error) {
	return NewVaccine(string(v.Vaccine), string(v.SupplyLevel))
}

func (v Vaccine) Validate() error {
	if len(v.Vaccine) == 0 {
		return missing("vaccine")
	}
	if !v.Vaccine.Valid() {
		return newError(ErrInvalidEnumValue, "vaccine", string(v.Vaccine), "not a member of VaccineType")
	}
	if len(v.SupplyLevel) > 0 && !v.SupplyLevel.Valid() {
		return newError(ErrInvalidEnumValue, "supply_level", string(v.SupplyLevel), "not a member of VaccineSupply")
	}
	return nil
}

func (v Vaccine) ToMapping() Mapping {
	m := Mapping{"vaccine": string(v.Vaccine)}
	putString(m, "supply_level", string(v.SupplyLevel))
	return m
}

func VaccineFromMapping(m Mapping) (Vaccine, error) {
	if err := checkKeys(m, "vaccine", "supply_level"); err != nil {
		return Vaccine{}, err
	}

	vaccine, err := getStringOptional(m, "vaccine")
	if err != nil {
		return Vaccine{}, err
	}
	supplyLevel, err := getStringOptional(m, "supply_level")
	if err != nil {
		return Vaccine{}, err
	}
	return NewVaccine(vaccine, supplyLevel)
}

// Access describes how people can physically get to a location.
type Access struct {
	Walk       *bool
	Drive      *bool
	Wheelchair WheelchairAccessLevel
}

func NewAccess(walk *bool, drive *bool, wheelchair string) (Access, error) {
	a := Access{Walk: copyBool(walk), Drive: copyBool(drive)}

	if wheelchair = strings.TrimSpace(wheelchair); len(wheelchair) > 0 {
		level, err := ParseWheelchairAccessLevel(wheelchair)
		if err != nil {
			return Access{}, nest(err, "wheelchair")
		}
		a.Wheelchair = level
	}

	if err := a.Validate(); err != nil {
		return Access{}, err
	}
	return a, nil
}

func (a Access) normalize() (Access, error) {
	return NewAccess(a.Walk, a.Drive, string(a.Wheelchair))
}

func (a Access) Validate() error {
	if len(a.Wheelchair) > 0 && !a.Wheelchair.Valid() {
		return newError(ErrInvalidEnumValue, "wheelchair", string(a.Wheelchair), "not a member of WheelchairAccessLevel")
	}
	return nil
}

func (a Access) ToMapping() Mapping {
	m := make(Mapping)
	putBool(m, "walk", a.Walk)
	putBool(m, "drive", a.Drive)
	putString(m, "wheelchair", string(a.Wheelchair))
	return m
}

func AccessFromMapping(m Mapping) (Access, error) {
	if err := checkKeys(m, "walk", "drive", "wheelchair"); err != nil {
		return Access{}, err
	}

	walk, err := getBoolOptional(m, "walk")
	if err != nil {
		return Access{}, err
	}
	drive, err := getBoolOptional(m, "drive")
	if err != nil {
		return Access{}, err
	}
	wheelchair, err := getStringOptional(m, "wheelchair")
	if err != nil {
		return Access{}, err
	}
	return NewAccess(walk, drive, wheelchair)
}

// Bool returns a pointer to b, for the optional flags of Availability,
// Access and NormalizedLocation.
func Bool(b bool) *bool {
	return &b
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	return Bool(*b)
}
