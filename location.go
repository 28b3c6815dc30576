package nls

import (
	"reflect"
	"strings"
)

// NormalizedLocation is one vaccination location as published by one
// source, normalized into the shared schema.
type NormalizedLocation struct {
	ID                 string // <source.source>:<source.id>
	Name               string
	Address            *Address
	Location           *LatLng
	Contact            []Contact
	Languages          []string // ISO 639-1 codes
	OpeningDates       []OpenDate
	OpeningHours       []OpenHour
	Availability       *Availability
	Inventory          []Vaccine
	Access             *Access
	ParentOrganization *Organization
	Links              []Link
	Notes              []string
	Active             *bool
	Source             *Source
}

var locationFields = []string{
	"id", "name", "address", "location", "contact", "languages", "opening_dates",
	"opening_hours", "availability", "inventory", "access", "parent_organization",
	"links", "notes", "active", "source",
}

// NewNormalizedLocation validates loc and returns its canonical copy. The
// first violation found is returned.
func NewNormalizedLocation(loc NormalizedLocation) (NormalizedLocation, error) {
	loc.ID = strings.TrimSpace(loc.ID)
	loc.Name = strings.TrimSpace(loc.Name)

	if loc.Source == nil {
		return NormalizedLocation{}, missing("source")
	}
	source, err := loc.Source.normalize()
	if err != nil {
		return NormalizedLocation{}, nest(err, "source")
	}
	loc.Source = &source

	if err := loc.validateID(); err != nil {
		return NormalizedLocation{}, err
	}

	if loc, err = loc.normalizeParts(); err != nil {
		return NormalizedLocation{}, err
	}

	if err := loc.Validate(); err != nil {
		return NormalizedLocation{}, err
	}

	return loc.clone(), nil
}

// normalizeParts rebuilds every nested value through its constructor, in
// the order Validate checks them. The lists of l are not modified.
func (l NormalizedLocation) normalizeParts() (NormalizedLocation, error) {
	contacts := make([]Contact, len(l.Contact))
	for idx, c := range l.Contact {
		normalized, err := c.normalize()
		if err != nil {
			return NormalizedLocation{}, nestIndex(err, "contact", idx)
		}
		contacts[idx] = normalized
	}
	l.Contact = contacts

	openingDates := make([]OpenDate, len(l.OpeningDates))
	for idx, od := range l.OpeningDates {
		normalized, err := od.normalize()
		if err != nil {
			return NormalizedLocation{}, nestIndex(err, "opening_dates", idx)
		}
		openingDates[idx] = normalized
	}
	l.OpeningDates = openingDates

	openingHours := make([]OpenHour, len(l.OpeningHours))
	for idx, oh := range l.OpeningHours {
		normalized, err := oh.normalize()
		if err != nil {
			return NormalizedLocation{}, nestIndex(err, "opening_hours", idx)
		}
		openingHours[idx] = normalized
	}
	l.OpeningHours = openingHours

	inventory := make([]Vaccine, len(l.Inventory))
	for idx, v := range l.Inventory {
		normalized, err := v.normalize()
		if err != nil {
			return NormalizedLocation{}, nestIndex(err, "inventory", idx)
		}
		inventory[idx] = normalized
	}
	l.Inventory = inventory

	links := make([]Link, len(l.Links))
	for idx, link := range l.Links {
		normalized, err := link.normalize()
		if err != nil {
			return NormalizedLocation{}, nestIndex(err, "links", idx)
		}
		links[idx] = normalized
	}
	l.Links = links

	if l.Address != nil {
		addr, err := l.Address.normalize()
		if err != nil {
			return NormalizedLocation{}, nest(err, "address")
		}
		l.Address = &addr
	}
	if l.Location != nil {
		if err := l.Location.Validate(); err != nil {
			return NormalizedLocation{}, nest(err, "location")
		}
	}
	if l.Access != nil {
		access, err := l.Access.normalize()
		if err != nil {
			return NormalizedLocation{}, nest(err, "access")
		}
		l.Access = &access
	}
	if l.ParentOrganization != nil {
		org, err := l.ParentOrganization.normalize()
		if err != nil {
			return NormalizedLocation{}, nest(err, "parent_organization")
		}
		l.ParentOrganization = &org
	}

	return l, nil
}

func (l NormalizedLocation) Validate() error {
	if l.Source == nil {
		return missing("source")
	}
	if err := l.Source.Validate(); err != nil {
		return nest(err, "source")
	}

	if err := l.validateID(); err != nil {
		return err
	}

	for idx, c := range l.Contact {
		if err := c.Validate(); err != nil {
			return nestIndex(err, "contact", idx)
		}
	}
	for idx, od := range l.OpeningDates {
		if err := od.Validate(); err != nil {
			return nestIndex(err, "opening_dates", idx)
		}
	}
	for idx, oh := range l.OpeningHours {
		if err := oh.Validate(); err != nil {
			return nestIndex(err, "opening_hours", idx)
		}
	}
	for idx, v := range l.Inventory {
		if err := v.Validate(); err != nil {
			return nestIndex(err, "inventory", idx)
		}
	}
	for idx, link := range l.Links {
		if err := link.Validate(); err != nil {
			return nestIndex(err, "links", idx)
		}
	}

	if l.Address != nil {
		if err := l.Address.Validate(); err != nil {
			return nest(err, "address")
		}
	}
	if l.Location != nil {
		if err := l.Location.Validate(); err != nil {
			return nest(err, "location")
		}
	}
	if l.Access != nil {
		if err := l.Access.Validate(); err != nil {
			return nest(err, "access")
		}
	}
	if l.ParentOrganization != nil {
		if err := l.ParentOrganization.Validate(); err != nil {
			return nest(err, "parent_organization")
		}
	}

	return nil
}

// validateID checks the structure of the id and that it names the source
// record exactly.
func (l NormalizedLocation) validateID() error {
	if len(l.ID) == 0 {
		return missing("id")
	}

	if !LocationIDPattern.MatchString(l.ID) {
		return newError(ErrMalformedIdentifier, "id", l.ID, "expecting <source>:<source id>")
	}

	expected := l.Source.Source + ":" + l.Source.ID
	if l.ID != expected {
		return newError(ErrMalformedIdentifier, "id", l.ID, "does not match source, expecting %q", expected)
	}

	return nil
}

// Equal reports whether l and other hold the same record.
func (l NormalizedLocation) Equal(other NormalizedLocation) bool {
	return reflect.DeepEqual(l.clone(), other.clone())
}

// clone copies every list and pointer so the returned value shares no
// memory with l. Empty lists become nil.
func (l NormalizedLocation) clone() NormalizedLocation {
	c := l

	if l.Address != nil {
		addr := *l.Address
		c.Address = &addr
	}
	if l.Location != nil {
		ll := *l.Location
		c.Location = &ll
	}
	if l.Availability != nil {
		a := Availability{DropIn: copyBool(l.Availability.DropIn), Appointments: copyBool(l.Availability.Appointments)}
		c.Availability = &a
	}
	if l.Access != nil {
		a := *l.Access
		a.Walk = copyBool(l.Access.Walk)
		a.Drive = copyBool(l.Access.Drive)
		c.Access = &a
	}
	if l.ParentOrganization != nil {
		org := *l.ParentOrganization
		c.ParentOrganization = &org
	}
	if l.Source != nil {
		s := *l.Source
		s.Data = copyMapping(l.Source.Data)
		c.Source = &s
	}
	c.Active = copyBool(l.Active)

	c.Contact = nil
	if len(l.Contact) > 0 {
		c.Contact = append([]Contact(nil), l.Contact...)
	}
	c.Languages = nil
	if len(l.Languages) > 0 {
		c.Languages = append([]string(nil), l.Languages...)
	}
	c.OpeningDates = nil
	for _, od := range l.OpeningDates {
		c.OpeningDates = append(c.OpeningDates, OpenDate{Opens: copyDate(od.Opens), Closes: copyDate(od.Closes)})
	}
	c.OpeningHours = nil
	if len(l.OpeningHours) > 0 {
		c.OpeningHours = append([]OpenHour(nil), l.OpeningHours...)
	}
	c.Inventory = nil
	if len(l.Inventory) > 0 {
		c.Inventory = append([]Vaccine(nil), l.Inventory...)
	}
	c.Links = nil
	if len(l.Links) > 0 {
		c.Links = append([]Link(nil), l.Links...)
	}
	c.Notes = nil
	if len(l.Notes) > 0 {
		c.Notes = append([]string(nil), l.Notes...)
	}

	return c
}

func copyDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	copied := *d
	return &copied
}

func (l NormalizedLocation) ToMapping() Mapping {
	m := Mapping{"id": l.ID}
	putString(m, "name", l.Name)

	if l.Address != nil {
		m["address"] = l.Address.ToMapping()
	}
	if l.Location != nil {
		m["location"] = l.Location.ToMapping()
	}
	if len(l.Contact) > 0 {
		list := make([]interface{}, len(l.Contact))
		for idx, c := range l.Contact {
			list[idx] = c.ToMapping()
		}
		m["contact"] = list
	}
	if len(l.Languages) > 0 {
		m["languages"] = stringList(l.Languages)
	}
	if len(l.OpeningDates) > 0 {
		list := make([]interface{}, len(l.OpeningDates))
		for idx, od := range l.OpeningDates {
			list[idx] = od.ToMapping()
		}
		m["opening_dates"] = list
	}
	if len(l.OpeningHours) > 0 {
		list := make([]interface{}, len(l.OpeningHours))
		for idx, oh := range l.OpeningHours {
			list[idx] = oh.ToMapping()
		}
		m["opening_hours"] = list
	}
	if l.Availability != nil {
		m["availability"] = l.Availability.ToMapping()
	}
	if len(l.Inventory) > 0 {
		list := make([]interface{}, len(l.Inventory))
		for idx, v := range l.Inventory {
			list[idx] = v.ToMapping()
		}
		m["inventory"] = list
	}
	if l.Access != nil {
		m["access"] = l.Access.ToMapping()
	}
	if l.ParentOrganization != nil {
		m["parent_organization"] = l.ParentOrganization.ToMapping()
	}
	if len(l.Links) > 0 {
		list := make([]interface{}, len(l.Links))
		for idx, link := range l.Links {
			list[idx] = link.ToMapping()
		}
		m["links"] = list
	}
	if len(l.Notes) > 0 {
		m["notes"] = stringList(l.Notes)
	}
	putBool(m, "active", l.Active)
	if l.Source != nil {
		m["source"] = l.Source.ToMapping()
	}

	return m
}

func stringList(values []string) []interface{} {
	list := make([]interface{}, len(values))
	for idx, v := range values {
		list[idx] = v
	}
	return list
}

func NormalizedLocationFromMapping(m Mapping) (NormalizedLocation, error) {
	if err := checkKeys(m, locationFields...); err != nil {
		return NormalizedLocation{}, err
	}

	loc := NormalizedLocation{}

	// source and id first, matching the order NewNormalizedLocation
	// reports violations in
	sourceMap, err := getMapOptional(m, "source")
	if err != nil {
		return NormalizedLocation{}, err
	}
	if sourceMap != nil {
		source, err := SourceFromMapping(sourceMap)
		if err != nil {
			return NormalizedLocation{}, nest(err, "source")
		}
		loc.Source = &source
	}

	if loc.Source == nil {
		return NormalizedLocation{}, missing("source")
	}

	if loc.ID, err = getStringOptional(m, "id"); err != nil {
		return NormalizedLocation{}, err
	}
	loc.ID = strings.TrimSpace(loc.ID)
	if err := loc.validateID(); err != nil {
		return NormalizedLocation{}, err
	}

	if loc.Name, err = getStringOptional(m, "name"); err != nil {
		return NormalizedLocation{}, err
	}

	contacts, err := getMapArrayOptional(m, "contact")
	if err != nil {
		return NormalizedLocation{}, err
	}
	for idx, cm := range contacts {
		c, err := ContactFromMapping(cm)
		if err != nil {
			return NormalizedLocation{}, nestIndex(err, "contact", idx)
		}
		loc.Contact = append(loc.Contact, c)
	}

	openingDates, err := getMapArrayOptional(m, "opening_dates")
	if err != nil {
		return NormalizedLocation{}, err
	}
	for idx, odm := range openingDates {
		od, err := OpenDateFromMapping(odm)
		if err != nil {
			return NormalizedLocation{}, nestIndex(err, "opening_dates", idx)
		}
		loc.OpeningDates = append(loc.OpeningDates, od)
	}

	openingHours, err := getMapArrayOptional(m, "opening_hours")
	if err != nil {
		return NormalizedLocation{}, err
	}
	for idx, ohm := range openingHours {
		oh, err := OpenHourFromMapping(ohm)
		if err != nil {
			return NormalizedLocation{}, nestIndex(err, "opening_hours", idx)
		}
		loc.OpeningHours = append(loc.OpeningHours, oh)
	}

	inventory, err := getMapArrayOptional(m, "inventory")
	if err != nil {
		return NormalizedLocation{}, err
	}
	for idx, vm := range inventory {
		v, err := VaccineFromMapping(vm)
		if err != nil {
			return NormalizedLocation{}, nestIndex(err, "inventory", idx)
		}
		loc.Inventory = append(loc.Inventory, v)
	}

	links, err := getMapArrayOptional(m, "links")
	if err != nil {
		return NormalizedLocation{}, err
	}
	for idx, lm := range links {
		link, err := LinkFromMapping(lm)
		if err != nil {
			return NormalizedLocation{}, nestIndex(err, "links", idx)
		}
		loc.Links = append(loc.Links, link)
	}

	if loc.Languages, err = getStringArrayOptional(m, "languages"); err != nil {
		return NormalizedLocation{}, err
	}
	if loc.Notes, err = getStringArrayOptional(m, "notes"); err != nil {
		return NormalizedLocation{}, err
	}
	if loc.Active, err = getBoolOptional(m, "active"); err != nil {
		return NormalizedLocation{}, err
	}

	if addrMap, err := getMapOptional(m, "address"); err != nil {
		return NormalizedLocation{}, err
	} else if addrMap != nil {
		addr, err := AddressFromMapping(addrMap)
		if err != nil {
			return NormalizedLocation{}, nest(err, "address")
		}
		loc.Address = &addr
	}

	if llMap, err := getMapOptional(m, "location"); err != nil {
		return NormalizedLocation{}, err
	} else if llMap != nil {
		ll, err := LatLngFromMapping(llMap)
		if err != nil {
			return NormalizedLocation{}, nest(err, "location")
		}
		loc.Location = &ll
	}

	if availMap, err := getMapOptional(m, "availability"); err != nil {
		return NormalizedLocation{}, err
	} else if availMap != nil {
		avail, err := AvailabilityFromMapping(availMap)
		if err != nil {
			return NormalizedLocation{}, nest(err, "availability")
		}
		loc.Availability = &avail
	}

	if accessMap, err := getMapOptional(m, "access"); err != nil {
		return NormalizedLocation{}, err
	} else if accessMap != nil {
		access, err := AccessFromMapping(accessMap)
		if err != nil {
			return NormalizedLocation{}, nest(err, "access")
		}
		loc.Access = &access
	}

	if orgMap, err := getMapOptional(m, "parent_organization"); err != nil {
		return NormalizedLocation{}, err
	} else if orgMap != nil {
		org, err := OrganizationFromMapping(orgMap)
		if err != nil {
			return NormalizedLocation{}, nest(err, "parent_organization")
		}
		loc.ParentOrganization = &org
	}

	return NewNormalizedLocation(loc)
}
