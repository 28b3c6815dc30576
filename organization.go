package nls

import (
	"strings"
)

// Organization references the parent organization of a location. ID is a
// VaccineProvider value when one fits, otherwise a lowercase token of the
// normalizer's choosing.
type Organization struct {
	ID   string
	Name string
}

func NewOrganization(id string, name string) (Organization, error) {
	if id = strings.TrimSpace(id); len(id) == 0 {
		return Organization{}, missing("id")
	}

	canonical, err := parseOpenToken(id, vaccineProviders)
	if err != nil {
		return Organization{}, nest(err, "id")
	}

	org := Organization{ID: canonical, Name: strings.TrimSpace(name)}
	if err := org.Validate(); err != nil {
		return Organization{}, err
	}
	return org, nil
}

func (o Organization) normalize() (Organization, error) {
	return NewOrganization(o.ID, o.Name)
}

func (o Organization) Validate() error {
	if len(o.ID) == 0 {
		return missing("id")
	}
	if !EnumValuePattern.MatchString(o.ID) {
		return newError(ErrInvalidEnumValue, "id", o.ID, "expecting lowercase alphanumerics and underscores")
	}
	return nil
}

func (o Organization) ToMapping() Mapping {
	m := Mapping{"id": o.ID}
	putString(m, "name", o.Name)
	return m
}

func OrganizationFromMapping(m Mapping) (Organization, error) {
	if err := checkKeys(m, "id", "name"); err != nil {
		return Organization{}, err
	}

	id, err := getStringOptional(m, "id")
	if err != nil {
		return Organization{}, err
	}
	name, err := getStringOptional(m, "name")
	if err != nil {
		return Organization{}, err
	}
	return NewOrganization(id, name)
}

// Link cross-references a location in another system. Authority is a
// LocationAuthority or VaccineProvider value when one fits.
type Link struct {
	Authority string
	ID        string
	URI       string
}

func NewLink(authority string, id string, uri string) (Link, error) {
	link := Link{ID: strings.TrimSpace(id), URI: strings.TrimSpace(uri)}

	if authority = strings.TrimSpace(authority); len(authority) > 0 {
		canonical, err := parseOpenToken(authority, locationAuthorities, vaccineProviders)
		if err != nil {
			return Link{}, nest(err, "authority")
		}
		link.Authority = canonical
	}

	if err := link.Validate(); err != nil {
		return Link{}, err
	}
	return link, nil
}

func (l Link) normalize() (Link, error) {
	return NewLink(l.Authority, l.ID, l.URI)
}

func (l Link) Validate() error {
	if len(l.Authority) > 0 && !EnumValuePattern.MatchString(l.Authority) {
		return newError(ErrInvalidEnumValue, "authority", l.Authority, "expecting lowercase alphanumerics and underscores")
	}
	if len(l.ID) == 0 {
		return missing("id")
	}
	if len(l.URI) > 0 {
		return checkFormat("uri", l.URI, "url", "url")
	}
	return nil
}

func (l Link) ToMapping() Mapping {
	m := Mapping{"id": l.ID}
	putString(m, "authority", l.Authority)
	putString(m, "uri", l.URI)
	return m
}

func LinkFromMapping(m Mapping) (Link, error) {
	if err := checkKeys(m, "authority", "id", "uri"); err != nil {
		return Link{}, err
	}

	authority, err := getStringOptional(m, "authority")
	if err != nil {
		return Link{}, err
	}
	id, err := getStringOptional(m, "id")
	if err != nil {
		return Link{}, err
	}
	uri, err := getStringOptional(m, "uri")
	if err != nil {
		return Link{}, err
	}
	return NewLink(authority, id, uri)
}
