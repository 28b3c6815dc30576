package nls

import (
	"strings"
)

// ContactFields holds the raw wire values of a Contact.
type ContactFields struct {
	ContactType string
	Phone       string
	Email       string
	Website     string
	Other       string
}

// Contact is one way of reaching a location. Exactly one of Phone, Email,
// Website and Other is set.
type Contact struct {
	ContactType ContactType
	Phone       string
	Email       string
	Website     string
	Other       string
}

func NewContact(f ContactFields) (Contact, error) {
	c := Contact{
		Phone:   strings.TrimSpace(f.Phone),
		Email:   strings.TrimSpace(f.Email),
		Website: strings.TrimSpace(f.Website),
		Other:   strings.TrimSpace(f.Other),
	}

	if contactType := strings.TrimSpace(f.ContactType); len(contactType) > 0 {
		parsed, err := ParseContactType(contactType)
		if err != nil {
			return Contact{}, nest(err, "contact_type")
		}
		c.ContactType = parsed
	}

	if err := c.Validate(); err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (c Contact) normalize() (Contact, error) {
	return NewContact(ContactFields{
		ContactType: string(c.ContactType),
		Phone:       c.Phone,
		Email:       c.Email,
		Website:     c.Website,
		Other:       c.Other,
	})
}

func (c Contact) methods() []string {
	set := make([]string, 0, 1)
	if len(c.Phone) > 0 {
		set = append(set, "phone")
	}
	if len(c.Email) > 0 {
		set = append(set, "email")
	}
	if len(c.Website) > 0 {
		set = append(set, "website")
	}
	if len(c.Other) > 0 {
		set = append(set, "other")
	}
	return set
}

func (c Contact) Validate() error {
	if len(c.ContactType) > 0 && !c.ContactType.Valid() {
		return newError(ErrInvalidEnumValue, "contact_type", string(c.ContactType), "not a member of ContactType")
	}

	methods := c.methods()
	if len(methods) == 0 {
		return newError(ErrMissingField, "", nil, "one of phone, email, website or other is required")
	}
	if len(methods) > 1 {
		return newError(ErrMutuallyExclusiveFields, "", nil, "only one of %s may be set per contact", strings.Join(methods, ", "))
	}

	switch methods[0] {
	case "phone":
		return checkPattern("phone", c.Phone, USPhonePattern, "US phone number")
	case "email":
		return checkFormat("email", c.Email, "email", "email address")
	case "website":
		return checkFormat("website", c.Website, "http_url", "http(s) url")
	}
	return nil
}

func (c Contact) ToMapping() Mapping {
	m := make(Mapping)
	putString(m, "contact_type", string(c.ContactType))
	putString(m, "phone", c.Phone)
	putString(m, "email", c.Email)
	putString(m, "website", c.Website)
	putString(m, "other", c.Other)
	return m
}

func ContactFromMapping(m Mapping) (Contact, error) {
	if err := checkKeys(m, "contact_type", "phone", "email", "website", "other"); err != nil {
		return Contact{}, err
	}

	var f ContactFields
	var err error
	if f.ContactType, err = getStringOptional(m, "contact_type"); err != nil {
		return Contact{}, err
	}
	if f.Phone, err = getStringOptional(m, "phone"); err != nil {
		return Contact{}, err
	}
	if f.Email, err = getStringOptional(m, "email"); err != nil {
		return Contact{}, err
	}
	if f.Website, err = getStringOptional(m, "website"); err != nil {
		return Contact{}, err
	}
	if f.Other, err = getStringOptional(m, "other"); err != nil {
		return Contact{}, err
	}
	return NewContact(f)
}
