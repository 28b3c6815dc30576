package nls

import (
	"strings"
	"time"
)

// SourceFields holds the raw wire values of a Source.
type SourceFields struct {
	Source         string
	ID             string
	FetchedFromURI string
	FetchedAt      string
	PublishedAt    string
	Data           map[string]interface{}
}

// Source records where a location record came from, including the parsed
// upstream record it was normalized from.
type Source struct {
	Source         string
	ID             string
	FetchedFromURI string
	FetchedAt      *time.Time // when the fetcher ran
	PublishedAt    *time.Time // when the source claims it was updated
	Data           Mapping
}

func NewSource(f SourceFields) (Source, error) {
	s := Source{
		Source:         strings.TrimSpace(f.Source),
		ID:             strings.TrimSpace(f.ID),
		FetchedFromURI: strings.TrimSpace(f.FetchedFromURI),
		Data:           f.Data,
	}

	if fetchedAt := strings.TrimSpace(f.FetchedAt); len(fetchedAt) > 0 {
		t, err := ParseTimestamp(fetchedAt)
		if err != nil {
			return Source{}, nest(err, "fetched_at")
		}
		s.FetchedAt = &t
	}

	if publishedAt := strings.TrimSpace(f.PublishedAt); len(publishedAt) > 0 {
		t, err := ParseTimestamp(publishedAt)
		if err != nil {
			return Source{}, nest(err, "published_at")
		}
		s.PublishedAt = &t
	}

	return s.normalize()
}

// normalize validates s and returns the canonical copy of it: timestamps in
// UTC and data in its JSON shape.
func (s Source) normalize() (Source, error) {
	if err := s.Validate(); err != nil {
		return Source{}, err
	}

	data, err := normalizeData("data", s.Data)
	if err != nil {
		return Source{}, err
	}

	s.Data = data.(Mapping)
	s.FetchedAt = normalizeTimestamp(s.FetchedAt)
	s.PublishedAt = normalizeTimestamp(s.PublishedAt)
	return s, nil
}

func (s Source) Validate() error {
	if len(s.Source) == 0 {
		return missing("source")
	}
	if !EnumValuePattern.MatchString(s.Source) {
		return newError(ErrMalformedIdentifier, "source", s.Source, "expecting lowercase alphanumerics and underscores")
	}
	if len(s.ID) == 0 {
		return missing("id")
	}
	if !SourceIDPattern.MatchString(s.ID) {
		return newError(ErrMalformedIdentifier, "id", s.ID, "must not contain whitespace or colons")
	}
	if len(s.FetchedFromURI) > 0 {
		if err := checkFormat("fetched_from_uri", s.FetchedFromURI, "url", "url"); err != nil {
			return err
		}
	}
	if len(s.Data) == 0 {
		return newError(ErrMissingField, "data", nil, "the parsed upstream record is required")
	}
	return nil
}

func (s Source) ToMapping() Mapping {
	m := Mapping{
		"source": s.Source,
		"id":     s.ID,
		"data":   copyMapping(s.Data),
	}
	putString(m, "fetched_from_uri", s.FetchedFromURI)
	if s.FetchedAt != nil {
		m["fetched_at"] = FormatTimestamp(*s.FetchedAt)
	}
	if s.PublishedAt != nil {
		m["published_at"] = FormatTimestamp(*s.PublishedAt)
	}
	return m
}

func SourceFromMapping(m Mapping) (Source, error) {
	if err := checkKeys(m, "source", "id", "fetched_from_uri", "fetched_at", "published_at", "data"); err != nil {
		return Source{}, err
	}

	var f SourceFields
	var err error
	if f.Source, err = getStringOptional(m, "source"); err != nil {
		return Source{}, err
	}
	if f.ID, err = getStringOptional(m, "id"); err != nil {
		return Source{}, err
	}
	if f.FetchedFromURI, err = getStringOptional(m, "fetched_from_uri"); err != nil {
		return Source{}, err
	}
	if f.FetchedAt, err = getStringOptional(m, "fetched_at"); err != nil {
		return Source{}, err
	}
	if f.PublishedAt, err = getStringOptional(m, "published_at"); err != nil {
		return Source{}, err
	}
	if f.Data, err = getMapOptional(m, "data"); err != nil {
		return Source{}, err
	}
	return NewSource(f)
}
