package nls

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"
const TimeOfDayLayout = "15:04"

// 5 digit or 5+4 digit zip codes, e.g. 94612, 94612-1234
var ZipCodePattern = regexp.MustCompile(`^[0-9]{5}(?:-[0-9]{4})?$`)

// US phone numbers, loose enough that normalizers don't need to format them
// exactly, e.g. (444) 444-4444, +1 (444) 444-4444, 444.444.4444 ext. 12
var USPhonePattern = regexp.MustCompile(`^(?:(?:\+?1\s*(?:[.-]\s*)?)?(?:\(\s*([2-9]1[02-9]|[2-9][02-8]1|[2-9][02-8][02-9])\s*\)|([2-9]1[02-9]|[2-9][02-8]1|[2-9][02-8][02-9]))\s*(?:[.-]\s*)?)?([2-9]1[02-9]|[2-9][02-9]1|[2-9][02-9]{2})\s*(?:[.-]\s*)?([0-9]{4})(?:\s*(?:#|x\.?|ext\.?|extension)\s*(\d+))?$`)

// lowercase alphanumerics and underscores, e.g. google_places
var EnumValuePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// anything but whitespace or a colon
var SourceIDPattern = regexp.MustCompile(`^[^\s:]+$`)

// <namespace>:<local-id>, e.g. az_arcgis:hsdg46sj
var LocationIDPattern = regexp.MustCompile(`^([a-z0-9_]+):([^\s:]+)$`)

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

var timestampLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

var formatValidator = validator.New()

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate accepts exactly YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, newError(ErrMalformedDate, "", s, "expecting YYYY-MM-DD")
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Valid reports whether d names a real day of the gregorian calendar.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Year > 9999 {
		return false
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && t.Month() == d.Month && t.Day() == d.Day
}

// TimeOfDay is a 24 hour wall clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func NewTimeOfDay(hour int, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// ParseTimeOfDay accepts exactly HH:MM.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if !timeOfDayPattern.MatchString(s) {
		return TimeOfDay{}, newError(ErrMalformedTime, "", s, "expecting HH:MM")
	}
	t, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		return TimeOfDay{}, newError(ErrMalformedTime, "", s, "%v", err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Hour*60+t.Minute < other.Hour*60+other.Minute
}

// ParseTimestamp accepts an ISO 8601 date and time, optionally with
// fractional seconds and a zone. Naive timestamps are read as UTC. The result
// is always in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, newError(ErrMalformedTimestamp, "", s, "expecting YYYY-MM-DDTHH:MM:SS[.ffffff][zone]")
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func normalizeTimestamp(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

func checkPattern(field string, value string, pattern *regexp.Regexp, what string) error {
	if !pattern.MatchString(value) {
		return newError(ErrMalformedValue, field, value, "not a valid %s", what)
	}
	return nil
}

func checkFormat(field string, value string, tag string, what string) error {
	if err := formatValidator.Var(value, tag); err != nil {
		return newError(ErrMalformedValue, field, value, "not a valid %s", what)
	}
	return nil
}

func checkRange(field string, value float64, min float64, max float64) error {
	if err := formatValidator.Var(value, fmt.Sprintf("gte=%g,lte=%g", min, max)); err != nil {
		return newError(ErrMalformedValue, field, value, "must be between %g and %g", min, max)
	}
	return nil
}
