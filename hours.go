package nls

import (
	"strings"
)

// OpenDate is a range of dates a location is open. Either end may be open
// ended but not both.
type OpenDate struct {
	Opens  *Date
	Closes *Date
}

// NewOpenDate parses YYYY-MM-DD dates. An empty string leaves that end of
// the range unset.
func NewOpenDate(opens string, closes string) (OpenDate, error) {
	od := OpenDate{}

	if opens = strings.TrimSpace(opens); len(opens) > 0 {
		d, err := ParseDate(opens)
		if err != nil {
			return OpenDate{}, nest(err, "opens")
		}
		od.Opens = &d
	}

	if closes = strings.TrimSpace(closes); len(closes) > 0 {
		d, err := ParseDate(closes)
		if err != nil {
			return OpenDate{}, nest(err, "closes")
		}
		od.Closes = &d
	}

	if err := od.Validate(); err != nil {
		return OpenDate{}, err
	}
	return od, nil
}

func (od OpenDate) normalize() (OpenDate, error) {
	od = OpenDate{Opens: copyDate(od.Opens), Closes: copyDate(od.Closes)}
	if err := od.Validate(); err != nil {
		return OpenDate{}, err
	}
	return od, nil
}

func (od OpenDate) Validate() error {
	if od.Opens == nil && od.Closes == nil {
		return newError(ErrMissingField, "", nil, "one of opens or closes is required")
	}
	if od.Opens != nil && !od.Opens.Valid() {
		return newError(ErrMalformedDate, "opens", od.Opens.String(), "not a calendar date")
	}
	if od.Closes != nil && !od.Closes.Valid() {
		return newError(ErrMalformedDate, "closes", od.Closes.String(), "not a calendar date")
	}
	if od.Opens != nil && od.Closes != nil && od.Closes.Before(*od.Opens) {
		return newError(ErrOrdering, "closes", od.Closes.String(), "closes before opens (%s)", od.Opens)
	}
	return nil
}

func (od OpenDate) ToMapping() Mapping {
	m := make(Mapping)
	if od.Opens != nil {
		m["opens"] = od.Opens.String()
	}
	if od.Closes != nil {
		m["closes"] = od.Closes.String()
	}
	return m
}

func OpenDateFromMapping(m Mapping) (OpenDate, error) {
	if err := checkKeys(m, "opens", "closes"); err != nil {
		return OpenDate{}, err
	}

	opens, err := getStringOptional(m, "opens")
	if err != nil {
		return OpenDate{}, err
	}
	closes, err := getStringOptional(m, "closes")
	if err != nil {
		return OpenDate{}, err
	}
	return NewOpenDate(opens, closes)
}

// OpenHour is the recurring opening time of a location on one day. Ranges
// crossing midnight are not representable.
type OpenHour struct {
	Day    DayOfWeek
	Opens  TimeOfDay
	Closes TimeOfDay
}

func NewOpenHour(day string, opens string, closes string) (OpenHour, error) {
	oh := OpenHour{}

	if day = strings.TrimSpace(day); len(day) == 0 {
		return OpenHour{}, missing("day")
	}
	parsedDay, err := ParseDayOfWeek(day)
	if err != nil {
		return OpenHour{}, nest(err, "day")
	}
	oh.Day = parsedDay

	if opens = strings.TrimSpace(opens); len(opens) == 0 {
		return OpenHour{}, missing("opens")
	}
	if oh.Opens, err = ParseTimeOfDay(opens); err != nil {
		return OpenHour{}, nest(err, "opens")
	}

	if closes = strings.TrimSpace(closes); len(closes) == 0 {
		return OpenHour{}, missing("closes")
	}
	if oh.Closes, err = ParseTimeOfDay(closes); err != nil {
		return OpenHour{}, nest(err, "closes")
	}

	if err := oh.Validate(); err != nil {
		return OpenHour{}, err
	}
	return oh, nil
}

func (oh OpenHour) normalize() (OpenHour, error) {
	if day := strings.TrimSpace(string(oh.Day)); len(day) > 0 {
		parsed, err := ParseDayOfWeek(day)
		if err != nil {
			return OpenHour{}, nest(err, "day")
		}
		oh.Day = parsed
	}

	if err := oh.Validate(); err != nil {
		return OpenHour{}, err
	}
	return oh, nil
}

func (oh OpenHour) Validate() error {
	if len(oh.Day) == 0 {
		return missing("day")
	}
	if !oh.Day.Valid() {
		return newError(ErrInvalidEnumValue, "day", string(oh.Day), "not a member of DayOfWeek")
	}
	if !oh.Opens.Valid() {
		return newError(ErrMalformedTime, "opens", oh.Opens.String(), "not a time of day")
	}
	if !oh.Closes.Valid() {
		return newError(ErrMalformedTime, "closes", oh.Closes.String(), "not a time of day")
	}
	if !oh.Opens.Before(oh.Closes) {
		return newError(ErrOrdering, "closes", oh.Closes.String(), "closes at or before opens (%s)", oh.Opens)
	}
	return nil
}

func (oh OpenHour) ToMapping() Mapping {
	return Mapping{
		"day":    string(oh.Day),
		"opens":  oh.Opens.String(),
		"closes": oh.Closes.String(),
	}
}

func OpenHourFromMapping(m Mapping) (OpenHour, error) {
	if err := checkKeys(m, "day", "opens", "closes"); err != nil {
		return OpenHour{}, err
	}

	day, err := getStringOptional(m, "day")
	if err != nil {
		return OpenHour{}, err
	}
	opens, err := getStringOptional(m, "opens")
	if err != nil {
		return OpenHour{}, err
	}
	closes, err := getStringOptional(m, "closes")
	if err != nil {
		return OpenHour{}, err
	}
	return NewOpenHour(day, opens, closes)
}
