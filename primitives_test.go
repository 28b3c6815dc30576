package nls

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2021-04-01")
	if err != nil {
		t.Errorf("Expected nil error, got %v", err)
		return
	}
	if d != NewDate(2021, time.April, 1) {
		t.Errorf("Unexpected date: %v", d)
	}
	if d.String() != "2021-04-01" {
		t.Errorf("Unexpected string form: %s", d.String())
	}

	for _, bad := range []string{
		"2021-04-01T08:00:00",
		"2021-04-01 08:00",
		"tomorrow",
		"04/01/2021",
		"2021-4-1",
		"2021-02-30",
		"",
	} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrMalformedDate) {
			t.Errorf("%q: expected malformed date error, got %v", bad, err)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2021, time.March, 31)
	b := NewDate(2021, time.April, 1)

	if !a.Before(b) || b.Before(a) {
		t.Errorf("Expected %v before %v", a, b)
	}
	if a.Before(a) {
		t.Errorf("A date is not before itself")
	}
	if !NewDate(2020, time.December, 31).Before(a) {
		t.Errorf("Expected year to order first")
	}
}

func TestDateValid(t *testing.T) {
	if !NewDate(2024, time.February, 29).Valid() {
		t.Errorf("Expected leap day to be valid")
	}
	if NewDate(2021, time.February, 29).Valid() {
		t.Errorf("Expected 2021-02-29 to be invalid")
	}
	if NewDate(2021, time.Month(13), 1).Valid() {
		t.Errorf("Expected month 13 to be invalid")
	}
	zero := Date{}
	if zero.Valid() || !zero.IsZero() {
		t.Errorf("Expected zero date to be invalid and zero")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:30")
	if err != nil {
		t.Errorf("Expected nil error, got %v", err)
		return
	}
	if tod != NewTimeOfDay(8, 30) || tod.String() != "08:30" {
		t.Errorf("Unexpected time of day: %v", tod)
	}

	tod, err = ParseTimeOfDay("23:59")
	if err != nil || tod != NewTimeOfDay(23, 59) {
		t.Errorf("Expected 23:59, got %v (%v)", tod, err)
	}

	for _, bad := range []string{
		"8h",
		"8:30",
		"24:00",
		"12:60",
		"08:30:00",
		"2021-04-01T08:30:00",
		"",
	} {
		if _, err := ParseTimeOfDay(bad); !errors.Is(err, ErrMalformedTime) {
			t.Errorf("%q: expected malformed time error, got %v", bad, err)
		}
	}
}

func TestTimeOfDayOrdering(t *testing.T) {
	if !NewTimeOfDay(8, 0).Before(NewTimeOfDay(14, 0)) || !NewTimeOfDay(8, 0).Before(NewTimeOfDay(8, 1)) {
		t.Errorf("Expected earlier times to order first")
	}
	if NewTimeOfDay(8, 0).Before(NewTimeOfDay(8, 0)) {
		t.Errorf("A time is not before itself")
	}
	if NewTimeOfDay(20, 0).Before(NewTimeOfDay(6, 0)) {
		t.Errorf("Times do not wrap around midnight")
	}
}

func TestParseTimestamp(t *testing.T) {
	expected := time.Date(2020, time.October, 1, 12, 0, 0, 0, time.UTC)

	for _, s := range []string{
		"2020-10-01T12:00:00",
		"2020-10-01T12:00:00Z",
		"2020-10-01 12:00:00",
		"2020-10-01T05:00:00-07:00",
	} {
		ts, err := ParseTimestamp(s)
		if err != nil {
			t.Errorf("%q: expected nil error, got %v", s, err)
			continue
		}
		if !expected.Equal(ts) || ts.Location() != time.UTC {
			t.Errorf("%q: expected %v, got %v", s, expected, ts)
		}
	}

	ts, err := ParseTimestamp("2020-10-01T12:00:00.123456")
	if err != nil {
		t.Errorf("Expected nil error, got %v", err)
		return
	}
	if ts.Nanosecond() != 123456000 {
		t.Errorf("Unexpected fraction: %d", ts.Nanosecond())
	}
	if formatted := FormatTimestamp(ts); formatted != "2020-10-01T12:00:00.123456Z" {
		t.Errorf("Unexpected format: %s", formatted)
	}

	for _, bad := range []string{"2020-10-01", "12:00", "yesterday", ""} {
		if _, err := ParseTimestamp(bad); !errors.Is(err, ErrMalformedTimestamp) {
			t.Errorf("%q: expected malformed timestamp error, got %v", bad, err)
		}
	}
}

func TestCheckFormat(t *testing.T) {
	if err := checkFormat("email", "info@example.org", "email", "email address"); err != nil {
		t.Errorf("Expected valid email, got %v", err)
	}
	if err := checkFormat("website", "https://example.org/book", "http_url", "url"); err != nil {
		t.Errorf("Expected valid url, got %v", err)
	}

	err := checkFormat("email", "not an email", "email", "email address")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "email" || !errors.Is(err, ErrMalformedValue) {
		t.Errorf("Expected malformed email error, got %v", err)
	}

	if checkFormat("website", "example.org", "http_url", "url") == nil {
		t.Errorf("Expected url without scheme to be rejected")
	}
}

func TestCheckRange(t *testing.T) {
	if err := checkRange("latitude", 47.6, -90, 90); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if err := checkRange("latitude", -90, -90, 90); err != nil {
		t.Errorf("Expected bounds to be inclusive, got %v", err)
	}

	for _, bad := range []float64{90.5, -180.1, math.NaN(), math.Inf(1)} {
		if err := checkRange("latitude", bad, -90, 90); !errors.Is(err, ErrMalformedValue) {
			t.Errorf("%v: expected out of range error, got %v", bad, err)
		}
	}
}

func FuzzParseDate(f *testing.F) {
	f.Add("2021-04-01")
	f.Add("1999-12-31")
	f.Add("2021-02-30")
	f.Add("tomorrow")

	f.Fuzz(func(t *testing.T, s string) {
		d, err := ParseDate(s)
		if err != nil {
			return
		}
		again, err := ParseDate(d.String())
		if err != nil {
			t.Fatalf("%q parsed to %v which does not parse again: %v", s, d, err)
		}
		if again != d {
			t.Fatalf("%q: round trip changed %v to %v", s, d, again)
		}
	})
}

func FuzzParseTimeOfDay(f *testing.F) {
	f.Add("08:00")
	f.Add("23:59")
	f.Add("24:00")
	f.Add("8h")

	f.Fuzz(func(t *testing.T, s string) {
		tod, err := ParseTimeOfDay(s)
		if err != nil {
			return
		}
		if !tod.Valid() {
			t.Fatalf("%q parsed to invalid %v", s, tod)
		}
		again, err := ParseTimeOfDay(tod.String())
		if err != nil || again != tod {
			t.Fatalf("%q: round trip changed %v to %v (%v)", s, tod, again, err)
		}
	})
}
