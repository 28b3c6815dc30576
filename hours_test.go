package nls

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDate(t *testing.T) {
	t.Run("both ends", func(t *testing.T) {
		od, err := NewOpenDate("2021-01-01", "2021-02-01")
		require.NoError(t, err)
		assert.Equal(t, NewDate(2021, time.January, 1), *od.Opens)
		assert.Equal(t, NewDate(2021, time.February, 1), *od.Closes)
	})

	t.Run("same day", func(t *testing.T) {
		_, err := NewOpenDate("2021-01-01", "2021-01-01")
		assert.NoError(t, err)
	})

	t.Run("open ended", func(t *testing.T) {
		od, err := NewOpenDate("2021-01-01", "")
		require.NoError(t, err)
		assert.Nil(t, od.Closes)
		assert.Equal(t, Mapping{"opens": "2021-01-01"}, od.ToMapping())

		od, err = NewOpenDate("", "2021-01-01")
		require.NoError(t, err)
		assert.Nil(t, od.Opens)
	})

	t.Run("closes before opens", func(t *testing.T) {
		_, err := NewOpenDate("2021-02-01", "2021-01-01")
		assert.True(t, errors.Is(err, ErrOrdering), "got %v", err)
	})

	t.Run("neither end", func(t *testing.T) {
		_, err := NewOpenDate("", "")
		assert.True(t, errors.Is(err, ErrMissingField), "got %v", err)
	})

	t.Run("timestamp instead of date", func(t *testing.T) {
		_, err := NewOpenDate("2021-01-01T08:00:00", "")
		require.True(t, errors.Is(err, ErrMalformedDate), "got %v", err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "opens", verr.Field)
	})

	t.Run("relative date", func(t *testing.T) {
		_, err := NewOpenDate("", "tomorrow")
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, ErrMalformedDate, verr.Kind)
		assert.Equal(t, "closes", verr.Field)
	})
}

func TestOpenDateFromMapping(t *testing.T) {
	od, err := OpenDateFromMapping(Mapping{"opens": "2021-01-01", "closes": "2021-06-30"})
	require.NoError(t, err)

	again, err := OpenDateFromMapping(od.ToMapping())
	require.NoError(t, err)
	assert.Equal(t, od, again)

	_, err = OpenDateFromMapping(Mapping{"opens": "2021-01-01", "starts": "2021-01-01"})
	assert.True(t, errors.Is(err, ErrUnknownField), "got %v", err)

	_, err = OpenDateFromMapping(Mapping{"opens": 20210101})
	assert.True(t, errors.Is(err, ErrWrongType), "got %v", err)
}

func TestOpenHour(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		oh, err := NewOpenHour("monday", "08:00", "14:00")
		require.NoError(t, err)
		assert.Equal(t, Monday, oh.Day)
		assert.Equal(t, NewTimeOfDay(8, 0), oh.Opens)
		assert.Equal(t, NewTimeOfDay(14, 0), oh.Closes)
		assert.Equal(t, Mapping{"day": "monday", "opens": "08:00", "closes": "14:00"}, oh.ToMapping())
	})

	t.Run("day is case insensitive", func(t *testing.T) {
		oh, err := NewOpenHour("Monday", "08:00", "14:00")
		require.NoError(t, err)
		assert.Equal(t, Monday, oh.Day)
	})

	t.Run("public holidays", func(t *testing.T) {
		oh, err := NewOpenHour("public_holidays", "10:00", "12:00")
		require.NoError(t, err)
		assert.Equal(t, PublicHolidays, oh.Day)
	})

	t.Run("abbreviated day", func(t *testing.T) {
		_, err := NewOpenHour("mon", "08:00", "14:00")
		assert.True(t, errors.Is(err, ErrInvalidEnumValue), "got %v", err)
	})

	t.Run("overnight", func(t *testing.T) {
		_, err := NewOpenHour("monday", "20:00", "06:00")
		assert.True(t, errors.Is(err, ErrOrdering), "got %v", err)
	})

	t.Run("empty range", func(t *testing.T) {
		_, err := NewOpenHour("monday", "08:00", "08:00")
		assert.True(t, errors.Is(err, ErrOrdering), "got %v", err)
	})

	t.Run("date time instead of time", func(t *testing.T) {
		_, err := NewOpenHour("monday", "2021-01-01T08:00:00", "14:00")
		require.True(t, errors.Is(err, ErrMalformedTime), "got %v", err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "opens", verr.Field)
	})

	t.Run("missing day", func(t *testing.T) {
		_, err := NewOpenHour("", "08:00", "14:00")
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, ErrMissingField, verr.Kind)
		assert.Equal(t, "day", verr.Field)
	})

	t.Run("missing closes", func(t *testing.T) {
		_, err := NewOpenHour("friday", "08:00", "")
		assert.True(t, errors.Is(err, ErrMissingField), "got %v", err)
	})
}

func TestOpenHourFromMapping(t *testing.T) {
	oh, err := OpenHourFromMapping(Mapping{"day": "SUNDAY", "opens": "09:00", "closes": "17:30"})
	require.NoError(t, err)
	assert.Equal(t, Sunday, oh.Day)

	again, err := OpenHourFromMapping(oh.ToMapping())
	require.NoError(t, err)
	assert.Equal(t, oh, again)

	_, err = OpenHourFromMapping(Mapping{"opens": "09:00", "closes": "17:30"})
	assert.True(t, errors.Is(err, ErrMissingField), "got %v", err)
}
