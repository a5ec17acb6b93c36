package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ruleval/pkg/source"
	"github.com/dmitrymomot/ruleval/pkg/validator"
)

// Monday, 15 January 2024.
var fixedNow = validator.WithNow(func() time.Time {
	return time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
})

func passesOn(t *testing.T, spec, s string) bool {
	t.Helper()
	return validateField(t, spec, validator.String(s), fixedNow).Valid()
}

func TestDate(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"2024-01-15", "2024-1-5", "2024/01/15", "01/15/2024", "Jan 2, 2024", "2024-01-15T10:30:00Z", "yesterday"} {
		assert.True(t, passesOn(t, "date", s), s)
	}
	for _, s := range []string{"not a date", "2024-02-30", "2024-13-01"} {
		assert.False(t, passesOn(t, "date", s), s)
	}
}

func TestWeekendAndTime(t *testing.T) {
	t.Parallel()

	assert.True(t, passesOn(t, "weekend", "2024-01-13"))
	assert.True(t, passesOn(t, "weekend", "2024-01-14"))
	assert.False(t, passesOn(t, "weekend", "2024-01-15"))
	assert.False(t, passesOn(t, "weekend", "today"))
	assert.False(t, passesOn(t, "weekend", "garbage"))

	assert.True(t, passesOn(t, "time", "23:59"))
	assert.True(t, passesOn(t, "time", "7:05"))
	assert.False(t, passesOn(t, "time", "24:00"))
	assert.False(t, passesOn(t, "time", "12:60"))
}

func TestAfterBefore(t *testing.T) {
	t.Parallel()

	t.Run("relative literals", func(t *testing.T) {
		assert.True(t, passesOn(t, "after:today", "2024-01-16"))
		assert.False(t, passesOn(t, "after:today", "2024-01-15"))
		assert.True(t, passesOn(t, "before:tomorrow", "2024-01-15"))
		assert.True(t, passesOn(t, "after_or_equal:today", "2024-01-15"))
		assert.True(t, passesOn(t, "before_or_equal:yesterday", "2024-01-14"))
		assert.False(t, passesOn(t, "before_or_equal:yesterday", "2024-01-15"))
	})

	t.Run("absolute literals", func(t *testing.T) {
		assert.True(t, passesOn(t, "before:2024-01-01", "2023-12-31"))
		assert.False(t, passesOn(t, "before:2024-01-01", "2024-01-01"))
	})

	t.Run("message", func(t *testing.T) {
		fe := failure(t, validateField(t, "after:today", validator.String("2024-01-01"), fixedNow))
		assert.Equal(t, "The Field must be a date after today.", fe.Message)
	})

	t.Run("field reference", func(t *testing.T) {
		rules := validator.Rules{}.Add("end_date", "after_or_equal:start_date")

		src := source.NewMap().SetText("start_date", "2024-03-01").SetText("end_date", "2024-03-01")
		assert.True(t, validateForm(t, src, rules).Valid())

		src = source.NewMap().SetText("start_date", "2024-03-01").SetText("end_date", "2024-02-28")
		errs := validateForm(t, src, rules).Errors().GetErrors("end_date")
		require.Len(t, errs, 1)
		assert.Equal(t, "start_date", errs[0].Params["date"])

		src = source.NewMap().SetText("start_date", "").SetText("end_date", "2024-02-28")
		assert.True(t, validateForm(t, src, rules).Valid(), "empty reference field is skipped")
	})

	t.Run("literal wins over a same-named field for after", func(t *testing.T) {
		src := source.NewMap().SetText("today", "2030-01-01").SetText("when", "2024-01-16")
		res := validateForm(t, src, validator.Rules{}.Add("when", "after:today"), fixedNow)
		assert.True(t, res.Valid())
	})

	t.Run("unreadable reference fails", func(t *testing.T) {
		assert.False(t, passesOn(t, "after:someday", "2024-01-16"))
		assert.False(t, passesOn(t, "after:today", "soon"))
	})
}

func TestDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		value  string
		want   bool
	}{
		{"Y-m-d", "2024-01-15", true},
		{"Y-m-d", "2024-1-15", true},
		{"Y-m-d", "2024-13-01", false},
		{"Y-m-d", "15-01-2024", false},
		{"Y-m-d", "2023-02-29", false},
		{"Y-m-d", "2024-02-29", true},
		{"YYYY-MM-DD", "2024-12-31", true},
		{"d/m/Y", "15/01/2024", true},
		{"d/m/Y", "01/15/2024", false},
		{"m/d/Y", "01/15/2024", true},
		{"d.m.Y", "31.12.2024", true},
		{"Y-m-d H:i:s", "2024-01-15 23:59:59", true},
		{"Y-m-d H:i", "2024-01-15 24:00", false},
		{"H:i", "23:59", true},
		{"H:i", "12:60", false},
		{"h:i A", "12:30 PM", true},
		{"h:i A", "13:30 PM", false},
		{"c", "2024-01-15T10:30:00Z", true},
		{"ISO8601", "2024-01-15T10:30:00.123+02:00", true},
		{"m/Y", "13/2024", false},
		{"Y-m", "2024-06", true},
		{"F j, Y", "January 15, 2024", true},
		{"M j, Y", "Feb 30, 2024", false},
		{"j M Y", "15 Foo 2024", false},
		{"F j, Y", "Jan 15, 2024", false},
		{"M j, Y", "January 15, 2024", false},
		{"M j, Y", "Jan 15, 2024", true},
		{"j F Y", "15 may 2024", true},
		{"j M Y", "15 Sept 2024", false},
		{"Q", "2024-01-15", false},
	}

	for _, tt := range tests {
		t.Run(tt.format+" "+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, passesText(t, "date_format:"+tt.format, tt.value))
		})
	}

	t.Run("message", func(t *testing.T) {
		fe := failure(t, validateField(t, "date_format:F j, Y", validator.String("tomorrow")))
		assert.Equal(t, "The Field does not match the format F j, Y.", fe.Message)
	})

	t.Run("known formats", func(t *testing.T) {
		assert.Contains(t, validator.DateFormats(), "Y-m-d")
		assert.Contains(t, validator.DateFormats(), "F j, Y")
	})
}
