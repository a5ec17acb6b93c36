package validator

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when a value must be read as a calendar date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Monday, 02-Jan-06 15:04:05 MST",
	time.RFC1123,
	time.RFC1123Z,
}

func registerDateRules(r *Registry) {
	r.RegisterFunc("date", isDate)
	r.RegisterFunc("date_format", dateFormat)
	r.RegisterFunc("weekend", weekend)
	r.RegisterFunc("time", clockTime)
	r.RegisterFunc("after", dateRule(literalFirst, func(a, b time.Time) bool { return a.After(b) }))
	r.RegisterFunc("before", dateRule(literalFirst, func(a, b time.Time) bool { return a.Before(b) }))
	r.RegisterFunc("after_or_equal", dateRule(fieldFirst, func(a, b time.Time) bool { return !a.Before(b) }))
	r.RegisterFunc("before_or_equal", dateRule(fieldFirst, func(a, b time.Time) bool { return !a.After(b) }))
}

// parseDate reads s as a date. The relative tokens today, tomorrow,
// yesterday and now are resolved against now.
func parseDate(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	day := func(offset int) time.Time {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d+offset, 0, 0, 0, 0, time.UTC)
	}
	switch strings.ToLower(s) {
	case "now":
		return now.UTC(), true
	case "today":
		return day(0), true
	case "tomorrow":
		return day(1), true
	case "yesterday":
		return day(-1), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDate(c *Context, _ []string) Outcome {
	if _, ok := parseDate(c.Value.String(), c.Now()); ok {
		return Pass()
	}
	return Fail("")
}

func weekend(c *Context, _ []string) Outcome {
	t, ok := parseDate(c.Value.String(), c.Now())
	if !ok {
		return Fail("")
	}
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return Pass()
	}
	return Fail("")
}

func clockTime(c *Context, _ []string) Outcome {
	if clockRegex.MatchString(strings.TrimSpace(c.Value.String())) {
		return Pass()
	}
	return Fail("")
}

type referenceOrder uint8

const (
	literalFirst referenceOrder = iota
	fieldFirst
)

// reference resolves the date a value is compared with. ok is false when
// the reference cannot be read as a date; skip is true when it names a
// field that is present but empty.
func reference(c *Context, param string, order referenceOrder) (t time.Time, ok, skip bool) {
	if order == literalFirst {
		if t, ok := parseDate(param, c.Now()); ok {
			return t, true, false
		}
	}
	if v, found := c.LookupValue(param); found {
		if IsEmpty(v) {
			return time.Time{}, false, true
		}
		t, ok := parseDate(v.String(), c.Now())
		return t, ok, false
	}
	if order == fieldFirst {
		t, ok := parseDate(param, c.Now())
		return t, ok, false
	}
	return time.Time{}, false, false
}

func dateRule(order referenceOrder, cmp func(a, b time.Time) bool) func(*Context, []string) Outcome {
	return func(c *Context, params []string) Outcome {
		if len(params) == 0 {
			return Pass()
		}
		ref, ok, skip := reference(c, params[0], order)
		if skip {
			return Pass()
		}
		v, valid := parseDate(c.Value.String(), c.Now())
		if !ok || !valid || !cmp(v, ref) {
			return Fail("").With(map[string]string{"date": params[0]})
		}
		return Pass()
	}
}
