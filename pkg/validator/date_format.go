package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Group names used by the format table:
// y year, m month, d day, H hour (24h), h hour (12h), i minute, s second,
// A meridiem, F full month name, M three-letter month name.
const (
	reYear    = `(?P<y>\d{4})`
	reMonth   = `(?P<m>\d{1,2})`
	reDay     = `(?P<d>\d{1,2})`
	reHour    = `(?P<H>\d{1,2})`
	reHour12  = `(?P<h>\d{1,2})`
	reMinute  = `(?P<i>\d{2})`
	reSecond  = `(?P<s>\d{2})`
	reMer     = `(?P<A>[AaPp][Mm])`
	reMonFull = `(?P<F>[A-Za-z]+)`
	reMonAbbr = `(?P<M>[A-Za-z]{3})`
)

type namedFormat struct {
	pattern *regexp.Regexp
}

func newDateFormat(expr string) namedFormat {
	return namedFormat{pattern: regexp.MustCompile("^" + expr + "$")}
}

func dmy(sep string) string {
	return reDay + regexp.QuoteMeta(sep) + reMonth + regexp.QuoteMeta(sep) + reYear
}

func mdy(sep string) string {
	return reMonth + regexp.QuoteMeta(sep) + reDay + regexp.QuoteMeta(sep) + reYear
}

const (
	hm  = reHour + `:` + reMinute
	hms = reHour + `:` + reMinute + `:` + reSecond
	iso = reYear + `-(?P<m>\d{2})-(?P<d>\d{2})T(?P<H>\d{2}):` + reMinute + `(?::` + reSecond + `(?:\.\d+)?)?(?:Z|[+-]\d{2}:?\d{2})?`
)

// dateFormats maps the supported date_format names to their layout.
var dateFormats = map[string]namedFormat{
	"Y-m-d":      newDateFormat(reYear + `-` + reMonth + `-` + reDay),
	"YYYY-MM-DD": newDateFormat(reYear + `-` + reMonth + `-` + reDay),
	"Y/m/d":      newDateFormat(reYear + `/` + reMonth + `/` + reDay),
	"YYYY/MM/DD": newDateFormat(reYear + `/` + reMonth + `/` + reDay),

	"m/d/Y":      newDateFormat(mdy("/")),
	"MM/DD/YYYY": newDateFormat(mdy("/")),
	"m-d-Y":      newDateFormat(mdy("-")),
	"MM-DD-YYYY": newDateFormat(mdy("-")),

	"d/m/Y":      newDateFormat(dmy("/")),
	"DD/MM/YYYY": newDateFormat(dmy("/")),
	"d-m-Y":      newDateFormat(dmy("-")),
	"DD-MM-YYYY": newDateFormat(dmy("-")),
	"d.m.Y":      newDateFormat(dmy(".")),
	"DD.MM.YYYY": newDateFormat(dmy(".")),

	"Y-m-d H:i":   newDateFormat(reYear + `-` + reMonth + `-` + reDay + ` ` + hm),
	"Y-m-d H:i:s": newDateFormat(reYear + `-` + reMonth + `-` + reDay + ` ` + hms),
	"m/d/Y H:i":   newDateFormat(mdy("/") + ` ` + hm),
	"d/m/Y H:i":   newDateFormat(dmy("/") + ` ` + hm),
	"d.m.Y H:i":   newDateFormat(dmy(".") + ` ` + hm),

	"H:i":   newDateFormat(hm),
	"H:i:s": newDateFormat(hms),
	"h:i A": newDateFormat(reHour12 + `:` + reMinute + ` ?` + reMer),

	"c":       newDateFormat(iso),
	"ISO8601": newDateFormat(iso),

	"m/Y":     newDateFormat(reMonth + `/` + reYear),
	"MM/YYYY": newDateFormat(reMonth + `/` + reYear),
	"m-Y":     newDateFormat(reMonth + `-` + reYear),
	"Y-m":     newDateFormat(reYear + `-` + reMonth),

	"F j, Y": newDateFormat(reMonFull + ` ` + reDay + `, ` + reYear),
	"M j, Y": newDateFormat(reMonAbbr + ` ` + reDay + `, ` + reYear),
	"j F Y":  newDateFormat(reDay + ` ` + reMonFull + ` ` + reYear),
	"j M Y":  newDateFormat(reDay + ` ` + reMonAbbr + ` ` + reYear),
}

// DateFormats returns the names accepted by date_format.
func DateFormats() []string {
	names := make([]string, 0, len(dateFormats))
	for name := range dateFormats {
		names = append(names, name)
	}
	return names
}

// fullMonths and shortMonths map lowercased month names for the F and M parts.
var fullMonths, shortMonths = func() (map[string]int, map[string]int) {
	full := make(map[string]int, 12)
	short := make(map[string]int, 12)
	for i := time.January; i <= time.December; i++ {
		name := strings.ToLower(i.String())
		full[name] = int(i)
		short[name[:3]] = int(i)
	}
	return full, short
}()

// matchDateFormat runs both phases: the structural match against the
// named layout, then the calendar and clock range checks.
func matchDateFormat(format, value string) bool {
	f, ok := dateFormats[format]
	if !ok {
		return false
	}
	m := f.pattern.FindStringSubmatch(value)
	if m == nil {
		return false
	}

	parts := make(map[string]string, len(m))
	for i, name := range f.pattern.SubexpNames() {
		if name != "" && m[i] != "" {
			parts[name] = m[i]
		}
	}
	num := func(key string) (int, bool) {
		s, ok := parts[key]
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(s)
		return n, err == nil
	}

	year, hasYear := num("y")
	month, hasMonth := num("m")
	if txt, ok := parts["F"]; ok {
		if month, hasMonth = fullMonths[strings.ToLower(txt)]; !hasMonth {
			return false
		}
	}
	if txt, ok := parts["M"]; ok {
		if month, hasMonth = shortMonths[strings.ToLower(txt)]; !hasMonth {
			return false
		}
	}
	day, hasDay := num("d")

	if hasMonth && (month < 1 || month > 12) {
		return false
	}
	if hasYear && hasMonth && hasDay {
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes overflow, so 2023-02-30 comes back as March.
		if t.Day() != day || int(t.Month()) != month || t.Year() != year {
			return false
		}
	}

	if h, ok := num("H"); ok && h > 23 {
		return false
	}
	if h, ok := num("h"); ok && (h < 1 || h > 12) {
		return false
	}
	if i, ok := num("i"); ok && i > 59 {
		return false
	}
	if s, ok := num("s"); ok && s > 59 {
		return false
	}
	return true
}

func dateFormat(c *Context, params []string) Outcome {
	if len(params) == 0 {
		return Pass()
	}
	format := strings.TrimSpace(params[0])
	if matchDateFormat(format, strings.TrimSpace(c.Value.String())) {
		return Pass()
	}
	return Fail("").With(map[string]string{"format": format})
}
