package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// DefaultLanguage is used when negotiation finds no supported language.
const DefaultLanguage = "en"

// maxAcceptLanguageLength caps how much of an Accept-Language header is read.
const maxAcceptLanguageLength = 4096

type weightedLang struct {
	tag string
	q   float64
}

// parseAcceptLanguage returns the header's language tags, lowercased and
// ordered by quality. Malformed quality values count as 1; q=0 entries are dropped.
func parseAcceptLanguage(header string) []weightedLang {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var out []weightedLang
	for part := range strings.SplitSeq(header, ",") {
		tag, params, _ := strings.Cut(part, ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}

		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
				q = f
			}
		}
		if q == 0 {
			continue
		}
		out = append(out, weightedLang{tag: tag, q: q})
	}

	slices.SortStableFunc(out, func(a, b weightedLang) int { return cmp.Compare(b.q, a.q) })
	return out
}

// ParseAcceptLanguage picks the supported language that best matches an
// Accept-Language header. Exact tags are tried first across the whole header,
// then base languages ("de-AT" -> "de"). The result is lowercased.
func ParseAcceptLanguage(header string, supported []string, defaultLang string) string {
	if header == "" || len(supported) == 0 {
		return defaultLang
	}

	set := make(map[string]bool, len(supported))
	for _, lang := range supported {
		set[strings.ToLower(lang)] = true
	}

	prefs := parseAcceptLanguage(header)
	for _, p := range prefs {
		if set[p.tag] {
			return p.tag
		}
	}
	for _, p := range prefs {
		if base, _, found := strings.Cut(p.tag, "-"); found && set[base] {
			return base
		}
	}
	return defaultLang
}
