package validator

import (
	"fmt"
	"net/netip"
	"net/url"
	"regexp"
	"strings"

	"github.com/leodido/go-urn"

	"github.com/dmitrymomot/ruleval/pkg/logger"
)

var (
	// Deliberately loose: local@domain.tld without RFC 5322 quoting rules.
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	alphaRegex     = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphaNumRegex  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaDashRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

func registerFormatRules(r *Registry) {
	r.RegisterFunc("email", matchRule(emailRegex))
	r.RegisterFunc("alpha", matchRule(alphaRegex))
	r.RegisterFunc("alpha_num", matchRule(alphaNumRegex))
	r.RegisterFunc("alpha_dash", matchRule(alphaDashRegex))
	r.RegisterFunc("url", validURL)
	r.RegisterFunc("lowercase", lowercase)
	r.RegisterFunc("uppercase", uppercase)
	r.RegisterFunc("regex", regexRule)
	r.RegisterFunc("uuid", validUUID)
	r.RegisterFunc("ip", ipRule(func(a netip.Addr) bool { return a.Is4() || a.Is6() }))
	r.RegisterFunc("ipv4", ipRule(netip.Addr.Is4))
	r.RegisterFunc("ipv6", ipRule(netip.Addr.Is6))
	r.RegisterFunc("urn", validURN)
}

func matchRule(re *regexp.Regexp) func(*Context, []string) Outcome {
	return func(c *Context, _ []string) Outcome {
		if re.MatchString(c.Value.String()) {
			return Pass()
		}
		return Fail("")
	}
}

func validURL(c *Context, _ []string) Outcome {
	u, err := url.Parse(strings.TrimSpace(c.Value.String()))
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return Fail("")
	}
	return Pass()
}

func lowercase(c *Context, _ []string) Outcome {
	s := c.Value.String()
	if s == strings.ToLower(s) {
		return Pass()
	}
	return Fail("")
}

func uppercase(c *Context, _ []string) Outcome {
	s := c.Value.String()
	if s == strings.ToUpper(s) {
		return Pass()
	}
	return Fail("")
}

// patternSource converts "/body/flags" into a Go pattern with inline flags.
// Patterns without delimiters are used as given.
func patternSource(raw string) string {
	if len(raw) < 2 || raw[0] != '/' {
		return raw
	}
	end := strings.LastIndexByte(raw, '/')
	if end == 0 {
		return raw
	}

	body, flags := raw[1:end], raw[end+1:]
	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(inline.String(), f) {
				inline.WriteRune(f)
			}
		case 'g', 'u', 'y':
			// No Go equivalent, and none change the match result.
		default:
			return raw
		}
	}
	if inline.Len() == 0 {
		return body
	}
	return "(?" + inline.String() + ")" + body
}

func regexRule(c *Context, params []string) Outcome {
	if len(params) == 0 {
		return Pass()
	}
	re, err := c.compile(patternSource(params[0]))
	if err != nil {
		c.trace("invalid pattern", logger.Error(fmt.Errorf("%w: %w", ErrInvalidPattern, err)))
		return Fail(KeyRuleError)
	}
	if re.MatchString(c.Value.String()) {
		return Pass()
	}
	return Fail("")
}

func ipRule(accept func(netip.Addr) bool) func(*Context, []string) Outcome {
	return func(c *Context, _ []string) Outcome {
		addr, err := netip.ParseAddr(strings.TrimSpace(c.Value.String()))
		if err != nil || addr.Zone() != "" || !accept(addr) {
			return Fail("")
		}
		return Pass()
	}
}

func validURN(c *Context, _ []string) Outcome {
	if _, ok := urn.Parse([]byte(c.Value.String())); !ok {
		return Fail("")
	}
	return Pass()
}
