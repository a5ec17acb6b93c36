package validator

import (
	"sort"
	"strings"
)

// RuleSpec is one parsed rule: its name and raw parameters.
type RuleSpec struct {
	Name   string
	Params []string
}

// String renders the rule back into rule-string form.
func (s RuleSpec) String() string {
	if len(s.Params) == 0 {
		return s.Name
	}
	return s.Name + ":" + strings.Join(s.Params, ",")
}

// RuleChain is the ordered list of rules declared for one field.
type RuleChain []RuleSpec

// Names returns the rule names in declaration order.
func (c RuleChain) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name
	}
	return names
}

// Has reports whether the chain declares the named rule.
func (c RuleChain) Has(name string) bool {
	for _, s := range c {
		if s.Name == name {
			return true
		}
	}
	return false
}

// rawParamRules receive the whole remainder after the first colon as a single
// parameter, since their argument may contain commas.
var rawParamRules = map[string]bool{
	"regex":       true,
	"date_format": true,
}

// ParseRules parses a rule string of the form "name1:p1,p2|name2|name3:p1".
// Empty tokens and empty parameter segments are discarded.
func ParseRules(spec string) RuleChain {
	tokens := strings.Split(spec, "|")
	chain := make(RuleChain, 0, len(tokens))

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		parts := strings.Split(token, ":")
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}

		rs := RuleSpec{Name: name}
		if len(parts) > 1 {
			raw := strings.Join(parts[1:], ":")
			if rawParamRules[name] {
				if raw != "" {
					rs.Params = []string{raw}
				}
			} else {
				rs.Params = splitParams(raw)
			}
		}
		chain = append(chain, rs)
	}

	return chain
}

func splitParams(raw string) []string {
	segments := strings.Split(raw, ",")
	params := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		params = append(params, seg)
	}
	return params
}

// FieldRule binds a field declaration (possibly ending in "[]") to its rule string.
type FieldRule struct {
	Field string
	Spec  string
}

// Rules is the ordered set of field declarations for one validation run.
type Rules []FieldRule

// Add appends a declaration and returns the extended set.
func (r Rules) Add(field, spec string) Rules {
	return append(r, FieldRule{Field: field, Spec: spec})
}

// Fields returns the declared field names in order.
func (r Rules) Fields() []string {
	fields := make([]string, len(r))
	for i, fr := range r {
		fields[i] = fr.Field
	}
	return fields
}

// RulesFromMap converts a map of declarations into Rules sorted by field name.
func RulesFromMap(m map[string]string) Rules {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rules := make(Rules, 0, len(keys))
	for _, k := range keys {
		rules = append(rules, FieldRule{Field: k, Spec: m[k]})
	}
	return rules
}
