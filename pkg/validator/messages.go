package validator

import (
	"maps"
	"regexp"
	"strconv"
	"strings"
)

// FieldMessages overrides the label and per-rule templates of one field.
type FieldMessages struct {
	Label string            `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Rules map[string]string `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`
}

// Messages maps a field (error key, base name or declared name) to its overrides.
type Messages map[string]FieldMessages

// Catalog supplies localized message templates by key.
type Catalog interface {
	Message(lang, key string) (string, bool)
}

// CatalogFunc adapts a function to the Catalog interface.
type CatalogFunc func(lang, key string) (string, bool)

func (f CatalogFunc) Message(lang, key string) (string, bool) { return f(lang, key) }

// GenericMessage is used when no template exists for a rule.
const GenericMessage = "The :label field is invalid."

var defaultMessages = map[string]string{
	"required":           "The :label field is required.",
	"required_if":        "The :label field is required when :other is :values.",
	"required_if_not":    "The :label field is required when :other is not :values.",
	"required_if_filled": "The :label field is required when :other is present.",
	"required_with":      "The :label field is required when :other is present.",
	"required_unless":    "The :label field is required unless :other is in :values.",
	"accepted":           "The :label must be accepted.",

	"string":  "The :label must be a string.",
	"numeric": "The :label must be a number.",
	"float":   "The :label must be a number.",
	"double":  "The :label must be a number.",
	"integer": "The :label must be an integer.",
	"boolean": "The :label field must be true or false.",
	"array":   "The :label must be an array.",
	"json":    "The :label must be a valid JSON string.",
	"file":    "The :label must be a file.",

	"email":      "The :label must be a valid email address.",
	"url":        "The :label must be a valid URL.",
	"alpha":      "The :label may only contain letters.",
	"alpha_num":  "The :label may only contain letters and numbers.",
	"alpha_dash": "The :label may only contain letters, numbers, dashes and underscores.",
	"lowercase":  "The :label must be lowercase.",
	"uppercase":  "The :label must be uppercase.",
	"regex":      "The :label format is invalid.",
	"uuid":       "The :label must be a valid UUID.",
	"ip":         "The :label must be a valid IP address.",
	"ipv4":       "The :label must be a valid IPv4 address.",
	"ipv6":       "The :label must be a valid IPv6 address.",
	"urn":        "The :label must be a valid URN.",

	"min":             "The :label must be at least :min.",
	"max":             "The :label may not be greater than :max.",
	"between":         "The :label must be between :min_value and :max_value.",
	"size":            "The :label may not be larger than :size MB.",
	"digits":          "The :label must be :digits digits.",
	"digits_between":  "The :label must be between :min and :max digits.",
	"decimal":         "The :label must have :param[0] decimal places.",
	"decimal_between": "The :label must have between :min and :max decimal places.",
	"currency":        "The :label must be a valid amount of at most :max characters.",
	"min_length":      "The :label must be at least :min characters.",
	"max_length":      "The :label may not be greater than :max characters.",

	"same":              "The :label and :other must match.",
	"same_missing":      "The :other field to compare with :label was not found.",
	"different":         "The :label and :other must be different.",
	"confirmed":         "The :label confirmation does not match.",
	"confirmed_missing": "The :label confirmation field was not found.",
	"gt":                "The :label must be greater than :other.",
	"gte":               "The :label must be greater than or equal to :other.",
	"lt":                "The :label must be less than :other.",
	"lte":               "The :label must be less than or equal to :other.",
	"after":             "The :label must be a date after :date.",
	"before":            "The :label must be a date before :date.",
	"after_or_equal":    "The :label must be a date after or equal to :date.",
	"before_or_equal":   "The :label must be a date before or equal to :date.",

	"date":        "The :label is not a valid date.",
	"date_format": "The :label does not match the format :format.",
	"weekend":     "The :label must be a weekend day.",
	"time":        "The :label must be a valid time (HH:MM).",

	"in":             "The selected :label is invalid.",
	"not_in":         "The selected :label is invalid.",
	"contains":       "The :label must contain :values.",
	"doesnt_contain": "The :label must not contain :values.",

	"mimes":                 "The :label must be a file of type: :values.",
	"image":                 "The :label must be an image.",
	"dimensions":            "The :label must be :constraint.",
	"dimensions_unreadable": "The :label could not be read as an image.",

	"rule_error": "Validation error for rule :rule.",
	"no_source":  "Validation could not run: no value source was provided.",
}

// DefaultMessages returns a copy of the built-in English templates.
func DefaultMessages() map[string]string {
	return maps.Clone(defaultMessages)
}

var placeholderRegex = regexp.MustCompile(`:([a-z_]+(?:\[\d+\])?)`)

// Render substitutes :name placeholders. Unknown placeholders are kept.
func Render(tmpl string, tokens map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := tokens[match[1:]]; ok {
			return val
		}
		return match
	})
}

// maxFirstRules read :max from their first parameter.
var maxFirstRules = map[string]bool{
	"max":        true,
	"max_length": true,
	"lt":         true,
	"lte":        true,
	"size":       true,
	"currency":   true,
}

// listRules expose their parameters as :values.
var listRules = map[string]bool{
	"in":             true,
	"not_in":         true,
	"mimes":          true,
	"contains":       true,
	"doesnt_contain": true,
}

// tokens builds the placeholder values for a failed rule.
func (r *run) tokens(c *Context, spec RuleSpec, out Outcome) map[string]string {
	label := r.label(c)
	t := map[string]string{
		"label":     label,
		"attribute": label,
		"field":     c.Field,
		"value":     "the input",
		"rule":      spec.Name,
	}

	params := spec.Params
	for i, p := range params {
		t["param["+strconv.Itoa(i)+"]"] = p
	}
	if len(params) > 0 {
		t["min"] = params[0]
		t["min_value"] = params[0]
		t["other"] = r.labelFor(params[0])
		t["date"] = params[0]
		t["format"] = params[0]
		t["digits"] = params[0]
		t["size"] = params[0]
	} else {
		t["size"] = strconv.Itoa(defaultFileSizeMB)
	}
	if len(params) > 1 {
		t["max"] = params[1]
		t["max_value"] = params[1]
	}
	if maxFirstRules[spec.Name] && len(params) > 0 {
		t["max"] = params[0]
	}
	if listRules[spec.Name] {
		t["values"] = strings.Join(params, ", ")
	}

	if spec.Name == "required_with" {
		labels := make([]string, len(params))
		for i, p := range params {
			labels[i] = r.labelFor(p)
		}
		t["other"] = strings.Join(labels, ", ")
	}

	maps.Copy(t, out.Params)
	return t
}

// message resolves the template for a failed rule: field override, the
// rule's own message, the catalog for the run language, then built-in English.
func (r *run) message(c *Context, spec RuleSpec, out Outcome) (string, string, map[string]string) {
	key := out.Key
	if key == "" {
		key = spec.Name
	}

	tmpl, ok := r.override(c, spec.Name)
	if !ok && key != spec.Name {
		tmpl, ok = r.override(c, key)
	}
	if !ok && out.Message != "" {
		tmpl, ok = out.Message, true
	}
	if !ok {
		tmpl, ok = r.catalogMessage(key)
	}
	if !ok && key != spec.Name {
		tmpl, ok = r.catalogMessage(spec.Name)
	}
	if !ok {
		tmpl = GenericMessage
	}

	tokens := r.tokens(c, spec, out)
	return Render(tmpl, tokens), key, tokens
}

func (r *run) override(c *Context, rule string) (string, bool) {
	for _, name := range c.lookupNames() {
		if fm, ok := r.messages[name]; ok {
			if tmpl, ok := fm.Rules[rule]; ok && tmpl != "" {
				return tmpl, true
			}
		}
	}
	return "", false
}

func (r *run) catalogMessage(key string) (string, bool) {
	if r.catalog != nil {
		if tmpl, ok := r.catalog.Message(r.language, key); ok && tmpl != "" {
			return tmpl, true
		}
	}
	tmpl, ok := defaultMessages[key]
	return tmpl, ok
}
