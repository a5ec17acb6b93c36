package validator

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ArraySuffix marks a repeated field declaration such as "skills[]".
const ArraySuffix = "[]"

// Humanize turns a field name into a label: underscores and dashes become
// spaces and every word is capitalized.
func Humanize(name string) string {
	name = strings.TrimSuffix(name, ArraySuffix)
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	return cases.Title(language.English).String(name)
}

// lookupNames lists the keys under which overrides for this field may be
// declared, most specific first.
func (c *Context) lookupNames() []string {
	names := []string{c.Field}
	if c.Name != c.Field {
		names = append(names, c.Name)
	}
	if c.Index >= 0 {
		names = append(names, c.Name+ArraySuffix)
	}
	return names
}

// label resolves the label of the field under evaluation. Array elements get
// a 1-based " #n" suffix.
func (r *run) label(c *Context) string {
	label, matched := "", ""
	for _, name := range c.lookupNames() {
		if fm, ok := r.messages[name]; ok && fm.Label != "" {
			label, matched = fm.Label, name
			break
		}
	}
	if label == "" {
		label = Humanize(c.Name)
	}
	// A label declared for the element key itself is used verbatim.
	if c.Index >= 0 && matched != c.Field {
		label += " #" + strconv.Itoa(c.Index+1)
	}
	return label
}

// labelFor resolves the label of another field referenced by a rule.
func (r *run) labelFor(name string) string {
	name = strings.TrimSpace(name)
	if fm, ok := r.messages[name]; ok && fm.Label != "" {
		return fm.Label
	}
	return Humanize(name)
}
