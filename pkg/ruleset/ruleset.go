package ruleset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/ruleval/pkg/validator"
)

// Format is a rule file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Set is a parsed rule file.
type Set struct {
	Language string             `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty"`
	Order    []string           `json:"order,omitempty" yaml:"order,omitempty" toml:"order,omitempty"`
	Rules    map[string]string  `json:"rules" yaml:"rules" toml:"rules"`
	Messages validator.Messages `json:"messages,omitempty" yaml:"messages,omitempty" toml:"messages,omitempty"`
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Load reads and parses a rule file; the format comes from its extension.
func Load(ctx context.Context, path string) (*Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}

	set, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Parse decodes rule file content of the given format.
func Parse(data []byte, format Format) (*Set, error) {
	var set Set
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &set)
	case FormatJSON:
		err = json.Unmarshal(data, &set)
	case FormatTOML:
		err = toml.Unmarshal(data, &set)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	if err := set.Check(); err != nil {
		return nil, err
	}
	return &set, nil
}

// Check reports structural problems: empty field names and order entries
// without rules.
func (s *Set) Check() error {
	for field := range s.Rules {
		if strings.TrimSpace(field) == "" {
			return ErrEmptyField
		}
	}
	for _, field := range s.Order {
		if _, ok := s.Rules[field]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownOrder, field)
		}
	}
	return nil
}

// ValidatorRules returns the declarations in evaluation order.
func (s *Set) ValidatorRules() validator.Rules {
	rules := make(validator.Rules, 0, len(s.Rules))
	seen := make(map[string]bool, len(s.Order))
	for _, field := range s.Order {
		if seen[field] {
			continue
		}
		seen[field] = true
		rules = rules.Add(field, s.Rules[field])
	}

	rest := make([]string, 0, len(s.Rules))
	for field := range s.Rules {
		if !seen[field] {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		rules = rules.Add(field, s.Rules[field])
	}
	return rules
}

// UnknownRules lists rule names the registry does not know. Such rules pass
// silently at run time, so this is mostly useful to catch typos.
func (s *Set) UnknownRules(reg *validator.Registry) []string {
	seen := make(map[string]bool)
	var unknown []string
	for _, spec := range s.Rules {
		for _, rs := range reg.Parse(spec) {
			if !reg.Has(rs.Name) && !seen[rs.Name] {
				seen[rs.Name] = true
				unknown = append(unknown, rs.Name)
			}
		}
	}
	sort.Strings(unknown)
	return unknown
}

// Options returns the validator options carried by the file.
func (s *Set) Options() []validator.Option {
	opts := make([]validator.Option, 0, 2)
	if len(s.Messages) > 0 {
		opts = append(opts, validator.WithMessages(s.Messages))
	}
	if s.Language != "" {
		opts = append(opts, validator.WithLanguage(s.Language))
	}
	return opts
}
