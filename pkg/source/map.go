package source

import (
	"sort"
	"strings"
	"sync"

	"github.com/dmitrymomot/ruleval/pkg/validator"
)

// Map is an in-memory value source. It is safe for concurrent use.
type Map struct {
	mu       sync.RWMutex
	fields   map[string]validator.Field
	elements map[string][]validator.Field
	ids      map[string]string
}

var _ validator.Source = (*Map)(nil)

func NewMap() *Map {
	return &Map{
		fields:   make(map[string]validator.Field),
		elements: make(map[string][]validator.Field),
		ids:      make(map[string]string),
	}
}

// Set stores a field value with its declared kind.
func (m *Map) Set(name string, v validator.Value, kind validator.Kind) *Map {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields[name] = validator.Field{Value: v, Kind: kind}
	return m
}

// SetText stores a text input.
func (m *Map) SetText(name, s string) *Map {
	return m.Set(name, validator.String(s), validator.KindText)
}

// SetElements stores the elements of a repeated field. The field itself
// becomes available to Lookup as a multi value of the element texts.
func (m *Map) SetElements(name string, kind validator.Kind, values ...validator.Value) *Map {
	name = strings.TrimSuffix(name, validator.ArraySuffix)

	els := make([]validator.Field, len(values))
	texts := make([]string, 0, len(values))
	var files []validator.File
	for i, v := range values {
		els[i] = validator.Field{Value: v, Kind: kind}
		if v.Shape() == validator.ShapeFiles {
			files = append(files, v.FileList()...)
			continue
		}
		if !v.IsAbsent() {
			texts = append(texts, v.String())
		}
	}

	combined := validator.Multi(texts...)
	if files != nil {
		combined = validator.Files(files...)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.elements[name] = els
	m.fields[name] = validator.Field{Value: combined, Kind: kind}
	return m
}

// Alias makes a field reachable by id under validator.ByID.
func (m *Map) Alias(id, name string) *Map {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[id] = name
	return m
}

func (m *Map) resolve(name string, sel validator.Selector) string {
	if sel == validator.ByID {
		if target, ok := m.ids[name]; ok {
			return target
		}
	}
	return name
}

func (m *Map) Lookup(name string, sel validator.Selector) (validator.Field, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = m.resolve(name, sel)
	if f, ok := m.fields[name]; ok {
		return f, true
	}
	f, ok := m.fields[name+validator.ArraySuffix]
	return f, ok
}

// Elements returns the stored elements of a repeated field, or splits a
// stored multi value or file set into one element each.
func (m *Map) Elements(name string, sel validator.Selector) []validator.Field {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = m.resolve(name, sel)
	if els, ok := m.elements[name]; ok {
		out := make([]validator.Field, len(els))
		copy(out, els)
		return out
	}

	f, ok := m.fields[name+validator.ArraySuffix]
	if !ok {
		if f, ok = m.fields[name]; !ok {
			return nil
		}
	}

	switch f.Value.Shape() {
	case validator.ShapeMulti:
		items := f.Value.List()
		out := make([]validator.Field, len(items))
		for i, item := range items {
			out[i] = validator.Field{Value: validator.String(item), Kind: f.Kind}
		}
		return out
	case validator.ShapeFiles:
		files := f.Value.FileList()
		out := make([]validator.Field, len(files))
		for i, file := range files {
			out[i] = validator.Field{Value: validator.Files(file), Kind: f.Kind}
		}
		return out
	case validator.ShapeAbsent:
		return nil
	default:
		return []validator.Field{f}
	}
}

// Names returns the stored field names, sorted.
func (m *Map) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.fields))
	for name := range m.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromMap converts plain Go values: strings, numbers, bools, string slices,
// []validator.File, validator.Value and nil (absent).
func FromMap(values map[string]any) *Map {
	m := NewMap()
	for name, raw := range values {
		v, kind := convert(raw)
		if base, ok := strings.CutSuffix(name, validator.ArraySuffix); ok && v.Shape() == validator.ShapeMulti {
			els := make([]validator.Value, 0, len(v.List()))
			for _, item := range v.List() {
				els = append(els, validator.String(item))
			}
			m.SetElements(base, kind, els...)
			continue
		}
		m.Set(name, v, kind)
	}
	return m
}

func convert(raw any) (validator.Value, validator.Kind) {
	switch v := raw.(type) {
	case nil:
		return validator.Absent(), validator.KindText
	case validator.Value:
		return v, validator.KindText
	case string:
		return validator.String(v), validator.KindText
	case bool:
		return validator.Bool(v), validator.KindCheckbox
	case int:
		return validator.Number(float64(v)), validator.KindNumber
	case int64:
		return validator.Number(float64(v)), validator.KindNumber
	case int32:
		return validator.Number(float64(v)), validator.KindNumber
	case float32:
		return validator.Number(float64(v)), validator.KindNumber
	case float64:
		return validator.Number(v), validator.KindNumber
	case []string:
		return validator.Multi(v...), validator.KindSelectMultiple
	case []validator.File:
		return validator.Files(v...), validator.KindFile
	default:
		return validator.Absent(), validator.KindText
	}
}
