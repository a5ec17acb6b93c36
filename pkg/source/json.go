package source

import (
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/dmitrymomot/ruleval/pkg/validator"
)

// FromJSON builds a source from a JSON object. Nested objects are also
// reachable with dot-separated paths ("address.city"); arrays become
// repeated fields.
func FromJSON(data []byte) (*Map, error) {
	var p fastjson.Parser
	doc, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	obj, err := doc.Object()
	if err != nil {
		return nil, ErrNotAnObject
	}

	m := NewMap()
	addObject(m, "", obj)
	return m, nil
}

func addObject(m *Map, prefix string, obj *fastjson.Object) {
	obj.Visit(func(key []byte, v *fastjson.Value) {
		name := string(key)
		if prefix != "" {
			name = prefix + "." + name
		}

		switch v.Type() {
		case fastjson.TypeArray:
			items := v.GetArray()
			els := make([]validator.Value, len(items))
			for i, item := range items {
				els[i], _ = jsonValue(item)
			}
			m.SetElements(name, validator.KindSelectMultiple, els...)
		case fastjson.TypeObject:
			value, kind := jsonValue(v)
			m.Set(name, value, kind)
			if nested, err := v.Object(); err == nil {
				addObject(m, name, nested)
			}
		default:
			value, kind := jsonValue(v)
			m.Set(name, value, kind)
		}
	})
}

func jsonValue(v *fastjson.Value) (validator.Value, validator.Kind) {
	switch v.Type() {
	case fastjson.TypeString:
		return validator.String(string(v.GetStringBytes())), validator.KindText
	case fastjson.TypeNumber:
		return validator.Number(v.GetFloat64()), validator.KindNumber
	case fastjson.TypeTrue:
		return validator.Bool(true), validator.KindCheckbox
	case fastjson.TypeFalse:
		return validator.Bool(false), validator.KindCheckbox
	case fastjson.TypeNull:
		return validator.Absent(), validator.KindText
	default:
		// Objects and arrays nested in arrays keep their JSON text.
		return validator.String(v.String()), validator.KindHidden
	}
}
