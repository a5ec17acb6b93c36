package validator

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Shape identifies which variant a Value holds.
type Shape uint8

const (
	ShapeAbsent Shape = iota
	ShapeScalar
	ShapeMulti
	ShapeFiles
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeMulti:
		return "multi"
	case ShapeFiles:
		return "files"
	default:
		return "absent"
	}
}

type scalarType uint8

const (
	scalarString scalarType = iota
	scalarNumber
	scalarBool
)

// Kind is the declared kind of a form field as reported by the value source.
type Kind string

const (
	KindText           Kind = "text"
	KindTextarea       Kind = "textarea"
	KindHidden         Kind = "hidden"
	KindNumber         Kind = "number"
	KindCheckbox       Kind = "checkbox"
	KindRadio          Kind = "radio"
	KindSelect         Kind = "select"
	KindSelectMultiple Kind = "select-multiple"
	KindFile           Kind = "file"
	KindTime           Kind = "time"
	KindDate           Kind = "date"
)

// File describes one uploaded file. Open is optional and only needed by rules
// that inspect file content (dimensions).
type File struct {
	Name     string
	Size     int64
	MIMEType string
	Open     func() (io.ReadCloser, error)
}

// Value is the tagged representation of a field's current value.
// The zero Value is absent.
type Value struct {
	shape  Shape
	scalar scalarType
	str    string
	num    float64
	flag   bool
	list   []string
	files  []File
}

// Field pairs a value with the declared kind of the field it came from.
type Field struct {
	Value Value
	Kind  Kind
}

func Absent() Value { return Value{} }

func String(s string) Value {
	return Value{shape: ShapeScalar, scalar: scalarString, str: s}
}

func Number(n float64) Value {
	return Value{shape: ShapeScalar, scalar: scalarNumber, num: n}
}

func Bool(b bool) Value {
	return Value{shape: ShapeScalar, scalar: scalarBool, flag: b}
}

// Multi builds a multi-valued field (select-multiple, checkbox groups).
func Multi(items ...string) Value {
	list := make([]string, len(items))
	copy(list, items)
	return Value{shape: ShapeMulti, list: list}
}

// Files builds a file-set value.
func Files(files ...File) Value {
	list := make([]File, len(files))
	copy(list, files)
	return Value{shape: ShapeFiles, files: list}
}

func (v Value) Shape() Shape { return v.shape }

func (v Value) IsAbsent() bool { return v.shape == ShapeAbsent }

// IsString reports whether v is a string scalar.
func (v Value) IsString() bool {
	return v.shape == ShapeScalar && v.scalar == scalarString
}

// Number returns the numeric payload of a number scalar.
func (v Value) Number() (float64, bool) {
	if v.shape == ShapeScalar && v.scalar == scalarNumber {
		return v.num, true
	}
	return 0, false
}

// Bool returns the payload of a boolean scalar.
func (v Value) Bool() (bool, bool) {
	if v.shape == ShapeScalar && v.scalar == scalarBool {
		return v.flag, true
	}
	return false, false
}

// List returns the elements of a multi value, nil otherwise.
func (v Value) List() []string {
	if v.shape != ShapeMulti {
		return nil
	}
	return v.list
}

// FileList returns the files of a file-set value, nil otherwise.
func (v Value) FileList() []File {
	if v.shape != ShapeFiles {
		return nil
	}
	return v.files
}

// String renders the value the way rules compare it as text.
// Multi values and file names are joined with a comma.
func (v Value) String() string {
	switch v.shape {
	case ShapeScalar:
		switch v.scalar {
		case scalarNumber:
			return formatNumber(v.num)
		case scalarBool:
			return strconv.FormatBool(v.flag)
		default:
			return v.str
		}
	case ShapeMulti:
		return strings.Join(v.list, ",")
	case ShapeFiles:
		names := make([]string, 0, len(v.files))
		for _, f := range v.files {
			names = append(names, f.Name)
		}
		return strings.Join(names, ",")
	default:
		return ""
	}
}

// Raw returns the payload as a plain Go value, mostly for logging.
func (v Value) Raw() any {
	switch v.shape {
	case ShapeScalar:
		switch v.scalar {
		case scalarNumber:
			return v.num
		case scalarBool:
			return v.flag
		default:
			return v.str
		}
	case ShapeMulti:
		return v.list
	case ShapeFiles:
		names := make([]string, 0, len(v.files))
		for _, f := range v.files {
			names = append(names, f.Name)
		}
		return names
	default:
		return nil
	}
}

func formatNumber(n float64) string {
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	if math.IsNaN(n) {
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
