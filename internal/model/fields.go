package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// Field describes one serialized field of a model.
type Field struct {
	// Name is the Go field name.
	Name string
	// Wire is the JSON property name.
	Wire string
	// OmitEmpty reports whether the field is dropped when empty.
	OmitEmpty bool
	// Type is the Go type of the field.
	Type reflect.Type
	// Index is the field index path, usable with reflect.Value.FieldByIndex.
	Index []int
}

var fieldCache sync.Map // map[reflect.Type][]Field

// Fields returns the serialized fields of a struct type, in declaration
// order. Pointer types are dereferenced. Non-struct types have no fields.
func Fields(t reflect.Type) []Field {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]Field)
	}

	fields := collectFields(t, nil)
	actual, _ := fieldCache.LoadOrStore(t, fields)

	return actual.([]Field)
}

// FieldsOf is Fields for the dynamic type of v.
func FieldsOf(v any) []Field {
	if v == nil {
		return nil
	}

	return Fields(reflect.TypeOf(v))
}

// WireName translates a Go field name to its JSON property name.
func WireName(t reflect.Type, name string) (string, bool) {
	for _, field := range Fields(t) {
		if field.Name == name {
			return field.Wire, true
		}
	}

	return "", false
}

// LocalName translates a JSON property name to its Go field name.
func LocalName(t reflect.Type, wire string) (string, bool) {
	for _, field := range Fields(t) {
		if field.Wire == wire {
			return field.Name, true
		}
	}

	return "", false
}

// Conforms reports whether data is a JSON object carrying at least one wire
// field of v's type. Values whose type has no field table always conform.
func Conforms(v any, data []byte) bool {
	fields := FieldsOf(v)
	if len(fields) == 0 {
		return true
	}

	var object map[string]json.RawMessage

	err := json.Unmarshal(data, &object)
	if err != nil {
		return false
	}

	t := reflect.TypeOf(v)

	for wire := range object {
		if _, ok := LocalName(t, wire); ok {
			return true
		}
	}

	return false
}

func collectFields(t reflect.Type, parent []int) []Field {
	var fields []Field

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int{}, parent...), i)

		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")

		if sf.Anonymous && name == "" {
			embedded := sf.Type
			if embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}

			if embedded.Kind() == reflect.Struct {
				fields = append(fields, collectFields(embedded, index)...)

				continue
			}
		}

		if !sf.IsExported() {
			continue
		}

		if name == "" {
			name = sf.Name
		}

		fields = append(fields, Field{
			Name:      sf.Name,
			Wire:      name,
			OmitEmpty: strings.Contains(opts, "omitempty"),
			Type:      sf.Type,
			Index:     index,
		})
	}

	return fields
}
