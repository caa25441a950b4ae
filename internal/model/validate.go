package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError reports the first constraint a model failed.
type FieldError struct {
	// Field is the dotted wire-name path of the offending field.
	Field string
	// Reason is a human-readable description of the constraint.
	Reason string
}

// Error implements error.
func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	return validate
}

// Validate checks the validate tags of a struct model. Non-struct values
// and nil pointers pass. The returned error is a *FieldError.
func Validate(v any) error {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil
	}

	err := getValidator().Struct(rv.Interface())
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Errorf("validating %s: %w", rv.Type(), err)
	}

	first := validationErrors[0]

	return &FieldError{
		Field:  wirePath(rv.Type(), first.StructNamespace()),
		Reason: describe(first),
	}
}

// wirePath translates a validator struct namespace such as
// "User.Emails[0].Value" into wire names: "emails[0].value". Embedded
// structs are flattened, as they are on the wire.
func wirePath(t reflect.Type, namespace string) string {
	segments := strings.Split(namespace, ".")[1:]
	parts := make([]string, 0, len(segments))

	for _, segment := range segments {
		name, index, indexed := strings.Cut(segment, "[")

		var (
			sf    reflect.StructField
			found bool
		)

		if t != nil && t.Kind() == reflect.Struct {
			sf, found = t.FieldByName(name)
		}

		if !found {
			parts = append(parts, segment)
			t = nil

			continue
		}

		wire, ok := WireName(t, name)
		t = elemType(sf.Type, indexed)

		switch {
		case ok && indexed:
			parts = append(parts, wire+"["+index)
		case ok:
			parts = append(parts, wire)
		case sf.Anonymous && !indexed:
			// flattened
		default:
			parts = append(parts, segment)
		}
	}

	return strings.Join(parts, ".")
}

// elemType dereferences t and, for an indexed segment, steps into the
// element type of the collection.
func elemType(t reflect.Type, indexed bool) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if indexed && (t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map) {
		t = t.Elem()
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
	}

	return t
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "email":
		return "must be a valid email address"
	case "iso3166_1_alpha2":
		return "must be an ISO 3166 two-letter country code"
	default:
		return "failed " + e.Tag() + " validation"
	}
}
