package pipeline

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fivetwenty-io/avatax-client/internal/model"
)

// ErrEmptyBody is reported when a JSON result was expected but the response
// had no body.
var ErrEmptyBody = errors.New("empty response body")

// ErrShapeMismatch is reported when an error body decodes but carries none
// of the documented fields.
var ErrShapeMismatch = errors.New("response body does not match the documented shape")

// Location says where a parameter travels.
type Location int

// Parameter locations.
const (
	InPath Location = iota
	InQuery
	InForm
	InHeader
	InBody
)

func (l Location) String() string {
	switch l {
	case InPath:
		return "path"
	case InQuery:
		return "query"
	case InForm:
		return "form"
	case InHeader:
		return "header"
	case InBody:
		return "body"
	default:
		return "unknown"
	}
}

// ParamSpec declares one parameter of an operation.
type ParamSpec struct {
	Name     string
	In       Location
	Required bool
	// Collection marks list-valued parameters, which explode into one
	// name=value pair per element.
	Collection bool
	// Enum, when set, lists the only values the parameter may hold.
	Enum []string
}

type decodeKind int

const (
	decodeEmpty decodeKind = iota
	decodeRaw
	decodeJSON
)

// Decode says how a response body is turned into a value.
type Decode struct {
	kind     decodeKind
	newValue func() any
}

// Empty discards the body. The result value is nil.
func Empty() Decode {
	return Decode{kind: decodeEmpty}
}

// Raw hands the body through unparsed as []byte.
func Raw() Decode {
	return Decode{kind: decodeRaw}
}

// JSON decodes the body into a new *T.
func JSON[T any]() Decode {
	return Decode{kind: decodeJSON, newValue: func() any { return new(T) }}
}

// IsJSON reports whether the body is decoded as JSON.
func (d Decode) IsJSON() bool {
	return d.kind == decodeJSON
}

func (d Decode) decode(body []byte) (any, error) {
	switch d.kind {
	case decodeRaw:
		return body, nil
	case decodeJSON:
		if len(body) == 0 {
			return nil, ErrEmptyBody
		}

		value := d.newValue()

		err := json.Unmarshal(body, value)
		if err != nil {
			return nil, err
		}

		return value, nil
	default:
		return nil, nil
	}
}

// decodeDetail decodes an error body, rejecting objects that share no field
// with the documented shape.
func (d Decode) decodeDetail(body []byte) (any, error) {
	value, err := d.decode(body)
	if err != nil {
		return nil, err
	}

	if d.kind == decodeJSON && !model.Conforms(value, body) {
		return nil, ErrShapeMismatch
	}

	return value, nil
}

// Descriptor is the immutable definition of one API operation. Descriptors
// are package-level values shared by every call.
type Descriptor struct {
	// Name identifies the operation in errors, logs and metrics.
	Name   string
	Method string
	// Path is the resource path with {name} placeholders.
	Path   string
	Params []ParamSpec
	// Consumes lists the request content types the operation accepts.
	Consumes []string
	// Produces lists the response content types, sent as Accept.
	Produces []string
	// Returns decodes 2xx responses without a more specific entry in Responses.
	Returns Decode
	// Responses maps status codes to their documented body shapes. Entries
	// for error statuses attach a typed detail to the returned APIError.
	Responses map[int]Decode
	// Anonymous operations are sent without an Authorization header.
	Anonymous bool
}

// Args holds the values of one call. Keys are parameter names.
type Args struct {
	Path   map[string]any
	Query  map[string]any
	Form   map[string]any
	Header map[string]any
	Body   any
}

func (a Args) lookup(spec ParamSpec) (any, bool) {
	var values map[string]any

	switch spec.In {
	case InPath:
		values = a.Path
	case InQuery:
		values = a.Query
	case InForm:
		values = a.Form
	case InHeader:
		values = a.Header
	case InBody:
		return a.Body, a.Body != nil
	}

	value, ok := values[spec.Name]

	return value, ok
}

// Result is the interpreted outcome of a successful call.
type Result struct {
	StatusCode int
	Header     http.Header
	// Value is nil for Empty, []byte for Raw and *T for JSON[T].
	Value any
}
