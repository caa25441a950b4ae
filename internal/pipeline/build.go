package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	avahttp "github.com/fivetwenty-io/avatax-client/internal/http"
	"github.com/fivetwenty-io/avatax-client/internal/model"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

// build turns a descriptor and call arguments into a transport request. It
// performs no I/O; authentication is attached separately.
func (p *Pipeline) build(desc *Descriptor, args Args) (*avahttp.Request, error) {
	err := checkArgs(desc, args)
	if err != nil {
		return nil, err
	}

	path, err := expandPath(desc, args)
	if err != nil {
		return nil, err
	}

	header := make(http.Header)

	body, contentType, err := encodeBody(desc, args)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	if len(desc.Produces) > 0 {
		header.Set("Accept", strings.Join(desc.Produces, ", "))
	}

	for _, spec := range desc.Params {
		if spec.In != InHeader {
			continue
		}

		value, _ := args.lookup(spec)
		if model.IsEmpty(value) {
			continue
		}

		if formatted, ok := model.Format(value); ok {
			header.Set(spec.Name, formatted)
		}
	}

	if p.clientHeader != "" {
		header.Set(constants.ClientHeader, p.clientHeader)
	}

	target := p.baseURL + path
	if query := encodeQuery(desc, args); query != "" {
		target += "?" + query
	}

	return &avahttp.Request{
		Method: desc.Method,
		URL:    target,
		Header: header,
		Body:   body,
	}, nil
}

// checkArgs rejects unknown, missing and out-of-enum parameters, and
// validates the body model.
func checkArgs(desc *Descriptor, args Args) error {
	declared := make(map[Location]map[string]bool)

	for _, spec := range desc.Params {
		if declared[spec.In] == nil {
			declared[spec.In] = make(map[string]bool)
		}

		declared[spec.In][spec.Name] = true

		value, _ := args.lookup(spec)

		if model.IsEmpty(value) {
			if spec.Required {
				return invalid(desc, spec.Name, "is required")
			}

			continue
		}

		if len(spec.Enum) > 0 {
			for _, v := range model.Values(value) {
				if !slices.Contains(spec.Enum, v) {
					return invalid(desc, spec.Name, fmt.Sprintf("%q is not one of: %s", v, strings.Join(spec.Enum, ", ")))
				}
			}
		}

		if spec.In == InBody {
			err := model.Validate(value)

			var fieldErr *model.FieldError
			if errors.As(err, &fieldErr) {
				return invalid(desc, spec.Name+"."+fieldErr.Field, fieldErr.Reason)
			}

			if err != nil {
				return invalid(desc, spec.Name, err.Error())
			}
		}
	}

	for location, values := range map[Location]map[string]any{
		InPath:   args.Path,
		InQuery:  args.Query,
		InForm:   args.Form,
		InHeader: args.Header,
	} {
		for name := range values {
			if !declared[location][name] {
				return invalid(desc, name, "is not a "+location.String()+" parameter of this operation")
			}
		}
	}

	if !model.IsEmpty(args.Body) && !declared[InBody][bodyName(desc)] {
		return invalid(desc, "body", "operation does not accept a body")
	}

	return nil
}

func bodyName(desc *Descriptor) string {
	for _, spec := range desc.Params {
		if spec.In == InBody {
			return spec.Name
		}
	}

	return ""
}

func invalid(desc *Descriptor, parameter, reason string) error {
	return &avatax.InvalidArgumentError{Operation: desc.Name, Parameter: parameter, Reason: reason}
}

// expandPath substitutes {name} placeholders with escaped canonical values.
func expandPath(desc *Descriptor, args Args) (string, error) {
	path := desc.Path

	for _, spec := range desc.Params {
		if spec.In != InPath {
			continue
		}

		value, _ := args.lookup(spec)

		formatted, ok := model.Format(value)
		if !ok {
			continue
		}

		path = strings.ReplaceAll(path, "{"+spec.Name+"}", url.PathEscape(formatted))
	}

	if start := strings.IndexByte(path, '{'); start >= 0 {
		name := path[start+1:]
		if end := strings.IndexByte(name, '}'); end >= 0 {
			name = name[:end]
		}

		return "", invalid(desc, name, "path placeholder has no value")
	}

	return path, nil
}

// encodeQuery renders query parameters in declaration order. Collections
// explode into repeated pairs and absent values are left out.
func encodeQuery(desc *Descriptor, args Args) string {
	var parts []string

	for _, spec := range desc.Params {
		if spec.In != InQuery {
			continue
		}

		value, _ := args.lookup(spec)
		if model.IsEmpty(value) {
			continue
		}

		for _, v := range model.Values(value) {
			parts = append(parts, url.QueryEscape(spec.Name)+"="+url.QueryEscape(v))
		}
	}

	return strings.Join(parts, "&")
}

func encodeBody(desc *Descriptor, args Args) ([]byte, string, error) {
	if !model.IsEmpty(args.Body) && slices.Contains(desc.Consumes, constants.ContentTypeJSON) {
		tree, err := model.Sanitize(args.Body)
		if err != nil {
			return nil, "", invalid(desc, bodyName(desc), err.Error())
		}

		data, err := json.Marshal(tree)
		if err != nil {
			return nil, "", fmt.Errorf("encoding %s body: %w", desc.Name, err)
		}

		return data, constants.ContentTypeJSON, nil
	}

	fields := formFields(desc, args)
	if len(fields) == 0 {
		return nil, "", nil
	}

	if useMultipart(desc, fields) {
		return encodeMultipart(desc, fields)
	}

	form := url.Values{}

	for _, field := range fields {
		for _, v := range field.values {
			text, err := formText(v)
			if err != nil {
				return nil, "", invalid(desc, field.name, err.Error())
			}

			form.Add(field.name, text)
		}
	}

	return []byte(form.Encode()), constants.ContentTypeForm, nil
}

type formField struct {
	name   string
	values []any
}

func formFields(desc *Descriptor, args Args) []formField {
	var fields []formField

	for _, spec := range desc.Params {
		if spec.In != InForm {
			continue
		}

		value, _ := args.lookup(spec)
		if model.IsEmpty(value) {
			continue
		}

		fields = append(fields, formField{name: spec.Name, values: model.Elements(value)})
	}

	return fields
}

func useMultipart(desc *Descriptor, fields []formField) bool {
	if len(desc.Consumes) == 1 && desc.Consumes[0] == constants.ContentTypeMultipart {
		return true
	}

	for _, field := range fields {
		for _, v := range field.values {
			if _, ok := v.(*model.File); ok {
				return true
			}
		}
	}

	return false
}

func encodeMultipart(desc *Descriptor, fields []formField) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, field := range fields {
		for _, v := range field.values {
			file, ok := v.(*model.File)
			if !ok {
				text, err := formText(v)
				if err != nil {
					return nil, "", invalid(desc, field.name, err.Error())
				}

				err = writer.WriteField(field.name, text)
				if err != nil {
					return nil, "", fmt.Errorf("encoding %s form field %s: %w", desc.Name, field.name, err)
				}

				continue
			}

			err := writeFilePart(writer, field.name, file)
			if err != nil {
				return nil, "", fmt.Errorf("encoding %s file %s: %w", desc.Name, field.name, err)
			}
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("encoding %s multipart body: %w", desc.Name, err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

func writeFilePart(writer *multipart.Writer, name string, file *model.File) error {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		`form-data; name="`+escapeQuotes(name)+`"; filename="`+escapeQuotes(file.Name)+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}

	if file.Reader == nil {
		return nil
	}

	_, err = io.Copy(part, file.Reader)

	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// formText renders a form value: scalars in canonical form, models as JSON.
func formText(value any) (string, error) {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	isModel := rv.Kind() == reflect.Map ||
		(rv.Kind() == reflect.Struct && rv.Type() != reflect.TypeOf(time.Time{}) && rv.Type() != reflect.TypeOf(model.Date{}))

	if !isModel {
		text, _ := model.Format(value)

		return text, nil
	}

	tree, err := model.Sanitize(value)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(tree)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
