package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownVariant is returned when a discriminator value has no variant.
var ErrUnknownVariant = errors.New("unknown union variant")

// Union decodes a JSON object into one of several concrete types selected by
// a discriminator property. Each constructor must return a pointer so the
// object can be decoded into it.
type Union[T any] struct {
	Discriminator string
	Variants      map[string]func() T
}

// Decode decodes a single object.
func (u Union[T]) Decode(data []byte) (T, error) {
	var zero T

	var probe map[string]json.RawMessage

	err := json.Unmarshal(data, &probe)
	if err != nil {
		return zero, fmt.Errorf("decoding union: %w", err)
	}

	var kind string

	raw, ok := probe[u.Discriminator]
	if ok {
		err = json.Unmarshal(raw, &kind)
		if err != nil {
			return zero, fmt.Errorf("decoding union discriminator %q: %w", u.Discriminator, err)
		}
	}

	newVariant, ok := u.Variants[kind]
	if !ok {
		return zero, fmt.Errorf("%w: %s=%q", ErrUnknownVariant, u.Discriminator, kind)
	}

	value := newVariant()

	err = json.Unmarshal(data, value)
	if err != nil {
		return zero, fmt.Errorf("decoding %s variant %q: %w", u.Discriminator, kind, err)
	}

	return value, nil
}

// DecodeList decodes a JSON array of objects.
func (u Union[T]) DecodeList(data []byte) ([]T, error) {
	var items []json.RawMessage

	err := json.Unmarshal(data, &items)
	if err != nil {
		return nil, fmt.Errorf("decoding union list: %w", err)
	}

	values := make([]T, 0, len(items))

	for _, item := range items {
		value, err := u.Decode(item)
		if err != nil {
			return nil, err
		}

		values = append(values, value)
	}

	return values, nil
}
