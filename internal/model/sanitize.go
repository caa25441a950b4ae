package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Sanitize converts a model into a plain tree of map[string]any, []any and
// scalar values keyed by wire names. Numbers are kept as json.Number so that
// integer precision survives the round trip.
func Sanitize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("sanitizing %T: %w", v, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var tree any

	err = decoder.Decode(&tree)
	if err != nil {
		return nil, fmt.Errorf("sanitizing %T: %w", v, err)
	}

	return tree, nil
}
