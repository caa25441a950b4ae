package pipeline

import (
	"errors"
	"fmt"

	avahttp "github.com/fivetwenty-io/avatax-client/internal/http"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

// interpret maps a transport outcome to exactly one of a result or an error.
func (p *Pipeline) interpret(desc *Descriptor, resp *avahttp.Response, err error) (*Result, error) {
	if err != nil || resp == nil {
		if err == nil {
			err = errNoResponse
		}

		return nil, &avatax.APIError{Operation: desc.Name, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &avatax.APIError{
			Operation:  desc.Name,
			StatusCode: resp.StatusCode,
			Headers:    resp.Header,
			Body:       resp.Body,
		}

		if decoder, ok := desc.Responses[resp.StatusCode]; ok && decoder.IsJSON() {
			detail, decodeErr := decoder.decodeDetail(resp.Body)
			if decodeErr == nil {
				apiErr.Detail = detail
			}
		}

		return nil, apiErr
	}

	decoder, ok := desc.Responses[resp.StatusCode]
	if !ok {
		decoder = desc.Returns
	}

	value, err := decoder.decode(resp.Body)
	if err != nil {
		return nil, &avatax.APIError{
			Operation:  desc.Name,
			StatusCode: resp.StatusCode,
			Headers:    resp.Header,
			Body:       resp.Body,
			Err:        fmt.Errorf("decoding response: %w", err),
		}
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Value:      value,
	}, nil
}

var errNoResponse = errors.New("transport returned no response")

// Call outcomes used in logs and metrics.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeHTTPError       = "http_error"
	OutcomeTransportError  = "transport_error"
	OutcomeError           = "error"
)

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}

	if errors.Is(err, avatax.ErrInvalidArgument) {
		return OutcomeInvalidArgument
	}

	apiErr := &avatax.APIError{}
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 0 {
			return OutcomeTransportError
		}

		return OutcomeHTTPError
	}

	return OutcomeError
}
