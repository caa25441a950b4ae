package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/avatax-client/internal/logging"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
)

// NewTestClient creates a client whose AvaTax and IAMDS hosts both point at server.
func NewTestClient(t *testing.T, server *httptest.Server, mutate ...func(*avatax.Config)) *Client {
	t.Helper()

	config := &avatax.Config{
		BaseURL:      server.URL,
		IAMDSBaseURL: server.URL,
		AppName:      "test-app",
		AppVersion:   "1.0",
		MachineName:  "test-host",
		Logger:       logging.Nop(),
	}

	for _, fn := range mutate {
		fn(config)
	}

	client, err := New(context.Background(), config)
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}

// TestOperation represents one call against a canned server response.
type TestOperation[TResponse any] struct {
	Name          string
	ExpectedPath  string
	ExpectedQuery string
	StatusCode    int
	Response      interface{}
	WantErr       bool
	ErrMessage    string
	Check         func(*testing.T, *TResponse)
}

// RunOperationTests runs a series of operation tests for one method.
func RunOperationTests[TResponse any](
	t *testing.T,
	method string,
	tests []TestOperation[TResponse],
	call func(*Client) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, method, request.Method)
				assert.Equal(t, testCase.ExpectedPath, request.URL.EscapedPath())
				assert.Equal(t, testCase.ExpectedQuery, request.URL.RawQuery)

				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)

				if testCase.Response != nil {
					_ = json.NewEncoder(writer).Encode(testCase.Response)
				}
			}))
			defer server.Close()

			result, err := call(NewTestClient(t, server))

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)

				return
			}

			require.NoError(t, err)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}
