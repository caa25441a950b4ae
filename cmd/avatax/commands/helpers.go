package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common static errors used throughout the commands package.
var (
	ErrCompanyCodeRequired     = errors.New("company code is required")
	ErrTransactionCodeRequired = errors.New("transaction code is required")
	ErrUserNameRequired        = errors.New("user name is required")
	ErrDateOfBirthRequired     = errors.New("date of birth is required")
)

// outputResult writes v as JSON or YAML when the output flag asks for it, and
// otherwise calls renderTable.
func outputResult(v any, renderTable func() error) error {
	output := viper.GetString("output")

	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		err := encoder.Encode(v)
		if err != nil {
			return fmt.Errorf("failed to encode output as JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		err := encoder.Encode(v)
		if err != nil {
			return fmt.Errorf("failed to encode output as YAML: %w", err)
		}

		return nil
	case constants.FormatTable, "":
		return renderTable()
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, output)
	}
}

// renderProperties prints rows as a two column Property/Value table.
func renderProperties(rows [][]string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderRows prints rows under header.
func renderRows(header []string, rows [][]string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header(toAny(header)...)

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func toAny(values []string) []any {
	result := make([]any, len(values))
	for i, value := range values {
		result[i] = value
	}

	return result
}

func formatBool(value bool) string {
	if value {
		return constants.BooleanTrue
	}

	return constants.BooleanFalse
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func joinStrings[T ~string](values []T) string {
	if len(values) == 0 {
		return constants.NotAvailable
	}

	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = string(value)
	}

	return strings.Join(parts, ", ")
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}

	return constants.MaskedSecret
}
