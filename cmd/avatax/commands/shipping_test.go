package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/avatax-client/cmd/avatax/commands"
	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShippingCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewShippingCommand()
	assert.Equal(t, "shipping", cmd.Use)
	assert.Equal(t, []string{"shipment", "ship"}, cmd.Aliases)
	assert.Equal(t, "Verify and register shipments", cmd.Short)

	names := subcommandNames(cmd)
	assert.Len(t, names, 5)
	assert.ElementsMatch(t, []string{"verify", "register", "register-if-compliant", "deregister", "verify-batch"}, names)
}

func TestShippingSingleShipmentCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		short string
	}{
		{"verify", "Verify a shipment"},
		{"register", "Register a shipment"},
		{"register-if-compliant", "Register a shipment if it is compliant"},
		{"deregister", "Deregister a shipment"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := findSubcommand(commands.NewShippingCommand(), tt.name)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.name+" COMPANY_CODE TRANSACTION_CODE", cmd.Use)
			assert.Equal(t, tt.short, cmd.Short)
			assert.NotNil(t, cmd.RunE)
			assert.NotNil(t, cmd.Args)

			flag := cmd.Flags().Lookup("document-type")
			require.NotNil(t, flag)
			assert.Equal(t, "d", flag.Shorthand)
			assert.Empty(t, flag.DefValue)
			assert.Contains(t, flag.Usage, "SalesInvoice")

			require.Error(t, cmd.Args(cmd, []string{"DEFAULT"}))
			require.NoError(t, cmd.Args(cmd, []string{"DEFAULT", "INV-1"}))
		})
	}
}

func TestShippingVerifyBatchCommand(t *testing.T) {
	t.Parallel()

	cmd := findSubcommand(commands.NewShippingCommand(), "verify-batch")
	require.NotNil(t, cmd)
	assert.Equal(t, "verify-batch FILE", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	concurrency := cmd.Flags().Lookup("concurrency")
	require.NotNil(t, concurrency)
	assert.Equal(t, "3", concurrency.DefValue)

	timeout := cmd.Flags().Lookup("timeout")
	require.NotNil(t, timeout)
	assert.Equal(t, "30s", timeout.DefValue)
}

func TestReadShipmentBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		return path
	}

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := write("batch.yml", `
- companyCode: DEFAULT
  transactionCode: INV-1001
- companyCode: ACME
  transactionCode: INV-1002
  documentType: SalesInvoice
`)

		requests, err := commands.ReadShipmentBatch(path)
		require.NoError(t, err)
		assert.Equal(t, []avatax.ShipmentRequest{
			{CompanyCode: "DEFAULT", TransactionCode: "INV-1001"},
			{CompanyCode: "ACME", TransactionCode: "INV-1002", DocumentType: avatax.DocumentTypeSalesInvoice},
		}, requests)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		path := write("empty.yml", "[]\n")

		_, err := commands.ReadShipmentBatch(path)
		require.ErrorIs(t, err, constants.ErrEmptyBatchFile)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := write("invalid.yml", "companyCode: [\n")

		_, err := commands.ReadShipmentBatch(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse batch file")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := commands.ReadShipmentBatch(filepath.Join(dir, "missing.yml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
