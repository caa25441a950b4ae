package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fivetwenty-io/avatax-client/internal/constants"
	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const shipmentArgsUse = "COMPANY_CODE TRANSACTION_CODE"

// NewShippingCommand creates the shipping verification command group.
func NewShippingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shipping",
		Aliases: []string{"shipment", "ship"},
		Short:   "Verify and register shipments",
		Long:    "Check shipments of recorded transactions for compliance and register or deregister them",
	}

	cmd.AddCommand(newShippingVerifyCommand())
	cmd.AddCommand(newShippingRegisterIfCompliantCommand())
	cmd.AddCommand(newShipmentActionCommand("register", func(ctx context.Context, client avatax.ShippingVerificationClient, req *avatax.ShipmentRequest) error {
		return client.RegisterShipment(ctx, req)
	}))
	cmd.AddCommand(newShipmentActionCommand("deregister", func(ctx context.Context, client avatax.ShippingVerificationClient, req *avatax.ShipmentRequest) error {
		return client.DeregisterShipment(ctx, req)
	}))
	cmd.AddCommand(newShippingVerifyBatchCommand())

	return cmd
}

// shipmentRequest builds a request from the positional arguments.
func shipmentRequest(args []string, documentType string) (*avatax.ShipmentRequest, error) {
	if strings.TrimSpace(args[0]) == "" {
		return nil, ErrCompanyCodeRequired
	}

	if strings.TrimSpace(args[1]) == "" {
		return nil, ErrTransactionCodeRequired
	}

	return &avatax.ShipmentRequest{
		CompanyCode:     args[0],
		TransactionCode: args[1],
		DocumentType:    avatax.DocumentType(documentType),
	}, nil
}

func addDocumentTypeFlag(cmd *cobra.Command, documentType *string) {
	cmd.Flags().StringVarP(documentType, "document-type", "d", "",
		"document type ("+strings.Join(avatax.DocumentTypes(), ", ")+")")
}

func newShippingVerifyCommand() *cobra.Command {
	var documentType string

	cmd := &cobra.Command{
		Use:   "verify " + shipmentArgsUse,
		Short: "Verify a shipment",
		Long:  "Check whether the shipment of a recorded transaction is compliant",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := shipmentRequest(args, documentType)
			if err != nil {
				return err
			}

			return runShippingResult(req, func(ctx context.Context, client avatax.ShippingVerificationClient) (*avatax.ShippingVerifyResult, error) {
				return client.VerifyShipment(ctx, req)
			})
		},
	}

	addDocumentTypeFlag(cmd, &documentType)

	return cmd
}

func newShippingRegisterIfCompliantCommand() *cobra.Command {
	var documentType string

	cmd := &cobra.Command{
		Use:   "register-if-compliant " + shipmentArgsUse,
		Short: "Register a shipment if it is compliant",
		Long:  "Verify the shipment of a recorded transaction and register it when it is compliant",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := shipmentRequest(args, documentType)
			if err != nil {
				return err
			}

			return runShippingResult(req, func(ctx context.Context, client avatax.ShippingVerificationClient) (*avatax.ShippingVerifyResult, error) {
				return client.RegisterShipmentIfCompliant(ctx, req)
			})
		},
	}

	addDocumentTypeFlag(cmd, &documentType)

	return cmd
}

func newShipmentActionCommand(
	use string,
	call func(context.Context, avatax.ShippingVerificationClient, *avatax.ShipmentRequest) error,
) *cobra.Command {
	var documentType string

	action := cases.Title(language.English).String(use)

	cmd := &cobra.Command{
		Use:   use + " " + shipmentArgsUse,
		Short: action + " a shipment",
		Long:  fmt.Sprintf("%s the shipment of a recorded transaction", action),
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := shipmentRequest(args, documentType)
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			err = call(ctx, client.ShippingVerification(), req)
			if err != nil {
				return fmt.Errorf("failed to %s shipment: %w", use, err)
			}

			result := map[string]string{
				"action":           use,
				"company_code":     req.CompanyCode,
				"transaction_code": req.TransactionCode,
			}

			return outputResult(result, func() error {
				_, _ = fmt.Fprintf(os.Stdout, "%sed shipment of %s/%s\n", action, req.CompanyCode, req.TransactionCode)

				return nil
			})
		},
	}

	addDocumentTypeFlag(cmd, &documentType)

	return cmd
}

func runShippingResult(
	req *avatax.ShipmentRequest,
	call func(context.Context, avatax.ShippingVerificationClient) (*avatax.ShippingVerifyResult, error),
) error {
	ctx := context.Background()

	client, err := CreateClient(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	result, err := call(ctx, client.ShippingVerification())
	if err != nil {
		return fmt.Errorf("failed to verify shipment %s/%s: %w", req.CompanyCode, req.TransactionCode, err)
	}

	return outputResult(result, func() error {
		return displayShippingResult(result)
	})
}

func displayShippingResult(result *avatax.ShippingVerifyResult) error {
	err := renderProperties([][]string{
		{"Compliant", formatBool(result.Compliant)},
		{"Message", orNotAvailable(result.Message)},
		{"Failure Codes", joinStrings(result.FailureCodes)},
	})
	if err != nil {
		return err
	}

	if len(result.Lines) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(result.Lines))
	for _, line := range result.Lines {
		rows = append(rows, []string{
			orNotAvailable(line.LineNumber),
			orNotAvailable(string(line.ResultCode)),
			joinStrings(line.FailureCodes),
			orNotAvailable(line.Message),
		})
	}

	return renderRows([]string{"Line", "Result", "Failure Codes", "Message"}, rows)
}

// ReadShipmentBatch reads a YAML list of shipment requests.
func ReadShipmentBatch(path string) ([]avatax.ShipmentRequest, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var requests []avatax.ShipmentRequest

	err = yaml.Unmarshal(data, &requests)
	if err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}

	if len(requests) == 0 {
		return nil, constants.ErrEmptyBatchFile
	}

	return requests, nil
}

type batchOutcome struct {
	CompanyCode     string                       `json:"companyCode"      yaml:"companyCode"`
	TransactionCode string                       `json:"transactionCode"  yaml:"transactionCode"`
	Result          *avatax.ShippingVerifyResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error           string                       `json:"error,omitempty"  yaml:"error,omitempty"`
	DurationMS      int64                        `json:"durationMs"       yaml:"durationMs"`
}

func newShippingVerifyBatchCommand() *cobra.Command {
	var (
		concurrency int
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "verify-batch FILE",
		Short: "Verify many shipments",
		Long: `Verify every shipment listed in a YAML file, for example:

  - companyCode: DEFAULT
    transactionCode: INV-1001
  - companyCode: DEFAULT
    transactionCode: INV-1002
    documentType: SalesInvoice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := ReadShipmentBatch(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			verifier := avatax.NewBatchVerifier(client.ShippingVerification(), concurrency)
			verifier.SetTimeout(timeout)

			results := verifier.Verify(ctx, requests)

			outcomes := make([]batchOutcome, len(results))
			for i, result := range results {
				outcomes[i] = batchOutcome{
					CompanyCode:     result.Request.CompanyCode,
					TransactionCode: result.Request.TransactionCode,
					Result:          result.Result,
					DurationMS:      result.Duration.Milliseconds(),
				}
				if result.Error != nil {
					outcomes[i].Error = result.Error.Error()
				}
			}

			return outputResult(outcomes, func() error {
				return displayBatchOutcomes(outcomes)
			})
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", constants.DefaultConcurrencyLimit, "maximum concurrent verifications")
	cmd.Flags().DurationVar(&timeout, "timeout", constants.DefaultHTTPTimeout, "timeout per shipment")

	return cmd
}

func displayBatchOutcomes(outcomes []batchOutcome) error {
	rows := make([][]string, 0, len(outcomes))

	for _, outcome := range outcomes {
		compliant := constants.NotAvailable
		message := outcome.Error

		if outcome.Result != nil {
			compliant = formatBool(outcome.Result.Compliant)
			message = outcome.Result.Message
		}

		rows = append(rows, []string{
			outcome.CompanyCode,
			outcome.TransactionCode,
			compliant,
			orNotAvailable(message),
		})
	}

	return renderRows([]string{"Company", "Transaction", "Compliant", "Message"}, rows)
}
