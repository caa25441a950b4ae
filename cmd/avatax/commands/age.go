package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/avatax-client/pkg/avatax"
	"github.com/spf13/cobra"
)

// NewAgeCommand creates the age verification command group.
func NewAgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "age",
		Short: "Verify ages",
		Long:  "Check whether a person is of legal age for purchases that require it",
	}

	cmd.AddCommand(newAgeVerifyCommand())

	return cmd
}

func newAgeVerifyCommand() *cobra.Command {
	var (
		req              avatax.AgeVerifyRequest
		dob              string
		simulatedFailure string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the age of a person",
		Long:  "Verify the age of a person from their name, address and date of birth",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dob == "" {
				return ErrDateOfBirthRequired
			}

			date, err := avatax.ParseDate(dob)
			if err != nil {
				return fmt.Errorf("invalid --dob: %w", err)
			}

			req.DOB = date

			ctx := context.Background()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			result, err := client.AgeVerification().VerifyAge(ctx, &req, avatax.AgeVerifyFailureCode(simulatedFailure))
			if err != nil {
				return fmt.Errorf("failed to verify age: %w", err)
			}

			return outputResult(result, func() error {
				return renderProperties([][]string{
					{"Of Age", formatBool(result.IsOfAge)},
					{"Failure Codes", joinStrings(result.FailureCodes)},
				})
			})
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Address.Line1, "line1", "", "street address")
	cmd.Flags().StringVar(&req.Address.City, "city", "", "city")
	cmd.Flags().StringVar(&req.Address.Region, "region", "", "state or region code")
	cmd.Flags().StringVar(&req.Address.Country, "country", "US", "country code")
	cmd.Flags().StringVar(&req.Address.PostalCode, "postal-code", "", "postal code")
	cmd.Flags().StringVar(&dob, "dob", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&simulatedFailure, "simulate-failure", "",
		"sandbox only: fail with this code ("+strings.Join(avatax.AgeVerifyFailureCodes(), ", ")+")")

	return cmd
}
