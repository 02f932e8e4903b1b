package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ctp/internal/constants"
	"github.com/fivetwenty-io/ctp/internal/scenario"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// createdRecords is the document printed by the create command.
type createdRecords struct {
	Customer ctp.CustomerRecord `json:"customer" yaml:"customer"`
	Product  ctp.ProductRecord  `json:"product"  yaml:"product"`
}

// NewCreateCommand creates the REST create command.
func NewCreateCommand() *cobra.Command {
	return newCreateCommand(time.Now)
}

func newCreateCommand(now func() time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a demo customer and product via REST",
		Long: `Sign up a customer, then create a product of type "` + constants.DemoProductTypeKey + `"
through the REST endpoints. Email, slug and SKU carry a timestamp to stay unique.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := OutputFormat(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			stamp := now()

			signIn, err := client.Customers().SignUp(cmd.Context(), scenario.CustomerDraft(stamp))
			if err != nil {
				return fmt.Errorf("failed to sign up customer: %w", err)
			}

			product, err := client.Products().Create(cmd.Context(), scenario.ProductDraft(stamp))
			if err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}

			productRecord, err := ctp.NewProductRecord(product)
			if err != nil {
				return err
			}

			created := createdRecords{
				Customer: ctp.NewCustomerRecord(&signIn.Customer),
				Product:  productRecord,
			}

			switch format {
			case constants.FormatJSON:
				err = encodeJSON(cmd.OutOrStdout(), created)
			case constants.FormatYAML:
				err = encodeYAML(cmd.OutOrStdout(), created)
			default:
				err = renderRecord(cmd.OutOrStdout(), format, created.Customer)
				if err == nil {
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
					err = renderRecord(cmd.OutOrStdout(), format, created.Product)
				}
			}

			if err != nil {
				return err
			}

			printMetrics(cmd.ErrOrStderr(), client)

			return nil
		},
	}
}
