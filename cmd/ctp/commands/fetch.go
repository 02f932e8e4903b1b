package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ctp/internal/constants"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// NewFetchCommand creates the command that lists the first page of every
// resource kind.
func NewFetchCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch products, categories, customers, carts and orders",
		Long:  "Run the REST list scenario: the first page of every resource kind, in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := validatePagination(limit, 0)
			if err != nil {
				return err
			}

			format, err := OutputFormat(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			pages := make([]*ctp.DisplayPage, 0, len(ctp.AllKinds))

			for _, kind := range ctp.AllKinds {
				page, err := fetchPage(cmd.Context(), client, kind, limit, 0, false)
				if err != nil {
					return err
				}

				pages = append(pages, page)
			}

			err = renderPages(cmd.OutOrStdout(), format, pages...)
			if err != nil {
				return err
			}

			printMetrics(cmd.ErrOrStderr(), client)

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DemoPageSize, "page size per resource kind")

	return cmd
}
