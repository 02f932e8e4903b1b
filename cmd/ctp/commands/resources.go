package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ctp/internal/constants"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// NewResourceCommand creates the command group for one resource kind.
func NewResourceCommand(kind ctp.ResourceKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:     kind.Plural(),
		Aliases: []string{string(kind)},
		Short:   "Query " + kind.Plural(),
		Long:    fmt.Sprintf("List and inspect %s of the configured project", kind.Plural()),
	}

	cmd.AddCommand(newResourceListCommand(kind))
	cmd.AddCommand(newResourceGetCommand(kind))

	return cmd
}

func newResourceListCommand(kind ctp.ResourceKind) *cobra.Command {
	var (
		limit  int
		offset int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + kind.Plural(),
		Long:  fmt.Sprintf("List %s page by page, with totals for the whole project", kind.Plural()),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := validatePagination(limit, offset)
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

			page, err := fetchPage(cmd.Context(), client, kind, limit, offset, all)
			if err != nil {
				return err
			}

			err = renderPages(cmd.OutOrStdout(), format, page)
			if err != nil {
				return err
			}

			printMetrics(cmd.ErrOrStderr(), client)

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", constants.DemoPageSize, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of results to skip")
	cmd.Flags().BoolVar(&all, "all", false, "follow pages until the last result")

	return cmd
}

func newResourceGetCommand(kind ctp.ResourceKind) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a " + string(kind),
		Long:  fmt.Sprintf("Display a single %s by ID", kind),
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return ErrResourceIDRequired
			}

			format, err := OutputFormat(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			raw, err := client.Execute(cmd.Context(), &ctp.RequestSpec{Kind: kind, ID: args[0]})
			if err != nil {
				return fmt.Errorf("failed to get %s: %w", kind, err)
			}

			record, err := ctp.NormalizeOne(kind, raw.Body)
			if err != nil {
				return err
			}

			err = renderRecord(cmd.OutOrStdout(), format, record)
			if err != nil {
				return err
			}

			printMetrics(cmd.ErrOrStderr(), client)

			return nil
		},
	}
}

// fetchPage reads one page, or with all set every page from offset on, and
// merges them into one normalized page.
func fetchPage(ctx context.Context, client ctp.Client, kind ctp.ResourceKind, limit, offset int, all bool) (*ctp.DisplayPage, error) {
	var merged *ctp.DisplayPage

	for {
		raw, err := client.Execute(ctx, &ctp.RequestSpec{
			Kind:       kind,
			Pagination: &ctp.Pagination{Limit: limit, Offset: offset},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", kind.Plural(), err)
		}

		page, err := ctp.Normalize(kind, raw.Body)
		if err != nil {
			return nil, err
		}

		if merged == nil {
			merged = page
		} else {
			merged.Records = append(merged.Records, page.Records...)
			merged.Count += page.Count
		}

		offset += page.Count

		if !all || page.Count == 0 || offset >= page.Total {
			return merged, nil
		}
	}
}
