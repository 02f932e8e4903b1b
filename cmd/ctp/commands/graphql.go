package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ctp/internal/constants"
	"github.com/fivetwenty-io/ctp/internal/scenario"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// NewGraphQLCommand creates the graphql command group
func NewGraphQLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "graphql",
		Aliases: []string{"gql"},
		Short:   "Run GraphQL documents",
		Long:    "Send GraphQL queries and mutations to the project endpoint",
	}

	cmd.AddCommand(newGraphQLQueryCommand())
	cmd.AddCommand(newGraphQLFetchCommand())
	cmd.AddCommand(newGraphQLCreateCommand(time.Now))

	return cmd
}

func newGraphQLQueryCommand() *cobra.Command {
	var (
		file      string
		variables string
	)

	cmd := &cobra.Command{
		Use:   "query [DOCUMENT]",
		Short: "Run a GraphQL document",
		Long: `Run a GraphQL document given as argument, read from --file, or read from stdin.
Use --file - to read from stdin explicitly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := readDocument(cmd.InOrStdin(), args, file)
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

			if variables == "" {
				raw, err := client.ExecuteGraphQL(cmd.Context(), document)
				if err != nil {
					return err
				}

				err = renderRawJSON(cmd.OutOrStdout(), format, raw.Body)
				if err != nil {
					return err
				}

				printMetrics(cmd.ErrOrStderr(), client)

				return nil
			}

			var vars map[string]interface{}

			err = json.Unmarshal([]byte(variables), &vars)
			if err != nil {
				return fmt.Errorf("parsing --variables: %w", err)
			}

			resp, err := client.GraphQL().Do(cmd.Context(), &ctp.GraphQLRequest{Query: document, Variables: vars})
			if err != nil {
				return err
			}

			err = renderGraphQLData(cmd.OutOrStdout(), format, resp)
			if err != nil {
				return err
			}

			printMetrics(cmd.ErrOrStderr(), client)

			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the document from a file (- for stdin)")
	cmd.Flags().StringVar(&variables, "variables", "", "variables as a JSON object")

	return cmd
}

func newGraphQLFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch products and customers via GraphQL",
		Long:  "Run the GraphQL fetch scenario: the first page of products, then of customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraphQLSteps(cmd, scenario.FetchSteps())
		},
	}
}

func newGraphQLCreateCommand(now func() time.Time) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a demo customer and product via GraphQL",
		Long: `Run the GraphQL create scenario: sign up a customer, then create a product of
type "` + constants.DemoProductTypeKey + `". Email, slug and SKU carry a timestamp to stay unique.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraphQLSteps(cmd, scenario.CreateSteps(now()))
		},
	}
}

// runGraphQLSteps executes steps in order and stops at the first failure.
func runGraphQLSteps(cmd *cobra.Command, steps []scenario.Step) error {
	format, err := OutputFormat(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	client, err := CreateClient(cmd)
	if err != nil {
		return err
	}

	for i, step := range steps {
		resp, err := client.GraphQL().Do(cmd.Context(), step.Request)
		if err != nil {
			return fmt.Errorf("%s: %w", strings.ToLower(step.Name), err)
		}

		if len(resp.Data) == 0 || string(resp.Data) == "null" {
			return fmt.Errorf("%s: %w", strings.ToLower(step.Name), constants.ErrCreateIncomplete)
		}

		if i > 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
		}

		if format == constants.FormatTable {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", step.Name)
		}

		err = renderGraphQLData(cmd.OutOrStdout(), format, resp)
		if err != nil {
			return err
		}
	}

	printMetrics(cmd.ErrOrStderr(), client)

	return nil
}

func renderGraphQLData(w io.Writer, format string, resp *ctp.GraphQLResponse) error {
	data := resp.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}

	return renderRawJSON(w, format, data)
}

// readDocument resolves the document from exactly one source.
func readDocument(stdin io.Reader, args []string, file string) (string, error) {
	if len(args) > 0 && file != "" {
		return "", constants.ErrQueryFileAndArg
	}

	var document string

	switch {
	case len(args) > 0:
		document = args[0]
	case file == "" && isTerminal(stdin):
		return "", constants.ErrQueryRequired
	case file == "-" || file == "":
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading document from stdin: %w", err)
		}

		document = string(content)
	default:
		content, err := os.ReadFile(file) // #nosec G304 -- path chosen by the user
		if err != nil {
			return "", fmt.Errorf("reading document: %w", err)
		}

		document = string(content)
	}

	if strings.TrimSpace(document) == "" {
		return "", constants.ErrQueryRequired
	}

	return document, nil
}
