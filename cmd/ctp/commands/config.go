package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ctp/internal/constants"
)

// ConfigView is the printable form of the resolved configuration. The client
// secret is always masked.
type ConfigView struct {
	AuthURL        string   `json:"auth_url"        yaml:"auth_url"`
	APIURL         string   `json:"api_url"         yaml:"api_url"`
	ProjectKey     string   `json:"project_key"     yaml:"project_key"`
	ClientID       string   `json:"client_id"       yaml:"client_id"`
	ClientSecret   string   `json:"client_secret"   yaml:"client_secret"`
	Scopes         []string `json:"scopes"          yaml:"scopes"`
	RequestTimeout string   `json:"request_timeout" yaml:"request_timeout"`
	RetryMax       string   `json:"retry_max"       yaml:"retry_max"`
	LogLevel       string   `json:"log_level"       yaml:"log_level"`
	LogFormat      string   `json:"log_format"      yaml:"log_format"`
}

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long:  "Inspect the configuration resolved from the environment and the env file",
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show resolved configuration",
		Long:  "Display the resolved configuration with the client secret masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := OutputFormat(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			settings, err := LoadSettings()
			if err != nil {
				return err
			}

			client := settings.Client
			view := ConfigView{
				AuthURL:        client.AuthURL,
				APIURL:         client.APIURL,
				ProjectKey:     client.ProjectKey,
				ClientID:       client.ClientID,
				ClientSecret:   Masked,
				Scopes:         client.Scopes,
				RequestTimeout: constants.DefaultHTTPTimeout.String(),
				RetryMax:       strconv.Itoa(constants.LowRetryMax),
				LogLevel:       settings.LogLevel,
				LogFormat:      settings.LogFormat,
			}

			if client.RequestTimeout > 0 {
				view.RequestTimeout = client.RequestTimeout.String()
			}

			if client.RetryMax != 0 {
				view.RetryMax = strconv.Itoa(max(client.RetryMax, 0))
			}

			if view.LogLevel == "" {
				view.LogLevel = NotAvailable
			}

			switch format {
			case constants.FormatJSON:
				return encodeJSON(cmd.OutOrStdout(), view)
			case constants.FormatYAML:
				return encodeYAML(cmd.OutOrStdout(), view)
			default:
				table := tablewriter.NewWriter(cmd.OutOrStdout())
				table.Header("Property", "Value")
				_ = table.Append("Auth URL", view.AuthURL)
				_ = table.Append("API URL", view.APIURL)
				_ = table.Append("Project Key", view.ProjectKey)
				_ = table.Append("Client ID", view.ClientID)
				_ = table.Append("Client Secret", view.ClientSecret)
				_ = table.Append("Scopes", strings.Join(view.Scopes, " "))
				_ = table.Append("Request Timeout", view.RequestTimeout)
				_ = table.Append("Retry Max", view.RetryMax)
				_ = table.Append("Log Level", view.LogLevel)
				_ = table.Append("Log Format", view.LogFormat)

				err := table.Render()
				if err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}
