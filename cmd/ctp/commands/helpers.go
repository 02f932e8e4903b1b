package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ctp/internal/config"
	"github.com/fivetwenty-io/ctp/internal/constants"
	"github.com/fivetwenty-io/ctp/internal/logging"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
	"github.com/fivetwenty-io/ctp/pkg/ctpclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"
	Masked       = "***"

	// Viper keys of the global flags.
	flagOutput  = "output"
	flagEnvFile = "env-file"
	flagVerbose = "verbose"
	flagDebug   = "debug"

	defaultJSONIndent = "  "
)

// Common static errors used throughout the commands package.
var (
	ErrResourceIDRequired = errors.New("resource ID is required")
)

// metricsSource is implemented by clients that record per-endpoint metrics.
type metricsSource interface {
	Metrics() *ctp.MetricsCollector
}

// LoadSettings resolves the configuration from the environment, the env file
// and the bound flags.
func LoadSettings() (*config.Settings, error) {
	settings, err := config.LoadSettings(config.Options{
		EnvFile: viper.GetString(flagEnvFile),
		Viper:   viper.GetViper(),
	})
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	return settings, nil
}

// CreateClient builds a client from the resolved configuration. Logs go to
// the command's stderr.
func CreateClient(cmd *cobra.Command) (ctp.Client, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	level := settings.LogLevel

	switch {
	case viper.GetBool(flagDebug):
		level = "debug"
		settings.Client.Debug = true
	case viper.GetBool(flagVerbose) && level == "":
		level = "info"
	}

	if level != "" || settings.Client.Debug {
		settings.Client.Logger = logging.New(logging.Config{
			Level:  level,
			Format: settings.LogFormat,
			Output: cmd.ErrOrStderr(),
		})
	}

	client, err := ctpclient.New(settings.Client)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// printMetrics writes a per-endpoint summary when --verbose is set.
func printMetrics(w io.Writer, client ctp.Client) {
	if !viper.GetBool(flagVerbose) {
		return
	}

	source, ok := client.(metricsSource)
	if !ok {
		return
	}

	collector := source.Metrics()
	endpoints := collector.Endpoints()
	sort.Strings(endpoints)

	for _, endpoint := range endpoints {
		metrics := collector.GetMetrics(endpoint)
		if metrics == nil {
			continue
		}

		_, _ = fmt.Fprintf(w, "%s: %d requests, %d errors, avg %s\n",
			endpoint, metrics.TotalRequests, metrics.TotalErrors, metrics.AverageLatency.Round(1e6))
	}
}

// validatePagination checks --limit and --offset.
func validatePagination(limit, offset int) error {
	if limit < 1 || limit > constants.MaxPageSize {
		return constants.ErrInvalidLimit
	}

	if offset < 0 {
		return constants.ErrInvalidOffset
	}

	return nil
}

// ReportError writes a failure summary to w. GraphQL errors are enumerated
// first.
func ReportError(w io.Writer, err error) {
	if gqlErrs, ok := ctp.GraphQLErrors(err); ok {
		_, _ = fmt.Fprintln(w, "GraphQL errors:")
		ctp.WriteGraphQLErrors(w, gqlErrs)
	}

	_, _ = fmt.Fprintf(w, "Error (%s): %s\n", ctp.Classify(err), strings.TrimSpace(err.Error()))
}
