package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ctp/internal/config"
	"github.com/fivetwenty-io/ctp/internal/constants"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// NewRootCommand creates the ctp command tree with its global flags bound to
// viper.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ctp",
		Short: "commercetools API CLI",
		Long: `A command-line interface for a commercetools project.

Credentials are read from CTP_* environment variables or an env file:
CTP_AUTH_URL, CTP_API_URL, CTP_PROJECT_KEY, CTP_CLIENT_ID, CTP_CLIENT_SECRET and CTP_SCOPES.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP(flagOutput, "o", constants.FormatAuto, "output format (table, json, yaml, auto)")
	rootCmd.PersistentFlags().String(flagEnvFile, "", fmt.Sprintf("env file to read (default %s when present)", config.DefaultEnvFile))
	rootCmd.PersistentFlags().BoolP(flagVerbose, "v", false, "verbose output with a request summary")
	rootCmd.PersistentFlags().Bool(flagDebug, false, "log every HTTP request and response")

	// Bind flags to viper
	_ = viper.BindPFlag(flagOutput, rootCmd.PersistentFlags().Lookup(flagOutput))
	_ = viper.BindPFlag(flagEnvFile, rootCmd.PersistentFlags().Lookup(flagEnvFile))
	_ = viper.BindPFlag(flagVerbose, rootCmd.PersistentFlags().Lookup(flagVerbose))
	_ = viper.BindPFlag(flagDebug, rootCmd.PersistentFlags().Lookup(flagDebug))

	// Add commands
	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewConfigCommand())

	for _, kind := range ctp.AllKinds {
		rootCmd.AddCommand(NewResourceCommand(kind))
	}

	rootCmd.AddCommand(NewFetchCommand())
	rootCmd.AddCommand(NewCreateCommand())
	rootCmd.AddCommand(NewGraphQLCommand())

	return rootCmd
}
