package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ctp/cmd/ctp/commands"
	"github.com/fivetwenty-io/ctp/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Read in environment variables that match
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := commands.NewRootCommand(version, commit, date)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		commands.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
