package cmd

import (
	"context"
	"fmt"
	"os"

	"gaiadauto/pkg/config"
	"gaiadauto/pkg/log"
	"gaiadauto/pkg/model"
	"gaiadauto/pkg/system"

	"github.com/spf13/cobra"
)

type loggerKey struct{}

var (
	cfgFile   string
	logLevel  string
	logFormat string
	cmdRunner system.CommandRunner = &system.LiveCommandRunner{}
	rootCmd                        = &cobra.Command{
		Use:   "gaiad-auto",
		Short: "gaiad-auto smoke-tests gaia container images",
		Long: `A small tool that boots a gaia container image, runs a smoke script
inside it, checks the script's output and always tears the container down again.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger, err := log.New(level, logFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, log.Logger(logger)))
			return nil
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loggerFrom(cmd *cobra.Command) log.Logger {
	return cmd.Context().Value(loggerKey{}).(log.Logger)
}

// loadConfig reads --config. The default path may be absent; an explicitly
// named file may not.
func loadConfig(cmd *cobra.Command, logger log.Logger) (*model.Config, error) {
	if cmd.Flags().Changed("config") {
		return config.LoadConfig(cfgFile, logger)
	}
	return config.LoadConfigOrDefault(cfgFile, logger)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", log.FormatText, "Log format (text, json)")
}
