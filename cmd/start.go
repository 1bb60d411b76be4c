package cmd

import (
	"context"
	"fmt"

	"gaiadauto/pkg/config"
	"gaiadauto/pkg/docker"
	"gaiadauto/pkg/smoke"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var startDryRun bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start <img-version>",
	Short: "Boots a gaia container, runs the smoke script and tears the container down",
	Long: `The start command runs the configured gaia image at the given version in a
detached container, executes the smoke script inside it and compares the script's
output with the expected value. The container is killed afterwards whether the
check passed or not; on failure its logs are printed first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := loggerFrom(cmd)

		cfg, err := loadConfig(cmd, logger)
		if err != nil {
			return err
		}
		cfg, err = config.Override(cfg, args[0])
		if err != nil {
			return err
		}

		client := docker.NewClient(cfg.Docker, cmdRunner, logger, cmd.OutOrStdout())
		client.DryRun = startDryRun

		check := smoke.Check{
			Shell:    cfg.Smoke.Shell,
			Script:   cfg.Smoke.Script,
			Expected: cfg.Smoke.Expected,
		}

		name := containerName()
		logger.Info("Starting container", "name", name, "image", cfg.ImageRef(), "chain_id", cfg.ChainID)

		_, err = docker.WithContainer(cmd.Context(), client, cfg.StartArgs(name),
			func(ctx context.Context, id docker.ContainerID) (string, error) {
				if startDryRun {
					return client.ExecIn(ctx, id, check.Command()...)
				}
				return check.Run(ctx, client, id)
			})
		if err != nil {
			return err
		}

		if !startDryRun {
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Greeting)
		}
		return nil
	},
}

func containerName() string {
	return "gaiad-auto-" + uuid.NewString()[:8]
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().BoolVar(&startDryRun, "dry-run", false, "Print the docker commands without executing them")
}
