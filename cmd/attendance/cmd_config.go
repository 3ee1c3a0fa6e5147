package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"teamhours-backend/internal/config"
)

var forceInit bool

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write a config file with the default settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInitConfig,
}

func init() {
	initConfigCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	logger.Info("Wrote default config", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
