package cmd

import (
	"fmt"
	"wellness_backend/internal/app"
	"wellness_backend/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version 构建时通过 -ldflags 注入
var Version = "dev"

type rootOptions struct {
	configDir string
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "wellness",
		Short:        "Wellness check-in, journal and reward backend",
		Version:      Version,
		SilenceUsage: true,
		// 不带子命令时直接启动服务
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, false)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configDir, "config", "c", "configs", "directory containing config.yaml")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))

	return cmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run database migrations on startup even in release mode")
	return cmd
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.ForceMigrate = true

			if err := app.Migrate(cfg); err != nil {
				color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), "database migration failed")
				return err
			}
			color.New(color.FgGreen, color.Bold).Fprintln(cmd.OutOrStdout(), "database migration completed")
			return nil
		},
	}
}

func runServe(opts *rootOptions, migrate bool) error {
	cfg, err := config.LoadConfig(opts.configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ForceMigrate = migrate

	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	application.ConfigDir = opts.configDir

	application.Run()
	return nil
}
