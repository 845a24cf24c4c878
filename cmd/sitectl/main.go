package main

import (
	"fmt"
	"os"

	"github.com/advisorsite/internal/config"
	"github.com/advisorsite/internal/db"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCommand 构造 sitectl 命令树。
func NewRootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "sitectl",
		Short: "Maintenance commands for the advisory site",
		Long: `sitectl manages the advisory site database outside the web server:
admin accounts, schema migration, seeding default content and exporting
the built-in default copy.

Configuration is read the same way as the server: environment variables,
optionally layered over the file named by --config or CONFIG_FILE.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				return os.Setenv("CONFIG_FILE", configFile)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (optional)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log SQL statements")

	rootCmd.AddCommand(NewUserCommand())
	rootCmd.AddCommand(NewMigrateCommand())
	rootCmd.AddCommand(NewSeedCommand())
	rootCmd.AddCommand(NewDefaultsCommand())

	return rootCmd
}

// openDatabase 按服务端相同的配置打开数据库，并执行迁移。
func openDatabase(cmd *cobra.Command) (config.AppConfig, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.AppConfig{}, nil, err
	}

	level := gormlogger.Warn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = gormlogger.Info
	}

	gdb, err := db.Open(db.Options{
		Driver: cfg.DatabaseDriver,
		Path:   cfg.DatabasePath,
		URL:    cfg.DatabaseURL,
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return config.AppConfig{}, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, gdb, nil
}

// NewMigrateCommand creates the migrate command
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gdb, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date (%s).\n", cfg.DatabaseDriver)
			return nil
		},
	}
}
