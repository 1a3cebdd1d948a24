package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/config"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/database"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/seed"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "seeder",
		Short:         "Database maintenance for the attendance backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv()
		},
	}
	cmd.AddCommand(newMigrateCommand(), newSeedCommand(), newHashCommand())
	return cmd
}

// connect opens the configured database and applies migrations.
func connect() (*gorm.DB, *logrus.Logger, error) {
	cfg, err := config.LoadDB()
	if err != nil {
		return nil, nil, err
	}
	log := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return db, log, nil
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := connect()
			if err != nil {
				return err
			}
			log.Info("migration complete")
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load organizations, shifts, geofences and users from a YAML fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := seed.LoadFixture(file)
			if err != nil {
				return err
			}
			db, log, err := connect()
			if err != nil {
				return err
			}
			return seed.NewSeeder(db, log).Seed(context.Background(), fixture)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "fixtures.yaml", "fixture file")
	return cmd
}

func newHashCommand() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}
