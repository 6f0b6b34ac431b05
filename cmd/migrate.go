/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/blood-heros/apiserver/config"
	"github.com/blood-heros/apiserver/internal/db"
	"github.com/blood-heros/apiserver/internal/logger"
	"github.com/blood-heros/apiserver/internal/store/mongodb"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

var migrationsDir string

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Prepare the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply SQL migrations or create MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := logger.New(cfg.Log).WithField("backend", cfg.Database.Backend)

		if cfg.Database.Backend == config.BackendPostgres {
			if err := migratePostgres(cfg.Database); err != nil {
				return err
			}
			log.Info("migrations applied")
			return nil
		}

		conn, err := db.ConnectMongo(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := mongodb.EnsureIndexes(cmd.Context(), conn.Database); err != nil {
			return fmt.Errorf("ensure indexes failed: %w", err)
		}
		log.Info("indexes ensured")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateUpCmd.Flags().StringVar(&migrationsDir, "dir", "internal/db/migrations", "directory holding SQL migrations")
}

func migratePostgres(cfg config.DatabaseConfig) error {
	migrator, err := migrate.New("file://"+migrationsDir, cfg.PostgresURL())
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrate up failed: %w", err)
	}
	return nil
}
