package cmd

import (
	migrations "github.com/DayriseA/OCP12-CRM-EpicEvents/db"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/secret"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/pkg/logger"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "Apply the embedded schema and reference data migrations",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "roll back the latest migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(configDir)
	if err != nil {
		return internal.NewInternalError("failed to load config", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	secrets := secret.NewManager(secret.Options{
		KeyEnv:              cfg.Security.KeyEnv,
		EncryptedDBPassword: cfg.Database.EncryptedPassword,
		Prompter:            secret.NewTerminalPrompter(),
	})
	gdb, err := initDB(ctx, cfg.Database, secrets)
	if err != nil {
		return err
	}
	sqlDB, err := database.SQLDB(gdb)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	dialect := database.DriverName(gdb.Dialector.Name())
	if dialect == "pgx" {
		dialect = "postgres"
	}
	goose.SetBaseFS(migrations.Migrations)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect(dialect); err != nil {
		return internal.NewInternalError("unsupported migration dialect", err)
	}

	dir := migrations.MigrationsDir(dialect)
	if migrateRollback {
		err = goose.DownContext(ctx, sqlDB, dir)
	} else {
		err = goose.UpContext(ctx, sqlDB, dir)
	}
	if err != nil {
		return internal.NewStorageError("migration failed", internal.ErrCodeStorage, err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err == nil {
		success("Database at migration version", version)
	}
	return nil
}
