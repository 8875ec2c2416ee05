package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects gorm to the configured engine. password replaces the {password}
// placeholder in the source and may be empty when the DSN does not reference it.
func Open(cfg internal.DatabaseConfig, password string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.GetDSN(password)))
	case internal.DriverPostgres:
		dialector = postgres.Open(cfg.GetDSN(password))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, internal.NewStorageError("failed to connect to database", internal.ErrCodeStorage, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, internal.NewStorageError("failed to connect to database", internal.ErrCodeStorage, err)
	}
	return db, nil
}

// SQLiteDSN makes sure foreign keys are enforced on every connection.
func SQLiteDSN(source string) string {
	if strings.Contains(source, "_foreign_keys") || strings.Contains(source, "_fk=") {
		return source
	}
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + "_foreign_keys=on"
}

// SQLX wraps the pool behind db for hand-written queries.
func SQLX(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return sqlx.NewDb(sqlDB, DriverName(db.Dialector.Name())), nil
}

// DriverName maps a gorm dialect to the database/sql driver name sqlx and goose expect.
func DriverName(dialect string) string {
	switch dialect {
	case "postgres":
		return "pgx"
	case "sqlite":
		return "sqlite3"
	default:
		return dialect
	}
}

func SQLDB(db *gorm.DB) (*sql.DB, error) {
	return db.DB()
}
