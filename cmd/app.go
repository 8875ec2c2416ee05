package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	authPostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth/postgres"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/client"
	clientPostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/client/postgres"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/contract"
	contractPostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/contract/postgres"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/database"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/events"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/department"
	departmentPostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/department/postgres"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/employee"
	employeePostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/employee/postgres"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/event"
	eventPostgres "github.com/DayriseA/OCP12-CRM-EpicEvents/internal/event/postgres"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/secret"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/session"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/pkg/logger"
	"gorm.io/gorm"
)

// Dependencies is everything a command may need, built once per invocation.
type Dependencies struct {
	Config   *internal.Config
	DB       *gorm.DB
	Logger   *slog.Logger
	Secrets  *secret.Manager
	Prompter *secret.TerminalPrompter
	Hasher   *auth.BcryptHasher
	Gate     *auth.Gate

	Departments *department.Service
	Employees   *employee.Service
	Clients     *client.Service
	Contracts   *contract.Service
	Events      *event.Service
}

func (d *Dependencies) Close() {
	if d.DB == nil {
		return
	}
	if sqlDB, err := database.SQLDB(d.DB); err == nil {
		_ = sqlDB.Close()
	}
}

// initializeDependencies loads the config, opens the database and wires the services.
func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, err := loadConfig(configDir)
	if err != nil {
		return nil, internal.NewInternalError("failed to load config", err)
	}
	logger.Init(config.Logging.Level, config.Logging.Format)
	log := logger.LoggerWrapper().With("invocation_id", internal.InvocationIDFromContext(ctx))

	prompter := secret.NewTerminalPrompter()
	secrets := secret.NewManager(secret.Options{
		KeyEnv:              config.Security.KeyEnv,
		EncryptedJWTSecret:  config.Security.EncryptedJWTSecret,
		EncryptedDBPassword: config.Database.EncryptedPassword,
		Prompter:            prompter,
	})

	db, err := initDB(ctx, config.Database, secrets)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Config:   config,
		DB:       db,
		Logger:   log,
		Secrets:  secrets,
		Prompter: prompter,
		Hasher:   auth.NewBcryptHasher(config.Security.BCryptCost),
	}
	if err := deps.wire(); err != nil {
		deps.Close()
		return nil, err
	}
	return deps, nil
}

func (d *Dependencies) wire() error {
	sqlxDB, err := database.SQLX(d.DB)
	if err != nil {
		return internal.NewStorageError("failed to open database", internal.ErrCodeStorage, err)
	}

	tx := database.NewTransactor(d.DB)
	ownership := auth.NewOwnershipPolicy(d.Config.Departments)
	checker := auth.NewPermissionChecker(authPostgres.NewPermissionRepository(sqlxDB), d.Config.Departments.Superuser)

	d.Gate = auth.NewGate(auth.GateOptions{
		Credentials: authPostgres.NewCredentialStore(d.DB),
		Hasher:      d.Hasher,
		Tokens:      auth.NewJWTTokenGenerator(d.Secrets, d.Config.Security.AccessTokenDuration),
		Sessions:    session.NewFileStore(d.Config.Session.File),
		Permissions: checker,
		TokenKey:    d.Config.Session.TokenKey,
	})

	bus := events.NewBus(d.Logger)
	bus.Subscribe(events.ContractSigned, events.LogSink(d.Logger))

	departments := departmentPostgres.NewDepartmentRepository(d.DB)
	employees := employeePostgres.NewEmployeeRepository(d.DB)
	clients := clientPostgres.NewClientRepository(d.DB)
	contracts := contractPostgres.NewContractRepository(d.DB)

	d.Departments = department.NewService(departments, d.Logger)
	d.Employees = employee.NewService(employees, departments, d.Hasher, tx, checker, d.Logger)
	d.Clients = client.NewService(clients, employees, ownership, tx, checker, d.Logger)
	d.Contracts = contract.NewService(contracts, clients, ownership, tx, checker, bus, d.Logger)
	d.Events = event.NewService(eventPostgres.NewEventRepository(d.DB), contracts, employees, ownership, tx, checker, d.Logger)
	return nil
}

// initDB opens the configured database, decrypting its password only when the DSN needs it.
func initDB(ctx context.Context, cfg internal.DatabaseConfig, secrets *secret.Manager) (*gorm.DB, error) {
	var password string
	if cfg.NeedsPassword() {
		p, err := secrets.DatabasePassword(ctx)
		if err != nil {
			return nil, err
		}
		password = p
	}

	db, err := database.Open(cfg, password)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

// withDeps runs fn with freshly wired dependencies and releases them afterwards.
func withDeps(ctx context.Context, fn func(ctx context.Context, deps *Dependencies) error) error {
	deps, err := initializeDependencies(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()
	return fn(logger.With(ctx, "invocation_id", internal.InvocationIDFromContext(ctx)), deps)
}
