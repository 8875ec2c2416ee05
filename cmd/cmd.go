package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/pkg/logger"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "eecrm",
	Short:         "Epic Events CRM",
	Long:          `Manage the employees, clients, contracts and events of Epic Events from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx := internal.ContextWithInvocationID(context.Background(), uuid.NewString())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(err)
		os.Exit(internal.ExitCode(err))
	}
}

func loadConfig(path string) (*internal.Config, error) {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("EECRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, internal.DefaultConfig())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override values absent from config.yml.
func setDefaults(v *viper.Viper, d internal.Config) {
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.source", d.Database.Source)
	v.SetDefault("database.encrypted_password", d.Database.EncryptedPassword)
	v.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", d.Database.ConnMaxLifetime)

	v.SetDefault("security.encrypted_jwt_secret", d.Security.EncryptedJWTSecret)
	v.SetDefault("security.key_env", d.Security.KeyEnv)
	v.SetDefault("security.access_token_duration", d.Security.AccessTokenDuration)
	v.SetDefault("security.bcrypt_cost", d.Security.BCryptCost)

	v.SetDefault("session.file", d.Session.File)
	v.SetDefault("session.token_key", d.Session.TokenKey)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("departments.superuser", d.Departments.Superuser)
	v.SetDefault("departments.management", d.Departments.Management)
	v.SetDefault("departments.sales", d.Departments.Sales)
	v.SetDefault("departments.support", d.Departments.Support)
}

func printError(err error) {
	red := color.New(color.FgRed, color.Bold).FprintfFunc()
	if appErr, ok := internal.IsAppError(err); ok {
		red(os.Stderr, "Error: %s\n", appErr.Message)
		if details, ok := appErr.Details.(internal.ValidationErrors); ok {
			for _, d := range details.Errors {
				fmt.Fprintf(os.Stderr, "  - %s: %s\n", d.Field, d.Message)
			}
		}
		logger.LoggerWrapper().Debug("command failed", "error", appErr.GetDetailedMessage())
		return
	}
	red(os.Stderr, "Error: %v\n", err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory holding config.yml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(employeeCmd, departmentCmd, clientCmd, contractCmd, eventCmd)
	rootCmd.AddCommand(migrateCmd, seedCmd, secretCmd)
}
