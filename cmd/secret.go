package cmd

import (
	"fmt"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/secret"
	"github.com/spf13/cobra"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Produce the application key and encrypted configuration values",
}

var generateKeyCmd = &cobra.Command{
	Use:   "generate-key",
	Short: "Print a new application key",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := secret.GenerateKey()
		if err != nil {
			return internal.NewInternalError("failed to generate key", err)
		}
		fmt.Println(key)
		return nil
	},
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt [value]",
	Short: "Encrypt a value with the application key",
	Long: `Encrypt a value with the application key, e.g. the token signing secret for
security.encrypted_jwt_secret or the database password for database.encrypted_password.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configDir)
		if err != nil {
			return internal.NewInternalError("failed to load config", err)
		}

		prompter := secret.NewTerminalPrompter()
		manager := secret.NewManager(secret.Options{KeyEnv: cfg.Security.KeyEnv, Prompter: prompter})
		key, err := manager.ResolveKey(cmd.Context())
		if err != nil {
			return err
		}

		var value string
		if len(args) == 1 {
			value = args[0]
		}
		if value, err = askSecret(prompter, "Value to encrypt", value); err != nil {
			return err
		}

		ciphertext, err := secret.Encrypt([]byte(value), key)
		if err != nil {
			return internal.NewInternalError("failed to encrypt value", err)
		}
		fmt.Println(ciphertext)
		return nil
	},
}

func init() {
	secretCmd.AddCommand(generateKeyCmd, encryptCmd)
}
