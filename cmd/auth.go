package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in and store a session token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			var email string
			if len(args) == 1 {
				email = args[0]
			}
			email, err := ask(deps.Prompter, "Email", email)
			if err != nil {
				return err
			}
			password, err := askSecret(deps.Prompter, "Password", loginPassword)
			if err != nil {
				return err
			}

			ok, err := deps.Gate.LogIn(ctx, auth.LoginDTO{Email: email, Password: password})
			if err != nil {
				return err
			}
			if !ok {
				return internal.ErrInvalidCredentials
			}
			success(fmt.Sprintf("Logged in. Session valid for %s.", deps.Config.Security.AccessTokenDuration))
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			if err := deps.Gate.LogOut(ctx); err != nil {
				return err
			}
			success("Logged out.")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in employee and their permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			info, err := deps.Gate.Diagnose(ctx)
			if err != nil {
				return err
			}
			if info.State != auth.TokenValid {
				warning(fmt.Sprintf("No valid session (%s).", info.State))
				return internal.ErrNotAuthenticated
			}

			return deps.Gate.RequireAuthentication(func(ctx context.Context, p *auth.Principal) error {
				table(stdout(), []string{"id", "name", "email", "department", "permissions", "expires"}, [][]string{{
					id(p.ID()),
					p.Identity.FullName(),
					p.Identity.Email,
					p.Identity.DepartmentName,
					fmt.Sprint(p.Permissions.Names()),
					info.ExpiresAt.Local().Format(time.Kitchen),
				}})
				return nil
			})(ctx)
		})
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted)")
}
