package cmd

import (
	"context"
	"fmt"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/client"
	"github.com/spf13/cobra"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
}

var clientFlags struct {
	id          int64
	fname       string
	lname       string
	email       string
	phone       string
	company     string
	salesperson int64
	mine        bool
}

var createClientCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a client, assigned to you when you are a salesperson",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.Guard(func(ctx context.Context, p *auth.Principal) error {
				f := clientFlags
				var err error
				if f.fname, err = ask(deps.Prompter, "First name", f.fname); err != nil {
					return err
				}
				if f.lname, err = ask(deps.Prompter, "Last name", f.lname); err != nil {
					return err
				}
				if f.email, err = ask(deps.Prompter, "Email", f.email); err != nil {
					return err
				}

				created, err := deps.Clients.Create(ctx, p, client.CreateClientDTO{
					FirstName:     f.fname,
					LastName:      f.lname,
					Email:         f.email,
					Phone:         f.phone,
					CompanyName:   f.company,
					SalespersonID: f.salesperson,
				})
				if err != nil {
					return err
				}
				success(fmt.Sprintf("Client %s created with id %d.", created.FullName(), created.ID))
				return nil
			}, auth.CreateClient)(ctx)
		})
	},
}

var updateClientCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a client found by --id, or by --email when no id is given",
	Long: `Update a client found by --id, or by --email when no id is given.
When both are given, --email is the new email address.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.Guard(func(ctx context.Context, p *auth.Principal) error {
				flags := cmd.Flags()
				ref := client.ClientRef{ID: clientFlags.id}
				var dto client.UpdateClientDTO

				if flags.Changed("email") {
					if ref.ID != 0 {
						dto.Email = &clientFlags.email
					} else {
						ref.Email = clientFlags.email
					}
				}
				if flags.Changed("fname") {
					dto.FirstName = &clientFlags.fname
				}
				if flags.Changed("lname") {
					dto.LastName = &clientFlags.lname
				}
				if flags.Changed("phone") {
					dto.Phone = &clientFlags.phone
				}
				if flags.Changed("company") {
					dto.CompanyName = &clientFlags.company
				}
				if flags.Changed("salesperson") {
					dto.SalespersonID = &clientFlags.salesperson
				}

				updated, err := deps.Clients.Update(ctx, p, ref, dto)
				if err != nil {
					return err
				}
				success(fmt.Sprintf("Client %d updated.", updated.ID))
				return nil
			}, auth.UpdateClient)(ctx)
		})
	},
}

var deleteClientCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientID, err := parseID("id", args[0])
		if err != nil {
			return err
		}
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.Guard(func(ctx context.Context, p *auth.Principal) error {
				if err := deps.Clients.Delete(ctx, p, clientID); err != nil {
					return err
				}
				success(fmt.Sprintf("Client %d deleted.", clientID))
				return nil
			}, auth.DeleteClient)(ctx)
		})
	},
}

var listClientCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.RequireAuthentication(func(ctx context.Context, p *auth.Principal) error {
				var (
					clients []*client.Client
					err     error
				)
				if clientFlags.mine {
					clients, err = deps.Clients.ListMine(ctx, p)
				} else {
					clients, err = deps.Clients.List(ctx, p)
				}
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(clients))
				for _, c := range clients {
					rows = append(rows, []string{
						id(c.ID), c.FullName(), c.Email, orDash(c.Phone), orDash(c.CompanyName),
						orDash(c.SalespersonName), datetime(c.LastUpdated),
					})
				}
				table(stdout(), []string{"id", "name", "email", "phone", "company", "salesperson", "last updated"}, rows)
				return nil
			})(ctx)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{createClientCmd, updateClientCmd} {
		c.Flags().StringVar(&clientFlags.fname, "fname", "", "first name")
		c.Flags().StringVar(&clientFlags.lname, "lname", "", "last name")
		c.Flags().StringVar(&clientFlags.email, "email", "", "email")
		c.Flags().StringVar(&clientFlags.phone, "phone", "", "phone number")
		c.Flags().StringVar(&clientFlags.company, "company", "", "company name")
		c.Flags().Int64Var(&clientFlags.salesperson, "salesperson", 0, "salesperson employee id")
	}
	updateClientCmd.Flags().Int64Var(&clientFlags.id, "id", 0, "client id")
	listClientCmd.Flags().BoolVar(&clientFlags.mine, "mine", false, "only my clients")

	clientCmd.AddCommand(createClientCmd, updateClientCmd, deleteClientCmd, listClientCmd)
}
