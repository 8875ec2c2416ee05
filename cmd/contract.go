package cmd

import (
	"context"
	"fmt"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/contract"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/common/validation"
	"github.com/spf13/cobra"
)

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Manage contracts",
}

var contractFlags struct {
	client      int64
	amount      string
	total       string
	paid        string
	signed      bool
	clientEmail string
	unpaid      bool
	unsigned    bool
	noEvent     bool
	mine        bool
}

var createContractCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an unsigned contract for a client",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.Guard(func(ctx context.Context, p *auth.Principal) error {
				clientID, err := askID(deps.Prompter, "Client id", contractFlags.client)
				if err != nil {
					return err
				}
				raw, err := ask(deps.Prompter, "Amount", contractFlags.amount)
				if err != nil {
					return err
				}
				amount, appErr := validation.ParseAmount("amount", raw)
				if appErr != nil {
					return appErr
				}

				created, err := deps.Contracts.Create(ctx, p, contract.CreateContractDTO{ClientID: clientID, Amount: amount})
				if err != nil {
					return err
				}
				success(fmt.Sprintf("Contract created with id %d.", created.ID))
				return nil
			}, auth.CreateContract)(ctx)
		})
	},
}

var updateContractCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update amounts, signature or client of a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractID, err := parseID("id", args[0])
		if err != nil {
			return err
		}
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.Guard(func(ctx context.Context, p *auth.Principal) error {
				flags := cmd.Flags()
				var dto contract.UpdateContractDTO

				if flags.Changed("total") {
					total, appErr := validation.ParseAmount("total_amount", contractFlags.total)
					if appErr != nil {
						return appErr
					}
					dto.TotalAmount = &total
				}
				if flags.Changed("paid") {
					paid, appErr := validation.ParseAmount("paid_amount", contractFlags.paid)
					if appErr != nil {
						return appErr
					}
					dto.PaidAmount = &paid
				}
				if flags.Changed("signed") {
					dto.Signed = &contractFlags.signed
				}
				if flags.Changed("client-email") {
					dto.ClientEmail = &contractFlags.clientEmail
				}

				updated, err := deps.Contracts.Update(ctx, p, contractID, dto)
				if err != nil {
					return err
				}
				success(fmt.Sprintf("Contract %d updated: total %s, due %s, signed %s.",
					updated.ID, money(updated.TotalAmount), money(updated.DueAmount), yesNo(updated.Signed)))
				if updated.Overpaid() {
					warning(fmt.Sprintf("Please note that due amount is negative: %s", money(updated.DueAmount)))
				}
				return nil
			}, auth.UpdateContract)(ctx)
		})
	},
}

var deleteContractCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a contract",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contractID, err := parseID("id", args[0])
		if err != nil {
			return err
		}
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.Guard(func(ctx context.Context, p *auth.Principal) error {
				if err := deps.Contracts.Delete(ctx, p, contractID); err != nil {
					return err
				}
				success(fmt.Sprintf("Contract %d deleted.", contractID))
				return nil
			}, auth.DeleteContract)(ctx)
		})
	},
}

var listContractCmd = &cobra.Command{
	Use:   "list",
	Short: "List contracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.RequireAuthentication(func(ctx context.Context, p *auth.Principal) error {
				var (
					contracts []*contract.Contract
					err       error
				)
				if contractFlags.mine {
					contracts, err = deps.Contracts.ListMine(ctx, p, contractFlags.noEvent)
				} else {
					contracts, err = deps.Contracts.List(ctx, p, contract.ListFilter{
						Unpaid:   contractFlags.unpaid,
						Unsigned: contractFlags.unsigned,
						NoEvent:  contractFlags.noEvent,
					})
				}
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(contracts))
				for _, c := range contracts {
					rows = append(rows, []string{
						id(c.ID), orDash(c.ClientName), money(c.TotalAmount), money(c.DueAmount),
						yesNo(c.Signed), datetime(c.CreatedAt),
					})
				}
				table(stdout(), []string{"id", "client", "total", "due", "signed", "created"}, rows)
				return nil
			})(ctx)
		})
	},
}

const decimalFlag = "amount, e.g. 1500.50"

func init() {
	createContractCmd.Flags().Int64Var(&contractFlags.client, "client", 0, "client id")
	createContractCmd.Flags().StringVar(&contractFlags.amount, "amount", "", decimalFlag)

	updateContractCmd.Flags().StringVar(&contractFlags.total, "total", "", "new total "+decimalFlag)
	updateContractCmd.Flags().StringVar(&contractFlags.paid, "paid", "", "paid "+decimalFlag)
	updateContractCmd.Flags().BoolVar(&contractFlags.signed, "signed", false, "signature status")
	updateContractCmd.Flags().StringVar(&contractFlags.clientEmail, "client-email", "", "reassign to the client with this email")

	listContractCmd.Flags().BoolVar(&contractFlags.unpaid, "unpaid", false, "only contracts with an amount due")
	listContractCmd.Flags().BoolVar(&contractFlags.unsigned, "unsigned", false, "only unsigned contracts")
	listContractCmd.Flags().BoolVar(&contractFlags.noEvent, "noevent", false, "only contracts without an event")
	listContractCmd.Flags().BoolVar(&contractFlags.mine, "mine", false, "only contracts of my clients")

	contractCmd.AddCommand(createContractCmd, updateContractCmd, deleteContractCmd, listContractCmd)
}
