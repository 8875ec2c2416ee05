package cmd

import (
	"context"
	"fmt"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/auth"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/event"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage events",
}

var eventFlags struct {
	name       string
	start      string
	end        string
	address    string
	city       string
	country    string
	postalCode string
	attendees  int
	contract   int64
	notes      string
	support    int64
	unassigned bool
	mine       bool
}

var createEventCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the event of a signed contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.Guard(func(ctx context.Context, p *auth.Principal) error {
				f := eventFlags
				var err error
				if f.contract, err = askID(deps.Prompter, "Contract id", f.contract); err != nil {
					return err
				}
				if f.name, err = ask(deps.Prompter, "Event name", f.name); err != nil {
					return err
				}
				if f.start, err = ask(deps.Prompter, "Start (YYYY-MM-DD HH:MM)", f.start); err != nil {
					return err
				}
				if f.end, err = ask(deps.Prompter, "End (YYYY-MM-DD HH:MM)", f.end); err != nil {
					return err
				}
				if f.address, err = ask(deps.Prompter, "Address", f.address); err != nil {
					return err
				}
				if f.city, err = ask(deps.Prompter, "City", f.city); err != nil {
					return err
				}
				if f.country, err = ask(deps.Prompter, "Country", f.country); err != nil {
					return err
				}
				if f.postalCode, err = ask(deps.Prompter, "Postal code", f.postalCode); err != nil {
					return err
				}

				created, err := deps.Events.Create(ctx, p, event.CreateEventDTO{
					Name:            f.name,
					StartDate:       f.start,
					EndDate:         f.end,
					AddressLine1:    f.address,
					City:            f.city,
					Country:         f.country,
					PostalCode:      f.postalCode,
					AttendeesNumber: f.attendees,
					ContractID:      f.contract,
					Notes:           f.notes,
				})
				if err != nil {
					return err
				}
				success(fmt.Sprintf("Event %q created with id %d.", created.Name, created.ID))
				return nil
			}, auth.CreateEvent)(ctx)
		})
	},
}

var updateEventCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an event or assign its support employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID, err := parseID("id", args[0])
		if err != nil {
			return err
		}
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.Guard(func(ctx context.Context, p *auth.Principal) error {
				flags := cmd.Flags()
				var dto event.UpdateEventDTO
				if flags.Changed("name") {
					dto.Name = &eventFlags.name
				}
				if flags.Changed("start") {
					dto.StartDate = &eventFlags.start
				}
				if flags.Changed("end") {
					dto.EndDate = &eventFlags.end
				}
				if flags.Changed("address") {
					dto.AddressLine1 = &eventFlags.address
				}
				if flags.Changed("city") {
					dto.City = &eventFlags.city
				}
				if flags.Changed("country") {
					dto.Country = &eventFlags.country
				}
				if flags.Changed("postal-code") {
					dto.PostalCode = &eventFlags.postalCode
				}
				if flags.Changed("attendees") {
					dto.AttendeesNumber = &eventFlags.attendees
				}
				if flags.Changed("notes") {
					dto.Notes = &eventFlags.notes
				}
				if flags.Changed("support") {
					dto.SupportPersonID = &eventFlags.support
				}

				updated, err := deps.Events.Update(ctx, p, eventID, dto)
				if err != nil {
					return err
				}
				success(fmt.Sprintf("Event %d updated.", updated.ID))
				return nil
			}, auth.UpdateEvent)(ctx)
		})
	},
}

var deleteEventCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eventID, err := parseID("id", args[0])
		if err != nil {
			return err
		}
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.Guard(func(ctx context.Context, p *auth.Principal) error {
				if err := deps.Events.Delete(ctx, p, eventID); err != nil {
					return err
				}
				success(fmt.Sprintf("Event %d deleted.", eventID))
				return nil
			}, auth.DeleteEvent)(ctx)
		})
	},
}

var listEventCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd.Context(), func(ctx context.Context, deps *Dependencies) error {
			return deps.Gate.RequireAuthentication(func(ctx context.Context, p *auth.Principal) error {
				var (
					events []*event.Event
					err    error
				)
				if eventFlags.mine {
					events, err = deps.Events.ListMine(ctx, p)
				} else {
					events, err = deps.Events.List(ctx, p, event.ListFilter{Unassigned: eventFlags.unassigned})
				}
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(events))
				for _, e := range events {
					rows = append(rows, []string{
						id(e.ID), e.Name, id(e.ContractID), orDash(e.ClientName),
						datetime(e.StartDatetime), datetime(e.EndDatetime),
						orDash(e.City), fmt.Sprint(e.AttendeesNumber), orDash(e.SupportPersonName),
					})
				}
				table(stdout(), []string{"id", "name", "contract", "client", "start", "end", "city", "attendees", "support"}, rows)
				return nil
			})(ctx)
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{createEventCmd, updateEventCmd} {
		c.Flags().StringVar(&eventFlags.name, "name", "", "event name")
		c.Flags().StringVar(&eventFlags.start, "start", "", "start, YYYY-MM-DD HH:MM")
		c.Flags().StringVar(&eventFlags.end, "end", "", "end, YYYY-MM-DD HH:MM")
		c.Flags().StringVar(&eventFlags.address, "address", "", "address line")
		c.Flags().StringVar(&eventFlags.city, "city", "", "city")
		c.Flags().StringVar(&eventFlags.country, "country", "", "country")
		c.Flags().StringVar(&eventFlags.postalCode, "postal-code", "", "postal code")
		c.Flags().IntVar(&eventFlags.attendees, "attendees", 0, "expected number of attendees")
		c.Flags().StringVar(&eventFlags.notes, "notes", "", "free notes")
	}
	createEventCmd.Flags().Int64Var(&eventFlags.contract, "contract", 0, "signed contract id")
	updateEventCmd.Flags().Int64Var(&eventFlags.support, "support", 0, "support employee id")

	listEventCmd.Flags().BoolVar(&eventFlags.unassigned, "unassigned", false, "only events without support")
	listEventCmd.Flags().BoolVar(&eventFlags.mine, "mine", false, "only events assigned to me")

	eventCmd.AddCommand(createEventCmd, updateEventCmd, deleteEventCmd, listEventCmd)
}
