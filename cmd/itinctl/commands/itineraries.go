package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/service"
	"github.com/pkordes/travel-planner/internal/store"
)

func listCmd(s *session) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List itineraries, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.open(cmd); err != nil {
				return err
			}
			items, err := s.svc.List(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tDESTINATION\tDAYS\tBUDGET\tCREATED")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
					it.ID, it.Title, it.DestinationName, it.Days, it.Budget, it.CreatedAt)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the collection as JSON")
	return cmd
}

func showCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one itinerary as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.open(cmd); err != nil {
				return err
			}
			it, err := s.svc.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), it)
		},
	}
}

func createCmd(s *session) *cobra.Command {
	var in service.CreateInput
	var budget string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an itinerary with a generated plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.open(cmd); err != nil {
				return err
			}
			in.Budget = domain.Budget(budget)
			it, err := s.svc.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), it.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "itinerary title")
	cmd.Flags().StringVar(&in.DestinationID, "destination", "", "destination id (see GET /destinations)")
	cmd.Flags().IntVar(&in.Days, "days", 3, "number of days")
	cmd.Flags().StringVar(&budget, "budget", string(domain.BudgetModerate), "Economic, Moderate or Luxury")
	cmd.Flags().StringSliceVar(&in.Interests, "interest", nil, "interest, repeatable")
	return cmd
}

func deleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an itinerary; prints applied or no-op",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.open(cmd); err != nil {
				return err
			}
			result := domain.Applied
			if err := s.svc.Delete(cmd.Context(), args[0]); err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					return err
				}
				result = domain.NoOp
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func resetCmd(s *session) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the stored collection with the default seed itineraries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset discards every stored itinerary; pass --yes to confirm")
			}
			if err := s.open(cmd); err != nil {
				return err
			}
			// The store has no replace-all operation; write through the repo
			// once the store has nothing left to save.
			if err := s.store.Close(cmd.Context()); err != nil {
				return err
			}
			if err := s.repo.Save(cmd.Context(), store.Seed()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset to %d seed itineraries\n", len(store.Seed()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
