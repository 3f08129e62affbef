package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"pantry-timeclock/internal/storage"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var venueManagerID string

var venueCmd = &cobra.Command{
	Use:   "venue",
	Short: "Manage venues",
	Long:  `Create and list venues in the time tracking system.`,
}

var venueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all venues",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		venues, err := provider.ListVenues(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing venues: %v\n", err)
			os.Exit(1)
		}

		if len(venues) == 0 {
			fmt.Println("No venues found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMANAGER\tCREATED AT")
		for _, venue := range venues {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", venue.ID, venue.Name, venue.ManagerID, venue.CreatedAt.Format(time.RFC3339))
		}
		w.Flush()
	},
}

var venueCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new venue",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		venue := storage.Venue{
			ID:        uuid.NewString(),
			Name:      args[0],
			ManagerID: venueManagerID,
			CreatedAt: time.Now().UTC(),
		}

		if err := provider.CreateVenue(ctx, venue); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating venue: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Venue '%s' created with id %s.\n", venue.Name, venue.ID)
	},
}

func init() {
	rootCmd.AddCommand(venueCmd)
	venueCmd.AddCommand(venueListCmd)
	venueCmd.AddCommand(venueCreateCmd)

	venueCreateCmd.Flags().StringVar(&venueManagerID, "manager", "", "user id of the venue manager")
	venueCreateCmd.MarkFlagRequired("manager")
}
