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

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage venue staff eligibility",
	Long:  `Add chefs as clock-eligible staff at a venue and toggle their eligibility.`,
}

var staffListCmd = &cobra.Command{
	Use:   "list [venue-id]",
	Short: "List staff at a venue",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		staff, err := provider.ListVenueStaff(ctx, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing staff: %v\n", err)
			os.Exit(1)
		}

		if len(staff) == 0 {
			fmt.Println("No staff found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCHEF\tACTIVE\tCREATED AT")
		for _, member := range staff {
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", member.ID, member.ChefID, member.IsActive, member.CreatedAt.Format(time.RFC3339))
		}
		w.Flush()
	},
}

var staffAddCmd = &cobra.Command{
	Use:   "add [venue-id] [chef-id]",
	Short: "Add a chef as clock-eligible staff at a venue",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		staff := storage.VenueStaff{
			ID:        uuid.NewString(),
			VenueID:   args[0],
			ChefID:    args[1],
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		}

		row, err := provider.UpsertVenueStaff(ctx, staff)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error adding staff: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Chef %s added to venue %s (staff id %s).\n", row.ChefID, row.VenueID, row.ID)
	},
}

var staffToggleCmd = &cobra.Command{
	Use:   "toggle [venue-id] [staff-id] [true|false]",
	Short: "Set a staff member's clock-in eligibility",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		var active bool
		switch args[2] {
		case "true":
			active = true
		case "false":
			active = false
		default:
			fmt.Fprintf(os.Stderr, "Invalid value %q, expected true or false\n", args[2])
			os.Exit(1)
		}

		row, err := provider.SetVenueStaffActive(ctx, args[0], args[1], active)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error updating staff: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Staff %s active=%t.\n", row.ID, row.IsActive)
	},
}

func init() {
	rootCmd.AddCommand(staffCmd)
	staffCmd.AddCommand(staffListCmd)
	staffCmd.AddCommand(staffAddCmd)
	staffCmd.AddCommand(staffToggleCmd)
}
