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

var (
	chefEmail     string
	chefRatePence int64
)

var chefCmd = &cobra.Command{
	Use:   "chef",
	Short: "Manage chef profiles",
}

var chefListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all chefs",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		chefs, err := provider.ListChefs(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing chefs: %v\n", err)
			os.Exit(1)
		}

		if len(chefs) == 0 {
			fmt.Println("No chefs found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tRATE (p/h)\tCREATED AT")
		for _, chef := range chefs {
			rate := "-"
			if chef.HourlyRatePence != nil {
				rate = fmt.Sprintf("%d", *chef.HourlyRatePence)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", chef.ID, chef.DisplayName, chef.Email, rate, chef.CreatedAt.Format(time.RFC3339))
		}
		w.Flush()
	},
}

var chefCreateCmd = &cobra.Command{
	Use:   "create [display name]",
	Short: "Create a new chef profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		chef := storage.Chef{
			ID:          uuid.NewString(),
			DisplayName: args[0],
			Email:       chefEmail,
			CreatedAt:   time.Now().UTC(),
		}
		if chefRatePence > 0 {
			chef.HourlyRatePence = &chefRatePence
		}

		if err := provider.CreateChef(ctx, chef); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating chef: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Chef '%s' created with id %s.\n", chef.DisplayName, chef.ID)
	},
}

func init() {
	rootCmd.AddCommand(chefCmd)
	chefCmd.AddCommand(chefListCmd)
	chefCmd.AddCommand(chefCreateCmd)

	chefCreateCmd.Flags().StringVar(&chefEmail, "email", "", "chef email address")
	chefCreateCmd.Flags().Int64Var(&chefRatePence, "rate", 0, "hourly rate in pence (0 = not set)")
	chefCreateCmd.MarkFlagRequired("email")
}
