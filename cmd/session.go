package cmd

import (
	"fmt"
	"os"

	"pantry-timeclock/internal/auth"

	"github.com/spf13/cobra"
)

var (
	sessionUserID string
	sessionRole   string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Session token helpers",
}

// Development helper: in production the platform issues session tokens.
var sessionMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a bearer session token for a user",
	Run: func(cmd *cobra.Command, args []string) {
		role, err := auth.ParseRole(sessionRole)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid role: %v\n", err)
			os.Exit(1)
		}

		claim := auth.NewSessionClaim(sessionUserID, role)
		token, err := auth.GenerateJWT(claim)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionMintCmd)

	sessionMintCmd.Flags().StringVar(&sessionUserID, "user", "", "user id (token subject)")
	sessionMintCmd.Flags().StringVar(&sessionRole, "role", "chef", "role: chef, business, company or admin")
	sessionMintCmd.MarkFlagRequired("user")
}
