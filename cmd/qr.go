package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"pantry-timeclock/internal/auth"
	"pantry-timeclock/internal/config"
	"pantry-timeclock/internal/timeclock"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

var (
	qrExpiresInMinutes uint
	qrGigID            string
	qrOutFile          string
)

// The CLI operates with administrative rights.
func cliRequester() timeclock.Requester {
	return timeclock.Requester{UserID: "cli", Role: auth.RoleAdmin}
}

func newTimeclockService() *timeclock.Service {
	return timeclock.NewService(provider, cfg, nil)
}

var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Manage venue clock tokens",
	Long:  `Issue, list and revoke QR clock tokens, and export them as PNG images.`,
}

var qrIssueCmd = &cobra.Command{
	Use:   "issue [venue-id]",
	Short: "Issue a clock token for a venue",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := newTimeclockService()

		opts := timeclock.IssueOptions{ExpiresInMinutes: qrExpiresInMinutes}
		if qrGigID != "" {
			opts.GigID = &qrGigID
		}

		token, err := svc.IssueToken(ctx, args[0], cliRequester(), opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error issuing token: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Token %s issued for venue %s.\n", token.ID, token.VenueID)
		fmt.Printf("Value: %s\n", token.Token)
		if token.ExpiresAt != nil {
			fmt.Printf("Expires: %s\n", token.ExpiresAt.Format(time.RFC3339))
		} else {
			fmt.Println("Expires: never (permanent token)")
		}
	},
}

var qrListCmd = &cobra.Command{
	Use:   "list [venue-id]",
	Short: "List a venue's active clock tokens",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := newTimeclockService()

		tokens, err := svc.ListActiveTokens(ctx, args[0], cliRequester())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing tokens: %v\n", err)
			os.Exit(1)
		}

		if len(tokens) == 0 {
			fmt.Println("No active tokens found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tGIG\tEXPIRES AT\tCREATED AT")
		for _, token := range tokens {
			gig := "-"
			if token.GigID != nil {
				gig = *token.GigID
			}
			expires := "never"
			if token.ExpiresAt != nil {
				expires = token.ExpiresAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", token.ID, gig, expires, token.CreatedAt.Format(time.RFC3339))
		}
		w.Flush()
	},
}

var qrRevokeCmd = &cobra.Command{
	Use:   "revoke [token-id]",
	Short: "Revoke a clock token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := newTimeclockService()

		if err := svc.RevokeToken(ctx, args[0], cliRequester()); err != nil {
			fmt.Fprintf(os.Stderr, "Error revoking token: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Token %s revoked.\n", args[0])
	},
}

var qrPngCmd = &cobra.Command{
	Use:   "png [token-id]",
	Short: "Write a token's QR code to a PNG file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := newTimeclockService()

		token, err := svc.GetToken(ctx, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching token: %v\n", err)
			os.Exit(1)
		}

		outFile := qrOutFile
		if outFile == "" {
			outFile = fmt.Sprintf("clock_qr_%s.png", token.ID)
		}

		if err := qrcode.WriteFile(token.Token, qrcode.Medium, config.QR_IMAGE_SIZE, outFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing QR image: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("QR code written to %s.\n", outFile)
	},
}

func init() {
	rootCmd.AddCommand(qrCmd)
	qrCmd.AddCommand(qrIssueCmd)
	qrCmd.AddCommand(qrListCmd)
	qrCmd.AddCommand(qrRevokeCmd)
	qrCmd.AddCommand(qrPngCmd)

	qrIssueCmd.Flags().UintVar(&qrExpiresInMinutes, "expires-in", 0, "token expiry in minutes (0 = configured default; ignored in permanent mode)")
	qrIssueCmd.Flags().StringVar(&qrGigID, "gig", "", "scope the token to a single gig")
	qrPngCmd.Flags().StringVar(&qrOutFile, "out", "", "output file (default clock_qr_<id>.png)")
}
