package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/josh-kwaku/codemart/internal/auth"
	"github.com/josh-kwaku/codemart/internal/output"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing of the failure endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rawUserID, _ := cmd.Flags().GetString("user-id")
			wallet, _ := cmd.Flags().GetString("wallet")
			secret, _ := cmd.Flags().GetString("secret")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			userID := uuid.New()
			if rawUserID != "" {
				parsed, err := uuid.Parse(rawUserID)
				if err != nil {
					return printFailure(cmd, fmt.Errorf("invalid --user-id: %w", err))
				}
				userID = parsed
			}
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			if secret == "" {
				return printFailure(cmd, errors.New("--secret or JWT_SECRET is required"))
			}

			token, err := auth.GenerateToken(userID, wallet, secret, ttl)
			if err != nil {
				return printFailure(cmd, err)
			}

			type resp struct {
				Token     string    `json:"token"`
				UserID    uuid.UUID `json:"user_id"`
				ExpiresIn string    `json:"expires_in"`
			}
			return output.PrintSuccess(output.DefaultConfig(cmd.OutOrStdout()), resp{
				Token:     token,
				UserID:    userID,
				ExpiresIn: ttl.String(),
			})
		},
	}

	cmd.Flags().String("user-id", "", "User id to embed (default: random)")
	cmd.Flags().String("wallet", "", "Wallet address to embed")
	cmd.Flags().String("secret", "", "Signing secret (default: $JWT_SECRET)")
	cmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
	return cmd
}
