package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/landaireal/landai-rent/internal/auth"
)

func tokenCmd() *cobra.Command {
	var (
		secret  string
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token for POST /api/properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = cfg.AdminJWTSecret
			}
			if secret == "" {
				return errors.New("no secret: pass --secret or set ADMIN_JWT_SECRET")
			}
			tok, err := auth.IssueAdminToken(secret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Println(tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "HMAC secret (defaults to ADMIN_JWT_SECRET)")
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "lifetime; 0 means no expiry")
	return cmd
}
