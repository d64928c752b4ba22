package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/grimoire-api/internal/config"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
	"github.com/KirkDiggler/grimoire-api/internal/pkg/usertoken"
)

var (
	tokenUser string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for local testing",
	Long: `Sign a bearer token with the configured auth secret. The token is
accepted by a server started with the same auth settings.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id placed in the token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(&config.LoadInput{Path: configPath, SkipValidation: true})
	if err != nil {
		return err
	}
	if cfg.Auth.Secret == "" {
		return errors.InvalidArgument("auth.secret is required to sign tokens")
	}

	signer, err := usertoken.NewSigner(tokenConfig(&cfg.Auth))
	if err != nil {
		return errors.Wrap(err, "failed to create signer")
	}

	token, err := signer.Sign(tokenUser, tokenTTL)
	if err != nil {
		return errors.Wrap(err, "failed to sign token")
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
