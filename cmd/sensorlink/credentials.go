package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/garrettladley/sensorlink/internal/client/sahha"
	"github.com/garrettladley/sensorlink/internal/credentials"
)

func credentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Inspect or clear the stored app credentials",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored credentials with the secret masked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			c := credentials.Load(ctx, a.store, a.logger)
			fmt.Printf("store:      %s\n", a.cfg.Credentials.Backend)
			fmt.Printf("app id:     %s\n", orUnset(c.AppID))
			fmt.Printf("app secret: %s\n", orUnset(mask(c.AppSecret)))
			fmt.Printf("user id:    %s\n", orUnset(c.UserID))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the stored credentials and profile token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := clearCredentials(ctx, a.store, a.tokens); err != nil {
				return err
			}
			fmt.Println("Credentials cleared.")
			return nil
		},
	})

	return cmd
}

// clearCredentials signs the profile out along with deleting the app
// credentials it was registered with.
func clearCredentials(ctx context.Context, store credentials.Store, tokens sahha.TokenStore) error {
	if err := store.Delete(ctx, credentials.Keys...); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	if err := tokens.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear profile token: %w", err)
	}
	return nil
}

// mask keeps the last four characters of s.
func mask(s string) string {
	n := utf8.RuneCountInString(s)
	if n <= 4 {
		return strings.Repeat("•", n)
	}
	return strings.Repeat("•", n-4) + string([]rune(s)[n-4:])
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
