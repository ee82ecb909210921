package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schedbot/schedbot/internal/google"
	"github.com/schedbot/schedbot/internal/instrumentation"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth [authorization-code]",
		Short: "Authorize Google Calendar access for an account",
		Long: `Exchange a Google OAuth authorization code for tokens and store them
for the given account.

Run without arguments to print the authorization URL. Open it in a
browser, grant access, then run again with the displayed code:

  schedbot auth
  schedbot auth --account work 4/0AX4XfW...

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET env vars.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println("Open the following URL in your browser and grant access:")
				fmt.Println()
				fmt.Println(google.GetAuthURLForAccount(account))
				fmt.Println()
				fmt.Printf("Then run: schedbot auth --account %s <authorization-code>\n", account)
				return nil
			}

			ctx := context.Background()

			instrConfig := instrumentation.DefaultConfig()
			instrConfig.ServiceVersion = version
			provider, err := instrumentation.NewProvider(ctx, instrConfig)
			if err != nil {
				return fmt.Errorf("failed to create instrumentation provider: %w", err)
			}
			defer func() { _ = provider.Shutdown(ctx) }()

			exchangeErr := google.SaveTokenForAccount(ctx, account, args[0])
			provider.Metrics().RecordOAuthAuth(ctx, authResult(exchangeErr))
			if exchangeErr != nil {
				return fmt.Errorf("failed to save token for account %s: %w", account, exchangeErr)
			}

			fmt.Printf("Token saved for account %q\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to store the token under (default: 'default')")

	return cmd
}

// authResult maps a token-exchange outcome to the metric result label.
func authResult(err error) string {
	if err != nil {
		return instrumentation.OAuthResultFailure
	}
	return instrumentation.OAuthResultSuccess
}
