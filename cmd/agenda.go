package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/spf13/cobra"

	cal "github.com/schedbot/schedbot/internal/calendar"
	"github.com/schedbot/schedbot/internal/timeutil"
)

func newAgendaCmd() *cobra.Command {
	var (
		account    string
		timeZone   string
		maxResults int64
	)

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Print today's events from all selected calendars",
		Long: `List today's events across every calendar selected in the Google
Calendar UI, merged into a single chronological list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := cal.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
			}

			cfg := cal.Config{TimeZone: timeZone}
			scheduler := cal.NewScheduler(client, cfg, slog.Default())

			zone := scheduler.Config().TimeZone
			today, err := timeutil.CurrentDate(zone)
			if err != nil {
				return fmt.Errorf("failed to resolve timezone %s: %w", zone, err)
			}

			views, err := scheduler.ListEvents(ctx,
				today+"T00:00:00", today+"T23:59:59", maxResults, zone)
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}

			if len(views) == 0 {
				fmt.Printf("No events on %s\n", today)
				return nil
			}

			for _, v := range views {
				summary := "(no title)"
				if v.Summary != nil {
					summary = *v.Summary
				}
				fmt.Printf("%s - %s  %s\n", v.Start, v.End, summary)
				if v.Location != nil {
					fmt.Printf("    %s\n", *v.Location)
				}
				if v.ConferenceLink != nil {
					fmt.Printf("    %s\n", *v.ConferenceLink)
				}
			}
			log.Printf("Listed %d events", len(views))
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVar(&timeZone, "timezone", "", "IANA timezone for the agenda window. Default: America/Chicago")
	cmd.Flags().Int64Var(&maxResults, "max-results", 50, "Maximum events per calendar")

	return cmd
}
