package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fr0stylo/ghevents/internal/adapters/sqlite"
	"github.com/fr0stylo/ghevents/internal/app/services"
	"github.com/fr0stylo/ghevents/internal/export"
	"github.com/fr0stylo/ghevents/internal/observability"
)

func newEventsCommand(root *rootOptions) *cobra.Command {
	var (
		since  string
		all    bool
		limit  int
		format string
		source string
		sink   string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List stored events, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outFormat, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			query, err := services.ParseEventQuery(since, strconv.FormatBool(all), strconv.Itoa(limit))
			if err != nil {
				return err
			}

			svc := services.NewEventQueryService(sqlite.NewEventStoreFactory(cfg.Database.Path, cfg.Events.RecentWindow))
			page, err := svc.List(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("list events: %w", err)
			}
			if sink != "" {
				if !cmd.Flags().Changed("format") {
					outFormat = export.FormatCloudEvents
				}
				publisher := export.Publisher{
					Endpoint:   sink,
					Source:     source,
					Format:     outFormat,
					HTTPClient: observability.NewHTTPClient(10 * time.Second),
				}
				sent, err := publisher.Publish(cmd.Context(), page.Events)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "published %d events to %s\n", sent, sink)
				return err
			}
			return export.NewWriter(cmd.OutOrStdout(), outFormat, source).Write(page.Events)
		},
	}
	cmd.Flags().StringVar(&since, "since", "", "only events strictly after this ISO-8601 instant")
	cmd.Flags().BoolVar(&all, "all", false, "list all events instead of the recent window")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of events (1-100)")
	cmd.Flags().StringVar(&format, "format", string(export.FormatTable), "output format: table, json, cloudevents or cdevents")
	cmd.Flags().StringVar(&source, "source", export.DefaultSource, "source attribute for cloudevents and cdevents output")
	cmd.Flags().StringVar(&sink, "sink", "", "POST each event to this URL instead of printing (cloudevents or cdevents format)")
	return cmd
}

func newStatsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the number of stored events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			svc := services.NewEventQueryService(sqlite.NewEventStoreFactory(cfg.Database.Path, cfg.Events.RecentWindow))
			stats, err := svc.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch statistics: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "total_events: %d\n", stats.TotalEvents)
			return err
		},
	}
}
