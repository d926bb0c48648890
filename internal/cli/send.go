package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fr0stylo/ghevents/internal/githubbridge"
	"github.com/fr0stylo/ghevents/internal/observability"
	"github.com/fr0stylo/ghevents/pkg/hookclient"
)

type sendOptions struct {
	endpoint string
	kind     string
	interval time.Duration
	count    int

	branch string
	commit string
	author string

	prAction string
	number   int
	merged   bool
	head     string
	base     string
}

func newSendCommand() *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Post synthetic GitHub deliveries to a running receiver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "http://localhost:5000/webhook", "receiver URL")
	cmd.Flags().StringVar(&opts.kind, "kind", githubbridge.EventPush, "delivery kind: push, pull_request or ping")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "repeat on this interval until interrupted")
	cmd.Flags().IntVar(&opts.count, "count", 1, "number of deliveries when --interval is unset")
	cmd.Flags().StringVar(&opts.branch, "branch", "main", "push branch")
	cmd.Flags().StringVar(&opts.commit, "commit", "", "push head commit id (random when empty)")
	cmd.Flags().StringVar(&opts.author, "author", "octocat", "pusher or pull request author")
	cmd.Flags().StringVar(&opts.prAction, "action", "opened", "pull_request action")
	cmd.Flags().IntVar(&opts.number, "number", 0, "pull request number (random when zero)")
	cmd.Flags().BoolVar(&opts.merged, "merged", false, "send a merged pull_request close")
	cmd.Flags().StringVar(&opts.head, "head", "feature", "pull request head branch")
	cmd.Flags().StringVar(&opts.base, "base", "main", "pull request base branch")
	return cmd
}

func runSend(ctx context.Context, out io.Writer, opts *sendOptions) error {
	client := hookclient.Client{Endpoint: opts.endpoint, HTTPClient: observability.NewHTTPClient(10 * time.Second)}

	if opts.interval <= 0 {
		for range max(opts.count, 1) {
			if err := sendOnce(ctx, out, client, opts); err != nil {
				return err
			}
		}
		return nil
	}

	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()
	for {
		if err := sendOnce(ctx, out, client, opts); err != nil {
			fmt.Fprintln(out, "webhook error:", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func sendOnce(ctx context.Context, out io.Writer, client hookclient.Client, opts *sendOptions) error {
	kind := strings.TrimSpace(opts.kind)
	payload, err := buildSamplePayload(kind, opts)
	if err != nil {
		return err
	}
	delivery, err := client.Deliver(ctx, kind, payload)
	if err != nil {
		return fmt.Errorf("deliver %s: %w", kind, err)
	}
	_, err = fmt.Fprintf(out, "%s %s -> %d %s\n", kind, delivery.ID, delivery.Status, strings.TrimSpace(string(delivery.Body)))
	return err
}

func buildSamplePayload(kind string, opts *sendOptions) ([]byte, error) {
	now := time.Now().UTC()
	switch kind {
	case githubbridge.EventPush:
		return hookclient.BuildPushPayload(hookclient.PushSample{
			Branch:    opts.branch,
			CommitID:  opts.commit,
			Author:    opts.author,
			Timestamp: now,
		})
	case githubbridge.EventPullRequest:
		number := opts.number
		if number <= 0 {
			number = rand.IntN(9000) + 1000
		}
		return hookclient.BuildPullRequestPayload(hookclient.PullRequestSample{
			Action:    opts.prAction,
			Number:    number,
			Merged:    opts.merged,
			Author:    opts.author,
			Head:      opts.head,
			Base:      opts.base,
			Timestamp: now,
		})
	case githubbridge.EventPing:
		return hookclient.BuildPingPayload()
	default:
		return nil, fmt.Errorf("unsupported kind %q (want push, pull_request or ping)", kind)
	}
}
