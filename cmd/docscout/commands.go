package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/csheth/docscout/internal/render"
	"github.com/csheth/docscout/internal/session"
)

// --- ask ---

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask --file PATH QUESTION...",
		Short: "Ask one question about a document and print the answer",
		Long: `Upload a document with a single question and print the backend's answer.

The command exits non-zero when the file is rejected, the question is empty,
or the backend reports a failure.

Examples:
  docscout ask --file ./report.pdf "What is the total?"
  docscout ask --file ./ledger.csv Which month had the highest spend?`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.bootstrap(logToStderr)
			if err != nil {
				return err
			}
			defer a.close()

			out := newPrinter(cmd)
			if opts.file != "" {
				if _, err := a.session.StagePath(opts.file); err != nil {
					out.notices(err)
					return err
				}
			}
			a.session.SetQuestion(strings.Join(args, " "))

			err = a.session.Submit(cmd.Context())
			snap := a.session.Snapshot()
			switch {
			case err == nil:
				fmt.Fprintln(cmd.OutOrStdout(), snap.Answer)
				return nil
			case snap.State == session.Error:
				out.failure("%s", snap.Answer)
			default:
				out.notices(err)
			}
			return err
		},
	}
}

// --- health ---

const healthTimeout = 15 * time.Second

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.bootstrap(logToStderr)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
			defer cancel()

			out := newPrinter(cmd)
			if err := a.client.Health(ctx); err != nil {
				out.failure("%s", render.NoticeBackendDown.Text)
				return fmt.Errorf("backend %s: %w", a.client.BaseURL(), err)
			}
			out.success("%s (%s)", render.NoticeBackendUp.Text, a.client.BaseURL())
			return nil
		},
	}
}
