package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"shootdesk/internal/roomtype"
	"shootdesk/internal/session"
)

func newCountersCommand(ctx *commandContext) *cobra.Command {
	countersCmd := &cobra.Command{
		Use:   "counters",
		Short: "Inspect and override the session counters",
	}

	countersCmd.AddCommand(newCountersShowCommand(ctx))
	countersCmd.AddCommand(newSetIndexCommand(ctx))
	countersCmd.AddCommand(newSetVersionCommand(ctx))

	return countersCmd
}

func newCountersShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current index and version counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *session.Store) error {
				sess, err := ctx.resolveSession(cmd.Context(), store)
				if err != nil {
					return err
				}
				review, err := store.LoadReview(cmd.Context(), sess.ID, ctx.ensureLogger())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"Room token", "Last index"},
					snapshotRows(review.Indexes().Snapshot()),
					[]columnAlignment{alignLeft, alignRight},
				))
				fmt.Fprintln(out, renderTable(
					[]string{"Subject", "Last version"},
					snapshotRows(review.Versions().Snapshot()),
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func snapshotRows(snapshot map[string]int) [][]string {
	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, strconv.Itoa(snapshot[key])})
	}
	return rows
}

// set-index exists for resume scenarios where numbering must continue from
// a known point, for example after importing an externally renamed batch.
func newSetIndexCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-index <room-type> <value>",
		Short: "Force the last-issued index for a room type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index value %q is not a number", args[1])
			}
			return ctx.withReview(cmd, func(_ context.Context, review *session.Review, _ *session.Store) error {
				token := roomtype.Normalize(args[0])
				review.Indexes().SetIndex(token, value)
				fmt.Fprintf(cmd.OutOrStdout(), "Index for %s set to %d\n", token, value)
				return nil
			})
		},
	}
}

func newSetVersionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-version <base-name> <value>",
		Short: "Force the last-issued version for a subject base name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("version value %q is not a number", args[1])
			}
			return ctx.withReview(cmd, func(_ context.Context, review *session.Review, _ *session.Store) error {
				review.Versions().SetVersion(args[0], value)
				fmt.Fprintf(cmd.OutOrStdout(), "Version for %s set to %d\n", args[0], value)
				return nil
			})
		},
	}
}
