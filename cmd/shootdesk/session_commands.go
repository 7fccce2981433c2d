package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shootdesk/internal/session"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Manage capture-review sessions",
	}

	sessionCmd.AddCommand(newSessionNewCommand(ctx))
	sessionCmd.AddCommand(newSessionListCommand(ctx))
	sessionCmd.AddCommand(newSessionShowCommand(ctx))
	sessionCmd.AddCommand(newSessionResetCommand(ctx))
	sessionCmd.AddCommand(newSessionDeleteCommand(ctx))

	return sessionCmd
}

func newSessionNewCommand(ctx *commandContext) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "new <shoot-code>",
		Short: "Create a new session for a shoot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shootCode := strings.ToUpper(strings.TrimSpace(args[0]))
			shootDate := strings.TrimSpace(dateFlag)
			if shootDate == "" {
				shootDate = time.Now().Format("2006-01-02")
			}
			return ctx.withStore(func(store *session.Store) error {
				sess, err := store.CreateSession(cmd.Context(), shootCode, shootDate)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created session %s (%s, %s)\n", sess.ID, sess.ShootCode, sess.ShootDate)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Shoot date as YYYY-MM-DD (defaults to today)")
	return cmd
}

func newSessionListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *session.Store) error {
				sessions, err := store.ListSessions(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, sessions)
				}
				if len(sessions) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No sessions yet")
					return nil
				}
				rows := make([][]string, 0, len(sessions))
				for _, sess := range sessions {
					committed := "-"
					if sess.CommittedAt != nil {
						committed = sess.CommittedAt.Local().Format("2006-01-02 15:04")
					}
					rows = append(rows, []string{
						sess.ID,
						sess.ShootCode,
						sess.ShootDate,
						sess.UpdatedAt.Local().Format("2006-01-02 15:04"),
						committed,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Shoot", "Date", "Updated", "Committed"},
					rows, nil,
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newSessionShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active session",
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
				fmt.Fprintf(out, "Session:   %s\n", sess.ID)
				fmt.Fprintf(out, "Shoot:     %s (%s)\n", sess.ShootCode, sess.ShootDate)
				fmt.Fprintf(out, "Stacks:    %d\n", review.Len())
				fmt.Fprintf(out, "Committed: %s\n", yesNo(sess.CommittedAt != nil))
				return nil
			})
		},
	}
}

// session reset clears the counters so a fresh numbering pass can start
// without recreating the stacks.
func newSessionResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the active session's counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withReview(cmd, func(_ context.Context, review *session.Review, _ *session.Store) error {
				review.Indexes().Reset()
				review.Versions().Reset()
				fmt.Fprintln(cmd.OutOrStdout(), "Counters reset")
				return nil
			})
		},
	}
}

func newSessionDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session and its stacks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *session.Store) error {
				removed, err := store.DeleteSession(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("session %s does not exist", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
				return nil
			})
		},
	}
}
