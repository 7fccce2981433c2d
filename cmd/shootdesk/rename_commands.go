package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shootdesk/internal/export"
	"shootdesk/internal/session"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the final filenames without committing",
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
				planned, err := review.PreviewFilenames()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, planned)
				}
				if !stdoutIsTerminal() {
					for _, entry := range planned {
						fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", entry.OrderIndex, entry.Filename)
					}
					return nil
				}
				rows := make([][]string, 0, len(planned))
				for _, entry := range planned {
					name := entry.Filename
					switch {
					case entry.IsDeletionMarked:
						name = "(marked for deletion)"
					case entry.MissingRoom:
						name = "(no room assigned)"
					}
					rows = append(rows, []string{
						strconv.Itoa(entry.OrderIndex),
						dash(entry.RoomType),
						name,
						yesNo(entry.IsUncertain),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStackTable(
					[]string{"#", "Room", "Planned filename", "Uncertain"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignCenter},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newCommitCommand(ctx *commandContext) *cobra.Command {
	var skipExport bool

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit the previewed renaming and write export artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withReview(cmd, func(cmdCtx context.Context, review *session.Review, store *session.Store) error {
				plan, err := review.ApplyRenaming(cmdCtx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Committed %d file(s)\n", len(plan.Entries))

				if skipExport {
					return nil
				}
				planner := export.NewPlanner(cfg, ctx.ensureLogger())
				deliverables, err := planner.BuildDeliverables(review, plan)
				if err != nil {
					return err
				}
				storage := export.NewLocalDirectory(cfg.Paths.ExportDir, cfg.Export.OverwriteExisting)
				if err := planner.WriteArtifacts(cmdCtx, storage, plan, deliverables); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Export artifacts written to %s\n", cfg.Paths.ExportDir)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&skipExport, "no-export", false, "Commit counters only, skip writing export artifacts")
	return cmd
}
