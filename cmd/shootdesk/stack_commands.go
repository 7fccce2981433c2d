package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shootdesk/internal/session"
)

func newStacksCommand(ctx *commandContext) *cobra.Command {
	var addCount int
	var addPreview string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stacks",
		Short: "List the session's stacks in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addCount > 0 {
				return ctx.withReview(cmd, func(_ context.Context, review *session.Review, _ *session.Store) error {
					stack, err := review.AddStack(addCount, addPreview)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Added stack %s at position %d\n", stack.ID, stack.OrderIndex)
					return nil
				})
			}
			return ctx.withStore(func(store *session.Store) error {
				sess, err := ctx.resolveSession(cmd.Context(), store)
				if err != nil {
					return err
				}
				review, err := store.LoadReview(cmd.Context(), sess.ID, ctx.ensureLogger())
				if err != nil {
					return err
				}
				stacks := review.Stacks()
				if jsonOut {
					return writeJSON(cmd, stacks)
				}
				if len(stacks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No stacks yet; add one with `shootdesk stacks --add <count>`")
					return nil
				}
				rows := make([][]string, 0, len(stacks))
				for _, stack := range stacks {
					rows = append(rows, []string{
						strconv.Itoa(stack.OrderIndex),
						stack.ID,
						strconv.Itoa(stack.ImageCount),
						dash(stack.RoomType),
						yesNo(stack.MarkedForDeletion),
						yesNo(stack.FlaggedUncertain),
						yesNo(stack.Selected),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStackTable(
					[]string{"#", "ID", "Frames", "Room", "Delete", "Uncertain", "Selected"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignCenter, alignCenter, alignCenter},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&addCount, "add", 0, "Add a stack with the given exposure count instead of listing")
	cmd.Flags().StringVar(&addPreview, "preview-ref", "", "Preview image reference for the added stack")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newMoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a stack to a new display position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("source position %q is not a number", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("target position %q is not a number", args[1])
			}
			return ctx.withReview(cmd, func(_ context.Context, review *session.Review, _ *session.Store) error {
				if err := review.MoveStack(from, to); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved stack from %d to %d\n", from, to)
				return nil
			})
		},
	}
}

func newAssignCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <room-type> [stack...]",
		Short: "Assign a room type to stacks (positions, IDs, or the current selection)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.TrimSpace(args[0])
			return ctx.withReview(cmd, func(_ context.Context, review *session.Review, _ *session.Store) error {
				ids, err := resolveStackIDs(review, args[1:])
				if err != nil {
					return err
				}
				if err := review.AssignRoomType(ids, label); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Assigned %q to %d stack(s)\n", label, len(ids))
				return nil
			})
		},
	}
}

func newMarkCommand(ctx *commandContext) *cobra.Command {
	markCmd := &cobra.Command{
		Use:   "mark",
		Short: "Toggle stack flags",
	}

	markCmd.AddCommand(&cobra.Command{
		Use:   "delete [stack...]",
		Short: "Toggle the deletion mark (marked stacks are excluded from export)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withReview(cmd, func(_ context.Context, review *session.Review, _ *session.Store) error {
				ids, err := resolveStackIDs(review, args)
				if err != nil {
					return err
				}
				if err := review.ToggleDeletion(ids...); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Toggled deletion mark on %d stack(s)\n", len(ids))
				return nil
			})
		},
	})
	markCmd.AddCommand(&cobra.Command{
		Use:   "uncertain [stack...]",
		Short: "Toggle the uncertainty flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withReview(cmd, func(_ context.Context, review *session.Review, _ *session.Store) error {
				ids, err := resolveStackIDs(review, args)
				if err != nil {
					return err
				}
				if err := review.ToggleUncertain(ids...); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Toggled uncertainty flag on %d stack(s)\n", len(ids))
				return nil
			})
		},
	})

	return markCmd
}

func newSelectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "select <stack...>",
		Short: "Select stacks for a subsequent bulk operation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withReview(cmd, func(_ context.Context, review *session.Review, _ *session.Store) error {
				ids, err := resolveStackIDs(review, args)
				if err != nil {
					return err
				}
				if err := review.Select(ids...); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Selected %d stack(s)\n", len(ids))
				return nil
			})
		},
	}
}

func newDeselectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deselect [stack...]",
		Short: "Clear the selection flag (all selected stacks when no arguments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withReview(cmd, func(_ context.Context, review *session.Review, _ *session.Store) error {
				ids := args
				if len(ids) == 0 {
					ids = review.SelectedIDs()
					if len(ids) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "Nothing selected")
						return nil
					}
				} else {
					resolved, err := resolveStackIDs(review, ids)
					if err != nil {
						return err
					}
					ids = resolved
				}
				if err := review.Deselect(ids...); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deselected %d stack(s)\n", len(ids))
				return nil
			})
		},
	}
}
