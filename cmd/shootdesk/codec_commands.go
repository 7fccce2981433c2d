package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shootdesk/internal/naming"
	"shootdesk/internal/roomtype"
	"shootdesk/internal/sidecar"
)

func newParseCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "parse <filename...>",
		Short:       "Decode capture filenames into their components",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range args {
				if final, ok := naming.ParseFinalFilename(name); ok {
					if jsonOut {
						if err := writeJSON(cmd, final); err != nil {
							return err
						}
						continue
					}
					fmt.Fprintf(out, "%s: final image\n", name)
					fmt.Fprintf(out, "  date:    %s\n", final.Date)
					fmt.Fprintf(out, "  shoot:   %s\n", final.ShootCode)
					fmt.Fprintf(out, "  room:    %s\n", final.Room)
					fmt.Fprintf(out, "  index:   %d\n", final.Index)
					fmt.Fprintf(out, "  version: %d\n", final.Version)
					continue
				}
				if raw, ok := naming.ParseRawFrameFilename(name); ok {
					if jsonOut {
						if err := writeJSON(cmd, raw); err != nil {
							return err
						}
						continue
					}
					fmt.Fprintf(out, "%s: raw bracket frame\n", name)
					fmt.Fprintf(out, "  date:    %s\n", raw.Date)
					fmt.Fprintf(out, "  shoot:   %s\n", raw.ShootCode)
					fmt.Fprintf(out, "  room:    %s\n", raw.Room)
					fmt.Fprintf(out, "  index:   %d\n", raw.Index)
					fmt.Fprintf(out, "  group:   %d\n", raw.StackNumber)
					fmt.Fprintf(out, "  ev:      %+d\n", raw.EV)
					fmt.Fprintf(out, "  ext:     %s\n", raw.Extension)
					continue
				}
				fmt.Fprintf(out, "%s: not a capture-pipeline filename\n", name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newAltTextCommand() *cobra.Command {
	var orientationFlag string

	cmd := &cobra.Command{
		Use:         "alttext <room-type>",
		Short:       "Generate the German caption for a room type",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.TrimSpace(args[0])
			if !roomtype.Known(label) {
				return fmt.Errorf("unknown room type %q (see `shootdesk rooms` for the catalog)", label)
			}
			orientation := sidecar.Orientation(strings.ToLower(strings.TrimSpace(orientationFlag)))
			if orientation != "" && !orientation.Known() {
				return fmt.Errorf("orientation must be front, side, or back")
			}
			fmt.Fprintln(cmd.OutOrStdout(), sidecar.GenerateGermanAltText(label, orientation))
			return nil
		},
	}

	cmd.Flags().StringVarP(&orientationFlag, "orientation", "o", "", "Subject orientation: front, side, or back")
	return cmd
}

func newRoomsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "rooms",
		Short:       "List the room-type catalog and its filename tokens",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := roomtype.Labels()
			rows := make([][]string, 0, len(labels))
			for _, label := range labels {
				rows = append(rows, []string{label, roomtype.Normalize(label)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Room type", "Token"}, rows, nil))
			return nil
		},
	}
}
