package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"shootdesk/internal/session"
)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func dash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// resolveStackIDs maps positional arguments to stack IDs. Each argument is
// either a display position (0-based, as shown by `shootdesk stacks`) or a
// full stack ID. An empty argument list falls back to the current selection.
func resolveStackIDs(review *session.Review, args []string) ([]string, error) {
	if len(args) == 0 {
		selected := review.SelectedIDs()
		if len(selected) == 0 {
			return nil, fmt.Errorf("no stacks given and none selected; pass positions or run `shootdesk select` first")
		}
		return selected, nil
	}

	stacks := review.Stacks()
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if position, err := strconv.Atoi(arg); err == nil {
			if position < 0 || position >= len(stacks) {
				return nil, fmt.Errorf("stack position %d out of range 0..%d", position, len(stacks)-1)
			}
			ids = append(ids, stacks[position].ID)
			continue
		}
		if _, ok := review.Stack(arg); !ok {
			return nil, fmt.Errorf("no stack with ID or position %q", arg)
		}
		ids = append(ids, arg)
	}
	return ids, nil
}
