package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rpggio/brewlog/internal/app"
	"github.com/rpggio/brewlog/internal/domain/confirm"
	"github.com/rpggio/brewlog/internal/domain/pour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// confirmDelete issues a token for the deletion and redeems it only after an
// explicit "y" read from the command's input. There is no flag to skip the
// question. A declined token is cancelled so it can't be redeemed later.
func confirmDelete(cmd *cobra.Command, a *app.App, kind confirm.Kind, id int64, label string) error {
	tok, err := a.Confirm.Request(kind, id, label)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()
	if isTerminal(in) {
		fmt.Fprintf(out, "Delete %s? This cannot be undone. [y/N]: ", label)
	}
	if !readYes(in) {
		a.Confirm.Cancel(tok.ID)
		fmt.Fprintln(out, "Aborted; nothing was deleted.")
		return nil
	}

	if _, err := a.Confirm.Confirm(cmd.Context(), tok.ID); err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted %s\n", label)
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func readYes(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// parseSchedule reads "40@0:00,60@0:30". A step without "@time" is placed 30
// seconds after the previous one, so "40,60,60" also works.
func parseSchedule(raw string) (pour.Schedule, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	steps := pour.Schedule{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		amountText, label, hasLabel := strings.Cut(part, "@")
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountText), 64)
		if err != nil {
			return nil, fmt.Errorf("pour step %q: amount is not a number", part)
		}
		if !hasLabel {
			if steps, err = steps.Append(amount); err != nil {
				return nil, fmt.Errorf("pour step %q: %w", part, err)
			}
			continue
		}
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, fmt.Errorf("pour step %q: time is empty", part)
		}
		steps = append(steps, pour.Step{WaterAmount: amount, Time: label})
	}
	return steps, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
