package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rpggio/brewlog/internal/domain/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize scores across all brews",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.Stats.Report(cmd.Context())
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report)
		},
	}
}

func writeReport(out io.Writer, r stats.Report) error {
	if r.TotalRecords == 0 {
		fmt.Fprintln(out, "No brews logged yet.")
		return nil
	}

	fmt.Fprintf(out, "Brews:          %d\n", r.TotalRecords)
	fmt.Fprintf(out, "Overall mean:   %s\n", r.Overall)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Overall score distribution")
	for i, n := range r.Distribution {
		fmt.Fprintf(out, "  %d  %-20s %d\n", i+1, strings.Repeat("#", min(n, 20)), n)
	}

	sections := []struct {
		title  string
		groups []stats.Group
	}{
		{"By method", r.ByMethod},
		{"By equipment", r.ByEquipment},
		{"By bean", r.ByBean},
	}
	for _, sec := range sections {
		if len(sec.groups) == 0 {
			continue
		}
		fmt.Fprintln(out)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\tBREWS\tMEAN\n", strings.ToUpper(sec.title))
		for _, g := range sec.groups {
			fmt.Fprintf(w, "%s\t%d\t%s\n", g.Key, g.Records, g.Mean)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	for _, s := range r.TimeSeries {
		if len(s.Points) < 2 {
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s over time\n", s.BeanName)
		for _, p := range s.Points {
			fmt.Fprintf(out, "  %s  %d\n", p.Date, p.Overall)
		}
	}
	return nil
}
