package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/domain/confirm"
	"github.com/rpggio/brewlog/internal/domain/pour"
	"github.com/rpggio/brewlog/internal/mcp"
	"github.com/spf13/cobra"
)

func newBrewCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brew",
		Short: "Brewing record commands",
	}

	cmd.AddCommand(newBrewAddCmd(opts))
	cmd.AddCommand(newBrewListCmd(opts))
	cmd.AddCommand(newBrewShowCmd(opts))
	cmd.AddCommand(newBrewRmCmd(opts))
	return cmd
}

type brewAddFlags struct {
	beanID       int64
	date         string
	grind        string
	coffee       float64
	temp         int
	brewTime     string
	method       string
	equipment    string
	addingWater  float64
	schedule     string
	scores       brew.Scores
	tastingNotes string
	improvements string
}

func newBrewAddCmd(opts *rootOptions) *cobra.Command {
	var f brewAddFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a brewing session",
		Long: "Logs a brewing session. The pour schedule is a comma separated list of " +
			"amount@time steps, for example --pour 40@0:00,60@0:30,60@1:00.",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd)
			if err != nil {
				return err
			}

			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := a.Brews.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logged brew %d for %s on %s\n", rec.ID, rec.BeanName, rec.BrewDate)
			if ratio, ok := rec.Ratio(); ok {
				fmt.Fprintf(out, "Ratio: %s (%sg water)\n", pour.FormatRatio(ratio), pour.FormatGrams(rec.TotalWater()))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&f.beanID, "bean", 0, "bean id (required)")
	flags.StringVar(&f.date, "date", "", "brew date, YYYY-MM-DD (default today)")
	flags.StringVar(&f.grind, "grind", "", "grinder clicks, or a description for non-numeric grinders")
	flags.Float64Var(&f.coffee, "coffee", mcp.DefaultCoffeeAmount, "coffee dose in grams")
	flags.IntVar(&f.temp, "temp", 0, "water temperature in °C")
	flags.StringVar(&f.brewTime, "time", "", "total brew time, e.g. 2:45")
	flags.StringVar(&f.method, "method", string(brew.MethodDrip), "brewing method")
	flags.StringVar(&f.equipment, "equipment", "", "brewer used")
	flags.Float64Var(&f.addingWater, "adding-water", 0, "water added after the pours, in grams")
	flags.StringVar(&f.schedule, "pour", "", "pour schedule, e.g. 40@0:00,60@0:30")
	flags.IntVar(&f.scores.Taste, "taste", 3, "taste score 1-5")
	flags.IntVar(&f.scores.Aroma, "aroma", 3, "aroma score 1-5")
	flags.IntVar(&f.scores.Body, "body", 3, "body score 1-5")
	flags.IntVar(&f.scores.Acidity, "acidity", 3, "acidity score 1-5")
	flags.IntVar(&f.scores.Overall, "overall", 3, "overall score 1-5")
	flags.StringVar(&f.tastingNotes, "notes", "", "tasting notes")
	flags.StringVar(&f.improvements, "improvements", "", "what to change next time")
	cmd.MarkFlagRequired("bean")
	return cmd
}

// request turns the flags into a create request. Flags left unset stay absent
// on the record rather than becoming zero.
func (f *brewAddFlags) request(cmd *cobra.Command) (brew.CreateRequest, error) {
	schedule, err := parseSchedule(f.schedule)
	if err != nil {
		return brew.CreateRequest{}, err
	}

	req := brew.CreateRequest{
		BeanID:       f.beanID,
		BrewDate:     f.date,
		Grind:        brew.ParseGrind(f.grind),
		CoffeeAmount: f.coffee,
		BrewTime:     f.brewTime,
		Method:       brew.NormalizeMethod(f.method),
		Equipment:    brew.NormalizeEquipment(f.equipment),
		PourSchedule: schedule,
		Scores:       f.scores,
		TastingNotes: f.tastingNotes,
		Improvements: f.improvements,
	}
	if cmd.Flags().Changed("temp") {
		temp := f.temp
		req.WaterTemp = &temp
	}
	if cmd.Flags().Changed("adding-water") {
		water := f.addingWater
		req.AddingWater = &water
	}
	return req, nil
}

func newBrewListCmd(opts *rootOptions) *cobra.Command {
	var beanID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List brewing records, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			var listOpts brew.ListOptions
			if cmd.Flags().Changed("bean") {
				listOpts.BeanID = &beanID
			}
			recs, err := a.Brews.List(cmd.Context(), listOpts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, "No brews found.")
				return nil
			}
			return writeBrewTable(out, recs)
		},
	}

	cmd.Flags().Int64Var(&beanID, "bean", 0, "only brews of this bean")
	return cmd
}

func newBrewShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one brewing record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, found, err := a.Brews.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("brew %d not found", id)
			}
			writeBrewDetail(cmd.OutOrStdout(), mcp.NewBrewResponse(*rec))
			return nil
		},
	}
}

func newBrewRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a brewing record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, found, err := a.Brews.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("brew %d not found", id)
			}

			label := fmt.Sprintf("brewing record %d (%s, %s)", rec.ID, rec.BeanName, orDash(rec.BrewDate))
			return confirmDelete(cmd, a, confirm.KindBrew, id, label)
		},
	}
}

func writeBrewTable(out io.Writer, recs []brew.Record) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tBEAN\tMETHOD\tGRIND\tCOFFEE\tRATIO\tOVERALL")
	for _, rec := range recs {
		ratio := "-"
		if r, ok := rec.Ratio(); ok {
			ratio = pour.FormatRatio(r)
		}
		overall := "-"
		if rec.Scores.Overall > 0 {
			overall = fmt.Sprintf("%d", rec.Scores.Overall)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%sg\t%s\t%s\n",
			rec.ID, orDash(rec.BrewDate), truncate(rec.BeanName, 24), orDash(string(rec.Method)),
			orDash(rec.Grind.String()), pour.FormatGrams(rec.CoffeeAmount), ratio, overall)
	}
	return w.Flush()
}

func writeBrewDetail(out io.Writer, resp mcp.BrewResponse) {
	rec := resp.Record
	fmt.Fprintf(out, "ID:          %d\n", rec.ID)
	fmt.Fprintf(out, "Bean:        %s (%d)\n", rec.BeanName, rec.BeanID)
	fmt.Fprintf(out, "Date:        %s\n", orDash(rec.BrewDate))
	fmt.Fprintf(out, "Method:      %s\n", orDash(string(rec.Method)))
	fmt.Fprintf(out, "Equipment:   %s\n", orDash(string(rec.Equipment)))
	fmt.Fprintf(out, "Grind:       %s\n", orDash(rec.Grind.String()))
	fmt.Fprintf(out, "Coffee:      %sg\n", pour.FormatGrams(rec.CoffeeAmount))
	if rec.WaterTemp != nil {
		fmt.Fprintf(out, "Water temp:  %d°C\n", *rec.WaterTemp)
	}
	fmt.Fprintf(out, "Brew time:   %s\n", orDash(rec.BrewTime))

	switch {
	case rec.ScheduleInvalid:
		fmt.Fprintln(out, "Pours:       (unreadable)")
	case rec.PourSchedule != nil:
		fmt.Fprintf(out, "Pours:       %s\n", orDash(resp.Preview))
		if rec.AddingWater != nil {
			fmt.Fprintf(out, "Added water: %sg\n", pour.FormatGrams(*rec.AddingWater))
		}
		fmt.Fprintf(out, "Total water: %sg\n", pour.FormatGrams(resp.TotalWater))
	}
	if resp.Ratio != nil {
		fmt.Fprintf(out, "Ratio:       %s\n", resp.RatioText)
	}

	s := rec.Scores
	fmt.Fprintf(out, "Scores:      taste %d, aroma %d, body %d, acidity %d, overall %d\n",
		s.Taste, s.Aroma, s.Body, s.Acidity, s.Overall)
	if rec.TastingNotes != "" {
		fmt.Fprintf(out, "Notes:       %s\n", rec.TastingNotes)
	}
	if rec.Improvements != "" {
		fmt.Fprintf(out, "Next time:   %s\n", rec.Improvements)
	}
}
