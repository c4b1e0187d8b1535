package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rpggio/brewlog/internal/domain/bean"
	"github.com/rpggio/brewlog/internal/domain/brew"
	"github.com/rpggio/brewlog/internal/domain/confirm"
	"github.com/spf13/cobra"
)

func newBeanCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bean",
		Short: "Bean management commands",
	}

	cmd.AddCommand(newBeanAddCmd(opts))
	cmd.AddCommand(newBeanListCmd(opts))
	cmd.AddCommand(newBeanShowCmd(opts))
	cmd.AddCommand(newBeanRmCmd(opts))
	return cmd
}

func newBeanAddCmd(opts *rootOptions) *cobra.Command {
	var req bean.CreateRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a bean",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			b, err := a.Beans.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created bean %d (%s)\n", b.ID, b.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "bean name (required)")
	cmd.Flags().StringVar(&req.Shop, "shop", "", "where it was bought")
	cmd.Flags().StringVar(&req.Variety, "variety", "", "variety or origin")
	cmd.Flags().StringVar(&req.RoastDate, "roast-date", "", "roast date, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "free-form notes")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newBeanListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List beans",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			overview, err := a.Stats.Overview(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(overview.Beans) == 0 {
				fmt.Fprintln(out, "No beans found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSHOP\tROASTED\tBREWS\tLAST BREW")
			for _, card := range overview.Beans {
				b := card.Bean
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
					b.ID, truncate(b.Name, 32), orDash(b.Shop), orDash(b.RoastDate), card.BrewCount, orDash(card.LastBrew))
			}
			return w.Flush()
		},
	}
}

func newBeanShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a bean and its brews",
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

			ctx := cmd.Context()
			b, found, err := a.Beans.Get(ctx, id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("bean %d not found", id)
			}
			recs, err := a.Brews.List(ctx, brew.ListOptions{BeanID: &id})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:       %d\n", b.ID)
			fmt.Fprintf(out, "Name:     %s\n", b.Name)
			fmt.Fprintf(out, "Shop:     %s\n", orDash(b.Shop))
			fmt.Fprintf(out, "Variety:  %s\n", orDash(b.Variety))
			fmt.Fprintf(out, "Roasted:  %s\n", orDash(b.RoastDate))
			fmt.Fprintf(out, "Added:    %s\n", orDash(b.CreatedDate))
			if b.Notes != "" {
				fmt.Fprintf(out, "Notes:    %s\n", b.Notes)
			}
			fmt.Fprintln(out)

			if len(recs) == 0 {
				fmt.Fprintln(out, "No brews yet.")
				return nil
			}
			return writeBrewTable(out, recs)
		},
	}
}

func newBeanRmCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a bean and all of its brews",
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

			ctx := cmd.Context()
			b, found, err := a.Beans.Get(ctx, id)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("bean %d not found", id)
			}
			recs, err := a.Brews.List(ctx, brew.ListOptions{BeanID: &id})
			if err != nil {
				return err
			}

			label := fmt.Sprintf("bean %q and its %d brewing record(s)", b.Name, len(recs))
			return confirmDelete(cmd, a, confirm.KindBean, id, label)
		},
	}
}
