package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"offertetool/config"
	"offertetool/services"
)

func registerCommands(app *pocketbase.PocketBase, cfg *config.Config, quotes *services.QuoteService, projects *services.ProjectService, books *services.PriceBookService) {
	// Commands run without OnServe, so the schema is prepared here.
	prepareRun := func(cmd *cobra.Command, args []string) error {
		return prepare(app, cfg, nil)
	}

	recalcCmd := &cobra.Command{
		Use:     "herbereken",
		Short:   "Recalculates every stored quote with the current reference data.",
		PreRunE: prepareRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := quotes.RecalculateAll()
			fmt.Fprintf(cmd.OutOrStdout(), "%d offertes herberekend\n", done)
			return err
		},
	}

	nacalcCmd := &cobra.Command{
		Use:     "nacalculatie <project>",
		Short:   "Prints the deviation report of a project.",
		Args:    cobra.ExactArgs(1),
		PreRunE: prepareRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			persist, _ := cmd.Flags().GetBool("opslaan")
			r, err := projects.Nacalculatie(args[0], persist)
			if err != nil {
				return err
			}
			printNacalculatie(cmd.OutOrStdout(), r)
			return nil
		},
	}
	nacalcCmd.Flags().Bool("opslaan", false, "store the report as a snapshot")

	importCmd := &cobra.Command{
		Use:     "prijsboek-import <eigenaar> <bestand>",
		Short:   "Imports a .csv or .xlsx price book for an owner.",
		Args:    cobra.ExactArgs(2),
		PreRunE: prepareRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, path := args[0], args[1]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := books.Import(owner, f, filepath.Base(path))
			if errors.Is(err, services.ErrImportRejected) {
				red := color.New(color.FgRed)
				for _, e := range res.Errors {
					red.Fprintf(cmd.ErrOrStderr(), "rij %d, %s: %s\n", e.Row, e.Field, e.Message)
				}
				return fmt.Errorf("%d van %d rijen ongeldig, niets geïmporteerd", res.ErrorRows, res.TotalRows)
			}
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%d producten geïmporteerd voor %s\n", res.Imported, owner)
			return nil
		},
	}

	app.RootCmd.AddCommand(recalcCmd, nacalcCmd, importCmd)
}

func statusColor(s services.DeviationStatus) *color.Color {
	switch s {
	case services.StatusGood:
		return color.New(color.FgGreen)
	case services.StatusWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func insightColor(t services.InsightType) *color.Color {
	switch t {
	case services.InsightSuccess:
		return color.New(color.FgGreen)
	case services.InsightWarning:
		return color.New(color.FgYellow)
	case services.InsightCritical:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgCyan)
	}
}

func printNacalculatie(out io.Writer, r services.NacalculatieReport) {
	fmt.Fprintf(out, "Gepland:    %s\n", services.FormatHours(r.PlannedHours))
	fmt.Fprintf(out, "Werkelijk:  %s (%d dagen, %d medewerkers)\n", services.FormatHours(r.ActualHours), r.ActualDays, r.Workers)
	fmt.Fprintf(out, "Afwijking:  %s ", services.FormatPercent(r.DeviationPercent))
	statusColor(r.Status).Fprintln(out, r.Status)
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SCOPE\tGEPLAND\tWERKELIJK\tAFWIJKING\tSTATUS")
	for _, s := range r.Scopes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.Scope.Label(),
			services.FormatHours(s.PlannedHours),
			services.FormatHours(s.ActualHours),
			services.FormatPercent(s.DeviationPercent),
			statusColor(s.Status).Sprint(s.Status),
		)
	}
	w.Flush()

	if len(r.Insights) > 0 {
		fmt.Fprintln(out)
	}
	for _, in := range r.Insights {
		insightColor(in.Type).Fprintf(out, "• %s\n", in.Title)
		fmt.Fprintf(out, "  %s\n", in.Description)
	}
}
