package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"go-restaurant-pos/internal/export"
	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/store"

	"github.com/spf13/cobra"
)

func (cli *CLI) newReportCmd() *cobra.Command {
	var (
		date   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and archive the rolling sales report ending on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q (text or json)", format)
			}

			a, err := cli.application()
			if err != nil {
				return err
			}

			report, err := a.Reports.Generate(cmd.Context(), date)
			if err != nil && report.ID == "" {
				return err
			}
			if err != nil {
				// Not archived, still worth printing
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}

			if format == "json" {
				enc := json.NewEncoder(cli.out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return export.WriteReportText(cli.out, report, a.Config.Shop)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Selected date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

func (cli *CLI) newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Browse the archive of generated reports",
	}
	cmd.AddCommand(cli.newReportsListCmd())
	cmd.AddCommand(cli.newReportsExportCmd())
	return cmd
}

func (cli *CLI) newReportsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived reports in generation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cli.application()
			if err != nil {
				return err
			}

			reports, err := a.Reports.History(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSELECTED\tGENERATED\tORDERS\tSALES")
			for _, r := range reports {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					r.ID, r.SelectedDate, r.GeneratedAt.Format("2006-01-02 15:04"), r.TotalOrders, r.TotalSales.StringFixed(2))
			}
			return w.Flush()
		},
	}
}

func (cli *CLI) newReportsExportCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export <report-id>",
		Short: "Export an archived report as text or xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "txt" && format != "xlsx" {
				return fmt.Errorf("unknown format %q (txt or xlsx)", format)
			}

			a, err := cli.application()
			if err != nil {
				return err
			}

			report, err := a.Reports.Find(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no archived report with id %s", args[0])
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = export.ReportFilename(report.GeneratedAt, format)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if format == "xlsx" {
				err = export.WriteReportXLSX(f, report, a.Config.Shop)
			} else {
				err = export.WriteReportText(f, report, a.Config.Shop)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cli.out, "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "txt", "Export format: txt or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default Sales_Report_<timestamp>.<format>)")
	return cmd
}

func (cli *CLI) newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage the order ledger",
	}
	cmd.AddCommand(cli.newOrdersImportCmd())
	return cmd
}

func (cli *CLI) newOrdersImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <orders.json>",
		Short: "Import orders exported from the browser app's \"orders\" storage key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var orders []models.Order
			if err := json.Unmarshal(raw, &orders); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			a, err := cli.application()
			if err != nil {
				return err
			}

			n, err := a.Orders.Import(cmd.Context(), orders)
			fmt.Fprintf(cli.out, "imported %d of %d orders\n", n, len(orders))
			return err
		},
	}
}
