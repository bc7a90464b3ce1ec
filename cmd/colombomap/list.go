package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/johnwards/colombomap/internal/domain"
	"github.com/johnwards/colombomap/internal/filter"
	"github.com/johnwards/colombomap/internal/format"
)

var listFilters filterFlags

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the filtered listings as a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, c, err := listFilters.criteria(cmd)
		if err != nil {
			return err
		}

		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		records := filter.Apply(a.catalog.Records(d), c)
		return eris.Wrap(writeTable(cmd, d, records), "write table")
	},
}

func init() {
	listFilters.register(listCmd)
	rootCmd.AddCommand(listCmd)
}

func writeTable(cmd *cobra.Command, d domain.Dataset, records []*domain.Property) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if d == domain.DatasetLaunches {
		fmt.Fprintln(tw, "ID\tNAME\tAREA\tPRICE\tBEDROOMS\tCOMPLETION")
		for _, p := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ID, p.Name, format.Placeholder(p.Area), format.PriceRange(p),
				format.Bedrooms(p.Bedrooms), format.Int(p.CompletionYearOrExpected()))
		}
	} else {
		fmt.Fprintln(tw, "ID\tNAME\tAREA\tSTATUS\tFLOORS\tUNITS")
		for _, p := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ID, p.Name, p.Area, p.Status, format.Int(p.Floors), format.Int(p.Units))
		}
	}
	fmt.Fprintln(tw, format.Count(len(records), "listing", "listings"))
	return tw.Flush()
}
