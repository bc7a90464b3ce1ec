package main

import (
	"encoding/json"
	"log/slog"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/johnwards/colombomap/internal/filter"
	"github.com/johnwards/colombomap/internal/geo"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export listings",
}

var exportGeoJSONFilters filterFlags

var exportGeoJSONCmd = &cobra.Command{
	Use:   "geojson",
	Short: "Write the filtered listings as a GeoJSON FeatureCollection to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, c, err := exportGeoJSONFilters.criteria(cmd)
		if err != nil {
			return err
		}

		a, err := openApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		records := filter.Apply(a.catalog.Records(d), c)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(geo.ToFeatureCollection(records)); err != nil {
			return eris.Wrap(err, "encode geojson")
		}
		slog.Debug("exported geojson", "dataset", d, "features", len(records))
		return nil
	},
}

func init() {
	exportGeoJSONFilters.register(exportGeoJSONCmd)
	exportCmd.AddCommand(exportGeoJSONCmd)
	rootCmd.AddCommand(exportCmd)
}
