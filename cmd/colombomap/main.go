package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/johnwards/colombomap/internal/config"
	"github.com/johnwards/colombomap/internal/logging"
)

var (
	cfg      *config.Config
	envFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "colombomap",
	Short: "Colombo condominium map and new-launch directory",
	Long:  "Serves the Colombo condominium map, master index and new property launch pages, and exports the listing fixtures as GeoJSON or tables.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(envFiles...)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		if err := logging.Setup(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load instead of ./.env")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
