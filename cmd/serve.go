package cmd

import (
	"github.com/spf13/cobra"

	"github.com/audiomood/moodscan/analysis"
	"github.com/audiomood/moodscan/api"
	"github.com/audiomood/moodscan/features"
	"github.com/audiomood/moodscan/store"
)

var (
	serveAddr string
	serveDB   string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8000", "listen address")
	serveCmd.Flags().StringVar(&serveDB, "db", "moodscan.db", "sqlite database path")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		extractor, err := features.NewExtractor(analysis.NewPipeline(nil), nil)
		if err != nil {
			return err
		}

		db, err := store.Open(serveDB)
		if err != nil {
			return err
		}
		defer db.Close()

		return api.NewServer(extractor, db).ListenAndServe(serveAddr)
	},
}
