package cmd

import (
	"github.com/spf13/cobra"

	"github.com/audiomood/moodscan/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "moodscan",
	Short: "Perceptual audio feature scoring",
	Long: `moodscan derives five perceptual descriptors from an audio file:
energy, danceability, tempo, acousticness, and valence.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(logging.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
