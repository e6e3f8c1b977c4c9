package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"commutr/internal/stats"
)

var statsBus string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print average commute statistics",
	Long: `Print per-bucket (morning/evening) average commute statistics.

By default every commute counts, using the persisted totals. With --bus
only commutes riding that bus count, and the durations are recomputed for
that leg alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := openLog().ReadAll()
		if err != nil {
			return err
		}

		settings, err := openSettings()
		if err != nil {
			return err
		}
		defer settings.Close()

		filter := statsBus
		if filter == "" {
			filter = stats.FilterTotal
		}
		rep := stats.Compute(rows, stats.Options{
			Filter:        filter,
			UnknownBucket: settings.UnknownBucket(),
		})

		fmt.Printf("Morning commute (averages, %s):\n%s\n\n", filter, rep.Morning.Format())
		fmt.Printf("Evening commute (averages, %s):\n%s\n", filter, rep.Evening.Format())

		if moving, waiting, stopped, ok := rep.TimeSplit(); ok {
			fmt.Printf("\nTime split: moving %ds, waiting %ds, stopped %ds\n", moving, waiting, stopped)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsBus, "bus", "", "only count commutes riding this bus")
	rootCmd.AddCommand(statsCmd)
}
