package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"commutr/internal/export"
	"commutr/internal/history"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the commute log",
	Long: `Export the commute log as CSV or JSON.

The CSV export is a byte-identical copy of the stored log. The JSON export
restructures each row but keeps every field verbatim.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := openLog()
		if !log.Exists() {
			fmt.Println(history.NoData)
			return nil
		}

		out := exportOut
		switch exportFormat {
		case "csv":
			if out == "" {
				out = export.DefaultPath("csv")
			}
			if err := export.ToCSV(log, out); err != nil {
				return err
			}
		case "json":
			rows, err := log.ReadAll()
			if err != nil {
				return err
			}
			if out == "" {
				out = export.DefaultPath("json")
			}
			if err := export.ToJSON(rows, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q (want csv or json)", exportFormat)
		}

		fmt.Println("Exported to " + out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv or json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default: ~/commute-log-<date>.<ext>)")
	rootCmd.AddCommand(exportCmd)
}
