package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"commutr/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the commute history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := openLog().ReadAll()
		if err != nil {
			return err
		}
		fmt.Println(history.Render(rows))
		return nil
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Delete the last logged commute",
	RunE: func(cmd *cobra.Command, args []string) error {
		deleted, err := openLog().DeleteLast()
		if err != nil {
			return err
		}
		if deleted {
			fmt.Println("Last entry deleted.")
		} else {
			fmt.Println("Nothing to delete.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(undoCmd)
}
