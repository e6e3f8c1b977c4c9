package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"commutr/internal/history"
	"commutr/internal/store"
	"commutr/internal/tui"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:   "commutr",
	Short: "Log and analyze your bus commute",
	Long: `commutr records a bus commute event by event (start, board, unboard,
red light, green light, end), keeps every completed commute in an
append-only CSV log, and derives morning/evening statistics from it.

Run without arguments for the interactive recorder; the subcommands give
the same history, statistics, and export without a full screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := openSettings()
		if err != nil {
			return err
		}
		defer settings.Close()

		app := tui.NewApp(settings, openLog())
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the commute log and settings (default: per-OS config dir)")
}

func openLog() *history.Store {
	if dataDir != "" {
		return history.NewStore(filepath.Join(dataDir, "commute_log.csv"))
	}
	path, err := history.DefaultLogPath()
	if err != nil {
		// No resolvable config dir; fall back to the working directory.
		path = "commute_log.csv"
	}
	return history.NewStore(path)
}

func openSettings() (*store.Store, error) {
	if dataDir != "" {
		return store.New(filepath.Join(dataDir, "commutr.db"))
	}
	path, err := store.DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return store.New(path)
}
