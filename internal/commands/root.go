package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/db"
	"github.com/dailyroll/dailyroll/internal/engine"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dailyroll",
	Short: "A gamified daily task ledger",
	Long: `dailyroll turns your task list into a daily game: roll a plan each
morning, earn points for finishing tasks and habits, and take penalties
for days you skip. Your score accumulates day over day.`,
}

// initDB initializes the database and panics on error
func initDB() {
	if err := db.Initialize(); err != nil {
		panic(err)
	}
}

// newService builds the engine on the global database handle
func newService() *engine.Service {
	return engine.NewService(
		db.NewTaskStore(db.DB),
		db.NewLedgerStore(db.DB),
		db.NewSettingsStore(db.DB),
		db.NewRestDayStore(db.DB),
		db.NewGoalStore(db.DB),
	)
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dailyroll %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(finalizeCmd)
	rootCmd.AddCommand(pointsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(projectionCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(restCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
