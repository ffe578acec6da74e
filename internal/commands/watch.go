package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/db"
	"github.com/dailyroll/dailyroll/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the automation loop",
	Long: `Run in the foreground, firing the scheduled jobs: applying penalties
when a day ends, rolling the new day's plan if auto-roll is on, and
taking database backups. Stop with Ctrl-C.`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		settingsStore := db.NewSettingsStore(db.DB)
		settings, err := settingsStore.Get()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		mgr, err := newBackupManager(settings.BackupKeepLocalCount)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		logger := log.New(os.Stderr, "", log.LstdFlags)
		sched := scheduler.New(svc, settingsStore, mgr, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println("👁️  Watching. Jobs run at their configured times; Ctrl-C to stop.")
		if err := sched.Run(ctx); err != nil && err != context.Canceled {
			fmt.Printf("Error: %v\n", err)
		}
	},
}
