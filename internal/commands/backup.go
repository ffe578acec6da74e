package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/backup"
	"github.com/dailyroll/dailyroll/internal/db"
)

// newBackupManager builds the manager next to the live database file.
func newBackupManager(keep int) (*backup.Manager, error) {
	path, err := db.DatabasePath()
	if err != nil {
		return nil, err
	}
	return backup.New(path, filepath.Join(filepath.Dir(path), "backups"), keep), nil
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the database now",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		settings, err := db.NewSettingsStore(db.DB).Get()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		mgr, err := newBackupManager(settings.BackupKeepLocalCount)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		path, err := mgr.Run()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("💾 Backup written: %s\n", path)
	},
}

var backupListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List backups",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		mgr, err := newBackupManager(0)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		paths, err := mgr.List()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(paths) == 0 {
			fmt.Println("No backups yet.")
			return
		}
		for _, p := range paths {
			fmt.Println(p)
		}
	},
}

func init() {
	backupCmd.AddCommand(backupListCmd)
}
