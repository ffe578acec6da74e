package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/db"
	"github.com/dailyroll/dailyroll/internal/engine"
	"github.com/dailyroll/dailyroll/internal/models"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		s, err := db.NewSettingsStore(db.DB).Get()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		onOff := func(b bool) string {
			if b {
				return "on"
			}
			return "off"
		}

		fmt.Println("⚙️  Settings")
		fmt.Printf("  day-start        %s (%s)\n", onOff(s.DayStartEnabled), s.DayStartTime)
		fmt.Printf("  roll-time        %s\n", s.RollAvailableTime)
		fmt.Printf("  auto-roll        %s (%s)\n", onOff(s.AutoRollEnabled), s.AutoRollTime)
		fmt.Printf("  auto-penalties   %s (%s)\n", onOff(s.AutoPenaltiesEnabled), s.PenaltyTime)
		fmt.Printf("  auto-backup      %s (%s, every %dd, keep %d)\n",
			onOff(s.AutoBackupEnabled), s.BackupTime, s.BackupIntervalDays, s.BackupKeepLocalCount)
		fmt.Printf("  idle-penalty     %d\n", s.IdlePenalty)
		fmt.Printf("  habit-penalty    %d\n", s.MissedHabitPenaltyBase)
		fmt.Println("\nChange with: dailyroll settings set <key> <value>")
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Keys:
  day-start        on/off, or an HH:MM time to enable at that boundary
  roll-time        HH:MM the roll unlocks (day-start off only)
  auto-roll        on/off or HH:MM
  auto-penalties   on/off or HH:MM
  auto-backup      on/off or HH:MM
  backup-keep      how many local backups to retain
  idle-penalty     points charged for an idle day
  habit-penalty    base points per missed habit`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		store := db.NewSettingsStore(db.DB)
		s, err := store.Get()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		key, value := args[0], args[1]
		if err := applySetting(s, key, value); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := store.Update(s); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⚙️  %s = %s\n", key, value)
	},
}

func applySetting(s *models.Settings, key, value string) error {
	parseToggleOrClock := func(enabled *bool, clock *string) error {
		switch value {
		case "on":
			*enabled = true
			return nil
		case "off":
			*enabled = false
			return nil
		}
		if _, ok := engine.ParseClock(value); !ok {
			return fmt.Errorf("want on, off, or an HH:MM time")
		}
		*enabled = true
		*clock = value
		return nil
	}

	switch key {
	case "day-start":
		return parseToggleOrClock(&s.DayStartEnabled, &s.DayStartTime)
	case "roll-time":
		if _, ok := engine.ParseClock(value); !ok {
			return fmt.Errorf("want an HH:MM time")
		}
		s.RollAvailableTime = value
		return nil
	case "auto-roll":
		return parseToggleOrClock(&s.AutoRollEnabled, &s.AutoRollTime)
	case "auto-penalties":
		return parseToggleOrClock(&s.AutoPenaltiesEnabled, &s.PenaltyTime)
	case "auto-backup":
		return parseToggleOrClock(&s.AutoBackupEnabled, &s.BackupTime)
	case "backup-keep":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("want a positive number")
		}
		s.BackupKeepLocalCount = n
		return nil
	case "idle-penalty":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("want a non-negative number")
		}
		s.IdlePenalty = n
		return nil
	case "habit-penalty":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("want a non-negative number")
		}
		s.MissedHabitPenaltyBase = n
		return nil
	default:
		return fmt.Errorf("unknown setting '%s'", key)
	}
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}
