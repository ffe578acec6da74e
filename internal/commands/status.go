package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/db"
	"github.com/dailyroll/dailyroll/internal/parser"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's progress",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		today, err := svc.EffectiveToday()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📅 %s\n\n", today.Format("Monday, 02 Jan 2006"))

		active, err := db.NewTaskStore(db.DB).ActiveTask()
		if err == nil && active != nil {
			elapsed := ""
			if active.StartedAt != nil {
				elapsed = fmt.Sprintf(", started %s", humanize.Time(*active.StartedAt))
			}
			fmt.Printf("⏱️  Working on #%d: %s (%s banked%s)\n\n",
				active.ID, active.Description, parser.FormatTimeSpent(active.TimeSpent), elapsed)
		}

		stats, err := svc.TodayStats()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Done today: %d\n", stats.DoneToday)
		fmt.Printf("🎲 Left in plan: %d\n", stats.PendingToday)
		fmt.Printf("📚 Backlog: %d\n", stats.TotalPending)

		total, err := svc.CurrentPoints()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("💰 Score: %d points\n", total)

		if ok, reason, err := svc.CanRollNow(); err == nil && !ok {
			fmt.Printf("🎲 %s\n", reason)
		} else if err == nil {
			fmt.Println("🎲 Roll is available")
		}
	},
}
