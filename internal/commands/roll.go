package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/engine"
	"github.com/dailyroll/dailyroll/internal/parser"
)

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Roll today's plan",
	Long: `Roll the day: finalize yesterday (applying any penalties), then pick
today's tasks. Tasks due soon are always included; the remaining slots
are filled at random from the backlog. Runs once per day.

Examples:
  dailyroll roll
  dailyroll roll --mood 2     # only pick tasks at energy 2 or below
  dailyroll roll --limit 3`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		mood, _ := cmd.Flags().GetString("mood")
		limit, _ := cmd.Flags().GetInt("limit")
		critical, _ := cmd.Flags().GetInt("critical-days")

		result, err := svc.Roll(mood, limit, critical)
		if err != nil {
			if engine.IsRollUnavailable(err) {
				fmt.Printf("🎲 %v\n", err)
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		fmt.Printf("🎲 Rolled %s\n", result.Date.Format("Monday, 02 Jan 2006"))

		if p := result.PenaltyInfo; p != nil && p.Penalty > 0 {
			fmt.Printf("💀 Yesterday cost you %d points (completion %.0f%%)\n",
				p.Penalty, p.CompletionRate*100)
		}
		if result.DeletedHabits > 0 {
			fmt.Printf("🧹 Dropped %d overdue habit(s)\n", result.DeletedHabits)
		}

		if len(result.Habits) > 0 {
			fmt.Println("\nHabits due today:")
			for _, h := range result.Habits {
				streak := ""
				if h.Streak > 0 {
					streak = fmt.Sprintf("  🔥%d", h.Streak)
				}
				fmt.Printf("  #%-4d %s%s\n", h.ID, h.Description, streak)
			}
		}

		if len(result.Tasks) > 0 {
			fmt.Println("\nToday's tasks:")
			for _, t := range result.Tasks {
				due := parser.FormatDueDate(t.Due)
				if due != "" {
					due = "  " + due
				}
				fmt.Printf("  #%-4d [E%d] %s%s\n", t.ID, t.Energy, t.Description, due)
			}
		} else {
			fmt.Println("\nNo tasks in the backlog. Enjoy the quiet day or add some work.")
		}
	},
}

func init() {
	rollCmd.Flags().StringP("mood", "m", "", "Cap random picks at this energy level (0-5)")
	rollCmd.Flags().IntP("limit", "l", engine.DefaultDailyLimit, "How many tasks to plan")
	rollCmd.Flags().Int("critical-days", engine.DefaultCriticalDays, "Due-date window that forces a task into the plan")
}
