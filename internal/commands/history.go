package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/tui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the daily ledger",
	Long: `Show the last days of the ledger: points earned, penalties, and the
running total. Use --ui for an interactive table.`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		days, _ := cmd.Flags().GetInt("days")
		if days < 1 {
			days = 14
		}

		entries, err := svc.History(days)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(entries) == 0 {
			fmt.Println("No history yet. Roll a day and complete something.")
			return
		}

		if ui, _ := cmd.Flags().GetBool("ui"); ui {
			if err := tui.RunHistoryTUI(entries); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		fmt.Printf("%-12s %7s %8s %6s %6s %7s %6s\n", "DATE", "EARNED", "PENALTY", "BONUS", "DAY", "TOTAL", "DONE")
		fmt.Println(strings.Repeat("-", 60))
		for _, e := range entries {
			marker := ""
			if e.PointsPenalty > 0 {
				marker = " 💀"
			}
			fmt.Printf("%-12s %7d %8d %6d %+6d %7d %3d/%d%s\n",
				e.Date.Format("02/01/2006"),
				e.PointsEarned,
				e.PointsPenalty,
				e.PointsBonus,
				e.DailyTotal,
				e.CumulativeTotal,
				e.TasksCompleted+e.HabitsCompleted,
				e.TasksPlanned,
				marker)
		}
	},
}

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show one day's full scoring record",
	Long: `Show everything recorded for a day: completions, the planned tasks,
and the penalty breakdown if the day was finalized.

Examples:
  dailyroll day yesterday
  dailyroll day 15/08/2026`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		date, err := parseDayArg(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		day, err := svc.DetailsForDay(date)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if day == nil {
			fmt.Printf("No ledger entry for %s\n", date.Format("02/01/2006"))
			return
		}

		e := day.Entry
		fmt.Printf("📅 %s\n", e.Date.Format("Monday, 02 Jan 2006"))
		fmt.Printf("Earned %d, penalty %d, bonus %d → day %+d, total %d\n\n",
			e.PointsEarned, e.PointsPenalty, e.PointsBonus, e.DailyTotal, e.CumulativeTotal)

		if len(day.Details.TaskCompletions) > 0 {
			fmt.Println("Completed:")
			for _, c := range day.Details.TaskCompletions {
				kind := "task"
				if c.IsHabit {
					kind = "habit"
				}
				fmt.Printf("  +%-4d %s (%s, %s)\n", c.Points, c.Description, kind, c.Time.Format("15:04"))
			}
		}

		if len(day.Details.PlannedTasks) > 0 {
			fmt.Printf("\nPlanned (%d):\n", len(day.Details.PlannedTasks))
			for _, p := range day.Details.PlannedTasks {
				fmt.Printf("  #%-4d [E%d] %s\n", p.TaskID, p.Energy, p.Description)
			}
		}

		if b := day.Details.PenaltyBreakdown; b != nil {
			fmt.Println("\nPenalty breakdown:")
			if b.IdlePenalty > 0 {
				fmt.Printf("  Idle day: -%d\n", b.IdlePenalty)
			}
			if b.IncompletePenalty > 0 {
				fmt.Printf("  Unfinished plan: -%d\n", b.IncompletePenalty)
				for _, t := range b.IncompleteTasks {
					fmt.Printf("    #%-4d %s (potential %d)\n", t.TaskID, t.Description, t.Potential)
				}
			}
			if b.MissedHabitsPenalty > 0 {
				fmt.Printf("  Missed habits: -%d\n", b.MissedHabitsPenalty)
				for _, h := range b.MissedHabits {
					fmt.Printf("    %s (-%d)\n", h.Description, h.Penalty)
				}
			}
			if b.ProgressiveMultiplier > 1 {
				fmt.Printf("  Streak multiplier: x%.1f (day %d of the slump)\n", b.ProgressiveMultiplier, b.PenaltyStreak)
			}
			fmt.Printf("  Total: -%d\n", b.TotalPenalty)
		} else {
			fmt.Println("\nDay not finalized yet.")
		}
	},
}

func init() {
	historyCmd.Flags().IntP("days", "n", 14, "How many days to show")
	historyCmd.Flags().Bool("ui", false, "Interactive table view")
}
