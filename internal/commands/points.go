package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/parser"
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Show the current score",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		total, err := svc.CurrentPoints()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("💰 %d points\n", total)
	},
}

var projectionCmd = &cobra.Command{
	Use:   "projection [date]",
	Short: "Project the score to a future date",
	Long: `Estimate the score on a future date from the last 30 days of activity.

Examples:
  dailyroll projection 31/12/2026
  dailyroll projection "2 weeks"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		target, err := parser.ParseDueDate(args[0])
		if err != nil || target == nil {
			fmt.Println("Error: give a target date like 31/12/2026 or \"2 weeks\"")
			return
		}

		p, err := svc.ProjectScore(*target)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🔮 Projection for %s\n\n", p.TargetDate.Format("02/01/2006"))
		if p.DaysUntil <= 0 {
			fmt.Printf("That date is not in the future. Current score: %d\n", p.CurrentTotal)
			return
		}

		fmt.Printf("Current score:  %d\n", p.CurrentTotal)
		fmt.Printf("Daily average:  %.1f points (last 30 days)\n", p.DailyAverage)
		fmt.Printf("In %d days:\n", p.DaysUntil)
		fmt.Printf("  Pessimistic:  %d\n", p.Pessimistic)
		fmt.Printf("  Expected:     %d\n", p.Expected)
		fmt.Printf("  Optimistic:   %d\n", p.Optimistic)
	},
}

// parseDayArg accepts dd/mm/yyyy, "today", or "yesterday".
func parseDayArg(arg string) (time.Time, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch arg {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	t, err := time.ParseInLocation("02/01/2006", arg, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s', use dd/mm/yyyy", arg)
	}
	return t, nil
}
