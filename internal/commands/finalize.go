package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var finalizeCmd = &cobra.Command{
	Use:   "finalize [date]",
	Short: "Finalize a day's penalties by hand",
	Long: `Apply a day's penalties without waiting for the next roll or the
automation loop. Safe to repeat: a finalized day is not charged twice.

Examples:
  dailyroll finalize yesterday
  dailyroll finalize 15/08/2026`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		date, err := parseDayArg(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		result, err := svc.FinalizeDay(date)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		switch {
		case result.IsRestDay:
			fmt.Printf("🌴 %s was a rest day, nothing charged\n", date.Format("02/01/2006"))
		case result.AlreadyFinalized:
			fmt.Printf("Already finalized; penalty was %d\n", result.Penalty)
		case result.Penalty > 0:
			fmt.Printf("💀 Charged %d points for %s (completion %.0f%%)\n",
				result.Penalty, date.Format("02/01/2006"), result.CompletionRate*100)
		default:
			fmt.Printf("✅ %s finalized clean, no penalty\n", date.Format("02/01/2006"))
		}
	},
}
