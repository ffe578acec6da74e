package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/db"
	"github.com/dailyroll/dailyroll/internal/models"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Manage rest days",
	Long: `A rest day is exempt from penalties: no idle, incomplete, or missed
habit charges, and the penalty streak does not grow. Habits still roll
forward to their next occurrence.`,
}

var restAddCmd = &cobra.Command{
	Use:   "add [date]",
	Short: "Declare a rest day",
	Long: `Examples:
  dailyroll rest add today
  dailyroll rest add 25/12/2026 --note "Christmas"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		date, err := parseDayArg(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		store := db.NewRestDayStore(db.DB)
		existing, err := store.GetByDate(date)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if existing != nil {
			fmt.Printf("%s is already a rest day\n", date.Format("02/01/2006"))
			return
		}

		note, _ := cmd.Flags().GetString("note")
		if err := store.Create(&models.RestDay{Date: date, Description: note}); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🌴 Rest day: %s\n", date.Format("Monday, 02 Jan 2006"))
	},
}

var restListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List rest days",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		days, err := db.NewRestDayStore(db.DB).All()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(days) == 0 {
			fmt.Println("No rest days declared.")
			return
		}

		for _, d := range days {
			line := "🌴 " + d.Date.Format("02/01/2006")
			if d.Description != "" {
				line += " - " + d.Description
			}
			fmt.Println(line)
		}
	},
}

var restRemoveCmd = &cobra.Command{
	Use:   "rm [date]",
	Short: "Remove a rest day",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		date, err := parseDayArg(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		store := db.NewRestDayStore(db.DB)
		existing, err := store.GetByDate(date)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if existing == nil {
			fmt.Printf("%s is not a rest day\n", date.Format("02/01/2006"))
			return
		}

		if err := store.Delete(existing.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Removed rest day %s\n", date.Format("02/01/2006"))
	},
}

func init() {
	restAddCmd.Flags().String("note", "", "Why you are resting")

	restCmd.AddCommand(restAddCmd)
	restCmd.AddCommand(restListCmd)
	restCmd.AddCommand(restRemoveCmd)
}
