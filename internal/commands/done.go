package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/engine"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Complete a task and collect points",
	Long: `Mark a task or habit as completed and credit its points to today's
ledger. With no argument, completes the currently active task.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		var id uint
		if len(args) == 1 {
			taskID, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				fmt.Printf("Error: invalid task ID '%s'\n", args[0])
				return
			}
			id = uint(taskID)
		}

		task, points, err := svc.CompleteTask(id)
		if err != nil {
			switch err {
			case engine.ErrNoActiveTask:
				fmt.Println("Nothing is running. Pass a task ID or start one first.")
			case engine.ErrTaskNotFound:
				fmt.Println("Error: task not found")
			case engine.ErrDependencyNotMet:
				fmt.Println("Error: this task depends on one that is not completed yet")
			default:
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		if task.IsHabit {
			fmt.Printf("✅ Habit done: %s (+%d points)\n", task.Description, points)
			if task.Streak > 1 {
				fmt.Printf("🔥 Streak: %d\n", task.Streak)
			}
		} else {
			fmt.Printf("✅ Done: %s (+%d points)\n", task.Description, points)
		}

		total, err := svc.CurrentPoints()
		if err == nil {
			fmt.Printf("💰 Total: %d points\n", total)
		}
	},
}
