package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/engine"
	"github.com/dailyroll/dailyroll/internal/parser"
)

var startCmd = &cobra.Command{
	Use:   "start [task-id]",
	Short: "Start working on a task",
	Long: `Start tracking time on a task. With no argument, picks the most urgent
pending task. Starting a task pauses whatever else was running.`,
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

		task, err := svc.StartTask(id)
		if err != nil {
			if err == engine.ErrTaskNotFound {
				fmt.Println("Error: no task to start")
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		fmt.Printf("⏱️  Working on #%d: %s\n", task.ID, task.Description)
		if task.TimeSpent > 0 {
			fmt.Printf("Time already banked: %s\n", parser.FormatTimeSpent(task.TimeSpent))
		}
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Pause the active task",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		task, err := svc.StopTask()
		if err != nil {
			if err == engine.ErrNoActiveTask {
				fmt.Println("Nothing is running.")
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		fmt.Printf("⏸️  Paused #%d: %s\n", task.ID, task.Description)
		fmt.Printf("Total time: %s\n", parser.FormatTimeSpent(task.TimeSpent))
	},
}
