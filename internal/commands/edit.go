package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/db"
	"github.com/dailyroll/dailyroll/internal/engine"
	"github.com/dailyroll/dailyroll/internal/parser"
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task's fields",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		task, err := db.NewTaskStore(db.DB).GetByID(uint(taskID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if task == nil {
			fmt.Printf("Error: task #%d not found\n", taskID)
			return
		}

		changed := false
		if desc, _ := cmd.Flags().GetString("description"); desc != "" {
			task.Description = desc
			changed = true
		}
		if cmd.Flags().Changed("project") {
			task.Project, _ = cmd.Flags().GetString("project")
			changed = true
		}
		if cmd.Flags().Changed("priority") {
			p, _ := cmd.Flags().GetInt("priority")
			if p < 0 || p > 10 {
				fmt.Println("Error: priority must be between 0 and 10")
				return
			}
			task.Priority = p
			changed = true
		}
		if cmd.Flags().Changed("energy") {
			e, _ := cmd.Flags().GetInt("energy")
			if e < 0 || e > 5 {
				fmt.Println("Error: energy must be between 0 and 5")
				return
			}
			task.Energy = e
			changed = true
		}
		if cmd.Flags().Changed("due") {
			due, _ := cmd.Flags().GetString("due")
			if due == "" {
				task.Due = nil
			} else {
				dueDate, err := parser.ParseDueDate(due)
				if err != nil {
					fmt.Printf("Error: %v\n", err)
					return
				}
				task.Due = dueDate
			}
			changed = true
		}

		if !changed {
			fmt.Println("Nothing to change. Pass --description, --project, --priority, --energy, or --due.")
			return
		}

		if err := svc.UpdateTask(task); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✏️  Updated task #%d: %s\n", task.ID, task.Description)
	},
}

var deleteCmd = &cobra.Command{
	Use:     "rm [task-id]",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		if err := svc.DeleteTask(uint(taskID)); err != nil {
			if err == engine.ErrTaskNotFound {
				fmt.Printf("Error: task #%d not found\n", taskID)
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}
		fmt.Printf("🗑️  Deleted task #%d\n", taskID)
	},
}

func init() {
	editCmd.Flags().String("description", "", "New description")
	editCmd.Flags().StringP("project", "p", "", "New project")
	editCmd.Flags().Int("priority", 5, "New priority 0-10")
	editCmd.Flags().IntP("energy", "e", 3, "New energy level 0-5")
	editCmd.Flags().StringP("due", "d", "", "New due date (empty clears it)")
}
