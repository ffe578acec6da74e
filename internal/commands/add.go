package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/models"
	"github.com/dailyroll/dailyroll/internal/parser"
)

var addCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add a task or habit",
	Long: `Add a new task, or a recurring habit with --habit.

Examples:
  dailyroll add "Write the report" --project work --energy 4 --due "3 days"
  dailyroll add "Morning run" --habit --type routine --every daily
  dailyroll add "Practice guitar" --habit --type skill --every mon,wed,fri
  dailyroll add "Deploy" --depends-on 12`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		task := &models.Task{
			Description: strings.Join(args, " "),
			Status:      models.StatusPending,
		}

		task.Project, _ = cmd.Flags().GetString("project")
		task.Priority, _ = cmd.Flags().GetInt("priority")
		task.Energy, _ = cmd.Flags().GetInt("energy")

		if task.Priority < 0 || task.Priority > 10 {
			fmt.Println("Error: priority must be between 0 and 10")
			return
		}
		if task.Energy < 0 || task.Energy > 5 {
			fmt.Println("Error: energy must be between 0 and 5")
			return
		}

		if due, _ := cmd.Flags().GetString("due"); due != "" {
			dueDate, err := parser.ParseDueDate(due)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			task.Due = dueDate
		}

		if dep, _ := cmd.Flags().GetString("depends-on"); dep != "" {
			depID, err := strconv.ParseUint(dep, 10, 32)
			if err != nil {
				fmt.Printf("Error: invalid task ID '%s'\n", dep)
				return
			}
			id := uint(depID)
			task.DependsOn = &id
		}

		if habit, _ := cmd.Flags().GetBool("habit"); habit {
			task.IsHabit = true

			habitType, _ := cmd.Flags().GetString("type")
			switch habitType {
			case models.HabitSkill, models.HabitRoutine:
				task.HabitType = habitType
			default:
				fmt.Println("Error: habit type must be 'skill' or 'routine'")
				return
			}

			every, _ := cmd.Flags().GetString("every")
			rec, err := parser.ParseRecurrence(every)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			task.RecurrenceType = rec.Type
			task.RecurrenceInterval = rec.Interval
			task.RecurrenceDays = rec.Days
		}

		if err := svc.CreateTask(task); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if task.IsHabit {
			fmt.Printf("🔁 Added habit #%d: %s", task.ID, task.Description)
			if rec := parser.FormatRecurrence(task); rec != "" {
				fmt.Printf(" (%s)", rec)
			}
			fmt.Println()
		} else {
			fmt.Printf("➕ Added task #%d: %s\n", task.ID, task.Description)
		}
		if task.Due != nil {
			fmt.Printf("   %s\n", parser.FormatDueDate(task.Due))
		}
	},
}

func init() {
	addCmd.Flags().StringP("project", "p", "", "Project name")
	addCmd.Flags().Int("priority", 5, "Priority 0-10")
	addCmd.Flags().IntP("energy", "e", 3, "Energy level 0-5")
	addCmd.Flags().StringP("due", "d", "", "Due date (dd/mm/yyyy, today, tomorrow, X days, X weeks)")
	addCmd.Flags().String("depends-on", "", "ID of a task that must be completed first")
	addCmd.Flags().Bool("habit", false, "Create a recurring habit")
	addCmd.Flags().String("type", "skill", "Habit type: skill or routine")
	addCmd.Flags().String("every", "daily", "Habit recurrence: daily, N days, weekly, or weekday list")
}
