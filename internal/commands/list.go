package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/db"
	"github.com/dailyroll/dailyroll/internal/models"
	"github.com/dailyroll/dailyroll/internal/parser"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks and habits",
	Long:    "List pending tasks and habits, with filters for today's plan and projects",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		tasks, err := db.NewTaskStore(db.DB).All()
		if err != nil {
			fmt.Printf("Error fetching tasks: %v\n", err)
			return
		}

		todayOnly, _ := cmd.Flags().GetBool("today")
		habitsOnly, _ := cmd.Flags().GetBool("habits")
		showAll, _ := cmd.Flags().GetBool("all")
		project, _ := cmd.Flags().GetString("project")

		var filtered []models.Task
		for _, t := range tasks {
			if !showAll && t.Status == models.StatusCompleted {
				continue
			}
			if todayOnly && !t.IsToday {
				continue
			}
			if habitsOnly && !t.IsHabit {
				continue
			}
			if project != "" && t.Project != project {
				continue
			}
			filtered = append(filtered, t)
		}

		if len(filtered) == 0 {
			fmt.Println("No tasks found. Use 'dailyroll add \"task description\"' to create one.")
			return
		}

		fmt.Printf("%-4s %-9s %-40s %-12s %-3s %-6s %s\n", "ID", "STATUS", "DESCRIPTION", "PROJECT", "E", "STREAK", "DUE")
		fmt.Println(strings.Repeat("-", 90))

		for _, t := range filtered {
			desc := t.Description
			if t.IsHabit {
				desc = "🔁 " + desc
			} else if t.IsToday {
				desc = "🎲 " + desc
			}
			if len(desc) > 38 {
				desc = desc[:35] + "..."
			}

			proj := t.Project
			if len(proj) > 10 {
				proj = proj[:7] + "..."
			}

			streak := ""
			if t.IsHabit && t.Streak > 0 {
				streak = fmt.Sprintf("🔥%d", t.Streak)
			}

			fmt.Printf("%-4d %-9s %-40s %-12s %-3d %-6s %s\n",
				t.ID,
				t.Status,
				desc,
				proj,
				t.Energy,
				streak,
				parser.FormatDueDate(t.Due))
		}
	},
}

func init() {
	listCmd.Flags().BoolP("today", "t", false, "Show only today's plan")
	listCmd.Flags().Bool("habits", false, "Show only habits")
	listCmd.Flags().BoolP("all", "a", false, "Include completed tasks")
	listCmd.Flags().StringP("project", "p", "", "Filter by project")
}
