package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailyroll/dailyroll/internal/db"
	"github.com/dailyroll/dailyroll/internal/models"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage milestone goals",
	Long: `Goals are milestones with a reward attached: hit a points target, or
finish every task of a project. Achieved goals are announced when you
complete the task that crosses the line.`,
}

var goalAddCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Add a goal",
	Long: `Examples:
  dailyroll goal add "Level up" --points 500 --reward "New keyboard"
  dailyroll goal add "Ship it" --project sideproject --reward "Day off"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		goal := &models.PointGoal{
			Description: strings.Join(args, " "),
		}
		goal.Reward, _ = cmd.Flags().GetString("reward")

		points, _ := cmd.Flags().GetInt("points")
		project, _ := cmd.Flags().GetString("project")

		switch {
		case points > 0 && project != "":
			fmt.Println("Error: pick one of --points or --project, not both")
			return
		case points > 0:
			goal.GoalType = models.GoalPoints
			goal.TargetPoints = points
		case project != "":
			goal.GoalType = models.GoalProjectCompletion
			goal.ProjectName = project
		default:
			fmt.Println("Error: a goal needs --points or --project")
			return
		}

		if err := db.NewGoalStore(db.DB).Create(goal); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🎯 Goal #%d set: %s\n", goal.ID, goal.Description)
	},
}

var goalListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List goals",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		goals, err := db.NewGoalStore(db.DB).All(true)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(goals) == 0 {
			fmt.Println("No goals yet. Set one with 'dailyroll goal add'.")
			return
		}

		for _, g := range goals {
			state := "🎯"
			if g.Claimed {
				state = "🏆"
			} else if g.Achieved {
				state = "✨"
			}

			target := fmt.Sprintf("%d points", g.TargetPoints)
			if g.GoalType == models.GoalProjectCompletion {
				target = "finish project " + g.ProjectName
			}

			fmt.Printf("%s #%-3d %s - %s", state, g.ID, g.Description, target)
			if g.Reward != "" {
				fmt.Printf(" (reward: %s)", g.Reward)
			}
			if g.Achieved && g.AchievedDate != nil {
				fmt.Printf(" [achieved %s]", g.AchievedDate.Format("02/01/2006"))
			}
			fmt.Println()
		}
	},
}

var goalClaimCmd = &cobra.Command{
	Use:   "claim [goal-id]",
	Short: "Claim an achieved goal's reward",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		svc := newService()

		goalID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid goal ID '%s'\n", args[0])
			return
		}

		goal, err := db.NewGoalStore(db.DB).GetByID(uint(goalID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if goal == nil {
			fmt.Printf("Error: goal #%d not found\n", goalID)
			return
		}
		if !goal.Achieved {
			fmt.Println("Not achieved yet. Keep going.")
			return
		}
		if goal.Claimed {
			fmt.Println("Already claimed.")
			return
		}

		if err := svc.ClaimGoal(goal); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🏆 Claimed: %s", goal.Description)
		if goal.Reward != "" {
			fmt.Printf(" - enjoy your %s", goal.Reward)
		}
		fmt.Println()
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:   "rm [goal-id]",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		goalID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid goal ID '%s'\n", args[0])
			return
		}
		if err := db.NewGoalStore(db.DB).Delete(uint(goalID)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted goal #%d\n", goalID)
	},
}

func init() {
	goalAddCmd.Flags().Int("points", 0, "Cumulative points target")
	goalAddCmd.Flags().StringP("project", "p", "", "Project to finish")
	goalAddCmd.Flags().StringP("reward", "r", "", "What you get for it")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalClaimCmd)
	goalCmd.AddCommand(goalDeleteCmd)
}
