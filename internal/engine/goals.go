package engine

import (
	"github.com/dailyroll/dailyroll/internal/models"
)

// CheckGoalAchievements scans unachieved goals against the current
// state and marks the ones that are now reached. Returns the goals that
// newly flipped, so the caller can celebrate them.
func (s *Service) CheckGoalAchievements() ([]models.PointGoal, error) {
	goals, err := s.goals.All(false)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, nil
	}

	var achieved []models.PointGoal
	for i := range goals {
		reached, err := s.goalReached(&goals[i])
		if err != nil {
			return nil, err
		}
		if !reached {
			continue
		}

		now := s.now()
		goals[i].Achieved = true
		goals[i].AchievedDate = &now
		if err := s.goals.Update(&goals[i]); err != nil {
			return nil, err
		}
		achieved = append(achieved, goals[i])
	}
	return achieved, nil
}

func (s *Service) goalReached(goal *models.PointGoal) (bool, error) {
	switch goal.GoalType {
	case models.GoalPoints:
		current, err := s.CurrentPoints()
		if err != nil {
			return false, err
		}
		return current >= goal.TargetPoints, nil
	case models.GoalProjectCompletion:
		total, completed, err := s.tasks.CountByProject(goal.ProjectName)
		if err != nil {
			return false, err
		}
		return total > 0 && completed == total, nil
	default:
		return false, nil
	}
}

// ClaimGoal marks an achieved goal's reward as collected.
func (s *Service) ClaimGoal(goal *models.PointGoal) error {
	goal.Claimed = true
	return s.goals.Update(goal)
}
