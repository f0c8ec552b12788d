package service

import (
	"errors"
	"time"

	"nairatrack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrGoalCompleted is returned when contributing to a goal that has already
// reached its target.
var ErrGoalCompleted = errors.New("goal is already completed")

// Contribute appends a contribution to a goal's ledger and updates the stored
// aggregate in a single database transaction, so the two can never diverge.
// The goal row is locked for the duration; concurrent contributions to the
// same goal serialize on that lock. Crossing the target flips the goal to
// completed, which is terminal.
func Contribute(db *gorm.DB, userID, goalID string, amount float64, date time.Time) (*models.Goal, error) {
	var goal models.Goal
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", goalID, userID).
			First(&goal).Error; err != nil {
			return err
		}
		if goal.Status == models.GoalStatusCompleted {
			return ErrGoalCompleted
		}

		contribution := models.GoalContribution{
			GoalID: goal.ID,
			Amount: amount,
			Date:   date,
		}
		if err := tx.Create(&contribution).Error; err != nil {
			return err
		}

		goal.CurrentAmount += amount
		updates := map[string]interface{}{"current_amount": goal.CurrentAmount}
		if goal.CurrentAmount >= goal.TargetAmount {
			goal.Status = models.GoalStatusCompleted
			updates["status"] = models.GoalStatusCompleted
		}
		return tx.Model(&models.Goal{}).Where("id = ?", goal.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}
