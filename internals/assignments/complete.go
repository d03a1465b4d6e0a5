package assignments

import (
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"

	"gorm.io/gorm"
)

// Outcome records what happened to one assignment when its game resolved.
type Outcome struct {
	AssignmentID uint   `json:"assignment_id"`
	WorkedStatus string `json:"worked_status"`
}

// CompleteGame moves a game to completed/postponed/cancelled and applies the
// submitted worked outcomes. The worked transition recomputes pay from the
// current rates and the umpire's current patched flag; no_show and cancelled
// zero it. Assignments not listed keep their assigned status.
func (s *Service) CompleteGame(gameID uint, gameStatus string, outcomes []Outcome) error {
	if !models.ValidGameOutcome(gameStatus) {
		return reject("invalid game status %q", gameStatus)
	}

	if _, err := s.loadGame(gameID); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Exec("UPDATE games SET status = ? WHERE game_id = ?", gameStatus, gameID).Error
		if err != nil {
			return err
		}

		var rows []models.UmpireAssignment
		err = tx.Raw("SELECT * FROM umpire_assignments WHERE game_id = ?", gameID).Scan(&rows).Error
		if err != nil {
			return err
		}
		byID := make(map[uint]models.UmpireAssignment, len(rows))
		for _, a := range rows {
			byID[a.AssignmentID] = a
		}

		for _, out := range outcomes {
			assignment, ok := byID[out.AssignmentID]
			if !ok || !models.ValidWorkedOutcome(out.WorkedStatus) {
				continue
			}

			var pay int64
			if out.WorkedStatus == models.WorkedWorked {
				umpire, err := s.loadUmpire(assignment.UmpireID)
				if err != nil {
					return err
				}
				pay, err = s.Rates.Resolve(umpire.Patched, assignment.Position)
				if err != nil {
					return err
				}
			}

			err = tx.Exec(
				"UPDATE umpire_assignments SET worked_status = ?, pay_amount = ? WHERE assignment_id = ?",
				out.WorkedStatus, pay, out.AssignmentID,
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// OverridePay sets an assignment's pay to an administrator-entered amount.
// Negative or malformed amounts are rejected without mutating state.
func (s *Service) OverridePay(assignmentID uint, amount string) (int64, error) {
	cents, err := models.ParseCents(amount)
	if err != nil {
		return 0, reject("%v", err)
	}

	if _, err := s.loadAssignment(assignmentID); err != nil {
		return 0, err
	}

	err = s.DB.Exec(
		"UPDATE umpire_assignments SET pay_amount = ? WHERE assignment_id = ?",
		cents, assignmentID,
	).Error
	if err != nil {
		return 0, err
	}
	return cents, nil
}
