package assignments

import (
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"

	"gorm.io/gorm"
)

// GameUpdate carries the editable game fields of the bulk edit form.
type GameUpdate struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Field      string `json:"field"`
	HomeTeamID uint   `json:"home_team_id"`
	AwayTeamID uint   `json:"away_team_id"`
}

// AssignmentInput is one submitted (umpire, position) pair. AssignmentID zero
// means a new assignment.
type AssignmentInput struct {
	AssignmentID uint   `json:"assignment_id"`
	UmpireID     uint   `json:"umpire_id"`
	Position     string `json:"position"`
}

// ReconcileGame applies a bulk game edit: the game row is updated and the
// submitted pairs are reconciled against the existing assignments: omitted
// assignments are deleted, new pairs created with computed pay, matched pairs
// updated in place keeping their stored pay. This path is an administrative
// override and runs none of the Assign precondition chain.
func (s *Service) ReconcileGame(gameID uint, update GameUpdate, inputs []AssignmentInput) error {
	if update.HomeTeamID == update.AwayTeamID {
		return reject("home and away teams cannot be the same")
	}
	if !models.ValidTimeSlot(update.Time) {
		return reject("invalid time slot %q", update.Time)
	}
	if !models.ValidField(update.Field) {
		return reject("invalid field %q", update.Field)
	}
	date, err := models.ParseDate(update.Date)
	if err != nil {
		return reject("invalid date %q", update.Date)
	}
	for _, in := range inputs {
		if !models.ValidPosition(in.Position) {
			return reject("invalid position %q", in.Position)
		}
	}

	if _, err := s.loadGame(gameID); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(
			"UPDATE games SET date = ?, time = ?, field = ?, home_team_id = ?, away_team_id = ? WHERE game_id = ?",
			date, update.Time, update.Field, update.HomeTeamID, update.AwayTeamID, gameID,
		).Error
		if err != nil {
			return err
		}

		var existing []models.UmpireAssignment
		err = tx.Raw("SELECT * FROM umpire_assignments WHERE game_id = ?", gameID).Scan(&existing).Error
		if err != nil {
			return err
		}
		current := make(map[uint]models.UmpireAssignment, len(existing))
		for _, a := range existing {
			current[a.AssignmentID] = a
		}

		kept := make(map[uint]bool)
		for _, in := range inputs {
			if in.UmpireID == 0 {
				continue
			}
			if _, ok := current[in.AssignmentID]; in.AssignmentID != 0 && ok {
				err = tx.Exec(
					"UPDATE umpire_assignments SET umpire_id = ?, position = ? WHERE assignment_id = ?",
					in.UmpireID, in.Position, in.AssignmentID,
				).Error
				if err != nil {
					return err
				}
				kept[in.AssignmentID] = true
				continue
			}

			umpire, err := s.loadUmpire(in.UmpireID)
			if err != nil {
				return err
			}
			pay, err := s.Rates.Resolve(umpire.Patched, in.Position)
			if err != nil {
				return err
			}
			err = tx.Exec(
				"INSERT INTO umpire_assignments (game_id, umpire_id, position, pay_amount, worked_status) VALUES (?, ?, ?, ?, ?)",
				gameID, in.UmpireID, in.Position, pay, models.WorkedAssigned,
			).Error
			if err != nil {
				return err
			}
		}

		for id := range current {
			if !kept[id] {
				err = tx.Exec("DELETE FROM umpire_assignments WHERE assignment_id = ?", id).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}
