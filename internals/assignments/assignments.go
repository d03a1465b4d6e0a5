package assignments

import (
	"fmt"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/payrates"
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/pkg/kvstore"

	"gorm.io/gorm"
)

type Service struct {
	DB    *gorm.DB
	Rates *payrates.Service
}

func New(kv kvstore.KVStore, db *gorm.DB) *Service {
	return &Service{
		DB:    db,
		Rates: payrates.New(kv, db),
	}
}

// Assign creates one umpire assignment after the full precondition chain.
// Each check is a hard rejection; the order is fixed:
//  1. explicit availability for the game's slot (or all day),
//  2. not already on this game,
//  3. no other game at the same date and time unless the umpire is an
//     assigner,
//  4. fewer than two umpires on the game,
//  5. position compatible with the existing assignment.
//
// Pay is computed at creation from the umpire's current patched flag. The
// (game, umpire) unique index and a post-insert recount backstop concurrent
// requests that pass the checks simultaneously.
func (s *Service) Assign(gameID, umpireID uint, position string) (models.UmpireAssignment, error) {
	if !models.ValidPosition(position) {
		return models.UmpireAssignment{}, reject("invalid position %q", position)
	}

	game, err := s.loadGame(gameID)
	if err != nil {
		return models.UmpireAssignment{}, err
	}
	umpire, err := s.loadUmpire(umpireID)
	if err != nil {
		return models.UmpireAssignment{}, err
	}

	var created models.UmpireAssignment
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		available, err := isAvailable(tx, umpire.UmpireID, game)
		if err != nil {
			return err
		}
		if !available {
			return reject("%s is not available for this game date and time", umpire.FullName())
		}

		var onGame int64
		err = tx.Raw(
			"SELECT COUNT(*) FROM umpire_assignments WHERE game_id = ? AND umpire_id = ?",
			game.GameID, umpire.UmpireID,
		).Scan(&onGame).Error
		if err != nil {
			return err
		}
		if onGame > 0 {
			return reject("%s is already assigned to this game", umpire.FullName())
		}

		if !umpire.IsAssigner {
			conflicting, err := hasConflict(tx, umpire.UmpireID, game)
			if err != nil {
				return err
			}
			if conflicting {
				return reject("%s is already assigned to another game at this time", umpire.FullName())
			}
		}

		var existing []models.UmpireAssignment
		err = tx.Raw(
			"SELECT * FROM umpire_assignments WHERE game_id = ?", game.GameID,
		).Scan(&existing).Error
		if err != nil {
			return err
		}
		if len(existing) >= 2 {
			return reject("this game already has 2 umpires assigned")
		}
		if len(existing) == 1 {
			if existing[0].Position == models.PositionSolo {
				return reject("cannot add a second umpire to a game with a solo umpire")
			}
			if existing[0].Position == position {
				return reject("this game already has a %s umpire", position)
			}
		}

		pay, err := s.Rates.Resolve(umpire.Patched, position)
		if err != nil {
			return err
		}

		created = models.UmpireAssignment{
			GameID:       game.GameID,
			UmpireID:     umpire.UmpireID,
			Position:     position,
			PayAmount:    pay,
			WorkedStatus: models.WorkedAssigned,
		}
		err = tx.Raw(
			"INSERT INTO umpire_assignments (game_id, umpire_id, position, pay_amount, worked_status) VALUES (?, ?, ?, ?, ?) RETURNING assignment_id",
			created.GameID, created.UmpireID, created.Position, created.PayAmount, created.WorkedStatus,
		).Scan(&created.AssignmentID).Error
		if err != nil {
			return err
		}

		// Recount after insert: two concurrent assigns can both see one open
		// seat; the loser rolls back here.
		var total int64
		err = tx.Raw(
			"SELECT COUNT(*) FROM umpire_assignments WHERE game_id = ?", game.GameID,
		).Scan(&total).Error
		if err != nil {
			return err
		}
		if total > 2 {
			return reject("this game already has 2 umpires assigned")
		}
		return nil
	})
	if err != nil {
		return models.UmpireAssignment{}, err
	}
	return created, nil
}

// AvailableUmpires lists umpires eligible for a game: an explicit available or
// preferred declaration for the slot, and no same-slot conflict (assigners are
// exempt from the conflict filter).
func (s *Service) AvailableUmpires(gameID uint) ([]models.Umpire, error) {
	game, err := s.loadGame(gameID)
	if err != nil {
		return nil, err
	}
	return s.EligibleUmpires(game)
}

// EligibleUmpires is AvailableUmpires for an already loaded game row.
func (s *Service) EligibleUmpires(game models.Game) ([]models.Umpire, error) {
	var umpires []models.Umpire
	err := s.DB.Raw(
		"SELECT * FROM umpires ORDER BY last_name, first_name",
	).Scan(&umpires).Error
	if err != nil {
		return nil, err
	}

	eligible := make([]models.Umpire, 0)
	for _, u := range umpires {
		available, err := isAvailable(s.DB, u.UmpireID, game)
		if err != nil {
			return nil, err
		}
		if !available {
			continue
		}
		if !u.IsAssigner {
			conflicting, err := hasConflict(s.DB, u.UmpireID, game)
			if err != nil {
				return nil, err
			}
			if conflicting {
				continue
			}
		}
		eligible = append(eligible, u)
	}
	return eligible, nil
}

// isAvailable is true only for an explicit available or preferred declaration
// covering the game's slot. No row means not available.
func isAvailable(db *gorm.DB, umpireID uint, game models.Game) (bool, error) {
	var count int64
	err := db.Raw(
		"SELECT COUNT(*) FROM umpire_availabilities WHERE umpire_id = ? AND date = ? AND time_slot IN (?, ?) AND status IN (?, ?)",
		umpireID, game.Date, game.Time, models.TimeSlotAll, models.AvailAvailable, models.AvailPreferred,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// hasConflict reports another assignment for the same wall-clock slot.
func hasConflict(db *gorm.DB, umpireID uint, game models.Game) (bool, error) {
	var count int64
	err := db.Raw(
		"SELECT COUNT(*) FROM umpire_assignments a JOIN games g ON g.game_id = a.game_id WHERE a.umpire_id = ? AND g.date = ? AND g.time = ? AND g.game_id <> ?",
		umpireID, game.Date, game.Time, game.GameID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Service) loadGame(gameID uint) (models.Game, error) {
	var games []models.Game
	err := s.DB.Raw("SELECT * FROM games WHERE game_id = ?", gameID).Scan(&games).Error
	if err != nil {
		return models.Game{}, err
	}
	if len(games) == 0 {
		return models.Game{}, fmt.Errorf("game %d: %w", gameID, gorm.ErrRecordNotFound)
	}
	return games[0], nil
}

func (s *Service) loadUmpire(umpireID uint) (models.Umpire, error) {
	var umpires []models.Umpire
	err := s.DB.Raw("SELECT * FROM umpires WHERE umpire_id = ?", umpireID).Scan(&umpires).Error
	if err != nil {
		return models.Umpire{}, err
	}
	if len(umpires) == 0 {
		return models.Umpire{}, fmt.Errorf("umpire %d: %w", umpireID, gorm.ErrRecordNotFound)
	}
	return umpires[0], nil
}

func (s *Service) loadAssignment(assignmentID uint) (models.UmpireAssignment, error) {
	var rows []models.UmpireAssignment
	err := s.DB.Raw("SELECT * FROM umpire_assignments WHERE assignment_id = ?", assignmentID).Scan(&rows).Error
	if err != nil {
		return models.UmpireAssignment{}, err
	}
	if len(rows) == 0 {
		return models.UmpireAssignment{}, fmt.Errorf("assignment %d: %w", assignmentID, gorm.ErrRecordNotFound)
	}
	return rows[0], nil
}
