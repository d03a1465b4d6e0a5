package importer

import (
	"fmt"
	"strings"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"

	"gorm.io/gorm"
)

func (s *Service) importLeagueAdmins(tx *gorm.DB, rows []Row) (int, error) {
	count := 0
	for _, r := range rows {
		email := r.get("email")
		if email == "" {
			return 0, rowErr(r, fmt.Errorf("email is required"))
		}

		var ids []uint
		err := tx.Raw("SELECT admin_id FROM league_admins WHERE email = ?", email).Scan(&ids).Error
		if err != nil {
			return 0, rowErr(r, err)
		}

		if len(ids) == 0 {
			err = tx.Exec(
				"INSERT INTO league_admins (first_name, last_name, email, phone) VALUES (?, ?, ?, ?)",
				r.get("first_name"), r.get("last_name"), email, r.get("phone"),
			).Error
		} else {
			err = tx.Exec(
				"UPDATE league_admins SET first_name = ?, last_name = ?, phone = ? WHERE admin_id = ?",
				r.get("first_name"), r.get("last_name"), r.get("phone"), ids[0],
			).Error
		}
		if err != nil {
			return 0, rowErr(r, err)
		}
		count++
	}
	return count, nil
}

func (s *Service) importCoaches(tx *gorm.DB, rows []Row) (int, error) {
	count := 0
	for _, r := range rows {
		email := r.get("email")
		if email == "" {
			return 0, rowErr(r, fmt.Errorf("email is required"))
		}

		var ids []uint
		err := tx.Raw("SELECT coach_id FROM coaches WHERE email = ?", email).Scan(&ids).Error
		if err != nil {
			return 0, rowErr(r, err)
		}

		if len(ids) == 0 {
			err = tx.Exec(
				"INSERT INTO coaches (first_name, last_name, email, phone) VALUES (?, ?, ?, ?)",
				r.get("first_name"), r.get("last_name"), email, r.get("phone"),
			).Error
		} else {
			err = tx.Exec(
				"UPDATE coaches SET first_name = ?, last_name = ?, phone = ? WHERE coach_id = ?",
				r.get("first_name"), r.get("last_name"), r.get("phone"), ids[0],
			).Error
		}
		if err != nil {
			return 0, rowErr(r, err)
		}
		count++
	}
	return count, nil
}

func (s *Service) importTowns(tx *gorm.DB, rows []Row) (int, error) {
	count := 0
	for _, r := range rows {
		name := r.get("name")
		if name == "" {
			return 0, rowErr(r, fmt.Errorf("name is required"))
		}

		var adminID *uint
		if email := r.get("league_admin_email"); email != "" {
			var ids []uint
			err := tx.Raw("SELECT admin_id FROM league_admins WHERE email = ?", email).Scan(&ids).Error
			if err != nil {
				return 0, rowErr(r, err)
			}
			if len(ids) == 0 {
				return 0, rowErr(r, fmt.Errorf("league admin with email %q not found", email))
			}
			adminID = &ids[0]
		}

		var ids []uint
		err := tx.Raw("SELECT town_id FROM towns WHERE name = ?", name).Scan(&ids).Error
		if err != nil {
			return 0, rowErr(r, err)
		}

		if len(ids) == 0 {
			err = tx.Exec("INSERT INTO towns (name, league_admin_id) VALUES (?, ?)", name, adminID).Error
		} else {
			err = tx.Exec("UPDATE towns SET league_admin_id = ? WHERE town_id = ?", adminID, ids[0]).Error
		}
		if err != nil {
			return 0, rowErr(r, err)
		}
		count++
	}
	return count, nil
}

func (s *Service) importTeams(tx *gorm.DB, rows []Row) (int, error) {
	count := 0
	for _, r := range rows {
		townName := r.get("town")
		level := r.get("level")
		if townName == "" || level == "" {
			return 0, rowErr(r, fmt.Errorf("town and level are required"))
		}
		if !models.ValidLevel(level) {
			return 0, rowErr(r, fmt.Errorf("invalid level %q", level))
		}

		var townIDs []uint
		err := tx.Raw("SELECT town_id FROM towns WHERE name = ?", townName).Scan(&townIDs).Error
		if err != nil {
			return 0, rowErr(r, err)
		}
		if len(townIDs) == 0 {
			return 0, rowErr(r, fmt.Errorf("town %q does not exist", townName))
		}

		var coachID *uint
		if email := r.get("coach_email"); email != "" {
			var ids []uint
			err := tx.Raw("SELECT coach_id FROM coaches WHERE email = ?", email).Scan(&ids).Error
			if err != nil {
				return 0, rowErr(r, err)
			}
			if len(ids) == 0 {
				return 0, rowErr(r, fmt.Errorf("coach with email %q not found", email))
			}
			coachID = &ids[0]
		}

		name := r.get("name")
		var teamIDs []uint
		err = tx.Raw(
			"SELECT team_id FROM teams WHERE town_id = ? AND level = ? AND name = ?",
			townIDs[0], level, name,
		).Scan(&teamIDs).Error
		if err != nil {
			return 0, rowErr(r, err)
		}

		if len(teamIDs) == 0 {
			err = tx.Exec(
				"INSERT INTO teams (town_id, level, name, coach_id) VALUES (?, ?, ?, ?)",
				townIDs[0], level, name, coachID,
			).Error
		} else {
			err = tx.Exec("UPDATE teams SET coach_id = ? WHERE team_id = ?", coachID, teamIDs[0]).Error
		}
		if err != nil {
			return 0, rowErr(r, err)
		}
		count++
	}
	return count, nil
}

func (s *Service) importUmpires(tx *gorm.DB, rows []Row) (int, error) {
	count := 0
	for _, r := range rows {
		email := r.get("email")
		if email == "" {
			return 0, rowErr(r, fmt.Errorf("email is required"))
		}

		adult := ParseBool(r.get("adult"))
		patched := ParseBool(r.get("patched"))

		var ids []uint
		err := tx.Raw("SELECT umpire_id FROM umpires WHERE email = ?", email).Scan(&ids).Error
		if err != nil {
			return 0, rowErr(r, err)
		}

		if len(ids) == 0 {
			err = tx.Exec(
				"INSERT INTO umpires (first_name, last_name, email, phone, adult, patched, is_assigner) VALUES (?, ?, ?, ?, ?, ?, ?)",
				r.get("first_name"), r.get("last_name"), email, r.get("phone"), adult, patched, false,
			).Error
		} else {
			err = tx.Exec(
				"UPDATE umpires SET first_name = ?, last_name = ?, phone = ?, adult = ?, patched = ? WHERE umpire_id = ?",
				r.get("first_name"), r.get("last_name"), r.get("phone"), adult, patched, ids[0],
			).Error
		}
		if err != nil {
			return 0, rowErr(r, err)
		}
		count++
	}
	return count, nil
}

func (s *Service) importGames(tx *gorm.DB, rows []Row) (int, error) {
	count := 0
	for _, r := range rows {
		err := s.importGameRow(tx, r)
		if err != nil {
			// Game rows resolve two references; echo the raw row so the
			// operator can see which one is broken.
			return 0, fmt.Errorf("row %d: %v (row: %s)", r.Num, err, r.echo())
		}
		count++
	}
	return count, nil
}

func (s *Service) importGameRow(tx *gorm.DB, r Row) error {
	date, err := models.ParseDate(r.get("date"))
	if err != nil {
		return fmt.Errorf("invalid date %q", r.get("date"))
	}
	timeSlot := r.get("time")
	if !models.ValidTimeSlot(timeSlot) {
		return fmt.Errorf("invalid time %q", timeSlot)
	}
	field := r.get("field")
	if !models.ValidField(field) {
		return fmt.Errorf("invalid field %q", field)
	}

	homeID, err := resolveTeam(tx, r, "home")
	if err != nil {
		return err
	}
	awayID, err := resolveTeam(tx, r, "away")
	if err != nil {
		return err
	}
	if homeID == awayID {
		return fmt.Errorf("home and away teams cannot be the same")
	}

	var ids []uint
	err = tx.Raw(
		"SELECT game_id FROM games WHERE date = ? AND time = ? AND field = ?",
		date, timeSlot, field,
	).Scan(&ids).Error
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		return tx.Exec(
			"INSERT INTO games (home_team_id, away_team_id, date, time, field, status) VALUES (?, ?, ?, ?, ?, ?)",
			homeID, awayID, date, timeSlot, field, models.GameScheduled,
		).Error
	}
	return tx.Exec(
		"UPDATE games SET home_team_id = ?, away_team_id = ? WHERE game_id = ?",
		homeID, awayID, ids[0],
	).Error
}

// resolveTeam finds the home or away team by (town, level) and, when the town
// fields more than one team at a level, the disambiguating team name.
func resolveTeam(tx *gorm.DB, r Row, side string) (uint, error) {
	town := r.get(side + "_town")
	level := r.get(side + "_level")
	name := r.get(side + "_team_name")

	query := "SELECT t.team_id, t.name FROM teams t JOIN towns w ON w.town_id = t.town_id WHERE w.name = ? AND t.level = ?"
	args := []interface{}{town, level}
	if name != "" {
		query += " AND t.name = ?"
		args = append(args, name)
	}

	var matches []struct {
		TeamID uint
		Name   string
	}
	err := tx.Raw(query, args...).Scan(&matches).Error
	if err != nil {
		return 0, err
	}

	switch len(matches) {
	case 1:
		return matches[0].TeamID, nil
	case 0:
		if name != "" {
			return 0, fmt.Errorf("%s team '%s %s - %s' does not exist", side, town, level, name)
		}
		return 0, fmt.Errorf("no %s team found for %s", level, town)
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			if m.Name != "" {
				names = append(names, m.Name)
			}
		}
		return 0, fmt.Errorf("multiple %s teams found for %s (%s), specify the %s_team_name column",
			level, town, strings.Join(names, ", "), side)
	}
}
