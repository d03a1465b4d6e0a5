package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/assignments"
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/payroll"
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/pkg/kvstore"

	"gorm.io/gorm"
)

// Service owns the game catalog.
type Service struct {
	DB *gorm.DB
	as *assignments.Service
}

func New(kv kvstore.KVStore, db *gorm.DB) *Service {
	return &Service{
		DB: db,
		as: assignments.New(kv, db),
	}
}

type GameInput struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Field      string `json:"field"`
	HomeTeamID uint   `json:"home_team_id"`
	AwayTeamID uint   `json:"away_team_id"`
}

func (in GameInput) validate() (time.Time, error) {
	date, err := models.ParseDate(in.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", in.Date)
	}
	if !models.ValidTimeSlot(in.Time) {
		return time.Time{}, fmt.Errorf("invalid time slot %q", in.Time)
	}
	if !models.ValidField(in.Field) {
		return time.Time{}, fmt.Errorf("invalid field %q", in.Field)
	}
	if in.HomeTeamID == 0 || in.AwayTeamID == 0 {
		return time.Time{}, fmt.Errorf("home and away teams are required")
	}
	if in.HomeTeamID == in.AwayTeamID {
		return time.Time{}, fmt.Errorf("home and away teams cannot be the same")
	}
	return date, nil
}

func (s *Service) CreateGame(in GameInput) (models.Game, error) {
	date, err := in.validate()
	if err != nil {
		return models.Game{}, err
	}

	var count int64
	err = s.DB.Raw(
		"SELECT COUNT(*) FROM games WHERE date = ? AND time = ? AND field = ?",
		date, in.Time, in.Field,
	).Scan(&count).Error
	if err != nil {
		return models.Game{}, err
	}
	if count > 0 {
		return models.Game{}, fmt.Errorf("a game already exists on %s at %s on field %s", in.Date, in.Time, in.Field)
	}

	game := models.Game{
		HomeTeamID: in.HomeTeamID,
		AwayTeamID: in.AwayTeamID,
		Date:       date,
		Time:       in.Time,
		Field:      in.Field,
		Status:     models.GameScheduled,
	}
	err = s.DB.Raw(
		"INSERT INTO games (home_team_id, away_team_id, date, time, field, status) VALUES (?, ?, ?, ?, ?, ?) RETURNING game_id",
		game.HomeTeamID, game.AwayTeamID, game.Date, game.Time, game.Field, game.Status,
	).Scan(&game.GameID).Error
	return game, err
}

// BulkCreate processes each submitted game independently; invalid rows are
// reported by index and the valid rest still land.
func (s *Service) BulkCreate(inputs []GameInput) (int, []string) {
	created := 0
	var errs []string
	for i, in := range inputs {
		if _, err := s.CreateGame(in); err != nil {
			errs = append(errs, fmt.Sprintf("game %d: %v", i+1, err))
			continue
		}
		created++
	}
	return created, errs
}

// DeleteGame removes a game and, via the cascading foreign key, its
// assignments.
func (s *Service) DeleteGame(gameID uint) error {
	result := s.DB.Exec("DELETE FROM games WHERE game_id = ?", gameID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("game %d: %w", gameID, gorm.ErrRecordNotFound)
	}
	return nil
}

// WeeklySchedule lists the games of one Monday-starting week, selected by
// offset from the current week, in chronological slot order.
func (s *Service) WeeklySchedule(weekOffset int) (string, string, []models.Game, error) {
	start := payroll.WeekStart(models.Today()).AddDate(0, 0, 7*weekOffset)
	end := start.AddDate(0, 0, 6)

	var games []models.Game
	err := s.DB.Preload("HomeTeam.Town").Preload("AwayTeam.Town").
		Preload("Assignments.Umpire").
		Where("date >= ? AND date <= ?", start, end).
		Find(&games).Error
	if err != nil {
		return "", "", nil, err
	}

	sortGames(games)
	return start.Format(models.DateFormat), end.Format(models.DateFormat), games, nil
}

// UnassignedGame is a game still needing umpires, with the umpires eligible
// for that specific slot.
type UnassignedGame struct {
	Game             models.Game     `json:"game"`
	Needed           int             `json:"needed"`
	AvailableUmpires []models.Umpire `json:"available_umpires"`
}

type CoverageStats struct {
	TotalGames        int     `json:"total_games"`
	FullyAssigned     int     `json:"fully_assigned"`
	PartiallyAssigned int     `json:"partially_assigned"`
	Unassigned        int     `json:"unassigned"`
	CoveragePercent   float64 `json:"coverage_percent"`
}

// UnassignedGames lists games that have fewer than two umpires, split into
// fully unassigned and partially assigned, each with its eligible umpires.
func (s *Service) UnassignedGames() ([]UnassignedGame, []UnassignedGame, CoverageStats, error) {
	var games []models.Game
	err := s.DB.Preload("HomeTeam.Town").Preload("AwayTeam.Town").
		Preload("Assignments.Umpire").
		Find(&games).Error
	if err != nil {
		return nil, nil, CoverageStats{}, err
	}
	sortGames(games)

	stats := CoverageStats{TotalGames: len(games)}
	fully := make([]UnassignedGame, 0)
	partially := make([]UnassignedGame, 0)
	for _, game := range games {
		n := len(game.Assignments)
		if n >= 2 {
			stats.FullyAssigned++
			continue
		}

		eligible, err := s.as.EligibleUmpires(game)
		if err != nil {
			return nil, nil, CoverageStats{}, err
		}
		entry := UnassignedGame{Game: game, Needed: 2 - n, AvailableUmpires: eligible}
		if n == 0 {
			stats.Unassigned++
			fully = append(fully, entry)
		} else {
			stats.PartiallyAssigned++
			partially = append(partially, entry)
		}
	}
	if stats.TotalGames > 0 {
		stats.CoveragePercent = float64(stats.FullyAssigned) / float64(stats.TotalGames) * 100
	}
	return fully, partially, stats, nil
}

// sortGames orders chronologically: date, then slot order, then field.
func sortGames(games []models.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].Date.Equal(games[j].Date) {
			return games[i].Date.Before(games[j].Date)
		}
		oi, oj := models.TimeSlotOrder(games[i].Time), models.TimeSlotOrder(games[j].Time)
		if oi != oj {
			return oi < oj
		}
		return games[i].Field < games[j].Field
	})
}
