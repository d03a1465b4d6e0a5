package refdata

import (
	"fmt"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"

	"gorm.io/gorm"
)

// Service manages the reference records everything else hangs off: league
// admins, coaches, towns, and teams.
type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

type PersonInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (in PersonInput) validate() error {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return fmt.Errorf("first_name, last_name and email are required")
	}
	if in.Phone != "" && !models.ValidPhone(in.Phone) {
		return fmt.Errorf("phone number must be entered in the format '+999999999', up to 15 digits")
	}
	return nil
}

func (s *Service) CreateLeagueAdmin(in PersonInput) (models.LeagueAdmin, error) {
	if err := in.validate(); err != nil {
		return models.LeagueAdmin{}, err
	}

	var count int64
	err := s.DB.Raw("SELECT COUNT(*) FROM league_admins WHERE email = ?", in.Email).Scan(&count).Error
	if err != nil {
		return models.LeagueAdmin{}, err
	}
	if count > 0 {
		return models.LeagueAdmin{}, fmt.Errorf("a league admin with email %q already exists", in.Email)
	}

	admin := models.LeagueAdmin{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone}
	err = s.DB.Raw(
		"INSERT INTO league_admins (first_name, last_name, email, phone) VALUES (?, ?, ?, ?) RETURNING admin_id",
		admin.FirstName, admin.LastName, admin.Email, admin.Phone,
	).Scan(&admin.AdminID).Error
	return admin, err
}

func (s *Service) ListLeagueAdmins() ([]models.LeagueAdmin, error) {
	admins := make([]models.LeagueAdmin, 0)
	err := s.DB.Raw("SELECT * FROM league_admins ORDER BY last_name, first_name").Scan(&admins).Error
	return admins, err
}

func (s *Service) DeleteLeagueAdmin(adminID uint) error {
	return deleted("admin", adminID, s.DB.Exec("DELETE FROM league_admins WHERE admin_id = ?", adminID))
}

func (s *Service) CreateCoach(in PersonInput) (models.Coach, error) {
	if err := in.validate(); err != nil {
		return models.Coach{}, err
	}

	var count int64
	err := s.DB.Raw("SELECT COUNT(*) FROM coaches WHERE email = ?", in.Email).Scan(&count).Error
	if err != nil {
		return models.Coach{}, err
	}
	if count > 0 {
		return models.Coach{}, fmt.Errorf("a coach with email %q already exists", in.Email)
	}

	coach := models.Coach{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone}
	err = s.DB.Raw(
		"INSERT INTO coaches (first_name, last_name, email, phone) VALUES (?, ?, ?, ?) RETURNING coach_id",
		coach.FirstName, coach.LastName, coach.Email, coach.Phone,
	).Scan(&coach.CoachID).Error
	return coach, err
}

func (s *Service) ListCoaches() ([]models.Coach, error) {
	coaches := make([]models.Coach, 0)
	err := s.DB.Raw("SELECT * FROM coaches ORDER BY last_name, first_name").Scan(&coaches).Error
	return coaches, err
}

func (s *Service) DeleteCoach(coachID uint) error {
	return deleted("coach", coachID, s.DB.Exec("DELETE FROM coaches WHERE coach_id = ?", coachID))
}

type TownInput struct {
	Name          string `json:"name"`
	LeagueAdminID *uint  `json:"league_admin_id"`
}

func (s *Service) CreateTown(in TownInput) (models.Town, error) {
	if in.Name == "" {
		return models.Town{}, fmt.Errorf("town name is required")
	}

	var count int64
	err := s.DB.Raw("SELECT COUNT(*) FROM towns WHERE name = ?", in.Name).Scan(&count).Error
	if err != nil {
		return models.Town{}, err
	}
	if count > 0 {
		return models.Town{}, fmt.Errorf("town %q already exists", in.Name)
	}

	town := models.Town{Name: in.Name, LeagueAdminID: in.LeagueAdminID}
	err = s.DB.Raw(
		"INSERT INTO towns (name, league_admin_id) VALUES (?, ?) RETURNING town_id",
		town.Name, town.LeagueAdminID,
	).Scan(&town.TownID).Error
	return town, err
}

func (s *Service) ListTowns() ([]models.Town, error) {
	towns := make([]models.Town, 0)
	err := s.DB.Raw("SELECT * FROM towns ORDER BY name").Scan(&towns).Error
	return towns, err
}

// DeleteTown removes a town; its teams go with it via the cascading foreign
// key.
func (s *Service) DeleteTown(townID uint) error {
	return deleted("town", townID, s.DB.Exec("DELETE FROM towns WHERE town_id = ?", townID))
}

type TeamInput struct {
	TownID  uint   `json:"town_id"`
	Level   string `json:"level"`
	Name    string `json:"name"`
	CoachID *uint  `json:"coach_id"`
}

func (s *Service) CreateTeam(in TeamInput) (models.Team, error) {
	if !models.ValidLevel(in.Level) {
		return models.Team{}, fmt.Errorf("invalid level %q, want one of AAA, Minors, Majors", in.Level)
	}

	var townCount int64
	err := s.DB.Raw("SELECT COUNT(*) FROM towns WHERE town_id = ?", in.TownID).Scan(&townCount).Error
	if err != nil {
		return models.Team{}, err
	}
	if townCount == 0 {
		return models.Team{}, fmt.Errorf("town %d: %w", in.TownID, gorm.ErrRecordNotFound)
	}

	var dup int64
	err = s.DB.Raw(
		"SELECT COUNT(*) FROM teams WHERE town_id = ? AND level = ? AND name = ?",
		in.TownID, in.Level, in.Name,
	).Scan(&dup).Error
	if err != nil {
		return models.Team{}, err
	}
	if dup > 0 {
		return models.Team{}, fmt.Errorf("a %s team with that name already exists in this town", in.Level)
	}

	team := models.Team{TownID: in.TownID, Level: in.Level, Name: in.Name, CoachID: in.CoachID}
	err = s.DB.Raw(
		"INSERT INTO teams (town_id, level, name, coach_id) VALUES (?, ?, ?, ?) RETURNING team_id",
		team.TownID, team.Level, team.Name, team.CoachID,
	).Scan(&team.TeamID).Error
	return team, err
}

func (s *Service) ListTeams() ([]models.Team, error) {
	teams := make([]models.Team, 0)
	err := s.DB.Preload("Town").Preload("Coach").
		Joins("JOIN towns ON towns.town_id = teams.town_id").
		Order("towns.name, teams.level, teams.name").
		Find(&teams).Error
	return teams, err
}

func (s *Service) DeleteTeam(teamID uint) error {
	return deleted("team", teamID, s.DB.Exec("DELETE FROM teams WHERE team_id = ?", teamID))
}

func deleted(kind string, id uint, result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, gorm.ErrRecordNotFound)
	}
	return nil
}
