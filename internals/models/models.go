package models

import "time"

// LeagueAdmin runs the league in a given town.
type LeagueAdmin struct {
	AdminID   uint   `json:"admin_id" gorm:"primaryKey;column:admin_id"`
	FirstName string `json:"first_name" gorm:"not null"`
	LastName  string `json:"last_name" gorm:"not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string `json:"phone"`
}

type Coach struct {
	CoachID   uint   `json:"coach_id" gorm:"primaryKey;column:coach_id"`
	FirstName string `json:"first_name" gorm:"not null"`
	LastName  string `json:"last_name" gorm:"not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string `json:"phone"`
}

type Town struct {
	TownID        uint         `json:"town_id" gorm:"primaryKey;column:town_id"`
	Name          string       `json:"name" gorm:"uniqueIndex;not null"`
	LeagueAdminID *uint        `json:"league_admin_id"`
	LeagueAdmin   *LeagueAdmin `json:"league_admin,omitempty" gorm:"foreignKey:LeagueAdminID;constraint:OnDelete:SET NULL"`
}

// Team belongs to exactly one town. Multiple same-level teams per town are
// allowed only when named differently, hence the (town, level, name) key.
type Team struct {
	TeamID  uint   `json:"team_id" gorm:"primaryKey;column:team_id"`
	TownID  uint   `json:"town_id" gorm:"not null;uniqueIndex:uq_team_town_level_name"`
	Town    *Town  `json:"town,omitempty" gorm:"foreignKey:TownID;constraint:OnDelete:CASCADE"`
	Level   string `json:"level" gorm:"not null;uniqueIndex:uq_team_town_level_name"`
	CoachID *uint  `json:"coach_id"`
	Coach   *Coach `json:"coach,omitempty" gorm:"foreignKey:CoachID;constraint:OnDelete:SET NULL"`
	Name    string `json:"name" gorm:"default:'';uniqueIndex:uq_team_town_level_name"`
}

type Umpire struct {
	UmpireID   uint   `json:"umpire_id" gorm:"primaryKey;column:umpire_id"`
	FirstName  string `json:"first_name" gorm:"not null"`
	LastName   string `json:"last_name" gorm:"not null"`
	Email      string `json:"email" gorm:"uniqueIndex;not null"`
	Phone      string `json:"phone"`
	Adult      bool   `json:"adult" gorm:"default:false"`
	Patched    bool   `json:"patched" gorm:"default:false"`
	IsAssigner bool   `json:"is_assigner" gorm:"default:false"`
	// Optional link to an external login identity; the platform itself does
	// not manage accounts.
	UserRef *string `json:"user_ref,omitempty"`
}

func (u Umpire) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Game is keyed by (date, time, field); two games can never share a slot on
// the same field.
type Game struct {
	GameID     uint      `json:"game_id" gorm:"primaryKey;column:game_id"`
	HomeTeamID uint      `json:"home_team_id" gorm:"not null"`
	HomeTeam   *Team     `json:"home_team,omitempty" gorm:"foreignKey:HomeTeamID;constraint:OnDelete:CASCADE"`
	AwayTeamID uint      `json:"away_team_id" gorm:"not null"`
	AwayTeam   *Team     `json:"away_team,omitempty" gorm:"foreignKey:AwayTeamID;constraint:OnDelete:CASCADE"`
	Date       time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:uq_game_slot"`
	Time       string    `json:"time" gorm:"not null;uniqueIndex:uq_game_slot"`
	Field      string    `json:"field" gorm:"not null;uniqueIndex:uq_game_slot"`
	Status     string    `json:"status" gorm:"not null;default:'scheduled'"`

	Assignments []UmpireAssignment `json:"assignments,omitempty" gorm:"foreignKey:GameID"`
}

// UmpireAssignment links one umpire to one game. PayAmount is cents, fixed at
// creation time and touched again only by the worked-status transition or a
// manual override.
type UmpireAssignment struct {
	AssignmentID uint    `json:"assignment_id" gorm:"primaryKey;column:assignment_id"`
	GameID       uint    `json:"game_id" gorm:"not null;uniqueIndex:uq_assignment_game_umpire"`
	Game         *Game   `json:"game,omitempty" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
	UmpireID     uint    `json:"umpire_id" gorm:"not null;uniqueIndex:uq_assignment_game_umpire"`
	Umpire       *Umpire `json:"umpire,omitempty" gorm:"foreignKey:UmpireID;constraint:OnDelete:CASCADE"`
	Position     string  `json:"position" gorm:"not null"`
	PayAmount    int64   `json:"pay_amount" gorm:"not null;default:0"`
	WorkedStatus string  `json:"worked_status" gorm:"not null;default:'assigned'"`
}

// UmpireAvailability is an explicit per-slot declaration. Absence of a row
// means the umpire is not available; scheduling never assumes otherwise.
type UmpireAvailability struct {
	AvailabilityID uint      `json:"availability_id" gorm:"primaryKey;column:availability_id"`
	UmpireID       uint      `json:"umpire_id" gorm:"not null;uniqueIndex:uq_availability_umpire_slot"`
	Umpire         *Umpire   `json:"umpire,omitempty" gorm:"foreignKey:UmpireID;constraint:OnDelete:CASCADE"`
	Date           time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:uq_availability_umpire_slot"`
	TimeSlot       string    `json:"time_slot" gorm:"not null;default:'all';uniqueIndex:uq_availability_umpire_slot"`
	Status         string    `json:"status" gorm:"not null;default:'available'"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PayRate rows are effective-dated; the newest row whose effective_date is not
// in the future governs all pay calculations. Amounts are cents.
type PayRate struct {
	RateID         uint      `json:"rate_id" gorm:"primaryKey;column:rate_id"`
	SoloPatched    int64     `json:"solo_patched" gorm:"not null"`
	SoloUnpatched  int64     `json:"solo_unpatched" gorm:"not null"`
	PlatePatched   int64     `json:"plate_patched" gorm:"not null"`
	PlateUnpatched int64     `json:"plate_unpatched" gorm:"not null"`
	BaseUnpatched  int64     `json:"base_unpatched" gorm:"not null"`
	EffectiveDate  time.Time `json:"effective_date" gorm:"type:date;not null"`
}

// UmpirePayment records money handed to an umpire for a period. Amount is
// cents.
type UmpirePayment struct {
	PaymentID     uint       `json:"payment_id" gorm:"primaryKey;column:payment_id"`
	UmpireID      uint       `json:"umpire_id" gorm:"not null"`
	Umpire        *Umpire    `json:"umpire,omitempty" gorm:"foreignKey:UmpireID;constraint:OnDelete:CASCADE"`
	Amount        int64      `json:"amount" gorm:"not null"`
	Paid          bool       `json:"paid" gorm:"default:false"`
	PaidDate      *time.Time `json:"paid_date" gorm:"type:date"`
	PeriodStart   time.Time  `json:"period_start" gorm:"type:date;not null"`
	PeriodEnd     time.Time  `json:"period_end" gorm:"type:date;not null"`
	PaymentMethod string     `json:"payment_method"`
	Notes         string     `json:"notes"`
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&LeagueAdmin{},
		&Coach{},
		&Town{},
		&Team{},
		&Umpire{},
		&Game{},
		&UmpireAssignment{},
		&UmpireAvailability{},
		&PayRate{},
		&UmpirePayment{},
	}
}
