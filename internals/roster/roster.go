package roster

import (
	"fmt"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"

	"gorm.io/gorm"
)

// Service manages the umpire roster and per-slot availability declarations.
type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

type UmpireInput struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Adult      bool   `json:"adult"`
	Patched    bool   `json:"patched"`
	IsAssigner bool   `json:"is_assigner"`
}

func (in UmpireInput) validate() error {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return fmt.Errorf("first_name, last_name and email are required")
	}
	if in.Phone != "" && !models.ValidPhone(in.Phone) {
		return fmt.Errorf("phone number must be entered in the format '+999999999', up to 15 digits")
	}
	return nil
}

func (s *Service) CreateUmpire(in UmpireInput) (models.Umpire, error) {
	if err := in.validate(); err != nil {
		return models.Umpire{}, err
	}

	var count int64
	err := s.DB.Raw("SELECT COUNT(*) FROM umpires WHERE email = ?", in.Email).Scan(&count).Error
	if err != nil {
		return models.Umpire{}, err
	}
	if count > 0 {
		return models.Umpire{}, fmt.Errorf("an umpire with email %q already exists", in.Email)
	}

	umpire := models.Umpire{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		Adult:      in.Adult,
		Patched:    in.Patched,
		IsAssigner: in.IsAssigner,
	}
	err = s.DB.Raw(
		"INSERT INTO umpires (first_name, last_name, email, phone, adult, patched, is_assigner) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING umpire_id",
		umpire.FirstName, umpire.LastName, umpire.Email, umpire.Phone, umpire.Adult, umpire.Patched, umpire.IsAssigner,
	).Scan(&umpire.UmpireID).Error
	return umpire, err
}

func (s *Service) UpdateUmpire(umpireID uint, in UmpireInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	result := s.DB.Exec(
		"UPDATE umpires SET first_name = ?, last_name = ?, email = ?, phone = ?, adult = ?, patched = ?, is_assigner = ? WHERE umpire_id = ?",
		in.FirstName, in.LastName, in.Email, in.Phone, in.Adult, in.Patched, in.IsAssigner, umpireID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("umpire %d: %w", umpireID, gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *Service) ListUmpires() ([]models.Umpire, error) {
	umpires := make([]models.Umpire, 0)
	err := s.DB.Raw("SELECT * FROM umpires ORDER BY last_name, first_name").Scan(&umpires).Error
	return umpires, err
}

func (s *Service) DeleteUmpire(umpireID uint) error {
	result := s.DB.Exec("DELETE FROM umpires WHERE umpire_id = ?", umpireID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("umpire %d: %w", umpireID, gorm.ErrRecordNotFound)
	}
	return nil
}

// AvailabilityStatusNone deletes the declaration; scheduling then treats the
// slot as unavailable again.
const AvailabilityStatusNone = "none"

type AvailabilityInput struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

// SetAvailability upserts one declaration keyed by (umpire, date, time_slot).
// Repeated submissions with the same key overwrite the status and notes.
func (s *Service) SetAvailability(umpireID uint, in AvailabilityInput) error {
	date, err := models.ParseDate(in.Date)
	if err != nil {
		return fmt.Errorf("invalid date %q", in.Date)
	}
	if !models.ValidTimeSlot(in.TimeSlot) && in.TimeSlot != models.TimeSlotAll {
		return fmt.Errorf("invalid time slot %q", in.TimeSlot)
	}
	if !models.ValidAvailability(in.Status) && in.Status != AvailabilityStatusNone {
		return fmt.Errorf("invalid availability status %q", in.Status)
	}

	if in.Status == AvailabilityStatusNone {
		return s.DB.Exec(
			"DELETE FROM umpire_availabilities WHERE umpire_id = ? AND date = ? AND time_slot = ?",
			umpireID, date, in.TimeSlot,
		).Error
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Raw(
			"SELECT COUNT(*) FROM umpire_availabilities WHERE umpire_id = ? AND date = ? AND time_slot = ?",
			umpireID, date, in.TimeSlot,
		).Scan(&count).Error
		if err != nil {
			return err
		}

		if count == 0 {
			return tx.Exec(
				"INSERT INTO umpire_availabilities (umpire_id, date, time_slot, status, notes, created_at, updated_at) VALUES (?, ?, ?, ?, ?, NOW(), NOW())",
				umpireID, date, in.TimeSlot, in.Status, in.Notes,
			).Error
		}
		return tx.Exec(
			"UPDATE umpire_availabilities SET status = ?, notes = ?, updated_at = NOW() WHERE umpire_id = ? AND date = ? AND time_slot = ?",
			in.Status, in.Notes, umpireID, date, in.TimeSlot,
		).Error
	})
}

func (s *Service) ListAvailability(umpireID uint) ([]models.UmpireAvailability, error) {
	rows := make([]models.UmpireAvailability, 0)
	err := s.DB.Raw(
		"SELECT * FROM umpire_availabilities WHERE umpire_id = ? ORDER BY date, time_slot",
		umpireID,
	).Scan(&rows).Error
	return rows, err
}

// DateSlots is one game date with its scheduled time slots in chronological
// order.
type DateSlots struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// GameDateSlots lists the distinct (date, time) pairs that have games, the
// grid an umpire declares availability against.
func (s *Service) GameDateSlots() ([]DateSlots, error) {
	var rows []struct {
		Date string
		Time string
	}
	err := s.DB.Raw("SELECT DISTINCT to_char(date, 'YYYY-MM-DD') AS date, time FROM games ORDER BY date").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]DateSlots, 0)
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.Date]
		if !ok {
			out = append(out, DateSlots{Date: row.Date})
			i = len(out) - 1
			index[row.Date] = i
		}
		out[i].Slots = append(out[i].Slots, row.Time)
	}
	for i := range out {
		sortSlots(out[i].Slots)
	}
	return out, nil
}

// GridRow is one umpire's availability across every game slot, keyed
// "date_slot".
type GridRow struct {
	Umpire models.Umpire     `json:"umpire"`
	Slots  map[string]string `json:"slots"`
}

// AvailabilityGrid reports every umpire's declared status for each game slot;
// undeclared slots are simply absent from the map.
func (s *Service) AvailabilityGrid() ([]DateSlots, []GridRow, error) {
	dates, err := s.GameDateSlots()
	if err != nil {
		return nil, nil, err
	}

	umpires, err := s.ListUmpires()
	if err != nil {
		return nil, nil, err
	}

	var declared []struct {
		UmpireID uint
		Date     string
		TimeSlot string
		Status   string
	}
	err = s.DB.Raw(
		"SELECT umpire_id, to_char(date, 'YYYY-MM-DD') AS date, time_slot, status FROM umpire_availabilities",
	).Scan(&declared).Error
	if err != nil {
		return nil, nil, err
	}

	byUmpire := make(map[uint]map[string]string)
	for _, d := range declared {
		if byUmpire[d.UmpireID] == nil {
			byUmpire[d.UmpireID] = make(map[string]string)
		}
		byUmpire[d.UmpireID][d.Date+"_"+d.TimeSlot] = d.Status
	}

	rows := make([]GridRow, 0, len(umpires))
	for _, u := range umpires {
		slots := byUmpire[u.UmpireID]
		if slots == nil {
			slots = make(map[string]string)
		}
		rows = append(rows, GridRow{Umpire: u, Slots: slots})
	}
	return dates, rows, nil
}

func sortSlots(slots []string) {
	for i := 1; i < len(slots); i++ {
		for j := i; j > 0 && models.TimeSlotOrder(slots[j]) < models.TimeSlotOrder(slots[j-1]); j-- {
			slots[j], slots[j-1] = slots[j-1], slots[j]
		}
	}
}
