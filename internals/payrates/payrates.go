package payrates

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/pkg/kvstore"

	"gorm.io/gorm"
)

// currentRateKey caches the governing PayRate row; invalidated whenever a new
// rate row is created.
const currentRateKey = "pay_rates_current"

type Service struct {
	KV kvstore.KVStore
	DB *gorm.DB
}

func New(kv kvstore.KVStore, db *gorm.DB) *Service {
	return &Service{
		KV: kv,
		DB: db,
	}
}

// Defaults are the built-in rates used when the pay_rates table is empty.
func Defaults() models.PayRate {
	return models.PayRate{
		SoloPatched:    5000,
		SoloUnpatched:  4000,
		PlatePatched:   3500,
		PlateUnpatched: 3000,
		BaseUnpatched:  2500,
		EffectiveDate:  models.Today(),
	}
}

// Current returns the rate row with the newest effective_date not in the
// future, creating the defaults row if none exists yet.
func (s *Service) Current() (models.PayRate, error) {
	if cached, err := s.KV.Get(currentRateKey); err == nil {
		var rate models.PayRate
		if err := json.Unmarshal([]byte(cached), &rate); err == nil {
			return rate, nil
		}
	}

	var rows []models.PayRate
	err := s.DB.Raw(
		"SELECT * FROM pay_rates WHERE effective_date <= ? ORDER BY effective_date DESC LIMIT 1",
		models.Today(),
	).Scan(&rows).Error
	if err != nil {
		return models.PayRate{}, err
	}

	var rate models.PayRate
	if len(rows) == 0 {
		rate = Defaults()
		err = s.DB.Exec(
			"INSERT INTO pay_rates (solo_patched, solo_unpatched, plate_patched, plate_unpatched, base_unpatched, effective_date) VALUES (?, ?, ?, ?, ?, ?)",
			rate.SoloPatched, rate.SoloUnpatched, rate.PlatePatched, rate.PlateUnpatched, rate.BaseUnpatched, rate.EffectiveDate,
		).Error
		if err != nil {
			return models.PayRate{}, fmt.Errorf("creating default pay rates: %w", err)
		}
	} else {
		rate = rows[0]
	}

	s.cache(rate)
	return rate, nil
}

// Create records a new effective-dated rate row.
func (s *Service) Create(rate models.PayRate) error {
	for _, amount := range []int64{rate.SoloPatched, rate.SoloUnpatched, rate.PlatePatched, rate.PlateUnpatched, rate.BaseUnpatched} {
		if amount < 0 {
			return fmt.Errorf("pay rates cannot be negative")
		}
	}
	if rate.EffectiveDate.IsZero() {
		rate.EffectiveDate = models.Today()
	}

	err := s.DB.Exec(
		"INSERT INTO pay_rates (solo_patched, solo_unpatched, plate_patched, plate_unpatched, base_unpatched, effective_date) VALUES (?, ?, ?, ?, ?, ?)",
		rate.SoloPatched, rate.SoloUnpatched, rate.PlatePatched, rate.PlateUnpatched, rate.BaseUnpatched, rate.EffectiveDate,
	).Error
	if err != nil {
		return err
	}

	if err := s.KV.Delete(currentRateKey); err != nil {
		log.Printf("pay rate cache invalidation failed: %v", err)
	}
	return nil
}

// Resolve returns the cents owed for one assignment at the current rates.
func (s *Service) Resolve(patched bool, position string) (int64, error) {
	rate, err := s.Current()
	if err != nil {
		return 0, err
	}
	return RateFor(rate, patched, position), nil
}

// RateFor indexes a rate row by position and patched flag. Base umpires are
// always paid the unpatched base rate. Unknown positions resolve to 0.
func RateFor(rate models.PayRate, patched bool, position string) int64 {
	switch position {
	case models.PositionSolo:
		if patched {
			return rate.SoloPatched
		}
		return rate.SoloUnpatched
	case models.PositionPlate:
		if patched {
			return rate.PlatePatched
		}
		return rate.PlateUnpatched
	case models.PositionBase:
		return rate.BaseUnpatched
	}
	return 0
}

func (s *Service) cache(rate models.PayRate) {
	data, err := json.Marshal(rate)
	if err != nil {
		return
	}
	if err := s.KV.Set(currentRateKey, string(data)); err != nil {
		log.Printf("pay rate cache write failed: %v", err)
	}
}
