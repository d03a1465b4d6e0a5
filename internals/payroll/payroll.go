package payroll

import (
	"time"

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

// UmpireSummary is the payroll position of one umpire. Projected counts
// assignments still pending at current rates; actual owed counts worked
// assignments at their stored pay. Amounts are cents.
type UmpireSummary struct {
	UmpireID        uint   `json:"umpire_id"`
	Name            string `json:"name"`
	Projected       int64  `json:"projected"`
	ActualOwed      int64  `json:"actual_owed"`
	TotalPaid       int64  `json:"total_paid"`
	ActualUnpaid    int64  `json:"actual_unpaid"`
	ProjectedUnpaid int64  `json:"projected_unpaid"`
}

type GrandTotals struct {
	Projected       int64 `json:"projected"`
	ActualOwed      int64 `json:"actual_owed"`
	TotalPaid       int64 `json:"total_paid"`
	ActualUnpaid    int64 `json:"actual_unpaid"`
	ProjectedUnpaid int64 `json:"projected_unpaid"`
}

// SummarizeUmpires derives the per-umpire payroll report. Missing sums are
// zero, never an error.
func (s *Service) SummarizeUmpires() ([]UmpireSummary, GrandTotals, error) {
	rates, err := s.Rates.Current()
	if err != nil {
		return nil, GrandTotals{}, err
	}

	var umpires []models.Umpire
	err = s.DB.Raw("SELECT * FROM umpires ORDER BY last_name, first_name").Scan(&umpires).Error
	if err != nil {
		return nil, GrandTotals{}, err
	}

	summaries := make([]UmpireSummary, 0, len(umpires))
	var totals GrandTotals
	for _, u := range umpires {
		summary, err := s.summarizeUmpire(u, rates)
		if err != nil {
			return nil, GrandTotals{}, err
		}
		summaries = append(summaries, summary)
		totals.Projected += summary.Projected
		totals.ActualOwed += summary.ActualOwed
		totals.TotalPaid += summary.TotalPaid
		totals.ActualUnpaid += summary.ActualUnpaid
		totals.ProjectedUnpaid += summary.ProjectedUnpaid
	}
	return summaries, totals, nil
}

func (s *Service) summarizeUmpire(u models.Umpire, rates models.PayRate) (UmpireSummary, error) {
	var positions []string
	err := s.DB.Raw(
		"SELECT position FROM umpire_assignments WHERE umpire_id = ? AND worked_status = ?",
		u.UmpireID, models.WorkedAssigned,
	).Scan(&positions).Error
	if err != nil {
		return UmpireSummary{}, err
	}

	var actualOwed int64
	err = s.DB.Raw(
		"SELECT COALESCE(SUM(pay_amount), 0) FROM umpire_assignments WHERE umpire_id = ? AND worked_status = ?",
		u.UmpireID, models.WorkedWorked,
	).Scan(&actualOwed).Error
	if err != nil {
		return UmpireSummary{}, err
	}

	var totalPaid int64
	err = s.DB.Raw(
		"SELECT COALESCE(SUM(amount), 0) FROM umpire_payments WHERE umpire_id = ? AND paid = ?",
		u.UmpireID, true,
	).Scan(&totalPaid).Error
	if err != nil {
		return UmpireSummary{}, err
	}

	return buildSummary(u, rates, positions, actualOwed, totalPaid), nil
}

// buildSummary does the arithmetic. Actual unpaid may go negative when an
// overpayment is recorded; it is never clamped.
func buildSummary(u models.Umpire, rates models.PayRate, pendingPositions []string, actualOwed, totalPaid int64) UmpireSummary {
	var projected int64
	for _, pos := range pendingPositions {
		projected += payrates.RateFor(rates, u.Patched, pos)
	}
	return UmpireSummary{
		UmpireID:        u.UmpireID,
		Name:            u.FullName(),
		Projected:       projected,
		ActualOwed:      actualOwed,
		TotalPaid:       totalPaid,
		ActualUnpaid:    actualOwed - totalPaid,
		ProjectedUnpaid: projected + actualOwed - totalPaid,
	}
}

// WeekSummary is one Monday-starting payroll week. Amounts are cents.
type WeekSummary struct {
	WeekStart   string `json:"week_start"`
	WeekEnd     string `json:"week_end"`
	Projected   int64  `json:"projected"`
	Actual      int64  `json:"actual"`
	AmountPaid  int64  `json:"amount_paid"`
	AmountDue   int64  `json:"amount_due"`
	Games       int    `json:"games"`
	Assignments int    `json:"assignments"`
	Umpires     int    `json:"umpires"`
}

// SummarizeWeeks buckets payroll into Monday-starting weeks spanning the
// earliest to the latest game date that has any assignment. Weeks without
// games are skipped. A payment counts toward a week when its period overlaps
// the week and it is marked paid.
func (s *Service) SummarizeWeeks() ([]WeekSummary, error) {
	var bounds []struct {
		First *time.Time
		Last  *time.Time
	}
	err := s.DB.Raw(
		"SELECT MIN(g.date) AS first, MAX(g.date) AS last FROM games g WHERE EXISTS (SELECT 1 FROM umpire_assignments a WHERE a.game_id = g.game_id)",
	).Scan(&bounds).Error
	if err != nil {
		return nil, err
	}
	if len(bounds) == 0 || bounds[0].First == nil || bounds[0].Last == nil {
		return []WeekSummary{}, nil
	}

	rates, err := s.Rates.Current()
	if err != nil {
		return nil, err
	}

	weeks := make([]WeekSummary, 0)
	last := *bounds[0].Last
	for start := WeekStart(*bounds[0].First); !start.After(last); start = start.AddDate(0, 0, 7) {
		end := start.AddDate(0, 0, 6)

		week, include, err := s.summarizeWeek(start, end, rates)
		if err != nil {
			return nil, err
		}
		if include {
			weeks = append(weeks, week)
		}
	}
	return weeks, nil
}

func (s *Service) summarizeWeek(start, end time.Time, rates models.PayRate) (WeekSummary, bool, error) {
	var games int
	err := s.DB.Raw(
		"SELECT COUNT(*) FROM games WHERE date >= ? AND date <= ?", start, end,
	).Scan(&games).Error
	if err != nil {
		return WeekSummary{}, false, err
	}
	if games == 0 {
		return WeekSummary{}, false, nil
	}

	var actual int64
	err = s.DB.Raw(
		"SELECT COALESCE(SUM(a.pay_amount), 0) FROM umpire_assignments a JOIN games g ON g.game_id = a.game_id WHERE g.date >= ? AND g.date <= ? AND a.worked_status = ?",
		start, end, models.WorkedWorked,
	).Scan(&actual).Error
	if err != nil {
		return WeekSummary{}, false, err
	}

	var pending []struct {
		Position string
		Patched  bool
	}
	err = s.DB.Raw(
		"SELECT a.position, u.patched FROM umpire_assignments a JOIN games g ON g.game_id = a.game_id JOIN umpires u ON u.umpire_id = a.umpire_id WHERE g.date >= ? AND g.date <= ? AND a.worked_status = ?",
		start, end, models.WorkedAssigned,
	).Scan(&pending).Error
	if err != nil {
		return WeekSummary{}, false, err
	}
	var projected int64
	for _, p := range pending {
		projected += payrates.RateFor(rates, p.Patched, p.Position)
	}

	var paid int64
	err = s.DB.Raw(
		"SELECT COALESCE(SUM(amount), 0) FROM umpire_payments WHERE period_start <= ? AND period_end >= ? AND paid = ?",
		end, start, true,
	).Scan(&paid).Error
	if err != nil {
		return WeekSummary{}, false, err
	}

	var assignments int
	err = s.DB.Raw(
		"SELECT COUNT(*) FROM umpire_assignments a JOIN games g ON g.game_id = a.game_id WHERE g.date >= ? AND g.date <= ?",
		start, end,
	).Scan(&assignments).Error
	if err != nil {
		return WeekSummary{}, false, err
	}

	var umpires int
	err = s.DB.Raw(
		"SELECT COUNT(DISTINCT a.umpire_id) FROM umpire_assignments a JOIN games g ON g.game_id = a.game_id WHERE g.date >= ? AND g.date <= ?",
		start, end,
	).Scan(&umpires).Error
	if err != nil {
		return WeekSummary{}, false, err
	}

	return WeekSummary{
		WeekStart:   start.Format(models.DateFormat),
		WeekEnd:     end.Format(models.DateFormat),
		Projected:   projected,
		Actual:      actual,
		AmountPaid:  paid,
		AmountDue:   actual + projected - paid,
		Games:       games,
		Assignments: assignments,
		Umpires:     umpires,
	}, true, nil
}
