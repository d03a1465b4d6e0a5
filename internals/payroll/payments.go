package payroll

import (
	"fmt"
	"time"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"

	"gorm.io/gorm"
)

// PaymentInput is an administrator-entered payment record.
type PaymentInput struct {
	UmpireID    uint   `json:"umpire_id"`
	Amount      string `json:"amount"`
	Paid        bool   `json:"paid"`
	PaidDate    string `json:"paid_date"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Method      string `json:"payment_method"`
	Notes       string `json:"notes"`
}

func (s *Service) CreatePayment(in PaymentInput) (models.UmpirePayment, error) {
	payment, err := paymentFromInput(in)
	if err != nil {
		return models.UmpirePayment{}, err
	}

	err = s.DB.Raw(
		"INSERT INTO umpire_payments (umpire_id, amount, paid, paid_date, period_start, period_end, payment_method, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING payment_id",
		payment.UmpireID, payment.Amount, payment.Paid, payment.PaidDate, payment.PeriodStart, payment.PeriodEnd, payment.PaymentMethod, payment.Notes,
	).Scan(&payment.PaymentID).Error
	if err != nil {
		return models.UmpirePayment{}, err
	}
	return payment, nil
}

func (s *Service) UpdatePayment(paymentID uint, in PaymentInput) error {
	payment, err := paymentFromInput(in)
	if err != nil {
		return err
	}

	result := s.DB.Exec(
		"UPDATE umpire_payments SET umpire_id = ?, amount = ?, paid = ?, paid_date = ?, period_start = ?, period_end = ?, payment_method = ?, notes = ? WHERE payment_id = ?",
		payment.UmpireID, payment.Amount, payment.Paid, payment.PaidDate, payment.PeriodStart, payment.PeriodEnd, payment.PaymentMethod, payment.Notes, paymentID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("payment %d: %w", paymentID, gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *Service) ListPayments(umpireID uint) ([]models.UmpirePayment, error) {
	payments := make([]models.UmpirePayment, 0)
	q := "SELECT * FROM umpire_payments ORDER BY period_end DESC, umpire_id"
	args := []interface{}{}
	if umpireID != 0 {
		q = "SELECT * FROM umpire_payments WHERE umpire_id = ? ORDER BY period_end DESC"
		args = append(args, umpireID)
	}
	err := s.DB.Raw(q, args...).Scan(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// MarkGameDatePaid records (or refreshes) a single-day payment covering the
// assignment's game date, keyed by (umpire, period_start, period_end).
func (s *Service) MarkGameDatePaid(assignmentID uint, method, notes string) error {
	assignment, gameDate, err := s.loadAssignmentWithDate(assignmentID)
	if err != nil {
		return err
	}

	today := models.Today()
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.UmpirePayment
		err := tx.Raw(
			"SELECT * FROM umpire_payments WHERE umpire_id = ? AND period_start = ? AND period_end = ?",
			assignment.UmpireID, gameDate, gameDate,
		).Scan(&existing).Error
		if err != nil {
			return err
		}

		if len(existing) == 0 {
			return tx.Exec(
				"INSERT INTO umpire_payments (umpire_id, amount, paid, paid_date, period_start, period_end, payment_method, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
				assignment.UmpireID, assignment.PayAmount, true, today, gameDate, gameDate, method, notes,
			).Error
		}
		return tx.Exec(
			"UPDATE umpire_payments SET amount = ?, paid = ?, paid_date = ?, payment_method = ?, notes = ? WHERE payment_id = ?",
			assignment.PayAmount, true, today, method, notes, existing[0].PaymentID,
		).Error
	})
}

// MarkGameDateUnpaid reverses MarkGameDatePaid. A missing payment record is
// not an error.
func (s *Service) MarkGameDateUnpaid(assignmentID uint) error {
	assignment, gameDate, err := s.loadAssignmentWithDate(assignmentID)
	if err != nil {
		return err
	}

	return s.DB.Exec(
		"UPDATE umpire_payments SET paid = ?, paid_date = NULL, payment_method = '', notes = '' WHERE umpire_id = ? AND period_start = ? AND period_end = ?",
		false, assignment.UmpireID, gameDate, gameDate,
	).Error
}

func (s *Service) loadAssignmentWithDate(assignmentID uint) (models.UmpireAssignment, time.Time, error) {
	var rows []struct {
		models.UmpireAssignment
		GameDate time.Time `gorm:"column:game_date"`
	}
	err := s.DB.Raw(
		"SELECT a.*, g.date AS game_date FROM umpire_assignments a JOIN games g ON g.game_id = a.game_id WHERE a.assignment_id = ?",
		assignmentID,
	).Scan(&rows).Error
	if err != nil {
		return models.UmpireAssignment{}, time.Time{}, err
	}
	if len(rows) == 0 {
		return models.UmpireAssignment{}, time.Time{}, fmt.Errorf("assignment %d: %w", assignmentID, gorm.ErrRecordNotFound)
	}
	return rows[0].UmpireAssignment, rows[0].GameDate, nil
}

func paymentFromInput(in PaymentInput) (models.UmpirePayment, error) {
	cents, err := models.ParseCents(in.Amount)
	if err != nil {
		return models.UmpirePayment{}, err
	}
	start, err := models.ParseDate(in.PeriodStart)
	if err != nil {
		return models.UmpirePayment{}, fmt.Errorf("invalid period_start %q", in.PeriodStart)
	}
	end, err := models.ParseDate(in.PeriodEnd)
	if err != nil {
		return models.UmpirePayment{}, fmt.Errorf("invalid period_end %q", in.PeriodEnd)
	}
	if end.Before(start) {
		return models.UmpirePayment{}, fmt.Errorf("period_end is before period_start")
	}

	payment := models.UmpirePayment{
		UmpireID:      in.UmpireID,
		Amount:        cents,
		Paid:          in.Paid,
		PeriodStart:   start,
		PeriodEnd:     end,
		PaymentMethod: in.Method,
		Notes:         in.Notes,
	}
	if in.PaidDate != "" {
		paidDate, err := models.ParseDate(in.PaidDate)
		if err != nil {
			return models.UmpirePayment{}, fmt.Errorf("invalid paid_date %q", in.PaidDate)
		}
		payment.PaidDate = &paidDate
	}
	return payment, nil
}
