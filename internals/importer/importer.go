package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"
)

// Service handles administrative CSV bulk imports. Rows are matched by
// natural key and upserted; each batch runs in one transaction and aborts
// atomically on the first bad row, reported with its row number.
type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Row is one CSV record; Num counts from 1 at the header row, matching what
// an operator sees in a spreadsheet.
type Row struct {
	Num    int
	Values map[string]string
}

func (r Row) get(col string) string {
	return strings.TrimSpace(r.Values[col])
}

// echo renders the non-empty cells of a row for operator debugging.
func (r Row) echo() string {
	parts := make([]string, 0, len(r.Values))
	for k, v := range r.Values {
		if v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Import runs the named entity importer over CSV data and returns the number
// of rows upserted.
func (s *Service) Import(entity string, data io.Reader) (int, error) {
	rows, header, err := ReadRows(data)
	if err != nil {
		return 0, err
	}

	var importFn func(tx *gorm.DB, rows []Row) (int, error)
	var required []string
	switch entity {
	case "league_admins":
		importFn, required = s.importLeagueAdmins, []string{"email", "first_name", "last_name"}
	case "coaches":
		importFn, required = s.importCoaches, []string{"email", "first_name", "last_name"}
	case "towns":
		importFn, required = s.importTowns, []string{"name"}
	case "teams":
		importFn, required = s.importTeams, []string{"town", "level"}
	case "umpires":
		importFn, required = s.importUmpires, []string{"email", "first_name", "last_name"}
	case "games":
		importFn, required = s.importGames, []string{"date", "time", "field", "home_town", "home_level", "away_town", "away_level"}
	default:
		return 0, fmt.Errorf("unknown import type %q", entity)
	}

	for _, col := range required {
		if !contains(header, col) {
			return 0, fmt.Errorf("missing required column %q", col)
		}
	}

	count := 0
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := importFn(tx, rows)
		if err != nil {
			return err
		}
		count = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ReadRows parses CSV data into header-keyed rows. The first record is the
// header.
func ReadRows(data io.Reader) ([]Row, []string, error) {
	reader := csv.NewReader(data)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, nil, fmt.Errorf("CSV has no header row")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.ToLower(h))
	}

	rows := make([]Row, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		values := make(map[string]string, len(header))
		for j, col := range header {
			if j < len(records[i]) {
				values[col] = strings.TrimSpace(records[i][j])
			}
		}
		rows = append(rows, Row{Num: i + 1, Values: values})
	}
	return rows, header, nil
}

// ParseBool interprets the spreadsheet-friendly spellings of true.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "1":
		return true
	}
	return false
}

func contains(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func rowErr(r Row, err error) error {
	return fmt.Errorf("row %d: %w", r.Num, err)
}
