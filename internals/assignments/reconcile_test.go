package assignments

import (
	"testing"
	"time"

	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/internals/models"
	"github.com/pantheonsteve/sybsa-umpire-assignment-platform/pkg/kvstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ReconcileTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	svc  *Service
}

func (suite *ReconcileTestSuite) SetupTest() {
	mockDB, mock, err := sqlmock.New()
	require.NoError(suite.T(), err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
	require.NoError(suite.T(), err)

	suite.mock = mock
	suite.svc = New(kvstore.NewMemory(), db)
}

func validUpdate() GameUpdate {
	return GameUpdate{
		Date:       "2024-06-15",
		Time:       "10:15",
		Field:      "B",
		HomeTeamID: 10,
		AwayTeamID: 11,
	}
}

func (suite *ReconcileTestSuite) TestReconcileGame_RejectsSameTeams() {
	update := validUpdate()
	update.AwayTeamID = update.HomeTeamID

	err := suite.svc.ReconcileGame(1, update, nil)

	assert.True(suite.T(), IsRejection(err))
	assert.Contains(suite.T(), err.Error(), "cannot be the same")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReconcileTestSuite) TestReconcileGame_RejectsBadSlot() {
	update := validUpdate()
	update.Time = "9:30"

	err := suite.svc.ReconcileGame(1, update, nil)

	assert.True(suite.T(), IsRejection(err))
	assert.Contains(suite.T(), err.Error(), "invalid time slot")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ReconcileTestSuite) TestReconcileGame_RejectsBadPosition() {
	err := suite.svc.ReconcileGame(1, validUpdate(), []AssignmentInput{
		{UmpireID: 5, Position: "catcher"},
	})

	assert.True(suite.T(), IsRejection(err))
	assert.Contains(suite.T(), err.Error(), "invalid position")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

// A matched pair is updated in place and keeps its stored pay; an omitted
// assignment is deleted; a new pair is created with freshly computed pay.
func (suite *ReconcileTestSuite) TestReconcileGame_ReconcilesAssignments() {
	suite.mock.ExpectQuery(`SELECT \* FROM games WHERE game_id = \$1`).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"game_id", "date", "time", "field"}).
			AddRow(1, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), "10:15", "B"))

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`UPDATE games SET date = \$1, time = \$2, field = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectQuery(`SELECT \* FROM umpire_assignments WHERE game_id = \$1`).
		WillReturnRows(sqlmock.NewRows(assignmentColumns()).
			AddRow(21, 1, 5, "plate", 3000, "assigned").
			AddRow(22, 1, 6, "base", 2500, "assigned"))

	// 21 is kept, switched to solo. No pay update.
	suite.mock.ExpectExec(`UPDATE umpire_assignments SET umpire_id = \$1, position = \$2 WHERE assignment_id = \$3`).
		WithArgs(uint(5), "solo", uint(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// New pair for umpire 7: lookup, rates, insert.
	suite.mock.ExpectQuery(`SELECT \* FROM umpires WHERE umpire_id = \$1`).
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"umpire_id", "first_name", "last_name", "patched"}).
			AddRow(7, "Doug", "Harvey", false))
	suite.mock.ExpectQuery(`SELECT \* FROM pay_rates WHERE effective_date <= \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"rate_id", "solo_patched", "solo_unpatched", "plate_patched", "plate_unpatched", "base_unpatched", "effective_date"}).
			AddRow(1, 5000, 4000, 3500, 3000, 2500, models.Today()))
	suite.mock.ExpectExec(`INSERT INTO umpire_assignments`).
		WithArgs(uint(1), uint(7), "base", int64(2500), "assigned").
		WillReturnResult(sqlmock.NewResult(23, 1))

	// 22 was omitted from the submission.
	suite.mock.ExpectExec(`DELETE FROM umpire_assignments WHERE assignment_id = \$1`).
		WithArgs(uint(22)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	err := suite.svc.ReconcileGame(1, validUpdate(), []AssignmentInput{
		{AssignmentID: 21, UmpireID: 5, Position: "solo"},
		{UmpireID: 7, Position: "base"},
	})

	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func TestReconcileTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcileTestSuite))
}
