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

type AssignTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	svc  *Service
}

func (suite *AssignTestSuite) SetupTest() {
	mockDB, mock, err := sqlmock.New()
	require.NoError(suite.T(), err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
	require.NoError(suite.T(), err)

	suite.mock = mock
	suite.svc = New(kvstore.NewMemory(), db)
}

func gameDate() time.Time {
	return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
}

func (suite *AssignTestSuite) expectGame() {
	suite.mock.ExpectQuery(`SELECT \* FROM games WHERE game_id = \$1`).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"game_id", "home_team_id", "away_team_id", "date", "time", "field", "status"}).
			AddRow(1, 10, 11, gameDate(), "10:15", "B", "scheduled"))
}

func (suite *AssignTestSuite) expectUmpire(patched, assigner bool) {
	suite.mock.ExpectQuery(`SELECT \* FROM umpires WHERE umpire_id = \$1`).
		WithArgs(uint(5)).
		WillReturnRows(sqlmock.NewRows([]string{"umpire_id", "first_name", "last_name", "email", "patched", "is_assigner"}).
			AddRow(5, "Pam", "Postema", "pam@example.com", patched, assigner))
}

func (suite *AssignTestSuite) expectAvailability(count int) {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM umpire_availabilities`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func (suite *AssignTestSuite) expectOnGame(count int) {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM umpire_assignments WHERE game_id = \$1 AND umpire_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func (suite *AssignTestSuite) expectConflict(count int) {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM umpire_assignments a JOIN games g`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

func assignmentColumns() []string {
	return []string{"assignment_id", "game_id", "umpire_id", "position", "pay_amount", "worked_status"}
}

func (suite *AssignTestSuite) expectExisting(rows *sqlmock.Rows) {
	suite.mock.ExpectQuery(`SELECT \* FROM umpire_assignments WHERE game_id = \$1`).
		WillReturnRows(rows)
}

func (suite *AssignTestSuite) expectRates() {
	suite.mock.ExpectQuery(`SELECT \* FROM pay_rates WHERE effective_date <= \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"rate_id", "solo_patched", "solo_unpatched", "plate_patched", "plate_unpatched", "base_unpatched", "effective_date"}).
			AddRow(1, 5000, 4000, 3500, 3000, 2500, models.Today()))
}

func (suite *AssignTestSuite) TestAssign_InvalidPosition() {
	_, err := suite.svc.Assign(1, 5, "catcher")

	assert.True(suite.T(), IsRejection(err))
	assert.Contains(suite.T(), err.Error(), "invalid position")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AssignTestSuite) TestAssign_GameNotFound() {
	suite.mock.ExpectQuery(`SELECT \* FROM games WHERE game_id = \$1`).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"game_id"}))

	_, err := suite.svc.Assign(1, 5, models.PositionPlate)

	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AssignTestSuite) TestAssign_NotAvailable() {
	suite.expectGame()
	suite.expectUmpire(false, false)
	suite.mock.ExpectBegin()
	suite.expectAvailability(0)
	suite.mock.ExpectRollback()

	_, err := suite.svc.Assign(1, 5, models.PositionPlate)

	assert.True(suite.T(), IsRejection(err))
	assert.Contains(suite.T(), err.Error(), "Pam Postema is not available")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AssignTestSuite) TestAssign_AlreadyOnGame() {
	suite.expectGame()
	suite.expectUmpire(false, false)
	suite.mock.ExpectBegin()
	suite.expectAvailability(1)
	suite.expectOnGame(1)
	suite.mock.ExpectRollback()

	_, err := suite.svc.Assign(1, 5, models.PositionPlate)

	assert.True(suite.T(), IsRejection(err))
	assert.Contains(suite.T(), err.Error(), "already assigned to this game")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AssignTestSuite) TestAssign_DoubleBooked() {
	suite.expectGame()
	suite.expectUmpire(false, false)
	suite.mock.ExpectBegin()
	suite.expectAvailability(1)
	suite.expectOnGame(0)
	suite.expectConflict(1)
	suite.mock.ExpectRollback()

	_, err := suite.svc.Assign(1, 5, models.PositionPlate)

	assert.True(suite.T(), IsRejection(err))
	assert.Contains(suite.T(), err.Error(), "another game at this time")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AssignTestSuite) TestAssign_GameFull() {
	suite.expectGame()
	suite.expectUmpire(false, false)
	suite.mock.ExpectBegin()
	suite.expectAvailability(1)
	suite.expectOnGame(0)
	suite.expectConflict(0)
	suite.expectExisting(sqlmock.NewRows(assignmentColumns()).
		AddRow(21, 1, 6, "plate", 3000, "assigned").
		AddRow(22, 1, 7, "base", 2500, "assigned"))
	suite.mock.ExpectRollback()

	_, err := suite.svc.Assign(1, 5, models.PositionPlate)

	assert.True(suite.T(), IsRejection(err))
	assert.Contains(suite.T(), err.Error(), "already has 2 umpires")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AssignTestSuite) TestAssign_SoloPartner() {
	suite.expectGame()
	suite.expectUmpire(false, false)
	suite.mock.ExpectBegin()
	suite.expectAvailability(1)
	suite.expectOnGame(0)
	suite.expectConflict(0)
	suite.expectExisting(sqlmock.NewRows(assignmentColumns()).
		AddRow(21, 1, 6, "solo", 4000, "assigned"))
	suite.mock.ExpectRollback()

	_, err := suite.svc.Assign(1, 5, models.PositionPlate)

	assert.True(suite.T(), IsRejection(err))
	assert.Contains(suite.T(), err.Error(), "solo umpire")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AssignTestSuite) TestAssign_DuplicatePosition() {
	suite.expectGame()
	suite.expectUmpire(false, false)
	suite.mock.ExpectBegin()
	suite.expectAvailability(1)
	suite.expectOnGame(0)
	suite.expectConflict(0)
	suite.expectExisting(sqlmock.NewRows(assignmentColumns()).
		AddRow(21, 1, 6, "plate", 3000, "assigned"))
	suite.mock.ExpectRollback()

	_, err := suite.svc.Assign(1, 5, models.PositionPlate)

	assert.True(suite.T(), IsRejection(err))
	assert.Contains(suite.T(), err.Error(), "already has a plate umpire")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AssignTestSuite) TestAssign_Success() {
	suite.expectGame()
	suite.expectUmpire(false, false)
	suite.mock.ExpectBegin()
	suite.expectAvailability(1)
	suite.expectOnGame(0)
	suite.expectConflict(0)
	suite.expectExisting(sqlmock.NewRows(assignmentColumns()))
	suite.expectRates()
	suite.mock.ExpectQuery(`INSERT INTO umpire_assignments`).
		WithArgs(uint(1), uint(5), "plate", int64(3000), "assigned").
		WillReturnRows(sqlmock.NewRows([]string{"assignment_id"}).AddRow(41))
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM umpire_assignments WHERE game_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	suite.mock.ExpectCommit()

	created, err := suite.svc.Assign(1, 5, models.PositionPlate)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), uint(41), created.AssignmentID)
	assert.Equal(suite.T(), int64(3000), created.PayAmount)
	assert.Equal(suite.T(), models.WorkedAssigned, created.WorkedStatus)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

// An assigner skips the conflict check entirely.
func (suite *AssignTestSuite) TestAssign_AssignerSkipsConflictCheck() {
	suite.expectGame()
	suite.expectUmpire(true, true)
	suite.mock.ExpectBegin()
	suite.expectAvailability(1)
	suite.expectOnGame(0)
	suite.expectExisting(sqlmock.NewRows(assignmentColumns()).
		AddRow(21, 1, 6, "plate", 3000, "assigned"))
	suite.expectRates()
	suite.mock.ExpectQuery(`INSERT INTO umpire_assignments`).
		WithArgs(uint(1), uint(5), "base", int64(2500), "assigned").
		WillReturnRows(sqlmock.NewRows([]string{"assignment_id"}).AddRow(42))
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM umpire_assignments WHERE game_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	suite.mock.ExpectCommit()

	created, err := suite.svc.Assign(1, 5, models.PositionBase)

	assert.NoError(suite.T(), err)
	// Base pay ignores the patched flag.
	assert.Equal(suite.T(), int64(2500), created.PayAmount)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

// Two concurrent assigns can both pass the count check; the recount after
// insert rolls the loser back.
func (suite *AssignTestSuite) TestAssign_RecountRollsBackOverfill() {
	suite.expectGame()
	suite.expectUmpire(false, false)
	suite.mock.ExpectBegin()
	suite.expectAvailability(1)
	suite.expectOnGame(0)
	suite.expectConflict(0)
	suite.expectExisting(sqlmock.NewRows(assignmentColumns()).
		AddRow(21, 1, 6, "plate", 3000, "assigned"))
	suite.expectRates()
	suite.mock.ExpectQuery(`INSERT INTO umpire_assignments`).
		WillReturnRows(sqlmock.NewRows([]string{"assignment_id"}).AddRow(43))
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM umpire_assignments WHERE game_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	suite.mock.ExpectRollback()

	_, err := suite.svc.Assign(1, 5, models.PositionBase)

	assert.True(suite.T(), IsRejection(err))
	assert.Contains(suite.T(), err.Error(), "already has 2 umpires")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

// A conflicting umpire is filtered out, an assigner with the same conflict is
// not even checked for one.
func (suite *AssignTestSuite) TestAvailableUmpires() {
	suite.expectGame()
	suite.mock.ExpectQuery(`SELECT \* FROM umpires ORDER BY last_name, first_name`).
		WillReturnRows(sqlmock.NewRows([]string{"umpire_id", "first_name", "last_name", "is_assigner"}).
			AddRow(5, "Pam", "Postema", false).
			AddRow(6, "Joe", "West", false).
			AddRow(7, "Amanda", "Zale", true))
	suite.expectAvailability(1)
	suite.expectConflict(0)
	suite.expectAvailability(1)
	suite.expectConflict(1)
	suite.expectAvailability(1)

	eligible, err := suite.svc.AvailableUmpires(1)

	assert.NoError(suite.T(), err)
	require.Len(suite.T(), eligible, 2)
	assert.Equal(suite.T(), uint(5), eligible[0].UmpireID)
	assert.Equal(suite.T(), uint(7), eligible[1].UmpireID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *AssignTestSuite) TestAvailableUmpires_NoDeclaration() {
	suite.expectGame()
	suite.mock.ExpectQuery(`SELECT \* FROM umpires ORDER BY last_name, first_name`).
		WillReturnRows(sqlmock.NewRows([]string{"umpire_id", "first_name", "last_name", "is_assigner"}).
			AddRow(5, "Pam", "Postema", false))
	suite.expectAvailability(0)

	eligible, err := suite.svc.AvailableUmpires(1)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), eligible)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func TestAssignTestSuite(t *testing.T) {
	suite.Run(t, new(AssignTestSuite))
}
