package importer

import (
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestReadRows(t *testing.T) {
	csvData := `Email,First_Name , last_name
pam@example.com, Pam ,Postema
doug@example.com,Doug,Harvey
`
	rows, header, err := ReadRows(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "first_name", "last_name"}, header)
	require.Len(t, rows, 2)

	// Row numbers match spreadsheet rows: the header is row 1.
	assert.Equal(t, 2, rows[0].Num)
	assert.Equal(t, 3, rows[1].Num)
	assert.Equal(t, "Pam", rows[0].get("first_name"))
	assert.Equal(t, "pam@example.com", rows[0].get("email"))
}

func TestReadRows_ShortRecords(t *testing.T) {
	csvData := "name,league_admin_email\nSpringfield\n"

	rows, _, err := ReadRows(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Springfield", rows[0].get("name"))
	assert.Equal(t, "", rows[0].get("league_admin_email"))
}

func TestReadRows_Empty(t *testing.T) {
	_, _, err := ReadRows(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseBool(t *testing.T) {
	for _, in := range []string{"yes", "Yes", "TRUE", "1", " true "} {
		assert.True(t, ParseBool(in), in)
	}
	for _, in := range []string{"", "no", "false", "0", "maybe"} {
		assert.False(t, ParseBool(in), in)
	}
}

type ImportTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	svc  *Service
}

func (suite *ImportTestSuite) SetupTest() {
	mockDB, mock, err := sqlmock.New()
	require.NoError(suite.T(), err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
	require.NoError(suite.T(), err)

	suite.mock = mock
	suite.svc = New(db)
}

func (suite *ImportTestSuite) TestImport_UnknownEntity() {
	_, err := suite.svc.Import("players", strings.NewReader("email\n"))

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "unknown import type")
}

func (suite *ImportTestSuite) TestImport_MissingRequiredColumn() {
	_, err := suite.svc.Import("umpires", strings.NewReader("email,first_name\n"))

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), `missing required column "last_name"`)
}

func (suite *ImportTestSuite) TestImport_UmpiresInsertAndUpdate() {
	csvData := `email,first_name,last_name,adult,patched
pam@example.com,Pam,Postema,yes,yes
doug@example.com,Doug,Harvey,yes,no
`
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT umpire_id FROM umpires WHERE email = \$1`).
		WithArgs("pam@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"umpire_id"}))
	suite.mock.ExpectExec(`INSERT INTO umpires`).
		WithArgs("Pam", "Postema", "pam@example.com", "", true, true, false).
		WillReturnResult(sqlmock.NewResult(1, 1))

	suite.mock.ExpectQuery(`SELECT umpire_id FROM umpires WHERE email = \$1`).
		WithArgs("doug@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"umpire_id"}).AddRow(7))
	suite.mock.ExpectExec(`UPDATE umpires SET`).
		WithArgs("Doug", "Harvey", "", true, false, uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	count, err := suite.svc.Import("umpires", strings.NewReader(csvData))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, count)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

// A bad row aborts the whole batch with its spreadsheet row number; nothing
// from earlier rows survives the rollback.
func (suite *ImportTestSuite) TestImport_TeamsAbortOnMissingTown() {
	csvData := `town,level,name
Springfield,Majors,Red
`
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT town_id FROM towns WHERE name = \$1`).
		WithArgs("Springfield").
		WillReturnRows(sqlmock.NewRows([]string{"town_id"}))
	suite.mock.ExpectRollback()

	_, err := suite.svc.Import("teams", strings.NewReader(csvData))

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "row 2")
	assert.Contains(suite.T(), err.Error(), `town "Springfield" does not exist`)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ImportTestSuite) TestImport_GamesAmbiguousTeam() {
	csvData := `date,time,field,home_town,home_level,away_town,away_level
2024-06-15,10:15,B,Springfield,Majors,Shelbyville,Majors
`
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT t.team_id, t.name FROM teams t JOIN towns w`).
		WithArgs("Springfield", "Majors").
		WillReturnRows(sqlmock.NewRows([]string{"team_id", "name"}).
			AddRow(1, "Red").
			AddRow(2, "Blue"))
	suite.mock.ExpectRollback()

	_, err := suite.svc.Import("games", strings.NewReader(csvData))

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "multiple Majors teams found for Springfield (Red, Blue)")
	assert.Contains(suite.T(), err.Error(), "home_team_name")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func TestImportTestSuite(t *testing.T) {
	suite.Run(t, new(ImportTestSuite))
}
