package refdata

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestPersonInputValidate(t *testing.T) {
	valid := PersonInput{FirstName: "Marge", LastName: "Simpson", Email: "marge@example.com"}
	assert.NoError(t, valid.validate())

	missing := valid
	missing.FirstName = ""
	assert.Error(t, missing.validate())

	badPhone := valid
	badPhone.Phone = "not-a-phone"
	err := badPhone.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone number")
}

type RefdataTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	svc  *Service
}

func (suite *RefdataTestSuite) SetupTest() {
	mockDB, mock, err := sqlmock.New()
	require.NoError(suite.T(), err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{})
	require.NoError(suite.T(), err)

	suite.mock = mock
	suite.svc = New(db)
}

func (suite *RefdataTestSuite) TestCreateLeagueAdmin() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM league_admins WHERE email = \$1`).
		WithArgs("marge@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	suite.mock.ExpectQuery(`INSERT INTO league_admins`).
		WithArgs("Marge", "Simpson", "marge@example.com", "").
		WillReturnRows(sqlmock.NewRows([]string{"admin_id"}).AddRow(3))

	admin, err := suite.svc.CreateLeagueAdmin(PersonInput{
		FirstName: "Marge", LastName: "Simpson", Email: "marge@example.com",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), uint(3), admin.AdminID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *RefdataTestSuite) TestCreateTown_Duplicate() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM towns WHERE name = \$1`).
		WithArgs("Springfield").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := suite.svc.CreateTown(TownInput{Name: "Springfield"})

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "already exists")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *RefdataTestSuite) TestCreateTeam_InvalidLevel() {
	_, err := suite.svc.CreateTeam(TeamInput{TownID: 1, Level: "majors"})

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "invalid level")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *RefdataTestSuite) TestCreateTeam_MissingTown() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM towns WHERE town_id = \$1`).
		WithArgs(uint(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := suite.svc.CreateTeam(TeamInput{TownID: 9, Level: "Majors"})

	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

// Two same-level teams in one town need distinct names.
func (suite *RefdataTestSuite) TestCreateTeam_DuplicateWithinTownAndLevel() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM towns WHERE town_id = \$1`).
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM teams WHERE town_id = \$1 AND level = \$2 AND name = \$3`).
		WithArgs(uint(1), "Majors", "Red").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := suite.svc.CreateTeam(TeamInput{TownID: 1, Level: "Majors", Name: "Red"})

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "already exists in this town")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *RefdataTestSuite) TestDeleteTown_NotFound() {
	suite.mock.ExpectExec(`DELETE FROM towns WHERE town_id = \$1`).
		WithArgs(uint(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := suite.svc.DeleteTown(99)

	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func TestRefdataTestSuite(t *testing.T) {
	suite.Run(t, new(RefdataTestSuite))
}
