package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE BATCHES (BATCH_ID INTEGER PRIMARY KEY, BATCH_NAME TEXT NOT NULL, PROJECT TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "BATCHES")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, []string{"BATCH_ID", "BATCH_NAME", "PROJECT"}, ColumnNames(columns))
	assert.Equal(t, "integer", columns[0].Type)
	assert.Equal(t, "PRI", columns[0].Key)
	assert.Equal(t, "NO", columns[1].Null)
	assert.Equal(t, "YES", columns[2].Null)

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("BATCH_ID", "INT(11)", "NO", "PRI", nil, "auto_increment").
		AddRow("BATCH_NAME", "VARCHAR(255)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `DEMO`.`BATCHES`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "DEMO.BATCHES")
	require.NoError(t, err)
	assert.Equal(t, []string{"BATCH_ID", "BATCH_NAME"}, ColumnNames(columns))
	assert.Equal(t, "int(11)", columns[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
