package editor

import (
	"context"
	"sync"
	"testing"
	"time"

	"table-editor/core/database"
	"table-editor/core/table"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const createBatches = `CREATE TABLE SYNTHETIC_BATCH_DATA (
	BATCH_ID INTEGER PRIMARY KEY AUTOINCREMENT,
	BATCH_NAME TEXT,
	PROJECT TEXT,
	TIMESTAMP DATETIME,
	PERSON TEXT
)`

var seedBatches = []string{
	`INSERT INTO SYNTHETIC_BATCH_DATA VALUES (1, 'alpha', 'p1', '2024-01-01 10:00:00', 'alice')`,
	`INSERT INTO SYNTHETIC_BATCH_DATA VALUES (2, 'beta', 'p1', NULL, 'bob')`,
	`INSERT INTO SYNTHETIC_BATCH_DATA VALUES (3, 'gamma', 'p2', '2024-01-03 10:00:00', 'carol')`,
}

func testConfig() Config {
	return Config{
		Table:            "SYNTHETIC_BATCH_DATA",
		PKColumn:         "BATCH_ID",
		PKGenerated:      true,
		RowLimit:         100,
		TimestampColumns: []string{"TIMESTAMP"},
		FallbackColumns:  []string{"BATCH_ID", "BATCH_NAME", "PROJECT", "TIMESTAMP", "PERSON"},
		BlankRows:        2,
		EditorKey:        "batch_editor",
	}
}

// setupTestDB creates an in-memory SQLite warehouse with three batches.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec(createBatches).Error)
	for _, s := range seedBatches {
		require.NoError(t, db.Exec(s).Error)
	}
	return db
}

func setupService(t *testing.T, archiver Archiver) (*Service, *gorm.DB) {
	db := setupTestDB(t)
	cfg := testConfig()
	tbl := table.NewGormTable(db, table.Options{
		Name:             cfg.Table,
		PK:               cfg.PKColumn,
		TimestampColumns: cfg.TimestampColumns,
		FallbackColumns:  cfg.FallbackColumns,
	})
	svc := NewService(table.NewCache(tbl, 0), archiver, NewWorkspaceStore(time.Hour), cfg, zap.NewNop())
	return svc, db
}

// recordingArchiver keeps archived records in memory.
type recordingArchiver struct {
	mu      sync.Mutex
	records []*Record
	err     error
}

func (a *recordingArchiver) Archive(ctx context.Context, rec *Record) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, rec)
	return "changes/" + rec.ID + ".json", nil
}

func (a *recordingArchiver) List(ctx context.Context, tableName string, limit int) ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	keys := make([]string, 0, len(a.records))
	for _, r := range a.records {
		keys = append(keys, "changes/"+r.ID+".json")
	}
	return keys, nil
}

func (a *recordingArchiver) Get(ctx context.Context, key string) (*Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range a.records {
		if "changes/"+r.ID+".json" == key {
			return r, nil
		}
	}
	return nil, ErrArchiveDisabled
}
