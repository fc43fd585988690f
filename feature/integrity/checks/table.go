package checks

import (
	"fmt"

	"table-editor/core/database"

	"gorm.io/gorm"
)

// TableExpectation describes what the editor needs from the warehouse table.
type TableExpectation struct {
	Table            string
	PK               string
	TimestampColumns []string
}

// TableReport strictly types the result of a table integrity check.
type TableReport struct {
	Table                   string                `json:"table"`
	Columns                 []database.ColumnInfo `json:"columns"`
	PKPresent               bool                  `json:"pk_present"`
	PKIsKey                 bool                  `json:"pk_is_key"`
	PKGenerated             bool                  `json:"pk_generated"`
	MissingTimestampColumns []string              `json:"missing_timestamp_columns"`
	Errors                  []string              `json:"errors"`
	Status                  string                `json:"status"` // "ok", "warning", "error"
}

// CheckTable inspects the configured table and compares it with what the editor expects.
func CheckTable(db *gorm.DB, expect TableExpectation) (*TableReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if expect.Table == "" {
		return nil, fmt.Errorf("no table configured")
	}

	report := &TableReport{
		Table:                   expect.Table,
		Columns:                 []database.ColumnInfo{},
		MissingTimestampColumns: []string{},
		Errors:                  []string{},
		Status:                  "ok",
	}

	cols, err := database.GetTableColumns(db, expect.Table)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", expect.Table, err))
		report.Status = "error"
		return report, nil // Partial fail
	}
	if len(cols) == 0 {
		report.Errors = append(report.Errors, fmt.Sprintf("Table %s not found or has no columns", expect.Table))
		report.Status = "error"
		return report, nil
	}
	report.Columns = cols

	byName := make(map[string]database.ColumnInfo, len(cols))
	for _, c := range cols {
		byName[c.Field] = c
	}

	if pk, ok := byName[expect.PK]; ok {
		report.PKPresent = true
		report.PKIsKey = pk.Key == "PRI"
		report.PKGenerated = pk.Extra == "auto_increment"
		if !report.PKIsKey {
			report.Errors = append(report.Errors, fmt.Sprintf("%s is not the primary key", expect.PK))
			report.Status = "warning"
		}
	} else {
		report.Errors = append(report.Errors, fmt.Sprintf("PK '%s' not found. Please check config.", expect.PK))
		report.Status = "error"
	}

	for _, ts := range expect.TimestampColumns {
		if _, ok := byName[ts]; !ok {
			report.MissingTimestampColumns = append(report.MissingTimestampColumns, ts)
			if report.Status == "ok" {
				report.Status = "warning"
			}
		}
	}

	return report, nil
}
