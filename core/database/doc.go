// Package database handles the warehouse connection and schema inspection.
//
// It wraps GORM to configure MySQL connections (or SQLite for local work and tests)
// from the application's configuration.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of the edited table. The editor uses it to
// build an empty grid when the table has no rows, and the integrity feature uses
// it to verify the configured primary key exists.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "SYNTHETIC_BATCH_DATA")
package database
