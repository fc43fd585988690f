package cmd

import (
	"fmt"

	"table-editor/core/config"
	"table-editor/core/storage"
	"table-editor/core/table"
	"table-editor/feature/editor"
	"table-editor/feature/integrity/checks"

	"gorm.io/gorm"
)

// newTable builds the warehouse adapter for the configured table.
func newTable(cfg *config.Config, db *gorm.DB) *table.GormTable {
	return table.NewGormTable(db, table.Options{
		Name:             cfg.Editor.Table,
		PK:               cfg.Editor.PKColumn,
		TimestampColumns: cfg.Editor.TimestampColumns,
		FallbackColumns:  cfg.Editor.FallbackColumns,
	})
}

// newArchiver returns the storage client and change archiver. Both are disabled
// (nil client, NopArchiver) unless storage is enabled.
func newArchiver(cfg storage.Config) (storage.Client, editor.Archiver, error) {
	if !cfg.Enabled {
		return nil, editor.NopArchiver{}, nil
	}
	client, err := storage.NewClient(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, editor.NewStorageArchiver(client, cfg.Bucket, cfg.Prefix), nil
}

func tableExpectation(cfg *config.Config) checks.TableExpectation {
	return checks.TableExpectation{
		Table:            cfg.Editor.Table,
		PK:               cfg.Editor.PKColumn,
		TimestampColumns: cfg.Editor.TimestampColumns,
	}
}
