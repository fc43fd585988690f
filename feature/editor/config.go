package editor

import (
	"fmt"
	"time"
)

// Config holds configuration for the table editor.
type Config struct {
	// Table is the edited table, optionally schema qualified.
	Table string `mapstructure:"table" default:"SYNTHETIC_BATCH_DATA"`
	// PKColumn is the primary key column. It is read-only in the grid.
	PKColumn string `mapstructure:"pk_column" default:"BATCH_ID"`
	// PKGenerated means the warehouse assigns the primary key of new rows.
	PKGenerated bool `mapstructure:"pk_generated" default:"true"`
	// RowLimit is the number of rows loaded into the grid.
	RowLimit int `mapstructure:"row_limit" default:"100"`
	// TimestampColumns are parsed as timestamps.
	TimestampColumns []string `mapstructure:"timestamp_columns" default:"TIMESTAMP"`
	// FallbackColumns describe the grid when the table is empty and has no inspectable schema.
	FallbackColumns []string `mapstructure:"fallback_columns" default:"BATCH_ID,BATCH_NAME,PROJECT,TIMESTAMP,PERSON"`
	// BlankRows is the number of empty rows offered for additions.
	BlankRows int `mapstructure:"blank_rows" default:"3"`
	// SnapshotTTLSeconds is how long a table read is shared between sessions.
	SnapshotTTLSeconds int `mapstructure:"snapshot_ttl_seconds" default:"5"`
	// EditorKey prefixes the grid instance key.
	EditorKey string `mapstructure:"editor_key" default:"batch_editor"`
}

// Validate checks the editor configuration.
func (c Config) Validate() error {
	if c.Table == "" {
		return fmt.Errorf("editor table is not configured")
	}
	if c.PKColumn == "" {
		return fmt.Errorf("editor pk_column is not configured")
	}
	if c.RowLimit <= 0 {
		return fmt.Errorf("editor row_limit must be positive, got %d", c.RowLimit)
	}
	return nil
}

// SnapshotTTL returns the snapshot cache TTL.
func (c Config) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLSeconds) * time.Second
}

// InstanceKey names the grid instance, e.g. "batch_editor_3".
func (c Config) InstanceKey(instance int) string {
	return fmt.Sprintf("%s_%d", c.EditorKey, instance)
}
