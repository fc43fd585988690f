// Package config provides configuration management for the table editor.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from `default` struct tags.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, session lifetime
//   - Database: warehouse connection (mysql or sqlite)
//   - Storage: S3/MinIO change archive
//   - Log: level, format, optional rotating file
//   - Editor: table, primary key, row limit, timestamp columns
//
// Environment variables map onto nested keys with underscores,
// e.g. EDITOR_PK_COLUMN → editor.pk_column.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Editor.Table)
package config
