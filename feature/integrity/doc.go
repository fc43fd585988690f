// Package integrity provides health checks for the table editor's dependencies.
//
// # Checks Provided
//
//   - Table: inspects the configured table and reports its columns, whether the
//     primary key column exists and is the key, and which configured timestamp
//     columns are missing.
//   - Storage: checks that the change archive bucket exists.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/table : Runs the table check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
