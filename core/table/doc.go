// Package table reads and writes the single warehouse table the editor works on.
//
// A Snapshot is an ordered read of at most N rows (PK ascending). Rows are plain
// column→value maps with driver values normalised to nil, string, int64, float64,
// bool or time.Time (uint64 only above the int64 range), and configured timestamp
// columns coerced to time.Time.
//
// # Table
//
// Table is the warehouse adapter. GormTable implements it with:
//   - Fetch: SELECT * ORDER BY pk LIMIT n
//   - DeleteByPK: one DELETE … WHERE pk IN (…)
//   - UpdateByPK: one UPDATE per row, never touching the PK
//   - Insert: one multi-row INSERT
//
// # Cache
//
// Cache wraps a Table with a TTL and singleflight so concurrent editor sessions
// opening at once trigger a single read. Invalidate it after every write.
package table
