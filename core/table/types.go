package table

import (
	"time"

	"table-editor/core/utils"
)

// Row is a single table row keyed by column name.
// Values are nil, string, int64, float64, bool or time.Time.
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Without returns a copy of the row with the given columns removed.
func (r Row) Without(columns ...string) Row {
	out := r.Clone()
	for _, c := range columns {
		delete(out, c)
	}
	return out
}

// Snapshot is an ordered read of the table, rows sorted by primary key ascending.
// A snapshot is shared between readers and must not be mutated once built.
type Snapshot struct {
	// Table is the fully qualified table name.
	Table string `json:"table"`
	// PK is the primary key column.
	PK string `json:"pk"`
	// Columns lists the columns in table order.
	Columns []string `json:"columns"`
	// Rows holds the fetched rows in PK order.
	Rows []Row `json:"rows"`
	// FetchedAt is when the snapshot was read.
	FetchedAt time.Time `json:"fetched_at"`
}

// Len returns the number of rows.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// IsEmpty reports whether the snapshot holds no rows.
func (s *Snapshot) IsEmpty() bool {
	return s.Len() == 0
}

// Index returns the primary key of the row at positional index i.
func (s *Snapshot) Index(i int) (any, bool) {
	if i < 0 || i >= s.Len() {
		return nil, false
	}
	return s.Rows[i][s.PK], true
}

// HasColumn reports whether the snapshot has the named column.
func (s *Snapshot) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// KeyOf returns the string form of a primary key value, used to match rows across snapshots.
func KeyOf(pk any) string {
	return utils.ToString(normalizeValue(pk))
}
