package table

import (
	"context"
	"errors"
	"fmt"
	"time"

	"table-editor/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrPKNotFound is returned when the configured primary key is not a column of the table.
var ErrPKNotFound = errors.New("primary key column not found")

// Table is the warehouse adapter used by the editor.
// Implementations must be safe for concurrent use.
type Table interface {
	// Name returns the fully qualified table name.
	Name() string

	// PK returns the primary key column.
	PK() string

	// Columns returns the table's column names in table order.
	Columns(ctx context.Context) ([]string, error)

	// Fetch reads up to limit rows ordered by primary key ascending.
	Fetch(ctx context.Context, limit int) (*Snapshot, error)

	// DeleteByPK deletes all rows whose primary key is in pks in one statement
	// and returns the number of rows deleted.
	DeleteByPK(ctx context.Context, pks []any) (int64, error)

	// UpdateByPK sets values on the row identified by pk and returns the number of rows updated.
	UpdateByPK(ctx context.Context, pk any, values Row) (int64, error)

	// Insert appends rows in one batch and returns the number of rows inserted.
	Insert(ctx context.Context, rows []Row) (int64, error)
}

// Options configures a GormTable.
type Options struct {
	// Name is the table name, optionally schema qualified ("DB.TABLE").
	Name string
	// PK is the primary key column.
	PK string
	// TimestampColumns are coerced to time.Time on read.
	TimestampColumns []string
	// FallbackColumns describe an empty table when the schema cannot be inspected.
	FallbackColumns []string
}

// GormTable implements Table over a gorm connection.
type GormTable struct {
	db   *gorm.DB
	opts Options
}

// NewGormTable creates a Table backed by db.
func NewGormTable(db *gorm.DB, opts Options) *GormTable {
	return &GormTable{db: db, opts: opts}
}

func (t *GormTable) Name() string { return t.opts.Name }

func (t *GormTable) PK() string { return t.opts.PK }

// Columns inspects the table schema, falling back to the configured column list.
func (t *GormTable) Columns(ctx context.Context) ([]string, error) {
	cols, err := database.GetTableColumns(t.db.WithContext(ctx), t.opts.Name)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return append([]string(nil), t.opts.FallbackColumns...), nil
	}
	return database.ColumnNames(cols), nil
}

// Fetch reads up to limit rows ordered by primary key ascending.
func (t *GormTable) Fetch(ctx context.Context, limit int) (*Snapshot, error) {
	if limit <= 0 {
		limit = -1 // gorm: no limit
	}

	rows, err := t.db.WithContext(ctx).
		Table(t.opts.Name).
		Order(clause.OrderByColumn{Column: clause.Column{Name: t.opts.PK}}).
		Limit(limit).
		Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.opts.Name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", t.opts.Name, err)
	}

	snap := &Snapshot{
		Table:     t.opts.Name,
		PK:        t.opts.PK,
		Columns:   columns,
		Rows:      []Row{},
		FetchedAt: time.Now().UTC(),
	}

	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", t.opts.Name, err)
		}

		row := make(Row, len(columns))
		for i, c := range columns {
			row[c] = normalizeValue(values[i])
		}
		snap.Rows = append(snap.Rows, CoerceTimestamps(row, t.opts.TimestampColumns))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", t.opts.Name, err)
	}
	// Release the connection before inspecting the schema.
	_ = rows.Close()

	// An empty result carries no reliable column list; describe the table from its schema.
	if len(snap.Rows) == 0 {
		if cols, err := t.Columns(ctx); err == nil && len(cols) > 0 {
			snap.Columns = cols
		} else if len(snap.Columns) == 0 {
			snap.Columns = append([]string(nil), t.opts.FallbackColumns...)
		}
	}

	if !snap.HasColumn(t.opts.PK) {
		return nil, fmt.Errorf("%w: %q in %s", ErrPKNotFound, t.opts.PK, t.opts.Name)
	}

	return snap, nil
}

// DeleteByPK deletes rows using a single IN clause.
func (t *GormTable) DeleteByPK(ctx context.Context, pks []any) (int64, error) {
	if len(pks) == 0 {
		return 0, nil
	}

	result := t.db.WithContext(ctx).Exec("DELETE FROM ? WHERE ? IN ?",
		clause.Table{Name: t.opts.Name}, clause.Column{Name: t.opts.PK}, pks)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", t.opts.Name, result.Error)
	}
	return result.RowsAffected, nil
}

// UpdateByPK updates one row. The primary key itself is never written.
func (t *GormTable) UpdateByPK(ctx context.Context, pk any, values Row) (int64, error) {
	set := map[string]any(values.Without(t.opts.PK))
	if len(set) == 0 {
		return 0, nil
	}

	result := t.db.WithContext(ctx).
		Table(t.opts.Name).
		Where(clause.Eq{Column: clause.Column{Name: t.opts.PK}, Value: pk}).
		Updates(set)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update %s: %w", t.opts.Name, result.Error)
	}
	return result.RowsAffected, nil
}

// Insert appends rows with one multi-row INSERT.
func (t *GormTable) Insert(ctx context.Context, rows []Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		batch = append(batch, map[string]any(r.Clone()))
	}

	result := t.db.WithContext(ctx).Table(t.opts.Name).Create(batch)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", t.opts.Name, result.Error)
	}
	return result.RowsAffected, nil
}
