package changeset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"table-editor/core/table"
)

var (
	// ErrIndexOutOfRange is returned when a change refers to a row index outside the snapshot.
	ErrIndexOutOfRange = errors.New("row index out of range")
	// ErrPKImmutable is returned when an edit touches the primary key column.
	ErrPKImmutable = errors.New("primary key cannot be edited")
	// ErrUnknownColumn is returned when an edit names a column the table does not have.
	ErrUnknownColumn = errors.New("unknown column")
)

// EditorChanges is the sparse change description a grid widget reports:
// new rows, cell edits keyed by positional row index, and deleted row indices.
type EditorChanges struct {
	// AddedRows are the rows appended in the grid.
	AddedRows []table.Row `json:"added_rows"`
	// EditedRows maps a row index to the cells changed in that row.
	EditedRows map[int]table.Row `json:"edited_rows"`
	// DeletedRows lists the indices of rows removed in the grid.
	DeletedRows []int `json:"deleted_rows"`
}

// IsEmpty reports whether the description carries no change at all.
func (c EditorChanges) IsEmpty() bool {
	return len(c.AddedRows) == 0 && len(c.EditedRows) == 0 && len(c.DeletedRows) == 0
}

// DecodeChanges reads a JSON change description. Numbers are kept as
// json.Number so integers reach the table without a float round trip.
func DecodeChanges(r io.Reader) (EditorChanges, error) {
	var changes EditorChanges
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&changes); err != nil {
		return changes, fmt.Errorf("failed to decode change description: %w", err)
	}
	return changes, nil
}

// Edit is one edited row with its pre- and post-image.
type Edit struct {
	// PK is the primary key of the edited row.
	PK any `json:"pk"`
	// Before is the row as it was read.
	Before table.Row `json:"before"`
	// After is the row with the edited cells applied.
	After table.Row `json:"after"`
}

// ChangeSet is the materialised diff between a snapshot and an edited grid.
type ChangeSet struct {
	// Table is the table the changes apply to.
	Table string `json:"table"`
	// PK is the primary key column.
	PK string `json:"pk"`
	// Columns is the column order of the source snapshot.
	Columns []string `json:"columns"`
	// Added are the rows to insert.
	Added []table.Row `json:"added"`
	// Edited are the rows to update, in row index order.
	Edited []Edit `json:"edited"`
	// Deleted are the original rows to delete, in row index order.
	Deleted []table.Row `json:"deleted"`
}

// IsEmpty reports whether the change set would not touch the table.
func (cs *ChangeSet) IsEmpty() bool {
	return cs == nil || (len(cs.Added) == 0 && len(cs.Edited) == 0 && len(cs.Deleted) == 0)
}

// Summary counts the rows in each change type.
type Summary struct {
	Added   int `json:"added"`
	Edited  int `json:"edited"`
	Deleted int `json:"deleted"`
}

// Counts returns the number of rows per change type.
func (cs *ChangeSet) Counts() Summary {
	if cs == nil {
		return Summary{}
	}
	return Summary{Added: len(cs.Added), Edited: len(cs.Edited), Deleted: len(cs.Deleted)}
}

// Befores returns the pre-images of the edited rows.
func (cs *ChangeSet) Befores() []table.Row {
	out := make([]table.Row, 0, len(cs.Edited))
	for _, e := range cs.Edited {
		out = append(out, e.Before)
	}
	return out
}

// Afters returns the post-images of the edited rows.
func (cs *ChangeSet) Afters() []table.Row {
	out := make([]table.Row, 0, len(cs.Edited))
	for _, e := range cs.Edited {
		out = append(out, e.After)
	}
	return out
}

// DeletedPKs returns the primary keys of the deleted rows.
func (cs *ChangeSet) DeletedPKs() []any {
	out := make([]any, 0, len(cs.Deleted))
	for _, r := range cs.Deleted {
		if pk, ok := r[cs.PK]; ok && pk != nil {
			out = append(out, pk)
		}
	}
	return out
}

// Result accumulates the outcome of applying a change set.
type Result struct {
	// Added is the number of rows sent in the insert.
	Added int64 `json:"added"`
	// Edited is the number of rows the updates reported as changed.
	Edited int64 `json:"edited"`
	// Deleted is the number of rows the delete reported as removed.
	Deleted int64 `json:"deleted"`
	// Errors holds one message per failed operation.
	Errors []string `json:"errors"`
}

// OK reports whether every operation succeeded.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Options controls extraction and application.
type Options struct {
	// TimestampColumns are coerced to time.Time in added and edited rows.
	TimestampColumns []string
	// PKGenerated drops the primary key from inserted rows so the warehouse assigns it.
	PKGenerated bool
	// DryRun prevents any write.
	DryRun bool
	// Confirmed must be true for Apply to write.
	Confirmed bool
}
