package changeset

import (
	"fmt"
	"sort"

	"table-editor/core/table"
)

// Extract materialises a sparse change description against the snapshot it was made on.
// Rows in the snapshot are never modified; edited rows are copies.
func Extract(snap *table.Snapshot, changes EditorChanges, opts Options) (*ChangeSet, error) {
	if snap == nil {
		return nil, fmt.Errorf("no snapshot to compare against")
	}

	cs := &ChangeSet{
		Table:   snap.Table,
		PK:      snap.PK,
		Columns: append([]string(nil), snap.Columns...),
		Added:   []table.Row{},
		Edited:  []Edit{},
		Deleted: []table.Row{},
	}

	// Additions
	for _, r := range changes.AddedRows {
		row := table.NormalizeRow(r.Clone())
		if isBlank(row) {
			continue
		}
		cs.Added = append(cs.Added, table.CoerceTimestamps(row, opts.TimestampColumns))
	}

	// Deletions: deduplicated, in row order
	deleted := make(map[int]struct{}, len(changes.DeletedRows))
	for _, idx := range changes.DeletedRows {
		if idx < 0 || idx >= snap.Len() {
			return nil, fmt.Errorf("%w: delete %d (rows: %d)", ErrIndexOutOfRange, idx, snap.Len())
		}
		deleted[idx] = struct{}{}
	}
	for _, idx := range sortedKeys(deleted) {
		cs.Deleted = append(cs.Deleted, snap.Rows[idx])
	}

	// Edits, in row order. A row that is also deleted is only deleted.
	indices := make([]int, 0, len(changes.EditedRows))
	for idx := range changes.EditedRows {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		if idx < 0 || idx >= snap.Len() {
			return nil, fmt.Errorf("%w: edit %d (rows: %d)", ErrIndexOutOfRange, idx, snap.Len())
		}
		if _, gone := deleted[idx]; gone {
			continue
		}

		cells := changes.EditedRows[idx]
		if len(cells) == 0 {
			continue
		}

		before := snap.Rows[idx]
		after := before.Clone()
		for col, val := range cells {
			if col == snap.PK {
				return nil, fmt.Errorf("%w: %s (row %d)", ErrPKImmutable, col, idx)
			}
			if !snap.HasColumn(col) {
				return nil, fmt.Errorf("%w: %s (row %d)", ErrUnknownColumn, col, idx)
			}
			after[col] = val
		}
		table.NormalizeRow(after)
		table.CoerceTimestamps(after, opts.TimestampColumns)

		cs.Edited = append(cs.Edited, Edit{PK: before[snap.PK], Before: before, After: after})
	}

	return cs, nil
}

// isBlank reports whether every value of the row is missing.
func isBlank(r table.Row) bool {
	for _, v := range r {
		if !isMissing(v) {
			return false
		}
	}
	return true
}

func sortedKeys(m map[int]struct{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
