// Package changeset computes and applies the diff between a table snapshot and
// the edits a user made to it in the grid.
//
// # Extract
//
// A grid widget reports a sparse description of what changed: appended rows,
// cell edits keyed by positional row index, and deleted row indices. Extract
// resolves those indices against the snapshot the grid was built from and
// produces a ChangeSet with three materialised row sets:
//   - Added: the new rows
//   - Edited: one Edit per row, carrying both the original and the edited row
//   - Deleted: the original rows that were removed
//
// # Highlight
//
// Highlight compares every cell of the edited rows with the original row of
// the same primary key. Two missing values compare equal. Cells whose original
// cannot be found are marked Missing rather than Changed.
//
// # Apply
//
// Apply writes a ChangeSet through a table.Table: one DELETE by primary key,
// one UPDATE per edited row and one batched INSERT, and reports per-type counts
// plus one error message per failed operation. Nothing is written unless the
// caller marks the options as confirmed.
//
// # Usage
//
//	cs, err := changeset.Extract(snap, changes, changeset.Options{TimestampColumns: []string{"TIMESTAMP"}})
//	if err != nil || cs.IsEmpty() {
//	    return
//	}
//	res := changeset.Apply(ctx, tbl, cs, changeset.Options{Confirmed: true, PKGenerated: true})
package changeset
