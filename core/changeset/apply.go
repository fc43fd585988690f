package changeset

import (
	"context"
	"fmt"

	"table-editor/core/table"
	"table-editor/core/utils"
)

// Apply writes a change set to the table: one batched delete, one update per
// edited row, then one batched insert. The three steps are not transactional;
// a failed update does not stop the others, and the table may end up partially
// changed. A failed delete stops the run.
// Requires opts.Confirmed=true and opts.DryRun=false to actually write.
func Apply(ctx context.Context, t table.Table, cs *ChangeSet, opts Options) Result {
	res := Result{Errors: []string{}}

	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun || cs.IsEmpty() {
		return res
	}

	// Deletions
	if pks := cs.DeletedPKs(); len(pks) > 0 {
		n, err := t.DeleteByPK(ctx, pks)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("General: %v", err))
			return res
		}
		res.Deleted = n
	}

	// Updates
	for _, e := range cs.Edited {
		values := updateValues(e.After, cs.PK, cs.Columns)
		n, err := t.UpdateByPK(ctx, e.PK, values)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Update %s: %v", utils.ToString(e.PK), err))
			continue
		}
		res.Edited += n
	}

	// Additions
	if len(cs.Added) > 0 {
		rows := make([]table.Row, 0, len(cs.Added))
		for _, r := range cs.Added {
			if opts.PKGenerated {
				r = r.Without(cs.PK)
			}
			rows = append(rows, r)
		}
		if _, err := t.Insert(ctx, rows); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Add: %v", err))
		} else {
			res.Added = int64(len(rows))
		}
	}

	return res
}

// updateValues builds the SET list of an update: every non-PK column of the
// post-image, missing values written as NULL.
func updateValues(after table.Row, pk string, columns []string) table.Row {
	values := make(table.Row, len(columns))
	for _, c := range columns {
		if c == pk {
			continue
		}
		v := after[c]
		if isMissing(v) {
			v = nil
		}
		values[c] = v
	}
	return values
}
