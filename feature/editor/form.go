package editor

import (
	"fmt"
	"strconv"
	"strings"

	"table-editor/core/changeset"
	"table-editor/core/table"
	"table-editor/core/utils"
)

// Form field names of the grid.
const (
	fieldInstance = "instance"
	fieldCell     = "cell"   // cell-<row>-<column>
	fieldDelete   = "delete" // delete-<row>
	fieldNew      = "new"    // new-<n>-<column>
)

func cellField(row int, column string) string {
	return fmt.Sprintf("%s-%d-%s", fieldCell, row, column)
}

func deleteField(row int) string {
	return fmt.Sprintf("%s-%d", fieldDelete, row)
}

func newField(n int, column string) string {
	return fmt.Sprintf("%s-%d-%s", fieldNew, n, column)
}

// FormLookup returns a submitted form value and whether the field was present.
type FormLookup func(key string) (string, bool)

// ParseInstance reads the grid instance id of a submission.
func ParseInstance(lookup FormLookup) (int, error) {
	raw, ok := lookup(fieldInstance)
	if !ok {
		return 0, fmt.Errorf("missing %s field", fieldInstance)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s field: %q", fieldInstance, raw)
	}
	return n, nil
}

// DecodeForm turns a grid submission into the sparse change description.
//
// A cell counts as edited only when its submitted text differs from the way
// the original value is rendered. Empty text is NULL. Missing fields are
// treated as unchanged.
func DecodeForm(snap *table.Snapshot, blankRows int, lookup FormLookup) changeset.EditorChanges {
	changes := changeset.EditorChanges{
		AddedRows:   []table.Row{},
		EditedRows:  map[int]table.Row{},
		DeletedRows: []int{},
	}
	if snap == nil {
		return changes
	}

	for i, row := range snap.Rows {
		if v, ok := lookup(deleteField(i)); ok && utils.ToBool(v) {
			changes.DeletedRows = append(changes.DeletedRows, i)
		}

		for _, col := range snap.Columns {
			if col == snap.PK {
				continue
			}
			text, ok := lookup(cellField(i, col))
			if !ok {
				continue
			}
			original := row[col]
			if text == utils.ToString(original) {
				continue
			}
			if changes.EditedRows[i] == nil {
				changes.EditedRows[i] = table.Row{}
			}
			changes.EditedRows[i][col] = parseCell(text, original)
		}
	}

	for n := 0; n < blankRows; n++ {
		added := table.Row{}
		for _, col := range snap.Columns {
			text, ok := lookup(newField(n, col))
			if !ok || strings.TrimSpace(text) == "" {
				continue
			}
			added[col] = parseCell(text, sampleValue(snap, col))
		}
		if len(added) > 0 {
			changes.AddedRows = append(changes.AddedRows, added)
		}
	}

	return changes
}

// parseCell converts submitted text to a value of the same kind as like.
// Text that does not parse as that kind is kept as a string.
func parseCell(text string, like any) any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	switch like.(type) {
	case int64:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	case float64:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	case bool:
		if b, err := strconv.ParseBool(trimmed); err == nil {
			return b
		}
	}
	return text
}

// sampleValue returns the first non-NULL value of a column, used to type new rows.
func sampleValue(snap *table.Snapshot, column string) any {
	for _, r := range snap.Rows {
		if v := r[column]; v != nil {
			return v
		}
	}
	return nil
}
