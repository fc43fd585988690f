package editor

import (
	"testing"
	"time"

	"table-editor/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formSnapshot() *table.Snapshot {
	return &table.Snapshot{
		Table:   "SYNTHETIC_BATCH_DATA",
		PK:      "BATCH_ID",
		Columns: []string{"BATCH_ID", "BATCH_NAME", "QTY", "TIMESTAMP"},
		Rows: []table.Row{
			{"BATCH_ID": int64(1), "BATCH_NAME": "alpha", "QTY": int64(5), "TIMESTAMP": time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
			{"BATCH_ID": int64(2), "BATCH_NAME": nil, "QTY": int64(7), "TIMESTAMP": nil},
		},
	}
}

func lookupFrom(values map[string]string) FormLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestParseInstance(t *testing.T) {
	n, err := ParseInstance(lookupFrom(map[string]string{"instance": " 3 "}))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParseInstance(lookupFrom(map[string]string{}))
	assert.Error(t, err)

	_, err = ParseInstance(lookupFrom(map[string]string{"instance": "x"}))
	assert.Error(t, err)
}

func TestDecodeForm_UnchangedGrid(t *testing.T) {
	values := map[string]string{
		"cell-0-BATCH_NAME": "alpha",
		"cell-0-QTY":        "5",
		"cell-0-TIMESTAMP":  "2024-01-01 10:00:00",
		"cell-1-BATCH_NAME": "",
		"cell-1-QTY":        "7",
		"cell-1-TIMESTAMP":  "",
		"new-0-BATCH_NAME":  "  ",
	}

	changes := DecodeForm(formSnapshot(), 2, lookupFrom(values))
	assert.True(t, changes.IsEmpty())
}

func TestDecodeForm_Changes(t *testing.T) {
	values := map[string]string{
		"cell-0-BATCH_NAME": "",
		"cell-0-QTY":        "6",
		"cell-0-TIMESTAMP":  "2024-01-01 10:00:00",
		"cell-1-BATCH_NAME": "beta",
		"cell-1-QTY":        "lots",
		"cell-0-BATCH_ID":   "99",
		"delete-1":          "on",
		"new-1-BATCH_NAME":  "delta",
		"new-1-QTY":         "2.5",
		"new-1-TIMESTAMP":   "2024-02-01 08:00:00",
	}

	changes := DecodeForm(formSnapshot(), 2, lookupFrom(values))

	assert.Equal(t, []int{1}, changes.DeletedRows)
	assert.Equal(t, table.Row{"BATCH_NAME": nil, "QTY": int64(6)}, changes.EditedRows[0])
	assert.Equal(t, table.Row{"BATCH_NAME": "beta", "QTY": "lots"}, changes.EditedRows[1])

	require.Len(t, changes.AddedRows, 1)
	assert.Equal(t, table.Row{
		"BATCH_NAME": "delta",
		"QTY":        2.5,
		"TIMESTAMP":  "2024-02-01 08:00:00",
	}, changes.AddedRows[0])
}

func TestDecodeForm_NilSnapshot(t *testing.T) {
	changes := DecodeForm(nil, 2, lookupFrom(map[string]string{"delete-0": "on"}))
	assert.True(t, changes.IsEmpty())
}

func TestParseCell(t *testing.T) {
	assert.Nil(t, parseCell(" ", "x"))
	assert.Equal(t, int64(4), parseCell("4", int64(1)))
	assert.Equal(t, 4.5, parseCell("4.5", int64(1)))
	assert.Equal(t, 4.0, parseCell("4", 1.5))
	assert.Equal(t, true, parseCell("true", false))
	assert.Equal(t, "yes", parseCell("yes", false))
	assert.Equal(t, "42", parseCell("42", nil))
}
