package changeset

import "table-editor/core/table"

// CellState classifies one cell of an edited row against its pre-image.
type CellState int

const (
	// Unchanged cells match the original.
	Unchanged CellState = iota
	// Changed cells differ from the original.
	Changed
	// Missing cells have no original to compare against.
	Missing
)

// Style returns the CSS used to render the cell.
func (s CellState) Style() string {
	switch s {
	case Changed:
		return "background-color: #ffff99"
	case Missing:
		return "background-color: #ffcccc"
	default:
		return ""
	}
}

func (s CellState) String() string {
	switch s {
	case Changed:
		return "changed"
	case Missing:
		return "missing"
	default:
		return "unchanged"
	}
}

// MarshalText renders the state by name in JSON.
func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Highlight compares each row of after with the row of before that has the same
// primary key, cell by cell over columns. The result has one entry per after row.
func Highlight(before, after []table.Row, pk string, columns []string) [][]CellState {
	originals := make(map[string]table.Row, len(before))
	for _, r := range before {
		originals[table.KeyOf(r[pk])] = r
	}

	out := make([][]CellState, len(after))
	for i, r := range after {
		states := make([]CellState, len(columns))
		orig, found := originals[table.KeyOf(r[pk])]

		for j, col := range columns {
			if !found {
				states[j] = Missing
				continue
			}
			ov, ok := orig[col]
			if !ok {
				states[j] = Missing
				continue
			}
			if !Equal(r[col], ov) {
				states[j] = Changed
			}
		}
		out[i] = states
	}
	return out
}

// HighlightEdits highlights the post-images of a change set's edits.
func HighlightEdits(cs *ChangeSet) [][]CellState {
	return Highlight(cs.Befores(), cs.Afters(), cs.PK, cs.Columns)
}

// ChangedColumns returns the columns whose value differs between the pre- and post-image.
func (e Edit) ChangedColumns(columns []string) []string {
	var out []string
	for _, c := range columns {
		if !Equal(e.Before[c], e.After[c]) {
			out = append(out, c)
		}
	}
	return out
}
