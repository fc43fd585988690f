package editor

import (
	"table-editor/core/changeset"
	"table-editor/core/table"
	"table-editor/core/utils"
)

// CellView is one rendered cell.
type CellView struct {
	Column   string
	Field    string
	Value    string
	Style    string
	ReadOnly bool
}

// RowView is one rendered row.
type RowView struct {
	Index       int
	DeleteField string
	Cells       []CellView
}

// PendingView renders a change set waiting for confirmation.
type PendingView struct {
	Summary      changeset.Summary
	Deleted      []RowView
	Added        []RowView
	AddedColumns []string
	EditedBefore []RowView
	EditedAfter  []RowView
}

// PageView is everything the editor page renders.
type PageView struct {
	Table       string
	PK          string
	PKGenerated bool
	WorkspaceID string
	Instance    int
	InstanceKey string
	Loaded      bool
	FetchedAt   string
	Columns     []string
	Rows        []RowView
	NewRows     []RowView
	Confirming  bool
	Pending     *PendingView
	LastResult  *changeset.Result
	Flash       *Flash
}

// buildPage renders the workspace. It pops the flash message.
// The caller must hold the workspace lock.
func buildPage(cfg Config, ws *Workspace) PageView {
	page := PageView{
		Table:       cfg.Table,
		PK:          cfg.PKColumn,
		PKGenerated: cfg.PKGenerated,
		WorkspaceID: ws.ID,
		Instance:    ws.InstanceID,
		InstanceKey: cfg.InstanceKey(ws.InstanceID),
		Confirming:  ws.ShowConfirmation && !ws.Pending.IsEmpty(),
		LastResult:  ws.LastResult,
		Flash:       ws.PopFlash(),
	}

	snap := ws.Original
	if snap == nil {
		return page
	}

	page.Loaded = true
	page.FetchedAt = utils.ToString(snap.FetchedAt.UTC())
	page.Columns = snap.Columns

	for i, r := range snap.Rows {
		rv := RowView{Index: i, DeleteField: deleteField(i)}
		for _, col := range snap.Columns {
			rv.Cells = append(rv.Cells, CellView{
				Column:   col,
				Field:    cellField(i, col),
				Value:    utils.ToString(r[col]),
				ReadOnly: col == snap.PK,
			})
		}
		page.Rows = append(page.Rows, rv)
	}

	for n := 0; n < cfg.BlankRows; n++ {
		rv := RowView{Index: n}
		for _, col := range snap.Columns {
			rv.Cells = append(rv.Cells, CellView{
				Column:   col,
				Field:    newField(n, col),
				ReadOnly: col == snap.PK && cfg.PKGenerated,
			})
		}
		page.NewRows = append(page.NewRows, rv)
	}

	if page.Confirming {
		page.Pending = buildPending(ws.Pending)
	}
	return page
}

func buildPending(cs *changeset.ChangeSet) *PendingView {
	pv := &PendingView{
		Summary:      cs.Counts(),
		Deleted:      plainRows(cs.Deleted, cs.Columns),
		AddedColumns: addedColumns(cs),
		EditedBefore: plainRows(cs.Befores(), cs.Columns),
	}
	pv.Added = plainRows(cs.Added, pv.AddedColumns)

	states := changeset.HighlightEdits(cs)
	for i, e := range cs.Edited {
		rv := RowView{Index: i}
		for j, col := range cs.Columns {
			rv.Cells = append(rv.Cells, CellView{
				Column: col,
				Value:  utils.ToString(e.After[col]),
				Style:  states[i][j].Style(),
			})
		}
		pv.EditedAfter = append(pv.EditedAfter, rv)
	}
	return pv
}

func plainRows(rows []table.Row, columns []string) []RowView {
	out := make([]RowView, 0, len(rows))
	for i, r := range rows {
		rv := RowView{Index: i}
		for _, col := range columns {
			rv.Cells = append(rv.Cells, CellView{Column: col, Value: utils.ToString(r[col])})
		}
		out = append(out, rv)
	}
	return out
}

// addedColumns keeps the table order but only lists columns some added row sets.
func addedColumns(cs *changeset.ChangeSet) []string {
	var cols []string
	for _, col := range cs.Columns {
		for _, r := range cs.Added {
			if _, ok := r[col]; ok {
				cols = append(cols, col)
				break
			}
		}
	}
	return cols
}
