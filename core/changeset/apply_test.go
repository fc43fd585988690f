package changeset

import (
	"context"
	"errors"
	"testing"

	"table-editor/core/table"
	"table-editor/core/table/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var confirmed = Options{Confirmed: true, PKGenerated: true, TimestampColumns: []string{"TIMESTAMP"}}

func fullChangeSet(t *testing.T) *ChangeSet {
	cs, err := Extract(testSnapshot(), EditorChanges{
		AddedRows:   []table.Row{{"BATCH_ID": int64(99), "BATCH_NAME": "delta"}},
		EditedRows:  map[int]table.Row{0: {"PERSON": "alicia"}, 2: {"PROJECT": nil}},
		DeletedRows: []int{1},
	}, confirmed)
	require.NoError(t, err)
	return cs
}

func TestApply_AllSucceed(t *testing.T) {
	tbl := new(mocks.Table)
	cs := fullChangeSet(t)

	tbl.On("DeleteByPK", mock.Anything, []any{int64(20)}).Return(int64(1), nil).Once()
	tbl.On("UpdateByPK", mock.Anything, int64(10), mock.MatchedBy(func(r table.Row) bool {
		_, hasPK := r["BATCH_ID"]
		return !hasPK && r["PERSON"] == "alicia" && r["PROJECT"] == "p1" && len(r) == 4
	})).Return(int64(1), nil).Once()
	tbl.On("UpdateByPK", mock.Anything, int64(30), mock.MatchedBy(func(r table.Row) bool {
		v, ok := r["PROJECT"]
		return ok && v == nil
	})).Return(int64(1), nil).Once()
	tbl.On("Insert", mock.Anything, mock.MatchedBy(func(rows []table.Row) bool {
		_, hasPK := rows[0]["BATCH_ID"]
		return len(rows) == 1 && !hasPK && rows[0]["BATCH_NAME"] == "delta"
	})).Return(int64(1), nil).Once()

	res := Apply(context.Background(), tbl, cs, confirmed)

	assert.True(t, res.OK())
	assert.Equal(t, int64(1), res.Deleted)
	assert.Equal(t, int64(2), res.Edited)
	assert.Equal(t, int64(1), res.Added)
	tbl.AssertExpectations(t)

	// Deletes run before updates, updates before inserts
	require.Len(t, tbl.Calls, 4)
	assert.Equal(t, "DeleteByPK", tbl.Calls[0].Method)
	assert.Equal(t, "UpdateByPK", tbl.Calls[1].Method)
	assert.Equal(t, "Insert", tbl.Calls[3].Method)
}

func TestApply_KeepsPKWhenNotGenerated(t *testing.T) {
	tbl := new(mocks.Table)
	cs, err := Extract(testSnapshot(), EditorChanges{
		AddedRows: []table.Row{{"BATCH_ID": int64(99), "BATCH_NAME": "delta"}},
	}, confirmed)
	require.NoError(t, err)

	tbl.On("Insert", mock.Anything, mock.MatchedBy(func(rows []table.Row) bool {
		return rows[0]["BATCH_ID"] == int64(99)
	})).Return(int64(1), nil)

	res := Apply(context.Background(), tbl, cs, Options{Confirmed: true})
	assert.Equal(t, int64(1), res.Added)
	tbl.AssertExpectations(t)
}

func TestApply_UpdateFailureContinues(t *testing.T) {
	tbl := new(mocks.Table)
	cs := fullChangeSet(t)

	tbl.On("DeleteByPK", mock.Anything, mock.Anything).Return(int64(1), nil)
	tbl.On("UpdateByPK", mock.Anything, int64(10), mock.Anything).Return(int64(0), errors.New("lock timeout"))
	tbl.On("UpdateByPK", mock.Anything, int64(30), mock.Anything).Return(int64(1), nil)
	tbl.On("Insert", mock.Anything, mock.Anything).Return(int64(0), errors.New("column mismatch"))

	res := Apply(context.Background(), tbl, cs, confirmed)

	assert.False(t, res.OK())
	assert.Equal(t, []string{"Update 10: lock timeout", "Add: column mismatch"}, res.Errors)
	assert.Equal(t, int64(1), res.Deleted)
	assert.Equal(t, int64(1), res.Edited)
	assert.Zero(t, res.Added)
}

func TestApply_DeleteFailureStops(t *testing.T) {
	tbl := new(mocks.Table)
	cs := fullChangeSet(t)

	tbl.On("DeleteByPK", mock.Anything, mock.Anything).Return(int64(0), errors.New("permission denied"))

	res := Apply(context.Background(), tbl, cs, confirmed)

	assert.Equal(t, []string{"General: permission denied"}, res.Errors)
	tbl.AssertNotCalled(t, "UpdateByPK", mock.Anything, mock.Anything, mock.Anything)
	tbl.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestApply_Gates(t *testing.T) {
	tbl := new(mocks.Table)
	cs := fullChangeSet(t)

	t.Run("Not confirmed", func(t *testing.T) {
		res := Apply(context.Background(), tbl, cs, Options{})
		assert.True(t, res.OK())
		assert.Zero(t, res.Deleted+res.Edited+res.Added)
	})

	t.Run("Dry run", func(t *testing.T) {
		res := Apply(context.Background(), tbl, cs, Options{Confirmed: true, DryRun: true})
		assert.True(t, res.OK())
	})

	t.Run("Empty", func(t *testing.T) {
		res := Apply(context.Background(), tbl, &ChangeSet{}, confirmed)
		assert.True(t, res.OK())
	})

	assert.Empty(t, tbl.Calls)
}
