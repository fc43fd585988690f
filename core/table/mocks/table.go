package mocks

import (
	"context"

	"table-editor/core/table"

	"github.com/stretchr/testify/mock"
)

// Table is a mock implementation of table.Table
type Table struct {
	mock.Mock
}

func (m *Table) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *Table) PK() string {
	args := m.Called()
	return args.String(0)
}

func (m *Table) Columns(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if cols, ok := args.Get(0).([]string); ok {
		return cols, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Table) Fetch(ctx context.Context, limit int) (*table.Snapshot, error) {
	args := m.Called(ctx, limit)
	if snap, ok := args.Get(0).(*table.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Table) DeleteByPK(ctx context.Context, pks []any) (int64, error) {
	args := m.Called(ctx, pks)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Table) UpdateByPK(ctx context.Context, pk any, values table.Row) (int64, error) {
	args := m.Called(ctx, pk, values)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Table) Insert(ctx context.Context, rows []table.Row) (int64, error) {
	args := m.Called(ctx, rows)
	return args.Get(0).(int64), args.Error(1)
}
