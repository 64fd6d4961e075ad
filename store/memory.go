package store

import (
	"context"
	"sync"

	"github.com/ayoisaiah/tempo/internal/models"
)

// Op names a store operation for failure injection.
type Op string

const (
	OpReadAll Op = "read"
	OpAppend  Op = "append"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
)

// Memory is an in-memory sheet store. It backs dry runs and tests.
type Memory struct {
	tables map[Table][]models.Row
	// Fail, when set, is consulted before every operation and its error is
	// returned instead of performing the operation.
	Fail func(op Op, table Table) error
	mu   sync.Mutex
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	m := &Memory{
		tables: make(map[Table][]models.Row),
	}

	for _, t := range Tables {
		m.tables[t] = nil
	}

	return m
}

func (m *Memory) check(op Op, table Table) error {
	if _, ok := m.tables[table]; !ok {
		return errUnknownTable.Fmt(table)
	}

	if m.Fail != nil {
		return m.Fail(op, table)
	}

	return nil
}

func (m *Memory) ReadAll(_ context.Context, table Table) ([]models.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(OpReadAll, table); err != nil {
		return nil, err
	}

	rows := make([]models.Row, len(m.tables[table]))
	for i, r := range m.tables[table] {
		rows[i] = cloneRow(r)
	}

	return rows, nil
}

func (m *Memory) Append(_ context.Context, table Table, row models.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(OpAppend, table); err != nil {
		return err
	}

	m.tables[table] = append(m.tables[table], cloneRow(row))

	return nil
}

func (m *Memory) Update(_ context.Context, table Table, row models.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(OpUpdate, table); err != nil {
		return err
	}

	i := m.index(table, row.ID())
	if i < 0 {
		return ErrRowNotFound.Fmt(row.ID(), table)
	}

	m.tables[table][i] = cloneRow(row)

	return nil
}

func (m *Memory) Delete(_ context.Context, table Table, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(OpDelete, table); err != nil {
		return err
	}

	i := m.index(table, id)
	if i < 0 {
		return ErrRowNotFound.Fmt(id, table)
	}

	rows := m.tables[table]
	m.tables[table] = append(rows[:i:i], rows[i+1:]...)

	return nil
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) index(table Table, id string) int {
	for i, r := range m.tables[table] {
		if r.ID() == id {
			return i
		}
	}

	return -1
}
