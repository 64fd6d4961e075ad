// Package store connects to the sheet store that holds tasks and sessions.
// A sheet store is a set of named tables of rows whose first column is a
// unique id.
package store

import (
	"context"

	"github.com/ayoisaiah/tempo/internal/apperr"
	"github.com/ayoisaiah/tempo/internal/models"
)

// Table names a table in the sheet store.
type Table string

const (
	Tasks    Table = "tasks"
	Sessions Table = "sessions"
)

// Tables lists every table tempo reads and writes.
var Tables = []Table{Tasks, Sessions}

var (
	// ErrAuth is returned when the store rejects the configured credentials
	// or cannot be reached at startup.
	ErrAuth = &apperr.Error{
		Message: "unable to authenticate with the sheet store",
	}

	// ErrRowNotFound is returned when updating or deleting an unknown id.
	ErrRowNotFound = &apperr.Error{
		Message: "row %q not found in %s",
	}

	errUnknownTable = &apperr.Error{
		Message: "unknown table %q",
	}

	errStoreLocked = &apperr.Error{
		Message: "is tempo already running? The local store can only be opened by one process at a time",
	}

	errHeaderMismatch = &apperr.Error{
		Message: "sheet %q has unexpected columns %v, expected %v",
	}
)

// DB is the sheet store interface.
type DB interface {
	// ReadAll returns every data row of the table, excluding the header.
	ReadAll(ctx context.Context, table Table) ([]models.Row, error)
	// Append adds a row to the end of the table.
	Append(ctx context.Context, table Table, row models.Row) error
	// Update overwrites the row whose id matches row.ID().
	Update(ctx context.Context, table Table, row models.Row) error
	// Delete removes the row with the given id.
	Delete(ctx context.Context, table Table, id string) error
	// Close releases the underlying connection.
	Close() error
}

// Header returns the column names of a table.
func Header(table Table) (models.Row, error) {
	switch table {
	case Tasks:
		return models.TaskHeader, nil
	case Sessions:
		return models.SessionHeader, nil
	default:
		return nil, errUnknownTable.Fmt(table)
	}
}

func cloneRow(r models.Row) models.Row {
	return append(models.Row(nil), r...)
}
