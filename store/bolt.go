package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/tempo/internal/models"
	"github.com/ayoisaiah/tempo/internal/osutil"
)

// BoltClient is a sheet store kept in a local BoltDB file. Each table is a
// bucket whose keys are insertion sequence numbers, so rows are read back in
// the order they were appended just like a spreadsheet.
type BoltClient struct {
	*bolt.DB
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	err := os.MkdirAll(filepath.Dir(pathToDB), osutil.DirPermission)
	if err != nil {
		return nil, err
	}

	db, err := bolt.Open(
		pathToDB,
		osutil.FilePermission,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		// another process holds the file lock
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errStoreLocked
		}

		return nil, err
	}

	return db, nil
}

// NewBoltClient opens the database at dbPath and creates a bucket for every
// table that does not exist yet.
func NewBoltClient(dbPath string) (*BoltClient, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, t := range Tables {
			_, err := tx.CreateBucketIfNotExists([]byte(t))
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltClient{db}, nil
}

func bucket(tx *bolt.Tx, table Table) (*bolt.Bucket, error) {
	b := tx.Bucket([]byte(table))
	if b == nil {
		return nil, errUnknownTable.Fmt(table)
	}

	return b, nil
}

// findKey returns the key of the row with the given id.
func findKey(b *bolt.Bucket, id string) ([]byte, error) {
	c := b.Cursor()

	for k, v := c.First(); k != nil; k, v = c.Next() {
		var row models.Row

		if err := json.Unmarshal(v, &row); err != nil {
			return nil, err
		}

		if row.ID() == id {
			return k, nil
		}
	}

	return nil, nil
}

func (c *BoltClient) ReadAll(
	_ context.Context,
	table Table,
) ([]models.Row, error) {
	var rows []models.Row

	err := c.View(func(tx *bolt.Tx) error {
		b, err := bucket(tx, table)
		if err != nil {
			return err
		}

		return b.ForEach(func(_, v []byte) error {
			var row models.Row

			if err := json.Unmarshal(v, &row); err != nil {
				return err
			}

			rows = append(rows, row)

			return nil
		})
	})

	return rows, err
}

func (c *BoltClient) Append(
	_ context.Context,
	table Table,
	row models.Row,
) error {
	value, err := json.Marshal(row)
	if err != nil {
		return err
	}

	return c.DB.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, table)
		if err != nil {
			return err
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		return b.Put(key, value)
	})
}

// Update overwrites the row with the same id. Read-write transactions must
// use c.DB.Update since this method shadows it.
func (c *BoltClient) Update(
	_ context.Context,
	table Table,
	row models.Row,
) error {
	value, err := json.Marshal(row)
	if err != nil {
		return err
	}

	return c.DB.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, table)
		if err != nil {
			return err
		}

		key, err := findKey(b, row.ID())
		if err != nil {
			return err
		}

		if key == nil {
			return ErrRowNotFound.Fmt(row.ID(), table)
		}

		return b.Put(key, value)
	})
}

func (c *BoltClient) Delete(_ context.Context, table Table, id string) error {
	return c.DB.Update(func(tx *bolt.Tx) error {
		b, err := bucket(tx, table)
		if err != nil {
			return err
		}

		key, err := findKey(b, id)
		if err != nil {
			return err
		}

		if key == nil {
			return ErrRowNotFound.Fmt(id, table)
		}

		return b.Delete(key)
	})
}
