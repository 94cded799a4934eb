package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/ayoisaiah/readtime/internal/osutil"
)

const boltBucket = "readtime"

// BoltKV is a KV backed by a single BoltDB bucket.
type BoltKV struct {
	*bolt.DB
}

// open creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, berrors.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// OpenBolt opens the BoltDB file at dbPath, creating it and its bucket if
// they do not exist already.
func OpenBolt(dbPath string) (*BoltKV, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), osutil.DirPermission); err != nil {
		return nil, err
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltKV{db}, nil
}

func (b *BoltKV) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte

	err := b.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(boltBucket)).Get([]byte(key))
		if v != nil {
			// bolt values are only valid for the life of the transaction
			value = append([]byte(nil), v...)
		}

		return nil
	})

	return value, err
}

func (b *BoltKV) Put(_ context.Context, key string, value []byte) error {
	return b.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(key), value)
	})
}

func (b *BoltKV) Delete(_ context.Context, key string) error {
	return b.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Delete([]byte(key))
	})
}
