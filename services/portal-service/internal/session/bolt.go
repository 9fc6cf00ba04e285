package session

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var sessionsBucket = []byte("sessions")

// BoltBackend stores sessions in a local bbolt file for single node
// deployments. Entries do not expire.
type BoltBackend struct {
	db *bbolt.DB
}

func OpenBolt(path string) (*BoltBackend, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("session: open bolt: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session: create bucket: %w", err)
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}

func boltKey(sessionID, key string) []byte {
	return []byte(sessionID + "/" + key)
}

func (b *BoltBackend) Get(_ context.Context, sessionID, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(sessionsBucket).Get(boltKey(sessionID, key))
		if v == nil {
			return ErrNotFound
		}
		// bbolt values are only valid inside the transaction.
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

func (b *BoltBackend) Set(_ context.Context, sessionID, key string, value []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put(boltKey(sessionID, key), value)
	})
}

func (b *BoltBackend) Delete(_ context.Context, sessionID string, keys ...string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionsBucket)
		for _, k := range keys {
			if err := bucket.Delete(boltKey(sessionID, k)); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReadyCheck reports whether the bolt file is still open.
func (b *BoltBackend) ReadyCheck(context.Context) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(sessionsBucket) == nil {
			return fmt.Errorf("session: bucket missing")
		}
		return nil
	})
}
