package repository

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var (
	sessionsBucket = []byte("sessions")
	lastSeenKey    = []byte("\x00last_seen")
)

// BoltSessionStore keeps one nested bucket per session inside "sessions".
type BoltSessionStore struct {
	db  *bbolt.DB
	now func() time.Time
}

var _ SessionStore = (*BoltSessionStore)(nil)

// OpenBoltSessionStore opens (or creates) the BBolt file at path.
func OpenBoltSessionStore(path string) (*BoltSessionStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating sessions bucket: %w", err)
	}
	return &BoltSessionStore{db: db, now: time.Now}, nil
}

// Close closes the underlying BBolt database.
func (s *BoltSessionStore) Close() error {
	return s.db.Close()
}

func (s *BoltSessionStore) GetString(_ context.Context, sessionID, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionsBucket).Bucket([]byte(sessionID))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})
	return value, found, err
}

func (s *BoltSessionStore) SetString(_ context.Context, sessionID, key, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := s.sessionBucket(tx, sessionID)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}

func (s *BoltSessionStore) Remove(_ context.Context, sessionID, key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionsBucket).Bucket([]byte(sessionID))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

func (s *BoltSessionStore) Touch(_ context.Context, sessionID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := s.sessionBucket(tx, sessionID)
		return err
	})
}

func (s *BoltSessionStore) Sweep(_ context.Context, idleBefore time.Time) (int, error) {
	cutoff := idleBefore.UnixNano()
	removed := 0
	err := s.db.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(sessionsBucket)
		var stale [][]byte
		err := root.ForEach(func(k, v []byte) error {
			if v != nil {
				return nil
			}
			b := root.Bucket(k)
			if lastSeen(b) < cutoff {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := root.DeleteBucket(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	return removed, err
}

// sessionBucket returns the session's bucket and stamps its last activity.
func (s *BoltSessionStore) sessionBucket(tx *bbolt.Tx, sessionID string) (*bbolt.Bucket, error) {
	b, err := tx.Bucket(sessionsBucket).CreateBucketIfNotExists([]byte(sessionID))
	if err != nil {
		return nil, err
	}
	stamp := make([]byte, 8)
	binary.BigEndian.PutUint64(stamp, uint64(s.now().UnixNano()))
	return b, b.Put(lastSeenKey, stamp)
}

func lastSeen(b *bbolt.Bucket) int64 {
	v := b.Get(lastSeenKey)
	if len(v) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(v))
}
