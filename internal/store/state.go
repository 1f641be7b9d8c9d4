package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/abhisek/intervue/internal/interview"
)

var stateBucket = []byte("session_state")

var _ interview.StateStore = (*BoltStateStore)(nil)

// BoltStateStore keeps live session decision state in a bbolt file so that
// separate CLI invocations can continue the same interview.
type BoltStateStore struct {
	db *bolt.DB
}

// OpenStateStore opens or creates the state file at path.
func OpenStateStore(path string) (*BoltStateStore, error) {
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state bucket: %w", err)
	}
	return &BoltStateStore{db: db}, nil
}

// Close releases the file lock.
func (s *BoltStateStore) Close() error {
	return s.db.Close()
}

func (s *BoltStateStore) Get(_ context.Context, sessionID string) (*interview.SessionState, error) {
	var st *interview.SessionState
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(stateBucket).Get([]byte(sessionID))
		if v == nil {
			return nil
		}
		st = &interview.SessionState{}
		return json.Unmarshal(v, st)
	})
	if err != nil {
		return nil, fmt.Errorf("read state %s: %w", sessionID, err)
	}
	return st, nil
}

func (s *BoltStateStore) Put(_ context.Context, st *interview.SessionState) error {
	enc, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Put([]byte(st.SessionID), enc)
	})
}

func (s *BoltStateStore) Delete(_ context.Context, sessionID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Delete([]byte(sessionID))
	})
}

// Len returns the number of stored states.
func (s *BoltStateStore) Len() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(stateBucket).Stats().KeyN
		return nil
	})
	return n, err
}
