package storage

import (
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/loom-ui/loom/internal/errors"
	"github.com/loom-ui/loom/pkg/state"
)

const bucketSnapshots = "snapshots"

// Store persists named state snapshots in a bbolt file. Snapshots are
// JSON-encoded, so only JSON-encodable values survive a round trip;
// event handlers and other funcs held in state are dropped on save.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the snapshot store at path. The file is
// locked for the lifetime of the store; a second Open on the same path
// fails after a short timeout instead of blocking forever.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.New("E140").Wrap(err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.New("E140").Wrap(err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot persists a state record under name, replacing any
// previous snapshot with that name.
func (s *Store) SaveSnapshot(name string, values map[string]any) error {
	data, err := json.Marshal(encodable(values))
	if err != nil {
		return errors.New("E142").Wrap(err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSnapshots))
		return b.Put([]byte(name), data)
	})
}

// LoadSnapshot retrieves the state record saved under name.
func (s *Store) LoadSnapshot(name string) (map[string]any, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSnapshots))
		if v := b.Get([]byte(name)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errors.New("E141")
	}

	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.New("E142").Wrap(err)
	}
	return values, nil
}

// DeleteSnapshot removes the snapshot saved under name. Deleting an
// absent snapshot is a no-op.
func (s *Store) DeleteSnapshot(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSnapshots))
		return b.Delete([]byte(name))
	})
}

// ListSnapshots returns the names of all saved snapshots in key order.
func (s *Store) ListSnapshots() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSnapshots))
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			names = append(names, string(k))
		}
		return nil
	})
	return names, err
}

// SaveState persists the current contents of a live store.
func (s *Store) SaveState(name string, st *state.Store) error {
	return s.SaveSnapshot(name, st.Snapshot())
}

// RestoreState loads a snapshot into a live store as one batch write.
func (s *Store) RestoreState(name string, st *state.Store) error {
	values, err := s.LoadSnapshot(name)
	if err != nil {
		return err
	}
	st.Update(values)
	return nil
}

// encodable filters a record down to the values json.Marshal accepts.
func encodable(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if _, err := json.Marshal(v); err != nil {
			continue
		}
		out[k] = v
	}
	return out
}
