package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	journalBucket    = "launches"
	metaBucket       = "meta"
	lastCleanupKey   = "last_cleanup"
	expiryValueBytes = 8
	keyTimeBytes     = 8
)

// boltStore implements a Store backed by BoltDB.
// Keys are the big-endian record time followed by the execution id, so a
// reverse cursor walk yields newest entries first. Values are the expiry
// timestamp followed by the JSON-encoded entry.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	entryTTL        time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	var lastCleanup int64
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(journalBucket)); err != nil {
			return err
		}
		meta, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		if err != nil {
			return err
		}
		// the store is reopened by every invocation, so the cleanup cadence is persisted
		if raw := meta.Get([]byte(lastCleanupKey)); len(raw) == 8 {
			lastCleanup = int64(binary.BigEndian.Uint64(raw))
			return nil
		}
		lastCleanup = time.Now().Unix()
		return meta.Put([]byte(lastCleanupKey), encodeUnix(lastCleanup))
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		entryTTL:        opts.EntryTTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	store.lastCleanup.Store(lastCleanup)
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Record appends an entry to the journal. A zero RecordedAt is set to now.
func (b *boltStore) Record(entry Entry) error {
	if b == nil || b.db == nil {
		return nil
	}
	if entry.ExecutionID == "" {
		return fmt.Errorf("journal entry requires an execution id")
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = now.UTC()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(journalBucket))
		if bucket == nil {
			return fmt.Errorf("journal bucket missing")
		}
		value := make([]byte, expiryValueBytes, expiryValueBytes+len(payload))
		binary.BigEndian.PutUint64(value, uint64(now.Add(b.entryTTL).Unix()))
		value = append(value, payload...)
		return bucket.Put(entryKey(entry), value)
	})
}

// Recent returns up to limit live entries, newest first. limit <= 0 means all.
func (b *boltStore) Recent(limit int) ([]Entry, error) {
	if b == nil || b.db == nil {
		return nil, nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return nil, err
	}

	var out []Entry
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(journalBucket))
		if bucket == nil {
			return fmt.Errorf("journal bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil; k, v = cursor.Prev() {
			if limit > 0 && len(out) >= limit {
				break
			}
			expiry, ok := decodeExpiry(v)
			if !ok || !expiry.After(now) {
				continue
			}
			var entry Entry
			if err := json.Unmarshal(v[expiryValueBytes:], &entry); err != nil {
				return fmt.Errorf("decode journal entry %x: %w", k, err)
			}
			out = append(out, entry)
		}
		return nil
	})
	return out, err
}

// maybeCleanupExpired removes expired entries on a fixed cadence to avoid unbounded growth.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(journalBucket))
		if bucket == nil {
			return fmt.Errorf("journal bucket missing")
		}

		// deleting under a live cursor skips the following key
		var expired [][]byte
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			expiry, ok := decodeExpiry(v)
			if !ok || !expiry.After(now) {
				expired = append(expired, append([]byte(nil), k...))
			}
		}
		for _, k := range expired {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		meta := tx.Bucket([]byte(metaBucket))
		if meta == nil {
			return fmt.Errorf("meta bucket missing")
		}
		return meta.Put([]byte(lastCleanupKey), encodeUnix(now.Unix()))
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

func entryKey(entry Entry) []byte {
	key := make([]byte, keyTimeBytes, keyTimeBytes+len(entry.ExecutionID)+1+len(entry.Action))
	binary.BigEndian.PutUint64(key, uint64(entry.RecordedAt.UnixNano()))
	key = append(key, entry.ExecutionID...)
	key = append(key, '/')
	key = append(key, entry.Action...)
	return key
}

func encodeUnix(sec int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(sec))
	return buf
}

// decodeExpiry decodes the expiry time from the head of a stored value.
func decodeExpiry(value []byte) (time.Time, bool) {
	if len(value) < expiryValueBytes {
		return time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:expiryValueBytes]))
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
