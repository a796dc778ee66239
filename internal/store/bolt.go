package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
	"go.etcd.io/bbolt"
)

// BoltStore keeps the book in a bbolt file.
// Bucket "contacts": key = big-endian position -> record JSON.
type BoltStore struct {
	path string
}

// NewBoltStore returns a BoltStore for path. The file is only opened during Load and Save.
func NewBoltStore(path string) *BoltStore {
	return &BoltStore{path: path}
}

// Load reads the snapshot. A missing file yields an empty book.
func (s *BoltStore) Load(ctx context.Context) (*engine.AddressBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	book := engine.NewAddressBook()
	log := slog.With(config.LogKeyComponent, config.CompStore, config.LogKeyDriver, config.DriverBolt)

	absent, err := isAbsent(s.path)
	if err != nil {
		return nil, err
	}
	if absent {
		log.Info(config.MsgBookMissing, config.LogKeyFile, s.path)
		return book, nil
	}

	db, err := bbolt.Open(s.path, config.FilePermUserRW, &bbolt.Options{
		Timeout:  config.StoreOpenTimeout,
		ReadOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}
	defer func() { _ = db.Close() }()

	err = db.View(func(tx *bbolt.Tx) error {
		contacts := tx.Bucket([]byte(config.BoltBucketContacts))
		if contacts == nil {
			return nil
		}

		// Keys are big-endian positions, so cursor order is insertion order.
		return contacts.ForEach(func(k, v []byte) error {
			var doc recordDoc
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("%s: %w", config.ErrStoreDecode, err)
			}
			rec, err := fromDoc(doc)
			if err != nil {
				return err
			}
			book.AddRecord(rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
	}

	log.Info(config.MsgBookLoaded, config.LogKeyFile, s.path, config.LogKeyCount, book.Len())
	return book, nil
}

// Save replaces the stored snapshot with book in a single transaction.
func (s *BoltStore) Save(ctx context.Context, book *engine.AddressBook) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ensureParentDir(s.path); err != nil {
		return err
	}

	db, err := bbolt.Open(s.path, config.FilePermUserRW, &bbolt.Options{Timeout: config.StoreOpenTimeout})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%s: %w", config.ErrStoreSave, cerr)
		}
	}()

	err = db.Update(func(tx *bbolt.Tx) error {
		name := []byte(config.BoltBucketContacts)
		if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return err
		}
		contacts, err := tx.CreateBucket(name)
		if err != nil {
			return err
		}

		for i, rec := range book.Records() {
			data, err := json.Marshal(toDoc(rec))
			if err != nil {
				return err
			}
			if err := contacts.Put(positionKey(i), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreSave, err)
	}

	slog.Info(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyDriver, config.DriverBolt,
		config.LogKeyFile, s.path,
		config.LogKeyCount, book.Len())
	return nil
}

func positionKey(i int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(i))
	return key
}
