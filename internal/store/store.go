// Package store persists the address book between sessions.
//
// The whole book is treated as one snapshot: it is read once at startup with
// [Store.Load] and written once at exit with [Store.Save]. A missing data file
// loads as an empty book; a corrupt one is an error.
//
// Two backends are available and selected by [Open]:
//   - bolt (default): a bbolt file with one bucket of JSON documents
//   - sqlite: a single table in a pure-Go SQLite database
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

// Store loads and saves a complete AddressBook snapshot.
type Store interface {
	Load(ctx context.Context) (*engine.AddressBook, error)
	Save(ctx context.Context, book *engine.AddressBook) error
}

// Open returns the Store for driver backed by the file at path.
func Open(driver, path string) (Store, error) {
	switch driver {
	case config.DriverBolt:
		return NewBoltStore(path), nil
	case config.DriverSQLite:
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrDriverUnsupport, driver)
	}
}

// recordDoc is the serialised form of a Record.
type recordDoc struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
}

func toDoc(r *engine.Record) recordDoc {
	doc := recordDoc{Name: r.Name(), Phones: []string{}}
	for _, p := range r.Phones() {
		doc.Phones = append(doc.Phones, p.String())
	}
	if b, ok := r.Birthday(); ok {
		doc.Birthday = b.String()
	}
	return doc
}

// fromDoc rebuilds a Record through the validating constructors.
func fromDoc(doc recordDoc) (*engine.Record, error) {
	r, err := engine.NewRecord(doc.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreDecode, err)
	}
	for _, v := range doc.Phones {
		p, err := engine.NewPhone(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrStoreDecode, err)
		}
		r.AddPhone(p)
	}
	if doc.Birthday != "" {
		b, err := engine.NewBirthday(doc.Birthday)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrStoreDecode, err)
		}
		r.AddBirthday(b)
	}
	return r, nil
}

// isAbsent reports whether path does not exist or is an empty file.
func isAbsent(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}
	return info.Size() == 0, nil
}

// ensureParentDir creates the directory holding path.
func ensureParentDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}
	return nil
}
