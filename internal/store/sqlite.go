package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps the book in a single SQLite table.
// Phones are stored as a JSON array; position preserves insertion order.
type SQLiteStore struct {
	path string
}

// NewSQLiteStore returns a SQLiteStore for path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(config.SQLiteDriverName, s.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, config.SQLiteCreateTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}
	return db, nil
}

// Load reads every row in position order. A missing file yields an empty book.
func (s *SQLiteStore) Load(ctx context.Context) (*engine.AddressBook, error) {
	book := engine.NewAddressBook()
	log := slog.With(config.LogKeyComponent, config.CompStore, config.LogKeyDriver, config.DriverSQLite)

	absent, err := isAbsent(s.path)
	if err != nil {
		return nil, err
	}
	if absent {
		log.Info(config.MsgBookMissing, config.LogKeyFile, s.path)
		return book, nil
	}

	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, config.SQLiteSelectAll)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var doc recordDoc
		var phones string
		if err := rows.Scan(&doc.Name, &phones, &doc.Birthday); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
		}
		if err := json.Unmarshal([]byte(phones), &doc.Phones); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", config.ErrStoreLoad, config.ErrStoreDecode, err)
		}
		rec, err := fromDoc(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
		}
		book.AddRecord(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
	}

	log.Info(config.MsgBookLoaded, config.LogKeyFile, s.path, config.LogKeyCount, book.Len())
	return book, nil
}

// Save replaces the table contents with book in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, book *engine.AddressBook) error {
	if err := ensureParentDir(s.path); err != nil {
		return err
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreSave, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, config.SQLiteDeleteAll); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreSave, err)
	}

	for i, rec := range book.Records() {
		doc := toDoc(rec)
		phones, err := json.Marshal(doc.Phones)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrStoreSave, err)
		}
		if _, err := tx.ExecContext(ctx, config.SQLiteInsert, i, doc.Name, string(phones), doc.Birthday); err != nil {
			return fmt.Errorf("%s: %w", config.ErrStoreSave, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreSave, err)
	}

	slog.Info(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyDriver, config.DriverSQLite,
		config.LogKeyFile, s.path,
		config.LogKeyCount, book.Len())
	return nil
}
