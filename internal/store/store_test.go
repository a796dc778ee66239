package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
	"github.com/tartampluch/go-addressbook/internal/store"
)

var drivers = []string{config.DriverBolt, config.DriverSQLite}

// setupStore opens a store of the given driver in a temporary directory.
func setupStore(t *testing.T, driver string) (store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.db")
	s, err := store.Open(driver, path)
	require.NoError(t, err)
	return s, path
}

func sampleBook(t *testing.T) *engine.AddressBook {
	t.Helper()
	book := engine.NewAddressBook()

	john, err := engine.NewRecord("John Doe")
	require.NoError(t, err)
	for _, v := range []string{"1234567890", "5555555555"} {
		p, err := engine.NewPhone(v)
		require.NoError(t, err)
		john.AddPhone(p)
	}
	b, err := engine.NewBirthday("12.06.1990")
	require.NoError(t, err)
	john.AddBirthday(b)
	book.AddRecord(john)

	jane, err := engine.NewRecord("Jane")
	require.NoError(t, err)
	book.AddRecord(jane)

	amy, err := engine.NewRecord("Amy")
	require.NoError(t, err)
	p, err := engine.NewPhone("0987654321")
	require.NoError(t, err)
	amy.AddPhone(p)
	book.AddRecord(amy)

	return book
}

func recordLines(book *engine.AddressBook) []string {
	var out []string
	for _, r := range book.Records() {
		out = append(out, r.String())
	}
	return out
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := store.Open("postgres", "x.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrDriverUnsupport)
}

func TestStore_RoundTrip(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			s, path := setupStore(t, driver)
			want := sampleBook(t)

			require.NoError(t, s.Save(ctx, want))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, recordLines(want), recordLines(got))

			jane, ok := got.Find("Jane")
			require.True(t, ok)
			assert.Empty(t, jane.Phones())
			_, ok = jane.Birthday()
			assert.False(t, ok)
		})
	}
}

func TestStore_SaveReplacesSnapshot(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			s, _ := setupStore(t, driver)

			book := sampleBook(t)
			require.NoError(t, s.Save(ctx, book))

			book.Delete("John Doe")
			require.NoError(t, s.Save(ctx, book))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, got.Len())
			_, ok := got.Find("John Doe")
			assert.False(t, ok)
			assert.Equal(t, recordLines(book), recordLines(got))
		})
	}
}

func TestStore_MissingFileLoadsEmpty(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			s, path := setupStore(t, driver)

			got, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 0, got.Len())

			_, err = os.Stat(path)
			assert.True(t, os.IsNotExist(err), "Load must not create the file")
		})
	}
}

func TestStore_EmptyBookRoundTrip(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			s, _ := setupStore(t, driver)

			require.NoError(t, s.Save(ctx, engine.NewAddressBook()))
			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, got.Len())
		})
	}
}

func TestStore_CorruptFile(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			s, path := setupStore(t, driver)
			require.NoError(t, os.WriteFile(path, []byte("definitely not a database"), config.FilePermUserRW))

			_, err := s.Load(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestStore_SaveCreatesParentDir(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "dir", "book.db")
			s, err := store.Open(driver, path)
			require.NoError(t, err)

			require.NoError(t, s.Save(context.Background(), sampleBook(t)))
			_, err = os.Stat(path)
			assert.NoError(t, err)
		})
	}
}

func TestBoltStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := store.NewBoltStore(filepath.Join(t.TempDir(), "book.db"))
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Save(ctx, engine.NewAddressBook()), context.Canceled)
}
