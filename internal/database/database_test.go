package database

import (
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/queries.sql
var testQueries embed.FS

func TestNew(t *testing.T) {
	t.Run("MemPath", func(t *testing.T) {
		db := NewDB("cache", "", DBTypeInMemoryDSN)
		assert.Equal(t, "file:cache?mode=memory&cache=shared", db.Path)
		assert.Equal(t, DBTypeMemory, db.Type)
		assert.Nil(t, db.LockChecker)
	})

	t.Run("FilePath", func(t *testing.T) {
		db := NewDB("file_test", "/tmp/test/testdb.sqlite", DBTypeFileDSN)
		assert.Equal(t, "file:/tmp/test/testdb.sqlite", db.Path)
		assert.NotNil(t, db.LockChecker)
	})

	t.Run("EscapedFilePath", func(t *testing.T) {
		db := NewDB("escaped", "/tmp/we?ird #1/50%.sqlite", DBTypeFileDSN, DsnOptions{"mode": "ro"})
		assert.Equal(t, "file:/tmp/we%3Fird%20%231/50%25.sqlite?mode=ro", db.Path)
	})

	t.Run("FileCustomDsn", func(t *testing.T) {
		opts := DsnOptions{
			"foo":  "bar",
			"mode": "rw",
		}

		db := NewDB("file_dsn", "", DBTypeFileDSN, opts)
		assert.Equal(t, "file:file_dsn?foo=bar&mode=rw", db.Path)
	})

	t.Run("AppendOptions", func(t *testing.T) {
		opts := DsnOptions{
			"foo":  "bar",
			"mode": "rw",
		}

		db := NewDB("append_opts", "", DBTypeInMemoryDSN, opts)
		assert.Equal(t, "file:append_opts?mode=memory&cache=shared&foo=bar&mode=rw", db.Path)
	})
}

type AlwaysLockedChecker struct {
	locked bool
}

func (f *AlwaysLockedChecker) Locked() (bool, error) {
	return f.locked, nil
}

type LockedSQLXOpener struct {
	err sqlite3.Error
}

func (o *LockedSQLXOpener) Open(driver string, dsn string) error {
	return o.err
}

func (o *LockedSQLXOpener) Get() *sqlx.DB {
	return nil
}

func TestInitLocked(t *testing.T) {
	lockedOpener := &LockedSQLXOpener{
		err: sqlite3.Error{Code: sqlite3.ErrBusy},
	}

	t.Run("VFSLockChecker", func(t *testing.T) {
		testDB := &DB{
			Name:        "test",
			Path:        "file:test",
			EngineMode:  DriverDefault,
			LockChecker: &AlwaysLockedChecker{locked: true},
			SQLXOpener:  lockedOpener,
			Type:        DBTypeRegularFile,
		}

		_, err := testDB.Init()
		assert.ErrorIs(t, err, ErrVfsLocked)
	})

	t.Run("SQLXLockChecker", func(t *testing.T) {
		testDB := &DB{
			Name:        "test",
			Path:        "file:test",
			EngineMode:  DriverDefault,
			LockChecker: &AlwaysLockedChecker{locked: false},
			SQLXOpener:  lockedOpener,
			Type:        DBTypeRegularFile,
		}

		_, err := testDB.Init()
		assert.ErrorIs(t, err, ErrBusy)
		assert.NotErrorIs(t, err, ErrVfsLocked)
	})
}

func TestInitMissingFile(t *testing.T) {
	checker := &VFSLockChecker{path: filepath.Join(t.TempDir(), "missing.sqlite")}
	locked, err := checker.Locked()
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestInitFileEscapedPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "we?ird #dir%")
	require.NoError(t, os.Mkdir(dir, 0755))
	path := filepath.Join(dir, "places.sqlite")

	db, err := NewDB("rw", path, DBTypeFileDSN).Init()
	require.NoError(t, err)
	_, err = db.Handle.Exec(`CREATE TABLE items (id integer PRIMARY KEY)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.FileExists(t, path)

	ro, err := NewDB("ro", path, DBTypeFileDSN, DsnOptions{"mode": "ro"}).Init()
	require.NoError(t, err)
	defer ro.Close()

	var count int
	require.NoError(t, ro.Handle.Get(&count, `SELECT count(*) FROM items`))
	assert.Zero(t, count)
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite")

	db, err := NewDB("rw", path, DBTypeFileDSN).Init()
	require.NoError(t, err)
	_, err = db.Handle.Exec(`CREATE TABLE items (id integer PRIMARY KEY, name text)`)
	require.NoError(t, err)
	_, err = db.Handle.Exec(`INSERT INTO items(name) VALUES ('a'), ('b')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ro, err := NewDB("ro", path, DBTypeFileDSN, DsnOptions{"mode": "ro", "_busy_timeout": "100"}).Init()
	require.NoError(t, err)
	defer ro.Close()

	locked, err := ro.LockChecker.Locked()
	require.NoError(t, err)
	assert.False(t, locked)

	t.Run("dotsql queries", func(t *testing.T) {
		dotx, err := DotxQueryEmbedFS(testQueries, "testdata/queries.sql")
		require.NoError(t, err)

		var names []string
		require.NoError(t, dotx.Select(ro.Handle, &names, "item-names"))
		assert.Equal(t, []string{"a", "b"}, names)

		var count int
		require.NoError(t, dotx.Get(ro.Handle, &count, "count-items"))
		assert.Equal(t, 2, count)
	})

	t.Run("read only", func(t *testing.T) {
		_, err := ro.Handle.Exec(`INSERT INTO items(name) VALUES ('c')`)
		assert.Error(t, err)
	})
}
