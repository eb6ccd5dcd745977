//
// Copyright (c) 2023-2025 Chakib Ben Ziane <contact@blob42.xyz> and [`ffhome` contributors]
// (https://github.com/blob42/ffhome/graphs/contributors).
//
// All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// This file is part of ffhome.
//
// ffhome is free software: you can redistribute it and/or modify it under the terms of
// the GNU Affero General Public License as published by the Free Software Foundation,
// either version 3 of the License, or (at your option) any later version.
//
// ffhome is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR
// PURPOSE.  See the GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License along with
// ffhome.  If not, see <http://www.gnu.org/licenses/>.

// Package database wraps the sqlite handles used to read browser databases.
package database

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/blob42/ffhome/internal/utils"
	"github.com/blob42/ffhome/pkg/logging"
)

var log = logging.GetLogger("DB")

const (
	DriverDefault = "sqlite3"

	DBTypeFileDSN     = "file:%s"
	DBTypeInMemoryDSN = "file:%s?mode=memory&cache=shared"
)

type DBType int

const (
	DBTypeRegularFile DBType = iota
	DBTypeMemory
)

var (
	ErrVfsLocked = errors.New("vfs locked")
	ErrBusy      = errors.New("database busy")
)

// DsnOptions are appended as query parameters to the data source name.
type DsnOptions map[string]string

// SQLXOpener opens the underlying sqlx handle. It can be replaced in tests.
type SQLXOpener interface {
	Open(driver string, dsn string) error
	Get() *sqlx.DB
}

type sqlxDBOpener struct {
	handle *sqlx.DB
}

func (o *sqlxDBOpener) Open(driver string, dsn string) error {
	var err error
	o.handle, err = sqlx.Open(driver, dsn)
	if err != nil {
		return err
	}
	return o.handle.Ping()
}

func (o *sqlxDBOpener) Get() *sqlx.DB {
	return o.handle
}

// DB encapsulates an sqlx.DB handle together with the information needed to
// open it.
type DB struct {
	Name       string
	Path       string
	Handle     *sqlx.DB
	EngineMode string
	Type       DBType

	// Checks the database file lock before opening
	LockChecker LockChecker
	SQLXOpener  SQLXOpener
}

// NewDB builds a DB for name at path. The DSN is formatted with dsnFmt and
// the options are appended in key order.
func NewDB(name string, path string, dsnFmt string, opts ...DsnOptions) *DB {
	target := path
	if target == "" {
		target = name
	}

	// ?, # and % in a path would otherwise end the sqlite uri path
	dsn := fmt.Sprintf(dsnFmt, (&url.URL{Path: target}).EscapedPath())

	var params []string
	for _, o := range opts {
		for _, k := range utils.SortedKeys(o) {
			params = append(params, fmt.Sprintf("%s=%s", k, url.QueryEscape(o[k])))
		}
	}
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + strings.Join(params, "&")
	}

	db := &DB{
		Name:       name,
		Path:       dsn,
		EngineMode: DriverDefault,
		SQLXOpener: &sqlxDBOpener{},
	}

	if dsnFmt == DBTypeInMemoryDSN {
		db.Type = DBTypeMemory
	} else if path != "" {
		db.Type = DBTypeRegularFile
		db.LockChecker = &VFSLockChecker{path: path}
	}

	return db
}

// Init opens the database. A file locked by another process yields
// ErrVfsLocked, an sqlite busy timeout ErrBusy.
func (db *DB) Init() (*DB, error) {
	if db.Handle != nil {
		return db, fmt.Errorf("%s: already initialized", db.Name)
	}

	if db.Type == DBTypeRegularFile && db.LockChecker != nil {
		locked, err := db.LockChecker.Locked()
		if err != nil {
			return nil, err
		}
		if locked {
			return nil, ErrVfsLocked
		}
	}

	if db.SQLXOpener == nil {
		db.SQLXOpener = &sqlxDBOpener{}
	}

	err := db.SQLXOpener.Open(db.EngineMode, db.Path)
	if err != nil {
		if IsBusy(err) {
			return nil, fmt.Errorf("%w: <%s>: %s", ErrBusy, db.Name, err)
		}
		return nil, fmt.Errorf("opening <%s>: %w", db.Name, err)
	}

	db.Handle = db.SQLXOpener.Get()
	log.Debugf("<%s> opened at <%s>", db.Name, db.Path)

	return db, nil
}

func (db *DB) Close() error {
	if db.Handle == nil {
		return nil
	}
	log.Debugf("closing DB <%s>", db.Name)
	err := db.Handle.Close()
	db.Handle = nil
	return err
}

// IsBusy reports whether err is an sqlite lock contention error.
func IsBusy(err error) bool {
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code == sqlite3.ErrBusy || sqlErr.Code == sqlite3.ErrLocked
	}
	return false
}
