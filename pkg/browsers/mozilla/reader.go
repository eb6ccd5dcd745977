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

package mozilla

import (
	"cmp"
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/swithek/dotsqlx"

	"github.com/blob42/ffhome"
	"github.com/blob42/ffhome/internal/database"
	"github.com/blob42/ffhome/internal/utils"
)

var (
	ErrMissingDatabase = errors.New("places database not found")
	ErrUnknownRowType  = errors.New("unknown moz_bookmarks row type")
)

const DefaultLockTimeout = 30 * time.Second

type ReadOptions struct {
	// How long sqlite waits on a locked database before failing
	LockTimeout time.Duration

	// Fail instead of reading a temporary copy when firefox holds an
	// exclusive lock on the database.
	NoCopy bool
}

func (o ReadOptions) dsn() database.DsnOptions {
	timeout := o.LockTimeout
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	return database.DsnOptions{
		"_busy_timeout": strconv.FormatInt(timeout.Milliseconds(), 10),
	}
}

// ReadBookmarks returns the visible, titled bookmarks of the places database
// at path, sorted by place id.
func ReadBookmarks(ctx context.Context, path string, opts ReadOptions) ([]*ffhome.Bookmark, error) {
	exists, err := utils.CheckFileExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrMissingDatabase, path)
	}

	roOpts := opts.dsn()
	roOpts["mode"] = "ro"

	db, err := database.NewDB("places", path, database.DBTypeFileDSN, roOpts).Init()
	if errors.Is(err, database.ErrVfsLocked) {
		warnLocked(path)
		if opts.NoCopy {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		pc, cerr := NewPlaceCopyJob()
		if cerr != nil {
			return nil, cerr
		}
		defer func() {
			if err := pc.Clean(); err != nil {
				log.Errorf("error cleaning tmp places file: %s", err)
			}
		}()

		db, err = initPlacesCopy(pc, path, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("opening places: %w", err)
	}
	defer db.Close()

	dotx, err := database.DotxQueryEmbedFS(EmbeddedSQLQueries, PlacesQueryFile)
	if err != nil {
		return nil, err
	}

	r := &placesReader{db: db, dotx: dotx}
	return r.read(ctx)
}

// Copies places.sqlite and its journal files next to each other so the
// copy can be opened without the firefox lock.
func initPlacesCopy(pc PlaceCopyJob, path string, opts ReadOptions) (*database.DB, error) {
	err := utils.CopyFilesToFolder(path+"*", pc.Path())
	if err != nil {
		return nil, fmt.Errorf("could not copy places.sqlite to tmp folder: %w", err)
	}

	log.Infof("reading a copy of locked <%s>", utils.Shorten(path))
	return database.NewDB("places-copy",
		filepath.Join(pc.Path(), filepath.Base(path)),
		database.DBTypeFileDSN, opts.dsn()).Init()
}

func warnLocked(path string) {
	users, err := utils.FileProcessUsers(path)
	if err != nil {
		log.Debugf("listing lock holders: %s", err)
	}

	for pid, p := range users {
		name, _ := p.Name()
		log.Warnf("<%s> is locked by %s(%d)", utils.Shorten(path), name, pid)
	}
	if len(users) == 0 {
		log.Warnf("<%s> is locked", utils.Shorten(path))
	}

	prefs := filepath.Join(filepath.Dir(path), PrefsFile)
	if enabled, err := GetPrefBool(prefs, PrefMultiProcessAccess); err != nil || !enabled {
		log.Infof("set %s to true in <%s> to read places without a copy",
			PrefMultiProcessAccess, utils.Shorten(prefs))
	}
}

type stub struct {
	title  string
	added  time.Time
	folder Sqlid
	place  *MozPlace
	tags   []Sqlid

	// bookmark row seen, place resolved and visible
	legit bool

	// a bookmark row pointed to a missing or hidden place
	rejected bool
}

type placesReader struct {
	db   *database.DB
	dotx *dotsqlx.DotSqlx
}

func (r *placesReader) read(ctx context.Context) ([]*ffhome.Bookmark, error) {
	var rows []MozBookmarkRow
	if err := r.dotx.Select(r.db.Handle, &rows, QAllBookmarks); err != nil {
		if database.IsBusy(err) {
			return nil, fmt.Errorf("scanning moz_bookmarks: %w: %s", database.ErrBusy, err)
		}
		return nil, fmt.Errorf("scanning moz_bookmarks: %w", err)
	}
	log.Debugf("scanned %d moz_bookmarks rows", len(rows))

	stubs := make(map[Sqlid]*stub)
	names := make(map[Sqlid]string)

	getStub := func(fk Sqlid) *stub {
		s, ok := stubs[fk]
		if !ok {
			s = &stub{}
			stubs[fk] = s
		}
		return s
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch {
		case row.Type == TypeBookmark && row.Title.Valid:
			fk := Sqlid(row.FK.Int64)
			s := getStub(fk)

			place, err := r.place(fk)
			if err != nil {
				return nil, err
			}
			if place == nil || place.Hidden.Bool {
				if place == nil {
					log.Warnf("missing moz_places entry for bookmark %d, ignoring (title: %q)", row.ID, row.Title.String)
				}
				s.rejected = true
				continue
			}

			s.title = row.Title.String
			s.added = row.Added()
			s.folder = Sqlid(row.Parent.Int64)
			s.place = place
			s.legit = true

		case row.Type == TypeBookmark:
			// tag link: parent is the tag folder
			s := getStub(Sqlid(row.FK.Int64))
			s.tags = append(s.tags, Sqlid(row.Parent.Int64))

		case row.Type == TypeFolder:
			names[row.ID] = row.Title.String

		case row.Type == TypeSeparator:
			// separators carry no data

		default:
			return nil, fmt.Errorf("%w: %d (row id %d)", ErrUnknownRowType, row.Type, row.ID)
		}
	}

	withIcons, err := r.hasFavicons()
	if err != nil {
		return nil, err
	}

	var result []*ffhome.Bookmark
	for fk, s := range stubs {
		if !s.legit || s.rejected {
			continue
		}

		bk := &ffhome.Bookmark{
			ID:       int64(fk),
			Title:    s.title,
			Added:    s.added,
			URL:      s.place.URL,
			Frecency: s.place.Frecency.Int64,
			Hidden:   s.place.Hidden.Bool,
			Tags:     []string{},
		}

		for _, tagID := range s.tags {
			name, ok := names[tagID]
			if !ok {
				log.Warnf("unknown tag id %d in bookmark-tag link, skipping (bm: %s)", tagID, bk)
				continue
			}
			bk.Tags = utils.Extends(bk.Tags, name)
		}
		slices.Sort(bk.Tags)

		bk.Folder = r.folderName(names, s.folder, bk)

		if withIcons {
			if bk.Favicon, err = r.favicon(fk); err != nil {
				return nil, err
			}
		}

		result = append(result, bk)
	}

	slices.SortFunc(result, func(a, b *ffhome.Bookmark) int {
		return cmp.Compare(a.ID, b.ID)
	})

	log.Debugf("read %d bookmarks", len(result))
	return result, nil
}

func (r *placesReader) folderName(names map[Sqlid]string, id Sqlid, bk *ffhome.Bookmark) string {
	name, ok := names[id]
	if !ok {
		log.Warnf("unknown parent folder id %d in bookmark-parent link, using %q (bm: %s)", id, UnknownFolder, bk)
		return UnknownFolder
	}
	if root, isRoot := RootFolderTitles[id]; isRoot && name == "" {
		return root
	}
	return name
}

func (r *placesReader) place(id Sqlid) (*MozPlace, error) {
	var p MozPlace
	err := r.dotx.Get(r.db.Handle, &p, QPlaceByID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("place %d: %w", id, err)
	}
	return &p, nil
}

// Older places schemas keep favicons in moz_favicons, referenced by
// moz_places.favicon_id.
func (r *placesReader) hasFavicons() (bool, error) {
	var count int
	if err := r.dotx.Get(r.db.Handle, &count, QTableExists, "moz_favicons"); err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}

	var columns []string
	if err := r.dotx.Select(r.db.Handle, &columns, QTableColumns, "moz_places"); err != nil {
		return false, err
	}
	return slices.Contains(columns, "favicon_id"), nil
}

func (r *placesReader) favicon(place Sqlid) (*ffhome.Favicon, error) {
	var iconID sql.NullInt64
	if err := r.dotx.Get(r.db.Handle, &iconID, QPlaceFaviconID, place); err != nil {
		return nil, fmt.Errorf("favicon id of place %d: %w", place, err)
	}
	if !iconID.Valid || iconID.Int64 == 0 {
		return nil, nil
	}

	var icon MozFavicon
	err := r.dotx.Get(r.db.Handle, &icon, QFaviconByID, iconID.Int64)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debugf("missing favicon %d for place %d", iconID.Int64, place)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("favicon %d: %w", iconID.Int64, err)
	}
	if len(icon.Data) == 0 {
		return nil, nil
	}

	return &ffhome.Favicon{
		MimeType: icon.MimeType.String,
		Data:     base64.StdEncoding.EncodeToString(icon.Data),
	}, nil
}
