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
	"database/sql"
	"os"
	"time"
)

const PlacesFile = "places.sqlite"

// Constants representing the meaning if IDs defined in the table
// moz_bookmarks.id
const (
	_         = iota // 0
	RootID           // 1
	MenuID           // 2 Main bookmarks menu
	ToolbarID        // 3 Bk tookbar that can be toggled under URL zone
	TagsID           // 4 Hidden menu used for tags, stored as a flat one level menu
	OtherID          // 5 Most bookmarks are automatically stored here
	MobileID         // 6 Mobile bookmarks stored here by default
)

// moz_bookmarks.type values
const (
	TypeBookmark  = 1
	TypeFolder    = 2
	TypeSeparator = 3
)

// Folder name used when the parent of a bookmark cannot be resolved
const UnknownFolder = "Unknown"

type Sqlid int64

// Represents the root folder names as shown on Firefox
var RootFolderTitles = map[Sqlid]string{
	MenuID:    "Bookmarks Menu",
	ToolbarID: "Bookmarks Toolbar",
	OtherID:   "Other Bookmarks",
	MobileID:  "Mobile Bookmarks",
}

// A row of moz_bookmarks
type MozBookmarkRow struct {
	ID     Sqlid          `db:"id"`
	Type   int            `db:"type"`
	FK     sql.NullInt64  `db:"fk"`
	Parent sql.NullInt64  `db:"parent"`
	Title  sql.NullString `db:"title"`

	// microseconds since epoch
	DateAdded sql.NullInt64 `db:"dateAdded"`
}

func (r *MozBookmarkRow) Added() time.Time {
	if !r.DateAdded.Valid {
		return time.Time{}
	}
	return time.UnixMicro(r.DateAdded.Int64).UTC()
}

// A row of moz_places
type MozPlace struct {
	ID       Sqlid          `db:"id"`
	URL      string         `db:"url"`
	Title    sql.NullString `db:"title"`
	Frecency sql.NullInt64  `db:"frecency"`
	Hidden   sql.NullBool   `db:"hidden"`
}

// A row of moz_favicons, only present in older places schemas
type MozFavicon struct {
	Data     []byte         `db:"data"`
	MimeType sql.NullString `db:"mime_type"`
}

// PlaceCopyJob is a temporary directory holding a copy of a locked places
// database.
type PlaceCopyJob struct {
	dir string
}

func NewPlaceCopyJob() (PlaceCopyJob, error) {
	dir, err := os.MkdirTemp("", "ffhome-places-*")
	if err != nil {
		return PlaceCopyJob{}, err
	}
	return PlaceCopyJob{dir: dir}, nil
}

func (pc PlaceCopyJob) Path() string {
	return pc.dir
}

func (pc PlaceCopyJob) Clean() error {
	if pc.dir == "" {
		return nil
	}
	log.Debugf("cleaning <%s>", pc.Path())
	return os.RemoveAll(pc.Path())
}
