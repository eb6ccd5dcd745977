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
	"embed"
)

const (
	PlacesQueryFile = "places.sql"

	QAllBookmarks   = "all-bookmarks"
	QPlaceByID      = "place-by-id"
	QTableExists    = "table-exists"
	QTableColumns   = "table-columns"
	QPlaceFaviconID = "place-favicon-id"
	QFaviconByID    = "favicon-by-id"
)

var (
	//go:embed "places.sql"
	EmbeddedSQLQueries embed.FS
)
