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

// Package ffhome builds a static browser homepage out of the firefox
// bookmarks, a yaml backlog of links and a plain link list.
package ffhome

import (
	"fmt"
	"time"
)

// Favicon holds a base64 encoded icon as stored in the places database.
type Favicon struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// DataURI returns the icon as an inline data uri.
func (f *Favicon) DataURI() string {
	if f == nil || f.Data == "" {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", f.MimeType, f.Data)
}

// Bookmark is a titled firefox bookmark joined with its place.
type Bookmark struct {
	// Place id
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Added    time.Time `json:"added"`
	Folder   string    `json:"folder"`
	URL      string    `json:"url"`
	Frecency int64     `json:"frecency"`
	Hidden   bool      `json:"hidden"`
	Tags     []string  `json:"tags"`
	Favicon  *Favicon  `json:"favicon,omitempty"`
}

func (b *Bookmark) String() string {
	return fmt.Sprintf("%s <%s>", b.Title, b.URL)
}
