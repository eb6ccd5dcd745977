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

// Package tags builds the tag index and the tag co-occurrence graph shown on
// the homepage.
package tags

import (
	"cmp"
	"encoding/json"
	"slices"
	"strings"

	"github.com/blob42/ffhome"
	"github.com/blob42/ffhome/internal/utils"
	"github.com/blob42/ffhome/pkg/logging"
)

var log = logging.GetLogger("TAGS")

type Link struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Frecency int64  `json:"frecency"`
	Icon     string `json:"icon,omitempty"`
}

type Tag struct {
	Count int     `json:"count"`
	Links []*Link `json:"links"`
}

// Edge is an unordered tag pair, A < B, with the number of bookmarks
// carrying both tags.
type Edge struct {
	A, B   string
	Weight int
}

func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.A, e.B, e.Weight})
}

type Index struct {
	Tags  map[string]*Tag `json:"tags"`
	Edges []Edge          `json:"edges"`
}

// Aggregate indexes bookmarks by their case folded tags.
func Aggregate(bookmarks []*ffhome.Bookmark) *Index {
	idx := &Index{
		Tags:  make(map[string]*Tag),
		Edges: []Edge{},
	}

	links := make(map[string]map[string]*Link)
	pairs := make(map[[2]string]int)

	for _, bk := range bookmarks {
		var names []string
		for _, t := range bk.Tags {
			names = utils.Extends(names, strings.ToLower(t))
		}

		for _, name := range names {
			tag, ok := idx.Tags[name]
			if !ok {
				tag = &Tag{}
				idx.Tags[name] = tag
				links[name] = make(map[string]*Link)
			}
			tag.Count++

			links[name][bk.URL] = &Link{
				Title:    bk.Title,
				URL:      bk.URL,
				Frecency: bk.Frecency,
				Icon:     bk.Favicon.DataURI(),
			}
		}

		slices.Sort(names)
		for i, a := range names {
			for _, b := range names[i+1:] {
				pairs[[2]string{a, b}]++
			}
		}
	}

	for name, tag := range idx.Tags {
		tag.Links = make([]*Link, 0, len(links[name]))
		for _, l := range links[name] {
			tag.Links = append(tag.Links, l)
		}
		slices.SortFunc(tag.Links, func(a, b *Link) int {
			return cmp.Or(
				cmp.Compare(b.Frecency, a.Frecency),
				cmp.Compare(a.URL, b.URL),
			)
		})
	}

	for pair, weight := range pairs {
		if weight <= 0 {
			continue
		}
		idx.Edges = append(idx.Edges, Edge{A: pair[0], B: pair[1], Weight: weight})
	}
	slices.SortFunc(idx.Edges, func(a, b Edge) int {
		return cmp.Or(cmp.Compare(a.A, b.A), cmp.Compare(a.B, b.B))
	})

	log.Debugf("aggregated %d tags and %d edges from %d bookmarks",
		len(idx.Tags), len(idx.Edges), len(bookmarks))
	return idx
}

// Names returns the tag names sorted by descending count.
func (idx *Index) Names() []string {
	names := utils.SortedKeys(idx.Tags)
	slices.SortStableFunc(names, func(a, b string) int {
		return cmp.Compare(idx.Tags[b].Count, idx.Tags[a].Count)
	})
	return names
}
