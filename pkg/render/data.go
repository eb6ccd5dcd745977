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

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/blob42/ffhome/internal/utils"
	"github.com/blob42/ffhome/pkg/links"
	"github.com/blob42/ffhome/pkg/tags"
)

// Reserved data file names and the js globals they assign.
const (
	TagsFile    = "tags.json"
	BacklogFile = "backlog.json"
	LinksFile   = "links.json"

	TagsGlobal    = "ffhome_tags"
	BacklogGlobal = "ffhome_backlog"
	LinksGlobal   = "ffhome_links"
)

// Data is everything embedded in the generated page.
type Data struct {
	Tags    *tags.Index
	Backlog []links.Link
	Links   []links.Link
}

// Payload is one json data file.
type Payload struct {
	File   string
	Global string
	Value  any
}

func (d *Data) Payloads() []Payload {
	idx := d.Tags
	if idx == nil {
		idx = &tags.Index{Tags: map[string]*tags.Tag{}, Edges: []tags.Edge{}}
	}

	return []Payload{
		{File: TagsFile, Global: TagsGlobal, Value: idx},
		{File: BacklogFile, Global: BacklogGlobal, Value: nonNil(d.Backlog)},
		{File: LinksFile, Global: LinksGlobal, Value: nonNil(d.Links)},
	}
}

func (d *Data) payload(file string) (Payload, bool) {
	for _, p := range d.Payloads() {
		if p.File == file {
			return p, true
		}
	}
	return Payload{}, false
}

func nonNil(l []links.Link) []links.Link {
	if l == nil {
		return []links.Link{}
	}
	return l
}

// Assignment returns the payload as a js statement: name=<json>;
func (p Payload) Assignment() ([]byte, error) {
	data, err := json.Marshal(p.Value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.File, err)
	}

	var buf bytes.Buffer
	buf.Grow(len(p.Global) + len(data) + 3)
	buf.WriteString(p.Global)
	buf.WriteByte('=')
	buf.Write(data)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

// WriteSidecars writes the json data files into dir.
func (d *Data) WriteSidecars(dir string) error {
	for _, p := range d.Payloads() {
		stmt, err := p.Assignment()
		if err != nil {
			return err
		}

		dest := filepath.Join(dir, p.File)
		if err := utils.WriteBytesAtomic(dest, stmt); err != nil {
			return fmt.Errorf("writing %s: %w", p.File, err)
		}
		log.Debugf("wrote <%s>", dest)
	}
	return nil
}
