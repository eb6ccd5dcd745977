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

// Package links extracts (url, title) pairs from the backlog yaml file and
// the plain text link list.
package links

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/blob42/ffhome/pkg/logging"
)

var log = logging.GetLogger("LINK")

var linkRe = regexp.MustCompile(`^\s*((https?|spdy|file)://|about:)`)

var (
	ErrLinkAmbiguous = errors.New("two links passed instead of one")
	ErrLinkMissing   = errors.New("no link found")
	ErrLinkType      = errors.New("unsupported link/title type")
)

// Detect reports whether s looks like a url.
func Detect(s string) bool {
	return linkRe.MatchString(s)
}

type valueKind int

const (
	kindAbsent valueKind = iota
	kindInt
	kindText
	kindInvalid
)

// Value is one candidate passed to NewLink: absent, an integer or text.
type Value struct {
	kind valueKind
	text string
	num  int64
	raw  any
}

// Absent is the missing candidate.
var Absent = Value{}

func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

func Int(n int64) Value {
	return Value{kind: kindInt, num: n}
}

// ValueOf wraps a decoded value. Anything other than nil, integers and
// strings makes NewLink fail with ErrLinkType.
func ValueOf(v any) Value {
	switch val := v.(type) {
	case nil:
		return Absent
	case string:
		return Text(val)
	case int:
		return Int(int64(val))
	case int64:
		return Int(val)
	case int32:
		return Int(int64(val))
	default:
		return Value{kind: kindInvalid, raw: v}
	}
}

// truthy mirrors the emptiness test used to discard candidates: absent, ""
// and 0 count as missing.
func (v Value) truthy() bool {
	switch v.kind {
	case kindText:
		return v.text != ""
	case kindInt:
		return v.num != 0
	case kindInvalid:
		return true
	}
	return false
}

func (v Value) isLink() bool {
	return v.kind == kindText && Detect(v.text)
}

func (v Value) String() string {
	switch v.kind {
	case kindText:
		return strconv.Quote(v.text)
	case kindInt:
		return strconv.FormatInt(v.num, 10)
	case kindInvalid:
		return fmt.Sprintf("%T(%v)", v.raw, v.raw)
	}
	return "<none>"
}

func (v Value) titleText() string {
	switch v.kind {
	case kindText:
		return v.text
	case kindInt:
		return strconv.FormatInt(v.num, 10)
	}
	return ""
}

// LinkError reports why a pair of candidates could not become a Link.
type LinkError struct {
	Err        error
	Candidates [2]Value
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s: [%s, %s]", e.Err, e.Candidates[0], e.Candidates[1])
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// Link is a url with an optional title. An empty Title means no title.
type Link struct {
	URL   string
	Title string
}

func (l Link) HasTitle() bool {
	return l.Title != ""
}

func (l Link) String() string {
	if !l.HasTitle() {
		return l.URL
	}
	return fmt.Sprintf("%s <%s>", l.Title, l.URL)
}

func (l Link) MarshalJSON() ([]byte, error) {
	var title *string
	if l.HasTitle() {
		title = &l.Title
	}
	return json.Marshal(struct {
		Title *string `json:"title"`
		URL   string  `json:"url"`
	}{title, l.URL})
}

// NewLink builds a Link out of two unordered candidates. Exactly one of
// them must look like a url, the other one, if present, is the title.
func NewLink(a, b Value) (Link, error) {
	fail := func(err error) (Link, error) {
		return Link{}, &LinkError{Err: err, Candidates: [2]Value{a, b}}
	}

	if a.kind == kindInvalid || b.kind == kindInvalid {
		return fail(ErrLinkType)
	}

	url, title := a, b
	if !url.truthy() {
		url, title = title, url
	}

	if title.truthy() {
		if url.isLink() && title.isLink() {
			return fail(ErrLinkAmbiguous)
		}
		if title.isLink() {
			url, title = title, url
		}
	} else {
		title = Absent
	}

	if !url.isLink() {
		return fail(ErrLinkMissing)
	}

	return Link{
		URL:   strings.TrimSpace(url.text),
		Title: title.titleText(),
	}, nil
}

// ParseLink builds a Link without title out of s.
func ParseLink(s string) (Link, error) {
	return NewLink(Text(s), Absent)
}
