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

package links

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLen   = 120
	cutTitleLen   = 100
	maxQueryLen   = 20
	ellipsis      = "…"
	listSeparator = " -|:"
)

var (
	urlRe     = regexp.MustCompile(`((https?|spdy|file)://|about:)\S+`)
	schemeRe  = regexp.MustCompile(`^[a-z]+:(//)?`)
	keyOnlyRe = regexp.MustCompile(`^([^:]+):$`)
)

// ParseLinkList reads one link per line out of r.
//
//	# comment
//	- https://example.com
//	title - https://example.com
//	title: https://example.com
//	title:
//	  https://example.com
//
// Links keep the order of the file, duplicates are dropped.
func ParseLinkList(r io.Reader) ([]Link, error) {
	var (
		result  = []Link{}
		pending string
		seen    = make(map[Link]bool)
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for lineno := 1; sc.Scan(); lineno++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "- "))

		loc := urlRe.FindStringIndex(line)
		if loc == nil {
			if m := keyOnlyRe.FindStringSubmatch(line); m != nil {
				pending = strings.TrimSpace(m[1])
			} else {
				log.Warn("no link found", "line", lineno, "text", line)
			}
			continue
		}

		url := line[loc[0]:loc[1]]
		rest := strings.Trim(line[:loc[0]], listSeparator) + " " + strings.Trim(line[loc[1]:], listSeparator)
		title := strings.TrimSpace(rest)
		if title == "" {
			title = pending
		}
		pending = ""

		if title == "" {
			title = titleFromURL(url)
		}

		l := Link{URL: url, Title: shortenTitle(title)}
		if seen[l] {
			continue
		}
		seen[l] = true
		result = append(result, l)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func titleFromURL(url string) string {
	title := schemeRe.ReplaceAllString(url, "")
	if i := strings.IndexByte(title, '?'); i >= 0 && len(title)-i-1 > maxQueryLen {
		title = title[:i] + "?" + ellipsis
	}
	return title
}

func shortenTitle(title string) string {
	if utf8.RuneCountInString(title) <= maxTitleLen {
		return title
	}
	r := []rune(title)
	return string(r[:cutTitleLen]) + ellipsis
}

// LoadLinkList reads the link list file at path.
func LoadLinkList(path string) ([]Link, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	links, err := ParseLinkList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debugf("loaded %d links from <%s>", len(links), path)
	return links, nil
}
