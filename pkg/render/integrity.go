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
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Category is a kind of asset the template references.
type Category string

const (
	CategoryCSS  Category = "css"
	CategoryJS   Category = "js"
	CategoryJSON Category = "json"
	CategoryImg  Category = "img"
)

var ErrTemplateIntegrity = errors.New("template integrity")

var imgExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".webp"}

type categorySet map[Category]bool

func (cs categorySet) add(c Category) {
	cs[c] = true
}

func (cs categorySet) sorted() []Category {
	var result []Category
	for c := range cs {
		result = append(result, c)
	}
	slices.Sort(result)
	return result
}

func categoryOf(file string) (Category, bool) {
	ext := strings.ToLower(path.Ext(file))
	switch {
	case ext == ".css":
		return CategoryCSS, true
	case ext == ".js":
		return CategoryJS, true
	case slices.Contains(imgExtensions, ext):
		return CategoryImg, true
	}
	return "", false
}

// treeCategories lists the asset categories of the files under dir.
func treeCategories(dir string) (categorySet, error) {
	found := make(categorySet)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if c, ok := categoryOf(d.Name()); ok {
			found.add(c)
		}
		return nil
	})
	return found, err
}

// domCategories lists the asset categories referenced locally by the
// template document.
func domCategories(tpl []byte) (categorySet, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(tpl))
	if err != nil {
		return nil, err
	}

	found := make(categorySet)
	doc.Find("script[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if isRemote(src) {
			return
		}
		switch path.Base(refPath(src)) {
		case TagsFile, BacklogFile, LinksFile:
			found.add(CategoryJSON)
		default:
			found.add(CategoryJS)
		}
	})

	doc.Find("link[href]").Each(func(_ int, sel *goquery.Selection) {
		rel, _ := sel.Attr("rel")
		href, _ := sel.Attr("href")
		if strings.EqualFold(strings.TrimSpace(rel), "stylesheet") && !isRemote(href) {
			found.add(CategoryCSS)
		}
	})

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if !isRemote(src) && !strings.HasPrefix(src, "data:") {
			found.add(CategoryImg)
		}
	})

	return found, nil
}

// expectedCategories is every category that must be consumed while
// inlining the template: the data payloads, the asset kinds present in the
// parts tree and the ones the template document declares.
func expectedCategories(parts string, tpl []byte) (categorySet, error) {
	expected := categorySet{CategoryJSON: true}

	inTree, err := treeCategories(parts)
	if err != nil {
		return nil, err
	}
	inDOM, err := domCategories(tpl)
	if err != nil {
		return nil, err
	}

	for _, set := range []categorySet{inTree, inDOM} {
		for c := range set {
			expected.add(c)
		}
	}

	return expected, nil
}

func checkIntegrity(expected, consumed categorySet) error {
	var missing []string
	for _, c := range expected.sorted() {
		if !consumed[c] {
			missing = append(missing, string(c))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: no %s reference could be inlined", ErrTemplateIntegrity, strings.Join(missing, ", "))
	}
	return nil
}
