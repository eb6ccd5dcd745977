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
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	scriptPattern     = `<script\b[^>]*?\bsrc=["']([^"']+)["'][^>]*>\s*</script>`
	stylesheetPattern = `<link\b[^>]*?\brel=["']?stylesheet["']?[^>]*>`
	imgPattern        = `(<img\b[^>]*?\bsrc=)["']([^"']+)["']`
)

var (
	reScript     = regexp.MustCompile(`(?i)` + scriptPattern)
	reStylesheet = regexp.MustCompile(`(?i)` + stylesheetPattern)
	reImg        = regexp.MustCompile(`(?i)` + imgPattern)
	reHref       = regexp.MustCompile(`(?i)\bhref=["']([^"']+)["']`)
	reMedia      = regexp.MustCompile(`(?i)\bmedia=["']([^"']*)["']`)
	reRemote     = regexp.MustCompile(`(?i)^(https?:)?//`)

	// a single pass over each line so inlined content is never rescanned
	reAsset = regexp.MustCompile(`(?i)` + scriptPattern + `|` + stylesheetPattern + `|` + imgPattern)
)

func isRemote(ref string) bool {
	return reRemote.MatchString(ref)
}

// refPath drops the query and fragment of a local reference.
func refPath(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i]
	}
	return ref
}

// splicer rewrites template lines, inlining the assets they reference.
type splicer struct {
	parts string
	data  *Data

	// local asset -> remote url, lean output only
	cdn map[string]string

	consumed categorySet
	err      error
}

func newSplicer(parts string, data *Data, cdn map[string]string) *splicer {
	return &splicer{
		parts:    parts,
		data:     data,
		cdn:      cdn,
		consumed: make(categorySet),
	}
}

func (s *splicer) fail(err error) string {
	if s.err == nil {
		s.err = err
	}
	return ""
}

func (s *splicer) readAsset(ref string) ([]byte, error) {
	clean := path.Clean("/" + refPath(ref))
	return os.ReadFile(filepath.Join(s.parts, filepath.FromSlash(clean)))
}

func (s *splicer) cdnURL(ref string) (string, bool) {
	if s.cdn == nil {
		return "", false
	}
	u, ok := s.cdn[ref]
	if !ok {
		u, ok = s.cdn[refPath(ref)]
	}
	if !ok {
		u, ok = s.cdn[path.Base(refPath(ref))]
	}
	return u, ok
}

func (s *splicer) script(tag string) string {
	ref := reScript.FindStringSubmatch(tag)[1]
	if isRemote(ref) {
		return tag
	}

	if p, ok := s.data.payload(path.Base(refPath(ref))); ok {
		stmt, err := p.Assignment()
		if err != nil {
			return s.fail(err)
		}
		s.consumed.add(CategoryJSON)
		log.Debugf("inlined data <%s> as %s", ref, p.Global)
		return "<script>" + strings.TrimSuffix(string(stmt), "\n") + "</script>"
	}

	if u, ok := s.cdnURL(ref); ok {
		s.consumed.add(CategoryJS)
		log.Debugf("linked <%s> to <%s>", ref, u)
		return fmt.Sprintf(`<script src="%s"></script>`, u)
	}

	js, err := s.readAsset(ref)
	if err != nil {
		return s.fail(fmt.Errorf("script %s: %w", ref, err))
	}
	s.consumed.add(CategoryJS)
	log.Debugf("inlined script <%s>", ref)
	return "<script>\n" + string(js) + "\n</script>"
}

func (s *splicer) stylesheet(tag string) string {
	m := reHref.FindStringSubmatch(tag)
	if m == nil || isRemote(m[1]) {
		return tag
	}
	ref := m[1]

	if u, ok := s.cdnURL(ref); ok {
		s.consumed.add(CategoryCSS)
		return reHref.ReplaceAllLiteralString(tag, fmt.Sprintf(`href="%s"`, u))
	}

	css, err := s.readAsset(ref)
	if err != nil {
		return s.fail(fmt.Errorf("stylesheet %s: %w", ref, err))
	}
	s.consumed.add(CategoryCSS)
	log.Debugf("inlined stylesheet <%s>", ref)

	styleTag := "<style>"
	if m := reMedia.FindStringSubmatch(tag); m != nil {
		styleTag = fmt.Sprintf(`<style media="%s">`, m[1])
	}
	return styleTag + "\n" + string(css) + "\n</style>"
}

func (s *splicer) img(match string) string {
	m := reImg.FindStringSubmatch(match)
	prefix, ref := m[1], m[2]
	if isRemote(ref) || strings.HasPrefix(ref, "data:") {
		return match
	}

	if u, ok := s.cdnURL(ref); ok {
		s.consumed.add(CategoryImg)
		return fmt.Sprintf(`%s"%s"`, prefix, u)
	}

	img, err := s.readAsset(ref)
	if err != nil {
		return s.fail(fmt.Errorf("image %s: %w", ref, err))
	}

	mimeType := mime.TypeByExtension(path.Ext(refPath(ref)))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	s.consumed.add(CategoryImg)
	log.Debugf("inlined image <%s> (%s)", ref, mimeType)
	return fmt.Sprintf(`%s"data:%s;base64,%s"`, prefix, mimeType, base64.StdEncoding.EncodeToString(img))
}

// line rewrites one template line. Lines without a recognized reference
// are returned as is.
func (s *splicer) line(l string) string {
	return reAsset.ReplaceAllStringFunc(l, func(m string) string {
		switch {
		case reScript.MatchString(m):
			return s.script(m)
		case reStylesheet.MatchString(m):
			return s.stylesheet(m)
		default:
			return s.img(m)
		}
	})
}

// splice writes the rewritten template to w.
func (s *splicer) splice(tpl []byte, w io.Writer) error {
	for _, l := range strings.SplitAfter(string(tpl), "\n") {
		out := s.line(l)
		if s.err != nil {
			return s.err
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return nil
}
