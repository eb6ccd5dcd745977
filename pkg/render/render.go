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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/blob42/ffhome/internal/utils"
)

const IndexFile = "index.html"

type Options struct {
	Format Format

	// Template directory with index.html and its assets
	PartsPath string

	// Output file for fat and lean formats, output directory otherwise
	OutputPath string

	// Local asset -> remote url used by the lean format
	CDN map[string]string
}

// Render writes the homepage and returns the path of the generated
// index.html.
func Render(ctx context.Context, opts Options, data *Data) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return "", err
	}

	parts, err := utils.ExpandPath(opts.PartsPath)
	if err != nil {
		return "", fmt.Errorf("parts path: %w", err)
	}

	output, err := utils.ExpandOnly(opts.OutputPath)
	if err != nil {
		return "", fmt.Errorf("output path: %w", err)
	}
	if strings.HasSuffix(opts.OutputPath, string(os.PathSeparator)) {
		output += string(os.PathSeparator)
	}

	if opts.Format.IsDir() {
		return renderDir(parts, output, opts.Format, data)
	}

	var cdn map[string]string
	if opts.Format == FormatLean {
		cdn = opts.CDN
	}
	return renderInline(parts, output, cdn, data)
}

func renderDir(parts, output string, format Format, data *Data) (string, error) {
	st, err := utils.NewStagedTree(output)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warnf("removing staging dir: %s", err)
		}
	}()

	log.Infof("installing <%s> into <%s> (%s)", utils.Shorten(parts), utils.Shorten(output), format.linkMode())
	if err := st.Install(parts, format.linkMode()); err != nil {
		return "", fmt.Errorf("installing parts: %w", err)
	}

	if err := data.WriteSidecars(st.Dir()); err != nil {
		return "", err
	}

	if err := st.Commit(); err != nil {
		return "", fmt.Errorf("installing parts: %w", err)
	}

	return filepath.Join(output, IndexFile), nil
}

// inlineTarget returns the html file written by inline formats. An existing
// directory or a path ending with a separator gets an index.html inside.
func inlineTarget(output string) string {
	if strings.HasSuffix(output, string(os.PathSeparator)) {
		return filepath.Join(output, IndexFile)
	}
	if ok, err := utils.CheckDirExists(output); err == nil && ok {
		return filepath.Join(output, IndexFile)
	}
	return output
}

func renderInline(parts, output string, cdn map[string]string, data *Data) (string, error) {
	tpl, err := os.ReadFile(filepath.Join(parts, IndexFile))
	if err != nil {
		return "", fmt.Errorf("template: %w", err)
	}

	expected, err := expectedCategories(parts, tpl)
	if err != nil {
		return "", err
	}

	target := inlineTarget(output)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", err
	}

	err = utils.WriteFileAtomic(target, func(w io.Writer) error {
		s := newSplicer(parts, data, cdn)
		if err := s.splice(tpl, w); err != nil {
			return err
		}
		return checkIntegrity(expected, s.consumed)
	})
	if err != nil {
		return "", err
	}

	log.Infof("wrote <%s>", utils.Shorten(target))
	return target, nil
}
