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

// Package render writes the homepage out of the template parts directory,
// either as a single html file with every asset inlined or as a directory
// of assets plus json sidecars.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blob42/ffhome/internal/utils"
	"github.com/blob42/ffhome/pkg/logging"
)

var log = logging.GetLogger("RNDR")

type Format string

const (
	FormatFat          Format = "fat"
	FormatLean         Format = "lean"
	FormatDir          Format = "dir"
	FormatDirSymlinks  Format = "dir-symlinks"
	FormatDirHardlinks Format = "dir-hardlinks"
)

var Formats = []Format{
	FormatFat,
	FormatDir,
	FormatDirSymlinks,
	FormatDirHardlinks,
	FormatLean,
}

var ErrBadFormat = errors.New("unknown output format")

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}

	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("%w: %q (one of %s)", ErrBadFormat, s, strings.Join(names, ", "))
}

// IsDir reports whether the format produces a directory.
func (f Format) IsDir() bool {
	return strings.HasPrefix(string(f), "dir")
}

func (f Format) linkMode() utils.LinkMode {
	switch f {
	case FormatDirSymlinks:
		return utils.SymlinkFiles
	case FormatDirHardlinks:
		return utils.HardlinkFiles
	}
	return utils.CopyFiles
}
