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

// Package profiles describes browser profiles and where to find them.
package profiles

import (
	"path/filepath"

	"github.com/blob42/ffhome/internal/utils"
	"github.com/blob42/ffhome/pkg/logging"
)

var log = logging.GetLogger("PROF")

type Profile struct {
	// Unique identifier for the profile, the profiles.ini section name
	ID string `ini:"-"`

	// Name of the profile
	Name string

	// path to the profile, relative to BaseDir when IsRelative is set
	Path string

	IsRelative bool

	// Marked as the default profile in profiles.ini
	Default bool

	// Base dir of the profile
	BaseDir string `ini:"-"`
}

func (p Profile) AbsolutePath() (string, error) {
	if !p.IsRelative && filepath.IsAbs(p.Path) {
		return utils.ExpandPath(p.Path)
	}
	return utils.ExpandPath(p.BaseDir, p.Path)
}

// The Flavour struct stores the name of a browser packaging and the base
// directory where its profiles are stored.
// Example flavours: firefox, firefox-snap, firefox-flatpak
type Flavour struct {
	Name    string
	BaseDir string
}

// Detect if the browser is installed. Returns true if the path exists
func (b Flavour) Detect() bool {
	dir, err := utils.ExpandOnly(b.BaseDir)
	if err != nil {
		log.Warnf("could not expand path <%s>: %s", b.BaseDir, err)
		return false
	}

	if ok, err := utils.CheckDirExists(dir); err != nil || !ok {
		log.Debugf("could not find browser <%s> at <%s>: %v", b.Name, dir, err)
		return false
	}

	return true
}

func (b Flavour) ExpandBaseDir() (string, error) {
	return utils.ExpandPath(b.BaseDir)
}
