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

package profiles

import (
	"path/filepath"

	"github.com/blob42/ffhome/internal/utils"
)

const DefaultProfilesFile = "profiles.ini"

// PathResolver allows custom path resolution for profiles
type PathResolver interface {
	GetPath() string
	SetBaseDir(string)
}

// INIProfileLoader locates a profiles.ini file
type INIProfileLoader struct {
	// The directory where profiles.ini is located
	BasePath     string
	ProfilesFile string
}

func NewINIProfileLoader(baseDir string) *INIProfileLoader {
	return &INIProfileLoader{
		BasePath:     baseDir,
		ProfilesFile: DefaultProfilesFile,
	}
}

func (pg *INIProfileLoader) GetPath() string {
	name := pg.ProfilesFile
	if name == "" {
		name = DefaultProfilesFile
	}
	return filepath.Join(pg.BasePath, name)
}

func (pg *INIProfileLoader) SetBaseDir(dir string) {
	pg.BasePath = dir
}

// Exists reports whether the profiles file is present.
func (pg *INIProfileLoader) Exists() bool {
	ok, err := utils.CheckFileExists(pg.GetPath())
	return err == nil && ok
}
