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

// Package browsers defines the firefox based browsers and where each
// install flavour keeps its profiles.
package browsers

import "github.com/blob42/ffhome/pkg/profiles"

const (
	Snap = "snap"
	Flat = "flatpak"
)

type BrowserDef struct {
	Flavour string // also acts as canonical name

	// Base browser directory path
	baseDir string

	// (linux only) path to snap package base dir
	snapDir string

	// (linux only) path to flatpak package base dir
	flatDir string
}

func MozBrowser(flavour, base, snap, flat string) BrowserDef {
	return BrowserDef{
		Flavour: flavour,
		baseDir: base,
		snapDir: snap,
		flatDir: flat,
	}
}

// Flavours returns the profile directories of b, native install first.
func (b BrowserDef) Flavours() []profiles.Flavour {
	result := []profiles.Flavour{{Name: b.Flavour, BaseDir: b.baseDir}}
	if b.snapDir != "" {
		result = append(result, profiles.Flavour{Name: b.Flavour + "-" + Snap, BaseDir: b.snapDir})
	}
	if b.flatDir != "" {
		result = append(result, profiles.Flavour{Name: b.Flavour + "-" + Flat, BaseDir: b.flatDir})
	}
	return result
}

// MozillaFlavours lists the flavours of every defined browser, in lookup
// order.
func MozillaFlavours() []profiles.Flavour {
	var result []profiles.Flavour
	for _, bd := range DefinedBrowsers {
		result = append(result, bd.Flavours()...)
	}
	return result
}

func AddBrowserDef(b BrowserDef) {
	DefinedBrowsers = append(DefinedBrowsers, b)
}
