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

package mozilla

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

const (
	PrefsFile = "user.js"

	// Since firefox 63 places.sqlite is opened with an exclusive VFS lock
	// unless this undocumented preference is set.
	PrefMultiProcessAccess = "storage.multiProcessAccess.enabled"

	// Parses values in prefs.js/user.js under the form:
	// user_pref("my.pref.option", value);
	REFirefoxPrefs = `user_pref\("(?P<option>%s)",\s+"*(?P<value>.*[^"])"*\)\s*;\s*(\n|$)`
)

var (
	ErrPrefNotFound = errors.New("pref not defined")
	ErrPrefNotBool  = errors.New("pref is not bool")
)

// Finds and returns a preference definition.
// Returns empty string ("") if no pref found
func FindPref(path string, name string) (string, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	re := regexp.MustCompile(fmt.Sprintf(REFirefoxPrefs, regexp.QuoteMeta(name)))
	match := re.FindSubmatch(text)
	if match == nil {
		return "", nil
	}

	return string(match[re.SubexpIndex("value")]), nil
}

func GetPrefBool(path string, name string) (bool, error) {
	val, err := FindPref(path, name)
	if err != nil {
		return false, err
	}

	switch val {
	case "":
		return false, ErrPrefNotFound
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, ErrPrefNotBool
	}
}
