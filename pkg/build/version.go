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

// https://github.com/lightningnetwork/lnd/blob/master/build/version.go#L66
package build

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// These variables are set with -ldflags during compilation.
var (
	// Describe stores the output of `git describe` for this build.
	Describe string

	// CommitHash stores the current commit hash of this build.
	CommitHash string

	// RawTags contains the raw set of build tags, separated by commas.
	RawTags string

	// GoVersion stores the go version that the executable was compiled
	// with.
	GoVersion string

	// PackageVersion stores the version of the module itself.
	PackageVersion = "devel"
)

// Version returns the application version as shown by `ffhome --version`.
func Version() string {
	if Describe == "" {
		return PackageVersion
	}

	commit := CommitHash
	if len(commit) > 8 {
		commit = commit[:8]
	}

	return fmt.Sprintf("%s commit=%s", Describe, commit)
}

// Tags returns the list of build tags that were compiled into the executable.
func Tags() []string {
	if len(RawTags) == 0 {
		return []string{}
	}

	return strings.Split(RawTags, ",")
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	GoVersion = info.GoVersion
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		PackageVersion = info.Main.Version
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && CommitHash == "" {
			CommitHash = s.Value
		}
	}
}
