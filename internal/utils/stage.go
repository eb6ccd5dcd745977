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

package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrStageConflict = errors.New("staged entry conflicts with destination")

// StagedTree collects files in a private directory next to dst and moves
// them into dst on Commit. A failure before Commit leaves dst untouched.
type StagedTree struct {
	dst string
	dir string
}

// NewStagedTree creates the staging directory of dst. It lives in the parent
// of dst so the final renames stay on the same filesystem.
func NewStagedTree(dst string) (*StagedTree, error) {
	parent := filepath.Dir(filepath.Clean(dst))
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(parent, "."+filepath.Base(dst)+".stage-*")
	if err != nil {
		return nil, err
	}

	return &StagedTree{dst: dst, dir: dir}, nil
}

// Dir is the staging directory. Files written under it are part of the
// commit.
func (st *StagedTree) Dir() string {
	return st.dir
}

// Install stages every file under src with the given link mode.
func (st *StagedTree) Install(src string, mode LinkMode) error {
	return installTree(src, st.dir, mode)
}

// Commit moves the staged files into dst. Conflicts between staged entries
// and dst are reported before anything is moved.
func (st *StagedTree) Commit() error {
	var files []string

	err := filepath.WalkDir(st.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(st.dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		info, err := os.Lstat(filepath.Join(st.dst, rel))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err == nil && info.IsDir() != d.IsDir() {
			return fmt.Errorf("%w: %s", ErrStageConflict, rel)
		}

		if !d.IsDir() {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, rel := range files {
		target := filepath.Join(st.dst, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := os.Rename(filepath.Join(st.dir, rel), target); err != nil {
			return err
		}
	}

	log.Debugf("committed %d files into <%s>", len(files), st.dst)
	return nil
}

// Close removes the staging directory and whatever was not committed.
func (st *StagedTree) Close() error {
	return os.RemoveAll(st.dir)
}
