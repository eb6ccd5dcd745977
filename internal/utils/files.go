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
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/blob42/ffhome/pkg/logging"
)

var log = logging.GetLogger("")

// LinkMode selects how files are installed by CopyTree
type LinkMode int

const (
	CopyFiles LinkMode = iota
	SymlinkFiles
	HardlinkFiles
)

func (m LinkMode) String() string {
	switch m {
	case SymlinkFiles:
		return "symlink"
	case HardlinkFiles:
		return "hardlink"
	default:
		return "copy"
	}
}

func CopyFileToDst(src string, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err = io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	return dstFile.Sync()
}

// Copy files from src glob to dst folder
func CopyFilesToFolder(srcglob string, dst string) error {
	matches, err := filepath.Glob(os.ExpandEnv(srcglob))
	if err != nil {
		return err
	}

	for _, v := range matches {
		if err = CopyFileToDst(v, filepath.Join(dst, filepath.Base(v))); err != nil {
			return err
		}
	}

	return nil
}

// CopyTree installs every file under src into dst, keeping the directory
// layout. Nothing in dst changes unless the whole tree could be staged.
// Existing destination files are replaced.
func CopyTree(src, dst string, mode LinkMode) error {
	st, err := NewStagedTree(dst)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warnf("removing staging dir: %s", err)
		}
	}()

	if err := st.Install(src, mode); err != nil {
		return err
	}
	return st.Commit()
}

// installTree mirrors src into the empty directory dst.
func installTree(src, dst string, mode LinkMode) error {
	srcAbs, err := filepath.EvalSymlinks(src)
	if err != nil {
		return err
	}
	if srcAbs, err = filepath.Abs(srcAbs); err != nil {
		return err
	}

	return filepath.WalkDir(srcAbs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(srcAbs, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		// dangling links fail here in every mode
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%s %s: %w", mode, rel, err)
		}

		log.Debugf("%s <%s> -> <%s>", mode, rel, target)
		switch mode {
		case SymlinkFiles:
			realSrc, err := filepath.EvalSymlinks(path)
			if err != nil {
				return err
			}
			if err = os.Symlink(realSrc, target); err != nil {
				return err
			}
		case HardlinkFiles:
			if err = os.Link(path, target); err != nil {
				return err
			}
		default:
			if err = CopyFileToDst(path, target); err != nil {
				return fmt.Errorf("copy %s: %w", rel, err)
			}
		}

		return nil
	})
}
