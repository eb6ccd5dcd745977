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

//go:build linux || darwin || freebsd

package database

import (
	"errors"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

type LockChecker interface {
	Locked() (bool, error)
}

// VFSLockChecker probes the posix advisory locks sqlite holds on a database
// file.
type VFSLockChecker struct {
	path string
}

func (checker *VFSLockChecker) Locked() (bool, error) {
	f, err := os.Open(checker.path)
	if errors.Is(err, fs.ErrNotExist) {
		// sqlite creates it on open, nobody can hold a lock yet
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	// ask whether a shared lock on the whole file could be placed
	lock := unix.Flock_t{Type: unix.F_RDLCK}
	// See man (fcntl)
	if err = unix.FcntlFlock(f.Fd(), unix.F_GETLK, &lock); err != nil {
		return false, err
	}

	// F_WRLCK means an exclusive lock is held by another process
	return lock.Type == unix.F_WRLCK, nil
}
