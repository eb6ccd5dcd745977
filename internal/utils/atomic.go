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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"
)

// AtomicFile is a writable file whose content only becomes visible at its
// destination path on Commit. The temporary file lives in the destination
// directory so the final rename never crosses filesystems.
type AtomicFile struct {
	dest string

	// tempFile is written first and renamed into dest on Commit.
	tempFile *os.File

	hasher *xxh3.Hasher
	w      io.Writer

	writeFailed bool
	done        bool
}

// NewAtomicFile creates the temporary file backing dest.
func NewAtomicFile(dest string) (*AtomicFile, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*")
	if err != nil {
		return nil, err
	}

	hasher := xxh3.New()
	return &AtomicFile{
		dest:     dest,
		tempFile: tmp,
		hasher:   hasher,
		w:        io.MultiWriter(tmp, hasher),
	}, nil
}

func (file *AtomicFile) Write(p []byte) (int, error) {
	n, err := file.w.Write(p)
	if err != nil {
		file.writeFailed = true
	}
	return n, err
}

// Commit moves the written content into place. When the destination already
// holds the same bytes it is left as is.
func (file *AtomicFile) Commit() error {
	if file.done {
		return fmt.Errorf("%s: already closed", file.dest)
	}
	file.done = true
	defer os.Remove(file.tempFile.Name())

	if file.writeFailed {
		file.tempFile.Close()
		return fmt.Errorf("%s: write failed", file.dest)
	}

	if err := file.tempFile.Sync(); err != nil {
		file.tempFile.Close()
		return err
	}
	if err := file.tempFile.Close(); err != nil {
		return err
	}

	if same, err := sameDigest(file.dest, file.hasher.Sum128()); err == nil && same {
		log.Debugf("<%s> unchanged", file.dest)
		return nil
	}

	// match the usual umask'ed permissions instead of CreateTemp's 0600
	if err := os.Chmod(file.tempFile.Name(), 0644); err != nil {
		return err
	}

	return os.Rename(file.tempFile.Name(), file.dest)
}

// Close discards the temporary file if it was not committed. It is safe to
// call after Commit.
func (file *AtomicFile) Close() error {
	if file.done {
		return nil
	}
	file.done = true
	file.tempFile.Close()
	err := os.Remove(file.tempFile.Name())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sameDigest(path string, digest xxh3.Uint128) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return xxh3.Hash128(data) == digest, nil
}

// WriteFileAtomic writes the output of fill to path through an AtomicFile.
// When fill fails the destination is left untouched.
func WriteFileAtomic(path string, fill func(w io.Writer) error) (err error) {
	file, err := NewAtomicFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err = fill(file); err != nil {
		return err
	}

	return file.Commit()
}

// WriteBytesAtomic is WriteFileAtomic for an in-memory payload.
func WriteBytesAtomic(path string, data []byte) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(data))
		return err
	})
}
