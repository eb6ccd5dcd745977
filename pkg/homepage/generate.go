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

// Package homepage runs one generation of the homepage: bookmarks are read
// from a firefox profile, indexed by tag and rendered with the backlog and
// link list into the output path.
package homepage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/skratchdot/open-golang/open"

	"github.com/blob42/ffhome"
	"github.com/blob42/ffhome/internal/utils"
	"github.com/blob42/ffhome/pkg/browsers/mozilla"
	"github.com/blob42/ffhome/pkg/links"
	"github.com/blob42/ffhome/pkg/logging"
	"github.com/blob42/ffhome/pkg/render"
	"github.com/blob42/ffhome/pkg/tags"
)

var log = logging.GetLogger("HOME")

type Options struct {
	// Profile name, profile directory fragment or absolute profile path.
	// Empty selects the default profile.
	Profile string

	// Firefox base directory holding profiles.ini. Detected when empty.
	FirefoxDir string

	// Places database to read instead of the profile's places.sqlite
	PlacesPath string

	LockTimeout time.Duration

	// Optional yaml backlog and the spec used to pick from it
	BacklogPath string
	BacklogPick string

	// Optional plain text link list
	LinksPath string

	Render render.Options

	Picker links.Picker
}

type Result struct {
	IndexPath string
	URL       string

	Bookmarks int
	Tags      int
	Backlog   int
	Links     int
}

// Open shows the generated page with the desktop handler.
func (r *Result) Open() error {
	return open.Run(r.URL)
}

// check fails early on configuration errors, before any input is read.
func (opts Options) check() error {
	if _, err := render.ParseFormat(string(opts.Render.Format)); err != nil {
		return err
	}
	if opts.BacklogPath != "" {
		if err := links.CheckPickSpec(opts.BacklogPick); err != nil {
			return err
		}
	}
	return nil
}

func (opts Options) placesPath() (string, error) {
	if opts.PlacesPath != "" {
		return utils.ExpandOnly(opts.PlacesPath)
	}

	firefoxDir := opts.FirefoxDir
	if firefoxDir != "" {
		var err error
		if firefoxDir, err = utils.ExpandPath(firefoxDir); err != nil {
			return "", fmt.Errorf("firefox dir: %w", err)
		}
	}

	profileDir, err := mozilla.FindProfileDir(firefoxDir, opts.Profile)
	if err != nil {
		return "", err
	}
	log.Debugf("using profile dir <%s>", utils.Shorten(profileDir))

	return filepath.Join(profileDir, mozilla.PlacesFile), nil
}

// Bookmarks reads the places database of the selected profile.
func (opts Options) Bookmarks(ctx context.Context) ([]*ffhome.Bookmark, error) {
	places, err := opts.placesPath()
	if err != nil {
		return nil, err
	}

	bookmarks, err := mozilla.ReadBookmarks(ctx, places, mozilla.ReadOptions{
		LockTimeout: opts.LockTimeout,
	})
	if err != nil {
		return nil, err
	}

	log.Infof("read %d bookmarks from <%s>", len(bookmarks), utils.Shorten(places))
	return bookmarks, nil
}

func (opts Options) backlog() ([]links.Link, error) {
	if opts.BacklogPath == "" {
		return []links.Link{}, nil
	}

	path, err := utils.ExpandPath(opts.BacklogPath)
	if err != nil {
		return nil, fmt.Errorf("backlog: %w", err)
	}

	all, err := links.LoadBacklog(path)
	if err != nil {
		return nil, err
	}

	picked, err := opts.Picker.Pick(all, opts.BacklogPick)
	if err != nil {
		return nil, err
	}

	log.Infof("picked %d/%d backlog links (%s)", len(picked), len(all), opts.BacklogPick)
	return picked, nil
}

func (opts Options) linkList() ([]links.Link, error) {
	if opts.LinksPath == "" {
		return []links.Link{}, nil
	}

	path, err := utils.ExpandPath(opts.LinksPath)
	if err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}
	return links.LoadLinkList(path)
}

// Generate reads every input and renders the homepage.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.check(); err != nil {
		return nil, err
	}

	bookmarks, err := opts.Bookmarks(ctx)
	if err != nil {
		return nil, err
	}

	index := tags.Aggregate(bookmarks)

	backlog, err := opts.backlog()
	if err != nil {
		return nil, err
	}

	list, err := opts.linkList()
	if err != nil {
		return nil, err
	}

	indexPath, err := render.Render(ctx, opts.Render, &render.Data{
		Tags:    index,
		Backlog: backlog,
		Links:   list,
	})
	if err != nil {
		return nil, err
	}

	url, err := utils.FileURL(indexPath)
	if err != nil {
		return nil, err
	}

	return &Result{
		IndexPath: indexPath,
		URL:       url,
		Bookmarks: len(bookmarks),
		Tags:      len(index.Tags),
		Backlog:   len(backlog),
		Links:     len(list),
	}, nil
}
