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

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/blob42/ffhome/pkg/config"
	"github.com/blob42/ffhome/pkg/homepage"
	"github.com/blob42/ffhome/pkg/render"
)

var GenerateCmd = &cli.Command{
	Name:    "generate",
	Aliases: []string{"gen"},
	Usage:   "generate the homepage (default command)",
	Action:  Generate,
}

// HomepageOptions maps the [homepage] config section to a generation run.
func HomepageOptions(c config.Options) homepage.Options {
	return homepage.Options{
		Profile:     c.Profile,
		FirefoxDir:  c.FirefoxDir,
		LockTimeout: time.Duration(c.DBLockTimeout),
		BacklogPath: c.Backlog,
		BacklogPick: c.BacklogPick,
		LinksPath:   c.Links,
		Render: render.Options{
			Format:     render.Format(c.OutputFormat),
			PartsPath:  c.PartsPath,
			OutputPath: c.OutputPath,
			CDN:        c.CDN,
		},
	}
}

func Generate(ctx context.Context, cmd *cli.Command) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	opts := config.Homepage
	res, err := homepage.Generate(ctx, HomepageOptions(opts))
	if err != nil {
		return err
	}

	log.Infof("generated <%s>: %d bookmarks, %d tags, %d backlog links, %d links",
		res.IndexPath, res.Bookmarks, res.Tags, res.Backlog, res.Links)

	if opts.PrintURL {
		fmt.Println(res.URL)
	}

	if opts.Open {
		if err := res.Open(); err != nil {
			return fmt.Errorf("opening %s: %w", res.URL, err)
		}
	}

	return nil
}
