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
	"github.com/urfave/cli/v3"

	"github.com/blob42/ffhome/pkg/config"
	"github.com/blob42/ffhome/pkg/logging"
)

var log = logging.GetLogger("CMD")

// path of the config file given with --config
var ConfigFileFlag string

var MainFlags = []cli.Flag{
	logging.DebugFlag,
	logging.SilentFlag,
	&cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "config `path`",
		DefaultText: "~/.config/ffhome/config.toml",
		Destination: &ConfigFileFlag,
	},
}

// HomepageFlags exposes the [homepage] config options as flags.
func HomepageFlags() []cli.Flag {
	return config.SetupFlags(&config.Homepage)
}

// loadConfig reads the config file, then lets the flags set on the command
// line override it.
func loadConfig(cmd *cli.Command) error {
	path, err := config.ConfigFile(ConfigFileFlag)
	if err != nil {
		return err
	}

	if err := config.Load(path); err != nil {
		return err
	}

	return config.ApplyFlags(cmd, &config.Homepage)
}
