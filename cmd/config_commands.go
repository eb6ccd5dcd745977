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
	"os"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v3"

	"github.com/blob42/ffhome/internal/utils"
	"github.com/blob42/ffhome/pkg/config"
)

var ConfigCmds = &cli.Command{
	Name:  "config",
	Usage: "manage the config file",
	Commands: []*cli.Command{
		cfgInitCmd,
		cfgPrintCmd,
	},
}

var cfgInitCmd = &cli.Command{
	Name:  "init",
	Usage: "write the default config file",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"F"},
			Usage:   "overwrite an existing config file",
		},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		path, err := config.ConfigFile(ConfigFileFlag)
		if err != nil {
			return err
		}

		if err := config.InitConfigFile(path, cmd.Bool("force")); err != nil {
			return err
		}

		fmt.Printf("wrote %s\n", utils.Shorten(path))
		return nil
	},
}

var cfgPrintCmd = &cli.Command{
	Name:      "show",
	Aliases:   []string{"print"},
	Usage:     "print the effective config",
	ArgsUsage: "[section...]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "toml",
			Usage: "print as toml instead of go values",
		},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}

		sections := config.GetAll()
		if cmd.Args().Present() {
			var err error
			if sections, err = config.GetSections(cmd.Args().Slice()...); err != nil {
				return err
			}
		}

		if cmd.Bool("toml") {
			return config.Encode(os.Stdout, sections)
		}

		pretty.Println(sections)
		if _, ok := sections[config.HomepageSection]; ok {
			fmt.Printf("\ndb lock timeout: %s\n", config.Homepage.DBLockTimeout)
		}
		return nil
	},
}
