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

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/blob42/ffhome/internal/utils"
	"github.com/blob42/ffhome/pkg/browsers/mozilla"
	"github.com/blob42/ffhome/pkg/config"
)

var ProfileCmds = &cli.Command{
	Name:    "profile",
	Aliases: []string{"p"},
	Usage:   "profile commands",
	Commands: []*cli.Command{
		listProfilesCmd,
		DetectCmd,
	},
}

var listProfilesCmd = &cli.Command{
	Name:  "list",
	Usage: "list firefox profiles",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}

		baseDir := config.Homepage.FirefoxDir
		if baseDir != "" {
			var err error
			if baseDir, err = utils.ExpandPath(baseDir); err != nil {
				return err
			}
		}

		profs, err := mozilla.ListProfiles(baseDir)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		for _, p := range profs {
			pPath, err := p.AbsolutePath()
			if err != nil {
				return err
			}

			mark := " "
			if p.Default {
				mark = green("*")
			}
			fmt.Printf(" %s %-20s \t %s\n", mark, p.Name, utils.Shorten(pPath))
		}

		return nil
	},
}

var DetectCmd = &cli.Command{
	Name:    "detect",
	Aliases: []string{"det"},
	Usage:   "detect installed firefox flavours",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		red := color.New(color.FgRed).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("\n detected firefox flavours:\n\n")
		for _, f := range mozilla.Flavours {
			if !f.Detect() {
				fmt.Printf(" %s %-16s\n", red("✗"), f.Name)
				continue
			}

			dir, err := f.ExpandBaseDir()
			if err != nil {
				log.Warn("expanding base directory", "path", f.BaseDir, "flavour", f.Name)
				continue
			}
			fmt.Printf(" %s %-16s \t %s\n", green("✓"), f.Name, utils.Shorten(dir))
		}

		fmt.Println()
		return nil
	},
}
