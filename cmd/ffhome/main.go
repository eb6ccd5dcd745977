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

// Main command line entry point for ffhome
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/blob42/ffhome/cmd"
	"github.com/blob42/ffhome/pkg/build"
	"github.com/blob42/ffhome/pkg/logging"
)

func main() {
	// -v prints the page url
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}

	app := cli.Command{}

	app.Name = "ffhome"
	app.Usage = "generate a static homepage from firefox bookmarks, a backlog and a link list"
	app.Description = "Bookmarks are read from the places database of a firefox profile and\n" +
		"indexed by tag. The tag graph, a random pick of backlog links and the\n" +
		"link list are embedded in the page built from the parts directory."
	app.Version = build.Version()
	app.Suggest = true
	app.EnableShellCompletion = true
	app.ExitErrHandler = func(ctx context.Context, cli *cli.Command, err error) {
		if errors.Is(err, logging.ErrHelpQuit) {
			os.Exit(0)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
	}

	app.Flags = append(app.Flags, cmd.MainFlags...)
	app.Flags = append(app.Flags, cmd.HomepageFlags()...)

	app.Action = cmd.Generate
	app.Commands = []*cli.Command{
		cmd.GenerateCmd,
		cmd.ProfileCmds,
		cmd.ConfigCmds,
		cmd.DumpCmds,
	}

	err := app.Run(context.Background(), os.Args)
	if errors.Is(err, logging.ErrHelpQuit) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
