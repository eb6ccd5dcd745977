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
	"errors"
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v3"

	"github.com/blob42/ffhome/internal/utils"
	"github.com/blob42/ffhome/pkg/config"
	"github.com/blob42/ffhome/pkg/links"
	"github.com/blob42/ffhome/pkg/tags"
	"github.com/blob42/ffhome/pkg/tree"
)

var errNoInput = errors.New("input not configured")

var DumpCmds = &cli.Command{
	Name:  "dump",
	Usage: "print the intermediate data of a generation",
	Commands: []*cli.Command{
		dumpBookmarksCmd,
		dumpTagsCmd,
		dumpBacklogCmd,
		dumpLinksCmd,
	},
}

var treeFlag = &cli.BoolFlag{
	Name:  "tree",
	Usage: "print as a tree",
}

var dumpBookmarksCmd = &cli.Command{
	Name:  "bookmarks",
	Usage: "bookmarks read from the places database",
	Flags: []cli.Flag{treeFlag},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}

		bookmarks, err := HomepageOptions(config.Homepage).Bookmarks(ctx)
		if err != nil {
			return err
		}

		if cmd.Bool("tree") {
			return tree.PrintTree(os.Stdout, tree.FromBookmarks(bookmarks))
		}

		for _, bk := range bookmarks {
			pretty.Println(bk)
		}
		return nil
	},
}

var dumpTagsCmd = &cli.Command{
	Name:  "tags",
	Usage: "tag index embedded in the page",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}

		bookmarks, err := HomepageOptions(config.Homepage).Bookmarks(ctx)
		if err != nil {
			return err
		}

		index := tags.Aggregate(bookmarks)
		for _, name := range index.Names() {
			tag := index.Tags[name]
			fmt.Printf("%s (%d)\n", name, tag.Count)
			for _, l := range tag.Links {
				fmt.Printf("\t%6d  %s\n", l.Frecency, l.URL)
			}
		}

		fmt.Println()
		pretty.Println(index.Edges)
		return nil
	},
}

var dumpBacklogCmd = &cli.Command{
	Name:  "backlog",
	Usage: "links found in the backlog, before picking",
	Flags: []cli.Flag{treeFlag},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}

		if config.Homepage.Backlog == "" {
			return fmt.Errorf("backlog: %w", errNoInput)
		}

		path, err := utils.ExpandPath(config.Homepage.Backlog)
		if err != nil {
			return err
		}

		x := &links.Extractor{Tree: tree.New()}
		backlog, err := x.Load(path)
		if err != nil {
			return err
		}

		if cmd.Bool("tree") {
			return tree.PrintTree(os.Stdout, x.Tree)
		}

		for _, l := range backlog {
			fmt.Println(l)
		}
		return nil
	},
}

var dumpLinksCmd = &cli.Command{
	Name:  "links",
	Usage: "links of the link list",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}

		if config.Homepage.Links == "" {
			return fmt.Errorf("links: %w", errNoInput)
		}

		path, err := utils.ExpandPath(config.Homepage.Links)
		if err != nil {
			return err
		}

		list, err := links.LoadLinkList(path)
		if err != nil {
			return err
		}

		pretty.Println(list)
		return nil
	},
}
