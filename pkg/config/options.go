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

package config

import (
	"time"

	"github.com/hako/durafmt"
)

const HomepageSection = "homepage"

// Duration is written to the config file in time.ParseDuration syntax.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String is the human readable form, ie. "30 seconds".
func (d Duration) String() string {
	return durafmt.Parse(time.Duration(d)).String()
}

// Options is the [homepage] section. Every field but CDN is also a cli flag
// named after its toml key, the flag tag holds the short alias.
type Options struct {
	OutputPath    string   `toml:"output_path" mapstructure:"output_path" flag:"o" usage:"html file, or directory with index.html, to generate"`
	OutputFormat  string   `toml:"output_format" mapstructure:"output_format" flag:"f" usage:"output format: fat, lean, dir, dir-symlinks or dir-hardlinks"`
	PartsPath     string   `toml:"parts_path" mapstructure:"parts_path" flag:"p" usage:"template directory with index.html, js and css files"`
	Links         string   `toml:"links" mapstructure:"links" flag:"l" usage:"plain text list of links shown on the page"`
	Backlog       string   `toml:"backlog" mapstructure:"backlog" flag:"b" usage:"yaml backlog of links to visit"`
	BacklogPick   string   `toml:"backlog_pick" mapstructure:"backlog_pick" flag:"x" usage:"backlog links to show: random-<num> or all"`
	Profile       string   `toml:"profile" mapstructure:"profile" flag:"P" usage:"firefox profile name, directory fragment or path (default profile when empty)"`
	FirefoxDir    string   `toml:"firefox_dir" mapstructure:"firefox_dir" usage:"firefox directory with profiles.ini (detected when empty)"`
	DBLockTimeout Duration `toml:"db_lock_timeout" mapstructure:"db_lock_timeout" flag:"t" usage:"how long to wait for the places database lock"`
	PrintURL      bool     `toml:"print_url" mapstructure:"print_url" flag:"v" usage:"print the file:// url of the generated page"`
	Open          bool     `toml:"open" mapstructure:"open" usage:"open the generated page in the desktop browser"`

	// local asset -> remote url, used by the lean format
	CDN map[string]string `toml:"cdn" mapstructure:"cdn" flag:"-"`
}

func Default() Options {
	return Options{
		OutputPath:    "~/.local/share/ffhome/output",
		OutputFormat:  "dir",
		PartsPath:     "~/.local/share/ffhome/parts",
		BacklogPick:   "random-30",
		DBLockTimeout: Duration(30 * time.Second),
		CDN: map[string]string{
			"d3.min.js": "https://d3js.org/d3.v7.min.js",
		},
	}
}

// Homepage holds the effective [homepage] options.
var Homepage = Default()

func init() {
	RegisterConfigurator(HomepageSection, AsConfigurator(&Homepage))
}
