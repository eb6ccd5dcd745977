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
	"fmt"
	"time"

	"github.com/fatih/structs"
	"github.com/gobuffalo/flect"
	"github.com/urfave/cli/v3"
)

const FlagCategory = "homepage"

// FlagName returns the cli flag name of an options field.
func FlagName(f *structs.Field) string {
	return flect.Dasherize(f.Tag("toml"))
}

func flagFields(c any) []*structs.Field {
	var fields []*structs.Field
	for _, f := range structs.New(c).Fields() {
		if !f.IsExported() || f.Tag("flag") == "-" {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// SetupFlags returns one cli flag per option of c, a struct pointer. Flag
// defaults are the current option values.
func SetupFlags(c any) []cli.Flag {
	flags := []cli.Flag{}
	for _, f := range flagFields(c) {
		name := FlagName(f)
		var aliases []string
		if alias := f.Tag("flag"); alias != "" {
			aliases = []string{alias}
		}
		usage := f.Tag("usage")

		log.Debugf("registering flag %s = %v", name, f.Value())

		switch val := f.Value().(type) {
		case string:
			flags = append(flags, &cli.StringFlag{
				Category: FlagCategory,
				Name:     name,
				Aliases:  aliases,
				Usage:    usage,
				Value:    val,
			})

		case bool:
			flags = append(flags, &cli.BoolFlag{
				Category: FlagCategory,
				Name:     name,
				Aliases:  aliases,
				Usage:    usage,
				Value:    val,
			})

		case Duration:
			flags = append(flags, &cli.DurationFlag{
				Category: FlagCategory,
				Name:     name,
				Aliases:  aliases,
				Usage:    usage,
				Value:    time.Duration(val),
			})

		default:
			panic(fmt.Sprintf("unsupported type %T for option %s", val, name))
		}
	}

	return flags
}

// ApplyFlags copies the flags explicitly set on cmd into c. Options not set
// on the command line keep their config file value.
func ApplyFlags(cmd *cli.Command, c any) error {
	ac := AsConfigurator(c)
	for _, f := range flagFields(c) {
		name := FlagName(f)
		if !cmd.IsSet(name) {
			continue
		}

		var v any
		switch f.Value().(type) {
		case string:
			v = cmd.String(name)
		case bool:
			v = cmd.Bool(name)
		case Duration:
			v = Duration(cmd.Duration(name))
		}

		log.Debugf("flag override %s = %v", name, v)
		if err := ac.Set(f.Name(), v); err != nil {
			return err
		}
	}
	return nil
}
