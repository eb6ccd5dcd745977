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

// Package config loads the ffhome toml config file into registered
// sections and maps them to cli flags.
package config

import (
	"fmt"

	"github.com/fatih/structs"

	"github.com/blob42/ffhome/internal/utils"
	"github.com/blob42/ffhome/pkg/logging"
)

var (
	log     = logging.GetLogger("CONF")
	configs = make(map[string]Configurator)
)

// A Configurator sets and exposes the options of one config file section.
type Configurator interface {
	Set(opt string, v any) error
	Get(opt string) (any, error)
	Dump() map[string]any
	MapFrom(any) error
}

// AutoConfigurator implements Configurator over the fields of a struct
// pointer.
type AutoConfigurator struct {
	c any
}

func (ac AutoConfigurator) Set(opt string, v any) error {
	f, ok := structs.New(ac.c).FieldOk(opt)
	if !ok {
		return fmt.Errorf("%s option not defined", opt)
	}

	return f.Set(v)
}

func (ac AutoConfigurator) Get(opt string) (any, error) {
	f, ok := structs.New(ac.c).FieldOk(opt)
	if !ok {
		return nil, fmt.Errorf("%s option not defined", opt)
	}

	return f.Value(), nil
}

func (ac AutoConfigurator) Dump() map[string]any {
	return structs.New(ac.c).Map()
}

func (ac AutoConfigurator) MapFrom(src any) error {
	log.Debugf("mapping from: %#v", src)
	dec, err := newDecoder(ac.c)
	if err != nil {
		return err
	}
	return dec.Decode(src)
}

// AsConfigurator wraps a struct pointer in a Configurator.
func AsConfigurator(c any) Configurator {
	return AutoConfigurator{c}
}

// RegisterConfigurator binds a config file section to c.
func RegisterConfigurator(name string, c Configurator) {
	log.Debugf("registering configurator [%s]", name)
	configs[name] = c
}

// GetModule returns the configurator of a section, nil when unknown.
func GetModule(name string) Configurator {
	return configs[name]
}

// GetAll returns the value of every registered section, keyed by section
// name.
func GetAll() map[string]any {
	result, _ := GetSections(utils.SortedKeys(configs)...)
	return result
}

// GetSections returns the value of the named sections.
func GetSections(names ...string) (map[string]any, error) {
	result := make(map[string]any, len(names))
	for _, name := range names {
		c := GetModule(name)
		if c == nil {
			return nil, fmt.Errorf("%w [%s]", ErrUnknownSection, name)
		}

		if ac, ok := c.(AutoConfigurator); ok {
			result[name] = ac.c
		} else {
			result[name] = c.Dump()
		}
	}
	return result, nil
}
