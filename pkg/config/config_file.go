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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/blob42/ffhome/internal/utils"
)

const (
	ConfigFileName = "config.toml"
	ConfigDirName  = "ffhome"
)

var (
	ErrConfigExists   = errors.New("config file already exists")
	ErrUnknownSection = errors.New("unknown config section")
)

func getConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get config dir: %w", err)
	}
	if configDir == "" {
		return "", errors.New("could not get config dir")
	}

	return filepath.Join(configDir, ConfigDirName), nil
}

// DefaultConfigFile returns ~/.config/ffhome/config.toml, following
// XDG_CONFIG_HOME.
func DefaultConfigFile() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// ConfigFile returns path expanded, or the default config file when path
// is empty.
func ConfigFile(path string) (string, error) {
	if path == "" {
		return DefaultConfigFile()
	}
	return utils.ExpandOnly(path)
}

// LoadFromTomlFile decodes the toml file at path into the registered
// sections.
func LoadFromTomlFile(path string) error {
	buffer := make(map[string]any)
	if _, err := toml.DecodeFile(path, &buffer); err != nil {
		return fmt.Errorf("loading config file %w", err)
	}

	for _, name := range utils.SortedKeys(buffer) {
		c := GetModule(name)
		if c == nil {
			return fmt.Errorf("%s: %w [%s]", path, ErrUnknownSection, name)
		}
		if err := c.MapFrom(buffer[name]); err != nil {
			return fmt.Errorf("parsing config [%s]: %w", name, err)
		}
	}

	log.Debugf("loaded config from <%s>", utils.Shorten(path))
	return nil
}

// Load reads the config file at path if it exists. A missing file leaves
// the defaults in place.
func Load(path string) error {
	exists, err := utils.CheckFileExists(path)
	if err != nil {
		return err
	}
	if !exists {
		log.Debugf("no config file at <%s>, using defaults", utils.Shorten(path))
		return nil
	}

	return LoadFromTomlFile(path)
}

// Encode writes sections as toml.
func Encode(w io.Writer, sections map[string]any) error {
	tomlEncoder := toml.NewEncoder(w)
	tomlEncoder.Indent = ""
	return tomlEncoder.Encode(sections)
}

// InitConfigFile writes the default config to path. An existing file is
// only replaced when force is set.
func InitConfigFile(path string, force bool) error {
	exists, err := utils.CheckFileExists(path)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config dir: %w", err)
	}

	defaults := map[string]any{HomepageSection: Default()}
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		return Encode(w, defaults)
	})
}
