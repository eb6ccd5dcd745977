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

// Package mozilla reads firefox profiles and their places database.
package mozilla

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-ini/ini"

	"github.com/blob42/ffhome/internal/utils"
	"github.com/blob42/ffhome/pkg/browsers"
	"github.com/blob42/ffhome/pkg/logging"
	"github.com/blob42/ffhome/pkg/profiles"
)

var (
	log = logging.GetLogger("MOZ")

	ReIniProfiles = regexp.MustCompile(`(?i)^profile`)
	ReIniInstall  = regexp.MustCompile(`(?i)^install`)

	ErrProfilesIni      = errors.New("could not parse profiles.ini file")
	ErrNoDefaultProfile = errors.New("no default profile found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrAmbiguousProfile = errors.New("ambiguous profile")
	ErrNoFirefox        = errors.New("no firefox profiles directory found")

	// Locations of the profiles.ini directory, in lookup order
	Flavours = browsers.MozillaFlavours()
)

// DetectBaseDir returns the first installed flavour's base dir.
func DetectBaseDir() (string, error) {
	for _, f := range Flavours {
		if !f.Detect() {
			continue
		}
		dir, err := f.ExpandBaseDir()
		if err != nil {
			return "", err
		}
		log.Debugf("using <%s> flavour at <%s>", f.Name, dir)
		return dir, nil
	}
	return "", ErrNoFirefox
}

type MozProfileManager struct {
	// Directory holding profiles.ini
	BaseDir      string
	ProfilesFile *ini.File
	PathResolver profiles.PathResolver
}

func NewProfileManager(baseDir string) *MozProfileManager {
	return &MozProfileManager{
		BaseDir:      baseDir,
		PathResolver: profiles.NewINIProfileLoader(baseDir),
	}
}

func (pm *MozProfileManager) loadProfile() error {
	if pm.ProfilesFile != nil {
		return nil
	}

	log.Debugf("loading profiles from <%s>", pm.PathResolver.GetPath())
	pFile, err := ini.Load(pm.PathResolver.GetPath())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProfilesIni, err)
	}

	pm.ProfilesFile = pFile
	return nil
}

// GetProfiles returns the profiles listed in profiles.ini. The profile
// selected by an [Install*] section is flagged Default when no profile
// carries Default=1.
func (pm *MozProfileManager) GetProfiles() ([]*profiles.Profile, error) {
	if err := pm.loadProfile(); err != nil {
		return nil, err
	}

	var result []*profiles.Profile
	var hasDefault bool
	for _, section := range pm.ProfilesFile.Sections() {
		if !ReIniProfiles.MatchString(section.Name()) {
			continue
		}

		p := &profiles.Profile{
			ID:      section.Name(),
			BaseDir: pm.BaseDir,
		}
		if err := section.MapTo(p); err != nil {
			return nil, err
		}
		if !section.HasKey("IsRelative") {
			p.IsRelative = !filepath.IsAbs(p.Path)
		}
		hasDefault = hasDefault || p.Default

		result = append(result, p)
	}

	if len(result) == 0 {
		return nil, ErrProfilesIni
	}

	if !hasDefault {
		if installPath := pm.installDefault(); installPath != "" {
			for _, p := range result {
				if p.Path == installPath {
					p.Default = true
					break
				}
			}
		}
	}

	return result, nil
}

// Default profile path of the first [Install*] section
func (pm *MozProfileManager) installDefault() string {
	for _, section := range pm.ProfilesFile.Sections() {
		if ReIniInstall.MatchString(section.Name()) && section.HasKey("Default") {
			return section.Key("Default").String()
		}
	}
	return ""
}

func (pm *MozProfileManager) GetDefaultProfile() (*profiles.Profile, error) {
	profs, err := pm.GetProfiles()
	if err != nil {
		return nil, err
	}

	for _, p := range profs {
		if p.Default {
			return p, nil
		}
	}

	return nil, ErrNoDefaultProfile
}

// FindProfile looks up a profile by exact name, then by a fragment of its
// path, both case insensitive. An empty query selects the default profile.
func (pm *MozProfileManager) FindProfile(query string) (*profiles.Profile, error) {
	if query == "" {
		return pm.GetDefaultProfile()
	}

	profs, err := pm.GetProfiles()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	for _, p := range profs {
		if strings.ToLower(strings.TrimSpace(p.Name)) == query {
			return p, nil
		}
	}

	var matches []*profiles.Profile
	for _, p := range profs {
		if strings.Contains(strings.ToLower(p.Path), query) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, query)
	case 1:
		return matches[0], nil
	}

	names := make([]string, len(matches))
	for i, p := range matches {
		names[i] = p.Path
	}
	return nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguousProfile, query, strings.Join(names, ", "))
}

// FindProfileDir resolves query to a profile directory. Absolute paths are
// returned as is.
func (pm *MozProfileManager) FindProfileDir(query string) (string, error) {
	if filepath.IsAbs(query) {
		return query, nil
	}

	p, err := pm.FindProfile(query)
	if err != nil {
		return "", err
	}

	dir, err := p.AbsolutePath()
	if err != nil {
		return "", fmt.Errorf("profile <%s>: %w", p.Name, err)
	}

	if ok, err := utils.CheckDirExists(dir); err != nil || !ok {
		return "", fmt.Errorf("profile <%s>: missing directory <%s>", p.Name, dir)
	}

	log.Debugf("using profile <%s> at <%s>", p.Name, dir)
	return dir, nil
}

// FindProfileDir resolves query against baseDir, or the detected firefox
// install when baseDir is empty.
func FindProfileDir(baseDir, query string) (string, error) {
	if filepath.IsAbs(query) {
		return query, nil
	}

	if baseDir == "" {
		var err error
		if baseDir, err = DetectBaseDir(); err != nil {
			return "", err
		}
	}

	return NewProfileManager(baseDir).FindProfileDir(query)
}

// ListProfiles returns the profiles of baseDir, or of the detected firefox
// install when baseDir is empty.
func ListProfiles(baseDir string) ([]*profiles.Profile, error) {
	if baseDir == "" {
		var err error
		if baseDir, err = DetectBaseDir(); err != nil {
			return nil, err
		}
	}

	return NewProfileManager(baseDir).GetProfiles()
}
