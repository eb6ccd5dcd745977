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

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	log "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const EnvFFHomeDebug = "FFHOME_DEBUG"

// Silent is the pseudo level used to discard all output
const Silent = log.Level(1 << 20)

type Logger = log.Logger

var (
	// Disables all output when set before loggers are configured.
	SilentMode bool

	globalLevel  = log.WarnLevel
	loggerLevels = map[string]log.Level{}
	loggers      = map[string]*log.Logger{}

	output io.Writer = os.Stderr

	levels = map[string]log.Level{
		"debug": log.DebugLevel,
		"info":  log.InfoLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"fatal": log.FatalLevel,
		"none":  Silent,
	}
	allLevels = []string{"debug", "info", "warn", "error", "fatal", "none"}

	logLevelStyles = map[log.Level]lipgloss.Style{
		log.DebugLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.DebugLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("63")),
		log.InfoLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.InfoLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("36")),
		log.WarnLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.WarnLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("178")),
		log.ErrorLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.ErrorLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("204")),
		log.FatalLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.FatalLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("134")),
	}
)

// GetLogger returns the logger registered for a unit, creating it if needed.
// Units are shown as a short prefix and can have their own level.
func GetLogger(unit string) *log.Logger {
	if lg, ok := loggers[unit]; ok {
		return lg
	}

	opts := log.Options{}
	if len(unit) > 0 {
		opts.Prefix = fmt.Sprintf("[%.4s]", strings.ToUpper(unit))
	}

	lg := log.NewWithOptions(output, opts)
	styles := log.DefaultStyles()
	styles.Levels = logLevelStyles
	lg.SetStyles(styles)

	if f, ok := output.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		lg.SetColorProfile(termenv.Ascii)
	}

	loggers[unit] = lg
	applyLevel(unit, lg)

	return lg
}

func applyLevel(unit string, lg *log.Logger) {
	lvl := globalLevel
	if ulvl, ok := loggerLevels[unit]; ok {
		lvl = ulvl
	}

	if SilentMode || lvl == Silent {
		lg.SetOutput(io.Discard)
		return
	}

	lg.SetOutput(output)
	lg.SetLevel(lvl)

	if lvl == log.DebugLevel {
		lg.SetReportCaller(true)
		lg.SetCallerFormatter(func(file string, line int, _ string) string {
			return fmt.Sprintf("%s:%d", trimCallerPath(file, 1), line)
		})
	} else {
		lg.SetReportCaller(false)
	}
}

// SetLevel sets the level of every unit without a dedicated level.
func SetLevel(lvl log.Level) {
	globalLevel = lvl
	for unit, lg := range loggers {
		applyLevel(unit, lg)
	}
}

// SetUnitLevel sets the level of a single unit.
func SetUnitLevel(unit string, lvl log.Level) {
	loggerLevels[unit] = lvl
	if lg, ok := loggers[unit]; ok {
		applyLevel(unit, lg)
	}
}

// SetSilent discards the output of all loggers.
func SetSilent() {
	SilentMode = true
	SetLevel(Silent)
}

// SetOutput redirects all loggers to w.
func SetOutput(w io.Writer) {
	output = w
	for unit, lg := range loggers {
		applyLevel(unit, lg)
	}
}

func listLoggers() []string {
	var units []string
	for unit := range loggers {
		if unit != "" {
			units = append(units, unit)
		}
	}
	return units
}

// keep the last n path elements of a caller file
func trimCallerPath(path string, n int) string {
	parts := strings.Split(path, "/")
	if len(parts) <= n+1 {
		return path
	}
	return strings.Join(parts[len(parts)-n-1:], "/")
}

func init() {
	envDebug := os.Getenv(EnvFFHomeDebug)
	if envDebug != "" {
		if err := ParseDebugLevels(envDebug); err != nil {
			fmt.Fprintf(os.Stderr, "%s=%v: %v\n", EnvFFHomeDebug, envDebug, err)
		}
	}
}
