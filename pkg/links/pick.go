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

package links

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
)

const PickAll = "all"

var ErrPickSpec = errors.New("unsupported backlog pick spec")

var randomSpecRe = regexp.MustCompile(`^random-(\d+)$`)

// Picker selects the subset of backlog links shown on the page.
type Picker struct {
	// Rand is the source used by random-N specs. A freshly seeded source is
	// used when nil.
	Rand *rand.Rand
}

// parsePickSpec returns the size of a random-N draw, or -1 for all.
func parsePickSpec(spec string) (int, error) {
	if spec == PickAll {
		return -1, nil
	}

	m := randomSpecRe.FindStringSubmatch(spec)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrPickSpec, spec)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrPickSpec, spec, err)
	}
	return n, nil
}

// CheckPickSpec reports whether spec is a supported pick spec.
func CheckPickSpec(spec string) error {
	_, err := parsePickSpec(spec)
	return err
}

// Pick applies spec to links. Supported specs are "all" and "random-N".
func (p Picker) Pick(links []Link, spec string) ([]Link, error) {
	n, err := parsePickSpec(spec)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return links, nil
	}

	rnd := p.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	pool := make([]Link, len(links))
	copy(pool, links)

	n = min(n, len(pool))

	// partial Fisher-Yates: the first n slots end up holding the draw
	for i := range n {
		j := i + rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:n], nil
}

// Pick applies spec to links with a freshly seeded source.
func Pick(links []Link, spec string) ([]Link, error) {
	return Picker{}.Pick(links, spec)
}
