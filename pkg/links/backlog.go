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
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blob42/ffhome/pkg/logging"
	"github.com/blob42/ffhome/pkg/tree"
)

type ItemKind int

const (
	NullItem ItemKind = iota
	IntItem
	TextItem
	SeqItem
	MapItem
	OtherItem
)

// Item is a decoded backlog yaml node.
type Item struct {
	Kind ItemKind

	Text string
	Int  int64

	// SeqItem elements
	Items []Item

	// MapItem entries, in document order
	Pairs [][2]Item

	// yaml tag of OtherItem scalars (!!float, !!bool ...)
	Tag string
}

func (it Item) container() bool {
	return it.Kind == SeqItem || it.Kind == MapItem
}

func (it Item) value() Value {
	switch it.Kind {
	case NullItem:
		return Absent
	case IntItem:
		return Int(it.Int)
	case TextItem:
		return Text(it.Text)
	}
	return Value{kind: kindInvalid, raw: it}
}

func (it Item) label() string {
	switch it.Kind {
	case IntItem:
		return strconv.FormatInt(it.Int, 10)
	case NullItem:
		return "null"
	}
	return it.Text
}

func (it Item) String() string {
	switch it.Kind {
	case SeqItem:
		return fmt.Sprintf("seq(%d)", len(it.Items))
	case MapItem:
		return fmt.Sprintf("map(%d)", len(it.Pairs))
	case OtherItem:
		return fmt.Sprintf("%s %q", it.Tag, it.Text)
	}
	return it.label()
}

// ItemFromNode converts a yaml node tree. Aliases are resolved and document
// nodes unwrapped.
func ItemFromNode(n *yaml.Node) (Item, error) {
	if n == nil {
		return Item{Kind: NullItem}, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Item{Kind: NullItem}, nil
		}
		return ItemFromNode(n.Content[0])

	case yaml.AliasNode:
		return ItemFromNode(n.Alias)

	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return Item{Kind: NullItem}, nil
		case "!!str":
			return Item{Kind: TextItem, Text: n.Value}, nil
		case "!!int":
			var i int64
			if err := n.Decode(&i); err != nil {
				// out of range integers are kept as opaque scalars
				return Item{Kind: OtherItem, Tag: n.ShortTag(), Text: n.Value}, nil
			}
			return Item{Kind: IntItem, Int: i}, nil
		default:
			return Item{Kind: OtherItem, Tag: n.ShortTag(), Text: n.Value}, nil
		}

	case yaml.SequenceNode:
		seq := Item{Kind: SeqItem, Items: make([]Item, 0, len(n.Content))}
		for _, c := range n.Content {
			it, err := ItemFromNode(c)
			if err != nil {
				return seq, err
			}
			seq.Items = append(seq.Items, it)
		}
		return seq, nil

	case yaml.MappingNode:
		m := Item{Kind: MapItem}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := ItemFromNode(n.Content[i])
			if err != nil {
				return m, err
			}
			v, err := ItemFromNode(n.Content[i+1])
			if err != nil {
				return m, err
			}
			m.Pairs = append(m.Pairs, [2]Item{k, v})
		}
		return m, nil
	}

	return Item{}, fmt.Errorf("line %d: unexpected yaml node kind %d", n.Line, n.Kind)
}

// Extractor walks a backlog document and collects every link found in it.
type Extractor struct {
	// Log receives the data quality warnings. Defaults to the package logger.
	Log *logging.Logger

	// Tree, when set, gets one group node per label and the links under
	// their group.
	Tree *tree.Node

	seen map[Link]bool
}

func (x *Extractor) logger() *logging.Logger {
	if x.Log == nil {
		return log
	}
	return x.Log
}

// Extract returns the unique links found in root sorted by url and title.
func (x *Extractor) Extract(root Item) []Link {
	x.seen = make(map[Link]bool)
	group := x.Tree
	if group == nil {
		group = tree.New()
	}

	x.visit(root, nil, group)

	result := make([]Link, 0, len(x.seen))
	for l := range x.seen {
		result = append(result, l)
	}
	SortLinks(result)
	return result
}

func (x *Extractor) add(l Link, group *tree.Node) {
	if x.seen[l] {
		return
	}
	x.seen[l] = true
	tree.AddChild(group, &tree.Node{Type: tree.LinkNode, Title: l.Title, URL: l.URL})
}

func (x *Extractor) visit(it Item, path []string, group *tree.Node) {
	switch it.Kind {
	case TextItem:
		l, err := ParseLink(it.Text)
		if err != nil {
			x.logger().Warn("dangling string not bound to any link", "path", fmtPath(path), "value", it.Text)
			return
		}
		x.add(l, group)

	case SeqItem:
		if len(it.Items) == 2 {
			first, second := it.Items[0], it.Items[1]
			l, err := NewLink(first.value(), second.value())
			if err == nil {
				x.add(l, group)
				return
			}

			if !first.container() && second.container() && !first.value().isLink() {
				label := first.label()
				x.visit(second, subPath(path, label), tree.Child(group, tree.GroupNode, label))
				return
			}
		}

		for i, child := range it.Items {
			x.visit(child, subPath(path, strconv.Itoa(i)), group)
		}

	case MapItem:
		pairs := Item{Kind: SeqItem, Items: make([]Item, len(it.Pairs))}
		for i, p := range it.Pairs {
			pairs.Items[i] = Item{Kind: SeqItem, Items: []Item{p[0], p[1]}}
		}
		x.visit(pairs, path, group)

	default:
		x.logger().Warn("unrecognized backlog value", "path", fmtPath(path), "value", it)
	}
}

func subPath(path []string, elem string) []string {
	return append(slices.Clip(path), elem)
}

func fmtPath(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	return "/" + strings.Join(path, "/")
}

// SortLinks orders links by url then title.
func SortLinks(links []Link) {
	slices.SortFunc(links, func(a, b Link) int {
		return cmp.Or(
			cmp.Compare(a.URL, b.URL),
			cmp.Compare(a.Title, b.Title),
		)
	})
}

// ParseBacklog decodes a backlog yaml document from r.
func (x *Extractor) ParseBacklog(r io.Reader) ([]Link, error) {
	var doc yaml.Node
	err := yaml.NewDecoder(r).Decode(&doc)
	if errors.Is(err, io.EOF) {
		return []Link{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("backlog: %w", err)
	}

	root, err := ItemFromNode(&doc)
	if err != nil {
		return nil, fmt.Errorf("backlog: %w", err)
	}

	return x.Extract(root), nil
}

// Load reads the backlog file at path.
func (x *Extractor) Load(path string) ([]Link, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	links, err := x.ParseBacklog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	x.logger().Debugf("loaded %d backlog links from <%s>", len(links), path)
	return links, nil
}

// LoadBacklog reads the backlog file at path with the package logger.
func LoadBacklog(path string) ([]Link, error) {
	return (&Extractor{}).Load(path)
}
