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

// Package tree holds the in memory node tree used to dump backlog groups and
// bookmark folders.
package tree

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"

	"github.com/blob42/ffhome"
	"github.com/blob42/ffhome/internal/utils"
	"github.com/blob42/ffhome/pkg/logging"
)

var log = logging.GetLogger("TREE")

type NodeType int

const (
	RootNode NodeType = iota
	LinkNode
	GroupNode
	FolderNode
	TagNode
)

func (t NodeType) String() string {
	switch t {
	case RootNode:
		return "root"
	case LinkNode:
		return "link"
	case GroupNode:
		return "group"
	case FolderNode:
		return "folder"
	case TagNode:
		return "tag"
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// A tree node
type Node struct {
	Title    string
	Type     NodeType
	URL      string
	Tags     []string
	Parent   *Node
	Children []*Node
}

func New() *Node {
	return &Node{Title: "root", Type: RootNode}
}

func (node *Node) GetRoot() *Node {
	if node.Type == RootNode {
		return node
	}

	if node.Parent != nil {
		return node.Parent.GetRoot()
	}
	return nil
}

// Returns the ancestor of this node
func Ancestor(node *Node) *Node {
	if node.Parent == nil {
		return node
	}
	return Ancestor(node.Parent)
}

// Path returns the titles of the group and folder nodes above node, from
// the root down.
func (node *Node) Path() []string {
	var path []string
	for p := node.Parent; p != nil && p.Type != RootNode; p = p.Parent {
		if p.Type == GroupNode || p.Type == FolderNode {
			path = append([]string{p.Title}, path...)
		}
	}
	return path
}

// Finds a node and the tree starting at root
func FindNode(node *Node, root *Node) bool {
	if node == root {
		return true
	}

	for _, child := range root.Children {
		if FindNode(node, child) {
			return true
		}
	}

	return false
}

func FindNodeByName(name string, root *Node) bool {
	if name == root.Title {
		return true
	}

	for _, child := range root.Children {
		if FindNodeByName(name, child) {
			return true
		}
	}

	return false
}

// Child returns the direct child of parent with the given type and title,
// creating it when missing.
func Child(parent *Node, nType NodeType, title string) *Node {
	for _, c := range parent.Children {
		if c.Type == nType && c.Title == title {
			return c
		}
	}

	n := &Node{Type: nType, Title: title}
	AddChild(parent, n)
	return n
}

// Inserts child node into parent node. Parent will point to child and child
// will point to parent EXCEPT when parent is a TAG node: link nodes always
// point back to their folder or group.
func AddChild(parent *Node, child *Node) {
	for _, n := range parent.Children {
		if child == n {
			log.Debugf("skipping node <%s>, already exists", child.Title)
			return
		}
	}

	parent.Children = append(parent.Children, child)
	if parent.Type != TagNode {
		child.Parent = parent
	}
}

// Maps a func(*Node) to any node in the tree starting from node that matches
// the type nType
func MapNodeFunc(node *Node, nType NodeType, f func(*Node)) {
	if node.Type == nType {
		f(node)
	}

	for _, child := range node.Children {
		MapNodeFunc(child, nType, f)
	}
}

// CountLinks returns the number of link nodes under node.
func CountLinks(node *Node) int {
	var n int
	MapNodeFunc(node, LinkNode, func(*Node) { n++ })
	return n
}

// FromBookmarks builds a root with one folder node per bookmark folder and
// one tag node per tag, bookmarks being linked under both.
func FromBookmarks(bookmarks []*ffhome.Bookmark) *Node {
	root := New()
	tagRoot := Child(root, GroupNode, "tags")

	for _, bk := range bookmarks {
		link := &Node{
			Type:  LinkNode,
			Title: bk.Title,
			URL:   bk.URL,
		}
		AddChild(Child(root, FolderNode, bk.Folder), link)
		for _, tag := range bk.Tags {
			tagNode := Child(tagRoot, TagNode, tag)
			// tag nodes never become the link parent
			AddChild(tagNode, link)
			link.Tags = utils.Extends(link.Tags, tag)
		}
	}

	return root
}

func label(node *Node) string {
	if node.Type == LinkNode {
		if node.Title == "" {
			return node.URL
		}
		return fmt.Sprintf("%s <%s>", node.Title, node.URL)
	}
	return fmt.Sprintf("%s <%s>", node.Type, node.Title)
}

// PrintTree writes an ascii rendering of the tree under root to w.
func PrintTree(w io.Writer, root *Node) error {
	var walk func(node *Node, t treeprint.Tree)
	tree := treeprint.New()
	tree.SetValue(label(root))

	walk = func(node *Node, t treeprint.Tree) {
		if len(node.Children) > 0 {
			t = t.AddBranch(label(node))
			for _, child := range node.Children {
				walk(child, t)
			}
		} else {
			t.AddNode(label(node))
		}
	}

	for _, child := range root.Children {
		walk(child, tree)
	}

	_, err := io.WriteString(w, tree.String())
	return err
}
