package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blob42/ffhome"
)

func Test_AddChild(t *testing.T) {
	rootNode := &Node{Title: "root", Parent: nil, Type: RootNode}
	childNode := &Node{Title: "link child", Type: LinkNode}
	linkNode := &Node{Title: "link", Type: LinkNode}
	groupNode := &Node{Type: GroupNode, Title: "group child"}
	subGroupNode := &Node{Type: GroupNode, Title: "sub-group"}
	tagNode := &Node{Type: TagNode, Title: "tag child"}

	AddChild(groupNode, subGroupNode)
	AddChild(subGroupNode, linkNode)
	AddChild(rootNode, childNode)

	t.Run("skip duplicate children", func(t *testing.T) {
		AddChild(rootNode, childNode)
		assert.Equal(t, 1, len(rootNode.Children))
	})

	t.Run("[first child] child sees the parent", func(t *testing.T) {
		assert.Equal(t, rootNode, childNode.Parent)
	})

	t.Run("[new child] child sees brothers", func(t *testing.T) {
		AddChild(rootNode, groupNode)
		AddChild(rootNode, tagNode)
		assert.Len(t, rootNode.Children, 3)
	})

	t.Run("nested link node", func(t *testing.T) {
		assert.Equal(t, rootNode, linkNode.Parent.Parent.Parent)
		assert.Equal(t, []string{"group child", "sub-group"}, linkNode.Path())
	})

	t.Run("tag parents are not linked back", func(t *testing.T) {
		AddChild(tagNode, linkNode)
		assert.Equal(t, subGroupNode, linkNode.Parent)
	})
}

func TestFindNode(t *testing.T) {
	rootNode := &Node{Title: "root", Parent: nil, Type: RootNode}
	childNode := &Node{Title: "child", Type: LinkNode}
	childNode2 := &Node{Type: GroupNode, Title: "second child"}
	childNode3 := &Node{Type: TagNode, Title: "third child"}

	AddChild(rootNode, childNode)
	AddChild(rootNode, childNode2)
	AddChild(childNode2, childNode3)

	assert.True(t, FindNode(childNode3, rootNode))
	assert.True(t, FindNode(childNode2, rootNode))
	assert.True(t, FindNode(childNode, rootNode))
	assert.True(t, FindNode(rootNode, rootNode))
	assert.False(t, FindNode(&Node{Title: "stray"}, rootNode))

	t.Run("find nodes by name", func(t *testing.T) {
		assert.True(t, FindNodeByName("third child", rootNode))
		assert.True(t, FindNodeByName("second child", rootNode))
		assert.True(t, FindNodeByName("child", rootNode))
		assert.True(t, FindNodeByName("root", rootNode))
		assert.False(t, FindNodeByName("not existing", rootNode))
	})
}

func Test_GetRoot(t *testing.T) {
	root := New()
	group := Child(root, GroupNode, "group")
	sub := Child(group, GroupNode, "sub-group")
	link := &Node{Type: LinkNode, Title: "link"}
	AddChild(sub, link)

	assert.Equal(t, root, link.GetRoot())
	assert.Equal(t, root, Ancestor(link))
	assert.Same(t, group, Child(root, GroupNode, "group"))
}

func TestFromBookmarks(t *testing.T) {
	bookmarks := []*ffhome.Bookmark{
		{ID: 1, Title: "Go", URL: "https://go.dev", Folder: "dev", Tags: []string{"go", "lang"}},
		{ID: 2, Title: "Rust", URL: "https://rust-lang.org", Folder: "dev", Tags: []string{"lang"}},
		{ID: 3, Title: "News", URL: "https://lwn.net", Folder: "Unknown"},
	}

	root := FromBookmarks(bookmarks)
	assert.Equal(t, 3, CountLinks(root.Children[1]) + CountLinks(root.Children[2]))

	var tags []string
	MapNodeFunc(root, TagNode, func(n *Node) { tags = append(tags, n.Title) })
	assert.ElementsMatch(t, []string{"go", "lang"}, tags)

	var folders []string
	MapNodeFunc(root, LinkNode, func(n *Node) {
		folders = append(folders, n.Parent.Title)
	})
	// links under tags are visited again but still point to their folder
	assert.ElementsMatch(t, []string{"dev", "dev", "dev", "dev", "dev", "Unknown"}, folders)

	var out strings.Builder
	require.NoError(t, PrintTree(&out, root))
	assert.True(t, strings.HasPrefix(out.String(), "root <root>\n"), out.String())
	assert.Contains(t, out.String(), "folder <dev>")
	assert.Contains(t, out.String(), "Go <https://go.dev>")
}
