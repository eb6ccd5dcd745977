package links

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLinkList(t *testing.T) {
	longTitle := strings.Repeat("x", 130)

	input := `
# reading list

https://go.dev/blog
- https://lwn.net
Go spec - https://go.dev/ref/spec
Tour: https://go.dev/tour
- Kernel docs: https://docs.kernel.org
sqlite:
  https://sqlite.org/lang.html
https://search.example/find?q=some+very+long+query+string&page=2
https://short.example/?q=go
` + longTitle + ` https://long.example
not a link
https://go.dev/blog
`

	got, err := ParseLinkList(strings.NewReader(input))
	require.NoError(t, err)

	want := []Link{
		{URL: "https://go.dev/blog", Title: "go.dev/blog"},
		{URL: "https://lwn.net", Title: "lwn.net"},
		{URL: "https://go.dev/ref/spec", Title: "Go spec"},
		{URL: "https://go.dev/tour", Title: "Tour"},
		{URL: "https://docs.kernel.org", Title: "Kernel docs"},
		{URL: "https://sqlite.org/lang.html", Title: "sqlite"},
		{URL: "https://search.example/find?q=some+very+long+query+string&page=2", Title: "search.example/find?…"},
		{URL: "https://short.example/?q=go", Title: "short.example/?q=go"},
		{URL: "https://long.example", Title: strings.Repeat("x", 100) + "…"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("link list mismatch (-want +got):\n%s", diff)
	}
}

func TestTitleFromURL(t *testing.T) {
	tests := map[string]string{
		"about:config":                             "config",
		"file:///etc/hosts":                        "/etc/hosts",
		"https://a.example/?q=123456789012345678":  "a.example/?q=123456789012345678",
		"https://a.example/?q=1234567890123456789": "a.example/?…",
	}

	for url, want := range tests {
		t.Run(url, func(t *testing.T) {
			assert.Equal(t, want, titleFromURL(url))
		})
	}
}

func TestLoadLinkList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://a.example\n\n# c\nB https://b.example\n"), 0644))

	got, err := LoadLinkList(path)
	require.NoError(t, err)
	assert.Equal(t, []Link{
		{URL: "https://a.example", Title: "a.example"},
		{URL: "https://b.example", Title: "B"},
	}, got)
}
