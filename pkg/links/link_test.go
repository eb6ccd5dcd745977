package links

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	for _, s := range []string{
		"http://a.b",
		"https://a.b/c?d=e",
		"  spdy://host",
		"file:///tmp/x",
		"about:config",
	} {
		assert.True(t, Detect(s), s)
	}

	for _, s := range []string{
		"",
		"ftp://host",
		"see https://a.b",
		"httpx://a",
		"about",
	} {
		assert.False(t, Detect(s), s)
	}
}

func TestNewLink(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want Link
		err  error
	}{
		{
			name: "url and title",
			a:    Text("https://go.dev"),
			b:    Text("Go"),
			want: Link{URL: "https://go.dev", Title: "Go"},
		},
		{
			name: "url alone",
			a:    Text("https://go.dev"),
			b:    Absent,
			want: Link{URL: "https://go.dev"},
		},
		{
			name: "url is trimmed",
			a:    Text("  about:blank \n"),
			b:    Absent,
			want: Link{URL: "about:blank"},
		},
		{
			name: "integer title",
			a:    Text("https://go.dev"),
			b:    Int(42),
			want: Link{URL: "https://go.dev", Title: "42"},
		},
		{
			name: "empty title is absent",
			a:    Text("https://go.dev"),
			b:    Text(""),
			want: Link{URL: "https://go.dev"},
		},
		{
			name: "zero title is absent",
			a:    Text("https://go.dev"),
			b:    Int(0),
			want: Link{URL: "https://go.dev"},
		},
		{
			name: "two links",
			a:    Text("https://go.dev"),
			b:    Text("http://golang.org"),
			err:  ErrLinkAmbiguous,
		},
		{
			name: "no link",
			a:    Text("Go"),
			b:    Text("language"),
			err:  ErrLinkMissing,
		},
		{
			name: "nothing",
			a:    Absent,
			b:    Absent,
			err:  ErrLinkMissing,
		},
		{
			name: "title without url",
			a:    Absent,
			b:    Text("Go"),
			err:  ErrLinkMissing,
		},
		{
			name: "integers only",
			a:    Int(1),
			b:    Int(2),
			err:  ErrLinkMissing,
		},
		{
			name: "unsupported type",
			a:    Text("https://go.dev"),
			b:    ValueOf(3.14),
			err:  ErrLinkType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, args := range [][2]Value{{tt.a, tt.b}, {tt.b, tt.a}} {
				got, err := NewLink(args[0], args[1])
				if tt.err != nil {
					require.ErrorIs(t, err, tt.err)
					var lerr *LinkError
					require.ErrorAs(t, err, &lerr)
					assert.Equal(t, args, lerr.Candidates)
					continue
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestValueOf(t *testing.T) {
	assert.Equal(t, Absent, ValueOf(nil))
	assert.Equal(t, Text("x"), ValueOf("x"))
	assert.Equal(t, Int(3), ValueOf(3))
	assert.Equal(t, Int(3), ValueOf(int64(3)))
	assert.Equal(t, kindInvalid, ValueOf(true).kind)
}

func TestParseLink(t *testing.T) {
	l, err := ParseLink("https://go.dev")
	require.NoError(t, err)
	assert.Equal(t, Link{URL: "https://go.dev"}, l)
	assert.False(t, l.HasTitle())

	_, err = ParseLink("just text")
	assert.ErrorIs(t, err, ErrLinkMissing)
}

func TestLinkJSON(t *testing.T) {
	data, err := json.Marshal([]Link{
		{URL: "https://go.dev", Title: "Go"},
		{URL: "about:blank"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"title": "Go", "url": "https://go.dev"},
		{"title": null, "url": "about:blank"}
	]`, string(data))
}
