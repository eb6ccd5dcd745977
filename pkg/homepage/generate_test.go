package homepage

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blob42/ffhome/pkg/browsers/mozilla"
	"github.com/blob42/ffhome/pkg/links"
	"github.com/blob42/ffhome/pkg/render"
)

const testPlaces = `
CREATE TABLE moz_places (
	id INTEGER PRIMARY KEY,
	url LONGVARCHAR,
	title LONGVARCHAR,
	frecency INTEGER,
	hidden INTEGER DEFAULT 0 NOT NULL
);
CREATE TABLE moz_bookmarks (
	id INTEGER PRIMARY KEY,
	type INTEGER,
	fk INTEGER DEFAULT NULL,
	parent INTEGER,
	position INTEGER,
	title LONGVARCHAR,
	dateAdded INTEGER
);
INSERT INTO moz_places(id, url, title, frecency, hidden) VALUES
	(1, 'https://go.dev', 'Go', 100, 0);
INSERT INTO moz_bookmarks(id, type, fk, parent, title, dateAdded) VALUES
	(1, 2, NULL, 0, '', 1),
	(2, 2, NULL, 1, 'menu', 1),
	(4, 2, NULL, 1, 'tags', 1),
	(20, 2, NULL, 4, 'Go', 1),
	(21, 2, NULL, 4, 'Dev', 1),
	(30, 1, 1, 2, 'Go', 1700000000000000),
	(31, 1, 1, 20, NULL, 1),
	(32, 1, 1, 21, NULL, 1);
`

const testProfilesIni = `[Profile0]
Name=default
IsRelative=1
Path=abcd.default
Default=1
`

const testIndex = `<html><head>
<script src="tags.json"></script>
<script src="backlog.json"></script>
<script src="links.json"></script>
</head><body></body></html>
`

const testBacklog = `
- https://a.example
- https://b.example
- [C, https://c.example]
`

const testLinkList = `- https://pinned.example
https://other.example
`

type fixture struct {
	firefoxDir string
	parts      string
	backlog    string
	links      string
	output     string
}

func setup(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()

	fx := fixture{
		firefoxDir: filepath.Join(root, "firefox"),
		parts:      filepath.Join(root, "parts"),
		backlog:    filepath.Join(root, "backlog.yaml"),
		links:      filepath.Join(root, "links.txt"),
		output:     filepath.Join(root, "out", "home.html"),
	}

	profileDir := filepath.Join(fx.firefoxDir, "abcd.default")
	require.NoError(t, os.MkdirAll(profileDir, 0755))
	require.NoError(t, os.MkdirAll(fx.parts, 0755))

	write := func(path, content string) {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write(filepath.Join(fx.firefoxDir, "profiles.ini"), testProfilesIni)
	write(filepath.Join(fx.parts, render.IndexFile), testIndex)
	write(fx.backlog, testBacklog)
	write(fx.links, testLinkList)

	db, err := sqlx.Open("sqlite3", filepath.Join(profileDir, mozilla.PlacesFile))
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(testPlaces)
	require.NoError(t, err)

	return fx
}

func (fx fixture) options() Options {
	return Options{
		FirefoxDir:  fx.firefoxDir,
		BacklogPath: fx.backlog,
		BacklogPick: "random-2",
		LinksPath:   fx.links,
		Render: render.Options{
			Format:     render.FormatFat,
			PartsPath:  fx.parts,
			OutputPath: fx.output,
		},
		Picker: links.Picker{Rand: rand.New(rand.NewPCG(1, 2))},
	}
}

func TestGenerate(t *testing.T) {
	fx := setup(t)

	res, err := Generate(context.Background(), fx.options())
	require.NoError(t, err)

	assert.Equal(t, fx.output, res.IndexPath)
	assert.Equal(t, "file://"+filepath.ToSlash(fx.output), res.URL)
	assert.Equal(t, 1, res.Bookmarks)
	assert.Equal(t, 2, res.Tags)
	assert.Equal(t, 2, res.Backlog)
	assert.Equal(t, 2, res.Links)

	data, err := os.ReadFile(fx.output)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, `"edges":[["dev","go",1]]`)
	assert.Contains(t, html, `ffhome_links=[{"title":"pinned.example","url":"https://pinned.example"},`+
		`{"title":"other.example","url":"https://other.example"}];`)
	assert.True(t, strings.HasPrefix(html, "<html><head>\n<script>ffhome_tags="))
}

func TestGenerateOptional(t *testing.T) {
	fx := setup(t)
	opts := fx.options()
	opts.BacklogPath = ""
	opts.BacklogPick = "bogus"
	opts.LinksPath = ""

	res, err := Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Zero(t, res.Backlog)
	assert.Zero(t, res.Links)

	data, err := os.ReadFile(res.IndexPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ffhome_backlog=[];")
	assert.Contains(t, string(data), "ffhome_links=[];")
}

func TestGenerateErrors(t *testing.T) {
	fx := setup(t)

	tests := []struct {
		name   string
		modify func(*Options)
		err    error
	}{
		{
			name: "pick spec checked before reading",
			modify: func(o *Options) {
				o.BacklogPick = "random"
				o.FirefoxDir = filepath.Join(fx.firefoxDir, "missing")
			},
			err: links.ErrPickSpec,
		},
		{
			name:   "format",
			modify: func(o *Options) { o.Render.Format = "thin" },
			err:    render.ErrBadFormat,
		},
		{
			name:   "unknown profile",
			modify: func(o *Options) { o.Profile = "nightly" },
			err:    mozilla.ErrProfileNotFound,
		},
		{
			name:   "missing database",
			modify: func(o *Options) { o.PlacesPath = filepath.Join(fx.firefoxDir, mozilla.PlacesFile) },
			err:    mozilla.ErrMissingDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := fx.options()
			tt.modify(&opts)

			_, err := Generate(context.Background(), opts)
			assert.ErrorIs(t, err, tt.err)

			_, err = os.Stat(fx.output)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestGenerateDir(t *testing.T) {
	fx := setup(t)
	opts := fx.options()
	opts.Render.Format = render.FormatDir
	opts.Render.OutputPath = filepath.Join(filepath.Dir(fx.output), "site")

	res, err := Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.Render.OutputPath, render.IndexFile), res.IndexPath)

	for _, f := range []string{render.TagsFile, render.BacklogFile, render.LinksFile} {
		assert.FileExists(t, filepath.Join(opts.Render.OutputPath, f))
	}
}
