package profiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsolutePath(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "abcd.default"), 0755))

	t.Run("relative", func(t *testing.T) {
		p := Profile{Path: "abcd.default", IsRelative: true, BaseDir: base}
		dir, err := p.AbsolutePath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "abcd.default"), dir)
	})

	t.Run("absolute", func(t *testing.T) {
		p := Profile{Path: filepath.Join(base, "abcd.default"), BaseDir: "/elsewhere"}
		dir, err := p.AbsolutePath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "abcd.default"), dir)
	})

	t.Run("missing", func(t *testing.T) {
		p := Profile{Path: "gone", IsRelative: true, BaseDir: base}
		_, err := p.AbsolutePath()
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestINIProfileLoader(t *testing.T) {
	base := t.TempDir()
	pl := NewINIProfileLoader(base)

	assert.Equal(t, filepath.Join(base, DefaultProfilesFile), pl.GetPath())
	assert.False(t, pl.Exists())

	require.NoError(t, os.WriteFile(pl.GetPath(), []byte("[Profile0]\n"), 0644))
	assert.True(t, pl.Exists())

	pl.SetBaseDir("/other")
	pl.ProfilesFile = ""
	assert.Equal(t, "/other/profiles.ini", pl.GetPath())
}

func TestFlavourDetect(t *testing.T) {
	base := t.TempDir()
	t.Setenv("FFHOME_TEST_BASE", base)

	installed := Flavour{Name: "firefox", BaseDir: "$FFHOME_TEST_BASE"}
	assert.True(t, installed.Detect())

	dir, err := installed.ExpandBaseDir()
	require.NoError(t, err)
	assert.Equal(t, base, dir)

	missing := Flavour{Name: "firefox-snap", BaseDir: "$FFHOME_TEST_BASE/snap"}
	assert.False(t, missing.Detect())
}
