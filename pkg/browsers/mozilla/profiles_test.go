package mozilla

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blob42/ffhome/pkg/profiles"
)

// setupProfiles copies the ini fixture into a fresh base dir along with
// the profile directories it references.
func setupProfiles(t *testing.T, fixture string) string {
	t.Helper()

	base := t.TempDir()
	data, err := os.ReadFile(filepath.Join("testdata", fixture))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(base, profiles.DefaultProfilesFile), data, 0644))

	for _, dir := range []string{"abcd1234.dev-edition", "w0rk5678.work", "xyz98765.default"} {
		require.NoError(t, os.Mkdir(filepath.Join(base, dir), 0755))
	}

	return base
}

func TestGetProfiles(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		pm := NewProfileManager(setupProfiles(t, "profiles.ini"))

		profs, err := pm.GetProfiles()
		require.NoError(t, err)

		var names, paths []string
		for _, p := range profs {
			names = append(names, p.Name)
			paths = append(paths, p.Path)
			assert.True(t, p.IsRelative)
		}
		assert.ElementsMatch(t, []string{"dev-edition-default", "Work", "default"}, names)
		assert.ElementsMatch(t, []string{"abcd1234.dev-edition", "w0rk5678.work", "xyz98765.default"}, paths)
	})

	t.Run("Bad", func(t *testing.T) {
		pm := NewProfileManager(setupProfiles(t, "profiles_bad.ini"))
		_, err := pm.GetProfiles()
		assert.ErrorIs(t, err, ErrProfilesIni)
	})

	t.Run("Missing", func(t *testing.T) {
		pm := NewProfileManager(t.TempDir())
		_, err := pm.GetProfiles()
		assert.ErrorIs(t, err, ErrProfilesIni)
	})
}

func TestFindProfile(t *testing.T) {
	pm := NewProfileManager(setupProfiles(t, "profiles.ini"))

	tests := []struct {
		query string
		path  string
		err   error
	}{
		{query: "", path: "xyz98765.default"},
		{query: "work", path: "w0rk5678.work"},
		{query: "WORK", path: "w0rk5678.work"},
		{query: "dev-EDITION", path: "abcd1234.dev-edition"},
		// exact name wins over path fragments matching several profiles
		{query: "default", path: "xyz98765.default"},
		{query: "xyz98", path: "xyz98765.default"},
		{query: ".", err: ErrAmbiguousProfile},
		{query: "nope", err: ErrProfileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			p, err := pm.FindProfile(tt.query)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.path, p.Path)
		})
	}
}

func TestInstallDefault(t *testing.T) {
	pm := NewProfileManager(setupProfiles(t, "profiles_install.ini"))

	p, err := pm.GetDefaultProfile()
	require.NoError(t, err)
	assert.Equal(t, "dev-edition-default", p.Name)
}

func TestFindProfileDir(t *testing.T) {
	base := setupProfiles(t, "profiles.ini")

	t.Run("absolute path", func(t *testing.T) {
		dir, err := FindProfileDir(base, "/some/profile/dir")
		require.NoError(t, err)
		assert.Equal(t, "/some/profile/dir", dir)
	})

	t.Run("by name", func(t *testing.T) {
		dir, err := FindProfileDir(base, "Work")
		require.NoError(t, err)

		want, err := filepath.EvalSymlinks(filepath.Join(base, "w0rk5678.work"))
		require.NoError(t, err)
		assert.Equal(t, want, dir)
	})

	t.Run("missing directory", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(base, "abcd1234.dev-edition")))
		_, err := FindProfileDir(base, "dev-edition-default")
		assert.Error(t, err)
	})
}
