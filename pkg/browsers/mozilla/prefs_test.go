package mozilla

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPrefs = filepath.Join("testdata", PrefsFile)

func TestFindPref(t *testing.T) {
	val, err := FindPref(testPrefs, "browser.startup.homepage")
	require.NoError(t, err)
	assert.Equal(t, "file:///tmp/ffhome/index.html", val)

	val, err = FindPref(testPrefs, "not.there")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestGetPrefBool(t *testing.T) {
	enabled, err := GetPrefBool(testPrefs, PrefMultiProcessAccess)
	require.NoError(t, err)
	assert.True(t, enabled)

	_, err = GetPrefBool(testPrefs, "not.there")
	assert.ErrorIs(t, err, ErrPrefNotFound)

	_, err = GetPrefBool(testPrefs, "some.number")
	assert.ErrorIs(t, err, ErrPrefNotBool)

	_, err = GetPrefBool(filepath.Join("testdata", "missing.js"), PrefMultiProcessAccess)
	assert.Error(t, err)
}
