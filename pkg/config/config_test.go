package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// useOptions registers a fresh [homepage] target for the duration of a test.
func useOptions(t *testing.T) *Options {
	t.Helper()
	opts := Default()
	RegisterConfigurator(HomepageSection, AsConfigurator(&opts))
	t.Cleanup(func() {
		RegisterConfigurator(HomepageSection, AsConfigurator(&Homepage))
	})
	return &opts
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("file values", func(t *testing.T) {
		opts := useOptions(t)
		path := writeConfig(t, `
[homepage]
output_format = "fat"
backlog = "~/notes/backlog.yaml"
db_lock_timeout = "2m"
print_url = true

[homepage.cdn]
"vis.js" = "https://cdn.example/vis.js"
`)
		require.NoError(t, Load(path))

		want := Default()
		want.OutputFormat = "fat"
		want.Backlog = "~/notes/backlog.yaml"
		want.DBLockTimeout = Duration(2 * time.Minute)
		want.PrintURL = true
		want.CDN["vis.js"] = "https://cdn.example/vis.js"

		if diff := cmp.Diff(want, *opts); diff != "" {
			t.Errorf("options mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing file keeps defaults", func(t *testing.T) {
		opts := useOptions(t)
		require.NoError(t, Load(filepath.Join(t.TempDir(), "none.toml")))
		assert.Equal(t, Default(), *opts)
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			err     error
		}{
			{"unknown section", "[firefox]\nprofile = \"x\"\n", ErrUnknownSection},
			{"unknown key", "[homepage]\noutput = \"x\"\n", nil},
			{"bad duration", "[homepage]\ndb_lock_timeout = \"soon\"\n", nil},
			{"bad toml", "[homepage\n", nil},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				useOptions(t)
				err := Load(writeConfig(t, tt.content))
				require.Error(t, err)
				if tt.err != nil {
					assert.ErrorIs(t, err, tt.err)
				}
			})
		}
	})
}

func TestInitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigDirName, ConfigFileName)
	require.NoError(t, InitConfigFile(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[homepage]")
	assert.Contains(t, string(data), `db_lock_timeout = "30s"`)
	assert.Contains(t, string(data), `backlog_pick = "random-30"`)

	err = InitConfigFile(path, false)
	assert.ErrorIs(t, err, ErrConfigExists)
	require.NoError(t, InitConfigFile(path, true))

	// the written defaults load back unchanged
	opts := useOptions(t)
	opts.OutputFormat = "lean"
	require.NoError(t, Load(path))
	assert.Equal(t, Default(), *opts)
}

func TestDurationString(t *testing.T) {
	assert.Equal(t, "30 seconds", Duration(30*time.Second).String())
}

func TestSetupFlags(t *testing.T) {
	opts := Default()
	flags := SetupFlags(&opts)

	names := map[string][]string{}
	for _, f := range flags {
		n := f.Names()
		names[n[0]] = n[1:]
	}

	assert.Len(t, flags, 11)
	assert.Equal(t, []string{"o"}, names["output-path"])
	assert.Equal(t, []string{"t"}, names["db-lock-timeout"])
	assert.Equal(t, []string{"v"}, names["print-url"])
	assert.Empty(t, names["firefox-dir"])
	assert.NotContains(t, names, "cdn")
}

func TestApplyFlags(t *testing.T) {
	opts := Default()
	opts.OutputPath = "/from/config"

	cmd := &cli.Command{
		Name:  "ffhome",
		Flags: SetupFlags(&opts),
		Action: func(_ context.Context, cmd *cli.Command) error {
			return ApplyFlags(cmd, &opts)
		},
	}

	err := cmd.Run(context.Background(), []string{"ffhome", "-f", "fat", "--db-lock-timeout", "10s", "-v"})
	require.NoError(t, err)

	assert.Equal(t, "/from/config", opts.OutputPath)
	assert.Equal(t, "fat", opts.OutputFormat)
	assert.Equal(t, Duration(10*time.Second), opts.DBLockTimeout)
	assert.True(t, opts.PrintURL)
	assert.False(t, opts.Open)
}

func TestAutoConfigurator(t *testing.T) {
	opts := Default()
	ac := AsConfigurator(&opts)

	require.NoError(t, ac.Set("Profile", "work"))
	v, err := ac.Get("Profile")
	require.NoError(t, err)
	assert.Equal(t, "work", v)

	assert.Error(t, ac.Set("Nope", 1))
	_, err = ac.Get("Nope")
	assert.Error(t, err)

	assert.Equal(t, "work", ac.Dump()["Profile"])
}

func TestGetSections(t *testing.T) {
	assert.NotNil(t, GetModule(HomepageSection))
	assert.Nil(t, GetModule("nope"))

	sections, err := GetSections(HomepageSection)
	require.NoError(t, err)
	assert.Same(t, &Homepage, sections[HomepageSection])

	_, err = GetSections(HomepageSection, "nope")
	assert.ErrorIs(t, err, ErrUnknownSection)

	assert.Contains(t, GetAll(), HomepageSection)
}
