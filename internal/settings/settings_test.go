package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/ccnetcfg/pkg/cfg"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

func TestExampleSettingsIsValid(t *testing.T) {
	require.NoError(t, ExampleSettings().Validate())
	require.NoError(t, Default().Validate())
}

func TestExampleSettingsWrittenAndReadAreEqual(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	s := ExampleSettings()
	require.NoError(t, s.ToFile(path))

	read, err := FromFile(path)
	require.NoError(t, err)
	require.NoError(t, read.Validate())

	assert.Equal(t, path, read.FilePath())
	read.filePath = ""
	assert.Equal(t, s, read)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Number of spaces that nested elements are indented with.")

	require.Error(t, s.ToFile(path), "existing file must not be overwritten")
	require.NoError(t, s.ToFile(path, ToFileOptOverwrite()))
}

func TestCommentedSettingsResultInDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	require.NoError(t, ExampleSettings().ToFile(path, ToFileOptCommented()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		assert.True(t, strings.HasPrefix(line, "#"), "line is not commented: %q", line)
	}

	read, err := FromFile(path)
	require.NoError(t, err)
	read.filePath = ""
	assert.Equal(t, Default(), read)
}

func TestFromFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[Format]\nindentation = 4\n"), 0o600))

	_, err := FromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		s, err := Load(filepath.Join(t.TempDir(), FileName))
		require.NoError(t, err)
		assert.Equal(t, Default(), s)
	})

	t.Run("invalid settings", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		require.NoError(t, os.WriteFile(path, []byte("[Format]\nindent = -1\n"), 0o600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Format.indent")
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		require.NoError(t, os.WriteFile(path, []byte("config_version = \"1.3\"\n"), 0o600))

		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "1.3", s.ConfigVersion)
		assert.Equal(t, cfg.DefaultIndent, s.Format.Indent)
	})
}

func TestValidate(t *testing.T) {
	testcases := []struct {
		name   string
		modify func(*Settings)
		path   []string
	}{
		{
			name:   "invalid version",
			modify: func(s *Settings) { s.ConfigVersion = "one" },
			path:   []string{"config_version"},
		},
		{
			name:   "version too new",
			modify: func(s *Settings) { s.ConfigVersion = "9.0" },
			path:   []string{"config_version"},
		},
		{
			name:   "indent too big",
			modify: func(s *Settings) { s.Format.Indent = 100 },
			path:   []string{"Format", "indent"},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.modify(s)

			err := s.Validate()
			require.Error(t, err)
			assert.Equal(t, tc.path, schema.Path(err))
		})
	}
}

func TestLocate(t *testing.T) {
	t.Setenv(EnvVarPath, "/etc/ccnetcfg.toml")

	p, err := Locate("/tmp/settings.toml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/settings.toml", p)

	p, err = Locate("")
	require.NoError(t, err)
	assert.Equal(t, "/etc/ccnetcfg.toml", p)

	t.Setenv(EnvVarPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/home/user/.config")
	t.Setenv("HOME", "/home/user")

	p, err = Locate("")
	require.NoError(t, err)
	assert.Equal(t, "ccnetcfg", filepath.Base(filepath.Dir(p)))
	assert.Equal(t, FileName, filepath.Base(p))
}

func TestLoadAndWriteOpts(t *testing.T) {
	s := Default()
	s.ConfigVersion = "1.3"

	opts, err := s.LoadOpts()
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	s.Parser.Strict = true
	opts, err = s.LoadOpts()
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	assert.Len(t, s.WriteOpts(), 1)
	s.Format.Backup = true
	assert.Len(t, s.WriteOpts(), 2)
}
