package cfg

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/ccnetcfg/internal/fs"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

func TestDocumentVersion(t *testing.T) {
	testcases := []struct {
		name    string
		doc     string
		version schema.Version
	}{
		{
			name:    "comment before root",
			doc:     `<?xml version="1.0"?><!-- configurationVersion=1.3 --><cruisecontrol/>`,
			version: Version13,
		},
		{
			name:    "quoted version with colon",
			doc:     `<!--configurationVersion: "1.4"--><cruisecontrol/>`,
			version: Version14,
		},
		{
			name:    "comment inside root",
			doc:     `<cruisecontrol><!-- created by ccnetconfig, configurationVersion=1.2.1 --><project name="a"/></cruisecontrol>`,
			version: schema.Version{Major: 1, Minor: 2, Patch: 1},
		},
		{
			name:    "comment after first item is ignored",
			doc:     `<cruisecontrol><project name="a"/><!-- configurationVersion=1.2 --></cruisecontrol>`,
			version: LatestVersion,
		},
		{
			name:    "no comment",
			doc:     `<cruisecontrol/>`,
			version: LatestVersion,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := parseString(t, tc.doc)
			require.NoError(t, err)
			assert.Equal(t, tc.version, c.Version)
		})
	}
}

func TestDefaultVersionOption(t *testing.T) {
	c, err := parseString(t, `<cruisecontrol><project name="a" queue="q"/></cruisecontrol>`,
		LoadOptDefaultVersion(schema.V(1, 2)),
	)
	require.NoError(t, err)

	assert.Equal(t, schema.V(1, 2), c.Version)
	assert.Empty(t, c.Project("a").Queue)
}

func TestInvalidVersionComment(t *testing.T) {
	_, err := parseString(t, `<!-- configurationVersion=1.99999999999999999999 --><cruisecontrol/>`)
	require.Error(t, err)
}

func TestParseMalformedXML(t *testing.T) {
	_, err := parseString(t, `<cruisecontrol><project name="a"></cruisecontrol>`)
	require.Error(t, err)

	_, err = parseString(t, ``)
	require.Error(t, err)
}

func TestParseEncodings(t *testing.T) {
	t.Run("latin1", func(t *testing.T) {
		doc := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
			"<cruisecontrol><project name=\"caf\xe9\"><category>M\xfcnchen</category></project></cruisecontrol>")

		c, err := Parse(bytes.NewReader(doc))
		require.NoError(t, err)

		require.Len(t, c.Projects, 1)
		assert.Equal(t, "café", c.Projects[0].Name)
		assert.Equal(t, "München", c.Projects[0].Category)
	})

	t.Run("utf-8 with bom", func(t *testing.T) {
		doc := append(bytes.Clone(utf8BOM),
			[]byte(`<?xml version="1.0" encoding="utf-8"?><cruisecontrol><project name="ü"/></cruisecontrol>`)...)

		c, err := Parse(bytes.NewReader(doc))
		require.NoError(t, err)

		require.Len(t, c.Projects, 1)
		assert.Equal(t, "ü", c.Projects[0].Name)
	})
}

func TestWrite(t *testing.T) {
	c := New(Version14)
	c.Projects = []*Project{{Name: "a", Category: "Web"}}

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))

	assert.Equal(t, `<?xml version="1.0" encoding="utf-8"?>
<!-- configurationVersion=1.4 -->
<cruisecontrol>
  <project name="a">
    <category>Web</category>
  </project>
</cruisecontrol>`, strings.TrimSpace(buf.String()))

	buf.Reset()
	require.NoError(t, c.Write(&buf, WriteOptIndent(4)))
	assert.Contains(t, buf.String(), "\n    <project name=\"a\">\n        <category>")
}

func TestWriteRequiredValueMissing(t *testing.T) {
	c := New(LatestVersion)
	c.Projects = []*Project{{Name: "a", SourceControl: &SvnSourceControl{}}}

	err := c.Write(&bytes.Buffer{})
	require.ErrorIs(t, err, schema.ErrRequired)
	assert.Equal(t, []string{"project[a]", "sourcecontrol"}, schema.Path(err))
	assert.Contains(t, c.String(), "required value")
}

func TestToFileFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ccnet.config")

	c := ExampleCruiseControl()
	require.NoError(t, c.ToFile(path))

	loaded, err := FromFile(path, LoadOptStrict())
	require.NoError(t, err)
	assert.Equal(t, c, loaded)

	t.Run("existing file is not overwritten", func(t *testing.T) {
		err := New(LatestVersion).ToFile(path)
		require.Error(t, err)
		assert.True(t, os.IsExist(err))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.True(t, c.RemoveProject("docs"))
		require.NoError(t, c.ToFile(path, ToFileOptOverwrite()))

		loaded, err := FromFile(path)
		require.NoError(t, err)
		assert.Nil(t, loaded.Project("docs"))
		assert.NoFileExists(t, path+fs.FileBackupSuffix)
	})

	t.Run("backup", func(t *testing.T) {
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		require.NoError(t, c.AddProject(&Project{Name: "docs"}))
		require.NoError(t, c.ToFile(path, ToFileOptBackup()))

		backup, err := os.ReadFile(path + fs.FileBackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, before, backup)

		loaded, err := FromFile(path)
		require.NoError(t, err)
		assert.NotNil(t, loaded.Project("docs"))
	})

	t.Run("backup of missing file", func(t *testing.T) {
		newPath := filepath.Join(dir, "new.config")
		require.NoError(t, c.ToFile(newPath, ToFileOptBackup()))
		assert.FileExists(t, newPath)
		assert.NoFileExists(t, newPath+fs.FileBackupSuffix)
	})
}

func TestToFileKeepsFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ccnet.config")
	require.NoError(t, os.WriteFile(path, []byte("<cruisecontrol/>"), 0o600))

	c := ExampleCruiseControl()
	require.NoError(t, c.ToFile(path, ToFileOptBackup()))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	loaded, err := FromFile(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Projects, len(c.Projects))
}

func TestFromFileErrorContainsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ccnet.config")
	require.NoError(t, os.WriteFile(path, []byte(`<cruisecontrol><project/><project/></cruisecontrol>`), 0o600))

	_, err := FromFile(path)
	require.ErrorIs(t, err, ErrDuplicateName)
	assert.True(t, strings.HasPrefix(err.Error(), path+": "))

	_, err = FromFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
