package command

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/ccnetcfg/internal/settings"
	"github.com/simplesurance/ccnetcfg/pkg/cfg"
)

func TestLsProjectsJSON(t *testing.T) {
	initTest(t)
	stdoutBuf, _ := interceptCmdOutput(t)

	execCheck(t, newLsProjectsCmd(), exitCodeSuccess,
		"--format", "json", "--fields", "name,queue,priority,triggers", writeExampleConfig(t),
	)

	var res []map[string]any
	require.NoError(t, json.Unmarshal(stdoutBuf.Bytes(), &res))
	require.Len(t, res, 5)

	assert.Equal(t, map[string]any{
		"Name":     "website",
		"Queue":    "dotnet",
		"Priority": float64(1),
		"Triggers": []any{"intervalTrigger", "filterTrigger", "multiTrigger"},
	}, res[0])

	assert.Equal(t, map[string]any{
		"Name":     "assemblies",
		"Queue":    "assemblies",
		"Priority": nil,
		"Triggers": []any{},
	}, res[4])
}

func TestLsProjectsNameFilter(t *testing.T) {
	initTest(t)
	stdoutBuf, _ := interceptCmdOutput(t)

	execCheck(t, newLsProjectsCmd(), exitCodeSuccess, "-q", "--name", "*s", writeExampleConfig(t))

	assert.Equal(t, "docs\nassemblies\n", stdoutBuf.String())
}

func TestLsProjectsPlain(t *testing.T) {
	initTest(t)
	stdoutBuf, _ := interceptCmdOutput(t)

	execCheck(t, newLsProjectsCmd(), exitCodeSuccess,
		"-f", "name,sourcecontrol,tasks", writeExampleConfig(t),
	)

	lines := strings.Split(strings.TrimSpace(stdoutBuf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"Name", "Source", "Control", "Tasks"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"nightly", "svn", "nant"}, strings.Fields(lines[3]))
}

func TestLsProjectsInvalidPattern(t *testing.T) {
	initTest(t)

	execCheck(t, newLsProjectsCmd(), exitCodeError, "--name", "[", writeExampleConfig(t))
}

func TestLsQueuesCSV(t *testing.T) {
	initTest(t)
	stdoutBuf, _ := interceptCmdOutput(t)

	execCheck(t, newLsQueuesCmd(), exitCodeSuccess, "--format", "csv", writeExampleConfig(t))

	records, err := csv.NewReader(stdoutBuf).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Name", "Duplicates", "Lock Queues", "Projects", "Implicit"},
		{"dotnet", "ApplyForceBuildsReplace", "nightly", "website, docs", "false"},
		{"nightly", "", "", "nightly", "true"},
	}, records)
}

func TestLsQueuesBeforeVersion13(t *testing.T) {
	initTest(t)
	stdoutBuf, _ := interceptCmdOutput(t)

	path := writeConfig(t, `<!-- configurationVersion=1.2 -->
<cruisecontrol><queue name="q"/><project name="a" queue="q"/></cruisecontrol>`)

	execCheck(t, newLsQueuesCmd(), exitCodeSuccess, "-q", path)
	assert.Empty(t, stdoutBuf.String())
}

func TestLsTypes(t *testing.T) {
	initTest(t)

	t.Run("category", func(t *testing.T) {
		stdoutBuf, _ := interceptCmdOutput(t)

		execCheck(t, newLsTypesCmd(), exitCodeSuccess, "-q", string(cfg.CategorySourceControl))

		var expected []string
		for _, reg := range cfg.Types.Types(cfg.CategorySourceControl) {
			expected = append(expected, reg.Name)
		}

		assert.Equal(t, expected, strings.Fields(stdoutBuf.String()))
	})

	t.Run("newer types are hidden", func(t *testing.T) {
		s := settings.Default()
		s.ConfigVersion = "1.3"
		useSettings(t, s)

		stdoutBuf, _ := interceptCmdOutput(t)
		execCheck(t, newLsTypesCmd(), exitCodeSuccess, "-q", "--name", "git")
		assert.Empty(t, stdoutBuf.String())

		execCheck(t, newLsTypesCmd(), exitCodeSuccess, "-q", "--all", "--name", "git")
		assert.Equal(t, "git\n", stdoutBuf.String())
	})

	t.Run("json", func(t *testing.T) {
		stdoutBuf, _ := interceptCmdOutput(t)

		execCheck(t, newLsTypesCmd(), exitCodeSuccess, "--format", "json", "--name", "git")

		var res []map[string]any
		require.NoError(t, json.Unmarshal(stdoutBuf.Bytes(), &res))
		require.Len(t, res, 1)

		assert.Equal(t, "sourcecontrol", res[0]["Category"])
		assert.Equal(t, "1.4", res[0]["Since"])
		assert.Equal(t,
			[]any{"CCNetConfig.Core.Components.SourceControls.GitSourceControl"},
			res[0]["LegacyNames"],
		)
	})

	t.Run("unknown category", func(t *testing.T) {
		err := func() error {
			cmd := newLsTypesCmd()
			cmd.SetArgs([]string{"publisher"})
			cmd.SilenceUsage = true
			return cmd.Execute()
		}()
		assert.Error(t, err)
	})
}
