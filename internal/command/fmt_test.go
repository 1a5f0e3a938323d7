package command

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/ccnetcfg/internal/fs"
	"github.com/simplesurance/ccnetcfg/pkg/cfg"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

func copyLegacyConfig(t *testing.T) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(testdataDir, "legacy.config"))
	require.NoError(t, err)

	return writeConfig(t, string(content))
}

const legacyTriggerAttr = `ccnetconfigType="CCNetConfig.Core.Components.Triggers.IntervalTrigger, CCNetConfig.Core"`

func TestFmtToStdout(t *testing.T) {
	initTest(t)
	stdoutBuf, _ := interceptCmdOutput(t)

	path := copyLegacyConfig(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	execCheck(t, newFmtCmd(), exitCodeSuccess, "--indent", "4", path)

	out := stdoutBuf.String()
	assert.Contains(t, out, "<!-- configurationVersion=1.2 -->")
	assert.Contains(t, out, "\n        <triggers>\n            <intervalTrigger "+legacyTriggerAttr+" seconds=\"120\"/>\n")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "file must not be modified without --write")
}

func TestFmtConvertAndWrite(t *testing.T) {
	initTest(t)

	path := copyLegacyConfig(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	execCheck(t, newFmtCmd(), exitCodeSuccess, "-w", "--backup", "--config-version", "1.4", path)

	conf, err := cfg.FromFile(path, cfg.LoadOptStrict())
	require.NoError(t, err)
	assert.Equal(t, cfg.Version14, conf.Version)
	require.NotNil(t, conf.Project("tools"))
	exp := &cfg.IntervalTrigger{Seconds: ptr(120)}
	exp.SetLegacyType("CCNetConfig.Core.Components.Triggers.IntervalTrigger, CCNetConfig.Core")
	assert.Equal(t, exp, conf.Project("tools").Triggers[0])

	backup, err := os.ReadFile(path + fs.FileBackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, before, backup)
}

func TestFmtDropLegacyTypes(t *testing.T) {
	initTest(t)
	stdoutBuf, _ := interceptCmdOutput(t)

	path := copyLegacyConfig(t)

	execCheck(t, newFmtCmd(), exitCodeSuccess, "--drop-legacy-types", path)

	out := stdoutBuf.String()
	assert.Contains(t, out, `<intervalTrigger seconds="120"/>`)
	assert.NotContains(t, out, schema.LegacyTypeAttr)
}

func TestFmtDowngradeRemovesUnsupportedSettings(t *testing.T) {
	initTest(t)
	stdoutBuf, _ := interceptCmdOutput(t)

	path := writeConfig(t, `<cruisecontrol>
  <queue name="main"/>
  <project name="a" queue="main"><description>removed in 1.3</description></project>
</cruisecontrol>`)

	execCheck(t, newFmtCmd(), exitCodeSuccess, "--config-version", "1.3", path)

	out := stdoutBuf.String()
	assert.Contains(t, out, `<project name="a" queue="main"/>`)
	assert.NotContains(t, out, "description")
}

func TestFmtDowngradeFailsForUnsupportedTypes(t *testing.T) {
	initTest(t)

	path := writeConfig(t, `<cruisecontrol>
  <project name="a"><sourcecontrol type="git"><repository>https://git.example.com/a.git</repository></sourcecontrol></project>
</cruisecontrol>`)

	_, stderrBuf := interceptCmdOutput(t)
	execCheck(t, newFmtCmd(), exitCodeError, "--config-version", "1.3", path)
	assert.Contains(t, stderrBuf.String(), "git requires configuration version 1.4")
}

func TestFmtInvalidArguments(t *testing.T) {
	initTest(t)
	path := copyLegacyConfig(t)

	testcases := [][]string{
		{"--config-version", "one", path},
		{"--config-version", "2.0", path},
		{"--indent", "-1", path},
	}

	for _, args := range testcases {
		t.Run(strings.Join(args[:2], " "), func(t *testing.T) {
			execCheck(t, newFmtCmd(), exitCodeError, args...)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
