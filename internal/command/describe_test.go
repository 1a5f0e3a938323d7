package command

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribePlain(t *testing.T) {
	initTest(t)
	stdoutBuf, _ := interceptCmdOutput(t)

	execCheck(t, newDescribeCmd(), exitCodeSuccess, "git")

	out := stdoutBuf.String()
	assert.Contains(t, out, "Category:    sourcecontrol\n")
	assert.Contains(t, out, "Since:       1.4\n")
	assert.Contains(t, out, "Legacy Name: CCNetConfig.Core.Components.SourceControls.GitSourceControl\n")
	assert.Regexp(t, `(?m)^executable\s+element\s+no\s+git\s*$`, out)
}

func TestDescribeJSON(t *testing.T) {
	initTest(t)
	stdoutBuf, _ := interceptCmdOutput(t)

	execCheck(t, newDescribeCmd(), exitCodeSuccess,
		"--format", "json", "--category", "sourcecontrol", "--fields", "name,required,node", "svn",
	)

	var res []map[string]any
	require.NoError(t, json.Unmarshal(stdoutBuf.Bytes(), &res))
	require.NotEmpty(t, res)

	assert.Equal(t, map[string]any{
		"Name":     "trunkUrl",
		"Required": true,
		"Node":     "element",
	}, res[0])
}

func TestDescribeUnknownType(t *testing.T) {
	initTest(t)

	execCheck(t, newDescribeCmd(), exitCodeNotExist, "powershell")
	execCheck(t, newDescribeCmd(), exitCodeNotExist, "--category", "trigger", "svn")
}
