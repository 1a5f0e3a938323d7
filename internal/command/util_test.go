package command

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simplesurance/ccnetcfg/internal/command/term"
	"github.com/simplesurance/ccnetcfg/internal/log"
	"github.com/simplesurance/ccnetcfg/internal/settings"
	"github.com/simplesurance/ccnetcfg/internal/testutils/logwriter"
	"github.com/simplesurance/ccnetcfg/pkg/cfg"
)

var testdataDir string

func init() {
	wd, err := os.Getwd()
	if err != nil {
		panic(wd)
	}

	testdataDir = filepath.Join(wd, "testdata")
}

// interceptCmdOutput changes the stdout and stderr streams to that the
// commands write to the returned buffers, all output is additionally still
// logged via the test logger
func interceptCmdOutput(t *testing.T) (stdoutBuf, stderrBuf *bytes.Buffer) {
	var bufStdout bytes.Buffer
	var bufStderr bytes.Buffer

	oldStdout := stdout
	stdout = term.NewStream(logwriter.New(t, &bufStdout))
	oldStderr := stderr
	stderr = term.NewStream(logwriter.New(t, &bufStderr))

	t.Cleanup(func() {
		stdout = oldStdout
		stderr = oldStderr
	})

	return &bufStdout, &bufStderr
}

type exitInfo struct {
	Code int
}

func (e *exitInfo) String() string {
	return fmt.Sprintf("program terminated with exit code: %d", e.Code)
}

// initTest does the following:
// - changes the exitFunc to panic instead of calling os.Exit(),
// - changes stdout and stderr streams for the command to be redirect to the test logger,
// - resets the user settings to the defaults.
func initTest(t *testing.T) {
	t.Helper()

	term.DisableColors()

	oldExitFunc := exitFunc
	exitFunc = func(code int) {
		panic(&exitInfo{Code: code})
	}

	t.Cleanup(func() {
		exitFunc = oldExitFunc
	})

	useSettings(t, settings.Default())
	redirectOutputToLogger(t)
}

func redirectOutputToLogger(t *testing.T) {
	// TODO: when tests are run in parallel this will cause unexpected
	// results, global package vars are modified that would affect all
	// parallel running tests
	log.RedirectToTestingLog(t)

	oldStdout := stdout
	stdout = term.NewStream(logwriter.New(t, io.Discard))
	oldStderr := stderr
	stderr = term.NewStream(logwriter.New(t, io.Discard))

	t.Cleanup(func() {
		stdout = oldStdout
		stderr = oldStderr
	})
}

// useSettings replaces the user settings until the test finished.
func useSettings(t *testing.T, s *settings.Settings) {
	old := userSettings
	userSettings = s

	t.Cleanup(func() {
		userSettings = old
	})
}

// writeConfig writes content to a file in a temporary directory and returns
// its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), defaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// writeExampleConfig writes cfg.ExampleCruiseControl to a file in a
// temporary directory and returns its path.
func writeExampleConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), defaultConfigFile)
	require.NoError(t, cfg.ExampleCruiseControl().ToFile(path))

	return path
}

type cmdExecuter interface {
	SetArgs([]string)
	Execute() error
}

// execCheck runs cmd with args. If expectedExitCode is not 0, the command
// must terminate via exitFunc with the exit code. -1 accepts every exit
// code.
func execCheck(t *testing.T, cmd cmdExecuter, expectedExitCode int, args ...string) {
	t.Helper()

	defer func() {
		t.Helper()

		r := recover()
		if r == nil {
			return
		}

		if info, ok := r.(*exitInfo); ok {
			if expectedExitCode == -1 {
				return
			}

			if info.Code != expectedExitCode {
				t.Fatalf("command exited with code %d, expected: %d", info.Code, expectedExitCode)
			}

			return
		}

		panic(r)
	}()

	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	require.NoError(t, err)

	require.Equalf(
		t,
		0, expectedExitCode,
		"command did not panic, expecting it to panic and fail with exitCode: %d", expectedExitCode,
	)
}
