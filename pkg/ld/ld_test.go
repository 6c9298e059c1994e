package ld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stderr     string
	stdout     string
	err        error
	stderrArgs []string
	stdoutArgs []string
}

func (f *fakeRunner) CaptureStderr(args ...string) (string, error) {
	f.stderrArgs = args
	return f.stderr, f.err
}

func (f *fakeRunner) CaptureStdout(args ...string) (string, error) {
	f.stdoutArgs = args
	return f.stdout, f.err
}

func TestProbePassesSharedFlagAndFiles(t *testing.T) {
	runner := &fakeRunner{stderr: "ld: multiple definition of foo\n"}
	linker := NewWithRunner("ld", runner)

	out, err := linker.Probe([]string{"build/a.os", "build/b.os"})
	require.NoError(t, err)
	assert.Equal(t, "ld: multiple definition of foo\n", out)
	assert.Equal(t, []string{"--shared", "build/a.os", "build/b.os"}, runner.stderrArgs)
}

func TestProbeEmptyFileList(t *testing.T) {
	runner := &fakeRunner{}
	linker := NewWithRunner("ld", runner)

	_, err := linker.Probe(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"--shared"}, runner.stderrArgs)
}

func TestProbeLaunchFailure(t *testing.T) {
	runner := &fakeRunner{err: assert.AnError}
	linker := NewWithRunner("ld", runner)

	_, err := linker.Probe([]string{"a.os"})
	assert.Error(t, err)
}

func TestVersionQueriesLinker(t *testing.T) {
	runner := &fakeRunner{stdout: "GNU ld (GNU Binutils for Ubuntu) 2.38\nCopyright (C) 2022 Free Software Foundation, Inc.\n"}
	linker := NewWithRunner("ld", runner)

	version, err := linker.Version()
	require.NoError(t, err)
	assert.Equal(t, []string{"--version"}, runner.stdoutArgs)
	assert.Equal(t, int64(2), version.Major())
	assert.Equal(t, int64(38), version.Minor())
}

func TestParseVersion(t *testing.T) {
	version, err := ParseVersion("GNU ld (GNU Binutils) 2.41\n")
	require.NoError(t, err)
	assert.False(t, version.LessThan(MinVersion))

	version, err = ParseVersion("GNU ld version 2.25\n")
	require.NoError(t, err)
	assert.True(t, version.LessThan(MinVersion))

	_, err = ParseVersion("")
	assert.Error(t, err)

	_, err = ParseVersion("not a version line at all\n")
	assert.Error(t, err)
}

func TestExecRunnerCapturesStderrOnNonZeroExit(t *testing.T) {
	runner := &execRunner{bin: "/bin/sh"}

	out, err := runner.CaptureStderr("-c", "echo oops >&2; exit 1")
	require.NoError(t, err)
	assert.Equal(t, "oops\n", out)
}

func TestExecRunnerLaunchFailure(t *testing.T) {
	runner := &execRunner{bin: "/no/such/linker"}

	_, err := runner.CaptureStderr("--shared")
	assert.Error(t, err)
}
