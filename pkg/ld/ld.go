package ld

import (
	"bytes"
	"io"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/go-errors/errors"
	"github.com/rs/zerolog/log"
)

// MinVersion is the oldest GNU binutils linker whose duplicate-definition
// diagnostics this tool is known to understand.
var MinVersion = semver.MustParse("2.30")

// Runner executes the linker binary. A non-zero exit is not an error as
// long as the process could be started; only a launch failure (binary not
// found, not executable) is reported, so tests can simulate a missing
// linker without touching the real one.
type Runner interface {
	// CaptureStderr runs the binary with args, discarding stdout.
	CaptureStderr(args ...string) (string, error)
	// CaptureStdout runs the binary with args, discarding stderr.
	CaptureStdout(args ...string) (string, error)
}

type Linker struct {
	bin    string
	runner Runner
}

func New(bin string) *Linker {
	return &Linker{
		bin:    bin,
		runner: &execRunner{bin: bin},
	}
}

// NewWithRunner substitutes the subprocess layer, for tests.
func NewWithRunner(bin string, runner Runner) *Linker {
	return &Linker{
		bin:    bin,
		runner: runner,
	}
}

// Probe link-probes files in shared-output mode and returns the linker's
// stderr text. No output artifact is kept and the link is allowed to
// fail; the diagnostics are the whole point of the call.
func (l *Linker) Probe(files []string) (string, error) {
	args := append([]string{"--shared"}, files...)

	log.Debug().Str("linker", l.bin).Int("inputs", len(files)).Msg("Invoking linker probe")

	return l.runner.CaptureStderr(args...)
}

// Version runs "<bin> --version" and parses the version token off the
// first output line, e.g. "GNU ld (GNU Binutils for Ubuntu) 2.38".
func (l *Linker) Version() (*semver.Version, error) {
	out, err := l.runner.CaptureStdout("--version")
	if err != nil {
		return nil, err
	}

	return ParseVersion(out)
}

// ParseVersion extracts a semver from the last whitespace-separated field
// of the first line of linker --version output.
func ParseVersion(out string) (*semver.Version, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.Errorf("no version line in linker output")
	}

	version, err := semver.NewVersion(fields[len(fields)-1])
	if err != nil {
		return nil, errors.Errorf("cannot parse linker version from %q: %v", line, err)
	}

	return version, nil
}

type execRunner struct {
	bin string
}

func (r *execRunner) CaptureStderr(args ...string) (string, error) {
	var stderr bytes.Buffer

	cmd := exec.Command(r.bin, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	if err := r.run(cmd); err != nil {
		return "", err
	}

	return stderr.String(), nil
}

func (r *execRunner) CaptureStdout(args ...string) (string, error) {
	var stdout bytes.Buffer

	cmd := exec.Command(r.bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	if err := r.run(cmd); err != nil {
		return "", err
	}

	return stdout.String(), nil
}

func (r *execRunner) run(cmd *exec.Cmd) error {
	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The process ran; whatever it wrote is what we came for.
		return nil
	}

	return errors.WrapPrefix(err, "cannot run "+r.bin, 0)
}
