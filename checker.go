package main

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/adamlsd/multdef/pkg/diag"
	"github.com/adamlsd/multdef/pkg/elfscan"
	"github.com/adamlsd/multdef/pkg/ld"
	"github.com/adamlsd/multdef/pkg/scan"
)

// Checker ties the scan, probe and parse steps together for one run.
type Checker struct {
	suffix    string
	directELF bool
	linker    *ld.Linker
}

func NewChecker(linker *ld.Linker, suffix string, directELF bool) *Checker {
	return &Checker{
		suffix:    suffix,
		directELF: directELF,
		linker:    linker,
	}
}

// Init probes the linker version. An old or unrecognized linker may
// format its diagnostics differently, which only weakens detection, so
// this warns rather than fails.
func (c *Checker) Init() {
	version, err := c.linker.Version()
	if err != nil {
		log.Warn().Err(err).Msg("Could not determine linker version")
		return
	}

	log.Debug().Msg(fmt.Sprintf("Detected linker version: %s", version))

	if version.LessThan(ld.MinVersion) {
		log.Warn().Msg(fmt.Sprintf("Linker version %s is older than %s; duplicate-definition diagnostics may not be recognized", version, ld.MinVersion))
	}
}

// Check runs the full pipeline and returns the sorted duplicate symbol
// tokens found under buildDir.
func (c *Checker) Check(buildDir string) ([]string, error) {
	files, err := scan.ObjectFiles(buildDir, c.suffix)
	if err != nil {
		return nil, err
	}

	stderr, err := c.linker.Probe(files)
	if err != nil {
		return nil, err
	}

	symbols := diag.Symbols(stderr)

	if c.directELF {
		extra, err := elfscan.Duplicates(files)
		if err != nil {
			return nil, err
		}
		symbols = mergeSorted(symbols, extra)
	}

	return symbols, nil
}

func mergeSorted(a []string, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	merged := make([]string, 0, len(a)+len(b))

	for _, s := range append(a, b...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		merged = append(merged, s)
	}

	sort.Strings(merged)

	return merged
}
