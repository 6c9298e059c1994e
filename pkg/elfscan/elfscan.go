// Package elfscan detects multiply defined globals by reading the object
// files' symbol tables directly, without involving a linker. It serves as
// a cross-check for the linker-stderr path.
package elfscan

import (
	"debug/elf"
	"sort"
	"strings"

	"github.com/go-errors/errors"
	"github.com/rs/zerolog/log"
)

// Matches the entry-point exclusion applied to linker diagnostics:
// substring, not exact.
const entryPointName = "main"

// Duplicates opens each file and collects the global symbol names it
// defines. Names defined by more than one file are returned sorted, with
// entry-point names excluded. Inputs that are not valid ELF are skipped.
func Duplicates(files []string) ([]string, error) {
	definers := make(map[string]int)

	for _, path := range files {
		f, err := elf.Open(path)
		if err != nil {
			var formatErr *elf.FormatError
			if errors.As(err, &formatErr) {
				log.Debug().Str("file", path).Msg("Skipping non-ELF input")
				continue
			}
			return nil, errors.Wrap(err, 0)
		}

		names, err := definedGlobals(f)
		f.Close()
		if err != nil {
			return nil, errors.WrapPrefix(err, path, 0)
		}

		for _, name := range names {
			definers[name]++
		}
	}

	var symbols []string
	for name, count := range definers {
		if count < 2 || strings.Contains(name, entryPointName) {
			continue
		}
		symbols = append(symbols, name)
	}

	sort.Strings(symbols)

	return symbols, nil
}

// definedGlobals returns the distinct names a single object actually
// defines: global binding, named, and bound to a real section. Undefined
// references, absolute and common symbols do not count as definitions.
func definedGlobals(f *elf.File) ([]string, error) {
	syms, err := f.Symbols()
	if err != nil {
		if errors.Is(err, elf.ErrNoSymbols) {
			return nil, nil
		}
		return nil, err
	}

	seen := make(map[string]struct{})
	var names []string

	for _, sym := range syms {
		if elf.ST_BIND(sym.Info) != elf.STB_GLOBAL {
			continue
		}
		if sym.Name == "" || sym.Section == elf.SHN_UNDEF || sym.Section >= elf.SHN_LORESERVE {
			continue
		}
		if _, ok := seen[sym.Name]; ok {
			continue
		}
		seen[sym.Name] = struct{}{}
		names = append(names, sym.Name)
	}

	return names, nil
}
