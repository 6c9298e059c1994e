package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/adamlsd/multdef/pkg/ld"
)

var linkerBin = flag.String("ld", "ld", "Linker binary used for the shared-output probe")
var suffix = flag.String("ext", ".os", "Object file suffix to scan for")
var directELF = flag.Bool("elf", false, "Cross-check by reading the object files' symbol tables directly")

// development
var debug = flag.Bool("debug", false, "Enable debug mode")

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Caller().Logger()

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Info().Msg("Checking for multiply defined symbols...")

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] build_dir\n", os.Args[0])
		return 1
	}

	buildDir := flag.Arg(0)
	info, err := os.Stat(buildDir)
	if err != nil || !info.IsDir() {
		log.Error().Str("build-dir", buildDir).Msg("Not a valid directory")
		return 1
	}

	checker := NewChecker(ld.New(*linkerBin), *suffix, *directELF)
	checker.Init()

	symbols, err := checker.Check(buildDir)
	if err != nil {
		LogError(err)
		return 1
	}

	if len(symbols) != 0 {
		fmt.Println("error: found the following multiply defined symbols")
		for _, symbol := range symbols {
			fmt.Println(symbol)
		}
		return 1
	}

	fmt.Println("No multiply defined symbols found.")
	return 0
}
