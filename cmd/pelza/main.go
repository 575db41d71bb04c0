// Command pelza compresses or decompresses a single PE executable
// image using the pelza codec, wrapped by cmd/pelza/pewrap.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/go-pelza/pelza"
	"github.com/go-pelza/pelza/cmd/pelza/pewrap"
)

const (
	wrappedExt = ".pelz"
	usageStr   = `Usage: pelza [OPTION]... FILE
Compress or decompress a PE executable image.

  -d, --decompress    force decompression (default: inferred from FILE's extension)
  -o, --output FILE   write to FILE instead of the default derived name
      --window N      adaptive model window size, 1..2048 (default 128)
  -v, --verbose       print packet-type statistics after compressing
  -q, --quiet         suppress the codec's own log line (errors and -v output still print)
  -h, --help          show this help
`
)

func usage(w *os.File) {
	fmt.Fprint(w, usageStr)
}

func main() {
	log.SetPrefix("pelza: ")
	log.SetFlags(0)

	pflag.Usage = func() { usage(os.Stderr); os.Exit(2) }
	var (
		help       = pflag.BoolP("help", "h", false, "")
		decompress = pflag.BoolP("decompress", "d", false, "")
		outFlag    = pflag.StringP("output", "o", "", "")
		window     = pflag.Int("window", pelza.DefaultWindowSize, "")
		verbose    = pflag.BoolP("verbose", "v", false, "")
		quiet      = pflag.BoolP("quiet", "q", false, "")
	)
	pflag.Parse()

	if *help {
		usage(os.Stdout)
		return
	}
	if pflag.NArg() != 1 {
		usage(os.Stderr)
		os.Exit(2)
	}
	inputPath := pflag.Arg(0)

	var logger *log.Logger
	if !*quiet {
		logger = log.Default()
	}

	forceDecompress := *decompress || strings.HasSuffix(inputPath, wrappedExt)
	outputPath := *outFlag
	if outputPath == "" {
		if forceDecompress {
			outputPath = strings.TrimSuffix(inputPath, wrappedExt)
			if outputPath == inputPath {
				outputPath = inputPath + ".unpelz"
			}
		} else {
			outputPath = inputPath + wrappedExt
		}
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		fail(err)
	}

	var result []byte
	if forceDecompress {
		result, err = pewrap.Unpack(input)
	} else {
		params := pelza.Params{WindowSize: *window, Logger: logger}
		var stats pelza.Stats
		result, stats, err = pewrap.Pack(input, params)
		if err == nil && *verbose {
			log.Printf("%d -> %d bytes (lit=%d match=%d shortrep=%d longrep=%d/%d/%d/%d)",
				stats.InputSize, stats.CompressedSize, stats.Literals, stats.Matches,
				stats.ShortReps, stats.LongRep0, stats.LongRep1, stats.LongRep2, stats.LongRep3)
		}
	}
	if err != nil {
		fail(err)
	}

	if err := os.WriteFile(outputPath, result, 0644); err != nil {
		fail(err)
	}
}

// fail reports a single diagnostic line and exits non-zero, per the
// "fail closed, no partial output" policy the core codec follows.
func fail(err error) {
	kind := "error"
	if ce, ok := err.(*pelza.CompressError); ok {
		kind = ce.Kind.String()
	}
	log.Printf("%s: %v", kind, err)
	os.Exit(1)
}
