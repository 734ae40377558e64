// Command cencforce is a text-encoding forensics engine: for each input
// line it exhaustively searches the decode / encode / transcode space
// across a 104-entry encoding registry and the named error strategies,
// emitting every surviving candidate through a structured formatter.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/Cynosureprime/Cencforce/internal/explore"
	"github.com/Cynosureprime/Cencforce/internal/pipeline"
	"github.com/Cynosureprime/Cencforce/internal/registry"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("cencforce", pflag.ContinueOnError)
	fs.SortFlags = false

	inputFile := fs.StringP("file", "f", "", "read input lines from FILE instead of stdin")
	mode := fs.StringP("mode", "m", "decode", "mode: decode, encode, both, transcode, all")
	include := fs.StringArrayP("encoding", "e", nil, "include only this encoding (repeatable, name or alias)")
	exclude := fs.StringArrayP("exclude", "x", nil, "exclude this encoding (repeatable, name or alias)")
	workers := fs.IntP("jobs", "j", 4, "worker count (clamped 1..256)")
	format := fs.StringP("format", "F", "lines", "output format: lines, json, tsv")
	raw := fs.Bool("raw", false, "disable $HEX[] input parsing (lines-format output is still $HEX[]-wrapped)")
	unique := fs.Bool("unique", true, "deduplicate results per line")
	noUnique := fs.Bool("no-unique", false, "disable per-line deduplication")
	noErrors := fs.Bool("no-errors", false, "suppress results whose conversion produced errors")
	listEncodings := fs.BoolP("list-encodings", "l", false, "print the registered encoding names and aliases, then exit")
	aliasFile := fs.String("alias-file", "", "YAML file of additional encoding aliases to register")
	help := fs.BoolP("help", "h", false, "show this help text")
	showVersion := fs.BoolP("version", "V", false, "show version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: cencforce [options] [inputs...]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *help {
		fs.Usage()
		return 0
	}
	if *showVersion {
		fmt.Println("cencforce " + version)
		return 0
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	registry.Build()

	if *aliasFile != "" {
		if err := loadAliases(*aliasFile); err != nil {
			logger.Error("failed to load alias file", "path", *aliasFile, "err", err)
			return 1
		}
	}

	if *listEncodings {
		printEncodings(os.Stdout)
		return 0
	}

	exploreMode, err := parseMode(*mode)
	if err != nil {
		logger.Error(err.Error())
		return 1
	}

	opts := pipeline.Options{
		Mode: exploreMode,
		Explore: explore.Options{
			Include:  toSet(*include),
			Exclude:  toSet(*exclude),
			NoErrors: *noErrors,
			Unique:   *unique && !*noUnique,
		},
		Workers: *workers,
	}

	positional := fs.Args()

	if len(positional) > 0 {
		var in strings.Builder
		for _, p := range positional {
			in.WriteString(p)
			in.WriteByte('\n')
		}
		if err := pipeline.Run(strings.NewReader(in.String()), os.Stdout, *format, opts, *raw); err != nil {
			logger.Error("processing failed", "err", err)
			return 1
		}
		return 0
	}

	r := os.Stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			logger.Error("failed to open input file", "path", *inputFile, "err", err)
			return 1
		}
		defer f.Close()
		if err := pipeline.Run(f, os.Stdout, *format, opts, *raw); err != nil {
			logger.Error("processing failed", "err", err)
			return 1
		}
		return 0
	}

	if err := pipeline.Run(r, os.Stdout, *format, opts, *raw); err != nil {
		logger.Error("processing failed", "err", err)
		return 1
	}
	return 0
}

func parseMode(s string) (explore.Mode, error) {
	switch strings.ToLower(s) {
	case "decode":
		return explore.ModeDecode, nil
	case "encode":
		return explore.ModeEncode, nil
	case "both":
		return explore.ModeBoth, nil
	case "transcode":
		return explore.ModeTranscode, nil
	case "all":
		return explore.ModeAll, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want decode, encode, both, transcode, all)", s)
	}
}

func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(strings.TrimSpace(n))] = true
	}
	return set
}

func printEncodings(w *os.File) {
	for _, d := range registry.ListSorted() {
		fmt.Fprintf(w, "%s", d.Name)
		if len(d.Aliases) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(d.Aliases, ", "))
		}
		if !d.Corroborated {
			fmt.Fprint(w, " [unverified]")
		}
		fmt.Fprintln(w)
	}
}

// aliasFileEntry is one encoding's additional aliases, keyed by its
// canonical registered name.
type aliasFileEntry struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

func loadAliases(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var entries []aliasFileEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return err
	}
	for _, e := range entries {
		d, ok := registry.Lookup(e.Name)
		if !ok {
			return fmt.Errorf("alias file: unknown encoding %q", e.Name)
		}
		d.Aliases = append(d.Aliases, e.Aliases...)
		registry.Register(d)
	}
	return nil
}
