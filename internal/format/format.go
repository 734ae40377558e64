// Package format implements the three output formats of spec §4.8:
// lines, json, and tsv, plus the `$HEX[...]` escaping rule the lines
// format applies.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/Cynosureprime/Cencforce/internal/hexline"
)

// Op names an exploration-driver operation.
type Op string

const (
	OpDecode    Op = "decode"
	OpEncode    Op = "encode"
	OpTranscode Op = "transcode"
)

// Result is one emitted (operation, encoding[, target], strategy,
// output) tuple, ready for formatting.
type Result struct {
	Op       Op
	Encoding string
	Target   string // empty unless Op == OpTranscode
	Strategy string
	Output   []byte
}

// Formatter renders a stream of per-line result batches. Kind is chosen
// once at startup (spec §4.8 "chosen once at startup").
type Formatter interface {
	Begin(input []byte) error
	Emit(r Result) error
	End() error
}

// New builds a Formatter for the named kind ("lines", "json", "tsv").
func New(w io.Writer, kind string) Formatter {
	return NewContinuation(w, kind, false)
}

// NewContinuation builds a Formatter for kind whose header (tsv only) is
// considered already written when headerDone is true. The block-I/O
// pipeline uses this so each worker's per-job formatter instance doesn't
// re-print the one fixed header row (spec §4.8 "first row is the fixed
// header").
func NewContinuation(w io.Writer, kind string, headerDone bool) Formatter {
	switch kind {
	case "json":
		return &jsonFormatter{w: w}
	case "tsv":
		return &tsvFormatter{w: w, headerShown: headerDone}
	default:
		return &linesFormatter{w: w}
	}
}

func hexBytes(b []byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%x", b)
	return sb.String()
}

func wrapLines(b []byte) []byte {
	if hexline.NeedsWrap(b) {
		return hexline.Encode(b)
	}
	return b
}

type linesFormatter struct {
	w            io.Writer
	headerShown  bool
	pendingInput []byte
}

func (f *linesFormatter) Begin(input []byte) error {
	f.headerShown = false
	f.pendingInput = input
	return nil
}

func (f *linesFormatter) Emit(r Result) error {
	if !f.headerShown {
		if _, err := fmt.Fprintf(f.w, "[input: %s]\n", wrapLines(f.pendingInput)); err != nil {
			return err
		}
		f.headerShown = true
	}
	line := "  " + string(r.Op) + " " + r.Encoding
	if r.Target != "" {
		line += " -> " + r.Target
	}
	if r.Strategy != "" {
		line += " (" + r.Strategy + ")"
	}
	line += ": " + string(wrapLines(r.Output))
	_, err := fmt.Fprintln(f.w, line)
	return err
}

func (f *linesFormatter) End() error { return nil }

type tsvFormatter struct {
	w           io.Writer
	headerShown bool
	pendingIn   []byte
}

func (f *tsvFormatter) Begin(input []byte) error {
	if !f.headerShown {
		_, err := fmt.Fprintln(f.w, "input\tinput_hex\toperation\tencoding\ttarget\tstrategy\toutput\toutput_hex")
		if err != nil {
			return err
		}
		f.headerShown = true
	}
	f.pendingIn = input
	return nil
}

func (f *tsvFormatter) Emit(r Result) error {
	_, err := fmt.Fprintf(f.w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		f.pendingIn, hexBytes(f.pendingIn), r.Op, r.Encoding, r.Target, r.Strategy,
		r.Output, hexBytes(r.Output))
	return err
}

func (f *tsvFormatter) End() error { return nil }

type jsonFormatter struct {
	w         io.Writer
	pendingIn []byte
	results   []Result
}

func (f *jsonFormatter) Begin(input []byte) error {
	f.pendingIn = input
	f.results = f.results[:0]
	return nil
}

func (f *jsonFormatter) Emit(r Result) error {
	f.results = append(f.results, r)
	return nil
}

func (f *jsonFormatter) End() error {
	var sb strings.Builder
	sb.WriteString(`{"input":`)
	jsonString(&sb, f.pendingIn)
	sb.WriteString(`,"input_hex":"`)
	sb.WriteString(hexBytes(f.pendingIn))
	sb.WriteString(`","results":[`)
	for i, r := range f.results {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(`{"op":"`)
		sb.WriteString(string(r.Op))
		sb.WriteString(`","enc":"`)
		sb.WriteString(r.Encoding)
		sb.WriteByte('"')
		if r.Target != "" {
			sb.WriteString(`,"target":"`)
			sb.WriteString(r.Target)
			sb.WriteByte('"')
		}
		if r.Strategy != "" {
			sb.WriteString(`,"strategy":"`)
			sb.WriteString(r.Strategy)
			sb.WriteByte('"')
		}
		sb.WriteString(`,"output":`)
		jsonString(&sb, r.Output)
		sb.WriteByte('}')
	}
	sb.WriteString("]}\n")
	_, err := io.WriteString(f.w, sb.String())
	return err
}

// jsonString writes b as a JSON string literal, escaping control bytes
// as \uXXXX except \n, \r, \t which get their short escapes (spec §6
// "Output conventions").
func jsonString(sb *strings.Builder, b []byte) {
	sb.WriteByte('"')
	for _, c := range b {
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < 0x20 {
				fmt.Fprintf(sb, `\u%04x`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
}
