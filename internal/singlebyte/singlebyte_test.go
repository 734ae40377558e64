package singlebyte_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/Cynosureprime/Cencforce/internal/singlebyte"
	"github.com/Cynosureprime/Cencforce/internal/strategy"
	"github.com/Cynosureprime/Cencforce/internal/tables"
)

// allSingleByteTables lists every forward table the registry wires up, so
// the right-inverse property below runs against the real data rather than
// a synthetic table.
var allSingleByteTables = []*[256]rune{
	tables.ASCII, tables.Latin1, tables.Windows1252, tables.KOI8R,
	tables.MacRoman, tables.EBCDIC037, tables.VISCII,
}

// TestReverseMapRightInverse is spec §8's quantified invariant: for every
// defined byte b in a forward table, looking up forward[b] in the reverse
// map returns some byte b' with forward[b'] == forward[b].
func TestReverseMapRightInverse(t *testing.T) {
	for _, table := range allSingleByteTables {
		table := table
		rapid.Check(t, func(t *rapid.T) {
			b := byte(rapid.IntRange(0, 255).Draw(t, "byte"))
			cp := table[b]
			if cp == tables.Undefined {
				return
			}
			rm := singlebyte.BuildReverseMap(table)
			got, ok := rm.Lookup(cp)
			if !ok {
				t.Fatalf("reverse map has no entry for code point %#x (from byte 0x%02X)", cp, b)
			}
			if table[got] != cp {
				t.Fatalf("forward[%#x]=%#x, but reverse map sent %#x back to byte 0x%02X whose forward value is %#x", b, cp, cp, got, table[got])
			}
		})
	}
}

func TestDecodeASCIIRoundTrip(t *testing.T) {
	c := singlebyte.New(tables.ASCII)
	out, hadErrors, ok := c.Decode(nil, []byte("Hello, World!"), strategy.DecodeStrict)
	if !ok || hadErrors {
		t.Fatalf("decode ascii: ok=%v hadErrors=%v", ok, hadErrors)
	}
	if string(out) != "Hello, World!" {
		t.Fatalf("decode ascii = %q", out)
	}
}

func TestDecodeASCIIStrictFatalOnHighBit(t *testing.T) {
	c := singlebyte.New(tables.ASCII)
	_, _, ok := c.Decode(nil, []byte{0xFF}, strategy.DecodeStrict)
	if ok {
		t.Fatalf("expected strict decode to fail on undefined byte 0xFF")
	}
}

func TestDecodeASCIIReplacementOnHighBit(t *testing.T) {
	c := singlebyte.New(tables.ASCII)
	out, hadErrors, ok := c.Decode(nil, []byte{'A', 0xFF, 'B'}, strategy.DecodeReplacementQuestion)
	if !ok || !hadErrors {
		t.Fatalf("decode: ok=%v hadErrors=%v", ok, hadErrors)
	}
	if string(out) != "A?B" {
		t.Fatalf("decode = %q, want A?B", out)
	}
}

func TestEncodeASCIIRoundTrip(t *testing.T) {
	c := singlebyte.New(tables.ASCII)
	out, hadErrors, ok := c.Encode(nil, []byte("plain text"), strategy.EncodeStrict)
	if !ok || hadErrors || string(out) != "plain text" {
		t.Fatalf("encode ascii: out=%q hadErrors=%v ok=%v", out, hadErrors, ok)
	}
}

func TestEncodeASCIIStrictFatalOnNonASCII(t *testing.T) {
	c := singlebyte.New(tables.ASCII)
	_, _, ok := c.Encode(nil, []byte("café"), strategy.EncodeStrict)
	if ok {
		t.Fatalf("expected strict encode to fail on non-ASCII scalar value")
	}
}

func TestEncodeASCIIReplacementOnNonASCII(t *testing.T) {
	c := singlebyte.New(tables.ASCII)
	out, hadErrors, ok := c.Encode(nil, []byte("café"), strategy.EncodeReplacementQuestion)
	if !ok || !hadErrors || string(out) != "caf?" {
		t.Fatalf("encode = %q hadErrors=%v ok=%v, want caf?", out, hadErrors, ok)
	}
}

func TestReverseMapLastWins(t *testing.T) {
	var forward [256]rune
	for i := range forward {
		forward[i] = tables.Undefined
	}
	forward[0x41] = 'x'
	forward[0x5A] = 'x' // duplicate code point, higher byte should win
	rm := singlebyte.BuildReverseMap(&forward)
	b, ok := rm.Lookup('x')
	if !ok || b != 0x5A {
		t.Fatalf("Lookup('x') = (0x%02X, %v), want (0x5A, true)", b, ok)
	}
}

func TestReverseMapSortedNoDuplicateCodePoints(t *testing.T) {
	rm := singlebyte.BuildReverseMap(tables.Windows1252)
	for i := 1; i < len(rm); i++ {
		if rm[i-1].CP >= rm[i].CP {
			t.Fatalf("reverse map not strictly increasing at %d: %v >= %v", i, rm[i-1].CP, rm[i].CP)
		}
	}
}
