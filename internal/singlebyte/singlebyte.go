// Package singlebyte implements spec §4.3: the generic single-byte codec
// that every legacy 8-bit encoding (ASCII, ISO-8859-*, Windows-125x, the
// DOS/DOS-DOC pages, KOI8, Mac*, EBCDIC, and the remaining miscellaneous
// pages) is built from, parameterised only by its 256-entry forward
// table.
package singlebyte

import (
	"sort"

	"github.com/Cynosureprime/Cencforce/internal/strategy"
	"github.com/Cynosureprime/Cencforce/internal/tables"
	"github.com/Cynosureprime/Cencforce/internal/utf8x"
)

// ReverseEntry is one (code point, byte) pair of a reverse map, per spec
// §3 "Reverse map entry". The slice it lives in is strictly sorted by
// code point with duplicates collapsed to the highest byte.
type ReverseEntry struct {
	CP   rune
	Byte byte
}

// ReverseMap is the sorted-array-plus-binary-search reverse map spec
// §4.3/§9 calls for over a hash map: it is small (<=256 entries), and a
// sorted array preserves the deterministic "highest byte wins" rule for
// duplicate code points that hash-map iteration order would not.
type ReverseMap []ReverseEntry

// BuildReverseMap scans a 256-entry forward table once at startup,
// keeping only defined entries, sorting by code point, and folding
// duplicate code points to the entry with the highest byte value (spec
// §3 "stable last wins semantics").
func BuildReverseMap(forward *[256]rune) ReverseMap {
	rm := make(ReverseMap, 0, 256)
	for b := 0; b < 256; b++ {
		cp := forward[b]
		if cp == tables.Undefined || cp == 0xFFFF {
			continue
		}
		rm = append(rm, ReverseEntry{CP: cp, Byte: byte(b)})
	}
	sort.Slice(rm, func(i, j int) bool { return rm[i].CP < rm[j].CP })

	out := rm[:0]
	for _, e := range rm {
		if n := len(out); n > 0 && out[n-1].CP == e.CP {
			if e.Byte > out[n-1].Byte {
				out[n-1].Byte = e.Byte
			}
			continue
		}
		out = append(out, e)
	}
	return out
}

// Lookup binary-searches the reverse map for cp, returning its encoded
// byte and whether it was found. Exported standalone (spec §3
// "Supplemented features": independently testable right-inverse).
func (rm ReverseMap) Lookup(cp rune) (byte, bool) {
	lo, hi := 0, len(rm)
	for lo < hi {
		mid := (lo + hi) / 2
		if rm[mid].CP < cp {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(rm) && rm[lo].CP == cp {
		return rm[lo].Byte, true
	}
	return 0, false
}

// Codec is a single-byte encoding: a 256-entry forward table and its
// reverse map, built once at construction time (spec §3 "Lifetime:
// allocated once at startup").
type Codec struct {
	Forward *[256]rune
	Reverse ReverseMap
}

// New builds a Codec from a forward table, constructing its reverse map.
func New(forward *[256]rune) *Codec {
	return &Codec{Forward: forward, Reverse: BuildReverseMap(forward)}
}

// Decode converts src (bytes in this encoding) to UTF-8, applying ds to
// any byte whose forward-table entry is undefined. hadErrors is true iff
// at least one byte required the strategy. A strict-strategy failure
// returns ok=false immediately (spec §4.6 "fatal sentinel").
func (c *Codec) Decode(dst []byte, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for _, b := range src {
		cp := c.Forward[b]
		if cp != tables.Undefined && cp != 0xFFFF {
			out = utf8x.Encode(out, cp)
			continue
		}
		hadErrors = true
		repl, fatal := ds.Apply(b)
		if fatal {
			return dst, true, false
		}
		out = append(out, repl...)
	}
	return out, hadErrors, true
}

// Encode converts src (valid UTF-8) to this encoding's bytes, applying es
// to any scalar value with no reverse-map entry.
func (c *Codec) Encode(dst []byte, src []byte, es strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if n == 0 {
			break
		}
		chunk := src[:n]
		src = src[n:]

		if b, found := c.Reverse.Lookup(cp); found {
			out = append(out, b)
			continue
		}
		hadErrors = true
		repl, fatal := es.Apply(cp, chunk)
		if fatal {
			return dst, true, false
		}
		out = append(out, repl...)
	}
	return out, hadErrors, true
}
