// Package strategy implements the decode- and encode-error strategies of
// spec §4.2/§6: pure, total functions from an offending input unit to a
// replacement byte sequence, or to the "fatal" verdict for strict.
//
// Matching the teacher's registry-of-named-units pattern (pkg/checks:
// Register/Lookup/ListSorted over a stable interface), each strategy here
// is a small value type with a stable Name() queried by the output
// formatter, and both strategy families expose an AllDecode()/AllEncode() slice iterated in
// enum-declaration order by the exploration driver (spec §4.7 "strategies
// in enum order").
package strategy

import (
	"fmt"
	"strconv"

	"github.com/Cynosureprime/Cencforce/internal/tables"
	"github.com/Cynosureprime/Cencforce/internal/utf8x"
)

// Decode is one of the eighteen named decode-error strategies.
type Decode int

const (
	DecodeStrict Decode = iota
	DecodeReplacementFFFD
	DecodeReplacementQuestion
	DecodeReplacementSub
	DecodeSkip
	DecodeLatin1Fallback
	DecodeCP1252Fallback
	DecodeHexEscapeX
	DecodeHexEscapePercent
	DecodeHexEscapeAngle
	DecodeHexEscapeSub
	DecodeHexEscapeBracket
	DecodeOctalEscape
	DecodeCaretNotation
	DecodeUnicodeEscapeU
	DecodeByteValueDecimal
	DecodeByteValueBackslashDecimal
	DecodeDoublePercent
	decodeCount
)

var decodeNames = [decodeCount]string{
	"strict", "replacement_fffd", "replacement_question", "replacement_sub",
	"skip", "latin1_fallback", "cp1252_fallback", "hex_escape_x",
	"hex_escape_percent", "hex_escape_angle", "hex_escape_sub",
	"hex_escape_bracket", "octal_escape", "caret_notation", "unicode_escape_u",
	"byte_value_decimal", "byte_value_backslash_decimal", "double_percent",
}

// Name returns the stable strategy name used in output.
func (d Decode) Name() string {
	if d < 0 || int(d) >= len(decodeNames) {
		return "unknown"
	}
	return decodeNames[d]
}

// AllDecode returns every decode strategy in enum-declaration order.
func AllDecode() []Decode {
	out := make([]Decode, decodeCount)
	for i := range out {
		out[i] = Decode(i)
	}
	return out
}

// LookupDecode resolves a strategy by its stable name.
func LookupDecode(name string) (Decode, bool) {
	for i, n := range decodeNames {
		if n == name {
			return Decode(i), true
		}
	}
	return 0, false
}

func hexDigits(b byte) (hi, lo byte) {
	const digits = "0123456789abcdef"
	return digits[b>>4], digits[b&0xF]
}

// Apply handles a single offending byte: the contract for single-byte
// codecs, UTF-8 decode failures, and CJK lead/trail-byte failures.
// It returns the bytes to emit and whether the strategy is fatal (only
// DecodeStrict is).
func (d Decode) Apply(b byte) (out []byte, fatal bool) {
	switch d {
	case DecodeStrict:
		return nil, true
	case DecodeReplacementFFFD:
		return utf8x.Encode(nil, utf8x.RuneError), false
	case DecodeReplacementQuestion:
		return []byte{'?'}, false
	case DecodeReplacementSub:
		return []byte{0x1A}, false
	case DecodeSkip:
		return nil, false
	case DecodeLatin1Fallback:
		return utf8x.Encode(nil, rune(b)), false
	case DecodeCP1252Fallback:
		cp := tables.Windows1252[b]
		if cp == tables.Undefined {
			return []byte{'?'}, false
		}
		return utf8x.Encode(nil, cp), false
	case DecodeHexEscapeX:
		hi, lo := hexDigits(b)
		return []byte{'\\', 'x', hi, lo}, false
	case DecodeHexEscapePercent:
		hi, lo := hexDigits(b)
		return []byte{'%', hi, lo}, false
	case DecodeHexEscapeAngle:
		hi, lo := hexDigits(b)
		return []byte{'<', hi, lo, '>'}, false
	case DecodeHexEscapeSub:
		hi, lo := hexDigits(b)
		return []byte{0x1A, hi, lo}, false
	case DecodeHexEscapeBracket:
		hi, lo := hexDigits(b)
		return []byte{'[', '0', 'x', hi, lo, ']'}, false
	case DecodeOctalEscape:
		return []byte(fmt.Sprintf("\\%03o", b)), false
	case DecodeCaretNotation:
		return []byte{'^', (b & 0x1F) | 0x40}, false
	case DecodeUnicodeEscapeU:
		return []byte(fmt.Sprintf("\\u%04X", b)), false
	case DecodeByteValueDecimal:
		return []byte(strconv.Itoa(int(b))), false
	case DecodeByteValueBackslashDecimal:
		return []byte(fmt.Sprintf("\\%03d", b)), false
	case DecodeDoublePercent:
		hi, lo := hexDigits(b)
		return []byte{'%', '%', hi, lo}, false
	default:
		return utf8x.Encode(nil, utf8x.RuneError), false
	}
}

// ApplyUnit16 handles a UTF-16 offending code unit (a lone surrogate or a
// trailing single byte reported as its numeric value). Strategies whose
// byte-oriented output makes no sense at 16-bit width fall back to
// replacement_fffd, per spec §4.2.
func (d Decode) ApplyUnit16(u uint16) (out []byte, fatal bool) {
	switch d {
	case DecodeStrict:
		return nil, true
	case DecodeReplacementQuestion:
		return []byte{'?'}, false
	case DecodeReplacementSub:
		return []byte{0x1A}, false
	case DecodeSkip:
		return nil, false
	case DecodeHexEscapeX:
		return []byte(fmt.Sprintf("\\x%04x", u)), false
	case DecodeUnicodeEscapeU:
		return []byte(fmt.Sprintf("\\u%04X", u)), false
	case DecodeByteValueDecimal:
		return []byte(strconv.Itoa(int(u))), false
	default:
		return utf8x.Encode(nil, utf8x.RuneError), false
	}
}

// ApplyUnit32 handles a UTF-32 offending code point value (out of range
// or an encoded surrogate). Same "wide fallback" rule as ApplyUnit16.
func (d Decode) ApplyUnit32(u uint32) (out []byte, fatal bool) {
	switch d {
	case DecodeStrict:
		return nil, true
	case DecodeReplacementQuestion:
		return []byte{'?'}, false
	case DecodeReplacementSub:
		return []byte{0x1A}, false
	case DecodeSkip:
		return nil, false
	case DecodeHexEscapeX:
		return []byte(fmt.Sprintf("\\x%08x", u)), false
	case DecodeUnicodeEscapeU:
		return []byte(fmt.Sprintf("\\U%08X", u)), false
	case DecodeByteValueDecimal:
		return []byte(strconv.FormatUint(uint64(u), 10)), false
	default:
		return utf8x.Encode(nil, utf8x.RuneError), false
	}
}
