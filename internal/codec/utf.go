// Package codec implements the UTF-family and CJK codecs of spec §4.4/§4.5,
// plus the tagged-union dispatcher of §4.6 that the registry hands off to.
package codec

import (
	"unicode/utf16"

	"github.com/Cynosureprime/Cencforce/internal/strategy"
	"github.com/Cynosureprime/Cencforce/internal/utf8x"
)

// Endian selects byte order for the wide UTF codecs.
type Endian int

const (
	BigEndian Endian = iota
	LittleEndian
)

func put16(out []byte, u uint16, end Endian) []byte {
	if end == BigEndian {
		return append(out, byte(u>>8), byte(u))
	}
	return append(out, byte(u), byte(u>>8))
}

func get16(b []byte, end Endian) uint16 {
	if end == BigEndian {
		return uint16(b[0])<<8 | uint16(b[1])
	}
	return uint16(b[1])<<8 | uint16(b[0])
}

func put32(out []byte, u uint32, end Endian) []byte {
	if end == BigEndian {
		return append(out, byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
	}
	return append(out, byte(u), byte(u>>8), byte(u>>16), byte(u>>24))
}

func get32(b []byte, end Endian) uint32 {
	if end == BigEndian {
		return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	}
	return uint32(b[3])<<24 | uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0])
}

const (
	surrHighStart = 0xD800
	surrHighEnd   = 0xDBFF
	surrLowStart  = 0xDC00
	surrLowEnd    = 0xDFFF
)

func isHighSurrogate(u uint16) bool { return u >= surrHighStart && u <= surrHighEnd }
func isLowSurrogate(u uint16) bool  { return u >= surrLowStart && u <= surrLowEnd }

// UTF8Decode re-validates and transcodes strict UTF-8, applying ds
// byte-by-byte on invalid sequences (single-byte resync, spec §4.1).
func UTF8Decode(dst, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if cp != utf8x.RuneError || n > 1 {
			out = utf8x.Encode(out, cp)
			src = src[n:]
			continue
		}
		hadErrors = true
		repl, fatal := ds.Apply(src[0])
		if fatal {
			return dst, true, false
		}
		out = append(out, repl...)
		src = src[1:]
	}
	return out, hadErrors, true
}

// UTF8Encode re-emits valid UTF-8 verbatim; spec has no failure mode here
// since every Unicode scalar value has a UTF-8 encoding, but the encode
// strategy is threaded through for a consistent dispatcher signature.
func UTF8Encode(dst, src []byte, _ strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	return append(dst, src...), false, true
}

// UTF16Decode reads 16-bit units in the given endianness, pairing
// surrogates per the standard formula (spec §4.4).
func UTF16Decode(dst, src []byte, end Endian, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		if len(src) == 1 {
			hadErrors = true
			repl, fatal := ds.ApplyUnit16(uint16(src[0]))
			if fatal {
				return dst, true, false
			}
			out = append(out, repl...)
			return out, hadErrors, true
		}
		u := get16(src, end)
		src = src[2:]

		switch {
		case isHighSurrogate(u):
			if len(src) >= 2 {
				u2 := get16(src, end)
				if isLowSurrogate(u2) {
					cp := utf16.DecodeRune(rune(u), rune(u2))
					out = utf8x.Encode(out, cp)
					src = src[2:]
					continue
				}
			}
			hadErrors = true
			repl, fatal := ds.ApplyUnit16(u)
			if fatal {
				return dst, true, false
			}
			out = append(out, repl...)
		case isLowSurrogate(u):
			hadErrors = true
			repl, fatal := ds.ApplyUnit16(u)
			if fatal {
				return dst, true, false
			}
			out = append(out, repl...)
		default:
			out = utf8x.Encode(out, rune(u))
		}
	}
	return out, hadErrors, true
}

// UTF16Encode emits one 16-bit unit per BMP scalar, or a surrogate pair
// for supplementary-plane scalars.
func UTF16Encode(dst, src []byte, end Endian, _ strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if n == 0 {
			break
		}
		src = src[n:]
		if cp <= 0xFFFF {
			out = put16(out, uint16(cp), end)
			continue
		}
		r1, r2 := utf16.EncodeRune(cp)
		out = put16(out, uint16(r1), end)
		out = put16(out, uint16(r2), end)
	}
	return out, false, true
}

// UTF16BOMDecode sniffs a leading BOM to pick endianness, defaulting to
// big-endian, then delegates (spec §4.4 "BOM-sniffing variant").
func UTF16BOMDecode(dst, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	end := BigEndian
	if len(src) >= 2 {
		switch {
		case src[0] == 0xFE && src[1] == 0xFF:
			end = BigEndian
			src = src[2:]
		case src[0] == 0xFF && src[1] == 0xFE:
			end = LittleEndian
			src = src[2:]
		}
	}
	return UTF16Decode(dst, src, end, ds)
}

// UTF16BOMEncode prefixes FE FF and encodes big-endian.
func UTF16BOMEncode(dst, src []byte, es strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	dst = append(dst, 0xFE, 0xFF)
	return UTF16Encode(dst, src, BigEndian, es)
}

// UTF32Decode reads 32-bit code points; out-of-range values and encoded
// surrogates are errors via the UTF-32 strategy table, and trailing 1-3
// bytes set the error flag with no strategy output (spec §9 REDESIGN
// note: intentional, preserved verbatim).
func UTF32Decode(dst, src []byte, end Endian, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		if len(src) < 4 {
			hadErrors = true
			return out, hadErrors, true
		}
		u := get32(src, end)
		src = src[4:]
		if u > 0x10FFFF || (u >= surrHighStart && u <= surrLowEnd) {
			hadErrors = true
			repl, fatal := ds.ApplyUnit32(u)
			if fatal {
				return dst, true, false
			}
			out = append(out, repl...)
			continue
		}
		out = utf8x.Encode(out, rune(u))
	}
	return out, hadErrors, true
}

// UTF32Encode emits 4 bytes per scalar in the given endianness.
func UTF32Encode(dst, src []byte, end Endian, _ strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if n == 0 {
			break
		}
		src = src[n:]
		out = put32(out, uint32(cp), end)
	}
	return out, false, true
}

// UTF32BOMDecode sniffs 00 00 FE FF -> BE, FF FE 00 00 -> LE, else BE.
func UTF32BOMDecode(dst, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	end := BigEndian
	if len(src) >= 4 {
		switch {
		case src[0] == 0x00 && src[1] == 0x00 && src[2] == 0xFE && src[3] == 0xFF:
			end = BigEndian
			src = src[4:]
		case src[0] == 0xFF && src[1] == 0xFE && src[2] == 0x00 && src[3] == 0x00:
			end = LittleEndian
			src = src[4:]
		}
	}
	return UTF32Decode(dst, src, end, ds)
}

// UTF32BOMEncode prefixes 00 00 FE FF and encodes big-endian.
func UTF32BOMEncode(dst, src []byte, es strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	dst = append(dst, 0x00, 0x00, 0xFE, 0xFF)
	return UTF32Encode(dst, src, BigEndian, es)
}

const utf7Base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var utf7Base64Rev [256]int8

func init() {
	for i := range utf7Base64Rev {
		utf7Base64Rev[i] = -1
	}
	for i, c := range utf7Base64Alphabet {
		utf7Base64Rev[c] = int8(i)
	}
}

// UTF7Decode strips +...- base64 blocks, accumulating UTF-16 code units
// and reassembling surrogate pairs; "+-" decodes to a literal "+". Bytes
// >= 0x80 outside a block are errors dispatched through ds. The lone
// high-surrogate case inside a block is silently discarded but
// accumulation continues across the unit that discarded it (spec §9:
// an implementation quirk preserved verbatim, not a bug to fix).
func UTF7Decode(dst, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	i := 0
	for i < len(src) {
		b := src[i]
		if b != '+' {
			if b >= 0x80 {
				hadErrors = true
				repl, fatal := ds.Apply(b)
				if fatal {
					return dst, true, false
				}
				out = append(out, repl...)
				i++
				continue
			}
			out = append(out, b)
			i++
			continue
		}
		// '+': either "+-" literal plus, or a base64 block.
		i++
		if i < len(src) && src[i] == '-' {
			out = append(out, '+')
			i++
			continue
		}
		var bitBuf uint32
		var bitCount uint
		var pendingHigh rune = -1
		for i < len(src) {
			v := utf7Base64Rev[src[i]]
			if v < 0 {
				break
			}
			i++
			bitBuf = bitBuf<<6 | uint32(v)
			bitCount += 6
			if bitCount >= 16 {
				bitCount -= 16
				u := uint16(bitBuf >> bitCount)
				switch {
				case pendingHigh >= 0 && isLowSurrogate(u):
					cp := utf16.DecodeRune(pendingHigh, rune(u))
					out = utf8x.Encode(out, cp)
					pendingHigh = -1
				case isHighSurrogate(u):
					pendingHigh = rune(u)
				default:
					if pendingHigh >= 0 {
						pendingHigh = -1 // discarded silently, spec §9
					}
					out = utf8x.Encode(out, rune(u))
				}
			}
		}
		if i < len(src) && src[i] == '-' {
			i++
		}
	}
	return out, hadErrors, true
}

// UTF7Encode passes ASCII 0x20-0x7E except '+' through verbatim; '+'
// becomes "+-"; everything else collects into a "+...-" base64 block of
// UTF-16 code units.
func UTF7Encode(dst, src []byte, _ strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	runes := make([]rune, 0, len(src))
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if n == 0 {
			break
		}
		runes = append(runes, cp)
		src = src[n:]
	}

	flushUnits := func(units []uint16) {
		if len(units) == 0 {
			return
		}
		out = append(out, '+')
		var bitBuf uint32
		var bitCount uint
		for _, u := range units {
			bitBuf = bitBuf<<16 | uint32(u)
			bitCount += 16
			for bitCount >= 6 {
				bitCount -= 6
				out = append(out, utf7Base64Alphabet[(bitBuf>>bitCount)&0x3F])
			}
		}
		if bitCount > 0 {
			out = append(out, utf7Base64Alphabet[(bitBuf<<(6-bitCount))&0x3F])
		}
		out = append(out, '-')
	}

	var pending []uint16
	for _, cp := range runes {
		if cp == '+' {
			flushUnits(pending)
			pending = nil
			out = append(out, '+', '-')
			continue
		}
		if cp >= 0x20 && cp <= 0x7E {
			flushUnits(pending)
			pending = nil
			out = append(out, byte(cp))
			continue
		}
		if cp <= 0xFFFF {
			pending = append(pending, uint16(cp))
		} else {
			r1, r2 := utf16.EncodeRune(cp)
			pending = append(pending, uint16(r1), uint16(r2))
		}
	}
	flushUnits(pending)
	return out, false, true
}

// CESU8Decode recognises the six-byte ED Ax xx ED Bx xx surrogate-pair
// pattern and reassembles it; anything else delegates to plain UTF-8
// decode (spec §4.4).
func CESU8Decode(dst, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		if len(src) >= 6 && src[0] == 0xED && src[1]&0xF0 == 0xA0 && src[3] == 0xED && src[4]&0xF0 == 0xB0 {
			hi := (rune(src[0]&0x0F) << 12) | (rune(src[1]&0x3F) << 6) | rune(src[2]&0x3F)
			lo := (rune(src[3]&0x0F) << 12) | (rune(src[4]&0x3F) << 6) | rune(src[5]&0x3F)
			h16 := uint16(hi)
			l16 := uint16(lo)
			if isHighSurrogate(h16) && isLowSurrogate(l16) {
				out = utf8x.Encode(out, utf16.DecodeRune(rune(h16), rune(l16)))
				src = src[6:]
				continue
			}
		}
		cp, n := utf8x.Decode(src)
		if cp != utf8x.RuneError || n > 1 {
			out = utf8x.Encode(out, cp)
			src = src[n:]
			continue
		}
		hadErrors = true
		repl, fatal := ds.Apply(src[0])
		if fatal {
			return dst, true, false
		}
		out = append(out, repl...)
		src = src[1:]
	}
	return out, hadErrors, true
}

// encodeSurrogateHalf appends the three-byte CESU-8 form of a UTF-16
// surrogate code unit: the same lead/continuation construction as ordinary
// three-byte UTF-8, just applied to a value utf8x.Encode would otherwise
// reject as an encoded surrogate (spec §4.4 "six-byte surrogate-pair form").
func encodeSurrogateHalf(out []byte, r uint16) []byte {
	return append(out,
		0xE0|byte(r>>12),
		0x80|byte((r>>6)&0x3F),
		0x80|byte(r&0x3F),
	)
}

// CESU8Encode emits ordinary UTF-8 for BMP scalars and the six-byte
// surrogate-pair form for supplementary-plane scalars.
func CESU8Encode(dst, src []byte, _ strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if n == 0 {
			break
		}
		src = src[n:]
		if cp <= 0xFFFF {
			out = utf8x.Encode(out, cp)
			continue
		}
		r1, r2 := utf16.EncodeRune(cp)
		out = encodeSurrogateHalf(out, uint16(r1))
		out = encodeSurrogateHalf(out, uint16(r2))
	}
	return out, false, true
}
