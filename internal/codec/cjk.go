package codec

import (
	"github.com/Cynosureprime/Cencforce/internal/strategy"
	"github.com/Cynosureprime/Cencforce/internal/tables"
	"github.com/Cynosureprime/Cencforce/internal/utf8x"
)

func asciiByte(b byte) bool { return b < 0x80 }

// ShiftJISDecode implements spec §4.5's Shift_JIS pointer formula: ASCII
// passthrough with two overrides, half-width kana, then a two-byte lead
// in [0x81,0x9F]∪[0xE0,0xFC] indexing JIS0208.
func ShiftJISDecode(dst, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for i := 0; i < len(src); {
		b := src[i]
		switch {
		case b == 0x5C:
			out = utf8x.Encode(out, 0x00A5)
			i++
		case b == 0x7E:
			out = utf8x.Encode(out, 0x203E)
			i++
		case asciiByte(b):
			out = append(out, b)
			i++
		case b >= 0xA1 && b <= 0xDF:
			out = utf8x.Encode(out, 0xFF61+rune(b-0xA1))
			i++
		case (b >= 0x81 && b <= 0x9F) || (b >= 0xE0 && b <= 0xFC):
			if i+1 >= len(src) {
				hadErrors = true
				if !applyByteErr(&out, ds, b) {
					return dst, true, false
				}
				i++
				continue
			}
			trail := src[i+1]
			if trail < 0x40 || trail > 0xFC || trail == 0x7F {
				hadErrors = true
				if !applyByteErr(&out, ds, b) {
					return dst, true, false
				}
				i++
				continue
			}
			leadOffset := byte(0x81)
			if b >= 0xE0 {
				leadOffset = 0xC1
			}
			trailOffset := byte(0x40)
			if trail > 0x7E {
				trailOffset = 0x41
			}
			pointer := int(b-leadOffset)*188 + int(trail-trailOffset)
			if cp, found := tables.JIS0208.Decode(pointer); found {
				out = utf8x.Encode(out, cp)
				i += 2
				continue
			}
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
		default:
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
		}
	}
	return out, hadErrors, true
}

func applyByteErr(out *[]byte, ds strategy.Decode, b byte) bool {
	repl, fatal := ds.Apply(b)
	if fatal {
		return false
	}
	*out = append(*out, repl...)
	return true
}

// ShiftJISEncode inverts ShiftJISDecode via the JIS0208 reverse index.
func ShiftJISEncode(dst, src []byte, es strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if n == 0 {
			break
		}
		chunk := src[:n]
		src = src[n:]
		switch {
		case cp == 0x00A5:
			out = append(out, 0x5C)
		case cp == 0x203E:
			out = append(out, 0x7E)
		case cp < 0x80:
			out = append(out, byte(cp))
		case cp >= 0xFF61 && cp <= 0xFF9F:
			out = append(out, byte(0xA1+(cp-0xFF61)))
		default:
			if pointer, found := tables.JIS0208.Encode(cp); found {
				leadIndex := pointer / 188
				trailIndex := byte(pointer % 188)
				var lead byte
				if leadIndex < 31 {
					lead = byte(0x81 + leadIndex)
				} else {
					lead = byte(0xC1 + leadIndex)
				}
				if trailIndex < 0x3F {
					out = append(out, lead, trailIndex+0x40)
				} else {
					out = append(out, lead, trailIndex+0x41)
				}
				continue
			}
			hadErrors = true
			repl, fatal := es.Apply(cp, chunk)
			if fatal {
				return dst, true, false
			}
			out = append(out, repl...)
		}
	}
	return out, hadErrors, true
}

// EUCJPDecode implements spec §4.5's EUC-JP layout: ASCII, 0x8E+kana,
// 0x8F+JIS X 0212, or a plain two-byte JIS X 0208 pair.
func EUCJPDecode(dst, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for i := 0; i < len(src); {
		b := src[i]
		switch {
		case asciiByte(b):
			out = append(out, b)
			i++
		case b == 0x8E && i+1 < len(src) && src[i+1] >= 0xA1 && src[i+1] <= 0xDF:
			out = utf8x.Encode(out, 0xFF61+rune(src[i+1]-0xA1))
			i += 2
		case b == 0x8F && i+2 < len(src) && src[i+1] >= 0xA1 && src[i+1] <= 0xFE && src[i+2] >= 0xA1 && src[i+2] <= 0xFE:
			pointer := int(src[i+1]-0xA1)*94 + int(src[i+2]-0xA1)
			if cp, found := tables.JISX0212.Decode(pointer); found {
				out = utf8x.Encode(out, cp)
				i += 3
				continue
			}
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
		case b >= 0xA1 && b <= 0xFE && i+1 < len(src) && src[i+1] >= 0xA1 && src[i+1] <= 0xFE:
			pointer := int(b-0xA1)*94 + int(src[i+1]-0xA1)
			if cp, found := tables.JIS0208.Decode(pointer); found {
				out = utf8x.Encode(out, cp)
				i += 2
				continue
			}
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
		default:
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
		}
	}
	return out, hadErrors, true
}

// EUCJPEncode inverts EUCJPDecode.
func EUCJPEncode(dst, src []byte, es strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if n == 0 {
			break
		}
		chunk := src[:n]
		src = src[n:]
		switch {
		case cp < 0x80:
			out = append(out, byte(cp))
		case cp >= 0xFF61 && cp <= 0xFF9F:
			out = append(out, 0x8E, byte(0xA1+(cp-0xFF61)))
		default:
			if pointer, found := tables.JIS0208.Encode(cp); found {
				out = append(out, byte(pointer/94)+0xA1, byte(pointer%94)+0xA1)
				continue
			}
			if pointer, found := tables.JISX0212.Encode(cp); found {
				out = append(out, 0x8F, byte(pointer/94)+0xA1, byte(pointer%94)+0xA1)
				continue
			}
			hadErrors = true
			repl, fatal := es.Apply(cp, chunk)
			if fatal {
				return dst, true, false
			}
			out = append(out, repl...)
		}
	}
	return out, hadErrors, true
}

type iso2022Mode int

const (
	iso2022ASCII iso2022Mode = iota
	iso2022JISRoman
	iso2022JIS0208
)

// ISO2022JPDecode runs the three-mode {ASCII, JIS Roman, JIS0208} state
// machine of spec §4.5, switching on ESC ( B / ESC ( J / ESC $ @ / ESC $ B.
func ISO2022JPDecode(dst, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	mode := iso2022ASCII
	for i := 0; i < len(src); {
		if src[i] == 0x1B {
			switch {
			case i+2 < len(src) && src[i+1] == '(' && src[i+2] == 'B':
				mode = iso2022ASCII
				i += 3
				continue
			case i+2 < len(src) && src[i+1] == '(' && src[i+2] == 'J':
				mode = iso2022JISRoman
				i += 3
				continue
			case i+2 < len(src) && src[i+1] == '$' && (src[i+2] == '@' || src[i+2] == 'B'):
				mode = iso2022JIS0208
				i += 3
				continue
			}
		}
		switch mode {
		case iso2022JIS0208:
			if i+1 >= len(src) {
				hadErrors = true
				if !applyByteErr(&out, ds, src[i]) {
					return dst, true, false
				}
				i++
				continue
			}
			lead, trail := src[i], src[i+1]
			if lead < 0x21 || lead > 0x7E || trail < 0x21 || trail > 0x7E {
				hadErrors = true
				if !applyByteErr(&out, ds, lead) {
					return dst, true, false
				}
				i++
				continue
			}
			pointer := int(lead-0x21)*94 + int(trail-0x21)
			if cp, found := tables.JIS0208.Decode(pointer); found {
				out = utf8x.Encode(out, cp)
				i += 2
				continue
			}
			hadErrors = true
			if !applyByteErr(&out, ds, lead) {
				return dst, true, false
			}
			i++
		default: // ASCII and JIS Roman both pass bytes through as 7-bit
			out = append(out, src[i])
			i++
		}
	}
	return out, hadErrors, true
}

// ISO2022JPEncode inserts escape sequences on mode transitions and always
// returns to ASCII at end of stream.
func ISO2022JPEncode(dst, src []byte, es strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	mode := iso2022ASCII
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if n == 0 {
			break
		}
		chunk := src[:n]
		src = src[n:]
		if cp < 0x80 {
			if mode != iso2022ASCII {
				out = append(out, 0x1B, '(', 'B')
				mode = iso2022ASCII
			}
			out = append(out, byte(cp))
			continue
		}
		if pointer, found := tables.JIS0208.Encode(cp); found {
			if mode != iso2022JIS0208 {
				out = append(out, 0x1B, '$', 'B')
				mode = iso2022JIS0208
			}
			out = append(out, byte(pointer/94)+0x21, byte(pointer%94)+0x21)
			continue
		}
		hadErrors = true
		repl, fatal := es.Apply(cp, chunk)
		if fatal {
			return dst, true, false
		}
		out = append(out, repl...)
	}
	if mode != iso2022ASCII {
		out = append(out, 0x1B, '(', 'B')
	}
	return out, hadErrors, true
}

// GBKDecode implements spec §4.5's GBK pointer formula.
func GBKDecode(dst, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for i := 0; i < len(src); {
		b := src[i]
		if asciiByte(b) {
			out = append(out, b)
			i++
			continue
		}
		if b < 0x81 || b > 0xFE || i+1 >= len(src) {
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
			continue
		}
		trail := src[i+1]
		if !((trail >= 0x40 && trail <= 0x7E) || (trail >= 0x80 && trail <= 0xFE)) {
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
			continue
		}
		trailOffset := byte(0x40)
		if trail > 0x7E {
			trailOffset = 0x41
		}
		pointer := int(b-0x81)*190 + int(trail-trailOffset)
		if cp, found := tables.GBKIndex.Decode(pointer); found {
			out = utf8x.Encode(out, cp)
			i += 2
			continue
		}
		hadErrors = true
		if !applyByteErr(&out, ds, b) {
			return dst, true, false
		}
		i++
	}
	return out, hadErrors, true
}

// GBKEncode inverts GBKDecode.
func GBKEncode(dst, src []byte, es strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if n == 0 {
			break
		}
		chunk := src[:n]
		src = src[n:]
		if cp < 0x80 {
			out = append(out, byte(cp))
			continue
		}
		if pointer, found := tables.GBKIndex.Encode(cp); found {
			lead := byte(pointer/190) + 0x81
			trail := pointer % 190
			if trail < 0x3F {
				out = append(out, lead, byte(trail)+0x40)
			} else {
				out = append(out, lead, byte(trail)+0x41)
			}
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

// GB18030Decode tries the GBK two-byte table first, then a four-byte
// sequence when the trail byte is a digit, finally the ranges table for
// code points beyond the two-byte index (spec §4.5).
func GB18030Decode(dst, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for i := 0; i < len(src); {
		b := src[i]
		if asciiByte(b) {
			out = append(out, b)
			i++
			continue
		}
		if b < 0x81 || b > 0xFE || i+1 >= len(src) {
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
			continue
		}
		b2 := src[i+1]
		if b2 >= 0x30 && b2 <= 0x39 {
			if i+3 >= len(src) {
				hadErrors = true
				if !applyByteErr(&out, ds, b) {
					return dst, true, false
				}
				i++
				continue
			}
			b3, b4 := src[i+2], src[i+3]
			if b3 < 0x81 || b3 > 0xFE || b4 < 0x30 || b4 > 0x39 {
				hadErrors = true
				if !applyByteErr(&out, ds, b) {
					return dst, true, false
				}
				i++
				continue
			}
			pointer := (int(b-0x81)*10+int(b2-0x30))*1260 + int(b3-0x81)*10 + int(b4-0x30)
			if cp, found := tables.DecodeGB18030Range(pointer); found {
				out = utf8x.Encode(out, cp)
				i += 4
				continue
			}
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
			continue
		}
		if !((b2 >= 0x40 && b2 <= 0x7E) || (b2 >= 0x80 && b2 <= 0xFE)) {
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
			continue
		}
		trailOffset := byte(0x40)
		if b2 > 0x7E {
			trailOffset = 0x41
		}
		pointer := int(b-0x81)*190 + int(b2-trailOffset)
		if cp, found := tables.GBKIndex.Decode(pointer); found {
			out = utf8x.Encode(out, cp)
			i += 2
			continue
		}
		hadErrors = true
		if !applyByteErr(&out, ds, b) {
			return dst, true, false
		}
		i++
	}
	return out, hadErrors, true
}

// GB18030Encode tries the two-byte table first, then the ranges table.
func GB18030Encode(dst, src []byte, es strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if n == 0 {
			break
		}
		chunk := src[:n]
		src = src[n:]
		if cp < 0x80 {
			out = append(out, byte(cp))
			continue
		}
		if pointer, found := tables.GBKIndex.Encode(cp); found {
			lead := byte(pointer/190) + 0x81
			trail := pointer % 190
			if trail < 0x3F {
				out = append(out, lead, byte(trail)+0x40)
			} else {
				out = append(out, lead, byte(trail)+0x41)
			}
			continue
		}
		if pointer, found := tables.EncodeGB18030Range(cp); found {
			x := pointer / 1260
			y := pointer % 1260
			b1 := byte(x/10) + 0x81
			b2 := byte(x%10) + 0x30
			b3 := byte(y/10) + 0x81
			b4 := byte(y%10) + 0x30
			out = append(out, b1, b2, b3, b4)
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

// Big5Decode implements spec §4.5's Big5 pointer formula.
func Big5Decode(dst, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for i := 0; i < len(src); {
		b := src[i]
		if asciiByte(b) {
			out = append(out, b)
			i++
			continue
		}
		if b < 0x81 || b > 0xFE || i+1 >= len(src) {
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
			continue
		}
		trail := src[i+1]
		if !((trail >= 0x40 && trail <= 0x7E) || (trail >= 0xA1 && trail <= 0xFE)) {
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
			continue
		}
		trailOffset := byte(0x40)
		if trail > 0x7E {
			trailOffset = 0x62
		}
		pointer := int(b-0x81)*157 + int(trail-trailOffset)
		if cp, found := tables.Big5Index.Decode(pointer); found {
			out = utf8x.Encode(out, cp)
			i += 2
			continue
		}
		hadErrors = true
		if !applyByteErr(&out, ds, b) {
			return dst, true, false
		}
		i++
	}
	return out, hadErrors, true
}

// Big5Encode inverts Big5Decode.
func Big5Encode(dst, src []byte, es strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if n == 0 {
			break
		}
		chunk := src[:n]
		src = src[n:]
		if cp < 0x80 {
			out = append(out, byte(cp))
			continue
		}
		if pointer, found := tables.Big5Index.Encode(cp); found {
			lead := byte(pointer/157) + 0x81
			trail := pointer % 157
			if trail < 0x3F {
				out = append(out, lead, byte(trail)+0x40)
			} else {
				out = append(out, lead, byte(trail)+0x62)
			}
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

// EUCKRDecode implements spec §4.5's EUC-KR pointer formula.
func EUCKRDecode(dst, src []byte, ds strategy.Decode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for i := 0; i < len(src); {
		b := src[i]
		if asciiByte(b) {
			out = append(out, b)
			i++
			continue
		}
		if b < 0x81 || b > 0xFE || i+1 >= len(src) {
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
			continue
		}
		trail := src[i+1]
		if trail < 0x41 || trail > 0xFE {
			hadErrors = true
			if !applyByteErr(&out, ds, b) {
				return dst, true, false
			}
			i++
			continue
		}
		pointer := int(b-0x81)*190 + int(trail-0x41)
		if cp, found := tables.EUCKRIndex.Decode(pointer); found {
			out = utf8x.Encode(out, cp)
			i += 2
			continue
		}
		hadErrors = true
		if !applyByteErr(&out, ds, b) {
			return dst, true, false
		}
		i++
	}
	return out, hadErrors, true
}

// EUCKREncode inverts EUCKRDecode.
func EUCKREncode(dst, src []byte, es strategy.Encode) (out []byte, hadErrors bool, ok bool) {
	out = dst
	for len(src) > 0 {
		cp, n := utf8x.Decode(src)
		if n == 0 {
			break
		}
		chunk := src[:n]
		src = src[n:]
		if cp < 0x80 {
			out = append(out, byte(cp))
			continue
		}
		if pointer, found := tables.EUCKRIndex.Encode(cp); found {
			out = append(out, byte(pointer/190)+0x81, byte(pointer%190)+0x41)
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
