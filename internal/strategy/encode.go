package strategy

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/Cynosureprime/Cencforce/internal/tables"
)

// Encode is one of the twenty-eight named encode-error strategies.
type Encode int

const (
	EncodeStrict Encode = iota
	EncodeReplacementQuestion
	EncodeReplacementSub
	EncodeReplacementSpace
	EncodeReplacementZWSP
	EncodeReplacementUnderscore
	EncodeSkip
	EncodeHTMLDecimal
	EncodeHTMLHex
	EncodeHTMLNamed
	EncodeXMLNumeric
	EncodeURLEncoding
	EncodeDoubleURLEncoding
	EncodeHexEscapeX
	EncodeUnicodeEscapeU4
	EncodeUnicodeEscapeU8
	EncodeUnicodeEscapeXBrace
	EncodeUnicodeEscapeUPlus
	EncodeUnicodeEscapeUBrace
	EncodePythonNamedEscape
	EncodeJavaSurrogatePairs
	EncodeCSSEscape
	EncodeJSONEscape
	EncodePunycode
	EncodeTransliteration
	EncodeBase64Inline
	EncodeQuotedPrintable
	EncodeNCRDecimal
	encodeCount
)

var encodeNames = [encodeCount]string{
	"strict", "replacement_question", "replacement_sub", "replacement_space",
	"replacement_zwsp", "replacement_underscore", "skip", "html_decimal",
	"html_hex", "html_named", "xml_numeric", "url_encoding",
	"double_url_encoding", "hex_escape_x", "unicode_escape_u4",
	"unicode_escape_u8", "unicode_escape_xbrace", "unicode_escape_uplus",
	"unicode_escape_ubrace", "python_named_escape", "java_surrogate_pairs",
	"css_escape", "json_escape", "punycode", "transliteration",
	"base64_inline", "quoted_printable", "ncr_decimal",
}

func (e Encode) Name() string {
	if e < 0 || int(e) >= len(encodeNames) {
		return "unknown"
	}
	return encodeNames[e]
}

// AllEncode returns every encode strategy in enum-declaration order.
func AllEncode() []Encode {
	out := make([]Encode, encodeCount)
	for i := range out {
		out[i] = Encode(i)
	}
	return out
}

// LookupEncode resolves a strategy by its stable name.
func LookupEncode(name string) (Encode, bool) {
	for i, n := range encodeNames {
		if n == name {
			return Encode(i), true
		}
	}
	return 0, false
}

func percentEncode(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		fmt.Fprintf(&sb, "%%%02X", c)
	}
	return sb.String()
}

func utf16Escapes(cp rune, format string) []byte {
	if cp <= 0xFFFF {
		return []byte(fmt.Sprintf(format, cp))
	}
	r1, r2 := utf16.EncodeRune(cp)
	return []byte(fmt.Sprintf(format, r1) + fmt.Sprintf(format, r2))
}

// Apply maps a missing code point cp (whose original UTF-8 encoding was
// src) to a replacement byte sequence per the strategy, or signals fatal
// (only EncodeStrict).
func (e Encode) Apply(cp rune, src []byte) (out []byte, fatal bool) {
	switch e {
	case EncodeStrict:
		return nil, true
	case EncodeReplacementQuestion:
		return []byte{'?'}, false
	case EncodeReplacementSub:
		return []byte{0x1A}, false
	case EncodeReplacementSpace:
		return []byte{' '}, false
	case EncodeReplacementZWSP:
		return []byte{0xE2, 0x80, 0x8B}, false // UTF-8 of U+200B
	case EncodeReplacementUnderscore:
		return []byte{'_'}, false
	case EncodeSkip:
		return nil, false
	case EncodeHTMLDecimal, EncodeXMLNumeric, EncodeNCRDecimal:
		return []byte(fmt.Sprintf("&#%d;", cp)), false
	case EncodeHTMLHex:
		return []byte(fmt.Sprintf("&#x%X;", cp)), false
	case EncodeHTMLNamed:
		if name, ok := tables.HTMLNamed[cp]; ok {
			return []byte("&" + name + ";"), false
		}
		return []byte(fmt.Sprintf("&#%d;", cp)), false
	case EncodeURLEncoding:
		return []byte(percentEncode(src)), false
	case EncodeDoubleURLEncoding:
		return []byte(percentEncode([]byte(percentEncode(src)))), false
	case EncodeHexEscapeX:
		var sb strings.Builder
		for _, b := range src {
			fmt.Fprintf(&sb, "\\x%02x", b)
		}
		return []byte(sb.String()), false
	case EncodeUnicodeEscapeU4:
		return utf16Escapes(cp, "\\u%04X"), false
	case EncodeUnicodeEscapeU8:
		return []byte(fmt.Sprintf("\\U%08X", cp)), false
	case EncodeUnicodeEscapeXBrace:
		return []byte(fmt.Sprintf("\\x{%X}", cp)), false
	case EncodeUnicodeEscapeUPlus:
		return []byte(fmt.Sprintf("U+%04X", cp)), false
	case EncodeUnicodeEscapeUBrace:
		return []byte(fmt.Sprintf("\\u{%X}", cp)), false
	case EncodePythonNamedEscape:
		if name, ok := tables.UnicodeName[cp]; ok {
			return []byte("\\N{" + name + "}"), false
		}
		return []byte(fmt.Sprintf("\\U%08X", cp)), false
	case EncodeJavaSurrogatePairs:
		return utf16Escapes(cp, "\\u%04x"), false
	case EncodeCSSEscape:
		return []byte(fmt.Sprintf("\\%x ", cp)), false
	case EncodeJSONEscape:
		return utf16Escapes(cp, "\\u%04x"), false
	case EncodePunycode:
		return []byte(Punycode(cp)), false
	case EncodeTransliteration:
		if s, ok := tables.Transliterate[cp]; ok {
			return []byte(s), false
		}
		return []byte{'?'}, false
	case EncodeBase64Inline:
		return []byte("[base64:" + base64.StdEncoding.EncodeToString(src) + "]"), false
	case EncodeQuotedPrintable:
		var sb strings.Builder
		for _, b := range src {
			fmt.Fprintf(&sb, "=%02X", b)
		}
		return []byte(sb.String()), false
	default:
		return []byte(strconv.Itoa(int(cp))), false
	}
}
