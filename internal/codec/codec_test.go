package codec_test

import (
	"bytes"
	"testing"

	"github.com/Cynosureprime/Cencforce/internal/codec"
	"github.com/Cynosureprime/Cencforce/internal/strategy"
)

func TestShiftJISHalfWidthMiddleDot(t *testing.T) {
	out, hadErrors, ok := codec.ShiftJISDecode(nil, []byte{0xA5}, strategy.DecodeStrict)
	if !ok || hadErrors {
		t.Fatalf("decode: hadErrors=%v ok=%v", hadErrors, ok)
	}
	want := []byte{0xEF, 0xBD, 0xA5} // UTF-8 of U+FF65
	if !bytes.Equal(out, want) {
		t.Fatalf("got % X, want % X", out, want)
	}
}

func TestCESU8SurrogatePairDecodesToSupplementaryPlane(t *testing.T) {
	// D83D/DE00 is the UTF-16 surrogate pair for U+1F600 (see
	// unicode/utf16.EncodeRune); ED A0 BD / ED B8 80 is each half's
	// three-byte CESU-8 form.
	in := []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}
	out, hadErrors, ok := codec.CESU8Decode(nil, in, strategy.DecodeStrict)
	if !ok || hadErrors {
		t.Fatalf("decode: hadErrors=%v ok=%v", hadErrors, ok)
	}
	want := []byte{0xF0, 0x9F, 0x98, 0x80} // UTF-8 of U+1F600
	if !bytes.Equal(out, want) {
		t.Fatalf("got % X, want % X", out, want)
	}
}

func TestCESU8EncodeSupplementaryPlaneRoundTrip(t *testing.T) {
	in := []byte{0xF0, 0x9F, 0x98, 0x80}
	enc, _, ok := codec.CESU8Encode(nil, in, strategy.EncodeStrict)
	if !ok {
		t.Fatalf("encode failed")
	}
	want := []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}
	if !bytes.Equal(enc, want) {
		t.Fatalf("encode = % X, want % X", enc, want)
	}
	dec, _, ok := codec.CESU8Decode(nil, enc, strategy.DecodeStrict)
	if !ok || !bytes.Equal(dec, in) {
		t.Fatalf("round trip failed: got % X", dec)
	}
}

func TestUTF16SurrogatePairRoundTrip(t *testing.T) {
	in := []byte{0xF0, 0x9F, 0x98, 0x80} // U+1F600
	enc, _, ok := codec.UTF16Encode(nil, in, codec.BigEndian, strategy.EncodeStrict)
	if !ok {
		t.Fatalf("encode failed")
	}
	dec, hadErrors, ok := codec.UTF16Decode(nil, enc, codec.BigEndian, strategy.DecodeStrict)
	if !ok || hadErrors || !bytes.Equal(dec, in) {
		t.Fatalf("round trip: dec=% X hadErrors=%v ok=%v", dec, hadErrors, ok)
	}
}

func TestUTF16LoneHighSurrogateIsError(t *testing.T) {
	in := []byte{0xD8, 0x00} // lone high surrogate, BE
	_, hadErrors, ok := codec.UTF16Decode(nil, in, codec.BigEndian, strategy.DecodeReplacementQuestion)
	if !ok || !hadErrors {
		t.Fatalf("hadErrors=%v ok=%v, want true,true", hadErrors, ok)
	}
}

func TestUTF16TrailingSingleByteIsErrorAsUnitValue(t *testing.T) {
	in := []byte{0x00, 0x41, 0x00} // "A" then a lone trailing byte
	out, hadErrors, ok := codec.UTF16Decode(nil, in, codec.BigEndian, strategy.DecodeByteValueDecimal)
	if !ok || !hadErrors {
		t.Fatalf("hadErrors=%v ok=%v", hadErrors, ok)
	}
	if string(out) != "A0" {
		t.Fatalf("got %q, want A0", out)
	}
}

func TestUTF16BOMSniffsLittleEndian(t *testing.T) {
	in := []byte{0xFF, 0xFE, 0x41, 0x00} // BOM LE + "A"
	out, hadErrors, ok := codec.UTF16BOMDecode(nil, in, strategy.DecodeStrict)
	if !ok || hadErrors || string(out) != "A" {
		t.Fatalf("out=%q hadErrors=%v ok=%v", out, hadErrors, ok)
	}
}

func TestUTF32TrailingPartialBytesSetErrorNoOutput(t *testing.T) {
	in := []byte{0x00, 0x00, 0x00, 0x41, 0x00, 0x00} // "A" then 2 trailing bytes
	out, hadErrors, ok := codec.UTF32Decode(nil, in, codec.BigEndian, strategy.DecodeStrict)
	if !ok || !hadErrors {
		t.Fatalf("hadErrors=%v ok=%v", hadErrors, ok)
	}
	if string(out) != "A" {
		t.Fatalf("got %q, want A (no strategy output for the trailing bytes)", out)
	}
}

func TestUTF32SurrogateValueIsError(t *testing.T) {
	in := []byte{0x00, 0x00, 0xD8, 0x00} // encoded surrogate, BE
	_, hadErrors, ok := codec.UTF32Decode(nil, in, codec.BigEndian, strategy.DecodeReplacementQuestion)
	if !ok || !hadErrors {
		t.Fatalf("hadErrors=%v ok=%v", hadErrors, ok)
	}
}

func TestUTF7LiteralPlus(t *testing.T) {
	out, _, ok := codec.UTF7Decode(nil, []byte("a+-b"), strategy.DecodeStrict)
	if !ok || string(out) != "a+b" {
		t.Fatalf("got %q, want a+b", out)
	}
}

func TestUTF7ASCIIPassthroughRoundTrip(t *testing.T) {
	in := []byte("Hello, World!")
	enc, _, ok := codec.UTF7Encode(nil, in, strategy.EncodeStrict)
	if !ok || !bytes.Equal(enc, in) {
		t.Fatalf("encode = %q, want unchanged ASCII", enc)
	}
}

func TestUTF7NonASCIIRoundTrip(t *testing.T) {
	in := []byte("caf\xc3\xa9") // "café"
	enc, _, ok := codec.UTF7Encode(nil, in, strategy.EncodeStrict)
	if !ok {
		t.Fatalf("encode failed")
	}
	dec, hadErrors, ok := codec.UTF7Decode(nil, enc, strategy.DecodeStrict)
	if !ok || hadErrors || !bytes.Equal(dec, in) {
		t.Fatalf("round trip: dec=%q hadErrors=%v ok=%v", dec, hadErrors, ok)
	}
}

func TestGBKASCIIPassthrough(t *testing.T) {
	out, hadErrors, ok := codec.GBKDecode(nil, []byte("abc"), strategy.DecodeStrict)
	if !ok || hadErrors || string(out) != "abc" {
		t.Fatalf("got %q", out)
	}
}

func TestGB18030RangeRoundTrip(t *testing.T) {
	// U+2470 is only reachable via the four-byte ranges table, not the
	// two-byte GBK index.
	utf8In := []byte{0xE2, 0x91, 0xB0} // UTF-8 of U+2470
	enc, hadErrors, ok := codec.GB18030Encode(nil, utf8In, strategy.EncodeStrict)
	if !ok || hadErrors {
		t.Fatalf("encode: hadErrors=%v ok=%v", hadErrors, ok)
	}
	if len(enc) != 4 {
		t.Fatalf("expected a four-byte GB18030 sequence, got % X", enc)
	}
	dec, hadErrors, ok := codec.GB18030Decode(nil, enc, strategy.DecodeStrict)
	if !ok || hadErrors || !bytes.Equal(dec, utf8In) {
		t.Fatalf("round trip: dec=% X hadErrors=%v ok=%v", dec, hadErrors, ok)
	}
}

func TestISO2022JPEmitsClosingEscapeAtEOF(t *testing.T) {
	// U+4E00 is in the representative tables.JIS0208 subset (pointer
	// 188), so it encodes as JIS0208 between ESC $ B and ESC ( B.
	in := []byte{0xE4, 0xB8, 0x80} // UTF-8 of U+4E00
	enc, _, ok := codec.ISO2022JPEncode(nil, in, strategy.EncodeStrict)
	if !ok {
		t.Fatalf("encode failed")
	}
	if !bytes.HasSuffix(enc, []byte{0x1B, '(', 'B'}) {
		t.Fatalf("expected trailing ESC ( B, got % X", enc)
	}
	dec, hadErrors, ok := codec.ISO2022JPDecode(nil, enc, strategy.DecodeStrict)
	if !ok || hadErrors || !bytes.Equal(dec, in) {
		t.Fatalf("round trip: dec=% X hadErrors=%v ok=%v", dec, hadErrors, ok)
	}
}
