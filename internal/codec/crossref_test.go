package codec_test

// Cross-reference oracle: golang.org/x/text's own encoding implementations
// are used here purely as an external sanity check on our hand-rolled,
// table-driven codecs (spec §4.3/§4.5), not as a runtime dependency of the
// codec package itself (see SPEC_FULL.md §2 domain-stack wiring). Agreement
// is checked over ASCII and the byte-accurate Windows-1252 upper half;
// the CJK index tables are a deliberately partial standards subset (see
// internal/tables package doc), so cross-reference there is limited to the
// ASCII passthrough range shared by every WHATWG legacy encoding.

import (
	"bytes"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"

	"github.com/Cynosureprime/Cencforce/internal/codec"
	"github.com/Cynosureprime/Cencforce/internal/singlebyte"
	"github.com/Cynosureprime/Cencforce/internal/strategy"
	"github.com/Cynosureprime/Cencforce/internal/tables"
)

func TestWindows1252AgreesWithXText(t *testing.T) {
	ours := singlebyte.New(tables.Windows1252)
	dec := charmap.Windows1252.NewDecoder()
	for b := 0; b < 256; b++ {
		in := []byte{byte(b)}
		want, err := dec.Bytes(in)
		if err != nil {
			continue // x/text rejects the handful of undefined bytes we map via a strategy
		}
		got, hadErrors, ok := ours.Decode(nil, in, strategy.DecodeStrict)
		if !ok || hadErrors {
			t.Fatalf("byte 0x%02X: our decoder reported an error, x/text decoded %q", b, want)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("byte 0x%02X: got %q, want %q", b, got, want)
		}
	}
}

// TestCJKASCIIPassthroughAgreesWithXText pairs each CJK codec's decoder
// with the x/text decoder that should agree with it on the ASCII subrange every WHATWG legacy CJK
// encoding passes through unchanged.
func TestCJKASCIIPassthroughAgreesWithXText(t *testing.T) {
	cases := []struct {
		name   string
		decode func(dst, src []byte, ds strategy.Decode) ([]byte, bool, bool)
		oracle interface {
			Bytes([]byte) ([]byte, error)
		}
	}{
		{"Shift_JIS", codec.ShiftJISDecode, japanese.ShiftJIS.NewDecoder()},
		{"EUC-JP", codec.EUCJPDecode, japanese.EUCJP.NewDecoder()},
		{"GBK", codec.GBKDecode, simplifiedchinese.GBK.NewDecoder()},
		{"GB18030", codec.GB18030Decode, simplifiedchinese.GB18030.NewDecoder()},
		{"Big5", codec.Big5Decode, traditionalchinese.Big5.NewDecoder()},
		{"EUC-KR", codec.EUCKRDecode, korean.EUCKR.NewDecoder()},
	}
	ascii := []byte("Go 1.25 rewrite of a C forensics tool, 0-9 ASCII only.")
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			want, err := c.oracle.Bytes(ascii)
			if err != nil {
				t.Fatalf("x/text oracle rejected pure ASCII: %v", err)
			}
			got, hadErrors, ok := c.decode(nil, ascii, strategy.DecodeStrict)
			if !ok || hadErrors {
				t.Fatalf("%s: our decoder reported an error on pure ASCII", c.name)
			}
			if !bytes.Equal(got, want) {
				t.Fatalf("%s: got %q, want %q", c.name, got, want)
			}
		})
	}
}
