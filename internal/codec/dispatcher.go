package codec

import (
	"github.com/Cynosureprime/Cencforce/internal/singlebyte"
	"github.com/Cynosureprime/Cencforce/internal/strategy"
)

// Tag identifies a codec family, matching the encoding descriptor's tag
// field one-to-one.
type Tag int

const (
	TagSingleByte Tag = iota
	TagUTF8
	TagUTF7
	TagUTF16BOM
	TagUTF16BE
	TagUTF16LE
	TagUTF32BOM
	TagUTF32BE
	TagUTF32LE
	TagCESU8
	TagShiftJIS
	TagEUCJP
	TagISO2022JP
	TagGBK
	TagGB18030
	TagBig5
	TagEUCKR
)

// Dispatch routes to the concrete codec function for tag, mirroring
// spec §4.6's tagged union: one switch, no per-encoding interface
// indirection, matching the teacher's own preference for small
// concrete function values over deep interface hierarchies.
func Dispatch(tag Tag, single *singlebyte.Codec) (
	decode func(dst, src []byte, ds strategy.Decode) ([]byte, bool, bool),
	encode func(dst, src []byte, es strategy.Encode) ([]byte, bool, bool),
) {
	switch tag {
	case TagSingleByte:
		return single.Decode, single.Encode
	case TagUTF8:
		return UTF8Decode, UTF8Encode
	case TagUTF7:
		return UTF7Decode, UTF7Encode
	case TagUTF16BOM:
		return UTF16BOMDecode, UTF16BOMEncode
	case TagUTF16BE:
		return func(dst, src []byte, ds strategy.Decode) ([]byte, bool, bool) {
				return UTF16Decode(dst, src, BigEndian, ds)
			}, func(dst, src []byte, es strategy.Encode) ([]byte, bool, bool) {
				return UTF16Encode(dst, src, BigEndian, es)
			}
	case TagUTF16LE:
		return func(dst, src []byte, ds strategy.Decode) ([]byte, bool, bool) {
				return UTF16Decode(dst, src, LittleEndian, ds)
			}, func(dst, src []byte, es strategy.Encode) ([]byte, bool, bool) {
				return UTF16Encode(dst, src, LittleEndian, es)
			}
	case TagUTF32BOM:
		return UTF32BOMDecode, UTF32BOMEncode
	case TagUTF32BE:
		return func(dst, src []byte, ds strategy.Decode) ([]byte, bool, bool) {
				return UTF32Decode(dst, src, BigEndian, ds)
			}, func(dst, src []byte, es strategy.Encode) ([]byte, bool, bool) {
				return UTF32Encode(dst, src, BigEndian, es)
			}
	case TagUTF32LE:
		return func(dst, src []byte, ds strategy.Decode) ([]byte, bool, bool) {
				return UTF32Decode(dst, src, LittleEndian, ds)
			}, func(dst, src []byte, es strategy.Encode) ([]byte, bool, bool) {
				return UTF32Encode(dst, src, LittleEndian, es)
			}
	case TagCESU8:
		return CESU8Decode, CESU8Encode
	case TagShiftJIS:
		return ShiftJISDecode, ShiftJISEncode
	case TagEUCJP:
		return EUCJPDecode, EUCJPEncode
	case TagISO2022JP:
		return ISO2022JPDecode, ISO2022JPEncode
	case TagGBK:
		return GBKDecode, GBKEncode
	case TagGB18030:
		return GB18030Decode, GB18030Encode
	case TagBig5:
		return Big5Decode, Big5Encode
	case TagEUCKR:
		return EUCKRDecode, EUCKREncode
	default:
		return UTF8Decode, UTF8Encode
	}
}
