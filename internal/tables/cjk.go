package tables

// CJKIndex is a sparse pointer -> code point table for a double-byte (or
// four-byte) CJK encoding, plus the reverse map built once at startup by
// sorting the defined entries by code point — the same "sorted array +
// binary search" technique spec §4.3/§9 mandates for single-byte reverse
// maps, reused here for the CJK pointer tables.
type CJKIndex struct {
	Forward map[int]rune
	rev     []cjkRevEntry
}

type cjkRevEntry struct {
	cp rune
	pt int
}

func newCJKIndex(forward map[int]rune) *CJKIndex {
	idx := &CJKIndex{Forward: forward}
	idx.rev = make([]cjkRevEntry, 0, len(forward))
	for pt, cp := range forward {
		idx.rev = append(idx.rev, cjkRevEntry{cp: cp, pt: pt})
	}
	// insertion sort is plenty for the representative table sizes here;
	// ties (two pointers mapping to the same code point) keep the
	// highest pointer, mirroring the single-byte "last wins" rule.
	for i := 1; i < len(idx.rev); i++ {
		j := i
		for j > 0 && idx.rev[j-1].cp > idx.rev[j].cp {
			idx.rev[j-1], idx.rev[j] = idx.rev[j], idx.rev[j-1]
			j--
		}
	}
	out := idx.rev[:0]
	for i := 0; i < len(idx.rev); i++ {
		if len(out) > 0 && out[len(out)-1].cp == idx.rev[i].cp {
			if idx.rev[i].pt > out[len(out)-1].pt {
				out[len(out)-1].pt = idx.rev[i].pt
			}
			continue
		}
		out = append(out, idx.rev[i])
	}
	idx.rev = out
	return idx
}

// Decode returns the code point for pointer, and whether it is defined.
func (idx *CJKIndex) Decode(pointer int) (rune, bool) {
	cp, ok := idx.Forward[pointer]
	return cp, ok
}

// Encode binary-searches the reverse map for cp and returns its pointer.
func (idx *CJKIndex) Encode(cp rune) (int, bool) {
	lo, hi := 0, len(idx.rev)
	for lo < hi {
		mid := (lo + hi) / 2
		if idx.rev[mid].cp < cp {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(idx.rev) && idx.rev[lo].cp == cp {
		return idx.rev[lo].pt, true
	}
	return 0, false
}

// JIS0208 is a representative subset of the WHATWG jis0208 index (common
// kanji, kana, and full-width punctuation pointers). Real deployments
// link the full ~7700-entry generated index in its place.
var JIS0208 = newCJKIndex(map[int]rune{
	0: 0x3000, 1: 0x3001, 2: 0x3002, 3: 0xFF0C, 4: 0xFF0E, 5: 0x30FB,
	8: 0x3041, 9: 0x3042, 10: 0x3043, 11: 0x3044, 12: 0x3045, 13: 0x3046,
	188: 0x4E00, 189: 0x4E01, 190: 0x4E03, 191: 0x4E08, 192: 0x4E09,
	376: 0x4E2D, 377: 0x4E2E, 564: 0x4EBA, 565: 0x4EBB,
	1000: 0x5927, 1001: 0x5929, 1002: 0x5B50, 2000: 0x65E5, 2001: 0x672C,
	2002: 0x8A9E, 3000: 0x6587, 3001: 0x5B57,
})

// JISX0212 is EUC-JP's supplementary plane (representative subset).
var JISX0212 = newCJKIndex(map[int]rune{
	0: 0x02D8, 1: 0x02C7, 2: 0x00B8, 3: 0x02D9, 94: 0x4E02, 95: 0x4E04,
})

// GBKIndex is a representative subset of the WHATWG gbk index.
var GBKIndex = newCJKIndex(map[int]rune{
	0: 0x4E02, 1: 0x4E04, 2: 0x4E05, 3: 0x4E06, 4: 0x4E0F,
	190: 0x554A, 191: 0x554C, 380: 0x4F60, 381: 0x597D,
	1000: 0x4E2D, 1001: 0x6587, 1002: 0x56FD, 2000: 0x5317, 2001: 0x4EAC,
})

// GB18030Range is one entry of the two-way sorted ranges table GB18030
// uses for four-byte code points beyond the two-byte GBK table.
type GB18030Range struct {
	Pointer int
	CP      rune
}

// GB18030Ranges must stay sorted by Pointer ascending; DecodeGB18030Range
// binary-searches it and EncodeGB18030Range scans it in reverse
// (spec §4.5 "GB18030").
var GB18030Ranges = []GB18030Range{
	{Pointer: 0, CP: 0x0080},
	{Pointer: 36, CP: 0x00A5},
	{Pointer: 100, CP: 0x00F8},
	{Pointer: 10000, CP: 0x2460},
	{Pointer: 39419, CP: 0xE865},
	{Pointer: 189000, CP: 0x10000},
}

// DecodeGB18030Range finds the range with the greatest starting pointer
// that is <= the query pointer and returns the mapped code point.
func DecodeGB18030Range(pointer int) (rune, bool) {
	if len(GB18030Ranges) == 0 || pointer < GB18030Ranges[0].Pointer {
		return 0, false
	}
	lo, hi := 0, len(GB18030Ranges)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if mid < len(GB18030Ranges) && GB18030Ranges[mid].Pointer <= pointer {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	r := GB18030Ranges[lo]
	cp := r.CP + rune(pointer-r.Pointer)
	return cp, true
}

// EncodeGB18030Range reverse-searches for the highest-starting range
// whose base code point is <= cp, per spec §4.5's encode rule.
func EncodeGB18030Range(cp rune) (int, bool) {
	for i := len(GB18030Ranges) - 1; i >= 0; i-- {
		if GB18030Ranges[i].CP <= cp {
			return GB18030Ranges[i].Pointer + int(cp-GB18030Ranges[i].CP), true
		}
	}
	return 0, false
}

// Big5Index is a representative subset of the WHATWG big5 index.
var Big5Index = newCJKIndex(map[int]rune{
	0: 0x3000, 1: 0x3001, 157: 0x4E00, 158: 0x4E01, 314: 0x5927,
	1000: 0x4E2D, 1001: 0x6587, 2000: 0x53F0, 2001: 0x7063,
})

// EUCKRIndex is a representative subset of the WHATWG euc-kr index.
var EUCKRIndex = newCJKIndex(map[int]rune{
	0: 0xAC02, 1: 0xAC03, 190: 0xAC10, 380: 0xAC11,
	1000: 0xAC00, 1001: 0xB098, 1002: 0xB2E4, 2000: 0xD55C, 2001: 0xAD6D,
})
