// Package registry holds the set of named encodings exposed to the rest
// of the engine: canonical name, codec tag, single-byte table pointer,
// aliases, and an availability flag (spec §3 "Encoding descriptor").
//
// The storage shape — a mutex-guarded name-to-descriptor map with
// Register/Lookup/ListSorted — generalizes the teacher's check registry
// (pkg/checks/registry.go) from a flat list of validation units to a
// flat list of encodings.
package registry

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/Cynosureprime/Cencforce/internal/codec"
	"github.com/Cynosureprime/Cencforce/internal/singlebyte"
	"github.com/Cynosureprime/Cencforce/internal/strategy"
	"github.com/Cynosureprime/Cencforce/internal/tables"
)

// Descriptor is one named encoding, immutable after Build (spec §3).
type Descriptor struct {
	Name    string
	Aliases []string
	Tag     codec.Tag
	Table   *[256]rune // only meaningful when Tag == codec.TagSingleByte

	// Available is the spec §3 "availability flag". Every built-in
	// (hand-rolled) codec is always available — the engine never depends
	// on an external library to perform a conversion — so this is always
	// true for descriptors registered by Build.
	Available bool

	// Corroborated records whether golang.org/x/net/html/charset or
	// golang.org/x/text/encoding/htmlindex also recognise this name. This
	// is advisory metadata surfaced by `-list-encodings` only; it never
	// gates decode/encode/transcode exploration (see explore.Options.allowed).
	Corroborated bool

	single *singlebyte.Codec
}

// DecodeFunc and EncodeFunc are the dispatcher's function-value shapes,
// named here so the exploration driver doesn't need to import codec
// just to spell out the signature.
type DecodeFunc = func(dst, src []byte, ds strategy.Decode) ([]byte, bool, bool)
type EncodeFunc = func(dst, src []byte, es strategy.Encode) ([]byte, bool, bool)

// Codec lazily builds (and caches) the single-byte Codec for this
// descriptor. UTF/CJK descriptors have no per-instance state, so their
// codec functions are looked up directly from the dispatcher.
func (d *Descriptor) Codec() (decode DecodeFunc, encode EncodeFunc) {
	mu.Lock()
	if d.Tag == codec.TagSingleByte && d.single == nil {
		d.single = singlebyte.New(d.Table)
	}
	single := d.single
	mu.Unlock()
	return codec.Dispatch(d.Tag, single)
}

var (
	mu     sync.RWMutex
	byName = map[string]*Descriptor{}
)

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Register adds a descriptor under its canonical name and every alias.
func Register(d *Descriptor) {
	mu.Lock()
	defer mu.Unlock()
	byName[normalize(d.Name)] = d
	for _, a := range d.Aliases {
		byName[normalize(a)] = d
	}
}

// Lookup resolves a descriptor by canonical name or alias, case-insensitively.
func Lookup(name string) (*Descriptor, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := byName[normalize(name)]
	return d, ok
}

// ListSorted returns every distinct descriptor (aliases collapsed),
// sorted by canonical name.
func ListSorted() []*Descriptor {
	mu.RLock()
	seen := make(map[*Descriptor]bool)
	out := make([]*Descriptor, 0, len(byName))
	for _, d := range byName {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Reset clears the registry; used by tests.
func Reset() {
	mu.Lock()
	byName = map[string]*Descriptor{}
	mu.Unlock()
}

// probeAvailability asks golang.org/x/net/html/charset and
// golang.org/x/text/encoding/htmlindex whether they recognise name. This is
// advisory only (spec has no notion of a codec being unavailable at the
// table level): it feeds the registry's Corroborated flag, which the CLI
// surfaces in `-list-encodings` output, but never gates decode/encode
// correctness — the hand-rolled codec in internal/codec runs regardless,
// and a charset/htmlindex miss never disables it.
func probeAvailability(name string) bool {
	if _, err := htmlindex.Get(name); err == nil {
		return true
	}
	enc, canonical := charset.Lookup(name)
	return enc != nil && canonical != ""
}

func single(name string, table *[256]rune, aliases ...string) *Descriptor {
	return &Descriptor{
		Name:         name,
		Aliases:      aliases,
		Tag:          codec.TagSingleByte,
		Table:        table,
		Available:    true,
		Corroborated: probeAvailability(name),
	}
}

func wide(name string, tag codec.Tag, aliases ...string) *Descriptor {
	return &Descriptor{
		Name:         name,
		Aliases:      aliases,
		Tag:          tag,
		Available:    true,
		Corroborated: probeAvailability(name),
	}
}

// Build registers the full 104-entry encoding set of spec §6. Safe to
// call more than once (e.g. after Reset in a test); later registrations
// simply replace earlier ones.
func Build() {
	entries := []*Descriptor{
		single("ASCII", tables.ASCII, "US-ASCII", "us", "ANSI_X3.4-1968"),
		single("ISO-8859-1", tables.Latin1, "Latin1", "ISO8859-1", "latin1"),
		single("ISO-8859-2", tables.Latin2, "Latin2"),
		single("ISO-8859-3", tables.Latin3, "Latin3"),
		single("ISO-8859-4", tables.Latin4, "Latin4"),
		single("ISO-8859-5", tables.Cyrillic, "cyrillic"),
		single("ISO-8859-6", tables.Arabic, "arabic"),
		single("ISO-8859-7", tables.Greek, "greek"),
		single("ISO-8859-8", tables.Hebrew, "hebrew"),
		single("ISO-8859-9", tables.Latin5, "Latin5"),
		single("ISO-8859-10", tables.Latin6, "Latin6"),
		single("ISO-8859-11", tables.Thai, "thai"),
		single("ISO-8859-13", tables.Latin7, "Latin7"),
		single("ISO-8859-14", tables.Latin8, "Latin8"),
		single("ISO-8859-15", tables.Latin9, "Latin9", "ISO-8859-15"),
		single("ISO-8859-16", tables.Latin10, "Latin10"),

		single("Windows-1250", tables.Windows1250, "cp1250"),
		single("Windows-1251", tables.Windows1251, "cp1251"),
		single("Windows-1252", tables.Windows1252, "cp1252", "ansi"),
		single("Windows-1253", tables.Windows1253, "cp1253"),
		single("Windows-1254", tables.Windows1254, "cp1254"),
		single("Windows-1255", tables.Windows1255, "cp1255"),
		single("Windows-1256", tables.Windows1256, "cp1256"),
		single("Windows-1257", tables.Windows1257, "cp1257"),
		single("Windows-1258", tables.Windows1258, "cp1258"),

		single("CP437", tables.CP437, "DOS-437", "IBM437"),
		single("CP437-DOC", tables.CP437Doc),
		single("CP850", tables.CP850, "IBM850"),
		single("CP850-DOC", tables.CP850Doc),
		single("CP852", tables.CP852, "IBM852"),
		single("CP852-DOC", tables.CP852Doc),
		single("CP855", tables.CP855, "IBM855"),
		single("CP855-DOC", tables.CP855Doc),
		single("CP857", tables.CP857, "IBM857"),
		single("CP857-DOC", tables.CP857Doc),
		single("CP858", tables.CP858, "IBM858"),
		single("CP858-DOC", tables.CP858Doc),
		single("CP860", tables.CP860, "IBM860"),
		single("CP860-DOC", tables.CP860Doc),
		single("CP861", tables.CP861, "IBM861"),
		single("CP861-DOC", tables.CP861Doc),
		single("CP862", tables.CP862, "IBM862"),
		single("CP862-DOC", tables.CP862Doc),
		single("CP863", tables.CP863, "IBM863"),
		single("CP863-DOC", tables.CP863Doc),
		single("CP864", tables.CP864, "IBM864"),
		single("CP864-DOC", tables.CP864Doc),
		single("CP865", tables.CP865, "IBM865"),
		single("CP865-DOC", tables.CP865Doc),
		single("CP866", tables.CP866, "IBM866"),
		single("CP866-DOC", tables.CP866Doc),
		single("CP869", tables.CP869, "IBM869"),
		single("CP869-DOC", tables.CP869Doc),

		single("KOI8-R", tables.KOI8R),
		single("KOI8-U", tables.KOI8U),

		single("MacRoman", tables.MacRoman, "x-mac-roman"),
		single("MacCyrillic", tables.MacCyrillic, "x-mac-cyrillic"),
		single("MacGreek", tables.MacGreek, "x-mac-greek"),
		single("MacTurkish", tables.MacTurkish, "x-mac-turkish"),
		single("MacCentralEurope", tables.MacCentralEurope, "x-mac-ce"),
		single("MacIcelandic", tables.MacIcelandic, "x-mac-icelandic"),
		single("MacCroatian", tables.MacCroatian, "x-mac-croatian"),
		single("MacRomanian", tables.MacRomanian, "x-mac-romanian"),
		single("MacArabic", tables.MacArabic, "x-mac-arabic"),
		single("MacHebrew", tables.MacHebrew, "x-mac-hebrew"),
		single("MacThai", tables.MacThai, "x-mac-thai"),

		single("EBCDIC-CP037", tables.EBCDIC037, "cp037"),
		single("EBCDIC-CP500", tables.EBCDIC500, "cp500"),
		single("EBCDIC-CP875", tables.EBCDIC875, "cp875"),
		single("EBCDIC-CP1026", tables.EBCDIC1026, "cp1026"),
		single("EBCDIC-CP1140", tables.EBCDIC1140, "cp1140"),
		single("EBCDIC-CP1141", tables.EBCDIC1141, "cp1141"),
		single("EBCDIC-CP1142", tables.EBCDIC1142, "cp1142"),
		single("EBCDIC-CP1143", tables.EBCDIC1143, "cp1143"),
		single("EBCDIC-CP1144", tables.EBCDIC1144, "cp1144"),
		single("EBCDIC-CP1145", tables.EBCDIC1145, "cp1145"),

		single("HP-Roman8", tables.HPRoman8, "roman8"),
		single("DEC-MCS", tables.DECMCS),
		single("JIS_X0201", tables.JISX0201, "JIS-X-0201"),
		single("KZ-1048", tables.KZ1048, "STRK1048-2002"),
		single("GSM-03.38", tables.GSM0338, "gsm03.38"),
		single("VISCII", tables.VISCII),
		single("ATASCII", tables.ATASCII),
		single("PETSCII", tables.PETSCII),
		single("Adobe-Standard", tables.AdobeStandard),
		single("Adobe-Symbol", tables.AdobeSymbol),
		single("T.61-8bit", tables.T61_8bit, "T.61"),

		wide("UTF-8", codec.TagUTF8, "utf8"),
		wide("UTF-7", codec.TagUTF7, "utf7", "unicode-1-1-utf-7"),
		wide("UTF-16", codec.TagUTF16BOM, "utf16", "UTF-16BOM"),
		wide("UTF-16BE", codec.TagUTF16BE, "utf16be"),
		wide("UTF-16LE", codec.TagUTF16LE, "utf16le"),
		wide("UTF-32", codec.TagUTF32BOM, "utf32", "UTF-32BOM"),
		wide("UTF-32BE", codec.TagUTF32BE, "utf32be"),
		wide("UTF-32LE", codec.TagUTF32LE, "utf32le"),
		wide("CESU-8", codec.TagCESU8, "cesu8"),

		wide("GBK", codec.TagGBK, "CP936"),
		wide("GB18030", codec.TagGB18030),
		wide("GB2312", codec.TagGBK, "CP2312", "EUC-CN"), // alias of GBK behaviour, spec §6
		wide("Big5", codec.TagBig5, "CP950"),
		wide("Shift_JIS", codec.TagShiftJIS, "SJIS", "CP932"),
		wide("EUC-JP", codec.TagEUCJP, "eucJP"),
		wide("ISO-2022-JP", codec.TagISO2022JP, "csISO2022JP"),
		wide("EUC-KR", codec.TagEUCKR, "CP949-base"),
	}
	for _, d := range entries {
		Register(d)
	}
}
