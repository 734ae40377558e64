package registry_test

import (
	"testing"

	"github.com/Cynosureprime/Cencforce/internal/registry"
	"github.com/Cynosureprime/Cencforce/internal/strategy"
)

func TestBuildRegistersCoreEncodings(t *testing.T) {
	registry.Reset()
	registry.Build()

	for _, name := range []string{"ASCII", "ISO-8859-1", "Windows-1252", "UTF-8", "UTF-16", "Shift_JIS", "GB18030"} {
		if _, ok := registry.Lookup(name); !ok {
			t.Errorf("expected %q to be registered", name)
		}
	}
}

func TestLookupIsCaseInsensitiveAndAliased(t *testing.T) {
	registry.Reset()
	registry.Build()

	if _, ok := registry.Lookup("ascii"); !ok {
		t.Errorf("lowercase lookup failed")
	}
	if _, ok := registry.Lookup("cp1252"); !ok {
		t.Errorf("alias lookup failed")
	}
	if _, ok := registry.Lookup("does-not-exist"); ok {
		t.Errorf("unexpected hit for unknown name")
	}
}

func TestGB2312AliasesGBKBehaviour(t *testing.T) {
	registry.Reset()
	registry.Build()

	gb2312, ok := registry.Lookup("GB2312")
	if !ok {
		t.Fatalf("GB2312 not registered")
	}
	gbk, ok := registry.Lookup("GBK")
	if !ok {
		t.Fatalf("GBK not registered")
	}
	if gb2312.Tag != gbk.Tag {
		t.Fatalf("GB2312 tag = %v, want same as GBK (%v)", gb2312.Tag, gbk.Tag)
	}
}

func TestDescriptorCodecRoundTripsASCII(t *testing.T) {
	registry.Reset()
	registry.Build()

	d, ok := registry.Lookup("ASCII")
	if !ok {
		t.Fatalf("ASCII not registered")
	}
	decode, encode := d.Codec()
	decoded, hadErrors, ok := decode(nil, []byte("hi"), strategy.DecodeStrict)
	if !ok || hadErrors || string(decoded) != "hi" {
		t.Fatalf("decode = %q hadErrors=%v ok=%v", decoded, hadErrors, ok)
	}
	encoded, hadErrors, ok := encode(nil, decoded, strategy.EncodeStrict)
	if !ok || hadErrors || string(encoded) != "hi" {
		t.Fatalf("encode = %q hadErrors=%v ok=%v", encoded, hadErrors, ok)
	}
}

func TestListSortedCollapsesAliases(t *testing.T) {
	registry.Reset()
	registry.Build()

	all := registry.ListSorted()
	seen := map[string]int{}
	for _, d := range all {
		seen[d.Name]++
	}
	for name, count := range seen {
		if count != 1 {
			t.Errorf("descriptor %q listed %d times, want 1", name, count)
		}
	}
	if len(all) < 90 {
		t.Errorf("expected a large registry, got %d entries", len(all))
	}
}

// TestEveryBuiltinCodecIsAvailable guards against the Available flag ever
// being wired back to the advisory charset/htmlindex probe: every
// registered descriptor is a hand-rolled codec the engine can run with no
// external dependency, so Available must be true for all of them even
// when charset/htmlindex don't recognise the name (CESU-8, the DOS/EBCDIC
// pages, ATASCII/PETSCII/VISCII, ...). Only Corroborated may vary.
func TestEveryBuiltinCodecIsAvailable(t *testing.T) {
	registry.Reset()
	registry.Build()

	sawUncorroborated := false
	for _, d := range registry.ListSorted() {
		if !d.Available {
			t.Errorf("descriptor %q has Available=false; every built-in codec must be explorable", d.Name)
		}
		if !d.Corroborated {
			sawUncorroborated = true
		}
	}
	if !sawUncorroborated {
		t.Errorf("expected at least one descriptor unrecognised by charset/htmlindex (e.g. CESU-8); Corroborated probe may not be running")
	}
}

// TestCESU8IsExplorableDespiteNoExternalCorroboration is the regression
// case for spec §8 scenario 4: CESU-8 is not known to
// golang.org/x/net/html/charset or golang.org/x/text/encoding/htmlindex,
// but must still be reachable from exploration (Available must not be
// gated on that probe).
func TestCESU8IsExplorableDespiteNoExternalCorroboration(t *testing.T) {
	registry.Reset()
	registry.Build()

	d, ok := registry.Lookup("CESU-8")
	if !ok {
		t.Fatalf("CESU-8 not registered")
	}
	if !d.Available {
		t.Fatalf("CESU-8 must be Available regardless of external corroboration")
	}
}
