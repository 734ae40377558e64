package explore_test

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/Cynosureprime/Cencforce/internal/explore"
	"github.com/Cynosureprime/Cencforce/internal/format"
	"github.com/Cynosureprime/Cencforce/internal/registry"
)

type captureFormatter struct {
	results []format.Result
}

func (c *captureFormatter) Begin([]byte) error       { return nil }
func (c *captureFormatter) Emit(r format.Result) error {
	c.results = append(c.results, r)
	return nil
}
func (c *captureFormatter) End() error { return nil }

func setup(t *testing.T) {
	t.Helper()
	registry.Reset()
	registry.Build()
}

func TestDecodeModeSuppressesASCIIIdentity(t *testing.T) {
	setup(t)
	drv := explore.NewDriver()
	rec := &captureFormatter{}
	opts := explore.Options{Include: map[string]bool{"ascii": true}}

	if err := drv.Run([]byte("hello"), explore.ModeDecode, opts, rec); err != nil {
		t.Fatal(err)
	}
	for _, r := range rec.results {
		if r.Encoding == "ASCII" && r.Strategy == "strict" {
			t.Fatalf("expected ASCII strict decode of pure ASCII input to be identity-suppressed, got %+v", r)
		}
	}
}

func TestDecodeModeEmitsStrictForTransformingEncoding(t *testing.T) {
	setup(t)
	drv := explore.NewDriver()
	rec := &captureFormatter{}
	opts := explore.Options{Include: map[string]bool{"windows-1252": true}}

	if err := drv.Run([]byte{0xE9}, explore.ModeDecode, opts, rec); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, r := range rec.results {
		if r.Encoding == "Windows-1252" && r.Strategy == "strict" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a strict decode result for Windows-1252, got %+v", rec.results)
	}
}

func TestEncodeModeSkippedForInvalidUTF8(t *testing.T) {
	setup(t)
	drv := explore.NewDriver()
	rec := &captureFormatter{}
	opts := explore.Options{Include: map[string]bool{"ascii": true}}

	if err := drv.Run([]byte{0xFF, 0xFE}, explore.ModeEncode, opts, rec); err != nil {
		t.Fatal(err)
	}
	if len(rec.results) != 0 {
		t.Fatalf("expected no encode results for invalid UTF-8 input, got %+v", rec.results)
	}
}

func TestUniqueDedupsIdenticalOutputs(t *testing.T) {
	setup(t)
	opts := explore.Options{
		Include: map[string]bool{"ascii": true},
		Unique:  true,
	}

	drv := explore.NewDriver()
	rec := &captureFormatter{}
	if err := drv.Run([]byte{0x80}, explore.ModeDecode, opts, rec); err != nil {
		t.Fatal(err)
	}

	seen := map[string]int{}
	for _, r := range rec.results {
		seen[string(r.Output)]++
	}
	for out, n := range seen {
		if n != 1 {
			t.Errorf("output %q emitted %d times with --unique, want exactly 1", out, n)
		}
	}
}

func TestExcludeFiltersOutEncoding(t *testing.T) {
	setup(t)
	drv := explore.NewDriver()
	rec := &captureFormatter{}
	opts := explore.Options{Exclude: map[string]bool{"ascii": true}}

	if err := drv.Run([]byte("hi"), explore.ModeDecode, opts, rec); err != nil {
		t.Fatal(err)
	}
	for _, r := range rec.results {
		if r.Encoding == "ASCII" {
			t.Fatalf("expected ASCII to be excluded, got %+v", r)
		}
	}
}

// TestUniqueNeverDropsDistinctResults is spec §8's quantified invariant:
// for any line, the number of results with --unique set is at most the
// number without it, and the set of distinct (op, enc, target, output)
// tuples is identical either way.
func TestUniqueNeverDropsDistinctResults(t *testing.T) {
	setup(t)
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.SliceOfN(rapid.Byte(), 0, 12).Draw(t, "line")

		withDedup := &captureFormatter{}
		explore.NewDriver().Run(line, explore.ModeDecode, explore.Options{
			Include: map[string]bool{"ascii": true, "windows-1252": true},
			Unique:  true,
		}, withDedup)

		withoutDedup := &captureFormatter{}
		explore.NewDriver().Run(line, explore.ModeDecode, explore.Options{
			Include: map[string]bool{"ascii": true, "windows-1252": true},
			Unique:  false,
		}, withoutDedup)

		if len(withDedup.results) > len(withoutDedup.results) {
			t.Fatalf("--unique produced more results (%d) than without (%d)", len(withDedup.results), len(withoutDedup.results))
		}

		distinct := func(rs []format.Result) map[string]bool {
			set := make(map[string]bool, len(rs))
			for _, r := range rs {
				set[fmt.Sprintf("%s|%s|%s|%x", r.Op, r.Encoding, r.Target, r.Output)] = true
			}
			return set
		}
		a, b := distinct(withDedup.results), distinct(withoutDedup.results)
		if len(a) != len(b) {
			t.Fatalf("distinct tuple sets differ in size: dedup=%d, non-dedup=%d", len(a), len(b))
		}
		for k := range a {
			if !b[k] {
				t.Fatalf("tuple %q present with --unique but missing without it", k)
			}
		}
	})
}

func TestTranscodeEarlyExitsOnStrictSuccess(t *testing.T) {
	setup(t)
	drv := explore.NewDriver()
	rec := &captureFormatter{}
	opts := explore.Options{Include: map[string]bool{"ascii": true, "windows-1252": true}}

	if err := drv.Run([]byte("hi"), explore.ModeTranscode, opts, rec); err != nil {
		t.Fatal(err)
	}
	// ascii -> windows-1252 strict round-trips to the same bytes, so it
	// should be suppressed by identity and nothing past strict emitted
	// for that (source, target) pair.
	for _, r := range rec.results {
		if r.Op == format.OpTranscode && r.Encoding == "ASCII" && r.Target == "Windows-1252" && r.Strategy != "strict" {
			t.Fatalf("expected early exit after strict success, got %+v", r)
		}
	}
}
