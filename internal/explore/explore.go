// Package explore implements the exploration driver of spec §4.7: per
// input line, fan out over decode, encode, and transcode against the
// encoding registry and every compatible error strategy, deduplicate,
// and hand each surviving result to a format.Formatter.
package explore

import (
	"hash/fnv"

	"github.com/Cynosureprime/Cencforce/internal/format"
	"github.com/Cynosureprime/Cencforce/internal/registry"
	"github.com/Cynosureprime/Cencforce/internal/strategy"
	"github.com/Cynosureprime/Cencforce/internal/utf8x"
)

// Mode selects which of decode/encode/transcode to run, matching the
// CLI's -m flag (spec §6).
type Mode int

const (
	ModeDecode Mode = 1 << iota
	ModeEncode
	ModeTranscode
)

const (
	ModeBoth Mode = ModeDecode | ModeEncode
	ModeAll  Mode = ModeDecode | ModeEncode | ModeTranscode
)

// Options controls encoding inclusion/exclusion and result filtering,
// each independently set from the CLI (spec §6).
type Options struct {
	Include  map[string]bool // lowercased names/aliases; nil/empty means "all"
	Exclude  map[string]bool // lowercased names/aliases
	NoErrors bool
	Unique   bool
}

func (o Options) allowed(d *registry.Descriptor) bool {
	// d.Available is always true for a built-in codec (see
	// registry.Descriptor doc): exploration never gates on it, and
	// certainly never on d.Corroborated, which is advisory
	// externally-verified metadata only, surfaced by -list-encodings.
	if len(o.Include) > 0 {
		if !o.Include[normalized(d.Name)] {
			ok := false
			for _, a := range d.Aliases {
				if o.Include[normalized(a)] {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
		}
	}
	if len(o.Exclude) > 0 {
		if o.Exclude[normalized(d.Name)] {
			return false
		}
		for _, a := range d.Aliases {
			if o.Exclude[normalized(a)] {
				return false
			}
		}
	}
	return true
}

func normalized(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

// dedupTable is the per-line soft-dedup set of spec §2/§8: a fixed
// 8192-slot open-addressing FNV-1a hash set. A zero slot means empty;
// once full, new entries are accepted unconditionally rather than
// evicting or growing (spec: "soft dedup, not a guarantee").
type dedupTable struct {
	slots [8192]uint64
	n     int
}

func (t *dedupTable) reset() { *t = dedupTable{} }

// seen reports whether b's hash was already present, inserting it if not
// (and if the table still has room).
func (t *dedupTable) seen(b []byte) bool {
	h := fnv.New64a()
	h.Write(b)
	sum := h.Sum64()
	if sum == 0 {
		sum = 1 // keep the zero slot meaning "empty" unambiguous
	}
	if t.n >= len(t.slots) {
		return false // table full: accept unconditionally
	}
	idx := int(sum % uint64(len(t.slots)))
	for {
		if t.slots[idx] == 0 {
			t.slots[idx] = sum
			t.n++
			return false
		}
		if t.slots[idx] == sum {
			return true
		}
		idx = (idx + 1) % len(t.slots)
	}
}

// Driver holds the per-worker scratch state the exploration loop reuses
// across lines: a dedup table and an output scratch buffer, both
// private to whichever job currently owns the Driver (spec §4.9 "each
// job's ... dedup table are private to the currently-owning worker").
type Driver struct {
	dedup   dedupTable
	scratch []byte
}

// NewDriver allocates per-worker exploration state.
func NewDriver() *Driver {
	return &Driver{}
}

// Run explores line under mode and opts, emitting every surviving result
// through f. f.Begin must already have been called for this line by the
// caller (the pipeline owns the header/line framing).
func (drv *Driver) Run(line []byte, mode Mode, opts Options, f format.Formatter) error {
	drv.dedup.reset()

	if mode&ModeDecode != 0 {
		if err := drv.runDecode(line, opts, f); err != nil {
			return err
		}
	}
	if mode&ModeEncode != 0 && utf8x.Valid(line) {
		if err := drv.runEncode(line, opts, f); err != nil {
			return err
		}
	}
	if mode&ModeTranscode != 0 {
		if err := drv.runTranscode(line, opts, f); err != nil {
			return err
		}
	}
	return nil
}

func (drv *Driver) runDecode(line []byte, opts Options, f format.Formatter) error {
	for _, d := range registry.ListSorted() {
		if !opts.allowed(d) {
			continue
		}
		decode, _ := d.Codec()

		strict, hadErrors, ok := decode(drv.scratch[:0], line, strategy.DecodeStrict)
		if ok && !hadErrors {
			if !bytesEqual(strict, line) {
				if err := f.Emit(format.Result{Op: format.OpDecode, Encoding: d.Name, Strategy: "strict", Output: clone(strict)}); err != nil {
					return err
				}
			}
			continue // identity suppressed, or already emitted: move to next encoding
		}

		for _, ds := range strategy.AllDecode() {
			if ds == strategy.DecodeStrict {
				continue
			}
			out, hadErrors, ok := decode(drv.scratch[:0], line, ds)
			if !ok {
				continue
			}
			if opts.NoErrors && hadErrors {
				continue
			}
			if opts.Unique && drv.dedup.seen(out) {
				continue
			}
			if err := f.Emit(format.Result{Op: format.OpDecode, Encoding: d.Name, Strategy: ds.Name(), Output: clone(out)}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (drv *Driver) runEncode(line []byte, opts Options, f format.Formatter) error {
	for _, d := range registry.ListSorted() {
		if !opts.allowed(d) {
			continue
		}
		_, encode := d.Codec()

		strict, hadErrors, ok := encode(drv.scratch[:0], line, strategy.EncodeStrict)
		if ok && !hadErrors {
			if !bytesEqual(strict, line) {
				if err := f.Emit(format.Result{Op: format.OpEncode, Encoding: d.Name, Strategy: "strict", Output: clone(strict)}); err != nil {
					return err
				}
			}
			continue
		}

		for _, es := range strategy.AllEncode() {
			if es == strategy.EncodeStrict {
				continue
			}
			out, hadErrors, ok := encode(drv.scratch[:0], line, es)
			if !ok {
				continue
			}
			if opts.NoErrors && hadErrors {
				continue
			}
			if opts.Unique && drv.dedup.seen(out) {
				continue
			}
			if err := f.Emit(format.Result{Op: format.OpEncode, Encoding: d.Name, Strategy: es.Name(), Output: clone(out)}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (drv *Driver) runTranscode(line []byte, opts Options, f format.Formatter) error {
	sources := registry.ListSorted()
	for _, src := range sources {
		if !opts.allowed(src) {
			continue
		}
		decode, _ := src.Codec()
		utf8Form, _, ok := decode(nil, line, strategy.DecodeReplacementFFFD)
		if !ok {
			continue
		}

		for _, dst := range sources {
			if dst == src || !opts.allowed(dst) {
				continue
			}
			_, encode := dst.Codec()

			for _, es := range strategy.AllEncode() {
				out, hadErrors, ok := encode(drv.scratch[:0], utf8Form, es)
				if !ok {
					continue
				}

				if es == strategy.EncodeStrict {
					if hadErrors {
						continue
					}
					if !bytesEqual(out, line) {
						if err := f.Emit(format.Result{
							Op: format.OpTranscode, Encoding: src.Name, Target: dst.Name,
							Strategy: es.Name(), Output: clone(out),
						}); err != nil {
							return err
						}
					}
					break // strict succeeded without errors: early-exit the strategy loop
				}

				if opts.NoErrors && hadErrors {
					continue
				}
				if opts.Unique && drv.dedup.seen(out) {
					continue
				}
				if err := f.Emit(format.Result{
					Op: format.OpTranscode, Encoding: src.Name, Target: dst.Name,
					Strategy: es.Name(), Output: clone(out),
				}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
