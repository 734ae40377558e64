// Package pipeline implements the block-I/O and worker-pool model of
// spec §4.9/§5: a reader owning two half-chunks of one large buffer,
// line extraction with `$HEX[...]` decoding, a free-list/work-queue job
// pipeline, and a fixed-size worker pool draining it into the output
// formatter under a single stdout lock.
package pipeline

import (
	"bufio"
	"bytes"
	"io"
	"sync"

	"github.com/Cynosureprime/Cencforce/internal/explore"
	"github.com/Cynosureprime/Cencforce/internal/format"
	"github.com/Cynosureprime/Cencforce/internal/hexline"
)

const (
	halfChunkSize = 25 << 20 // 25 MiB per half, spec §4.9
	maxLineLen    = 256 << 10
	linesPerJob   = 512
)

// Options bundles the exploration mode/filters and the output sink a
// Run invocation needs.
type Options struct {
	Mode    explore.Mode
	Explore explore.Options
	Workers int
}

// half is one of the reader's two buffer halves, tracked by a
// counter+condition-variable lock: workers increment the counter when
// they take a job referencing this half, decrement when the job is
// flushed; the reader waits for the counter to reach zero before
// refilling (spec §4.9/§5).
type half struct {
	mu   sync.Mutex
	cond *sync.Cond
	refs int
	buf  []byte
}

func newHalf() *half {
	h := &half{buf: make([]byte, halfChunkSize)}
	h.cond = sync.NewCond(&h.mu)
	return h
}

func (h *half) acquire() {
	h.mu.Lock()
	h.refs++
	h.mu.Unlock()
}

func (h *half) release() {
	h.mu.Lock()
	h.refs--
	if h.refs == 0 {
		h.cond.Broadcast()
	}
	h.mu.Unlock()
}

func (h *half) waitDrained() {
	h.mu.Lock()
	for h.refs > 0 {
		h.cond.Wait()
	}
	h.mu.Unlock()
}

// job is a contiguous run of line records referencing their backing
// half, plus a private per-job output buffer (spec §4.9 "Job"). The
// scratch buffer and dedup table live in each worker's explore.Driver.
type job struct {
	owner *half
	lines [][]byte
	out   bytes.Buffer
}

// pool is the job free list of spec §4.9: jobs are taken from it before
// dispatch and returned to it once flushed.
type pool struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []*job
}

func newPool(n int) *pool {
	p := &pool{items: make([]*job, 0, n)}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < n; i++ {
		p.items = append(p.items, &job{})
	}
	return p
}

func (p *pool) take() *job {
	p.mu.Lock()
	for len(p.items) == 0 {
		p.cond.Wait()
	}
	j := p.items[len(p.items)-1]
	p.items = p.items[:len(p.items)-1]
	p.mu.Unlock()
	return j
}

func (p *pool) give(j *job) {
	j.lines = j.lines[:0]
	j.out.Reset()
	j.owner = nil
	p.mu.Lock()
	p.items = append(p.items, j)
	p.cond.Broadcast()
	p.mu.Unlock()
}

// queue is the work queue jobs are dispatched onto, spec §4.9/§5 "work
// queue counter".
type queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []*job
	done  bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *queue) push(j *job) {
	q.mu.Lock()
	q.items = append(q.items, j)
	q.cond.Signal()
	q.mu.Unlock()
}

func (q *queue) closeDone() {
	q.mu.Lock()
	q.done = true
	q.cond.Broadcast()
	q.mu.Unlock()
}

// pop returns the next job, or (nil, false) once the queue is closed
// and drained — the worker's cue to exit.
func (q *queue) pop() (*job, bool) {
	q.mu.Lock()
	for len(q.items) == 0 && !q.done {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		q.mu.Unlock()
		return nil, false
	}
	j := q.items[0]
	q.items = q.items[1:]
	q.mu.Unlock()
	return j, true
}

// Run drives the whole pipeline: reads r in two half-chunks, extracts
// lines, fans them out across opts.Workers worker goroutines, and
// writes formatted results to w under a single stdout lock. raw
// disables $HEX[] input decoding only; the lines formatter still
// $HEX[]-wraps non-printable output whatever raw is set to.
func Run(r io.Reader, w io.Writer, formatKind string, opts Options, raw bool) error {
	n := opts.Workers
	if n < 1 {
		n = 1
	}
	if n > 256 {
		n = 256
	}

	jobs := newPool(n * 2)
	work := newQueue()
	var stdout sync.Mutex

	if formatKind == "tsv" {
		stdout.Lock()
		io.WriteString(w, "input\tinput_hex\toperation\tencoding\ttarget\tstrategy\toutput\toutput_hex\n")
		stdout.Unlock()
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			worker(work, jobs, formatKind, opts, raw, &stdout, w)
		}()
	}

	halves := [2]*half{newHalf(), newHalf()}
	if err := readLoop(r, halves, jobs, work, raw); err != nil {
		work.closeDone()
		wg.Wait()
		return err
	}
	work.closeDone()
	wg.Wait()
	return nil
}

func readLoop(r io.Reader, halves [2]*half, jobs *pool, work *queue, raw bool) error {
	br := bufio.NewReaderSize(r, 64<<10)
	cur := 0
	var carry []byte

	for {
		h := halves[cur]
		h.waitDrained()

		n, err := io.ReadFull(br, h.buf)
		if n == 0 && err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return flushCarry(carry, jobs, work, raw)
			}
			return err
		}
		chunk := h.buf[:n]

		lines, rest := splitLines(append(carry, chunk...))
		carry = append(carry[:0], rest...)

		if err := dispatchLines(lines, h, jobs, work, raw); err != nil {
			return err
		}

		if err != nil { // short read: EOF reached mid or after this chunk
			return flushCarry(carry, jobs, work, raw)
		}
		cur = 1 - cur
	}
}

func flushCarry(carry []byte, jobs *pool, work *queue, raw bool) error {
	if len(carry) == 0 {
		return nil
	}
	line := normalizeLine(carry)
	if !raw {
		line = hexline.Decode(line)
	}
	j := jobs.take()
	j.owner = nil
	j.lines = append(j.lines, line)
	work.push(j)
	return nil
}

// dispatchLines groups lines into jobs of up to linesPerJob each, all
// referencing h for the duration of processing.
func dispatchLines(lines [][]byte, h *half, jobs *pool, work *queue, raw bool) error {
	for len(lines) > 0 {
		n := len(lines)
		if n > linesPerJob {
			n = linesPerJob
		}
		batch := lines[:n]
		lines = lines[n:]

		j := jobs.take()
		j.owner = h
		h.acquire()
		for _, ln := range batch {
			line := normalizeLine(ln)
			if !raw {
				line = hexline.Decode(line)
			}
			j.lines = append(j.lines, line)
		}
		work.push(j)
	}
	return nil
}

// splitLines finds every complete (newline-terminated) line in buf,
// clamping each to maxLineLen, and returns the unterminated tail as
// rest for the next refill to prepend (spec §4.9 "residual tail bytes").
func splitLines(buf []byte) (lines [][]byte, rest []byte) {
	start := 0
	for {
		idx := bytes.IndexByte(buf[start:], '\n')
		if idx < 0 {
			rest = append([]byte(nil), buf[start:]...)
			return lines, rest
		}
		end := start + idx
		line := buf[start:end]
		if len(line) > maxLineLen {
			line = line[:maxLineLen]
		}
		lines = append(lines, append([]byte(nil), line...))
		start = end + 1
	}
}

// normalizeLine strips a trailing \r, matching the \r\n -> \n rule
// (the \n was already consumed as the line terminator by splitLines).
func normalizeLine(line []byte) []byte {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		return line[:len(line)-1]
	}
	return line
}

func worker(work *queue, jobs *pool, formatKind string, opts Options, raw bool, stdout *sync.Mutex, w io.Writer) {
	drv := explore.NewDriver()
	for {
		j, ok := work.pop()
		if !ok {
			return
		}
		f := format.NewContinuation(&j.out, formatKind, true)
		for _, line := range j.lines {
			if err := f.Begin(line); err != nil {
				break
			}
			if err := drv.Run(line, opts.Mode, opts.Explore, f); err != nil {
				break
			}
			f.End()
		}
		stdout.Lock()
		w.Write(j.out.Bytes())
		stdout.Unlock()

		owner := j.owner
		jobs.give(j)
		if owner != nil {
			owner.release()
		}
	}
}

