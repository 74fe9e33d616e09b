// Package sorter integrates the typekey codec with an external sort
// pipeline. A Sorter consumes a stream of length-framed records, orders
// them globally by encoded key with the streaming byte comparator — keys
// are never decoded to sort — and produces a sorted stream. Runs that
// outgrow memory are sorted and spilled to disk concurrently, then merged
// in one pass. The Partitioner covers the shuffle side, assigning decoded
// keys to partitions by structural hash.
package sorter

import (
	"container/heap"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"

	"github.com/amp-labs/typekey/compare"
	"github.com/amp-labs/typekey/order"
)

// Stats counts a Sorter's work across Sort calls.
type Stats struct {
	Records      atomic.Int64
	RunsSpilled  atomic.Int64
	SpilledBytes atomic.Int64
}

// Sorter is an external merge sorter over framed records. It is safe for
// concurrent Sort calls; each call owns its own runs and spill files.
type Sorter struct {
	name  string
	opts  options
	pool  pond.Pool
	stats Stats
}

// New returns a Sorter with the given name (used as the metrics label)
// and options.
func New(name string, opts ...Option) *Sorter {
	o := defaultOptions()

	for _, opt := range opts {
		opt(&o)
	}

	return &Sorter{
		name: name,
		opts: o,
		pool: pond.NewPool(o.workers),
	}
}

// Stats returns the Sorter's counters.
func (s *Sorter) Stats() *Stats {
	return &s.stats
}

// Close stops the worker pool, waiting for in-flight runs. The Sorter must
// not be used afterwards.
func (s *Sorter) Close() {
	s.pool.StopAndWait()
}

// Sort reads framed records from in, orders them globally by key, and
// writes framed records to out. Input, output and spilled runs all use the
// configured compression. Records with equal keys keep no particular
// relative order.
func (s *Sorter) Sort(ctx context.Context, in io.Reader, out io.Writer) (err error) {
	if s.opts.tracer != nil {
		var span trace.Span

		ctx, span = s.opts.tracer.Start(ctx, "sorter.sort")

		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}

			span.End()
		}()
	}

	reader, err := NewReader(in, s.opts.compression)
	if err != nil {
		return err
	}

	var (
		mu     sync.Mutex
		spills []string
	)

	defer func() {
		for _, path := range spills {
			if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
				s.opts.logger.Warn("failed to remove spilled run", "path", path, "error", rmErr)
			}
		}
	}()

	group := s.pool.NewGroup()

	flush := func(run *memoryRun) {
		group.SubmitErr(func() error {
			run.sort()

			path, n, err := s.spill(run)
			if err != nil {
				return err
			}

			mu.Lock()
			spills = append(spills, path)
			mu.Unlock()

			s.stats.RunsSpilled.Inc()
			s.stats.SpilledBytes.Add(n)
			runsSpilled.WithLabelValues(s.name).Inc()
			bytesSpilled.WithLabelValues(s.name).Add(float64(n))

			s.opts.logger.Debug("spilled sorted run",
				"sorter", s.name, "records", len(run.recs), "bytes", n, "path", path)

			return nil
		})
	}

	run := &memoryRun{}

	for {
		if err := ctx.Err(); err != nil {
			group.Wait() //nolint:errcheck // the context error wins; just drain in-flight spills

			return err
		}

		key, val, err := reader.Next()
		if err == io.EOF {
			break
		}

		if err != nil {
			group.Wait() //nolint:errcheck // the read error wins; just drain in-flight spills

			return err
		}

		run.add(key, val)
		s.stats.Records.Inc()
		recordsRead.WithLabelValues(s.name).Inc()

		if run.bytes >= s.opts.maxRunBytes {
			flush(run)

			run = &memoryRun{}
		}
	}

	// The trailing run sorts on the pool like the others but merges
	// straight from memory instead of spilling.
	last := run

	group.SubmitErr(func() error {
		last.sort()

		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	sources := make([]runSource, 0, len(spills)+1)

	if len(last.recs) > 0 {
		sources = append(sources, &memorySource{recs: last.recs})
	}

	for _, path := range spills {
		src, err := openSpill(path, s.opts.compression)
		if err != nil {
			closeSources(s.opts, sources)

			return err
		}

		sources = append(sources, src)
	}

	defer closeSources(s.opts, sources)

	writer, err := NewWriter(out, s.opts.compression)
	if err != nil {
		return err
	}

	if err := s.merge(ctx, sources, writer); err != nil {
		return err
	}

	if err := writer.Close(); err != nil {
		return err
	}

	mergesDone.WithLabelValues(s.name).Inc()

	s.opts.logger.Debug("merge complete",
		"sorter", s.name, "runs", len(sources), "records", s.stats.Records.Load())

	return nil
}

// spill writes a sorted run to a fresh temp file and returns its path and
// size.
func (s *Sorter) spill(run *memoryRun) (string, int64, error) {
	path := filepath.Join(s.opts.tempDir, "typekey-run-"+uuid.NewString()+".spill")

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create spill file: %w", err)
	}

	fail := func(err error) (string, int64, error) {
		f.Close()           //nolint:errcheck,gosec // already failing
		_ = os.Remove(path) //nolint:errcheck

		return "", 0, err
	}

	w, err := NewWriter(f, s.opts.compression)
	if err != nil {
		return fail(err)
	}

	for _, rec := range run.recs {
		if err := w.Write(rec.key, rec.val); err != nil {
			return fail(err)
		}
	}

	if err := w.Close(); err != nil {
		return fail(err)
	}

	info, err := f.Stat()
	if err != nil {
		return fail(fmt.Errorf("stat spill file: %w", err))
	}

	if err := f.Close(); err != nil {
		return fail(fmt.Errorf("close spill file: %w", err))
	}

	return path, info.Size(), nil
}

// merge drains all sources into w in key order using a loser-picks heap.
func (s *Sorter) merge(ctx context.Context, sources []runSource, w *Writer) error {
	h := make(mergeHeap, 0, len(sources))

	for _, src := range sources {
		key, val, err := src.next()
		if err == io.EOF {
			continue
		}

		if err != nil {
			return err
		}

		h = append(h, &mergeEntry{key: key, val: val, src: src})
	}

	heap.Init(&h)

	for i := 0; h.Len() > 0; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		entry := h[0]

		if err := w.Write(entry.key, entry.val); err != nil {
			return err
		}

		key, val, err := entry.src.next()
		if err == io.EOF {
			heap.Pop(&h)

			continue
		}

		if err != nil {
			return err
		}

		entry.key, entry.val = key, val
		heap.Fix(&h, 0)
	}

	return nil
}

// record is one framed key/value pair held in memory.
type record struct {
	key []byte
	val []byte
}

// memoryRun accumulates records until the run limit, then sorts by key.
type memoryRun struct {
	recs  []record
	bytes int64
}

func (r *memoryRun) add(key, val []byte) {
	r.recs = append(r.recs, record{key: key, val: val})
	r.bytes += int64(len(key) + len(val))
}

func (r *memoryRun) sort() {
	slices.SortFunc(r.recs, func(a, b record) int {
		return order.CompareEncoded(a.key, 0, len(a.key), b.key, 0, len(b.key))
	})
}

// runSource yields one sorted run's records in order; next returns io.EOF
// when the run is exhausted.
type runSource interface {
	next() (key, val []byte, err error)
	close() error
}

type memorySource struct {
	recs []record
	pos  int
}

func (m *memorySource) next() ([]byte, []byte, error) {
	if m.pos == len(m.recs) {
		return nil, nil, io.EOF
	}

	rec := m.recs[m.pos]
	m.pos++

	return rec.key, rec.val, nil
}

func (m *memorySource) close() error {
	return nil
}

type fileSource struct {
	f *os.File
	r *Reader
}

func (fs *fileSource) next() ([]byte, []byte, error) {
	return fs.r.Next()
}

func (fs *fileSource) close() error {
	return fs.f.Close()
}

func openSpill(path string, c Compression) (runSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spilled run: %w", err)
	}

	r, err := NewReader(f, c)
	if err != nil {
		f.Close() //nolint:errcheck,gosec // already failing

		return nil, err
	}

	return &fileSource{f: f, r: r}, nil
}

func closeSources(o options, sources []runSource) {
	for _, src := range sources {
		if err := src.close(); err != nil {
			o.logger.Warn("failed to close run source", "error", err)
		}
	}
}

// mergeEntry is one heap slot: the head record of a run plus the run it
// came from.
type mergeEntry struct {
	key []byte
	val []byte
	src runSource
}

type mergeHeap []*mergeEntry

func (h mergeHeap) Len() int {
	return len(h)
}

func (h mergeHeap) Less(i, j int) bool {
	return order.CompareEncoded(h[i].key, 0, len(h[i].key), h[j].key, 0, len(h[j].key)) == compare.Less
}

func (h mergeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *mergeHeap) Push(x any) {
	*h = append(*h, x.(*mergeEntry)) //nolint:forcetypeassert // heap.Interface contract
}

func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]

	return entry
}
