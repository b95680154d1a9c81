package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/crc32c"
	"github.com/hupe1980/crc32c/blobstore"
	"github.com/hupe1980/crc32c/decode"
	"github.com/hupe1980/crc32c/internal/resource"
)

// checksumOptions apply to every input of one invocation.
type checksumOptions struct {
	seed       uint32
	decompress bool
	chunkSize  int
	controller *resource.Controller
	logger     *crc32c.Logger
	stdin      io.Reader
}

func sum(ctx context.Context, env *env) error {
	ioLimit, err := humanize.ParseBytes(*sumArgs.ioLimit)
	if err != nil {
		return fmt.Errorf("--io-limit: %w", err)
	}
	chunkSize, err := humanize.ParseBytes(*sumArgs.chunkSize)
	if err != nil || chunkSize == 0 {
		return fmt.Errorf("--chunk-size: invalid value %q", *sumArgs.chunkSize)
	}

	inputs, err := env.sources.resolve(ctx, *sumArgs.inputs)
	if err != nil {
		return err
	}

	rc := resource.NewController(resource.Config{
		MaxWorkers:         *sumArgs.jobs,
		IOLimitBytesPerSec: int64(ioLimit),
	})
	opts := checksumOptions{
		seed:       *sumArgs.seed,
		decompress: *sumArgs.decompress,
		chunkSize:  int(chunkSize),
		logger:     env.logger,
		stdin:      os.Stdin,
	}
	if ioLimit > 0 {
		opts.controller = rc
	}

	start := time.Now()
	results, errs := checksumAll(ctx, env.dispatcher, inputs, rc, opts)

	var failed int
	for i, res := range results {
		if errs[i] != nil {
			failed++
			fmt.Fprintf(os.Stderr, "crc32c: %s: %v\n", inputs[i].ref, errs[i])
			continue
		}
		crc := res.CRC
		if *sumArgs.masked {
			crc = crc32c.Mask(crc)
		}
		fmt.Fprintf(env.stdout, "%s  %d  %s\n", formatCRC(crc, *sumArgs.format), res.Size, inputs[i].ref)
	}

	if *appArgs.verbose {
		printThroughput(env, time.Since(start))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}
	return nil
}

// checksumAll checksums inputs concurrently, at most rc's worker count at a
// time. Results and errors are indexed like inputs.
func checksumAll(ctx context.Context, e crc32c.Engine, inputs []input, rc *resource.Controller, opts checksumOptions) ([]blobstore.Result, []error) {
	results := make([]blobstore.Result, len(inputs))
	errs := make([]error, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		if err := rc.Acquire(gctx); err != nil {
			errs[i] = err
			continue
		}
		g.Go(func() error {
			defer rc.Release()
			results[i], errs[i] = checksumInput(gctx, e, in, opts)
			return nil
		})
	}
	_ = g.Wait()

	return results, errs
}

// checksumInput checksums one input. Without decompression, store inputs
// go through blobstore.Sum and keep the store's recorded checksum.
func checksumInput(ctx context.Context, e crc32c.Engine, in input, opts checksumOptions) (blobstore.Result, error) {
	if !in.isStdin() && !opts.decompress {
		return blobstore.Sum(ctx, in.store, in.name, e, func(o *blobstore.SumOptions) {
			o.Seed = opts.seed
			o.ChunkSize = opts.chunkSize
			o.Controller = opts.controller
			o.Logger = opts.logger
		})
	}

	res := blobstore.Result{Name: in.ref}

	r, closeFn, err := openStream(ctx, in, opts)
	if err != nil {
		return res, err
	}
	defer closeFn()

	h := crc32c.NewEngineHash(e, opts.seed)
	res.Size, err = io.CopyBuffer(h, r, make([]byte, opts.chunkSize))
	if err != nil {
		opts.logger.LogChecksum(ctx, in.ref, res.Size, 0, err)
		return res, err
	}
	res.CRC = h.Sum32()
	opts.logger.LogChecksum(ctx, in.ref, res.Size, res.CRC, nil)
	return res, nil
}

// openStream returns the (optionally decompressed) content of in.
func openStream(ctx context.Context, in input, opts checksumOptions) (io.Reader, func(), error) {
	var (
		src    io.Reader
		closer io.Closer = multiCloser(nil)
	)

	if in.isStdin() {
		src = opts.stdin
	} else {
		b, err := in.store.Open(ctx, in.name)
		if err != nil {
			return nil, nil, err
		}
		if b.Size() == 0 {
			_ = b.Close()
			return emptyReader{}, func() {}, nil
		}
		rc, err := b.ReadRange(ctx, 0, b.Size())
		if err != nil {
			_ = b.Close()
			return nil, nil, err
		}
		src = rc
		closer = multiCloser{rc, b}
	}
	src = resource.NewReader(ctx, src, opts.controller)

	if !opts.decompress {
		return src, func() { _ = closer.Close() }, nil
	}

	var (
		dec io.ReadCloser
		err error
	)
	if f := decode.Detect(in.ref); f != decode.None {
		dec, err = decode.NewReader(src, f)
	} else {
		dec, _, err = decode.NewAutoReader(src)
	}
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return dec, func() {
		_ = dec.Close()
		_ = closer.Close()
	}, nil
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, io.EOF }

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func printThroughput(env *env, elapsed time.Duration) {
	for _, k := range []crc32c.Kind{crc32c.Software, crc32c.Hardware} {
		var n, bytes int64
		if k == crc32c.Hardware {
			n, bytes = env.metrics.HardwareCount.Load(), env.metrics.HardwareBytes.Load()
		} else {
			n, bytes = env.metrics.SoftwareCount.Load(), env.metrics.SoftwareBytes.Load()
		}
		if n == 0 {
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %d updates, %s, %s/s in engine\n",
			k, n, humanize.IBytes(uint64(bytes)), humanize.IBytes(uint64(env.metrics.Throughput(k))))
	}
	fmt.Fprintf(os.Stderr, "wall time %s\n", elapsed.Round(time.Millisecond))
}
