package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hupe1980/crc32c"
	"github.com/hupe1980/crc32c/blobstore"
)

func verify(ctx context.Context, env *env) error {
	var expected *uint32
	if *verifyArgs.expected != "" {
		v, err := parseCRC(*verifyArgs.expected)
		if err != nil {
			return err
		}
		if *verifyArgs.masked {
			v = crc32c.Unmask(v)
		}
		expected = &v
	}

	inputs, err := env.sources.resolve(ctx, []string{*verifyArgs.input})
	if err != nil {
		return err
	}
	if len(inputs) != 1 {
		return fmt.Errorf("%s: verify takes exactly one input, got %d", *verifyArgs.input, len(inputs))
	}

	res, err := verifyInput(ctx, env, inputs[0], expected, *verifyArgs.decompress)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "%s  OK  %s\n", formatCRC(res.CRC, "hex"), inputs[0].ref)
	return nil
}

// verifyInput compares in with expected, or with the stored checksum of a
// store input when expected is nil.
func verifyInput(ctx context.Context, env *env, in input, expected *uint32, decompress bool) (blobstore.Result, error) {
	if !in.isStdin() && !decompress {
		return blobstore.Verify(ctx, in.store, in.name, env.dispatcher, expected, func(o *blobstore.SumOptions) {
			o.Logger = env.logger
		})
	}

	if expected == nil {
		return blobstore.Result{Name: in.ref}, fmt.Errorf("%s: an expected checksum is required: %w", in.ref, blobstore.ErrNoStoredChecksum)
	}

	res, err := checksumInput(ctx, env.dispatcher, in, checksumOptions{
		decompress: decompress,
		chunkSize:  blobstore.DefaultChunkSize,
		logger:     env.logger,
		stdin:      os.Stdin,
	})
	if err != nil {
		return res, err
	}

	err = crc32c.VerifyChecksum(in.ref, *expected, res.CRC)
	env.logger.LogVerify(ctx, in.ref, err)
	return res, err
}
