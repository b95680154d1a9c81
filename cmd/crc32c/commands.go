package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/hupe1980/crc32c"
	"github.com/hupe1980/crc32c/binding"
	"github.com/hupe1980/crc32c/internal/cpuid"
	"github.com/hupe1980/crc32c/textenc"
)

type featuresReport struct {
	cpuid.Features
	Engine            string `json:"engine"`
	Overridden        bool   `json:"overridden"`
	HardwareSupported bool   `json:"hardware_supported"`
}

func features(ctx context.Context, env *env) error {
	f := cpuid.Detect()
	env.logger.LogFeatures(ctx, f)

	report := featuresReport{
		Features:          f,
		Engine:            env.dispatcher.Kind().String(),
		Overridden:        env.dispatcher.IsOverridden(),
		HardwareSupported: crc32c.IsHardwareSupported(),
	}

	if *appArgs.jsonLog {
		enc := json.NewEncoder(env.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(env.stdout, "arch:        %s\n", f.GOARCH)
	fmt.Fprintf(env.stdout, "sse4.2:      %t\n", f.SSE42)
	fmt.Fprintf(env.stdout, "pclmulqdq:   %t\n", f.PCLMULQDQ)
	fmt.Fprintf(env.stdout, "arm64 crc32: %t\n", f.ARM64CRC32)
	fmt.Fprintf(env.stdout, "engine:      %s", report.Engine)
	if report.Overridden {
		fmt.Fprintf(env.stdout, " (from $%s)", crc32c.EnvEngine)
	}
	fmt.Fprintln(env.stdout)
	return nil
}

func checksumString(env *env) error {
	enc, err := textenc.ParseEncoding(*stringArgs.encoding)
	if err != nil {
		return err
	}
	crc, err := textenc.Checksum(env.dispatcher.Kind() == crc32c.Hardware, *stringArgs.seed, []byte(*stringArgs.text), enc)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.stdout, formatCRC(crc, *stringArgs.format))
	return nil
}

func upload(ctx context.Context, env *env) error {
	loc, err := parseLocation(*uploadArgs.dest)
	if err != nil {
		return err
	}
	if loc.scheme == "" {
		return fmt.Errorf("%s: destination must be s3:// or minio://", *uploadArgs.dest)
	}

	store, err := env.sources.objectStore(ctx, loc)
	if err != nil {
		return err
	}

	key := loc.key
	var r io.Reader = os.Stdin
	if *uploadArgs.file != stdinName {
		f, err := os.Open(*uploadArgs.file)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
		if key == "" || key[len(key)-1] == '/' {
			key += filepath.Base(*uploadArgs.file)
		}
	}
	if key == "" {
		return fmt.Errorf("%s: missing object key", *uploadArgs.dest)
	}

	// The store checksums what it sent, cr what was read.
	cr := crc32c.NewReader(r, env.dispatcher)
	crc, err := store.Upload(ctx, key, cr)
	if err != nil {
		return fmt.Errorf("upload %s: %w", *uploadArgs.dest, err)
	}
	if crc != cr.Sum() {
		return fmt.Errorf("upload %s: %w", *uploadArgs.dest, crc32c.VerifyChecksum(key, cr.Sum(), crc))
	}

	env.logger.InfoContext(ctx, "uploaded", "dest", *uploadArgs.dest, "key", key, "size", cr.Count())
	fmt.Fprintf(env.stdout, "%s  %s  %s\n", formatCRC(crc, "hex"), humanize.IBytes(uint64(cr.Count())), *uploadArgs.dest)
	return nil
}

func serve(ctx context.Context, env *env) error {
	srv := binding.NewServer(env.dispatcher, env.logger)

	if *serveArgs.listen == "" {
		return srv.ServeConn(ctx, stdio{os.Stdin, os.Stdout})
	}

	lis, err := net.Listen("tcp", *serveArgs.listen)
	if err != nil {
		return err
	}
	env.logger.InfoContext(ctx, "listening", "addr", lis.Addr().String())

	err = srv.Serve(ctx, lis)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// stdio joins stdin and stdout into one connection.
type stdio struct {
	io.Reader
	io.Writer
}

func (stdio) Close() error { return nil }
