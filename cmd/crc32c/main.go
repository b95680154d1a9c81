// Command crc32c computes and verifies CRC-32C checksums of files, stdin,
// S3 and MinIO objects, and serves the checksum engine over JSON-RPC.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/hupe1980/crc32c"
)

var (
	version = "head" // set by -ldflags on release builds
	app     = kingpin.New("crc32c", "CRC-32C (Castagnoli) checksums with hardware acceleration")

	featuresCmd = app.Command("features", "Print CPU features and the engine selected automatically")
	sumCmd      = app.Command("sum", "Checksum files, stdin (-), s3://bucket/key or minio://endpoint/bucket/key")
	stringCmd   = app.Command("string", "Checksum a text argument")
	verifyCmd   = app.Command("verify", "Check an input against an expected or stored checksum")
	uploadCmd   = app.Command("upload", "Upload a file with a server-validated CRC-32C")
	serveCmd    = app.Command("serve", "Serve calculateCrc and isHardwareCrcSupported over JSON-RPC 2.0")
)

var appArgs = struct {
	engine      *string
	jsonLog     *bool
	verbose     *bool
	minioSecure *bool
}{
	app.Flag("engine", "Engine: auto, software or hardware; auto honours $CRC32C_ENGINE").Short('e').Default("auto").Enum("auto", "software", "sw", "table", "hardware", "hw", "sse42"),
	app.Flag("json-log", "Write logs as JSON lines").Bool(),
	app.Flag("verbose", "Log every input and print throughput").Short('v').Bool(),
	app.Flag("minio-secure", "Use HTTPS for minio:// inputs").Default("true").Bool(),
}

var sumArgs = struct {
	inputs     *[]string
	seed       *uint32
	decompress *bool
	format     *string
	masked     *bool
	jobs       *int64
	ioLimit    *string
	chunkSize  *string
}{
	sumCmd.Arg("inputs", "Inputs to checksum; directories and prefixes ending in / are expanded").Default("-").Strings(),
	sumCmd.Flag("seed", "Initial CRC to extend").Default("0").Uint32(),
	sumCmd.Flag("decompress", "Checksum the decompressed content of gzip, zstd, lz4 and snappy inputs").Short('d').Bool(),
	sumCmd.Flag("format", "Output format").Short('f').Default("hex").Enum("hex", "dec", "base64"),
	sumCmd.Flag("masked", "Print the LevelDB-style masked checksum").Bool(),
	sumCmd.Flag("jobs", "Inputs processed concurrently").Short('j').Default("4").Int64(),
	sumCmd.Flag("io-limit", "Read throughput cap across all jobs, e.g. 50MB (0 for none)").Default("0").String(),
	sumCmd.Flag("chunk-size", "Read size for streamed inputs").Default("1MiB").String(),
}

var stringArgs = struct {
	text     *string
	encoding *string
	seed     *uint32
	format   *string
}{
	stringCmd.Arg("text", "Text to checksum").Required().String(),
	stringCmd.Flag("encoding", "Encoding the text is reinterpreted from before UTF-8 checksumming").Default("utf-8").String(),
	stringCmd.Flag("seed", "Initial CRC to extend").Default("0").Uint32(),
	stringCmd.Flag("format", "Output format").Short('f').Default("hex").Enum("hex", "dec", "base64"),
}

var verifyArgs = struct {
	input      *string
	expected   *string
	masked     *bool
	decompress *bool
}{
	verifyCmd.Arg("input", "Input to verify").Required().String(),
	verifyCmd.Arg("expected", "Expected checksum as hex (0x1234abcd), decimal or base64; omit to use the stored object checksum").String(),
	verifyCmd.Flag("masked", "The expected value is masked").Bool(),
	verifyCmd.Flag("decompress", "Verify the decompressed content").Short('d').Bool(),
}

var uploadArgs = struct {
	file *string
	dest *string
}{
	uploadCmd.Arg("file", "Local file to upload, or - for stdin").Required().String(),
	uploadCmd.Arg("dest", "Destination s3://bucket/key or minio://endpoint/bucket/key").Required().String(),
}

var serveArgs = struct {
	listen *string
}{
	serveCmd.Flag("listen", "TCP address to listen on; stdio when empty").Short('l').String(),
}

func main() {
	app.HelpFlag.Short('h')
	app.Version(version)
	app.VersionFlag.Short('V')

	cmd, err := app.Parse(os.Args[1:])
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env := newEnv()

	switch kingpin.MustParse(cmd, err) {
	case featuresCmd.FullCommand():
		err = features(ctx, env)
	case sumCmd.FullCommand():
		err = sum(ctx, env)
	case stringCmd.FullCommand():
		err = checksumString(env)
	case verifyCmd.FullCommand():
		err = verify(ctx, env)
	case uploadCmd.FullCommand():
		err = upload(ctx, env)
	case serveCmd.FullCommand():
		err = serve(ctx, env)
	}

	if err != nil {
		env.logger.ErrorContext(ctx, "command failed", "command", cmd, "error", err)
		fmt.Fprintf(os.Stderr, "crc32c: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// env carries what every command needs.
type env struct {
	logger     *crc32c.Logger
	metrics    *crc32c.BasicMetricsCollector
	dispatcher *crc32c.Dispatcher
	sources    *sources
	stdout     io.Writer
}

func newEnv() *env {
	level := slog.LevelWarn
	if *appArgs.verbose {
		level = slog.LevelDebug
	}

	var logger *crc32c.Logger
	if *appArgs.jsonLog {
		logger = crc32c.NewJSONLogger(level)
	} else {
		logger = crc32c.NewTextLogger(level)
	}

	kind, _ := crc32c.ParseKind(*appArgs.engine)
	metrics := &crc32c.BasicMetricsCollector{}

	return &env{
		logger:  logger,
		metrics: metrics,
		dispatcher: crc32c.New(
			crc32c.WithKind(kind),
			crc32c.WithLogger(logger),
			crc32c.WithMetricsCollector(metrics),
		),
		sources: &sources{minioSecure: *appArgs.minioSecure},
		stdout:  os.Stdout,
	}
}

func exitCode(err error) int {
	if crc32c.IsChecksumMismatch(err) {
		return 2
	}
	return 1
}
