package crc32c

type options struct {
	kind             Kind
	software         Engine
	hardware         Engine
	logger           *Logger
	metricsCollector MetricsCollector
	lookupEnv        func(string) (string, bool)
}

// Option configures a Dispatcher.
type Option func(*options)

// WithKind pins the engine used by Dispatcher.Update.
//
// Auto (the default) honours the CRC32C_ENGINE environment override and
// otherwise picks Hardware when the CPU supports it.
func WithKind(k Kind) Option {
	return func(o *options) {
		o.kind = k
	}
}

// WithHardwareEngine replaces the hardware engine.
//
// Tests use this to observe routing on machines without SSE4.2.
// If nil is passed, HardwareEngine is used.
func WithHardwareEngine(e Engine) Option {
	return func(o *options) {
		if e == nil {
			e = HardwareEngine()
		}
		o.hardware = e
	}
}

// WithSoftwareEngine replaces the software engine.
// If nil is passed, SoftwareEngine is used.
func WithSoftwareEngine(e Engine) Option {
	return func(o *options) {
		if e == nil {
			e = SoftwareEngine()
		}
		o.software = e
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &crc32c.BasicMetricsCollector{}
//	d := crc32c.New(crc32c.WithMetricsCollector(metrics))
//	d.Update(0, data)
//	fmt.Println(metrics.HardwareBytes.Load())
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// withLookupEnv swaps os.LookupEnv for tests.
func withLookupEnv(fn func(string) (string, bool)) Option {
	return func(o *options) {
		o.lookupEnv = fn
	}
}
