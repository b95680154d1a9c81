package crc32c

import (
	"context"
	"os"
	"time"
)

// EnvEngine names the environment variable that overrides Auto selection.
const EnvEngine = "CRC32C_ENGINE"

// Dispatcher routes checksum requests to the software or hardware engine.
//
// A Dispatcher holds no checksum state; it is safe for concurrent use and
// itself satisfies Engine, using the kind resolved at construction.
type Dispatcher struct {
	software   Engine
	hardware   Engine
	kind       Kind
	overridden bool
	logger     *Logger
	metrics    MetricsCollector
}

// New creates a Dispatcher.
func New(optFns ...Option) *Dispatcher {
	o := options{
		kind:             Auto,
		software:         SoftwareEngine(),
		hardware:         HardwareEngine(),
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		lookupEnv:        os.LookupEnv,
	}
	for _, fn := range optFns {
		fn(&o)
	}

	kind, overridden := o.kind, false
	if kind == Auto {
		env, _ := o.lookupEnv(EnvEngine)
		kind, overridden = resolveKind(env, IsHardwareSupported())
	}

	d := &Dispatcher{
		software:   o.software,
		hardware:   o.hardware,
		kind:       kind,
		overridden: overridden,
		logger:     o.logger,
		metrics:    o.metricsCollector,
	}

	d.logger.Debug("crc32c dispatcher ready",
		"engine", kind.String(),
		"override", overridden,
		"hardware_supported", IsHardwareSupported(),
	)

	return d
}

// resolveKind applies an environment override and falls back to
// auto-selection when the override is empty, invalid or asks for hardware
// the CPU lacks.
func resolveKind(env string, hardwareSupported bool) (Kind, bool) {
	if env != "" {
		if k, ok := ParseKind(env); ok && k != Auto {
			if k == Software || hardwareSupported {
				return k, true
			}
		}
	}
	if hardwareSupported {
		return Hardware, false
	}
	return Software, false
}

// Kind returns the engine kind Update uses.
func (d *Dispatcher) Kind() Kind {
	return d.kind
}

// IsOverridden reports whether CRC32C_ENGINE decided the kind.
func (d *Dispatcher) IsOverridden() bool {
	return d.overridden
}

// Engine returns the engine Update uses.
func (d *Dispatcher) Engine() Engine {
	return d.engine(d.kind == Hardware)
}

// Update extends crc with p using the resolved engine.
func (d *Dispatcher) Update(crc uint32, p []byte) uint32 {
	return d.Checksum(d.kind == Hardware, crc, p)
}

// Checksum extends seed with data on the hardware engine when useHardware
// is set and on the software engine otherwise. Like the package-level
// Checksum it performs no availability check.
func (d *Dispatcher) Checksum(useHardware bool, seed uint32, data []byte) uint32 {
	e := d.engine(useHardware)

	if _, noop := d.metrics.(NoopMetricsCollector); noop {
		return e.Update(seed, data)
	}

	start := time.Now()
	crc := e.Update(seed, data)
	d.metrics.RecordChecksum(e.Kind(), len(data), time.Since(start))
	return crc
}

// Verify checksums data and compares the result with expected.
func (d *Dispatcher) Verify(ctx context.Context, name string, expected uint32, data []byte) error {
	start := time.Now()
	err := VerifyChecksum(name, expected, d.Update(0, data))
	d.metrics.RecordVerify(err == nil, time.Since(start))
	d.logger.LogVerify(ctx, name, err)
	return err
}

func (d *Dispatcher) engine(useHardware bool) Engine {
	if useHardware {
		return d.hardware
	}
	return d.software
}
