package crc32c

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordChecksum is called after each dispatched checksum.
	// kind is the engine that ran, bytes the input length.
	RecordChecksum(kind Kind, bytes int, duration time.Duration)

	// RecordVerify is called after each verification.
	RecordVerify(ok bool, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordChecksum(Kind, int, time.Duration) {}
func (NoopMetricsCollector) RecordVerify(bool, time.Duration)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	SoftwareCount      atomic.Int64
	SoftwareBytes      atomic.Int64
	SoftwareTotalNanos atomic.Int64
	HardwareCount      atomic.Int64
	HardwareBytes      atomic.Int64
	HardwareTotalNanos atomic.Int64
	VerifyCount        atomic.Int64
	VerifyFailures     atomic.Int64
}

// RecordChecksum implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChecksum(kind Kind, bytes int, duration time.Duration) {
	if kind == Hardware {
		b.HardwareCount.Add(1)
		b.HardwareBytes.Add(int64(bytes))
		b.HardwareTotalNanos.Add(duration.Nanoseconds())
		return
	}
	b.SoftwareCount.Add(1)
	b.SoftwareBytes.Add(int64(bytes))
	b.SoftwareTotalNanos.Add(duration.Nanoseconds())
}

// RecordVerify implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVerify(ok bool, _ time.Duration) {
	b.VerifyCount.Add(1)
	if !ok {
		b.VerifyFailures.Add(1)
	}
}

// Throughput returns bytes per second for the given engine kind, or 0 when
// nothing was recorded.
func (b *BasicMetricsCollector) Throughput(kind Kind) float64 {
	bytes, nanos := b.SoftwareBytes.Load(), b.SoftwareTotalNanos.Load()
	if kind == Hardware {
		bytes, nanos = b.HardwareBytes.Load(), b.HardwareTotalNanos.Load()
	}
	if nanos == 0 {
		return 0
	}
	return float64(bytes) / time.Duration(nanos).Seconds()
}
