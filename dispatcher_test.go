package crc32c

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/crc32c/internal/castagnoli"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Kind() Kind {
	args := m.Called()
	return args.Get(0).(Kind)
}

func (m *MockEngine) Update(crc uint32, p []byte) uint32 {
	args := m.Called(crc, p)
	return args.Get(0).(uint32)
}

func noEnv(string) (string, bool) { return "", false }

func envOf(v string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if key == EnvEngine {
			return v, true
		}
		return "", false
	}
}

func TestDispatcher_SoftwareRouting(t *testing.T) {
	hw := new(MockEngine)
	d := New(WithHardwareEngine(hw), withLookupEnv(noEnv))

	data := []byte("route me to software")
	for _, seed := range []uint32{0, 7, 0xCAFEBABE} {
		assert.Equal(t, castagnoli.Update(seed, data), d.Checksum(false, seed, data))
		assert.Equal(t, castagnoli.Update(seed, data), Checksum(false, seed, data))
	}

	hw.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDispatcher_HardwareRouting(t *testing.T) {
	hw := new(MockEngine)
	data := []byte("route me to hardware")
	hw.On("Update", uint32(42), data).Return(uint32(0x12345678)).Once()

	d := New(WithHardwareEngine(hw), withLookupEnv(noEnv))

	// Routing does not consult the CPU probe.
	assert.Equal(t, uint32(0x12345678), d.Checksum(true, 42, data))
	hw.AssertExpectations(t)
}

func TestDispatcher_WithKind(t *testing.T) {
	hw := new(MockEngine)
	data := []byte("pinned")
	hw.On("Update", uint32(0), data).Return(uint32(1)).Once()

	d := New(WithKind(Hardware), WithHardwareEngine(hw), withLookupEnv(envOf("software")))
	assert.Equal(t, Hardware, d.Kind())
	assert.False(t, d.IsOverridden())
	assert.Equal(t, uint32(1), d.Update(0, data))
	assert.Same(t, hw, d.Engine())
	hw.AssertExpectations(t)

	sw := New(WithKind(Software))
	assert.Equal(t, Software, sw.Kind())
	assert.Equal(t, uint32(0xE3069283), sw.Update(0, []byte("123456789")))
}

func TestDispatcher_EnvOverride(t *testing.T) {
	d := New(withLookupEnv(envOf("software")))
	assert.Equal(t, Software, d.Kind())
	assert.True(t, d.IsOverridden())

	d = New(withLookupEnv(envOf("bogus")))
	assert.False(t, d.IsOverridden())
	if IsHardwareSupported() {
		assert.Equal(t, Hardware, d.Kind())
	} else {
		assert.Equal(t, Software, d.Kind())
	}
}

func TestResolveKind(t *testing.T) {
	tests := []struct {
		env            string
		supported      bool
		wantKind       Kind
		wantOverridden bool
	}{
		{"", true, Hardware, false},
		{"", false, Software, false},
		{"auto", true, Hardware, false},
		{"software", true, Software, true},
		{"SW", false, Software, true},
		{"hardware", true, Hardware, true},
		{"hardware", false, Software, false},
		{"nonsense", true, Hardware, false},
		{"nonsense", false, Software, false},
	}

	for _, tt := range tests {
		kind, overridden := resolveKind(tt.env, tt.supported)
		assert.Equal(t, tt.wantKind, kind, "env=%q supported=%v", tt.env, tt.supported)
		assert.Equal(t, tt.wantOverridden, overridden, "env=%q supported=%v", tt.env, tt.supported)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Auto, Software, Hardware} {
		got, ok := ParseKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}

	_, ok := ParseKind("avx512")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestDispatcher_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	d := New(WithMetricsCollector(metrics), withLookupEnv(noEnv))

	d.Checksum(false, 0, make([]byte, 100))
	d.Checksum(true, 0, make([]byte, 30))
	d.Checksum(true, 0, make([]byte, 10))

	assert.Equal(t, int64(1), metrics.SoftwareCount.Load())
	assert.Equal(t, int64(100), metrics.SoftwareBytes.Load())
	assert.Equal(t, int64(2), metrics.HardwareCount.Load())
	assert.Equal(t, int64(40), metrics.HardwareBytes.Load())
	assert.GreaterOrEqual(t, metrics.Throughput(Software), 0.0)
}

func TestDispatcher_Verify(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	d := New(WithMetricsCollector(metrics), WithLogger(nil), withLookupEnv(noEnv))
	ctx := context.Background()

	require.NoError(t, d.Verify(ctx, "check", 0xE3069283, []byte("123456789")))

	err := d.Verify(ctx, "check", 0, []byte("123456789"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChecksumMismatch))

	var mismatch *ChecksumMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, uint32(0xE3069283), mismatch.Actual)
	assert.Contains(t, err.Error(), "check")

	assert.Equal(t, int64(2), metrics.VerifyCount.Load())
	assert.Equal(t, int64(1), metrics.VerifyFailures.Load())
}

func TestDispatcher_IsEngine(t *testing.T) {
	var e Engine = New(WithKind(Software))
	h := NewEngineHash(e, 0)
	_, _ = h.Write([]byte("123456789"))
	assert.Equal(t, uint32(0xE3069283), h.Sum32())
}
