package opt3002

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_RawRoundTrip(t *testing.T) {
	for raw := 0; raw <= 0xFFFF; raw++ {
		result := ResultFromRaw(uint16(raw))
		if result.Raw() != uint16(raw) {
			t.Fatalf("round trip mismatch for %#04x: got %#04x", raw, result.Raw())
		}
	}
}

func TestResult_OpticalPower(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		expected uint32
	}{
		{
			name:     "zero",
			result:   Result{},
			expected: 0,
		},
		{
			name:     "mid-range mantissa, exponent 0",
			result:   Result{Reading: 2047, Exponent: 0},
			expected: 2456, // 2047 * 1 * 1.2 truncated
		},
		{
			name:     "mantissa 1, exponent 15",
			result:   Result{Reading: 1, Exponent: 15},
			expected: 39321, // 1 * 32768 * 1.2 truncated
		},
		{
			name:     "full scale",
			result:   Result{Reading: 0xFFF, Exponent: 15},
			expected: uint32(float32(uint32(0xFFF)<<15) * 1.2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, uint32(tt.result.OpticalPower()))
		})
	}
}

func TestQuantizePower(t *testing.T) {
	tests := []struct {
		name     string
		power    float32
		expected Result
	}{
		{
			name:     "zero",
			power:    0,
			expected: Result{Reading: 0, Exponent: 0},
		},
		{
			name:     "negative encodes as zero",
			power:    -12.5,
			expected: Result{Reading: 0, Exponent: 0},
		},
		{
			name:     "fits without scaling",
			power:    1.2 * 2000,
			expected: Result{Reading: 2000, Exponent: 0},
		},
		{
			name:     "one halving step",
			power:    1.2 * 5000,
			expected: Result{Reading: 2500, Exponent: 1},
		},
		{
			name:     "largest representable",
			power:    1.2 * 4095 * 32768,
			expected: Result{Reading: 4095, Exponent: 15},
		},
		{
			name:     "saturates silently",
			power:    3.0e12,
			expected: Result{Reading: 4095, Exponent: 15},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuantizePower(tt.power))
		})
	}
}

func TestQuantizePower_RoundTripError(t *testing.T) {
	// encoding then decoding must recover the input within one
	// quantization step (2^exponent * 1.2)
	inputs := []float32{
		0, 1.2, 100, 2456, 4914, 39321, 100000, 1.5e6, 2.7e7, 1.6e8,
	}
	for _, input := range inputs {
		result := QuantizePower(input)
		recovered := result.OpticalPower()
		step := float32(uint32(1)<<result.Exponent) * 1.2
		assert.InDelta(t, input, recovered, float64(step), "input %v", input)
	}
}
