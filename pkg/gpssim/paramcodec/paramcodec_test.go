package paramcodec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTripUnsigned(t *testing.T) {
	scale := ScalePow2(-31)
	for _, x := range []float64{0, scale, 1000 * scale, 123456 * scale} {
		raw := Encode(x, scale)
		got := Decode(raw, scale, 32, false)
		assert.InDelta(t, x, got, scale/2, "round trip within half-LSB")
	}
}

func TestRoundTripTwosComplement(t *testing.T) {
	scale := ScalePow2(-29)
	numBits := uint8(16)
	for _, x := range []float64{-5000 * scale, 0, 5000 * scale} {
		raw := Encode(x, scale)
		got := Decode(raw, scale, numBits, true)
		assert.InDelta(t, x, got, scale/2, "round trip within half-LSB")
	}
}

func TestDecodeMasksToBitWidth(t *testing.T) {
	// raw has bits set above the 8-bit field; Decode must mask them off.
	got := Decode(0xFFFFFF0F, 1.0, 8, false)
	assert.Equal(t, float64(0x0F), got)
}

func TestDecodeTwosComplementNegative(t *testing.T) {
	// 8-bit field, value -1 -> 0xFF
	got := Decode(0xFF, 1.0, 8, true)
	assert.Equal(t, -1.0, got)
}

func TestEncodeRoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, uint32(1), Encode(0.5, 1.0))
	assert.Equal(t, uint32(math.MaxUint32), Encode(-0.5, 1.0)) // wraps as uint32(-1)
}

func TestLimitsClamp(t *testing.T) {
	l := Limits{Scale: 1, Lower: -10, Upper: 10}
	assert.Equal(t, 10.0, l.Clamp(20))
	assert.Equal(t, -10.0, l.Clamp(-20))
	assert.Equal(t, 5.0, l.Clamp(5))
}

func TestLimitsRandomizeWithin(t *testing.T) {
	l := Limits{Scale: 1, Lower: -10, Upper: 10}
	assert.Equal(t, -10.0, l.RandomizeWithin(0))
	assert.Equal(t, 10.0, l.RandomizeWithin(1))
	assert.Equal(t, 0.0, l.RandomizeWithin(0.5))
}
