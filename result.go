package opt3002

const (
	readingBits  = 12
	readingLimit = 1 << readingBits
	maxExponent  = 15
)

// Result is the measurement format of the sensor: a 12-bit fractional
// reading scaled by a 4-bit power-of-two exponent. The same format is used
// by the result register and by the low/high limit registers.
type Result struct {
	Reading  uint16
	Exponent uint8
}

// ResultFromRaw decodes the 16-bit register layout E[15:12] R[11:0].
func ResultFromRaw(raw uint16) Result {
	return Result{
		Reading:  raw & (readingLimit - 1),
		Exponent: uint8(raw >> readingBits),
	}
}

// Raw encodes the result back into the register layout.
func (r Result) Raw() uint16 {
	return uint16(r.Exponent&0x0F)<<readingBits | r.Reading&(readingLimit-1)
}

// OpticalPower calculates the optical power of the measurement in nW/cm2
// [ref: Equation 1, OPT3002 datasheet]:
//
//	OP = R[11:0] * 2^E[3:0] * 1.2
func (r Result) OpticalPower() float32 {
	return float32(uint32(r.Reading&(readingLimit-1))<<(r.Exponent&0x0F)) * 1.2
}

// QuantizePower converts an optical power in nW/cm2 into the closest
// representable Result at or below the input. The reading is truncated to
// an integer and halved until it fits in 12 bits; the exponent saturates
// at 15 with the reading clipped, so out-of-range input never faults.
// Negative input encodes as zero.
func QuantizePower(power float32) Result {
	scaled := float64(power) / 1.2
	if scaled <= 0 {
		return Result{}
	}
	// anything this large saturates regardless of the exponent
	if scaled >= readingLimit<<maxExponent {
		return Result{Reading: readingLimit - 1, Exponent: maxExponent}
	}
	reading := uint32(scaled)
	var exponent uint8
	for reading >= readingLimit && exponent < maxExponent {
		reading >>= 1
		exponent++
	}
	if reading >= readingLimit {
		reading = readingLimit - 1
	}
	return Result{Reading: uint16(reading), Exponent: exponent}
}
