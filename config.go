package opt3002

// Mode is the conversion mode of the sensor.
type Mode uint8

const (
	// ModeShutdown is the default low power state.
	ModeShutdown Mode = 0b00
	// ModeSingleShot shuts the sensor down after a single conversion.
	ModeSingleShot Mode = 0b01
	// ModeContinuous keeps converting until reconfigured.
	ModeContinuous Mode = 0b10
)

func (m Mode) String() string {
	switch m {
	case ModeShutdown:
		return "shutdown"
	case ModeSingleShot:
		return "single-shot"
	case ModeContinuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// ConversionTime is the integration time of a single conversion.
// Longer integration time allows for a lower noise measurement but can
// limit the effective full-scale range.
type ConversionTime uint8

const (
	ConversionTime100ms ConversionTime = 0
	ConversionTime800ms ConversionTime = 1
)

func (t ConversionTime) String() string {
	if t == ConversionTime800ms {
		return "800ms"
	}
	return "100ms"
}

// InterruptMode selects between self-clearing and latched interrupts.
// A latched interrupt stays asserted until the sensor is read; a
// hysteresis interrupt clears once the triggering condition passes.
type InterruptMode uint8

const (
	InterruptHysteresis InterruptMode = 0
	InterruptLatched    InterruptMode = 1
)

func (m InterruptMode) String() string {
	if m == InterruptLatched {
		return "latched"
	}
	return "hysteresis"
}

// Polarity of the interrupt pin. Active-low requires a pull-up resistor
// on the INT pin.
type Polarity uint8

const (
	ActiveLow  Polarity = 0
	ActiveHigh Polarity = 1
)

func (p Polarity) String() string {
	if p == ActiveHigh {
		return "active-high"
	}
	return "active-low"
}

// Range is the full-scale range of measurements in nW/cm2. Labels are
// approximations, refer to the datasheet for exact values. RangeAuto lets
// the sensor pick the range per sample.
type Range uint8

const (
	Range5K   Range = 0
	Range10K  Range = 1
	Range20K  Range = 2
	Range40K  Range = 3
	Range80K  Range = 4
	Range160K Range = 5
	Range320K Range = 6
	Range640K Range = 7
	Range1M2  Range = 8
	Range2M5  Range = 9
	Range5M   Range = 10
	Range10M  Range = 11

	RangeAuto Range = 0b1100
)

func (r Range) String() string {
	switch r {
	case Range5K:
		return "5k"
	case Range10K:
		return "10k"
	case Range20K:
		return "20k"
	case Range40K:
		return "40k"
	case Range80K:
		return "80k"
	case Range160K:
		return "160k"
	case Range320K:
		return "320k"
	case Range640K:
		return "640k"
	case Range1M2:
		return "1.2M"
	case Range2M5:
		return "2.5M"
	case Range5M:
		return "5M"
	case Range10M:
		return "10M"
	case RangeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// FaultCount is the number of measurements outside the configured limits
// required before an interrupt triggers.
type FaultCount uint8

const (
	Fault1 FaultCount = 0
	Fault2 FaultCount = 1
	Fault4 FaultCount = 2
	Fault8 FaultCount = 3
)

// Configuration register field layout, bit 15 down to bit 0:
// range[15:12] time[11] mode[10:9] ovf[8] crf[7] fh[6] fl[5]
// latch[4] pol[3] me[2] fault[1:0]
const (
	faultCountShift   = 0
	faultCountMask    = 0b11
	maskExponentShift = 2
	polarityShift     = 3
	latchShift        = 4
	lowLimitShift     = 5
	highLimitShift    = 6
	convReadyShift    = 7
	overflowShift     = 8
	modeShift         = 9
	modeMask          = 0b11
	convTimeShift     = 11
	rangeShift        = 12
	rangeMask         = 0b1111
)

// Config mirrors the 16-bit configuration register of the sensor.
// The zero value is the register's reset default (shutdown mode, 5k range,
// 100ms conversions). Status flags (overflow, conversion ready, limit
// triggers) are read-only and reflect sensor state rather than control it.
type Config uint16

func (c Config) Range() Range {
	return Range(c >> rangeShift & rangeMask)
}

func (c *Config) SetRange(r Range) {
	*c = *c&^(rangeMask<<rangeShift) | Config(r&rangeMask)<<rangeShift
}

func (c Config) ConversionTime() ConversionTime {
	return ConversionTime(c >> convTimeShift & 1)
}

func (c *Config) SetConversionTime(t ConversionTime) {
	*c = *c&^(1<<convTimeShift) | Config(t&1)<<convTimeShift
}

func (c Config) Mode() Mode {
	return Mode(c >> modeShift & modeMask)
}

func (c *Config) SetMode(m Mode) {
	*c = *c&^(modeMask<<modeShift) | Config(m&modeMask)<<modeShift
}

// Overflow reports an ADC overflow during the last conversion. Read-only.
func (c Config) Overflow() bool {
	return c>>overflowShift&1 == 1
}

// ConversionReady reports that a conversion has completed. Read-only.
func (c Config) ConversionReady() bool {
	return c>>convReadyShift&1 == 1
}

// HighLimitTriggered reports a conversion above the high limit. Read-only.
func (c Config) HighLimitTriggered() bool {
	return c>>highLimitShift&1 == 1
}

// LowLimitTriggered reports a conversion below the low limit. Read-only.
func (c Config) LowLimitTriggered() bool {
	return c>>lowLimitShift&1 == 1
}

func (c Config) InterruptMode() InterruptMode {
	return InterruptMode(c >> latchShift & 1)
}

func (c *Config) SetInterruptMode(m InterruptMode) {
	*c = *c&^(1<<latchShift) | Config(m&1)<<latchShift
}

func (c Config) Polarity() Polarity {
	return Polarity(c >> polarityShift & 1)
}

func (c *Config) SetPolarity(p Polarity) {
	*c = *c&^(1<<polarityShift) | Config(p&1)<<polarityShift
}

// MaskExponent returns the mask-exponent field bit. Its effect is not
// documented by the vendor; it is exposed as an opaque bit.
func (c Config) MaskExponent() bool {
	return c>>maskExponentShift&1 == 1
}

func (c *Config) SetMaskExponent(enabled bool) {
	*c &^= 1 << maskExponentShift
	if enabled {
		*c |= 1 << maskExponentShift
	}
}

func (c Config) FaultCount() FaultCount {
	return FaultCount(c >> faultCountShift & faultCountMask)
}

func (c *Config) SetFaultCount(n FaultCount) {
	*c = *c&^(faultCountMask<<faultCountShift) | Config(n&faultCountMask)<<faultCountShift
}

// ConfigValues is a flattened, human-readable view of a Config used for
// console output.
type ConfigValues struct {
	Range              string `yaml:"range"`
	ConversionTime     string `yaml:"conversion_time"`
	Mode               string `yaml:"mode"`
	Overflow           bool   `yaml:"overflow"`
	ConversionReady    bool   `yaml:"conversion_ready"`
	HighLimitTriggered bool   `yaml:"high_limit_triggered"`
	LowLimitTriggered  bool   `yaml:"low_limit_triggered"`
	InterruptMode      string `yaml:"interrupt_mode"`
	Polarity           string `yaml:"interrupt_polarity"`
	MaskExponent       bool   `yaml:"mask_exponent"`
	FaultCount         int    `yaml:"fault_count"`
}

func (c Config) Values() ConfigValues {
	return ConfigValues{
		Range:              c.Range().String(),
		ConversionTime:     c.ConversionTime().String(),
		Mode:               c.Mode().String(),
		Overflow:           c.Overflow(),
		ConversionReady:    c.ConversionReady(),
		HighLimitTriggered: c.HighLimitTriggered(),
		LowLimitTriggered:  c.LowLimitTriggered(),
		InterruptMode:      c.InterruptMode().String(),
		Polarity:           c.Polarity().String(),
		MaskExponent:       c.MaskExponent(),
		FaultCount:         1 << c.FaultCount(),
	}
}
