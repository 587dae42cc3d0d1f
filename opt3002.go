package opt3002

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrIdentityMismatch means the manufacturer ID register was read
// successfully but did not contain the expected value.
var ErrIdentityMismatch = errors.New("opt3002: unexpected manufacturer ID")

// OPT3002 is a driver for the Texas Instruments OPT3002 light-to-digital
// sensor. Typical usage:
//
//	s := opt3002.New(bus)
//	err := s.Begin(ctx)
//	power, err := s.GetOpticalPower(ctx)
//
// The driver is synchronous and performs no internal locking; concurrent
// use of one instance must be serialized by the caller. Retry and timeout
// policy belong to the transport.
type OPT3002 struct {
	transport I2CBus
	addr      byte
	buf       []byte
	config    Config
}

type Option func(*OPT3002)

// WithAddress sets the bus address, coerced to the four strap-selectable
// values like SetAddress.
func WithAddress(addr byte) Option {
	return func(s *OPT3002) {
		s.addr = CoerceAddress(addr)
	}
}

// WithConfig sets the in-memory configuration that Begin applies.
func WithConfig(cfg Config) Option {
	return func(s *OPT3002) {
		s.config = cfg
	}
}

func New(transport I2CBus, opts ...Option) *OPT3002 {
	s := &OPT3002{
		transport: transport,
		addr:      DefaultAddress,
		buf:       make([]byte, 2),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetAddress sets the bus address of the sensor. The input is coerced
// into the window selectable by the ADDR pin (0x44..0x47); callers that
// need exact-match semantics must validate beforehand.
func (s *OPT3002) SetAddress(addr byte) {
	s.addr = CoerceAddress(addr)
}

// Address returns the effective 7-bit bus address.
func (s *OPT3002) Address() byte {
	return s.addr
}

// Begin verifies communication with the sensor and, only on success,
// applies the in-memory configuration. Note that the configuration
// defaults to the all-zero register reset value (shutdown mode) unless
// set through WithConfig or SetConfig first, so a plain Begin leaves the
// sensor shut down.
func (s *OPT3002) Begin(ctx context.Context) error {
	if err := s.CheckComms(ctx); err != nil {
		return err
	}
	return s.ApplyConfig(ctx)
}

// CheckComms reads the manufacturer ID register and compares it against
// the expected value ('TI'). A transport failure and a wrong ID are both
// errors; the latter is reported as ErrIdentityMismatch.
func (s *OPT3002) CheckComms(ctx context.Context) error {
	id, err := s.readRegister(ctx, regManufacturerID)
	if err != nil {
		return fmt.Errorf("opt3002: manufacturer ID read failed: %w", err)
	}
	if id != ManufacturerID {
		return fmt.Errorf("%w: %#04x", ErrIdentityMismatch, id)
	}
	return nil
}

// SetConfig replaces the in-memory configuration without touching the
// sensor. ApplyConfig or Begin pushes it to the hardware.
func (s *OPT3002) SetConfig(cfg Config) {
	s.config = cfg
}

// Config returns the in-memory configuration. It may diverge from the
// sensor's register until ApplyConfig is called, and is not refreshed by
// ReadConfig.
func (s *OPT3002) Config() Config {
	return s.config
}

// ApplyConfig writes the in-memory configuration to the sensor.
func (s *OPT3002) ApplyConfig(ctx context.Context) error {
	return s.WriteConfig(ctx, s.config)
}

// WriteConfig writes the given configuration to the sensor and stores it
// as the in-memory configuration.
func (s *OPT3002) WriteConfig(ctx context.Context, cfg Config) error {
	err := s.writeRegister(ctx, regConfig, uint16(cfg))
	if err != nil {
		return fmt.Errorf("opt3002: config write failed: %w", err)
	}
	s.config = cfg
	return nil
}

// ReadConfig reads the configuration register from the sensor. The
// in-memory configuration is left untouched.
func (s *OPT3002) ReadConfig(ctx context.Context) (Config, error) {
	raw, err := s.readRegister(ctx, regConfig)
	if err != nil {
		return 0, fmt.Errorf("opt3002: config read failed: %w", err)
	}
	return Config(raw), nil
}

// ReadResult reads the latest measurement in its raw mantissa/exponent
// form.
func (s *OPT3002) ReadResult(ctx context.Context) (Result, error) {
	raw, err := s.readRegister(ctx, regResult)
	if err != nil {
		return Result{}, fmt.Errorf("opt3002: result read failed: %w", err)
	}
	return ResultFromRaw(raw), nil
}

// GetOpticalPower returns the optical power of the latest measurement
// truncated to an integer number of nW/cm2. Use GetOpticalPowerFloat when
// sub-unit precision matters.
func (s *OPT3002) GetOpticalPower(ctx context.Context) (uint32, error) {
	power, err := s.GetOpticalPowerFloat(ctx)
	return uint32(power), err
}

// GetOpticalPowerFloat returns the optical power of the latest
// measurement in nW/cm2.
func (s *OPT3002) GetOpticalPowerFloat(ctx context.Context) (float32, error) {
	result, err := s.ReadResult(ctx)
	if err != nil {
		return 0, err
	}
	return result.OpticalPower(), nil
}

// SetHighLimit sets the measurement level above which fault events are
// counted.
func (s *OPT3002) SetHighLimit(ctx context.Context, limit Result) error {
	err := s.writeRegister(ctx, regHighLimit, limit.Raw())
	if err != nil {
		return fmt.Errorf("opt3002: high limit write failed: %w", err)
	}
	return nil
}

// SetHighLimitPower sets the high limit from an optical power in nW/cm2,
// quantized through QuantizePower.
func (s *OPT3002) SetHighLimitPower(ctx context.Context, power float32) error {
	return s.SetHighLimit(ctx, QuantizePower(power))
}

// HighLimit reads the current high limit level.
func (s *OPT3002) HighLimit(ctx context.Context) (Result, error) {
	raw, err := s.readRegister(ctx, regHighLimit)
	if err != nil {
		return Result{}, fmt.Errorf("opt3002: high limit read failed: %w", err)
	}
	return ResultFromRaw(raw), nil
}

// SetLowLimit sets the measurement level below which fault events are
// counted.
func (s *OPT3002) SetLowLimit(ctx context.Context, limit Result) error {
	err := s.writeRegister(ctx, regLowLimit, limit.Raw())
	if err != nil {
		return fmt.Errorf("opt3002: low limit write failed: %w", err)
	}
	return nil
}

// SetLowLimitPower sets the low limit from an optical power in nW/cm2,
// quantized through QuantizePower.
func (s *OPT3002) SetLowLimitPower(ctx context.Context, power float32) error {
	return s.SetLowLimit(ctx, QuantizePower(power))
}

// LowLimit reads the current low limit level. The reset default is 0.
func (s *OPT3002) LowLimit(ctx context.Context) (Result, error) {
	raw, err := s.readRegister(ctx, regLowLimit)
	if err != nil {
		return Result{}, fmt.Errorf("opt3002: low limit read failed: %w", err)
	}
	return ResultFromRaw(raw), nil
}

// Registers are 16-bit and transferred most significant byte first. The
// swap between wire order and the logical value happens here and only
// here; every caller works with the logical uint16.

func (s *OPT3002) readRegister(ctx context.Context, reg byte) (uint16, error) {
	err := s.transport.WriteToAddr(ctx, s.addr, []byte{reg})
	if err != nil {
		return 0, fmt.Errorf("register %#02x select failed: %w", reg, err)
	}
	err = s.transport.ReadFromAddr(ctx, s.addr, s.buf)
	if err != nil {
		return 0, fmt.Errorf("register %#02x read failed: %w", reg, err)
	}
	return binary.BigEndian.Uint16(s.buf), nil
}

func (s *OPT3002) writeRegister(ctx context.Context, reg byte, value uint16) error {
	payload := []byte{reg, 0, 0}
	binary.BigEndian.PutUint16(payload[1:], value)
	err := s.transport.WriteToAddr(ctx, s.addr, payload)
	if err != nil {
		return fmt.Errorf("register %#02x write failed: %w", reg, err)
	}
	return nil
}
