package opt3002

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockI2CBus is a mock implementation of I2CBus using testify/mock
type MockI2CBus struct {
	mock.Mock
}

func (m *MockI2CBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	return args.Error(0)
}

func (m *MockI2CBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	if args.Get(0) != nil {
		// Copy mock data to buffer if provided
		if data, ok := args.Get(0).([]byte); ok && len(data) <= len(buffer) {
			copy(buffer, data)
		}
	}
	return args.Error(1)
}

func (m *MockI2CBus) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// expectRegisterRead sets up the register select write followed by the
// two-byte big-endian read the driver performs for every register access.
func expectRegisterRead(bus *MockI2CBus, addr, reg byte, value uint16, readErr error) {
	bus.On("WriteToAddr", mock.Anything, addr, []byte{reg}).Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, addr, mock.Anything).
		Return([]byte{byte(value >> 8), byte(value)}, readErr).Once()
}

func TestOPT3002_AddressCoercion(t *testing.T) {
	tests := []struct {
		name     string
		input    byte
		expected byte
	}{
		{name: "zero forces base bits", input: 0x00, expected: 0x44},
		{name: "top strap address passes through", input: 0x47, expected: 0x47},
		{name: "out of range masks to top strap", input: 0xFF, expected: 0x47},
		{name: "default passes through", input: 0x44, expected: 0x44},
		{name: "strap bit one", input: 0x45, expected: 0x45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sensor := New(new(MockI2CBus), WithAddress(tt.input))
			assert.Equal(t, tt.expected, sensor.Address())

			sensor = New(new(MockI2CBus))
			sensor.SetAddress(tt.input)
			assert.Equal(t, tt.expected, sensor.Address())
		})
	}
}

func TestOPT3002_DefaultAddress(t *testing.T) {
	sensor := New(new(MockI2CBus))
	assert.Equal(t, byte(0x44), sensor.Address())
}

func TestOPT3002_CheckComms(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockI2CBus)
		check     func(*testing.T, error)
	}{
		{
			name: "exact manufacturer ID match",
			setupMock: func(bus *MockI2CBus) {
				expectRegisterRead(bus, DefaultAddress, regManufacturerID, ManufacturerID, nil)
			},
			check: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "wrong manufacturer ID",
			setupMock: func(bus *MockI2CBus) {
				expectRegisterRead(bus, DefaultAddress, regManufacturerID, 0x5448, nil)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrIdentityMismatch)
			},
		},
		{
			name: "transport failure during read",
			setupMock: func(bus *MockI2CBus) {
				expectRegisterRead(bus, DefaultAddress, regManufacturerID, 0, errors.New("i2c read failed"))
			},
			check: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrIdentityMismatch)
				assert.Contains(t, err.Error(), "manufacturer ID read failed")
			},
		},
		{
			name: "transport failure during register select",
			setupMock: func(bus *MockI2CBus) {
				bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{regManufacturerID}).
					Return(errors.New("i2c write failed")).Once()
			},
			check: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrIdentityMismatch)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := new(MockI2CBus)
			sensor := New(bus)
			tt.setupMock(bus)

			tt.check(t, sensor.CheckComms(context.Background()))
			bus.AssertExpectations(t)
		})
	}
}

func TestOPT3002_Begin(t *testing.T) {
	t.Run("applies configuration after identity check", func(t *testing.T) {
		bus := new(MockI2CBus)
		var cfg Config
		cfg.SetRange(RangeAuto)
		cfg.SetMode(ModeContinuous)
		sensor := New(bus, WithConfig(cfg))

		expectRegisterRead(bus, DefaultAddress, regManufacturerID, ManufacturerID, nil)
		bus.On("WriteToAddr", mock.Anything, DefaultAddress,
			[]byte{regConfig, byte(uint16(cfg) >> 8), byte(uint16(cfg))}).Return(nil).Once()

		assert.NoError(t, sensor.Begin(context.Background()))
		bus.AssertExpectations(t)
	})

	t.Run("no config write when identity check fails", func(t *testing.T) {
		bus := new(MockI2CBus)
		sensor := New(bus)

		expectRegisterRead(bus, DefaultAddress, regManufacturerID, 0xBEEF, nil)

		err := sensor.Begin(context.Background())
		assert.ErrorIs(t, err, ErrIdentityMismatch)
		bus.AssertNotCalled(t, "WriteToAddr", mock.Anything, DefaultAddress,
			[]byte{regConfig, 0x00, 0x00})
		bus.AssertExpectations(t)
	})

	t.Run("no config write on transport failure", func(t *testing.T) {
		bus := new(MockI2CBus)
		sensor := New(bus)

		bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{regManufacturerID}).
			Return(errors.New("no ack")).Once()

		assert.Error(t, sensor.Begin(context.Background()))
		bus.AssertNumberOfCalls(t, "WriteToAddr", 1)
	})
}

func TestOPT3002_WireByteOrder(t *testing.T) {
	// registers travel most significant byte first; the logical value
	// 0xC810 must appear on the wire as 0xC8 then 0x10
	bus := new(MockI2CBus)
	sensor := New(bus)

	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{regConfig, 0xC8, 0x10}).
		Return(nil).Once()
	assert.NoError(t, sensor.WriteConfig(context.Background(), Config(0xC810)))

	expectRegisterRead(bus, DefaultAddress, regConfig, 0xC810, nil)
	cfg, err := sensor.ReadConfig(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, Config(0xC810), cfg)

	bus.AssertExpectations(t)
}

func TestOPT3002_ConfigCache(t *testing.T) {
	bus := new(MockI2CBus)
	var cached Config
	cached.SetMode(ModeSingleShot)
	sensor := New(bus, WithConfig(cached))

	// ReadConfig must not touch the in-memory configuration
	expectRegisterRead(bus, DefaultAddress, regConfig, 0xFFFF, nil)
	device, err := sensor.ReadConfig(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, Config(0xFFFF), device)
	assert.Equal(t, cached, sensor.Config())

	// WriteConfig replaces it
	var next Config
	next.SetMode(ModeContinuous)
	bus.On("WriteToAddr", mock.Anything, DefaultAddress,
		[]byte{regConfig, byte(uint16(next) >> 8), byte(uint16(next))}).Return(nil).Once()
	assert.NoError(t, sensor.WriteConfig(context.Background(), next))
	assert.Equal(t, next, sensor.Config())

	// a failed write leaves the cache alone
	var rejected Config
	rejected.SetMode(ModeShutdown)
	rejected.SetRange(Range10M)
	bus.On("WriteToAddr", mock.Anything, DefaultAddress,
		[]byte{regConfig, byte(uint16(rejected) >> 8), byte(uint16(rejected))}).
		Return(errors.New("no ack")).Once()
	assert.Error(t, sensor.WriteConfig(context.Background(), rejected))
	assert.Equal(t, next, sensor.Config())

	bus.AssertExpectations(t)
}

func TestOPT3002_GetOpticalPower(t *testing.T) {
	tests := []struct {
		name     string
		raw      uint16
		expected uint32
	}{
		{
			name:     "mid-range mantissa",
			raw:      Result{Reading: 2047, Exponent: 0}.Raw(),
			expected: 2456,
		},
		{
			name:     "high exponent",
			raw:      Result{Reading: 1, Exponent: 15}.Raw(),
			expected: 39321,
		},
		{
			name:     "dark",
			raw:      0,
			expected: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := new(MockI2CBus)
			sensor := New(bus)
			expectRegisterRead(bus, DefaultAddress, regResult, tt.raw, nil)

			power, err := sensor.GetOpticalPower(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, power)
			bus.AssertExpectations(t)
		})
	}

	t.Run("read error", func(t *testing.T) {
		bus := new(MockI2CBus)
		sensor := New(bus)
		expectRegisterRead(bus, DefaultAddress, regResult, 0, errors.New("i2c read failed"))

		_, err := sensor.GetOpticalPower(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "opt3002: result read failed")
	})
}

func TestOPT3002_Limits(t *testing.T) {
	t.Run("set and get high limit", func(t *testing.T) {
		bus := new(MockI2CBus)
		sensor := New(bus)
		limit := Result{Reading: 1024, Exponent: 3}

		raw := limit.Raw()
		bus.On("WriteToAddr", mock.Anything, DefaultAddress,
			[]byte{regHighLimit, byte(raw >> 8), byte(raw)}).Return(nil).Once()
		assert.NoError(t, sensor.SetHighLimit(context.Background(), limit))

		expectRegisterRead(bus, DefaultAddress, regHighLimit, raw, nil)
		got, err := sensor.HighLimit(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, limit, got)
		bus.AssertExpectations(t)
	})

	t.Run("set and get low limit", func(t *testing.T) {
		bus := new(MockI2CBus)
		sensor := New(bus)
		limit := Result{Reading: 16, Exponent: 0}

		raw := limit.Raw()
		bus.On("WriteToAddr", mock.Anything, DefaultAddress,
			[]byte{regLowLimit, byte(raw >> 8), byte(raw)}).Return(nil).Once()
		assert.NoError(t, sensor.SetLowLimit(context.Background(), limit))

		expectRegisterRead(bus, DefaultAddress, regLowLimit, raw, nil)
		got, err := sensor.LowLimit(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, limit, got)
		bus.AssertExpectations(t)
	})

	t.Run("float limits quantize before writing", func(t *testing.T) {
		bus := new(MockI2CBus)
		sensor := New(bus)

		// 1.2 * 5000 nW/cm2 encodes as reading 2500, exponent 1
		expected := Result{Reading: 2500, Exponent: 1}.Raw()
		bus.On("WriteToAddr", mock.Anything, DefaultAddress,
			[]byte{regHighLimit, byte(expected >> 8), byte(expected)}).Return(nil).Once()
		assert.NoError(t, sensor.SetHighLimitPower(context.Background(), 1.2*5000))

		bus.On("WriteToAddr", mock.Anything, DefaultAddress,
			[]byte{regLowLimit, 0x00, 0x00}).Return(nil).Once()
		assert.NoError(t, sensor.SetLowLimitPower(context.Background(), 0))

		bus.AssertExpectations(t)
	})

	t.Run("write error", func(t *testing.T) {
		bus := new(MockI2CBus)
		sensor := New(bus)
		bus.On("WriteToAddr", mock.Anything, DefaultAddress, mock.Anything).
			Return(errors.New("no ack")).Once()

		err := sensor.SetHighLimit(context.Background(), Result{Reading: 1})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "opt3002: high limit write failed")
	})
}
