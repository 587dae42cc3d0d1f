package opt3002

import (
	"context"
)

// PowerBehaviorFunc defines the function signature for optical power
// sensor behavior. It returns the optical power in nW/cm2 or an error.
type PowerBehaviorFunc func(ctx context.Context) (uint32, error)

// MockPowerSensor is a mock implementation of an optical power sensor
// that uses a behavior function to produce results without requiring any
// hardware.
type MockPowerSensor struct {
	behavior PowerBehaviorFunc
}

// NewMockPowerSensor creates a new mock sensor with the given behavior
// function. The behavior function is called whenever GetOpticalPower is
// invoked.
//
// Example usage:
//
//	// Static value
//	sensor := NewMockPowerSensor(func(ctx context.Context) (uint32, error) {
//		return 2456, nil
//	})
//
//	// Error simulation
//	sensor := NewMockPowerSensor(func(ctx context.Context) (uint32, error) {
//		return 0, fmt.Errorf("sensor malfunction")
//	})
func NewMockPowerSensor(behavior PowerBehaviorFunc) *MockPowerSensor {
	return &MockPowerSensor{
		behavior: behavior,
	}
}

// GetOpticalPower returns the optical power by calling the behavior
// function.
func (m *MockPowerSensor) GetOpticalPower(ctx context.Context) (uint32, error) {
	return m.behavior(ctx)
}
