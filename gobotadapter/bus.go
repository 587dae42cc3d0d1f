package gobotadapter

import (
	"context"
	"fmt"

	"gobot.io/x/gobot/v2/drivers/i2c"

	"github.com/gophertribe/opt3002"
)

var _ opt3002.I2CBus = &Bus{}

// Bus adapts a gobot I2C connector (nanopi, raspi, ...) to the opt3002
// transport contract. The gobot generic driver binds the target address
// when it starts, so one Bus serves exactly one device address.
type Bus struct {
	addr   byte
	driver *i2c.GenericDriver
}

// New starts a gobot generic I2C driver bound to the given address on
// the given bus number. The adaptor must already be connected.
func New(adaptor i2c.Connector, address byte, busNumber int) (*Bus, error) {
	driver := i2c.NewGenericDriver(adaptor, "opt3002", int(address), func(c i2c.Config) {
		c.SetBus(busNumber)
	})
	err := driver.Start()
	if err != nil {
		return nil, fmt.Errorf("could not start i2c driver: %w", err)
	}
	return &Bus{
		addr:   address,
		driver: driver,
	}, nil
}

func (b *Bus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	if address != b.addr {
		return fmt.Errorf("bus is bound to address %#x, got %#x", b.addr, address)
	}
	err := b.driver.Write(buffer)
	if err != nil {
		return fmt.Errorf("could not write to i2c device %x: %w", address, err)
	}
	return nil
}

func (b *Bus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	if address != b.addr {
		return fmt.Errorf("bus is bound to address %#x, got %#x", b.addr, address)
	}
	err := b.driver.Read(buffer)
	if err != nil {
		return fmt.Errorf("could not read from i2c device %x: %w", address, err)
	}
	return nil
}

func (b *Bus) Release(ctx context.Context) error {
	return b.driver.Halt()
}
