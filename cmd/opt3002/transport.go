package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/friendlyelec/nanopi"

	"github.com/gophertribe/opt3002"
	"github.com/gophertribe/opt3002/adapter"
	"github.com/gophertribe/opt3002/gobotadapter"
	"github.com/gophertribe/opt3002/i2c"
)

func transportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "adapter",
			Aliases: []string{"a"},
			Usage:   "bus transport: mcp2221, periph or nanopi",
			Value:   "mcp2221",
		},
		&cli.StringFlag{
			Name:  "bus",
			Usage: "periph bus name (e.g. /dev/i2c-1 or 1)",
			Value: "1",
		},
		&cli.IntFlag{
			Name:  "busnum",
			Usage: "gobot bus number",
			Value: 2,
		},
		&cli.StringFlag{
			Name:  "addr",
			Usage: "sensor address (0x44..0x47)",
			Value: "0x44",
		},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	}
}

func sensorAddress(c *cli.Context) (byte, error) {
	addr, err := strconv.ParseUint(c.String("addr"), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", c.String("addr"), err)
	}
	return byte(addr), nil
}

func openTransport(ctx context.Context, c *cli.Context) (opt3002.I2CBus, error) {
	switch c.String("adapter") {
	case "mcp2221":
		a := adapter.NewMCP2221()
		err := a.Init(ctx)
		if err != nil {
			return nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		return a, nil
	case "periph":
		return i2c.NewGenericBus(c.String("bus"))
	case "nanopi":
		npi := nanopi.NewNeoAdaptor()
		err := npi.I2cBusAdaptor.Connect()
		if err != nil {
			return nil, fmt.Errorf("adaptor connect error: %w", err)
		}
		addr, err := sensorAddress(c)
		if err != nil {
			return nil, err
		}
		return gobotadapter.New(npi, opt3002.CoerceAddress(addr), c.Int("busnum"))
	default:
		return nil, fmt.Errorf("unknown adapter %q", c.String("adapter"))
	}
}

func openSensor(ctx context.Context, c *cli.Context) (*opt3002.OPT3002, error) {
	transport, err := openTransport(ctx, c)
	if err != nil {
		return nil, err
	}
	addr, err := sensorAddress(c)
	if err != nil {
		return nil, err
	}
	return opt3002.New(transport, opt3002.WithAddress(addr)), nil
}
