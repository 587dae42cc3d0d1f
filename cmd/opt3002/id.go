package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/gophertribe/opt3002"
	"github.com/gophertribe/opt3002/cmd/opt3002/console"
)

var idCmd = cli.Command{
	Name:  "id",
	Usage: "verify communication through the manufacturer ID register",
	Flags: transportFlags(),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		sensor, err := openSensor(ctx, c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		err = sensor.CheckComms(ctx)
		if errors.Is(err, opt3002.ErrIdentityMismatch) {
			return console.Exit(1, "%s device at %#x is not an OPT3002: %s", console.PictoStop, sensor.Address(), console.Red(err))
		}
		if err != nil {
			return console.Exit(1, "communication error: %s", console.Red(err))
		}
		console.PInfof(console.PictoCheck, "OPT3002 at %#x, manufacturer ID %#04x (%s)",
			sensor.Address(), opt3002.ManufacturerID, console.Green("TI"))
		return nil
	},
}
