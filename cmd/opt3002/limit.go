package main

import (
	"context"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/gophertribe/opt3002"
	"github.com/gophertribe/opt3002/cmd/opt3002/console"
)

var limitCmd = cli.Command{
	Name:  "limit",
	Usage: "inspect or change the fault limit registers",
	Subcommands: []*cli.Command{
		&limitGetCmd,
		&limitSetCmd,
	},
}

var limitGetCmd = cli.Command{
	Name:      "get",
	Usage:     "read the low and high limit levels",
	Flags:     transportFlags(),
	ArgsUsage: " ",
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		sensor, err := openSensor(ctx, c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		low, err := sensor.LowLimit(ctx)
		if err != nil {
			return console.Exit(1, "low limit read error: %s", console.Red(err))
		}
		high, err := sensor.HighLimit(ctx)
		if err != nil {
			return console.Exit(1, "high limit read error: %s", console.Red(err))
		}
		console.Printf("%s low:  %s nW/cm2 (reading %d, exponent %d)\n",
			console.PictoMoon, console.White(low.OpticalPower()), low.Reading, low.Exponent)
		console.Printf("%s high: %s nW/cm2 (reading %d, exponent %d)\n",
			console.PictoSun, console.White(high.OpticalPower()), high.Reading, high.Exponent)
		return nil
	},
}

var limitSetCmd = cli.Command{
	Name:      "set",
	Usage:     "set a limit level from an optical power in nW/cm2",
	ArgsUsage: "<low|high> <power>",
	Flags:     transportFlags(),
	Action: func(c *cli.Context) error {
		if c.NArg() != 2 {
			return console.Exit(1, "usage: limit set <low|high> <power>")
		}
		power, err := strconv.ParseFloat(c.Args().Get(1), 32)
		if err != nil {
			return console.Exit(1, "invalid power value %q: %s", c.Args().Get(1), console.Red(err))
		}
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		sensor, err := openSensor(ctx, c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		limit := opt3002.QuantizePower(float32(power))
		switch c.Args().Get(0) {
		case "low":
			err = sensor.SetLowLimit(ctx, limit)
		case "high":
			err = sensor.SetHighLimit(ctx, limit)
		default:
			return console.Exit(1, "unknown limit %q", c.Args().Get(0))
		}
		if err != nil {
			return console.Exit(1, "limit write error: %s", console.Red(err))
		}
		console.PInfof(console.PictoPin, "%s limit set to %v nW/cm2 (reading %d, exponent %d)",
			c.Args().Get(0), limit.OpticalPower(), limit.Reading, limit.Exponent)
		return nil
	},
}
