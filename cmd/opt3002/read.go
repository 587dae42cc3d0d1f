package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gophertribe/opt3002"
	"github.com/gophertribe/opt3002/cmd/opt3002/console"
)

var readCmd = cli.Command{
	Name:    "read",
	Aliases: []string{"rd"},
	Usage:   "trigger a single-shot conversion and read the optical power",
	Flags: append(transportFlags(),
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "print the raw mantissa/exponent instead of nW/cm2",
		},
		&cli.BoolFlag{
			Name:  "long",
			Usage: "use the 800ms conversion time instead of 100ms",
		},
	),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		sensor, err := openSensor(ctx, c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		var cfg opt3002.Config
		cfg.SetRange(opt3002.RangeAuto)
		cfg.SetMode(opt3002.ModeSingleShot)
		conversion := 150 * time.Millisecond
		if c.Bool("long") {
			cfg.SetConversionTime(opt3002.ConversionTime800ms)
			conversion = 900 * time.Millisecond
		}
		sensor.SetConfig(cfg)
		err = sensor.Begin(ctx)
		if err != nil {
			return console.Exit(1, "sensor initialization error: %s", console.Red(err))
		}
		// give the conversion time to complete before reading the result
		time.Sleep(conversion)
		if c.Bool("raw") {
			result, err := sensor.ReadResult(ctx)
			if err != nil {
				return console.Exit(1, "error reading measurement: %s", console.Red(err))
			}
			console.Printf("reading: %s exponent: %s\n", console.White(result.Reading), console.White(result.Exponent))
			return nil
		}
		power, err := sensor.GetOpticalPower(ctx)
		if err != nil {
			return console.Exit(1, "error reading measurement: %s", console.Red(err))
		}
		console.Printf("%s %s nW/cm2\n", console.PictoSun, console.White(power))
		return nil
	},
}
