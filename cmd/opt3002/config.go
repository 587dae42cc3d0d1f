package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/gophertribe/opt3002"
	"github.com/gophertribe/opt3002/cmd/opt3002/console"
)

var configCmd = cli.Command{
	Name:  "config",
	Usage: "inspect or change the sensor configuration register",
	Subcommands: []*cli.Command{
		&configGetCmd,
		&configSetCmd,
	},
}

var configGetCmd = cli.Command{
	Name:  "get",
	Usage: "read the configuration register",
	Flags: transportFlags(),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		sensor, err := openSensor(ctx, c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		cfg, err := sensor.ReadConfig(ctx)
		if err != nil {
			return console.Exit(1, "config read error: %s", console.Red(err))
		}
		enc := yaml.NewEncoder(os.Stdout)
		err = enc.Encode(cfg.Values())
		if err != nil {
			return console.Exit(1, "encoding error: %s", console.Red(err))
		}
		return nil
	},
}

var configSetCmd = cli.Command{
	Name:  "set",
	Usage: "write the configuration register",
	Flags: append(transportFlags(),
		&cli.StringFlag{
			Name:  "mode",
			Usage: "conversion mode: shutdown, single-shot or continuous",
			Value: "continuous",
		},
		&cli.StringFlag{
			Name:  "range",
			Usage: "full-scale range: auto or index 0-11",
			Value: "auto",
		},
		&cli.BoolFlag{
			Name:  "long",
			Usage: "use the 800ms conversion time instead of 100ms",
		},
		&cli.BoolFlag{
			Name:  "latch",
			Usage: "latch interrupts until the sensor is read",
		},
		&cli.BoolFlag{
			Name:  "active-high",
			Usage: "make the interrupt pin active-high",
		},
		&cli.IntFlag{
			Name:  "faults",
			Usage: "faults before interrupt: 1, 2, 4 or 8",
			Value: 1,
		},
		&cli.BoolFlag{
			Name:  "yes",
			Usage: "do not ask for confirmation",
		},
	),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		cfg, err := buildConfig(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		if !c.Bool("yes") {
			answer, err := console.YesOrNo(fmt.Sprintf("write configuration %#04x to the sensor?", uint16(cfg)))
			if err != nil {
				return console.Exit(1, "%s", console.Red(err))
			}
			if answer != console.Yes {
				console.Info("aborted")
				return nil
			}
		}
		sensor, err := openSensor(ctx, c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		err = sensor.WriteConfig(ctx, cfg)
		if err != nil {
			return console.Exit(1, "config write error: %s", console.Red(err))
		}
		console.PInfof(console.PictoCheck, "configuration written: %#04x", uint16(cfg))
		return nil
	},
}

func buildConfig(c *cli.Context) (opt3002.Config, error) {
	var cfg opt3002.Config
	switch c.String("mode") {
	case "shutdown":
		cfg.SetMode(opt3002.ModeShutdown)
	case "single-shot":
		cfg.SetMode(opt3002.ModeSingleShot)
	case "continuous":
		cfg.SetMode(opt3002.ModeContinuous)
	default:
		return 0, fmt.Errorf("unknown mode %q", c.String("mode"))
	}
	if c.String("range") == "auto" {
		cfg.SetRange(opt3002.RangeAuto)
	} else {
		var idx int
		_, err := fmt.Sscanf(c.String("range"), "%d", &idx)
		if err != nil || idx < 0 || idx > int(opt3002.Range10M) {
			return 0, fmt.Errorf("invalid range %q", c.String("range"))
		}
		cfg.SetRange(opt3002.Range(idx))
	}
	if c.Bool("long") {
		cfg.SetConversionTime(opt3002.ConversionTime800ms)
	}
	if c.Bool("latch") {
		cfg.SetInterruptMode(opt3002.InterruptLatched)
	}
	if c.Bool("active-high") {
		cfg.SetPolarity(opt3002.ActiveHigh)
	}
	switch c.Int("faults") {
	case 1:
		cfg.SetFaultCount(opt3002.Fault1)
	case 2:
		cfg.SetFaultCount(opt3002.Fault2)
	case 4:
		cfg.SetFaultCount(opt3002.Fault4)
	case 8:
		cfg.SetFaultCount(opt3002.Fault8)
	default:
		return 0, fmt.Errorf("invalid fault count %d", c.Int("faults"))
	}
	return cfg, nil
}
