// Command devbox pokes the Developerbox debug-UART GPIO latch over USB.
// It is mainly a wiring check for the bit-bang SPI recovery path: find the
// bridge, inspect the latch, and drive individual pins.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"
	"periph.io/x/host/v3"

	"github.com/gentam/devbox"
	"github.com/gentam/devbox/bitbang"
)

func main() {
	app := &cli.App{
		Name:  "devbox",
		Usage: "bit-bang SPI bridge for the 96Boards Developerbox debug UART",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "serial",
				Usage: "only use a bridge whose serial number starts with `PREFIX`",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per-transfer timeout",
				Value: devbox.DefaultTimeout,
			},
			&cli.BoolFlag{
				Name:  "best-effort",
				Usage: "log and ignore transfer failures",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "verbose logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			infoCommand,
			getCommand,
			setCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

// openDevice opens the bridge per the global flags and registers it with
// the bitbang framework. Callers tear down via bitbang.Shutdown.Run.
func openDevice(c *cli.Context) (*devbox.Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}

	d, err := devbox.Open(devbox.Config{
		Serial:     c.String("serial"),
		Timeout:    c.Duration("timeout"),
		BestEffort: c.Bool("best-effort"),
	})
	if err != nil {
		return nil, err
	}

	if err := d.Register(); err != nil {
		bitbang.Shutdown.Run()
		return nil, err
	}
	if err := d.RegisterPins(); err != nil {
		bitbang.Shutdown.Run()
		return nil, err
	}
	return d, nil
}
