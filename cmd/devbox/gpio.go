package main

import (
	"fmt"

	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
	"periph.io/x/conn/v3/gpio"

	"github.com/gentam/devbox"
	"github.com/gentam/devbox/bitbang"
)

var getCommand = &cli.Command{
	Name:   "get",
	Usage:  "read all four pins",
	Action: getAction,
}

var setCommand = &cli.Command{
	Name:      "set",
	Usage:     "drive one pin",
	ArgsUsage: "<sck|cs|mosi> <0|1>",
	Action:    setAction,
}

func getAction(c *cli.Context) error {
	d, err := openDevice(c)
	if err != nil {
		return err
	}
	defer bitbang.Shutdown.Run()

	v, err := d.Latch()
	if err != nil {
		return err
	}
	for _, r := range []devbox.Role{devbox.SCK, devbox.CS, devbox.MISO, devbox.MOSI} {
		fmt.Printf("%-5s %d\n", r, v>>uint(d.Pin(r).Number())&1)
	}
	return nil
}

func setAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("usage: set <sck|cs|mosi> <0|1>")
	}

	var role devbox.Role
	switch name := c.Args().Get(0); name {
	case "sck":
		role = devbox.SCK
	case "cs":
		role = devbox.CS
	case "mosi":
		role = devbox.MOSI
	case "miso":
		return errors.New("miso is an input")
	default:
		return errors.Errorf("unknown pin %q", name)
	}

	var level gpio.Level
	switch c.Args().Get(1) {
	case "0":
		level = gpio.Low
	case "1":
		level = gpio.High
	default:
		return errors.Errorf("bad level %q", c.Args().Get(1))
	}

	d, err := openDevice(c)
	if err != nil {
		return err
	}
	defer bitbang.Shutdown.Run()

	return d.Pin(role).Out(level)
}
