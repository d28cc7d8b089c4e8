package main

import (
	"fmt"

	cli "github.com/urfave/cli/v2"

	"github.com/gentam/devbox/bitbang"
)

var infoCommand = &cli.Command{
	Name:   "info",
	Usage:  "show the selected bridge and its latch state",
	Action: infoAction,
}

func infoAction(c *cli.Context) error {
	d, err := openDevice(c)
	if err != nil {
		return err
	}
	defer bitbang.Shutdown.Run()

	desc := d.Descriptor()
	fmt.Printf("Vendor ID:   %#04x\n", uint16(desc.Vendor))
	fmt.Printf("Product ID:  %#04x\n", uint16(desc.Product))
	fmt.Printf("Address:     %d-%d\n", desc.Bus, desc.Address)

	serial, err := d.SerialNumber()
	if err != nil {
		return err
	}
	fmt.Printf("Serial:      %s\n", serial)

	v, err := d.Latch()
	if err != nil {
		return err
	}
	fmt.Printf("Latch:       %#x\n", v)
	fmt.Printf("Backends:    %v\n", bitbang.Masters.Types())
	return nil
}
