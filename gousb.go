package devbox

import (
	"time"

	"github.com/google/gousb"
	"github.com/pkg/errors"
)

// The gousb-backed transport. libusb cannot inspect a device descriptor's
// string fields without opening the device, and gousb does not expose
// enumeration without opening at all, so List pre-filters by vendor/product
// in the OpenDevices matcher and hands out candidates that are already open
// under the hood. Release closes whatever the selector did not claim.

type usbTransport struct {
	ctx *gousb.Context
}

// NewTransport opens the process-wide libusb context.
func NewTransport() (t Transport, err error) {
	// gousb panics when libusb_init fails.
	defer func() {
		if p := recover(); p != nil {
			t, err = nil, errors.Errorf("initializing libusb: %v", p)
		}
	}()
	return &usbTransport{ctx: gousb.NewContext()}, nil
}

func (t *usbTransport) List(vendor, product ID) (DeviceList, error) {
	devs, err := t.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(vendor) && desc.Product == gousb.ID(product)
	})
	if err != nil {
		// OpenDevices returns the devices it managed to open even on
		// error.
		for _, d := range devs {
			d.Close()
		}
		return nil, errors.Wrap(err, "listing USB devices")
	}
	return &usbList{devs: devs, claimed: make([]bool, len(devs))}, nil
}

func (t *usbTransport) Close() error {
	return t.ctx.Close()
}

type usbList struct {
	devs    []*gousb.Device
	claimed []bool
}

func (l *usbList) Len() int {
	return len(l.devs)
}

func (l *usbList) At(i int) Candidate {
	return &usbCandidate{list: l, i: i}
}

func (l *usbList) Release() {
	for i, d := range l.devs {
		if !l.claimed[i] {
			d.Close()
		}
	}
	l.devs = nil
}

type usbCandidate struct {
	list *usbList
	i    int
}

func (c *usbCandidate) Descriptor() (Descriptor, error) {
	desc := c.list.devs[c.i].Desc
	return Descriptor{
		Vendor:  ID(desc.Vendor),
		Product: ID(desc.Product),
		Bus:     desc.Bus,
		Address: desc.Address,
	}, nil
}

func (c *usbCandidate) Open() (Handle, error) {
	c.list.claimed[c.i] = true
	return &usbHandle{dev: c.list.devs[c.i]}, nil
}

type usbHandle struct {
	dev *gousb.Device
}

func (h *usbHandle) SerialNumber() (string, error) {
	s, err := h.dev.SerialNumber()
	if err != nil {
		return "", err
	}
	if len(s) > serialMaxLen {
		s = s[:serialMaxLen]
	}
	return s, nil
}

func (h *usbHandle) Control(requestType, request uint8, value, index uint16, data []byte) (int, error) {
	return h.dev.Control(requestType, request, value, index, data)
}

func (h *usbHandle) SetTimeout(d time.Duration) {
	if d < 0 {
		d = 0 // unlimited
	}
	h.dev.ControlTimeout = d
}

func (h *usbHandle) Close() error {
	return h.dev.Close()
}
