package devbox

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/gentam/devbox/bitbang"
)

// Device identity of the Developerbox debug UART bridge.
const (
	VendorID  ID = 0x10C4 // Silicon Labs
	ProductID ID = 0xEA60 // CP2102N USB to UART Bridge Controller
)

// DefaultTimeout bounds each latch control transfer. A stuck transfer
// would otherwise block the whole bit-bang sequence.
const DefaultTimeout = 5 * time.Second

// Config controls device selection and transfer behavior.
type Config struct {
	// Serial restricts selection to devices whose USB serial-number
	// string starts with this prefix. Empty accepts any serial, useful
	// when several bridges are attached.
	Serial string

	// Timeout bounds each control transfer. Zero means DefaultTimeout;
	// negative means no timeout.
	Timeout time.Duration

	// BestEffort absorbs transfer failures instead of returning them:
	// reads degrade to all-zero, writes are dropped, both are logged.
	// Fits the tool's role as a last-resort de-brick path where a lost
	// bit only costs a retry of the whole operation.
	BestEffort bool

	// Logger defaults to logrus.StandardLogger.
	Logger logrus.FieldLogger
}

// Device is one open Developerbox programmer. It owns the USB device handle
// and, when built by Open, the transport; both are released by Close.
type Device struct {
	SCK  *LatchPin
	CS   *LatchPin
	MISO *LatchPin
	MOSI *LatchPin

	t    Transport
	h    Handle
	m    *SPIMaster
	desc Descriptor
	log  logrus.FieldLogger
}

// Open finds the Developerbox programmer on USB and prepares its GPIO
// latch for bit-banging.
func Open(cfg Config) (*Device, error) {
	t, err := NewTransport()
	if err != nil {
		return nil, err
	}
	d, err := OpenWith(t, cfg)
	if err != nil {
		t.Close()
		return nil, err
	}
	return d, nil
}

// OpenWith is Open over a caller-supplied transport. The transport is not
// closed on failure; it still belongs to the caller until OpenWith
// succeeds, after which Close releases both.
func OpenWith(t Transport, cfg Config) (*Device, error) {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.Serial != "" {
		log.Infof("looking for serial number commencing %s", cfg.Serial)
	}

	h, desc, err := findDevice(t, VendorID, ProductID, cfg.Serial, log)
	if err != nil {
		return nil, errors.Wrap(err, "no Developerbox programmer on USB")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	h.SetTimeout(timeout)

	l := &latch{h: h, log: log, bestEffort: cfg.BestEffort}
	return &Device{
		SCK:  newLatchPin(SCK, desc, l),
		CS:   newLatchPin(CS, desc, l),
		MISO: newLatchPin(MISO, desc, l),
		MOSI: newLatchPin(MOSI, desc, l),
		t:    t,
		h:    h,
		m:    &SPIMaster{l: l},
		desc: desc,
		log:  log,
	}, nil
}

// Close releases the device handle, then the transport. Call at most once;
// the Device is unusable afterwards.
func (d *Device) Close() error {
	err := d.h.Close()
	if d.t != nil {
		if terr := d.t.Close(); err == nil {
			err = terr
		}
	}
	return err
}

// Master returns the bit-bang SPI backend for this device.
func (d *Device) Master() *SPIMaster { return d.m }

// Descriptor reports which attached bridge was selected.
func (d *Device) Descriptor() Descriptor { return d.desc }

// SerialNumber reads the device's USB serial-number string.
func (d *Device) SerialNumber() (string, error) {
	return d.h.SerialNumber()
}

// Latch returns the raw GPIO latch byte.
func (d *Device) Latch() (uint8, error) {
	v, err := d.m.l.get()
	if err != nil {
		return 0, err
	}
	return v & 0xF, nil
}

// Register wires the device into the bitbang framework: Close as a
// shutdown hook, then the SPI master under its type tag.
func (d *Device) Register() error {
	return d.RegisterWith(bitbang.Masters, bitbang.Shutdown)
}

// RegisterWith is Register against explicit registries.
func (d *Device) RegisterWith(reg *bitbang.Registry, hooks *bitbang.Hooks) error {
	hooks.Add(d.Close)
	if err := reg.Register(d.m); err != nil {
		// Only one master carries this tag; a duplicate registration
		// means the caller initialized twice.
		return errors.Wrap(err, "registering Developerbox bit-bang SPI master")
	}
	return nil
}

// RegisterPins publishes the four latch pins in the periph gpio registry
// under cp210x/<bus>-<address>/<signal> names. Call host.Init first.
func (d *Device) RegisterPins() error {
	for _, p := range []*LatchPin{d.SCK, d.CS, d.MISO, d.MOSI} {
		if err := gpioreg.Register(p); err != nil {
			return errors.Wrapf(err, "registering pin %s", p.Name())
		}
	}
	return nil
}

// Pin returns the pin wired to the given signal.
func (d *Device) Pin(r Role) gpio.PinIO {
	switch r {
	case SCK:
		return d.SCK
	case CS:
		return d.CS
	case MISO:
		return d.MISO
	case MOSI:
		return d.MOSI
	}
	return nil
}
