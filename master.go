package devbox

import (
	"periph.io/x/conn/v3/gpio"

	"github.com/gentam/devbox/bitbang"
)

// MasterType tags the Developerbox backend in the bitbang registry.
const MasterType = "developerbox"

// SPIMaster drives the four debug-UART GPIO pins in the pattern a bit-bang
// SPI engine expects. Calls must be serialized by the caller.
type SPIMaster struct {
	l *latch
}

func (m *SPIMaster) Type() string { return MasterType }

func (m *SPIMaster) SetCS(l gpio.Level) error { return m.setPin(CS, l) }

func (m *SPIMaster) SetSCK(l gpio.Level) error { return m.setPin(SCK, l) }

func (m *SPIMaster) SetMOSI(l gpio.Level) error { return m.setPin(MOSI, l) }

func (m *SPIMaster) GetMISO() (gpio.Level, error) {
	v, err := m.l.get()
	if err != nil {
		return gpio.Low, err
	}
	return gpio.Level(v&(1<<latchBit[MISO]) != 0), nil
}

// SetSCKMOSI updates clock and data-out in a single masked latch write, so
// the data bit is stable on the very clock edge that samples it.
func (m *SPIMaster) SetSCKMOSI(sck, mosi gpio.Level) error {
	var val uint8
	if sck {
		val |= 1 << latchBit[SCK]
	}
	if mosi {
		val |= 1 << latchBit[MOSI]
	}
	return m.l.set(val, 1<<latchBit[SCK]|1<<latchBit[MOSI])
}

func (m *SPIMaster) setPin(r Role, l gpio.Level) error {
	bit := latchBit[r]
	var val uint8
	if l {
		val = 1 << bit
	}
	return m.l.set(val, 1<<bit)
}

var _ bitbang.Master = (*SPIMaster)(nil)
