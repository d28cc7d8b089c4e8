package devbox

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Role identifies one of the four SPI signals wired to the bridge's GPIO
// latch.
type Role int

const (
	SCK  Role = iota // serial clock, host to target
	CS               // chip select
	MISO             // data in, target to host
	MOSI             // data out, host to target
)

func (r Role) String() string {
	switch r {
	case SCK:
		return "sck"
	case CS:
		return "cs"
	case MISO:
		return "miso"
	case MOSI:
		return "mosi"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// latchBit maps each signal to its bit position in the GPIO latch.
// Fixed by the Developerbox wiring; never changes at runtime.
//   - GPIO.0 | SPI_SCK
//   - GPIO.1 | SPI_CS
//   - GPIO.2 | SPI_MISO
//   - GPIO.3 | SPI_MOSI
var latchBit = [...]uint8{
	SCK:  0,
	CS:   1,
	MISO: 2,
	MOSI: 3,
}

// LatchPin exposes one latch bit as a periph.io GPIO pin.
type LatchPin struct {
	role Role
	name string
	l    *latch
}

func newLatchPin(role Role, desc Descriptor, l *latch) *LatchPin {
	return &LatchPin{
		role: role,
		name: fmt.Sprintf("cp210x/%d-%d/%s", desc.Bus, desc.Address, role),
		l:    l,
	}
}

func (p *LatchPin) String() string { return p.name }

func (p *LatchPin) Halt() error { return nil }

func (p *LatchPin) Name() string { return p.name }

func (p *LatchPin) Number() int { return int(latchBit[p.role]) }

func (p *LatchPin) Function() string { return p.role.String() }

// In is a no-op: latch bits have no direction register and no pull
// resistors.
func (p *LatchPin) In(pull gpio.Pull, edge gpio.Edge) error {
	if pull != gpio.Float && pull != gpio.PullNoChange {
		return errors.Errorf("%s: pull resistors not supported", p.name)
	}
	if edge != gpio.NoEdge {
		return errors.Errorf("%s: edge detection not supported", p.name)
	}
	return nil
}

// Read samples the pin's latch bit. gpio.PinIO gives Read no error path, so
// a failed transfer reads as Low.
func (p *LatchPin) Read() gpio.Level {
	v, err := p.l.get()
	if err != nil {
		p.l.log.WithError(err).Errorf("failed to read %s", p.name)
		return gpio.Low
	}
	return gpio.Level(v&(1<<latchBit[p.role]) != 0)
}

func (p *LatchPin) WaitForEdge(timeout time.Duration) bool { return false }

func (p *LatchPin) Pull() gpio.Pull { return gpio.PullNoChange }

func (p *LatchPin) DefaultPull() gpio.Pull { return gpio.PullNoChange }

// Out drives the pin's latch bit, leaving the other pins untouched.
func (p *LatchPin) Out(l gpio.Level) error {
	bit := latchBit[p.role]
	var val uint8
	if l {
		val = 1 << bit
	}
	return p.l.set(val, 1<<bit)
}

func (p *LatchPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.Errorf("%s: pwm not supported", p.name)
}

var _ gpio.PinIO = (*LatchPin)(nil)
