package devbox

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CP210x vendor requests [AN571|5 Control Commands]:
const (
	reqTypeHostToDevice = 0x40
	reqTypeDeviceToHost = 0xC0

	vendorSpecific = 0xFF // bRequest

	// wValue sub-commands of the vendor-specific request.
	cmdWriteLatch = 0x37E1
	cmdReadLatch  = 0x00C2
)

// latch accesses the bridge's 4-bit GPIO latch. In best-effort mode,
// transfer failures are logged and absorbed: reads degrade to 0 ("no
// information", not a true all-pins-low state) and writes are dropped.
type latch struct {
	h          Handle
	log        logrus.FieldLogger
	bestEffort bool
}

// get returns the current latch byte.
func (l *latch) get() (uint8, error) {
	var buf [1]byte
	if _, err := l.h.Control(reqTypeDeviceToHost, vendorSpecific, cmdReadLatch, 0, buf[:]); err != nil {
		if l.bestEffort {
			l.log.WithError(err).Error("failed to read GPIO pins")
			return 0, nil
		}
		return 0, errors.Wrap(err, "reading GPIO latch")
	}
	return buf[0], nil
}

// set applies the masked value nibble to the latch. Pins whose mask bit is
// clear are left untouched, so a multi-pin update (clock and data-out on
// the same edge) goes out as one transfer.
func (l *latch) set(val, mask uint8) error {
	word := uint16(val&0xF)<<8 | uint16(mask&0xF)
	if _, err := l.h.Control(reqTypeHostToDevice, vendorSpecific, cmdWriteLatch, word, nil); err != nil {
		if l.bestEffort {
			l.log.WithError(err).Error("failed to write GPIO pins")
			return nil
		}
		return errors.Wrap(err, "writing GPIO latch")
	}
	return nil
}
