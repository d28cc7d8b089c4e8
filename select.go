package devbox

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when enumeration finishes without an acceptable
// device.
var ErrNotFound = errors.New("not found")

// serialMaxLen caps how much of the serial-number string is read from a
// candidate.
const serialMaxLen = 64

// findDevice opens the first attached device whose vendor and product IDs
// both match and, when serial is non-empty, whose serial-number string
// starts with it. Per-candidate failures are logged and the candidate is
// skipped; only an exhausted enumeration is an error.
func findDevice(t Transport, vendor, product ID, serial string, log logrus.FieldLogger) (Handle, Descriptor, error) {
	list, err := t.List(vendor, product)
	if err != nil {
		return nil, Descriptor{}, errors.Wrap(err, "getting the USB device list")
	}
	defer list.Release()

	for i := 0; i < list.Len(); i++ {
		cand := list.At(i)

		desc, err := cand.Descriptor()
		if err != nil {
			log.WithError(err).Error("reading a USB device descriptor failed")
			continue
		}
		if desc.Vendor != vendor || desc.Product != product {
			continue
		}
		log.Debugf("found USB device %s:%s at address %d-%d", desc.Vendor, desc.Product, desc.Bus, desc.Address)

		h, err := cand.Open()
		if err != nil {
			log.WithError(err).Error("opening the USB device failed")
			continue
		}

		if serial != "" {
			s, err := h.SerialNumber()
			if err != nil {
				log.WithError(err).Error("reading the USB serial number failed")
				h.Close()
				continue
			}
			if !strings.HasPrefix(s, serial) {
				h.Close()
				continue
			}
			log.Debugf("serial number is %s", s)
		}

		return h, desc, nil
	}

	return nil, Descriptor{}, ErrNotFound
}
