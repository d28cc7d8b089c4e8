package devbox

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func nullLogger() *logrus.Logger {
	log, _ := test.NewNullLogger()
	return log
}

type ctrlCall struct {
	reqType uint8
	req     uint8
	value   uint16
	index   uint16
	dataLen int
}

// fakeHandle simulates the bridge: reads return the latch byte, writes
// apply the value/mask word to it.
type fakeHandle struct {
	serial    string
	serialErr error
	latch     uint8
	readErr   error
	writeErr  error

	calls   []ctrlCall
	timeout time.Duration
	closed  int
	events  *[]string
}

func (h *fakeHandle) SerialNumber() (string, error) {
	if h.serialErr != nil {
		return "", h.serialErr
	}
	return h.serial, nil
}

func (h *fakeHandle) Control(reqType, req uint8, value, index uint16, data []byte) (int, error) {
	h.calls = append(h.calls, ctrlCall{reqType, req, value, index, len(data)})
	switch reqType {
	case reqTypeDeviceToHost:
		if h.readErr != nil {
			return 0, h.readErr
		}
		data[0] = h.latch
		return 1, nil
	case reqTypeHostToDevice:
		if h.writeErr != nil {
			return 0, h.writeErr
		}
		val := uint8(index>>8) & 0xF
		mask := uint8(index) & 0xF
		h.latch = h.latch&^mask | val&mask
		return 0, nil
	}
	return 0, nil
}

func (h *fakeHandle) SetTimeout(d time.Duration) { h.timeout = d }

func (h *fakeHandle) Close() error {
	h.closed++
	if h.events != nil {
		*h.events = append(*h.events, "handle")
	}
	return nil
}

type fakeCandidate struct {
	desc    Descriptor
	descErr error
	openErr error
	h       *fakeHandle
	opened  int
}

func (c *fakeCandidate) Descriptor() (Descriptor, error) {
	if c.descErr != nil {
		return Descriptor{}, c.descErr
	}
	return c.desc, nil
}

func (c *fakeCandidate) Open() (Handle, error) {
	c.opened++
	if c.openErr != nil {
		return nil, c.openErr
	}
	return c.h, nil
}

type fakeList struct {
	cands    []*fakeCandidate
	released int
}

func (l *fakeList) Len() int           { return len(l.cands) }
func (l *fakeList) At(i int) Candidate { return l.cands[i] }
func (l *fakeList) Release()           { l.released++ }

type fakeTransport struct {
	cands   []*fakeCandidate
	listErr error

	list   *fakeList
	closed int
	events *[]string
}

func (t *fakeTransport) List(vendor, product ID) (DeviceList, error) {
	if t.listErr != nil {
		return nil, t.listErr
	}
	t.list = &fakeList{cands: t.cands}
	return t.list, nil
}

func (t *fakeTransport) Close() error {
	t.closed++
	if t.events != nil {
		*t.events = append(*t.events, "transport")
	}
	return nil
}

func bridgeDesc() Descriptor {
	return Descriptor{Vendor: VendorID, Product: ProductID, Bus: 1, Address: 4}
}

func bridge(serial string) *fakeCandidate {
	return &fakeCandidate{desc: bridgeDesc(), h: &fakeHandle{serial: serial}}
}
