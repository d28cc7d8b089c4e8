package devbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"

	"github.com/gentam/devbox/bitbang"
)

func TestOpenWithSingleBridge(t *testing.T) {
	cand := bridge("0123456789AB")
	tr := &fakeTransport{cands: []*fakeCandidate{cand}}

	d, err := OpenWith(tr, Config{Logger: nullLogger()})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, cand.h.timeout)
	assert.Equal(t, bridgeDesc(), d.Descriptor())

	s, err := d.SerialNumber()
	require.NoError(t, err)
	assert.Equal(t, "0123456789AB", s)

	cand.h.latch = 0x06
	v, err := d.Latch()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x06), v)

	require.NoError(t, d.Master().SetCS(gpio.Low))
}

func TestOpenWithNotFound(t *testing.T) {
	tr := &fakeTransport{}

	_, err := OpenWith(tr, Config{Logger: nullLogger()})
	require.ErrorIs(t, err, ErrNotFound)
	// The caller still owns the transport.
	assert.Zero(t, tr.closed)
	assert.Equal(t, 1, tr.list.released)
}

func TestOpenWithSerialFilter(t *testing.T) {
	first := bridge("ABC123")
	second := bridge("ABC999")
	tr := &fakeTransport{cands: []*fakeCandidate{first, second}}

	d, err := OpenWith(tr, Config{Serial: "ABC1", Logger: nullLogger()})
	require.NoError(t, err)
	assert.Equal(t, 1, first.opened)
	assert.Zero(t, second.opened)

	s, err := d.SerialNumber()
	require.NoError(t, err)
	assert.Equal(t, "ABC123", s)
}

func TestOpenWithTimeoutConfig(t *testing.T) {
	cand := bridge("ABC123")
	tr := &fakeTransport{cands: []*fakeCandidate{cand}}

	_, err := OpenWith(tr, Config{Timeout: -1, Logger: nullLogger()})
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), cand.h.timeout)
}

func TestDeviceCloseOrder(t *testing.T) {
	var events []string
	cand := bridge("ABC123")
	cand.h.events = &events
	tr := &fakeTransport{cands: []*fakeCandidate{cand}, events: &events}

	d, err := OpenWith(tr, Config{Logger: nullLogger()})
	require.NoError(t, err)
	require.NoError(t, d.Close())
	assert.Equal(t, []string{"handle", "transport"}, events)
}

func TestDeviceRegister(t *testing.T) {
	cand := bridge("ABC123")
	tr := &fakeTransport{cands: []*fakeCandidate{cand}}
	d, err := OpenWith(tr, Config{Logger: nullLogger()})
	require.NoError(t, err)

	reg := &bitbang.Registry{}
	hooks := &bitbang.Hooks{}
	require.NoError(t, d.RegisterWith(reg, hooks))

	m, ok := reg.Lookup(MasterType)
	require.True(t, ok)
	assert.Same(t, d.Master(), m)

	// The shutdown hook closes handle and transport.
	require.NoError(t, hooks.Run())
	assert.Equal(t, 1, cand.h.closed)
	assert.Equal(t, 1, tr.closed)
}

func TestDeviceRegisterTwice(t *testing.T) {
	cand := bridge("ABC123")
	tr := &fakeTransport{cands: []*fakeCandidate{cand}}
	d, err := OpenWith(tr, Config{Logger: nullLogger()})
	require.NoError(t, err)

	reg := &bitbang.Registry{}
	require.NoError(t, d.RegisterWith(reg, &bitbang.Hooks{}))
	require.Error(t, d.RegisterWith(reg, &bitbang.Hooks{}))
}

func TestDevicePin(t *testing.T) {
	cand := bridge("ABC123")
	tr := &fakeTransport{cands: []*fakeCandidate{cand}}
	d, err := OpenWith(tr, Config{Logger: nullLogger()})
	require.NoError(t, err)

	assert.Same(t, d.MOSI, d.Pin(MOSI))
	assert.Nil(t, d.Pin(Role(42)))
}
