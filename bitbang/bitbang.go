// Package bitbang is the host-side contract between bit-bang SPI pin
// backends and the engine that drives them. A backend exposes the four SPI
// signals of one piece of hardware through the Master primitives and
// registers itself under a stable type tag; the engine looks the backend up
// by tag and sequences the pin transitions for whole SPI transactions.
//
// The byte-to-bit sequencing itself is owned by the engine, not by this
// package.
package bitbang

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
)

// Master is the set of pin primitives a bit-bang SPI engine needs from a
// backend. Calls must be serialized by the caller; each bit transition has
// to be fully applied before the next one is issued, so implementations do
// no internal locking.
type Master interface {
	// Type is the stable tag the backend registers under.
	Type() string

	// SetCS drives the chip-select line.
	SetCS(l gpio.Level) error

	// SetSCK drives the serial clock line.
	SetSCK(l gpio.Level) error

	// SetMOSI drives the data-out line.
	SetMOSI(l gpio.Level) error

	// GetMISO samples the data-in line.
	GetMISO() (gpio.Level, error)

	// SetSCKMOSI drives clock and data-out in one atomic update, so both
	// lines change on the same hardware write. Backends that cannot
	// guarantee atomicity would open a glitch window between the clock
	// edge and the data bit.
	SetSCKMOSI(sck, mosi gpio.Level) error
}

// Registry holds bit-bang SPI masters keyed by type tag. The zero value is
// ready to use.
type Registry struct {
	mu      sync.Mutex
	masters map[string]Master
}

// Register adds m under its type tag. Registering the same tag twice is
// rejected.
func (r *Registry) Register(m Master) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tag := m.Type()
	if tag == "" {
		return errors.New("bitbang: master has empty type tag")
	}
	if _, ok := r.masters[tag]; ok {
		return errors.Errorf("bitbang: master %q already registered", tag)
	}
	if r.masters == nil {
		r.masters = map[string]Master{}
	}
	r.masters[tag] = m
	return nil
}

// Lookup returns the master registered under tag.
func (r *Registry) Lookup(tag string) (Master, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.masters[tag]
	return m, ok
}

// Types returns the registered tags, sorted.
func (r *Registry) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	tags := make([]string, 0, len(r.masters))
	for tag := range r.masters {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Masters is the process-wide registry.
var Masters = &Registry{}

// Register adds m to the process-wide registry.
func Register(m Master) error {
	return Masters.Register(m)
}
