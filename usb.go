package devbox

import (
	"fmt"
	"time"
)

// ID is a USB vendor or product ID.
type ID uint16

func (id ID) String() string {
	return fmt.Sprintf("%04x", uint16(id))
}

// Descriptor is the subset of a USB device descriptor the selector needs.
type Descriptor struct {
	Vendor  ID
	Product ID
	Bus     int
	Address int
}

// Transport enumerates and opens USB devices. The real implementation sits
// on libusb (see NewTransport); tests substitute a scripted one.
type Transport interface {
	// List returns the attached devices that may match the given vendor
	// and product IDs. The returned list must be released exactly once.
	// Backends are allowed to pre-filter, but callers must not rely on
	// it: the selector re-checks both IDs per candidate.
	List(vendor, product ID) (DeviceList, error)

	// Close tears down the transport. Handles obtained through List must
	// be closed first.
	Close() error
}

// DeviceList is one enumeration snapshot.
type DeviceList interface {
	Len() int
	At(i int) Candidate

	// Release frees the snapshot and any candidate resources not claimed
	// by Open. Call exactly once.
	Release()
}

// Candidate is a single enumerated device that has not been claimed yet.
type Candidate interface {
	Descriptor() (Descriptor, error)

	// Open claims the device. Ownership of the handle moves to the
	// caller; Release no longer touches it.
	Open() (Handle, error)
}

// Handle is an open USB device.
type Handle interface {
	// SerialNumber returns the device's serial-number string, capped at
	// 64 bytes.
	SerialNumber() (string, error)

	// Control performs a control transfer. value and index are the raw
	// wValue/wIndex fields; data is the data phase (nil for none).
	Control(requestType, request uint8, value, index uint16, data []byte) (int, error)

	// SetTimeout bounds subsequent control transfers. Non-positive means
	// no timeout.
	SetTimeout(d time.Duration)

	Close() error
}
