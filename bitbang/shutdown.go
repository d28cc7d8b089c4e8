package bitbang

import "sync"

// ShutdownFunc releases resources a backend acquired during setup.
type ShutdownFunc func() error

// Hooks collects shutdown callbacks and runs them once at teardown, in
// reverse registration order. The zero value is ready to use.
type Hooks struct {
	mu  sync.Mutex
	fns []ShutdownFunc
}

// Add registers fn to run at teardown.
func (h *Hooks) Add(fn ShutdownFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = append(h.fns, fn)
}

// Run invokes the registered hooks, newest first, and clears the list. All
// hooks run even after a failure; the first error is returned. Run is meant
// to be called once per process teardown.
func (h *Hooks) Run() error {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()

	var err error
	for i := len(fns) - 1; i >= 0; i-- {
		if e := fns[i](); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Shutdown is the process-wide hook list.
var Shutdown = &Hooks{}

// OnShutdown registers fn with the process-wide hook list.
func OnShutdown(fn ShutdownFunc) {
	Shutdown.Add(fn)
}
