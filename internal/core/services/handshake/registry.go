package handshake

import (
	"context"
	"sync"
)

// Registry is the ifindex→SM table. Callers construct and pass one
// explicitly rather than relying on a package-level singleton, so the
// dispatch path stays testable and two supplicant processes can coexist
// in one test binary.
//
// The handshake core itself runs on a single event loop, but the map is
// still mutex-guarded so a dispatch loop running on its own goroutine can
// be cancelled from another without a data race.
type Registry struct {
	mu sync.RWMutex
	sm map[int]*SM
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sm: make(map[int]*SM)}
}

// Start registers sm under its ifindex, replacing and zeroizing any prior
// SM for that ifindex.
func (r *Registry) Start(sm *SM) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.sm[sm.cfg.Ifindex]; ok && old != sm {
		old.Zeroize()
	}
	r.sm[sm.cfg.Ifindex] = sm
}

// Cancel removes and zeroizes the SM for ifindex, if any. Any pending
// outbound send is abandoned and the deauthenticate capability is not
// invoked.
func (r *Registry) Cancel(ifindex int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sm, ok := r.sm[ifindex]
	if !ok {
		return
	}
	delete(r.sm, ifindex)
	sm.Zeroize()
}

// Lookup returns the SM registered for ifindex, if any.
func (r *Registry) Lookup(ifindex int) (*SM, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sm, ok := r.sm[ifindex]
	return sm, ok
}

// Dispatch looks up the SM for ifindex and feeds it raw. Lookup is a
// separate step from handling so that an SM which removes itself via
// Cancel (concurrently, from another goroutine) cannot be observed
// half-registered: the frame is delivered to whatever *SM value was
// current at lookup time, or dropped silently if none was registered.
func (r *Registry) Dispatch(ctx context.Context, ifindex int, raw []byte) error {
	sm, ok := r.Lookup(ifindex)
	if !ok {
		return nil
	}
	return sm.HandleFrame(ctx, raw)
}

// Len reports the number of registered SMs, used by metrics.go to report
// active-handshake gauges.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sm)
}
