// The node's exclusive quantum-processing resource. At most one storage
// transform is in flight at a time; a second caller is suspended on a FIFO
// wait list rather than failed, so resource contention is never an error.

package sim

// grantFn resumes a suspended operation once the resource is granted.
// It receives the tick at which the grant happens.
type grantFn func(now int64)

// QuantumResource models the mutually exclusive per-node processing
// capability required by the storage transform. Single-threaded: Acquire
// and Release are only called from within event execution, so there is no
// lock, only an explicit busy flag and waiter queue.
type QuantumResource struct {
	busy    bool
	waiters []grantFn
}

// NewQuantumResource creates a free resource.
func NewQuantumResource() *QuantumResource {
	return &QuantumResource{}
}

// Busy reports whether the resource is currently held.
func (r *QuantumResource) Busy() bool {
	return r.busy
}

// Acquire runs grant immediately when the resource is free, marking it
// busy; otherwise the grant is queued and runs, in acquisition order, when
// a release hands the resource over.
func (r *QuantumResource) Acquire(now int64, grant grantFn) {
	if r.busy {
		r.waiters = append(r.waiters, grant)
		return
	}
	r.busy = true
	grant(now)
}

// Release frees the resource or hands it directly to the oldest waiter.
// The holder must call Release exactly once per grant.
func (r *QuantumResource) Release(now int64) {
	if len(r.waiters) == 0 {
		r.busy = false
		return
	}
	next := r.waiters[0]
	r.waiters = r.waiters[1:]
	next(now)
}
