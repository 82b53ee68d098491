package checkout

import (
	"sync"
	"time"

	"github.com/handloomhouse/storefront-backend/pkg/errors"
)

// draftTTL bounds how long an abandoned draft survives in the registry.
const draftTTL = 30 * time.Minute

// registry holds the in-flight drafts. Access is serialized so concurrent
// wizard calls for the same draft cannot interleave partial updates. Drafts
// past the TTL are swept on every access; an expired draft reads as
// NOT_FOUND, same as a dropped one.
type registry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
	ttl    time.Duration
	now    func() time.Time
}

func newRegistry(ttl time.Duration, now func() time.Time) *registry {
	return &registry{
		drafts: make(map[string]*Draft),
		ttl:    ttl,
		now:    now,
	}
}

func (r *registry) sweepLocked() {
	cutoff := r.now().Add(-r.ttl)
	for id, d := range r.drafts {
		if d.CreatedAt.Before(cutoff) {
			delete(r.drafts, id)
		}
	}
}

func (r *registry) put(d *Draft) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	r.drafts[d.ID] = d
}

// update runs fn against the live draft under the lock and returns a copy.
func (r *registry) update(id string, fn func(*Draft) error) (Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	d, ok := r.drafts[id]
	if !ok {
		return Draft{}, errors.New(errors.CodeNotFound, "checkout draft not found")
	}
	if err := fn(d); err != nil {
		return Draft{}, err
	}
	return *d, nil
}

func (r *registry) get(id string) (Draft, error) {
	return r.update(id, func(*Draft) error { return nil })
}

func (r *registry) drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
}
