package session

import "sync"

// Broadcaster is the in-process Provider implementation. The auth layer
// publishes identity changes into it (sign-in, sign-out, profile refresh)
// and every subscriber sees them in publish order with increasing sequence
// numbers.
//
// Like the upstream identity SDK, a subscriber is notified immediately with
// the current state — but only once the first Publish has established one,
// so a gate stays pending until the initial session check completes.
type Broadcaster struct {
	mu       sync.Mutex
	seq      uint64
	current  *Identity
	resolved bool
	nextID   int
	subs     map[int]func(Notification)
}

// NewBroadcaster returns an empty, unresolved broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func(Notification))}
}

// Subscribe registers fn and returns its unsubscribe func. If a session
// state is already known, fn is invoked with it before Subscribe returns.
func (b *Broadcaster) Subscribe(fn func(Notification)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	if b.resolved {
		fn(Notification{Seq: b.seq, Identity: b.current})
	}

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}, nil
}

// Publish reports a new session state (nil means signed out) to all
// subscribers. Delivery happens under the broadcaster's lock, which keeps
// notifications ordered without any per-subscriber queue.
func (b *Broadcaster) Publish(identity *Identity) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	b.current = identity
	b.resolved = true

	for _, fn := range b.subs {
		fn(Notification{Seq: b.seq, Identity: identity})
	}
}

// Current returns the last published identity and whether one exists yet.
func (b *Broadcaster) Current() (*Identity, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.resolved
}
