// Package bus implements the in-process publish/subscribe notifier that
// decouples store mutations from the UI and the tracking controller.
// Delivery is synchronous, in subscription order, and purely transient:
// nothing survives a process restart.
package bus

import "sync"

// Kind identifies one of the closed set of event kinds carried by the bus.
type Kind int

const (
	// TimecardUpdated fires after a timecard row is inserted or updated.
	TimecardUpdated Kind = iota
	// TimecardEventAdded fires after a timecard event row is appended.
	TimecardEventAdded
	// LogAdded fires after a durable log record is appended.
	LogAdded
)

// Handler receives the payload passed to Publish.
type Handler func(payload any)

// Bus is a synchronous-dispatch pub/sub hub. The zero value is not usable;
// call New.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Kind][]*Subscription
}

// Subscription represents one registered handler. Cancel is idempotent.
type Subscription struct {
	bus     *Bus
	kind    Kind
	id      int
	handler Handler
}

func New() *Bus {
	return &Bus{subs: make(map[Kind][]*Subscription)}
}

// Subscribe registers handler for kind. The handler is invoked once per
// Publish call for that kind, in subscription order.
func (b *Bus) Subscribe(kind Kind, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{bus: b, kind: kind, id: b.nextID, handler: handler}
	b.subs[kind] = append(b.subs[kind], sub)
	return sub
}

// Publish delivers payload to every handler subscribed to kind. A handler
// that panics does not prevent delivery to subsequent handlers.
func (b *Bus) Publish(kind Kind, payload any) {
	b.mu.RLock()
	subs := make([]*Subscription, len(b.subs[kind]))
	copy(subs, b.subs[kind])
	b.mu.RUnlock()

	for _, sub := range subs {
		invoke(sub.handler, payload)
	}
}

func invoke(h Handler, payload any) {
	defer func() {
		_ = recover()
	}()
	h(payload)
}

// Cancel removes the subscription. After Cancel returns the handler receives
// no further deliveries; calling Cancel again is a no-op.
func (s *Subscription) Cancel() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	subs := s.bus.subs[s.kind]
	for i, sub := range subs {
		if sub.id == s.id {
			s.bus.subs[s.kind] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}
