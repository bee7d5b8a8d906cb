package appointments

import "sync"

// Subscription is a standing query over the appointment collection. C
// receives the full (filtered, sorted) result set after every change; the
// latest snapshot replaces any undelivered one.
type Subscription struct {
	C      chan []*Appointment
	userID string // empty = unscoped (admin)
}

// Broker fans appointment snapshots out to live subscribers.
type Broker struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: map[*Subscription]struct{}{}}
}

// Subscribe registers a listener. userID scopes the snapshots to one owner;
// pass "" for the unscoped admin view.
func (b *Broker) Subscribe(userID string) *Subscription {
	sub := &Subscription{C: make(chan []*Appointment, 1), userID: userID}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// SubscribeWith registers a listener and enqueues the initial snapshot while
// still holding the broker lock, so a concurrent Publish cannot land between
// registration and the priming send. A later Publish replaces the undelivered
// prime like any other stale snapshot.
func (b *Broker) SubscribeWith(userID string, initial []*Appointment) *Subscription {
	sub := &Subscription{C: make(chan []*Appointment, 1), userID: userID}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	sub.C <- initial
	b.mu.Unlock()
	return sub
}

// Unsubscribe removes the listener and closes its channel.
func (b *Broker) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub.C)
}

// Publish delivers the snapshot to every subscriber, filtered per scope.
// Slow consumers never block: a pending undelivered snapshot is replaced by
// the newer one.
func (b *Broker) Publish(snapshot []*Appointment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		view := snapshot
		if sub.userID != "" {
			view = filterByUser(snapshot, sub.userID)
		}
		select {
		case sub.C <- view:
		default:
			// drop the stale snapshot, keep the fresh one
			select {
			case <-sub.C:
			default:
			}
			sub.C <- view
		}
	}
}

func filterByUser(in []*Appointment, userID string) []*Appointment {
	out := []*Appointment{}
	for _, a := range in {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}
