package banner

import (
	"sync"
	"sync/atomic"
)

// Store publishes Session snapshots. Each Dispatch reduces the latest
// snapshot and swaps it in atomically, so async results (a finished fetch)
// and user edits never overwrite each other. Subscribers are called after
// every successful swap with the new snapshot.
type Store struct {
	current atomic.Pointer[Session]

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Session)
}

// NewStore returns a store holding initial.
func NewStore(initial Session) *Store {
	st := &Store{subs: make(map[int]func(Session))}
	s := initial
	st.current.Store(&s)
	return st
}

// Snapshot returns the current session.
func (st *Store) Snapshot() Session {
	return *st.current.Load()
}

// Dispatch applies a and notifies subscribers. It returns the snapshot it
// installed.
func (st *Store) Dispatch(a Action) Session {
	for {
		old := st.current.Load()
		next := Reduce(*old, a)
		if st.current.CompareAndSwap(old, &next) {
			st.notify(next)
			return next
		}
	}
}

// Subscribe registers fn for future snapshots and returns a function that
// removes it.
func (st *Store) Subscribe(fn func(Session)) (cancel func()) {
	st.mu.Lock()
	id := st.nextID
	st.nextID++
	st.subs[id] = fn
	st.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			st.mu.Lock()
			delete(st.subs, id)
			st.mu.Unlock()
		})
	}
}

// SubscribeChan delivers snapshots on a channel that keeps only the newest
// undelivered value, so a slow reader never blocks Dispatch. Concurrent
// dispatches may deliver out of order; readers that need the latest state
// treat a receive as a signal and call Snapshot.
func (st *Store) SubscribeChan() (<-chan Session, func()) {
	ch := make(chan Session, 1)
	cancel := st.Subscribe(func(s Session) {
		for {
			select {
			case ch <- s:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
	return ch, cancel
}

func (st *Store) notify(s Session) {
	st.mu.Lock()
	fns := make([]func(Session), 0, len(st.subs))
	for id := 0; id < st.nextID; id++ {
		if fn, ok := st.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	st.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}
