package state

import (
	"slices"
	"sync"

	"github.com/san-kum/postviz/internal/layout"
)

// Store serialises dispatches and notifies subscribers after each change.
// Notifications are delivered in dispatch order, so the last snapshot a
// subscriber sees is always the store's current one.
type Store struct {
	// notify is held from reduce until every subscriber has returned;
	// subscribers must not dispatch.
	notify sync.Mutex
	mu     sync.Mutex
	state  State
	subs   map[int]func(layout.Snapshot)
	nextID int
}

func NewStore() *Store {
	return &Store{state: Empty(), subs: make(map[int]func(layout.Snapshot))}
}

func (st *Store) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

func (st *Store) Snapshot() layout.Snapshot { return st.State().Snapshot() }

// Dispatch reduces a into the current state and notifies subscribers in
// subscription order. State may be read from a subscriber; dispatching from
// one deadlocks.
func (st *Store) Dispatch(a Action) error {
	st.notify.Lock()
	defer st.notify.Unlock()

	st.mu.Lock()
	next, err := Reduce(st.state, a)
	if err != nil {
		st.mu.Unlock()
		return err
	}
	st.state = next
	subs := st.subscribers()
	st.mu.Unlock()

	snap := next.Snapshot()
	for _, fn := range subs {
		fn(snap)
	}
	return nil
}

// Subscribe registers fn and returns a function that removes it.
func (st *Store) Subscribe(fn func(layout.Snapshot)) (unsubscribe func()) {
	st.mu.Lock()
	defer st.mu.Unlock()
	id := st.nextID
	st.nextID++
	st.subs[id] = fn
	return func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		delete(st.subs, id)
	}
}

// Next selects the following option. It reports false at the last one.
func (st *Store) Next() bool {
	s := st.State()
	if !s.HasNext() {
		return false
	}
	return st.Dispatch(SetOption{Index: s.Selected + 1}) == nil
}

// Prev selects the preceding option. It reports false at the first one.
func (st *Store) Prev() bool {
	s := st.State()
	if !s.HasPrev() {
		return false
	}
	return st.Dispatch(SetOption{Index: s.Selected - 1}) == nil
}

func (st *Store) subscribers() []func(layout.Snapshot) {
	ids := make([]int, 0, len(st.subs))
	for id := range st.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(layout.Snapshot), len(ids))
	for i, id := range ids {
		out[i] = st.subs[id]
	}
	return out
}
