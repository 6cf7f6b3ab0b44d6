// Package flow implements the document-analysis and legal-query request
// flows as explicit state machines.
//
// Each flow owns at most one in-flight request. A new Submit cancels the
// previous request and a completion from a superseded request is dropped,
// so observers only ever see the outcome of the latest submission.
package flow

import (
	"context"
	"sort"
	"sync"

	"ainoggo/internal/domain"
)

// Status is the lifecycle position of a flow.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusInFlight  Status = "in_flight"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// State is a snapshot of a flow. Result is set only when Status is succeeded;
// Error and Kind only when Status is failed.
type State[T any] struct {
	Status Status           `json:"status"`
	Result *T               `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
	Kind   domain.ErrorKind `json:"error_kind,omitempty"`
}

// Terminal reports whether the state is succeeded or failed.
func (s State[T]) Terminal() bool {
	return s.Status == StatusSucceeded || s.Status == StatusFailed
}

// machine guards a flow's state and serializes observer notification.
// Observers run outside mu but under notifyMu, in transition order; they must
// not call Submit, Reset or Close synchronously.
type machine[T any] struct {
	notifyMu sync.Mutex

	mu        sync.Mutex
	state     State[T]
	gen       uint64
	cancel    context.CancelFunc
	observers map[int]func(State[T])
	nextID    int
	closed    bool

	root context.Context
	stop context.CancelFunc
}

func newMachine[T any]() *machine[T] {
	root, stop := context.WithCancel(context.Background())
	return &machine[T]{
		state:     State[T]{Status: StatusIdle},
		observers: make(map[int]func(State[T])),
		root:      root,
		stop:      stop,
	}
}

func (m *machine[T]) snapshot() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *machine[T]) subscribe(fn func(State[T])) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.observers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}

// transition runs fn under the lock and notifies observers when fn reports a change.
func (m *machine[T]) transition(fn func() bool) bool {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	changed := fn()
	st := m.state
	var observers []func(State[T])
	if changed {
		ids := make([]int, 0, len(m.observers))
		for id := range m.observers {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			observers = append(observers, m.observers[id])
		}
	}
	m.mu.Unlock()

	for _, o := range observers {
		o(st)
	}
	return changed
}

// supersede cancels in-flight work and invalidates its generation. Caller holds mu.
func (m *machine[T]) supersede() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.gen++
}

// begin supersedes any in-flight request and enters InFlight. prepare, if
// non-nil, runs under the lock once the new generation is assigned.
func (m *machine[T]) begin(prepare func()) (context.Context, uint64, error) {
	var (
		ctx context.Context
		gen uint64
		err error
	)
	m.transition(func() bool {
		if m.closed {
			err = domain.ErrFlowClosed
			return false
		}
		m.supersede()
		ctx, m.cancel = context.WithCancel(m.root)
		gen = m.gen
		m.state = State[T]{Status: StatusInFlight}
		if prepare != nil {
			prepare()
		}
		return true
	})
	return ctx, gen, err
}

// complete applies a terminal state if gen is still the current generation.
func (m *machine[T]) complete(gen uint64, st State[T]) bool {
	return m.transition(func() bool {
		if m.closed || gen != m.gen {
			return false
		}
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.state = st
		return true
	})
}

// failNow supersedes in-flight work and fails without dispatching a request.
func (m *machine[T]) failNow(msg string, kind domain.ErrorKind) (State[T], error) {
	var (
		st  State[T]
		err error
	)
	m.transition(func() bool {
		if m.closed {
			err = domain.ErrFlowClosed
			return false
		}
		m.supersede()
		m.state = State[T]{Status: StatusFailed, Error: msg, Kind: kind}
		st = m.state
		return true
	})
	return st, err
}

// whileCurrent runs fn under the lock if gen is still current.
func (m *machine[T]) whileCurrent(gen uint64, fn func()) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || gen != m.gen {
		return false
	}
	fn()
	return true
}

// reset supersedes in-flight work and returns to Idle. clearFields runs under the lock.
func (m *machine[T]) reset(clearFields func()) {
	m.transition(func() bool {
		if m.closed {
			return false
		}
		m.supersede()
		m.state = State[T]{Status: StatusIdle}
		if clearFields != nil {
			clearFields()
		}
		return true
	})
}

func (m *machine[T]) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// close cancels everything and rejects further submissions.
func (m *machine[T]) close(clearFields func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.supersede()
	m.closed = true
	m.stop()
	if clearFields != nil {
		clearFields()
	}
}
