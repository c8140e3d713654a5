package statemachine

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Guard allows a transition when it returns true.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Action runs a side effect while a transition is being taken. An error aborts the transition.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Observer is notified after every state change.
type Observer[S, E comparable] func(ctx context.Context, from, to S, event E)

type transition[S, E comparable] struct {
	to      S
	guards  []Guard[S, E]
	actions []Action[S, E]
}

// Machine is a thread-safe finite state machine.
type Machine[S, E comparable] struct {
	mu        sync.Mutex
	initial   S
	current   S
	table     map[S]map[E][]transition[S, E]
	observers []Observer[S, E]
}

// Option configures a Machine under construction.
type Option[S, E comparable] func(*Machine[S, E]) error

// New creates a machine in state initial.
func New[S, E comparable](initial S, opts ...Option[S, E]) (*Machine[S, E], error) {
	m := &Machine[S, E]{
		initial: initial,
		current: initial,
		table:   make(map[S]map[E][]transition[S, E]),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is New that panics on error.
func MustNew[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("statemachine: %v", err))
	}
	return m
}

// TransitionOption configures one transition.
type TransitionOption[S, E comparable] func(*transition[S, E])

// WithGuard adds a guard to a transition. Nil guards are ignored.
func WithGuard[S, E comparable](g Guard[S, E]) TransitionOption[S, E] {
	return func(t *transition[S, E]) {
		if g != nil {
			t.guards = append(t.guards, g)
		}
	}
}

// WithAction adds an action to a transition. Nil actions are ignored.
func WithAction[S, E comparable](a Action[S, E]) TransitionOption[S, E] {
	return func(t *transition[S, E]) {
		if a != nil {
			t.actions = append(t.actions, a)
		}
	}
}

// WithTransition registers a transition from -> to on event.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		t := transition[S, E]{to: to}
		for _, opt := range opts {
			opt(&t)
		}
		if m.table[from] == nil {
			m.table[from] = make(map[E][]transition[S, E])
		}
		m.table[from][event] = append(m.table[from][event], t)
		return nil
	}
}

// OnTransition registers an observer.
func OnTransition[S, E comparable](o Observer[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		if o == nil {
			return errors.New("statemachine: nil observer")
		}
		m.observers = append(m.observers, o)
		return nil
	}
}

// Current returns the current state.
func (m *Machine[S, E]) Current() S {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Fire takes the first transition for event from the current state whose
// guards pass. It returns an error wrapping ErrNoTransition,
// ErrTransitionRejected or ErrActionFailed when the state does not change.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()
	from := m.current
	t, err := m.pick(ctx, event, data)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	for _, a := range t.actions {
		if err := a(ctx, from, t.to, event, data); err != nil {
			m.mu.Unlock()
			return errors.Join(transitionError(from, event, ErrActionFailed), err)
		}
	}
	m.current = t.to
	observers := m.observers
	m.mu.Unlock()

	for _, o := range observers {
		o(ctx, from, t.to, event)
	}
	return nil
}

// CanFire reports whether Fire would find a transition whose guards pass. Actions are not run.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.pick(ctx, event, data)
	return err == nil
}

// Reset returns the machine to its initial state without running actions or observers.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	m.current = m.initial
	m.mu.Unlock()
}

func (m *Machine[S, E]) pick(ctx context.Context, event E, data any) (transition[S, E], error) {
	candidates := m.table[m.current][event]
	if len(candidates) == 0 {
		return transition[S, E]{}, transitionError(m.current, event, ErrNoTransition)
	}
next:
	for _, t := range candidates {
		for _, g := range t.guards {
			if !g(ctx, m.current, event, data) {
				continue next
			}
		}
		return t, nil
	}
	return transition[S, E]{}, transitionError(m.current, event, ErrTransitionRejected)
}
