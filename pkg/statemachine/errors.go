package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrNoTransition       = errors.New("statemachine: no transition available")
	ErrTransitionRejected = errors.New("statemachine: transition rejected by guards")
	ErrActionFailed       = errors.New("statemachine: transition action failed")
)

// TransitionError describes a Fire call that did not change state.
type TransitionError struct {
	From  string
	Event string
	err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: state %q, event %q", e.err, e.From, e.Event)
}

func (e *TransitionError) Unwrap() error { return e.err }

func transitionError[S, E comparable](from S, event E, err error) error {
	return &TransitionError{From: fmt.Sprint(from), Event: fmt.Sprint(event), err: err}
}
