// Package statemachine implements a small, typed finite state machine.
//
// States and events are any comparable types, usually string-based enums:
//
//	type Status string
//	type Event string
//
//	m := statemachine.MustNew[Status, Event]("idle",
//		statemachine.WithTransition[Status, Event]("idle", "submitting", "submit"),
//		statemachine.WithTransition[Status, Event]("submitting", "success", "succeed",
//			statemachine.WithAction(clearFields),
//		),
//	)
//	err := m.Fire(ctx, "submit", nil)
//
// Several transitions may share a source state and event; the first whose
// guards all pass is taken. Actions run in order while the machine is locked
// and an action error aborts the transition. Observers registered with
// OnTransition run after the state has changed, outside the lock, so they may
// fire further events.
package statemachine
