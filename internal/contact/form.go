package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrymomot/landing/pkg/statemachine"
)

// State is the lifecycle state of one contact form instance.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Event moves a Form between states.
type Event string

const (
	EventSubmit  Event = "submit"
	EventSucceed Event = "succeed"
	EventFail    Event = "fail"
	EventReset   Event = "reset"
)

// SendFunc performs the submission. A non-nil error moves the form to StateError.
type SendFunc func(ctx context.Context, s Submission) error

// Timer is the handle returned by an AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once adapted.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithResetDelay sets how long success and error last. Zero disables the
// automatic reset.
func WithResetDelay(d time.Duration) FormOption {
	return func(f *Form) {
		if d >= 0 {
			f.resetDelay = d
		}
	}
}

// WithAfterFunc replaces time.AfterFunc. fn must not run the callback
// before returning.
func WithAfterFunc(fn AfterFunc) FormOption {
	return func(f *Form) {
		if fn != nil {
			f.afterFunc = fn
		}
	}
}

// Form tracks one contact form: its fields and whether it can be submitted.
// It is safe for concurrent use.
type Form struct {
	mu         sync.Mutex
	fields     Submission
	machine    *statemachine.Machine[State, Event]
	send       SendFunc
	resetDelay time.Duration
	afterFunc  AfterFunc
	timer      Timer
	// timerGen identifies the current scheduled reset; a callback whose
	// generation is stale does nothing.
	timerGen uint64
}

func NewForm(send SendFunc, opts ...FormOption) *Form {
	f := &Form{
		send:       send,
		resetDelay: 5 * time.Second,
		afterFunc:  realAfterFunc,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.machine = statemachine.MustNew(StateIdle,
		statemachine.WithTransition(StateIdle, StateSubmitting, EventSubmit),
		statemachine.WithTransition(StateSubmitting, StateSuccess, EventSucceed),
		statemachine.WithTransition(StateSubmitting, StateError, EventFail),
		statemachine.WithTransition(StateSuccess, StateIdle, EventReset),
		statemachine.WithTransition(StateError, StateIdle, EventReset),
	)
	return f
}

// Set updates one field by its form name.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case FieldName:
		f.fields.Name = value
	case FieldEmail:
		f.fields.Email = value
	case FieldMessage:
		f.fields.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Fill replaces every field at once.
func (f *Form) Fill(s Submission) {
	f.mu.Lock()
	f.fields = s
	f.mu.Unlock()
}

// Fields returns the current field values.
func (f *Form) Fields() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *Form) Status() State {
	return f.machine.Current()
}

// SubmitDisabled reports whether Submit would be rejected right now.
func (f *Form) SubmitDisabled() bool {
	return f.machine.Current() != StateIdle
}

// ResetDelay is how long the outcome is shown before the form is idle again.
func (f *Form) ResetDelay() time.Duration {
	return f.resetDelay
}

// Submit sends the current fields. It returns ErrSubmitInProgress unless the
// form is idle, and otherwise the error of the send itself. Fields are
// cleared only on success. Either outcome schedules the reset to idle.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if err := f.machine.Fire(ctx, EventSubmit, nil); err != nil {
		f.mu.Unlock()
		if errors.Is(err, statemachine.ErrNoTransition) {
			return ErrSubmitInProgress
		}
		return err
	}
	fields := f.fields
	f.mu.Unlock()

	sendErr := f.send(ctx, fields)

	f.mu.Lock()
	defer f.mu.Unlock()
	event := EventSucceed
	if sendErr != nil {
		event = EventFail
	}
	if err := f.machine.Fire(ctx, event, nil); err != nil {
		return errors.Join(err, sendErr)
	}
	if sendErr == nil {
		f.fields = Submission{}
	}
	f.scheduleReset()
	return sendErr
}

// Reset returns the form to idle at once and cancels a pending reset.
// Field values are kept.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timerGen++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	if f.machine.Current() != StateSubmitting {
		f.machine.Reset()
	}
}

// scheduleReset must be called with f.mu held.
func (f *Form) scheduleReset() {
	if f.resetDelay == 0 {
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timerGen++
	gen := f.timerGen
	f.timer = f.afterFunc(f.resetDelay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if gen != f.timerGen {
			return
		}
		f.timer = nil
		_ = f.machine.Fire(context.Background(), EventReset, nil)
	})
}
