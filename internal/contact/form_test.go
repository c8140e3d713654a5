package contact_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/internal/contact"
)

// manualTimers records scheduled callbacks and runs them on demand.
type manualTimers struct {
	mu    sync.Mutex
	delay []time.Duration
	funcs []func()
}

type manualTimer struct{}

func (manualTimer) Stop() bool { return true }

func (m *manualTimers) AfterFunc(d time.Duration, f func()) contact.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = append(m.delay, d)
	m.funcs = append(m.funcs, f)
	return manualTimer{}
}

func (m *manualTimers) fireAll() {
	m.mu.Lock()
	funcs := m.funcs
	m.funcs = nil
	m.mu.Unlock()
	for _, f := range funcs {
		f()
	}
}

// fire runs the i-th scheduled callback even if it was stopped, as a timer
// that had already fired when Stop was called would.
func (m *manualTimers) fire(i int) {
	m.mu.Lock()
	f := m.funcs[i]
	m.mu.Unlock()
	f()
}

func fillForm(t *testing.T, f *contact.Form) {
	t.Helper()
	require.NoError(t, f.Set(contact.FieldName, "Jane"))
	require.NoError(t, f.Set(contact.FieldEmail, "jane@example.com"))
	require.NoError(t, f.Set(contact.FieldMessage, "Hello there, team!"))
}

func TestForm_SuccessLifecycle(t *testing.T) {
	t.Parallel()

	timers := &manualTimers{}
	release := make(chan struct{})
	started := make(chan struct{})
	var sent contact.Submission

	form := contact.NewForm(func(_ context.Context, s contact.Submission) error {
		sent = s
		close(started)
		<-release
		return nil
	}, contact.WithAfterFunc(timers.AfterFunc), contact.WithResetDelay(5*time.Second))
	fillForm(t, form)

	assert.Equal(t, contact.StateIdle, form.Status())
	assert.False(t, form.SubmitDisabled())

	done := make(chan error, 1)
	go func() { done <- form.Submit(context.Background()) }()
	<-started

	assert.Equal(t, contact.StateSubmitting, form.Status())
	assert.True(t, form.SubmitDisabled())
	assert.ErrorIs(t, form.Submit(context.Background()), contact.ErrSubmitInProgress)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, contact.StateSuccess, form.Status())
	assert.Equal(t, contact.Submission{}, form.Fields())
	assert.Equal(t, "Jane", sent.Name)
	assert.Equal(t, []time.Duration{5 * time.Second}, timers.delay)

	timers.fireAll()
	assert.Equal(t, contact.StateIdle, form.Status())
	assert.False(t, form.SubmitDisabled())
}

func TestForm_ErrorKeepsFields(t *testing.T) {
	t.Parallel()

	timers := &manualTimers{}
	sendErr := errors.New("boom")
	form := contact.NewForm(func(context.Context, contact.Submission) error {
		return sendErr
	}, contact.WithAfterFunc(timers.AfterFunc))
	fillForm(t, form)

	err := form.Submit(context.Background())
	assert.ErrorIs(t, err, sendErr)
	assert.Equal(t, contact.StateError, form.Status())
	assert.Equal(t, "Jane", form.Fields().Name)

	assert.ErrorIs(t, form.Submit(context.Background()), contact.ErrSubmitInProgress)

	timers.fireAll()
	assert.Equal(t, contact.StateIdle, form.Status())
	assert.Equal(t, "Jane", form.Fields().Name)
}

func TestForm_ZeroResetDelay(t *testing.T) {
	t.Parallel()

	timers := &manualTimers{}
	form := contact.NewForm(func(context.Context, contact.Submission) error { return nil },
		contact.WithAfterFunc(timers.AfterFunc), contact.WithResetDelay(0))
	fillForm(t, form)

	require.NoError(t, form.Submit(context.Background()))
	assert.Empty(t, timers.delay)
	assert.Equal(t, contact.StateSuccess, form.Status())

	form.Reset()
	assert.Equal(t, contact.StateIdle, form.Status())
}

func TestForm_OutdatedResetIgnored(t *testing.T) {
	t.Parallel()

	timers := &manualTimers{}
	form := contact.NewForm(func(context.Context, contact.Submission) error { return nil },
		contact.WithAfterFunc(timers.AfterFunc))

	fillForm(t, form)
	require.NoError(t, form.Submit(context.Background()))
	form.Reset()

	fillForm(t, form)
	require.NoError(t, form.Submit(context.Background()))
	require.Len(t, timers.funcs, 2)

	timers.fire(0)
	assert.Equal(t, contact.StateSuccess, form.Status())

	timers.fire(1)
	assert.Equal(t, contact.StateIdle, form.Status())
}

func TestForm_Set(t *testing.T) {
	t.Parallel()

	form := contact.NewForm(func(context.Context, contact.Submission) error { return nil })
	assert.ErrorIs(t, form.Set("phone", "123"), contact.ErrUnknownField)

	form.Fill(contact.Submission{Name: "A", Email: "a@b.co", Message: "m"})
	assert.Equal(t, contact.Submission{Name: "A", Email: "a@b.co", Message: "m"}, form.Fields())
	assert.Equal(t, 5*time.Second, form.ResetDelay())
}
