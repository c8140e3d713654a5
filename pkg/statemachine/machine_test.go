package statemachine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrymomot/landing/pkg/statemachine"
)

type state string
type event string

const (
	draft     state = "draft"
	review    state = "review"
	published state = "published"
	rejected  state = "rejected"

	submit  event = "submit"
	approve event = "approve"
	reject  event = "reject"
)

func TestMachine_Transitions(t *testing.T) {
	t.Parallel()

	m := statemachine.MustNew(draft,
		statemachine.WithTransition[state, event](draft, review, submit),
		statemachine.WithTransition[state, event](review, published, approve),
	)
	ctx := context.Background()

	if m.Current() != draft {
		t.Fatalf("expected %s, got %s", draft, m.Current())
	}
	if !m.CanFire(ctx, submit, nil) {
		t.Fatal("expected submit to be available from draft")
	}
	if err := m.Fire(ctx, submit, nil); err != nil {
		t.Fatalf("fire submit: %v", err)
	}
	if err := m.Fire(ctx, approve, nil); err != nil {
		t.Fatalf("fire approve: %v", err)
	}
	if m.Current() != published {
		t.Fatalf("expected %s, got %s", published, m.Current())
	}

	err := m.Fire(ctx, submit, nil)
	if !errors.Is(err, statemachine.ErrNoTransition) {
		t.Fatalf("expected ErrNoTransition, got %v", err)
	}
	var te *statemachine.TransitionError
	if !errors.As(err, &te) || te.From != "published" || te.Event != "submit" {
		t.Fatalf("unexpected transition error: %#v", te)
	}

	m.Reset()
	if m.Current() != draft {
		t.Fatalf("expected reset to %s, got %s", draft, m.Current())
	}
}

func TestMachine_GuardsPickFirstPassing(t *testing.T) {
	t.Parallel()

	approved := func(_ context.Context, _ state, _ event, data any) bool {
		ok, _ := data.(bool)
		return ok
	}
	m := statemachine.MustNew(review,
		statemachine.WithTransition(review, published, approve, statemachine.WithGuard[state, event](approved)),
		statemachine.WithTransition[state, event](review, rejected, approve),
	)
	ctx := context.Background()

	if err := m.Fire(ctx, approve, false); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if m.Current() != rejected {
		t.Fatalf("expected fallthrough to %s, got %s", rejected, m.Current())
	}

	m.Reset()
	if err := m.Fire(ctx, approve, true); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if m.Current() != published {
		t.Fatalf("expected %s, got %s", published, m.Current())
	}
}

func TestMachine_GuardRejects(t *testing.T) {
	t.Parallel()

	never := func(context.Context, state, event, any) bool { return false }
	m := statemachine.MustNew(draft,
		statemachine.WithTransition(draft, review, submit, statemachine.WithGuard[state, event](never)),
	)

	if m.CanFire(context.Background(), submit, nil) {
		t.Fatal("expected CanFire to be false")
	}
	if err := m.Fire(context.Background(), submit, nil); !errors.Is(err, statemachine.ErrTransitionRejected) {
		t.Fatalf("expected ErrTransitionRejected, got %v", err)
	}
	if m.Current() != draft {
		t.Fatalf("state changed to %s", m.Current())
	}
}

func TestMachine_ActionFailureAborts(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var ran []string
	m := statemachine.MustNew(draft,
		statemachine.WithTransition(draft, review, submit,
			statemachine.WithAction(func(context.Context, state, state, event, any) error {
				ran = append(ran, "first")
				return nil
			}),
			statemachine.WithAction(func(context.Context, state, state, event, any) error {
				ran = append(ran, "second")
				return boom
			}),
		),
	)

	err := m.Fire(context.Background(), submit, nil)
	if !errors.Is(err, boom) || !errors.Is(err, statemachine.ErrActionFailed) {
		t.Fatalf("expected wrapped action error, got %v", err)
	}
	if m.Current() != draft {
		t.Fatalf("state changed to %s", m.Current())
	}
	if len(ran) != 2 {
		t.Fatalf("expected both actions to run, got %v", ran)
	}
}

func TestMachine_ObserversRunOutsideLock(t *testing.T) {
	t.Parallel()

	var m *statemachine.Machine[state, event]
	var seen []state
	m = statemachine.MustNew(draft,
		statemachine.WithTransition[state, event](draft, review, submit),
		statemachine.WithTransition[state, event](review, published, approve),
		statemachine.OnTransition(func(ctx context.Context, from, to state, ev event) {
			seen = append(seen, to)
			if to == review {
				// Re-entrant fire must not deadlock.
				if err := m.Fire(ctx, approve, nil); err != nil {
					t.Errorf("nested fire: %v", err)
				}
			}
		}),
	)

	if err := m.Fire(context.Background(), submit, nil); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if m.Current() != published {
		t.Fatalf("expected %s, got %s", published, m.Current())
	}
	if len(seen) != 2 || seen[0] != review || seen[1] != published {
		t.Fatalf("unexpected observer calls: %v", seen)
	}
}

func TestMachine_ConcurrentFireTakesTransitionOnce(t *testing.T) {
	t.Parallel()

	m := statemachine.MustNew(draft, statemachine.WithTransition[state, event](draft, review, submit))

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.Fire(context.Background(), submit, nil) == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("expected exactly one successful fire, got %d", succeeded)
	}
}

func TestNew_NilObserver(t *testing.T) {
	t.Parallel()

	if _, err := statemachine.New(draft, statemachine.OnTransition[state, event](nil)); err == nil {
		t.Fatal("expected error for nil observer")
	}
}
