package vexen

import (
	"context"
	"errors"
	"testing"
)

func TestRunClosesAfterSuccess(t *testing.T) {
	c, sequence := fakeContainer(nil, nil, nil, nil)

	ran := false
	err := c.Run(context.Background(), func(ctx context.Context, c *Container) error {
		ran = true
		if _, accErr := c.Authentication(); accErr != nil {
			t.Fatalf("expected ready container inside Run, got %v", accErr)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !ran {
		t.Fatal("expected fn to run")
	}
	assertSequence(t, *sequence,
		"init:identity", "init:authorization", "init:authentication",
		"close:authentication", "close:authorization", "close:identity",
	)
}

func TestRunClosesExactlyOnceOnFnError(t *testing.T) {
	c, sequence := fakeContainer(nil, nil, nil, nil)
	boom := errors.New("handler failed")

	err := c.Run(context.Background(), func(context.Context, *Container) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	assertSequence(t, *sequence,
		"init:identity", "init:authorization", "init:authentication",
		"close:authentication", "close:authorization", "close:identity",
	)
}

func TestRunFnErrorWinsOverCloseError(t *testing.T) {
	c, _ := fakeContainer(nil, nil, nil, errors.New("close failed"))
	boom := errors.New("handler failed")

	err := c.Run(context.Background(), func(context.Context, *Container) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error to win, got %v", err)
	}
}

func TestRunSurfacesCloseErrorOnSuccess(t *testing.T) {
	closeErr := errors.New("close failed")
	c, _ := fakeContainer(nil, nil, nil, closeErr)

	err := c.Run(context.Background(), func(context.Context, *Container) error {
		return nil
	})
	if !errors.Is(err, closeErr) {
		t.Fatalf("expected close error, got %v", err)
	}
}

func TestRunReturnsInitErrorWithoutRunningFn(t *testing.T) {
	boom := errors.New("connect refused")
	c, sequence := fakeContainer(boom, nil, nil, nil)

	err := c.Run(context.Background(), func(context.Context, *Container) error {
		t.Fatal("fn must not run when init fails")
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected init error, got %v", err)
	}
	assertSequence(t, *sequence, "init:identity")
}

func TestRunOnReadyContainerLeavesItUntouched(t *testing.T) {
	c, sequence := fakeContainer(nil, nil, nil, nil)
	ctx := context.Background()

	if err := c.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	*sequence = (*sequence)[:0]

	err := c.Run(ctx, func(context.Context, *Container) error {
		t.Fatal("fn must not run when init is rejected")
		return nil
	})
	if !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
	// No subsystem was touched and the container stays usable.
	assertSequence(t, *sequence)
	if _, accErr := c.Identity(); accErr != nil {
		t.Fatalf("expected container to remain ready, got %v", accErr)
	}
}

func TestRunOnClosedContainerLeavesItUntouched(t *testing.T) {
	c, sequence := fakeContainer(nil, nil, nil, nil)
	ctx := context.Background()

	if err := c.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := c.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	*sequence = (*sequence)[:0]

	err := c.Run(ctx, func(context.Context, *Container) error {
		t.Fatal("fn must not run on a closed container")
		return nil
	})
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	assertSequence(t, *sequence)
}

func TestRunClosesOnPanic(t *testing.T) {
	c, sequence := fakeContainer(nil, nil, nil, nil)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = c.Run(context.Background(), func(context.Context, *Container) error {
			panic("handler panicked")
		})
	}()
	assertSequence(t, *sequence,
		"init:identity", "init:authorization", "init:authentication",
		"close:authentication", "close:authorization", "close:identity",
	)
}
