package vexen

import (
	"context"
	"errors"
)

// Run initializes the container, invokes fn with the ready container, and
// closes the container on the way out: on fn's success, on fn's error,
// and on panic alike. The container is closed exactly once per call.
//
// fn's error wins when both fn and Close fail; the Close error is
// surfaced only when fn succeeds. If Init fails on a fresh container,
// Close still runs to release any partially-constructed state and the
// Init error is returned. If Init is rejected because the container is
// already ready or already closed, Run owns nothing and leaves the
// container untouched.
func (c *Container) Run(ctx context.Context, fn func(ctx context.Context, c *Container) error) (err error) {
	if initErr := c.Init(ctx); initErr != nil {
		if !errors.Is(initErr, ErrAlreadyInitialized) && !errors.Is(initErr, ErrClosed) {
			_ = c.Close(ctx)
		}
		return initErr
	}
	defer func() {
		cerr := c.Close(ctx)
		if err == nil {
			err = cerr
		}
	}()
	return fn(ctx, c)
}
