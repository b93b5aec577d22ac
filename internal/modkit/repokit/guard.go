package repokit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Pinger answers a liveness check
type Pinger interface {
	Ping(context.Context) error
}

// pingTimeout bounds a startup ping when ctx carries no deadline
const pingTimeout = 5 * time.Second

// MustPing panics unless p answers. Used once at startup for backends that are configured
func MustPing(ctx context.Context, name string, p Pinger) {
	if err := ping(ctx, p); err != nil {
		panic(fmt.Errorf("repokit: %s: %w", name, err))
	}
}

func ping(ctx context.Context, p Pinger) error {
	if p == nil {
		return errors.New("nil dependency")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pingTimeout)
		defer cancel()
	}
	return p.Ping(ctx)
}

// MustGuard panics when any configured store backend fails its check
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("repokit: store guard: %w", err))
	}
}
