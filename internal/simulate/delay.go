// Package simulate stands in for remote calls the shop does not make.
package simulate

import (
	"context"
	"time"
)

// Wait blocks for d or until ctx is done, whichever comes first. It returns
// ctx.Err() when the wait was cut short. A non-positive d only checks ctx.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
