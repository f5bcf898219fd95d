package deflog

import (
	"context"
	"time"

	"github.com/kpango/fastime"
)

// FastTimeNow returns a clock that is refreshed in the background and costs a
// single atomic load per call. It stops when ctx is done.
func FastTimeNow(ctx context.Context) func() time.Time {
	return fastClock(ctx).Now
}

func fastClock(ctx context.Context) fastime.Fastime {
	return fastime.New().StartTimerD(ctx, time.Millisecond)
}
