package deflog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFastTimeNow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := FastTimeNow(ctx)
	got := now()

	require.WithinDuration(t, time.Now(), got, time.Second)
}

func BenchmarkTimeNow(b *testing.B) {
	var t func() time.Time

	t = time.Now

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = t()
	}
}

func BenchmarkFastTimeNow(b *testing.B) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var t func() time.Time

	t = FastTimeNow(ctx)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = t()
	}
}
