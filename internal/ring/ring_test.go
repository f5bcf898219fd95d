package ring

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readString(t *testing.T, r *Ring) string {
	t.Helper()

	var buf [64]byte
	n, err := r.Read(buf[:])
	require.NoError(t, err)

	return string(buf[:n])
}

func TestPutReadAck(t *testing.T) {
	r := New(2, 8)

	require.True(t, r.Put([]byte("one")))
	require.True(t, r.Put([]byte("two")))
	require.False(t, r.Put([]byte("three")), "ring is full")

	require.Equal(t, "one", readString(t, r))
	require.Equal(t, 1, r.Unread())

	r.Ack()
	require.True(t, r.Put([]byte("three")))

	require.Equal(t, "two", readString(t, r))
	require.Equal(t, "three", readString(t, r))
	_, err := r.Read(make([]byte, 8))
	require.Equal(t, io.EOF, err)

	r.Ack()
	r.Ack()
	require.Equal(t, 0, r.Len())
	require.Equal(t, uint64(3), r.ItemsWritten())
	require.Equal(t, uint64(3), r.ItemsRead())
}

func TestPutRejectsOversized(t *testing.T) {
	r := New(1, 4)

	require.False(t, r.Put([]byte("12345")))
	require.True(t, r.Put([]byte("1234")))
}

func TestReadShortBuffer(t *testing.T) {
	r := New(2, 8)
	r.Put([]byte("abc"))

	_, err := r.Read(make([]byte, 2))
	require.Equal(t, io.ErrShortBuffer, err)
	require.Equal(t, "abc", readString(t, r))
}

func TestPutDoesNotWaitForDelivery(t *testing.T) {
	r := New(4, 8)
	r.Put([]byte("a"))

	var buf [8]byte
	n, err := r.Read(buf[:])
	require.NoError(t, err)

	// The item is still being delivered, yet writers go straight through.
	done := make(chan bool)

	go func() {
		done <- r.Put([]byte("b"))
	}()

	select {
	case ok := <-done:
		require.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Put blocked while an item was in delivery")
	}

	require.Equal(t, "a", string(buf[:n]))
	r.Ack()
	require.Equal(t, "b", readString(t, r))
}

func TestRewind(t *testing.T) {
	r := New(4, 8)
	r.Put([]byte("a"))
	r.Put([]byte("b"))

	readString(t, r)
	readString(t, r)
	require.Equal(t, 2, r.Rewind())
	require.Equal(t, "a", readString(t, r))
}

func TestWaitReturnsEOFAfterCloseWriting(t *testing.T) {
	r := New(2, 8)
	r.Put([]byte("a"))
	r.CloseWriting()

	n, err := r.Wait()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	readString(t, r)
	r.Ack()

	_, err = r.Wait()
	require.Equal(t, io.EOF, err)
	require.False(t, r.Put([]byte("b")))
}

func TestWaitWakesOnPut(t *testing.T) {
	r := New(2, 8)
	done := make(chan int)

	go func() {
		n, _ := r.Wait()
		done <- n
	}()

	time.Sleep(10 * time.Millisecond)
	r.Put([]byte("a"))

	select {
	case n := <-done:
		require.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("Wait did not wake up")
	}
}

func TestWaitUntilEmpty(t *testing.T) {
	r := New(2, 8)
	r.Put([]byte("a"))

	go func() {
		r.Read(make([]byte, 8))
		r.Ack()
	}()

	require.NoError(t, r.WaitUntilEmpty())

	r.Close()
	require.Equal(t, io.ErrClosedPipe, r.WaitUntilEmpty())
}

func BenchmarkPutReadAck(b *testing.B) {
	r := New(100, 64)
	item := []byte("lorem ipsum dolor sit amet")
	buf := make([]byte, 64)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r.Put(item)
		r.Read(buf)
		r.Ack()
	}
}
