package deflog

import (
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/webbmaffian/go-deflog/intern"
)

func readStreamFrames(t *testing.T, conn net.Conn, n int) (h StreamHeader, frames [][]byte) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hdr [StreamHeaderSize]byte
	_, err := io.ReadFull(conn, hdr[:])
	require.NoError(t, err)
	require.NoError(t, h.Decode(hdr[:]))

	for i := 0; i < n; i++ {
		var prefix [FramePrefixSize]byte
		_, err = io.ReadFull(conn, prefix[:])
		require.NoError(t, err)

		frame := make([]byte, binary.BigEndian.Uint16(prefix[:]))
		_, err = io.ReadFull(conn, frame)
		require.NoError(t, err)

		frames = append(frames, frame)
	}

	return
}

func TestClientTCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	table := intern.NewTable()
	c, err := NewClient(ClientOptions{
		Address: ln.Addr().String(),
		Table:   table,
	})
	require.NoError(t, err)

	l := New(c)
	l.Info(40, U8(1))
	l.Error(41)

	conn, err := ln.Accept()
	require.NoError(t, err)
	defer conn.Close()

	h, frames := readStreamFrames(t, conn, 2)
	require.Equal(t, c.Session(), h.Session)
	require.Equal(t, table.BuildID, h.BuildID)
	require.Equal(t, [][]byte{
		join([]byte{byte(INFO), 40, 0}, tag(intern.TagU8), []byte{1}),
		{byte(ERROR), 41, 0},
	}, frames)

	require.NoError(t, c.WaitUntilSent())
	require.NoError(t, c.CloseGracefully(time.Second))
	require.Zero(t, c.Dropped())
}

func TestClientUDP(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	c, err := NewClient(ClientOptions{
		Network: "udp",
		Address: pc.LocalAddr().String(),
	})
	require.NoError(t, err)
	defer c.Close()

	New(c).Warn(40, Str("x"))

	var buf [StreamHeaderSize + FramePrefixSize + MaxFrameSize]byte
	pc.SetReadDeadline(time.Now().Add(5 * time.Second))
	n, _, err := pc.ReadFrom(buf[:])
	require.NoError(t, err)

	var h StreamHeader
	require.NoError(t, h.Decode(buf[:n]))
	require.Equal(t, c.Session(), h.Session)

	frame := buf[StreamHeaderSize:n]
	require.Equal(t, join([]byte{0, 7, byte(WARN), 40, 0}, tag(intern.TagStr), []byte{1, 'x'}), frame)
}

func TestClientDropsWhenFull(t *testing.T) {
	// Nothing listens on this address, so frames stay buffered.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	c, err := NewClient(ClientOptions{
		Address:    addr,
		BufferSize: 2,
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		c.WriteFrame([]byte{byte(INFO), 40, 0})
	}

	require.GreaterOrEqual(t, c.Dropped(), uint64(2))
	require.NoError(t, c.Close())

	c.WriteFrame([]byte{byte(INFO), 40, 0})
	require.GreaterOrEqual(t, c.Dropped(), uint64(3))
}

func TestClientWriteFrameNeverWaitsForStalledPeer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	// Accept, but never read, so the socket buffers fill up and writes stall.
	go func() {
		conn, err := ln.Accept()

		if err == nil {
			defer conn.Close()
			time.Sleep(5 * time.Second)
		}
	}()

	c, err := NewClient(ClientOptions{
		Address:      ln.Addr().String(),
		WriteTimeout: 500 * time.Millisecond,
	})
	require.NoError(t, err)

	frame := make([]byte, MaxFrameSize)
	frame[0] = byte(INFO)
	frame[1] = 40

	var worst time.Duration

	for i := 0; i < 20000; i++ {
		start := time.Now()
		c.WriteFrame(frame)

		if d := time.Since(start); d > worst {
			worst = d
		}
	}

	require.Less(t, worst, 100*time.Millisecond)
	require.NotZero(t, c.Dropped())
	require.NoError(t, c.Close())
}

func TestNewClientValidatesOptions(t *testing.T) {
	_, err := NewClient(ClientOptions{Network: "ip", Address: "127.0.0.1:1"})
	require.Equal(t, ErrUnsupportedNetwork, err)

	_, err = NewClient(ClientOptions{})
	require.Error(t, err)
}
