package deflog

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jpillora/backoff"
	"github.com/rs/xid"
	"github.com/webbmaffian/go-deflog/intern"
	"github.com/webbmaffian/go-deflog/internal/ring"
)

type ClientOptions struct {
	Network      string        // tcp, udp, unix or unixgram. Default: tcp
	Address      string        // Host and port (e.g. 127.0.0.1:4610) or socket path.
	BufferSize   int           // Number of frames buffered while disconnected. Default: 100
	WriteTimeout time.Duration // Default: 5 seconds
	Table        *intern.Table // Table whose build ID is announced. Default: intern.Default
	TimeNow      func() time.Time
	Debug        Debugger
}

func (opt *ClientOptions) setDefaults(ctx context.Context) {
	if opt.Network == "" {
		opt.Network = "tcp"
	}

	if opt.BufferSize <= 0 {
		opt.BufferSize = 100
	}

	if opt.WriteTimeout <= 0 {
		opt.WriteTimeout = time.Second * 5
	}

	if opt.Table == nil {
		opt.Table = intern.Default
	}

	if opt.TimeNow == nil {
		opt.TimeNow = FastTimeNow(ctx)
	}

	if opt.Debug == nil {
		opt.Debug = nilDebugger{}
	}
}

var ErrUnsupportedNetwork = errors.New("unsupported network")

// Client is a FrameSink that ships frames to a remote reader. WriteFrame
// only copies the frame into a bounded buffer; a background worker copies it
// out again and owns the connection, reconnecting with exponential backoff. Frames arriving while
// the buffer is full are dropped and counted.
type Client struct {
	ctxCancel context.CancelFunc
	ch        *ring.Ring
	opt       ClientOptions
	header    StreamHeader
	backoff   backoff.Backoff
	dialer    net.Dialer
	conn      net.Conn
	buf       [StreamHeaderSize + FramePrefixSize + MaxFrameSize]byte
	frame     [MaxFrameSize]byte
	datagram  bool
	done      chan struct{}
	closeOnce sync.Once
	dropped   atomic.Uint64
}

var _ FrameSink = (*Client)(nil)

func NewClient(opt ClientOptions) (c *Client, err error) {
	var datagram bool

	switch opt.Network {
	case "", "tcp", "tcp4", "tcp6", "unix":
	case "udp", "udp4", "udp6", "unixgram":
		datagram = true
	default:
		return nil, ErrUnsupportedNetwork
	}

	if opt.Address == "" {
		return nil, errors.New("missing address")
	}

	ctx, cancel := context.WithCancel(context.Background())
	opt.setDefaults(ctx)

	c = &Client{
		ctxCancel: cancel,
		ch:        ring.New(opt.BufferSize, MaxFrameSize),
		opt:       opt,
		header: StreamHeader{
			Session: xid.New(),
			BuildID: opt.Table.BuildID,
		},
		backoff: backoff.Backoff{
			Factor: 2,
			Min:    time.Millisecond * 100,
			Max:    time.Second * 30,
		},
		dialer: net.Dialer{
			Timeout: time.Second * 5,
		},
		done:     make(chan struct{}),
		datagram: datagram,
	}

	// Every datagram is self-contained: it repeats the stream header.
	if datagram {
		c.header.Encode(c.buf[:])
	}

	go c.processFrames(ctx)

	return
}

func (c *Client) Session() xid.ID {
	return c.header.Session
}

func (c *Client) WriteFrame(frame []byte) {
	if !c.ch.Put(frame) {
		c.dropped.Add(1)
	}
}

// Dropped returns the number of frames lost to a full or closed buffer.
func (c *Client) Dropped() uint64 {
	return c.dropped.Load()
}

// WaitUntilSent blocks until every buffered frame has been written.
func (c *Client) WaitUntilSent() error {
	return c.ch.WaitUntilEmpty()
}

// CloseWithContext stops accepting frames and waits for the buffer to drain.
// If ctx ends first, the client is closed forcefully.
func (c *Client) CloseWithContext(ctx context.Context) (err error) {
	c.ch.CloseWriting()

	select {
	case <-c.done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if closeErr := c.Close(); err == nil {
		err = closeErr
	}

	return
}

func (c *Client) CloseGracefully(timeout time.Duration) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return c.CloseWithContext(ctx)
}

// Close stops the worker and drops whatever is still buffered.
func (c *Client) Close() (err error) {
	c.closeOnce.Do(func() {
		c.ctxCancel()
		c.ch.Close()
		<-c.done
		err = c.disconnect()
	})

	return
}

func (c *Client) processFrames(ctx context.Context) {
	defer close(c.done)

	for {
		if _, err := c.ch.Wait(); err != nil {
			return
		}

		if !c.ensureConnection(ctx) {
			return
		}

		n, err := c.ch.Read(c.frame[:])

		if err != nil {
			continue
		}

		if err = c.send(c.frame[:n]); err != nil {
			c.opt.Debug.Notice("Failed to send frame: %s", err.Error())
			c.ch.Rewind()
			c.disconnect()
			continue
		}

		c.ch.Ack()
	}
}

func (c *Client) send(frame []byte) (err error) {
	var hdr int

	if c.datagram {
		hdr = StreamHeaderSize
	}

	n := hdr + PutFrame(c.buf[hdr:], frame)
	c.conn.SetWriteDeadline(c.opt.TimeNow().Add(c.opt.WriteTimeout))
	_, err = c.conn.Write(c.buf[:n])
	return
}

// ensureConnection returns false once ctx is done.
func (c *Client) ensureConnection(ctx context.Context) bool {
	if c.conn != nil {
		return true
	}

	c.backoff.Reset()

	for {
		err := c.connect(ctx)

		if err == nil {
			return true
		}

		dur := c.backoff.Duration()
		c.opt.Debug.Notice("Failed to connect: %s, retrying in %.2f seconds", err.Error(), dur.Seconds())

		select {
		case <-ctx.Done():
			return false
		case <-time.After(dur):
		}
	}
}

func (c *Client) connect(ctx context.Context) (err error) {
	conn, err := c.dialer.DialContext(ctx, c.opt.Network, c.opt.Address)

	if err != nil {
		return
	}

	if !c.datagram {
		var hdr [StreamHeaderSize]byte
		c.header.Encode(hdr[:])
		conn.SetWriteDeadline(c.opt.TimeNow().Add(c.opt.WriteTimeout))

		if _, err = conn.Write(hdr[:]); err != nil {
			conn.Close()
			return
		}
	}

	c.conn = conn
	c.opt.Debug.Info("Connected to %s://%s", c.opt.Network, c.opt.Address)
	return
}

func (c *Client) disconnect() (err error) {
	if c.conn != nil {
		err = c.conn.Close()
		c.conn = nil
	}

	return
}
