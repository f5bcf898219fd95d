package deflog

import (
	"io"
	"sync"

	"github.com/rs/xid"
	"github.com/webbmaffian/go-deflog/intern"
)

// FrameSink receives finished frames. The slice is only valid for the
// duration of the call. Sinks shared between goroutines are responsible for
// their own locking.
type FrameSink interface {
	WriteFrame(frame []byte)
}

// WriterSink writes a stream header followed by size-prefixed frames to an
// io.Writer. Write errors are reported to the Debugger and the frame is lost.
type WriterSink struct {
	w       io.Writer
	debug   Debugger
	header  StreamHeader
	buf     [FramePrefixSize + MaxFrameSize]byte
	mu      sync.Mutex
	started bool
}

var _ FrameSink = (*WriterSink)(nil)

func NewWriterSink(w io.Writer, table *intern.Table, debug Debugger) *WriterSink {
	if table == nil {
		table = intern.Default
	}

	if debug == nil {
		debug = nilDebugger{}
	}

	return &WriterSink{
		w:     w,
		debug: debug,
		header: StreamHeader{
			Session: xid.New(),
			BuildID: table.BuildID,
		},
	}
}

func (s *WriterSink) Header() StreamHeader {
	return s.header
}

func (s *WriterSink) WriteFrame(frame []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		var hdr [StreamHeaderSize]byte
		s.header.Encode(hdr[:])

		if _, err := s.w.Write(hdr[:]); err != nil {
			s.debug.Error(err)
			return
		}

		s.started = true
	}

	n := PutFrame(s.buf[:], frame)

	if _, err := s.w.Write(s.buf[:n]); err != nil {
		s.debug.Error(err)
	}
}
