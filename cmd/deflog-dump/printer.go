package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/webbmaffian/go-deflog"
	"github.com/webbmaffian/go-deflog/decode"
)

var severityColors = [...]*color.Color{
	deflog.TRACE: color.New(color.FgHiBlack),
	deflog.DEBUG: color.New(color.FgCyan),
	deflog.INFO:  color.New(color.FgGreen),
	deflog.WARN:  color.New(color.FgYellow),
	deflog.ERROR: color.New(color.FgRed, color.Bold),
}

type printer struct {
	w   io.Writer
	dec *decode.Decoder
	mu  sync.Mutex
}

func newPrinter(w io.Writer, dec *decode.Decoder) *printer {
	return &printer{
		w:   w,
		dec: dec,
	}
}

func (p *printer) header(source string, h deflog.StreamHeader) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "%s session %s\n", source, h.Session)

	if h.BuildID != p.dec.Table.BuildID {
		color.New(color.FgYellow).Fprintf(p.w, "%s build %s does not match table %s\n", source, h.BuildID, p.dec.Table.BuildID)
	}
}

func (p *printer) frame(frame []byte) {
	fr, err := p.dec.DecodeFrame(frame)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		color.New(color.FgRed).Fprintf(p.w, "corrupt frame: %s\n", err)
		return
	}

	var b strings.Builder

	if !fr.Time.IsZero() {
		b.WriteString(fr.Time.UTC().Format(time.RFC3339Nano))
		b.WriteByte(' ')
	}

	severityColors[fr.Severity].Fprintf(&b, "%-5s", strings.ToUpper(fr.Severity.String()))
	b.WriteByte(' ')
	b.WriteString(fr.Message())
	b.WriteByte('\n')

	io.WriteString(p.w, b.String())
}

func (p *printer) readStream(source string, r io.Reader) (err error) {
	s := decode.NewStream(r)
	h, err := s.Header()

	if err != nil {
		return
	}

	p.header(source, h)

	for {
		frame, err := s.Next()

		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}

			return err
		}

		p.frame(frame)
	}
}

func (p *printer) listenUDP(ctx context.Context, addr string) (err error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)

	if err != nil {
		return
	}

	conn, err := net.ListenUDP("udp", udpAddr)

	if err != nil {
		return
	}

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	var (
		buf      [deflog.StreamHeaderSize + deflog.FramePrefixSize + deflog.MaxFrameSize]byte
		sessions = make(map[string]bool)
	)

	for {
		n, from, err := conn.ReadFromUDP(buf[:])

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return err
		}

		err = decode.SplitDatagram(buf[:n], func(h deflog.StreamHeader, frame []byte) error {
			if key := h.Session.String(); !sessions[key] {
				sessions[key] = true
				p.header(from.String(), h)
			}

			p.frame(frame)
			return nil
		})

		if err != nil {
			p.mu.Lock()
			fmt.Fprintf(p.w, "%s: %s\n", from, err)
			p.mu.Unlock()
		}
	}
}

func (p *printer) listenTCP(ctx context.Context, addr string) (err error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)

	if err != nil {
		return
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return err
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			defer conn.Close()

			stop := context.AfterFunc(ctx, func() { conn.Close() })
			defer stop()

			if err := p.readStream(conn.RemoteAddr().String(), conn); err != nil && ctx.Err() == nil {
				p.mu.Lock()
				fmt.Fprintf(p.w, "%s: %s\n", conn.RemoteAddr(), err)
				p.mu.Unlock()
			}
		}()
	}
}
