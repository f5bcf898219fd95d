// Example of a program logging through deflog. deflog_gen.go was generated
// with DEFLOG_LOG=info; regenerate it to change what gets compiled in:
//
//	DEFLOG_LOG=go_deflog::example=debug,info go run ./cmd/deflog-gen ./example
//
// Decode the capture with:
//
//	go run ./cmd/deflog-dump -table example.deflog.json -file example.deflog
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/webbmaffian/go-deflog"
	"github.com/webbmaffian/go-deflog/intern"
)

var (
	tagStarted  = intern.Intern("started with {} workers")
	tagReading  = intern.Intern("sensor {} read {} in {}")
	tagFailed   = intern.Intern("sensor {} failed: {}")
	tagSamples  = intern.Intern("last samples {}")
	tagStopping = intern.Intern("stopping")
	tagDbgValue = deflog.DbgTag(nil, "value")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) (err error) {
	addr := flag.String("addr", "", "ship frames to this tcp address instead of a file")
	out := flag.String("out", "example.deflog", "capture file")
	table := flag.String("table", "example.deflog.json", "intern table for deflog-dump")
	flag.Parse()

	if err = intern.Default.SaveFile(*table); err != nil {
		return
	}

	var sink deflog.FrameSink

	if *addr != "" {
		var c *deflog.Client

		if c, err = deflog.NewClient(deflog.ClientOptions{
			Address: *addr,
			Debug:   deflog.DebuggerStdout(),
		}); err != nil {
			return
		}

		defer c.CloseGracefully(5 * time.Second)
		sink = c
	} else {
		var f *os.File

		if f, err = os.Create(*out); err != nil {
			return
		}

		defer f.Close()
		sink = deflog.NewWriterSink(f, intern.Default, deflog.DebuggerStdout())
	}

	l := deflog.New(sink, deflog.LoggerOptions{
		Timestamps: true,
		TimeNow:    deflog.FastTimeNow(ctx),
	})

	if logInfo {
		l.Info(tagStarted, deflog.U8(4))
	}

	samples := deflog.Slice[deflog.Option[deflog.I16]]{}
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	for i := 0; i < 10; i++ {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}

		start := time.Now()
		value, ok := readSensor(i)

		if logTrace {
			deflog.Dbg(l, tagDbgValue, deflog.I16(value))
		}

		if ok {
			samples = append(samples, deflog.Some(deflog.I16(value)))
		} else {
			samples = append(samples, deflog.None[deflog.I16]())
		}

		if logDebug {
			l.Debug(tagReading, deflog.U8(i), deflog.I16(value), deflog.Duration(time.Since(start)))
		}

		if logWarn {
			if !ok {
				l.Warn(tagFailed, deflog.U8(i), deflog.Err[deflog.Unit, deflog.Str]("timeout"))
			}
		}
	}

	if logTrace {
		l.Trace(tagSamples, samples)
	}

	if logInfo {
		l.Info(tagStopping)
	}

	return
}

func readSensor(i int) (int16, bool) {
	if i%4 == 3 {
		return 0, false
	}

	return int16(i*10 - 25), true
}
