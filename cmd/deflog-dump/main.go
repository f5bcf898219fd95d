// Command deflog-dump decodes deflog streams with the intern table of the
// build that produced them.
//
//	deflog-dump -table app.deflog.json -file capture.bin
//	deflog-dump -table app.deflog.json -udp :4610
//	deflog-dump -table app.deflog.json -tcp :4610
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/webbmaffian/go-deflog/decode"
	"github.com/webbmaffian/go-deflog/intern"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}

		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string) (err error) {
	fs := flag.NewFlagSet("deflog-dump", flag.ContinueOnError)
	tablePath := fs.String("table", "", "intern table written by the build (required)")
	file := fs.String("file", "", "read a captured stream, - for stdin")
	udpAddr := fs.String("udp", "", "listen for datagrams on this address")
	tcpAddr := fs.String("tcp", "", "accept streams on this address")
	noColor := fs.Bool("no-color", false, "disable colors")

	if err = fs.Parse(args); err != nil {
		return
	}

	if *tablePath == "" {
		return errors.New("missing -table")
	}

	if *noColor {
		color.NoColor = true
	}

	table, err := loadTable(*tablePath)

	if err != nil {
		return
	}

	p := newPrinter(os.Stdout, decode.NewDecoder(table))

	switch {
	case *file == "-":
		return p.readStream("stdin", os.Stdin)

	case *file != "":
		var f *os.File

		if f, err = os.Open(*file); err != nil {
			return
		}

		defer f.Close()
		return p.readStream(*file, f)

	case *udpAddr != "":
		return p.listenUDP(ctx, *udpAddr)

	case *tcpAddr != "":
		return p.listenTCP(ctx, *tcpAddr)
	}

	return errors.New("one of -file, -udp or -tcp is required")
}

func loadTable(path string) (table *intern.Table, err error) {
	f, err := os.Open(path)

	if err != nil {
		return
	}

	defer f.Close()
	return intern.ReadTable(f)
}
