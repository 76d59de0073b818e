package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/binstream/sink"
	"github.com/wippyai/binstream/stream"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to a length-prefixed record file")
		appendStr   = flag.String("append", "", "Append one string record and exit")
		hexDump     = flag.Bool("hex", false, "Hex-dump record bodies")
		maxSize     = flag.Uint64("max", stream.DefaultMaxStringSize, "Largest record body to read")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: binspect -file <records.bin> [-hex] [-max bytes]")
		fmt.Fprintln(os.Stderr, "       binspect -file <records.bin> -append <string>")
		fmt.Fprintln(os.Stderr, "       binspect -file <records.bin> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*file, *maxSize); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *appendStr != "" {
		if err := appendRecord(*file, *appendStr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*file, *maxSize, *hexDump); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type record struct {
	body   string
	offset int64
}

// readRecords walks the file as a sequence of length-prefixed strings.
func readRecords(file string, maxSize uint64) ([]record, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	src, err := sink.NewFile(f)
	if err != nil {
		return nil, err
	}
	r, err := stream.NewReader(src, stream.WithMaxStringSize(maxSize))
	if err != nil {
		return nil, err
	}

	var records []record
	for {
		off := r.Position()
		s, err := r.ReadString()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, fmt.Errorf("record %d at offset %d: %w", len(records), off, err)
		}
		records = append(records, record{offset: off, body: s})
	}
}

func run(file string, maxSize uint64, hexDump bool) error {
	records, err := readRecords(file, maxSize)
	if err != nil && len(records) == 0 {
		return err
	}

	fmt.Printf("File: %s\n", file)
	fmt.Printf("Records: %d\n\n", len(records))

	for i, rec := range records {
		size := len(rec.body)
		fmt.Printf("[%d] offset=%d prefix=%dB body=%dB\n",
			i, rec.offset, stream.UvarintLen(uint64(size)), size)
		if hexDump {
			fmt.Print(formatHex([]byte(rec.body)))
		} else {
			fmt.Printf("    %s\n", preview(rec.body, 72))
		}
	}

	// A trailing decode error after good records is reported but not fatal
	if err != nil {
		fmt.Printf("\nStopped early: %v\n", err)
	}
	return nil
}

func appendRecord(file, value string) error {
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	dst, err := sink.NewFile(f)
	if err != nil {
		return err
	}
	if err := dst.SetPosition(info.Size()); err != nil {
		return err
	}

	w, err := stream.New(dst)
	if err != nil {
		return err
	}
	if err := w.WriteString(value); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	fmt.Printf("Appended %d bytes at offset %d\n", dst.Position()-info.Size(), info.Size())
	return nil
}

// preview flattens s to one line and truncates it for list display.
func preview(s string, width int) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, s)
	if len(s) > width {
		return s[:width] + "..."
	}
	return s
}

func formatHex(p []byte) string {
	var b strings.Builder
	for off := 0; off < len(p); off += 16 {
		end := off + 16
		if end > len(p) {
			end = len(p)
		}
		row := p[off:end]
		fmt.Fprintf(&b, "    %08x  ", off)
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(&b, "%02x ", row[i])
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString(" |")
		for _, c := range row {
			if c < 0x20 || c > 0x7e {
				c = '.'
			}
			b.WriteByte(c)
		}
		b.WriteString("|\n")
	}
	return b.String()
}
