// Command hsdtfuzz drives the HSDT decoder/encoder against files on disk,
// the way a fuzzing corpus replay tool would. For each input it decodes
// the leading value, re-encodes the result, and asserts the re-encoded
// bytes exactly match the consumed prefix of the input (canonical form is
// unique, so a correct round trip must be byte-identical).
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	hsdt "github.com/hsdt-go/hsdt/runtime"
)

// CLI defines the hsdtfuzz command-line interface.
//
// We deliberately keep it minimal:
//   - files: one or more input files to decode
//   - full: require each file to be consumed in its entirety
//   - max-depth: override the decoder's recursion depth cap
//   - verbose: print per-file results instead of only failures
type CLI struct {
	Files    []string `arg:"" help:"Input file(s) to decode and round-trip." type:"existingfile"`
	Full     bool     `short:"f" help:"Require the whole file to be consumed by one value."`
	MaxDepth int      `short:"d" help:"Override the decoder's max nesting depth (0 = default)."`
	Verbose  bool     `short:"v" help:"Print a line per file, not just failures."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("hsdtfuzz"),
		kong.Description("Decode and round-trip HSDT-encoded files, reporting any byte mismatch."),
	)

	failed, err := run(&cli)
	if err != nil {
		ctx.FatalIfErrorf(err)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func run(cli *CLI) (int, error) {
	dec := hsdt.NewDecoder()
	if cli.MaxDepth > 0 {
		dec.SetMaxDepth(cli.MaxDepth)
	}

	failed := 0
	for _, path := range cli.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			return failed, fmt.Errorf("read %q: %w", path, err)
		}
		if err := checkFile(dec, path, data, cli); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			continue
		}
		if cli.Verbose {
			fmt.Printf("ok   %s\n", path)
		}
	}
	return failed, nil
}

func checkFile(dec *hsdt.Decoder, path string, data []byte, cli *CLI) error {
	v, consumed, err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if cli.Full && consumed != len(data) {
		return fmt.Errorf("consumed %d of %d bytes, --full requires full consumption", consumed, len(data))
	}

	// Round-trip through the pooled scratch buffer rather than Encode's
	// fresh allocation, since the harness re-encodes one file after
	// another and the buffer's backing array can be reused across them.
	bb := hsdt.GetMinSize(hsdt.EncodedSize(v))
	bb.AppendValue(v)
	defer hsdt.PutByteBuffer(bb)

	if !bytes.Equal(bb.Bytes(), data[:consumed]) {
		return fmt.Errorf("round trip mismatch: re-encoded %d bytes differ from the %d-byte consumed prefix", bb.Len(), consumed)
	}
	if size := hsdt.EncodedSize(v); size != consumed {
		return fmt.Errorf("EncodedSize reported %d, Decode consumed %d", size, consumed)
	}
	return nil
}
