package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jdeng/gohuffman/pkg/huffman"
)

// createStream encodes symbols with a codebook built from counts and writes
// the packed bits to filename.
func createStream(filename string, counts, symbols []uint32, order huffman.BitOrder) error {
	cb, err := huffman.FromCounts(counts, huffman.Options{Order: order})
	if err != nil {
		return err
	}

	// Write encoded symbols
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := huffman.NewWriter(file, order)
	if err := cb.EncodeAll(w, symbols); err != nil {
		return err
	}
	return w.Close()
}

// createIFrame writes a 4XM I-frame payload with an empty coefficient
// bitstream whose prefix stream holds a statistics table for counts and the
// encoded symbols as tokens.
func createIFrame(filename string, counts, symbols []uint32) error {
	stats, err := statisticsTable(counts)
	if err != nil {
		return err
	}
	cb, offset, err := huffman.LoadStatistics(stats)
	if err != nil {
		return err
	}
	prefix := stats[:offset]

	// Token words are MSB-first 32-bit values stored little-endian.
	var tokens bytes.Buffer
	w := huffman.NewWriter(&tokens, huffman.MSBFirst)
	if err := cb.EncodeAll(w, symbols); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	for tokens.Len()%4 != 0 {
		tokens.WriteByte(0)
	}
	words := tokens.Bytes()
	for i := 0; i < len(words); i += 4 {
		prefix = binary.LittleEndian.AppendUint32(prefix, binary.BigEndian.Uint32(words[i:]))
	}

	// I-frame header
	var payload []byte
	payload = binary.LittleEndian.AppendUint32(payload, 0)                     // Bitstream size
	payload = binary.LittleEndian.AppendUint32(payload, uint32(len(prefix)/4)) // Prefix size in words
	payload = binary.LittleEndian.AppendUint32(payload, uint32(len(symbols)))  // Token count
	payload = append(payload, prefix...)

	return os.WriteFile(filename, payload, 0o644)
}

// statisticsTable emits counts as a single start..end group followed by the
// terminator and padding to a 4-byte boundary.
func statisticsTable(counts []uint32) ([]byte, error) {
	if len(counts) > 256 {
		return nil, errors.New("statistics cover symbols 0..255 only")
	}
	start, end := -1, -1
	for sym, c := range counts {
		if c > 255 {
			return nil, fmt.Errorf("symbol %d: frequency %d does not fit in a byte", sym, c)
		}
		if c != 0 {
			if start < 0 {
				start = sym
			}
			end = sym
		}
	}
	if start < 0 {
		return nil, errors.New("no symbol has a non-zero frequency")
	}

	// One group: start, end, then a frequency per symbol
	table := []byte{byte(start), byte(end)}
	for sym := start; sym <= end; sym++ {
		table = append(table, byte(counts[sym]))
	}
	table = append(table, 0x00) // Terminator
	for len(table)%4 != 0 {
		table = append(table, 0x00)
	}
	return table, nil
}

func parseList(s string) ([]uint32, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]uint32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = uint32(v)
	}
	return out, nil
}

func main() {
	var output = flag.String("output", "", "Output file")
	var countsFlag = flag.String("counts", "1,1,2,4", "Comma-separated symbol frequencies")
	var symbolsFlag = flag.String("symbols", "3,2,0,1", "Comma-separated symbols to encode")
	var orderFlag = flag.String("order", "msb", "Bit order: msb or lsb")
	var iframe = flag.Bool("iframe", false, "Write a 4XM I-frame payload instead of a raw bitstream")
	flag.Parse()

	if *output == "" {
		fmt.Println("Usage: create-test-stream -output <file> [-counts 1,1,2,4] [-symbols 3,2,0,1] [-order msb|lsb] [-iframe]")
		os.Exit(1)
	}

	// Parse symbol lists
	counts, err := parseList(*countsFlag)
	if err != nil {
		fmt.Printf("Invalid -counts: %v\n", err)
		os.Exit(1)
	}
	symbols, err := parseList(*symbolsFlag)
	if err != nil {
		fmt.Printf("Invalid -symbols: %v\n", err)
		os.Exit(1)
	}

	// Write output file
	if *iframe {
		err = createIFrame(*output, counts, symbols)
	} else {
		order := huffman.MSBFirst
		switch strings.ToLower(*orderFlag) {
		case "msb":
		case "lsb":
			order = huffman.LSBFirst
		default:
			fmt.Printf("Unknown bit order %q\n", *orderFlag)
			os.Exit(1)
		}
		err = createStream(*output, counts, symbols, order)
	}
	if err != nil {
		fmt.Printf("Error creating test stream: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created test stream: %s\n", *output)
}
