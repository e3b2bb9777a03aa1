package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jdeng/gohuffman/internal/fourxm"
	"github.com/jdeng/gohuffman/pkg/huffman"
)

func main() {
	var inputFile = flag.String("input", "", "Input bitstream file")
	var countsFlag = flag.String("counts", "", "Comma-separated symbol frequencies; counts[i] belongs to symbol i")
	var lengthsFlag = flag.String("lengths", "", "Comma-separated code lengths; codes are assigned canonically")
	var iframe = flag.Bool("iframe", false, "Input is a 4XM I-frame payload; the codebook comes from its statistics table")
	var orderFlag = flag.String("order", "msb", "Bit order of the input: msb or lsb")
	var prefixBits = flag.Int("prefix-bits", 0, "Lookup table width in bits (0 selects the default)")
	var count = flag.Int("count", 0, "Number of symbols to decode (0 decodes to the end of the input)")
	var blocks = flag.Int("blocks", 0, "With -iframe, number of coefficient blocks to decode")
	var table = flag.Bool("table", false, "Print the code table")
	flag.Parse()

	if *inputFile == "" {
		log.Fatal("Input file is required. Use -input flag.")
	}
	sources := 0
	for _, set := range []bool{*countsFlag != "", *lengthsFlag != "", *iframe} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		log.Fatal("Exactly one of -counts, -lengths or -iframe is required.")
	}
	if *count < 0 || *blocks < 0 {
		log.Fatal("-count and -blocks must not be negative.")
	}

	// Read input file
	data, err := os.ReadFile(*inputFile)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	if *iframe {
		dumpIFrame(data, *count, *blocks, *table)
		return
	}

	// Build codebook
	order, err := parseOrder(*orderFlag)
	if err != nil {
		log.Fatal(err)
	}
	opts := huffman.Options{Order: order, PrefixBits: *prefixBits}
	var cb *huffman.CodeBook
	if *countsFlag != "" {
		counts, err := parseList(*countsFlag)
		if err != nil {
			log.Fatalf("Invalid -counts: %v", err)
		}
		cb, err = huffman.FromCounts(counts, opts)
		if err != nil {
			log.Fatalf("Failed to build codebook: %v", err)
		}
	} else {
		values, err := parseList(*lengthsFlag)
		if err != nil {
			log.Fatalf("Invalid -lengths: %v", err)
		}
		lengths := make([]uint8, len(values))
		for i, v := range values {
			if v > 255 {
				log.Fatalf("Invalid -lengths: entry %d is %d", i, v)
			}
			lengths[i] = uint8(v)
		}
		cb, err = huffman.FromLengths(lengths, nil, opts)
		if err != nil {
			log.Fatalf("Failed to build codebook: %v", err)
		}
	}
	if *table {
		printTable(cb)
	}

	// Decode symbols
	r := huffman.NewReader(data, order)
	var symbols []uint32
	if *count > 0 {
		symbols, err = cb.DecodeN(r, *count)
	} else {
		symbols, err = cb.DecodeAll(r)
	}
	printSymbols(symbols)
	if err != nil {
		log.Fatalf("Decoding stopped after %d symbols: %v", len(symbols), err)
	}
}

func dumpIFrame(data []byte, count, blocks int, table bool) {
	frame, err := fourxm.ParseIFrame(data)
	if err != nil {
		log.Fatalf("Failed to parse I-frame: %v", err)
	}
	fmt.Printf("I-frame: bitstream %d bytes, prefix stream %d bytes, %d tokens\n",
		len(frame.Bitstream), len(frame.Prefix), frame.TokenCount)

	// Statistics table at the start of the prefix stream
	cb, offset, err := huffman.LoadStatistics(frame.Prefix)
	if err != nil {
		log.Fatalf("Failed to load statistics: %v", err)
	}
	fmt.Printf("Statistics: %d symbols, max length %d, tokens at offset %d\n", cb.Size(), cb.MaxLength(), offset)
	if table {
		printTable(cb)
	}

	// Decode tokens
	if count == 0 {
		count = int(frame.TokenCount)
	}
	tokens, err := frame.Tokens(count)
	printSymbols(tokens)
	if err != nil {
		log.Fatalf("Decoding stopped after %d tokens: %v", len(tokens), err)
	}

	// Debug: Print coefficient blocks
	if blocks > 0 {
		decoded, err := frame.Blocks(blocks)
		for i, b := range decoded {
			fmt.Printf("Block %d: DC=%d", i, b[0])
			for j, v := range b[1:] {
				if v != 0 {
					fmt.Printf(" [%d]=%d", j+1, v)
				}
			}
			fmt.Println()
		}
		if err != nil {
			log.Fatalf("Decoding stopped after %d blocks: %v", len(decoded), err)
		}
	}
}

func printTable(cb *huffman.CodeBook) {
	fmt.Printf("Code table (%d symbols, %s):\n", cb.Size(), cb.Order())
	for _, e := range cb.Codes() {
		fmt.Printf("  %5d  %2d  %s\n", e.Symbol, e.Code.Length, e.Code)
	}
}

func printSymbols(symbols []uint32) {
	fmt.Printf("Decoded %d symbols:\n", len(symbols))
	for i := 0; i < len(symbols); i += 16 {
		fmt.Printf("  %04d: ", i)
		for j := 0; j < 16 && i+j < len(symbols); j++ {
			fmt.Printf("%d ", symbols[i+j])
		}
		fmt.Println()
	}
}

func parseOrder(s string) (huffman.BitOrder, error) {
	switch strings.ToLower(s) {
	case "msb":
		return huffman.MSBFirst, nil
	case "lsb":
		return huffman.LSBFirst, nil
	}
	return 0, fmt.Errorf("unknown bit order %q, want msb or lsb", s)
}

func parseList(s string) ([]uint32, error) {
	fields := strings.Split(s, ",")
	counts := make([]uint32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		counts[i] = uint32(v)
	}
	return counts, nil
}
